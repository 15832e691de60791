package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brunojasgv/spacex/domain"
	"github.com/brunojasgv/spacex/spacextest"
)

func execute(t *testing.T, argv ...string) string {
	t.Helper()
	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetArgs(argv)
	if err := Cmd.Execute(); err != nil {
		t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
	}
	return out.String()
}

func TestCommands(t *testing.T) {
	server := spacextest.NewServer()
	defer server.Close()
	dir := t.TempDir()
	common := []string{"--config-dir", dir, "--base-url", server.URL, "--log-level", "error"}

	t.Run("launches prints the filtered list", func(t *testing.T) {
		out := execute(t, append(common, "launches", "--filter", "failed")...)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != 6 {
			t.Fatalf("\nwanted:\n6 lines\ngot:\n%q", out)
		}
		if !strings.HasPrefix(lines[0], "FLIGHT") || !strings.Contains(lines[1], "FalconSat") {
			t.Fatalf("\nwanted:\nheader then FalconSat\ngot:\n%q", out)
		}
		for _, line := range lines[1:] {
			if !strings.HasSuffix(line, "failure") {
				t.Fatalf("\nwanted:\nfailure\ngot:\n%q", line)
			}
		}
	})

	t.Run("company prints the record", func(t *testing.T) {
		out := execute(t, append(common, "company")...)
		if !strings.Contains(out, "SpaceX") || !strings.Contains(out, "$74,000,000,000") {
			t.Fatalf("\nwanted:\nSpaceX and its valuation\ngot:\n%q", out)
		}
	})

	t.Run("history counts the recorded attempts", func(t *testing.T) {
		out := execute(t, append(common, "history", "--stats")...)
		if !strings.Contains(out, "success:") || !strings.Contains(out, "2") {
			t.Fatalf("\nwanted:\n2 successes\ngot:\n%q", out)
		}
		if server.Total() != 2 {
			t.Fatalf("\nwanted:\n2\ngot:\n%d", server.Total())
		}
	})

	t.Run("history logs show the journaled outcomes", func(t *testing.T) {
		out := execute(t, append(common, "history", "--logs")...)
		for _, want := range []string{"launches fetched", "company fetched", "launches loaded", "company loaded"} {
			if !strings.Contains(out, want) {
				t.Errorf("\nwanted:\n%s\ngot:\n%q", want, out)
			}
		}
		if !strings.Contains(out, "INFO") {
			t.Errorf("\nwanted:\nINFO entries\ngot:\n%q", out)
		}
	})

	// flags set here stay changed on Cmd, so this runs last
	t.Run("config set keeps flags out of the file", func(t *testing.T) {
		execute(t, append(common, "--retries", "3", "--no-history", "config", "set", "log_format", "json")...)
		content, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
		if err != nil {
			t.Fatalf("reading config: %v", err)
		}
		if strings.Contains(string(content), server.URL) || strings.Contains(string(content), "retries: 3") {
			t.Fatalf("\nwanted:\nno flag values\ngot:\n%s", content)
		}
		if !strings.Contains(string(content), "log_format: json") {
			t.Fatalf("\nwanted:\nlog_format: json\ngot:\n%s", content)
		}
	})
}

func TestRenderer(t *testing.T) {
	t.Run("launches without a date are to be determined", func(t *testing.T) {
		var out bytes.Buffer
		renderer{out: &out}.launches([]domain.Launch{{FlightNumber: 7, Name: "Crew-9", Upcoming: true}})
		if !strings.Contains(out.String(), "TBD") || !strings.Contains(out.String(), "upcoming") {
			t.Fatalf("\nwanted:\nTBD upcoming\ngot:\n%q", out.String())
		}
	})

	t.Run("missing company fields are unknown", func(t *testing.T) {
		var out bytes.Buffer
		renderer{out: &out}.company(domain.Company{})
		if strings.Count(out.String(), "unknown") != 6 {
			t.Fatalf("\nwanted:\n6 unknown fields\ngot:\n%q", out.String())
		}
	})

	t.Run("history rows show the outcome", func(t *testing.T) {
		var out bytes.Buffer
		renderer{out: &out}.history([]*domain.FetchRecord{{
			Resource:  "launches",
			Attempt:   2,
			Outcome:   domain.OutcomeTransport,
			Duration:  1500 * time.Microsecond,
			StartedAt: time.Now(),
			Error:     "transport failure: connection refused",
		}})
		if !strings.Contains(out.String(), "transport_failure") || !strings.Contains(out.String(), "connection refused") {
			t.Fatalf("\nwanted:\ntransport failure row\ngot:\n%q", out.String())
		}
	})
}

func TestValuation(t *testing.T) {
	tests := map[int64]string{
		0:           "$0",
		999:         "$999",
		1000:        "$1,000",
		74000000000: "$74,000,000,000",
	}
	for in, want := range tests {
		if got := valuation(&in); got != want {
			t.Errorf("\nwanted:\n%s\ngot:\n%s", want, got)
		}
	}
}
