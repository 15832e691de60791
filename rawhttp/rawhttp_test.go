package rawhttp

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

var forcedErr = errors.New("forced error")

// erroringReader will return an error on Reads
type erroringReader struct{}

func (er *erroringReader) Read(p []byte) (n int, err error) {
	return 0, forcedErr
}

func (er *erroringReader) Close() error {
	return nil
}

func TestDetectMIME(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "json object", body: `{"name":"SpaceX"}`, want: "application/json"},
		{name: "json array", body: `[{"name":"FalconSat"}]`, want: "application/json"},
		{name: "json with surrounding whitespace", body: "\n  {\"a\":1}  \n", want: "application/json"},
		{name: "html page", body: `<!DOCTYPE html><html><body>Bad Gateway</body></html>`, want: "text/html"},
		{name: "plain text", body: `upstream connect error`, want: "text/plain"},
		{name: "empty body", body: ``, want: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectMIME([]byte(tt.body))
			if got != tt.want {
				t.Fatalf("\nwanted:\n%s\ngot:\n%s", tt.want, got)
			}
		})
	}
}

func TestLooksLikeJSON(t *testing.T) {
	t.Run("valid JSON should be detected", func(t *testing.T) {
		if !LooksLikeJSON([]byte(`{"success":true}`)) {
			t.Fatal("\nwanted:\ntrue\ngot:\nfalse")
		}
	})

	t.Run("an HTML error page should not be detected as JSON", func(t *testing.T) {
		if LooksLikeJSON([]byte(`<html><body>502</body></html>`)) {
			t.Fatal("\nwanted:\nfalse\ngot:\ntrue")
		}
	})
}

func TestPrettify(t *testing.T) {
	t.Run("Prettify Valid JSON", func(t *testing.T) {
		want := []byte("{\n  \"b\": 2,\n  \"a\": 1\n}")
		got, err := Prettify([]byte(`{"b":2,"a":1}`))
		if err != nil {
			t.Fatalf("prettifying json: %v", err)
		}
		if !bytes.Equal(want, got) {
			t.Fatalf("wanted:\n%q\ngot:    %q", want, got)
		}
	})

	t.Run("Invalid JSON should not be prettified", func(t *testing.T) {
		got, err := Prettify([]byte(`{"b":2,"a":2,}`))
		if err != nil {
			t.Fatalf("prettifying invalid json: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected an empty string got %q", got)
		}
	})

	t.Run("Prettify Valid XML", func(t *testing.T) {
		want := []byte("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<root>\n <item>1</item>\n</root>\n")
		got, err := Prettify([]byte(`<?xml version="1.0" encoding="UTF-8"?><root><item>1</item></root>`))
		if err != nil {
			t.Fatalf("prettying xml: %v", err)
		}
		if !bytes.Equal(want, got) {
			t.Fatalf("wanted:\n%q\ngot:    %q", want, got)
		}
	})

	t.Run("Prettify Valid HTML", func(t *testing.T) {
		got, err := Prettify([]byte(`<html><body><p>Hello</p></body></html>`))
		if err != nil {
			t.Fatalf("prettifying HTML: %v", err)
		}
		want := []byte("<html>\n  <body>\n    <p>\n      Hello\n    </p>\n  </body>\n</html>")
		if !bytes.Equal(want, got) {
			t.Fatalf("wanted:\n%q\ngot:    %q", want, got)
		}
	})

	t.Run("Plaintext should not be prettified", func(t *testing.T) {
		got, err := Prettify([]byte(`hello, spacex`))
		if err != nil {
			t.Fatalf("prettifying plaintext: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected an empty string got %q", got)
		}
	})

	t.Run("Empty body", func(t *testing.T) {
		got, err := Prettify([]byte(``))
		if err != nil {
			t.Fatalf("prettifying empty body: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected an empty string got %q", got)
		}
	})
}

func TestSnippet(t *testing.T) {
	t.Run("should collapse whitespace", func(t *testing.T) {
		got := Snippet([]byte("<html>\n  <body>oops</body>\n</html>"), 0)
		want := "<html> <body>oops</body> </html>"
		if got != want {
			t.Fatalf("\nwanted:\n%q\ngot:\n%q", want, got)
		}
	})

	t.Run("should truncate long bodies", func(t *testing.T) {
		got := Snippet([]byte(strings.Repeat("a", 20)), 5)
		if got != "aaaaa..." {
			t.Fatalf("\nwanted:\n%q\ngot:\n%q", "aaaaa...", got)
		}
	})
}

func TestDumpResponse(t *testing.T) {
	t.Run("should include headers and the prettified body and keep the body readable", func(t *testing.T) {
		body := `{"error":"Not Found"}`
		res := &http.Response{
			Status:     "404 Not Found",
			StatusCode: http.StatusNotFound,
			Proto:      "HTTP/1.1",
			ProtoMajor: 1,
			ProtoMinor: 1,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(body)),
		}

		dump, err := DumpResponse(res)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if !strings.Contains(dump, "404 Not Found") {
			t.Fatalf("wanted dump to contain the status line\ngot: %q", dump)
		}
		if !strings.Contains(dump, "\"error\": \"Not Found\"") {
			t.Fatalf("wanted dump to contain the prettified body\ngot: %q", dump)
		}

		rest, err := io.ReadAll(res.Body)
		if err != nil {
			t.Fatalf("reading body after dump: %v", err)
		}
		if string(rest) != body {
			t.Fatalf("\nwanted:\n%q\ngot:\n%q", body, rest)
		}
	})

	t.Run("should fall back to the raw body when it cannot be prettified", func(t *testing.T) {
		res := &http.Response{
			Status:     "500 Internal Server Error",
			StatusCode: http.StatusInternalServerError,
			Proto:      "HTTP/1.1",
			ProtoMajor: 1,
			ProtoMinor: 1,
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader("upstream exploded")),
		}

		dump, err := DumpResponse(res)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if !strings.HasSuffix(dump, "upstream exploded") {
			t.Fatalf("wanted dump to end with the raw body\ngot: %q", dump)
		}
	})

	t.Run("should return an error if the body cannot be read", func(t *testing.T) {
		res := &http.Response{
			Status:     "200 OK",
			StatusCode: http.StatusOK,
			Proto:      "HTTP/1.1",
			ProtoMajor: 1,
			ProtoMinor: 1,
			Header:     make(http.Header),
			Body:       &erroringReader{},
		}

		_, err := DumpResponse(res)
		if !errors.Is(err, forcedErr) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", forcedErr, err)
		}
	})
}
