package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/brunojasgv/spacex/domain"
)

const dateLayout = "2006-01-02 15:04"

// renderer writes the view-model data as aligned plain text tables.
type renderer struct {
	out io.Writer
}

func outcome(l domain.Launch) string {
	switch {
	case l.Succeeded():
		return "success"
	case l.Failed():
		return "failure"
	case l.Upcoming:
		return "upcoming"
	default:
		return "unknown"
	}
}

func (r renderer) launches(launches []domain.Launch) error {
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FLIGHT\tNAME\tDATE (UTC)\tOUTCOME")
	for _, l := range launches {
		date := "TBD"
		if l.DateUTC != nil {
			date = l.DateUTC.UTC().Format(dateLayout)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", l.FlightNumber, l.Name, date, outcome(l))
	}
	return w.Flush()
}

func orUnknown[T any](v *T) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprint(*v)
}

func (r renderer) company(c domain.Company) error {
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", orUnknown(c.Name))
	fmt.Fprintf(w, "Founder:\t%s\n", orUnknown(c.Founder))
	fmt.Fprintf(w, "Founded:\t%s\n", orUnknown(c.Founded))
	fmt.Fprintf(w, "Employees:\t%s\n", orUnknown(c.Employees))
	fmt.Fprintf(w, "Launch sites:\t%s\n", orUnknown(c.LaunchSites))
	fmt.Fprintf(w, "Valuation:\t%s\n", valuation(c.Valuation))
	return w.Flush()
}

func valuation(v *int64) string {
	if v == nil {
		return "unknown"
	}
	s := fmt.Sprint(*v)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return "$" + b.String()
}

func (r renderer) history(records []*domain.FetchRecord) error {
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tRESOURCE\tATTEMPT\tSTATUS\tOUTCOME\tDURATION\tERROR")
	for _, rec := range records {
		status := "-"
		if rec.StatusCode != 0 {
			status = fmt.Sprint(rec.StatusCode)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			rec.StartedAt.Local().Format(time.DateTime), rec.Resource, rec.Attempt, status,
			rec.Outcome, rec.Duration.Round(time.Millisecond), rec.Error)
	}
	return w.Flush()
}

func (r renderer) counts(counts map[domain.FetchOutcome]int) error {
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	for _, o := range []domain.FetchOutcome{domain.OutcomeSuccess, domain.OutcomeBadResponse, domain.OutcomeDecode, domain.OutcomeTransport} {
		fmt.Fprintf(w, "%s:\t%d\n", o, counts[o])
	}
	return w.Flush()
}

func (r renderer) logs(logs []*domain.Log) error {
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tLEVEL\tEXECUTION\tMESSAGE")
	for _, l := range logs {
		execution := "-"
		if l.FetchID != nil {
			execution = l.FetchID.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.Timestamp.Local().Format(time.DateTime), l.Level, execution, l.Message)
	}
	return w.Flush()
}
