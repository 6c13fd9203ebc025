package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/footydigest/matchday/internal/job"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt   time.Time         `json:"checked_at"`
	Date        string            `json:"date,omitempty"`
	Fetched     int               `json:"fetched"`
	Matches     []string          `json:"matches"`
	MatchCount  int               `json:"match_count"`
	Message     string            `json:"message,omitempty"`
	Channel     string            `json:"channel,omitempty"`
	Sent        bool              `json:"sent"`
	AlreadySent bool              `json:"already_sent,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
}

// NewOutputResult converts a run report into its printable form.
func NewOutputResult(r job.Report) *OutputResult {
	result := &OutputResult{
		CheckedAt:   r.RunAt.UTC(),
		Date:        r.Date,
		Fetched:     r.Fetched,
		Matches:     r.Lines,
		MatchCount:  len(r.Lines),
		Message:     r.Message,
		Channel:     r.Channel,
		Sent:        r.Sent,
		AlreadySent: r.AlreadySent,
	}
	if result.Matches == nil {
		result.Matches = []string{}
	}

	errs := map[string]error{
		"fetch":   r.FetchErr,
		"send":    r.SendErr,
		"webhook": r.WebhookErr,
	}
	for stage, err := range errs {
		if err == nil {
			continue
		}
		if result.Errors == nil {
			result.Errors = make(map[string]string)
		}
		result.Errors[stage] = err.Error()
	}

	return result
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult) error {
	if result.AlreadySent {
		fmt.Fprintln(w, "Digest already sent or attempted in this process; nothing to do.")
		return nil
	}

	fmt.Fprintf(w, "Date: %s\n", result.Date)
	fmt.Fprintf(w, "Fixtures fetched: %d\n", result.Fetched)

	if result.MatchCount == 0 {
		fmt.Fprintln(w, "No top matches today.")
	} else {
		fmt.Fprintf(w, "Matches in digest: %d\n", result.MatchCount)
		for _, line := range result.Matches {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}

	status := color.RedString("no")
	if result.Sent {
		status = color.GreenString("yes")
	}
	fmt.Fprintf(w, "Sent via %s: %s\n", result.Channel, status)

	for _, stage := range []string{"fetch", "webhook", "send"} {
		if msg, ok := result.Errors[stage]; ok {
			fmt.Fprintf(w, "%s %s\n", color.YellowString("%s error:", stage), msg)
		}
	}

	return nil
}
