package receipt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

var reportSeparator = strings.Repeat("=", 40)

// BatchSummary counts the outcome of a directory run
type BatchSummary struct {
	Total  int
	OK     int
	Failed []BatchResult
}

// Summarize counts successes and collects the failures
func Summarize(results []BatchResult) BatchSummary {
	summary := BatchSummary{Total: len(results)}
	for _, r := range results {
		if r.Err != nil {
			summary.Failed = append(summary.Failed, r)
			continue
		}
		summary.OK++
	}
	return summary
}

// WriteReport writes one block per result: the file name, then either the
// indented JSON envelope or an error line, then a separator.
func WriteReport(w io.Writer, results []BatchResult) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "File: %s\n", r.Filename); err != nil {
			return err
		}

		if r.Err != nil {
			if _, err := fmt.Fprintf(w, "Error: %s\n", r.Err); err != nil {
				return err
			}
		} else {
			data, err := json.MarshalIndent(r.Response, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling %s: %w", r.Filename, err)
			}
			if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w, reportSeparator); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary prints the totals and the files that failed
func WriteSummary(w io.Writer, summary BatchSummary) {
	fmt.Fprintf(w, "\nBatch finished. Total files: %d\n", summary.Total)
	fmt.Fprintf(w, "Succeeded: %d | Errors: %d\n", summary.OK, len(summary.Failed))
	if len(summary.Failed) == 0 {
		fmt.Fprintln(w, "All files processed successfully.")
		return
	}
	fmt.Fprintln(w, "Files with errors:")
	for _, r := range summary.Failed {
		fmt.Fprintf(w, "- %s: %s\n", r.Filename, r.Err)
	}
}
