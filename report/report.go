// Package report aggregates validation results and renders them for
// humans (text) and machines (JSON).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/mikeartee/kiro-steering-docs/validator"
)

// Report is the outcome of one validation run.
type Report struct {
	// RunID uniquely identifies this run.
	RunID string `json:"run_id"`

	// Target is the file or directory that was validated.
	Target string `json:"target"`

	// Results holds one entry per validated file.
	Results []validator.FileResult `json:"results"`

	// GeneratedAt is when the run finished.
	GeneratedAt time.Time `json:"generated_at"`

	// Duration is how long validation took.
	Duration string `json:"duration"`
}

// New builds a report for a completed run.
func New(target string, results []validator.FileResult, duration time.Duration) *Report {
	return &Report{
		RunID:       uuid.New().String(),
		Target:      target,
		Results:     results,
		GeneratedAt: time.Now(),
		Duration:    duration.String(),
	}
}

// Passed returns true when every validated file produced zero findings.
func (r *Report) Passed() bool {
	return r.TotalFindings() == 0
}

// TotalFindings returns the finding count across all files.
func (r *Report) TotalFindings() int {
	total := 0
	for _, result := range r.Results {
		total += len(result.Findings)
	}
	return total
}

// FilesPassed returns the number of files with zero findings.
func (r *Report) FilesPassed() int {
	passed := 0
	for _, result := range r.Results {
		if result.Valid() {
			passed++
		}
	}
	return passed
}

// WriteText renders the report as a human-readable listing followed by
// a pass/fail summary line.
func (r *Report) WriteText(w io.Writer) error {
	for _, result := range r.Results {
		if result.Valid() {
			if _, err := fmt.Fprintf(w, "✓ %s is valid\n", result.File); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintf(w, "Validation errors in %s:\n", result.File); err != nil {
			return err
		}
		for _, finding := range result.Findings {
			if _, err := fmt.Fprintf(w, "  %s\n", finding); err != nil {
				return err
			}
		}
	}

	if r.Passed() {
		_, err := fmt.Fprintf(w, "\n✓ All files are valid (%d checked)\n", len(r.Results))
		return err
	}

	_, err := fmt.Fprintf(w, "\nTotal: %d validation errors in %d of %d files\n",
		r.TotalFindings(), len(r.Results)-r.FilesPassed(), len(r.Results))
	return err
}

// WriteJSON renders the report as indented JSON for CI consumers.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
