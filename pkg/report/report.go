// Package report assembles lint results into a renderable report.
//
// The analysis core returns one ordered issue list per analyzed file; this
// package aggregates those lists, computes summary counts, and renders JSON
// or plain text. Exit-code policy stays with the CLI.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/flowlint/flowlint/pkg/rules"
)

// FileReport holds the ordered issues for one linted file.
type FileReport struct {
	Path     string        `json:"path"`
	Diagrams int           `json:"diagrams"`
	Issues   []rules.Issue `json:"issues"`
}

// Summary aggregates counts across all files.
type Summary struct {
	Files      int                    `json:"files"`
	Diagrams   int                    `json:"diagrams"`
	Issues     int                    `json:"issues"`
	BySeverity map[rules.Severity]int `json:"by_severity"`
}

// Report is the complete output of one lint run.
type Report struct {
	RunID       string       `json:"run_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	Files       []FileReport `json:"files"`
	Summary     Summary      `json:"summary"`
}

// New builds a report from per-file results, assigning a fresh run ID and
// computing the summary. File order is preserved as given.
func New(files []FileReport) Report {
	r := Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Files:       files,
		Summary: Summary{
			Files:      len(files),
			BySeverity: make(map[rules.Severity]int),
		},
	}
	for _, f := range files {
		r.Summary.Diagrams += f.Diagrams
		r.Summary.Issues += len(f.Issues)
		for _, issue := range f.Issues {
			r.Summary.BySeverity[issue.Severity]++
		}
	}
	return r
}

// Count returns the number of issues with the given severity.
func (r Report) Count(sev rules.Severity) int {
	return r.Summary.BySeverity[sev]
}

// WriteJSON renders the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText renders the report as unstyled plain text, one line per issue:
//
//	path:line severity rule message
func (r Report) WriteText(w io.Writer) error {
	for _, f := range r.Files {
		for _, issue := range f.Issues {
			if _, err := fmt.Fprintf(w, "%s:%d %s %s %s\n",
				issue.FilePath, issue.Line, issue.Severity, issue.Rule, issue.Message); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "%d file(s), %d diagram(s), %d issue(s)\n",
		r.Summary.Files, r.Summary.Diagrams, r.Summary.Issues)
	return err
}
