package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/flowlint/flowlint/pkg/report"
	"github.com/flowlint/flowlint/pkg/rules"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleSevError   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleSevWarning = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleSevInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleRuleID   = lipgloss.NewStyle().Foreground(colorCyan)
	styleCitation = lipgloss.NewStyle().Italic(true).Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// Issue Output
// =============================================================================

// severityStyle maps a severity to its display style.
func severityStyle(sev rules.Severity) lipgloss.Style {
	switch sev {
	case rules.SeverityError:
		return styleSevError
	case rules.SeverityWarning:
		return styleSevWarning
	}
	return styleSevInfo
}

// printIssue prints one issue with its suggestion and citation.
func printIssue(issue rules.Issue) {
	fmt.Printf("  %s  %s  %s\n",
		severityStyle(issue.Severity).Render(fmt.Sprintf("%-7s", issue.Severity)),
		styleRuleID.Render(issue.Rule),
		StyleValue.Render(issue.Message))
	if issue.Suggestion != "" {
		fmt.Println("           " + StyleDim.Render(iconArrow+" "+issue.Suggestion))
	}
	if issue.Citation != "" {
		fmt.Println("           " + styleCitation.Render(issue.Citation))
	}
}

// printReport prints every file's issues grouped by file, then a summary.
func printReport(r report.Report) {
	for _, f := range r.Files {
		if len(f.Issues) == 0 {
			continue
		}
		fmt.Println(StyleTitle.Render(f.Path))
		for _, issue := range f.Issues {
			printIssue(issue)
		}
		fmt.Println()
	}
	printSummary(r)
}

// printSummary prints the aggregate counts for a run.
func printSummary(r report.Report) {
	if r.Summary.Issues == 0 {
		printSuccess("%d file(s), %d diagram(s), no issues", r.Summary.Files, r.Summary.Diagrams)
		return
	}
	printInfo("%d file(s), %d diagram(s), %d issue(s): %d error(s), %d warning(s), %d info",
		r.Summary.Files, r.Summary.Diagrams, r.Summary.Issues,
		r.Count(rules.SeverityError), r.Count(rules.SeverityWarning), r.Count(rules.SeverityInfo))
}
