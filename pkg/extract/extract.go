// Package extract parses raw diagram source into [diagram.Diagram] values.
//
// Two inputs are supported: standalone diagram files (.mmd, .mermaid) and
// Markdown files carrying fenced ```mermaid blocks. Extraction is total: a
// block that fails to parse still yields a Diagram, marked Invalid with the
// parser's message, so the analysis core can surface the failure through
// the syntax-validation rule instead of aborting the file.
package extract

import (
	"path/filepath"
	"strings"

	"github.com/flowlint/flowlint/pkg/diagram"
)

// Extract parses every diagram found in source. Markdown files may contain
// any number of fenced diagram blocks (including zero); other files are
// treated as a single diagram body.
func Extract(path string, source []byte) []diagram.Diagram {
	if isMarkdown(path) {
		return extractMarkdown(path, string(source))
	}
	d := Parse(string(source), path, 1)
	return []diagram.Diagram{d}
}

// isMarkdown reports whether path has a Markdown extension.
func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// extractMarkdown scans for ```mermaid fenced blocks and parses each one.
// The reported line is the first line of the diagram body (1-based).
func extractMarkdown(path, source string) []diagram.Diagram {
	var diagrams []diagram.Diagram
	lines := strings.Split(source, "\n")

	inFence := false
	var fence string
	var body []string
	var bodyStart int

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !inFence {
			marker, lang := fenceMarker(trimmed)
			if marker != "" && strings.EqualFold(lang, "mermaid") {
				inFence = true
				fence = marker
				body = body[:0]
				bodyStart = i + 2 // body begins on the next line
			}
			continue
		}
		if strings.HasPrefix(trimmed, fence) {
			diagrams = append(diagrams, Parse(strings.Join(body, "\n"), path, bodyStart))
			inFence = false
			continue
		}
		body = append(body, line)
	}

	// An unterminated fence still counts; the parser decides validity.
	if inFence {
		diagrams = append(diagrams, Parse(strings.Join(body, "\n"), path, bodyStart))
	}
	return diagrams
}

// fenceMarker returns the fence characters and info string of a code-fence
// opener, or "" when the line opens no fence.
func fenceMarker(line string) (marker, lang string) {
	for _, m := range []string{"```", "~~~"} {
		if strings.HasPrefix(line, m) {
			return m, strings.TrimSpace(strings.TrimPrefix(line, m))
		}
	}
	return "", ""
}

// Parse parses one diagram body. The header line selects the grammar:
// "flowchart"/"graph" or "classDiagram". Anything else produces an Invalid
// diagram carrying the parse error.
func Parse(source, path string, line int) diagram.Diagram {
	d := diagram.Diagram{
		SourceText: source,
		FilePath:   path,
		Line:       line,
	}

	header, rest := headerLine(source)
	switch {
	case header == "":
		d.Invalid = true
		d.ParseError = "empty diagram"
	case strings.HasPrefix(header, "flowchart") || strings.HasPrefix(header, "graph"):
		parseFlowchart(&d, header, rest)
	case strings.HasPrefix(header, "classDiagram"):
		parseClassDiagram(&d, rest)
	default:
		d.Invalid = true
		d.ParseError = "unrecognized diagram type: " + firstWord(header)
	}
	return d
}

// headerLine returns the first non-empty, non-comment line and the lines
// after it.
func headerLine(source string) (header string, rest []string) {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%%") {
			continue
		}
		return trimmed, lines[i+1:]
	}
	return "", nil
}

func firstWord(s string) string {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i]
	}
	return s
}
