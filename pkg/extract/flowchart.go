package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/flowlint/flowlint/pkg/diagram"
)

// Flowchart grammar fragments. Node IDs follow Mermaid's identifier rules;
// the optional shape suffix carries the display label.
var (
	// id then optional shape: A, A[text], A(text), A((text)), A{text}, A>text]
	// The ID must not end in '-' so that "A-->B" tokenizes as A, -->, B.
	nodeRe = regexp.MustCompile(`^([A-Za-z0-9_](?:[A-Za-z0-9_.-]*[A-Za-z0-9_])?)\s*(\(\([^)]*\)\)|\[[^\]]*\]|\([^)]*\)|\{[^}]*\}|>[^\]]*\])?`)

	// link with optional |label| or inline "-- label -->" text
	linkRe = regexp.MustCompile(`^(<-->|-->|---|-\.->|\.-+>|==>|--[xo]|--)\s*(\|[^|]*\|)?`)

	inlineLabelRe = regexp.MustCompile(`^--\s+([^-]+?)\s+(-->|---)`)
)

// flowchart statements that declare styling or interaction, not structure.
var flowchartDirectives = map[string]bool{
	"style":     true,
	"classDef":  true,
	"class":     true,
	"click":     true,
	"linkStyle": true,
	"direction": true,
}

// parseFlowchart fills d from a flowchart/graph body. Nodes are registered
// in order of first appearance; an edge endpoint that was never declared
// with a shape still becomes a node (Mermaid auto-declares on reference).
func parseFlowchart(d *diagram.Diagram, header string, body []string) {
	d.Kind = diagram.KindFlowchart

	fields := strings.Fields(header)
	if len(fields) > 1 {
		d.Direction = diagram.ParseDirection(fields[1])
	}

	seen := make(map[string]int)
	addNode := func(id, label string) {
		if idx, ok := seen[id]; ok {
			if label != "" && d.Nodes[idx].Label == "" {
				d.Nodes[idx].Label = label
			}
			return
		}
		seen[id] = len(d.Nodes)
		d.Nodes = append(d.Nodes, diagram.Node{ID: id, Label: label})
	}

	for lineNo, raw := range body {
		for _, stmt := range splitStatements(raw) {
			if skipFlowchartStatement(stmt) {
				continue
			}
			if err := parseFlowchartStatement(stmt, addNode, d); err != nil {
				d.Invalid = true
				d.ParseError = fmt.Sprintf("line %d: %v", lineNo+2, err)
				return
			}
		}
	}
}

// splitStatements breaks a raw line on Mermaid's ';' statement separator.
func splitStatements(line string) []string {
	var stmts []string
	for _, part := range strings.Split(line, ";") {
		if s := strings.TrimSpace(part); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

func skipFlowchartStatement(stmt string) bool {
	if strings.HasPrefix(stmt, "%%") {
		return true
	}
	word := firstWord(stmt)
	if flowchartDirectives[word] {
		return true
	}
	// Subgraph grouping affects rendering, not graph structure.
	return word == "subgraph" || stmt == "end"
}

// parseFlowchartStatement parses "node (link node)*" chains, registering
// nodes and edges as they appear.
func parseFlowchartStatement(stmt string, addNode func(id, label string), d *diagram.Diagram) error {
	rest := stmt

	id, label, n := matchNode(rest)
	if n == 0 {
		return fmt.Errorf("expected node, got %q", firstWord(rest))
	}
	addNode(id, label)
	prev := id
	rest = strings.TrimSpace(rest[n:])

	for rest != "" {
		edgeLabel, n := matchLink(rest)
		if n == 0 {
			return fmt.Errorf("expected link after %q", prev)
		}
		rest = strings.TrimSpace(rest[n:])

		id, label, n := matchNode(rest)
		if n == 0 {
			return fmt.Errorf("expected node after link from %q", prev)
		}
		addNode(id, label)
		d.Edges = append(d.Edges, diagram.Edge{From: prev, To: id, Label: edgeLabel})
		prev = id
		rest = strings.TrimSpace(rest[n:])
	}
	return nil
}

// matchNode matches a node reference at the start of s and returns its ID,
// label, and consumed byte count (0 when no node matches).
func matchNode(s string) (id, label string, n int) {
	m := nodeRe.FindStringSubmatch(s)
	if m == nil {
		return "", "", 0
	}
	return m[1], stripShape(m[2]), len(m[0])
}

// matchLink matches a link at the start of s and returns its label and
// consumed byte count (0 when no link matches).
func matchLink(s string) (label string, n int) {
	if m := inlineLabelRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), len(m[0])
	}
	m := linkRe.FindStringSubmatch(s)
	if m == nil {
		return "", 0
	}
	label = strings.Trim(m[2], "|")
	return strings.TrimSpace(label), len(m[0])
}

// stripShape removes the shape delimiters around a node label and unquotes
// it. Returns "" for shapeless nodes.
func stripShape(shape string) string {
	if shape == "" {
		return ""
	}
	s := shape
	switch {
	case strings.HasPrefix(s, "(("):
		s = strings.TrimSuffix(strings.TrimPrefix(s, "(("), "))")
	case strings.HasPrefix(s, "["):
		s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	case strings.HasPrefix(s, "("):
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	case strings.HasPrefix(s, "{"):
		s = strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
	case strings.HasPrefix(s, ">"):
		s = strings.TrimSuffix(strings.TrimPrefix(s, ">"), "]")
	}
	return strings.Trim(strings.TrimSpace(s), `"`)
}
