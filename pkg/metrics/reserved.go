package metrics

import (
	"strings"

	"github.com/flowlint/flowlint/pkg/diagram"
)

// reservedWords is the closed set of identifiers the Mermaid rendering
// engine treats as keywords. Using one as a bare node ID or label breaks or
// silently alters rendering (the classic case is a node called "end").
var reservedWords = map[string]bool{
	"graph":     true,
	"flowchart": true,
	"subgraph":  true,
	"end":       true,
	"direction": true,
	"style":     true,
	"classdef":  true,
	"class":     true,
	"click":     true,
	"linkstyle": true,
	"call":      true,
	"href":      true,
	"default":   true,
}

// IsReservedWord reports whether s collides with the rendering engine's
// reserved-word list. Comparison is case-insensitive.
func IsReservedWord(s string) bool {
	return reservedWords[strings.ToLower(s)]
}

// reservedWordHits collects node IDs and labels that collide with the
// reserved set. Each offending string is reported once, in declaration
// order.
func reservedWordHits(d *diagram.Diagram) []string {
	var hits []string
	seen := make(map[string]bool)
	record := func(s string) {
		key := strings.ToLower(s)
		if IsReservedWord(s) && !seen[key] {
			seen[key] = true
			hits = append(hits, s)
		}
	}
	for _, n := range d.Nodes {
		record(n.ID)
		if n.Label != "" {
			record(n.Label)
		}
	}
	return hits
}
