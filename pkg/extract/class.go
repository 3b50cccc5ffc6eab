package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/flowlint/flowlint/pkg/diagram"
)

// Class-diagram grammar fragments.
var (
	classDeclRe = regexp.MustCompile(`^class\s+([A-Za-z_][A-Za-z0-9_]*)\s*(\{)?\s*$`)

	// A "1" <|-- "many" B : label
	classRelRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*(?:"[^"]*"\s*)?(<\|--|<\|\.\.|\*--|o--|-->|\.\.>|\.\.\|>|--\|>|--|\.\.)\s*(?:"[^"]*"\s*)?([A-Za-z_][A-Za-z0-9_]*)\s*(?::\s*(.+))?$`)

	// Foo : +method() or Foo : -field
	classMemberRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*:\s*.+$`)
)

// leftArrows are relation tokens whose head points at the left operand, so
// the directed edge runs right to left.
var leftArrows = map[string]bool{
	"<|--": true,
	"<|..": true,
}

// parseClassDiagram fills d from a classDiagram body. Classes become nodes
// and relationships become edges; member declarations only register the
// owning class.
func parseClassDiagram(d *diagram.Diagram, body []string) {
	d.Kind = diagram.KindClass
	d.Direction = diagram.DirectionTD // Mermaid renders class diagrams top-down by default

	seen := make(map[string]bool)
	addNode := func(id string) {
		if !seen[id] {
			seen[id] = true
			d.Nodes = append(d.Nodes, diagram.Node{ID: id, Label: id})
		}
	}

	inClassBody := false
	for lineNo, raw := range body {
		stmt := strings.TrimSpace(raw)
		if stmt == "" || strings.HasPrefix(stmt, "%%") {
			continue
		}
		if inClassBody {
			if stmt == "}" {
				inClassBody = false
			}
			continue
		}

		switch {
		case strings.HasPrefix(stmt, "direction "):
			d.Direction = diagram.ParseDirection(strings.TrimSpace(strings.TrimPrefix(stmt, "direction ")))
		case classDeclRe.MatchString(stmt):
			m := classDeclRe.FindStringSubmatch(stmt)
			addNode(m[1])
			inClassBody = m[2] == "{"
		case classRelRe.MatchString(stmt):
			m := classRelRe.FindStringSubmatch(stmt)
			from, arrow, to, label := m[1], m[2], m[3], m[4]
			addNode(from)
			addNode(to)
			if leftArrows[arrow] {
				from, to = to, from
			}
			d.Edges = append(d.Edges, diagram.Edge{From: from, To: to, Label: strings.TrimSpace(label)})
		case classMemberRe.MatchString(stmt):
			addNode(classMemberRe.FindStringSubmatch(stmt)[1])
		default:
			d.Invalid = true
			d.ParseError = fmt.Sprintf("line %d: unrecognized class statement %q", lineNo+2, firstWord(stmt))
			return
		}
	}
}
