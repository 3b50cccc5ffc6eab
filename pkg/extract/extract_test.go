package extract

import (
	"strings"
	"testing"

	"github.com/flowlint/flowlint/pkg/diagram"
)

func TestParseFlowchartBasic(t *testing.T) {
	src := `flowchart LR
    A[Start] --> B{Decide}
    B --> C[Done]`

	d := Parse(src, "test.mmd", 1)
	if d.Invalid {
		t.Fatalf("unexpected parse error: %s", d.ParseError)
	}
	if d.Kind != diagram.KindFlowchart {
		t.Errorf("kind = %q, want flowchart", d.Kind)
	}
	if d.Direction != diagram.DirectionLR {
		t.Errorf("direction = %q, want LR", d.Direction)
	}
	if d.NodeCount() != 3 {
		t.Fatalf("nodes = %d, want 3: %+v", d.NodeCount(), d.Nodes)
	}
	if d.Nodes[0].Label != "Start" || d.Nodes[1].Label != "Decide" || d.Nodes[2].Label != "Done" {
		t.Errorf("labels not captured: %+v", d.Nodes)
	}
	if d.EdgeCount() != 2 {
		t.Fatalf("edges = %d, want 2: %+v", d.EdgeCount(), d.Edges)
	}
	if d.Edges[0].From != "A" || d.Edges[0].To != "B" {
		t.Errorf("edge 0 = %+v, want A->B", d.Edges[0])
	}
}

func TestParseGraphHeaderAlias(t *testing.T) {
	d := Parse("graph TD\n  A --> B", "test.mmd", 1)
	if d.Invalid {
		t.Fatalf("unexpected parse error: %s", d.ParseError)
	}
	if d.Kind != diagram.KindFlowchart || d.Direction != diagram.DirectionTD {
		t.Errorf("got kind %q direction %q", d.Kind, d.Direction)
	}
}

func TestParseDirectionTBNormalized(t *testing.T) {
	d := Parse("flowchart TB\n  A --> B", "test.mmd", 1)
	if d.Direction != diagram.DirectionTD {
		t.Errorf("TB should normalize to TD, got %q", d.Direction)
	}
}

func TestParseFlowchartNoDirection(t *testing.T) {
	d := Parse("flowchart\n  A --> B", "test.mmd", 1)
	if d.Invalid {
		t.Fatalf("unexpected parse error: %s", d.ParseError)
	}
	if d.Direction != diagram.DirectionNone {
		t.Errorf("direction = %q, want none", d.Direction)
	}
}

func TestParseFlowchartNodeShapes(t *testing.T) {
	tests := []struct {
		name      string
		stmt      string
		wantLabel string
	}{
		{"square", `A[text]`, "text"},
		{"round", `A(text)`, "text"},
		{"circle", `A((text))`, "text"},
		{"diamond", `A{text}`, "text"},
		{"flag", `A>text]`, "text"},
		{"quoted", `A["quoted text"]`, "quoted text"},
		{"bare", `A`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Parse("flowchart TD\n  "+tt.stmt, "test.mmd", 1)
			if d.Invalid {
				t.Fatalf("unexpected parse error: %s", d.ParseError)
			}
			if d.NodeCount() != 1 {
				t.Fatalf("nodes = %d, want 1", d.NodeCount())
			}
			if d.Nodes[0].ID != "A" || d.Nodes[0].Label != tt.wantLabel {
				t.Errorf("node = %+v, want ID A label %q", d.Nodes[0], tt.wantLabel)
			}
		})
	}
}

func TestParseFlowchartLinkVariants(t *testing.T) {
	tests := []struct {
		name      string
		stmt      string
		wantLabel string
	}{
		{"arrow", "A --> B", ""},
		{"open", "A --- B", ""},
		{"dotted", "A -.-> B", ""},
		{"thick", "A ==> B", ""},
		{"bidirectional", "A <--> B", ""},
		{"pipe label", "A -->|yes| B", "yes"},
		{"inline label", "A -- no --> B", "no"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Parse("flowchart TD\n  "+tt.stmt, "test.mmd", 1)
			if d.Invalid {
				t.Fatalf("unexpected parse error: %s", d.ParseError)
			}
			if d.EdgeCount() != 1 {
				t.Fatalf("edges = %d, want 1: %+v", d.EdgeCount(), d.Edges)
			}
			e := d.Edges[0]
			if e.From != "A" || e.To != "B" || e.Label != tt.wantLabel {
				t.Errorf("edge = %+v, want A->B label %q", e, tt.wantLabel)
			}
		})
	}
}

func TestParseFlowchartChain(t *testing.T) {
	d := Parse("flowchart LR\n  A --> B --> C --> D", "test.mmd", 1)
	if d.Invalid {
		t.Fatalf("unexpected parse error: %s", d.ParseError)
	}
	if d.NodeCount() != 4 || d.EdgeCount() != 3 {
		t.Errorf("got %d nodes %d edges, want 4 and 3", d.NodeCount(), d.EdgeCount())
	}
}

func TestParseFlowchartSemicolonStatements(t *testing.T) {
	d := Parse("graph TD; A-->B; B-->C;", "test.mmd", 1)
	if d.Invalid {
		t.Fatalf("unexpected parse error: %s", d.ParseError)
	}
	if d.NodeCount() != 3 || d.EdgeCount() != 2 {
		t.Errorf("got %d nodes %d edges, want 3 and 2", d.NodeCount(), d.EdgeCount())
	}
}

func TestParseFlowchartLabelBackfill(t *testing.T) {
	// A referenced bare first, labeled later: the label sticks
	src := `flowchart TD
  A --> B
  A[Start]`
	d := Parse(src, "test.mmd", 1)
	if d.Invalid {
		t.Fatalf("unexpected parse error: %s", d.ParseError)
	}
	if d.Nodes[0].Label != "Start" {
		t.Errorf("label = %q, want Start", d.Nodes[0].Label)
	}
	if d.NodeCount() != 2 {
		t.Errorf("nodes = %d, want 2 (no duplicate for A)", d.NodeCount())
	}
}

func TestParseFlowchartSkipsDirectives(t *testing.T) {
	src := `flowchart TD
  A --> B
  %% a comment
  style A fill:#f9f
  classDef green fill:#9f6
  click A callback
  linkStyle 0 stroke:#ff3
  subgraph group1
  B --> C
  end`
	d := Parse(src, "test.mmd", 1)
	if d.Invalid {
		t.Fatalf("unexpected parse error: %s", d.ParseError)
	}
	if d.NodeCount() != 3 || d.EdgeCount() != 2 {
		t.Errorf("got %d nodes %d edges, want 3 and 2", d.NodeCount(), d.EdgeCount())
	}
}

func TestParseFlowchartHyphenatedIDs(t *testing.T) {
	d := Parse("flowchart LR\n  api-server --> auth-db", "test.mmd", 1)
	if d.Invalid {
		t.Fatalf("unexpected parse error: %s", d.ParseError)
	}
	if d.NodeCount() != 2 {
		t.Fatalf("nodes = %d, want 2: %+v", d.NodeCount(), d.Nodes)
	}
	if d.Nodes[0].ID != "api-server" || d.Nodes[1].ID != "auth-db" {
		t.Errorf("IDs = %q, %q", d.Nodes[0].ID, d.Nodes[1].ID)
	}
}

func TestParseFlowchartInvalidStatement(t *testing.T) {
	d := Parse("flowchart TD\n  A --> ", "test.mmd", 1)
	if !d.Invalid {
		t.Fatal("dangling link should mark the diagram invalid")
	}
	if !strings.Contains(d.ParseError, "line 2") {
		t.Errorf("parse error should cite the line, got %q", d.ParseError)
	}
}

func TestParseUnrecognizedHeader(t *testing.T) {
	d := Parse("sequenceDiagram\n  A->>B: hi", "test.mmd", 1)
	if !d.Invalid {
		t.Fatal("unknown diagram type should be invalid")
	}
	if !strings.Contains(d.ParseError, "sequenceDiagram") {
		t.Errorf("parse error should name the type, got %q", d.ParseError)
	}
}

func TestParseEmptySource(t *testing.T) {
	d := Parse("", "test.mmd", 1)
	if !d.Invalid || d.ParseError != "empty diagram" {
		t.Errorf("empty source should be invalid, got %+v", d)
	}
}

func TestParseSkipsLeadingComments(t *testing.T) {
	d := Parse("%% generated\n\nflowchart TD\n  A --> B", "test.mmd", 1)
	if d.Invalid {
		t.Fatalf("unexpected parse error: %s", d.ParseError)
	}
	if d.Kind != diagram.KindFlowchart {
		t.Errorf("kind = %q, want flowchart", d.Kind)
	}
}

func TestParseClassDiagram(t *testing.T) {
	src := `classDiagram
  class Animal {
    +String name
    +eat()
  }
  Animal <|-- Dog
  Animal <|-- Cat
  Owner "1" --> "many" Dog : walks`

	d := Parse(src, "test.mmd", 1)
	if d.Invalid {
		t.Fatalf("unexpected parse error: %s", d.ParseError)
	}
	if d.Kind != diagram.KindClass {
		t.Errorf("kind = %q, want class", d.Kind)
	}
	if d.Direction != diagram.DirectionTD {
		t.Errorf("direction = %q, want TD default", d.Direction)
	}
	if d.NodeCount() != 4 {
		t.Fatalf("nodes = %d, want 4: %+v", d.NodeCount(), d.Nodes)
	}
	if d.EdgeCount() != 3 {
		t.Fatalf("edges = %d, want 3: %+v", d.EdgeCount(), d.Edges)
	}
	// Inheritance arrowheads point left, so the edge runs child to parent
	if d.Edges[0].From != "Dog" || d.Edges[0].To != "Animal" {
		t.Errorf("edge 0 = %+v, want Dog->Animal", d.Edges[0])
	}
	if d.Edges[2].Label != "walks" {
		t.Errorf("relation label = %q, want walks", d.Edges[2].Label)
	}
}

func TestParseClassDiagramMemberLine(t *testing.T) {
	d := Parse("classDiagram\n  Foo : +bar()", "test.mmd", 1)
	if d.Invalid {
		t.Fatalf("unexpected parse error: %s", d.ParseError)
	}
	if d.NodeCount() != 1 || d.Nodes[0].ID != "Foo" {
		t.Errorf("nodes = %+v, want just Foo", d.Nodes)
	}
}

func TestParseClassDiagramDirection(t *testing.T) {
	d := Parse("classDiagram\n  direction LR\n  A --> B", "test.mmd", 1)
	if d.Invalid {
		t.Fatalf("unexpected parse error: %s", d.ParseError)
	}
	if d.Direction != diagram.DirectionLR {
		t.Errorf("direction = %q, want LR", d.Direction)
	}
}

func TestParseClassDiagramInvalid(t *testing.T) {
	d := Parse("classDiagram\n  ???", "test.mmd", 1)
	if !d.Invalid {
		t.Fatal("garbage statement should mark the diagram invalid")
	}
	if !strings.Contains(d.ParseError, "line 2") {
		t.Errorf("parse error should cite the line, got %q", d.ParseError)
	}
}

func TestExtractStandaloneFile(t *testing.T) {
	ds := Extract("diagram.mmd", []byte("flowchart TD\n  A --> B"))
	if len(ds) != 1 {
		t.Fatalf("diagrams = %d, want 1", len(ds))
	}
	if ds[0].Line != 1 || ds[0].FilePath != "diagram.mmd" {
		t.Errorf("location = %s:%d, want diagram.mmd:1", ds[0].FilePath, ds[0].Line)
	}
}

func TestExtractMarkdownFences(t *testing.T) {
	src := `# Title

Some prose.

` + "```mermaid" + `
flowchart TD
  A --> B
` + "```" + `

More prose.

` + "~~~mermaid" + `
classDiagram
  Animal <|-- Dog
` + "~~~" + `

` + "```go" + `
func main() {}
` + "```" + `
`
	ds := Extract("doc.md", []byte(src))
	if len(ds) != 2 {
		t.Fatalf("diagrams = %d, want 2 (the go fence is not a diagram)", len(ds))
	}
	if ds[0].Kind != diagram.KindFlowchart || ds[1].Kind != diagram.KindClass {
		t.Errorf("kinds = %q, %q", ds[0].Kind, ds[1].Kind)
	}
	// Body starts on the line after the fence opener (1-based)
	if ds[0].Line != 6 {
		t.Errorf("first diagram line = %d, want 6", ds[0].Line)
	}
}

func TestExtractMarkdownNoDiagrams(t *testing.T) {
	ds := Extract("doc.md", []byte("# Nothing here\n\njust prose\n"))
	if len(ds) != 0 {
		t.Errorf("diagrams = %d, want 0", len(ds))
	}
}

func TestExtractMarkdownUnterminatedFence(t *testing.T) {
	src := "```mermaid\nflowchart TD\n  A --> B"
	ds := Extract("doc.md", []byte(src))
	if len(ds) != 1 {
		t.Fatalf("diagrams = %d, want 1", len(ds))
	}
	if ds[0].Invalid {
		t.Errorf("unterminated fence body still parses, got %q", ds[0].ParseError)
	}
}

func TestExtractMarkdownInvalidBlockStillReported(t *testing.T) {
	src := "```mermaid\nnot a diagram\n```\n"
	ds := Extract("doc.md", []byte(src))
	if len(ds) != 1 {
		t.Fatalf("diagrams = %d, want 1", len(ds))
	}
	if !ds[0].Invalid {
		t.Error("unparsable block should yield an invalid diagram, not be dropped")
	}
}
