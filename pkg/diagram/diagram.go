// Package diagram defines the structural model of a parsed diagram.
//
// A Diagram is the contract between the extractor (which parses raw source
// text) and the analysis core (which computes metrics and evaluates rules
// over it). The model is deliberately minimal: nodes, edges, a layout
// direction, and enough source context to cite findings back to a file.
//
// Diagrams are read-only after construction. The analysis core never
// mutates a Diagram, which is what allows rule checks to run either
// sequentially or concurrently over the same value.
package diagram

// Kind identifies the diagram type. Some rules apply only to specific kinds.
type Kind string

// Supported diagram kinds.
const (
	KindFlowchart Kind = "flowchart"
	KindClass     Kind = "classDiagram"
)

// Direction is the declared layout direction of a diagram.
type Direction string

// The closed set of layout directions. DirectionNone means the diagram
// declared no direction.
const (
	DirectionNone Direction = ""
	DirectionLR   Direction = "LR" // left to right
	DirectionRL   Direction = "RL" // right to left
	DirectionTD   Direction = "TD" // top down
	DirectionBT   Direction = "BT" // bottom up
)

// ParseDirection normalizes a direction token from diagram source.
// "TB" is accepted as an alias for "TD". Unknown tokens map to DirectionNone.
func ParseDirection(s string) Direction {
	switch s {
	case "LR":
		return DirectionLR
	case "RL":
		return DirectionRL
	case "TD", "TB":
		return DirectionTD
	case "BT":
		return DirectionBT
	}
	return DirectionNone
}

// IsHorizontal reports whether the direction lays nodes out left-to-right
// or right-to-left.
func (d Direction) IsHorizontal() bool {
	return d == DirectionLR || d == DirectionRL
}

// IsVertical reports whether the direction lays nodes out top-down or
// bottom-up.
func (d Direction) IsVertical() bool {
	return d == DirectionTD || d == DirectionBT
}

// Node is a vertex in the diagram with a display label.
// IDs are unique within one diagram.
type Node struct {
	ID    string
	Label string
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed connection between two node IDs.
// Endpoints reference nodes by value and may dangle: an edge whose From or
// To has no matching Node entry is accepted and must not break analysis.
type Edge struct {
	From  string
	To    string
	Label string
}

// Diagram is the structural model of one parsed source unit.
//
// The zero value is a valid (empty) diagram. Extraction failures are
// represented in-band: a diagram that could not be parsed carries
// Invalid=true and a ParseError message, and is still a legal input to the
// analysis core (the syntax-validation rule surfaces it as an issue).
type Diagram struct {
	Kind      Kind
	Direction Direction
	Nodes     []Node
	Edges     []Edge

	// SourceText is the raw diagram body, FilePath the originating file,
	// and Line the 1-based line where the diagram starts. All three exist
	// for issue citation only.
	SourceText string
	FilePath   string
	Line       int

	// Invalid marks a diagram that failed structural parsing.
	// ParseError holds the parser's message when Invalid is true.
	Invalid    bool
	ParseError string
}

// NodeCount returns the number of nodes.
func (d *Diagram) NodeCount() int { return len(d.Nodes) }

// EdgeCount returns the number of edges.
func (d *Diagram) EdgeCount() int { return len(d.Edges) }

// NodeIDs returns the node IDs in declaration order.
func (d *Diagram) NodeIDs() []string {
	ids := make([]string, len(d.Nodes))
	for i, n := range d.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// HasNode reports whether a node with the given ID is declared.
func (d *Diagram) HasNode(id string) bool {
	for _, n := range d.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}
