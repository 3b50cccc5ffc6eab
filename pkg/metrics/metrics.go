// Package metrics computes structural graph properties of a diagram.
//
// Analyze is a pure function from a [diagram.Diagram] to a [Metrics] value.
// It is total: malformed, empty, cyclic, self-looping, and disconnected
// diagrams all produce well-defined metrics, never an error. Metrics values
// are recomputed per diagram and never shared or cached across diagrams.
package metrics

import "github.com/flowlint/flowlint/pkg/diagram"

// Spacing constants for the rendered-size estimate. These are rough proxies
// for how renderers space nodes, not a layout engine.
const (
	nodeSpacingPx     = 50.0
	charWidthPx       = 8.0
	nodeHeightPx      = 40.0
	verticalSpacingPx = 60.0
)

// longLabelLength is the label length above which a label is recorded in
// [Metrics.LongLabels]. Matches the long-labels rule default.
const longLabelLength = 40

// LongLabel records a node whose label exceeds the length threshold.
type LongLabel struct {
	NodeID string
	Label  string
}

// Metrics holds the derived structural properties of one diagram.
// A Metrics value is immutable after Analyze returns it.
type Metrics struct {
	NodeCount int
	EdgeCount int

	// Density is edges / possible edges for a simple directed graph:
	// E / (N·(N−1)) for N > 1, otherwise 0.
	Density float64

	// CyclomaticComplexity is the graph-theoretic proxy E − N + 2P,
	// clamped at zero. A single connected acyclic diagram scores 1.
	CyclomaticComplexity int

	// Components partitions node IDs into maximal connected subsets,
	// treating edges as undirected. Nodes with no edges form singleton
	// components. ComponentCount == len(Components).
	Components     [][]string
	ComponentCount int

	// LongestChain is the length in nodes of the longest simple directed
	// path found by a single memoized DFS over the edges as given. On
	// cyclic graphs this is a heuristic upper bound, not an exhaustive
	// search (see Analyze).
	LongestChain int

	// EstimatedWidth and EstimatedHeight approximate rendered size in
	// pixels from node counts, label lengths, and fixed spacing constants.
	EstimatedWidth  float64
	EstimatedHeight float64

	// LongLabels lists labels exceeding longLabelLength runes.
	LongLabels []LongLabel

	// ReservedWordHits lists node IDs or labels colliding with the
	// rendering engine's reserved words.
	ReservedWordHits []string
}

// Analyze computes all metrics for a diagram. It never fails: a diagram
// with zero nodes yields identity metrics (zero counts, zero density, zero
// complexity, no chains).
//
// Longest-chain search runs a depth-first traversal with an in-progress
// marker so cycles short-circuit instead of recursing forever. Results are
// memoized across starting nodes, which makes the answer depend on the
// traversal order on cyclic graphs: it is the longest path observed along
// one DFS ordering, not a guaranteed global optimum. Exhaustive search is
// NP-hard and deliberately avoided.
func Analyze(d *diagram.Diagram) Metrics {
	m := Metrics{
		NodeCount: d.NodeCount(),
		EdgeCount: d.EdgeCount(),
	}

	if m.NodeCount > 1 {
		m.Density = float64(m.EdgeCount) / float64(m.NodeCount*(m.NodeCount-1))
	}

	m.Components = connectedComponents(d)
	m.ComponentCount = len(m.Components)

	if complexity := m.EdgeCount - m.NodeCount + 2*m.ComponentCount; complexity > 0 {
		m.CyclomaticComplexity = complexity
	}

	m.LongestChain = longestChain(d)
	m.EstimatedWidth, m.EstimatedHeight = estimateSize(d)

	for _, n := range d.Nodes {
		if len([]rune(n.DisplayLabel())) > longLabelLength {
			m.LongLabels = append(m.LongLabels, LongLabel{NodeID: n.ID, Label: n.DisplayLabel()})
		}
	}
	m.ReservedWordHits = reservedWordHits(d)

	return m
}

// connectedComponents partitions declared node IDs via breadth-first search
// over an undirected view of the edges. Edges referencing undeclared nodes
// contribute nothing to adjacency. Runs in O(N+E).
func connectedComponents(d *diagram.Diagram) [][]string {
	if len(d.Nodes) == 0 {
		return nil
	}

	declared := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		declared[n.ID] = true
	}

	adj := make(map[string][]string, len(d.Nodes))
	for _, e := range d.Edges {
		if !declared[e.From] || !declared[e.To] || e.From == e.To {
			continue
		}
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}

	visited := make(map[string]bool, len(d.Nodes))
	var components [][]string

	// Iterate in declaration order so the partition is deterministic.
	for _, n := range d.Nodes {
		if visited[n.ID] {
			continue
		}
		var component []string
		queue := []string{n.ID}
		visited[n.ID] = true
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			component = append(component, curr)
			for _, next := range adj[curr] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
		components = append(components, component)
	}
	return components
}

// longestChain returns the node count of the longest directed path found by
// one memoized DFS. Nodes on the current DFS stack are marked in-progress;
// revisiting one cuts the path there, guaranteeing termination on cycles.
func longestChain(d *diagram.Diagram) int {
	if len(d.Nodes) == 0 {
		return 0
	}

	declared := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		declared[n.ID] = true
	}

	adj := make(map[string][]string, len(d.Nodes))
	for _, e := range d.Edges {
		if declared[e.From] && declared[e.To] && e.From != e.To {
			adj[e.From] = append(adj[e.From], e.To)
		}
	}

	memo := make(map[string]int, len(d.Nodes))
	inProgress := make(map[string]bool, len(d.Nodes))

	var dfs func(id string) int
	dfs = func(id string) int {
		if inProgress[id] {
			return 0
		}
		if cached, ok := memo[id]; ok {
			return cached
		}
		inProgress[id] = true
		best := 0
		for _, next := range adj[id] {
			if length := dfs(next); length > best {
				best = length
			}
		}
		inProgress[id] = false
		memo[id] = best + 1
		return best + 1
	}

	longest := 0
	for _, n := range d.Nodes {
		if length := dfs(n.ID); length > longest {
			longest = length
		}
	}
	return longest
}

// estimateSize derives a rough rendered-size estimate from node and label
// counts: width grows with node spacing plus label text, height with node
// height plus vertical spacing.
func estimateSize(d *diagram.Diagram) (width, height float64) {
	n := float64(len(d.Nodes))
	width = n * nodeSpacingPx
	for _, node := range d.Nodes {
		width += float64(len([]rune(node.DisplayLabel()))) * charWidthPx
	}
	height = n * (nodeHeightPx + verticalSpacingPx)
	return width, height
}
