package rules

import (
	"fmt"

	"github.com/flowlint/flowlint/pkg/diagram"
	"github.com/flowlint/flowlint/pkg/metrics"
)

// Weights for the layout-hint confidence score. The three signals are
// normalized to [0,1] before weighting, so the combined score is too.
const (
	weightAspect    = 0.40
	weightChain     = 0.35
	weightDirection = 0.25
)

// layoutHint scores how confidently the declared direction looks wrong for
// the diagram's shape, and names the alternative direction to suggest.
//
// Signals:
//   - aspect: how elongated the estimated bounding box is along the current
//     flow axis (0.5 means square, 1.0 means fully elongated).
//   - chain: longest chain relative to node count; long chains stretch a
//     diagram along its flow axis.
//   - direction mismatch: 1 when the longest chain already exceeds the
//     chain-length threshold for the current direction, 0 otherwise.
//
// A diagram with no declared direction is treated as top-down, the
// rendering engine's default.
func layoutHint(d *diagram.Diagram, m metrics.Metrics) (confidence float64, alt diagram.Direction) {
	if m.NodeCount == 0 {
		return 0, diagram.DirectionNone
	}

	current := d.Direction
	if current == diagram.DirectionNone {
		current = diagram.DirectionTD
	}
	if current.IsHorizontal() {
		alt = diagram.DirectionTD
	} else {
		alt = diagram.DirectionLR
	}

	aspect := 0.0
	if total := m.EstimatedWidth + m.EstimatedHeight; total > 0 {
		if current.IsHorizontal() {
			aspect = m.EstimatedWidth / total
		} else {
			aspect = m.EstimatedHeight / total
		}
	}

	chain := float64(m.LongestChain) / float64(m.NodeCount)

	mismatch := 0.0
	if current.IsHorizontal() && m.LongestChain > 8 {
		mismatch = 1.0
	}
	if !current.IsHorizontal() && m.LongestChain > 12 {
		mismatch = 1.0
	}

	confidence = weightAspect*aspect + weightChain*chain + weightDirection*mismatch
	return confidence, alt
}

func checkLayoutHint(d *diagram.Diagram, m metrics.Metrics, cfg RuleConfig) *Issue {
	minConfidence := cfg.floatOption("minConfidence", cfg.Threshold)
	confidence, alt := layoutHint(d, m)
	if alt == diagram.DirectionNone || confidence < minConfidence {
		return nil
	}
	return &Issue{
		Severity:   cfg.Severity,
		Message:    fmt.Sprintf("declared direction looks suboptimal for this shape (confidence %.2f)", confidence),
		Suggestion: fmt.Sprintf("consider direction %s", alt),
	}
}
