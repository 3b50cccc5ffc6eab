package rules

import (
	"math"
	"testing"

	"github.com/flowlint/flowlint/pkg/diagram"
	"github.com/flowlint/flowlint/pkg/metrics"
)

func TestLayoutHintEmptyDiagram(t *testing.T) {
	conf, alt := layoutHint(&diagram.Diagram{}, metrics.Metrics{})
	if conf != 0 || alt != diagram.DirectionNone {
		t.Errorf("empty diagram: confidence = %f alt = %q, want 0 and none", conf, alt)
	}
}

func TestLayoutHintAlternativeDirection(t *testing.T) {
	m := metrics.Metrics{NodeCount: 4, LongestChain: 2}

	tests := []struct {
		direction diagram.Direction
		wantAlt   diagram.Direction
	}{
		{diagram.DirectionLR, diagram.DirectionTD},
		{diagram.DirectionRL, diagram.DirectionTD},
		{diagram.DirectionTD, diagram.DirectionLR},
		{diagram.DirectionBT, diagram.DirectionLR},
		{diagram.DirectionNone, diagram.DirectionLR},
	}

	for _, tt := range tests {
		_, alt := layoutHint(&diagram.Diagram{Direction: tt.direction}, m)
		if alt != tt.wantAlt {
			t.Errorf("direction %q: alt = %q, want %q", tt.direction, alt, tt.wantAlt)
		}
	}
}

func TestLayoutHintConfidenceWeights(t *testing.T) {
	// Vertical layout, box elongated along the flow axis, full-length chain
	// that exceeds the vertical chain limit: every signal at or near max.
	d := &diagram.Diagram{Direction: diagram.DirectionTD}
	m := metrics.Metrics{
		NodeCount:       13,
		LongestChain:    13,
		EstimatedWidth:  100,
		EstimatedHeight: 900,
	}

	conf, alt := layoutHint(d, m)
	want := 0.40*0.9 + 0.35*1.0 + 0.25*1.0
	if math.Abs(conf-want) > 1e-9 {
		t.Errorf("confidence = %f, want %f", conf, want)
	}
	if alt != diagram.DirectionLR {
		t.Errorf("alt = %q, want LR", alt)
	}
}

func TestLayoutHintMismatchThresholds(t *testing.T) {
	// The mismatch signal uses the per-direction chain limits: 8 for
	// horizontal flows, 12 for vertical ones.
	base := metrics.Metrics{NodeCount: 100, EstimatedWidth: 50, EstimatedHeight: 50}

	horizontal := &diagram.Diagram{Direction: diagram.DirectionLR}
	m := base
	m.LongestChain = 9
	withMismatch, _ := layoutHint(horizontal, m)
	m.LongestChain = 8
	withoutMismatch, _ := layoutHint(horizontal, m)
	if diff := withMismatch - withoutMismatch; math.Abs(diff-weightDirection) > 0.01 {
		t.Errorf("crossing the horizontal chain limit should add the direction weight, added %f", diff)
	}

	vertical := &diagram.Diagram{Direction: diagram.DirectionTD}
	m.LongestChain = 9
	conf9, _ := layoutHint(vertical, m)
	m.LongestChain = 13
	conf13, _ := layoutHint(vertical, m)
	if conf13 <= conf9 {
		t.Error("vertical mismatch should only kick in above 12")
	}
}

func TestCheckLayoutHintThreshold(t *testing.T) {
	d := &diagram.Diagram{Direction: diagram.DirectionTD}
	m := metrics.Metrics{
		NodeCount:       13,
		LongestChain:    13,
		EstimatedWidth:  100,
		EstimatedHeight: 900,
	}
	def := Defaults()["layout-hint"]

	issue := checkLayoutHint(d, m, def)
	if issue == nil {
		t.Fatal("high-confidence shape should fire")
	}
	if issue.Suggestion == "" {
		t.Error("issue should suggest the alternative direction")
	}

	// Raising minConfidence above the score suppresses the rule
	cfg := Merge(Defaults(), Overrides{"layout-hint": {"minConfidence": 0.99}})
	if issue := checkLayoutHint(d, m, cfg["layout-hint"]); issue != nil {
		t.Errorf("confidence below minConfidence should not fire, got %+v", issue)
	}
}

func TestCheckLayoutHintLowConfidence(t *testing.T) {
	// A squat, branchy diagram gives no strong signal in any direction
	d := &diagram.Diagram{Direction: diagram.DirectionTD}
	m := metrics.Metrics{
		NodeCount:       20,
		LongestChain:    3,
		EstimatedWidth:  500,
		EstimatedHeight: 500,
	}
	if issue := checkLayoutHint(d, m, Defaults()["layout-hint"]); issue != nil {
		t.Errorf("low-confidence shape should not fire, got %+v", issue)
	}
}
