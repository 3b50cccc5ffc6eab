package rules

import (
	"fmt"
	"strings"

	"github.com/flowlint/flowlint/pkg/diagram"
	"github.com/flowlint/flowlint/pkg/metrics"
)

// registry holds every rule in evaluation order. The order is fixed: issue
// lists are assembled in registration order, not severity order, so output
// stays stable across runs.
var registry = []Rule{
	{
		ID:          "syntax-validation",
		Description: "Diagram source must parse into a structurally valid diagram",
		Defaults:    RuleConfig{Enabled: true, Severity: SeverityError},
		Check:       checkSyntaxValidation,
	},
	{
		ID:          "max-edges",
		Description: "Edge count above the threshold overwhelms readers",
		Citation:    "Moody (2009), The 'Physics' of Notations, IEEE TSE 35(6)",
		Defaults:    RuleConfig{Enabled: true, Severity: SeverityError, Threshold: 100},
		Check:       checkMaxEdges,
	},
	{
		ID:          "max-nodes-high-density",
		Description: "Node count limit for densely connected diagrams",
		Citation:    "Yoghourdjian et al. (2018), Exploring the limits of complexity, IEEE PacificVis",
		Defaults: RuleConfig{
			Enabled: true, Severity: SeverityWarning, Threshold: 50,
			Options: map[string]any{"densityThreshold": 0.3},
		},
		Check: checkMaxNodesHighDensity,
	},
	{
		ID:          "max-nodes-low-density",
		Description: "Node count limit for sparsely connected diagrams",
		Citation:    "Yoghourdjian et al. (2018), Exploring the limits of complexity, IEEE PacificVis",
		Defaults: RuleConfig{
			Enabled: true, Severity: SeverityWarning, Threshold: 100,
			Options: map[string]any{"densityThreshold": 0.3},
		},
		Check: checkMaxNodesLowDensity,
	},
	{
		ID:          "cyclomatic-complexity",
		Description: "Graph cyclomatic complexity above the threshold",
		Citation:    "McCabe (1976), A Complexity Measure, IEEE TSE 2(4)",
		Defaults:    RuleConfig{Enabled: true, Severity: SeverityWarning, Threshold: 10},
		Check:       checkCyclomaticComplexity,
	},
	{
		ID:          "layout-hint",
		Description: "Declared layout direction looks suboptimal for the diagram's shape",
		Citation:    "Purchase (1997), Which aesthetic has the greatest effect on human understanding?",
		Defaults:    RuleConfig{Enabled: true, Severity: SeverityWarning, Threshold: 0.6},
		Check:       checkLayoutHint,
	},
	{
		ID:          "horizontal-chain-too-long",
		Description: "Longest node chain exceeds the per-direction threshold",
		Citation:    "Ware et al. (2002), Cognitive measurements of graph aesthetics, Information Visualization 1(2)",
		Defaults: RuleConfig{
			Enabled: true, Severity: SeverityWarning,
			Options: map[string]any{"thresholds": map[string]float64{"LR": 8, "TD": 12}},
		},
		Check: checkChainTooLong,
	},
	{
		ID:          "horizontal-width-readability",
		Description: "Estimated rendered width crosses readability tiers",
		Citation:    "Ware et al. (2002), Cognitive measurements of graph aesthetics, Information Visualization 1(2)",
		Defaults: RuleConfig{
			Enabled: true, Severity: SeverityWarning,
			Options: map[string]any{"tiers": TierTable{SeverityInfo: 1200, SeverityWarning: 1500, SeverityError: 2500}},
		},
		Check: checkWidthReadability,
	},
	{
		ID:          "vertical-height-readability",
		Description: "Estimated rendered height crosses readability tiers",
		Citation:    "Ware et al. (2002), Cognitive measurements of graph aesthetics, Information Visualization 1(2)",
		Defaults: RuleConfig{
			Enabled: true, Severity: SeverityWarning,
			Options: map[string]any{"tiers": TierTable{SeverityInfo: 800, SeverityWarning: 1200, SeverityError: 2000}},
		},
		Check: checkHeightReadability,
	},
	{
		ID:          "class-diagram-width",
		Description: "Class-diagram width crosses readability tiers",
		Citation:    "Stoerrle (2012), On the impact of layout quality to understanding UML diagrams",
		Defaults: RuleConfig{
			Enabled: true, Severity: SeverityWarning,
			Options: map[string]any{"tiers": TierTable{SeverityInfo: 1500, SeverityWarning: 2000, SeverityError: 2500}},
		},
		Check: checkClassDiagramWidth,
	},
	{
		ID:          "long-labels",
		Description: "Node labels longer than the threshold strain scanning",
		Citation:    "Wong (2011), Points of view: Text labels, Nature Methods 8(8)",
		Defaults:    RuleConfig{Enabled: true, Severity: SeverityWarning, Threshold: 40},
		Check:       checkLongLabels,
	},
	{
		ID:          "reserved-words",
		Description: "Node IDs or labels collide with rendering-engine keywords",
		Defaults:    RuleConfig{Enabled: true, Severity: SeverityWarning},
		Check:       checkReservedWords,
	},
	{
		ID:          "disconnected-components",
		Description: "Too many disconnected subgraphs in one diagram",
		Citation:    "Moody (2009), The 'Physics' of Notations, IEEE TSE 35(6)",
		Defaults:    RuleConfig{Enabled: true, Severity: SeverityWarning, Threshold: 2},
		Check:       checkDisconnectedComponents,
	},
}

func checkSyntaxValidation(d *diagram.Diagram, _ metrics.Metrics, cfg RuleConfig) *Issue {
	if !d.Invalid {
		return nil
	}
	msg := "diagram failed to parse"
	if d.ParseError != "" {
		msg = fmt.Sprintf("diagram failed to parse: %s", d.ParseError)
	}
	return &Issue{
		Severity:   cfg.Severity,
		Message:    msg,
		Suggestion: "fix the diagram syntax before addressing other findings",
	}
}

func checkMaxEdges(_ *diagram.Diagram, m metrics.Metrics, cfg RuleConfig) *Issue {
	limit := int(cfg.Threshold)
	if m.EdgeCount <= limit {
		return nil
	}
	return &Issue{
		Severity:   cfg.Severity,
		Message:    fmt.Sprintf("diagram has %d edges (limit %d)", m.EdgeCount, limit),
		Suggestion: "split the diagram into smaller, linked diagrams",
	}
}

// The two node-count rules are mutually exclusive per evaluation: the shared
// density threshold decides which one may fire, so one diagram is never
// reported twice for the same node-count condition.

func checkMaxNodesHighDensity(_ *diagram.Diagram, m metrics.Metrics, cfg RuleConfig) *Issue {
	density := cfg.floatOption("densityThreshold", 0.3)
	limit := int(cfg.Threshold)
	if m.Density < density || m.NodeCount <= limit {
		return nil
	}
	return &Issue{
		Severity:   cfg.Severity,
		Message:    fmt.Sprintf("diagram has %d nodes at density %.2f (limit %d for density >= %.2f)", m.NodeCount, m.Density, limit, density),
		Suggestion: "group related nodes into subgraphs or split the diagram",
	}
}

func checkMaxNodesLowDensity(_ *diagram.Diagram, m metrics.Metrics, cfg RuleConfig) *Issue {
	density := cfg.floatOption("densityThreshold", 0.3)
	limit := int(cfg.Threshold)
	if m.Density >= density || m.NodeCount <= limit {
		return nil
	}
	return &Issue{
		Severity:   cfg.Severity,
		Message:    fmt.Sprintf("diagram has %d nodes (limit %d for density < %.2f)", m.NodeCount, limit, density),
		Suggestion: "group related nodes into subgraphs or split the diagram",
	}
}

func checkCyclomaticComplexity(_ *diagram.Diagram, m metrics.Metrics, cfg RuleConfig) *Issue {
	limit := int(cfg.Threshold)
	if m.CyclomaticComplexity <= limit {
		return nil
	}
	return &Issue{
		Severity:   cfg.Severity,
		Message:    fmt.Sprintf("cyclomatic complexity %d exceeds %d", m.CyclomaticComplexity, limit),
		Suggestion: "reduce branching or break the diagram into stages",
	}
}

func checkChainTooLong(d *diagram.Diagram, m metrics.Metrics, cfg RuleConfig) *Issue {
	thresholds := cfg.directionOption("thresholds", map[string]float64{"LR": 8, "TD": 12})
	key := "TD"
	if d.Direction.IsHorizontal() {
		key = "LR"
	}
	limit, ok := thresholds[key]
	if !ok || float64(m.LongestChain) <= limit {
		return nil
	}
	return &Issue{
		Severity:   cfg.Severity,
		Message:    fmt.Sprintf("longest chain is %d nodes (limit %d for %s layouts)", m.LongestChain, int(limit), key),
		Suggestion: "break the chain with intermediate groupings or a linked diagram",
	}
}

func checkWidthReadability(_ *diagram.Diagram, m metrics.Metrics, cfg RuleConfig) *Issue {
	tiers := cfg.tierOption("tiers", TierTable{SeverityInfo: 1200, SeverityWarning: 1500, SeverityError: 2500})
	sev, fired := SelectTier(m.EstimatedWidth, tiers)
	if !fired {
		return nil
	}
	return &Issue{
		Severity:   sev,
		Message:    fmt.Sprintf("estimated width %.0fpx exceeds the %s readability tier", m.EstimatedWidth, sev),
		Suggestion: "shorten labels or split the diagram to reduce horizontal sprawl",
	}
}

func checkHeightReadability(_ *diagram.Diagram, m metrics.Metrics, cfg RuleConfig) *Issue {
	tiers := cfg.tierOption("tiers", TierTable{SeverityInfo: 800, SeverityWarning: 1200, SeverityError: 2000})
	sev, fired := SelectTier(m.EstimatedHeight, tiers)
	if !fired {
		return nil
	}
	return &Issue{
		Severity:   sev,
		Message:    fmt.Sprintf("estimated height %.0fpx exceeds the %s readability tier", m.EstimatedHeight, sev),
		Suggestion: "split the diagram or reduce the number of sequential steps",
	}
}

func checkClassDiagramWidth(d *diagram.Diagram, m metrics.Metrics, cfg RuleConfig) *Issue {
	if d.Kind != diagram.KindClass {
		return nil
	}
	tiers := cfg.tierOption("tiers", TierTable{SeverityInfo: 1500, SeverityWarning: 2000, SeverityError: 2500})
	sev, fired := SelectTier(m.EstimatedWidth, tiers)
	if !fired {
		return nil
	}
	return &Issue{
		Severity:   sev,
		Message:    fmt.Sprintf("class diagram estimated width %.0fpx exceeds the %s readability tier", m.EstimatedWidth, sev),
		Suggestion: "split the class diagram by package or responsibility",
	}
}

func checkLongLabels(d *diagram.Diagram, _ metrics.Metrics, cfg RuleConfig) *Issue {
	limit := int(cfg.Threshold)
	var offenders []string
	for _, n := range d.Nodes {
		if len([]rune(n.DisplayLabel())) > limit {
			offenders = append(offenders, n.ID)
		}
	}
	if len(offenders) == 0 {
		return nil
	}
	return &Issue{
		Severity:   cfg.Severity,
		Message:    fmt.Sprintf("%d label(s) longer than %d characters (nodes: %s)", len(offenders), limit, strings.Join(offenders, ", ")),
		Suggestion: "shorten labels; move detail into surrounding prose",
	}
}

func checkReservedWords(_ *diagram.Diagram, m metrics.Metrics, cfg RuleConfig) *Issue {
	if len(m.ReservedWordHits) == 0 {
		return nil
	}
	return &Issue{
		Severity:   cfg.Severity,
		Message:    fmt.Sprintf("reserved word(s) used as node ID or label: %s", strings.Join(m.ReservedWordHits, ", ")),
		Suggestion: "rename the offending nodes; reserved words break rendering",
	}
}

func checkDisconnectedComponents(_ *diagram.Diagram, m metrics.Metrics, cfg RuleConfig) *Issue {
	limit := int(cfg.Threshold)
	if m.ComponentCount <= limit {
		return nil
	}
	return &Issue{
		Severity:   cfg.Severity,
		Message:    fmt.Sprintf("diagram has %d disconnected components (limit %d)", m.ComponentCount, limit),
		Suggestion: "split unrelated subgraphs into separate diagrams",
	}
}
