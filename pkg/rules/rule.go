// Package rules implements the rule registry, configuration merging, and the
// evaluation engine that turns diagram metrics into lint issues.
//
// A rule is data plus a pure function: an ID, a default configuration, and a
// check that maps (Diagram, Metrics, RuleConfig) to at most one [Issue].
// Rules never mutate their inputs and carry no shared state, so they can be
// evaluated sequentially or concurrently; the engine always assembles
// results in registration order for deterministic output.
package rules

import (
	"github.com/flowlint/flowlint/pkg/diagram"
	"github.com/flowlint/flowlint/pkg/metrics"
)

// Severity classifies how strongly an issue should be surfaced.
type Severity string

// Severity levels, ordered info < warning < error.
const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Rank returns the numeric ordering of a severity (info=0, warning=1,
// error=2). Unknown severities rank below info.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	}
	return -1
}

// ParseSeverity validates a severity string from user configuration.
func ParseSeverity(s string) (Severity, bool) {
	switch Severity(s) {
	case SeverityInfo, SeverityWarning, SeverityError:
		return Severity(s), true
	}
	return "", false
}

// Issue is one finding produced by a rule for a diagram. Issues are flat,
// immutable values: a rule produces at most one per diagram evaluation.
type Issue struct {
	Rule       string   `json:"rule"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	FilePath   string   `json:"file_path,omitempty"`
	Line       int      `json:"line,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
	Citation   string   `json:"citation,omitempty"`
}

// CheckFunc inspects a diagram and its metrics under a merged rule
// configuration. It returns nil when the rule does not fire. Checks must be
// pure: no I/O, no mutation of the diagram or metrics.
type CheckFunc func(d *diagram.Diagram, m metrics.Metrics, cfg RuleConfig) *Issue

// Rule is a registered check descriptor. Defaults supplies the rule's
// enabled state, severity, and thresholds before user overrides are merged.
type Rule struct {
	ID          string
	Description string
	Citation    string
	Defaults    RuleConfig
	Check       CheckFunc
}

// Registry returns the registered rules in evaluation order.
// The slice is a copy; the registry itself is fixed at startup and no rule
// may be added at merge or evaluation time.
func Registry() []Rule {
	out := make([]Rule, len(registry))
	copy(out, registry)
	return out
}

// RuleIDs returns the registered rule IDs in evaluation order.
func RuleIDs() []string {
	ids := make([]string, len(registry))
	for i, r := range registry {
		ids[i] = r.ID
	}
	return ids
}

// Lookup returns the rule descriptor for id, if registered.
func Lookup(id string) (Rule, bool) {
	for _, r := range registry {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}
