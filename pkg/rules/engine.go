package rules

import (
	"context"
	"fmt"

	"github.com/flowlint/flowlint/pkg/diagram"
	"github.com/flowlint/flowlint/pkg/metrics"
)

// Evaluate runs every enabled rule against the diagram and its metrics,
// returning the issues in registration order.
//
// The engine performs no I/O and cannot fail. Disabled rules are filtered
// before their check is invoked, so disabling a rule guarantees no issue
// with that rule's ID is ever produced. A panicking check is isolated: it
// is converted into a single error-severity issue naming the failing rule
// and evaluation continues with the remaining rules, so one broken rule
// cannot suppress the others' findings.
func Evaluate(d *diagram.Diagram, m metrics.Metrics, cfg Config) []Issue {
	return EvaluateContext(context.Background(), d, m, cfg)
}

// EvaluateContext is Evaluate with caller-imposed cancellation. When ctx is
// cancelled, evaluation stops collecting further rule results; issues
// already collected are returned intact.
func EvaluateContext(ctx context.Context, d *diagram.Diagram, m metrics.Metrics, cfg Config) []Issue {
	issues := make([]Issue, 0, 4)
	for _, rule := range registry {
		if ctx.Err() != nil {
			break
		}
		rc, ok := cfg[rule.ID]
		if !ok {
			rc = rule.Defaults
		}
		if !rc.Enabled {
			continue
		}
		if issue := runCheck(rule, d, m, rc); issue != nil {
			issues = append(issues, *issue)
		}
	}
	return issues
}

// runCheck invokes one rule's check, stamps citation and source location,
// and converts a panic into a scoped internal-error issue.
func runCheck(rule Rule, d *diagram.Diagram, m metrics.Metrics, rc RuleConfig) (issue *Issue) {
	defer func() {
		if r := recover(); r != nil {
			issue = &Issue{
				Rule:     rule.ID,
				Severity: SeverityError,
				Message:  fmt.Sprintf("rule %s failed: %v", rule.ID, r),
				FilePath: d.FilePath,
				Line:     d.Line,
			}
		}
	}()

	issue = rule.Check(d, m, rc)
	if issue == nil {
		return nil
	}
	issue.Rule = rule.ID
	issue.FilePath = d.FilePath
	issue.Line = d.Line
	if issue.Citation == "" {
		issue.Citation = rule.Citation
	}
	return issue
}
