package rules

// TierTable is an ordered set of severity cutoffs for a single metric.
// Severity escalates with the highest exceeded cutoff: a value above the
// error cutoff is an error even if it also exceeds warning and info.
type TierTable map[Severity]float64

// tierOrder is the escalation order checked by SelectTier, highest first.
var tierOrder = []Severity{SeverityError, SeverityWarning, SeverityInfo}

// SelectTier returns the severity of the highest tier whose cutoff the
// value exceeds, and whether any tier fired. Severities absent from the
// table are skipped, so a table overridden down to a single cutoff still
// behaves sensibly.
//
// All tiered rules share this decision function; tier selection, not a
// rule's nominal default severity, determines the emitted severity.
func SelectTier(value float64, tiers TierTable) (Severity, bool) {
	for _, sev := range tierOrder {
		if cutoff, ok := tiers[sev]; ok && value > cutoff {
			return sev, true
		}
	}
	return "", false
}
