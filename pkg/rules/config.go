package rules

import "maps"

// RuleConfig is the per-rule configuration consumed by a check.
//
// Threshold carries the rule's primary numeric cutoff. Rule-specific extras
// (density cutoffs, tier tables, per-direction thresholds) live in Options,
// keyed the same way users spell them in configuration files.
type RuleConfig struct {
	Enabled   bool           `json:"enabled"`
	Severity  Severity       `json:"severity"`
	Threshold float64        `json:"threshold,omitempty"`
	Options   map[string]any `json:"options,omitempty"`
}

// clone returns a copy of the config with its own Options map, so merged
// configs never alias the defaults.
func (c RuleConfig) clone() RuleConfig {
	if c.Options != nil {
		c.Options = maps.Clone(c.Options)
	}
	return c
}

// floatOption returns the numeric option for key, or fallback when the key
// is absent or not a number.
func (c RuleConfig) floatOption(key string, fallback float64) float64 {
	if f, ok := toFloat(c.Options[key]); ok {
		return f
	}
	return fallback
}

// tierOption returns the tier table stored under key. A user-supplied tier
// object replaces the default wholesale: only severities present in it are
// active. Entries with non-numeric cutoffs are dropped; if nothing usable
// remains, fallback applies.
func (c RuleConfig) tierOption(key string, fallback TierTable) TierTable {
	raw, ok := c.Options[key]
	if !ok {
		return fallback
	}
	switch t := raw.(type) {
	case TierTable:
		return t
	case map[string]any:
		tiers := TierTable{}
		for name, v := range t {
			sev, okSev := ParseSeverity(name)
			cutoff, okVal := toFloat(v)
			if okSev && okVal {
				tiers[sev] = cutoff
			}
		}
		if len(tiers) == 0 {
			return fallback
		}
		return tiers
	}
	return fallback
}

// directionOption returns the direction-keyed threshold map stored under
// key, falling back wholesale when absent or unusable.
func (c RuleConfig) directionOption(key string, fallback map[string]float64) map[string]float64 {
	raw, ok := c.Options[key]
	if !ok {
		return fallback
	}
	switch t := raw.(type) {
	case map[string]float64:
		return t
	case map[string]any:
		out := make(map[string]float64, len(t))
		for dir, v := range t {
			if f, okVal := toFloat(v); okVal {
				out[dir] = f
			}
		}
		if len(out) == 0 {
			return fallback
		}
		return out
	}
	return fallback
}

// toFloat coerces the numeric types produced by the JSON, YAML, and TOML
// decoders into a float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// Config maps rule IDs to their effective configuration.
type Config map[string]RuleConfig

// Overrides is the shape of user configuration: a partial per-rule field
// map as decoded from JSON, YAML, or TOML.
type Overrides map[string]map[string]any

// Defaults returns a fresh copy of the default configuration for every
// registered rule. Callers may mutate the result freely.
func Defaults() Config {
	cfg := make(Config, len(registry))
	for _, r := range registry {
		cfg[r.ID] = r.Defaults.clone()
	}
	return cfg
}

// Merge combines defaults with user overrides, per rule and per field.
//
// Fields present in an override replace the corresponding default field;
// absent fields are untouched. Nested objects (tier tables, direction maps)
// replace the default object wholesale. Unknown rule IDs are ignored for
// forward compatibility, and a structurally invalid value for a field falls
// back to the default for that field. Merge never fails.
func Merge(defaults Config, overrides Overrides) Config {
	merged := make(Config, len(defaults))
	for id, cfg := range defaults {
		merged[id] = mergeRule(cfg, overrides[id])
	}
	return merged
}

func mergeRule(cfg RuleConfig, override map[string]any) RuleConfig {
	cfg = cfg.clone()
	if override == nil {
		return cfg
	}
	for field, value := range override {
		switch field {
		case "enabled":
			if b, ok := value.(bool); ok {
				cfg.Enabled = b
			}
		case "severity":
			if s, ok := value.(string); ok {
				if sev, valid := ParseSeverity(s); valid {
					cfg.Severity = sev
				}
			}
		case "threshold":
			if f, ok := toFloat(value); ok {
				cfg.Threshold = f
			}
		default:
			// Rule-specific extras replace the default entry wholesale.
			if cfg.Options == nil {
				cfg.Options = make(map[string]any)
			}
			cfg.Options[field] = value
		}
	}
	return cfg
}
