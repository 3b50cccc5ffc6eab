package rules

import (
	"reflect"
	"testing"
)

func TestDefaultsCoversRegistry(t *testing.T) {
	cfg := Defaults()
	if len(cfg) != len(registry) {
		t.Fatalf("defaults has %d entries, registry has %d", len(cfg), len(registry))
	}
	for _, r := range registry {
		rc, ok := cfg[r.ID]
		if !ok {
			t.Errorf("defaults missing rule %s", r.ID)
			continue
		}
		if !rc.Enabled {
			t.Errorf("rule %s should be enabled by default", r.ID)
		}
	}
}

func TestDefaultsReturnsFreshCopies(t *testing.T) {
	first := Defaults()
	rc := first["max-nodes-high-density"]
	rc.Options["densityThreshold"] = 0.9
	first["max-edges"] = RuleConfig{Enabled: false}

	second := Defaults()
	if second["max-nodes-high-density"].Options["densityThreshold"] != 0.3 {
		t.Error("mutating a returned config leaked into the defaults")
	}
	if !second["max-edges"].Enabled {
		t.Error("replacing an entry leaked into the defaults")
	}
}

func TestMergeFields(t *testing.T) {
	merged := Merge(Defaults(), Overrides{
		"max-edges": {
			"enabled":   false,
			"severity":  "info",
			"threshold": 200,
		},
	})

	rc := merged["max-edges"]
	if rc.Enabled {
		t.Error("enabled override not applied")
	}
	if rc.Severity != SeverityInfo {
		t.Errorf("severity = %q, want info", rc.Severity)
	}
	if rc.Threshold != 200 {
		t.Errorf("threshold = %f, want 200", rc.Threshold)
	}
}

func TestMergePreservesUntouchedFields(t *testing.T) {
	// Disabling a rule must not discard its other defaults
	merged := Merge(Defaults(), Overrides{
		"cyclomatic-complexity": {"enabled": false},
	})

	rc := merged["cyclomatic-complexity"]
	if rc.Threshold != 10 {
		t.Errorf("threshold = %f, want default 10", rc.Threshold)
	}
	if rc.Severity != SeverityWarning {
		t.Errorf("severity = %q, want default warning", rc.Severity)
	}
}

func TestMergeIgnoresUnknownRules(t *testing.T) {
	defaults := Defaults()
	merged := Merge(defaults, Overrides{
		"no-such-rule": {"enabled": false},
	})

	if _, ok := merged["no-such-rule"]; ok {
		t.Error("unknown rule ID should not appear in merged config")
	}
	if len(merged) != len(defaults) {
		t.Errorf("merged has %d entries, want %d", len(merged), len(defaults))
	}
}

func TestMergeInvalidValuesFallBack(t *testing.T) {
	merged := Merge(Defaults(), Overrides{
		"max-edges": {
			"enabled":   "yes",
			"severity":  "critical",
			"threshold": "many",
		},
	})

	rc := merged["max-edges"]
	if !rc.Enabled {
		t.Error("invalid enabled value should keep the default")
	}
	if rc.Severity != SeverityError {
		t.Errorf("severity = %q, want default error", rc.Severity)
	}
	if rc.Threshold != 100 {
		t.Errorf("threshold = %f, want default 100", rc.Threshold)
	}
}

func TestMergeNestedObjectsReplaceWholesale(t *testing.T) {
	merged := Merge(Defaults(), Overrides{
		"horizontal-width-readability": {
			"tiers": map[string]any{"error": 3000.0},
		},
	})

	tiers := merged["horizontal-width-readability"].tierOption("tiers", nil)
	want := TierTable{SeverityError: 3000}
	if !reflect.DeepEqual(tiers, want) {
		t.Errorf("tiers = %v, want %v (wholesale replacement)", tiers, want)
	}
}

func TestMergeDoesNotAliasDefaults(t *testing.T) {
	defaults := Defaults()
	merged := Merge(defaults, Overrides{
		"max-nodes-high-density": {"densityThreshold": 0.5},
	})

	if merged["max-nodes-high-density"].Options["densityThreshold"] != 0.5 {
		t.Error("option override not applied")
	}
	if defaults["max-nodes-high-density"].Options["densityThreshold"] != 0.3 {
		t.Error("merge mutated the defaults map")
	}
}

func TestFloatOption(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
	}{
		{"float64", 0.5, 0.5},
		{"int from toml", 5, 5},
		{"int64", int64(7), 7},
		{"string falls back", "0.5", 0.3},
		{"nil falls back", nil, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := RuleConfig{Options: map[string]any{"k": tt.value}}
			if got := cfg.floatOption("k", 0.3); got != tt.want {
				t.Errorf("floatOption = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestTierOptionInvalidEntries(t *testing.T) {
	fallback := TierTable{SeverityWarning: 100}

	// Unknown severity names and non-numeric cutoffs are dropped
	cfg := RuleConfig{Options: map[string]any{
		"tiers": map[string]any{"critical": 1.0, "warning": "soon"},
	}}
	if got := cfg.tierOption("tiers", fallback); !reflect.DeepEqual(got, fallback) {
		t.Errorf("unusable tier object should fall back, got %v", got)
	}

	// Partial validity keeps the valid entries only
	cfg = RuleConfig{Options: map[string]any{
		"tiers": map[string]any{"critical": 1.0, "error": 500.0},
	}}
	want := TierTable{SeverityError: 500}
	if got := cfg.tierOption("tiers", fallback); !reflect.DeepEqual(got, want) {
		t.Errorf("tiers = %v, want %v", got, want)
	}
}

func TestDirectionOption(t *testing.T) {
	fallback := map[string]float64{"LR": 8, "TD": 12}

	cfg := RuleConfig{Options: map[string]any{
		"thresholds": map[string]any{"LR": 5.0, "TD": 20},
	}}
	want := map[string]float64{"LR": 5, "TD": 20}
	if got := cfg.directionOption("thresholds", fallback); !reflect.DeepEqual(got, want) {
		t.Errorf("thresholds = %v, want %v", got, want)
	}

	cfg = RuleConfig{}
	if got := cfg.directionOption("thresholds", fallback); !reflect.DeepEqual(got, fallback) {
		t.Errorf("absent option should fall back, got %v", got)
	}
}
