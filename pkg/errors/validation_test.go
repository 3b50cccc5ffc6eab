package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"simple file", "diagram.mmd", false},
		{"nested path", "docs/arch/flow.md", false},
		{"glob pattern", "docs/**/*.mmd", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"max length ok", strings.Repeat("a", 500), false},
		{"null byte", "a\x00b", true},
		{"control character", "a\tb", true},
		{"backslash", `docs\flow.mmd`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidPath {
				t.Errorf("code = %q, want INVALID_PATH", GetCode(err))
			}
		})
	}
}

func TestValidateRuleID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "max-edges", false},
		{"with digits", "rule-2", false},
		{"single word", "layout", false},
		{"empty", "", true},
		{"uppercase", "Max-Edges", true},
		{"underscore", "max_edges", true},
		{"leading hyphen", "-max-edges", true},
		{"trailing hyphen", "max-edges-", true},
		{"spaces", "max edges", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRuleID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRuleID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidRule {
				t.Errorf("code = %q, want INVALID_RULE", GetCode(err))
			}
		})
	}
}
