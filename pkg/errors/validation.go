package errors

import (
	"strings"
	"unicode"
)

// ValidatePath validates a user-supplied lint path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No backslashes (Windows-style path injection)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateRuleID validates a rule identifier from user input (CLI filters,
// serve-mode requests). Rule IDs are lowercase words joined by hyphens.
func ValidateRuleID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidRule, "rule id cannot be empty")
	}
	for _, r := range id {
		valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		if !valid {
			return New(ErrCodeInvalidRule, "invalid rule id: %q", id)
		}
	}
	if strings.HasPrefix(id, "-") || strings.HasSuffix(id, "-") {
		return New(ErrCodeInvalidRule, "invalid rule id: %q", id)
	}
	return nil
}
