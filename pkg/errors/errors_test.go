package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidPath, "bad path: %s", "/tmp/x")

	if err.Code != ErrCodeInvalidPath {
		t.Errorf("code = %q, want INVALID_PATH", err.Code)
	}
	if err.Message != "bad path: /tmp/x" {
		t.Errorf("message = %q", err.Message)
	}
	if !strings.Contains(err.Error(), "INVALID_PATH") {
		t.Errorf("Error() should include the code, got %q", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := Wrap(ErrCodeFileNotFound, cause, "read %s", "a.mmd")

	if err.Cause != cause {
		t.Error("Wrap should preserve the cause")
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match the cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("Error() should include the cause, got %q", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidGlob, "bad glob")

	if !Is(err, ErrCodeInvalidGlob) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeFileNotFound) {
		t.Error("Is should not match a different code")
	}
	if Is(fmt.Errorf("plain"), ErrCodeInvalidGlob) {
		t.Error("Is should not match a plain error")
	}

	// Matching through a wrapping layer
	wrapped := fmt.Errorf("context: %w", err)
	if !Is(wrapped, ErrCodeInvalidGlob) {
		t.Error("Is should unwrap to find the code")
	}
}

func TestGetCode(t *testing.T) {
	if code := GetCode(New(ErrCodeTimeout, "slow")); code != ErrCodeTimeout {
		t.Errorf("GetCode = %q, want TIMEOUT", code)
	}
	if code := GetCode(fmt.Errorf("plain")); code != "" {
		t.Errorf("GetCode on plain error = %q, want empty", code)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "cannot decode config")
	if msg := UserMessage(err); msg != "cannot decode config" {
		t.Errorf("UserMessage = %q, want the bare message", msg)
	}

	plain := fmt.Errorf("plain failure")
	if msg := UserMessage(plain); msg != "plain failure" {
		t.Errorf("UserMessage on plain error = %q", msg)
	}
}
