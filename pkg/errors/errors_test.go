package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeIO, cause, "failed to write")

	if err.Code != ErrCodeIO {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeIO)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeFileNotFound, "no such file document.md")

	if !Is(err, ErrCodeFileNotFound) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeBackupDirNotFound) {
		t.Error("Is should not match a different code")
	}
	if Is(errors.New("plain error"), ErrCodeFileNotFound) {
		t.Error("Is should not match a plain error")
	}

	// Wrapped chains should still match by code.
	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeFileNotFound) {
		t.Error("Is should unwrap to find the code")
	}
}

func TestGetCode(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "bad config")
	if got := GetCode(err); got != ErrCodeInvalidConfig {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidConfig)
	}

	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeImageNotFound, "no such file img.png")
	if got := UserMessage(err); got != "no such file img.png" {
		t.Errorf("UserMessage() = %q", got)
	}

	plain := errors.New("plain error")
	if got := UserMessage(plain); got != "plain error" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestValidateDocumentPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"simple", "notes.md", false},
		{"relative", "docs/notes.md", false},
		{"absolute", "/home/user/notes.md", false},
		{"empty", "", true},
		{"control char", "notes\x01.md", true},
		{"null byte", "notes\x00.md", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocumentPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSpaceLines(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, false},
		{20, false},
		{1000, false},
		{-1, true},
		{1001, true},
	}

	for _, tt := range tests {
		err := ValidateSpaceLines(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSpaceLines(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
	}
}
