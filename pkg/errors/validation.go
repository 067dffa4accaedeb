package errors

import (
	"strings"
	"unicode"
)

// ValidateDocumentPath validates a document path for safety and correctness.
// It rejects paths that cannot name a real file on any supported platform.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters
//   - No null bytes
//   - Maximum length of 4096 characters
//
// Existence of the file is checked separately by the document loader.
func ValidateDocumentPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "document path cannot be empty")
	}

	if len(path) > 4096 {
		return New(ErrCodeInvalidPath, "document path too long (max 4096 characters)")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "document path contains invalid control characters")
		}
	}

	if strings.Contains(path, "\x00") {
		return New(ErrCodeInvalidPath, "document path contains a null byte")
	}

	return nil
}

// ValidateSpaceLines validates the blank-line count placed before appended
// data blocks. Negative values are rejected; zero is allowed (data blocks
// directly follow the document body).
func ValidateSpaceLines(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidConfig, "lines of space cannot be negative: %d", n)
	}
	if n > 1000 {
		return New(ErrCodeInvalidConfig, "lines of space too large (max 1000): %d", n)
	}
	return nil
}
