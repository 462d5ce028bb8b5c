package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates a user-supplied file path for safety.
// It prevents path traversal when the HTTP API or a config file names
// files on behalf of a caller.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
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

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// modelIDRegex matches identifiers as they appear in the exchange format
// (xs:ID: a letter or underscore followed by name characters).
var modelIDRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9._-]*$`)

// ValidateModelID validates a model identifier used to address stored models.
func ValidateModelID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "model id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidID, "model id too long (max 256 characters)")
	}
	if !modelIDRegex.MatchString(id) {
		return New(ErrCodeInvalidID, "invalid model id: %q", id)
	}
	return nil
}
