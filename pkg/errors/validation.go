package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates a user-supplied file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// runIDRegex matches canonical UUID strings as produced by run identifiers.
var runIDRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidateRunID validates a solve run identifier.
func ValidateRunID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "run id cannot be empty")
	}

	if !runIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid run id: %q", id)
	}

	return nil
}

// validFormats are the render formats accepted at the CLI and API boundary.
var validFormats = map[string]bool{
	"text":   true,
	"grid":   true,
	"json":   true,
	"pretty": true,
}

// ValidateFormat validates a render format name.
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}

	if !validFormats[strings.ToLower(format)] {
		return New(ErrCodeInvalidFormat, "unsupported format: %q (valid: text, grid, json, pretty)", format)
	}

	return nil
}
