package errors

import (
	"slices"
	"strings"
	"unicode"
)

// maxFilePathLength bounds input paths accepted on the command line.
const maxFilePathLength = 4096

// ValidateFilePath validates a local input path before it is opened.
//
// Rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//
// The single dash "-" (stdin) is accepted.
func ValidateFilePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if len(path) > maxFilePathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxFilePathLength)
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateFormat checks that format is one of allowed (case-insensitive).
func ValidateFormat(format string, allowed ...string) error {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, f) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of: %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}
