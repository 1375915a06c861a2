package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateOutputPath validates a file path the renderer is about to write.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
//   - Must name a file (cannot end with a separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path must name a file, not a directory")
	}

	return nil
}

// themeNameRegex matches preset and custom theme names.
var themeNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,63}$`)

// ValidateThemeName validates a preset or custom theme name.
// Names are lowercase identifiers so they can double as file-name suffixes.
func ValidateThemeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPreset, "theme name cannot be empty")
	}
	if !themeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPreset, "invalid theme name: %q", name)
	}
	return nil
}

// ValidateUploadSize rejects CSV payloads above limit bytes.
func ValidateUploadSize(size, limit int64) error {
	if limit > 0 && size > limit {
		return New(ErrCodeInvalidInput, "csv payload too large (%d bytes, max %d)", size, limit)
	}
	return nil
}
