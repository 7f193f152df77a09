package ignore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	negationPrefix = "!"
	pathSeparator  = "/"
)

var (
	errEmptyPattern        = errors.New("empty pattern")
	errNegatedEmptyPattern = errors.New("negated empty pattern")
	errRootPattern         = errors.New("root pattern")
)

// ValidatePattern ensures that the provided gitignore-style pattern can be compiled.
func ValidatePattern(pattern string) error {
	trimmedPattern := strings.TrimSpace(pattern)
	if trimmedPattern == "" {
		return errEmptyPattern
	}
	if strings.HasPrefix(trimmedPattern, negationPrefix) {
		trimmedPattern = strings.TrimPrefix(trimmedPattern, negationPrefix)
		if trimmedPattern == "" {
			return errNegatedEmptyPattern
		}
	}
	trimmedPattern = strings.Trim(trimmedPattern, pathSeparator)
	if trimmedPattern == "" {
		return errRootPattern
	}

	if !doublestar.ValidatePattern(escapeBraces(trimmedPattern)) {
		return fmt.Errorf("unable to validate pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}
	return nil
}

// escapeBraces escapes unescaped { and } so doublestar checks them as literal
// characters, the way gitignore treats them, instead of as alternation.
func escapeBraces(pattern string) string {
	var builder strings.Builder
	escaped := false
	for _, character := range pattern {
		switch {
		case escaped:
			escaped = false
		case character == '\\':
			escaped = true
		case character == '{' || character == '}':
			builder.WriteRune('\\')
		}
		builder.WriteRune(character)
	}
	return builder.String()
}

// splitRelativePath converts a tree-root relative path into gitignore path segments.
func splitRelativePath(relativePath string) []string {
	normalizedPath := strings.ReplaceAll(relativePath, "\\", pathSeparator)
	normalizedPath = strings.TrimPrefix(normalizedPath, "./")
	normalizedPath = strings.Trim(normalizedPath, pathSeparator)
	if normalizedPath == "" || normalizedPath == "." {
		return nil
	}
	var segments []string
	for _, segment := range strings.Split(normalizedPath, pathSeparator) {
		if segment == "" {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}
