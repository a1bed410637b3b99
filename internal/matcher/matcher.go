// Package matcher tests relative paths against stored include glob patterns.
package matcher

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchesAny reports whether the slash-separated relative path matches any of
// the include patterns. A single star stays within one path segment; a double
// star spans directory separators, so patterns such as "**/*.py" match nested
// files. Patterns that fail to parse never match.
func MatchesAny(relativePath string, includePatterns []string) bool {
	normalizedPath := filepath.ToSlash(relativePath)
	for _, includePattern := range includePatterns {
		isMatched, matchError := doublestar.Match(includePattern, normalizedPath)
		if matchError == nil && isMatched {
			return true
		}
	}
	return false
}

// InvalidPatterns returns the include patterns that fail to parse under glob
// syntax, preserving order. Used to warn once per run instead of per path.
func InvalidPatterns(includePatterns []string) []string {
	var invalidPatterns []string
	for _, includePattern := range includePatterns {
		if !doublestar.ValidatePattern(includePattern) {
			invalidPatterns = append(invalidPatterns, includePattern)
		}
	}
	return invalidPatterns
}
