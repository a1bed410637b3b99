// Package ignore compiles the root ignore file into a matcher for relative paths.
package ignore

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/temirov/ctc/internal/utils"
)

// Matcher answers whether a path relative to the project root is excluded by
// the root ignore file. Directory paths are tested with a trailing separator.
// A Matcher built without an ignore file matches nothing.
type Matcher struct {
	ruleSet *gitignore.GitIgnore
}

// NewRootMatcher compiles the .gitignore file found at rootDirectory. A missing
// file yields an empty matcher without error. An unreadable file also yields an
// empty matcher, along with the error so the caller can log it.
func NewRootMatcher(rootDirectory string) (*Matcher, error) {
	ignoreFilePath := filepath.Join(rootDirectory, utils.GitIgnoreFileName)
	ignoreFileContent, readError := os.ReadFile(ignoreFilePath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return &Matcher{}, nil
		}
		return &Matcher{}, readError
	}
	ruleSet := gitignore.CompileIgnoreLines(strings.Split(string(ignoreFileContent), "\n")...)
	return &Matcher{ruleSet: ruleSet}, nil
}

// NewMatcherFromLines compiles a matcher directly from ignore rule lines.
func NewMatcherFromLines(lines ...string) *Matcher {
	return &Matcher{ruleSet: gitignore.CompileIgnoreLines(lines...)}
}

// IsIgnored reports whether the slash-separated relative path matches the
// compiled ignore rules.
func (matcher *Matcher) IsIgnored(relativePath string) bool {
	if matcher == nil || matcher.ruleSet == nil {
		return false
	}
	return matcher.ruleSet.MatchesPath(relativePath)
}
