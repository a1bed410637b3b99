// Package types defines the cross-package data structures used by the ctc CLI.
package types

const (
	// BundleOpeningDelimiter starts the clipboard bundle.
	BundleOpeningDelimiter = "<code-sample>\n"
	// BundleClosingDelimiter ends the clipboard bundle.
	BundleClosingDelimiter = "</code-sample>"
	// FileBlockFormat renders one collected file as a fenced block labeled
	// with its slash-separated relative path.
	FileBlockFormat = "```%s\n%s\n```\n\n"
)

// Configuration is the persisted pattern store. Both slices preserve insertion
// order and contain no duplicates.
type Configuration struct {
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns"`
	ExplicitFiles   []string `json:"explicit_files" mapstructure:"explicit_files"`
}

// IsEmpty reports whether the configuration holds no patterns and no files.
func (configuration Configuration) IsEmpty() bool {
	return len(configuration.IncludePatterns) == 0 && len(configuration.ExplicitFiles) == 0
}

// CollectionLimits caps a collection run along three independent dimensions.
// A zero value leaves that dimension unbounded.
type CollectionLimits struct {
	MaxFiles      int
	MaxCharacters int
	MaxTokens     int
}

// CollectedFile is one file captured during a collection run.
type CollectedFile struct {
	RelativePath string
	Content      string
	Characters   int
	Tokens       int
	Lines        int
}

// RunSummary aggregates the counters produced by a single copy invocation.
type RunSummary struct {
	FilesAdded       int
	FilesSkipped     int
	CharactersCopied int
	TokensCopied     int
	LinesAdded       int
	LinesSkipped     int
	SkippedFiles     []string
}
