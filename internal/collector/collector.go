// Package collector walks the project tree and assembles the clipboard bundle.
package collector

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/temirov/ctc/internal/ignore"
	"github.com/temirov/ctc/internal/matcher"
	"github.com/temirov/ctc/internal/tokenizer"
	"github.com/temirov/ctc/internal/types"
	"github.com/temirov/ctc/internal/utils"
)

const (
	infoIgnoredDirectoryFormat   = "Info: Skipping directory '%s/' as it's ignored by %s."
	infoIgnoredFileFormat        = "Info: '%s' is ignored by %s. Skipping."
	infoCharacterLimitFormat     = "Info: Adding '%s' would exceed character limit. Skipping."
	infoTokenLimitFormat         = "Info: Adding '%s' would exceed token limit. Skipping."
	warningReadFailureFormat     = "Failed to read '%s': %v"
	warningBinaryFileFormat      = "Skipping binary file '%s'."
	warningTokenCountFormat      = "Failed to count tokens for '%s': %v"
	warningMissingExplicitFormat = "Warning: Explicit file '%s' does not exist. Skipping."
	warningAccessFormat          = "Warning: error accessing path %s: %v"
	warningInvalidPatternFormat  = "Warning: include pattern '%s' is not a valid glob. It will never match."
	gitDirectoryPrefix           = utils.GitDirectoryName + "/"
)

// Options configures a collection run.
type Options struct {
	// RootDirectory is the directory the walk starts from, normally the
	// current working directory.
	RootDirectory string
	// IncludePatterns are the stored glob patterns.
	IncludePatterns []string
	// ExplicitFiles are stored absolute paths, collected even when
	// ignore-matched or outside pruned branches.
	ExplicitFiles []string
	// Limits caps the run along files, characters, and tokens.
	Limits types.CollectionLimits
	// TokenCounter estimates tokens for each formatted block.
	TokenCounter tokenizer.Counter
	// IgnoreMatcher overrides the matcher built from the root ignore file.
	// Used by tests; production callers leave it nil.
	IgnoreMatcher *ignore.Matcher
	// Logger receives informational skip notices and per-file warnings.
	Logger *zap.Logger
}

// run carries the mutable state of one collection pass.
type run struct {
	rootDirectory  string
	includes       []string
	explicitSet    map[string]struct{}
	limits         types.CollectionLimits
	counter        tokenizer.Counter
	ignoreMatcher  *ignore.Matcher
	logger         *zap.Logger
	bundle         strings.Builder
	summary        types.RunSummary
	collectedPaths map[string]struct{}
}

// Collect walks the tree rooted at Options.RootDirectory, gathers every file
// that matches the include patterns or the explicit set within the configured
// limits, then re-processes explicit files the walk did not capture. It
// returns the delimited bundle and the run summary.
func Collect(options Options) (string, types.RunSummary, error) {
	absoluteRoot, absoluteRootError := filepath.Abs(options.RootDirectory)
	if absoluteRootError != nil {
		return "", types.RunSummary{}, fmt.Errorf("resolve root %s: %w", options.RootDirectory, absoluteRootError)
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ignoreMatcher := options.IgnoreMatcher
	if ignoreMatcher == nil {
		builtMatcher, matcherError := ignore.NewRootMatcher(absoluteRoot)
		if matcherError != nil {
			logger.Warn(fmt.Sprintf("Error loading %s: %v", utils.GitIgnoreFileName, matcherError))
		}
		ignoreMatcher = builtMatcher
	}

	for _, invalidPattern := range matcher.InvalidPatterns(options.IncludePatterns) {
		logger.Warn(fmt.Sprintf(warningInvalidPatternFormat, invalidPattern))
	}

	explicitSet := make(map[string]struct{}, len(options.ExplicitFiles))
	for _, explicitFile := range options.ExplicitFiles {
		explicitSet[filepath.Clean(explicitFile)] = struct{}{}
	}

	collectionRun := &run{
		rootDirectory:  filepath.Clean(absoluteRoot),
		includes:       options.IncludePatterns,
		explicitSet:    explicitSet,
		limits:         options.Limits,
		counter:        options.TokenCounter,
		ignoreMatcher:  ignoreMatcher,
		logger:         logger,
		collectedPaths: make(map[string]struct{}),
	}
	collectionRun.bundle.WriteString(types.BundleOpeningDelimiter)

	if walkError := collectionRun.walkTree(); walkError != nil {
		return "", types.RunSummary{}, walkError
	}
	collectionRun.processExplicitFiles(options.ExplicitFiles)

	collectionRun.bundle.WriteString(types.BundleClosingDelimiter)
	return collectionRun.bundle.String(), collectionRun.summary, nil
}

// walkTree performs the single deterministic traversal. filepath.WalkDir
// visits entries in lexical order, so repeated runs over an unchanged tree
// produce identical bundles.
func (collectionRun *run) walkTree() error {
	walkError := filepath.WalkDir(collectionRun.rootDirectory, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if accessError != nil {
			collectionRun.logger.Warn(fmt.Sprintf(warningAccessFormat, walkedPath, accessError))
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relativePath := utils.RelativePathOrSelf(walkedPath, collectionRun.rootDirectory)
		if relativePath == "." {
			return nil
		}

		if directoryEntry.IsDir() {
			if directoryEntry.Name() == utils.GitDirectoryName {
				return filepath.SkipDir
			}
			if collectionRun.ignoreMatcher.IsIgnored(relativePath + "/") {
				collectionRun.logger.Info(fmt.Sprintf(infoIgnoredDirectoryFormat, relativePath, utils.GitIgnoreFileName))
				return filepath.SkipDir
			}
			return nil
		}

		if !directoryEntry.Type().IsRegular() {
			return nil
		}
		if relativePath == utils.GitIgnoreFileName || strings.HasPrefix(relativePath, gitDirectoryPrefix) {
			return nil
		}

		absolutePath := filepath.Clean(walkedPath)
		_, isExplicit := collectionRun.explicitSet[absolutePath]

		if collectionRun.ignoreMatcher.IsIgnored(relativePath) && !isExplicit {
			collectionRun.logger.Info(fmt.Sprintf(infoIgnoredFileFormat, relativePath, utils.GitIgnoreFileName))
			return nil
		}
		if _, alreadyCollected := collectionRun.collectedPaths[relativePath]; alreadyCollected {
			return nil
		}
		if !matcher.MatchesAny(relativePath, collectionRun.includes) && !isExplicit {
			return nil
		}

		if stop := collectionRun.processFile(absolutePath, relativePath); stop {
			return filepath.SkipAll
		}
		return nil
	})
	if walkError != nil {
		return fmt.Errorf("walking %s: %w", collectionRun.rootDirectory, walkError)
	}
	return nil
}

// processExplicitFiles appends explicit files the walk did not capture,
// irrespective of ignore rules and directory pruning.
func (collectionRun *run) processExplicitFiles(explicitFiles []string) {
	for _, explicitFile := range explicitFiles {
		absolutePath := filepath.Clean(explicitFile)
		relativePath := utils.RelativePathOrSelf(absolutePath, collectionRun.rootDirectory)

		if relativePath == utils.GitIgnoreFileName || strings.HasPrefix(relativePath, gitDirectoryPrefix) {
			continue
		}
		if _, alreadyCollected := collectionRun.collectedPaths[relativePath]; alreadyCollected {
			continue
		}
		fileInformation, statError := os.Stat(absolutePath)
		if statError != nil || !fileInformation.Mode().IsRegular() {
			collectionRun.logger.Warn(fmt.Sprintf(warningMissingExplicitFormat, relativePath))
			continue
		}

		if stop := collectionRun.processFile(absolutePath, relativePath); stop {
			return
		}
	}
}

// processFile reads, formats, and budget-checks a single file. It reports
// whether the run hit a stop condition after a successful addition. Files
// that cannot be read or decoded are warned about and skipped without
// touching the skip counters.
func (collectionRun *run) processFile(absolutePath string, relativePath string) bool {
	fileBytes, readError := os.ReadFile(absolutePath)
	if readError != nil {
		collectionRun.logger.Warn(fmt.Sprintf(warningReadFailureFormat, relativePath, readError))
		return false
	}
	if utils.IsBinary(fileBytes) {
		collectionRun.logger.Warn(fmt.Sprintf(warningBinaryFileFormat, relativePath))
		return false
	}

	fileContent := utils.DecodeText(fileBytes)
	formattedBlock := fmt.Sprintf(types.FileBlockFormat, relativePath, fileContent)
	blockCharacters := utf8.RuneCountInString(formattedBlock)
	lineCount := strings.Count(fileContent, "\n") + 1

	blockTokens := 0
	if collectionRun.counter != nil {
		countedTokens, countError := collectionRun.counter.CountString(formattedBlock)
		if countError != nil {
			collectionRun.logger.Warn(fmt.Sprintf(warningTokenCountFormat, relativePath, countError))
			return false
		}
		blockTokens = countedTokens
	}

	if collectionRun.limits.MaxCharacters > 0 && collectionRun.summary.CharactersCopied+blockCharacters > collectionRun.limits.MaxCharacters {
		collectionRun.logger.Info(fmt.Sprintf(infoCharacterLimitFormat, relativePath))
		collectionRun.recordSkip(relativePath, lineCount)
		return false
	}
	if collectionRun.limits.MaxTokens > 0 && collectionRun.summary.TokensCopied+blockTokens > collectionRun.limits.MaxTokens {
		collectionRun.logger.Info(fmt.Sprintf(infoTokenLimitFormat, relativePath))
		collectionRun.recordSkip(relativePath, lineCount)
		return false
	}

	collectionRun.bundle.WriteString(formattedBlock)
	collectionRun.summary.FilesAdded++
	collectionRun.summary.CharactersCopied += blockCharacters
	collectionRun.summary.TokensCopied += blockTokens
	collectionRun.summary.LinesAdded += lineCount
	collectionRun.collectedPaths[relativePath] = struct{}{}

	return collectionRun.limitsReached()
}

// recordSkip counts a limit-exceeded skip in the summary.
func (collectionRun *run) recordSkip(relativePath string, lineCount int) {
	collectionRun.summary.FilesSkipped++
	collectionRun.summary.LinesSkipped += lineCount
	collectionRun.summary.SkippedFiles = append(collectionRun.summary.SkippedFiles, relativePath)
}

// limitsReached reports whether any budget dimension is exhausted after an
// addition, which stops the run entirely.
func (collectionRun *run) limitsReached() bool {
	if collectionRun.limits.MaxFiles > 0 && collectionRun.summary.FilesAdded >= collectionRun.limits.MaxFiles {
		return true
	}
	if collectionRun.limits.MaxCharacters > 0 && collectionRun.summary.CharactersCopied >= collectionRun.limits.MaxCharacters {
		return true
	}
	if collectionRun.limits.MaxTokens > 0 && collectionRun.summary.TokensCopied >= collectionRun.limits.MaxTokens {
		return true
	}
	return false
}
