// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ctc/internal/collector"
	"github.com/temirov/ctc/internal/config"
	"github.com/temirov/ctc/internal/output"
	"github.com/temirov/ctc/internal/services/clipboard"
	"github.com/temirov/ctc/internal/tokenizer"
	"github.com/temirov/ctc/internal/types"
	"github.com/temirov/ctc/internal/utils"
)

const (
	maxFilesFlagName  = "max-files"
	maxCharsFlagName  = "max-chars"
	maxTokensFlagName = "max-tokens"
	modelFlagName     = "model"
	versionFlagName   = "version"
	versionTemplate   = "ctc version: %s\n"

	defaultMaxFiles      = 50
	defaultMaxCharacters = 1000000
	defaultMaxTokens     = 128000

	rootUse              = "ctc"
	rootShortDescription = "copy project files to the clipboard by pattern"
	rootLongDescription  = `ctc builds a size-bounded text bundle of project files for pasting into an
LLM prompt. It keeps a persistent list of glob patterns and explicit file
paths, walks the project tree honoring .gitignore rules, and places the
collected bundle on the system clipboard.

Patterns use glob syntax; a double star spans directory separators.
Examples of common glob patterns:
  - Add all files recursively:
      ctc add "**/*"

  - Add all Python files:
      ctc add "**/*.py"

  - Add all JavaScript files in 'src' and subdirectories:
      ctc add "src/**/*.js"

  - Add an explicit file (even if it's in .gitignore):
      ctc add "path/to/ignored-file.file"`

	addUse                       = "add <patterns...>"
	addShortDescription          = "add glob patterns or explicit file paths"
	removeUse                    = "remove <patterns...>"
	removeShortDescription       = "remove glob patterns or explicit file paths"
	listUse                      = "list"
	listShortDescription         = "list all stored glob patterns and explicit files"
	copyUse                      = "copy"
	copyShortDescription         = "copy files matching the stored patterns to the clipboard"
	clearAllUse                  = "clear-all"
	clearAllShortDescription     = "remove all stored glob patterns and explicit files"
	versionFlagDescription       = "display application version"
	maxFilesFlagDescription      = "maximum number of files to include (0 for unbounded)"
	maxCharsFlagDescription      = "maximum number of characters to copy (0 for unbounded)"
	maxTokensFlagDescription     = "maximum number of tokens to copy (0 for unbounded)"
	modelFlagDescription         = "LLM model to estimate tokens for"
	missingSubcommandMessage     = "a subcommand is required"
	workingDirectoryErrorFormat  = "unable to determine working directory: %w"
	configurationLoadErrorFormat = "Error loading config: %v"
	configurationSaveErrorFormat = "Error saving config: %v"
	modelFallbackWarningFormat   = "Warning: Model '%s' not found. Falling back to %s encoding."

	noPatternsConfiguredMessage = "Error: No include patterns or explicit files found. " +
		"Please add patterns or files using the 'add' command before copying."
	nothingCollectedMessage = "No files to copy after applying limits and " +
		utils.GitIgnoreFileName + " rules. Please adjust your patterns or limits."

	alreadyPresentNoticeFormat = "Info: '%s' is already in the list."
	notFoundNoticeFormat       = "Info: '%s' is not in the list."
	addedGlobsHeader           = "\nAdded glob patterns:"
	addedFilesHeader           = "\nAdded explicit files:"
	nothingAddedMessage        = "\nNo new patterns or files were added."
	removedGlobsHeader         = "\nRemoved glob patterns:"
	removedFilesHeader         = "\nRemoved explicit files:"
	nothingRemovedMessage      = "\nNo patterns or files were removed."
	listGlobsHeader            = "\nCurrent include patterns (glob):"
	listFilesHeader            = "\nCurrent explicit files:"
	listEmptyMessage           = "\nNo include patterns or explicit files found."
	clearedMessage             = "\nAll include patterns and explicit files have been cleared."
	nothingToClearMessage      = "\nNo include patterns or explicit files to clear."
	listEntryFormat            = " - %s\n"
)

// Dependencies groups the external capabilities the commands rely on, allowing
// tests to substitute recorders for the clipboard and the output streams.
type Dependencies struct {
	Logger    *zap.Logger
	Clipboard clipboard.Copier
	Stdout    io.Writer
	Stderr    io.Writer
	// TokenCounterFactory resolves the token counter for a model name.
	// Defaults to tokenizer.NewCounter.
	TokenCounterFactory func(model string) (tokenizer.Counter, string, error)
}

// withDefaults fills unset dependencies with production implementations.
func (dependencies Dependencies) withDefaults() Dependencies {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Clipboard == nil {
		dependencies.Clipboard = clipboard.NewService()
	}
	if dependencies.Stdout == nil {
		dependencies.Stdout = os.Stdout
	}
	if dependencies.Stderr == nil {
		dependencies.Stderr = os.Stderr
	}
	if dependencies.TokenCounterFactory == nil {
		dependencies.TokenCounterFactory = tokenizer.NewCounter
	}
	return dependencies
}

// Execute runs the ctc application.
func Execute(logger *zap.Logger) error {
	rootCommand := NewRootCommand(Dependencies{Logger: logger})
	return rootCommand.Execute()
}

// NewRootCommand builds the root Cobra command with all subcommands attached.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	resolvedDependencies := dependencies.withDefaults()
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if helpError := command.Help(); helpError != nil {
				return helpError
			}
			return errors.New(missingSubcommandMessage)
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Fprintf(resolvedDependencies.Stdout, versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(
		createAddCommand(resolvedDependencies),
		createRemoveCommand(resolvedDependencies),
		createListCommand(resolvedDependencies),
		createCopyCommand(resolvedDependencies),
		createClearAllCommand(resolvedDependencies),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createAddCommand returns the add subcommand.
func createAddCommand(dependencies Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   addUse,
		Short: addShortDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return runAdd(dependencies, arguments)
		},
	}
}

// createRemoveCommand returns the remove subcommand.
func createRemoveCommand(dependencies Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   removeUse,
		Short: removeShortDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return runRemove(dependencies, arguments)
		},
	}
}

// createListCommand returns the list subcommand.
func createListCommand(dependencies Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   listUse,
		Short: listShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runList(dependencies)
		},
	}
}

// createClearAllCommand returns the clear-all subcommand.
func createClearAllCommand(dependencies Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   clearAllUse,
		Short: clearAllShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runClearAll(dependencies)
		},
	}
}

// copyOptions stores the budget and tokenizer flags of the copy subcommand.
type copyOptions struct {
	maxFiles      int
	maxCharacters int
	maxTokens     int
	model         string
}

// toLimits converts the flag values into collection limits.
func (options copyOptions) toLimits() types.CollectionLimits {
	return types.CollectionLimits{
		MaxFiles:      options.maxFiles,
		MaxCharacters: options.maxCharacters,
		MaxTokens:     options.maxTokens,
	}
}

// createCopyCommand returns the copy subcommand.
func createCopyCommand(dependencies Dependencies) *cobra.Command {
	options := copyOptions{
		maxFiles:      defaultMaxFiles,
		maxCharacters: defaultMaxCharacters,
		maxTokens:     defaultMaxTokens,
		model:         tokenizer.DefaultModel,
	}

	copyCommand := &cobra.Command{
		Use:   copyUse,
		Short: copyShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runCopy(dependencies, options)
		},
	}
	copyCommand.Flags().IntVar(&options.maxFiles, maxFilesFlagName, defaultMaxFiles, maxFilesFlagDescription)
	copyCommand.Flags().IntVar(&options.maxCharacters, maxCharsFlagName, defaultMaxCharacters, maxCharsFlagDescription)
	copyCommand.Flags().IntVar(&options.maxTokens, maxTokensFlagName, defaultMaxTokens, maxTokensFlagDescription)
	copyCommand.Flags().StringVar(&options.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	return copyCommand
}

// loadStoredConfiguration resolves the configuration path and loads it. A
// corrupt configuration is logged and replaced with an empty one so the
// operation can proceed.
func loadStoredConfiguration(dependencies Dependencies) (string, types.Configuration, error) {
	configPath, pathError := config.DefaultConfigPath()
	if pathError != nil {
		return "", types.Configuration{}, pathError
	}
	configuration, loadError := config.LoadConfiguration(configPath)
	if loadError != nil {
		dependencies.Logger.Error(fmt.Sprintf(configurationLoadErrorFormat, loadError))
	}
	return configPath, configuration, nil
}

// saveStoredConfiguration rewrites the configuration file. A write failure is
// logged but does not abort the process.
func saveStoredConfiguration(dependencies Dependencies, configPath string, configuration types.Configuration) {
	if saveError := config.SaveConfiguration(configPath, configuration); saveError != nil {
		dependencies.Logger.Error(fmt.Sprintf(configurationSaveErrorFormat, saveError))
	}
}

// runAdd implements the add subcommand.
func runAdd(dependencies Dependencies, entries []string) error {
	configPath, configuration, setupError := loadStoredConfiguration(dependencies)
	if setupError != nil {
		return setupError
	}
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	result := config.AddEntries(&configuration, workingDirectory, entries)
	for _, presentEntry := range result.AlreadyPresent {
		fmt.Fprintf(dependencies.Stdout, alreadyPresentNoticeFormat+"\n", presentEntry)
	}
	saveStoredConfiguration(dependencies, configPath, configuration)

	if len(result.AddedGlobPatterns) > 0 {
		fmt.Fprintln(dependencies.Stdout, addedGlobsHeader)
		printEntries(dependencies.Stdout, result.AddedGlobPatterns)
	}
	if len(result.AddedExplicitFiles) > 0 {
		fmt.Fprintln(dependencies.Stdout, addedFilesHeader)
		printEntries(dependencies.Stdout, result.AddedExplicitFiles)
	}
	if !result.Changed() {
		fmt.Fprintln(dependencies.Stdout, nothingAddedMessage)
	}
	return nil
}

// runRemove implements the remove subcommand.
func runRemove(dependencies Dependencies, entries []string) error {
	configPath, configuration, setupError := loadStoredConfiguration(dependencies)
	if setupError != nil {
		return setupError
	}
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	result := config.RemoveEntries(&configuration, workingDirectory, entries)
	for _, missingEntry := range result.NotFound {
		fmt.Fprintf(dependencies.Stdout, notFoundNoticeFormat+"\n", missingEntry)
	}
	saveStoredConfiguration(dependencies, configPath, configuration)

	if len(result.RemovedGlobPatterns) > 0 {
		fmt.Fprintln(dependencies.Stdout, removedGlobsHeader)
		printEntries(dependencies.Stdout, result.RemovedGlobPatterns)
	}
	if len(result.RemovedExplicitFiles) > 0 {
		fmt.Fprintln(dependencies.Stdout, removedFilesHeader)
		printEntries(dependencies.Stdout, result.RemovedExplicitFiles)
	}
	if !result.Changed() {
		fmt.Fprintln(dependencies.Stdout, nothingRemovedMessage)
	}
	return nil
}

// runList implements the list subcommand.
func runList(dependencies Dependencies) error {
	_, configuration, setupError := loadStoredConfiguration(dependencies)
	if setupError != nil {
		return setupError
	}
	if configuration.IsEmpty() {
		fmt.Fprintln(dependencies.Stdout, listEmptyMessage)
		return nil
	}
	if len(configuration.IncludePatterns) > 0 {
		fmt.Fprintln(dependencies.Stdout, listGlobsHeader)
		printEntries(dependencies.Stdout, configuration.IncludePatterns)
	}
	if len(configuration.ExplicitFiles) > 0 {
		fmt.Fprintln(dependencies.Stdout, listFilesHeader)
		printEntries(dependencies.Stdout, configuration.ExplicitFiles)
	}
	return nil
}

// runClearAll implements the clear-all subcommand.
func runClearAll(dependencies Dependencies) error {
	configPath, configuration, setupError := loadStoredConfiguration(dependencies)
	if setupError != nil {
		return setupError
	}
	if !config.ClearAll(&configuration) {
		fmt.Fprintln(dependencies.Stdout, nothingToClearMessage)
		return nil
	}
	saveStoredConfiguration(dependencies, configPath, configuration)
	fmt.Fprintln(dependencies.Stdout, clearedMessage)
	return nil
}

// runCopy implements the copy subcommand: collect, copy to clipboard, report.
// Empty configuration and empty collection results abort with a message and a
// clean exit; only a clipboard failure propagates as a command error.
func runCopy(dependencies Dependencies, options copyOptions) error {
	_, configuration, setupError := loadStoredConfiguration(dependencies)
	if setupError != nil {
		return setupError
	}
	if configuration.IsEmpty() {
		fmt.Fprintln(dependencies.Stderr, noPatternsConfiguredMessage)
		return nil
	}

	tokenCounter, resolvedModel, counterError := dependencies.TokenCounterFactory(options.model)
	if counterError != nil {
		return counterError
	}
	if resolvedModel != options.model {
		dependencies.Logger.Warn(fmt.Sprintf(modelFallbackWarningFormat, options.model, resolvedModel))
	}

	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	limits := options.toLimits()
	bundle, summary, collectError := collector.Collect(collector.Options{
		RootDirectory:   workingDirectory,
		IncludePatterns: configuration.IncludePatterns,
		ExplicitFiles:   configuration.ExplicitFiles,
		Limits:          limits,
		TokenCounter:    tokenCounter,
		Logger:          dependencies.Logger,
	})
	if collectError != nil {
		return collectError
	}

	if summary.FilesAdded == 0 {
		fmt.Fprintln(dependencies.Stderr, nothingCollectedMessage)
		return nil
	}

	if clipboardError := dependencies.Clipboard.Copy(bundle); clipboardError != nil {
		return clipboardError
	}

	output.RenderCopyConfirmation(dependencies.Stdout)
	output.RenderSummary(dependencies.Stdout, summary, limits)
	output.RenderRemainingTokens(dependencies.Stdout, summary, limits)
	return nil
}

// printEntries prints each entry as a bulleted line.
func printEntries(writer io.Writer, entries []string) {
	for _, entry := range entries {
		fmt.Fprintf(writer, listEntryFormat, entry)
	}
}
