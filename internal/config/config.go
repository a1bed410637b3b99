// Package config persists the pattern store backing the ctc CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/temirov/ctc/internal/types"
	"github.com/temirov/ctc/internal/utils"
)

const (
	configFileIndent     = "    "
	configFilePermission = 0o644
)

// ResolveConfigPath determines the configuration file location. The working
// directory wins when it already holds a configuration file; otherwise the
// home directory is used.
func ResolveConfigPath(workingDirectory string, homeDirectory string) string {
	projectConfigPath := filepath.Join(workingDirectory, utils.ConfigFileName)
	if fileInformation, statError := os.Stat(projectConfigPath); statError == nil && !fileInformation.IsDir() {
		return projectConfigPath
	}
	return filepath.Join(homeDirectory, utils.ConfigFileName)
}

// DefaultConfigPath resolves the configuration path from the current working
// directory and the user's home directory.
func DefaultConfigPath() (string, error) {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return "", fmt.Errorf("determine working directory: %w", workingDirectoryError)
	}
	homeDirectory, homeDirectoryError := os.UserHomeDir()
	if homeDirectoryError != nil {
		return "", fmt.Errorf("determine home directory: %w", homeDirectoryError)
	}
	return ResolveConfigPath(workingDirectory, homeDirectory), nil
}

// LoadConfiguration reads the configuration file at configPath. A missing file
// yields an empty configuration without error. A corrupt file yields an empty
// configuration along with the error so the caller can log and proceed.
func LoadConfiguration(configPath string) (types.Configuration, error) {
	if _, statError := os.Stat(configPath); statError != nil {
		if os.IsNotExist(statError) {
			return types.Configuration{}, nil
		}
		return types.Configuration{}, fmt.Errorf("stat configuration %s: %w", configPath, statError)
	}

	reader := viper.New()
	reader.SetConfigFile(configPath)
	reader.SetConfigType("json")
	if readError := reader.ReadInConfig(); readError != nil {
		return types.Configuration{}, fmt.Errorf("read configuration from %s: %w", configPath, readError)
	}
	var configuration types.Configuration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return types.Configuration{}, fmt.Errorf("decode configuration from %s: %w", configPath, decodeError)
	}
	return configuration, nil
}

// SaveConfiguration rewrites the configuration file wholesale with stable
// indentation.
func SaveConfiguration(configPath string, configuration types.Configuration) error {
	if configuration.IncludePatterns == nil {
		configuration.IncludePatterns = []string{}
	}
	if configuration.ExplicitFiles == nil {
		configuration.ExplicitFiles = []string{}
	}
	encodedConfiguration, marshalError := json.MarshalIndent(configuration, "", configFileIndent)
	if marshalError != nil {
		return fmt.Errorf("encode configuration: %w", marshalError)
	}
	if writeError := os.WriteFile(configPath, encodedConfiguration, configFilePermission); writeError != nil {
		return fmt.Errorf("write configuration to %s: %w", configPath, writeError)
	}
	return nil
}

// ResolveExplicitPath converts an explicit file entry into a cleaned absolute
// path relative to the working directory.
func ResolveExplicitPath(workingDirectory string, entry string) string {
	if filepath.IsAbs(entry) {
		return filepath.Clean(entry)
	}
	return filepath.Clean(filepath.Join(workingDirectory, entry))
}

// AddResult reports the outcome of an add mutation, partitioned into glob
// patterns and explicit files. AlreadyPresent lists entries that were skipped
// because they are stored already.
type AddResult struct {
	AddedGlobPatterns  []string
	AddedExplicitFiles []string
	AlreadyPresent     []string
}

// Changed reports whether the mutation added anything.
func (result AddResult) Changed() bool {
	return len(result.AddedGlobPatterns) > 0 || len(result.AddedExplicitFiles) > 0
}

// RemoveResult reports the outcome of a remove mutation. NotFound lists
// entries that were not stored.
type RemoveResult struct {
	RemovedGlobPatterns  []string
	RemovedExplicitFiles []string
	NotFound             []string
}

// Changed reports whether the mutation removed anything.
func (result RemoveResult) Changed() bool {
	return len(result.RemovedGlobPatterns) > 0 || len(result.RemovedExplicitFiles) > 0
}

// AddEntries classifies each entry as a glob pattern or an explicit file and
// appends the ones not yet stored, preserving insertion order. Explicit files
// are resolved to absolute paths before comparison and storage.
func AddEntries(configuration *types.Configuration, workingDirectory string, entries []string) AddResult {
	var result AddResult
	for _, entry := range entries {
		normalizedEntry := strings.TrimSpace(entry)
		if normalizedEntry == "" {
			continue
		}
		if utils.IsGlobPattern(normalizedEntry) {
			if utils.ContainsString(configuration.IncludePatterns, normalizedEntry) {
				result.AlreadyPresent = append(result.AlreadyPresent, normalizedEntry)
				continue
			}
			configuration.IncludePatterns = append(configuration.IncludePatterns, normalizedEntry)
			result.AddedGlobPatterns = append(result.AddedGlobPatterns, normalizedEntry)
			continue
		}
		absolutePath := ResolveExplicitPath(workingDirectory, normalizedEntry)
		if utils.ContainsString(configuration.ExplicitFiles, absolutePath) {
			result.AlreadyPresent = append(result.AlreadyPresent, absolutePath)
			continue
		}
		configuration.ExplicitFiles = append(configuration.ExplicitFiles, absolutePath)
		result.AddedExplicitFiles = append(result.AddedExplicitFiles, absolutePath)
	}
	return result
}

// RemoveEntries removes stored entries symmetric to AddEntries: glob strings
// are compared verbatim and explicit files by resolved absolute path.
func RemoveEntries(configuration *types.Configuration, workingDirectory string, entries []string) RemoveResult {
	var result RemoveResult
	for _, entry := range entries {
		normalizedEntry := strings.TrimSpace(entry)
		if normalizedEntry == "" {
			continue
		}
		if utils.IsGlobPattern(normalizedEntry) {
			if !utils.ContainsString(configuration.IncludePatterns, normalizedEntry) {
				result.NotFound = append(result.NotFound, normalizedEntry)
				continue
			}
			configuration.IncludePatterns = removeString(configuration.IncludePatterns, normalizedEntry)
			result.RemovedGlobPatterns = append(result.RemovedGlobPatterns, normalizedEntry)
			continue
		}
		absolutePath := ResolveExplicitPath(workingDirectory, normalizedEntry)
		if !utils.ContainsString(configuration.ExplicitFiles, absolutePath) {
			result.NotFound = append(result.NotFound, absolutePath)
			continue
		}
		configuration.ExplicitFiles = removeString(configuration.ExplicitFiles, absolutePath)
		result.RemovedExplicitFiles = append(result.RemovedExplicitFiles, absolutePath)
	}
	return result
}

// ClearAll empties both lists and reports whether anything was stored.
func ClearAll(configuration *types.Configuration) bool {
	if configuration.IsEmpty() {
		return false
	}
	configuration.IncludePatterns = nil
	configuration.ExplicitFiles = nil
	return true
}

// removeString returns stringSlice without the first occurrence of
// targetString, preserving order.
func removeString(stringSlice []string, targetString string) []string {
	result := make([]string, 0, len(stringSlice))
	removed := false
	for _, currentString := range stringSlice {
		if !removed && currentString == targetString {
			removed = true
			continue
		}
		result = append(result, currentString)
	}
	return result
}
