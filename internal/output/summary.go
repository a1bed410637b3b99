// Package output renders the human-readable run summary.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/temirov/ctc/internal/types"
)

const (
	summaryWidth         = 50
	summaryTitle         = "Summary"
	unboundedLimitLabel  = "unbounded"
	copiedConfirmation   = "\nFiles copied to clipboard."
	filesCopiedLabel     = "Files Copied       : %s\n"
	totalCharactersLabel = "Total Characters   : %s\n"
	totalTokensLabel     = "Total Tokens       : %s\n"
	totalLinesLabel      = "Total Lines Added  : %d\n"
	filesSkippedLabel    = "Files Skipped      : %d\n"
	linesSkippedLabel    = "Lines Skipped      : %d\n"
	tokenLimitWarning    = "Warning: Maximum token limit reached. Some files were skipped to stay within the limit."
	remainingTokenFormat = "Estimated tokens remaining for LLM: %d\n"
)

// RenderCopyConfirmation prints the clipboard confirmation line.
func RenderCopyConfirmation(writer io.Writer) {
	fmt.Fprintln(writer, copiedConfirmation)
}

// RenderSummary prints the formatted summary block for a completed copy run.
// Bounded limits render as "<used>/<limit>"; unbounded dimensions render as
// "<used>/unbounded". Skipped files, when present, are listed in a warnings
// section.
func RenderSummary(writer io.Writer, summary types.RunSummary, limits types.CollectionLimits) {
	ruleLine := strings.Repeat("=", summaryWidth)
	fmt.Fprintln(writer, ruleLine)
	fmt.Fprintln(writer, centerText(summaryTitle, summaryWidth))
	fmt.Fprintln(writer, ruleLine)
	fmt.Fprintf(writer, filesCopiedLabel, formatAgainstLimit(summary.FilesAdded, limits.MaxFiles))
	fmt.Fprintf(writer, totalCharactersLabel, formatAgainstLimit(summary.CharactersCopied, limits.MaxCharacters))
	fmt.Fprintf(writer, totalTokensLabel, formatAgainstLimit(summary.TokensCopied, limits.MaxTokens))
	fmt.Fprintf(writer, totalLinesLabel, summary.LinesAdded)

	if summary.FilesSkipped > 0 {
		fmt.Fprintln(writer, "\nWarnings:")
		fmt.Fprintln(writer, strings.Repeat("-", summaryWidth))
		fmt.Fprintf(writer, filesSkippedLabel, summary.FilesSkipped)
		fmt.Fprintf(writer, linesSkippedLabel, summary.LinesSkipped)
		fmt.Fprintln(writer, "\nSkipped Files:")
		for _, skippedFile := range summary.SkippedFiles {
			fmt.Fprintf(writer, " - %s\n", skippedFile)
		}
	} else {
		fmt.Fprintln(writer, "\nNo files were skipped.")
	}
	fmt.Fprintln(writer, ruleLine)
}

// RenderRemainingTokens prints the remaining-token estimate relative to the
// token limit, or the limit-reached warning. It prints nothing when the token
// dimension is unbounded.
func RenderRemainingTokens(writer io.Writer, summary types.RunSummary, limits types.CollectionLimits) {
	if limits.MaxTokens <= 0 {
		return
	}
	if summary.TokensCopied >= limits.MaxTokens {
		fmt.Fprintln(writer, tokenLimitWarning)
		return
	}
	if summary.TokensCopied > 0 {
		fmt.Fprintf(writer, remainingTokenFormat, limits.MaxTokens-summary.TokensCopied)
	}
}

// formatAgainstLimit renders "<used>/<limit>" with unbounded limits spelled out.
func formatAgainstLimit(used int, limit int) string {
	if limit <= 0 {
		return strconv.Itoa(used) + "/" + unboundedLimitLabel
	}
	return strconv.Itoa(used) + "/" + strconv.Itoa(limit)
}

// centerText centers text within the given width, padding with spaces.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	leftPadding := (width - len(text)) / 2
	return strings.Repeat(" ", leftPadding) + text
}
