package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/temirov/ctc/internal/types"
)

// TestRenderSummaryBoundedLimits verifies the cleanly completed run renders
// counters against their limits with no warnings section.
func TestRenderSummaryBoundedLimits(testingHandle *testing.T) {
	var buffer bytes.Buffer
	RenderSummary(&buffer, types.RunSummary{
		FilesAdded:       3,
		CharactersCopied: 120,
		TokensCopied:     45,
		LinesAdded:       12,
	}, types.CollectionLimits{MaxFiles: 50, MaxCharacters: 1000000, MaxTokens: 128000})

	rendered := buffer.String()
	for _, expectedLine := range []string{
		"Files Copied       : 3/50",
		"Total Characters   : 120/1000000",
		"Total Tokens       : 45/128000",
		"Total Lines Added  : 12",
		"No files were skipped.",
	} {
		if !strings.Contains(rendered, expectedLine) {
			testingHandle.Fatalf("summary missing %q:\n%s", expectedLine, rendered)
		}
	}
	if strings.Contains(rendered, "Warnings:") {
		testingHandle.Fatalf("unexpected warnings section:\n%s", rendered)
	}
	if !strings.HasPrefix(rendered, strings.Repeat("=", 50)+"\n") {
		testingHandle.Fatalf("summary must open with a rule line:\n%s", rendered)
	}
	titleLine := strings.Split(rendered, "\n")[1]
	if strings.TrimSpace(titleLine) != "Summary" || !strings.HasPrefix(titleLine, " ") {
		testingHandle.Fatalf("title line not centered: %q", titleLine)
	}
}

// TestRenderSummaryUnboundedLimits verifies zero-valued limits are spelled out.
func TestRenderSummaryUnboundedLimits(testingHandle *testing.T) {
	var buffer bytes.Buffer
	RenderSummary(&buffer, types.RunSummary{FilesAdded: 2, CharactersCopied: 30, TokensCopied: 10, LinesAdded: 4}, types.CollectionLimits{})

	rendered := buffer.String()
	for _, expectedLine := range []string{
		"Files Copied       : 2/unbounded",
		"Total Characters   : 30/unbounded",
		"Total Tokens       : 10/unbounded",
	} {
		if !strings.Contains(rendered, expectedLine) {
			testingHandle.Fatalf("summary missing %q:\n%s", expectedLine, rendered)
		}
	}
}

// TestRenderSummaryWithSkippedFiles verifies the warnings section lists each
// skipped file.
func TestRenderSummaryWithSkippedFiles(testingHandle *testing.T) {
	var buffer bytes.Buffer
	RenderSummary(&buffer, types.RunSummary{
		FilesAdded:   1,
		FilesSkipped: 2,
		LinesSkipped: 300,
		SkippedFiles: []string{"big/one.txt", "big/two.txt"},
	}, types.CollectionLimits{MaxFiles: 50, MaxTokens: 100})

	rendered := buffer.String()
	for _, expectedLine := range []string{
		"Warnings:",
		"Files Skipped      : 2",
		"Lines Skipped      : 300",
		"Skipped Files:",
		" - big/one.txt",
		" - big/two.txt",
	} {
		if !strings.Contains(rendered, expectedLine) {
			testingHandle.Fatalf("summary missing %q:\n%s", expectedLine, rendered)
		}
	}
	if strings.Contains(rendered, "No files were skipped.") {
		testingHandle.Fatalf("contradictory skip message:\n%s", rendered)
	}
}

// TestRenderRemainingTokens verifies the three terminal states of the
// remaining-token line.
func TestRenderRemainingTokens(testingHandle *testing.T) {
	testCases := []struct {
		name           string
		summary        types.RunSummary
		limits         types.CollectionLimits
		expectedOutput string
	}{
		{
			name:           "remaining_budget_reported",
			summary:        types.RunSummary{TokensCopied: 100},
			limits:         types.CollectionLimits{MaxTokens: 128000},
			expectedOutput: "Estimated tokens remaining for LLM: 127900\n",
		},
		{
			name:           "limit_reached_warning",
			summary:        types.RunSummary{TokensCopied: 128000},
			limits:         types.CollectionLimits{MaxTokens: 128000},
			expectedOutput: "Warning: Maximum token limit reached. Some files were skipped to stay within the limit.\n",
		},
		{
			name:           "unbounded_prints_nothing",
			summary:        types.RunSummary{TokensCopied: 100},
			limits:         types.CollectionLimits{},
			expectedOutput: "",
		},
		{
			name:           "empty_run_prints_nothing",
			summary:        types.RunSummary{},
			limits:         types.CollectionLimits{MaxTokens: 128000},
			expectedOutput: "",
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			var buffer bytes.Buffer
			RenderRemainingTokens(&buffer, testCase.summary, testCase.limits)
			if buffer.String() != testCase.expectedOutput {
				subTest.Fatalf("got %q, want %q", buffer.String(), testCase.expectedOutput)
			}
		})
	}
}

// TestRenderCopyConfirmation verifies the confirmation line.
func TestRenderCopyConfirmation(testingHandle *testing.T) {
	var buffer bytes.Buffer
	RenderCopyConfirmation(&buffer)
	if buffer.String() != "\nFiles copied to clipboard.\n" {
		testingHandle.Fatalf("unexpected confirmation: %q", buffer.String())
	}
}
