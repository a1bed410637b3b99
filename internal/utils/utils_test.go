package utils

import (
	"path/filepath"
	"reflect"
	"testing"
)

// TestIsGlobPattern verifies the wildcard-character classification used to
// separate glob patterns from explicit file paths.
func TestIsGlobPattern(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		entry    string
		expected bool
	}{
		{name: "star", entry: "*.txt", expected: true},
		{name: "recursive_star", entry: "**/*.py", expected: true},
		{name: "question_mark", entry: "file?.go", expected: true},
		{name: "character_class", entry: "file[0-9].go", expected: true},
		{name: "plain_path", entry: "src/main.go", expected: false},
		{name: "absolute_path", entry: "/etc/hosts", expected: false},
		{name: "empty", entry: "", expected: false},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subtestHandle *testing.T) {
			if actual := IsGlobPattern(testCase.entry); actual != testCase.expected {
				subtestHandle.Fatalf("IsGlobPattern(%q) = %v, want %v", testCase.entry, actual, testCase.expected)
			}
		})
	}
}

// TestDeduplicatePatternsPreservesOrder verifies that the first occurrence of
// each pattern survives in insertion order.
func TestDeduplicatePatternsPreservesOrder(testingHandle *testing.T) {
	input := []string{"*.go", "*.md", "*.go", "docs/", "*.md"}
	expected := []string{"*.go", "*.md", "docs/"}
	if actual := DeduplicatePatterns(input); !reflect.DeepEqual(actual, expected) {
		testingHandle.Fatalf("DeduplicatePatterns(%v) = %v, want %v", input, actual, expected)
	}
}

// TestRelativePathOrSelf verifies slash-form relative path calculation.
func TestRelativePathOrSelf(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()

	nestedPath := filepath.Join(rootDirectory, "sub", "file.txt")
	if relativePath := RelativePathOrSelf(nestedPath, rootDirectory); relativePath != "sub/file.txt" {
		testingHandle.Fatalf("expected sub/file.txt, got %q", relativePath)
	}
	if relativePath := RelativePathOrSelf(rootDirectory, rootDirectory); relativePath != "." {
		testingHandle.Fatalf("expected . for identical paths, got %q", relativePath)
	}
}

// TestDecodeTextReplacesInvalidBytes verifies undecodable byte sequences are
// replaced rather than failing.
func TestDecodeTextReplacesInvalidBytes(testingHandle *testing.T) {
	decoded := DecodeText([]byte{'h', 'i', 0xff, '!'})
	if decoded != "hi�!" {
		testingHandle.Fatalf("unexpected decoded text %q", decoded)
	}
	if plain := DecodeText([]byte("plain")); plain != "plain" {
		testingHandle.Fatalf("expected valid text unchanged, got %q", plain)
	}
}

// TestIsBinary verifies NUL-byte detection. Invalid UTF-8 without NUL bytes
// stays classified as text so DecodeText can repair it.
func TestIsBinary(testingHandle *testing.T) {
	if !IsBinary([]byte{0x00, 0x01, 0x02}) {
		testingHandle.Fatalf("expected NUL bytes to classify as binary")
	}
	if IsBinary([]byte("ordinary text")) {
		testingHandle.Fatalf("expected text to classify as non-binary")
	}
	if IsBinary([]byte{'h', 'i', 0xff}) {
		testingHandle.Fatalf("expected NUL-free invalid UTF-8 to classify as text")
	}
	if IsBinary(nil) {
		testingHandle.Fatalf("expected empty content to classify as non-binary")
	}
}
