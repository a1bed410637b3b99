package config

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/temirov/ctc/internal/types"
)

// Property: the pattern store is an insertion-ordered set. Adding a batch of
// arbitrary entries twice leaves the store exactly as after the first add, and
// the store never holds duplicates.
func TestAddEntriesIsIdempotent(t *testing.T) {
	entryGenerator := rapid.StringMatching(`[a-zA-Z0-9*?\[\]/_.-]{1,20}`)
	workingDirectory := t.TempDir()

	rapid.Check(t, func(t *rapid.T) {
		entries := rapid.SliceOfN(entryGenerator, 0, 12).Draw(t, "entries")

		var configuration types.Configuration
		AddEntries(&configuration, workingDirectory, entries)
		afterFirstAdd := types.Configuration{
			IncludePatterns: append([]string(nil), configuration.IncludePatterns...),
			ExplicitFiles:   append([]string(nil), configuration.ExplicitFiles...),
		}

		secondResult := AddEntries(&configuration, workingDirectory, entries)
		if secondResult.Changed() {
			t.Fatalf("second add changed the store: %+v", secondResult)
		}
		if !reflect.DeepEqual(configuration, afterFirstAdd) {
			t.Fatalf("store mutated by duplicate add: got %+v want %+v", configuration, afterFirstAdd)
		}

		assertNoDuplicates(t, configuration.IncludePatterns)
		assertNoDuplicates(t, configuration.ExplicitFiles)
	})
}

// Property: removing everything that was added restores an empty store.
func TestRemoveEntriesInvertsAdd(t *testing.T) {
	entryGenerator := rapid.StringMatching(`[a-zA-Z0-9*?\[\]/_.-]{1,20}`)
	workingDirectory := t.TempDir()

	rapid.Check(t, func(t *rapid.T) {
		entries := rapid.SliceOfN(entryGenerator, 0, 12).Draw(t, "entries")

		var configuration types.Configuration
		AddEntries(&configuration, workingDirectory, entries)
		RemoveEntries(&configuration, workingDirectory, entries)

		if !configuration.IsEmpty() {
			t.Fatalf("expected empty store after removing all entries, got %+v", configuration)
		}
	})
}

// assertNoDuplicates fails when the slice contains a repeated value.
func assertNoDuplicates(t *rapid.T, values []string) {
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		if _, duplicate := seen[value]; duplicate {
			t.Fatalf("duplicate stored value %q in %v", value, values)
		}
		seen[value] = struct{}{}
	}
}
