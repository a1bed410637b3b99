package utils

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// IsBinary reports whether the provided byte slice appears to contain binary
// data. Detection is NUL-byte based: text with stray undecodable sequences is
// still treated as text so it can be repaired by DecodeText.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	return bytes.IndexByte(data, 0) >= 0
}

// DecodeText converts file bytes to a string, replacing undecodable byte
// sequences with the Unicode replacement rune rather than failing.
func DecodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}
