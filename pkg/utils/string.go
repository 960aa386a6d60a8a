// Package utils provides common utility functions.
package utils

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis is appended to truncated strings.
const Ellipsis = "..."

// StringHelper provides string utility functions.
type StringHelper struct{}

// NewStringHelper creates a new string helper.
func NewStringHelper() *StringHelper {
	return &StringHelper{}
}

// NormalizeWhitespace replaces runs of whitespace with a single space.
func (s *StringHelper) NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// TruncateString cuts str to maxLength characters and appends Ellipsis.
// Strings of maxLength characters or fewer are returned unchanged.
// Length is counted in runes so multi-byte text is never split mid-character.
func (s *StringHelper) TruncateString(str string, maxLength int) string {
	if utf8.RuneCountInString(str) <= maxLength {
		return str
	}

	runes := []rune(str)

	return string(runes[:maxLength]) + Ellipsis
}

// HumanizeFilename turns "my-first-post.md" into "my first post".
func (s *StringHelper) HumanizeFilename(name string) string {
	if dot := strings.LastIndex(name, "."); dot > 0 {
		name = name[:dot]
	}

	return s.NormalizeWhitespace(strings.ReplaceAll(name, "-", " "))
}
