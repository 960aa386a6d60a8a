// Package extract derives article metadata from raw markdown documents.
//
// Everything here is a pure function of its input except ResolveDates,
// which consults a HistoryProvider and degrades to front-matter and then to
// the Draft sentinel when history is unavailable.
package extract

import (
	"strings"

	"docblog/pkg/utils"
)

// Summary defaults.
const (
	DefaultTitle  = "Untitled"
	ExcerptLength = 150
)

// Summary is the title and excerpt of a document.
type Summary struct {
	Title   string
	Excerpt string
}

var strs = utils.NewStringHelper()

// Summarize returns the title and excerpt of a markdown document.
//
// The title comes from the first line whose first non-space character is '#',
// with every leading '#' and surrounding whitespace removed. It is
// DefaultTitle when no such line exists and may be empty for a bare "#" line.
//
// The excerpt is the first non-empty line that does not start with '#', a
// code fence, '-' or '*', cut to ExcerptLength characters plus an ellipsis.
//
// Lines are scanned as written, front-matter included: a "date:" line in
// the block is a valid excerpt source. Code fences are not tracked either,
// so a '#' line inside a fence still counts as a heading here.
func Summarize(content string) Summary {
	lines := strings.Split(content, "\n")

	return Summary{
		Title:   titleFrom(lines),
		Excerpt: excerptFrom(lines),
	}
}

func titleFrom(lines []string) string {
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
	}

	return DefaultTitle
}

func excerptFrom(lines []string) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isStructural(trimmed) {
			continue
		}

		return strs.TruncateString(trimmed, ExcerptLength)
	}

	return ""
}

func isStructural(line string) bool {
	return strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "```") ||
		strings.HasPrefix(line, "-") ||
		strings.HasPrefix(line, "*")
}

// DeriveTitle builds a fallback title from a file name:
// "my-first-post.md" becomes "my first post".
func DeriveTitle(filename string) string {
	if title := strs.HumanizeFilename(filename); title != "" {
		return title
	}

	return DefaultTitle
}
