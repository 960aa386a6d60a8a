// Package markdown converts article markdown to HTML.
//
// The classic engine is a small line-oriented transducer: Parse splits the
// source into fenced code nodes and classified text lines, and Render walks
// that node sequence. It deliberately supports only the subset of markdown
// the blog uses (headings, emphasis, links, flat lists, code).
package markdown

import (
	"regexp"
	"strings"
)

// Kind classifies a node.
type Kind int

// Node kinds.
const (
	KindText Kind = iota
	KindHeading
	KindUnorderedItem
	KindOrderedItem
	KindCode
	KindBreak
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindHeading:
		return "heading"
	case KindUnorderedItem:
		return "unordered-item"
	case KindOrderedItem:
		return "ordered-item"
	case KindCode:
		return "code"
	case KindBreak:
		return "break"
	}

	return "unknown"
}

// Node is one element of a parsed document.
type Node struct {
	// Text holds inline-rendered HTML for line nodes and the untouched
	// interior for code nodes.
	Text  string
	Kind  Kind
	Level int
}

var (
	fencePattern       = regexp.MustCompile("(?s)```(.*?)```")
	inlineCodePattern  = regexp.MustCompile("`([^`]+)`")
	strongStarPattern  = regexp.MustCompile(`\*\*(.*?)\*\*`)
	strongUnderPattern = regexp.MustCompile(`__(.*?)__`)
	emphasisPattern    = regexp.MustCompile(`\*(.*?)\*`)
	linkPattern        = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	orderedItemPattern = regexp.MustCompile(`^\d+\. `)
)

// headingPrefixes are checked most specific first. "#" renders one level
// down and "##"/"###" share a level.
var headingPrefixes = []struct {
	prefix string
	level  int
}{
	{prefix: "### ", level: 3},
	{prefix: "## ", level: 3},
	{prefix: "# ", level: 2},
}

// Parse tokenizes markdown into a node sequence.
//
// Fenced code is cut out first so nothing inside a fence is ever read as
// markdown. The remaining text has inline code applied (it may span
// lines), then each line is classified. Lines are separated by KindBreak
// nodes; a text run that resumes on the same line as a closing fence is
// not at a line start and stays plain text.
func Parse(src string) []Node {
	src = strings.ReplaceAll(src, "\r\n", "\n")

	var nodes []Node

	pos := 0
	for _, loc := range fencePattern.FindAllStringSubmatchIndex(src, -1) {
		nodes = appendText(nodes, src[pos:loc[0]], pos == 0)
		nodes = append(nodes, Node{Kind: KindCode, Text: src[loc[2]:loc[3]]})
		pos = loc[1]
	}

	return appendText(nodes, src[pos:], pos == 0)
}

func appendText(nodes []Node, text string, atLineStart bool) []Node {
	if text == "" && !atLineStart {
		return nodes
	}

	text = inlineCodePattern.ReplaceAllString(text, "<code>${1}</code>")

	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			nodes = append(nodes, Node{Kind: KindBreak})
		}

		if i == 0 && !atLineStart {
			nodes = append(nodes, Node{Kind: KindText, Text: inline(line)})

			continue
		}

		nodes = append(nodes, classify(line))
	}

	return nodes
}

func classify(line string) Node {
	for _, h := range headingPrefixes {
		if rest, ok := strings.CutPrefix(line, h.prefix); ok {
			return Node{Kind: KindHeading, Level: h.level, Text: inline(rest)}
		}
	}

	if rest, ok := strings.CutPrefix(line, "- "); ok {
		return Node{Kind: KindUnorderedItem, Text: inline(rest)}
	}

	if loc := orderedItemPattern.FindStringIndex(line); loc != nil {
		return Node{Kind: KindOrderedItem, Text: inline(line[loc[1]:])}
	}

	return Node{Kind: KindText, Text: inline(line)}
}

// inline applies emphasis and then links to a single line. Bold runs
// before italic so "**" and "__" are never split by the "*" rule.
func inline(s string) string {
	s = strongStarPattern.ReplaceAllString(s, "<strong>${1}</strong>")
	s = strongUnderPattern.ReplaceAllString(s, "<strong>${1}</strong>")
	s = emphasisPattern.ReplaceAllString(s, "<em>${1}</em>")

	return linkPattern.ReplaceAllString(s, `<a href="${2}" target="_blank">${1}</a>`)
}
