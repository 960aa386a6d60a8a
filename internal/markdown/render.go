package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// piece is a fragment of rendered output. Code pieces are opaque to the
// paragraph and line-break stages.
type piece struct {
	html string
	code bool
}

// Render converts markdown to HTML with the classic engine.
//
// After the node stages, the output is split on blank lines: a segment
// holding no HTML tag and no code block is wrapped in <p>, anything else
// passes through, and segments are re-joined with a newline. Finally every
// newline outside code becomes <br>.
func Render(src string) string {
	pieces := paragraphs(emit(Parse(src)))

	var sb strings.Builder
	for _, p := range pieces {
		if p.code {
			sb.WriteString(p.html)
			continue
		}

		sb.WriteString(strings.ReplaceAll(p.html, "\n", "<br>"))
	}

	return sb.String()
}

// emit renders nodes into pieces, merging adjacent text. Each run of
// unordered items on consecutive lines is wrapped in one <ul>.
func emit(nodes []Node) []piece {
	var (
		pieces []piece
		sb     strings.Builder
	)

	flush := func() {
		if sb.Len() > 0 {
			pieces = append(pieces, piece{html: sb.String()})
			sb.Reset()
		}
	}

	for i, n := range nodes {
		switch n.Kind {
		case KindCode:
			flush()
			pieces = append(pieces, piece{html: "<pre><code>" + n.Text + "</code></pre>", code: true})
		case KindBreak:
			sb.WriteString("\n")
		case KindHeading:
			level := strconv.Itoa(n.Level)
			sb.WriteString("<h" + level + ">" + n.Text + "</h" + level + ">")
		case KindUnorderedItem:
			if !continuesList(nodes, i, -1) {
				sb.WriteString("<ul>")
			}

			sb.WriteString("<li>" + n.Text + "</li>")

			if !continuesList(nodes, i, 1) {
				sb.WriteString("</ul>")
			}
		case KindOrderedItem:
			sb.WriteString("<li>" + n.Text + "</li>")
		default:
			sb.WriteString(n.Text)
		}
	}

	flush()

	return pieces
}

// continuesList reports whether the unordered item at i has a neighbour
// item on the adjacent line in direction dir (-1 before, 1 after).
func continuesList(nodes []Node, i, dir int) bool {
	j := i + 2*dir
	if j < 0 || j >= len(nodes) {
		return false
	}

	return nodes[i+dir].Kind == KindBreak && nodes[j].Kind == KindUnorderedItem
}

func paragraphs(pieces []piece) []piece {
	var (
		out     []piece
		segment []piece
		started bool
	)

	flush := func() {
		if started {
			out = append(out, piece{html: "\n"})
		}

		started = true

		if wrapped, ok := wrapParagraph(segment); ok {
			out = append(out, wrapped)
		} else {
			out = append(out, segment...)
		}

		segment = nil
	}

	for _, p := range pieces {
		if p.code {
			segment = append(segment, p)
			continue
		}

		for i, part := range strings.Split(p.html, "\n\n") {
			if i > 0 {
				flush()
			}

			segment = append(segment, piece{html: part})
		}
	}

	flush()

	return out
}

func wrapParagraph(segment []piece) (piece, bool) {
	var sb strings.Builder

	for _, p := range segment {
		if p.code {
			return piece{}, false
		}

		sb.WriteString(p.html)
	}

	text := sb.String()
	if tagPattern.MatchString(text) {
		return piece{}, false
	}

	return piece{html: "<p>" + strings.TrimSpace(text) + "</p>"}, true
}
