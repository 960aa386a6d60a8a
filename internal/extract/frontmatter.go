package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// ErrMalformedFrontMatter is returned when a delimited front-matter block is not valid YAML.
var ErrMalformedFrontMatter = errors.New("malformed front-matter")

const (
	frontMatterDelim = "---"
	dateLayout       = "2006-01-02"
)

var (
	frontMatterDatePattern = regexp.MustCompile(`^date:\s*(\d{4}-\d{2}-\d{2})`)

	yamlFormat = &frontmatter.Format{
		Start:     frontMatterDelim,
		End:       frontMatterDelim,
		Unmarshal: yaml.Unmarshal,
	}
)

// FrontMatter is the decoded metadata block at the top of a document.
type FrontMatter struct {
	Fields map[string]any
	// Date is the ISO date from the first "date:" line, or "".
	Date string
}

// block splits content into the lines of a leading front-matter block and
// the remaining body. A block opens with a "---" line at the very start of
// the content and closes at the next "---" line; an unclosed block is not
// front-matter.
func block(content string) ([]string, string, bool) {
	lines := strings.Split(content, "\n")
	if len(lines) < 2 || !isDelim(lines[0]) {
		return nil, content, false
	}

	for i := 1; i < len(lines); i++ {
		if isDelim(lines[i]) {
			return lines[1:i], strings.Join(lines[i+1:], "\n"), true
		}
	}

	return nil, content, false
}

func isDelim(line string) bool {
	return strings.TrimRight(line, " \t\r") == frontMatterDelim
}

// Body returns content without its front-matter block.
func Body(content string) string {
	_, body, _ := block(content)

	return body
}

// HasFrontMatter reports whether content opens with a closed front-matter block.
func HasFrontMatter(content string) bool {
	_, _, ok := block(content)

	return ok
}

// ParseFrontMatter decodes the front-matter block of content.
// A document without front-matter yields a zero FrontMatter and no error.
func ParseFrontMatter(content string) (FrontMatter, error) {
	lines, _, ok := block(content)
	if !ok {
		return FrontMatter{}, nil
	}

	fields := map[string]any{}
	if _, err := frontmatter.Parse(strings.NewReader(content), &fields, yamlFormat); err != nil {
		return FrontMatter{}, fmt.Errorf("%w: %w", ErrMalformedFrontMatter, err)
	}

	return FrontMatter{
		Fields: fields,
		Date:   dateFromLines(lines),
	}, nil
}

// frontMatterDate returns the "date:" value of the front-matter block, if any.
// It scans lines rather than decoded YAML so it works even when other
// fields in the block are malformed.
func frontMatterDate(content string) (string, bool) {
	lines, _, ok := block(content)
	if !ok {
		return "", false
	}

	date := dateFromLines(lines)

	return date, date != ""
}

func dateFromLines(lines []string) string {
	for _, line := range lines {
		m := frontMatterDatePattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}

		if _, err := time.Parse(dateLayout, m[1]); err != nil {
			continue
		}

		return m[1]
	}

	return ""
}
