package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"docblog/internal/extract"
	"docblog/internal/models"

	"golang.org/x/net/html"
)

const (
	// ErrorFragment replaces an article body that failed to render.
	ErrorFragment = `<div class="error">Failed to load article content.</div>`

	// EmptyFragment is shown for a catalog without articles.
	EmptyFragment = `<p class="empty">No articles found.</p>`

	displayDateLayout = "Jan 2, 2006"
)

// Renderer converts markdown to HTML.
type Renderer interface {
	Render(markdown string) (string, error)
}

// Stats summarizes a manifest for the page header.
type Stats struct {
	LastUpdated string
	Total       int
}

// FormatDate turns a YYYY-MM-DD date into "Jan 2, 2006" form. The Draft
// sentinel becomes "Draft"; anything else is returned escaped as given.
func FormatDate(date string) string {
	if date == models.Draft {
		return "Draft"
	}

	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return html.EscapeString(date)
	}

	return t.Format(displayDateLayout)
}

// ManifestStats returns the article count and the display date of the newest article.
func ManifestStats(m models.Manifest) Stats {
	s := Stats{Total: m.Len()}

	if last := m.LastUpdated(); last != "" {
		s.LastUpdated = FormatDate(last)
	}

	return s
}

// Cards renders the listing markup for m, numbering articles from zero.
func Cards(m models.Manifest) string {
	return CardsFrom(m, 0)
}

// CardsFrom renders the listing markup for m, numbering articles from offset
// so links point at catalog indices.
func CardsFrom(m models.Manifest, offset int) string {
	if m.Len() == 0 {
		return EmptyFragment
	}

	var b strings.Builder

	for i, a := range m {
		index := strconv.Itoa(offset + i)

		b.WriteString(`<div class="article-card" data-index="` + index + `">`)
		b.WriteString(`<div class="article-header">`)
		b.WriteString(`<div class="article-title">` + html.EscapeString(a.Title) + `</div>`)
		b.WriteString(`<div class="article-icon">→</div>`)
		b.WriteString(`</div>`)
		b.WriteString(`<div class="article-date">` + FormatDate(a.Created) + `</div>`)
		b.WriteString(`<p class="article-excerpt">` + html.EscapeString(a.Excerpt) + `</p>`)
		b.WriteString(`<a href="/articles/` + index + `" class="article-link">Read more</a>`)
		b.WriteString("</div>\n")
	}

	return b.String()
}

// Article renders the full view of a: escaped title, publication date and
// the rendered body without its front-matter block. A render error or panic
// is reported and the body is replaced by ErrorFragment.
func Article(a models.Article, r Renderer) (fragment string, err error) {
	header := `<h2>` + html.EscapeString(a.Title) + `</h2>` +
		`<p class="article-meta">Published on ` + FormatDate(a.Created) + `</p>`

	body, err := renderBody(a, r)
	if err != nil {
		return ErrorFragment, err
	}

	return header + "\n" + body, nil
}

func renderBody(a models.Article, r Renderer) (body string, err error) {
	defer func() {
		if p := recover(); p != nil {
			body, err = "", fmt.Errorf("render %s: panic: %v", a.Filename, p)
		}
	}()

	body, err = r.Render(extract.Body(a.Content))
	if err != nil {
		return "", fmt.Errorf("render %s: %w", a.Filename, err)
	}

	return body, nil
}
