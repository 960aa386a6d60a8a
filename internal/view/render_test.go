package view

import (
	"errors"
	"strings"
	"testing"

	"docblog/internal/markdown"
	"docblog/internal/models"

	"github.com/PuerkitoBio/goquery"
)

type failingRenderer struct{}

func (failingRenderer) Render(string) (string, error) {
	return "", errors.New("boom")
}

type panickingRenderer struct{}

func (panickingRenderer) Render(string) (string, error) {
	panic("renderer bug")
}

func parse(t *testing.T, fragment string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		t.Fatalf("Failed to parse fragment: %v", err)
	}

	return doc
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-05", "Jan 5, 2024"},
		{"2023-12-31", "Dec 31, 2023"},
		{models.Draft, "Draft"},
		{"", ""},
		{"<soon>", "&lt;soon&gt;"},
	}

	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestManifestStats(t *testing.T) {
	m := models.Manifest{
		{Title: "New", Filename: "new.md", Created: "2024-03-02", Updated: "2024-03-02"},
		{Title: "Old", Filename: "old.md", Created: "2023-01-01", Updated: "2023-01-01"},
	}

	if got := ManifestStats(m); got.Total != 2 || got.LastUpdated != "Mar 2, 2024" {
		t.Errorf("ManifestStats() = %+v", got)
	}

	if got := ManifestStats(nil); got.Total != 0 || got.LastUpdated != "" {
		t.Errorf("ManifestStats(nil) = %+v", got)
	}

	withDraft := append(models.Manifest{{Title: "Draft", Filename: "draft.md", Created: models.Draft, Updated: models.Draft}}, m...)
	if got := ManifestStats(withDraft); got.Total != 3 || got.LastUpdated != "Mar 2, 2024" {
		t.Errorf("ManifestStats(with draft) = %+v", got)
	}
}

func TestCards(t *testing.T) {
	m := models.Manifest{
		{Title: "<script>alert(1)</script>", Filename: "x.md", Created: "2024-01-05", Updated: "2024-01-05", Excerpt: "a & b"},
		{Title: "Second", Filename: "y.md", Created: models.Draft, Updated: models.Draft},
	}

	doc := parse(t, CardsFrom(m, 10))

	cards := doc.Find("div.article-card")
	if cards.Length() != 2 {
		t.Fatalf("Expected 2 cards, got %d", cards.Length())
	}

	if doc.Find("script").Length() != 0 {
		t.Error("Title must be escaped")
	}

	first := cards.First()
	if got := first.Find(".article-title").Text(); got != "<script>alert(1)</script>" {
		t.Errorf("title text = %q", got)
	}

	if got := first.Find(".article-date").Text(); got != "Jan 5, 2024" {
		t.Errorf("date = %q", got)
	}

	if got := first.Find(".article-excerpt").Text(); got != "a & b" {
		t.Errorf("excerpt = %q", got)
	}

	if href, _ := cards.Last().Find("a.article-link").Attr("href"); href != "/articles/11" {
		t.Errorf("second card link = %q, want /articles/11", href)
	}

	if got := cards.Last().Find(".article-date").Text(); got != "Draft" {
		t.Errorf("draft date = %q", got)
	}
}

func TestCards_Empty(t *testing.T) {
	if got := Cards(nil); !strings.Contains(got, "No articles found.") {
		t.Errorf("Cards(nil) = %q", got)
	}
}

func TestArticle(t *testing.T) {
	a := models.Article{
		Title:    "Tom & Jerry",
		Filename: "tj.md",
		Created:  "2024-01-05",
		Updated:  "2024-02-01",
		Content:  "---\ndate: 2024-01-05\n---\n# Tom & Jerry\n\nChase scene.",
	}

	fragment, err := Article(a, markdown.Classic{})
	if err != nil {
		t.Fatalf("Article failed: %v", err)
	}

	doc := parse(t, fragment)

	if got := doc.Find("h2").First().Text(); got != "Tom & Jerry" {
		t.Errorf("heading = %q", got)
	}

	if got := doc.Find("p.article-meta").Text(); got != "Published on Jan 5, 2024" {
		t.Errorf("meta = %q", got)
	}

	if strings.Contains(fragment, "date: 2024-01-05") {
		t.Error("front-matter must not be rendered")
	}

	if !strings.Contains(doc.Text(), "Chase scene.") {
		t.Error("Expected body text in fragment")
	}
}

func TestArticle_RenderFailures(t *testing.T) {
	a := models.Article{Title: "T", Filename: "t.md", Created: models.Draft, Updated: models.Draft, Content: "# T"}

	for name, r := range map[string]Renderer{
		"error": failingRenderer{},
		"panic": panickingRenderer{},
	} {
		t.Run(name, func(t *testing.T) {
			fragment, err := Article(a, r)
			if err == nil {
				t.Error("Expected error to be reported")
			}

			if fragment != ErrorFragment {
				t.Errorf("fragment = %q, want ErrorFragment", fragment)
			}
		})
	}
}
