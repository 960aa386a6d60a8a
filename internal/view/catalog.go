// Package view renders manifest records as HTML fragments for display.
//
// It never fetches metadata of its own: every fragment is built from
// already-resolved records held by a Catalog.
package view

import (
	"errors"
	"fmt"

	"docblog/internal/models"
)

// ErrArticleNotFound is returned for an index outside the catalog.
var ErrArticleNotFound = errors.New("article not found")

// Catalog is an immutable, indexed collection of articles for one load cycle.
type Catalog struct {
	articles models.Manifest
}

// NewCatalog copies m into a new catalog.
func NewCatalog(m models.Manifest) *Catalog {
	return &Catalog{articles: m.Clone()}
}

// Len returns the number of articles.
func (c *Catalog) Len() int {
	return c.articles.Len()
}

// Articles returns a copy of every article in order.
func (c *Catalog) Articles() models.Manifest {
	return c.articles.Clone()
}

// Open returns the article at index i.
func (c *Catalog) Open(i int) (models.Article, error) {
	a, ok := c.articles.At(i)
	if !ok {
		return models.Article{}, fmt.Errorf("%w: index %d of %d", ErrArticleNotFound, i, c.articles.Len())
	}

	return a, nil
}

// Page returns the articles of 1-based page number page together with the
// catalog index of its first article. Pages past the end are empty and
// start at Len.
func (c *Catalog) Page(page, perPage int) (models.Manifest, int) {
	if page < 1 {
		page = 1
	}

	if perPage < 1 {
		perPage = c.articles.Len()
	}

	// (page-1)*perPage overflows for huge page numbers.
	if page-1 >= c.Pages(perPage) {
		return models.Manifest{}, c.articles.Len()
	}

	start := (page - 1) * perPage
	if start >= c.articles.Len() {
		return models.Manifest{}, start
	}

	end := min(start+perPage, c.articles.Len())

	return c.articles[start:end].Clone(), start
}

// Pages returns how many pages of perPage articles the catalog fills.
func (c *Catalog) Pages(perPage int) int {
	if perPage < 1 || c.articles.Len() == 0 {
		return 1
	}

	return (c.articles.Len() + perPage - 1) / perPage
}
