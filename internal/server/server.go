// Package server exposes a catalog over HTTP.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"docblog/internal/config"
	"docblog/internal/logger"
	"docblog/internal/manifest"
	"docblog/internal/view"

	"golang.org/x/net/html"
)

// Handler serves the article listing, single articles and the manifest.
type Handler struct {
	catalog  *view.Catalog
	renderer view.Renderer
	logger   *logger.Logger
	mux      *http.ServeMux
	theme    string
	perPage  int
}

// New creates a handler for catalog using the ui settings of cfg.
func New(catalog *view.Catalog, renderer view.Renderer, ui config.UIConfig, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}

	h := &Handler{
		catalog:  catalog,
		renderer: renderer,
		logger:   log,
		mux:      http.NewServeMux(),
		theme:    ui.DefaultTheme,
		perPage:  ui.ArticlesPerPage,
	}

	h.registerRoutes(h.mux)

	return h
}

func (h *Handler) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("GET /articles/{index}", h.handleArticle)
	mux.HandleFunc("GET /data/manifest.json", h.handleManifest)
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := 1

	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}

		page = n
	}

	articles, offset := h.catalog.Page(page, h.perPage)
	stats := view.ManifestStats(h.catalog.Articles())

	var b strings.Builder

	b.WriteString(`<div class="stats">`)
	b.WriteString(`<span id="article-count">` + strconv.Itoa(stats.Total) + `</span>`)
	b.WriteString(`<span id="last-updated">` + stats.LastUpdated + `</span>`)
	b.WriteString("</div>\n")
	b.WriteString(`<div id="articles">` + view.CardsFrom(articles, offset) + "</div>\n")
	b.WriteString(h.pager(page))

	h.writePage(w, http.StatusOK, "Articles", b.String())
}

func (h *Handler) pager(page int) string {
	pages := h.catalog.Pages(h.perPage)
	if pages <= 1 {
		return ""
	}

	var b strings.Builder

	b.WriteString(`<nav class="pager">`)

	if page > 1 {
		b.WriteString(fmt.Sprintf(`<a rel="prev" href="/?page=%d">Newer</a>`, page-1))
	}

	b.WriteString(fmt.Sprintf(`<span>%d / %d</span>`, min(page, pages), pages))

	if page < pages {
		b.WriteString(fmt.Sprintf(`<a rel="next" href="/?page=%d">Older</a>`, page+1))
	}

	b.WriteString("</nav>\n")

	return b.String()
}

func (h *Handler) handleArticle(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid article index", http.StatusBadRequest)
		return
	}

	article, err := h.catalog.Open(index)
	if errors.Is(err, view.ErrArticleNotFound) {
		http.NotFound(w, r)
		return
	}

	fragment, err := view.Article(article, h.renderer)
	if err != nil {
		// The fragment already carries the inline error message.
		h.logger.Error("article render failed", "index", index, "filename", article.Filename, "error", err)
	}

	h.writePage(w, http.StatusOK, article.Title, `<article class="article">`+fragment+`</article>`)
}

func (h *Handler) handleManifest(w http.ResponseWriter, _ *http.Request) {
	data, err := manifest.Encode(h.catalog.Articles(), false)
	if err != nil {
		h.logger.Error("manifest encode failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(data); err != nil {
		h.logger.Debug("manifest write failed", "error", err)
	}
}

func (h *Handler) writePage(w http.ResponseWriter, status int, title, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	page := "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>" + html.EscapeString(title) +
		"</title></head>\n<body class=\"theme-" + html.EscapeString(h.theme) + "\">\n" + body + "</body></html>\n"

	if _, err := w.Write([]byte(page)); err != nil {
		h.logger.Debug("response write failed", "error", err)
	}
}
