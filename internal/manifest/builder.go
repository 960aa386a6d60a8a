// Package manifest assembles, validates and stores the article manifest.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"docblog/internal/config"
	"docblog/internal/extract"
	"docblog/internal/logger"
	"docblog/internal/models"
)

// ErrExtractionPanic wraps a panic recovered while extracting one document.
var ErrExtractionPanic = errors.New("extraction panicked")

// Failure is a document skipped during a build.
type Failure = models.Failure

const (
	defaultWorkers        = 4
	defaultHistoryTimeout = 5 * time.Second
)

// Builder turns documents into a sorted manifest.
type Builder struct {
	provider       extract.HistoryProvider
	logger         *logger.Logger
	workers        int
	historyTimeout time.Duration
}

// NewBuilder creates a builder with default concurrency and history timeout.
// provider may be nil, in which case dates come from front-matter only.
func NewBuilder(provider extract.HistoryProvider, log *logger.Logger) *Builder {
	if log == nil {
		log = logger.Discard()
	}

	return &Builder{
		provider:       provider,
		logger:         log,
		workers:        defaultWorkers,
		historyTimeout: defaultHistoryTimeout,
	}
}

// NewBuilderWithConfig creates a builder using the build and history settings of cfg.
func NewBuilderWithConfig(cfg *config.Config, provider extract.HistoryProvider, log *logger.Logger) *Builder {
	b := NewBuilder(provider, log)

	if cfg.Build.Workers > 0 {
		b.workers = cfg.Build.Workers
	}

	if timeout := cfg.History.GetTimeout(); timeout > 0 {
		b.historyTimeout = timeout
	}

	return b
}

// Build extracts every document and returns the manifest sorted newest
// first. Documents that fail extraction or validation are left out and
// returned as failures. The only error is cancellation of ctx, in which case
// no manifest is returned.
func (b *Builder) Build(ctx context.Context, docs []models.Document) (models.Manifest, []Failure, error) {
	articles := make([]models.Article, len(docs))
	errs := make([]error, len(docs))

	var (
		wg  sync.WaitGroup
		sem = make(chan struct{}, b.workers)
	)

	for i, doc := range docs {
		wg.Add(1)
		go func(index int, d models.Document) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			articles[index], errs[index] = b.extract(ctx, d)
		}(i, doc)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("build cancelled: %w", err)
	}

	manifest := make(models.Manifest, 0, len(docs))

	var failures []Failure

	for i, doc := range docs {
		if errs[i] != nil {
			b.logger.Warn("skipping document", "id", doc.ID, "error", errs[i])
			failures = append(failures, Failure{ID: doc.ID, Err: errs[i]})

			continue
		}

		manifest = append(manifest, articles[i])
	}

	Sort(manifest)

	b.logger.Info("manifest built", "articles", len(manifest), "skipped", len(failures))

	return manifest, failures, nil
}

// extract builds the article for one document.
func (b *Builder) extract(ctx context.Context, doc models.Document) (article models.Article, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrExtractionPanic, r)
		}
	}()

	if _, err := extract.ParseFrontMatter(doc.Content); err != nil {
		return models.Article{}, err
	}

	summary := extract.Summarize(doc.Content)

	hctx, cancel := context.WithTimeout(ctx, b.historyTimeout)
	defer cancel()

	dates := extract.ResolveDates(hctx, doc, b.provider)
	b.logger.Debug("dates resolved", "id", doc.ID, "source", dates.Source, "created", dates.Created)

	title := summary.Title
	if title == "" {
		title = extract.DeriveTitle(doc.ID)
	}

	article = models.Article{
		Title:    title,
		Filename: doc.ID,
		Created:  dates.Created,
		Updated:  dates.Updated,
		Excerpt:  summary.Excerpt,
		Content:  doc.Content,
	}

	if err := Validate(article); err != nil {
		return models.Article{}, err
	}

	return article, nil
}

// Sort orders articles by creation date, newest first. Dates compare as
// plain strings, so Draft records sort ahead of every ISO date. Equal dates
// keep their relative order.
func Sort(articles models.Manifest) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Created > articles[j].Created
	})
}
