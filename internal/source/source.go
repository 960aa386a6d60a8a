// Package source reads markdown documents from a directory.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"docblog/internal/logger"
	"docblog/internal/models"
)

// ErrSourceNotFound indicates the documents directory is missing or unreadable.
var ErrSourceNotFound = errors.New("document source not found")

const markdownExt = ".md"

// Loader reads the markdown files of one directory of an fs.FS.
type Loader struct {
	fsys fs.FS
	log  *logger.Logger
}

// NewLoader creates a loader over fsys.
func NewLoader(fsys fs.FS, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Discard()
	}

	return &Loader{
		fsys: fsys,
		log:  log,
	}
}

// Load reads every regular *.md file directly inside dir of fsys.
func Load(ctx context.Context, fsys fs.FS, dir string) ([]models.Document, []models.Failure, error) {
	return NewLoader(fsys, nil).Load(ctx, dir)
}

// LoadDir reads the markdown files of a directory on disk.
func LoadDir(ctx context.Context, dir string, log *logger.Logger) ([]models.Document, []models.Failure, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrSourceNotFound, dir, err)
	}

	return NewLoader(os.DirFS(dir), log).Load(ctx, ".")
}

// Load lists dir non-recursively and returns its markdown documents sorted
// by file name. Files that cannot be read are skipped and reported as
// failures; a directory that cannot be listed returns ErrSourceNotFound.
func (l *Loader) Load(ctx context.Context, dir string) ([]models.Document, []models.Failure, error) {
	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrSourceNotFound, dir, err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if !entry.Type().IsRegular() || !IsMarkdown(entry.Name()) {
			continue
		}

		names = append(names, entry.Name())
	}

	sort.Strings(names)

	if len(names) == 0 {
		l.log.Warn("no markdown documents found", "dir", dir)

		return []models.Document{}, nil, nil
	}

	docs := make([]models.Document, 0, len(names))

	var failures []models.Failure

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("load cancelled: %w", err)
		}

		content, err := fs.ReadFile(l.fsys, path.Join(dir, name))
		if err != nil {
			l.log.Warn("skipping unreadable document", "id", name, "error", err)
			failures = append(failures, models.Failure{ID: name, Err: fmt.Errorf("read: %w", err)})

			continue
		}

		docs = append(docs, models.Document{
			ID:      name,
			Content: string(content),
		})
	}

	l.log.Debug("documents loaded", "dir", dir, "count", len(docs), "skipped", len(failures))

	return docs, failures, nil
}

// IsMarkdown reports whether name has a .md extension, ignoring case.
func IsMarkdown(name string) bool {
	ext := path.Ext(name)

	return len(name) > len(ext) && strings.EqualFold(ext, markdownExt)
}
