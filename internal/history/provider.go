// Package history provides document change timelines from version control.
//
// Every provider returns RFC 3339 timestamps oldest first and an empty
// slice when a document has no recorded history. Callers treat any error
// as "no history".
package history

import (
	"context"
	"errors"
	"fmt"
	"os"

	"docblog/internal/config"
)

// Provider errors.
var (
	ErrUnknownProvider      = errors.New("unknown history provider")
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrInvalidResponse      = errors.New("invalid history response")
)

// Provider returns the change timestamps of a document.
type Provider interface {
	History(ctx context.Context, id string) ([]string, error)
}

// New builds the provider selected by cfg.
func New(cfg config.HistoryConfig) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderGit:
		return NewGitProvider(cfg.RepoDir, cfg.DocsPath), nil
	case config.ProviderGitHub:
		return NewGitHubProvider(cfg, os.Getenv(config.EnvGitHubToken)), nil
	case config.ProviderNone, "":
		return None{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
}

// None reports no history for every document.
type None struct{}

// History implements Provider.
func (None) History(context.Context, string) ([]string, error) {
	return nil, nil
}

// Static serves timelines from memory, keyed by document identifier.
type Static map[string][]string

// History implements Provider.
func (s Static) History(_ context.Context, id string) ([]string, error) {
	stamps := s[id]
	if len(stamps) == 0 {
		return nil, nil
	}

	out := make([]string, len(stamps))
	copy(out, stamps)

	return out, nil
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
