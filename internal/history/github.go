package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"docblog/internal/config"
	"docblog/pkg/utils"
)

const maxResponseBytes = 4 << 20

// GitHubProvider reads history from the GitHub REST commits API.
type GitHubProvider struct {
	client      *http.Client
	headers     http.Header
	retryPolicy config.RetryPolicy
	baseURL     string
	owner       string
	repo        string
	branch      string
	docsPath    string
	perPage     int
	maxPages    int
}

type commitEntry struct {
	Commit struct {
		Author struct {
			Date string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// NewGitHubProvider creates a provider from cfg. token may be empty for public repositories.
func NewGitHubProvider(cfg config.HistoryConfig, token string) *GitHubProvider {
	custom := map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": "2022-11-28",
	}
	if token != "" {
		custom["Authorization"] = "Bearer " + token
	}

	retry := cfg.Retry
	if retry.MaxAttempts < 1 {
		retry.MaxAttempts = 1
	}

	return &GitHubProvider{
		client: &http.Client{
			Timeout: cfg.GetTimeout(),
		},
		headers:     utils.NewHTTPHelper().BuildHeaders(custom),
		retryPolicy: retry,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		owner:       cfg.Owner,
		repo:        cfg.Repo,
		branch:      cfg.Branch,
		docsPath:    cfg.DocsPath,
		perPage:     cfg.PerPage,
		maxPages:    cfg.MaxPages,
	}
}

// WithHTTPClient replaces the HTTP client, mainly for tests.
func (g *GitHubProvider) WithHTTPClient(client *http.Client) *GitHubProvider {
	g.client = client

	return g
}

// History implements Provider. The API lists commits newest first; pages
// are fetched until a short page or maxPages and the result is reversed.
func (g *GitHubProvider) History(ctx context.Context, id string) ([]string, error) {
	var stamps []string

	for page := 1; page <= g.maxPages; page++ {
		entries, err := g.fetchPage(ctx, id, page)
		if err != nil {
			return nil, err
		}

		for _, e := range entries {
			if e.Commit.Author.Date == "" {
				return nil, fmt.Errorf("%w: commit without author date", ErrInvalidResponse)
			}

			stamps = append(stamps, e.Commit.Author.Date)
		}

		if len(entries) < g.perPage {
			break
		}
	}

	reverse(stamps)

	return stamps, nil
}

func (g *GitHubProvider) commitsURL(id string, page int) string {
	q := url.Values{}
	q.Set("path", path.Join(g.docsPath, id))
	q.Set("per_page", strconv.Itoa(g.perPage))
	q.Set("page", strconv.Itoa(page))

	if g.branch != "" {
		q.Set("sha", g.branch)
	}

	return fmt.Sprintf("%s/repos/%s/%s/commits?%s",
		g.baseURL, url.PathEscape(g.owner), url.PathEscape(g.repo), q.Encode())
}

func (g *GitHubProvider) fetchPage(ctx context.Context, id string, page int) ([]commitEntry, error) {
	target := g.commitsURL(id, page)

	var lastErr error

	for attempt := 1; attempt <= g.retryPolicy.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, g.retryPolicy.GetRetryDelay(attempt)); err != nil {
				return nil, err
			}
		}

		entries, retryable, err := g.get(ctx, target)
		if err == nil {
			return entries, nil
		}

		lastErr = fmt.Errorf("attempt %d/%d: %w", attempt, g.retryPolicy.MaxAttempts, err)

		if !retryable {
			break
		}
	}

	return nil, lastErr
}

func (g *GitHubProvider) get(ctx context.Context, target string) ([]commitEntry, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header = g.headers.Clone()

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, isRetryableStatus(resp.StatusCode), fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	var entries []commitEntry
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&entries); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	return entries, false, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// isRetryableStatus reports whether a status code is a temporary failure.
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		http.StatusTooManyRequests,
		http.StatusRequestTimeout:
		return true
	}

	return false
}
