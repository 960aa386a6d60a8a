// Package config provides configuration management for the blog tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"docblog/pkg/utils"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where binaries look for a configuration file when none is given.
const DefaultPath = "configs/blog.yaml"

// Environment variables read by ApplyEnv.
const (
	EnvGitHubToken = "GITHUB_TOKEN"
	EnvLogLevel    = "BLOG_LOG_LEVEL"
)

// History providers.
const (
	ProviderGit    = "git"
	ProviderGitHub = "github"
	ProviderNone   = "none"
)

// Markdown engines.
const (
	EngineClassic  = "classic"
	EngineGoldmark = "goldmark"
)

// Configuration validation errors.
var (
	ErrMissingDocsDir           = errors.New("build.docs_dir is required")
	ErrMissingOutput            = errors.New("build.output is required")
	ErrInvalidWorkers           = errors.New("build.workers must be at least 1")
	ErrInvalidProvider          = errors.New("history.provider must be one of: git, github, none")
	ErrMissingGitHubRepo        = errors.New("history.owner and history.repo are required for the github provider")
	ErrInvalidBaseURL           = errors.New("history.base_url must be an absolute http(s) URL")
	ErrInvalidPerPage           = errors.New("history.per_page must be between 1 and 100")
	ErrInvalidMaxPages          = errors.New("history.max_pages must be at least 1")
	ErrInvalidTimeout           = errors.New("history.timeout_sec must be at least 1")
	ErrInvalidMaxAttempts       = errors.New("history.retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("history.retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("history.retry.backoff_multiplier must be >= 1.0")
	ErrInvalidEngine            = errors.New("render.engine must be one of: classic, goldmark")
	ErrInvalidArticlesPerPage   = errors.New("ui.articles_per_page must be at least 1")
	ErrInvalidTheme             = errors.New("ui.default_theme must be 'dark' or 'light'")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat         = errors.New("logging.format must be 'text' or 'json'")
)

// Config represents the complete blog configuration.
type Config struct {
	Build   BuildConfig   `yaml:"build"`
	History HistoryConfig `yaml:"history"`
	Render  RenderConfig  `yaml:"render"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// BuildConfig controls manifest assembly.
type BuildConfig struct {
	DocsDir     string `yaml:"docs_dir"`
	Output      string `yaml:"output"`
	Workers     int    `yaml:"workers"`
	PrettyPrint bool   `yaml:"pretty_print"`
}

// HistoryConfig selects and configures the version history provider.
type HistoryConfig struct {
	Provider   string      `yaml:"provider"`
	RepoDir    string      `yaml:"repo_dir"`
	Owner      string      `yaml:"owner"`
	Repo       string      `yaml:"repo"`
	Branch     string      `yaml:"branch"`
	DocsPath   string      `yaml:"docs_path"`
	BaseURL    string      `yaml:"base_url"`
	Retry      RetryPolicy `yaml:"retry"`
	PerPage    int         `yaml:"per_page"`
	MaxPages   int         `yaml:"max_pages"`
	TimeoutSec int         `yaml:"timeout_sec"`
}

// RetryPolicy defines retry behavior for remote history lookups.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
}

// RenderConfig selects the markdown engine.
type RenderConfig struct {
	Engine string `yaml:"engine"`
}

// UIConfig holds display settings used by the server.
type UIConfig struct {
	DefaultTheme    string `yaml:"default_theme"`
	ArticlesPerPage int    `yaml:"articles_per_page"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Build: BuildConfig{
			DocsDir:     "Docs",
			Output:      "public/data/manifest.json",
			Workers:     4,
			PrettyPrint: true,
		},
		History: HistoryConfig{
			Provider:   ProviderGit,
			RepoDir:    ".",
			Branch:     "main",
			BaseURL:    "https://api.github.com",
			PerPage:    100,
			MaxPages:   10,
			TimeoutSec: 5,
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    500,
				MaxDelayMs:        5000,
				BackoffMultiplier: 2.0,
			},
		},
		Render: RenderConfig{Engine: EngineClassic},
		UI: UIConfig{
			DefaultTheme:    "dark",
			ArticlesPerPage: 12,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig loads configuration from a YAML file. Keys missing from the
// file keep their Default values.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.ApplyEnv()
	cfg.applyDerived()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads filepath, or DefaultPath when filepath is empty.
// When neither names an existing file the defaults are returned and
// loaded is false.
func LoadOrDefault(filepath string) (cfg *Config, loaded bool, err error) {
	if filepath == "" {
		if _, statErr := os.Stat(DefaultPath); statErr != nil {
			cfg = Default()
			cfg.ApplyEnv()
			cfg.applyDerived()

			return cfg, false, nil
		}

		filepath = DefaultPath
	}

	cfg, err = LoadConfig(filepath)
	if err != nil {
		return nil, false, err
	}

	return cfg, true, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv applies environment overrides.
func (c *Config) ApplyEnv() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
}

// applyDerived fills settings that default to other settings.
func (c *Config) applyDerived() {
	if c.History.DocsPath == "" {
		c.History.DocsPath = c.Build.DocsDir
	}
}

// Finalize re-derives dependent settings after callers override fields
// (for example from command-line flags) and validates the result.
func (c *Config) Finalize() error {
	c.applyDerived()

	return c.Validate()
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Build.DocsDir == "" {
		return ErrMissingDocsDir
	}

	if c.Build.Output == "" {
		return ErrMissingOutput
	}

	if c.Build.Workers < 1 {
		return ErrInvalidWorkers
	}

	if err := c.History.validate(); err != nil {
		return err
	}

	if c.Render.Engine != EngineClassic && c.Render.Engine != EngineGoldmark {
		return ErrInvalidEngine
	}

	if c.UI.ArticlesPerPage < 1 {
		return ErrInvalidArticlesPerPage
	}

	if c.UI.DefaultTheme != "dark" && c.UI.DefaultTheme != "light" {
		return ErrInvalidTheme
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

func (h *HistoryConfig) validate() error {
	switch h.Provider {
	case ProviderGit, ProviderNone:
		return nil
	case ProviderGitHub:
	default:
		return ErrInvalidProvider
	}

	if h.Owner == "" || h.Repo == "" {
		return ErrMissingGitHubRepo
	}

	if !utils.NewHTTPHelper().IsValidURL(h.BaseURL) {
		return ErrInvalidBaseURL
	}

	if h.PerPage < 1 || h.PerPage > 100 {
		return ErrInvalidPerPage
	}

	if h.MaxPages < 1 {
		return ErrInvalidMaxPages
	}

	if h.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if h.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if h.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if h.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	return nil
}

// GetTimeout returns the per-document history lookup timeout.
func (h *HistoryConfig) GetTimeout() time.Duration {
	return time.Duration(h.TimeoutSec) * time.Second
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Docs: %s, Output: %s, History: %s, Engine: %s}",
		c.Build.DocsDir,
		c.Build.Output,
		c.History.Provider,
		c.Render.Engine,
	)
}
