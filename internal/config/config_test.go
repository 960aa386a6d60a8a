package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// validConfigYAML is a minimal valid configuration.
const validConfigYAML = `
build:
  docs_dir: "articles"
  output: "out/manifest.json"
  workers: 2
  pretty_print: false
history:
  provider: "github"
  owner: "octo"
  repo: "blog"
  retry:
    max_attempts: 5
render:
  engine: "goldmark"
ui:
  articles_per_page: 6
logging:
  level: "debug"
  format: "json"
`

// --- LoadConfig Tests ---

func TestLoadConfig_Valid(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	path := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Build.DocsDir != "articles" {
		t.Errorf("DocsDir = %q, want %q", cfg.Build.DocsDir, "articles")
	}

	if cfg.Build.PrettyPrint {
		t.Error("Expected pretty_print false from file")
	}

	if cfg.History.Provider != ProviderGitHub {
		t.Errorf("Provider = %q, want %q", cfg.History.Provider, ProviderGitHub)
	}

	if cfg.History.Retry.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.History.Retry.MaxAttempts)
	}

	if cfg.Render.Engine != EngineGoldmark {
		t.Errorf("Engine = %q, want %q", cfg.Render.Engine, EngineGoldmark)
	}
}

func TestLoadConfig_KeepsDefaultsForMissingKeys(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	path := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.History.BaseURL != "https://api.github.com" {
		t.Errorf("BaseURL = %q, want default", cfg.History.BaseURL)
	}

	if cfg.History.Retry.BackoffMultiplier != 2.0 {
		t.Errorf("BackoffMultiplier = %v, want default 2.0", cfg.History.Retry.BackoffMultiplier)
	}

	if cfg.UI.DefaultTheme != "dark" {
		t.Errorf("DefaultTheme = %q, want dark", cfg.UI.DefaultTheme)
	}

	if cfg.History.DocsPath != "articles" {
		t.Errorf("DocsPath = %q, want docs_dir %q", cfg.History.DocsPath, "articles")
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv(EnvLogLevel, "WARN")
	path := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := createTempConfigFile(t, "build: [unclosed")

	_, err := LoadConfig(path)
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	path := createTempConfigFile(t, "history:\n  provider: \"svn\"\n")

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidProvider) {
		t.Errorf("Expected ErrInvalidProvider, got %v", err)
	}
}

func TestLoadOrDefault_NoFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Chdir(t.TempDir())

	cfg, loaded, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}

	if loaded {
		t.Error("Expected loaded=false without a config file")
	}

	if cfg.Build.DocsDir != "Docs" || cfg.History.DocsPath != "Docs" {
		t.Errorf("Unexpected defaults: %+v", cfg.Build)
	}
}

// --- Validation Tests ---

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"missing docs dir", func(c *Config) { c.Build.DocsDir = "" }, ErrMissingDocsDir},
		{"missing output", func(c *Config) { c.Build.Output = "" }, ErrMissingOutput},
		{"zero workers", func(c *Config) { c.Build.Workers = 0 }, ErrInvalidWorkers},
		{"unknown provider", func(c *Config) { c.History.Provider = "hg" }, ErrInvalidProvider},
		{"github without repo", func(c *Config) {
			c.History.Provider = ProviderGitHub
			c.History.Owner = "octo"
		}, ErrMissingGitHubRepo},
		{"github bad base url", func(c *Config) {
			c.History.Provider = ProviderGitHub
			c.History.Owner, c.History.Repo = "octo", "blog"
			c.History.BaseURL = "api.github.com"
		}, ErrInvalidBaseURL},
		{"github per page too large", func(c *Config) {
			c.History.Provider = ProviderGitHub
			c.History.Owner, c.History.Repo = "octo", "blog"
			c.History.PerPage = 101
		}, ErrInvalidPerPage},
		{"github zero pages", func(c *Config) {
			c.History.Provider = ProviderGitHub
			c.History.Owner, c.History.Repo = "octo", "blog"
			c.History.MaxPages = 0
		}, ErrInvalidMaxPages},
		{"github zero timeout", func(c *Config) {
			c.History.Provider = ProviderGitHub
			c.History.Owner, c.History.Repo = "octo", "blog"
			c.History.TimeoutSec = 0
		}, ErrInvalidTimeout},
		{"github zero attempts", func(c *Config) {
			c.History.Provider = ProviderGitHub
			c.History.Owner, c.History.Repo = "octo", "blog"
			c.History.Retry.MaxAttempts = 0
		}, ErrInvalidMaxAttempts},
		{"github negative delay", func(c *Config) {
			c.History.Provider = ProviderGitHub
			c.History.Owner, c.History.Repo = "octo", "blog"
			c.History.Retry.InitialDelayMs = -1
		}, ErrInvalidInitialDelay},
		{"github shrinking backoff", func(c *Config) {
			c.History.Provider = ProviderGitHub
			c.History.Owner, c.History.Repo = "octo", "blog"
			c.History.Retry.BackoffMultiplier = 0.5
		}, ErrInvalidBackoffMultiplier},
		{"unknown engine", func(c *Config) { c.Render.Engine = "blackfriday" }, ErrInvalidEngine},
		{"zero per page", func(c *Config) { c.UI.ArticlesPerPage = 0 }, ErrInvalidArticlesPerPage},
		{"unknown theme", func(c *Config) { c.UI.DefaultTheme = "sepia" }, ErrInvalidTheme},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }, ErrInvalidLogLevel},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }, ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConfig_Validate_GitSkipsRemoteChecks(t *testing.T) {
	cfg := Default()
	cfg.History.PerPage = 0
	cfg.History.TimeoutSec = 0

	if err := cfg.Validate(); err != nil {
		t.Errorf("git provider should ignore remote settings, got %v", err)
	}
}

func TestConfig_Finalize(t *testing.T) {
	cfg := Default()
	cfg.Build.DocsDir = "posts"
	cfg.History.DocsPath = ""

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if cfg.History.DocsPath != "posts" {
		t.Errorf("DocsPath = %q, want posts", cfg.History.DocsPath)
	}
}

// --- RetryPolicy Tests ---

func TestRetryPolicy_GetRetryDelay(t *testing.T) {
	rp := RetryPolicy{
		InitialDelayMs:    100,
		MaxDelayMs:        1000,
		BackoffMultiplier: 2.0,
	}

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 0},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, 1000 * time.Millisecond}, // capped
		{10, 1000 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			got := rp.GetRetryDelay(tt.attempt)
			if got != tt.expected {
				t.Errorf("GetRetryDelay(%d) = %v, want %v", tt.attempt, got, tt.expected)
			}
		})
	}
}

func TestHistoryConfig_GetTimeout(t *testing.T) {
	h := HistoryConfig{TimeoutSec: 5}

	if got := h.GetTimeout(); got != 5*time.Second {
		t.Errorf("GetTimeout() = %v, want 5s", got)
	}
}

func TestConfig_String(t *testing.T) {
	want := "Config{Docs: Docs, Output: public/data/manifest.json, History: git, Engine: classic}"

	if got := Default().String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestConfig_SaveConfig(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	cfg := Default()
	cfg.Build.DocsDir = "notes"
	cfg.History.DocsPath = "notes"

	savePath := filepath.Join(t.TempDir(), "saved_config.yaml")

	if err := cfg.SaveConfig(savePath); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(savePath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if loaded.Build.DocsDir != "notes" || loaded.UI.ArticlesPerPage != 12 {
		t.Error("Loaded config does not match saved config")
	}
}

func TestLoadConfig_ShippedSample(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "blog.yaml"))
	if err != nil {
		t.Fatalf("Shipped sample config must load: %v", err)
	}

	if cfg.History.DocsPath != cfg.Build.DocsDir {
		t.Errorf("DocsPath = %q, want it to follow docs_dir %q", cfg.History.DocsPath, cfg.Build.DocsDir)
	}
}
