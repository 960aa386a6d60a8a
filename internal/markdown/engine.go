package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Engine names accepted by NewRenderer.
const (
	EngineClassic  = "classic"
	EngineGoldmark = "goldmark"
)

// ErrUnknownEngine is returned for an unsupported engine name.
var ErrUnknownEngine = errors.New("unknown markdown engine")

// Renderer turns markdown into an HTML fragment.
type Renderer interface {
	Render(markdown string) (string, error)
}

// NewRenderer returns the renderer for the named engine. An empty name
// selects the classic engine.
func NewRenderer(engine string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineClassic:
		return Classic{}, nil
	case EngineGoldmark:
		return NewGoldmark(), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
}

// Classic is the built-in line-oriented engine.
type Classic struct{}

// Render implements Renderer. It never fails.
func (Classic) Render(markdown string) (string, error) {
	return Render(markdown), nil
}

// Goldmark renders CommonMark with GitHub extensions. Its output is not
// byte-compatible with Classic; it exists for corpora that need tables or
// nested lists.
type Goldmark struct {
	md goldmark.Markdown
}

// NewGoldmark builds a goldmark-backed renderer with GFM enabled and raw
// HTML passed through, matching the classic engine's lack of sanitizing.
func NewGoldmark() *Goldmark {
	return &Goldmark{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Render implements Renderer.
func (g *Goldmark) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}

	return buf.String(), nil
}
