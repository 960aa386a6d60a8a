// Package main renders a markdown document or a manifest entry to HTML.
package main

import (
	"flag"
	"fmt"
	"os"

	"docblog/internal/config"
	"docblog/internal/extract"
	"docblog/internal/manifest"
	"docblog/internal/markdown"
	"docblog/internal/view"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file (default: configs/blog.yaml if present)")
	file := flag.String("file", "", "Markdown file to render")
	manifestPath := flag.String("manifest", "", "Manifest to read the article from (default: build.output)")
	index := flag.Int("index", -1, "Index of the manifest article to render as a full article view")
	engine := flag.String("engine", "", "Markdown engine: classic or goldmark (overrides render.engine)")

	flag.Parse()

	cfg, _, err := config.LoadOrDefault(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *engine != "" {
		cfg.Render.Engine = *engine
	}

	renderer, err := markdown.NewRenderer(cfg.Render.Engine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	switch {
	case *file != "":
		err = renderFile(*file, renderer)
	case *index >= 0:
		path := *manifestPath
		if path == "" {
			path = cfg.Build.Output
		}

		err = renderEntry(path, *index, renderer)
	default:
		fmt.Fprintln(os.Stderr, "❌ Please provide -file or -index")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func renderFile(path string, renderer markdown.Renderer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	out, err := renderer.Render(extract.Body(string(content)))
	if err != nil {
		return err
	}

	fmt.Println(out)

	return nil
}

func renderEntry(path string, index int, renderer markdown.Renderer) error {
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}

	article, err := view.NewCatalog(m).Open(index)
	if err != nil {
		return err
	}

	fragment, err := view.Article(article, renderer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  %v\n", err)
	}

	fmt.Println(fragment)

	return nil
}
