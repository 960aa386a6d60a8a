// Package main prints the manifest as an aligned table.
package main

import (
	"flag"
	"fmt"
	"os"

	"docblog/internal/config"
	"docblog/internal/manifest"
	"docblog/internal/table"
	"docblog/internal/view"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file (default: configs/blog.yaml if present)")
	manifestPath := flag.String("manifest", "", "Manifest to list (default: build.output)")
	titleWidth := flag.Int("title-width", 48, "Maximum display width of the title column")
	showExcerpt := flag.Bool("excerpt", false, "Include the excerpt column")

	flag.Parse()

	cfg, _, err := config.LoadOrDefault(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	path := *manifestPath
	if path == "" {
		path = cfg.Build.Output
	}

	m, err := manifest.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	header := []string{"#", "Created", "Updated", "Title", "Filename"}
	if *showExcerpt {
		header = append(header, "Excerpt")
	}

	rows := make([][]string, 0, m.Len())

	for i, a := range m {
		row := []string{
			fmt.Sprint(i),
			view.FormatDate(a.Created),
			view.FormatDate(a.Updated),
			table.Truncate(a.Title, *titleWidth),
			a.Filename,
		}

		if *showExcerpt {
			row = append(row, table.Truncate(a.Excerpt, *titleWidth))
		}

		rows = append(rows, row)
	}

	stats := view.ManifestStats(m)

	fmt.Printf("📚 %s: %d articles", path, stats.Total)

	if stats.LastUpdated != "" {
		fmt.Printf(", last updated %s", stats.LastUpdated)
	}

	fmt.Print("\n\n")
	fmt.Print(table.Render(header, rows))
}
