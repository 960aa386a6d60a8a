// Package main provides the manifest builder command.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docblog/internal/config"
	"docblog/internal/history"
	"docblog/internal/logger"
	"docblog/internal/manifest"
	"docblog/internal/models"
	"docblog/internal/source"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file (default: configs/blog.yaml if present)")
	docsDir := flag.String("docs", "", "Documents directory (overrides build.docs_dir)")
	output := flag.String("output", "", "Manifest output path (overrides build.output)")
	provider := flag.String("history", "", "History provider: git, github or none (overrides history.provider)")
	workers := flag.Int("workers", 0, "Concurrent extraction workers (overrides build.workers)")
	strict := flag.Bool("strict", false, "Exit with status 1 when any document is skipped")
	showUsage := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *showUsage {
		printUsage()
		os.Exit(0)
	}

	cfg, loaded, err := config.LoadOrDefault(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if loaded {
		fmt.Printf("⚙️  Configuration loaded: %s\n", cfg)
	} else {
		fmt.Println("⚙️  No configuration file found, using defaults")
	}

	if *docsDir != "" {
		cfg.Build.DocsDir = *docsDir
		cfg.History.DocsPath = ""
	}

	if *output != "" {
		cfg.Build.Output = *output
	}

	if *provider != "" {
		cfg.History.Provider = *provider
	}

	if *workers > 0 {
		cfg.Build.Workers = *workers
	}

	if err := cfg.Finalize(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLoggerWithWriter(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, *strict); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, strict bool) error {
	startTime := time.Now()

	fmt.Printf("📂 Documents: %s\n", cfg.Build.DocsDir)
	fmt.Printf("🕒 History:   %s\n", cfg.History.Provider)
	fmt.Printf("🎯 Output:    %s\n\n", cfg.Build.Output)

	docs, readFailures, err := source.LoadDir(ctx, cfg.Build.DocsDir, log)
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}

	hist, err := history.New(cfg.History)
	if err != nil {
		return fmt.Errorf("failed to create history provider: %w", err)
	}

	builder := manifest.NewBuilderWithConfig(cfg, hist, log.With("component", "builder"))

	articles, failures, err := builder.Build(ctx, docs)
	if err != nil {
		return err
	}

	if err := manifest.Write(cfg.Build.Output, articles, cfg.Build.PrettyPrint); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	skipped := append(readFailures, failures...)
	printReport(len(docs)+len(readFailures), articles, skipped, time.Since(startTime))

	if strict && len(skipped) > 0 {
		return fmt.Errorf("%d document(s) skipped in strict mode", len(skipped))
	}

	return nil
}

func printReport(scanned int, articles models.Manifest, skipped []models.Failure, elapsed time.Duration) {
	drafts := 0

	for _, a := range articles {
		if a.IsDraft() {
			drafts++
		}
	}

	fmt.Println("------------------------------------------------")
	fmt.Println("📊 Summary Report")
	fmt.Println("------------------------------------------------")
	fmt.Printf("Scanned:  %d documents\n", scanned)
	fmt.Printf("Written:  %d articles (%d drafts)\n", articles.Len(), drafts)
	fmt.Printf("Skipped:  %d\n", len(skipped))
	fmt.Printf("Duration: %v\n", elapsed.Round(time.Millisecond))

	if len(skipped) > 0 {
		fmt.Println("⚠️  Skipped documents:")

		for _, f := range skipped {
			fmt.Printf("  - %v\n", f)
		}
	}

	fmt.Println("------------------------------------------------")
	fmt.Println("✨ Build complete!")
}

func printUsage() {
	fmt.Println("Usage: ./bin/builder [OPTIONS]")
	fmt.Println()
	fmt.Println("Builds the article manifest from a directory of markdown documents.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/builder")
	fmt.Println("  ./bin/builder -docs Docs -output public/data/manifest.json")
	fmt.Println("  GITHUB_TOKEN=... ./bin/builder -config configs/blog.yaml -history github")
}
