// Package main serves the article listing and rendered articles over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docblog/internal/config"
	"docblog/internal/logger"
	"docblog/internal/manifest"
	"docblog/internal/markdown"
	"docblog/internal/server"
	"docblog/internal/view"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file (default: configs/blog.yaml if present)")
	addr := flag.String("addr", ":8080", "Listen address")
	manifestPath := flag.String("manifest", "", "Manifest to serve (default: build.output)")

	flag.Parse()

	cfg, _, err := config.LoadOrDefault(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLoggerWithWriter(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	path := *manifestPath
	if path == "" {
		path = cfg.Build.Output
	}

	m, err := manifest.Load(path)
	if err != nil {
		log.Error("❌ Failed to load manifest", "path", path, "error", err)
		os.Exit(1)
	}

	renderer, err := markdown.NewRenderer(cfg.Render.Engine)
	if err != nil {
		log.Error("❌ Invalid render engine", "error", err)
		os.Exit(1)
	}

	catalog := view.NewCatalog(m)
	stats := view.ManifestStats(m)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           server.New(catalog, renderer, cfg.UI, log.With("component", "server")),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info(fmt.Sprintf("🚀 Serving %d articles on %s", stats.Total, *addr), "last_updated", stats.LastUpdated)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("❌ Server failed", "error", err)
		os.Exit(1)
	}

	log.Info("👋 Server stopped")
}
