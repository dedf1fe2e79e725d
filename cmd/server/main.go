// Package main is the entry point for the experienceintel server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/randytsao24/experienceintel/internal/advisor"
	"github.com/randytsao24/experienceintel/internal/api"
	"github.com/randytsao24/experienceintel/internal/cache"
	"github.com/randytsao24/experienceintel/internal/config"
	"github.com/randytsao24/experienceintel/internal/models"
	"github.com/randytsao24/experienceintel/internal/predict"
	"github.com/randytsao24/experienceintel/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal("configuration error", err)
	}
	if err := cfg.Validate(); err != nil {
		fatal("configuration error", err)
	}
	setupLogging(cfg)

	registry := predict.NewRegistry()
	if err := registry.Load(cfg.ModelDir, cfg.Artifacts); err != nil {
		fatal("loading model artifacts", err, "dir", cfg.ModelDir)
	}
	for _, info := range registry.Artifacts() {
		slog.Info("artifact loaded", "name", info.Name, "kind", info.Kind, "version", info.Version)
	}

	stylesheet := web.NewStylesheet(cfg.AssetsDir, cfg.CacheTTL)
	defer stylesheet.Close()
	if _, err := stylesheet.Load(); err != nil {
		slog.Warn("stylesheet not readable, pages will fail until it is", "path", stylesheet.Path(), "error", err)
	}

	page, err := web.NewPage(stylesheet)
	if err != nil {
		fatal("building page template", err)
	}

	dashboards := cache.New[*models.Dashboard](cfg.CacheTTL)
	defer dashboards.Close()

	router := api.NewRouter(cfg, api.Deps{
		Engine:     advisor.NewEngine(registry, registry.Loaded),
		Models:     registry,
		Artifacts:  registry,
		Page:       page,
		Stylesheet: stylesheet,
		Dashboards: dashboards,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.HTTPTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting",
			"port", cfg.Port,
			"env", cfg.Env,
			"url", "http://localhost:"+cfg.Port,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("server failed", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

func setupLogging(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel(), AddSource: cfg.IsDevelopment()}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler).With("service", "experienceintel"))
}

func fatal(msg string, err error, args ...any) {
	slog.Error(msg, append([]any{"error", err}, args...)...)
	os.Exit(1)
}
