package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/anthon-rodrigues/docprocessor/internal/classify/zeroshot"
	"github.com/anthon-rodrigues/docprocessor/internal/common"
	"github.com/anthon-rodrigues/docprocessor/internal/compliance"
	"github.com/anthon-rodrigues/docprocessor/internal/export"
	"github.com/anthon-rodrigues/docprocessor/internal/extract"
	"github.com/anthon-rodrigues/docprocessor/internal/ingest"
	"github.com/anthon-rodrigues/docprocessor/internal/pipeline"
	"github.com/anthon-rodrigues/docprocessor/internal/repository"
	"github.com/anthon-rodrigues/docprocessor/internal/server"

	"github.com/anthon-rodrigues/docprocessor/constants"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open document store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	healthCtx, cancelHealth := common.WithTimeout(ctx, 5*time.Second)
	err = store.HealthCheck(healthCtx)
	cancelHealth()
	if err != nil {
		logger.Error("document store health check failed", "error", err)
		os.Exit(1)
	}
	logger.Info("document store health OK")

	if err := os.MkdirAll(cfg.Server.UploadDir, 0o755); err != nil {
		logger.Error("failed to create upload directory", "dir", cfg.Server.UploadDir, "error", err)
		os.Exit(1)
	}

	classifier := zeroshot.NewClient(zeroshot.Config{
		BaseURL: cfg.Classifier.BaseURL,
		APIKey:  cfg.Classifier.APIKey,
		Model:   cfg.Classifier.Model,
		Timeout: cfg.Classifier.Timeout,
	}, logger)

	processor := pipeline.NewProcessor(
		logger,
		extract.NewFileExtractor(logger),
		classifier,
		compliance.NewEngine(compliance.DefaultRules(), logger),
		store,
	)

	// Drop-folder watcher, if configured.
	if len(cfg.Ingest.WatchDirs) > 0 {
		events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:       cfg.Ingest.WatchDirs,
			InitialScan: true,
			Debounce:    cfg.Ingest.Debounce,
		})
		if err != nil {
			logger.Error("failed to start watcher", "error", err)
			os.Exit(1)
		}
		runner := ingest.NewRunner(processor, constants.DepthAll, logger)
		go runner.Run(ctx, events)
		go func() {
			for err := range errs {
				logger.Error("watcher error", "error", err)
			}
		}()
		logger.Info("watching drop folders", "dirs", strings.Join(cfg.Ingest.WatchDirs, ","))
	}

	handler := server.NewDocumentHandler(
		processor,
		store,
		export.NewService(store, logger),
		cfg.Server.UploadDir,
		logger,
	)
	router := server.NewRouter(handler, logger)

	srv := &http.Server{
		Addr:         cfg.Server.HTTPAddr,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited gracefully")
}

// openStore picks the backend from the DSN: "sqlite:<path>" opens the
// embedded store, anything else is treated as a Postgres DSN.
func openStore(ctx context.Context, cfg *common.Config, logger *slog.Logger) (repository.DocumentStore, error) {
	if path, ok := strings.CutPrefix(cfg.Database.DSN, "sqlite:"); ok {
		return repository.OpenSQLite(path, logger)
	}
	return repository.OpenPostgres(ctx, repository.Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
}
