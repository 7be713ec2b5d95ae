package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/anthon-rodrigues/docprocessor/constants"
	"github.com/anthon-rodrigues/docprocessor/internal/classify/zeroshot"
	"github.com/anthon-rodrigues/docprocessor/internal/common"
	"github.com/anthon-rodrigues/docprocessor/internal/compliance"
	"github.com/anthon-rodrigues/docprocessor/internal/export"
	"github.com/anthon-rodrigues/docprocessor/internal/extract"
	"github.com/anthon-rodrigues/docprocessor/internal/ingest"
	"github.com/anthon-rodrigues/docprocessor/internal/pipeline"
	"github.com/anthon-rodrigues/docprocessor/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir      = flag.String("dir", "", "directory to process documents from (required)")
		out      = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		depthStr = flag.String("depth", "all", "processing depth: classify, extract, or all")
		dbURL    = flag.String("db", "", "document store DSN (defaults to DB_URL, then a local SQLite file)")
		watch    = flag.Bool("watch", false, "keep watching the directory after the initial scan")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "documents.xlsx")
	}

	depth, err := constants.ParseDepth(*depthStr)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := common.LoadConfig()
	dsn := *dbURL
	if dsn == "" {
		dsn = cfg.Database.DSN
	}
	if dsn == "" {
		dsn = "sqlite:" + filepath.Join(filepath.Dir(*dir), "documents.db")
	}

	store, err := openStore(ctx, dsn, cfg, logger)
	if err != nil {
		logger.Error("failed to open document store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if depth != constants.DepthExtract && cfg.Classifier.BaseURL == "" {
		logger.Error("CLASSIFIER_URL is required for this depth", "depth", string(depth))
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
	runner := ingest.NewRunner(processor, depth, logger)

	logger.Info("starting scan", "dir", *dir, "depth", string(depth))
	results, stats, err := runner.IngestDirectory(ctx, *dir, nil, true)
	if err != nil {
		logger.Error("failed to scan directory", "error", err)
		os.Exit(1)
	}
	logger.Info("scan complete",
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed)

	if *watch {
		events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:    []string{*dir},
			Debounce: cfg.Ingest.Debounce,
		})
		if err != nil {
			logger.Error("failed to start watcher", "error", err)
			os.Exit(1)
		}
		go func() {
			for err := range errs {
				logger.Error("watcher error", "error", err)
			}
		}()
		logger.Info("watching for new documents", "dir", *dir)
		runner.Run(ctx, events)
	}

	// Export to XLSX (only meaningful at full depth, which persists).
	if depth == constants.DepthAll {
		logger.Info("exporting to XLSX", "output", *out)
		exportService := export.NewService(store, logger)
		xlsxBytes, err := exportService.ExportDocumentsXLSX(ctx, int(stats.Succeeded))
		if err != nil {
			logger.Error("failed to export documents", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*out, xlsxBytes, 0o644); err != nil {
			logger.Error("failed to write output file", "error", err)
			os.Exit(1)
		}
	}

	failures := 0
	for _, res := range results {
		if res.Err != "" {
			failures++
		}
	}

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Files matched: %d\n", stats.Matched)
	fmt.Printf("- Files processed: %d\n", stats.Succeeded)
	fmt.Printf("- Failures: %d\n", failures)
	if depth == constants.DepthAll {
		fmt.Printf("- Output: %s\n", *out)
	}
}

func openStore(ctx context.Context, dsn string, cfg *common.Config, logger *slog.Logger) (repository.DocumentStore, error) {
	if path, ok := strings.CutPrefix(dsn, "sqlite:"); ok {
		return repository.OpenSQLite(path, logger)
	}
	return repository.OpenPostgres(ctx, repository.Config{
		DSN:              dsn,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
}
