package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/anthon-rodrigues/docprocessor/constants"
	"github.com/anthon-rodrigues/docprocessor/internal/pipeline"
)

// FileResult is the per-file outcome of a directory scan or a watch
// event. Err is empty on success.
type FileResult struct {
	Path       string
	DocumentID string
	Label      string
	Err        string
}

// DirStats aggregates a directory scan.
type DirStats struct {
	Scanned   uint32
	Matched   uint32
	Succeeded uint32
	Failed    uint32
}

// Runner drives the pipeline over discovered files.
type Runner struct {
	Processor *pipeline.Processor
	Depth     constants.Depth
	Logger    *slog.Logger
}

func NewRunner(p *pipeline.Processor, depth constants.Depth, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{Processor: p, Depth: depth, Logger: logger}
}

// IngestDirectory walks root, filters by includeExts (or the default
// document extensions), skips hidden entries if requested, and processes
// each file. Returns per-file results plus aggregate stats. Individual
// file failures are recorded and the walk continues.
func (r *Runner) IngestDirectory(ctx context.Context, root string, includeExts []string, skipHidden bool) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	exts := map[string]struct{}{}
	if len(includeExts) == 0 {
		exts = constants.AllowedExtensions
	} else {
		for _, e := range includeExts {
			e = constants.NormalizeExt(strings.TrimSpace(e))
			if e != "" {
				exts[e] = struct{}{}
			}
		}
	}

	var results []FileResult
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			results = append(results, FileResult{Path: path, Err: walkErr.Error()})
			stats.Failed++
			return nil // continue walking
		}
		if skipHidden && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := exts[constants.NormalizeExt(filepath.Ext(path))]; !ok {
			return nil
		}
		stats.Matched++

		res := r.processOne(ctx, path)
		results = append(results, res)
		if res.Err == "" {
			stats.Succeeded++
		} else {
			stats.Failed++
		}
		return nil
	})

	if err != nil {
		return results, stats, fmt.Errorf("walk: %w", err)
	}
	return results, stats, nil
}

// Run consumes watcher events until the channel closes or ctx is
// cancelled. Failures are logged and the loop keeps going.
func (r *Runner) Run(ctx context.Context, events <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-events:
			if !ok {
				return
			}
			res := r.processOne(ctx, path)
			if res.Err != "" {
				r.Logger.Error("ingest.watch.failed", "path", path, "err", res.Err)
				continue
			}
			r.Logger.Info("ingest.watch.ok", "path", path, "document_id", res.DocumentID, "label", res.Label)
		}
	}
}

func (r *Runner) processOne(ctx context.Context, path string) FileResult {
	res := FileResult{Path: path}
	doc, err := r.Processor.ProcessFile(ctx, path, r.Depth)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	res.DocumentID = doc.ID.String()
	if doc.Result.Classification != nil {
		res.Label = doc.Result.Classification.Label
	}
	return res
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
