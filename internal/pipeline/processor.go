// Package pipeline sequences classification, extraction, validation,
// compliance, and persistence for one document. It owns stage ordering
// and nothing else; every stage is an injected collaborator.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/anthon-rodrigues/docprocessor/constants"
	"github.com/anthon-rodrigues/docprocessor/internal/classify"
	"github.com/anthon-rodrigues/docprocessor/internal/compliance"
	"github.com/anthon-rodrigues/docprocessor/internal/entity"
	"github.com/anthon-rodrigues/docprocessor/internal/extract"
	"github.com/anthon-rodrigues/docprocessor/internal/repository"
	"github.com/anthon-rodrigues/docprocessor/internal/validate"
)

// Processor coordinates the per-document pipeline. Each document runs
// end-to-end in a single logical task; the processor holds no
// per-document state and is safe for concurrent use.
type Processor struct {
	Logger     *slog.Logger
	Text       extract.TextExtractor
	Classifier classify.Classifier
	Rules      *compliance.Engine
	Store      repository.DocumentStore
}

func NewProcessor(
	logger *slog.Logger,
	text extract.TextExtractor,
	classifier classify.Classifier,
	rules *compliance.Engine,
	store repository.DocumentStore,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Logger:     logger,
		Text:       text,
		Classifier: classifier,
		Rules:      rules,
		Store:      store,
	}
}

// ProcessFile runs the pipeline for one file to the requested depth.
//
//   - classify: text extraction + classification only.
//   - extract:  text extraction + structured extraction only.
//   - all:      classify, extract, validate, compliance, persist.
//
// Classifier failures abort the classify/all paths. A persistence
// failure on the all path is returned as the error while the computed
// document is still returned, so the caller never loses the result.
func (p *Processor) ProcessFile(ctx context.Context, path string, depth constants.Depth) (*entity.Document, error) {
	start := time.Now()

	text, err := p.Text.Extract(ctx, path)
	if err != nil {
		p.Logger.Error("pipeline.text.failed", "path", path, "err", err)
		return nil, err
	}

	doc, err := p.processText(ctx, text, depth)
	if doc != nil {
		doc.FileName = filepath.Base(path)
	}
	if err != nil && doc == nil {
		return nil, err
	}

	if depth == constants.DepthAll && err == nil {
		if saveErr := p.Store.Save(ctx, doc); saveErr != nil {
			p.Logger.Error("pipeline.persist.failed", "file_name", doc.FileName, "err", saveErr)
			return doc, saveErr
		}
		p.Logger.Info("pipeline.persist.ok", "document_id", doc.ID, "file_name", doc.FileName)
	}

	p.Logger.Info("pipeline.ok",
		"file_name", filepath.Base(path),
		"depth", string(depth),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return doc, err
}

// processText runs the stages that operate on cleaned text.
func (p *Processor) processText(ctx context.Context, text string, depth constants.Depth) (*entity.Document, error) {
	doc := &entity.Document{}

	if depth == constants.DepthClassify || depth == constants.DepthAll {
		cls, err := p.Classifier.Classify(ctx, text)
		if err != nil {
			p.Logger.Error("pipeline.classify.failed", "err", err)
			return nil, err
		}
		p.Logger.Info("pipeline.classify.ok", "label", cls.Label, "confidence", cls.Confidence)
		doc.Result.Classification = &cls

		if depth == constants.DepthClassify {
			return doc, nil
		}
	}

	rec := extract.Structured(text)
	doc.Result.RawText = text
	doc.Result.Extracted = rec
	p.Logger.Info("pipeline.extract.ok",
		"dates", len(rec.Dates),
		"amounts", len(rec.Amounts),
		"companies_found", rec.CompaniesFound(),
		"tax_id_kinds", len(rec.TaxIDs),
		"clause_categories", len(rec.Clauses),
	)

	if depth == constants.DepthExtract {
		return doc, nil
	}

	doc.Result.Warnings = validate.Record(rec)
	doc.Result.Compliance = p.Rules.Run(rec, doc.Result.Classification.Label)
	p.Logger.Info("pipeline.checks.ok",
		"warnings", len(doc.Result.Warnings),
		"findings", len(doc.Result.Compliance),
	)
	return doc, nil
}

// ProcessUpload is ProcessFile for callers that name the file relative to
// an upload directory; it refuses path escapes.
func (p *Processor) ProcessUpload(ctx context.Context, uploadDir, fileName string, depth constants.Depth) (*entity.Document, error) {
	base := filepath.Base(fileName)
	if base == "." || base == string(filepath.Separator) {
		return nil, fmt.Errorf("invalid file name: %q", fileName)
	}
	return p.ProcessFile(ctx, filepath.Join(uploadDir, base), depth)
}
