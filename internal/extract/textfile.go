package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/anthon-rodrigues/docprocessor/constants"
	"github.com/anthon-rodrigues/docprocessor/internal/common"
)

// FileExtractor decodes plain-text documents from disk. Anything outside
// constants.AllowedExtensions is rejected with ErrUnsupportedInput before
// any extraction is attempted.
type FileExtractor struct {
	Log *slog.Logger
}

func NewFileExtractor(log *slog.Logger) *FileExtractor {
	if log == nil {
		log = slog.Default()
	}
	return &FileExtractor{Log: log}
}

func (e *FileExtractor) Extract(_ context.Context, path string) (string, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		e.Log.Warn("extract.text.unsupported", "path", path, "ext", ext)
		return "", fmt.Errorf("%w: file type %q", common.ErrUnsupportedInput, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	text := CleanText(string(data))
	e.Log.Debug("extract.text.ok", "path", path, "bytes", len(text))
	return text, nil
}
