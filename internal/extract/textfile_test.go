package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthon-rodrigues/docprocessor/internal/common"
)

func TestFileExtractorReadsAndCleans(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invoice.txt")
	require.NoError(t, os.WriteFile(path, []byte("Invoice   42\n\nTotal: $10.00\n"), 0o644))

	e := NewFileExtractor(nil)
	text, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Invoice 42 Total: $10.00", text)
}

func TestFileExtractorUnsupportedType(t *testing.T) {
	e := NewFileExtractor(nil)
	_, err := e.Extract(context.Background(), "scan.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnsupportedInput)
}

func TestFileExtractorMissingFile(t *testing.T) {
	e := NewFileExtractor(nil)
	_, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrUnsupportedInput)
}
