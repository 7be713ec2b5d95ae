package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthon-rodrigues/docprocessor/constants"
	"github.com/anthon-rodrigues/docprocessor/internal/common"
	"github.com/anthon-rodrigues/docprocessor/internal/compliance"
	"github.com/anthon-rodrigues/docprocessor/internal/entity"
	"github.com/anthon-rodrigues/docprocessor/internal/extract"
	"github.com/anthon-rodrigues/docprocessor/internal/pipeline"
)

type stubClassifier struct{}

func (stubClassifier) Classify(context.Context, string) (entity.Classification, error) {
	return entity.Classification{Label: "general correspondence", Confidence: 0.5}, nil
}

type stubStore struct {
	saved int
}

func (s *stubStore) Save(_ context.Context, doc *entity.Document) error {
	doc.ID = uuid.New()
	s.saved++
	return nil
}

func (s *stubStore) GetByID(context.Context, uuid.UUID) (*entity.Document, error) {
	return nil, common.ErrNotFound
}

func (s *stubStore) ListRecent(context.Context, int) ([]*entity.Document, error) {
	return nil, nil
}

func (s *stubStore) DashboardStats(context.Context) (*entity.DashboardStats, error) {
	return &entity.DashboardStats{}, nil
}

func (s *stubStore) AccuracyTrend(context.Context, int) ([]entity.AccuracyPoint, error) {
	return nil, nil
}

func (s *stubStore) ExtractedMetrics(context.Context) (*entity.ExtractedMetrics, error) {
	return &entity.ExtractedMetrics{}, nil
}

func (s *stubStore) HealthCheck(context.Context) error { return nil }
func (s *stubStore) Close() error                      { return nil }

func newTestRunner(store *stubStore, depth constants.Depth) *Runner {
	p := pipeline.NewProcessor(
		nil,
		extract.NewFileExtractor(nil),
		stubClassifier{},
		compliance.NewEngine(compliance.DefaultRules(), nil),
		store,
	)
	return NewRunner(p, depth, nil)
}

func TestIngestDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("world"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.pdf"), []byte("%PDF"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.txt"), []byte("x"), 0o644))

	store := &stubStore{}
	runner := newTestRunner(store, constants.DepthAll)

	results, stats, err := runner.IngestDirectory(context.Background(), dir, nil, true)
	require.NoError(t, err)

	assert.Equal(t, uint32(2), stats.Matched)
	assert.Equal(t, uint32(2), stats.Succeeded)
	assert.Equal(t, uint32(0), stats.Failed)
	assert.Equal(t, 2, store.saved)

	for _, res := range results {
		assert.Empty(t, res.Err)
		assert.NotEmpty(t, res.DocumentID)
		assert.Equal(t, "general correspondence", res.Label)
	}
}

func TestIngestDirectoryCustomExts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("world"), 0o644))

	runner := newTestRunner(&stubStore{}, constants.DepthExtract)
	results, stats, err := runner.IngestDirectory(context.Background(), dir, []string{".MD"}, false)
	require.NoError(t, err)

	assert.Equal(t, uint32(1), stats.Matched)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(dir, "b.md"), results[0].Path)
}

func TestIngestDirectoryEmptyRoot(t *testing.T) {
	runner := newTestRunner(&stubStore{}, constants.DepthAll)
	_, _, err := runner.IngestDirectory(context.Background(), "  ", nil, false)
	assert.Error(t, err)
}

func TestRunConsumesEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("note to self"), 0o644))

	store := &stubStore{}
	runner := newTestRunner(store, constants.DepthAll)

	events := make(chan string, 2)
	events <- path
	events <- filepath.Join(dir, "missing.txt")
	close(events)

	runner.Run(context.Background(), events)
	assert.Equal(t, 1, store.saved)
}
