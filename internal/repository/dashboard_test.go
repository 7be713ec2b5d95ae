package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthon-rodrigues/docprocessor/internal/entity"
)

func TestBuildDashboardStats(t *testing.T) {
	docs := []*entity.Document{
		{Result: entity.ProcessResult{
			Classification: &entity.Classification{Label: "invoice document", Confidence: 0.9},
		}},
		{Result: entity.ProcessResult{
			Classification: &entity.Classification{Label: "invoice document", Confidence: 0.7},
		}},
		{Result: entity.ProcessResult{
			Classification: &entity.Classification{Label: "contract document", Confidence: 0.5},
		}},
		{Result: entity.ProcessResult{}},
	}

	stats := buildDashboardStats(docs)
	assert.Equal(t, 4, stats.TotalDocs)
	assert.Equal(t, 0.7, stats.AvgConfidence)
	assert.Equal(t, map[string]int{
		"invoice document":  2,
		"contract document": 1,
	}, stats.LabelCounts)
}

func TestBuildDashboardStatsEmpty(t *testing.T) {
	stats := buildDashboardStats(nil)
	assert.Equal(t, 0, stats.TotalDocs)
	assert.Zero(t, stats.AvgConfidence)
	assert.Empty(t, stats.LabelCounts)
}

func TestBuildAccuracyTrend(t *testing.T) {
	uploaded := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	docs := []*entity.Document{
		{
			UploadedAt: uploaded,
			Result: entity.ProcessResult{
				Classification: &entity.Classification{Label: "invoice document", Confidence: 0.876},
			},
		},
		{UploadedAt: uploaded.Add(-24 * time.Hour)},
	}

	points := buildAccuracyTrend(docs)
	require.Len(t, points, 2)
	assert.Equal(t, entity.AccuracyPoint{Date: "2025-06-01", Accuracy: 0.88}, points[0])
	assert.Equal(t, entity.AccuracyPoint{Date: "2025-05-31", Accuracy: 0}, points[1])
}

func TestBuildExtractedMetrics(t *testing.T) {
	docs := []*entity.Document{
		{Result: entity.ProcessResult{Extracted: &entity.StructuredRecord{
			Dates:     []string{"2025-01-31", "2025-02-01"},
			Amounts:   []entity.Amount{{Value: 10}},
			Companies: []string{"Globex LLC"},
		}}},
		{Result: entity.ProcessResult{Extracted: &entity.StructuredRecord{
			Amounts: []entity.Amount{{Value: 1}, {Value: 2}},
		}}},
		{Result: entity.ProcessResult{}},
	}

	m := buildExtractedMetrics(docs)
	assert.Equal(t, 2, m.TotalDates)
	assert.Equal(t, 3, m.TotalAmounts)
	assert.Equal(t, 1, m.TotalCompanies)
}

func TestSQLiteDashboardAggregates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"a.txt", "b.txt"} {
		require.NoError(t, store.Save(ctx, sampleDocument(name)))
	}
	unclassified := &entity.Document{FileName: "c.txt"}
	require.NoError(t, store.Save(ctx, unclassified))

	stats, err := store.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalDocs)
	assert.Equal(t, 0.93, stats.AvgConfidence)
	assert.Equal(t, map[string]int{"invoice document": 2}, stats.LabelCounts)

	points, err := store.AccuracyTrend(ctx, 2)
	require.NoError(t, err)
	require.Len(t, points, 2)
	for _, p := range points {
		assert.NotEmpty(t, p.Date)
	}

	metrics, err := store.ExtractedMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, metrics.TotalDates)
	assert.Equal(t, 2, metrics.TotalAmounts)
	assert.Equal(t, 0, metrics.TotalCompanies)
}
