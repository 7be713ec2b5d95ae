package repository

import (
	"math"

	"github.com/anthon-rodrigues/docprocessor/internal/entity"
)

// Dashboard aggregates are computed over the decoded documents rather
// than in SQL: the result column is an opaque JSON blob, and the two
// backends would otherwise need divergent JSON-path queries.

const accuracyTrendLimit = 30

func buildDashboardStats(docs []*entity.Document) *entity.DashboardStats {
	stats := &entity.DashboardStats{LabelCounts: map[string]int{}}
	var sum float64
	var classified int
	for _, d := range docs {
		stats.TotalDocs++
		if c := d.Result.Classification; c != nil {
			sum += c.Confidence
			classified++
			stats.LabelCounts[c.Label]++
		}
	}
	if classified > 0 {
		stats.AvgConfidence = round2(sum / float64(classified))
	}
	return stats
}

// buildAccuracyTrend expects docs newest first, as ListRecent returns
// them. Unclassified documents plot as zero.
func buildAccuracyTrend(docs []*entity.Document) []entity.AccuracyPoint {
	points := make([]entity.AccuracyPoint, 0, len(docs))
	for _, d := range docs {
		var conf float64
		if c := d.Result.Classification; c != nil {
			conf = c.Confidence
		}
		points = append(points, entity.AccuracyPoint{
			Date:     d.UploadedAt.UTC().Format("2006-01-02"),
			Accuracy: round2(conf),
		})
	}
	return points
}

func buildExtractedMetrics(docs []*entity.Document) *entity.ExtractedMetrics {
	m := &entity.ExtractedMetrics{}
	for _, d := range docs {
		r := d.Result.Extracted
		if r == nil {
			continue
		}
		m.TotalDates += len(r.Dates)
		m.TotalAmounts += len(r.Amounts)
		if r.CompaniesFound() {
			m.TotalCompanies++
		}
	}
	return m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
