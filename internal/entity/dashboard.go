package entity

// DashboardStats summarizes the store for the dashboard header: total
// document count, average classifier confidence over classified
// documents, and per-label counts.
type DashboardStats struct {
	TotalDocs     int            `json:"total_docs"`
	AvgConfidence float64        `json:"avg_confidence"`
	LabelCounts   map[string]int `json:"label_counts"`
}

// AccuracyPoint plots one document's classifier confidence against its
// upload date.
type AccuracyPoint struct {
	Date     string  `json:"date"`
	Accuracy float64 `json:"accuracy"`
}

// ExtractedMetrics totals the extracted entities across stored
// documents. TotalCompanies counts documents where the company
// extractor found something, not individual names.
type ExtractedMetrics struct {
	TotalDates     int `json:"total_dates"`
	TotalAmounts   int `json:"total_amounts"`
	TotalCompanies int `json:"total_companies"`
}
