package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/anthon-rodrigues/docprocessor/constants"
)

// Amount is one monetary value pulled out of document text. Currency is
// empty when the value was accepted on keyword proximity alone rather
// than an explicit currency marker.
type Amount struct {
	Currency string  `json:"currency,omitempty"`
	Value    float64 `json:"amount"`
}

// StructuredRecord aggregates the per-document extraction result. Built
// once from cleaned text and read-only afterward.
//
// Companies is nil when no legal-suffix line was found, which is distinct
// from an empty slice, and rule predicates branch on that. TaxIDs and Clauses omit
// kinds/categories with zero matches entirely.
type StructuredRecord struct {
	Dates     []string            `json:"dates"`
	Amounts   []Amount            `json:"amounts"`
	Companies []string            `json:"companies"`
	TaxIDs    map[string][]string `json:"tax_ids"`
	Clauses   map[string][]string `json:"clauses"`
}

// CompaniesFound reports whether the company extractor found anything.
func (r *StructuredRecord) CompaniesFound() bool {
	return r.Companies != nil
}

// Classification is the classifier collaborator's verdict, treated as
// opaque ground truth for rule applicability.
type Classification struct {
	Label      string  `json:"classification"`
	Confidence float64 `json:"confidence"`
}

// ComplianceFinding is emitted when a registered rule triggers for the
// document's type.
type ComplianceFinding struct {
	ID          string             `json:"id"`
	Description string             `json:"description"`
	Severity    constants.Severity `json:"severity"`
	Remediation string             `json:"remediation"`
}

// ProcessResult is the composite output of a full pipeline run. Depths
// below "all" leave the unreached fields zero.
type ProcessResult struct {
	Classification *Classification     `json:"classification,omitempty"`
	RawText        string              `json:"raw_text,omitempty"`
	Extracted      *StructuredRecord   `json:"extracted_data,omitempty"`
	Warnings       []string            `json:"warnings,omitempty"`
	Compliance     []ComplianceFinding `json:"compliance,omitempty"`
}

// TopSeverity returns the worst finding severity, or "" with no findings.
func (r *ProcessResult) TopSeverity() constants.Severity {
	var top constants.Severity
	for _, f := range r.Compliance {
		if f.Severity.Rank() > top.Rank() {
			top = f.Severity
		}
	}
	return top
}

// Document is a persisted processing result for data transfer between
// layers. UploadedAt is stamped by the store on save.
type Document struct {
	ID         uuid.UUID     `json:"id"`
	FileName   string        `json:"file_name"`
	UploadedAt time.Time     `json:"uploaded_at"`
	Result     ProcessResult `json:"result"`
}
