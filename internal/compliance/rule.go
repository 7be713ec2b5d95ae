// Package compliance evaluates a fixed, data-driven rule table against
// extracted document records. Rules are registered once at startup and
// read-only afterward, so concurrent evaluation needs no locking.
package compliance

import (
	"github.com/anthon-rodrigues/docprocessor/constants"
	"github.com/anthon-rodrigues/docprocessor/internal/entity"
)

// Predicate decides whether a rule triggers for a record. Implementations
// are small value types so each rule stays unit-testable on its own.
type Predicate interface {
	Evaluate(rec *entity.StructuredRecord) bool
}

// Rule is one registered compliance check, scoped to specific
// document-type labels.
type Rule struct {
	ID          string
	Description string
	Severity    constants.Severity
	AppliesTo   []constants.DocumentType
	Predicate   Predicate
	Remediation string
}

// AppliesToLabel reports whether this rule is in scope for the given
// classifier label.
func (r Rule) AppliesToLabel(label string) bool {
	for _, t := range r.AppliesTo {
		if string(t) == label {
			return true
		}
	}
	return false
}

// Finding converts a triggered rule into its emitted finding.
func (r Rule) Finding() entity.ComplianceFinding {
	return entity.ComplianceFinding{
		ID:          r.ID,
		Description: r.Description,
		Severity:    r.Severity,
		Remediation: r.Remediation,
	}
}

// AmountsAbsent triggers when no monetary amounts were extracted.
type AmountsAbsent struct{}

func (AmountsAbsent) Evaluate(rec *entity.StructuredRecord) bool {
	return len(rec.Amounts) == 0
}

// DatesAbsent triggers when no dates were extracted.
type DatesAbsent struct{}

func (DatesAbsent) Evaluate(rec *entity.StructuredRecord) bool {
	return len(rec.Dates) == 0
}

// AnyClauseAbsent triggers when at least one of the listed clause
// categories has no findings.
type AnyClauseAbsent struct {
	Categories []string
}

func (p AnyClauseAbsent) Evaluate(rec *entity.StructuredRecord) bool {
	for _, category := range p.Categories {
		if len(rec.Clauses[category]) == 0 {
			return true
		}
	}
	return false
}

// AllTaxIDsAbsent triggers when every listed identifier kind is missing.
type AllTaxIDsAbsent struct {
	Kinds []string
}

func (p AllTaxIDsAbsent) Evaluate(rec *entity.StructuredRecord) bool {
	for _, kind := range p.Kinds {
		if len(rec.TaxIDs[kind]) > 0 {
			return false
		}
	}
	return true
}
