package extract

import (
	"sync"

	"github.com/anthon-rodrigues/docprocessor/internal/entity"
)

// Structured runs the five entity extractors over cleaned text and
// aggregates their output. The extractors share no state and each writes
// a disjoint field of the record, so they fan out concurrently with no
// coordination beyond the join.
func Structured(text string) *entity.StructuredRecord {
	rec := &entity.StructuredRecord{}

	var wg sync.WaitGroup
	wg.Add(5)
	go func() { defer wg.Done(); rec.Dates = Dates(text) }()
	go func() { defer wg.Done(); rec.Amounts = Amounts(text) }()
	go func() { defer wg.Done(); rec.Companies = Companies(text) }()
	go func() { defer wg.Done(); rec.TaxIDs = TaxIDs(text) }()
	go func() { defer wg.Done(); rec.Clauses = Clauses(text) }()
	wg.Wait()

	return rec
}
