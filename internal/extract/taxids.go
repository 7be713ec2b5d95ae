package extract

import (
	"regexp"
	"sort"
)

// TaxIDPatterns maps identifier kind to its format pattern. The validator
// re-checks stored identifiers against the same table, so edits here
// apply to both extraction and validation.
var TaxIDPatterns = map[string]*regexp.Regexp{
	"PAN": regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`),
	"GST": regexp.MustCompile(`\b\d{2}[A-Z]{5}\d{4}[A-Z]\d[A-Z]\d\b`),
	"EIN": regexp.MustCompile(`\b\d{2}-\d{7}\b`),
}

// TaxIDs collects unique matches per identifier kind. Kinds with zero
// matches are omitted from the map entirely, which is what rule
// predicates rely on when they look a kind up.
func TaxIDs(text string) map[string][]string {
	results := make(map[string][]string)
	for kind, pattern := range TaxIDPatterns {
		matches := pattern.FindAllString(text, -1)
		if len(matches) == 0 {
			continue
		}
		seen := make(map[string]struct{}, len(matches))
		for _, m := range matches {
			seen[m] = struct{}{}
		}
		unique := make([]string, 0, len(seen))
		for m := range seen {
			unique = append(unique, m)
		}
		sort.Strings(unique)
		results[kind] = unique
	}
	return results
}
