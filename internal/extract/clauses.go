package extract

import "strings"

// clauseCategories fixes evaluation order so repeated runs produce
// identical records.
var clauseCategories = []string{"termination", "payment", "confidentiality", "liability"}

var clauseKeywords = map[string][]string{
	"termination":     {"termination", "terminate", "end of agreement"},
	"payment":         {"payment terms", "fees", "billing"},
	"confidentiality": {"confidential", "non-disclosure", "nda"},
	"liability":       {"liability", "indemnify", "indemnification"},
}

// Clauses records, per category, which trigger keywords appear in the
// text at least once. A keyword is recorded once regardless of how often
// it occurs. Categories with zero hits are omitted from the map.
func Clauses(text string) map[string][]string {
	lower := strings.ToLower(text)
	found := make(map[string][]string)
	for _, category := range clauseCategories {
		for _, kw := range clauseKeywords[category] {
			if strings.Contains(lower, kw) {
				found[category] = append(found[category], kw)
			}
		}
	}
	return found
}
