package extract

import (
	"sort"
	"strings"
)

// Legal-entity suffixes, each with its leading space so "Ltd" does not
// fire inside e.g. "Limitless".
var companyKeywords = []string{" Pvt Ltd", " Private Limited", " LLC", " Inc", " Ltd", " LLP", " GmbH"}

// Companies returns the trimmed lines containing a legal-suffix keyword,
// de-duplicated. A nil result means no line matched; callers distinguish
// that from an empty slice, so this never returns a non-nil empty slice.
// Matches are sorted to keep repeated runs byte-identical.
func Companies(text string) []string {
	seen := make(map[string]struct{})
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, kw := range companyKeywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				seen[strings.TrimSpace(line)] = struct{}{}
				break
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	candidates := make([]string, 0, len(seen))
	for c := range seen {
		candidates = append(candidates, c)
	}
	sort.Strings(candidates)
	return candidates
}
