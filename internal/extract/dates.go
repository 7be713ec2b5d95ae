package extract

import "regexp"

// Accepted textual date shapes, in match-priority order. No calendar
// validation happens here: extraction stays permissive and the validator
// flags everything that is not canonical YYYY-MM-DD.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}-[A-Za-z]{3}-\d{4}\b`),        // 14-Nov-2025
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),                // 2025-11-14
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),          // 14/11/2025
	regexp.MustCompile(`\b[A-Za-z]{3,9}\s+\d{1,2},\s*\d{4}\b`), // Nov 14, 2025
}

// Dates returns every date-shaped substring, grouped by pattern and in
// first-occurrence order within each pattern. Duplicates are retained.
func Dates(text string) []string {
	var dates []string
	for _, p := range datePatterns {
		dates = append(dates, p.FindAllString(text, -1)...)
	}
	return dates
}
