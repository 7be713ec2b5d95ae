package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/anthon-rodrigues/docprocessor/internal/entity"
)

var amountRe = regexp.MustCompile(`(₹|\$|USD|INR)?\s?((?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d{1,2})?)`)

// amountKeywords rescue bare numbers: a numeric match with no currency
// marker is accepted only when one of these appears nearby.
var amountKeywords = []string{"total", "amount", "invoice", "subtotal", "balance", "paid", "due"}

// proximityWindow is measured in raw characters on each side of the
// match, not tokens. Long intervening words can still cause false
// accepts; that is an accepted heuristic, not a bug.
const proximityWindow = 20

// Amounts scans text for monetary values. Matches carrying a currency
// marker are accepted unconditionally; bare numbers pass only the
// keyword-proximity check, which is the main defense against reading
// years and page numbers as money. Values that fail numeric parsing are
// dropped silently.
func Amounts(text string) []entity.Amount {
	var results []entity.Amount
	for _, m := range amountRe.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[1]

		currency := ""
		if m[2] >= 0 {
			currency = text[m[2]:m[3]]
		}
		value := text[m[4]:m[5]]

		parsed, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
		if err != nil {
			continue
		}

		if currency != "" {
			results = append(results, entity.Amount{Currency: currency, Value: parsed})
			continue
		}

		if keywordNearby(text, start, end) {
			results = append(results, entity.Amount{Value: parsed})
		}
	}
	return results
}

func keywordNearby(text string, start, end int) bool {
	lo := start - proximityWindow
	if lo < 0 {
		lo = 0
	}
	hi := end + proximityWindow
	if hi > len(text) {
		hi = len(text)
	}
	before := strings.ToLower(text[lo:start])
	after := strings.ToLower(text[end:hi])
	for _, kw := range amountKeywords {
		if strings.Contains(before, kw) || strings.Contains(after, kw) {
			return true
		}
	}
	return false
}
