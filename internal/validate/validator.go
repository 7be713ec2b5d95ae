// Package validate re-checks a structured record for format violations,
// independent of compliance semantics. It only ever produces warnings.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"unicode/utf8"

	"github.com/anthon-rodrigues/docprocessor/internal/entity"
	"github.com/anthon-rodrigues/docprocessor/internal/extract"
)

// canonicalDateRe anchors at the start only: trailing noise after a valid
// YYYY-MM-DD prefix is tolerated.
var canonicalDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// minCompanyNameLen is the shortest company candidate not flagged as
// suspicious.
const minCompanyNameLen = 3

// Record inspects an extracted record and returns an ordered list of
// human-readable warnings. It never fails; an empty result means the
// record looks consistent.
//
// Only the canonical YYYY-MM-DD shape passes the date check, so the three
// other accepted extraction shapes are always flagged here. Downstream
// consumers read those warnings as normalization-debt signals.
func Record(rec *entity.StructuredRecord) []string {
	var warnings []string

	for _, d := range rec.Dates {
		if !canonicalDateRe.MatchString(d) {
			warnings = append(warnings, fmt.Sprintf("Invalid date format: %s", d))
		}
	}

	for _, a := range rec.Amounts {
		if math.IsNaN(a.Value) || math.IsInf(a.Value, 0) {
			warnings = append(warnings, fmt.Sprintf("Amount not numeric: %v", a))
		}
	}

	kinds := make([]string, 0, len(rec.TaxIDs))
	for kind := range rec.TaxIDs {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		pattern, ok := extract.TaxIDPatterns[kind]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("Unknown tax identifier kind: %s", kind))
			continue
		}
		for _, v := range rec.TaxIDs[kind] {
			if loc := pattern.FindStringIndex(v); loc == nil || loc[0] != 0 {
				warnings = append(warnings, fmt.Sprintf("Invalid %s: %s", kind, v))
			}
		}
	}

	for _, c := range rec.Companies {
		if utf8.RuneCountInString(c) < minCompanyNameLen {
			warnings = append(warnings, fmt.Sprintf("Suspicious company name: %s", c))
		}
	}

	return warnings
}
