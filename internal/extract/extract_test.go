package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthon-rodrigues/docprocessor/internal/entity"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses runs", "Invoice   No.\t42\n\nTotal", "Invoice No. 42 Total"},
		{"strips edges", "  hello world  ", "hello world"},
		{"empty", "", ""},
		{"only whitespace", " \n\t ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestDates(t *testing.T) {
	text := "Signed 14-Nov-2025, effective 2025-11-14, due 14/11/2025, renewed Nov 14, 2025"
	dates := Dates(text)
	require.Len(t, dates, 4)
	// Grouped by pattern, not document order.
	assert.Equal(t, []string{"14-Nov-2025", "2025-11-14", "14/11/2025", "Nov 14, 2025"}, dates)
}

func TestDatesKeepsDuplicates(t *testing.T) {
	dates := Dates("2025-01-01 then again 2025-01-01")
	assert.Equal(t, []string{"2025-01-01", "2025-01-01"}, dates)
}

func TestDatesPermissive(t *testing.T) {
	// Shape matches even though it is not a real calendar date; the
	// validator, not the extractor, flags format problems.
	assert.Equal(t, []string{"32/13/2025"}, Dates("delivery on 32/13/2025"))
}

func TestDatesNoneFound(t *testing.T) {
	assert.Empty(t, Dates("no dates in here"))
}

func TestAmountsWithCurrencyMarker(t *testing.T) {
	amounts := Amounts("Total: $1,234.56")
	require.Len(t, amounts, 1)
	assert.Equal(t, "$", amounts[0].Currency)
	assert.Equal(t, 1234.56, amounts[0].Value)
}

func TestAmountsCurrencyCodes(t *testing.T) {
	amounts := Amounts("paid USD 99.50 and ₹2,000")
	require.Len(t, amounts, 2)
	assert.Equal(t, "USD", amounts[0].Currency)
	assert.Equal(t, 99.50, amounts[0].Value)
	assert.Equal(t, "₹", amounts[1].Currency)
	assert.Equal(t, 2000.0, amounts[1].Value)
}

func TestAmountsBareNumberNeedsKeyword(t *testing.T) {
	// Bare number, no keyword within 20 chars on either side: dropped.
	assert.Empty(t, Amounts("the year 2024 was uneventful and nothing else"))

	// Same number rescued by a nearby keyword.
	amounts := Amounts("balance due 2024")
	require.Len(t, amounts, 1)
	assert.Empty(t, amounts[0].Currency)
	assert.Equal(t, 2024.0, amounts[0].Value)
}

func TestAmountsKeywordOutsideWindow(t *testing.T) {
	// "total" is present but more than 20 characters away from the match.
	text := "total was discussed much earlier in the meeting notes 500"
	assert.Empty(t, Amounts(text))
}

func TestCompanies(t *testing.T) {
	text := "Acme Pvt Ltd\nSome plain line\nGlobex LLC\nAcme Pvt Ltd"
	companies := Companies(text)
	require.NotNil(t, companies)
	assert.ElementsMatch(t, []string{"Acme Pvt Ltd", "Globex LLC"}, companies)
}

func TestCompaniesNoneFoundIsNil(t *testing.T) {
	companies := Companies("no legal entities mentioned anywhere")
	assert.Nil(t, companies)
}

func TestCompaniesCaseInsensitive(t *testing.T) {
	companies := Companies("INITECH GMBH")
	require.Len(t, companies, 1)
	assert.Equal(t, "INITECH GMBH", companies[0])
}

func TestTaxIDs(t *testing.T) {
	text := "PAN ABCDE1234F, PAN again ABCDE1234F, EIN 12-3456789"
	ids := TaxIDs(text)
	require.Contains(t, ids, "PAN")
	require.Contains(t, ids, "EIN")
	assert.Equal(t, []string{"ABCDE1234F"}, ids["PAN"])
	assert.Equal(t, []string{"12-3456789"}, ids["EIN"])
	// Kinds with zero matches are omitted, not present-but-empty.
	assert.NotContains(t, ids, "GST")
}

func TestTaxIDsGST(t *testing.T) {
	ids := TaxIDs("GSTIN: 22ABCDE1234F1Z5")
	require.Contains(t, ids, "GST")
	assert.Equal(t, []string{"22ABCDE1234F1Z5"}, ids["GST"])
}

func TestClauses(t *testing.T) {
	text := "This agreement covers payment terms and billing. Confidential information stays confidential."
	clauses := Clauses(text)
	assert.Equal(t, []string{"payment terms", "billing"}, clauses["payment"])
	assert.Equal(t, []string{"confidential"}, clauses["confidentiality"])
	assert.NotContains(t, clauses, "termination")
	assert.NotContains(t, clauses, "liability")
}

func TestClausesKeywordRecordedOnce(t *testing.T) {
	clauses := Clauses("terminate early or terminate late")
	assert.Equal(t, []string{"terminate"}, clauses["termination"])
}

func TestStructuredIdempotent(t *testing.T) {
	text := "Invoice from Acme Pvt Ltd dated 2025-11-14. Total: $1,234.56. PAN ABCDE1234F. Payment terms apply."
	first := Structured(text)
	second := Structured(text)
	require.Equal(t, first, second)

	b1, err := json.Marshal(first)
	require.NoError(t, err)
	b2, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
}

func TestStructuredDisjointFields(t *testing.T) {
	text := "Globex LLC billing statement for 2025-01-31 came to $42.00 with GSTIN 22ABCDE1234F1Z5 on file"
	rec := Structured(text)
	assert.Equal(t, []string{"2025-01-31"}, rec.Dates)
	require.Len(t, rec.Amounts, 1)
	assert.Equal(t, entity.Amount{Currency: "$", Value: 42.0}, rec.Amounts[0])
	assert.True(t, rec.CompaniesFound())
	assert.Contains(t, rec.TaxIDs, "GST")
	assert.Contains(t, rec.Clauses, "payment")
}
