package compliance

import "github.com/anthon-rodrigues/docprocessor/constants"

// DefaultRules returns the stock rule table. Result order at evaluation
// time follows this registration order.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:          "missing_invoice_amount",
			Description: "Invoices must contain at least one valid monetary amount.",
			Severity:    constants.SeverityHigh,
			AppliesTo:   []constants.DocumentType{constants.InvoiceDocument},
			Predicate:   AmountsAbsent{},
			Remediation: "Check OCR quality or ask user to upload a clearer invoice.",
		},
		{
			ID:          "missing_contract_clause",
			Description: "Legal contracts usually require key clauses.",
			Severity:    constants.SeverityMedium,
			AppliesTo:   []constants.DocumentType{constants.LegalContract},
			Predicate:   AnyClauseAbsent{Categories: []string{"termination", "confidentiality"}},
			Remediation: "Verify that termination/confidentiality clauses are present.",
		},
		{
			ID:          "missing_tax_id",
			Description: "Tax documents must contain GST/PAN or other identifiers.",
			Severity:    constants.SeverityHigh,
			AppliesTo:   []constants.DocumentType{constants.TaxDocument},
			Predicate:   AllTaxIDsAbsent{Kinds: []string{"GST", "PAN"}},
			Remediation: "Ensure the document contains valid GST or PAN numbers.",
		},
		{
			ID:          "no_date_found",
			Description: "Documents must contain at least one date.",
			Severity:    constants.SeverityLow,
			AppliesTo: []constants.DocumentType{
				constants.InvoiceDocument,
				constants.LegalContract,
				constants.TaxDocument,
				constants.GeneralCorrespondence,
			},
			Predicate:   DatesAbsent{},
			Remediation: "Check OCR quality or confirm if the document is undated.",
		},
	}
}
