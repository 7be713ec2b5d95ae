package constants

import "strings"

// DocumentType is the label set the classifier chooses from. The rule
// engine keys applicability off these exact strings, so they must match
// what the classifier returns.
type DocumentType string

const (
	InvoiceDocument       DocumentType = "invoice document"
	LegalContract         DocumentType = "legal contract"
	TaxDocument           DocumentType = "tax document"
	GeneralCorrespondence DocumentType = "general correspondence"
)

var allDocumentTypes = []DocumentType{
	InvoiceDocument,
	LegalContract,
	TaxDocument,
	GeneralCorrespondence,
}

// DocumentTypeStrings returns the label set in canonical order, for
// handing to the classifier as candidate labels.
func DocumentTypeStrings() []string {
	result := make([]string, len(allDocumentTypes))
	for i, t := range allDocumentTypes {
		result[i] = string(t)
	}
	return result
}

// IsDocumentType reports whether input is one of the known labels.
func IsDocumentType(input string) bool {
	normalized := strings.ToLower(strings.TrimSpace(input))
	for _, t := range allDocumentTypes {
		if normalized == string(t) {
			return true
		}
	}
	return false
}
