package classify

import (
	"context"
	"unicode/utf8"

	"github.com/anthon-rodrigues/docprocessor/internal/entity"
)

// MaxInputBytes caps how much document text the classifier sees. The
// leading slice carries the letterhead/title signal the model needs.
const MaxInputBytes = 1500

// Classifier is the external zero-shot classification collaborator. The
// pipeline treats its output as opaque ground truth for rule
// applicability.
type Classifier interface {
	Classify(ctx context.Context, text string) (entity.Classification, error)
}

// Truncate trims text to at most MaxInputBytes without splitting a
// multi-byte rune at the cut.
func Truncate(text string) string {
	if len(text) <= MaxInputBytes {
		return text
	}
	cut := MaxInputBytes
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
