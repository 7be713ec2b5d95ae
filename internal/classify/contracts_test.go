package classify

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateShortInputUnchanged(t *testing.T) {
	assert.Equal(t, "invoice total ₹500", Truncate("invoice total ₹500"))
}

func TestTruncateCapsLongInput(t *testing.T) {
	got := Truncate(strings.Repeat("x", 5000))
	assert.Len(t, got, MaxInputBytes)
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	// ₹ is three bytes; pad so the cap lands inside it.
	text := strings.Repeat("x", MaxInputBytes-1) + "₹" + strings.Repeat("y", 100)
	got := Truncate(text)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("x", MaxInputBytes-1), got)
}
