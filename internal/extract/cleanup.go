package extract

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanText collapses every whitespace run to a single space and strips
// leading/trailing whitespace. Extractors assume their input has been
// through this exactly once.
func CleanText(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
