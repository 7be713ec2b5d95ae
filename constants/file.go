package constants

import "strings"

// AllowedExtensions holds the file extensions the local text adapter can
// decode. PDF/image/DOCX decoding lives behind an external collaborator
// and is not listed here.
var AllowedExtensions = map[string]struct{}{
	"txt":  {},
	"text": {},
	"md":   {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
