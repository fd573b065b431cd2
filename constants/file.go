package constants

import "strings"

// AllowedExtensions holds the default allowed file extensions for document
// ingestion. The pipeline consumes decoded text only; PDF/DOCX decoding is an
// upstream concern.
var AllowedExtensions = map[string]struct{}{
	"txt": {},
	"md":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
