package constants

import "strings"

// AllowedExtensions holds the file extensions accepted for ingestion.
// Chart documents only arrive as PDFs.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
