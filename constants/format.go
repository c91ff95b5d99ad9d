package constants

import "strings"

// OutputFormat selects the encoding of a job's result table.
type OutputFormat string

const (
	FormatCSV  OutputFormat = "csv"
	FormatXLSX OutputFormat = "xlsx"
)

// ParseFormat normalizes a requested output format. An empty request means
// CSV; anything unrecognized is rejected.
func ParseFormat(s string) (OutputFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatCSV):
		return FormatCSV, true
	case string(FormatXLSX):
		return FormatXLSX, true
	}
	return "", false
}

// ContentType returns the MIME type used when storing the encoded table.
func (f OutputFormat) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}
