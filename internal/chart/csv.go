package chart

import (
	"bytes"
	"strconv"
	"strings"
)

// Columns is the canonical output schema, in order.
var Columns = []string{"Date", "Race #", "Surface", "Distance", "Jockey", "Trainer", "WIN", "PLACE", "SHOW"}

// EncodeCSV serializes rows to RFC-4180 CSV: one header row, CRLF line
// endings, and every field quoted — including the numeric 0/1 flags, which
// downstream archival tooling expects quoted. encoding/csv only quotes
// fields that need it, so the record writer is hand-rolled. Output is
// deterministic for identical input.
func EncodeCSV(rows []ResultRow) []byte {
	var b bytes.Buffer
	writeRecord(&b, Columns)
	for _, r := range rows {
		writeRecord(&b, []string{
			r.Date,
			r.RaceNumber,
			r.Surface,
			r.Distance,
			r.Jockey,
			r.Trainer,
			strconv.Itoa(r.Win),
			strconv.Itoa(r.Place),
			strconv.Itoa(r.Show),
		})
	}
	return b.Bytes()
}

func writeRecord(b *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}
