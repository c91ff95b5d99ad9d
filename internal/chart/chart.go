// Package chart turns layout-preserved race-chart page text into a flat
// table of per-horse results. All parsing is best-effort: a page without a
// recognizable header contributes nothing, and unrecognized lines are
// dropped silently. The package does no I/O and holds no state, so pages
// may be processed concurrently by the caller.
package chart

// Header carries the track, date, and race number recognized at the top of
// a chart page.
type Header struct {
	Track      string
	Date       string
	RaceNumber string
}

// Conditions carries the distance and surface recognized on a chart page.
// Both are empty when the page has no Distance marker.
type Conditions struct {
	Distance string
	Surface  string
}

// HorseEntry is one recognized horse line: the program number and the
// cleaned jockey name.
type HorseEntry struct {
	Program string
	Jockey  string
}

// ResultRow is the final output unit, one per recognized horse in source
// order. Win/Place/Show are 0/1 flags derived from row order.
type ResultRow struct {
	Date       string
	RaceNumber string
	Surface    string
	Distance   string
	Jockey     string
	Trainer    string
	Win        int
	Place      int
	Show       int
}
