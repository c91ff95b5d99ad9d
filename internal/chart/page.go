package chart

import "strings"

// ExtractPage extracts all result rows from one page of layout-preserved
// text. A page without a recognizable header yields no rows at all. Rows
// come back in source order; the first three collected rows carry the
// Win/Place/Show flags, on the assumption that the source lists horses by
// finish position.
func ExtractPage(text string) []ResultRow {
	header, ok := ParseHeader(text)
	if !ok {
		return nil
	}
	conditions, _ := ParseConditions(text)
	trainers := ParseTrainersFooter(text)

	var entries []HorseEntry
	for _, line := range strings.Split(text, "\n") {
		if e, ok := ParseHorseRow(line); ok {
			entries = append(entries, e)
		}
	}

	rows := make([]ResultRow, 0, len(entries))
	for i, e := range entries {
		row := ResultRow{
			Date:       header.Date,
			RaceNumber: header.RaceNumber,
			Surface:    conditions.Surface,
			Distance:   conditions.Distance,
			Jockey:     e.Jockey,
			Trainer:    trainers[e.Program],
		}
		switch i + 1 {
		case 1:
			row.Win = 1
		case 2:
			row.Place = 1
		case 3:
			row.Show = 1
		}
		rows = append(rows, row)
	}
	return rows
}

// ExtractTable extracts and concatenates result rows from a sequence of
// pages, preserving page order.
func ExtractTable(pages []string) []ResultRow {
	var all []ResultRow
	for _, page := range pages {
		all = append(all, ExtractPage(page)...)
	}
	return all
}
