package chart

import "testing"

const samplePage = `AQUEDUCT - January 1, 2025 - Race 3
Distance: Six Furlongs On The Dirt
Pgm Horse(Jockey) Wgt Odds
1 Rozzyroo(Elliott,Christopher) 121 2.50
2 Caribbean(AUS)(Olver,Madison) 118 5.10
3 Ghostlyprince(Huayas,Gherson(Jason)) 120 9.80
4 Fastlane(Smith,Will) 117 12.00
$2 Exacta (1-2) 41.00
Trainers: 1 - Jones,Eduardo; 2 - Brown,William; 3 - DeLauro,Michael
Owners: 1 - Acme Stable; 2 - Blue Barn
`

func TestExtractPage(t *testing.T) {
	rows := ExtractPage(samplePage)
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	for i, r := range rows {
		if r.Date != "January 1, 2025" || r.RaceNumber != "3" {
			t.Errorf("row %d header fields = (%q, %q)", i, r.Date, r.RaceNumber)
		}
		if r.Surface != "Dirt" || r.Distance != "Six Furlongs" {
			t.Errorf("row %d conditions = (%q, %q)", i, r.Surface, r.Distance)
		}
	}

	// Win/Place/Show strictly from row order.
	wantFlags := [][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0, 0, 0}}
	for i, r := range rows {
		if got := [3]int{r.Win, r.Place, r.Show}; got != wantFlags[i] {
			t.Errorf("row %d flags = %v, want %v", i, got, wantFlags[i])
		}
	}

	wantJockeys := []string{"Elliott, Christopher", "Olver, Madison", "Huayas, Gherson(Jason)", "Smith, Will"}
	wantTrainers := []string{"Jones, Eduardo", "Brown, William", "DeLauro, Michael", ""}
	for i, r := range rows {
		if r.Jockey != wantJockeys[i] {
			t.Errorf("row %d jockey = %q, want %q", i, r.Jockey, wantJockeys[i])
		}
		if r.Trainer != wantTrainers[i] {
			t.Errorf("row %d trainer = %q, want %q", i, r.Trainer, wantTrainers[i])
		}
	}
}

func TestExtractPageNoHeader(t *testing.T) {
	// A page without a recognizable header contributes zero rows, even if
	// horse lines are present.
	page := "Distance: Six Furlongs On The Dirt\n1 Rozzyroo(Elliott,Christopher) 121\n"
	if rows := ExtractPage(page); rows != nil {
		t.Errorf("got %d rows for headerless page, want none", len(rows))
	}
}

func TestExtractPageNoConditions(t *testing.T) {
	page := "AQUEDUCT - January 1, 2025 - Race 6\n1 Rozzyroo(Elliott,Christopher) 121\n"
	rows := ExtractPage(page)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Surface != "" || rows[0].Distance != "" {
		t.Errorf("conditions = (%q, %q), want empty", rows[0].Surface, rows[0].Distance)
	}
	if rows[0].Trainer != "" {
		t.Errorf("trainer = %q, want empty without footer", rows[0].Trainer)
	}
}

func TestExtractTableOrdering(t *testing.T) {
	page2 := `AQUEDUCT - January 1, 2025 - Race 4
5 Moonshot(Vega,Carlos) 122
6 Redline(Ortiz,Jose) 119
`
	rows := ExtractTable([]string{samplePage, "no racing content here", page2})
	if len(rows) != 6 {
		t.Fatalf("got %d rows, want 6", len(rows))
	}
	if rows[4].RaceNumber != "4" || rows[4].Win != 1 {
		t.Errorf("first row of second page = %+v, want race 4 winner", rows[4])
	}
	if rows[5].Place != 1 {
		t.Errorf("second row of second page should carry the place flag: %+v", rows[5])
	}
}
