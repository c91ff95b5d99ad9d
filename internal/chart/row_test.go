package chart

import "testing"

func TestParseHorseRow(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want HorseEntry
		ok   bool
	}{
		{
			name: "typical row",
			in:   "7 Rozzyroo(Elliott,Christopher) 121 L 3 5.50",
			want: HorseEntry{Program: "7", Jockey: "Elliott, Christopher"},
			ok:   true,
		},
		{
			name: "program with letter suffix",
			in:   "1A Caribbean(AUS)(Olver,Madison) 118",
			want: HorseEntry{Program: "1A", Jockey: "Olver, Madison"},
			ok:   true,
		},
		{
			name: "date token before program number",
			in:   "18Dec22 5 Fastlane(Smith,Will) 120",
			want: HorseEntry{Program: "5", Jockey: "Smith, Will"},
			ok:   true,
		},
		{
			name: "fallback scan past a bare token",
			in:   "4 120 Ghostlyprince(Huayas,Gherson(Jason)) fin",
			want: HorseEntry{Program: "4", Jockey: "Huayas, Gherson(Jason)"},
			ok:   true,
		},
		{name: "empty line", in: "   ", ok: false},
		{name: "wager amount line", in: "$2 Daily 4-5-6 wager 24.50", ok: false},
		{name: "exacta line", in: "2 Exacta (4-5) 61.00", ok: false},
		{name: "pick line", in: "Pick 3 (2-5-7) 120.00", ok: false},
		{name: "double line", in: "Daily Double (1-3) 18.20", ok: false},
		{name: "jockey without comma", in: "4 Fastlane(Bob) 120", ok: false},
		{name: "no program number", in: "Fastlane(Smith,Will) ran well", ok: false},
		{name: "no name pair", in: "6 scratched", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseHorseRow(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseHorseRow(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseHorseRow(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
