package chart

import "testing"

func TestSplitJockeyHorse(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		horse  string
		jockey string
		ok     bool
	}{
		{
			name:   "simple pair",
			in:     "Rozzyroo(Elliott,Christopher)",
			horse:  "Rozzyroo",
			jockey: "Elliott, Christopher",
			ok:     true,
		},
		{
			name:   "nested parenthetical in jockey",
			in:     "Ghostlyprince(Huayas,Gherson(Jason))",
			horse:  "Ghostlyprince",
			jockey: "Huayas, Gherson(Jason)",
			ok:     true,
		},
		{
			name:   "country code on horse",
			in:     "Caribbean(AUS)(Olver,Madison)",
			horse:  "Caribbean(AUS)",
			jockey: "Olver, Madison",
			ok:     true,
		},
		{
			name:   "compressed jockey surname",
			in:     "Fastlane(RodriguezCastro,Luis)",
			horse:  "Fastlane",
			jockey: "Rodriguez Castro, Luis",
			ok:     true,
		},
		{name: "no parens", in: "HorseName", ok: false},
		{name: "closing only", in: "HorseName)", ok: false},
		{name: "does not end in paren", in: "Horse(Jockey)extra", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			horse, jockey, ok := SplitJockeyHorse(tt.in)
			if ok != tt.ok {
				t.Fatalf("SplitJockeyHorse(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if !ok {
				return
			}
			if horse != tt.horse || jockey != tt.jockey {
				t.Errorf("SplitJockeyHorse(%q) = (%q, %q), want (%q, %q)", tt.in, horse, jockey, tt.horse, tt.jockey)
			}
		})
	}
}
