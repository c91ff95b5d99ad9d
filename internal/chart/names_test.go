package chart

import "testing"

func TestSegmentName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Jones,Eduardo", "Jones, Eduardo"},
		{"Jones, Eduardo", "Jones, Eduardo"},
		{"RodriguezCastro", "Rodriguez Castro"},
		{"BarreraIII", "Barrera III"},
		{"DeLauro,Michael", "DeLauro, Michael"},
		{"McCormack,Sean", "McCormack, Sean"},
		{"MacDonald,Angus", "MacDonald, Angus"},
		{"Bond,H.James", "Bond, H. James"},
		{"O'Brien,Aidan", "O'Brien, Aidan"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SegmentName(tt.in); got != tt.want {
			t.Errorf("SegmentName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Segmenting is idempotent: cleaning an already-clean name changes nothing.
func TestSegmentNameIdempotent(t *testing.T) {
	inputs := []string{
		"Jones,Eduardo",
		"RodriguezCastro",
		"BarreraIII",
		"DeLauro,Michael",
		"McCormack,Sean",
		"MacDonald,Angus",
		"Bond,H.James",
		"O'Brien,Aidan",
		"plain name",
	}
	for _, in := range inputs {
		once := SegmentName(in)
		twice := SegmentName(once)
		if once != twice {
			t.Errorf("SegmentName not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}
