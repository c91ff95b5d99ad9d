package chart

import "testing"

func TestParseConditions(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Conditions
		ok   bool
	}{
		{
			name: "compressed distance and surface",
			in:   "Distance:SixFurlongsOnTheDirt",
			want: Conditions{Distance: "Six Furlongs", Surface: "Dirt"},
			ok:   true,
		},
		{
			name: "spaced text",
			in:   "Distance: One Mile On The Turf",
			want: Conditions{Distance: "One Mile", Surface: "Turf"},
			ok:   true,
		},
		{
			name: "two word surface",
			in:   "Distance: Five Furlongs On The All Weather Track",
			want: Conditions{Distance: "Five Furlongs", Surface: "All Weather"},
			ok:   true,
		},
		{
			name: "tapeta",
			in:   "distance:OneMileOnTheTapeta",
			want: Conditions{Distance: "One Mile", Surface: "Tapeta"},
			ok:   true,
		},
		{
			name: "unrecognized surface",
			in:   "Distance: Six Furlongs On The Moon",
			want: Conditions{Distance: "Six Furlongs", Surface: SurfaceUnknown},
			ok:   true,
		},
		{name: "no distance marker", in: "AQUEDUCT - January 1, 2025 - Race 3", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseConditions(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseConditions(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseConditions(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDespaceDistance(t *testing.T) {
	tests := []struct{ in, want string }{
		{"SixFurlongs", "Six Furlongs"},
		{"OneMileAndOneSixteenth", "One Mile And One Sixteenth"},
		{"Six Furlongs", "Six Furlongs"}, // already spaced
		{"6F", "6F"},                     // too short to be compressed words
		{"", ""},
	}
	for _, tt := range tests {
		if got := despaceDistance(tt.in); got != tt.want {
			t.Errorf("despaceDistance(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
