package core

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		name string
		want Color
		ok   bool
	}{
		{"cyan", ColorCyan, true},
		{" Bright-Yellow ", ColorBrightYellow, true},
		{"grey", ColorGray, true},
		{"default", ColorDefault, true},
		{"teal", ColorDefault, false},
		{"", ColorDefault, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseColor(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestColorStringRoundTrip(t *testing.T) {
	for c := ColorDefault; c <= ColorGray; c++ {
		got, ok := ParseColor(c.String())
		if !ok || got != c {
			t.Errorf("ParseColor(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if Color(200).String() != "unknown" {
		t.Errorf("Color(200).String() = %q", Color(200).String())
	}
}
