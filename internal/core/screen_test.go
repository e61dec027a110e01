package core

import (
	"testing"
)

func TestScreenDrawCells(t *testing.T) {
	tests := []struct {
		name string
		draw func(s *Screen)
		want map[[2]int]Cell
	}{
		{
			name: "colored text",
			draw: func(s *Screen) { s.DrawTextColored(1, 1, "git", ColorBrightGreen) },
			want: map[[2]int]Cell{
				{1, 1}: {'g', ColorBrightGreen},
				{3, 1}: {'t', ColorBrightGreen},
				{4, 1}: blankCell,
			},
		},
		{
			name: "text clipped at the right edge",
			draw: func(s *Screen) { s.DrawTextColored(8, 0, "push", ColorRed) },
			want: map[[2]int]Cell{
				{8, 0}: {'p', ColorRed},
				{9, 0}: {'u', ColorRed},
			},
		},
		{
			name: "centered counts runes, not bytes",
			draw: func(s *Screen) { s.DrawTextCenteredColored(2, "▓▓", ColorOrange) },
			want: map[[2]int]Cell{
				{4, 2}: {'▓', ColorOrange},
				{5, 2}: {'▓', ColorOrange},
				{3, 2}: blankCell,
			},
		},
		{
			name: "plain set drops an earlier color",
			draw: func(s *Screen) {
				s.SetColored(0, 0, 'x', ColorCyan)
				s.Set(0, 0, 'y')
			},
			want: map[[2]int]Cell{{0, 0}: {'y', ColorDefault}},
		},
		{
			name: "fill rect",
			draw: func(s *Screen) { s.FillRect(2, 2, 2, 2, '#', ColorCyan) },
			want: map[[2]int]Cell{
				{2, 2}: {'#', ColorCyan},
				{3, 3}: {'#', ColorCyan},
				{4, 4}: blankCell,
			},
		},
		{
			name: "box corners and edges",
			draw: func(s *Screen) { s.DrawBox(0, 0, 4, 3, ColorGreen) },
			want: map[[2]int]Cell{
				{0, 0}: {'┌', ColorGreen},
				{3, 2}: {'┘', ColorGreen},
				{1, 0}: {'─', ColorGreen},
				{0, 1}: {'│', ColorGreen},
				{1, 1}: blankCell,
			},
		},
		{
			name: "out of bounds writes are ignored",
			draw: func(s *Screen) {
				s.SetColored(-1, 0, 'x', ColorRed)
				s.SetColored(0, 99, 'x', ColorRed)
			},
			want: map[[2]int]Cell{{0, 0}: blankCell},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(10, 5)
			tt.draw(s)
			for at, want := range tt.want {
				if got := s.GetCell(at[0], at[1]); got != want {
					t.Errorf("GetCell(%d, %d) = %+v, want %+v", at[0], at[1], got, want)
				}
			}
		})
	}
}

func TestScreenClearResetsColor(t *testing.T) {
	s := NewScreen(4, 2)
	s.FillRect(0, 0, 4, 2, '~', ColorRed)
	s.Clear()
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if got := s.GetCell(x, y); got != blankCell {
				t.Fatalf("GetCell(%d, %d) = %+v after Clear", x, y, got)
			}
		}
	}
	if s.GetCell(-1, -1) != blankCell {
		t.Error("out of bounds GetCell should return a blank cell")
	}
}

func TestScreenResizeKeepsCells(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawTextColored(0, 0, "ice", ColorBrightCyan)
	s.SetColored(5, 3, '*', ColorYellow)

	s.Resize(4, 2)
	if s.Width() != 4 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, want 4x2", s.Width(), s.Height())
	}
	if got := s.GetCell(2, 0); got != (Cell{'e', ColorBrightCyan}) {
		t.Errorf("GetCell(2, 0) = %+v after shrinking", got)
	}

	s.Resize(8, 5)
	if got := s.GetCell(0, 0); got != (Cell{'i', ColorBrightCyan}) {
		t.Errorf("GetCell(0, 0) = %+v after growing", got)
	}
	if got := s.GetCell(5, 3); got != blankCell {
		t.Errorf("GetCell(5, 3) = %+v, want the clipped cell gone", got)
	}
}

func TestScreenStringDropsColor(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawTextColored(0, 0, "ab", ColorMagenta)
	s.DrawHLine(0, 1, 3, '=')

	if got, want := s.String(), "ab \n==="; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := s.Row(1); got != "===" {
		t.Errorf("Row(1) = %q, want ===", got)
	}
	if got := s.Row(7); got != "   " {
		t.Errorf("Row(7) = %q, want blanks", got)
	}
}
