package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 12x4", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetColored(2, 3, '@', ColorYellow)

	c := s.GetCell(2, 3)
	if c.Rune != '@' || c.Color != ColorYellow {
		t.Errorf("GetCell(2, 3) = %+v, expected '@' yellow", c)
	}

	// Out of bounds writes are ignored, reads return a space
	s.SetColored(-1, 0, 'X', ColorRed)
	s.SetColored(0, 9, 'X', ColorRed)
	if s.Get(-1, 0) != ' ' || s.Get(0, 9) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawTextClipsAtEdge(t *testing.T) {
	s := NewScreen(6, 2)
	s.DrawTextColored(3, 1, "Score", ColorGreen)

	if got := s.Row(1); got != "   Sco" {
		t.Errorf("Row(1) = %q, expected %q", got, "   Sco")
	}
	if s.GetCell(3, 1).Color != ColorGreen {
		t.Error("DrawTextColored should carry the colour")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawTextCentered(1, "Paused")

	if got := strings.TrimSpace(s.Row(1)); got != "Paused" {
		t.Errorf("centered row = %q", got)
	}
	if s.Get(7, 1) != 'P' {
		t.Errorf("text should start at x=7, got %q", s.Get(7, 1))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(8, 5)
	s.DrawBox(NewRect(0, 0, 8, 5), ColorBlue)

	corners := map[[2]int]rune{
		{0, 0}: '┌',
		{7, 0}: '┐',
		{0, 4}: '└',
		{7, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner %v = %q, expected %q", pos, got, want)
		}
	}
	if s.Get(3, 0) != '─' || s.Get(0, 2) != '│' {
		t.Error("box edges not drawn")
	}
	if s.GetCell(3, 4).Color != ColorBlue {
		t.Error("box should be drawn in the given colour")
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(6, 6)
	s.DrawRect(NewRect(1, 1, 2, 2), '#')

	if s.Get(1, 1) != '#' || s.Get(2, 2) != '#' {
		t.Error("DrawRect should fill its area")
	}
	if s.Get(3, 3) != ' ' {
		t.Error("DrawRect should not affect outside area")
	}
}

func TestScreenResizePreservesCells(t *testing.T) {
	s := NewScreen(10, 4)
	s.DrawTextColored(0, 0, "Hello", ColorRed)

	s.Resize(4, 2)
	if got := s.Row(0); got != "Hell" {
		t.Errorf("after shrink Row(0) = %q", got)
	}

	s.Resize(12, 6)
	if !strings.HasPrefix(s.Row(0), "Hell ") {
		t.Errorf("after grow Row(0) = %q", s.Row(0))
	}
	if s.GetCell(0, 0).Color != ColorRed {
		t.Error("colour should survive resize")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "def")

	if got := s.String(); got != "abc\ndef" {
		t.Errorf("String() = %q", got)
	}
}
