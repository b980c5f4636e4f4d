package core

import (
	"strings"
	"testing"
)

func TestNewScreenStartsBlank(t *testing.T) {
	s := NewScreen(32, 28)

	if s.Width() != 32 || s.Height() != 28 {
		t.Errorf("dimensions = %dx%d, want 32x28", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("new screen should be spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, want 'X'", s.Get(5, 5))
	}
}

func TestScreenClipsOutOfBounds(t *testing.T) {
	s := NewScreen(10, 10)

	// Writes off any edge are dropped, not panics; sprites rely on this
	// when they slide off screen.
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out-of-bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.Set(x, y, 'X')
		}
	}

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("after Clear, want space at (%d, %d), got %q", x, y, s.Get(x, y))
			}
		}
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "KAI")

	for i, ch := range "KAI" {
		if s.Get(2+i, 1) != ch {
			t.Errorf("DrawText: want %q at (%d, 1), got %q", ch, 2+i, s.Get(2+i, 1))
		}
	}

	// Only "ME" fits before the right edge.
	s.DrawText(18, 0, "MERIDIAN")
	if s.Get(18, 0) != 'M' || s.Get(19, 0) != 'E' {
		t.Error("text should clip at the right edge")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Error("centered text not at expected position")
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawHLine(2, 2, 5, '=')

	for x := 2; x < 7; x++ {
		if s.Get(x, 2) != '=' {
			t.Errorf("DrawHLine: want '=' at (%d, 2), got %q", x, s.Get(x, 2))
		}
	}
	if s.Get(1, 2) != ' ' || s.Get(7, 2) != ' ' {
		t.Error("DrawHLine should not spill past its length")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	if got, want := s.String(), "AAAAA\nBBBBB\nCCCCC"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "VOSS")

	row := s.Row(2)
	if !strings.HasPrefix(row, "VOSS") {
		t.Errorf("Row(2) = %q, want prefix VOSS", row)
	}
	if len(row) != 10 {
		t.Errorf("row length = %d, want 10", len(row))
	}

	if s.Row(-1) != strings.Repeat(" ", 10) {
		t.Error("out-of-bounds row should be all spaces")
	}
}
