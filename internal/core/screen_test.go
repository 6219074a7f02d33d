package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetColor(t *testing.T) {
	s := NewScreen(10, 5)
	s.SetColor(3, 2, '█', ColorGreen)

	cell := s.GetCell(3, 2)
	if cell.Rune != '█' || cell.Color != ColorGreen {
		t.Errorf("GetCell(3, 2) = %+v, expected green block", cell)
	}

	// Out of bounds writes are ignored and reads return space.
	s.Set(-1, 0, 'X')
	s.Set(10, 0, 'X')
	if s.Get(-1, 0) != ' ' || s.Get(10, 0) != ' ' {
		t.Error("out-of-bounds access should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(12, 1)
	s.DrawText(1, 0, "Score: 7")

	if got := s.Row(0); got != " Score: 7   " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawLine(t *testing.T) {
	s := NewScreen(5, 5)
	s.DrawLine(0, 0, 4, 4, '*', ColorRed)

	for i := 0; i < 5; i++ {
		if s.Get(i, i) != '*' {
			t.Errorf("expected diagonal cell (%d, %d) to be drawn", i, i)
		}
	}
	if s.Get(4, 0) != ' ' {
		t.Error("off-diagonal cell should stay empty")
	}
}

func TestScreenStringAndResize(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	if got := s.String(); got != "a  \n  b" {
		t.Errorf("String() = %q", got)
	}

	s.Resize(4, 3)
	if s.Width() != 4 || s.Height() != 3 {
		t.Fatalf("Resize did not apply, got %dx%d", s.Width(), s.Height())
	}
	if strings.TrimSpace(s.String()) != "" {
		t.Error("Resize should clear the buffer")
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionJump) {
		t.Fatal("new frame should be empty")
	}
	f.Set(ActionJump)
	f.Set(ActionPause)
	if !f.Has(ActionJump) || !f.Has(ActionPause) || f.Has(ActionQuit) {
		t.Error("Set/Has mismatch")
	}
	f.Clear()
	if f.Has(ActionJump) {
		t.Error("Clear should drop all actions")
	}
}
