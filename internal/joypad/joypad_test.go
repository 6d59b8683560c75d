package joypad

import (
	"testing"

	"github.com/thelolagemann/gameboj/internal/interrupts"
	"github.com/thelolagemann/gameboj/internal/types"
)

type counter int

func (c *counter) Request(i interrupts.Interrupt) {
	if i == interrupts.Joypad {
		*c++
	}
}

func p1(s *State) uint8 {
	v, _ := s.Read(types.P1)
	return v
}

func TestState_Rows(t *testing.T) {
	var irq counter
	s := New(&irq)
	if p1(s) != 0xFF {
		t.Fatalf("expected P1 0xFF, got %#02x", p1(s))
	}

	s.Press(ButtonUp)
	s.Press(ButtonStart)
	if p1(s) != 0xFF {
		t.Errorf("expected no row selected to read 0xFF, got %#02x", p1(s))
	}

	t.Run("directions", func(t *testing.T) {
		s.Write(types.P1, 0x20)
		if v := p1(s); v != 0xEB {
			t.Errorf("expected 0xEB, got %#02x", v)
		}
	})
	t.Run("buttons", func(t *testing.T) {
		s.Write(types.P1, 0x10)
		if v := p1(s); v != 0xD7 {
			t.Errorf("expected 0xD7, got %#02x", v)
		}
	})
	t.Run("both rows", func(t *testing.T) {
		s.Write(types.P1, 0x00)
		if v := p1(s); v != 0xC3 {
			t.Errorf("expected 0xC3, got %#02x", v)
		}
	})
	t.Run("read only bits", func(t *testing.T) {
		s.Write(types.P1, 0x3F)
		if v := p1(s); v != 0xFF {
			t.Errorf("expected 0xFF, got %#02x", v)
		}
	})
}

func TestState_Interrupt(t *testing.T) {
	var irq counter
	s := New(&irq)
	s.Press(ButtonA)
	if irq != 0 {
		t.Errorf("expected no interrupt while the row is not selected, got %d", irq)
	}

	s.Write(types.P1, 0x10)
	if irq != 1 {
		t.Errorf("expected selecting a held row to interrupt, got %d", irq)
	}

	s.Press(ButtonB)
	if irq != 2 {
		t.Errorf("expected press to interrupt, got %d", irq)
	}

	s.Release(ButtonB)
	s.Press(ButtonDown)
	if irq != 2 {
		t.Errorf("expected release and unselected press not to interrupt, got %d", irq)
	}
}

func TestParseButton(t *testing.T) {
	for _, b := range Buttons {
		got, err := ParseButton(b.String())
		if err != nil || got != b {
			t.Errorf("expected %s, got %s (%v)", b, got, err)
		}
	}
	if _, err := ParseButton("TURBO"); err == nil {
		t.Errorf("expected unknown button to fail")
	}
}
