package interrupts

import (
	"testing"

	"github.com/thelolagemann/gameboj/internal/types"
)

func TestInterrupt_Vector(t *testing.T) {
	expected := map[Interrupt]uint16{
		VBlank:  0x40,
		LCDStat: 0x48,
		Timer:   0x50,
		Serial:  0x58,
		Joypad:  0x60,
	}
	for i, v := range expected {
		if i.Vector() != v {
			t.Errorf("%s: expected vector %#04x, got %#04x", i, v, i.Vector())
		}
	}
}

func TestInterrupt_IndexIsDense(t *testing.T) {
	seen := make(map[int]bool)
	for _, i := range All {
		if seen[i.Index()] {
			t.Errorf("%s: index %d used twice", i, i.Index())
		}
		seen[i.Index()] = true
	}
	for n := 0; n < len(All); n++ {
		if !seen[n] {
			t.Errorf("expected index %d to be used", n)
		}
	}
}

func TestService_Acknowledge(t *testing.T) {
	t.Run("lowest pending bit wins", func(t *testing.T) {
		s := NewService()
		s.Flag = 0b00101
		s.Enable = 0b00111

		i, ok := s.Acknowledge()
		if !ok || i != VBlank {
			t.Fatalf("expected VBLANK, got %s (%v)", i, ok)
		}
		if s.Flag != 0b00100 {
			t.Errorf("expected IF 0b00100, got %05b", s.Flag)
		}
	})
	t.Run("disabled requests are ignored", func(t *testing.T) {
		s := NewService()
		s.Flag = 0b00110
		s.Enable = 0b00100

		i, ok := s.Acknowledge()
		if !ok || i != Timer {
			t.Fatalf("expected TIMER, got %s (%v)", i, ok)
		}
		if s.Flag != 0b00010 {
			t.Errorf("expected IF 0b00010, got %05b", s.Flag)
		}
		if _, ok := s.Acknowledge(); ok {
			t.Errorf("expected nothing pending")
		}
	})
}

func TestService_Registers(t *testing.T) {
	s := NewService()
	s.Write(types.IF, 0xFF)
	s.Write(types.IE, 0x15)

	if v, _ := s.Read(types.IF); v != 0xFF {
		t.Errorf("expected IF to read 0xFF, got %#02x", v)
	}
	if s.Flag != 0x1F {
		t.Errorf("expected IF to hold 0x1F, got %#02x", s.Flag)
	}
	if v, _ := s.Read(types.IE); v != 0x15 {
		t.Errorf("expected IE 0x15, got %#02x", v)
	}
	if _, ok := s.Read(0xFF10); ok {
		t.Errorf("expected no data outside IF and IE")
	}

	s.Request(Joypad)
	if !s.Pending() {
		t.Errorf("expected a pending interrupt")
	}
}
