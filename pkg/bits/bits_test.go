package bits

import "testing"

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("expected %s to panic", name)
		}
	}()
	fn()
}

func TestReverse8(t *testing.T) {
	tests := map[uint8]uint8{
		0b0000_0001: 0b1000_0000,
		0b1100_0000: 0b0000_0011,
		0b1010_0101: 0b1010_0101,
		0b0001_0010: 0b0100_1000,
	}
	for in, want := range tests {
		if got := Reverse8(in); got != want {
			t.Errorf("expected %08b, got %08b", want, got)
		}
	}

	for v := 0; v < 256; v++ {
		if got := Reverse8(Reverse8(uint8(v))); got != uint8(v) {
			t.Errorf("expected reverse to be an involution for %02x, got %02x", v, got)
		}
		if got := Complement8(Complement8(uint8(v))); got != uint8(v) {
			t.Errorf("expected complement to be an involution for %02x, got %02x", v, got)
		}
	}
}

func TestSignExtend8(t *testing.T) {
	for in, want := range map[uint8]int{0x00: 0, 0x7F: 127, 0x80: -128, 0xFF: -1, 0xFE: -2} {
		if got := SignExtend8(in); got != want {
			t.Errorf("expected %d, got %d", want, got)
		}
	}
}

func TestRotate(t *testing.T) {
	t.Run("left", func(t *testing.T) {
		if got := Rotate(8, 0b1000_0001, 1); got != 0b0000_0011 {
			t.Errorf("expected 0b11, got %08b", got)
		}
	})
	t.Run("right", func(t *testing.T) {
		if got := Rotate(8, 0b1000_0001, -1); got != 0b1100_0000 {
			t.Errorf("expected 0b11000000, got %08b", got)
		}
	})
	t.Run("nine bits", func(t *testing.T) {
		if got := Rotate(9, 0b1_0000_0000, 1); got != 1 {
			t.Errorf("expected 1, got %09b", got)
		}
	})
	t.Run("full turn", func(t *testing.T) {
		if got := Rotate(4, 0b1010, 4); got != 0b1010 {
			t.Errorf("expected 1010, got %04b", got)
		}
	})
	expectPanic(t, "rotate of an oversized value", func() { Rotate(4, 0x10, 1) })
}

func TestPacking(t *testing.T) {
	w := Make16(0xAB, 0xCD)
	if w != 0xABCD {
		t.Errorf("expected 0xABCD, got %#04x", w)
	}
	if Msb8(w) != 0xAB || Lsb8(w) != 0xCD {
		t.Errorf("expected AB/CD, got %02X/%02X", Msb8(w), Lsb8(w))
	}
}

func TestMaskAndExtract(t *testing.T) {
	if Mask(31) != 0x80000000 {
		t.Errorf("expected bit 31, got %#x", Mask(31))
	}
	if !Test32(0b100, 2) || Test32(0b100, 1) {
		t.Errorf("expected only bit 2 set")
	}
	if got := Set32(0, 4, true); got != 0x10 {
		t.Errorf("expected 0x10, got %#x", got)
	}
	if got := Extract(0xABCD, 4, 8); got != 0xBC {
		t.Errorf("expected 0xBC, got %#x", got)
	}
	if got := Clip(4, 0xFF); got != 0xF {
		t.Errorf("expected 0xF, got %#x", got)
	}
	if got := SetTo(0, 7, true); got != 0x80 {
		t.Errorf("expected 0x80, got %#x", got)
	}
	expectPanic(t, "negative mask", func() { Mask(-1) })
	expectPanic(t, "mask past 31", func() { Mask(32) })
}
