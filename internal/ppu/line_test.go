package ppu

import (
	"testing"
)

// colours returns the colours of the first n pixels of l.
func colours(l Line, n int) []uint8 {
	c := make([]uint8, n)
	for x := range c {
		c[x] = l.colour(x)
	}
	return c
}

func expectColours(t *testing.T, l Line, expected ...uint8) {
	t.Helper()
	got := colours(l, len(expected))
	for x := range expected {
		if got[x] != expected[x] {
			t.Errorf("expected colours %v, got %v", expected, got)
			return
		}
	}
}

func TestLineBuilder(t *testing.T) {
	l := NewLineBuilder(32).SetBytes(0, 0b1100, 0b1010).Build()
	expectColours(t, l, 0, 1, 2, 3, 0)

	if l.opacity.TestBit(0) || !l.opacity.TestBit(1) || l.opacity.TestBit(4) {
		t.Errorf("expected only non zero colours to be opaque, got %s", l.opacity)
	}

	b := NewLineBuilder(32)
	b.Build()
	defer func() {
		if recover() == nil {
			t.Errorf("expected reusing a built builder to panic")
		}
	}()
	b.SetBytes(0, 0, 0)
}

func TestLine_MapColors(t *testing.T) {
	l := NewLineBuilder(32).SetBytes(0, 0b1100, 0b1010).Build()

	if !l.MapColors(identityPalette).Equal(l) {
		t.Errorf("expected identity palette to keep the line")
	}

	mapped := l.MapColors(0b00_01_10_11)
	expectColours(t, mapped, 3, 2, 1, 0)
	if !mapped.opacity.Equal(l.opacity) {
		t.Errorf("expected opacity to be kept")
	}

	expectColours(t, l.MapColors(0xFF), 3, 3, 3, 3)
}

func TestLine_Below(t *testing.T) {
	below := NewLineBuilder(32).SetBytes(0, 0x00, 0xFF).Build()
	above := NewLineBuilder(32).SetBytes(0, 0x0F, 0x00).Build()

	merged := below.Under(above)
	expectColours(t, merged, 2, 2, 2, 2, 1, 1, 1, 1, 0)
	if !merged.opacity.Equal(below.opacity.Or(above.opacity)) {
		t.Errorf("expected union of opacities, got %s", merged.opacity)
	}
}

func TestLine_Join(t *testing.T) {
	left := NewLineBuilder(32).SetBytes(0, 0x00, 0xFF).Build()
	right := NewLineBuilder(32).SetBytes(0, 0x0F, 0x00).Build()

	expectColours(t, left.Join(right, 2), 1, 1, 2, 2, 0, 0)
	if !left.Join(right, 0).Equal(right) {
		t.Errorf("expected join at 0 to return the right line")
	}
	if !left.Join(right, 32).Equal(left) {
		t.Errorf("expected join at the end to return the left line")
	}
}

func TestLine_ShiftAndExtract(t *testing.T) {
	l := NewLineBuilder(32).SetBytes(0, 0x01, 0x01).Build()

	expectColours(t, l.Shift(2), 0, 0, 3)
	expectColours(t, l.ExtractWrapped(-1, 32), 0, 3)
	if c := l.ExtractWrapped(1, 32).colour(31); c != 3 {
		t.Errorf("expected pixel 0 to wrap to 31, got %d", c)
	}
}

func TestRectangleBorder(t *testing.T) {
	img := RectangleBorder(64, 8, 0, 0, 32, 4)

	tests := []struct {
		x, y     int
		expected uint8
	}{
		{0, 0, 3}, {31, 0, 3}, {32, 0, 0},
		{0, 2, 3}, {1, 2, 0}, {31, 2, 3},
		{5, 4, 3}, {5, 6, 0}, {0, 6, 0},
	}
	for _, tt := range tests {
		if got := img.Get(tt.x, tt.y); got != tt.expected {
			t.Errorf("pixel %d,%d: expected %d, got %d", tt.x, tt.y, tt.expected, got)
		}
	}

	wrapped := RectangleBorder(64, 8, 40, 6, 32, 4)
	for _, tt := range []struct {
		x, y     int
		expected uint8
	}{
		{40, 6, 3}, {7, 6, 3}, {8, 6, 0}, {40, 2, 3}, {40, 0, 3}, {41, 0, 0},
	} {
		if got := wrapped.Get(tt.x, tt.y); got != tt.expected {
			t.Errorf("wrapped pixel %d,%d: expected %d, got %d", tt.x, tt.y, tt.expected, got)
		}
	}
}

func TestImage_Below(t *testing.T) {
	b := NewImageBuilder(32, 2)
	b.SetLine(1, NewLineBuilder(32).SetBytes(0, 0, 0xFF).Build())
	img := b.Build()

	merged := img.Below(RectangleBorder(32, 2, 0, 0, 32, 1))
	if merged.Get(0, 0) != 3 || merged.Get(4, 1) != 3 {
		t.Errorf("expected border above the image")
	}
	if !img.Equal(img) || img.Equal(merged) {
		t.Errorf("expected image equality to compare pixels")
	}
}
