package bits

import (
	"strings"
	"testing"
)

func vectorOf(words ...uint32) Vector {
	return Vector{words: words}
}

func TestNewVector(t *testing.T) {
	v := NewVector(64, true)
	if v.Size() != 64 {
		t.Errorf("expected size 64, got %d", v.Size())
	}
	for i := 0; i < 64; i++ {
		if !v.TestBit(i) {
			t.Fatalf("expected bit %d to be set", i)
		}
	}

	for _, size := range []int{0, -32, 31, 33} {
		expectPanic(t, "invalid size", func() { NewVector(size, false) })
	}
	expectPanic(t, "out of range bit", func() { v.TestBit(64) })
}

func TestVector_Logic(t *testing.T) {
	a := vectorOf(0xF0F0F0F0, 0x12345678)
	b := vectorOf(0xFF00FF00, 0x87654321)

	if !a.Not().Not().Equal(a) {
		t.Errorf("expected not(not(a)) == a")
	}
	if !a.And(a).Equal(a) {
		t.Errorf("expected a & a == a")
	}
	if !a.Xor(a).Equal(NewVector(64, false)) {
		t.Errorf("expected a ^ a to be all zero, got %s", a.Xor(a))
	}
	if got := a.And(b).Uint32s(); got[0] != 0xF000F000 || got[1] != 0x12345678&0x87654321 {
		t.Errorf("unexpected and result %x", got)
	}
	if got := a.Or(b).Uint32s(); got[0] != 0xFFF0FFF0 {
		t.Errorf("unexpected or result %x", got)
	}

	expectPanic(t, "mismatched sizes", func() { a.And(NewVector(32, false)) })
}

func TestVector_Shift(t *testing.T) {
	v := vectorOf(0x80000001, 0)
	if got := v.Shift(1).Uint32s(); got[0] != 0x00000002 || got[1] != 1 {
		t.Errorf("expected carry into second word, got %x", got)
	}
	if got := v.Shift(-1).Uint32s(); got[0] != 0x40000000 || got[1] != 0 {
		t.Errorf("expected low bit to fall off, got %x", got)
	}
	if got := v.Shift(64); !got.Equal(NewVector(64, false)) {
		t.Errorf("expected full shift to clear, got %s", got)
	}
}

func TestVector_Extract(t *testing.T) {
	v := vectorOf(0x11111111, 0x22222222)

	t.Run("zero extended", func(t *testing.T) {
		got := v.ExtractZeroExtended(-32, 96).Uint32s()
		if got[0] != 0 || got[1] != 0x11111111 || got[2] != 0x22222222 {
			t.Errorf("unexpected words %x", got)
		}
		got = v.ExtractZeroExtended(48, 32).Uint32s()
		if got[0] != 0x2222 {
			t.Errorf("expected 0x2222, got %x", got[0])
		}
	})

	t.Run("wrapped", func(t *testing.T) {
		got := v.ExtractWrapped(-32, 96).Uint32s()
		if got[0] != 0x22222222 || got[1] != 0x11111111 || got[2] != 0x22222222 {
			t.Errorf("unexpected words %x", got)
		}
		got = v.ExtractWrapped(48, 32).Uint32s()
		if got[0] != 0x11112222 {
			t.Errorf("expected 0x11112222, got %x", got[0])
		}
	})

	t.Run("idempotent window", func(t *testing.T) {
		for _, index := range []int{-100, -33, -1, 0, 5, 63, 64, 200} {
			w := v.ExtractWrapped(index, 64)
			if !w.ExtractWrapped(0, 64).Equal(w) {
				t.Errorf("expected re-extraction at %d to be idempotent", index)
			}
			if !w.ExtractWrapped(64, 64).Equal(w) {
				t.Errorf("expected wrapped extraction at %d to be periodic", index)
			}
		}
	})

	expectPanic(t, "unaligned length", func() { v.ExtractWrapped(0, 8) })
}

func TestVector_String(t *testing.T) {
	s := vectorOf(1).String()
	if s != strings.Repeat("0", 31)+"1" {
		t.Errorf("expected bit 0 last, got %s", s)
	}
}

func TestVectorBuilder(t *testing.T) {
	b := NewVectorBuilder(64)
	b.SetByte(0, 0xAB).SetByte(3, 0xCD).SetByte(7, 0xEF)
	v := b.Build()

	if got := v.Uint32s(); got[0] != 0xCD0000AB || got[1] != 0xEF000000 {
		t.Errorf("unexpected words %x", got)
	}

	expectPanic(t, "second build", func() { b.Build() })
	expectPanic(t, "set after build", func() { b.SetByte(0, 1) })
	expectPanic(t, "byte out of range", func() { NewVectorBuilder(32).SetByte(4, 0) })
}
