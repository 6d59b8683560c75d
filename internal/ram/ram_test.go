package ram

import (
	"testing"

	"github.com/thelolagemann/gameboj/internal/types"
)

func TestController(t *testing.T) {
	r := NewRAM(types.WRAMSize)
	work := NewController(r, types.WRAMStart)
	echo := NewControllerRange(r, types.EchoStart, int(types.EchoEnd))

	work.Write(0xC123, 0x42)
	if v, ok := echo.Read(0xE123); !ok || v != 0x42 {
		t.Errorf("expected echo to mirror work RAM, got %#02x (%v)", v, ok)
	}

	echo.Write(0xFDFF, 0x24)
	if v, _ := work.Read(0xDDFF); v != 0x24 {
		t.Errorf("expected work RAM to see echo write, got %#02x", v)
	}

	if _, ok := work.Read(0xBFFF); ok {
		t.Errorf("expected no data below the range")
	}
	if _, ok := echo.Read(0xFE00); ok {
		t.Errorf("expected no data past the range")
	}
}

func TestController_TopOfAddressSpace(t *testing.T) {
	c := NewControllerRange(NewRAM(1), 0xFFFF, 0x10000)
	c.Write(0xFFFF, 1)
	if v, ok := c.Read(0xFFFF); !ok || v != 1 {
		t.Errorf("expected 1, got %d (%v)", v, ok)
	}
}

func TestController_InvalidRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected oversized range to panic")
		}
	}()
	NewControllerRange(NewRAM(16), 0x0000, 32)
}
