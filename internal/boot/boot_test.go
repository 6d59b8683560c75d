package boot

import (
	"testing"

	"github.com/thelolagemann/gameboj/internal/types"
)

func TestLoadBootROM(t *testing.T) {
	if _, err := LoadBootROM(make([]byte, 2304)); err == nil {
		t.Errorf("expected CGB sized boot ROM to be rejected")
	}

	rom, err := LoadBootROM(make([]byte, Size))
	if err != nil {
		t.Fatal(err)
	}
	if rom.Model() != "unknown" {
		t.Errorf("expected unknown model, got %s", rom.Model())
	}
	if len(rom.Checksum()) != 32 {
		t.Errorf("expected hex MD5 checksum, got %q", rom.Checksum())
	}

	var none *ROM
	if none.Model() != "none" {
		t.Errorf("expected nil ROM to report none, got %s", none.Model())
	}
}

func TestController(t *testing.T) {
	raw := make([]byte, Size)
	raw[0x00] = 0x31
	raw[0xFF] = 0x50
	rom, _ := LoadBootROM(raw)
	c := NewController(rom)

	if v, ok := c.Read(0x0000); !ok || v != 0x31 {
		t.Errorf("expected 0x31, got %#02x (%v)", v, ok)
	}
	if v, ok := c.Read(0x00FF); !ok || v != 0x50 {
		t.Errorf("expected 0x50, got %#02x (%v)", v, ok)
	}
	if _, ok := c.Read(0x0100); ok {
		t.Errorf("expected the cartridge header not to be overlaid")
	}

	c.Write(types.BDIS, 0x01)
	if _, ok := c.Read(0x0000); ok {
		t.Errorf("expected boot ROM to be unmapped")
	}
}

func TestController_WithoutROM(t *testing.T) {
	c := NewController(nil)
	if c.Enabled() {
		t.Errorf("expected controller without ROM to be disabled")
	}
	if _, ok := c.Read(0x0000); ok {
		t.Errorf("expected no data")
	}
}
