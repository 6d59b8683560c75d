package cartridge

import (
	"fmt"

	"github.com/thelolagemann/gameboj/internal/ram"
	"github.com/thelolagemann/gameboj/internal/types"
)

// romOnlySize is the size of a cartridge without controller.
const romOnlySize = 2 * romBankSize

// ROMCartridge represents a ROM cartridge. This cartridge type is the simplest
// cartridge type and has no external RAM or MBC.
type ROMCartridge struct {
	rom *ram.ROM
}

// NewROMCartridge returns a new ROM cartridge. rom must be exactly
// 32 KiB long.
func NewROMCartridge(rom []byte) (*ROMCartridge, error) {
	if len(rom) != romOnlySize {
		return nil, fmt.Errorf("%w: ROM only cartridges hold %d bytes, got %d", ErrROMSize, romOnlySize, len(rom))
	}
	return &ROMCartridge{rom: ram.NewROM(rom)}, nil
}

// Read returns the value at the given address, for 0x0000-0x7FFF.
func (r *ROMCartridge) Read(address uint16) (uint8, bool) {
	if address >= romOnlySize {
		return 0, false
	}
	return r.rom.Read(int(address)), true
}

// Write does nothing, as ROM is read-only.
func (r *ROMCartridge) Write(uint16, uint8) {}

func (r *ROMCartridge) Load(*types.State) {}

func (r *ROMCartridge) Save(*types.State) {}
