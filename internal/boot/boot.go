// Package boot provides the boot ROM of the Game Boy. The boot ROM is
// not shipped with the emulator; without one, the machine starts in
// the state the boot ROM would have left it in.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/thelolagemann/gameboj/internal/types"
)

// Size is the size of a DMG boot ROM.
const Size = int(types.BootROMEnd - types.BootROMStart)

// ROM represents a boot ROM for the Game Boy. When the Game Boy first
// powers on, the boot ROM is mapped to memory addresses 0x0000 -
// 0x00FF.
//
// The boot ROM performs a series of tasks, such as initializing the
// hardware, setting the stack pointer, scrolling the Nintendo logo, etc.
//
// Once the boot ROM has completed its tasks, it is unmapped from memory
// (by writing to the types.BDIS register), and the cartridge is mapped
// over the boot ROM, thus starting the cartridge execution, and preventing
// the boot ROM from being executed again.
type ROM struct {
	raw      []byte // the raw boot rom
	checksum string // the MD5 checksum of the boot rom
}

// LoadBootROM loads a boot ROM, which must be exactly 256 bytes long.
// The MD5 checksum of the boot ROM is computed to identify its model.
func LoadBootROM(b []byte) (*ROM, error) {
	if len(b) != Size {
		return nil, fmt.Errorf("boot: invalid boot rom length: %d, expected %d", len(b), Size)
	}

	bootChecksum := md5.Sum(b)
	raw := make([]byte, Size)
	copy(raw, b)

	return &ROM{
		raw:      raw,
		checksum: hex.EncodeToString(bootChecksum[:]),
	}, nil
}

// Read returns the byte at the given address.
func (b *ROM) Read(addr uint16) byte {
	return b.raw[addr]
}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Model returns the model of the boot rom. The model
// is determined by the checksum of the boot rom.
func (b *ROM) Model() string {
	if b == nil {
		return "none"
	}
	if model, ok := knownBootROMChecksums[b.checksum]; ok {
		return model
	}
	return "unknown"
}

// knownBootROMChecksums is a map of known boot rom checksums,
// with the key being the checksum, and the value being the
// model of the boot rom.
var knownBootROMChecksums = map[string]string{
	DMG0:         "Game Boy (DMG-0)",
	DMG:          "Game Boy (DMG-01)",
	MGB:          "Game Boy Pocket",
	SGB:          "Super Game Boy",
	SGB2:         "Super Game Boy 2",
	FORTUNE:      "Fortune/Bitman 3000B",
	GAME_FIGHTER: "Game Fighter",
	MAX_STATION:  "Max Station",
}

const (
	// DMG0 is the checksum of the DMG early boot ROM, only
	// found in very early Japanese units. It flashes the
	// screen on a boot failure instead of hanging.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	// DMG is the checksum of the boot ROM of the DMG-01.
	DMG = "32fbbd84168d3482956eb3c5051637f5"
	// MGB is the checksum of the MGB boot ROM. It loads 0xFF
	// into A instead of 0x01.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
	// SGB is the checksum of the SGB boot ROM, which sends the
	// cartridge header to the SNES instead of scrolling the logo.
	SGB = "d574d4f9c12f305074798f54c091a8b4"
	// SGB2 is the checksum of the SGB2 boot ROM.
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"
	// FORTUNE is the checksum of the boot ROM found in the
	// Game Boy clone "Fortune/Bitman 3000B".
	FORTUNE = "92ed4eca17d61fcd53f8a64c3ce84743"
	// GAME_FIGHTER is the checksum of the boot ROM found in the
	// Game Boy clone "Game Fighter".
	GAME_FIGHTER = "6a7b8ee12a793f66a969c6a2b8926cc9"
	// MAX_STATION is the checksum of the boot ROM found in the
	// Game Boy clone "Maxstation".
	MAX_STATION = "77a7021db824010a678791f6d062943d"
)

// Controller maps the boot ROM over the start of the cartridge, until
// the boot ROM disables itself by writing to types.BDIS.
type Controller struct {
	rom     *ROM
	enabled bool
}

// NewController returns a controller mapping rom. A nil rom leaves the
// controller disabled.
func NewController(rom *ROM) *Controller {
	return &Controller{rom: rom, enabled: rom != nil}
}

// Enabled reports whether the boot ROM is still mapped.
func (c *Controller) Enabled() bool {
	return c.enabled
}

// Read implements io.Component.
func (c *Controller) Read(address uint16) (uint8, bool) {
	if !c.enabled || address >= types.BootROMEnd {
		return 0, false
	}
	return c.rom.Read(address), true
}

// Write implements io.Component. Any write to types.BDIS unmaps the
// boot ROM, for good.
func (c *Controller) Write(address uint16, _ uint8) {
	if address == types.BDIS {
		c.enabled = false
	}
}

var _ types.Stater = (*Controller)(nil)

func (c *Controller) Load(s *types.State) {
	c.enabled = s.ReadBool() && c.rom != nil
}

func (c *Controller) Save(s *types.State) {
	s.WriteBool(c.enabled)
}
