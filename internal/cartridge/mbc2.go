package cartridge

import (
	"github.com/thelolagemann/gameboj/internal/ram"
	"github.com/thelolagemann/gameboj/internal/types"
)

// mbc2RAMSize is the size of the built-in RAM of the MBC2, made of
// 4-bit cells.
const mbc2RAMSize = 512

// MemoryBankedCartridge2 represents a MemoryBankedCartridge2 cartridge.
// Bit 8 of the address written to in 0000-3FFF selects between RAM
// enable (clear) and ROM bank number (set).
type MemoryBankedCartridge2 struct {
	rom      *ram.ROM
	romBanks int
	ram      *ram.RAM

	ramg bool
	romb uint8
}

// NewMemoryBankedCartridge2 returns a new MemoryBankedCartridge2 cartridge.
func NewMemoryBankedCartridge2(rom []byte) (*MemoryBankedCartridge2, error) {
	if err := checkBanks(rom); err != nil {
		return nil, err
	}
	return &MemoryBankedCartridge2{
		rom:      ram.NewROM(rom),
		romBanks: len(rom) / romBankSize,
		ram:      ram.NewRAM(mbc2RAMSize),
		romb:     0x01,
	}, nil
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected. The RAM is mirrored over A000-BFFF, and its upper nibble
// reads as ones.
func (m *MemoryBankedCartridge2) Read(address uint16) (uint8, bool) {
	switch {
	case address < 0x4000:
		return m.rom.Read(int(address)), true
	case address < 0x8000:
		bank := int(m.romb) % m.romBanks
		return m.rom.Read(bank*romBankSize + int(address-0x4000)), true
	case address >= types.ExternalRAMStart && address < types.ExternalRAMEnd:
		if !m.ramg {
			return 0xFF, true
		}
		return m.ram.Read(int(address&0x01FF)) | 0xF0, true
	}
	return 0, false
}

func (m *MemoryBankedCartridge2) Write(address uint16, value uint8) {
	switch {
	case address < 0x4000:
		if address&0x100 == 0x100 {
			m.romb = value & 0x0F
			if m.romb == 0 {
				m.romb = 1
			}
		} else {
			m.ramg = value&0x0F == 0x0A
		}
	case address >= types.ExternalRAMStart && address < types.ExternalRAMEnd:
		if m.ramg {
			m.ram.Write(int(address&0x01FF), value&0x0F)
		}
	}
}

var _ types.Stater = (*MemoryBankedCartridge2)(nil)

func (m *MemoryBankedCartridge2) Load(s *types.State) {
	m.ram.Load(s)
	m.ramg = s.ReadBool()
	m.romb = s.Read8()
}

func (m *MemoryBankedCartridge2) Save(s *types.State) {
	m.ram.Save(s)
	s.WriteBool(m.ramg)
	s.Write8(m.romb)
}
