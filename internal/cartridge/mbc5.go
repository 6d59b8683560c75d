package cartridge

import (
	"github.com/thelolagemann/gameboj/internal/ram"
	"github.com/thelolagemann/gameboj/internal/types"
)

// MemoryBankedCartridge5 represents a MemoryBankedCartridge5 cartridge,
// with a 9-bit ROM bank number and up to 16 RAM banks. Unlike the
// MBC1, bank 0 may be mapped in the switchable area.
type MemoryBankedCartridge5 struct {
	rom      *ram.ROM
	romBanks int
	ram      *ram.RAM

	ramEnabled bool
	romBank    int
	ramBank    int
}

func NewMemoryBankedCartridge5(rom []byte, header *Header) (*MemoryBankedCartridge5, error) {
	if err := checkBanks(rom); err != nil {
		return nil, err
	}
	return &MemoryBankedCartridge5{
		rom:      ram.NewROM(rom),
		romBanks: len(rom) / romBankSize,
		romBank:  1,
		ram:      ram.NewRAM(header.RAMSize),
	}, nil
}

func (m *MemoryBankedCartridge5) Read(address uint16) (uint8, bool) {
	switch {
	case address < 0x4000:
		return m.rom.Read(int(address)), true // first bank is always fixed
	case address < 0x8000:
		return m.rom.Read((m.romBank%m.romBanks)*romBankSize + int(address&0x3FFF)), true
	case address >= types.ExternalRAMStart && address < types.ExternalRAMEnd:
		if !m.ramEnabled || m.ram.Size() == 0 {
			return 0xFF, true
		}
		return m.ram.Read(m.ramAddress(address)), true
	}
	return 0, false
}

func (m *MemoryBankedCartridge5) ramAddress(address uint16) int {
	return (m.ramBank*ramBankSize + int(address&0x1FFF)) % m.ram.Size()
}

func (m *MemoryBankedCartridge5) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x3000:
		// ROM bank number (lower 8 bits)
		m.romBank = m.romBank&0x100 | int(value)
	case address < 0x4000:
		// ROM bank number (upper 1 bit)
		m.romBank = m.romBank&0xFF | int(value&0x1)<<8
	case address < 0x6000:
		m.ramBank = int(value) & 0xF
	case address >= types.ExternalRAMStart && address < types.ExternalRAMEnd:
		if m.ramEnabled && m.ram.Size() > 0 {
			m.ram.Write(m.ramAddress(address), value)
		}
	}
}

var _ types.Stater = (*MemoryBankedCartridge5)(nil)

func (m *MemoryBankedCartridge5) Load(s *types.State) {
	m.ram.Load(s)
	m.ramEnabled = s.ReadBool()
	m.romBank = int(s.Read16())
	m.ramBank = int(s.Read8())
}

func (m *MemoryBankedCartridge5) Save(s *types.State) {
	m.ram.Save(s)
	s.WriteBool(m.ramEnabled)
	s.Write16(uint16(m.romBank))
	s.Write8(uint8(m.ramBank))
}
