package cartridge

import (
	"github.com/thelolagemann/gameboj/internal/ram"
	"github.com/thelolagemann/gameboj/internal/types"
)

// MemoryBankedCartridge1 represents a MemoryBankedCartridge1 cartridge. This cartridge type
// supports up to 2 MiB of ROM and 32 KiB of external RAM.
//
//	0000-1FFF - RAM enable (0x0A in the low nibble enables)
//	2000-3FFF - ROM bank number, lower 5 bits (0 selects 1)
//	4000-5FFF - RAM bank number, or upper 2 bits of the ROM bank number
//	6000-7FFF - Banking mode select
type MemoryBankedCartridge1 struct {
	rom      *ram.ROM
	romBanks int
	romBank  uint8 // lower 5 bits of the ROM bank

	ram        *ram.RAM
	ramBank    uint8 // 2 bits, either RAM bank or upper ROM bank bits
	ramEnabled bool

	// romBanking is the default banking mode, in which ramBank only
	// affects the switchable ROM area.
	romBanking bool
}

// NewMemoryBankedCartridge1 returns a new MemoryBankedCartridge1
// cartridge, with as much external RAM as its header declares.
func NewMemoryBankedCartridge1(rom []byte, header *Header) (*MemoryBankedCartridge1, error) {
	if err := checkBanks(rom); err != nil {
		return nil, err
	}
	return &MemoryBankedCartridge1{
		rom:        ram.NewROM(rom),
		romBanks:   len(rom) / romBankSize,
		romBank:    1,
		ram:        ram.NewRAM(header.RAMSize),
		romBanking: true,
	}, nil
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected.
func (m *MemoryBankedCartridge1) Read(address uint16) (uint8, bool) {
	switch {
	case address < 0x4000:
		var bank int
		if !m.romBanking {
			bank = int(m.ramBank) << 5
		}
		return m.readROM(bank, address), true
	case address < 0x8000:
		return m.readROM(int(m.ramBank)<<5|int(m.romBank), address-0x4000), true
	case address >= types.ExternalRAMStart && address < types.ExternalRAMEnd:
		if !m.ramEnabled || m.ram.Size() == 0 {
			return 0xFF, true
		}
		return m.ram.Read(m.ramAddress(address)), true
	}
	return 0, false
}

func (m *MemoryBankedCartridge1) readROM(bank int, offset uint16) uint8 {
	return m.rom.Read((bank%m.romBanks)*romBankSize + int(offset))
}

func (m *MemoryBankedCartridge1) ramAddress(address uint16) int {
	offset := int(address - types.ExternalRAMStart)
	if !m.romBanking {
		offset += int(m.ramBank) * ramBankSize
	}
	return offset % m.ram.Size()
}

// Write attempts to switch the ROM or RAM bank, or writes to the
// external RAM.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.romBank = value & 0x1F
		if m.romBank == 0 {
			m.romBank = 1
		}
	case address < 0x6000:
		m.ramBank = value & 0x03
	case address < 0x8000:
		m.romBanking = value&0x01 == 0x00
	case address >= types.ExternalRAMStart && address < types.ExternalRAMEnd:
		if m.ramEnabled && m.ram.Size() > 0 {
			m.ram.Write(m.ramAddress(address), value)
		}
	}
}

var _ types.Stater = (*MemoryBankedCartridge1)(nil)

func (m *MemoryBankedCartridge1) Load(s *types.State) {
	m.ram.Load(s)
	m.romBank = s.Read8()
	m.ramBank = s.Read8()
	m.ramEnabled = s.ReadBool()
	m.romBanking = s.ReadBool()
}

func (m *MemoryBankedCartridge1) Save(s *types.State) {
	m.ram.Save(s)
	s.Write8(m.romBank)
	s.Write8(m.ramBank)
	s.WriteBool(m.ramEnabled)
	s.WriteBool(m.romBanking)
}
