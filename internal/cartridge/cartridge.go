// Package cartridge provides the game cartridges supported by the
// emulator. A cartridge holds the game ROM and any external RAM, and
// maps them on the bus through its memory bank controller.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gameboj/internal/types"
)

var (
	// ErrUnsupportedType is returned for cartridges using a memory
	// bank controller the emulator does not implement.
	ErrUnsupportedType = errors.New("cartridge: unsupported cartridge type")
	// ErrROMSize is returned when the ROM does not have the size its
	// header or its controller requires.
	ErrROMSize = errors.New("cartridge: invalid ROM size")
)

const (
	romBankSize = 0x4000
	ramBankSize = 0x2000
)

// MemoryBankController maps the ROM and external RAM of a cartridge on
// the bus.
type MemoryBankController interface {
	Read(address uint16) (uint8, bool)
	Write(address uint16, value uint8)
	types.Stater
}

// Cartridge represents a game cartridge.
type Cartridge struct {
	header Header
	MemoryBankController
}

// New parses the header of rom and returns the cartridge driving it.
func New(rom []byte) (*Cartridge, error) {
	header, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}

	var mbc MemoryBankController
	switch header.CartridgeType {
	case ROM:
		mbc, err = NewROMCartridge(rom)
	case MBC1, MBC1RAM, MBC1RAMBATT:
		mbc, err = NewMemoryBankedCartridge1(rom, &header)
	case MBC2, MBC2BATT:
		mbc, err = NewMemoryBankedCartridge2(rom)
	case MBC5, MBC5RAM, MBC5RAMBATT:
		mbc, err = NewMemoryBankedCartridge5(rom, &header)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, header.CartridgeType)
	}
	if err != nil {
		return nil, err
	}

	return &Cartridge{header: header, MemoryBankController: mbc}, nil
}

// Header returns the parsed header of the cartridge.
func (c *Cartridge) Header() Header {
	return c.header
}

// Title returns the title of the cartridge.
func (c *Cartridge) Title() string {
	return c.header.Title
}

// checkBanks returns an error unless rom is a whole, non-zero number
// of 16 KiB banks.
func checkBanks(rom []byte) error {
	if len(rom) == 0 || len(rom)%romBankSize != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrROMSize, len(rom), romBankSize)
	}
	return nil
}
