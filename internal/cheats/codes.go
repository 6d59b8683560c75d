package cheats

import (
	"fmt"
	"strconv"
	"strings"
)

// GameGenie patches a ROM byte. The code is written ABC-DEF-GHI: AB is
// the new data, FCDE the address XORed with 0xF000, and GI the old data
// XORed with 0xBA and rotated left by 2. H is ignored by the hardware.
type GameGenie struct {
	NewData uint8
	Address uint16
	OldData uint8

	h uint8
}

// ParseGameGenie decodes a Game Genie code.
func ParseGameGenie(code string) (GameGenie, error) {
	if len(code) != 11 || code[3] != '-' || code[7] != '-' {
		return GameGenie{}, fmt.Errorf("%w: %q is not a Game Genie code", ErrInvalidCode, code)
	}
	hex := strings.ReplaceAll(code, "-", "")
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return GameGenie{}, fmt.Errorf("%w: %q: %v", ErrInvalidCode, code, err)
	}

	// digits A..I, A being the most significant
	digit := func(i int) uint16 { return uint16(v>>(4*(8-i))) & 0xF }
	gi := uint8(digit(6)<<4 | digit(8))
	return GameGenie{
		NewData: uint8(digit(0)<<4 | digit(1)),
		Address: (digit(5)<<12 | digit(2)<<8 | digit(3)<<4 | digit(4)) ^ 0xF000,
		OldData: (gi>>2 | gi<<6) ^ 0xBA,
		h:       uint8(digit(7)),
	}, nil
}

func (g GameGenie) String() string {
	x := g.OldData ^ 0xBA
	gi := x<<2 | x>>6
	a := g.Address ^ 0xF000
	return fmt.Sprintf("%02X%01X-%02X%01X-%01X%01X%01X",
		g.NewData, a>>8&0xF, a&0xFF, a>>12, gi>>4, g.h, gi&0xF)
}

// GameShark writes a RAM byte every frame. The code is written
// ABCDEFGH: AB is the external RAM bank, CD the new data, and GHEF the
// address, little endian.
type GameShark struct {
	Bank    uint8
	NewData uint8
	Address uint16
}

// ParseGameShark decodes a GameShark code.
func ParseGameShark(code string) (GameShark, error) {
	if len(code) != 8 {
		return GameShark{}, fmt.Errorf("%w: %q is not a GameShark code", ErrInvalidCode, code)
	}
	v, err := strconv.ParseUint(code, 16, 32)
	if err != nil {
		return GameShark{}, fmt.Errorf("%w: %q: %v", ErrInvalidCode, code, err)
	}

	c := GameShark{
		Bank:    uint8(v >> 24),
		NewData: uint8(v >> 16),
		Address: uint16(v)>>8 | uint16(v)<<8,
	}
	if c.Address < 0xA000 || c.Address >= 0xE000 {
		return GameShark{}, fmt.Errorf("%w: %q writes outside of RAM (%#04x)", ErrInvalidCode, code, c.Address)
	}
	return c, nil
}

func (g GameShark) String() string {
	return fmt.Sprintf("%02X%02X%02X%02X", g.Bank, g.NewData, uint8(g.Address), uint8(g.Address>>8))
}
