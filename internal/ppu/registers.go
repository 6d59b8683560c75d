package ppu

import (
	"fmt"

	"github.com/thelolagemann/gameboj/internal/types"
)

// Reg is one of the registers of the LCD, mapped from types.LCDC to
// types.WX.
type Reg uint8

const (
	LCDC Reg = iota + 1
	STAT
	SCY
	SCX
	LY
	LYC
	DMA
	BGP
	OBP0
	OBP1
	WY
	WX
)

// AllRegs lists every LCD register.
var AllRegs = []Reg{LCDC, STAT, SCY, SCX, LY, LYC, DMA, BGP, OBP0, OBP1, WY, WX}

var regIndex = map[Reg]int{
	LCDC: 0, STAT: 1, SCY: 2, SCX: 3, LY: 4, LYC: 5,
	DMA: 6, BGP: 7, OBP0: 8, OBP1: 9, WY: 10, WX: 11,
}

var regNames = map[Reg]string{
	LCDC: "LCDC", STAT: "STAT", SCY: "SCY", SCX: "SCX", LY: "LY", LYC: "LYC",
	DMA: "DMA", BGP: "BGP", OBP0: "OBP0", OBP1: "OBP1", WY: "WY", WX: "WX",
}

// Index returns the position of r in the register file, which is also
// its offset from types.LCDC.
func (r Reg) Index() int {
	i, ok := regIndex[r]
	if !ok {
		panic(fmt.Sprintf("ppu: unknown register %d", uint8(r)))
	}
	return i
}

// Address returns the address r is mapped at.
func (r Reg) Address() uint16 {
	return types.LCDC + uint16(r.Index())
}

func (r Reg) String() string {
	if n, ok := regNames[r]; ok {
		return n
	}
	return fmt.Sprintf("Reg(%d)", uint8(r))
}

// regAt returns the register mapped at address, which must be in
// [types.LCDRegsStart, types.LCDRegsEnd).
func regAt(address uint16) Reg {
	return AllRegs[address-types.LCDRegsStart]
}
