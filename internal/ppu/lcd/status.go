package lcd

import "github.com/thelolagemann/gameboj/pkg/bits"

// Status is the value of the LCD status register (0xFF41). It is
// stored as follows:
//
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 2 - Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
//	Bit 1-0 - Mode Flag       (Mode 0-3, see Mode) (Read Only)
type Status uint8

const (
	coincidenceBit          = 2
	hBlankInterruptBit      = 3
	vBlankInterruptBit      = 4
	oamInterruptBit         = 5
	coincidenceInterruptBit = 6

	// ReadOnlyMask selects the bits of STAT that writes leave untouched.
	ReadOnlyMask = 0b0000_0111
)

// Mode returns the current mode.
func (s Status) Mode() Mode {
	return Mode(s & 0b11)
}

// WithMode returns s reporting mode m.
func (s Status) WithMode(m Mode) Status {
	return s&^0b11 | Status(m)
}

// Coincidence reports whether the LYC=LY flag is set.
func (s Status) Coincidence() bool {
	return bits.Test(uint8(s), coincidenceBit)
}

// WithCoincidence returns s with the LYC=LY flag set to v.
func (s Status) WithCoincidence(v bool) Status {
	return Status(bits.SetTo(uint8(s), coincidenceBit, v))
}

// CoincidenceInterrupt reports whether a match of LY and LYC requests
// a STAT interrupt.
func (s Status) CoincidenceInterrupt() bool {
	return bits.Test(uint8(s), coincidenceInterruptBit)
}

// ModeInterrupt reports whether entering m requests a STAT interrupt.
// VRAM mode never does.
func (s Status) ModeInterrupt(m Mode) bool {
	switch m {
	case HBlank:
		return bits.Test(uint8(s), hBlankInterruptBit)
	case VBlank:
		return bits.Test(uint8(s), vBlankInterruptBit)
	case OAM:
		return bits.Test(uint8(s), oamInterruptBit)
	}
	return false
}

// Write returns s after the CPU wrote value to STAT, which keeps the
// read only bits.
func (s Status) Write(value uint8) Status {
	return s&ReadOnlyMask | Status(value&^ReadOnlyMask)
}
