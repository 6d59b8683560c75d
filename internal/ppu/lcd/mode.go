package lcd

import "fmt"

// Mode represents a mode of the LCD, as reported in the two low bits
// of the STAT register.
type Mode uint8

const (
	// HBlank is the horizontal blanking mode. The CPU can access both the display RAM and OAM.
	HBlank Mode = iota
	// VBlank is the vertical blanking mode. The CPU can access both the display RAM and OAM.
	VBlank
	// OAM is the OAM mode. The CPU can access OAM but not the display RAM.
	OAM
	// VRAM is the VRAM mode. The CPU can access the display RAM but not OAM.
	VRAM
)

// Cycle budgets of the modes of a visible line, in machine cycles.
const (
	OAMCycles    = 20
	VRAMCycles   = 43
	HBlankCycles = 51

	// LineCycles is the length of a whole line.
	LineCycles = OAMCycles + VRAMCycles + HBlankCycles

	// VBlankLines is the number of lines spent in VBlank after the
	// visible ones.
	VBlankLines = 10
)

var modeNames = [...]string{"HBlank", "VBlank", "OAM", "VRAM"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}
