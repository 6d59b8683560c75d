// Package lcd decodes the control and status registers of the LCD.
package lcd

import (
	"github.com/thelolagemann/gameboj/internal/types"
	"github.com/thelolagemann/gameboj/pkg/bits"
)

// Control is a decoded view of the LCD Control Register (0xFF40). Its
// value is stored as follows:
//
//	Bit 7 - LCD Enable             (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG Display                     (0=Off, 1=On)
type Control struct {
	// Enabled is the LCD Enable bit. When reset, the controller idles
	// with LY held at 0.
	Enabled bool
	// WindowTileMapAddress is the start address of the window tile map.
	//	(0=9800-9BFF)
	//  (1=9C00-9FFF)
	WindowTileMapAddress uint16
	// WindowEnabled is the Window Display Enable bit.
	WindowEnabled bool
	// UnsignedTileData represents the BG & Window Tile Data Select bit.
	// When set, tiles 0-255 are read from 0x8000-0x8FFF, as sprites
	// always are. Otherwise tiles 0-127 come from 0x9000-0x97FF and
	// tiles 128-255 from 0x8800-0x8FFF.
	UnsignedTileData bool
	// BackgroundTileMapAddress is the start address of the background
	// tile map.
	//	(0=9800-9BFF)
	//  (1=9C00-9FFF)
	BackgroundTileMapAddress uint16
	// SpriteHeight is 8 when the OBJ Size bit is reset, 16 otherwise.
	SpriteHeight int
	// SpriteEnabled is the OBJ (Sprite) Display Enable bit.
	SpriteEnabled bool
	// BackgroundEnabled is the BG Display bit.
	BackgroundEnabled bool
}

// DecodeControl decodes the value of the LCDC register.
func DecodeControl(value uint8) Control {
	c := Control{
		Enabled:                  bits.Test(value, 7),
		WindowTileMapAddress:     types.BGMap0,
		WindowEnabled:            bits.Test(value, 5),
		UnsignedTileData:         bits.Test(value, 4),
		BackgroundTileMapAddress: types.BGMap0,
		SpriteHeight:             8 + int(bits.Val(value, 2))*8,
		SpriteEnabled:            bits.Test(value, 1),
		BackgroundEnabled:        bits.Test(value, 0),
	}
	if bits.Test(value, 6) {
		c.WindowTileMapAddress = types.BGMap1
	}
	if bits.Test(value, 3) {
		c.BackgroundTileMapAddress = types.BGMap1
	}
	return c
}

// Byte encodes c back into the value of the LCDC register.
func (c Control) Byte() uint8 {
	var value uint8
	value = bits.SetTo(value, 7, c.Enabled)
	value = bits.SetTo(value, 6, c.WindowTileMapAddress == types.BGMap1)
	value = bits.SetTo(value, 5, c.WindowEnabled)
	value = bits.SetTo(value, 4, c.UnsignedTileData)
	value = bits.SetTo(value, 3, c.BackgroundTileMapAddress == types.BGMap1)
	value = bits.SetTo(value, 2, c.SpriteHeight == 16)
	value = bits.SetTo(value, 1, c.SpriteEnabled)
	value = bits.SetTo(value, 0, c.BackgroundEnabled)
	return value
}
