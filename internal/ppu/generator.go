package ppu

import (
	"fmt"
	"sort"

	"github.com/thelolagemann/gameboj/internal/ppu/lcd"
	"github.com/thelolagemann/gameboj/internal/types"
	"github.com/thelolagemann/gameboj/pkg/bits"
)

const (
	// mapSize is the size in pixels of the square background and
	// window maps.
	mapSize = 256
	// tileSize is the size in pixels of a square tile.
	tileSize = 8
	// tileBytes is the number of bytes encoding a tile.
	tileBytes = 16

	spriteCount   = 40
	spriteBytes   = 4
	spritesOnLine = 10

	// sprite positions are offset, so that a sprite may be partially
	// hidden at the top and left of the screen.
	spriteYOffset = 16
	spriteXOffset = 8
	windowXOffset = 7
)

// Sprite attribute bits.
const (
	attrPalette = 4
	attrFlipH   = 5
	attrFlipV   = 6
	attrBehind  = 7
)

// computeLine returns line ly of the screen: the background, then the
// window, with the sprites behind the background below them and the
// other sprites above them.
func (p *PPU) computeLine(ly int) Line {
	ctrl := p.control()
	line := emptyLine(ScreenWidth)

	if ctrl.BackgroundEnabled {
		y := (ly + int(p.regs.Get(SCY))) % mapSize
		line = p.backgroundLine(ctrl, y).ExtractWrapped(int(p.regs.Get(SCX)), ScreenWidth)
	}

	wx := max(int(p.regs.Get(WX))-windowXOffset, 0)
	if ctrl.WindowEnabled && wx < ScreenWidth && int(p.regs.Get(WY)) <= ly {
		window := emptyLine(mapSize).
			Below(p.windowLine(ctrl, p.winY), bits.NewVector(mapSize, true)).
			Shift(wx).
			ExtractWrapped(0, ScreenWidth)
		line = line.Join(window, wx)
		p.winY++
	}

	behind := emptyLine(ScreenWidth)
	front := emptyLine(ScreenWidth)
	if ctrl.SpriteEnabled {
		sprites := p.spritesIntersecting(ctrl, ly)
		behind = p.spriteGroup(ctrl, ly, sprites, true)
		front = p.spriteGroup(ctrl, ly, sprites, false)
	}

	// pixels where neither the background nor the sprites behind it
	// are opaque keep the colour 0 of the background
	opaque := line.opacity.Or(behind.opacity.Or(line.opacity).Not())
	line = behind.Below(line, opaque).Under(front)

	if !line.opacity.Equal(bits.NewVector(ScreenWidth, true)) {
		panic(fmt.Sprintf("ppu: line %d is not opaque", ly))
	}
	return line
}

func (p *PPU) backgroundLine(ctrl lcd.Control, y int) Line {
	return p.mapLine(ctrl.BackgroundTileMapAddress, ctrl.UnsignedTileData, y).MapColors(p.regs.Get(BGP))
}

func (p *PPU) windowLine(ctrl lcd.Control, y int) Line {
	return p.mapLine(ctrl.WindowTileMapAddress, ctrl.UnsignedTileData, y).MapColors(p.regs.Get(BGP))
}

// mapLine returns line y of the 32x32 tile map starting at address.
func (p *PPU) mapLine(address uint16, unsigned bool, y int) Line {
	if y < 0 || y >= mapSize {
		panic(fmt.Sprintf("ppu: map line %d out of range", y))
	}
	b := NewLineBuilder(mapSize)
	row := uint16(y / tileSize * (mapSize / tileSize))
	for x := 0; x < mapSize/tileSize; x++ {
		tile := p.readVRAM(address + row + uint16(x))
		msb, lsb := p.tileLine(int(tile), y%tileSize, unsigned, false)
		b.SetBytes(x, msb, lsb)
	}
	return b.Build()
}

// tileLineAddress returns the address of line of tile. Tiles 128-255
// always live at 0x8800-0x8FFF, tiles 0-127 at 0x8000-0x87FF for
// sprites and when unsigned is set, at 0x9000-0x97FF otherwise. Lines
// 8-15 belong to the following tile.
func tileLineAddress(tile, line int, unsigned, sprite bool) uint16 {
	if tile < 0 || tile > 0xFF || line < 0 || line >= 2*tileSize {
		panic(fmt.Sprintf("ppu: invalid line %d of tile %d", line, tile))
	}
	if line >= tileSize {
		return tileLineAddress(tile+1, line-tileSize, unsigned, true)
	}

	base := types.TileData0
	if tile < 128 {
		if unsigned || sprite {
			base = types.TileData1
		} else {
			base = types.TileData0 + 128*tileBytes
		}
	}
	return base + uint16(tile%128*tileBytes+line*2)
}

// tileLine returns the two planes of line of tile, bit 0 being the
// leftmost pixel.
func (p *PPU) tileLine(tile, line int, unsigned, sprite bool) (msb, lsb uint8) {
	address := tileLineAddress(tile, line, unsigned, sprite)
	return bits.Reverse8(p.readVRAM(address + 1)), bits.Reverse8(p.readVRAM(address))
}

func (p *PPU) readVRAM(address uint16) uint8 {
	return p.vramData.Read(int(address - types.VRAMStart))
}

// sprite returns attribute byte i (Y, X, tile, flags) of sprite s.
func (p *PPU) sprite(s, i int) uint8 {
	return p.oamData.Read(s*spriteBytes + i)
}

// spritesIntersecting returns up to spritesOnLine sprites covering
// line ly, ordered by X then by index.
func (p *PPU) spritesIntersecting(ctrl lcd.Control, ly int) []int {
	found := make([]uint16, 0, spritesOnLine)
	for s := 0; s < spriteCount && len(found) < spritesOnLine; s++ {
		y := int(p.sprite(s, 0)) - spriteYOffset
		if ly >= y && ly < y+ctrl.SpriteHeight {
			found = append(found, bits.Make16(p.sprite(s, 1), uint8(s)))
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i] < found[j] })

	sprites := make([]int, len(found))
	for i, f := range found {
		sprites[i] = int(bits.Lsb8(f))
	}
	return sprites
}

// spriteGroup combines the sprites that are behind the background, or
// those that are not. Sprites earlier in sprites are drawn on top.
func (p *PPU) spriteGroup(ctrl lcd.Control, ly int, sprites []int, behind bool) Line {
	combined := emptyLine(ScreenWidth)
	for _, s := range sprites {
		if bits.Test(p.sprite(s, 3), attrBehind) == behind {
			combined = p.spriteLine(ctrl, s, ly).Under(combined)
		}
	}
	return combined
}

// spriteLine returns the part of sprite s on line ly, placed at its X
// position on an otherwise transparent line.
func (p *PPU) spriteLine(ctrl lcd.Control, s, ly int) Line {
	b := NewLineBuilder(ScreenWidth)

	row := ly - int(p.sprite(s, 0)) + spriteYOffset
	if row < 0 || row >= ctrl.SpriteHeight {
		return b.Build()
	}

	attr := p.sprite(s, 3)
	if bits.Test(attr, attrFlipV) {
		row = ctrl.SpriteHeight - 1 - row
	}
	tile := p.sprite(s, 2)
	if ctrl.SpriteHeight == 2*tileSize {
		tile &^= 1
	}

	msb, lsb := p.tileLine(int(tile), row, true, true)
	if bits.Test(attr, attrFlipH) {
		msb, lsb = bits.Reverse8(msb), bits.Reverse8(lsb)
	}
	b.SetBytes(0, msb, lsb)

	palette := p.regs.Get(OBP0)
	if bits.Test(attr, attrPalette) {
		palette = p.regs.Get(OBP1)
	}

	// move the sprite to the end of the line first, so that its left
	// part is dropped when it is partially off screen
	end := ScreenWidth - tileSize
	x := int(p.sprite(s, 1)) - spriteXOffset
	return b.Build().MapColors(palette).Shift(end).Shift(x - end)
}
