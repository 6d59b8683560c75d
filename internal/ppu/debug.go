package ppu

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/thelolagemann/gameboj/pkg/bits"
)

// View selects what the debug image shows. The debug image is redrawn
// at the start of every VBlank.
type View uint8

const (
	// ViewMessages shows the information messages.
	ViewMessages View = iota
	// ViewSprites shows the sprites picked by clicking on the screen.
	ViewSprites
	// ViewTiles shows every tile of VRAM, or the tile being edited.
	ViewTiles
	// ViewBackground shows the whole background map, with the visible
	// area outlined.
	ViewBackground
)

var viewNames = [...]string{"messages", "sprites", "tiles", "background"}

func (v View) String() string {
	if int(v) < len(viewNames) {
		return viewNames[v]
	}
	return fmt.Sprintf("View(%d)", uint8(v))
}

const (
	tilesGridWidth  = 16
	tilesGridHeight = 24
	// tilesPerArea is the number of tiles addressable by a tile map.
	tilesPerArea = 256

	// editorScale is the size, in pixels, of a pixel of the edited tile.
	editorScale = 24
	editorSize  = editorScale * tileSize

	spritesHeader = "CLICK ON THE SPRITES"
	// textColumns is the number of characters of a screen wide line.
	textColumns = ScreenWidth / tileSize
	// messageColumns is the granularity of the width of messages.
	messageColumns = bits.WordSize

	// MaxMessages is the maximum number of information messages.
	MaxMessages = ScreenHeight / tileSize / 2
)

var (
	// ErrTooManyMessages is returned when setting more than MaxMessages
	// messages.
	ErrTooManyMessages = errors.New("ppu: too many messages")
	// ErrMessageTooLong is returned when a message doesn't fit on the
	// screen.
	ErrMessageTooLong = errors.New("ppu: message too long")
)

// debugger holds the state of the debug views.
type debugger struct {
	p *PPU

	view  View
	image *Image

	// messages are padded to the same multiple of messageColumns, and
	// separated by blank lines.
	messages []string

	selected  map[int]bool // sprites shown by ViewSprites
	inspected int          // sprite whose attributes are shown, spriteCount for none

	editing    bool
	editedTile int       // index in the tiles grid
	tilePixels [16]uint8 // msb then lsb of every line, bit 0 leftmost
}

func newDebugger(p *PPU) *debugger {
	return &debugger{
		p:         p,
		selected:  make(map[int]bool),
		inspected: spriteCount,
	}
}

// View returns the current debug view.
func (p *PPU) View() View {
	return p.debug.view
}

// SwitchView moves on to the next debug view, leaving the tile editor.
func (p *PPU) SwitchView() View {
	d := p.debug
	d.view = (d.view + 1) % View(len(viewNames))
	d.editing = false
	return d.view
}

// SetView switches to view v, leaving the tile editor.
func (p *PPU) SetView(v View) {
	if int(v) >= len(viewNames) {
		panic(fmt.Sprintf("ppu: unknown view %d", v))
	}
	p.debug.view = v
	p.debug.editing = false
}

// ParseView returns the view named name.
func ParseView(name string) (View, error) {
	for v, n := range viewNames {
		if n == name {
			return View(v), nil
		}
	}
	return 0, fmt.Errorf("ppu: unknown view %q", name)
}

// DebugImage returns the debug image drawn at the last VBlank, or nil
// before the first one.
func (p *PPU) DebugImage() *Image {
	return p.debug.image
}

// SetMessages sets the information messages of ViewMessages.
func (p *PPU) SetMessages(messages []string) error {
	if len(messages) > MaxMessages {
		return fmt.Errorf("%w: %d > %d", ErrTooManyMessages, len(messages), MaxMessages)
	}
	longest := 0
	for _, m := range messages {
		if len(m) > textColumns {
			return fmt.Errorf("%w: %q", ErrMessageTooLong, m)
		}
		longest = max(longest, len(m))
	}
	width := max((longest+messageColumns-1)/messageColumns*messageColumns, messageColumns)

	blank := strings.Repeat(" ", width)
	padded := make([]string, 0, 2*len(messages)+1)
	for _, m := range messages {
		padded = append(padded, blank, pad(m, width))
	}
	if len(messages) > 0 {
		padded = append(padded, blank)
	}
	p.debug.messages = padded
	return nil
}

// ClickScreen handles a click at x, y on the screen. In ViewSprites it
// toggles the selection of the sprite under the pointer.
func (p *PPU) ClickScreen(x, y int) {
	if p.debug.view != ViewSprites || y < 0 || y >= ScreenHeight {
		return
	}
	d := p.debug

	sprite := -1
	for _, s := range p.spritesIntersecting(p.control(), y) {
		sx := int(p.sprite(s, 1)) - spriteXOffset
		if x >= sx && x < sx+tileSize {
			sprite = s
		}
	}
	if sprite < 0 {
		return
	}

	if d.selected[sprite] {
		delete(d.selected, sprite)
		d.inspected = spriteCount
	} else {
		d.selected[sprite] = true
		d.inspected = sprite
	}
}

// ClickDebug handles a click at x, y on the debug image. In ViewTiles
// it first selects the tile to edit, then cycles the colour of the
// clicked pixel of that tile.
func (p *PPU) ClickDebug(x, y int) {
	d := p.debug
	if d.view != ViewTiles || x < 0 || y < 0 {
		return
	}

	if !d.editing {
		tx, ty := x/tileSize, y/tileSize
		if tx >= tilesGridWidth || ty >= tilesGridHeight {
			return
		}
		d.editedTile = ty*tilesGridWidth + tx
		d.editing = true
		for line := 0; line < tileSize; line++ {
			d.tilePixels[2*line], d.tilePixels[2*line+1] = p.gridTileLine(d.editedTile, line)
		}
		return
	}

	px, py := x/editorScale, y/editorScale
	if px >= tileSize || py >= tileSize {
		return
	}
	msb, lsb := &d.tilePixels[2*py], &d.tilePixels[2*py+1]
	colour := bits.Val(*msb, uint8(px))<<1 | bits.Val(*lsb, uint8(px))
	colour = (colour + 1) & 0b11
	*msb = bits.SetTo(*msb, uint8(px), colour&0b10 != 0)
	*lsb = bits.SetTo(*lsb, uint8(px), colour&0b01 != 0)
}

// ConfirmTile writes the tile being edited back to VRAM, and returns to
// the tiles grid.
func (p *PPU) ConfirmTile() {
	d := p.debug
	if !d.editing {
		return
	}
	tile, unsigned := gridTile(d.editedTile)
	for line := 0; line < tileSize; line++ {
		address := tileLineAddress(tile, line, unsigned, false)
		p.vram.Write(address, bits.Reverse8(d.tilePixels[2*line+1]))
		p.vram.Write(address+1, bits.Reverse8(d.tilePixels[2*line]))
	}
	d.editing = false
	p.log.Infof("tile %d updated", d.editedTile)
}

// gridTile returns the tile number and addressing mode of the tile at
// index of the tiles grid, which spans 0x8000-0x97FF.
func gridTile(index int) (tile int, unsigned bool) {
	if index >= tilesPerArea {
		return index - tilesPerArea, false
	}
	return index, true
}

func (p *PPU) gridTileLine(index, line int) (msb, lsb uint8) {
	tile, unsigned := gridTile(index)
	return p.tileLine(tile, line, unsigned, false)
}

func (d *debugger) update() {
	switch d.view {
	case ViewMessages:
		d.image = d.messagesImage()
	case ViewSprites:
		d.image = d.spritesImage()
	case ViewTiles:
		if d.editing {
			d.image = d.editorImage()
		} else {
			d.image = d.tilesImage()
		}
	case ViewBackground:
		d.image = d.backgroundImage()
	}
}

func (d *debugger) backgroundImage() *Image {
	ctrl := d.p.control()
	b := NewImageBuilder(mapSize, mapSize)
	for y := 0; y < mapSize; y++ {
		b.SetLine(y, d.p.backgroundLine(ctrl, y))
	}
	border := RectangleBorder(mapSize, mapSize,
		int(d.p.regs.Get(SCX)), int(d.p.regs.Get(SCY)), ScreenWidth, ScreenHeight)
	return b.Build().Below(border)
}

func (d *debugger) tilesImage() *Image {
	width, height := tilesGridWidth*tileSize, tilesGridHeight*tileSize
	b := NewImageBuilder(width, height)
	for ty := 0; ty < tilesGridHeight; ty++ {
		for line := 0; line < tileSize; line++ {
			lb := NewLineBuilder(width)
			for tx := 0; tx < tilesGridWidth; tx++ {
				msb, lsb := d.p.gridTileLine(ty*tilesGridWidth+tx, line)
				lb.SetBytes(tx, msb, lsb)
			}
			b.SetLine(ty*tileSize+line, lb.Build())
		}
	}

	// outline the tiles addressed by the background
	top := height/3 - 1
	if d.p.control().UnsignedTileData {
		top = 0
	}
	border := RectangleBorder(width, height, 0, top, width, tilesPerArea/tilesGridWidth*tileSize)
	return b.Build().Below(border)
}

func (d *debugger) editorImage() *Image {
	b := NewImageBuilder(editorSize, editorSize)
	for y := 0; y < tileSize; y++ {
		lb := NewLineBuilder(editorSize)
		for x := 0; x < tileSize; x++ {
			var msb, lsb uint8
			if bits.Test(d.tilePixels[2*y], uint8(x)) {
				msb = 0xFF
			}
			if bits.Test(d.tilePixels[2*y+1], uint8(x)) {
				lsb = 0xFF
			}
			for i := 0; i < editorScale/8; i++ {
				lb.SetBytes(x*editorScale/8+i, msb, lsb)
			}
		}
		line := lb.Build()
		for i := 0; i < editorScale; i++ {
			b.SetLine(y*editorScale+i, line)
		}
	}
	return b.Build()
}

func (d *debugger) spritesImage() *Image {
	ctrl := d.p.control()
	b := NewImageBuilder(ScreenWidth, ScreenHeight+2*tileSize)
	for row := 0; row < tileSize; row++ {
		b.SetLine(row, textLine(spritesHeader, row))
	}

	selected := make([]int, 0, len(d.selected))
	for s := range d.selected {
		selected = append(selected, s)
	}
	sort.Ints(selected)

	for y := 0; y < ScreenHeight; y++ {
		line := emptyLine(ScreenWidth)
		for _, s := range selected {
			line = line.Under(d.p.spriteLine(ctrl, s, y))
		}
		b.SetLine(tileSize+y, line)
	}

	if d.inspected != spriteCount {
		info := fmt.Sprintf("S%2d %3dX%3d", d.inspected, d.p.sprite(d.inspected, 1), d.p.sprite(d.inspected, 0))
		for row := 0; row < tileSize; row++ {
			b.SetLine(tileSize+ScreenHeight+row, textLine(pad(info, textColumns), row))
		}
	}
	return b.Build()
}

func (d *debugger) messagesImage() *Image {
	if len(d.messages) == 0 {
		return NewImageBuilder(ScreenWidth, ScreenHeight).Build()
	}
	b := NewImageBuilder(len(d.messages[0])*tileSize, len(d.messages)*tileSize)
	for i, m := range d.messages {
		for row := 0; row < tileSize; row++ {
			b.SetLine(i*tileSize+row, textLine(m, row))
		}
	}
	return b.Build()
}

// textLine renders row of text with the debug font, in colour 3.
func textLine(text string, row int) Line {
	b := NewLineBuilder(len(text) * tileSize)
	for i, r := range text {
		g := bits.Reverse8(glyph(r)[row])
		b.SetBytes(i, g, g)
	}
	return b.Build()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
