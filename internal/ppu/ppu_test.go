package ppu

import (
	"errors"
	"testing"

	"github.com/thelolagemann/gameboj/internal/interrupts"
	"github.com/thelolagemann/gameboj/internal/io"
	"github.com/thelolagemann/gameboj/internal/ppu/lcd"
	"github.com/thelolagemann/gameboj/internal/ram"
	"github.com/thelolagemann/gameboj/internal/types"
	"github.com/thelolagemann/gameboj/pkg/bits"
	"github.com/thelolagemann/gameboj/pkg/log"
)

type recorder struct {
	requests map[interrupts.Interrupt]int
}

func (r *recorder) Request(i interrupts.Interrupt) {
	r.requests[i]++
}

func newTestPPU() (*PPU, *recorder, *io.Bus) {
	irq := &recorder{requests: make(map[interrupts.Interrupt]int)}
	bus := io.NewBus()
	p := New(bus, irq, log.NewNullLogger())
	bus.Attach(p)
	bus.Attach(ram.NewController(ram.NewRAM(types.WRAMSize), types.WRAMStart))
	return p, irq, bus
}

// run cycles p from start to end inclusive.
func run(p *PPU, start, end int64) {
	for c := start; c <= end; c++ {
		p.Cycle(c)
	}
}

func TestPPU_LineTiming(t *testing.T) {
	p, _, _ := newTestPPU()
	p.Write(types.LCDC, 0x91)

	tests := []struct {
		cycle int64
		mode  lcd.Mode
		ly    uint8
	}{
		{0, lcd.OAM, 0},
		{19, lcd.OAM, 0},
		{20, lcd.VRAM, 1},
		{62, lcd.VRAM, 1},
		{63, lcd.HBlank, 1},
		{113, lcd.HBlank, 1},
		{114, lcd.OAM, 1},
		{134, lcd.VRAM, 2},
	}
	var last int64 = -1
	for _, tt := range tests {
		run(p, last+1, tt.cycle)
		last = tt.cycle
		if p.Mode() != tt.mode {
			t.Errorf("cycle %d: expected mode %s, got %s", tt.cycle, tt.mode, p.Mode())
		}
		if ly := p.Register(LY); ly != tt.ly {
			t.Errorf("cycle %d: expected LY %d, got %d", tt.cycle, tt.ly, ly)
		}
	}
}

func TestPPU_Frame(t *testing.T) {
	p, irq, _ := newTestPPU()
	p.Write(types.LCDC, 0x91)

	vblank := int64(ScreenHeight * lcd.LineCycles)
	run(p, 0, vblank-1)
	if irq.requests[interrupts.VBlank] != 0 || p.Frames() != 0 {
		t.Fatalf("expected no frame before line 144")
	}

	p.Cycle(vblank)
	if p.Mode() != lcd.VBlank {
		t.Errorf("expected VBlank, got %s", p.Mode())
	}
	if irq.requests[interrupts.VBlank] != 1 {
		t.Errorf("expected one VBlank interrupt, got %d", irq.requests[interrupts.VBlank])
	}
	if p.Frames() != 1 {
		t.Errorf("expected one frame, got %d", p.Frames())
	}

	frame := int64((ScreenHeight + lcd.VBlankLines) * lcd.LineCycles)
	run(p, vblank+1, frame-1)
	if p.Register(LY) != 0 || p.Mode() != lcd.VBlank {
		t.Errorf("expected LY 0 still in VBlank, got LY %d mode %s", p.Register(LY), p.Mode())
	}
	p.Cycle(frame)
	if p.Mode() != lcd.OAM {
		t.Errorf("expected a new frame to start, got %s", p.Mode())
	}
	run(p, frame+1, frame+vblank)
	if p.Frames() != 2 {
		t.Errorf("expected two frames, got %d", p.Frames())
	}
}

func TestPPU_STATInterrupts(t *testing.T) {
	t.Run("LYC", func(t *testing.T) {
		p, irq, _ := newTestPPU()
		p.Write(types.STAT, 0x40)
		p.Write(types.LYC, 2)
		p.Write(types.LCDC, 0x91)

		run(p, 0, lcd.LineCycles+lcd.OAMCycles-1)
		if irq.requests[interrupts.LCDStat] != 0 {
			t.Errorf("expected no STAT interrupt before LY=2")
		}
		p.Cycle(lcd.LineCycles + lcd.OAMCycles)
		if irq.requests[interrupts.LCDStat] != 1 {
			t.Errorf("expected STAT interrupt on LY=LYC, got %d", irq.requests[interrupts.LCDStat])
		}
		if v, _ := p.Read(types.STAT); v&0x04 == 0 {
			t.Errorf("expected coincidence flag, got %08b", v)
		}
	})
	t.Run("HBlank", func(t *testing.T) {
		p, irq, _ := newTestPPU()
		p.Write(types.STAT, 0x08)
		p.Write(types.LCDC, 0x91)

		run(p, 0, lcd.LineCycles-1)
		if irq.requests[interrupts.LCDStat] != 1 {
			t.Errorf("expected one HBlank STAT interrupt, got %d", irq.requests[interrupts.LCDStat])
		}
	})
}

func TestPPU_Registers(t *testing.T) {
	p, _, _ := newTestPPU()
	p.Write(types.LCDC, 0x91)
	run(p, 0, 30)

	p.Write(types.STAT, 0xFF)
	if v, _ := p.Read(types.STAT); v != 0xF8|uint8(lcd.VRAM) {
		t.Errorf("expected STAT mode bits to be read only, got %08b", v)
	}

	p.Write(types.LY, 0x42)
	if v, _ := p.Read(types.LY); v != 1 {
		t.Errorf("expected LY to be read only, got %d", v)
	}

	p.Write(types.SCX, 0x12)
	if v, _ := p.Read(types.SCX); v != 0x12 {
		t.Errorf("expected SCX 0x12, got %#02x", v)
	}

	p.Write(types.LCDC, 0x11)
	if p.Mode() != lcd.HBlank || p.Register(LY) != 0 {
		t.Errorf("expected LCD off to reset LY and mode, got LY %d mode %s", p.Register(LY), p.Mode())
	}
	run(p, 31, 1000)
	if p.Register(LY) != 0 {
		t.Errorf("expected LCD to stay idle while off, got LY %d", p.Register(LY))
	}

	if _, ok := p.Read(types.WRAMStart); ok {
		t.Errorf("expected PPU not to answer outside of its ranges")
	}
}

func TestPPU_DMA(t *testing.T) {
	p, _, bus := newTestPPU()
	for i := uint16(0); i < 160; i++ {
		bus.Write(0xC100+i, uint8(i)+1)
	}

	bus.Write(types.DMA, 0xC1)
	run(p, 0, 79)
	if v, _ := p.Read(types.OAMStart + 79); v != 80 {
		t.Errorf("expected 80 bytes copied after 80 cycles, got %d", v)
	}
	if v, _ := p.Read(types.OAMStart + 80); v != 0 {
		t.Errorf("expected byte 80 not copied yet, got %d", v)
	}
	run(p, 80, 200)
	if v, _ := p.Read(types.OAMEnd - 1); v != 160 {
		t.Errorf("expected last byte 160, got %d", v)
	}
}

func TestTileLineAddress(t *testing.T) {
	tests := []struct {
		tile, line       int
		unsigned, sprite bool
		expected         uint16
	}{
		{0, 0, true, false, 0x8000},
		{0, 0, false, false, 0x9000},
		{0, 0, false, true, 0x8000},
		{127, 7, false, false, 0x97FE},
		{128, 3, false, false, 0x8806},
		{200, 0, true, false, 0x8C80},
		{5, 9, false, true, 0x8062},
	}
	for _, tt := range tests {
		if got := tileLineAddress(tt.tile, tt.line, tt.unsigned, tt.sprite); got != tt.expected {
			t.Errorf("tile %d line %d: expected %#04x, got %#04x", tt.tile, tt.line, tt.expected, got)
		}
	}
}

// setupTiles writes tile 1 as a row of colour 1 and tile 2 as a single
// colour 3 pixel at its top left corner.
func setupTiles(p *PPU) {
	for line := uint16(0); line < 8; line++ {
		p.Write(0x8010+2*line, 0xFF)
	}
	p.Write(0x8020, 0x80)
	p.Write(0x8021, 0x80)
	p.Write(types.BGP, identityPalette)
	p.Write(types.OBP0, identityPalette)
}

func TestPPU_Background(t *testing.T) {
	p, _, _ := newTestPPU()
	setupTiles(p)
	p.Write(types.LCDC, 0x91)
	p.Write(types.BGMap0, 1)

	expectColours(t, p.computeLine(0), 1, 1, 1, 1, 1, 1, 1, 1, 0)

	p.Write(types.SCX, 4)
	expectColours(t, p.computeLine(0), 1, 1, 1, 1, 0)

	p.Write(types.SCX, 252)
	expectColours(t, p.computeLine(0), 0, 0, 0, 0, 1)

	p.Write(types.BGP, 0b11_10_11_00)
	expectColours(t, p.computeLine(0), 0, 0, 0, 0, 3)

	p.Write(types.LCDC, 0x90)
	expectColours(t, p.computeLine(0), 0, 0, 0, 0, 0)
}

func TestPPU_Window(t *testing.T) {
	p, _, _ := newTestPPU()
	setupTiles(p)
	for x := uint16(0); x < 32; x++ {
		p.Write(types.BGMap0+x, 1)
	}
	p.Write(types.BGMap1, 1)
	p.Write(types.WX, 7+80)
	p.Write(types.WY, 0)
	p.Write(types.LCDC, 0xF1)

	l := p.computeLine(0)
	if l.colour(79) != 1 || l.colour(80) != 1 || l.colour(88) != 0 {
		t.Errorf("expected window from pixel 80, got %v", colours(l, 96)[76:])
	}
	if p.winY != 1 {
		t.Errorf("expected window line to advance, got %d", p.winY)
	}

	p.Write(types.WY, 10)
	p.computeLine(5)
	if p.winY != 1 {
		t.Errorf("expected hidden window not to advance, got %d", p.winY)
	}
}

func TestPPU_Sprites(t *testing.T) {
	writeSprite := func(p *PPU, s int, y, x, tile, attr uint8) {
		base := types.OAMStart + uint16(s*spriteBytes)
		p.Write(base, y)
		p.Write(base+1, x)
		p.Write(base+2, tile)
		p.Write(base+3, attr)
	}

	tests := []struct {
		name     string
		attr     uint8
		x        int
		expected uint8
	}{
		{"front", 0x00, 10, 3},
		{"behind opaque background", 0x80, 10, 1},
		{"behind transparent background", 0x80, 26, 3},
		{"horizontal flip", 0x20, 17, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, _ := newTestPPU()
			setupTiles(p)
			p.Write(types.LCDC, 0x93)
			p.Write(types.BGMap0+1, 1)

			spriteX := uint8(8 + tt.x)
			if tt.attr&0x20 != 0 {
				spriteX -= 7
			}
			writeSprite(p, 0, 16, spriteX, 2, tt.attr)

			if c := p.computeLine(0).colour(tt.x); c != tt.expected {
				t.Errorf("expected colour %d at %d, got %d", tt.expected, tt.x, c)
			}
		})
	}

	t.Run("background disabled", func(t *testing.T) {
		p, _, _ := newTestPPU()
		setupTiles(p)
		p.Write(types.LCDC, 0x92)
		for x := uint16(0); x < 32; x++ {
			p.Write(types.BGMap0+x, 1)
		}
		writeSprite(p, 0, 16, 8+20, 1, 0)

		l := p.computeLine(0)
		if !l.Opacity().Equal(bits.NewVector(ScreenWidth, true)) {
			t.Errorf("expected a fully opaque line, got %s", l.Opacity())
		}
		for x := 0; x < ScreenWidth; x++ {
			expected := uint8(0)
			if x >= 20 && x < 28 {
				expected = 1
			}
			if c := l.colour(x); c != expected {
				t.Errorf("expected colour %d at %d, got %d", expected, x, c)
			}
		}
	})

	t.Run("priority and limit", func(t *testing.T) {
		p, _, _ := newTestPPU()
		setupTiles(p)
		p.Write(types.LCDC, 0x93)
		p.Write(types.OBP1, 0b01_01_01_01)
		for s := 0; s < 12; s++ {
			writeSprite(p, s, 16, uint8(8+s), 2, 0)
		}
		writeSprite(p, 0, 16, 20, 2, 0x10)

		sprites := p.spritesIntersecting(p.control(), 0)
		if len(sprites) != spritesOnLine {
			t.Fatalf("expected %d sprites, got %d", spritesOnLine, len(sprites))
		}
		if sprites[0] != 1 || sprites[len(sprites)-1] != 0 {
			t.Errorf("expected sprites ordered by X, got %v", sprites)
		}
		if c := p.computeLine(0).colour(12); c != 1 {
			t.Errorf("expected sprite 0 drawn with OBP1, got %d", c)
		}
	})
}

func TestPPU_SkipBoot(t *testing.T) {
	p, _, _ := newTestPPU()
	p.SkipBoot()
	for r, v := range map[uint16]uint8{types.LCDC: 0x91, types.BGP: 0xFC, types.OBP0: 0xFF, types.OBP1: 0xFF} {
		if got, _ := p.Read(r); got != v {
			t.Errorf("%#04x: expected %#02x, got %#02x", r, v, got)
		}
	}
}

func TestPPU_SaveLoad(t *testing.T) {
	p, _, _ := newTestPPU()
	setupTiles(p)
	p.Write(types.LCDC, 0x91)
	run(p, 0, 500)

	s := types.NewState()
	p.Save(s)

	q, _, _ := newTestPPU()
	q.Load(s)
	if q.Register(LY) != p.Register(LY) || q.Mode() != p.Mode() {
		t.Errorf("expected LY %d mode %s, got LY %d mode %s", p.Register(LY), p.Mode(), q.Register(LY), q.Mode())
	}
	if v, _ := q.Read(0x8010); v != 0xFF {
		t.Errorf("expected VRAM to be restored, got %#02x", v)
	}
	run(q, 501, 1000)
	run(p, 501, 1000)
	if q.Register(LY) != p.Register(LY) {
		t.Errorf("expected restored PPU to keep in step")
	}
}

func TestPPU_Debug(t *testing.T) {
	t.Run("messages", func(t *testing.T) {
		p, _, _ := newTestPPU()
		if err := p.SetMessages(make([]string, MaxMessages+1)); !errors.Is(err, ErrTooManyMessages) {
			t.Errorf("expected ErrTooManyMessages, got %v", err)
		}
		if err := p.SetMessages([]string{"THIS MESSAGE IS FAR TOO LONG"}); !errors.Is(err, ErrMessageTooLong) {
			t.Errorf("expected ErrMessageTooLong, got %v", err)
		}
		if err := p.SetMessages([]string{""}); err != nil {
			t.Fatal(err)
		}
		p.debug.update()
		if img := p.DebugImage(); img.Width() != 256 || img.Height() != 24 {
			t.Fatalf("expected an empty message to give a 256x24 image, got %dx%d", img.Width(), img.Height())
		}

		if err := p.SetMessages([]string{"HI"}); err != nil {
			t.Fatal(err)
		}
		p.debug.update()
		img := p.DebugImage()
		if img.Width() != 256 || img.Height() != 24 {
			t.Fatalf("expected 256x24 image, got %dx%d", img.Width(), img.Height())
		}
		if img.Get(1, 8) != 3 || img.Get(0, 8) != 0 {
			t.Errorf("expected the H to be drawn on the second line")
		}
	})

	t.Run("views", func(t *testing.T) {
		p, _, _ := newTestPPU()
		for _, v := range []View{ViewSprites, ViewTiles, ViewBackground, ViewMessages} {
			if got := p.SwitchView(); got != v {
				t.Errorf("expected view %s, got %s", v, got)
			}
		}
	})

	t.Run("tile editor", func(t *testing.T) {
		p, _, _ := newTestPPU()
		p.SwitchView()
		p.SwitchView()

		p.ClickDebug(8, 0)
		p.ClickDebug(0, 0)
		p.ClickDebug(10, 10)
		p.debug.update()
		if img := p.DebugImage(); img.Width() != editorSize || img.Get(23, 23) != 2 || img.Get(24, 0) != 0 {
			t.Errorf("expected pixel 0,0 of the editor to be colour 2")
		}

		p.ConfirmTile()
		if v, _ := p.Read(0x8011); v != 0x80 {
			t.Errorf("expected msb 0x80, got %#02x", v)
		}
		if v, _ := p.Read(0x8010); v != 0x00 {
			t.Errorf("expected lsb 0x00, got %#02x", v)
		}
	})

	t.Run("sprite inspector", func(t *testing.T) {
		p, _, _ := newTestPPU()
		setupTiles(p)
		p.Write(types.LCDC, 0x93)
		p.Write(types.OAMStart+12, 16)
		p.Write(types.OAMStart+13, 28)
		p.Write(types.OAMStart+14, 2)
		p.SwitchView()

		p.ClickScreen(22, 3)
		if p.debug.inspected != 3 {
			t.Fatalf("expected sprite 3 to be inspected, got %d", p.debug.inspected)
		}
		p.debug.update()
		img := p.DebugImage()
		if img.Height() != ScreenHeight+16 {
			t.Errorf("expected %d lines, got %d", ScreenHeight+16, img.Height())
		}
		if img.Get(20, 8) != 3 {
			t.Errorf("expected selected sprite to be drawn")
		}

		p.ClickScreen(22, 3)
		if p.debug.inspected != spriteCount || len(p.debug.selected) != 0 {
			t.Errorf("expected second click to deselect the sprite")
		}
	})
}
