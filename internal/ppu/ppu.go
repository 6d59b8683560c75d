// Package ppu implements the LCD controller of the Game Boy, which
// renders the screen one line at a time.
package ppu

import (
	"math"

	"github.com/thelolagemann/gameboj/internal/interrupts"
	"github.com/thelolagemann/gameboj/internal/io"
	"github.com/thelolagemann/gameboj/internal/ppu/lcd"
	"github.com/thelolagemann/gameboj/internal/ram"
	"github.com/thelolagemann/gameboj/internal/types"
	"github.com/thelolagemann/gameboj/pkg/log"
)

const idle = math.MaxInt64

// PPU implements the Game Boy's (P)ixel (P)rocessing (U)nit. Each
// visible line goes through modes OAM, VRAM and HBlank, and the 144
// visible lines are followed by lcd.VBlankLines lines of VBlank. A
// whole line is computed at once when entering VRAM mode.
//
// References:
//   - [Pan Docs](https://gbdev.io/pandocs/Graphics.html)
type PPU struct {
	regs *types.RegisterFile[Reg]

	vramData, oamData *ram.RAM
	vram, oam         *ram.Controller

	irq interrupts.Requester
	bus *io.Bus

	// nextNonIdleCycle is the next cycle at which the mode may change,
	// or idle while the LCD is off.
	nextNonIdleCycle int64
	// lcdOnCycle counts the cycles since the start of the current line.
	lcdOnCycle int64

	builder *ImageBuilder
	current *Image
	frames  uint64

	// winY is the line of the window drawn next, it only advances on
	// lines where the window is visible.
	winY int

	// OAM DMA transfer, dmaDestination is types.OAMEnd when no
	// transfer is in progress.
	dmaSource, dmaDestination uint16

	debug *debugger

	log log.Logger
}

// New returns a PPU raising interrupts through irq, and reading the
// source of OAM DMA transfers from bus. The LCD starts turned off.
func New(bus *io.Bus, irq interrupts.Requester, logger log.Logger) *PPU {
	p := &PPU{
		regs:             types.NewRegisterFile(AllRegs),
		vramData:         ram.NewRAM(types.VRAMSize),
		oamData:          ram.NewRAM(types.OAMSize),
		irq:              irq,
		bus:              bus,
		nextNonIdleCycle: idle,
		builder:          NewImageBuilder(ScreenWidth, ScreenHeight),
		dmaDestination:   types.OAMEnd,
		log:              log.WithComponent(logger, "ppu"),
	}
	p.vram = ram.NewController(p.vramData, types.VRAMStart)
	p.oam = ram.NewController(p.oamData, types.OAMStart)
	p.debug = newDebugger(p)
	return p
}

// SkipBoot sets the registers to the values left by the boot ROM.
func (p *PPU) SkipBoot() {
	p.Write(types.LCDC, 0x91)
	p.Write(types.BGP, 0xFC)
	p.Write(types.OBP0, 0xFF)
	p.Write(types.OBP1, 0xFF)
}

// Register returns the value of r.
func (p *PPU) Register(r Reg) uint8 {
	return p.regs.Get(r)
}

func (p *PPU) control() lcd.Control {
	return lcd.DecodeControl(p.regs.Get(LCDC))
}

func (p *PPU) status() lcd.Status {
	return lcd.Status(p.regs.Get(STAT))
}

// Mode returns the current mode of the LCD.
func (p *PPU) Mode() lcd.Mode {
	return p.status().Mode()
}

// Frame returns the last complete frame. Before the first frame has
// been drawn, it returns a blank image.
func (p *PPU) Frame() *Image {
	if p.current == nil {
		return NewImageBuilder(ScreenWidth, ScreenHeight).Build()
	}
	return p.current
}

// Frames returns the number of frames drawn so far.
func (p *PPU) Frames() uint64 {
	return p.frames
}

// Read implements io.Component.
func (p *PPU) Read(address uint16) (uint8, bool) {
	switch {
	case address >= types.LCDRegsStart && address < types.LCDRegsEnd:
		return p.regs.Get(regAt(address)), true
	case address >= types.VRAMStart && address < types.VRAMEnd:
		return p.vram.Read(address)
	case address >= types.OAMStart && address < types.OAMEnd:
		return p.oam.Read(address)
	}
	return 0, false
}

// Write implements io.Component.
func (p *PPU) Write(address uint16, value uint8) {
	switch {
	case address >= types.LCDRegsStart && address < types.LCDRegsEnd:
		p.writeRegister(regAt(address), value)
	case address >= types.VRAMStart && address < types.VRAMEnd:
		p.vram.Write(address, value)
	case address >= types.OAMStart && address < types.OAMEnd:
		p.oam.Write(address, value)
	}
}

func (p *PPU) writeRegister(r Reg, value uint8) {
	switch r {
	case STAT:
		p.regs.Set(STAT, uint8(p.status().Write(value)))
	case LY:
		// read only
	case LYC:
		p.regs.Set(LYC, value)
		p.checkLYC()
	case LCDC:
		p.regs.Set(LCDC, value)
		if !p.control().Enabled && p.nextNonIdleCycle != idle {
			p.turnOff()
		}
	case DMA:
		p.regs.Set(DMA, value)
		p.dmaSource = uint16(value) << 8
		p.dmaDestination = types.OAMStart
	default:
		p.regs.Set(r, value)
	}
}

func (p *PPU) turnOff() {
	p.setMode(lcd.HBlank)
	p.regs.Set(LY, 0)
	p.checkLYC()
	p.nextNonIdleCycle = idle
	p.log.Debugf("lcd turned off")
}

// Cycle advances the controller to cycle.
func (p *PPU) Cycle(cycle int64) {
	if p.nextNonIdleCycle == idle && p.control().Enabled {
		p.lcdOnCycle = 0
		p.nextNonIdleCycle = cycle
		p.log.Debugf("lcd turned on at cycle %d", cycle)
	}

	if cycle >= p.nextNonIdleCycle {
		p.reallyCycle()
	}
	p.dmaCycle()
	p.lcdOnCycle++
}

func (p *PPU) reallyCycle() {
	switch p.lcdOnCycle {
	case 0, lcd.LineCycles:
		ly := p.regs.Get(LY)
		if ly == 0 {
			p.setMode(lcd.OAM)
			p.builder = NewImageBuilder(ScreenWidth, ScreenHeight)
		}
		if p.Mode() != lcd.VBlank {
			if ly == ScreenHeight {
				p.setMode(lcd.VBlank)
				p.publishFrame()
			} else {
				p.setMode(lcd.OAM)
			}
		}
		p.lcdOnCycle = 0
		p.nextNonIdleCycle += lcd.OAMCycles
	case lcd.OAMCycles:
		if p.Mode() != lcd.VBlank {
			p.setMode(lcd.VRAM)
		}
		p.nextNonIdleCycle += lcd.VRAMCycles
		if ly := int(p.regs.Get(LY)); ly < ScreenHeight {
			p.builder.SetLine(ly, p.computeLine(ly))
		}
		p.nextLine()
	case lcd.OAMCycles + lcd.VRAMCycles:
		if p.Mode() != lcd.VBlank {
			p.setMode(lcd.HBlank)
		}
		p.nextNonIdleCycle += lcd.HBlankCycles
	}
}

func (p *PPU) publishFrame() {
	p.current = p.builder.Build()
	p.winY = 0
	p.frames++
	p.debug.update()
}

func (p *PPU) nextLine() {
	ly := p.regs.Get(LY)
	if ly == ScreenHeight+lcd.VBlankLines-1 {
		ly = 0
	} else {
		ly++
	}
	p.regs.Set(LY, ly)
	p.checkLYC()
}

func (p *PPU) checkLYC() {
	match := p.regs.Get(LY) == p.regs.Get(LYC)
	s := p.status().WithCoincidence(match)
	p.regs.Set(STAT, uint8(s))
	if match && s.CoincidenceInterrupt() {
		p.irq.Request(interrupts.LCDStat)
	}
}

// setMode switches to mode m, requesting the interrupts enabled for
// it. Entering VBlank always requests interrupts.VBlank.
func (p *PPU) setMode(m lcd.Mode) {
	old := p.status()
	s := old.WithMode(m)
	p.regs.Set(STAT, uint8(s))

	if m == lcd.VBlank {
		p.irq.Request(interrupts.VBlank)
	}
	if old.Mode() != m && s.ModeInterrupt(m) {
		p.irq.Request(interrupts.LCDStat)
	}
}

// dmaCycle copies one byte of a pending OAM DMA transfer.
func (p *PPU) dmaCycle() {
	if p.dmaDestination == types.OAMEnd {
		return
	}
	p.oam.Write(p.dmaDestination, p.bus.Read(p.dmaSource))
	p.dmaSource++
	p.dmaDestination++
}

var _ types.Stater = (*PPU)(nil)

// Load restores the controller from s. The frame in progress is
// restarted from scratch.
func (p *PPU) Load(s *types.State) {
	p.regs.Load(s)
	p.vramData.Load(s)
	p.oamData.Load(s)
	p.nextNonIdleCycle = int64(s.Read64())
	p.lcdOnCycle = int64(s.Read64())
	p.winY = int(s.Read8())
	p.dmaSource = s.Read16()
	p.dmaDestination = s.Read16()
	p.builder = NewImageBuilder(ScreenWidth, ScreenHeight)
}

func (p *PPU) Save(s *types.State) {
	p.regs.Save(s)
	p.vramData.Save(s)
	p.oamData.Save(s)
	s.Write64(uint64(p.nextNonIdleCycle))
	s.Write64(uint64(p.lcdOnCycle))
	s.Write8(uint8(p.winY))
	s.Write16(p.dmaSource)
	s.Write16(p.dmaDestination)
}
