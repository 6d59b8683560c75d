// Package gameboy assembles the components of the Game Boy on a bus,
// and drives them cycle by cycle.
package gameboy

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/thelolagemann/gameboj/internal/boot"
	"github.com/thelolagemann/gameboj/internal/cartridge"
	"github.com/thelolagemann/gameboj/internal/cheats"
	"github.com/thelolagemann/gameboj/internal/cpu"
	"github.com/thelolagemann/gameboj/internal/io"
	"github.com/thelolagemann/gameboj/internal/joypad"
	"github.com/thelolagemann/gameboj/internal/ppu"
	"github.com/thelolagemann/gameboj/internal/ppu/palette"
	"github.com/thelolagemann/gameboj/internal/ram"
	"github.com/thelolagemann/gameboj/internal/timer"
	"github.com/thelolagemann/gameboj/internal/types"
	"github.com/thelolagemann/gameboj/pkg/display"
	"github.com/thelolagemann/gameboj/pkg/emulator"
	"github.com/thelolagemann/gameboj/pkg/log"
)

const (
	// CyclesPerFrame is the number of cycles between two frames while
	// the LCD is on.
	CyclesPerFrame = 154 * 114
	// FrameDuration is the time a frame lasts at normal speed.
	FrameDuration = time.Second * CyclesPerFrame / cpu.ClockSpeed
)

var (
	// ErrNotRunning is returned when sending a command to an emulator
	// whose loop isn't running anymore.
	ErrNotRunning = errors.New("gameboy: emulator not running")
	// ErrAlreadyStarted is returned when starting an emulator twice.
	ErrAlreadyStarted = errors.New("gameboy: emulator already started")
)

// GameBoy represents a Game Boy. It contains all the components of the
// Game Boy, attached to a shared bus.
type GameBoy struct {
	CPU       *cpu.CPU
	PPU       *ppu.PPU
	Timer     *timer.Controller
	Joypad    *joypad.State
	Cartridge *cartridge.Cartridge
	Boot      *boot.Controller
	// Cheats is nil unless the Game Boy was created with cheats.
	Cheats *cheats.Engine

	log.Logger

	bus  *io.Bus
	wram *ram.RAM

	// cycle is the next cycle to simulate.
	cycle int64

	bootROM *boot.ROM
	cheats  []cheats.Cheat
	debug   bool
	view    ppu.View
	scheme  palette.Scheme

	// powerOn is the snapshot restored by Reset.
	powerOn []byte

	mu     sync.Mutex
	speed  float64
	status emulator.Status

	started   bool
	commands  chan emulator.CommandPacket
	responses chan emulator.ResponsePacket
	done      chan struct{}
}

// NewGameBoy returns a new Game Boy running rom. Without a boot ROM
// option, the Game Boy starts in the state the boot ROM leaves it in.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Logger:    log.NewNullLogger(),
		speed:     1,
		scheme:    palette.Greyscale,
		view:      ppu.ViewMessages,
		commands:  make(chan emulator.CommandPacket),
		responses: make(chan emulator.ResponsePacket),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: loading cartridge: %w", err)
	}
	g.Cartridge = cart

	g.bus = io.NewBus()
	g.CPU = cpu.NewCPU(g.bus, g.Logger)
	g.CPU.Debug = g.debug
	g.Timer = timer.NewController(g.CPU)
	g.Joypad = joypad.New(g.CPU)
	g.PPU = ppu.New(g.bus, g.CPU, g.Logger)
	g.PPU.SetView(g.view)
	g.Boot = boot.NewController(g.bootROM)
	g.wram = ram.NewRAM(types.WRAMSize)

	// the boot ROM answers before the cartridge while it is mapped
	g.bus.Attach(g.Boot)
	if len(g.cheats) > 0 {
		g.Cheats = cheats.NewEngine(g.Cartridge, g.cheats)
		g.bus.Attach(g.Cheats)
	}
	g.bus.Attach(g.Cartridge)
	g.bus.Attach(g.CPU)
	g.bus.Attach(g.Timer)
	g.bus.Attach(g.Joypad)
	g.bus.Attach(g.PPU)
	g.bus.Attach(ram.NewController(g.wram, types.WRAMStart))
	g.bus.Attach(ram.NewControllerRange(g.wram, types.EchoStart, int(types.EchoEnd)))

	if g.bootROM == nil {
		g.CPU.SkipBoot()
		g.PPU.SkipBoot()
	}
	g.powerOn = g.Snapshot()

	g.Infof("loaded %q (%s)", cart.Title(), cart.Header().CartridgeType)
	return g, nil
}

// Cycles returns the number of cycles simulated so far.
func (g *GameBoy) Cycles() int64 {
	return g.cycle
}

// RunUntil simulates every cycle up to, but excluding, cycle. Running
// back in time panics.
func (g *GameBoy) RunUntil(cycle int64) {
	if cycle < g.cycle {
		panic(fmt.Sprintf("gameboy: cannot run until cycle %d, already at %d", cycle, g.cycle))
	}
	for ; g.cycle < cycle; g.cycle++ {
		g.Timer.Cycle(g.cycle)
		g.CPU.Cycle(g.cycle)
		g.PPU.Cycle(g.cycle)
	}
}

// RunFrame simulates the cycles of a frame at normal speed.
func (g *GameBoy) RunFrame() {
	g.advance(CyclesPerFrame)
}

// advance simulates n cycles, then applies the GameShark codes.
func (g *GameBoy) advance(n int64) {
	g.RunUntil(g.cycle + n)
	if g.Cheats != nil {
		g.Cheats.Apply(g.bus)
	}
}

// Frame returns the last frame of the LCD and the debug view, rendered
// with the current palette.
func (g *GameBoy) Frame() display.Frame {
	p := palette.Get(g.scheme)
	f := display.Frame{
		Screen: p.Render(g.PPU.Frame()),
		Number: g.PPU.Frames(),
	}
	if img := g.PPU.DebugImage(); img != nil {
		f.Debug = p.Render(img)
	}
	return f
}

// Press presses button on the joypad.
func (g *GameBoy) Press(button joypad.Button) {
	g.Joypad.Press(button)
}

// Release releases button on the joypad.
func (g *GameBoy) Release(button joypad.Button) {
	g.Joypad.Release(button)
}

// SwitchDebugMode moves on to the next debug view.
func (g *GameBoy) SwitchDebugMode() ppu.View {
	g.view = g.PPU.SwitchView()
	return g.view
}

// ClickOnScreen forwards a click at x, y on the LCD.
func (g *GameBoy) ClickOnScreen(x, y int) {
	g.PPU.ClickScreen(x, y)
}

// ClickOnDebug forwards a click at x, y on the debug view.
func (g *GameBoy) ClickOnDebug(x, y int) {
	g.PPU.ClickDebug(x, y)
}

// ConfirmTile writes the tile being edited back to VRAM.
func (g *GameBoy) ConfirmTile() {
	g.PPU.ConfirmTile()
}

// SetMessages sets the messages shown by the messages debug view.
func (g *GameBoy) SetMessages(messages ...string) error {
	return g.PPU.SetMessages(messages)
}

// CyclePalette moves on to the next colour scheme.
func (g *GameBoy) CyclePalette() palette.Scheme {
	g.scheme = g.scheme.Next()
	return g.scheme
}

// Palette returns the current colour scheme.
func (g *GameBoy) Palette() palette.Scheme {
	return g.scheme
}

// Speed implements emulator.Controller.
func (g *GameBoy) Speed() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.speed
}

// SetSpeed sets the speed factor of the emulator.
func (g *GameBoy) SetSpeed(speed float64) {
	if speed <= 0 {
		panic(fmt.Sprintf("gameboy: invalid speed %v", speed))
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.speed = speed
}

// Status implements emulator.Controller.
func (g *GameBoy) Status() emulator.Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

func (g *GameBoy) setStatus(s emulator.Status) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status = s
}

// Snapshot returns the state of every component of the Game Boy.
func (g *GameBoy) Snapshot() []byte {
	s := types.NewState()
	s.Write64(uint64(g.cycle))
	g.CPU.Save(s)
	g.Timer.Save(s)
	g.Joypad.Save(s)
	g.PPU.Save(s)
	g.Cartridge.Save(s)
	g.Boot.Save(s)
	g.wram.Save(s)
	return s.Bytes()
}

// Restore loads a snapshot taken by Snapshot. Snapshots are only valid
// for the cartridge they were taken with.
func (g *GameBoy) Restore(snapshot []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gameboy: invalid snapshot: %v", r)
		}
	}()

	s := types.StateFromBytes(snapshot)
	g.cycle = int64(s.Read64())
	g.CPU.Load(s)
	g.Timer.Load(s)
	g.Joypad.Load(s)
	g.PPU.Load(s)
	g.Cartridge.Load(s)
	g.Boot.Load(s)
	g.wram.Load(s)
	return nil
}

// Reset puts the Game Boy back in its power on state.
func (g *GameBoy) Reset() {
	if err := g.Restore(g.powerOn); err != nil {
		panic(err)
	}
	g.PPU.SetView(g.view)
}
