package gameboy

import (
	"github.com/thelolagemann/gameboj/internal/boot"
	"github.com/thelolagemann/gameboj/internal/cheats"
	"github.com/thelolagemann/gameboj/internal/ppu"
	"github.com/thelolagemann/gameboj/internal/ppu/palette"
	"github.com/thelolagemann/gameboj/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance, before its components are created.
type Opt func(gb *GameBoy)

// Debug traces every instruction executed by the CPU.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.debug = true
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithBootROM maps rom at the start of the address space, and starts
// executing it instead of the cartridge.
func WithBootROM(rom *boot.ROM) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}

// WithDebugMode sets the initial debug view.
func WithDebugMode(view ppu.View) Opt {
	return func(gb *GameBoy) {
		gb.view = view
	}
}

// WithPalette sets the initial colour scheme.
func WithPalette(scheme palette.Scheme) Opt {
	return func(gb *GameBoy) {
		gb.scheme = scheme
	}
}

// Speed sets the speed factor of the emulator, 1 being the speed of
// the real hardware.
func Speed(speed float64) Opt {
	return func(gb *GameBoy) {
		if speed > 0 {
			gb.speed = speed
		}
	}
}

// WithCheats applies the enabled cheats: Game Genie codes patch the ROM,
// GameShark codes are written after every frame.
func WithCheats(c []cheats.Cheat) Opt {
	return func(gb *GameBoy) {
		gb.cheats = c
	}
}
