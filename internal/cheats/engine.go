package cheats

import (
	"github.com/thelolagemann/gameboj/internal/io"
)

// Engine applies the enabled cheats. It is attached to the bus in front
// of the cartridge, whose reads it patches.
type Engine struct {
	rom    io.Component
	cheats []Cheat

	// patches of the enabled Game Genie codes, by address
	patches map[uint16][]GameGenie
}

// NewEngine returns an engine patching the reads of rom.
func NewEngine(rom io.Component, cheats []Cheat) *Engine {
	e := &Engine{rom: rom, cheats: cheats}
	e.update()
	return e
}

func (e *Engine) update() {
	e.patches = make(map[uint16][]GameGenie)
	for _, c := range e.cheats {
		if !c.Enabled {
			continue
		}
		for _, g := range c.Genie {
			e.patches[g.Address] = append(e.patches[g.Address], g)
		}
	}
}

// Cheats returns the cheats of the engine.
func (e *Engine) Cheats() []Cheat {
	return e.cheats
}

// SetEnabled enables or disables the cheats named name, and reports
// whether there was any.
func (e *Engine) SetEnabled(name string, enabled bool) bool {
	found := false
	for i := range e.cheats {
		if e.cheats[i].Name == name {
			e.cheats[i].Enabled = enabled
			found = true
		}
	}
	e.update()
	return found
}

// Read implements io.Component. A Game Genie code only applies when
// the ROM holds the old data, which keeps it from patching the other
// banks mapped at the same address.
func (e *Engine) Read(address uint16) (uint8, bool) {
	if address >= 0x8000 {
		return 0, false
	}
	patches, ok := e.patches[address]
	if !ok {
		return 0, false
	}
	old, ok := e.rom.Read(address)
	if !ok {
		return 0, false
	}
	for _, g := range patches {
		if g.OldData == old {
			return g.NewData, true
		}
	}
	return 0, false
}

// Write implements io.Component.
func (e *Engine) Write(uint16, uint8) {}

// Writer is where the GameShark codes are written, usually the bus.
type Writer interface {
	Write(address uint16, value uint8)
}

// Apply writes the enabled GameShark codes through w.
func (e *Engine) Apply(w Writer) {
	for _, c := range e.cheats {
		if !c.Enabled {
			continue
		}
		for _, s := range c.Shark {
			w.Write(s.Address, s.NewData)
		}
	}
}
