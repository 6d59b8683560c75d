// Package interrupts models the interrupt request and enable registers
// of the Game Boy, and the fixed priority between interrupt sources.
package interrupts

import (
	"fmt"

	"github.com/thelolagemann/gameboj/internal/types"
)

// Interrupt is one of the five interrupt sources of the Game Boy.
type Interrupt uint8

const (
	// VBlank is requested every time the PPU enters VBlank mode.
	VBlank Interrupt = iota + 1
	// LCDStat is requested by the LCD STAT register (types.STAT),
	// when one of its enabled conditions is met.
	LCDStat
	// Timer is requested when the timer overflows (types.TIMA > 0xFF).
	Timer
	// Serial is requested when a serial transfer completes. Nothing
	// in this emulator raises it, but it keeps its priority slot.
	Serial
	// Joypad is requested when any of types.P1 bits 0-3 go from
	// high to low, while their row is selected.
	Joypad
)

// index maps every interrupt to its bit in IF and IE. Lower bits have
// a higher priority.
var index = map[Interrupt]int{
	VBlank:  0,
	LCDStat: 1,
	Timer:   2,
	Serial:  3,
	Joypad:  4,
}

var names = map[Interrupt]string{
	VBlank:  "VBLANK",
	LCDStat: "LCD_STAT",
	Timer:   "TIMER",
	Serial:  "SERIAL",
	Joypad:  "JOYPAD",
}

// All lists every interrupt, by priority.
var All = []Interrupt{VBlank, LCDStat, Timer, Serial, Joypad}

// Index returns the bit of i in the IF and IE registers.
func (i Interrupt) Index() int {
	idx, ok := index[i]
	if !ok {
		panic(fmt.Sprintf("interrupts: unknown interrupt %d", uint8(i)))
	}
	return idx
}

// Flag returns the mask of i in the IF and IE registers.
func (i Interrupt) Flag() uint8 {
	return 1 << i.Index()
}

// Vector returns the address of the handler of i.
func (i Interrupt) Vector() uint16 {
	return types.VBlankVector + uint16(i.Index())*8
}

func (i Interrupt) String() string {
	if n, ok := names[i]; ok {
		return n
	}
	return fmt.Sprintf("Interrupt(%d)", uint8(i))
}

// Requester is implemented by the owner of the interrupt registers, and
// handed to every component able to raise an interrupt.
type Requester interface {
	Request(Interrupt)
}

// Service holds the interrupt request (types.IF) and interrupt enable
// (types.IE) registers. An interrupt is pending when it is both
// requested and enabled; the master enable flag (IME) lives with the
// CPU, which decides when a pending interrupt is serviced.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)
}

// NewService returns a new Service with no interrupt requested or
// enabled.
func NewService() *Service {
	return &Service{}
}

// Request requests the specified interrupt, by setting the
// corresponding bit in the Flag register.
func (s *Service) Request(i Interrupt) {
	s.Flag |= i.Flag()
}

// Pending reports whether any interrupt is requested and enabled.
func (s *Service) Pending() bool {
	return s.Flag&s.Enable&0x1F != 0
}

// Acknowledge clears the request of the highest priority pending
// interrupt and returns it. It returns false when nothing is pending.
func (s *Service) Acknowledge() (Interrupt, bool) {
	for _, i := range All {
		if s.Flag&s.Enable&i.Flag() != 0 {
			s.Flag &^= i.Flag()
			return i, true
		}
	}
	return 0, false
}

// Read implements io.Component for types.IF and types.IE.
func (s *Service) Read(address uint16) (uint8, bool) {
	switch address {
	case types.IF:
		return s.Flag | 0xE0, true // the upper 3 bits are always set
	case types.IE:
		return s.Enable, true
	}
	return 0, false
}

// Write implements io.Component for types.IF and types.IE.
func (s *Service) Write(address uint16, value uint8) {
	switch address {
	case types.IF:
		s.Flag = value & 0x1F // only the first 5 bits are used
	case types.IE:
		s.Enable = value
	}
}

var _ types.Stater = (*Service)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - Flag (uint8)
//   - Enable (uint8)
func (s *Service) Load(st *types.State) {
	s.Flag = st.Read8()
	s.Enable = st.Read8()
}

// Save implements the types.Stater interface.
//
// The values are saved in the following order:
//   - Flag (uint8)
//   - Enable (uint8)
func (s *Service) Save(st *types.State) {
	st.Write8(s.Flag)
	st.Write8(s.Enable)
}
