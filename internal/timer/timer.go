// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"github.com/thelolagemann/gameboj/internal/interrupts"
	"github.com/thelolagemann/gameboj/internal/types"
	"github.com/thelolagemann/gameboj/pkg/bits"
)

// divStep is the amount the divider advances by every cycle.
const divStep = 4

// monitored holds the bit of the divider watched for each clock
// select value of types.TAC.
//
//	00 = bit 9 (4096 Hz)
//	01 = bit 3 (262144 Hz)
//	10 = bit 5 (65536 Hz)
//	11 = bit 7 (16384 Hz)
var monitored = [4]int{9, 3, 5, 7}

// Controller is a timer controller. TIMA is incremented on every
// falling edge of the selected divider bit, gated by the enable bit
// of types.TAC, and requests an interrupt when it overflows.
type Controller struct {
	div  uint16 // the full 16-bit divider, of which only the upper byte is visible
	tima uint8
	tma  uint8
	tac  uint8

	lastState bool

	irq interrupts.Requester
}

// NewController returns a new timer controller.
func NewController(irq interrupts.Requester) *Controller {
	return &Controller{irq: irq}
}

// Cycle advances the timer by one cycle.
func (c *Controller) Cycle(int64) {
	c.div += divStep
	c.updateState()
}

// state returns the value of the gated divider bit.
func (c *Controller) state() bool {
	return bits.Test(c.tac, 2) && bits.Test32(uint32(c.div), monitored[c.tac&0b11])
}

// updateState increments TIMA on a falling edge of state.
func (c *Controller) updateState() {
	s := c.state()
	if c.lastState && !s {
		c.incrementTIMA()
	}
	c.lastState = s
}

func (c *Controller) incrementTIMA() {
	if c.tima == 0xFF {
		c.irq.Request(interrupts.Timer)
		c.tima = c.tma
		return
	}
	c.tima++
}

// Read implements io.Component.
func (c *Controller) Read(address uint16) (uint8, bool) {
	switch address {
	case types.DIV:
		return bits.Msb8(c.div), true
	case types.TIMA:
		return c.tima, true
	case types.TMA:
		return c.tma, true
	case types.TAC:
		return c.tac | 0b11111000, true
	}
	return 0, false
}

// Write implements io.Component. Every write re-evaluates the gated
// divider bit, so resetting the divider or changing the clock select
// may itself increment TIMA, as on hardware.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.DIV:
		c.div = 0
	case types.TIMA:
		c.tima = value
	case types.TMA:
		c.tma = value
	case types.TAC:
		c.tac = value & 0b111
	default:
		return
	}
	c.updateState()
}

var _ types.Stater = (*Controller)(nil)

// Load loads the state of the controller.
func (c *Controller) Load(s *types.State) {
	c.div = s.Read16()
	c.tima = s.Read8()
	c.tma = s.Read8()
	c.tac = s.Read8()
	c.lastState = s.ReadBool()
}

// Save saves the state of the controller.
func (c *Controller) Save(s *types.State) {
	s.Write16(c.div)
	s.Write8(c.tima)
	s.Write8(c.tma)
	s.Write8(c.tac)
	s.WriteBool(c.lastState)
}
