// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"fmt"

	"github.com/thelolagemann/gameboj/internal/interrupts"
	"github.com/thelolagemann/gameboj/internal/types"
)

// Button represents a physical button on the Game Boy.
type Button uint8

const (
	ButtonRight Button = iota + 1
	ButtonLeft
	ButtonUp
	ButtonDown
	ButtonA
	ButtonB
	ButtonSelect
	ButtonStart
)

// buttonIndex places the direction keys in the low nibble, and the
// action buttons in the high nibble, both in P1 bit order.
var buttonIndex = map[Button]int{
	ButtonRight:  0,
	ButtonLeft:   1,
	ButtonUp:     2,
	ButtonDown:   3,
	ButtonA:      4,
	ButtonB:      5,
	ButtonSelect: 6,
	ButtonStart:  7,
}

var buttonNames = map[Button]string{
	ButtonRight:  "RIGHT",
	ButtonLeft:   "LEFT",
	ButtonUp:     "UP",
	ButtonDown:   "DOWN",
	ButtonA:      "A",
	ButtonB:      "B",
	ButtonSelect: "SELECT",
	ButtonStart:  "START",
}

// Buttons lists every button.
var Buttons = []Button{ButtonRight, ButtonLeft, ButtonUp, ButtonDown, ButtonA, ButtonB, ButtonSelect, ButtonStart}

func (b Button) Index() int {
	i, ok := buttonIndex[b]
	if !ok {
		panic(fmt.Sprintf("joypad: unknown button %d", uint8(b)))
	}
	return i
}

func (b Button) String() string {
	return buttonNames[b]
}

// ParseButton returns the button called name, as printed by String.
func ParseButton(name string) (Button, error) {
	for b, n := range buttonNames {
		if n == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("joypad: unknown button %q", name)
}

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// pressed holds one bit per button, at Button.Index. A 1
	// indicates that the button is pressed.
	pressed uint8
	p1      uint8

	irq interrupts.Requester
}

// New returns a new joypad state, with no row selected.
func New(irq interrupts.Requester) *State {
	return &State{p1: 0xFF, irq: irq}
}

// Press presses a button.
func (s *State) Press(button Button) {
	s.pressed |= 1 << button.Index()
	s.update()
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.pressed &^= 1 << button.Index()
	s.update()
}

// Pressed reports whether button is currently held down.
func (s *State) Pressed(button Button) bool {
	return s.pressed&(1<<button.Index()) != 0
}

// update recomputes the low nibble of P1 from the selected rows, and
// requests an interrupt when one of its bits goes from high to low.
func (s *State) update() {
	old := s.p1
	rows := ^s.p1 >> 4 & 0b11

	var keys uint8
	if rows&0b01 != 0 {
		keys |= s.pressed & 0x0F
	}
	if rows&0b10 != 0 {
		keys |= s.pressed >> 4
	}
	s.p1 = ^(keys | (^s.p1>>4)<<4)

	if (old^s.p1)&old&0x0F != 0 {
		s.irq.Request(interrupts.Joypad)
	}
}

// Read implements io.Component.
func (s *State) Read(address uint16) (uint8, bool) {
	if address != types.P1 {
		return 0, false
	}
	return s.p1, true
}

// Write implements io.Component. Only the row selection bits are
// writable.
func (s *State) Write(address uint16, value uint8) {
	if address != types.P1 {
		return
	}
	s.p1 = s.p1&^0x30 | value&0x30
	s.update()
}

var _ types.Stater = (*State)(nil)

func (s *State) Load(st *types.State) {
	s.pressed = st.Read8()
	s.p1 = st.Read8()
}

func (s *State) Save(st *types.State) {
	st.Write8(s.pressed)
	st.Write8(s.p1)
}
