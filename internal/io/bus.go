// Package io provides the address bus that binds the hardware
// components of the Game Boy together.
package io

// Component is a device mapped into the 16-bit address space. Read
// reports ok == false when the component has no data at address, which
// lets the bus ask the next component.
type Component interface {
	Read(address uint16) (value uint8, ok bool)
	Write(address uint16, value uint8)
}

// Open is the value read from an address that no component answers.
const Open uint8 = 0xFF

// Bus is a priority-ordered list of components. On read, the first
// component to answer wins, on write every component sees the value.
type Bus struct {
	components []Component
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{components: make([]Component, 0, 8)}
}

// Attach adds c to the bus, after every already attached component.
func (b *Bus) Attach(c Component) {
	if c == nil {
		panic("io: cannot attach a nil component")
	}
	b.components = append(b.components, c)
}

// Read returns the value of the first component answering at address,
// or Open when none does.
func (b *Bus) Read(address uint16) uint8 {
	for _, c := range b.components {
		if v, ok := c.Read(address); ok {
			return v
		}
	}
	return Open
}

// Write forwards value to every attached component.
func (b *Bus) Write(address uint16, value uint8) {
	for _, c := range b.components {
		c.Write(address, value)
	}
}

// Read16 reads a little-endian word at address.
func (b *Bus) Read16(address uint16) uint16 {
	return uint16(b.Read(address)) | uint16(b.Read(address+1))<<8
}

// Write16 writes a little-endian word at address.
func (b *Bus) Write16(address uint16, value uint16) {
	b.Write(address, uint8(value))
	b.Write(address+1, uint8(value>>8))
}
