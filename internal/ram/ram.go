// Package ram provides the plain byte stores used for work RAM, video
// RAM and ROM images, and a controller mapping a store onto the bus.
package ram

import (
	"fmt"

	"github.com/thelolagemann/gameboj/internal/types"
)

// RAM represents a block of RAM.
type RAM struct {
	data []byte
}

// NewRAM returns a new zeroed RAM of size bytes.
func NewRAM(size int) *RAM {
	if size < 0 {
		panic(fmt.Sprintf("ram: invalid size %d", size))
	}
	return &RAM{data: make([]byte, size)}
}

// Size returns the size of the RAM in bytes.
func (r *RAM) Size() int {
	return len(r.data)
}

// Read returns the value at the given index.
func (r *RAM) Read(index int) uint8 {
	return r.data[index]
}

// Write writes the value to the given index.
func (r *RAM) Write(index int, value uint8) {
	r.data[index] = value
}

func (r *RAM) Load(s *types.State) {
	s.ReadData(r.data)
}

func (r *RAM) Save(s *types.State) {
	s.WriteData(r.data)
}

// ROM represents a read-only block of memory.
type ROM struct {
	data []byte
}

// NewROM returns a ROM holding a copy of data.
func NewROM(data []byte) *ROM {
	d := make([]byte, len(data))
	copy(d, data)
	return &ROM{data: d}
}

// Size returns the size of the ROM in bytes.
func (r *ROM) Size() int {
	return len(r.data)
}

// Read returns the value at the given index.
func (r *ROM) Read(index int) uint8 {
	return r.data[index]
}

// Controller exposes a RAM on the bus over [start, end).
type Controller struct {
	ram        *RAM
	start, end uint16
}

// NewController maps ram at start, over its whole size.
func NewController(ram *RAM, start uint16) *Controller {
	return NewControllerRange(ram, start, int(start)+ram.Size())
}

// NewControllerRange maps the first end-start bytes of ram over
// [start, end). It panics if the range does not fit in ram, or
// in the address space.
func NewControllerRange(ram *RAM, start uint16, end int) *Controller {
	if end < int(start) || end > 0x10000 || end-int(start) > ram.Size() {
		panic(fmt.Sprintf("ram: invalid range [%#04x, %#04x) for %d bytes", start, end, ram.Size()))
	}
	return &Controller{ram: ram, start: start, end: uint16(end - 1)}
}

// Read returns the value at address, if it lies in the mapped range.
func (c *Controller) Read(address uint16) (uint8, bool) {
	if address < c.start || address > c.end {
		return 0, false
	}
	return c.ram.Read(int(address - c.start)), true
}

// Write writes value at address, if it lies in the mapped range.
func (c *Controller) Write(address uint16, value uint8) {
	if address >= c.start && address <= c.end {
		c.ram.Write(int(address-c.start), value)
	}
}
