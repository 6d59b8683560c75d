package types

import "fmt"

// Register is a member of a closed set of named 8-bit registers. Index
// returns the dense position of the register inside its RegisterFile,
// which must come from an explicit lookup table rather than from the
// declaration order of the set.
type Register interface {
	comparable
	Index() int
	String() string
}

// RegisterFile holds one 8-bit cell per register of a closed set. It is
// owned by the component modelling the hardware block containing it.
type RegisterFile[R Register] struct {
	cells []uint8
}

// NewRegisterFile creates a register file for all, the complete set of
// registers. It panics if the indices of all are not exactly 0..n-1.
func NewRegisterFile[R Register](all []R) *RegisterFile[R] {
	seen := make([]bool, len(all))
	for _, r := range all {
		i := r.Index()
		if i < 0 || i >= len(all) || seen[i] {
			panic(fmt.Sprintf("types: register %s has invalid index %d", r, i))
		}
		seen[i] = true
	}
	return &RegisterFile[R]{cells: make([]uint8, len(all))}
}

// Get returns the value of r.
func (f *RegisterFile[R]) Get(r R) uint8 {
	return f.cells[r.Index()]
}

// Set sets the value of r.
func (f *RegisterFile[R]) Set(r R, v uint8) {
	f.cells[r.Index()] = v
}

// TestBit reports whether bit is set in r.
func (f *RegisterFile[R]) TestBit(r R, bit uint8) bool {
	return f.cells[r.Index()]&(1<<bit) != 0
}

// SetBit sets bit of r to v.
func (f *RegisterFile[R]) SetBit(r R, bit uint8, v bool) {
	if v {
		f.cells[r.Index()] |= 1 << bit
	} else {
		f.cells[r.Index()] &^= 1 << bit
	}
}

// Get16 returns the pair formed by high and low, high register first.
func (f *RegisterFile[R]) Get16(high, low R) uint16 {
	return uint16(f.Get(high))<<8 | uint16(f.Get(low))
}

// Set16 sets the pair formed by high and low.
func (f *RegisterFile[R]) Set16(high, low R, v uint16) {
	f.Set(high, uint8(v>>8))
	f.Set(low, uint8(v))
}

// Save writes every cell to s.
func (f *RegisterFile[R]) Save(s *State) {
	s.WriteData(f.cells)
}

// Load restores every cell from s.
func (f *RegisterFile[R]) Load(s *State) {
	s.ReadData(f.cells)
}
