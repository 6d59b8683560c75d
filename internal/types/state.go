package types

// State is a byte stream snapshot of the emulator. Components append
// their fields in a fixed order when saving, and read them back in the
// same order when loading. Snapshots only live for the session.
type State struct {
	raw          []byte // raw state data
	readPosition int    // current read position
}

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// NewState creates a new state.
func NewState() *State {
	return &State{
		raw: make([]byte, 0, 1024),
	}
}

// StateFromBytes creates a new state from the given bytes.
func StateFromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

// Rewind moves the read position back to the start of the state.
func (s *State) Rewind() {
	s.readPosition = 0
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
}

func (s *State) Write16(value uint16) {
	s.raw = append(s.raw, byte(value), byte(value>>8))
}

func (s *State) Write32(value uint32) {
	s.raw = append(s.raw, byte(value), byte(value>>8), byte(value>>16), byte(value>>24))
}

func (s *State) Write64(value uint64) {
	s.Write32(uint32(value))
	s.Write32(uint32(value >> 32))
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
}

func (s *State) WriteData(data []byte) {
	s.raw = append(s.raw, data...)
}

func (s *State) Read8() uint8 {
	value := s.raw[s.readPosition]
	s.readPosition++
	return value
}

func (s *State) Read16() uint16 {
	value := uint16(s.raw[s.readPosition]) | uint16(s.raw[s.readPosition+1])<<8
	s.readPosition += 2
	return value
}

func (s *State) Read32() uint32 {
	value := uint32(s.raw[s.readPosition]) | uint32(s.raw[s.readPosition+1])<<8 | uint32(s.raw[s.readPosition+2])<<16 | uint32(s.raw[s.readPosition+3])<<24
	s.readPosition += 4
	return value
}

func (s *State) Read64() uint64 {
	lo := s.Read32()
	return uint64(lo) | uint64(s.Read32())<<32
}

func (s *State) ReadBool() bool {
	value := s.raw[s.readPosition] != 0
	s.readPosition++
	return value
}

func (s *State) ReadData(p []byte) {
	copy(p, s.raw[s.readPosition:])
	s.readPosition += len(p)
}

// Bytes returns the raw state data.
func (s *State) Bytes() []byte {
	return s.raw
}
