package bits

import (
	"fmt"
	"strings"
)

// WordSize is the granularity of a Vector, its size is always a
// positive multiple of WordSize.
const WordSize = 32

type extraction uint8

const (
	zeroExtended extraction = iota
	wrapped
)

// Vector is an immutable, fixed length sequence of bits. Bit 0 is the
// least significant bit of the first word. Every operation returns a
// new Vector, leaving its operands untouched.
type Vector struct {
	words []uint32
}

// NewVector returns a Vector of size bits, all set to fill.
func NewVector(size int, fill bool) Vector {
	checkSize(size)
	w := make([]uint32, size/WordSize)
	if fill {
		for i := range w {
			w[i] = 0xFFFFFFFF
		}
	}
	return Vector{words: w}
}

// Size returns the number of bits in the vector.
func (v Vector) Size() int {
	return len(v.words) * WordSize
}

// TestBit reports whether the bit at index is set.
func (v Vector) TestBit(index int) bool {
	checkIndex(index, v.Size())
	return v.words[index/WordSize]&(1<<(index%WordSize)) != 0
}

// Not returns the complement of the vector.
func (v Vector) Not() Vector {
	w := make([]uint32, len(v.words))
	for i, x := range v.words {
		w[i] = ^x
	}
	return Vector{words: w}
}

// And returns the bitwise conjunction of v and that.
func (v Vector) And(that Vector) Vector {
	return v.combine(that, func(a, b uint32) uint32 { return a & b })
}

// Or returns the bitwise disjunction of v and that.
func (v Vector) Or(that Vector) Vector {
	return v.combine(that, func(a, b uint32) uint32 { return a | b })
}

// Xor returns the bitwise exclusive or of v and that.
func (v Vector) Xor(that Vector) Vector {
	return v.combine(that, func(a, b uint32) uint32 { return a ^ b })
}

// Shift shifts the vector by distance bits, towards the most significant
// bits when distance is positive. Vacated bits are zero.
func (v Vector) Shift(distance int) Vector {
	return Vector{words: v.extract(-distance, v.Size(), zeroExtended)}
}

// ExtractZeroExtended returns the length bits starting at index of the
// infinite extension of v padded with zeros on both sides.
func (v Vector) ExtractZeroExtended(index, length int) Vector {
	return Vector{words: v.extract(index, length, zeroExtended)}
}

// ExtractWrapped returns the length bits starting at index of the
// infinite periodic extension of v.
func (v Vector) ExtractWrapped(index, length int) Vector {
	return Vector{words: v.extract(index, length, wrapped)}
}

// Equal reports whether both vectors have the same size and bits.
func (v Vector) Equal(that Vector) bool {
	if len(v.words) != len(that.words) {
		return false
	}
	for i := range v.words {
		if v.words[i] != that.words[i] {
			return false
		}
	}
	return true
}

// Uint32s returns a copy of the words backing the vector.
func (v Vector) Uint32s() []uint32 {
	w := make([]uint32, len(v.words))
	copy(w, v.words)
	return w
}

// String returns the bits of the vector, most significant first.
func (v Vector) String() string {
	var b strings.Builder
	b.Grow(v.Size())
	for i := v.Size() - 1; i >= 0; i-- {
		if v.TestBit(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

func (v Vector) combine(that Vector, op func(a, b uint32) uint32) Vector {
	if len(v.words) != len(that.words) {
		panic(fmt.Sprintf("bits: size mismatch %d != %d", v.Size(), that.Size()))
	}
	w := make([]uint32, len(v.words))
	for i := range w {
		w[i] = op(v.words[i], that.words[i])
	}
	return Vector{words: w}
}

func (v Vector) word(index int, e extraction) uint32 {
	if index >= 0 && index < len(v.words) {
		return v.words[index]
	}
	if e == zeroExtended {
		return 0
	}
	return v.words[floorMod(index, len(v.words))]
}

func (v Vector) extract(index, length int, e extraction) []uint32 {
	checkSize(length)

	start := floorDiv(index, WordSize)
	offset := uint(floorMod(index, WordSize))
	out := make([]uint32, length/WordSize)
	for i := range out {
		lo := v.word(start+i, e)
		if offset == 0 {
			out[i] = lo
			continue
		}
		hi := v.word(start+i+1, e)
		out[i] = lo>>offset | hi<<(WordSize-offset)
	}
	return out
}

// VectorBuilder accumulates bytes before producing a Vector. A builder
// can be built once, any use afterwards panics.
type VectorBuilder struct {
	words []uint32
}

// NewVectorBuilder returns a builder for a vector of size bits, all
// initially clear.
func NewVectorBuilder(size int) *VectorBuilder {
	checkSize(size)
	return &VectorBuilder{words: make([]uint32, size/WordSize)}
}

// SetByte sets the byte at index, byte 0 being bits 0 to 7.
func (b *VectorBuilder) SetByte(index int, value uint8) *VectorBuilder {
	b.checkBuilt()
	checkIndex(index, len(b.words)*4)

	shift := uint(index%4) * 8
	w := &b.words[index/4]
	*w = *w&^(0xFF<<shift) | uint32(value)<<shift
	return b
}

// Build returns the accumulated vector and invalidates the builder.
func (b *VectorBuilder) Build() Vector {
	b.checkBuilt()
	v := Vector{words: b.words}
	b.words = nil
	return v
}

func (b *VectorBuilder) checkBuilt() {
	if b.words == nil {
		panic("bits: vector builder already built")
	}
}

func checkSize(size int) {
	if size <= 0 || size%WordSize != 0 {
		panic(fmt.Sprintf("bits: size %d is not a positive multiple of %d", size, WordSize))
	}
}
