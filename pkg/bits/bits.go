// Package bits provides the bit-level helpers shared by the emulator
// components: single bit manipulation on bytes and words, byte packing,
// and the immutable Vector type used by the picture pipeline.
package bits

import "fmt"

// Val returns the value of the bit at the given index.
func Val(b uint8, i uint8) uint8 {
	return (b >> i) & 1
}

// Reset resets the bit at the given index.
func Reset(b, i uint8) uint8 {
	return b &^ (1 << i)
}

// Set sets the bit at the given index.
func Set(b, i uint8) uint8 {
	return b | (1 << i)
}

// Test tests the bit at the given index.
func Test(b, i uint8) bool {
	return (b>>i)&1 != 0
}

// SetTo sets the bit at the given index to v.
func SetTo(b, i uint8, v bool) uint8 {
	if v {
		return Set(b, i)
	}
	return Reset(b, i)
}

// Mask returns a word with only the bit at index set.
func Mask(index int) uint32 {
	checkIndex(index, 32)
	return 1 << index
}

// Test32 reports whether the bit at index is set in v.
func Test32(v uint32, index int) bool {
	return v&Mask(index) != 0
}

// Set32 returns v with the bit at index set to b.
func Set32(v uint32, index int, b bool) uint32 {
	if b {
		return v | Mask(index)
	}
	return v &^ Mask(index)
}

// Clip returns the size least significant bits of v.
func Clip(size int, v uint32) uint32 {
	if size < 0 || size > 32 {
		panic(fmt.Sprintf("bits: invalid clip size %d", size))
	}
	if size == 32 {
		return v
	}
	return v & (1<<size - 1)
}

// Extract returns the size bits of v starting at start, shifted down
// to bit 0.
func Extract(v uint32, start, size int) uint32 {
	if start < 0 || size < 0 || start+size > 32 {
		panic(fmt.Sprintf("bits: invalid range [%d, %d)", start, start+size))
	}
	return Clip(size, v>>start)
}

// Rotate rotates the size least significant bits of v by distance,
// to the left when distance is positive. The result wraps around
// the size bits.
func Rotate(size int, v uint32, distance int) uint32 {
	if size <= 0 || size > 32 || Clip(size, v) != v {
		panic(fmt.Sprintf("bits: cannot rotate %#x on %d bits", v, size))
	}
	d := floorMod(distance, size)
	if d == 0 {
		return v
	}
	return Clip(size, v<<d|v>>(size-d))
}

// SignExtend8 interprets b as a two's complement byte.
func SignExtend8(b uint8) int {
	return int(int8(b))
}

// Complement8 inverts all the bits of b.
func Complement8(b uint8) uint8 {
	return ^b
}

// Reverse8 reverses the bit order of b, so that bit 0 becomes bit 7.
func Reverse8(b uint8) uint8 {
	return reversed[b]
}

// Make16 packs two bytes into a word, high byte first.
func Make16(high, low uint8) uint16 {
	return uint16(high)<<8 | uint16(low)
}

// Msb8 returns the high byte of v.
func Msb8(v uint16) uint8 {
	return uint8(v >> 8)
}

// Lsb8 returns the low byte of v.
func Lsb8(v uint16) uint8 {
	return uint8(v)
}

var reversed [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		var r uint8
		for b := 0; b < 8; b++ {
			if i&(1<<b) != 0 {
				r |= 0x80 >> b
			}
		}
		reversed[i] = r
	}
}

func checkIndex(index, length int) {
	if index < 0 || index >= length {
		panic(fmt.Sprintf("bits: index %d out of range [0, %d)", index, length))
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
