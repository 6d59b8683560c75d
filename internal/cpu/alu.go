package cpu

// Vf bundles the result of an ALU operation with the flags it produced.
// The value occupies bits 8 and up, the flags the low byte, laid out
// as in the F register (Z=7, N=6, H=5, C=4).
type Vf uint32

// Value returns the 8-bit result.
func (v Vf) Value() uint8 {
	return uint8(v >> 8)
}

// Value16 returns the 16-bit result of Add16L and Add16H.
func (v Vf) Value16() uint16 {
	return uint16(v >> 8)
}

// Flags returns the flags, as they would appear in F.
func (v Vf) Flags() uint8 {
	return uint8(v) & 0xF0
}

// Direction selects the direction of a rotation.
type Direction int

const (
	Left Direction = iota
	Right
)

func flagBits(z, n, h, c bool) uint32 {
	var f uint32
	if z {
		f |= 1 << FlagZero
	}
	if n {
		f |= 1 << FlagSubtract
	}
	if h {
		f |= 1 << FlagHalfCarry
	}
	if c {
		f |= 1 << FlagCarry
	}
	return f
}

// pack builds a Vf with Z computed from v.
func pack(v uint8, n, h, c bool) Vf {
	return Vf(uint32(v)<<8 | flagBits(v == 0, n, h, c))
}

func packZ(v uint16, z, n, h, c bool) Vf {
	return Vf(uint32(v)<<8 | flagBits(z, n, h, c))
}

func carryIn(c bool) uint16 {
	if c {
		return 1
	}
	return 0
}

// Add adds r and the carry c to l.
//
//	ADD A, n / ADC A, n / INC n
//
// Flags:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func Add(l, r uint8, c bool) Vf {
	ci := carryIn(c)
	sum := uint16(l) + uint16(r) + ci
	h := uint16(l&0xF)+uint16(r&0xF)+ci > 0xF
	return pack(uint8(sum), false, h, sum > 0xFF)
}

// Sub subtracts r and the borrow b from l.
//
//	SUB n / SBC A, n / CP n / DEC n
//
// Flags:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func Sub(l, r uint8, b bool) Vf {
	bi := carryIn(b)
	h := uint16(l&0xF) < uint16(r&0xF)+bi
	c := uint16(l) < uint16(r)+bi
	return pack(uint8(uint16(l)-uint16(r)-bi), true, h, c)
}

// Add16L adds r to l, taking the flags from the addition of the low
// bytes, as ADD SP, e8 and LD HL, SP+e8 do.
func Add16L(l, r uint16) Vf {
	low := Add(uint8(l), uint8(r), false)
	return packZ(l+r, false, false, low.Flags()&(1<<FlagHalfCarry) != 0, low.Flags()&(1<<FlagCarry) != 0)
}

// Add16H adds r to l, taking the flags from the addition of the high
// bytes with the carry of the low bytes, as ADD HL, rr does.
func Add16H(l, r uint16) Vf {
	low := Add(uint8(l), uint8(r), false)
	high := Add(uint8(l>>8), uint8(r>>8), low.Flags()&(1<<FlagCarry) != 0)
	sum := l + r
	return packZ(sum, sum == 0, false, high.Flags()&(1<<FlagHalfCarry) != 0, high.Flags()&(1<<FlagCarry) != 0)
}

// And performs a bitwise AND of l and r. H is always set.
func And(l, r uint8) Vf {
	return pack(l&r, false, true, false)
}

// Or performs a bitwise OR of l and r.
func Or(l, r uint8) Vf {
	return pack(l|r, false, false, false)
}

// Xor performs a bitwise XOR of l and r.
func Xor(l, r uint8) Vf {
	return pack(l^r, false, false, false)
}

// ShiftLeft shifts v left by one, bit 7 going to C.
//
//	SLA n
func ShiftLeft(v uint8) Vf {
	return pack(v<<1, false, false, v&0x80 != 0)
}

// ShiftRightA shifts v right by one, keeping bit 7. Bit 0 goes to C.
//
//	SRA n
func ShiftRightA(v uint8) Vf {
	return pack(v>>1|v&0x80, false, false, v&0x01 != 0)
}

// ShiftRightL shifts v right by one, clearing bit 7. Bit 0 goes to C.
//
//	SRL n
func ShiftRightL(v uint8) Vf {
	return pack(v>>1, false, false, v&0x01 != 0)
}

// Rotate rotates v by one in the given direction. The bit moved across
// the byte boundary is copied to C.
//
//	RLC n / RRC n / RLCA / RRCA
func Rotate(dir Direction, v uint8) Vf {
	if dir == Left {
		return pack(v<<1|v>>7, false, false, v&0x80 != 0)
	}
	return pack(v>>1|v<<7, false, false, v&0x01 != 0)
}

// RotateCarry rotates the 9-bit value formed by c and v by one.
//
//	RL n / RR n / RLA / RRA
func RotateCarry(dir Direction, v uint8, c bool) Vf {
	in := uint8(carryIn(c))
	if dir == Left {
		return pack(v<<1|in, false, false, v&0x80 != 0)
	}
	return pack(v>>1|in<<7, false, false, v&0x01 != 0)
}

// Swap swaps the upper and lower nibbles of v.
//
//	SWAP n
func Swap(v uint8) Vf {
	return pack(v<<4|v>>4, false, false, false)
}

// TestBit tests bit i of v. The value is always zero, Z is set when the
// bit is clear and H is always set.
//
//	BIT b, n
func TestBit(v uint8, i uint8) Vf {
	return packZ(0, v&(1<<i) == 0, false, true, false)
}

// BcdAdjust corrects v after a BCD addition (n unset) or subtraction
// (n set), given the H and C flags of that operation.
//
//	DAA
//
// Flags:
//
//	Z - Set if result is zero.
//	N - Copied from n.
//	H - Reset.
//	C - Set if the upper digit needed a correction.
func BcdAdjust(v uint8, n, h, c bool) Vf {
	fixL := h || (!n && v&0xF > 9)
	fixH := c || (!n && v > 0x99)

	var fix uint8
	if fixH {
		fix += 0x60
	}
	if fixL {
		fix += 0x06
	}
	if n {
		v -= fix
	} else {
		v += fix
	}
	return pack(v, n, false, fixH)
}
