package cpu

import (
	"fmt"

	"github.com/thelolagemann/gameboj/internal/types"
)

// Register is one of the 8-bit registers of the CPU.
type Register uint8

const (
	A Register = iota + 1
	F
	B
	C
	D
	E
	H
	L
)

var registerIndex = map[Register]int{
	A: 0, F: 1, B: 2, C: 3, D: 4, E: 5, H: 6, L: 7,
}

var registerNames = map[Register]string{
	A: "A", F: "F", B: "B", C: "C", D: "D", E: "E", H: "H", L: "L",
}

var allRegisters = []Register{A, F, B, C, D, E, H, L}

func (r Register) Index() int {
	i, ok := registerIndex[r]
	if !ok {
		panic(fmt.Sprintf("cpu: unknown register %d", uint8(r)))
	}
	return i
}

func (r Register) String() string {
	return registerNames[r]
}

// Pair is one of the 16-bit register pairs, including SP which is not
// backed by the register file.
type Pair uint8

const (
	BC Pair = iota + 1
	DE
	HL
	AF
	SP
)

var pairNames = map[Pair]string{
	BC: "BC", DE: "DE", HL: "HL", AF: "AF", SP: "SP",
}

func (p Pair) String() string {
	return pairNames[p]
}

// pairHalves lists the high and low register of every pair but SP.
var pairHalves = map[Pair][2]Register{
	BC: {B, C},
	DE: {D, E},
	HL: {H, L},
	AF: {A, F},
}

// Operand selectors, as they are encoded in opcodes. The 3-bit register
// selector 0b110 designates (HL), and is handled by the caller.
var (
	registerSelector = [8]Register{B, C, D, E, H, L, 0, A}
	// pairSelectorSP is used by LD rr, INC rr, DEC rr and ADD HL, rr.
	pairSelectorSP = [4]Pair{BC, DE, HL, SP}
	// pairSelectorAF is used by PUSH and POP.
	pairSelectorAF = [4]Pair{BC, DE, HL, AF}
)

const selectorHL = 6

// operandName returns the name of a 3-bit register selector.
func operandName(sel uint8) string {
	if sel == selectorHL {
		return "(HL)"
	}
	return registerSelector[sel].String()
}

func newRegisterFile() *types.RegisterFile[Register] {
	return types.NewRegisterFile(allRegisters)
}

// reg16 returns the value of pair p.
func (c *CPU) reg16(p Pair) uint16 {
	if p == SP {
		return c.SP
	}
	h := pairHalves[p]
	return c.registers.Get16(h[0], h[1])
}

// setReg16 sets the value of pair p. The low nibble of F always reads
// as zero.
func (c *CPU) setReg16(p Pair, v uint16) {
	switch p {
	case SP:
		c.SP = v
	case AF:
		c.registers.Set16(A, F, v&0xFFF0)
	default:
		h := pairHalves[p]
		c.registers.Set16(h[0], h[1], v)
	}
}

// operand returns the value designated by the 3-bit selector sel,
// reading memory at HL for (HL).
func (c *CPU) operand(sel uint8) uint8 {
	if sel == selectorHL {
		return c.bus.Read(c.reg16(HL))
	}
	return c.registers.Get(registerSelector[sel])
}

func (c *CPU) setOperand(sel uint8, v uint8) {
	if sel == selectorHL {
		c.bus.Write(c.reg16(HL), v)
		return
	}
	c.registers.Set(registerSelector[sel], v)
}
