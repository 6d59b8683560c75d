package cpu

import (
	"fmt"

	"github.com/thelolagemann/gameboj/pkg/bits"
)

// conditionNames are the 2-bit branch conditions, as encoded in
// opcode bits 3-4.
var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

// condition evaluates the branch condition cc.
func (c *CPU) condition(cc uint8) bool {
	switch cc {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	default:
		return c.isFlagSet(FlagCarry)
	}
}

// indirect returns the address used by LD (rr), A and LD A, (rr),
// post-incrementing or post-decrementing HL where the opcode asks to.
func (c *CPU) indirect(i uint8) uint16 {
	switch i {
	case 0:
		return c.reg16(BC)
	case 1:
		return c.reg16(DE)
	case 2:
		hl := c.reg16(HL)
		c.setReg16(HL, hl+1)
		return hl
	default:
		hl := c.reg16(HL)
		c.setReg16(HL, hl-1)
		return hl
	}
}

var indirectNames = [4]string{"(BC)", "(DE)", "(HL+)", "(HL-)"}

// signed returns the 8-bit relative operand e8, sign extended to 16 bits.
func signed(arg uint16) uint16 {
	return uint16(bits.SignExtend8(uint8(arg)))
}

// cyclesFor returns base, or hl when sel designates (HL).
func cyclesFor(sel uint8, base, hl int64) int64 {
	if sel == selectorHL {
		return hl
	}
	return base
}

// aluOps are the 8 operations of the 0x80-0xBF block, in opcode order.
var aluOps = [8]struct {
	name string
	fn   func(c *CPU, v uint8)
}{
	{"ADD A,", func(c *CPU, v uint8) { c.accumulate(Add(c.registers.Get(A), v, false)) }},
	{"ADC A,", func(c *CPU, v uint8) { c.accumulate(Add(c.registers.Get(A), v, c.isFlagSet(FlagCarry))) }},
	{"SUB", func(c *CPU, v uint8) { c.accumulate(Sub(c.registers.Get(A), v, false)) }},
	{"SBC A,", func(c *CPU, v uint8) { c.accumulate(Sub(c.registers.Get(A), v, c.isFlagSet(FlagCarry))) }},
	{"AND", func(c *CPU, v uint8) { c.accumulate(And(c.registers.Get(A), v)) }},
	{"XOR", func(c *CPU, v uint8) { c.accumulate(Xor(c.registers.Get(A), v)) }},
	{"OR", func(c *CPU, v uint8) { c.accumulate(Or(c.registers.Get(A), v)) }},
	{"CP", func(c *CPU, v uint8) { c.setFlags(flagsAll, Sub(c.registers.Get(A), v, false)) }},
}

// accumulate stores an ALU result in A, with all of its flags.
func (c *CPU) accumulate(r Vf) {
	c.registers.Set(A, r.Value())
	c.setFlags(flagsAll, r)
}

// shiftOps are the 8 operations of the CB 0x00-0x3F block, in opcode
// order.
var shiftOps = [8]struct {
	name string
	fn   func(c *CPU, v uint8) Vf
}{
	{"RLC", func(c *CPU, v uint8) Vf { return Rotate(Left, v) }},
	{"RRC", func(c *CPU, v uint8) Vf { return Rotate(Right, v) }},
	{"RL", func(c *CPU, v uint8) Vf { return RotateCarry(Left, v, c.isFlagSet(FlagCarry)) }},
	{"RR", func(c *CPU, v uint8) Vf { return RotateCarry(Right, v, c.isFlagSet(FlagCarry)) }},
	{"SLA", func(c *CPU, v uint8) Vf { return ShiftLeft(v) }},
	{"SRA", func(c *CPU, v uint8) Vf { return ShiftRightA(v) }},
	{"SWAP", func(c *CPU, v uint8) Vf { return Swap(v) }},
	{"SRL", func(c *CPU, v uint8) Vf { return ShiftRightL(v) }},
}

func init() {
	defineControl()
	defineLoads()
	defineArithmetic()
	defineJumps()
	defineCB()
}

func defineControl() {
	DefineInstruction(0x00, "NOP", 1, 1, 0, func(c *CPU, _ uint16) {})
	DefineInstruction(0x10, "STOP", 2, 1, 0, func(c *CPU, _ uint16) {
		panic(fmt.Sprintf("cpu: STOP at %04X is not supported", c.PC-2))
	})
	DefineInstruction(0x76, "HALT", 1, 1, 0, func(c *CPU, _ uint16) {
		c.halted = true
	})
	// bit 3 of the opcode is the new value of IME
	DefineInstruction(0xF3, "DI", 1, 1, 0, func(c *CPU, _ uint16) { c.IME = false })
	DefineInstruction(0xFB, "EI", 1, 1, 0, func(c *CPU, _ uint16) { c.IME = true })

	DefineInstruction(0x27, "DAA", 1, 1, 0, func(c *CPU, _ uint16) {
		r := BcdAdjust(c.registers.Get(A), c.isFlagSet(FlagSubtract), c.isFlagSet(FlagHalfCarry), c.isFlagSet(FlagCarry))
		c.registers.Set(A, r.Value())
		c.setFlags(flagsDAA, r)
	})
	DefineInstruction(0x2F, "CPL", 1, 1, 0, func(c *CPU, _ uint16) {
		c.registers.Set(A, bits.Complement8(c.registers.Get(A)))
		c.setFlags(flagsCPL, 0)
	})
	DefineInstruction(0x37, "SCF", 1, 1, 0, func(c *CPU, _ uint16) {
		c.setFlags(flagsSCF, 0)
	})
	DefineInstruction(0x3F, "CCF", 1, 1, 0, func(c *CPU, _ uint16) {
		if c.isFlagSet(FlagCarry) {
			c.setFlags(flagsCCF, 0)
		} else {
			c.setFlags(flagsSCF, 0)
		}
	})
}

func defineLoads() {
	for i, p := range pairSelectorSP {
		p, op := p, uint8(i<<4)
		DefineInstruction(0x01|op, fmt.Sprintf("LD %s, d16", p), 3, 3, 0, func(c *CPU, arg uint16) {
			c.setReg16(p, arg)
		})
	}

	for i := uint8(0); i < 4; i++ {
		i := i
		DefineInstruction(0x02|i<<4, fmt.Sprintf("LD %s, A", indirectNames[i]), 1, 2, 0, func(c *CPU, _ uint16) {
			c.bus.Write(c.indirect(i), c.registers.Get(A))
		})
		DefineInstruction(0x0A|i<<4, fmt.Sprintf("LD A, %s", indirectNames[i]), 1, 2, 0, func(c *CPU, _ uint16) {
			c.registers.Set(A, c.bus.Read(c.indirect(i)))
		})
	}

	for sel := uint8(0); sel < 8; sel++ {
		sel := sel
		DefineInstruction(0x06|sel<<3, fmt.Sprintf("LD %s, d8", operandName(sel)), 2, cyclesFor(sel, 2, 3), 0, func(c *CPU, arg uint16) {
			c.setOperand(sel, uint8(arg))
		})
	}

	// 0x40 - 0x7F - LD r, r'
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			if dst == selectorHL && src == selectorHL {
				continue // HALT
			}
			dst, src := dst, src
			cycles := int64(1)
			if dst == selectorHL || src == selectorHL {
				cycles = 2
			}
			DefineInstruction(0x40|dst<<3|src, fmt.Sprintf("LD %s, %s", operandName(dst), operandName(src)), 1, cycles, 0, func(c *CPU, _ uint16) {
				c.setOperand(dst, c.operand(src))
			})
		}
	}

	DefineInstruction(0x08, "LD (a16), SP", 3, 5, 0, func(c *CPU, arg uint16) {
		c.bus.Write16(arg, c.SP)
	})
	DefineInstruction(0xE0, "LDH (a8), A", 2, 3, 0, func(c *CPU, arg uint16) {
		c.bus.Write(0xFF00|arg, c.registers.Get(A))
	})
	DefineInstruction(0xF0, "LDH A, (a8)", 2, 3, 0, func(c *CPU, arg uint16) {
		c.registers.Set(A, c.bus.Read(0xFF00|arg))
	})
	DefineInstruction(0xE2, "LD (C), A", 1, 2, 0, func(c *CPU, _ uint16) {
		c.bus.Write(0xFF00|uint16(c.registers.Get(C)), c.registers.Get(A))
	})
	DefineInstruction(0xF2, "LD A, (C)", 1, 2, 0, func(c *CPU, _ uint16) {
		c.registers.Set(A, c.bus.Read(0xFF00|uint16(c.registers.Get(C))))
	})
	DefineInstruction(0xEA, "LD (a16), A", 3, 4, 0, func(c *CPU, arg uint16) {
		c.bus.Write(arg, c.registers.Get(A))
	})
	DefineInstruction(0xFA, "LD A, (a16)", 3, 4, 0, func(c *CPU, arg uint16) {
		c.registers.Set(A, c.bus.Read(arg))
	})
	DefineInstruction(0xF8, "LD HL, SP+e8", 2, 3, 0, func(c *CPU, arg uint16) {
		r := Add16L(c.SP, signed(arg))
		c.setReg16(HL, r.Value16())
		c.setFlags(flagsAdd16L, r)
	})
	DefineInstruction(0xF9, "LD SP, HL", 1, 2, 0, func(c *CPU, _ uint16) {
		c.SP = c.reg16(HL)
	})

	for i, p := range pairSelectorAF {
		p, op := p, uint8(i<<4)
		DefineInstruction(0xC1|op, fmt.Sprintf("POP %s", p), 1, 3, 0, func(c *CPU, _ uint16) {
			c.setReg16(p, c.pop())
		})
		DefineInstruction(0xC5|op, fmt.Sprintf("PUSH %s", p), 1, 4, 0, func(c *CPU, _ uint16) {
			c.push(c.reg16(p))
		})
	}
}

func defineArithmetic() {
	for sel := uint8(0); sel < 8; sel++ {
		sel := sel
		DefineInstruction(0x04|sel<<3, fmt.Sprintf("INC %s", operandName(sel)), 1, cyclesFor(sel, 1, 3), 0, func(c *CPU, _ uint16) {
			r := Add(c.operand(sel), 1, false)
			c.setOperand(sel, r.Value())
			c.setFlags(flagsInc, r)
		})
		DefineInstruction(0x05|sel<<3, fmt.Sprintf("DEC %s", operandName(sel)), 1, cyclesFor(sel, 1, 3), 0, func(c *CPU, _ uint16) {
			r := Sub(c.operand(sel), 1, false)
			c.setOperand(sel, r.Value())
			c.setFlags(flagsDec, r)
		})
	}

	for i, p := range pairSelectorSP {
		p, op := p, uint8(i<<4)
		DefineInstruction(0x03|op, fmt.Sprintf("INC %s", p), 1, 2, 0, func(c *CPU, _ uint16) {
			c.setReg16(p, c.reg16(p)+1)
		})
		DefineInstruction(0x0B|op, fmt.Sprintf("DEC %s", p), 1, 2, 0, func(c *CPU, _ uint16) {
			c.setReg16(p, c.reg16(p)-1)
		})
		DefineInstruction(0x09|op, fmt.Sprintf("ADD HL, %s", p), 1, 2, 0, func(c *CPU, _ uint16) {
			r := Add16H(c.reg16(HL), c.reg16(p))
			c.setReg16(HL, r.Value16())
			c.setFlags(flagsAdd16H, r)
		})
	}

	DefineInstruction(0xE8, "ADD SP, e8", 2, 4, 0, func(c *CPU, arg uint16) {
		r := Add16L(c.SP, signed(arg))
		c.SP = r.Value16()
		c.setFlags(flagsAdd16L, r)
	})

	// 0x80 - 0xBF - ALU A, r and 0xC6 - 0xFE - ALU A, d8
	for k, o := range aluOps {
		o, op := o, uint8(k<<3)
		for sel := uint8(0); sel < 8; sel++ {
			sel := sel
			DefineInstruction(0x80|op|sel, fmt.Sprintf("%s %s", o.name, operandName(sel)), 1, cyclesFor(sel, 1, 2), 0, func(c *CPU, _ uint16) {
				o.fn(c, c.operand(sel))
			})
		}
		DefineInstruction(0xC6|op, fmt.Sprintf("%s d8", o.name), 2, 2, 0, func(c *CPU, arg uint16) {
			o.fn(c, uint8(arg))
		})
	}

	// 0x07, 0x0F, 0x17, 0x1F - rotations of A, which always reset Z
	DefineInstruction(0x07, "RLCA", 1, 1, 0, func(c *CPU, _ uint16) {
		c.rotateA(Rotate(Left, c.registers.Get(A)))
	})
	DefineInstruction(0x0F, "RRCA", 1, 1, 0, func(c *CPU, _ uint16) {
		c.rotateA(Rotate(Right, c.registers.Get(A)))
	})
	DefineInstruction(0x17, "RLA", 1, 1, 0, func(c *CPU, _ uint16) {
		c.rotateA(RotateCarry(Left, c.registers.Get(A), c.isFlagSet(FlagCarry)))
	})
	DefineInstruction(0x1F, "RRA", 1, 1, 0, func(c *CPU, _ uint16) {
		c.rotateA(RotateCarry(Right, c.registers.Get(A), c.isFlagSet(FlagCarry)))
	})
}

func (c *CPU) rotateA(r Vf) {
	c.registers.Set(A, r.Value())
	c.setFlags(flagsRotA, r)
}

func defineJumps() {
	DefineInstruction(0x18, "JR e8", 2, 3, 0, func(c *CPU, arg uint16) {
		c.PC += signed(arg)
	})
	DefineInstruction(0xC3, "JP a16", 3, 4, 0, func(c *CPU, arg uint16) {
		c.PC = arg
	})
	DefineInstruction(0xE9, "JP HL", 1, 1, 0, func(c *CPU, _ uint16) {
		c.PC = c.reg16(HL)
	})
	DefineInstruction(0xCD, "CALL a16", 3, 6, 0, func(c *CPU, arg uint16) {
		c.push(c.PC)
		c.PC = arg
	})
	DefineInstruction(0xC9, "RET", 1, 4, 0, func(c *CPU, _ uint16) {
		c.PC = c.pop()
	})
	DefineInstruction(0xD9, "RETI", 1, 4, 0, func(c *CPU, _ uint16) {
		c.IME = true
		c.PC = c.pop()
	})

	for cc := uint8(0); cc < 4; cc++ {
		cc, op := cc, cc<<3
		name := conditionNames[cc]
		DefineInstruction(0x20|op, fmt.Sprintf("JR %s, e8", name), 2, 2, 1, func(c *CPU, arg uint16) {
			if c.taken = c.condition(cc); c.taken {
				c.PC += signed(arg)
			}
		})
		DefineInstruction(0xC2|op, fmt.Sprintf("JP %s, a16", name), 3, 3, 1, func(c *CPU, arg uint16) {
			if c.taken = c.condition(cc); c.taken {
				c.PC = arg
			}
		})
		DefineInstruction(0xC4|op, fmt.Sprintf("CALL %s, a16", name), 3, 3, 3, func(c *CPU, arg uint16) {
			if c.taken = c.condition(cc); c.taken {
				c.push(c.PC)
				c.PC = arg
			}
		})
		DefineInstruction(0xC0|op, fmt.Sprintf("RET %s", name), 1, 2, 3, func(c *CPU, _ uint16) {
			if c.taken = c.condition(cc); c.taken {
				c.PC = c.pop()
			}
		})
	}

	for t := uint8(0); t < 8; t++ {
		target := uint16(t) << 3
		DefineInstruction(0xC7|t<<3, fmt.Sprintf("RST %02XH", target), 1, 4, 0, func(c *CPU, _ uint16) {
			c.push(c.PC)
			c.PC = target
		})
	}
}

func defineCB() {
	for sel := uint8(0); sel < 8; sel++ {
		sel := sel
		name := operandName(sel)

		for k, o := range shiftOps {
			o := o
			DefineInstructionCB(uint8(k<<3)|sel, fmt.Sprintf("%s %s", o.name, name), cyclesFor(sel, 2, 4), func(c *CPU, _ uint16) {
				r := o.fn(c, c.operand(sel))
				c.setOperand(sel, r.Value())
				c.setFlags(flagsAll, r)
			})
		}

		for b := uint8(0); b < 8; b++ {
			b := b
			DefineInstructionCB(0x40|b<<3|sel, fmt.Sprintf("BIT %d, %s", b, name), cyclesFor(sel, 2, 3), func(c *CPU, _ uint16) {
				c.setFlags(flagsBit, TestBit(c.operand(sel), b))
			})
			DefineInstructionCB(0x80|b<<3|sel, fmt.Sprintf("RES %d, %s", b, name), cyclesFor(sel, 2, 4), func(c *CPU, _ uint16) {
				c.setOperand(sel, bits.Reset(c.operand(sel), b))
			})
			DefineInstructionCB(0xC0|b<<3|sel, fmt.Sprintf("SET %d, %s", b, name), cyclesFor(sel, 2, 4), func(c *CPU, _ uint16) {
				c.setOperand(sel, bits.Set(c.operand(sel), b))
			})
		}
	}
}
