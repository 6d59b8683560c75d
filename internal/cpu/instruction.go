package cpu

import "fmt"

// Prefix selects the InstructionSetCB table for the next byte.
const Prefix uint8 = 0xCB

// Instruction describes how to decode and execute one opcode.
type Instruction struct {
	name   string
	length uint8 // total length in bytes, opcode included
	// cycles is the base duration, additional is added when a
	// conditional branch is taken.
	cycles, additional int64
	// fn executes the instruction. arg holds the immediate operand,
	// if any, and PC already points past the instruction.
	fn func(c *CPU, arg uint16)
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

var (
	InstructionSet   [256]Instruction
	InstructionSetCB [256]Instruction
)

// DefineInstruction defines the instruction in the InstructionSet, with
// the provided opcode.
func DefineInstruction(opcode uint8, name string, length uint8, cycles, additional int64, fn func(*CPU, uint16)) {
	if InstructionSet[opcode].fn != nil {
		panic(fmt.Sprintf("cpu: opcode %02X defined twice", opcode))
	}
	InstructionSet[opcode] = Instruction{
		name:       name,
		length:     length,
		cycles:     cycles,
		additional: additional,
		fn:         fn,
	}
}

// DefineInstructionCB defines the instruction in the InstructionSetCB,
// with the provided opcode. Prefixed instructions are all 2 bytes long
// and never branch.
func DefineInstructionCB(opcode uint8, name string, cycles int64, fn func(*CPU, uint16)) {
	if InstructionSetCB[opcode].fn != nil {
		panic(fmt.Sprintf("cpu: opcode CB %02X defined twice", opcode))
	}
	InstructionSetCB[opcode] = Instruction{
		name:   name,
		length: 2,
		cycles: cycles,
		fn:     fn,
	}
}

// Disassemble returns the mnemonic of the instruction starting with
// opcode, and next for prefixed instructions.
func Disassemble(opcode, next uint8) string {
	instr := InstructionSet[opcode]
	if opcode == Prefix {
		instr = InstructionSetCB[next]
	}
	if instr.fn == nil {
		return fmt.Sprintf("illegal %02X", opcode)
	}
	return instr.name
}
