// Package cpu implements the Sharp LR35902 processor of the Game Boy.
package cpu

import (
	"fmt"
	"math"

	"github.com/thelolagemann/gameboj/internal/interrupts"
	"github.com/thelolagemann/gameboj/internal/io"
	"github.com/thelolagemann/gameboj/internal/ram"
	"github.com/thelolagemann/gameboj/internal/types"
	"github.com/thelolagemann/gameboj/pkg/log"
)

const (
	// ClockSpeed is the number of cycles emulated per second. A cycle
	// is a machine cycle, that is 4 ticks of the 4.19 MHz clock.
	ClockSpeed = 1 << 20

	// interruptCycles is the time taken to dispatch an interrupt.
	interruptCycles = 5

	idle = math.MaxInt64
)

// CPU represents the Gameboy CPU. It is responsible for executing
// instructions and for dispatching interrupts, and owns the high RAM
// and the interrupt registers.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// IME is the interrupt master enable flag.
	IME bool

	registers *types.RegisterFile[Register]
	irq       *interrupts.Service
	hram      *ram.Controller
	hramData  *ram.RAM
	bus       *io.Bus

	// nextNonIdleCycle is the first cycle at which the CPU executes
	// again, or idle when halted.
	nextNonIdleCycle int64

	taken  bool // set by conditional instructions when the branch is taken
	halted bool // set by HALT

	// Debug enables tracing of every executed instruction.
	Debug bool
	log   log.Logger
}

// NewCPU creates a new CPU reading and writing memory through bus.
// The CPU does not attach itself: the caller attaches it to the bus
// when building the memory map.
func NewCPU(bus *io.Bus, logger log.Logger) *CPU {
	hramData := ram.NewRAM(types.HRAMSize)
	return &CPU{
		registers: newRegisterFile(),
		irq:       interrupts.NewService(),
		hram:      ram.NewController(hramData, types.HRAMStart),
		hramData:  hramData,
		bus:       bus,
		log:       log.WithComponent(logger, "cpu"),
	}
}

// Register returns the value of the 8-bit register r.
func (c *CPU) Register(r Register) uint8 {
	return c.registers.Get(r)
}

// SetRegister sets the 8-bit register r.
func (c *CPU) SetRegister(r Register, v uint8) {
	if r == F {
		v &= 0xF0
	}
	c.registers.Set(r, v)
}

// Pair returns the value of the register pair p.
func (c *CPU) Pair(p Pair) uint16 {
	return c.reg16(p)
}

// SetPair sets the register pair p.
func (c *CPU) SetPair(p Pair, v uint16) {
	c.setReg16(p, v)
}

// Idle reports whether the CPU is halted, waiting for an interrupt.
func (c *CPU) Idle() bool {
	return c.nextNonIdleCycle == idle
}

// Request implements interrupts.Requester.
func (c *CPU) Request(i interrupts.Interrupt) {
	c.irq.Request(i)
}

// Interrupts returns the interrupt registers owned by the CPU.
func (c *CPU) Interrupts() *interrupts.Service {
	return c.irq
}

// Read implements io.Component for the interrupt registers and the
// high RAM.
func (c *CPU) Read(address uint16) (uint8, bool) {
	if v, ok := c.irq.Read(address); ok {
		return v, true
	}
	return c.hram.Read(address)
}

// Write implements io.Component for the interrupt registers and the
// high RAM.
func (c *CPU) Write(address uint16, value uint8) {
	c.irq.Write(address, value)
	c.hram.Write(address, value)
}

// Cycle advances the CPU to the given cycle. Instructions run to
// completion on their first cycle, the following cycles of the
// instruction are spent doing nothing.
func (c *CPU) Cycle(cycle int64) {
	if c.nextNonIdleCycle == idle && c.irq.Pending() {
		c.nextNonIdleCycle = cycle
	}
	if cycle < c.nextNonIdleCycle {
		return
	}

	if c.IME && c.irq.Pending() {
		c.serviceInterrupt()
		c.nextNonIdleCycle = cycle + interruptCycles
		return
	}

	cycles := c.step()
	if c.halted {
		c.halted = false
		c.nextNonIdleCycle = idle
		return
	}
	c.nextNonIdleCycle = cycle + cycles
}

func (c *CPU) serviceInterrupt() {
	i, _ := c.irq.Acknowledge()
	c.IME = false
	c.push(c.PC)
	c.PC = i.Vector()
	if c.Debug {
		c.log.Debugf("interrupt %s, jumping to %04X", i, c.PC)
	}
}

// step executes the instruction at PC and returns its duration.
func (c *CPU) step() int64 {
	pc := c.PC
	opcode := c.bus.Read(pc)
	instr := &InstructionSet[opcode]
	if opcode == Prefix {
		instr = &InstructionSetCB[c.bus.Read(pc+1)]
	}
	if instr.fn == nil {
		panic(fmt.Sprintf("cpu: unsupported opcode %02X at %04X", opcode, pc))
	}

	var arg uint16
	switch {
	case opcode == Prefix:
	case instr.length == 2:
		arg = uint16(c.bus.Read(pc + 1))
	case instr.length == 3:
		arg = c.bus.Read16(pc + 1)
	}
	if c.Debug {
		c.log.Debugf("%04X %-14s AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X",
			pc, instr.name, c.reg16(AF), c.reg16(BC), c.reg16(DE), c.reg16(HL), c.SP)
	}

	c.PC = pc + uint16(instr.length)
	c.taken = false
	instr.fn(c, arg)

	if c.taken {
		return instr.cycles + instr.additional
	}
	return instr.cycles
}

// push pushes v onto the stack.
func (c *CPU) push(v uint16) {
	c.SP -= 2
	c.bus.Write16(c.SP, v)
}

// pop pops a value from the stack.
func (c *CPU) pop() uint16 {
	v := c.bus.Read16(c.SP)
	c.SP += 2
	return v
}

// SkipBoot puts the CPU in the state the boot ROM leaves it in.
func (c *CPU) SkipBoot() {
	c.setReg16(AF, 0x01B0)
	c.setReg16(BC, 0x0013)
	c.setReg16(DE, 0x00D8)
	c.setReg16(HL, 0x014D)
	c.SP = 0xFFFE
	c.PC = types.EntryPoint
}

var _ types.Stater = (*CPU)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - PC (uint16)
//   - SP (uint16)
//   - registers (8 * uint8)
//   - IME (bool)
//   - nextNonIdleCycle (uint64)
//   - interrupt registers
//   - high RAM
func (c *CPU) Load(s *types.State) {
	c.PC = s.Read16()
	c.SP = s.Read16()
	c.registers.Load(s)
	c.IME = s.ReadBool()
	c.nextNonIdleCycle = int64(s.Read64())
	c.irq.Load(s)
	c.hramData.Load(s)
}

// Save implements the types.Stater interface. See Load for the order.
func (c *CPU) Save(s *types.State) {
	s.Write16(c.PC)
	s.Write16(c.SP)
	c.registers.Save(s)
	s.WriteBool(c.IME)
	s.Write64(uint64(c.nextNonIdleCycle))
	c.irq.Save(s)
	c.hramData.Save(s)
}
