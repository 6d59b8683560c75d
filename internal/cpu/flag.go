package cpu

type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// FlagSrc tells where an instruction takes the new value of a flag
// from.
type FlagSrc uint8

const (
	V0   FlagSrc = iota // always reset
	V1                  // always set
	ALU                 // from the result of the ALU
	Keep                // unchanged
)

// flagSrcs gives the source of every flag of an instruction family,
// in Z, N, H, C order.
type flagSrcs [4]FlagSrc

var flagOrder = [4]Flag{FlagZero, FlagSubtract, FlagHalfCarry, FlagCarry}

// combine computes the new F register from the current one and the
// flags produced by the ALU.
func (s flagSrcs) combine(current uint8, alu Vf) uint8 {
	var f uint8
	for i, src := range s {
		mask := uint8(1) << flagOrder[i]
		switch src {
		case V1:
			f |= mask
		case ALU:
			f |= alu.Flags() & mask
		case Keep:
			f |= current & mask
		}
	}
	return f
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.registers.TestBit(F, flag)
}

// setFlags replaces F with the flags selected by s.
func (c *CPU) setFlags(s flagSrcs, alu Vf) {
	c.registers.Set(F, s.combine(c.registers.Get(F), alu))
}

var (
	flagsInc    = flagSrcs{ALU, V0, ALU, Keep}
	flagsDec    = flagSrcs{ALU, V1, ALU, Keep}
	flagsAll    = flagSrcs{ALU, ALU, ALU, ALU}
	flagsAdd16H = flagSrcs{Keep, V0, ALU, ALU}
	flagsAdd16L = flagSrcs{V0, V0, ALU, ALU}
	flagsCPL    = flagSrcs{Keep, V1, V1, Keep}
	flagsRotA   = flagSrcs{V0, ALU, ALU, ALU}
	flagsBit    = flagSrcs{ALU, ALU, ALU, Keep}
	flagsDAA    = flagSrcs{ALU, Keep, V0, ALU}
	flagsSCF    = flagSrcs{Keep, V0, V0, V1}
	flagsCCF    = flagSrcs{Keep, V0, V0, V0}
)
