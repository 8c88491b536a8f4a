// arm_mul.go - multiply, multiply-long, swap, and branch-exchange.
package cpu

// armMultiply handles MUL/MLA.
func armMultiply(c *CPU, instr uint32) uint32 {
	rd := (instr >> 16) & 0xF
	rn := (instr >> 12) & 0xF
	rs := (instr >> 8) & 0xF
	rm := instr & 0xF
	accumulate := instr&(1<<21) != 0
	setFlags := instr&(1<<20) != 0

	result := c.Reg.Read(rm) * c.Reg.Read(rs)
	if accumulate {
		result += c.Reg.Read(rn)
	}
	c.Reg.Write(rd, result)

	if setFlags {
		c.Reg.SetNZ(result)
	}

	internal := MultiplyInternalCycles(c.Reg.Read(rs), true)
	c.busRef().OnInternalCycles(internal)
	if accumulate {
		c.busRef().OnInternalCycles(1)
		internal++
	}
	return internal
}

// armMultiplyLong handles UMULL/UMLAL/SMULL/SMLAL.
func armMultiplyLong(c *CPU, instr uint32) uint32 {
	rdHi := (instr >> 16) & 0xF
	rdLo := (instr >> 12) & 0xF
	rs := (instr >> 8) & 0xF
	rm := instr & 0xF
	signedOp := instr&(1<<22) != 0
	accumulate := instr&(1<<21) != 0
	setFlags := instr&(1<<20) != 0

	var wide uint64
	if signedOp {
		wide = uint64(int64(int32(c.Reg.Read(rm))) * int64(int32(c.Reg.Read(rs))))
	} else {
		wide = uint64(c.Reg.Read(rm)) * uint64(c.Reg.Read(rs))
	}
	if accumulate {
		wide += uint64(c.Reg.Read(rdHi))<<32 | uint64(c.Reg.Read(rdLo))
	}

	lo := uint32(wide)
	hi := uint32(wide >> 32)
	c.Reg.Write(rdLo, lo)
	c.Reg.Write(rdHi, hi)

	if setFlags {
		c.Reg.SetZ(wide == 0)
		c.Reg.SetN(hi&0x80000000 != 0)
	}

	internal := MultiplyInternalCycles(c.Reg.Read(rs), signedOp) + 1
	c.busRef().OnInternalCycles(internal)
	if accumulate {
		c.busRef().OnInternalCycles(1)
		internal++
	}
	return internal
}

// armSWP handles SWP/SWPB: an atomic load-then-store of the same address.
func armSWP(c *CPU, instr uint32) uint32 {
	rn := (instr >> 16) & 0xF
	rd := (instr >> 12) & 0xF
	rm := instr & 0xF
	byteSwap := instr&(1<<22) != 0
	addr := c.Reg.Read(rn)
	bus := c.busRef()

	if byteSwap {
		old := bus.Load8(addr)
		cycles := bus.DataAccessNonseq8(addr)
		bus.Store8(addr, uint8(c.Reg.Read(rm)))
		cycles += bus.DataAccessNonseq8(addr)
		c.Reg.Write(rd, uint32(old))
		c.busRef().OnInternalCycles(1)
		return cycles + 1
	}
	old := bus.Load32(addr)
	cycles := bus.DataAccessNonseq32(addr)
	bus.Store32(addr, c.Reg.Read(rm))
	cycles += bus.DataAccessNonseq32(addr)
	rotated := rotateRead32(old, addr)
	c.Reg.Write(rd, rotated)
	c.busRef().OnInternalCycles(1)
	return cycles + 1
}

// rotateRead32 implements the misaligned-word-load rule: a misaligned word load
// rotates the loaded word right by 8*(addr&3).
func rotateRead32(w uint32, addr uint32) uint32 {
	rot := (addr & 3) * 8
	if rot == 0 {
		return w
	}
	return (w >> rot) | (w << (32 - rot))
}

// armBX handles Branch and Exchange.
func armBX(c *CPU, instr uint32) uint32 {
	rm := instr & 0xF
	dest := c.Reg.Read(rm)
	c.exchangeBranchTo(dest)
	return c.bus32(c.Reg.PC(), true) + c.bus32(c.Reg.PC()+pcStep(c), false)
}

func pcStep(c *CPU) uint32 {
	if c.Reg.T() {
		return 2
	}
	return 4
}
