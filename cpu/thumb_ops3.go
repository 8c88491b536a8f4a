// thumb_ops3.go - Thumb formats 13-19.
package cpu

import "math/bits"

// thumbAddSP handles format 13: ADD/SUB SP, #imm7*4.
func thumbAddSP(c *CPU, instr uint16) uint32 {
	negative := instr&(1<<7) != 0
	word := uint32(instr&0x7F) * 4
	sp := c.Reg.Read(13)
	if negative {
		c.Reg.Write(13, sp-word)
	} else {
		c.Reg.Write(13, sp+word)
	}
	return 0
}

// thumbPushPop handles format 14: PUSH/POP {Rlist}, with the optional
// LR (push) / PC (pop) extra register.
func thumbPushPop(c *CPU, instr uint16) uint32 {
	load := instr&(1<<11) != 0
	includeExtra := instr&(1<<8) != 0
	list := instr & 0xFF

	count := bits.OnesCount8(uint8(list))
	if includeExtra {
		count++
	}

	bus := c.busRef()
	var cycles uint32
	sp := c.Reg.Read(13)

	if load { // POP: ascending from SP, writeback SP upward
		addr := sp
		for n := uint32(0); n < 8; n++ {
			if list&(1<<n) == 0 {
				continue
			}
			v := bus.Load32(addr)
			cycles += bus.DataAccessNonseq32(addr)
			c.Reg.Write(n, v)
			addr += 4
		}
		if includeExtra {
			v := bus.Load32(addr)
			cycles += bus.DataAccessNonseq32(addr)
			c.thumbBranchTo(v)
			addr += 4
			cycles += c.bus32(c.Reg.PC(), true) + c.bus32(c.Reg.PC()+2, false)
		}
		c.Reg.Write(13, addr)
	} else { // PUSH: descending, store in ascending register order below SP
		addr := sp - uint32(count)*4
		c.Reg.Write(13, addr)
		for n := uint32(0); n < 8; n++ {
			if list&(1<<n) == 0 {
				continue
			}
			bus.Store32(addr, c.Reg.Read(n))
			cycles += bus.DataAccessNonseq32(addr)
			addr += 4
		}
		if includeExtra {
			bus.Store32(addr, c.Reg.Read(14))
			cycles += bus.DataAccessNonseq32(addr)
		}
	}

	c.busRef().OnInternalCycles(1)
	return cycles + 1
}

// thumbMultipleLoadStore handles format 15: LDMIA/STMIA Rb!, {Rlist}.
func thumbMultipleLoadStore(c *CPU, instr uint16) uint32 {
	load := instr&(1<<11) != 0
	rb := uint32((instr >> 8) & 7)
	list := instr & 0xFF

	bus := c.busRef()
	addr := c.Reg.Read(rb)
	var cycles uint32

	for n := uint32(0); n < 8; n++ {
		if list&(1<<n) == 0 {
			continue
		}
		if load {
			v := bus.Load32(addr)
			cycles += bus.DataAccessNonseq32(addr)
			c.Reg.Write(n, v)
		} else {
			bus.Store32(addr, c.Reg.Read(n))
			cycles += bus.DataAccessNonseq32(addr)
		}
		addr += 4
	}
	c.Reg.Write(rb, addr)
	c.busRef().OnInternalCycles(1)
	return cycles + 1
}

// thumbSWIHandler handles format 17: SWI.
func thumbSWIHandler(c *CPU, instr uint16) uint32 {
	return c.RaiseSWI(c.Reg.PC())
}

// thumbCondBranch handles format 16: Bcc label.
func thumbCondBranch(c *CPU, instr uint16) uint32 {
	cond := uint32((instr >> 8) & 0xF)
	if !checkCondition(cond, c.Reg) {
		return 0
	}
	offset := signExtend(uint32(instr&0xFF), 8) << 1
	dest := c.Reg.PC() + 2 + offset
	c.thumbBranchTo(dest)
	return c.bus32(c.Reg.PC(), true) + c.bus32(c.Reg.PC()+2, false)
}

// thumbBranch handles format 18: unconditional B label.
func thumbBranch(c *CPU, instr uint16) uint32 {
	offset := signExtend(uint32(instr&0x7FF), 11) << 1
	dest := c.Reg.PC() + 2 + offset
	c.thumbBranchTo(dest)
	return c.bus32(c.Reg.PC(), true) + c.bus32(c.Reg.PC()+2, false)
}

// thumbLongBranchLink handles format 19: the two-instruction BL pair.
// H=0 (low half first, instr bit11==0) stashes PC+4+(offset11<<12) into LR;
// H=1 computes the final destination from LR+(offset11<<1), sets LR to the
// return address with its low bit forced set, and branches.
func thumbLongBranchLink(c *CPU, instr uint16) uint32 {
	offset11 := uint32(instr & 0x7FF)
	high := instr&(1<<11) != 0

	if !high {
		signed := signExtend(offset11, 11) << 12
		c.Reg.Write(14, c.Reg.PC()+2+signed)
		return 0
	}

	target := c.Reg.Read(14) + offset11<<1
	nextInstr := c.Reg.PC()
	c.Reg.Write(14, nextInstr|1)
	c.thumbBranchTo(target)
	return c.bus32(c.Reg.PC(), true) + c.bus32(c.Reg.PC()+2, false)
}
