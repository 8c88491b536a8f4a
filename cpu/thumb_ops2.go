// thumb_ops2.go - Thumb formats 7-12.
package cpu

// thumbLoadStoreReg handles formats 7 and 8: LDR/STR/LDRB/STRB with a
// register offset (format 7, instr bit9==0), and LDRH/STRH/LDSB/LDSH with a
// register offset (format 8, instr bit9==1).
func thumbLoadStoreReg(c *CPU, instr uint16) uint32 {
	ro := uint32((instr >> 6) & 7)
	rb := uint32((instr >> 3) & 7)
	rd := uint32(instr & 7)
	addr := c.Reg.Read(rb) + c.Reg.Read(ro)
	bus := c.busRef()

	if instr&(1<<9) == 0 {
		load := instr&(1<<11) != 0
		byteAccess := instr&(1<<10) != 0
		if load {
			if byteAccess {
				v := bus.Load8(addr)
				c.busRef().OnInternalCycles(1)
				c.Reg.Write(rd, uint32(v))
				return bus.DataAccessNonseq8(addr) + 1
			}
			v := bus.Load32(addr)
			c.busRef().OnInternalCycles(1)
			c.Reg.Write(rd, rotateRead32(v, addr))
			return bus.DataAccessNonseq32(addr) + 1
		}
		if byteAccess {
			bus.Store8(addr, uint8(c.Reg.Read(rd)))
			return bus.DataAccessNonseq8(addr)
		}
		bus.Store32(addr, c.Reg.Read(rd))
		return bus.DataAccessNonseq32(addr)
	}

	h := instr&(1<<11) != 0
	s := instr&(1<<10) != 0
	switch {
	case !s && !h: // STRH
		bus.Store16(addr, uint16(c.Reg.Read(rd)))
		return bus.DataAccessNonseq16(addr)
	case !s && h: // LDRH
		v := bus.Load16(addr)
		c.busRef().OnInternalCycles(1)
		c.Reg.Write(rd, uint32(v))
		return bus.DataAccessNonseq16(addr) + 1
	case s && !h: // LDSB
		v := bus.Load8(addr)
		c.busRef().OnInternalCycles(1)
		c.Reg.Write(rd, signExtend(uint32(v), 8))
		return bus.DataAccessNonseq8(addr) + 1
	default: // LDSH
		v := bus.Load16(addr)
		c.busRef().OnInternalCycles(1)
		c.Reg.Write(rd, signExtend(uint32(v), 16))
		return bus.DataAccessNonseq16(addr) + 1
	}
}

// thumbLoadStoreImm handles format 9: LDR/STR/LDRB/STRB with a 5-bit
// immediate offset (scaled by 4 for word access, unscaled for byte access).
func thumbLoadStoreImm(c *CPU, instr uint16) uint32 {
	byteAccess := instr&(1<<12) != 0
	load := instr&(1<<11) != 0
	offset5 := uint32((instr >> 6) & 0x1F)
	rb := uint32((instr >> 3) & 7)
	rd := uint32(instr & 7)

	var offset uint32
	if byteAccess {
		offset = offset5
	} else {
		offset = offset5 * 4
	}
	addr := c.Reg.Read(rb) + offset
	bus := c.busRef()

	if load {
		if byteAccess {
			v := bus.Load8(addr)
			c.busRef().OnInternalCycles(1)
			c.Reg.Write(rd, uint32(v))
			return bus.DataAccessNonseq8(addr) + 1
		}
		v := bus.Load32(addr)
		c.busRef().OnInternalCycles(1)
		c.Reg.Write(rd, rotateRead32(v, addr))
		return bus.DataAccessNonseq32(addr) + 1
	}
	if byteAccess {
		bus.Store8(addr, uint8(c.Reg.Read(rd)))
		return bus.DataAccessNonseq8(addr)
	}
	bus.Store32(addr, c.Reg.Read(rd))
	return bus.DataAccessNonseq32(addr)
}

// thumbLoadStoreHalf handles format 10: LDRH/STRH with a 5-bit immediate
// offset scaled by 2.
func thumbLoadStoreHalf(c *CPU, instr uint16) uint32 {
	load := instr&(1<<11) != 0
	offset5 := uint32((instr >> 6) & 0x1F)
	rb := uint32((instr >> 3) & 7)
	rd := uint32(instr & 7)
	addr := c.Reg.Read(rb) + offset5*2
	bus := c.busRef()

	if load {
		v := bus.Load16(addr)
		c.busRef().OnInternalCycles(1)
		c.Reg.Write(rd, uint32(v))
		return bus.DataAccessNonseq16(addr) + 1
	}
	bus.Store16(addr, uint16(c.Reg.Read(rd)))
	return bus.DataAccessNonseq16(addr)
}

// thumbSPRelLoadStore handles format 11: LDR/STR Rd, [SP, #imm8*4].
func thumbSPRelLoadStore(c *CPU, instr uint16) uint32 {
	load := instr&(1<<11) != 0
	rd := uint32((instr >> 8) & 7)
	word := uint32(instr&0xFF) * 4
	addr := c.Reg.Read(13) + word
	bus := c.busRef()

	if load {
		v := bus.Load32(addr)
		c.busRef().OnInternalCycles(1)
		c.Reg.Write(rd, rotateRead32(v, addr))
		return bus.DataAccessNonseq32(addr) + 1
	}
	bus.Store32(addr, c.Reg.Read(rd))
	return bus.DataAccessNonseq32(addr)
}

// thumbLoadAddress handles format 12: ADD Rd, PC/SP, #imm8*4.
func thumbLoadAddress(c *CPU, instr uint16) uint32 {
	useSP := instr&(1<<11) != 0
	rd := uint32((instr >> 8) & 7)
	word := uint32(instr&0xFF) * 4

	var base uint32
	if useSP {
		base = c.Reg.Read(13)
	} else {
		base = c.thumbPC() &^ 2
	}
	c.Reg.Write(rd, base+word)
	return 0
}
