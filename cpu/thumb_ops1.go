// thumb_ops1.go - Thumb formats 1-6.
package cpu

// thumbMoveShifted handles format 1: LSL/LSR/ASR by an immediate, always
// flag-setting.
func thumbMoveShifted(c *CPU, instr uint16) uint32 {
	op := (instr >> 11) & 3
	offset := uint32((instr >> 6) & 0x1F)
	rs := (instr >> 3) & 7
	rd := instr & 7

	value := c.Reg.Read(uint32(rs))
	var result uint32
	var carry bool
	switch op {
	case 0:
		result, carry = ShiftImmediate(ShiftLSL, value, offset, c.Reg.C())
	case 1:
		result, carry = ShiftImmediate(ShiftLSR, value, offset, c.Reg.C())
	case 2:
		result, carry = ShiftImmediate(ShiftASR, value, offset, c.Reg.C())
	}
	c.Reg.Write(uint32(rd), result)
	c.Reg.SetNZ(result)
	c.Reg.SetC(carry)
	return 0
}

// thumbAddSub handles format 2: ADD/SUB with either a register or a 3-bit
// immediate operand.
func thumbAddSub(c *CPU, instr uint16) uint32 {
	immediate := instr&(1<<10) != 0
	sub := instr&(1<<9) != 0
	field := uint32((instr >> 6) & 7)
	rs := uint32((instr >> 3) & 7)
	rd := uint32(instr & 7)

	a := c.Reg.Read(rs)
	var b uint32
	if immediate {
		b = field
	} else {
		b = c.Reg.Read(field)
	}

	var res DPResult
	if sub {
		res = DataProcess(OpSUB, a, b, false, false)
	} else {
		res = DataProcess(OpADD, a, b, false, false)
	}
	c.Reg.Write(rd, res.Result)
	c.Reg.SetNZ(res.Result)
	c.Reg.SetC(res.Carry)
	c.Reg.SetV(res.Overflow)
	return 0
}

// thumbImmediateOp handles format 3: MOV/CMP/ADD/SUB Rd, #imm8.
func thumbImmediateOp(c *CPU, instr uint16) uint32 {
	op := (instr >> 11) & 3
	rd := uint32((instr >> 8) & 7)
	imm := uint32(instr & 0xFF)

	a := c.Reg.Read(rd)
	switch op {
	case 0: // MOV
		c.Reg.Write(rd, imm)
		c.Reg.SetNZ(imm)
	case 1: // CMP
		res := DataProcess(OpCMP, a, imm, false, false)
		c.Reg.SetNZ(res.Result)
		c.Reg.SetC(res.Carry)
		c.Reg.SetV(res.Overflow)
	case 2: // ADD
		res := DataProcess(OpADD, a, imm, false, false)
		c.Reg.Write(rd, res.Result)
		c.Reg.SetNZ(res.Result)
		c.Reg.SetC(res.Carry)
		c.Reg.SetV(res.Overflow)
	case 3: // SUB
		res := DataProcess(OpSUB, a, imm, false, false)
		c.Reg.Write(rd, res.Result)
		c.Reg.SetNZ(res.Result)
		c.Reg.SetC(res.Carry)
		c.Reg.SetV(res.Overflow)
	}
	return 0
}

// thumbALU handles format 4: the 16 two-operand ALU operations over
// low registers.
func thumbALU(c *CPU, instr uint16) uint32 {
	op := (instr >> 6) & 0xF
	rs := uint32((instr >> 3) & 7)
	rd := uint32(instr & 7)

	a := c.Reg.Read(rd)
	b := c.Reg.Read(rs)
	var extra uint32

	switch op {
	case 0x0: // AND
		res := DataProcess(OpAND, a, b, c.Reg.C(), c.Reg.C())
		c.Reg.Write(rd, res.Result)
		c.Reg.SetNZ(res.Result)
	case 0x1: // EOR
		res := DataProcess(OpEOR, a, b, c.Reg.C(), c.Reg.C())
		c.Reg.Write(rd, res.Result)
		c.Reg.SetNZ(res.Result)
	case 0x2: // LSL (by register)
		res, carry := ShiftRegister(ShiftLSL, a, b&0xFF, c.Reg.C())
		c.Reg.Write(rd, res)
		c.Reg.SetNZ(res)
		c.Reg.SetC(carry)
		extra = 1
	case 0x3: // LSR (by register)
		res, carry := ShiftRegister(ShiftLSR, a, b&0xFF, c.Reg.C())
		c.Reg.Write(rd, res)
		c.Reg.SetNZ(res)
		c.Reg.SetC(carry)
		extra = 1
	case 0x4: // ASR (by register)
		res, carry := ShiftRegister(ShiftASR, a, b&0xFF, c.Reg.C())
		c.Reg.Write(rd, res)
		c.Reg.SetNZ(res)
		c.Reg.SetC(carry)
		extra = 1
	case 0x5: // ADC
		res := DataProcess(OpADC, a, b, c.Reg.C(), false)
		c.Reg.Write(rd, res.Result)
		c.Reg.SetNZ(res.Result)
		c.Reg.SetC(res.Carry)
		c.Reg.SetV(res.Overflow)
	case 0x6: // SBC
		res := DataProcess(OpSBC, a, b, c.Reg.C(), false)
		c.Reg.Write(rd, res.Result)
		c.Reg.SetNZ(res.Result)
		c.Reg.SetC(res.Carry)
		c.Reg.SetV(res.Overflow)
	case 0x7: // ROR (by register)
		res, carry := ShiftRegister(ShiftROR, a, b&0xFF, c.Reg.C())
		c.Reg.Write(rd, res)
		c.Reg.SetNZ(res)
		c.Reg.SetC(carry)
		extra = 1
	case 0x8: // TST
		res := DataProcess(OpTST, a, b, c.Reg.C(), c.Reg.C())
		c.Reg.SetNZ(res.Result)
	case 0x9: // NEG
		res := DataProcess(OpRSB, a, 0, false, false)
		c.Reg.Write(rd, res.Result)
		c.Reg.SetNZ(res.Result)
		c.Reg.SetC(res.Carry)
		c.Reg.SetV(res.Overflow)
	case 0xA: // CMP
		res := DataProcess(OpCMP, a, b, false, false)
		c.Reg.SetNZ(res.Result)
		c.Reg.SetC(res.Carry)
		c.Reg.SetV(res.Overflow)
	case 0xB: // CMN
		res := DataProcess(OpCMN, a, b, false, false)
		c.Reg.SetNZ(res.Result)
		c.Reg.SetC(res.Carry)
		c.Reg.SetV(res.Overflow)
	case 0xC: // ORR
		res := DataProcess(OpORR, a, b, c.Reg.C(), c.Reg.C())
		c.Reg.Write(rd, res.Result)
		c.Reg.SetNZ(res.Result)
	case 0xD: // MUL
		result := a * b
		c.Reg.Write(rd, result)
		c.Reg.SetNZ(result)
		extra = MultiplyInternalCycles(b, false)
		c.busRef().OnInternalCycles(extra)
	case 0xE: // BIC
		res := DataProcess(OpBIC, a, b, c.Reg.C(), c.Reg.C())
		c.Reg.Write(rd, res.Result)
		c.Reg.SetNZ(res.Result)
	case 0xF: // MVN
		res := DataProcess(OpMVN, a, b, c.Reg.C(), c.Reg.C())
		c.Reg.Write(rd, res.Result)
		c.Reg.SetNZ(res.Result)
	}
	return extra
}

// thumbHiReg handles format 5: ADD/CMP/MOV over any register 0-15 (at least
// one operand outside R0-R7), and BX.
func thumbHiReg(c *CPU, instr uint16) uint32 {
	op := (instr >> 8) & 3
	h1 := instr&(1<<7) != 0
	h2 := instr&(1<<6) != 0
	rs := uint32((instr >> 3) & 7)
	if h2 {
		rs += 8
	}
	rd := uint32(instr & 7)
	if h1 {
		rd += 8
	}

	switch op {
	case 0: // ADD
		a := c.thumbReadOperandReg(rd)
		b := c.thumbReadOperandReg(rs)
		result := a + b
		c.Reg.Write(rd, result)
		if rd == 15 {
			c.thumbBranchTo(result)
			return c.bus32(c.Reg.PC(), true) + c.bus32(c.Reg.PC()+2, false)
		}
	case 1: // CMP
		a := c.thumbReadOperandReg(rd)
		b := c.thumbReadOperandReg(rs)
		res := DataProcess(OpCMP, a, b, false, false)
		c.Reg.SetNZ(res.Result)
		c.Reg.SetC(res.Carry)
		c.Reg.SetV(res.Overflow)
	case 2: // MOV
		v := c.thumbReadOperandReg(rs)
		c.Reg.Write(rd, v)
		if rd == 15 {
			c.thumbBranchTo(v)
			return c.bus32(c.Reg.PC(), true) + c.bus32(c.Reg.PC()+2, false)
		}
	case 3: // BX
		dest := c.thumbReadOperandReg(rs)
		c.exchangeBranchTo(dest)
		return c.bus32(c.Reg.PC(), true) + c.bus32(c.Reg.PC()+pcStep(c), false)
	}
	return 0
}

// thumbPCRelLoad handles format 6: LDR Rd, [PC, #imm]. PC reads as the
// architectural instruction-address+4 value with bit 1 cleared
// (word-aligned).
func thumbPCRelLoad(c *CPU, instr uint16) uint32 {
	rd := uint32((instr >> 8) & 7)
	word := uint32(instr&0xFF) * 4
	addr := (c.thumbPC() &^ 2) + word

	bus := c.busRef()
	v := bus.Load32(addr)
	cycles := bus.DataAccessNonseq32(addr)
	c.Reg.Write(rd, rotateRead32(v, addr))
	c.busRef().OnInternalCycles(1)
	return cycles + 1
}
