// arm_dataproc.go - data-processing instructions.
package cpu

// armDataProcessing handles AND/EOR/SUB/RSB/ADD/ADC/SBC/RSC/TST/TEQ/CMP/
// CMN/ORR/MOV/BIC/MVN in both immediate and register operand2 forms.
func armDataProcessing(c *CPU, instr uint32) uint32 {
	op := DPOpcode((instr >> 21) & 0xF)
	setFlags := instr&(1<<20) != 0
	rn := (instr >> 16) & 0xF
	rd := (instr >> 12) & 0xF

	var op2 operand2Result
	var extraCycles uint32
	totalOffset := uint32(8)
	if instr&(1<<25) != 0 {
		op2, extraCycles = decodeOperand2Immediate(instr, c.Reg.C())
	} else {
		op2, extraCycles = decodeOperand2Register(c, instr)
		if instr&0x10 != 0 {
			totalOffset = 12
		}
	}

	a := c.readOperandReg(rn, totalOffset)
	res := DataProcess(op, a, op2.value, c.Reg.C(), op2.carry)

	if op.WritesResult() {
		c.Reg.Write(rd, res.Result)
	}

	if setFlags {
		if rd == 15 {
			// When Rd = PC and S is set, CPSR is loaded from SPSR
			// (mode restoration).
			c.Reg.WriteCPSR(c.Reg.SPSR())
		} else {
			c.Reg.SetNZ(res.Result)
			c.Reg.SetC(res.Carry)
			if op.IsArithmetic() {
				c.Reg.SetV(res.Overflow)
			}
		}
	}

	if rd == 15 && op.WritesResult() {
		if c.Reg.T() {
			c.thumbBranchTo(res.Result)
		} else {
			c.armBranchTo(res.Result)
		}
		extraCycles += c.bus32(c.Reg.PC(), true) + c.bus32(c.Reg.PC()+4, false)
	}

	return extraCycles
}

// bus32 is a small helper used when a handler causes a PC change and must
// charge pipeline-refill cycles; nonseq selects a non-sequential rather than
// a sequential code access (callers charge the non-sequential-then-
// sequential refill pair with two calls).
func (c *CPU) bus32(addr uint32, nonseq bool) uint32 {
	if c.Reg.T() {
		if nonseq {
			return c.busRef().CodeAccessNonseq16(addr)
		}
		return c.busRef().CodeAccessSeq16(addr)
	}
	if nonseq {
		return c.busRef().CodeAccessNonseq32(addr)
	}
	return c.busRef().CodeAccessSeq32(addr)
}

// armPSRTransfer handles MRS and MSR (register and immediate forms).
func armPSRTransfer(c *CPU, instr uint32) uint32 {
	useSPSR := instr&(1<<22) != 0
	isMSR := instr&(1<<21) != 0

	if !isMSR {
		rd := (instr >> 12) & 0xF
		if useSPSR {
			c.Reg.Write(rd, c.Reg.SPSR())
		} else {
			c.Reg.Write(rd, c.Reg.CPSR())
		}
		return 0
	}

	var value uint32
	if instr&(1<<25) != 0 {
		imm := instr & 0xFF
		rotate := ((instr >> 8) & 0xF) * 2
		value, _ = ShiftImmediate(ShiftROR, imm, rotate, false)
		if (instr>>16)&0xF == 0xF {
			// Immediate source writing every field (c,x,s,f) is treated
			// as Undefined.
			return c.RaiseUndefined(c.Reg.PC())
		}
	} else {
		rm := instr & 0xF
		value = c.Reg.Read(rm)
	}

	fieldMask := (instr >> 16) & 0xF
	var byteMask uint32
	if fieldMask&1 != 0 {
		byteMask |= 0x000000FF
	}
	if fieldMask&2 != 0 {
		byteMask |= 0x0000FF00
	}
	if fieldMask&4 != 0 {
		byteMask |= 0x00FF0000
	}
	if fieldMask&8 != 0 {
		byteMask |= 0xFF000000
	}

	if useSPSR {
		old := c.Reg.SPSR()
		c.Reg.SetSPSR((old &^ byteMask) | (value & byteMask))
		return 0
	}

	old := c.Reg.CPSR()
	newVal := (old &^ byteMask) | (value & byteMask)
	c.Reg.WriteCPSR(newVal)
	return 0
}
