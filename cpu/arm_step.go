// arm_step.go - ARM-state fetch/condition-gate/dispatch.
package cpu

import "github.com/fennecforge/gbacore/membus"

func signExtend(v uint32, bits uint) uint32 {
	shift := 32 - bits
	return uint32(int32(v<<shift) >> shift)
}

// stepARM fetches the instruction at PC, advances PC by 4, condition-gates
// it, and dispatches through armTable. It returns the total cycle cost,
// including the prefetch cycle charged even when the condition fails: one
// code fetch happens at PC regardless of whether the condition-code gate
// lets the instruction's own effects through.
func (c *CPU) stepARM(bus membus.Bus) uint32 {
	pc := c.Reg.PC()
	instr := bus.Load32(pc)
	prefetch := bus.CodeAccessSeq32(pc)
	c.Reg.SetPC(pc + 4)

	cond := instr >> 28
	if !checkCondition(cond, c.Reg) {
		return prefetch
	}

	handler := armTable[armKey(instr)]
	return prefetch + handler(c, instr)
}

// Operand2 decode used by the data-processing handler.
type operand2Result struct {
	value uint32
	carry bool
}

// decodeOperand2Register computes the shifter operand for a register-form (b25=0)
// data-processing instruction: an optionally-shifted register, by either
// an immediate shift amount or the bottom byte of another register.
func decodeOperand2Register(c *CPU, instr uint32) (operand2Result, uint32) {
	rm := instr & 0xF
	shiftType := ShiftType((instr >> 5) & 3)
	extraCycles := uint32(0)

	var amount uint32
	var rmVal uint32
	if instr&0x10 != 0 { // shift amount in register
		rs := (instr >> 8) & 0xF
		// Rm/Rs read before the shift; if Rm==PC, ARM defines PC reads
		// as PC+12 in this encoding (two instructions ahead) because the
		// register-shift-by-register form takes an extra internal cycle
		// that effectively advances the pipeline one step further.
		rmVal = c.readOperandReg(rm, 12)
		amount = c.Reg.Read(rs) & 0xFF
		extraCycles = 1
		res, carry := ShiftRegister(shiftType, rmVal, amount, c.Reg.C())
		return operand2Result{value: res, carry: carry}, extraCycles
	}

	amount = (instr >> 7) & 0x1F
	rmVal = c.readOperandReg(rm, 8)
	res, carry := ShiftImmediate(shiftType, rmVal, amount, c.Reg.C())
	return operand2Result{value: res, carry: carry}, extraCycles
}

// readOperandReg reads register n as an operand. At the point a handler
// runs, c.Reg.PC() already holds (instruction address + 4), since stepARM
// advanced it past the fetch. ARM defines R15-as-operand to read as
// (instruction address + 8) normally, or +12 for the register-shift-by-
// register encoding (the extra internal cycle advances the pipeline one
// step further); totalOffset is that architectural offset from the
// instruction's own address.
func (c *CPU) readOperandReg(n uint32, totalOffset uint32) uint32 {
	if n == 15 {
		return c.Reg.PC() + (totalOffset - 4)
	}
	return c.Reg.Read(n)
}

// thumbPC returns the architectural R15 value in Thumb state. At the point a
// Thumb handler runs, c.Reg.PC() already holds (instruction address + 2),
// since stepThumb advanced it past the fetch; Thumb defines R15-as-operand to
// read as (instruction address + 4), one halfword further than readOperandReg
// assumes for ARM state, so Thumb handlers must not reuse it unchanged.
func (c *CPU) thumbPC() uint32 {
	return c.Reg.PC() + 2
}

// thumbReadOperandReg reads register n as an operand in Thumb state, where
// R15 reads as thumbPC() rather than the ARM-state readOperandReg offset.
func (c *CPU) thumbReadOperandReg(n uint32) uint32 {
	if n == 15 {
		return c.thumbPC()
	}
	return c.Reg.Read(n)
}

// decodeOperand2Immediate computes the rotated-8-bit-immediate operand2. A
// zero rotate field performs no rotation at all, so the shifter leaves the C
// flag unaffected (carryIn is passed straight through for logical ops to
// pick up, per the ARM immediate-operand2 encoding).
func decodeOperand2Immediate(instr uint32, carryIn bool) (operand2Result, uint32) {
	imm := instr & 0xFF
	rotate := ((instr >> 8) & 0xF) * 2
	if rotate == 0 {
		return operand2Result{value: imm, carry: carryIn}, 0
	}
	res, carry := ShiftImmediate(ShiftROR, imm, rotate, false)
	return operand2Result{value: res, carry: carry}, 0
}
