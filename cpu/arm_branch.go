// arm_branch.go - B/BL, SWI, and the true/forced-Undefined instruction space.
package cpu

// armBranch handles B and BL. The 24-bit signed word offset is relative to
// (instruction address + 8); since c.Reg.PC() already holds
// (instruction address + 4) at handler time, the destination is PC()+4+offset.
func armBranch(c *CPU, instr uint32) uint32 {
	link := instr&(1<<24) != 0
	offset := signExtend(instr&0xFFFFFF, 24) << 2

	if link {
		c.Reg.Write(14, c.Reg.PC())
	}
	dest := c.Reg.PC() + 4 + offset
	c.armBranchTo(dest)
	return c.bus32(c.Reg.PC(), true) + c.bus32(c.Reg.PC()+4, false)
}

// armSWI raises the Software Interrupt exception.
func armSWI(c *CPU, instr uint32) uint32 {
	return c.RaiseSWI(c.Reg.PC())
}

// armUndefinedInstruction covers both the true undefined-instruction space
// and the coprocessor encodings, which the GBA's ARM7TDMI core has no
// coprocessor to service and which therefore also trap to Undefined.
func armUndefinedInstruction(c *CPU, instr uint32) uint32 {
	return c.RaiseUndefined(c.Reg.PC())
}
