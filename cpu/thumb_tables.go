// thumb_tables.go - the 1024-entry Thumb dispatch table.
//
// Same generate-once-and-freeze approach as arm_tables.go, keyed on the
// architecturally-significant bits [15:6] of the halfword. Each handler
// re-examines the full 16-bit instruction for its own sub-fields.
package cpu

type thumbHandler func(c *CPU, instr uint16) uint32

var thumbTable [1024]thumbHandler

type thumbPattern struct {
	mask, value uint16
	handler     thumbHandler
}

var thumbPatterns = []thumbPattern{
	{0x3E0, 0x060, thumbAddSub},
	{0x380, 0x000, thumbMoveShifted},
	{0x380, 0x080, thumbImmediateOp},
	{0x3F0, 0x100, thumbALU},
	{0x3F0, 0x110, thumbHiReg},
	{0x3E0, 0x120, thumbPCRelLoad},
	{0x3C0, 0x140, thumbLoadStoreReg},
	{0x380, 0x180, thumbLoadStoreImm},
	{0x3C0, 0x200, thumbLoadStoreHalf},
	{0x3C0, 0x240, thumbSPRelLoadStore},
	{0x3C0, 0x280, thumbLoadAddress},
	{0x3FC, 0x2C0, thumbAddSP},
	{0x3D8, 0x2D0, thumbPushPop},
	{0x3C0, 0x300, thumbMultipleLoadStore},
	{0x3FC, 0x37C, thumbSWIHandler},
	{0x3C0, 0x340, thumbCondBranch},
	{0x3E0, 0x380, thumbBranch},
	{0x3C0, 0x3C0, thumbLongBranchLink},
}

func init() {
	for key := uint32(0); key < 1024; key++ {
		h := thumbUndefined
		for _, p := range thumbPatterns {
			if uint16(key)&p.mask == p.value {
				h = p.handler
				break
			}
		}
		thumbTable[key] = h
	}
}

func thumbKey(instr uint16) uint32 {
	return uint32(instr>>6) & 0x3FF
}

func thumbUndefined(c *CPU, instr uint16) uint32 {
	return c.RaiseUndefined(c.Reg.PC())
}
