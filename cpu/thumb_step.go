// thumb_step.go - Thumb-state fetch/dispatch.
package cpu

import "github.com/fennecforge/gbacore/membus"

// stepThumb fetches the halfword at PC, advances PC by 2, and dispatches
// through thumbTable. Thumb instructions carry no per-instruction condition
// field (only the conditional-branch format itself checks CPSR flags), so
// every fetched instruction always executes.
func (c *CPU) stepThumb(bus membus.Bus) uint32 {
	pc := c.Reg.PC()
	instr := bus.Load16(pc)
	prefetch := bus.CodeAccessSeq16(pc)
	c.Reg.SetPC(pc + 2)

	handler := thumbTable[thumbKey(instr)]
	return prefetch + handler(c, instr)
}
