// exceptions.go - exception entry.
package cpu

// ExceptionKind identifies one of the seven ARM exception classes.
type ExceptionKind uint8

const (
	ExceptionReset ExceptionKind = iota
	ExceptionUndefined
	ExceptionSWI
	ExceptionPrefetchAbort
	ExceptionDataAbort
	ExceptionIRQ
	ExceptionFIQ
)

// vector is the fixed low-memory exception vector table address.
func (k ExceptionKind) vector() uint32 {
	switch k {
	case ExceptionReset:
		return 0x00
	case ExceptionUndefined:
		return 0x04
	case ExceptionSWI:
		return 0x08
	case ExceptionPrefetchAbort:
		return 0x0C
	case ExceptionDataAbort:
		return 0x10
	case ExceptionIRQ:
		return 0x18
	case ExceptionFIQ:
		return 0x1C
	}
	return 0x00
}

func (k ExceptionKind) targetMode() Mode {
	switch k {
	case ExceptionReset:
		return ModeSupervisor
	case ExceptionUndefined:
		return ModeUndefined
	case ExceptionSWI:
		return ModeSupervisor
	case ExceptionPrefetchAbort:
		return ModeAbort
	case ExceptionDataAbort:
		return ModeAbort
	case ExceptionIRQ:
		return ModeIRQ
	case ExceptionFIQ:
		return ModeFIQ
	}
	return ModeSupervisor
}

// ExceptionHook lets a host intercept an exception before the vector table
// is taken, either consuming it (suppressing the vector) or letting it
// proceed as normal. Designed for use when no BIOS is present. Returning
// true suppresses normal vector entry; the hook is then responsible for
// whatever behavior replaces it.
type ExceptionHook func(kind ExceptionKind, returnAddress uint32) (handled bool)

// enterException performs the standard ARM exception entry sequence: save
// CPSR to the target mode's SPSR, switch mode (set I, and F for
// Reset/FIQ, clear T), write LR_target, and load PC from the vector
// table. It returns the pipeline-refill cycle cost (two instruction
// fetches at the new PC); callers add the prefetch/data cycles already
// charged for the instruction that raised the exception.
func (c *CPU) enterException(kind ExceptionKind, returnAddress uint32) uint32 {
	if c.ExceptionHook != nil && c.ExceptionHook(kind, returnAddress) {
		return 0
	}

	oldCPSR := c.Reg.CPSR()
	target := kind.targetMode()

	c.Reg.SetSPSRForMode(target, oldCPSR)
	c.Reg.SwitchMode(target)
	c.Reg.SetI(true)
	if kind == ExceptionReset || kind == ExceptionFIQ {
		c.Reg.SetF(true)
	}
	c.Reg.SetT(false)

	c.Reg.WriteWithMode(target, 14, returnAddress)
	c.Reg.SetPC(kind.vector())

	return c.bus.CodeAccessNonseq32(kind.vector()) + c.bus.CodeAccessSeq32(kind.vector()+4)
}

// RaiseUndefined enters the Undefined exception; the return address is the
// address of the instruction after the undefined one (PC was already
// advanced by Step before dispatch, so ARM's "PC+4" / Thumb's "PC+2" return
// point is simply the current PC at call time minus the remaining pipeline
// offset handled by the caller).
func (c *CPU) RaiseUndefined(returnAddress uint32) uint32 {
	return c.enterException(ExceptionUndefined, returnAddress)
}

func (c *CPU) RaiseSWI(returnAddress uint32) uint32 {
	return c.enterException(ExceptionSWI, returnAddress)
}

func (c *CPU) RaiseIRQ(returnAddress uint32) uint32 {
	return c.enterException(ExceptionIRQ, returnAddress)
}

func (c *CPU) RaiseReset() uint32 {
	return c.enterException(ExceptionReset, 0)
}
