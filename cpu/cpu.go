// cpu.go - top-level CPU state and the one-instruction Step loop.
//
// Grounded on cpu_ie32.go's CPU struct / Execute shape (register file +
// cumulative cycle counter + bus handle + Reset/Step entry points) and on
// the ARM7TDMI's own fetch/decode/dispatch cycle.
package cpu

import "github.com/fennecforge/gbacore/membus"

// CPU is the ARM7TDMI interpreter state: the register file, a monotonic
// cycle counter, and the halted flag. The memory bus is passed to each Step
// call (and to the Reset entry points), which records it in an unexported
// field that handlers reach through busRef.
type CPU struct {
	Reg     *Registers
	Cycles  uint64
	Halted  bool

	// ExceptionHook, if set, may intercept any exception before vector
	// entry. Nil means every exception proceeds normally.
	ExceptionHook ExceptionHook

	// PendingIRQ is polled at each instruction boundary; when it reports
	// true and CPSR.I is clear, the CPU takes the IRQ exception before
	// the next instruction fetch. A full system wires this
	// to the interrupt controller's (IE & IF) != 0 check.
	PendingIRQ func() bool

	bus membus.Bus
}

// busRef returns the bus lent for the current Step call, for handlers that
// need to charge extra pipeline-refill cycles after a PC change.
func (c *CPU) busRef() membus.Bus { return c.bus }

// NewCPU returns a CPU with a fresh register file. Reset (BIOS or
// skip-BIOS) must be called before stepping.
func NewCPU() *CPU {
	return &CPU{Reg: NewRegisters()}
}

// ResetWithBIOS enters the CPU at the Reset vector in Supervisor mode with
// IRQs masked per BIOS reset entry point.
func (c *CPU) ResetWithBIOS(bus membus.Bus) {
	c.bus = bus
	c.Reg = NewRegisters()
	c.Halted = false
	c.Cycles += uint64(c.RaiseReset())
}

// ResetSkipBIOS enters the CPU directly at the GamePak entry point in
// System mode with the stack pointers hardware normally sets up during the
// BIOS boot sequence.
func (c *CPU) ResetSkipBIOS(bus membus.Bus) {
	c.bus = bus
	c.Reg = NewRegisters()
	c.Reg.SwitchMode(ModeSystem)
	c.Reg.SetI(false)
	c.Reg.SetF(false)
	c.Reg.SetT(false)
	c.Reg.WriteWithMode(ModeSystem, 13, 0x03007F00)
	c.Reg.WriteWithMode(ModeIRQ, 13, 0x03007FA0)
	c.Reg.WriteWithMode(ModeSupervisor, 13, 0x03007FE0)
	c.Reg.SetPC(0x08000000)
	c.Halted = false
}

// Step executes exactly one instruction (taking an interrupt first if one
// is pending and unmasked) and returns the number of cycles it consumed.
// cpu.Cycles strictly increases by that amount on every call.
func (c *CPU) Step(bus membus.Bus) uint32 {
	c.bus = bus

	if c.Halted {
		if c.PendingIRQ != nil && c.PendingIRQ() {
			c.Halted = false
		} else {
			c.Cycles++
			return 1
		}
	}

	if !c.Reg.I() && c.PendingIRQ != nil && c.PendingIRQ() {
		ret := c.Reg.PC()
		if c.Reg.T() {
			ret += 2
		} else {
			ret += 4
		}
		n := c.enterException(ExceptionIRQ, ret)
		if n == 0 {
			n = 1
		}
		c.Cycles += uint64(n)
		return n
	}

	var n uint32
	if c.Reg.T() {
		n = c.stepThumb(bus)
	} else {
		n = c.stepARM(bus)
	}
	if n == 0 {
		n = 1
	}
	c.Cycles += uint64(n)
	return n
}

// armBranchTo sets PC to dest & ~3 without
// touching the T bit.
func (c *CPU) armBranchTo(dest uint32) {
	c.Reg.SetPC(dest &^ 3)
}

// thumbBranchTo sets PC to dest & ~1 without touching the T bit.
func (c *CPU) thumbBranchTo(dest uint32) {
	c.Reg.SetPC(dest &^ 1)
}

// exchangeBranchTo implements BX's state switch: bit 0 of
// dest selects Thumb, and PC is masked accordingly.
func (c *CPU) exchangeBranchTo(dest uint32) {
	if dest&1 != 0 {
		c.Reg.SetT(true)
		c.thumbBranchTo(dest)
	} else {
		c.Reg.SetT(false)
		c.armBranchTo(dest)
	}
}

// checkCondition evaluates the ARM 4-bit condition field against CPSR
// flags. Condition 0xE (AL) always executes; 0xF is unpredictable on real
// hardware and is treated as "always" here (no instruction in the ARMv4T
// user-code space legitimately encodes it outside BLX, which GBA's ARMv4T
// core does not implement).
func checkCondition(cond uint32, reg *Registers) bool {
	n, z, c, v := reg.N(), reg.Z(), reg.C(), reg.V()
	switch cond {
	case 0x0:
		return z
	case 0x1:
		return !z
	case 0x2:
		return c
	case 0x3:
		return !c
	case 0x4:
		return n
	case 0x5:
		return !n
	case 0x6:
		return v
	case 0x7:
		return !v
	case 0x8:
		return c && !z
	case 0x9:
		return !c || z
	case 0xA:
		return n == v
	case 0xB:
		return n != v
	case 0xC:
		return !z && n == v
	case 0xD:
		return z || n != v
	case 0xE:
		return true
	default:
		return true
	}
}
