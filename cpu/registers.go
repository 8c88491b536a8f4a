// registers.go - ARM7TDMI register file and mode banking.
//
// Grounded on registers.go's approach to a single flat storage array plus a
// lookup for "which physical slot backs this logical register in this
// mode" (see the design note on mode banking), and on cpu_ie32.go's
// CPU struct for the shape of a register-file-plus-flags owner type.
package cpu

// Registers holds the 31 physical register slots banked per ARM v4T mode,
// plus CPSR and the six per-mode SPSRs. R15 (PC) is never banked and is
// stored separately.
type Registers struct {
	low    [8]uint32    // R0-R7, shared by every mode
	r8_12  [2][5]uint32 // R8-R12: index 0 = non-FIQ modes, index 1 = FIQ
	r13_14 [numBanks][2]uint32

	pc   uint32
	cpsr uint32
	spsr [numBanks]uint32
}

// NewRegisters returns a register file with CPSR in Supervisor mode, IRQ
// and FIQ masked, ARM state — the post-Reset-vector state.
func NewRegisters() *Registers {
	r := &Registers{}
	r.cpsr = uint32(ModeSupervisor) | flagI | flagF
	return r
}

func (r *Registers) mode() Mode { return Mode(r.cpsr & modeMask) }

// Read returns the value of logical register n (0-15) as seen by the
// currently active mode.
func (r *Registers) Read(n uint32) uint32 {
	return r.ReadWithMode(r.mode(), n)
}

func (r *Registers) ReadWithMode(m Mode, n uint32) uint32 {
	switch {
	case n < 8:
		return r.low[n]
	case n == 15:
		return r.pc
	case n >= 8 && n <= 12:
		if m == ModeFIQ {
			return r.r8_12[1][n-8]
		}
		return r.r8_12[0][n-8]
	default: // 13, 14
		return r.r13_14[bankIndex(m)][n-13]
	}
}

// Write stores a value into logical register n as seen by the currently
// active mode. Writing R15 moves the PC directly; callers performing a
// branch should instead go through the CPU's branch helpers so pipeline
// cycle accounting and the T-bit/alignment invariant stay consistent.
func (r *Registers) Write(n uint32, v uint32) {
	r.WriteWithMode(r.mode(), n, v)
}

func (r *Registers) WriteWithMode(m Mode, n uint32, v uint32) {
	switch {
	case n < 8:
		r.low[n] = v
	case n == 15:
		r.pc = v
	case n >= 8 && n <= 12:
		if m == ModeFIQ {
			r.r8_12[1][n-8] = v
		} else {
			r.r8_12[0][n-8] = v
		}
	default:
		r.r13_14[bankIndex(m)][n-13] = v
	}
}

// PC returns R15 directly, without the mode indirection Read(15) goes
// through — used by handlers that need it on the hot path.
func (r *Registers) PC() uint32     { return r.pc }
func (r *Registers) SetPC(v uint32) { r.pc = v }

// CPSR returns the raw current program status register.
func (r *Registers) CPSR() uint32 { return r.cpsr }

// WriteCPSR installs a new CPSR value. A change of the mode field needs no
// register copying: banked storage is indexed by the mode in cpsr, so the
// new mode's R8-R14 (or R13-R14) are visible as soon as it is written. Invalid mode
// encodings are accepted as-is (real hardware behavior for reserved mode
// bits is unspecified; we do not fault).
func (r *Registers) WriteCPSR(v uint32) {
	oldMode := r.mode()
	newMode := Mode(v & modeMask)
	r.cpsr = v
	_ = oldMode
	_ = newMode
	// Banking is implicit: ReadWithMode/WriteWithMode always index by the
	// mode encoded in cpsr at call time, so no copy is needed here. The
	// explicit SwitchMode entry point below exists for exception entry,
	// where the transfer must happen before cpsr is overwritten.
}

// SwitchMode changes only the mode field of CPSR, leaving flags and T
// intact. It exists separately from WriteCPSR because our banking scheme
// is "storage indexed by mode", not "copy on switch" — so in practice this
// is just a masked write, but it is the named operation exception entry
// and reset use (MSR goes through WriteCPSR).
func (r *Registers) SwitchMode(newMode Mode) {
	r.cpsr = (r.cpsr &^ modeMask) | uint32(newMode)
}

// SPSR returns the saved program status register of the current mode. In
// User/System mode there is no physical SPSR; we define the fallback as
// returning CPSR itself (a documented policy decision, since real
// hardware leaves this access undefined in practice).
func (r *Registers) SPSR() uint32 {
	m := r.mode()
	if m == ModeUser || m == ModeSystem {
		return r.cpsr
	}
	return r.spsr[bankIndex(m)]
}

func (r *Registers) SetSPSR(v uint32) {
	m := r.mode()
	if m == ModeUser || m == ModeSystem {
		return
	}
	r.spsr[bankIndex(m)] = v
}

// SPSRForMode / SetSPSRForMode are used by exception entry, which must
// target the *new* mode's SPSR before CPSR is overwritten with that mode.
func (r *Registers) SPSRForMode(m Mode) uint32 {
	if m == ModeUser || m == ModeSystem {
		return r.cpsr
	}
	return r.spsr[bankIndex(m)]
}

func (r *Registers) SetSPSRForMode(m Mode, v uint32) {
	if m == ModeUser || m == ModeSystem {
		return
	}
	r.spsr[bankIndex(m)] = v
}

// Condition flag accessors.
func (r *Registers) N() bool { return r.cpsr&flagN != 0 }
func (r *Registers) Z() bool { return r.cpsr&flagZ != 0 }
func (r *Registers) C() bool { return r.cpsr&flagC != 0 }
func (r *Registers) V() bool { return r.cpsr&flagV != 0 }
func (r *Registers) I() bool { return r.cpsr&flagI != 0 }
func (r *Registers) F() bool { return r.cpsr&flagF != 0 }
func (r *Registers) T() bool { return r.cpsr&flagT != 0 }

func (r *Registers) setFlag(bit uint32, on bool) {
	if on {
		r.cpsr |= bit
	} else {
		r.cpsr &^= bit
	}
}

func (r *Registers) SetN(v bool) { r.setFlag(flagN, v) }
func (r *Registers) SetZ(v bool) { r.setFlag(flagZ, v) }
func (r *Registers) SetC(v bool) { r.setFlag(flagC, v) }
func (r *Registers) SetV(v bool) { r.setFlag(flagV, v) }
func (r *Registers) SetI(v bool) { r.setFlag(flagI, v) }
func (r *Registers) SetF(v bool) { r.setFlag(flagF, v) }
func (r *Registers) SetT(v bool) { r.setFlag(flagT, v) }

// SetNZ is the common "set N and Z from a 32-bit result" idiom used by
// nearly every flag-setting data-processing and load handler.
func (r *Registers) SetNZ(result uint32) {
	r.SetN(result&0x80000000 != 0)
	r.SetZ(result == 0)
}
