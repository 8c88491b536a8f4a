// mode.go - processor mode constants and the CPSR mode-field encoding.
package cpu

// Mode is the 5-bit CPSR mode field (bits 4:0).
type Mode uint32

const (
	ModeUser       Mode = 0x10
	ModeFIQ        Mode = 0x11
	ModeIRQ        Mode = 0x12
	ModeSupervisor Mode = 0x13
	ModeAbort      Mode = 0x17
	ModeUndefined  Mode = 0x1B
	ModeSystem     Mode = 0x1F
)

func (m Mode) valid() bool {
	switch m {
	case ModeUser, ModeFIQ, ModeIRQ, ModeSupervisor, ModeAbort, ModeUndefined, ModeSystem:
		return true
	}
	return false
}

// bankIndex identifies which of the seven SPSR/bank slots a mode owns.
// User and System share the same (non-existent) SPSR slot and the same
// R8-R14 bank.
func bankIndex(m Mode) int {
	switch m {
	case ModeUser, ModeSystem:
		return 0
	case ModeFIQ:
		return 1
	case ModeIRQ:
		return 2
	case ModeSupervisor:
		return 3
	case ModeAbort:
		return 4
	case ModeUndefined:
		return 5
	}
	return 0
}

const numBanks = 6

// CPSR / SPSR bit layout.
const (
	flagN = 1 << 31
	flagZ = 1 << 30
	flagC = 1 << 29
	flagV = 1 << 28
	flagI = 1 << 7
	flagF = 1 << 6
	flagT = 1 << 5
	modeMask = 0x1F
)
