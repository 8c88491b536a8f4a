package console

import (
	"testing"

	"github.com/fennecforge/gbacore/cpu"
	"github.com/fennecforge/gbacore/video"
)

// countingSink verifies the LCD pipeline stays in lockstep with the CPU
// once wired through Console.Step, without asserting on pixel content.
type countingSink struct {
	lines, frames int
}

func (s *countingSink) PreFrame()  {}
func (s *countingSink) PostFrame() { s.frames++ }
func (s *countingSink) DisplayLine(line int, pixels [240]uint16) {
	s.lines++
}

func TestConsoleResetSkipBIOSEntryPoint(t *testing.T) {
	rom := make([]byte, 0x100)
	c := New(nil, rom, video.NullSink{})
	c.ResetSkipBIOS()

	if got := c.CPU.Reg.PC(); got != 0x08000000 {
		t.Fatalf("PC = %#x, want 0x08000000 (skip-BIOS entry)", got)
	}
	if got := c.CPU.Reg.ReadWithMode(cpu.ModeSupervisor, 13); got == 0 {
		// Supervisor SP should have been seeded even though we entered
		// System mode per reset SP table.
		t.Errorf("Supervisor SP was not initialized")
	}
}

func TestConsoleStepDrivesLCDInLockstep(t *testing.T) {
	rom := make([]byte, 0x100)
	sink := &countingSink{}
	c := New(nil, rom, sink)
	c.ResetSkipBIOS()

	// NOP-equivalent (MOV R0,R0) at the reset entry point, in a tight
	// loop: step enough instructions to guarantee at least one full frame
	// of LCD cycles has been consumed.
	instr := uint32(0b1110_00_0_1101_0_0000_0000_00000000_0000)
	for addr := uint32(0x08000000); addr < 0x08000000+0x100; addr += 4 {
		c.Bus.Store32(addr, instr)
	}

	const cyclesPerFrame = (960 + 272) * 228
	var total uint32
	for total < cyclesPerFrame {
		total += c.Step()
	}

	if sink.lines == 0 {
		t.Fatalf("no DisplayLine callbacks fired after a full frame's worth of cycles")
	}
}

// WAITCNT's wait-state fields shape GamePak ROM access cost, with the
// fastest selectable first-access setting (bits=2 -> 2 cycles, per the
// firstAccessCycles table) charging less than the power-on default (bits=0
// -> 4 cycles).
func TestWaitcntShapesROMAccessCycles(t *testing.T) {
	rom := make([]byte, 0x100)
	c := New(nil, rom, video.NullSink{})
	c.ResetSkipBIOS()

	slow := c.Bus.CodeAccessNonseq16(0x08000000)
	if slow != 5 {
		t.Fatalf("default WAITCNT nonseq16 cost = %d, want 5 (4-cycle first access + 1)", slow)
	}

	c.Bus.ioWrite16(0x04000204, 0x0008) // WS0 first access = bits 2 (2 cycles)
	fast := c.Bus.CodeAccessNonseq16(0x08000000)
	if fast != 3 {
		t.Fatalf("fast WAITCNT nonseq16 cost = %d, want 3 (2-cycle first access + 1)", fast)
	}
}

// EWRAM's stated 2 wait cycles on a 16-bit bus costs double for a 32-bit
// access versus an 8/16-bit one, and is unaffected by WAITCNT.
func TestEWRAMAccessCycles(t *testing.T) {
	rom := make([]byte, 0x100)
	c := New(nil, rom, video.NullSink{})
	c.ResetSkipBIOS()

	if got := c.Bus.DataAccessNonseq16(0x02000000); got != 3 {
		t.Fatalf("EWRAM 16-bit access cost = %d, want 3", got)
	}
	if got := c.Bus.DataAccessNonseq32(0x02000000); got != 6 {
		t.Fatalf("EWRAM 32-bit access cost = %d, want 6", got)
	}
}
