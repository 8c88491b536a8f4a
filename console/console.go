// console.go - top-level wiring: CPU, bus, LCD, and interrupt controller
// assembled into one steppable machine.
//
// Grounded on main.go's machine-assembly shape (construct CPU + bus +
// peripherals, wire PendingIRQ-style hooks, expose a single Run/Step entry
// point to the host) adapted to the GBA's fixed component set.
package console

import (
	"github.com/fennecforge/gbacore/cpu"
	"github.com/fennecforge/gbacore/irq"
	"github.com/fennecforge/gbacore/video"
)

// Console is a complete GBA core: CPU interpreter, system bus, LCD
// pipeline, and interrupt controller, stepped one CPU instruction at a
// time by the host's frame loop.
type Console struct {
	CPU *cpu.CPU
	Bus *Bus
	PPU *video.PPU
	IRQ *irq.Controller
}

// New assembles a Console with sink wired to the LCD pipeline's Sink
// collaborator. A nil sink is replaced with video.NullSink.
func New(bios, rom []byte, sink video.Sink) *Console {
	irqc := irq.NewController()
	ppu := video.NewPPU(irqc, sink)
	bus := NewBus(bios, rom, ppu, irqc)

	c := cpu.NewCPU()
	c.PendingIRQ = irqc.Pending

	return &Console{CPU: c, Bus: bus, PPU: ppu, IRQ: irqc}
}

// ResetWithBIOS enters the CPU at the BIOS reset vector.
func (console *Console) ResetWithBIOS() {
	console.CPU.ResetWithBIOS(console.Bus)
}

// ResetSkipBIOS enters the CPU directly at the GamePak entry point,
// skipping the BIOS boot animation.
func (console *Console) ResetSkipBIOS() {
	console.CPU.ResetSkipBIOS(console.Bus)
}

// Step executes exactly one CPU instruction and advances the LCD pipeline
// by the same number of cycles, keeping the two in lockstep: the LCD
// pipeline advances purely off CPU cycles, never off wall-clock time.
func (console *Console) Step() uint32 {
	cycles := console.CPU.Step(console.Bus)
	console.PPU.Step(cycles)
	return cycles
}

// RunFrame steps the console until VCOUNT has wrapped from its last line
// back to 0, i.e. until exactly one full 228-line frame has been produced.
func (console *Console) RunFrame() {
	prev := console.PPU.Reg.Line
	for {
		console.Step()
		line := console.PPU.Reg.Line
		if line < prev {
			return
		}
		prev = line
	}
}
