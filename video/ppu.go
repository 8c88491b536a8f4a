// ppu.go - the HDRAW/HBLANK/VBLANK scanline state machine and per-line
// render orchestration.
//
// Grounded on original_source/pyrite-gba/src/lcd/mod.rs's scanline state
// machine (960-cycle draw / 272-cycle hblank, VBlank at line 160, IF
// posting through the interrupt controller) and on this codebase's own
// component-owns-its-clock style elsewhere (e.g. timer/audio subsystems that
// track their own cycle counters rather than being driven externally line by
// line).
package video

import "github.com/fennecforge/gbacore/irq"

const (
	cyclesHDraw   = 960
	cyclesHBlank  = 272
	cyclesPerLine = cyclesHDraw + cyclesHBlank
	visibleLines  = 160
	totalLines    = 228
)

// PPU is the LCD core: register state, video memory, and the scanline
// state machine driving a Sink.
type PPU struct {
	Reg     Registers
	Palette Palette
	VRAM    VRAM
	OAM     OAM

	IRQ  *irq.Controller
	Sink Sink

	cycleInLine int
	inHBlank    bool

	lineDirect      [240]uint16
	lineDirectValid [240]bool

	frameStarted bool
}

// NewPPU returns a PPU wired to the given interrupt controller and video
// sink. A nil sink is replaced with NullSink.
func NewPPU(irqc *irq.Controller, sink Sink) *PPU {
	if sink == nil {
		sink = NullSink{}
	}
	return &PPU{IRQ: irqc, Sink: sink}
}

// Step advances the scanline state machine by cycles (as charged by the
// bus for video-related waitstates elsewhere), crossing HDRAW/HBLANK/line
// boundaries and firing VBlank/HBlank/VCounter interrupts and Sink
// callbacks as they occur.
func (p *PPU) Step(cycles uint32) {
	for cycles > 0 {
		remaining := cyclesPerLine - p.cycleInLine
		step := int(cycles)
		if step > remaining {
			step = remaining
		}
		p.cycleInLine += step
		cycles -= uint32(step)

		if !p.inHBlank && p.cycleInLine >= cyclesHDraw {
			p.enterHBlank()
		}
		if p.cycleInLine >= cyclesPerLine {
			p.cycleInLine -= cyclesPerLine
			p.advanceLine()
		}
	}
}

func (p *PPU) enterHBlank() {
	p.inHBlank = true
	p.Reg.DISPSTAT.HBlank = true
	if int(p.Reg.Line) < visibleLines {
		p.renderLine(int(p.Reg.Line))
	}
	if p.Reg.DISPSTAT.HBlankIRQ {
		p.IRQ.Request(irq.HBlank)
	}
}

func (p *PPU) advanceLine() {
	p.inHBlank = false
	p.Reg.DISPSTAT.HBlank = false

	line := int(p.Reg.Line) + 1
	if line >= totalLines {
		line = 0
	}
	p.Reg.Line = uint16(line)

	switch line {
	case 0:
		p.Reg.DISPSTAT.VBlank = false
		p.frameStarted = false
	case visibleLines:
		p.Reg.DISPSTAT.VBlank = true
		for i := range p.Reg.Affine {
			p.Reg.Affine[i].LatchReferencePoint()
		}
		if p.Reg.DISPSTAT.VBlankIRQ {
			p.IRQ.Request(irq.VBlank)
		}
		p.Sink.PostFrame()
	case totalLines - 1:
		// DISPSTAT.VBlank clears one line before wraparound on real hardware.
		p.Reg.DISPSTAT.VBlank = false
	}

	matched := uint16(line) == uint16(p.Reg.DISPSTAT.VCountSetting)
	p.Reg.DISPSTAT.VCounterMatch = matched
	if matched && p.Reg.DISPSTAT.VCounterIRQ {
		p.IRQ.Request(irq.VCounterMatch)
	}
}

// renderLine runs the full per-line pipeline ( steps 1-7) for
// one visible scanline and hands the resolved row to the Sink.
func (p *PPU) renderLine(line int) {
	// PreFrame fires once per frame, immediately before line 0's DisplayLine.
	// frameStarted is seeded false both at construction and by the
	// line-227-to-0 wraparound above, so this covers the very first frame
	// after reset the same way it covers every later one.
	if line == 0 && !p.frameStarted {
		p.Sink.PreFrame()
		p.frameStarted = true
	}

	p.lineDirect = [240]uint16{}
	p.lineDirectValid = [240]bool{}

	if p.Reg.DISPCNT.ForcedBlank {
		var blank [240]uint16
		for i := range blank {
			blank[i] = 0x7FFF
		}
		p.Sink.DisplayLine(line, blank)
		return
	}

	bdFirst, bdSecond := blendFlagsFor(&p.Reg, LayerBackdrop)

	var cols [240]column
	for i := range cols {
		cols[i] = column{top: BackdropPixel(bdFirst, bdSecond)}
	}

	objScratch, objWindow := p.renderObjects(line)
	mask := computeWindowMask(&p.Reg, line, objWindow)

	switch p.Reg.DISPCNT.Mode {
	case 0:
		for bg := 0; bg < 4; bg++ {
			if p.Reg.DISPCNT.BGEnable[bg] {
				p.renderTextBG(bg, line, &cols, mask)
			}
		}
	case 1:
		if p.Reg.DISPCNT.BGEnable[0] {
			p.renderTextBG(0, line, &cols, mask)
		}
		if p.Reg.DISPCNT.BGEnable[1] {
			p.renderTextBG(1, line, &cols, mask)
		}
		if p.Reg.DISPCNT.BGEnable[2] {
			p.renderAffineBG(2, line, &cols, mask)
		}
	case 2:
		if p.Reg.DISPCNT.BGEnable[2] {
			p.renderAffineBG(2, line, &cols, mask)
		}
		if p.Reg.DISPCNT.BGEnable[3] {
			p.renderAffineBG(3, line, &cols, mask)
		}
	case 3, 4, 5:
		if p.Reg.DISPCNT.BGEnable[2] {
			p.renderBitmapBG(line, &cols, mask)
		}
	}

	objFirst, objSecond := blendFlagsFor(&p.Reg, LayerOBJ)
	for x := 0; x < 240; x++ {
		if !mask.content[x].OBJEnable {
			continue
		}
		op := objScratch[x]
		if !op.valid {
			continue
		}
		pixel := MakePixel(op.paletteIndex, LayerOBJ, op.semiTransparent, objFirst, objSecond, op.priority)
		cols[x].push(pixel)
	}

	var out [240]uint16
	for x := 0; x < 240; x++ {
		out[x] = p.resolveColumn(x, cols[x], mask.content[x].Effects)
	}
	p.Sink.DisplayLine(line, out)
}

func (p *PPU) colorFor(px Pixel, x int) uint16 {
	if px.Layer() == LayerBG2 && p.lineDirectValid[x] {
		return p.lineDirect[x]
	}
	if px.Layer() == LayerOBJ {
		return p.Palette.OBJ(px.PaletteIndex())
	}
	return p.Palette.BG(px.PaletteIndex())
}
