package video

import (
	"testing"

	"github.com/fennecforge/gbacore/irq"
)

// recordingSink counts callback invocations and stashes the last line's
// pixels, for checking per-line callback ordering and content.
type recordingSink struct {
	preFrames, postFrames int
	lineCalls             [160]int
	lastPixels            map[int][240]uint16
}

func newRecordingSink() *recordingSink {
	return &recordingSink{lastPixels: map[int][240]uint16{}}
}

func (s *recordingSink) PreFrame()  { s.preFrames++ }
func (s *recordingSink) PostFrame() { s.postFrames++ }
func (s *recordingSink) DisplayLine(line int, pixels [240]uint16) {
	if line >= 0 && line < 160 {
		s.lineCalls[line]++
	}
	s.lastPixels[line] = pixels
}

func newTestPPU() (*PPU, *recordingSink) {
	ic := irq.NewController()
	sink := newRecordingSink()
	return NewPPU(ic, sink), sink
}

func stepFullFrame(p *PPU) {
	const cyclesPerFrame = (960 + 272) * 228
	p.Step(cyclesPerFrame)
}

// S5 - Mode 3 pixel: VRAM halfword 0x7C1F (R=31,G=0,B=31) renders as
// 0xFC1F at column 0; backdrop everywhere else.
func TestScenario_S5_Mode3Pixel(t *testing.T) {
	p, sink := newTestPPU()
	p.Reg.DISPCNT.Mode = 3
	p.Reg.DISPCNT.BGEnable[2] = true
	p.VRAM[0] = 0x1F
	p.VRAM[1] = 0x7C

	stepFullFrame(p)

	px := sink.lastPixels[0]
	if px[0] != 0xFC1F {
		t.Fatalf("pixel[0] = %#04x, want 0xFC1F", px[0])
	}
	backdrop := p.Palette.BG(0) | 0x8000
	for i := 1; i < 240; i++ {
		if px[i] != backdrop {
			t.Fatalf("pixel[%d] = %#04x, want backdrop %#04x", i, px[i], backdrop)
			break
		}
	}
}

// S6 - alpha blend: first-target (16,16,16) over second-target (8,8,8),
// eva=8, evb=8 => min(31, 8+4) = 12 per channel.
func TestScenario_S6_AlphaBlend(t *testing.T) {
	p, _ := newTestPPU()
	p.Reg.Blend.Effect = BlendAlpha
	p.Reg.Blend.EVA = 8
	p.Reg.Blend.EVB = 8
	p.Palette.SetBG(1, packRGB555(16, 16, 16))
	p.Palette.SetBG(2, packRGB555(8, 8, 8))

	top := MakePixel(1, LayerBG0, false, true, false, 0)
	bot := MakePixel(2, LayerBG1, false, false, true, 1)
	col := column{top: top, below: bot, hasBelow: true}

	result := p.resolveColumn(0, col, true)
	r, g, b := rgbChannels(result &^ 0x8000)
	if r != 12 || g != 12 || b != 12 {
		t.Fatalf("blend = (%d,%d,%d), want (12,12,12)", r, g, b)
	}
	if result&0x8000 == 0 {
		t.Errorf("blended pixel should have opaque bit set")
	}
}

// Invariant 9: alpha blend with eva+evb >= 16 never exceeds 31 per channel.
func TestInvariant_AlphaBlendNeverOverflows(t *testing.T) {
	p, _ := newTestPPU()
	p.Palette.SetBG(1, packRGB555(31, 31, 31))
	p.Palette.SetBG(2, packRGB555(31, 31, 31))
	p.Reg.Blend.Effect = BlendAlpha
	p.Reg.Blend.EVA = 16
	p.Reg.Blend.EVB = 16

	top := MakePixel(1, LayerBG0, false, true, false, 0)
	bot := MakePixel(2, LayerBG1, false, false, true, 1)
	col := column{top: top, below: bot, hasBelow: true}
	result := p.resolveColumn(0, col, true)
	r, g, b := rgbChannels(result &^ 0x8000)
	if r > 31 || g > 31 || b > 31 {
		t.Fatalf("channel overflow: (%d,%d,%d)", r, g, b)
	}
}

// A semi-transparent OBJ pixel with no qualifying second target beneath it
// must fall back to its own plain color, never to some other globally
// configured effect (brightness here) that BLDCNT names.
func TestSemiTransparentOBJWithoutSecondTargetFallsBackToPlainColor(t *testing.T) {
	p, _ := newTestPPU()
	p.Reg.Blend.Effect = BlendBrightnessDec
	p.Reg.Blend.EVY = 16
	p.Palette.SetOBJ(1, packRGB555(20, 20, 20))
	p.Palette.SetBG(2, packRGB555(5, 5, 5))

	top := MakePixel(1, LayerOBJ, true /* semi-transparent */, true, false, 0)
	// Below pixel exists but is not flagged as a second target, so the
	// semi-transparent OBJ has nothing valid to blend with.
	bot := MakePixel(2, LayerBG1, false, false, false, 1)
	col := column{top: top, below: bot, hasBelow: true}

	result := p.resolveColumn(0, col, true)
	r, g, b := rgbChannels(result &^ 0x8000)
	if r != 20 || g != 20 || b != 20 {
		t.Fatalf("color = (%d,%d,%d), want plain OBJ color (20,20,20) unaffected by the configured brightness effect", r, g, b)
	}
}

// Invariant 7 on the very first frame after construction: PreFrame must
// fire before the first DisplayLine(0,...), not only on later frames
// reached through the line-227-to-0 wraparound.
func TestFirstFramePreFrameFiresBeforeFirstDisplayLine(t *testing.T) {
	p, sink := newTestPPU()

	p.Step(cyclesHDraw) // reach line 0's HBlank, where line 0 renders

	if sink.preFrames != 1 {
		t.Fatalf("PreFrame called %d times before first DisplayLine, want 1", sink.preFrames)
	}
	if sink.lineCalls[0] != 1 {
		t.Fatalf("DisplayLine(0,...) called %d times, want 1", sink.lineCalls[0])
	}
}

// Invariant 7: each visible line fires DisplayLine exactly once per frame,
// and PreFrame/PostFrame bracket the frame exactly once.
func TestInvariant_PerLineCallbackCounts(t *testing.T) {
	p, sink := newTestPPU()
	stepFullFrame(p)

	for line := 0; line < 160; line++ {
		if sink.lineCalls[line] != 1 {
			t.Errorf("line %d: DisplayLine called %d times, want 1", line, sink.lineCalls[line])
		}
	}
	if sink.preFrames != 1 {
		t.Errorf("PreFrame called %d times, want 1", sink.preFrames)
	}
	if sink.postFrames != 1 {
		t.Errorf("PostFrame called %d times, want 1", sink.postFrames)
	}
}

// Invariant 10: VBlank flag tracks line >= 160, HBlank tracks HBLANK phase.
func TestInvariant_VBlankHBlankFlags(t *testing.T) {
	p, _ := newTestPPU()
	if p.Reg.DISPSTAT.VBlank {
		t.Fatalf("VBlank should be clear at line 0")
	}
	// Step through line 0's HDRAW, entering HBlank.
	p.Step(960)
	if !p.Reg.DISPSTAT.HBlank {
		t.Errorf("HBlank should be set once HDRAW elapses")
	}
	// Finish line 0's HBlank, reaching line 1.
	p.Step(272)
	if int(p.Reg.Line) != 1 {
		t.Fatalf("expected line 1, got %d", p.Reg.Line)
	}

	// Fast-forward to line 160 boundary.
	for int(p.Reg.Line) < 160 {
		p.Step(960 + 272)
	}
	if !p.Reg.DISPSTAT.VBlank {
		t.Errorf("VBlank should be set at line 160")
	}
}

func TestWindowMaskDefaultsToAllEnabled(t *testing.T) {
	reg := &Registers{}
	mask := computeWindowMask(reg, 0, [240]bool{})
	if mask.enabled {
		t.Errorf("no windows configured: mask should report disabled")
	}
	if !mask.content[0].BGEnable[0] || !mask.content[0].Effects {
		t.Errorf("default mask should allow every layer and effects")
	}
}

func TestWindowGarbageBoundsClampToScreen(t *testing.T) {
	w := Window{Left: 0, Top: 0, Right: 255, Bottom: 255}
	if !w.Contains(239, 159) {
		t.Errorf("garbage right/bottom should clamp to 240/160")
	}
	if w.Contains(240, 0) {
		t.Errorf("column 240 is out of the clamped window")
	}
}

func TestWindowHorizontalWraparound(t *testing.T) {
	w := Window{Left: 200, Top: 0, Right: 40, Bottom: 160}
	if !w.Contains(220, 0) {
		t.Errorf("L > R should wrap: column 220 should be inside")
	}
	if !w.Contains(10, 0) {
		t.Errorf("L > R should wrap: column 10 should be inside")
	}
	if w.Contains(100, 0) {
		t.Errorf("column 100 should be outside the wrapped window")
	}
}
