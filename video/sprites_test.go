package video

import "testing"

func TestDecodeSpriteRejectsProhibitedShape(t *testing.T) {
	var oam OAM
	// shape=3 (prohibited) at bits 14-15 of attr0.
	oam[0] = uint16(3) << 14
	if _, ok := oam.DecodeSprite(0); ok {
		t.Fatalf("expected prohibited shape/size combination to report ok=false")
	}
}

func TestDecodeSpriteSignedCoordinates(t *testing.T) {
	var oam OAM
	// Y = 200 -> wraps to 200-256 = -56.
	oam[0] = 200
	// X = 300 -> wraps to 300-512 = -212.
	oam[1] = 300
	s, ok := oam.DecodeSprite(0)
	if !ok {
		t.Fatalf("expected a valid decode")
	}
	if s.Y != -56 {
		t.Errorf("Y = %d, want -56", s.Y)
	}
	if s.X != -212 {
		t.Errorf("X = %d, want -212", s.X)
	}
}

func TestDecodeSpriteAffineGroupVsFlipBits(t *testing.T) {
	var oam OAM
	oam[0] = 1 << 8 // affine bit set
	oam[1] = uint16(5) << 9
	s, ok := oam.DecodeSprite(0)
	if !ok {
		t.Fatalf("expected a valid decode")
	}
	if !s.Affine {
		t.Fatalf("expected Affine=true")
	}
	if s.AffineGroup != 5 {
		t.Errorf("AffineGroup = %d, want 5", s.AffineGroup)
	}
}

func TestAffineParamReadsFourthHalfwordPerGroupEntry(t *testing.T) {
	var oam OAM
	// Group 0 occupies OAM entries 0-3; the affine coefficients live in
	// the fourth halfword (index 3) of each entry.
	oam[0*4+3] = 0xFF9C // int16(-100)
	oam[1*4+3] = uint16(int16(200))
	oam[2*4+3] = 0xFED4 // int16(-300)
	oam[3*4+3] = uint16(int16(256))

	a, b, c, d := oam.AffineParam(0)
	if a != -100 || b != 200 || c != -300 || d != 256 {
		t.Fatalf("AffineParam(0) = (%d,%d,%d,%d), want (-100,200,-300,256)", a, b, c, d)
	}
}

func TestRenderObjectsSkipsDisabledNonAffineSprite(t *testing.T) {
	p, _ := newTestPPU()
	p.Reg.DISPCNT.OBJEnable = true

	var oam OAM
	oam[0] = 1 << 9 // non-affine, disabled bit set
	oam[1] = 0
	oam[2] = 0 // tile 0, priority 0
	p.OAM = oam

	scratch, _ := p.renderObjects(0)
	for x, px := range scratch {
		if px.valid {
			t.Fatalf("column %d: disabled sprite should not draw", x)
		}
	}
}

func TestRenderObjectsRespectsPriorityOrdering(t *testing.T) {
	p, _ := newTestPPU()
	p.Reg.DISPCNT.OBJEnable = true
	p.Reg.DISPCNT.OBJ1D = true

	// Give both sprites the same 8x8 tile with every pixel set to palette
	// index 1 via 4bpp tile data, tile 0.
	for row := 0; row < 8; row++ {
		for b := 0; b < 4; b++ {
			p.VRAM[0x10000+row*4+b] = 0x11
		}
	}

	var oam OAM
	// Sprite 0: X=0,Y=0, priority 2, non-affine, 8x8, enabled.
	oam[0] = 0          // Y=0, shape=0 (square)
	oam[1] = 0          // X=0, size=0 (8x8)
	oam[2] = uint16(2) << 10 // tile=0, priority=2

	// Sprite 1 (entry 1, higher OAM index): same position, priority 0
	// (higher priority = drawn on top).
	oam[4+0] = 0
	oam[4+1] = 0
	oam[4+2] = uint16(0) << 10

	p.OAM = oam

	scratch, _ := p.renderObjects(0)
	if !scratch[0].valid {
		t.Fatalf("expected a sprite pixel at column 0")
	}
	if scratch[0].priority != 0 {
		t.Errorf("priority = %d, want 0 (sprite 1 should win)", scratch[0].priority)
	}
}
