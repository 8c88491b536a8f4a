// Package video implements the GBA LCD pipeline: the HDRAW/HBLANK/VBLANK
// scanline state machine and the per-line background/object compositor that
// turns VRAM/OAM/palette state into a 240x160 frame.
//
// Grounded on original_source/pyrite-gba/src/lcd/{tile,blending}.rs for the
// compositing formulas, restructured around the explicit Pixel record and
// two-deep per-column stack defined below, and on video_interface.go for
// the VideoOutput-style collaborator boundary (see sink.go).
package video

// Layer identifies a pixel's source for priority and blend-selector lookups.
type Layer uint8

const (
	LayerBG0 Layer = iota
	LayerBG1
	LayerBG2
	LayerBG3
	LayerOBJ
	LayerBackdrop
)

// Pixel is the 16-bit composited-pixel record: palette index (bits 0-7),
// source layer (bits 8-10), semi-transparent-object flag (bit 11),
// first-target flag (bit 12), second-target flag (bit 13), priority
// (bits 14-15).
type Pixel uint16

func MakePixel(paletteIndex uint8, layer Layer, semiTransparent, firstTarget, secondTarget bool, priority uint8) Pixel {
	p := Pixel(paletteIndex) | Pixel(layer&7)<<8
	if semiTransparent {
		p |= 1 << 11
	}
	if firstTarget {
		p |= 1 << 12
	}
	if secondTarget {
		p |= 1 << 13
	}
	p |= Pixel(priority&3) << 14
	return p
}

func (p Pixel) PaletteIndex() uint8     { return uint8(p & 0xFF) }
func (p Pixel) Layer() Layer            { return Layer((p >> 8) & 7) }
func (p Pixel) SemiTransparent() bool   { return p&(1<<11) != 0 }
func (p Pixel) FirstTarget() bool       { return p&(1<<12) != 0 }
func (p Pixel) SecondTarget() bool      { return p&(1<<13) != 0 }
func (p Pixel) Priority() uint8         { return uint8((p >> 14) & 3) }

// BackdropPixel returns the initial composition-buffer value for a column:
// the backdrop color (BG palette entry 0), flagged per the blend-selection
// register's "Backdrop" bit, at the lowest priority.
func BackdropPixel(firstTarget, secondTarget bool) Pixel {
	return MakePixel(0, LayerBackdrop, false, firstTarget, secondTarget, 3)
}

// column is the two-deep (top, below-top) stack the per-line compositor
// builds, used to feed the blend stage.
type column struct {
	top, below Pixel
	hasBelow   bool
}

// push inserts a candidate pixel into the column, keeping the higher
// (layer, priority)-ranked of any two pixels on top. A pixel with a lower
// numeric priority value wins; among equal priorities OBJ beats BG.
func (col *column) push(p Pixel) {
	if !rankBeats(p, col.top) {
		if !col.hasBelow || rankBeats(p, col.below) {
			col.below = p
			col.hasBelow = true
		}
		return
	}
	col.below = col.top
	col.hasBelow = true
	col.top = p
}

// rankBeats reports whether a should be drawn in front of b.
func rankBeats(a, b Pixel) bool {
	if a.Priority() != b.Priority() {
		return a.Priority() < b.Priority()
	}
	aObj := a.Layer() == LayerOBJ
	bObj := b.Layer() == LayerOBJ
	if aObj != bObj {
		return aObj
	}
	return a.Layer() < b.Layer()
}
