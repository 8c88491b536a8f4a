// regs.go - LCD I/O register state.
package video

// DisplayControl is DISPCNT.
type DisplayControl struct {
	Mode          uint8 // 0-5
	FrameSelect   uint8 // 0 or 1, modes 4/5 double buffering
	OBJ1D         bool  // true = 1D OBJ character mapping, false = 2D
	ForcedBlank   bool
	BGEnable      [4]bool
	OBJEnable     bool
	Win0Enable    bool
	Win1Enable    bool
	WinOBJEnable  bool
}

// DisplayStatus is DISPSTAT.
type DisplayStatus struct {
	VBlank        bool
	HBlank        bool
	VCounterMatch bool
	VBlankIRQ     bool
	HBlankIRQ     bool
	VCounterIRQ   bool
	VCountSetting uint8
}

// BGControl is one of BG0CNT..BG3CNT.
type BGControl struct {
	Priority       uint8
	CharBaseBlock  uint8 // 0-3, each 16KB
	Mosaic         bool
	Palette256     bool // false = 16/16, true = 256/1
	ScreenBaseBlock uint8 // 0-31, each 2KB
	Wraparound     bool // affine BGs only
	ScreenSize     uint8 // 0-3, meaning depends on text vs affine
}

// TextSizeTiles returns the (width, height) of the BG in tiles for a text
// (mode 0/1/2 non-affine) background, per ScreenSize 0-3.
func (c BGControl) TextSizeTiles() (w, h int) {
	switch c.ScreenSize {
	case 0:
		return 32, 32
	case 1:
		return 64, 32
	case 2:
		return 32, 64
	default:
		return 64, 64
	}
}

// AffineSizeTiles returns the side length in tiles of an affine BG, which
// is always square.
func (c BGControl) AffineSizeTiles() int {
	switch c.ScreenSize {
	case 0:
		return 16
	case 1:
		return 32
	case 2:
		return 64
	default:
		return 128
	}
}

// BGScroll is one BGxHOFS/BGxVOFS pair (9-bit wrapping text-BG scroll).
type BGScroll struct {
	X, Y uint16
}

// AffineParams is one affine-BG parameter block: the 2x2 matrix in 8.8
// fixed point, and the 20.8 fixed-point reference point with its own
// internal running copy (the internal (x,y) fixed-point accumulators).
type AffineParams struct {
	A, B, C, D int16 // 8.8 fixed point
	RefX, RefY int32 // 20.8 fixed point, external (CPU-written) value
	internalX, internalY int32
}

// LatchReferencePoint copies the external reference point into the
// internal running accumulator; called at VBLANK entry and whenever the
// CPU writes the reference-point registers.
func (a *AffineParams) LatchReferencePoint() {
	a.internalX = a.RefX
	a.internalY = a.RefY
}

// Window is one bounding box (Window0/Window1).
type Window struct {
	Left, Top, Right, Bottom uint16
}

// Contains reports whether column x, scanline y falls inside the window,
// applying the hardware's garbage-value clamping and wraparound conventions.
func (w Window) Contains(x, y int) bool {
	right := int(w.Right)
	if right > 240 {
		right = 240
	}
	bottom := int(w.Bottom)
	if bottom > 160 || bottom < int(w.Top) {
		bottom = 160
	}
	left := int(w.Left)
	top := int(w.Top)

	var inX bool
	if left > right {
		inX = x >= left || x < right
	} else {
		inX = x >= left && x < right
	}
	var inY bool
	if top > bottom {
		inY = y >= top || y < bottom
	} else {
		inY = y >= top && y < bottom
	}
	return inX && inY
}

// WindowContent is the per-window layer/effect enable bits (WININ/WINOUT).
type WindowContent struct {
	BGEnable  [4]bool
	OBJEnable bool
	Effects   bool
}

// BlendEffect selects the special-effect mode (BLDCNT bits 6-7).
type BlendEffect uint8

const (
	BlendNone BlendEffect = iota
	BlendAlpha
	BlendBrightnessInc
	BlendBrightnessDec
)

// BlendControl is BLDCNT/BLDALPHA/BLDY.
type BlendControl struct {
	FirstTarget  [6]bool // indexed by Layer (BG0..BG3, OBJ, Backdrop)
	SecondTarget [6]bool
	Effect       BlendEffect
	EVA, EVB, EVY uint8 // 0-16, clamped
}

// Mosaic is the MOSAIC register: BG and OBJ grid sizes (1-16 each axis).
type Mosaic struct {
	BGHSize, BGVSize   uint8
	OBJHSize, OBJVSize uint8
}

// mosaicFloor rounds coordinate down to the nearest multiple of size
// (size 0 meaning "no effect", matching the register's "+1" encoding
// already applied by the caller).
func mosaicFloor(coord int, size uint8) int {
	if size <= 1 {
		return coord
	}
	s := int(size)
	return (coord / s) * s
}

// Registers bundles every LCD register the CPU side can write between
// lines; the renderer only ever reads from it.
type Registers struct {
	Line    uint16
	DISPCNT DisplayControl
	DISPSTAT DisplayStatus

	BG     [4]BGControl
	Scroll [4]BGScroll

	Affine [2]AffineParams // BG2, BG3

	Win        [2]Window
	WinIn      [2]WindowContent
	WinOut     WindowContent
	WinObjContent WindowContent

	Mosaic Mosaic
	Blend  BlendControl
}
