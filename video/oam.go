// oam.go - Object Attribute Memory decoding: 128 sprite attribute entries
// plus 32 affine parameter groups.
package video

// OAM is the raw 1KB Object Attribute Memory region: 128 eight-byte entries,
// each four 16-bit halfwords (attr0, attr1, attr2, and an affine-parameter
// slot shared across groups of four entries).
type OAM [128 * 4]uint16

func (o *OAM) entry(n int) (attr0, attr1, attr2 uint16) {
	base := n * 4
	return o[base], o[base+1], o[base+2]
}

// Load16/Store16 implement OAM's byte-addressed memory view: offset is a
// byte offset into the 1KB region, always accessed halfword-wise.
func (o *OAM) Load16(offset uint32) uint16 {
	return o[(offset>>1)&0x1FF]
}

func (o *OAM) Store16(offset uint32, v uint16) {
	o[(offset>>1)&0x1FF] = v
}

// AffineParam returns the (a, b, c, d) 8.8 fixed-point matrix for affine
// group index (0-31): group g's four coefficients live in the fourth
// halfword of OAM entries 4g..4g+3.
func (o *OAM) AffineParam(group int) (a, b, c, d int16) {
	base := group * 4
	a = int16(o[base*4+3])
	b = int16(o[(base+1)*4+3])
	c = int16(o[(base+2)*4+3])
	d = int16(o[(base+3)*4+3])
	return
}

// Sprite is a decoded OAM entry, ready for the per-scanline renderer.
type Sprite struct {
	Y, X             int
	Affine           bool
	DoubleSize       bool
	Disabled         bool
	Mode             uint8 // 0 normal, 1 semi-transparent, 2 OBJ-window
	Mosaic           bool
	Palette256       bool
	Width, Height    int
	AffineGroup      int
	FlipH, FlipV     bool
	TileNumber       int
	Priority         uint8
	PaletteBank      uint8
}

var spriteSizeTable = [4][4][2]int{
	{{8, 8}, {16, 16}, {32, 32}, {64, 64}},   // square
	{{16, 8}, {32, 8}, {32, 16}, {64, 32}},   // horizontal
	{{8, 16}, {8, 32}, {16, 32}, {32, 64}},   // vertical
	{{0, 0}, {0, 0}, {0, 0}, {0, 0}},         // prohibited
}

// DecodeSprite unpacks OAM entry n. ok is false for the "prohibited" shape
// encoding, which hardware treats as undefined.
func (o *OAM) DecodeSprite(n int) (s Sprite, ok bool) {
	attr0, attr1, attr2 := o.entry(n)

	s.Y = int(attr0 & 0xFF)
	if s.Y >= 160 {
		s.Y -= 256
	}
	s.Affine = attr0&(1<<8) != 0
	if s.Affine {
		s.DoubleSize = attr0&(1<<9) != 0
	} else {
		s.Disabled = attr0&(1<<9) != 0
	}
	s.Mode = uint8((attr0 >> 10) & 3)
	s.Mosaic = attr0&(1<<12) != 0
	s.Palette256 = attr0&(1<<13) != 0
	shape := uint8((attr0 >> 14) & 3)

	s.X = int(attr1 & 0x1FF)
	if s.X >= 256 {
		s.X -= 512
	}
	if s.Affine {
		s.AffineGroup = int((attr1 >> 9) & 0x1F)
	} else {
		s.FlipH = attr1&(1<<12) != 0
		s.FlipV = attr1&(1<<13) != 0
	}
	size := uint8((attr1 >> 14) & 3)

	dims := spriteSizeTable[shape][size]
	if shape == 3 {
		return Sprite{}, false
	}
	s.Width, s.Height = dims[0], dims[1]

	s.TileNumber = int(attr2 & 0x3FF)
	s.Priority = uint8((attr2 >> 10) & 3)
	s.PaletteBank = uint8((attr2 >> 12) & 0xF)
	return s, true
}
