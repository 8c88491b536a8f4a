// vram.go - VRAM layout helpers: character (tile) data, text screen blocks,
// affine screen blocks, and the bitmap-mode framebuffers.
package video

// VRAM is the raw 96KB video memory region.
type VRAM [0x18000]byte

const (
	charBlockSize   = 0x4000 // 16KB
	screenBlockSize = 0x800  // 2KB
)

// TilePixel4bpp samples one pixel of a 4bpp (16-color) tile. charBase is the
// BG control's CharBaseBlock (0-3); tileIndex is the tile number; px,py are
// 0-7 within the tile.
func (v *VRAM) TilePixel4bpp(charBase int, tileIndex, px, py int) uint8 {
	addr := charBase*charBlockSize + tileIndex*32 + py*4 + px/2
	if addr < 0 || addr >= len(v) {
		return 0
	}
	b := v[addr]
	if px&1 == 0 {
		return b & 0xF
	}
	return b >> 4
}

// TilePixel8bpp samples one pixel of an 8bpp (256-color) tile.
func (v *VRAM) TilePixel8bpp(charBase int, tileIndex, px, py int) uint8 {
	addr := charBase*charBlockSize + tileIndex*64 + py*8 + px
	if addr < 0 || addr >= len(v) {
		return 0
	}
	return v[addr]
}

// TextScreenEntry reads one text-BG screen-block tile-map entry: tile
// number (0-1023), horizontal/vertical flip, and 4bpp palette bank.
func (v *VRAM) TextScreenEntry(screenBase, tileX, tileY int) (tileNum int, flipH, flipV bool, palBank uint8) {
	quadrantX, quadrantY := tileX/32, tileY/32
	localX, localY := tileX%32, tileY%32

	block := screenBase
	switch {
	case quadrantX == 0 && quadrantY == 0:
	case quadrantX == 1 && quadrantY == 0:
		block++
	case quadrantX == 0 && quadrantY == 1:
		block++
	default:
		block += 2
		if quadrantX == 1 {
			block++
		}
	}

	addr := block*screenBlockSize + (localY*32+localX)*2
	if addr < 0 || addr+1 >= len(v) {
		return 0, false, false, 0
	}
	entry := uint16(v[addr]) | uint16(v[addr+1])<<8
	return int(entry & 0x3FF), entry&(1<<10) != 0, entry&(1<<11) != 0, uint8((entry >> 12) & 0xF)
}

// AffineScreenTile reads one affine-BG screen-block entry: a single byte
// tile number (0-255), addressed directly since affine maps have no flip
// bits and always use 8bpp tiles.
func (v *VRAM) AffineScreenTile(screenBase, tileX, tileY, sizeTiles int) int {
	addr := screenBase*screenBlockSize + tileY*sizeTiles + tileX
	if addr < 0 || addr >= len(v) {
		return 0
	}
	return int(v[addr])
}

// BitmapPixel16 reads a direct-color pixel from the start of VRAM (mode 3;
// renderBitmapBG reads mode 5's double-buffered frames itself).
func (v *VRAM) BitmapPixel16(stride, x, y int) uint16 {
	addr := (y*stride + x) * 2
	if addr < 0 || addr+1 >= len(v) {
		return 0
	}
	return uint16(v[addr]) | uint16(v[addr+1])<<8
}

// BitmapPixel8 reads a paletted pixel (mode 4), frameOffset selects the
// active DISPCNT frame buffer (0 or 0xA000).
func (v *VRAM) BitmapPixel8(frameOffset, stride, x, y int) uint8 {
	addr := frameOffset + y*stride + x
	if addr < 0 || addr >= len(v) {
		return 0
	}
	return v[addr]
}
