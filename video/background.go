// background.go - text, affine, and bitmap background rendering.
//
// Grounded on original_source/pyrite-gba/src/lcd/tile.rs's render_mode0 for
// the text-BG structure (priority-ordered, screen-quadrant lookup, 4bpp/8bpp
// tile sampling); render_mode1/render_mode2 are empty stubs there (and
// map_tiles_to_screen is a literal todo!()), so the affine path here is
// written fresh from the GBA architecture reference.
package video

func blendFlagsFor(reg *Registers, layer Layer) (first, second bool) {
	return reg.Blend.FirstTarget[layer], reg.Blend.SecondTarget[layer]
}

// renderTextBG draws one text-mode background (BG0-BG3 in mode 0, BG0/BG1
// in mode 1) into the line's column stack.
func (p *PPU) renderTextBG(bgIndex int, line int, cols *[240]column, mask lineWindowMask) {
	ctrl := p.Reg.BG[bgIndex]
	scroll := p.Reg.Scroll[bgIndex]
	layer := Layer(bgIndex)
	first, second := blendFlagsFor(&p.Reg, layer)

	tilesW, tilesH := ctrl.TextSizeTiles()
	pixelsW, pixelsH := tilesW*8, tilesH*8

	y := line
	if ctrl.Mosaic {
		y = mosaicFloor(line, p.Reg.Mosaic.BGVSize)
	}
	worldY := (y + int(scroll.Y)) % pixelsH
	if worldY < 0 {
		worldY += pixelsH
	}

	for x := 0; x < 240; x++ {
		if !mask.content[x].BGEnable[bgIndex] {
			continue
		}
		ex := x
		if ctrl.Mosaic {
			ex = mosaicFloor(x, p.Reg.Mosaic.BGHSize)
		}
		worldX := (ex + int(scroll.X)) % pixelsW
		if worldX < 0 {
			worldX += pixelsW
		}

		tileX, tileY := worldX/8, worldY/8
		px, py := worldX%8, worldY%8
		tileNum, flipH, flipV, palBank := p.VRAM.TextScreenEntry(int(ctrl.ScreenBaseBlock), tileX, tileY)
		if flipH {
			px = 7 - px
		}
		if flipV {
			py = 7 - py
		}

		var paletteIndex uint8
		if ctrl.Palette256 {
			paletteIndex = p.VRAM.TilePixel8bpp(int(ctrl.CharBaseBlock), tileNum, px, py)
			if paletteIndex == 0 {
				continue
			}
		} else {
			idx4 := p.VRAM.TilePixel4bpp(int(ctrl.CharBaseBlock), tileNum, px, py)
			if idx4 == 0 {
				continue
			}
			paletteIndex = palBank*16 + idx4
		}

		pixel := MakePixel(paletteIndex, layer, false, first, second, ctrl.Priority)
		cols[x].push(pixel)
	}
}

// renderAffineBG draws an affine background (BG2 or BG3 in modes 1/2),
// sampling via the internal fixed-point accumulators and advancing them by
// (b, d) once the line is done.
func (p *PPU) renderAffineBG(bgIndex int, line int, cols *[240]column, mask lineWindowMask) {
	affineSlot := bgIndex - 2
	ap := &p.Reg.Affine[affineSlot]
	ctrl := p.Reg.BG[bgIndex]
	layer := Layer(bgIndex)
	first, second := blendFlagsFor(&p.Reg, layer)

	sizeTiles := ctrl.AffineSizeTiles()
	sizePixels := sizeTiles * 8

	baseX, baseY := ap.internalX, ap.internalY
	a32, c32 := int32(ap.A), int32(ap.C)

	for x := 0; x < 240; x++ {
		if !mask.content[x].BGEnable[bgIndex] {
			continue
		}
		worldX := int((baseX + int32(x)*a32) >> 8)
		worldY := int((baseY + int32(x)*c32) >> 8)

		if ctrl.Wraparound {
			worldX = ((worldX % sizePixels) + sizePixels) % sizePixels
			worldY = ((worldY % sizePixels) + sizePixels) % sizePixels
		} else if worldX < 0 || worldX >= sizePixels || worldY < 0 || worldY >= sizePixels {
			continue
		}

		tileX, tileY := worldX/8, worldY/8
		px, py := worldX%8, worldY%8
		tileNum := p.VRAM.AffineScreenTile(int(ctrl.ScreenBaseBlock), tileX, tileY, sizeTiles)
		paletteIndex := p.VRAM.TilePixel8bpp(int(ctrl.CharBaseBlock), tileNum, px, py)
		if paletteIndex == 0 {
			continue
		}

		pixel := MakePixel(paletteIndex, layer, false, first, second, ctrl.Priority)
		cols[x].push(pixel)
	}

	ap.internalX += int32(ap.B)
	ap.internalY += int32(ap.D)
}

// renderBitmapBG draws the single BG2 bitmap layer for modes 3, 4, and 5.
// Modes 3 and 5 store the resolved direct color in the line's direct-color
// side buffer, since their pixels bypass the palette; mode 4 pushes
// palette-indexed pixels like the tiled layers.
func (p *PPU) renderBitmapBG(line int, cols *[240]column, mask lineWindowMask) {
	ctrl := p.Reg.BG[2]
	layer := LayerBG2
	first, second := blendFlagsFor(&p.Reg, layer)

	switch p.Reg.DISPCNT.Mode {
	case 3:
		for x := 0; x < 240; x++ {
			if !mask.content[x].BGEnable[2] {
				continue
			}
			color := p.VRAM.BitmapPixel16(240, x, line)
			p.pushDirect(cols, x, color, layer, first, second, ctrl.Priority)
		}
	case 4:
		frameOffset := 0
		if p.Reg.DISPCNT.FrameSelect == 1 {
			frameOffset = 0xA000
		}
		for x := 0; x < 240; x++ {
			if !mask.content[x].BGEnable[2] {
				continue
			}
			idx := p.VRAM.BitmapPixel8(frameOffset, 240, x, line)
			if idx == 0 {
				continue
			}
			pixel := MakePixel(idx, layer, false, first, second, ctrl.Priority)
			cols[x].push(pixel)
		}
	case 5:
		if line >= 128 {
			return
		}
		frameOffset := 0
		if p.Reg.DISPCNT.FrameSelect == 1 {
			frameOffset = 0xA000
		}
		for x := 0; x < 160; x++ {
			if !mask.content[x].BGEnable[2] {
				continue
			}
			addr := frameOffset + (line*160+x)*2
			var color uint16
			if addr+1 < len(p.VRAM) {
				color = uint16(p.VRAM[addr]) | uint16(p.VRAM[addr+1])<<8
			}
			p.pushDirect(cols, x, color, layer, first, second, ctrl.Priority)
		}
	}
}

// pushDirect records a direct-color (non-palette) pixel: it pushes a
// placeholder Pixel onto the column for priority/blend bookkeeping and
// stashes the resolved RGB555 in the line's direct-color side buffer for
// the mix stage to prefer over a palette lookup.
func (p *PPU) pushDirect(cols *[240]column, x int, color uint16, layer Layer, first, second bool, priority uint8) {
	pixel := MakePixel(0, layer, false, first, second, priority)
	cols[x].push(pixel)
	p.lineDirect[x] = color
	p.lineDirectValid[x] = true
}
