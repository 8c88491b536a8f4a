// sprites.go - OAM traversal and per-scanline object rendering
package video

// objPixel is one column's resolved sprite contribution before it's folded
// into the shared column stack.
type objPixel struct {
	valid           bool
	paletteIndex    uint8
	priority        uint8
	semiTransparent bool
}

// renderObjects traverses OAM in priority order (grouped by the 2-bit
// priority field, lower OAM index first within a group), rate-limited by a
// per-scanline cycle budget; sprites beyond the budget are dropped.
// objWindow[x] is set wherever a Mode==2 (OBJ-window) sprite is opaque.
func (p *PPU) renderObjects(line int) (scratch [240]objPixel, objWindow [240]bool) {
	if !p.Reg.DISPCNT.OBJEnable {
		return
	}

	budget := 1210
	if p.Reg.DISPSTAT.HBlank {
		budget = 954
	}

	for priority := uint8(0); priority < 4; priority++ {
		for n := 0; n < 128; n++ {
			if budget <= 0 {
				return
			}
			sprite, ok := p.OAM.DecodeSprite(n)
			if !ok || sprite.Priority != priority {
				continue
			}
			if !sprite.Affine && sprite.Disabled {
				continue
			}

			spent := p.drawSprite(sprite, line, &scratch, &objWindow)
			budget -= spent
		}
	}
	return
}

// drawSprite rasterizes one sprite's contribution to this scanline and
// returns the cycle cost it consumed from the per-line OBJ budget.
func (p *PPU) drawSprite(s Sprite, line int, scratch *[240]objPixel, objWindow *[240]bool) int {
	boundW, boundH := s.Width, s.Height
	if s.Affine && s.DoubleSize {
		boundW *= 2
		boundH *= 2
	}

	screenY := s.Y
	if line < screenY || line >= screenY+boundH {
		return 0
	}

	spent := 0
	a, b, c, d := int16(256), int16(0), int16(0), int16(256) // identity
	if s.Affine {
		a, b, c, d = p.OAM.AffineParam(s.AffineGroup)
	}

	centerX, centerY := boundW/2, boundH/2
	texCenterX, texCenterY := s.Width/2, s.Height/2

	mosaicLine := line
	if s.Mosaic {
		mosaicLine = mosaicFloor(line, p.Reg.Mosaic.OBJVSize)
	}
	rowInBox := mosaicLine - screenY - centerY

	for col := 0; col < boundW; col++ {
		spent++
		screenX := s.X + col
		if screenX < 0 || screenX >= 240 {
			continue
		}

		mosaicX := screenX
		if s.Mosaic {
			mosaicX = mosaicFloor(screenX, p.Reg.Mosaic.OBJHSize)
		}
		colInBox := mosaicX - s.X - centerX
		var texX, texY int
		if s.Affine {
			texX = texCenterX + (int(a)*colInBox+int(b)*rowInBox)>>8
			texY = texCenterY + (int(c)*colInBox+int(d)*rowInBox)>>8
		} else {
			texX, texY = colInBox+texCenterX, rowInBox+texCenterY
			if s.FlipH {
				texX = s.Width - 1 - texX
			}
			if s.FlipV {
				texY = s.Height - 1 - texY
			}
		}
		if texX < 0 || texX >= s.Width || texY < 0 || texY >= s.Height {
			continue
		}

		paletteIndex := p.sampleObjTile(s, texX, texY)
		if paletteIndex == 0 {
			continue
		}

		if s.Mode == 2 {
			objWindow[screenX] = true
			continue
		}

		cur := scratch[screenX]
		if cur.valid && cur.priority <= s.Priority {
			continue
		}
		scratch[screenX] = objPixel{
			valid:           true,
			paletteIndex:    paletteIndex,
			priority:        s.Priority,
			semiTransparent: s.Mode == 1,
		}
	}
	return spent
}

// sampleObjTile samples OBJ tile data in either 1D or 2D VRAM mapping.
func (p *PPU) sampleObjTile(s Sprite, texX, texY int) uint8 {
	tileX, tileY := texX/8, texY/8
	px, py := texX%8, texY%8
	tilesWide := s.Width / 8
	const objCharBase = 4 // object tiles start at char block 4 (0x10000)

	var tileIndex int
	if p.Reg.DISPCNT.OBJ1D {
		rowTiles := tilesWide
		if s.Palette256 {
			tileIndex = s.TileNumber + (tileY*rowTiles+tileX)*2
		} else {
			tileIndex = s.TileNumber + tileY*rowTiles + tileX
		}
	} else {
		const mapWidthTiles = 32
		if s.Palette256 {
			tileIndex = s.TileNumber + tileY*mapWidthTiles + tileX*2
		} else {
			tileIndex = s.TileNumber + tileY*mapWidthTiles + tileX
		}
	}

	if s.Palette256 {
		return p.VRAM.TilePixel8bpp(objCharBase, tileIndex, px, py)
	}
	idx4 := p.VRAM.TilePixel4bpp(objCharBase, tileIndex, px, py)
	if idx4 == 0 {
		return 0
	}
	return s.PaletteBank*16 + idx4
}
