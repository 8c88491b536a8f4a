// io.go - the 0x04000000-0x040003FF I/O register window: LCD, keypad, and
// interrupt-controller registers.
//
// Grounded on registers.go's named-offset register table approach, adapted
// from a multi-system emulator's audio/video chip register set to the
// GBA's fixed I/O map.
package console

import "github.com/fennecforge/gbacore/video"

const (
	regDISPCNT  = 0x000
	regDISPSTAT = 0x004
	regVCOUNT   = 0x006
	regBG0CNT   = 0x008
	regBG1CNT   = 0x00A
	regBG2CNT   = 0x00C
	regBG3CNT   = 0x00E
	regBG0HOFS  = 0x010
	regBG0VOFS  = 0x012
	regBG1HOFS  = 0x014
	regBG1VOFS  = 0x016
	regBG2HOFS  = 0x018
	regBG2VOFS  = 0x01A
	regBG3HOFS  = 0x01C
	regBG3VOFS  = 0x01E
	regBG2PA    = 0x020
	regBG2PB    = 0x022
	regBG2PC    = 0x024
	regBG2PD    = 0x026
	regBG2X     = 0x028
	regBG2Y     = 0x02C
	regBG3PA    = 0x030
	regBG3PB    = 0x032
	regBG3PC    = 0x034
	regBG3PD    = 0x036
	regBG3X     = 0x038
	regBG3Y     = 0x03C
	regWIN0H    = 0x040
	regWIN1H    = 0x042
	regWIN0V    = 0x044
	regWIN1V    = 0x046
	regWININ    = 0x048
	regWINOUT   = 0x04A
	regMOSAIC   = 0x04C
	regBLDCNT   = 0x050
	regBLDALPHA = 0x052
	regBLDY     = 0x054
	regKEYINPUT = 0x130
	regIE       = 0x200
	regIF       = 0x202
	regWAITCNT  = 0x204
	regIME      = 0x208
)

func (b *Bus) ioRead16(addr uint32) uint16 {
	reg := &b.PPU.Reg
	off := addr - 0x04000000
	switch off {
	case regDISPCNT:
		return dispcntBits(reg)
	case regDISPSTAT:
		return dispstatBits(reg)
	case regVCOUNT:
		return reg.Line
	case regBG0CNT, regBG1CNT, regBG2CNT, regBG3CNT:
		return bgcntBits(reg.BG[(off-regBG0CNT)/2])
	case regKEYINPUT:
		return b.keyinput
	case regIE:
		return b.IRQ.IE()
	case regIF:
		return b.IRQ.IF()
	case regWAITCNT:
		return b.waitcnt
	case regIME:
		if b.IRQ.IME() {
			return 1
		}
		return 0
	}
	return 0
}

func (b *Bus) ioWrite16(addr uint32, v uint16) {
	reg := &b.PPU.Reg
	off := addr - 0x04000000
	switch off {
	case regDISPCNT:
		setDISPCNT(reg, v)
	case regDISPSTAT:
		setDISPSTAT(reg, v)
	case regBG0CNT, regBG1CNT, regBG2CNT, regBG3CNT:
		setBGCNT(&reg.BG[(off-regBG0CNT)/2], v)
	case regBG0HOFS:
		reg.Scroll[0].X = v & 0x1FF
	case regBG0VOFS:
		reg.Scroll[0].Y = v & 0x1FF
	case regBG1HOFS:
		reg.Scroll[1].X = v & 0x1FF
	case regBG1VOFS:
		reg.Scroll[1].Y = v & 0x1FF
	case regBG2HOFS:
		reg.Scroll[2].X = v & 0x1FF
	case regBG2VOFS:
		reg.Scroll[2].Y = v & 0x1FF
	case regBG3HOFS:
		reg.Scroll[3].X = v & 0x1FF
	case regBG3VOFS:
		reg.Scroll[3].Y = v & 0x1FF
	case regBG2PA:
		reg.Affine[0].A = int16(v)
	case regBG2PB:
		reg.Affine[0].B = int16(v)
	case regBG2PC:
		reg.Affine[0].C = int16(v)
	case regBG2PD:
		reg.Affine[0].D = int16(v)
	case regBG3PA:
		reg.Affine[1].A = int16(v)
	case regBG3PB:
		reg.Affine[1].B = int16(v)
	case regBG3PC:
		reg.Affine[1].C = int16(v)
	case regBG3PD:
		reg.Affine[1].D = int16(v)
	case regBG2X:
		setRefLow(&reg.Affine[0].RefX, v)
		reg.Affine[0].LatchReferencePoint()
	case regBG2X + 2:
		setRefHigh(&reg.Affine[0].RefX, v)
		reg.Affine[0].LatchReferencePoint()
	case regBG2Y:
		setRefLow(&reg.Affine[0].RefY, v)
		reg.Affine[0].LatchReferencePoint()
	case regBG2Y + 2:
		setRefHigh(&reg.Affine[0].RefY, v)
		reg.Affine[0].LatchReferencePoint()
	case regBG3X:
		setRefLow(&reg.Affine[1].RefX, v)
		reg.Affine[1].LatchReferencePoint()
	case regBG3X + 2:
		setRefHigh(&reg.Affine[1].RefX, v)
		reg.Affine[1].LatchReferencePoint()
	case regBG3Y:
		setRefLow(&reg.Affine[1].RefY, v)
		reg.Affine[1].LatchReferencePoint()
	case regBG3Y + 2:
		setRefHigh(&reg.Affine[1].RefY, v)
		reg.Affine[1].LatchReferencePoint()
	case regWIN0H:
		reg.Win[0].Left, reg.Win[0].Right = v>>8, v&0xFF
	case regWIN1H:
		reg.Win[1].Left, reg.Win[1].Right = v>>8, v&0xFF
	case regWIN0V:
		reg.Win[0].Top, reg.Win[0].Bottom = v>>8, v&0xFF
	case regWIN1V:
		reg.Win[1].Top, reg.Win[1].Bottom = v>>8, v&0xFF
	case regWININ:
		setWinContent(&reg.WinIn[0], uint8(v))
		setWinContent(&reg.WinIn[1], uint8(v>>8))
	case regWINOUT:
		setWinContent(&reg.WinOut, uint8(v))
		setWinContent(&reg.WinObjContent, uint8(v>>8))
	case regMOSAIC:
		reg.Mosaic.BGHSize = uint8(v&0xF) + 1
		reg.Mosaic.BGVSize = uint8((v>>4)&0xF) + 1
		reg.Mosaic.OBJHSize = uint8((v>>8)&0xF) + 1
		reg.Mosaic.OBJVSize = uint8((v>>12)&0xF) + 1
	case regBLDCNT:
		setBLDCNT(&reg.Blend, v)
	case regBLDALPHA:
		reg.Blend.EVA = clampEV(uint8(v & 0x1F))
		reg.Blend.EVB = clampEV(uint8((v >> 8) & 0x1F))
	case regBLDY:
		reg.Blend.EVY = clampEV(uint8(v & 0x1F))
	case regIE:
		b.IRQ.SetIE(v)
	case regIF:
		b.IRQ.WriteIF(v)
	case regWAITCNT:
		b.waitcnt = v & 0x7FFF
	case regIME:
		b.IRQ.SetIME(v&1 != 0)
	}
}

func clampEV(v uint8) uint8 {
	if v > 16 {
		return 16
	}
	return v
}

func setRefLow(ref *int32, v uint16) {
	*ref = (*ref &^ 0xFFFF) | int32(v)
}

// setRefHigh writes the upper halfword of a 28-bit signed 20.8 fixed-point
// reference point, sign-extending its 12-bit field through bit 31.
func setRefHigh(ref *int32, v uint16) {
	low := *ref & 0xFFFF
	high := int32(v&0xFFF) << 16
	if v&0x800 != 0 {
		high |= ^int32(0x0FFFFFFF)
	}
	*ref = high | low
}

func dispcntBits(r *video.Registers) uint16 {
	v := uint16(r.DISPCNT.Mode)
	if r.DISPCNT.FrameSelect == 1 {
		v |= 1 << 4
	}
	if r.DISPCNT.OBJ1D {
		v |= 1 << 6
	}
	if r.DISPCNT.ForcedBlank {
		v |= 1 << 7
	}
	for i, on := range r.DISPCNT.BGEnable {
		if on {
			v |= 1 << (8 + i)
		}
	}
	if r.DISPCNT.OBJEnable {
		v |= 1 << 12
	}
	if r.DISPCNT.Win0Enable {
		v |= 1 << 13
	}
	if r.DISPCNT.Win1Enable {
		v |= 1 << 14
	}
	if r.DISPCNT.WinOBJEnable {
		v |= 1 << 15
	}
	return v
}

func setDISPCNT(r *video.Registers, v uint16) {
	r.DISPCNT.Mode = uint8(v & 7)
	r.DISPCNT.FrameSelect = uint8((v >> 4) & 1)
	r.DISPCNT.OBJ1D = v&(1<<6) != 0
	r.DISPCNT.ForcedBlank = v&(1<<7) != 0
	for i := range r.DISPCNT.BGEnable {
		r.DISPCNT.BGEnable[i] = v&(1<<(8+i)) != 0
	}
	r.DISPCNT.OBJEnable = v&(1<<12) != 0
	r.DISPCNT.Win0Enable = v&(1<<13) != 0
	r.DISPCNT.Win1Enable = v&(1<<14) != 0
	r.DISPCNT.WinOBJEnable = v&(1<<15) != 0
}

func dispstatBits(r *video.Registers) uint16 {
	var v uint16
	if r.DISPSTAT.VBlank {
		v |= 1
	}
	if r.DISPSTAT.HBlank {
		v |= 1 << 1
	}
	if r.DISPSTAT.VCounterMatch {
		v |= 1 << 2
	}
	if r.DISPSTAT.VBlankIRQ {
		v |= 1 << 3
	}
	if r.DISPSTAT.HBlankIRQ {
		v |= 1 << 4
	}
	if r.DISPSTAT.VCounterIRQ {
		v |= 1 << 5
	}
	v |= uint16(r.DISPSTAT.VCountSetting) << 8
	return v
}

func setDISPSTAT(r *video.Registers, v uint16) {
	r.DISPSTAT.VBlankIRQ = v&(1<<3) != 0
	r.DISPSTAT.HBlankIRQ = v&(1<<4) != 0
	r.DISPSTAT.VCounterIRQ = v&(1<<5) != 0
	r.DISPSTAT.VCountSetting = uint8(v >> 8)
}

func bgcntBits(c video.BGControl) uint16 {
	v := uint16(c.Priority) | uint16(c.CharBaseBlock)<<2
	if c.Mosaic {
		v |= 1 << 6
	}
	if c.Palette256 {
		v |= 1 << 7
	}
	v |= uint16(c.ScreenBaseBlock) << 8
	if c.Wraparound {
		v |= 1 << 13
	}
	v |= uint16(c.ScreenSize) << 14
	return v
}

func setBGCNT(c *video.BGControl, v uint16) {
	c.Priority = uint8(v & 3)
	c.CharBaseBlock = uint8((v >> 2) & 3)
	c.Mosaic = v&(1<<6) != 0
	c.Palette256 = v&(1<<7) != 0
	c.ScreenBaseBlock = uint8((v >> 8) & 0x1F)
	c.Wraparound = v&(1<<13) != 0
	c.ScreenSize = uint8((v >> 14) & 3)
}

func setWinContent(c *video.WindowContent, bits uint8) {
	for i := range c.BGEnable {
		c.BGEnable[i] = bits&(1<<i) != 0
	}
	c.OBJEnable = bits&(1<<4) != 0
	c.Effects = bits&(1<<5) != 0
}

func setBLDCNT(c *video.BlendControl, v uint16) {
	for i := range c.FirstTarget {
		c.FirstTarget[i] = v&(1<<i) != 0
	}
	for i := range c.SecondTarget {
		c.SecondTarget[i] = v&(1<<(8+i)) != 0
	}
	c.Effect = video.BlendEffect((v >> 6) & 3)
}
