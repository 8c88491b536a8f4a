// bus.go - the GBA memory map: BIOS, WRAM, I/O registers, palette, VRAM,
// OAM, and GamePak ROM/SRAM, wired behind the membus.Bus contract.
//
// Grounded on machine_bus.go's region-table design: a fixed backing slice
// plus a table of registered I/O regions with onRead/onWrite callbacks,
// restructured here around the GBA's fixed physical map instead of a
// generic page-masked table, and guarded the same way with a sync.RWMutex
// for host/video-sink goroutine safety.
package console

import (
	"encoding/binary"
	"sync"

	"github.com/fennecforge/gbacore/irq"
	"github.com/fennecforge/gbacore/video"
)

const (
	biosSize  = 0x4000
	ewramSize = 0x40000
	iwramSize = 0x8000
	romMax    = 0x2000000
	sramSize  = 0x10000
)

// Bus is the GBA system bus: it owns every physical memory region and
// dispatches I/O-register reads/writes to the wired PPU and interrupt
// controller.
type Bus struct {
	mu sync.RWMutex

	bios  [biosSize]byte
	ewram [ewramSize]byte
	iwram [iwramSize]byte
	rom   []byte
	sram  [sramSize]byte

	PPU *video.PPU
	IRQ *irq.Controller

	// waitcnt backs WAITCNT (0x04000204): the three GamePak ROM mirrors'
	// first/second-access wait-state selects plus the SRAM wait-state
	// select, consulted by accessCycles in waitstates.go. Resets to 0 (a
	// 4-cycle first access) per hardware power-on; a real BIOS reprograms it to
	// something faster before jumping to the cartridge, but BIOS execution
	// is an external collaborator here (spec.md section 1), so a
	// skip-BIOS boot sees the hardware reset value until the game's own
	// startup code writes WAITCNT.
	waitcnt uint16

	// keyinput mirrors KEYINPUT (active-low, bit set = not pressed); the
	// host calls SetKeys to update it once per frame.
	keyinput uint16
}

// SetKeys writes the KEYINPUT register from an active-high 10-bit button
// mask (bit order: A,B,Select,Start,Right,Left,Up,Down,R,L).
func (b *Bus) SetKeys(pressed uint16) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.keyinput = ^pressed & 0x3FF
}

// NewBus returns a Bus with BIOS and ROM images installed. rom may be
// shorter than romMax; reads past its length return 0 (open bus).
func NewBus(bios, rom []byte, ppu *video.PPU, irqc *irq.Controller) *Bus {
	b := &Bus{PPU: ppu, IRQ: irqc, keyinput: 0x3FF}
	copy(b.bios[:], bios)
	b.rom = make([]byte, len(rom))
	copy(b.rom, rom)
	return b
}

// region dispatches a physical address to its backing store. The GBA
// aliases each region across its 16MB window (32MB for GamePak ROM) by
// masking to its actual size; unmapped
// addresses (0x00800000-0x01FFFFFF etc.) read as open bus (0).
func (b *Bus) region(addr uint32) (store []byte, offset uint32, ok bool) {
	switch {
	case addr < 0x00004000:
		return b.bios[:], addr, true
	case addr >= 0x02000000 && addr < 0x03000000:
		return b.ewram[:], (addr - 0x02000000) % ewramSize, true
	case addr >= 0x03000000 && addr < 0x04000000:
		return b.iwram[:], (addr - 0x03000000) % iwramSize, true
	case addr >= 0x08000000 && addr < 0x0E000000:
		off := (addr - 0x08000000) % romMax
		if int(off) >= len(b.rom) {
			return nil, 0, false
		}
		return b.rom, off, true
	case addr >= 0x0E000000 && addr < 0x10000000:
		return b.sram[:], (addr - 0x0E000000) % sramSize, true
	}
	return nil, 0, false
}

func (b *Bus) Load8(addr uint32) uint8 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if addr >= 0x04000000 && addr < 0x04000400 {
		return uint8(b.ioRead16(addr &^ 1))
	}
	if addr >= 0x05000000 && addr < 0x07000000 {
		return b.vramLoad8(addr)
	}
	if addr >= 0x07000000 && addr < 0x08000000 {
		return uint8(b.oamLoad16(addr &^ 1))
	}
	store, off, ok := b.region(addr)
	if !ok {
		return 0
	}
	return store[off]
}

func (b *Bus) Load16(addr uint32) uint16 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	addr &^= 1
	if addr >= 0x04000000 && addr < 0x04000400 {
		return b.ioRead16(addr)
	}
	if addr >= 0x05000000 && addr < 0x07000000 {
		return b.vramLoad16(addr)
	}
	if addr >= 0x07000000 && addr < 0x08000000 {
		return b.oamLoad16(addr)
	}
	store, off, ok := b.region(addr)
	if !ok || int(off)+2 > len(store) {
		return 0
	}
	return binary.LittleEndian.Uint16(store[off:])
}

func (b *Bus) Load32(addr uint32) uint32 {
	addr &^= 3
	lo := uint32(b.Load16(addr))
	hi := uint32(b.Load16(addr + 2))
	return lo | hi<<16
}

func (b *Bus) Store8(addr uint32, v uint8) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if addr >= 0x04000000 && addr < 0x04000400 {
		b.ioWrite16(addr&^1, uint16(v))
		return
	}
	if addr >= 0x05000000 && addr < 0x07000000 {
		b.vramStore8(addr, v)
		return
	}
	if addr >= 0x07000000 && addr < 0x08000000 {
		// Byte writes to OAM are ignored by real hardware.
		return
	}
	store, off, ok := b.region(addr)
	if !ok {
		return
	}
	store[off] = v
}

func (b *Bus) Store16(addr uint32, v uint16) {
	b.mu.Lock()
	defer b.mu.Unlock()
	addr &^= 1
	if addr >= 0x04000000 && addr < 0x04000400 {
		b.ioWrite16(addr, v)
		return
	}
	if addr >= 0x05000000 && addr < 0x07000000 {
		b.vramStore16(addr, v)
		return
	}
	if addr >= 0x07000000 && addr < 0x08000000 {
		b.oamStore16(addr, v)
		return
	}
	store, off, ok := b.region(addr)
	if !ok || int(off)+2 > len(store) {
		return
	}
	binary.LittleEndian.PutUint16(store[off:], v)
}

func (b *Bus) Store32(addr uint32, v uint32) {
	addr &^= 3
	b.Store16(addr, uint16(v))
	b.Store16(addr+2, uint16(v>>16))
}

// vramLoad8/vramStore8 etc. route 0x05000000-0x05FFFFFF to the palette and
// 0x06000000-0x06FFFFFF to VRAM proper; OAM (0x07000000-0x07FFFFFF) is
// handled separately by oamLoad16/oamStore16 below, as a 1KB region of
// 16-bit entries mirrored across its 16MB window.
func (b *Bus) vramLoad8(addr uint32) uint8 {
	if addr < 0x06000000 {
		return uint8(b.PPU.Palette.Load16(addr & 0x3FF))
	}
	off := (addr - 0x06000000) % 0x18000
	return b.PPU.VRAM[off]
}

func (b *Bus) vramLoad16(addr uint32) uint16 {
	if addr < 0x06000000 {
		return b.PPU.Palette.Load16(addr & 0x3FF)
	}
	off := (addr - 0x06000000) % 0x18000
	if int(off)+2 > len(b.PPU.VRAM) {
		return 0
	}
	return binary.LittleEndian.Uint16(b.PPU.VRAM[off:])
}

func (b *Bus) vramStore8(addr uint32, v uint8) {
	// Byte writes to palette RAM and to VRAM (BG and OBJ alike) write the
	// same value to both bytes of the containing halfword.
	if addr < 0x06000000 {
		b.PPU.Palette.Store16(addr&0x3FF, uint16(v)|uint16(v)<<8)
		return
	}
	off := (addr - 0x06000000) % 0x18000
	off &^= 1
	if int(off)+2 > len(b.PPU.VRAM) {
		return
	}
	b.PPU.VRAM[off] = v
	b.PPU.VRAM[off+1] = v
}

func (b *Bus) vramStore16(addr uint32, v uint16) {
	if addr < 0x06000000 {
		b.PPU.Palette.Store16(addr&0x3FF, v)
		return
	}
	off := (addr - 0x06000000) % 0x18000
	if int(off)+2 > len(b.PPU.VRAM) {
		return
	}
	binary.LittleEndian.PutUint16(b.PPU.VRAM[off:], v)
}

func (b *Bus) oamLoad16(addr uint32) uint16 {
	return b.PPU.OAM.Load16((addr - 0x07000000) & 0x3FF)
}

func (b *Bus) oamStore16(addr uint32, v uint16) {
	b.PPU.OAM.Store16((addr-0x07000000)&0x3FF, v)
}

func (b *Bus) CodeAccessSeq8(addr uint32) uint32     { return b.accessCycles(addr, 1, true) }
func (b *Bus) CodeAccessSeq16(addr uint32) uint32    { return b.accessCycles(addr, 2, true) }
func (b *Bus) CodeAccessSeq32(addr uint32) uint32    { return b.accessCycles(addr, 4, true) }
func (b *Bus) CodeAccessNonseq8(addr uint32) uint32  { return b.accessCycles(addr, 1, false) }
func (b *Bus) CodeAccessNonseq16(addr uint32) uint32 { return b.accessCycles(addr, 2, false) }
func (b *Bus) CodeAccessNonseq32(addr uint32) uint32 { return b.accessCycles(addr, 4, false) }
func (b *Bus) DataAccessSeq8(addr uint32) uint32     { return b.accessCycles(addr, 1, true) }
func (b *Bus) DataAccessSeq16(addr uint32) uint32    { return b.accessCycles(addr, 2, true) }
func (b *Bus) DataAccessSeq32(addr uint32) uint32    { return b.accessCycles(addr, 4, true) }
func (b *Bus) DataAccessNonseq8(addr uint32) uint32  { return b.accessCycles(addr, 1, false) }
func (b *Bus) DataAccessNonseq16(addr uint32) uint32 { return b.accessCycles(addr, 2, false) }
func (b *Bus) DataAccessNonseq32(addr uint32) uint32 { return b.accessCycles(addr, 4, false) }

func (b *Bus) OnInternalCycles(uint32) {}

func (b *Bus) ViewWord(addr uint32) uint32 {
	store, off, ok := b.region(addr &^ 3)
	if !ok || int(off)+4 > len(store) {
		return 0
	}
	return binary.LittleEndian.Uint32(store[off:])
}

func (b *Bus) ViewHalfword(addr uint32) uint16 {
	store, off, ok := b.region(addr &^ 1)
	if !ok || int(off)+2 > len(store) {
		return 0
	}
	return binary.LittleEndian.Uint16(store[off:])
}
