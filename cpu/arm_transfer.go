// arm_transfer.go - single-word/byte, halfword/signed, and block data
// transfer instructions.
package cpu

import "math/bits"

// armSingleDataTransfer handles LDR/STR in word and byte forms, with
// immediate or shifted-register offsets, all four pre/post * up/down
// addressing combinations, and optional base writeback.
func armSingleDataTransfer(c *CPU, instr uint32) uint32 {
	immediateOffset := instr&(1<<25) == 0
	pre := instr&(1<<24) != 0
	up := instr&(1<<23) != 0
	byteAccess := instr&(1<<22) != 0
	writeback := instr&(1<<21) != 0
	load := instr&(1<<20) != 0
	rn := (instr >> 16) & 0xF
	rd := (instr >> 12) & 0xF

	var offset uint32
	if immediateOffset {
		offset = instr & 0xFFF
	} else {
		rm := instr & 0xF
		shiftType := ShiftType((instr >> 5) & 3)
		amount := (instr >> 7) & 0x1F
		offset, _ = ShiftImmediate(shiftType, c.Reg.Read(rm), amount, c.Reg.C())
	}

	base := c.readOperandReg(rn, 8)
	var offsetAddr uint32
	if up {
		offsetAddr = base + offset
	} else {
		offsetAddr = base - offset
	}

	addr := base
	if pre {
		addr = offsetAddr
	}

	bus := c.busRef()
	var cycles uint32

	if load {
		if byteAccess {
			v := bus.Load8(addr)
			cycles = bus.DataAccessNonseq8(addr)
			c.Reg.Write(rd, uint32(v))
		} else {
			v := bus.Load32(addr)
			cycles = bus.DataAccessNonseq32(addr)
			c.Reg.Write(rd, rotateRead32(v, addr))
		}
		c.busRef().OnInternalCycles(1)
		cycles++
		if rd == 15 {
			c.armBranchTo(c.Reg.Read(15) &^ 3)
			cycles += c.bus32(c.Reg.PC(), true) + c.bus32(c.Reg.PC()+4, false)
		}
	} else {
		storeVal := c.readOperandReg(rd, 12)
		if byteAccess {
			cycles = bus.DataAccessNonseq8(addr)
			bus.Store8(addr, uint8(storeVal))
		} else {
			cycles = bus.DataAccessNonseq32(addr)
			bus.Store32(addr, storeVal)
		}
	}

	if !pre {
		c.Reg.Write(rn, offsetAddr)
	} else if writeback {
		c.Reg.Write(rn, offsetAddr)
	}

	return cycles
}

// armHalfwordTransfer handles LDRH/STRH/LDRSB/LDRSH (the SH field selects
// which; SH==00 reaches here only when no narrower pattern — multiply,
// multiply-long, SWP — already claimed the key, and is a reserved encoding
// that traps to Undefined).
func armHalfwordTransfer(c *CPU, instr uint32) uint32 {
	immediateOffset := instr&(1<<22) != 0
	pre := instr&(1<<24) != 0
	up := instr&(1<<23) != 0
	writeback := instr&(1<<21) != 0
	load := instr&(1<<20) != 0
	rn := (instr >> 16) & 0xF
	rd := (instr >> 12) & 0xF
	sh := (instr >> 5) & 3

	if sh == 0 {
		return c.RaiseUndefined(c.Reg.PC())
	}

	var offset uint32
	if immediateOffset {
		offset = ((instr >> 4) & 0xF0) | (instr & 0xF)
	} else {
		rm := instr & 0xF
		offset = c.Reg.Read(rm)
	}

	base := c.readOperandReg(rn, 8)
	var offsetAddr uint32
	if up {
		offsetAddr = base + offset
	} else {
		offsetAddr = base - offset
	}

	addr := base
	if pre {
		addr = offsetAddr
	}

	bus := c.busRef()
	var cycles uint32

	if load {
		switch sh {
		case 1: // unsigned halfword
			v := bus.Load16(addr)
			cycles = bus.DataAccessNonseq16(addr)
			c.Reg.Write(rd, uint32(v))
		case 2: // signed byte
			v := bus.Load8(addr)
			cycles = bus.DataAccessNonseq8(addr)
			c.Reg.Write(rd, signExtend(uint32(v), 8))
		case 3: // signed halfword
			v := bus.Load16(addr)
			cycles = bus.DataAccessNonseq16(addr)
			c.Reg.Write(rd, signExtend(uint32(v), 16))
		}
		c.busRef().OnInternalCycles(1)
		cycles++
	} else {
		storeVal := c.readOperandReg(rd, 8)
		cycles = bus.DataAccessNonseq16(addr)
		bus.Store16(addr, uint16(storeVal))
	}

	if !pre {
		c.Reg.Write(rn, offsetAddr)
	} else if writeback {
		c.Reg.Write(rn, offsetAddr)
	}

	return cycles
}

// blockStartAddress implements the block-transfer addressing rule: the transfer covers
// exactly popcount(registerList) words, in ascending register order,
// starting at the address the P/U combination selects.
func blockStartAddress(base uint32, count uint32, up, pre bool) uint32 {
	addr := base
	if !up {
		addr -= count * 4
	}
	if up == pre {
		addr += 4
	}
	return addr
}

// armBlockDataTransfer handles LDM/STM across all four addressing modes,
// base writeback, and the '^' bit (user-bank register access, or CPSR
// restore from SPSR when r15 is loaded).
func armBlockDataTransfer(c *CPU, instr uint32) uint32 {
	pre := instr&(1<<24) != 0
	up := instr&(1<<23) != 0
	userBank := instr&(1<<22) != 0
	writeback := instr&(1<<21) != 0
	load := instr&(1<<20) != 0
	rn := (instr >> 16) & 0xF
	list := instr & 0xFFFF

	count := uint32(bits.OnesCount16(uint16(list)))
	if count == 0 {
		count = 16 // empty-list edge case: only R15 is transferred, but the address span and writeback cover 16 words
		list = 0x8000
	}

	base := c.Reg.Read(rn)
	addr := blockStartAddress(base, count, up, pre)

	bus := c.busRef()
	var cycles uint32
	rnInList := list&(1<<rn) != 0
	r15InList := list&(1<<15) != 0
	useUserBank := userBank && !(load && r15InList)

	for n := uint32(0); n < 16; n++ {
		if list&(1<<n) == 0 {
			continue
		}
		if load {
			v := bus.Load32(addr)
			cycles += bus.DataAccessNonseq32(addr)
			if useUserBank && n >= 8 && n <= 14 {
				c.Reg.WriteWithMode(ModeUser, n, v)
			} else {
				c.Reg.Write(n, v)
			}
		} else {
			var v uint32
			if useUserBank && n >= 8 && n <= 14 {
				v = c.Reg.ReadWithMode(ModeUser, n)
			} else {
				v = c.readOperandReg(n, 12)
			}
			cycles += bus.DataAccessNonseq32(addr)
			bus.Store32(addr, v)
		}
		addr += 4
	}

	if writeback && !(load && rnInList) {
		if up {
			c.Reg.Write(rn, base+count*4)
		} else {
			c.Reg.Write(rn, base-count*4)
		}
	}

	if load && r15InList {
		if userBank {
			c.Reg.WriteCPSR(c.Reg.SPSR())
		}
		c.armBranchTo(c.Reg.Read(15))
		cycles += c.bus32(c.Reg.PC(), true) + c.bus32(c.Reg.PC()+4, false)
	}

	c.busRef().OnInternalCycles(1)
	return cycles + 1
}
