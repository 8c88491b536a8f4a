// arm_tables.go - the 4096-entry ARM dispatch table.
//
// Generated once at package init and frozen: build-time generation is
// preferable, but generating once at startup and then never mutating the
// table again is an acceptable substitute. Each table cell routes to a
// *class* handler keyed only by
// the architecturally-significant bits [27:20]+[7:4]; every handler
// re-examines the full 32-bit instruction word for its operand fields, so
// the table itself only needs to resolve which instruction family a key
// belongs to, not every operand encoding within that family.
package cpu

type armHandler func(c *CPU, instr uint32) uint32

var armTable [4096]armHandler

type armPattern struct {
	mask, value uint32
	handler     armHandler
}

// Patterns are listed most-specific first; armTable is built by taking the
// first match for each of the 4096 keys, so narrower masks (more fixed
// bits) must precede broader ones that would otherwise also match.
var armPatterns = []armPattern{
	{0xFFF, 0x121, armBX},
	{0xFBF, 0x109, armSWP},
	{0xF8F, 0x089, armMultiplyLong},
	{0xFCF, 0x009, armMultiply},
	{0xE09, 0x009, armHalfwordTransfer},
	{0xD90, 0x100, armPSRTransfer},
	{0xE01, 0x601, armUndefinedInstruction},
	{0xC00, 0x400, armSingleDataTransfer},
	{0xE00, 0x800, armBlockDataTransfer},
	{0xE00, 0xA00, armBranch},
	{0xE00, 0xC00, armUndefinedInstruction}, // coprocessor data transfer
	{0xF00, 0xE00, armUndefinedInstruction}, // coprocessor data op / register transfer
	{0xF00, 0xF00, armSWI},
	{0xC00, 0x000, armDataProcessing}, // catch-all for bits27:26==00
}

func init() {
	for key := uint32(0); key < 4096; key++ {
		h := armDataProcessing
		for _, p := range armPatterns {
			if key&p.mask == p.value {
				h = p.handler
				break
			}
		}
		armTable[key] = h
	}
}

func armKey(instr uint32) uint32 {
	return ((instr>>20)&0xFF)<<4 | ((instr >> 4) & 0xF)
}
