package lineprog

import (
	"fmt"

	"github.com/scigolib/elfline/internal/model"
)

// vmRegisters holds the per-sequence mutable state the opcode stream updates.
// end_sequence resets every field (and the shared History) to its initial
// value.
type vmRegisters struct {
	address         uint64
	line            int64
	fileIndex       int
	isStmt          bool
	basicBlock      bool
	sequenceBase    uint64
	sequenceBaseSet bool
}

func newVMRegisters(defaultIsStmt bool) vmRegisters {
	return vmRegisters{
		line:   1,
		isStmt: defaultIsStmt,
	}
}

// clampLine enforces the line >= 1 invariant.
func clampLine(line int64) int64 {
	if line < 1 {
		return 1
	}
	return line
}

// runVM executes the opcode stream in [c.Offset(), hdr.UnitEnd) and returns the
// rows it emits. hist carries the view-counter state and survives across
// units/sequences except where end_sequence explicitly resets it.
func runVM(c *Cursor, hdr Header, filter Filter, hist *History) []model.LineEntry {
	var rows []model.LineEntry
	regs := newVMRegisters(hdr.DefaultIsStmt)

	emit := func() {
		if regs.fileIndex < 0 || regs.fileIndex >= len(hdr.FileList) {
			return
		}
		file := hdr.FileList[regs.fileIndex]
		view := hist.Observe(file, regs.address)
		if !filter.Accepts(file) {
			return
		}
		rows = append(rows, model.LineEntry{
			File:       file,
			Address:    fmt.Sprintf("0x%x", regs.address),
			Line:       uint32(clampLine(regs.line)),
			IsStmt:     regs.isStmt,
			BasicBlock: regs.basicBlock,
			View:       view,
		})
	}

	for c.Offset() < hdr.UnitEnd {
		opcode := c.ReadByte()

		switch {
		case opcode == 0:
			runExtended(c, hdr, &regs, hist)

		case int(opcode) < int(hdr.OpcodeBase):
			runStandard(c, opcode, hdr, &regs, emit)

		default:
			if hdr.LineRange == 0 {
				// SilentSkip: division by line_range would be undefined.
				c.SetOffset(hdr.UnitEnd)
				return rows
			}
			adj := int(opcode) - int(hdr.OpcodeBase)
			regs.line = clampLine(regs.line + int64(hdr.LineBase) + int64(adj%int(hdr.LineRange)))
			regs.address += uint64(adj/int(hdr.LineRange)) * uint64(hdr.MinInsnLen)
			emit()
			regs.basicBlock = false
		}
	}

	c.SetOffset(hdr.UnitEnd)
	return rows
}

// runExtended handles opcode 0, the extended-opcode escape.
func runExtended(c *Cursor, hdr Header, regs *vmRegisters, hist *History) {
	exLen := c.ReadULEB()
	if exLen == 0 {
		return
	}
	exOpcode := c.ReadByte()
	remaining := int(exLen) - 1

	switch exOpcode {
	case 1: // end_sequence
		*regs = newVMRegisters(hdr.DefaultIsStmt)
		hist.Reset()
	case 2: // set_address
		addr := c.ReadAddrBytes(remaining)
		regs.address = addr
		if !regs.sequenceBaseSet {
			regs.sequenceBase = addr
			regs.sequenceBaseSet = true
		}
	default:
		c.Skip(remaining)
	}
}

// runStandard handles opcodes in [1, opcode_base-1].
func runStandard(c *Cursor, opcode uint8, hdr Header, regs *vmRegisters, emit func()) {
	switch opcode {
	case 1: // copy
		emit()
		regs.basicBlock = false
	case 2: // advance_pc
		regs.address += c.ReadULEB() * uint64(hdr.MinInsnLen)
	case 3: // advance_line
		regs.line = clampLine(regs.line + c.ReadSLEB())
	case 4: // set_file
		f := c.ReadULEB()
		idx := 0
		if f != 0 {
			idx = int(f) - 1
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(hdr.FileList) {
			idx = len(hdr.FileList) - 1
			if idx < 0 {
				idx = 0
			}
		}
		regs.fileIndex = idx
	case 5: // set_column
		c.ReadULEB()
	case 6: // negate_stmt
		regs.isStmt = !regs.isStmt
	case 7: // set_basic_block
		regs.basicBlock = true
	default:
		arity := 0
		if int(opcode)-1 < len(hdr.StandardOpcodeLengths) {
			arity = int(hdr.StandardOpcodeLengths[opcode-1])
		}
		for i := 0; i < arity; i++ {
			c.ReadULEB()
		}
	}
}
