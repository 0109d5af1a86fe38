package lineprog

import "strings"

// Header holds the per-unit state read from a line-program header, held
// read-only for the lifetime of the VM run over that unit.
type Header struct {
	Version               uint16
	MinInsnLen            uint8
	DefaultIsStmt         bool
	LineBase              int8
	LineRange             uint8
	OpcodeBase            uint8
	StandardOpcodeLengths []uint8
	IncludeDirs           []string
	FileList              []string

	// UnitEnd and HeaderEnd are absolute offsets into the section buffer,
	// computed from the declared unit_length/header_length fields.
	UnitEnd   int
	HeaderEnd int
}

// ParseHeader reads one line-program unit header starting at c's current
// offset. It returns ok=false when unit_length is 0, signaling the caller
// that the section has ended. header_end is forced onto the cursor before
// returning regardless of what the declared header_length actually consumed,
// per the format's "header length is authoritative" rule.
func ParseHeader(c *Cursor) (hdr Header, ok bool) {
	unitStart := c.Offset()
	unitLength := c.ReadU32()
	if unitLength == 0 {
		return Header{}, false
	}
	unitEnd := unitStart + 4 + int(unitLength)

	hdr.Version = c.ReadU16()
	headerLength := c.ReadU32()
	headerEnd := c.Offset() + int(headerLength)

	hdr.MinInsnLen = c.ReadByte()
	hdr.DefaultIsStmt = c.ReadByte() != 0
	hdr.LineBase = int8(c.ReadByte())
	hdr.LineRange = c.ReadByte()
	hdr.OpcodeBase = c.ReadByte()

	if hdr.OpcodeBase > 0 {
		hdr.StandardOpcodeLengths = make([]uint8, hdr.OpcodeBase-1)
		for i := range hdr.StandardOpcodeLengths {
			hdr.StandardOpcodeLengths[i] = c.ReadByte()
		}
	}

	// Both sequences are bounded by header_end, not the section buffer: an
	// unterminated table must stop at the header's declared end rather than
	// scanning into the opcode stream or a following unit.
	for {
		dir := c.ReadCStringBounded(headerEnd)
		if dir == "" {
			break
		}
		hdr.IncludeDirs = append(hdr.IncludeDirs, dir)
	}

	for {
		name := c.ReadCStringBounded(headerEnd)
		if name == "" {
			break
		}
		dirIndex := c.ReadULEB()
		c.ReadULEB() // timestamp, unused
		c.ReadULEB() // file size, unused

		full := name
		if dirIndex > 0 && int(dirIndex) <= len(hdr.IncludeDirs) {
			full = hdr.IncludeDirs[dirIndex-1] + "/" + name
		}
		hdr.FileList = append(hdr.FileList, basename(full))
	}

	hdr.UnitEnd = unitEnd
	hdr.HeaderEnd = headerEnd
	c.SetOffset(headerEnd)

	return hdr, true
}

// basename returns the portion of p after the last '/' or '\'.
func basename(p string) string {
	if i := strings.LastIndexAny(p, "/\\"); i >= 0 {
		return p[i+1:]
	}
	return p
}
