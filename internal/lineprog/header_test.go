package lineprog

import (
	"reflect"
	"testing"
)

func buildSimpleUnit(files []string, includeDirs []string) []byte {
	var body []byte
	appendU8 := func(v byte) { body = append(body, v) }
	appendCStr := func(s string) { body = append(body, append([]byte(s), 0)...) }
	appendULEB := func(v uint64) {
		for {
			b := byte(v & 0x7f)
			v >>= 7
			if v != 0 {
				b |= 0x80
			}
			body = append(body, b)
			if v == 0 {
				break
			}
		}
	}

	appendU8(1) // min_insn_len
	appendU8(1) // default_is_stmt
	appendU8(0xff) // line_base = -1
	appendU8(4) // line_range
	appendU8(13) // opcode_base
	for i := 0; i < 12; i++ {
		appendU8(0) // standard_opcode_lengths, arbitrary
	}
	for _, d := range includeDirs {
		appendCStr(d)
	}
	appendCStr("") // end of include dirs
	for _, f := range files {
		appendCStr(f)
		appendULEB(0) // dir index
		appendULEB(0) // timestamp
		appendULEB(0) // size
	}
	appendCStr("") // end of file list

	headerLength := len(body)

	var unit []byte
	unit = append(unit, 0, 0) // version placeholder, filled below
	_ = unit

	var u []byte
	u = append(u, byteU16(2)...) // version = 2
	u = append(u, byteU32(uint32(headerLength))...)
	u = append(u, body...)

	full := append(byteU32(uint32(len(u))), u...)
	return full
}

func byteU16(v uint16) []byte {
	return []byte{byte(v), byte(v >> 8)}
}

func byteU32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func TestParseHeaderBasic(t *testing.T) {
	data := buildSimpleUnit([]string{"main.c"}, nil)
	c := NewCursor(data)

	hdr, ok := ParseHeader(c)
	if !ok {
		t.Fatalf("ParseHeader returned ok=false on valid unit")
	}
	if hdr.MinInsnLen != 1 {
		t.Errorf("MinInsnLen = %d, want 1", hdr.MinInsnLen)
	}
	if !hdr.DefaultIsStmt {
		t.Errorf("DefaultIsStmt = false, want true")
	}
	if hdr.LineBase != -1 {
		t.Errorf("LineBase = %d, want -1", hdr.LineBase)
	}
	if hdr.LineRange != 4 {
		t.Errorf("LineRange = %d, want 4", hdr.LineRange)
	}
	if hdr.OpcodeBase != 13 {
		t.Errorf("OpcodeBase = %d, want 13", hdr.OpcodeBase)
	}
	if !reflect.DeepEqual(hdr.FileList, []string{"main.c"}) {
		t.Errorf("FileList = %v, want [main.c]", hdr.FileList)
	}
	if c.Offset() != hdr.HeaderEnd {
		t.Errorf("cursor offset = %d, want forced to header_end %d", c.Offset(), hdr.HeaderEnd)
	}
}

func TestParseHeaderZeroUnitLengthEndsSection(t *testing.T) {
	c := NewCursor([]byte{0, 0, 0, 0})
	_, ok := ParseHeader(c)
	if ok {
		t.Fatalf("ParseHeader with unit_length=0 should return ok=false")
	}
}

func TestParseHeaderBasenameWithDirectory(t *testing.T) {
	data := buildSimpleUnit([]string{"POUS.c"}, []string{"/src/proj"})
	// rebuild manually with nonzero dir index
	var body []byte
	appendU8 := func(v byte) { body = append(body, v) }
	appendCStr := func(s string) { body = append(body, append([]byte(s), 0)...) }
	appendULEB := func(v uint64) { body = append(body, byte(v)) }

	appendU8(1)
	appendU8(1)
	appendU8(0xff)
	appendU8(4)
	appendU8(13)
	for i := 0; i < 12; i++ {
		appendU8(0)
	}
	appendCStr("/src/proj")
	appendCStr("")
	appendCStr("POUS.c")
	appendULEB(1) // dir index 1 -> include_dirs[0]
	appendULEB(0)
	appendULEB(0)
	appendCStr("")

	headerLength := len(body)
	var u []byte
	u = append(u, byteU16(2)...)
	u = append(u, byteU32(uint32(headerLength))...)
	u = append(u, body...)
	full := append(byteU32(uint32(len(u))), u...)

	_ = data
	c := NewCursor(full)
	hdr, ok := ParseHeader(c)
	if !ok {
		t.Fatalf("ParseHeader returned ok=false")
	}
	if !reflect.DeepEqual(hdr.FileList, []string{"POUS.c"}) {
		t.Errorf("FileList = %v, want [POUS.c] (basename extracted)", hdr.FileList)
	}
}

func TestParseHeaderUnterminatedFileListStopsAtHeaderEnd(t *testing.T) {
	// A file-name sequence with no empty-NUL terminator before header_end:
	// one real entry, then bytes that look like the start of another entry
	// ("main.c") but are cut off mid-table by header_end. Those trailing
	// bytes live in the opcode stream region and must never be folded into
	// FileList.
	var body []byte
	body = append(body, 1, 1, 0xff, 4, 13)
	for i := 0; i < 12; i++ {
		body = append(body, 0)
	}
	body = append(body, 0) // no include dirs

	body = append(body, []byte("a.c")...)
	body = append(body, 0)
	body = append(body, 0, 0, 0) // dir index, timestamp, size (ULEB 0s)
	// No terminating empty-NUL here: header_end is set to cut the table off
	// right after this point, before any second entry or terminator.
	headerLength := len(body)

	// Bytes that would be misread as a second file-name entry (and could be
	// mistaken for an extended opcode marker) if the scan ran past header_end.
	body = append(body, []byte("main.c")...)
	body = append(body, 0)
	body = append(body, 0, 0, 0)
	body = append(body, 0) // would-be end-of-file-list terminator

	var u []byte
	u = append(u, byteU16(2)...)
	u = append(u, byteU32(uint32(headerLength))...)
	u = append(u, body...)
	full := append(byteU32(uint32(len(u))), u...)

	c := NewCursor(full)
	hdr, ok := ParseHeader(c)
	if !ok {
		t.Fatalf("ParseHeader returned ok=false")
	}
	if !reflect.DeepEqual(hdr.FileList, []string{"a.c"}) {
		t.Errorf("FileList = %v, want [a.c] (scan must stop at header_end, not pick up main.c)", hdr.FileList)
	}
	if c.Offset() != hdr.HeaderEnd {
		t.Errorf("cursor offset = %d, want forced to header_end %d", c.Offset(), hdr.HeaderEnd)
	}
}
