// Package boundary converts the internal line-entry and memory-sizes models
// into the flat, C-ABI-shaped records the host side of the extraction API
// consumes.
package boundary

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/scigolib/elfline/internal/model"
	"github.com/scigolib/elfline/internal/utils"
)

// Row is the C-ABI shape of one source-line row: two heap-owned strings (file
// basename, hex address), a line number, two small-integer booleans, and a
// view counter.
type Row struct {
	File       string
	Address    string
	Line       uint32
	IsStmt     uint8
	BasicBlock uint8
	View       uint32
}

// ToRows converts internal line entries to their boundary representation.
func ToRows(entries []model.LineEntry) []Row {
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{
			File:       e.File,
			Address:    e.Address,
			Line:       e.Line,
			IsStmt:     boolToU8(e.IsStmt),
			BasicBlock: boolToU8(e.BasicBlock),
			View:       e.View,
		}
	}
	return rows
}

func boolToU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// MemorySizes is the seven-field C-ABI record for segment totals, in the
// declared wire order.
type MemorySizes struct {
	Text    int32
	Data    int32
	Bss     int32
	Flash   int32
	Ram     int32
	BinSize int32
	Dec     int32
}

// ToMemorySizes converts the internal model into its boundary representation.
func ToMemorySizes(m model.MemorySizes) MemorySizes {
	return MemorySizes{
		Text:    m.Text,
		Data:    m.Data,
		Bss:     m.Bss,
		Flash:   m.Flash,
		Ram:     m.Ram,
		BinSize: m.BinSize,
		Dec:     m.Dec,
	}
}

// Checksum computes a CRC32 (IEEE) over the wire-order little-endian encoding
// of m. It is not part of the core protocol; a host that wants to detect
// transport corruption of the boundary record can compute and compare it on
// both sides.
func Checksum(m MemorySizes) uint32 {
	buf := utils.GetBuffer(28)
	defer utils.ReleaseBuffer(buf)

	fields := []int32{m.Text, m.Data, m.Bss, m.Flash, m.Ram, m.BinSize, m.Dec}
	for i, f := range fields {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(f))
	}
	return crc32.ChecksumIEEE(buf[:28])
}
