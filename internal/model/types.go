// Package model holds the data types shared by the line-program parser and the
// segment summarizer, kept dependency-free so both internal packages and the
// top-level API package can import them without a cycle.
package model

// LineEntry is a single row of the source-line matrix, immutable once emitted.
type LineEntry struct {
	File       string
	Address    string
	Line       uint32
	IsStmt     bool
	BasicBlock bool
	View       uint32
}

// MemorySizes holds segment totals in bytes, each field signed 32-bit to match
// the host boundary wire format.
type MemorySizes struct {
	Text    int32
	Data    int32
	Bss     int32
	Flash   int32
	Ram     int32
	BinSize int32
	Dec     int32
}

// NewMemorySizes derives the aggregate fields (Flash, Ram, BinSize, Dec) from the
// three measured segment totals. The inputs are already narrowed to 32-bit (see
// segments.Summarize), and the sums are computed in int32 with no overflow check.
func NewMemorySizes(text, data, bss int32) MemorySizes {
	return MemorySizes{
		Text:    text,
		Data:    data,
		Bss:     bss,
		Flash:   text,
		Ram:     data + bss,
		BinSize: text + data,
		Dec:     text + data + bss,
	}
}
