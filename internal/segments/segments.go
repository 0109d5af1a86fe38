// Package segments summarizes an object file's loadable program-header
// segments into the aggregate memory-usage figures (flash/ram/binary size)
// reported by the top-level API.
package segments

import (
	"debug/elf"

	"github.com/scigolib/elfline/internal/model"
	"github.com/scigolib/elfline/internal/utils"
)

// ProgHeader is the minimal slice of an ELF program header this package needs,
// kept independent of debug/elf so callers that already hold their own parsed
// segment list (not necessarily from debug/elf) can call Summarize directly.
type ProgHeader struct {
	Executable bool
	Writable   bool
	FileSize   int64
	MemSize    int64
}

// FromELF adapts debug/elf program headers into ProgHeader values.
func FromELF(progs []*elf.Prog) []ProgHeader {
	out := make([]ProgHeader, 0, len(progs))
	for _, p := range progs {
		if p.Type != elf.PT_LOAD {
			continue
		}
		out = append(out, ProgHeader{
			Executable: p.Flags&elf.PF_X != 0,
			Writable:   p.Flags&elf.PF_W != 0,
			FileSize:   int64(p.Filesz),
			MemSize:    int64(p.Memsz),
		})
	}
	return out
}

// Summarize aggregates loadable segments into text/data/bss totals and
// derives the four wire aggregates. An executable segment contributes its
// file size to text; a writable non-executable segment contributes its file
// size to data and any memory-size excess over file-size to bss (the
// zero-initialized tail). Read-only non-executable segments contribute
// nothing. Narrowing to 32-bit is lossy by design; callers that want to
// detect the wraparound can check the 64-bit totals with
// utils.CheckInt32Range before calling this.
func Summarize(progs []ProgHeader) model.MemorySizes {
	var text, data, bss int64

	for _, p := range progs {
		switch {
		case p.Executable:
			text += p.FileSize
		case p.Writable:
			data += p.FileSize
			if excess := p.MemSize - p.FileSize; excess > 0 {
				bss += excess
			}
		}
	}

	return model.NewMemorySizes(int32(text), int32(data), int32(bss))
}

// SummarizeFile opens path as an ELF object and summarizes its loadable
// segments.
func SummarizeFile(path string) (model.MemorySizes, error) {
	f, err := elf.Open(path)
	if err != nil {
		return model.MemorySizes{}, utils.WrapError("opening object file", err)
	}
	defer f.Close()

	progs := FromELF(f.Progs)
	return Summarize(progs), nil
}
