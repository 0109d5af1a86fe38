// Package elfline extracts the compiled source-line table and segment-size
// summary from an ELF object file carrying an early-dialect (pre-DWARF-5)
// debug-line section.
package elfline

import (
	"debug/elf"
	"fmt"
	"time"

	"github.com/scigolib/elfline/boundary"
	"github.com/scigolib/elfline/events"
	"github.com/scigolib/elfline/internal/lineprog"
	"github.com/scigolib/elfline/internal/segments"
)

const debugLineSection = ".debug_line"

// Analyze opens path as an ELF object and summarizes its loadable segments
// into flash/RAM/binary-size figures. Every error path emits a localized
// status event on emit before returning; emit may be events.Discard if the
// caller doesn't need status reporting.
func Analyze(path string, emit events.Emitter) (*boundary.MemorySizes, error) {
	f, err := elf.Open(path)
	if err != nil {
		emitErr(emit, "could not open %s: %v", path, err)
		return nil, fmt.Errorf("%w: %v", ErrFileOpen, err)
	}
	defer f.Close()

	progs := segments.FromELF(f.Progs)
	sizes := segments.Summarize(progs)
	result := boundary.ToMemorySizes(sizes)

	emit.Emit(events.New(events.Ok, time.Now(), "analyzed %s", path))
	return &result, nil
}

// Symbols opens path as an ELF object, decodes its debug-line section, and
// returns the source-line rows whose file matches filterNames (case
// insensitively; an empty filterNames accepts every row). basePath is
// accepted for forward compatibility and is not otherwise used.
func Symbols(path string, filterNames []string, basePath string, emit events.Emitter) ([]boundary.Row, error) {
	_ = basePath

	f, err := elf.Open(path)
	if err != nil {
		emitErr(emit, "could not open %s: %v", path, err)
		return nil, fmt.Errorf("%w: %v", ErrFileOpen, err)
	}
	defer f.Close()

	section := f.Section(debugLineSection)
	if section == nil {
		emitErr(emit, "%s has no %s section", path, debugLineSection)
		return nil, fmt.Errorf("%w: %s", ErrSectionMissing, debugLineSection)
	}

	data, err := section.Data()
	if err != nil {
		emitErr(emit, "could not read %s: %v", debugLineSection, err)
		return nil, fmt.Errorf("%w: %v", ErrUnknown, err)
	}

	entries := lineprog.ParseSection(data, lineprog.NewFilter(filterNames))
	rows := boundary.ToRows(entries)

	emit.Emit(events.New(events.Ok, time.Now(), "extracted %d rows from %s", len(rows), path))
	return rows, nil
}

func emitErr(emit events.Emitter, format string, args ...any) {
	emit.Emit(events.New(events.Err, time.Now(), format, args...))
}
