package lineprog

import "github.com/scigolib/elfline/internal/model"

// ParseSection decodes every line-program unit in a debug-line section and
// returns the rows emitted across all of them, in VM emission order. A unit
// whose header_length overruns its own unit_length is malformed; per the
// SilentSkip rule it is abandoned at its declared unit_end and parsing
// resumes with the next unit. The view-counter history is shared across
// units, matching a single logical row stream for the whole section.
func ParseSection(data []byte, filter Filter) []model.LineEntry {
	var rows []model.LineEntry
	var hist History
	c := NewCursor(data)

	for c.Offset() < c.Len() {
		hdr, ok := ParseHeader(c)
		if !ok {
			break
		}
		if hdr.UnitEnd > c.Len() {
			break
		}
		if hdr.HeaderEnd > hdr.UnitEnd {
			// SilentSkip: malformed header, abandon this unit and continue.
			c.SetOffset(hdr.UnitEnd)
			continue
		}

		unitRows := runVM(c, hdr, filter, &hist)
		rows = append(rows, unitRows...)
	}

	return rows
}
