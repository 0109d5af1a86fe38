package lineprog

import "strings"

// History tracks emission-history state for the view-counter disambiguator:
// the last (file, address) pair emitted and how many consecutive duplicates
// have been seen since the last distinct pair.
type History struct {
	lastFile    string
	lastAddress uint64
	hasLast     bool
	repeat      uint32
}

// Reset clears the history, matching what end_sequence does to VM registers.
func (h *History) Reset() {
	*h = History{}
}

// Observe records an emission at (file, address) and returns the view counter
// to stamp on that row. It must be called exactly once per candidate emission,
// before the row filter is applied, since filtered-out rows still consume a
// view slot.
func (h *History) Observe(file string, address uint64) uint32 {
	if h.hasLast && h.lastFile == file && h.lastAddress == address {
		h.repeat++
		return h.repeat
	}
	h.repeat = 0
	h.lastFile = file
	h.lastAddress = address
	h.hasLast = true
	return 0
}

// Filter is an optional allow-list of file basenames. An empty filter accepts
// every row; a non-empty filter accepts a row iff its file matches some entry
// case-insensitively (ASCII lowercasing).
type Filter struct {
	names []string
}

// NewFilter builds a Filter from a list of basenames.
func NewFilter(names []string) Filter {
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}
	return Filter{names: lowered}
}

// Accepts reports whether file passes the filter.
func (f Filter) Accepts(file string) bool {
	if len(f.names) == 0 {
		return true
	}
	lowered := strings.ToLower(file)
	for _, n := range f.names {
		if n == lowered {
			return true
		}
	}
	return false
}
