package utils

import (
	"fmt"
	"math"
)

// CheckInt32Range reports whether a 64-bit segment total would silently wrap when
// narrowed to the signed 32-bit wire representation of MemorySizes. It is opt-in:
// the segment summarizer narrows without calling this by default, matching the
// original "no overflow check" behavior, but a caller that wants to detect the
// wraparound instead of accepting it can call this first.
func CheckInt32Range(value int64, description string) error {
	if value > math.MaxInt32 || value < math.MinInt32 {
		return fmt.Errorf("%s: value %d exceeds signed 32-bit range", description, value)
	}
	return nil
}
