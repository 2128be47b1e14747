// Package duplication measures the fraction of non-unique lines in raw
// source text.
package duplication

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Ratio returns 1 - distinct/total over the raw lines, blank lines
// included. Lines are compared verbatim: no whitespace normalization, so
// two lines differing only in indentation are distinct (a deliberate
// choice; normalizing would materially change the metric).
//
// Distinct lines are tracked by xxhash of the line rather than the line
// itself to keep memory flat on large inputs. Empty input yields 0; any
// internal failure also yields 0 so the rest of the pipeline proceeds.
func Ratio(raw string) (ratio float64) {
	defer func() {
		if recover() != nil {
			ratio = 0
		}
	}()

	lines := strings.Split(raw, "\n")
	if len(lines) == 0 {
		return 0
	}

	distinct := make(map[uint64]struct{}, len(lines))
	for _, line := range lines {
		distinct[xxhash.Sum64String(line)] = struct{}{}
	}

	return 1 - float64(len(distinct))/float64(len(lines))
}

// LineCount returns the number of lines in raw text as seen by Ratio.
// The empty string is one (empty) line.
func LineCount(raw string) int {
	return strings.Count(raw, "\n") + 1
}
