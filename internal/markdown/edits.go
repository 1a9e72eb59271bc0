package markdown

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Edit represents a targeted byte-range replacement.
//
// Start and End are byte offsets into the original source, with End exclusive.
// Replacement replaces source[Start:End].
type Edit struct {
	Start       int
	End         int
	Replacement string
}

// ApplyEdits applies a set of byte-range edits to source and returns the updated text.
//
// Edits must be non-overlapping and refer to offsets in the original source. Bytes
// outside every edit are copied through untouched.
func ApplyEdits(source string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	size := len(source)
	for i, e := range sorted {
		if e.Start < 0 || e.End < 0 {
			return "", fmt.Errorf("invalid edit[%d]: negative range", i)
		}
		if e.End < e.Start {
			return "", fmt.Errorf("invalid edit[%d]: end before start", i)
		}
		if e.End > len(source) {
			return "", fmt.Errorf("invalid edit[%d]: range out of bounds", i)
		}
		if i > 0 && e.Start < sorted[i-1].End {
			return "", errors.New("invalid edits: overlapping ranges")
		}
		size += len(e.Replacement) - (e.End - e.Start)
	}

	var out strings.Builder
	out.Grow(size)
	cursor := 0
	for _, e := range sorted {
		out.WriteString(source[cursor:e.Start])
		out.WriteString(e.Replacement)
		cursor = e.End
	}
	out.WriteString(source[cursor:])

	return out.String(), nil
}
