// Package textpos converts between the editor protocol's (line, character)
// coordinates and absolute offsets within one text snapshot.
package textpos

import "sort"

// Position is a zero-based (line, character) coordinate. Character is
// measured in the protocol's code units.
type Position struct {
	Line      uint32
	Character uint32
}

// Range spans from Start (inclusive) to End (exclusive).
type Range struct {
	Start Position
	End   Position
}

// Offset resolves pos to an absolute offset into text.
//
// Out-of-range coordinates clamp instead of failing: a line past the last
// line resolves to the end of text, and a character past the end of its
// line resolves to the end of that line (before the terminator). Clients
// routinely send end-of-document insertion points, so those must resolve.
func Offset(text string, pos Position) int {
	starts := lineStarts(text)
	line := int(pos.Line)
	if line >= len(starts) {
		return len(text)
	}

	lineEnd := len(text)
	if line+1 < len(starts) {
		lineEnd = starts[line+1]
		// Step back over the terminator so clamping stays on this line.
		if lineEnd > starts[line] && text[lineEnd-1] == '\n' {
			lineEnd--
		}
		if lineEnd > starts[line] && text[lineEnd-1] == '\r' {
			lineEnd--
		}
	}

	offset := starts[line] + int(pos.Character)
	if offset > lineEnd {
		offset = lineEnd
	}
	return offset
}

// PositionFor is the inverse of Offset. Offsets outside [0, len(text)] are
// clamped before conversion.
func PositionFor(text string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}

	starts := lineStarts(text)
	// Greatest line start <= offset.
	line := sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1

	return Position{
		Line:      uint32(line),
		Character: uint32(offset - starts[line]),
	}
}

// lineStarts returns the offset of the first character of each line.
// "\r\n" counts as a single terminator so offsets are not double-counted;
// a lone "\r" or "\n" also terminates a line.
//
// The table is rebuilt on every call, which is O(n) in document length.
// Callers tracking very large documents could cache it per snapshot and
// invalidate on mutation; at this cache's scale the rebuild is fine.
func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		}
	}
	return starts
}
