package tokenizer

import "sort"

// PositionMap records line-start offsets as they are discovered and answers
// (line, column) queries for any character offset. Offsets are counted in
// code units of the original stream.
//
// Grounded on mohae-rollie/parse/lex.go's lineNumber(), which recomputes the
// line count from scratch on every call by scanning the consumed prefix for
// "\n". A recovering parser calls locate() far more often than it discovers
// new lines, so this keeps an append-only, binary-searchable index instead.
type PositionMap struct {
	lineStarts []int
}

// NewPositionMap returns an empty PositionMap; offset 0 is implicitly the
// start of line 1 even before any line start is recorded.
func NewPositionMap() *PositionMap {
	return &PositionMap{}
}

// NoteLineStart records offset as the position of the first character
// following a recognized line terminator. Must be called exactly once per
// line break, in monotonically non-decreasing offset order.
func (m *PositionMap) NoteLineStart(offset int) {
	if offset < 0 {
		panic("tokenizer: negative offset in NoteLineStart")
	}
	if n := len(m.lineStarts); n > 0 && m.lineStarts[n-1] > offset {
		panic("tokenizer: NoteLineStart called out of order")
	}
	m.lineStarts = append(m.lineStarts, offset)
}

// Locate returns the 1-based (line, column) for offset. An offset exactly
// equal to a recorded line start is column 1 of the new line. Offsets before
// any recorded line start are line 1, column offset+1.
func (m *PositionMap) Locate(offset int) (line, column int) {
	if offset < 0 {
		panic("tokenizer: negative offset in Locate")
	}
	// Find the last line start <= offset.
	idx := sort.Search(len(m.lineStarts), func(i int) bool {
		return m.lineStarts[i] > offset
	})
	if idx == 0 {
		return 1, offset + 1
	}
	lineStart := m.lineStarts[idx-1]
	return idx + 1, offset - lineStart + 1
}
