package tree

// TextMap records one span of a text chunk and the source range it came
// from. A TextMapLiteral entry covers a run of plain characters that map
// one-to-one onto the source (adjacent runs coalesce). Three situations
// produce a non-literal entry: a character reference (source "&amp;" collapses to one output
// character), a surrogate pair (two UTF-16 code units collapse to one rune
// in a []rune buffer, recorded for callers re-deriving UTF-16 offsets), and
// a comment (zero output characters, a nonzero source range to skip over).
//
// Grounded on the position back-channel spec §4.4 requires and on
// PositionMap's binary-search design (internal/tokenizer/positionmap.go);
// a TextMap is the per-chunk analogue, keyed by output offset instead of by
// document-wide input offset.
type TextMap struct {
	// TextOffset is the offset into the owning chunk's string where this
	// span's output begins.
	TextOffset int

	// TextLen is the number of output characters this span covers. Zero
	// for a comment skip, which contributes no output.
	TextLen int

	// SrcStart and SrcEnd delimit the span's source range. SrcEnd is
	// exclusive.
	SrcStart, SrcEnd int

	Kind TextMapKind
}

// TextMapKind distinguishes why a TextMap entry's output and source ranges
// diverge.
type TextMapKind int

const (
	TextMapLiteral TextMapKind = iota
	TextMapCharRef
	TextMapSurrogatePair
	TextMapCommentSkip
)

// Locate resolves an output offset within one chunk back to a source
// offset, given that chunk's recorded entries (in ascending TextOffset
// order, as a builder appends them). Offsets that fall inside a
// non-literal span resolve to that span's SrcStart; offsets past every
// recorded span fall back to the identity mapping against the last span's
// end, which holds for any plain literal tail that never needed an entry.
func Locate(entries []TextMap, textOffset int) int {
	var last TextMap
	haveLast := false
	for _, e := range entries {
		if textOffset < e.TextOffset {
			break
		}
		if textOffset < e.TextOffset+e.TextLen {
			return e.SrcStart + (textOffset - e.TextOffset)
		}
		last = e
		haveLast = true
	}
	if !haveLast {
		return textOffset
	}
	return last.SrcEnd + (textOffset - (last.TextOffset + last.TextLen))
}
