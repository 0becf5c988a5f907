package builder

import (
	"github.com/shapestone/xmlrecover/internal/tokenizer"
	"github.com/shapestone/xmlrecover/internal/tree"
)

// Parse tokenizes input and builds its element tree in one call. The
// builder's CommentSink is wired into the tokenizer before any token is
// read, so TextMap bookkeeping for skipped comments attaches to whichever
// element is open at the time.
func Parse(input []rune, posMap *tokenizer.PositionMap, errSink tokenizer.ErrorSink, trackPositions bool) *tree.Element {
	b := &Builder{errSink: errSink, trackPositions: trackPositions}
	b.tok = tokenizer.New(input, posMap, errSink, b.CommentSink())
	return b.Build()
}
