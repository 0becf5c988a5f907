// Package builder implements the tree-shape stage of the recovering markup
// parser (spec §2's TreeBuilder component): it consumes the abstract-token
// stream internal/tokenizer produces and assembles an internal/tree.Element
// document, maintaining an open-element stack and recovering from
// mismatched or missing end tags without ever failing structurally.
//
// Grounded on the builder/tokenizer split spec §4.3 describes; the open
// stack and "most recent matching" end-tag algorithm follow that section's
// prose directly, since none of the example repos implement a recovering
// tree builder to draw a closer analogue from.
package builder

import (
	"strings"

	"github.com/shapestone/xmlrecover/internal/tokenizer"
	"github.com/shapestone/xmlrecover/internal/tree"
)

// Builder drives a Tokenizer to completion and returns the resulting tree.
type Builder struct {
	tok            *tokenizer.Tokenizer
	errSink        tokenizer.ErrorSink
	trackPositions bool

	root  *tree.Element
	stack []*tree.Element

	inAttrValue  bool
	curAttrName  string
	curAttrValue strings.Builder
	discardAttr  bool
}

// New returns a Builder that reads abstract tokens from tok and reports
// diagnostics to errSink (which may be nil). trackPositions enables source
// range and TextMap bookkeeping on the resulting Element tree.
func New(tok *tokenizer.Tokenizer, errSink tokenizer.ErrorSink, trackPositions bool) *Builder {
	return &Builder{tok: tok, errSink: errSink, trackPositions: trackPositions}
}

// Build runs the tokenizer to End and returns the root element, or nil if
// the input produced none (EmptyDocument is reported in that case).
func (b *Builder) Build() *tree.Element {
	for {
		tok := b.tok.Next()
		switch tok.Kind {
		case tokenizer.DataChar:
			b.handleDataChar(tok)
		case tokenizer.StartTagOpen:
			b.handleStartTagOpen(tok)
		case tokenizer.AttributeName:
			b.handleAttributeName(tok)
		case tokenizer.StartTagClose:
			b.finalizePendingAttr()
		case tokenizer.EmptyElementTagClose:
			b.finalizePendingAttr()
			b.handleEmptyElementClose(tok)
		case tokenizer.EndTag:
			b.finalizePendingAttr()
			b.handleEndTag(tok)
		case tokenizer.End:
			b.finalizePendingAttr()
			b.handleEnd(tok)
			return b.root
		}
	}
}

func (b *Builder) currentElement() *tree.Element {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

func (b *Builder) reportError(kind tokenizer.ErrorKind, start, end int, args ...string) {
	if b.errSink != nil {
		b.errSink(kind, start, end, args...)
	}
}

func (b *Builder) handleStartTagOpen(tok tokenizer.AbstractToken) {
	el := tree.NewElement(tok.Name)
	if b.trackPositions {
		el.Start = tok.Start
	}
	if len(b.stack) == 0 {
		if b.root != nil {
			b.reportError(tokenizer.ContentAfterRoot, tok.Start, tok.Start)
		} else {
			b.root = el
		}
	} else {
		b.stack[len(b.stack)-1].AppendChild(el)
	}
	b.stack = append(b.stack, el)
}

func (b *Builder) handleAttributeName(tok tokenizer.AbstractToken) {
	b.finalizePendingAttr()
	b.discardAttr = false
	if top := b.currentElement(); top != nil {
		if _, exists := top.Attr(tok.Name); exists {
			b.reportError(tokenizer.DuplicateAttribute, tok.Start, tok.End, tok.Name)
			b.discardAttr = true
		}
	}
	if tok.Name == "xmlns" {
		// XMLNSAttribute was already reported by the tokenizer; the
		// attribute itself is rejected, not stored.
		b.discardAttr = true
	}
	b.curAttrName = tok.Name
	b.inAttrValue = true
	b.curAttrValue.Reset()
}

func (b *Builder) finalizePendingAttr() {
	if !b.inAttrValue {
		return
	}
	if top := b.currentElement(); top != nil && !b.discardAttr {
		top.SetAttr(b.curAttrName, b.curAttrValue.String())
	}
	b.inAttrValue = false
	b.curAttrName = ""
	b.discardAttr = false
}

func (b *Builder) handleEmptyElementClose(tok tokenizer.AbstractToken) {
	if len(b.stack) == 0 {
		return
	}
	top := b.stack[len(b.stack)-1]
	if b.trackPositions {
		top.End = tok.End
	}
	b.stack = b.stack[:len(b.stack)-1]
}

// handleEndTag implements the "most recent matching" recovery: the stack
// is searched top-down for an open element with the same name. Elements
// above the match are implicitly closed (one MISSING_END_TAG per element);
// an end tag matching nothing in the stack reports MISMATCHED_END_TAG and
// closes nothing.
func (b *Builder) handleEndTag(tok tokenizer.AbstractToken) {
	idx := -1
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i].Name == tok.Name {
			idx = i
			break
		}
	}
	if idx == -1 {
		b.reportError(tokenizer.MismatchedEndTag, tok.Start, tok.End, tok.Name)
		return
	}
	for len(b.stack)-1 > idx {
		top := b.stack[len(b.stack)-1]
		b.reportError(tokenizer.MissingEndTag, tok.Start, tok.Start, top.Name)
		if b.trackPositions {
			top.End = tok.Start
		}
		b.stack = b.stack[:len(b.stack)-1]
	}
	matched := b.stack[len(b.stack)-1]
	if b.trackPositions {
		matched.End = tok.End
	}
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *Builder) handleEnd(tok tokenizer.AbstractToken) {
	for len(b.stack) > 0 {
		top := b.stack[len(b.stack)-1]
		b.reportError(tokenizer.MissingEndTag, tok.Start, tok.Start, top.Name)
		if b.trackPositions {
			top.End = tok.Start
		}
		b.stack = b.stack[:len(b.stack)-1]
	}
	if b.root == nil {
		b.reportError(tokenizer.EmptyDocument, tok.Start, tok.Start)
	}
}

func (b *Builder) handleDataChar(tok tokenizer.AbstractToken) {
	if b.inAttrValue {
		b.curAttrValue.WriteRune(tok.CodePoint)
		return
	}

	top := b.currentElement()
	if top == nil {
		if !isStructuralWhitespace(tok.CodePoint) {
			if b.root == nil {
				b.reportError(tokenizer.TextBeforeRoot, tok.Start, tok.End)
			} else {
				b.reportError(tokenizer.ContentAfterRoot, tok.Start, tok.End)
			}
		}
		return
	}

	outOffset := len([]rune(top.Text[top.LastChunkIndex()]))
	top.AppendText(string(tok.CodePoint))
	if b.trackPositions {
		kind := tree.TextMapLiteral
		switch {
		case tok.CodePoint > 0xFFFF:
			kind = tree.TextMapSurrogatePair
		case tok.SrcLen != 1:
			kind = tree.TextMapCharRef
		}
		top.NoteTextMap(outOffset, 1, tok.Start, tok.End, kind)
	}
}

// CommentSink returns a tokenizer.CommentSink bound to this builder's
// current element, recording a zero-length TextMap span so position
// lookups through a skipped comment still resolve. Comments encountered
// before the root opens or after it closes are discarded, matching the
// same "nowhere to attach it" treatment as stray whitespace there.
func (b *Builder) CommentSink() tokenizer.CommentSink {
	return func(start, end int) {
		if !b.trackPositions {
			return
		}
		top := b.currentElement()
		if top == nil {
			return
		}
		outOffset := len([]rune(top.Text[top.LastChunkIndex()]))
		top.NoteTextMap(outOffset, 0, start, end, tree.TextMapCommentSkip)
	}
}

func isStructuralWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f':
		return true
	}
	return false
}
