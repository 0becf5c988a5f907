package xml

import "github.com/shapestone/xmlrecover/internal/tokenizer"

// ErrorKind identifies the category of a Diagnostic. It is a direct
// re-export of internal/tokenizer.ErrorKind so callers never need to
// import an internal package to compare against a returned diagnostic.
type ErrorKind = tokenizer.ErrorKind

// ErrorSink receives every diagnostic a Parse call raises, in source
// order, in addition to the ones collected into the returned Result's
// Diagnostics. See WithErrorSink.
type ErrorSink func(kind ErrorKind, start, end int, args ...string)

// The full diagnostic taxonomy (spec §7), re-exported for callers that
// want to branch on, count, or suppress specific kinds.
const (
	IsolatedSurrogate                = tokenizer.IsolatedSurrogate
	InvalidCodePoint                 = tokenizer.InvalidCodePoint
	UnescapedLt                      = tokenizer.UnescapedLt
	UnescapedGt                      = tokenizer.UnescapedGt
	UnescapedAmp                     = tokenizer.UnescapedAmp
	RefCodePointTooBig               = tokenizer.RefCodePointTooBig
	ForbiddenCodePointRef            = tokenizer.ForbiddenCodePointRef
	UnknownCharName                  = tokenizer.UnknownCharName
	MissingQuote                     = tokenizer.MissingQuote
	UnterminatedComment              = tokenizer.UnterminatedComment
	DoubleMinusInComment             = tokenizer.DoubleMinusInComment
	TextBeforeRoot                   = tokenizer.TextBeforeRoot
	ContentAfterRoot                 = tokenizer.ContentAfterRoot
	MissingEndTag                    = tokenizer.MissingEndTag
	MismatchedEndTag                 = tokenizer.MismatchedEndTag
	DuplicateAttribute               = tokenizer.DuplicateAttribute
	XMLNSAttribute                   = tokenizer.XMLNSAttribute
	SpaceRequiredBeforeAttributeName = tokenizer.SpaceRequiredBeforeAttributeName
	EOFInStartTag                    = tokenizer.EOFInStartTag
	EmptyDocument                    = tokenizer.EmptyDocument
)

// Diagnostic is one recoverable condition the parser noticed while
// producing a tree. Unlike an error, a Diagnostic never aborts parsing —
// the parser always returns a usable (possibly empty) Element tree
// alongside whatever Diagnostics it accumulated.
type Diagnostic struct {
	Kind ErrorKind
	// Message is the rendered, human-readable form of Kind and Args.
	Message string
	Args    []string

	// Start and End are the code-point offsets of the diagnostic's
	// source range, End exclusive.
	Start, End int
	// Line and Column are 1-based, resolved via the parse's PositionMap.
	Line, Column int
}

// Diagnostics is the ordered list of Diagnostic values a parse produced,
// in the order the parser encountered them.
type Diagnostics []Diagnostic

// HasErrors reports whether any diagnostic was recorded.
func (d Diagnostics) HasErrors() bool { return len(d) > 0 }

// Count returns how many recorded diagnostics have the given kind.
func (d Diagnostics) Count(kind ErrorKind) int {
	n := 0
	for _, diag := range d {
		if diag.Kind == kind {
			n++
		}
	}
	return n
}
