// Package xml provides a recovering parser for a restricted markup
// language: a strict subset of XML with no DTDs, namespaces, processing
// instructions, or CDATA sections, but with comments and character
// references.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple
// goroutines. Each call creates its own Tokenizer and Builder with no
// shared mutable state.
//
// # Totality
//
// Parse and ParseReader never fail on malformed markup. A mismatched end
// tag, an unescaped "&", a dangling start tag at end of input — all of it
// recovers into a usable Element tree, with the recovery itself recorded
// as a Diagnostic rather than surfaced as an error. The returned error is
// reserved for failures unrelated to the markup itself, such as an
// io.Reader that returned a read error.
//
// # Parsing APIs
//
//   - Parse(string) - parses markup already in memory
//   - ParseReader(io.Reader) - parses markup from any io.Reader
//
// Example:
//
//	result, err := xml.Parse(`<user id="123"><name>Alice</name></user>`)
//	if err != nil {
//	    // an io-level failure, not a markup problem
//	}
//	if result.Diagnostics.HasErrors() {
//	    for _, d := range result.Diagnostics {
//	        fmt.Printf("%d:%d: %s: %s\n", d.Line, d.Column, d.Kind, d.Message)
//	    }
//	}
//	name := result.Root.Children[0].FlatText() // "Alice"
package xml

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/shapestone/xmlrecover/internal/builder"
	"github.com/shapestone/xmlrecover/internal/tokenizer"
	"github.com/shapestone/xmlrecover/internal/tree"
)

// Element is the parsed document's node type. It is a direct alias of
// internal/tree.Element. Trees come from this package's parser or from the
// New/WithAttr/WithText/WithChild helpers in dom.go, both of which keep the
// n+1 text-chunk rule.
type Element = tree.Element

// Attribute is one name/value pair of an Element, in first-occurrence
// source order.
type Attribute = tree.Attribute

// Result is everything a Parse or ParseReader call produces.
type Result struct {
	// Root is the parsed document's root element, or nil if the input
	// produced no element at all (see EmptyDocument in Diagnostics).
	Root *Element

	// Diagnostics holds every recoverable condition the parse noticed, in
	// source order.
	Diagnostics Diagnostics

	// SessionID correlates this parse's diagnostics across logs and
	// tooling. It is the caller's WithSourceURL value when supplied,
	// otherwise a freshly generated UUID (google/uuid), so that two
	// diagnostics from the same unidentified in-memory parse can still be
	// grouped by whoever consumes them downstream.
	SessionID string
}

// Parse parses a complete markup document held in memory.
//
// For parsing large files or streaming data, use ParseReader instead.
func Parse(input string, opts ...ParseOption) (*Result, error) {
	return parse([]rune(input), opts...)
}

// ParseReader parses markup from an io.Reader. The reader can be any
// io.Reader implementation: os.File, strings.Reader, bytes.Buffer,
// network streams, and so on.
//
// The returned error reports only a failure to read from reader; markup
// defects never produce an error here, only Diagnostics.
func ParseReader(r io.Reader, opts ...ParseOption) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("xml: reading input: %w", err)
	}
	return parse([]rune(string(data)), opts...)
}

func parse(input []rune, opts ...ParseOption) (*Result, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	posMap := tokenizer.NewPositionMap()
	var diags Diagnostics
	sink := func(kind tokenizer.ErrorKind, start, end int, args ...string) {
		if cfg.suppressedErrors[kind] {
			return
		}
		line, col := posMap.Locate(start)
		diags = append(diags, Diagnostic{
			Kind: kind, Message: kind.Message(args...), Args: args,
			Start: start, End: end, Line: line, Column: col,
		})
		if cfg.errorSink != nil {
			cfg.errorSink(kind, start, end, args...)
		}
	}

	root := builder.Parse(input, posMap, sink, cfg.trackPositions)

	sessionID := cfg.sourceURL
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	return &Result{Root: root, Diagnostics: diags, SessionID: sessionID}, nil
}

// Validate reports whether input parses without any diagnostic. It is a
// convenience wrapper around Parse for callers that only care whether the
// input is well-formed, not about recovering a tree from it.
func Validate(input string, opts ...ParseOption) error {
	result, err := Parse(input, opts...)
	if err != nil {
		return err
	}
	return diagnosticsError(result.Diagnostics)
}

// ValidateReader is Validate's io.Reader counterpart.
func ValidateReader(r io.Reader, opts ...ParseOption) error {
	result, err := ParseReader(r, opts...)
	if err != nil {
		return err
	}
	return diagnosticsError(result.Diagnostics)
}

func diagnosticsError(diags Diagnostics) error {
	if len(diags) == 0 {
		return nil
	}
	first := diags[0]
	return fmt.Errorf("xml: %d diagnostic(s); first: %d:%d: %s: %s",
		len(diags), first.Line, first.Column, first.Kind, first.Message)
}
