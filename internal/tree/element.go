// Package tree implements the parsed-document data model (spec §2's Tree
// model component): Element nodes with ordered, deduplicated attributes and
// interleaved text/child content, plus the TextMap position back-channel
// that lets offsets into a node's flattened text be resolved back to source
// positions through character-reference expansion and comment skipping.
//
// Grounded on shapestone-shape-xml's pkg/xml/dom.go Element, generalized
// from that package's map[string]interface{} "@attr"/"#text" convention to
// a dedicated struct shape matching the spec's invariants (n+1 text chunks
// for n children, attribute order preserved, first-write-wins on repeats).
package tree

// Attribute is one name/value pair of an Element, in first-occurrence
// source order.
type Attribute struct {
	Name  string
	Value string
}

// Element is one node of the parsed tree. Name is the element's tag name.
// Attrs holds attributes deduplicated by name (first value wins, as spec §3
// requires — the builder discards the value of a repeated name before it
// ever reaches SetAttr) while preserving first-occurrence order. Text holds the
// interleaved text chunks around Children: len(Text) == len(Children)+1
// always holds, even when both are empty (Text == [""]).
type Element struct {
	Name     string
	Attrs    []Attribute
	Text     []string
	Children []*Element

	Parent *Element
	Index  int // this element's position within Parent.Children, or -1 for the root

	// Start and End are this element's full source range, from the '<' of
	// its start tag to the end of its matched or synthesized end tag.
	// Populated only when the builder is configured to track positions.
	Start, End int

	// TextMap holds one entry list per Text chunk (TextMap[i] describes
	// Text[i]); resolve an offset within a chunk with tree.Locate. When the
	// builder tracks positions every character gets an entry (adjacent
	// literal characters coalesce into one), so an entry list is nil only
	// for a chunk that received no text and no comment. Every entry list is
	// nil when position tracking is disabled.
	TextMap [][]TextMap
}

// NewElement returns an empty Element named name, with the required single
// empty text chunk and Index set to the "detached" sentinel -1.
func NewElement(name string) *Element {
	return &Element{Name: name, Text: []string{""}, TextMap: make([][]TextMap, 1), Index: -1}
}

// SetAttr inserts or overwrites an attribute, preserving the position of
// the first occurrence of name. Callers that must implement spec §3's
// first-write-wins rule for markup-sourced duplicates (internal/builder)
// are responsible for not calling SetAttr a second time for the same name;
// SetAttr itself is the general insert-or-update primitive the DOM-style
// construction API in pkg/xml/dom.go and Marshal build on, where
// overwriting an already-set attribute is the intended behavior.
func (e *Element) SetAttr(name, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attribute{Name: name, Value: value})
}

// Attr returns the value of the named attribute and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AppendChild appends child to e's children, threading the n+1-text-chunks
// invariant by appending the new trailing empty chunk, and sets the child's
// Parent/Index back-references.
func (e *Element) AppendChild(child *Element) {
	child.Parent = e
	child.Index = len(e.Children)
	e.Children = append(e.Children, child)
	e.Text = append(e.Text, "")
	e.TextMap = append(e.TextMap, nil)
}

// AppendText appends s to the text chunk that currently precedes the next
// child to be added (i.e. the last chunk in Text).
func (e *Element) AppendText(s string) {
	e.Text[len(e.Text)-1] += s
}

// LastChunkIndex returns the index of the text chunk currently being
// appended to.
func (e *Element) LastChunkIndex() int { return len(e.Text) - 1 }

// NoteTextMap appends or extends an entry describing one span of the last
// text chunk, coalescing with the previous entry when both are literal and
// contiguous in both output and source offsets.
func (e *Element) NoteTextMap(outOffset, outLen, srcStart, srcEnd int, kind TextMapKind) {
	i := e.LastChunkIndex()
	entries := e.TextMap[i]
	if n := len(entries); n > 0 {
		last := &entries[n-1]
		if last.Kind == TextMapLiteral && kind == TextMapLiteral &&
			last.TextOffset+last.TextLen == outOffset && last.SrcEnd == srcStart {
			last.TextLen += outLen
			last.SrcEnd = srcEnd
			return
		}
	}
	e.TextMap[i] = append(entries, TextMap{
		TextOffset: outOffset, TextLen: outLen,
		SrcStart: srcStart, SrcEnd: srcEnd, Kind: kind,
	})
}

// FlatText concatenates every text chunk, discarding the information about
// where children were interleaved. Useful for callers that only want an
// element's character content.
func (e *Element) FlatText() string {
	var out string
	for _, chunk := range e.Text {
		out += chunk
	}
	return out
}

// Walk calls fn for e and every descendant, in document order.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}
