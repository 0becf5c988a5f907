// This file provides a small fluent builder for constructing an Element
// tree programmatically, for callers that want to emit markup without
// parsing any. Grounded on shapestone-shape-xml's pkg/xml/dom.go fluent
// Element API, adapted from that package's map[string]interface{}-backed
// node to build directly on tree.Element.
package xml

import "github.com/shapestone/xmlrecover/internal/tree"

// New returns a fresh Element named name, ready for chained construction.
func New(name string) *Element {
	return tree.NewElement(name)
}

// WithAttr sets an attribute and returns el for chaining.
func WithAttr(el *Element, name, value string) *Element {
	el.SetAttr(name, value)
	return el
}

// WithText appends text content and returns el for chaining.
func WithText(el *Element, text string) *Element {
	el.AppendText(text)
	return el
}

// WithChild appends child and returns el for chaining.
func WithChild(el *Element, child *Element) *Element {
	el.AppendChild(child)
	return el
}

// ChildText returns the flattened text of the first child named name, and
// whether such a child exists.
func ChildText(el *Element, name string) (string, bool) {
	for _, c := range el.Children {
		if c.Name == name {
			return c.FlatText(), true
		}
	}
	return "", false
}
