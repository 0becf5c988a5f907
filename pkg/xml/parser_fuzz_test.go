// Grounded on shapestone-shape-xml's pkg/xml/parser_fuzz_test.go: seed a
// handful of examples, then assert only that the functions never panic.
// Adapted because this parser's Totality invariant means Parse itself
// never reports a markup error — there is nothing to branch on here, only
// the absence of a panic or an infinite loop.
package xml

import "testing"

func FuzzParse(f *testing.F) {
	f.Add("<root></root>")
	f.Add(`<user id="123">Alice</user>`)
	f.Add("<empty/>")
	f.Add("<nested><child><grandchild/></child></nested>")
	f.Add("<a><b>oops</a>")
	f.Add("<a></b></a>")
	f.Add("a & b < c &amp; &#x41; &unknown;")
	f.Add("<!-- comment --><a/>")
	f.Add(`<a x="1"y="2">`)

	f.Fuzz(func(t *testing.T, input string) {
		result, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse returned an io-level error for in-memory input: %v", err)
		}
		if result == nil {
			t.Fatal("Parse returned a nil Result")
		}
	})
}

func FuzzRenderRoundTrip(f *testing.F) {
	f.Add("<root></root>")
	f.Add(`<user id="123">Alice</user>`)
	f.Add("<empty/>")

	f.Fuzz(func(t *testing.T, input string) {
		result, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if result.Root == nil {
			return
		}
		_ = Render(result.Root)
		_ = RenderIndent(result.Root, "", "  ")
		_ = Canonicalize(result.Root)
	})
}

func FuzzValidate(f *testing.F) {
	f.Add("<root></root>")
	f.Add("invalid")
	f.Add("<unclosed")

	f.Fuzz(func(t *testing.T, input string) {
		_ = Validate(input)
	})
}
