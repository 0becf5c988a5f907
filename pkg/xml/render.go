// This file implements serialization of an Element tree back to markup
// bytes: compact, pretty-printed, and canonical (attribute-sorted) forms.
//
// Grounded on shapestone-shape-xml's pkg/xml/render.go: the sync.Pool
// buffer reuse and the self-closing-tag-when-empty rule carry over
// unchanged. What changes is the node shape being walked — the teacher's
// render.go switches over ast.ObjectNode/ArrayDataNode/LiteralNode and
// sorts attributes unconditionally; this one walks Element's interleaved
// Text/Children slices directly and only sorts attributes in Canonicalize,
// since Render is meant to reproduce the parser's own attribute order.
// Escaping uses a dedicated escapeText/escapeAttr pair rather than
// html.EscapeString: that stdlib helper emits decimal numeric references
// (&#34; &#39;) for quotes, which internal/tokenizer's character-reference
// grammar does not recognize (only &lt; &gt; &amp; &quot; &apos; and the
// hexadecimal &#xHEX; form are), so output containing a quote or
// apostrophe would not re-parse to the same tree. Escaping to exactly the
// four named references spec §6 lists (&amp; &lt; &gt; &quot;) keeps
// Render/RenderIndent/Canonicalize output round-trip-safe through Parse.
package xml

import (
	"bytes"
	"sort"
	"strings"
	"sync"

	"github.com/shapestone/xmlrecover/internal/tree"
)

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 1024))
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() <= 64*1024 {
		bufferPool.Put(buf)
	}
}

// Render serializes el to compact XML bytes, preserving attribute order
// exactly as parsed.
func Render(el *Element) []byte {
	return renderToBytes(el, false, "", "", false)
}

// RenderIndent serializes el to pretty-printed XML bytes. prefix is
// written at the start of every indented line; indent is repeated once per
// nesting depth.
func RenderIndent(el *Element, prefix, indent string) []byte {
	return renderToBytes(el, true, prefix, indent, false)
}

// Canonicalize serializes el compactly with attributes sorted by name, so
// two semantically equivalent trees produce identical bytes regardless of
// the source document's attribute order.
func Canonicalize(el *Element) []byte {
	return renderToBytes(el, false, "", "", true)
}

func renderToBytes(el *Element, pretty bool, prefix, indent string, sortAttrs bool) []byte {
	if el == nil {
		return nil
	}
	buf := getBuffer()
	defer putBuffer(buf)
	renderElement(el, buf, pretty, prefix, indent, 0, sortAttrs)
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result
}

func renderElement(el *Element, buf *bytes.Buffer, pretty bool, prefix, indent string, depth int, sortAttrs bool) {
	if pretty && depth > 0 {
		buf.WriteString(prefix)
		buf.WriteString(strings.Repeat(indent, depth))
	}
	buf.WriteByte('<')
	buf.WriteString(el.Name)
	writeAttrs(buf, el.Attrs, sortAttrs)

	allTextEmpty := true
	for _, chunk := range el.Text {
		if chunk != "" {
			allTextEmpty = false
			break
		}
	}
	hasChildren := len(el.Children) > 0

	if !hasChildren && allTextEmpty {
		buf.WriteString("/>")
		if pretty {
			buf.WriteByte('\n')
		}
		return
	}

	buf.WriteByte('>')
	if !hasChildren {
		buf.WriteString(escapeText(el.Text[0]))
	} else {
		leadEmpty := el.Text[0] == ""
		trailEmpty := el.Text[len(el.Text)-1] == ""
		if pretty && leadEmpty {
			buf.WriteByte('\n')
		}
		for i, child := range el.Children {
			if el.Text[i] != "" {
				buf.WriteString(escapeText(el.Text[i]))
			}
			renderElement(child, buf, pretty, prefix, indent, depth+1, sortAttrs)
		}
		if last := el.Text[len(el.Text)-1]; last != "" {
			buf.WriteString(escapeText(last))
		}
		if pretty && trailEmpty {
			buf.WriteString(prefix)
			buf.WriteString(strings.Repeat(indent, depth))
		}
	}

	buf.WriteString("</")
	buf.WriteString(el.Name)
	buf.WriteByte('>')
	if pretty {
		buf.WriteByte('\n')
	}
}

func writeAttrs(buf *bytes.Buffer, attrs []tree.Attribute, sortAttrs bool) {
	if sortAttrs {
		sorted := append([]tree.Attribute(nil), attrs...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
		attrs = sorted
	}
	for _, a := range attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		buf.WriteString(escapeAttr(a.Value))
		buf.WriteByte('"')
	}
}

// escapeText escapes s for use as element text content, using exactly the
// named references spec §6 requires: &amp; &lt; &gt;. A literal apostrophe
// or double quote needs no escaping outside an attribute value, since
// neither is a delimiter in Main-mode text.
func escapeText(s string) string {
	var buf strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// escapeAttr escapes s for use as a double-quoted attribute value: the same
// three as escapeText plus &quot;, since writeAttrs always delimits with
// ". A literal apostrophe needs no escaping, since it never closes a
// double-quoted value.
func escapeAttr(s string) string {
	var buf strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
