package tokenizer

import (
	"reflect"
	"testing"
)

// summary strips position information from an AbstractToken so test tables
// can compare on shape alone.
type summary struct {
	Kind      AbstractKind
	Name      string
	CodePoint rune
}

func summarize(tok AbstractToken) summary {
	return summary{Kind: tok.Kind, Name: tok.Name, CodePoint: tok.CodePoint}
}

func run(t *testing.T, input string) ([]summary, []ErrorKind) {
	t.Helper()
	var errs []ErrorKind
	sink := func(kind ErrorKind, start, end int, args ...string) {
		errs = append(errs, kind)
	}
	tz := New([]rune(input), nil, sink, nil)

	var got []summary
	for {
		tok := tz.Next()
		got = append(got, summarize(tok))
		if tok.Kind == End {
			break
		}
	}
	return got, errs
}

func dc(r rune) summary             { return summary{Kind: DataChar, CodePoint: r} }
func startTagOpen(name string) summary { return summary{Kind: StartTagOpen, Name: name} }
func attrName(name string) summary     { return summary{Kind: AttributeName, Name: name} }
func endTag(name string) summary       { return summary{Kind: EndTag, Name: name} }

var startTagClose = summary{Kind: StartTagClose}
var emptyElemClose = summary{Kind: EmptyElementTagClose}
var end = summary{Kind: End}

func TestTokenizerBasicElement(t *testing.T) {
	got, errs := run(t, "<a>hi</a>")
	want := []summary{startTagOpen("a"), startTagClose, dc('h'), dc('i'), endTag("a"), end}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestTokenizerAttributes(t *testing.T) {
	got, errs := run(t, `<a x="1" y='2'>`)
	want := []summary{
		startTagOpen("a"),
		attrName("x"), dc('1'),
		attrName("y"), dc('2'),
		startTagClose,
		end,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestTokenizerEmptyElement(t *testing.T) {
	got, _ := run(t, "<br/>")
	want := []summary{startTagOpen("br"), emptyElemClose, end}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokenizerCharacterReferences(t *testing.T) {
	got, errs := run(t, "a&amp;b&#x41;c")
	want := []summary{dc('a'), dc('&'), dc('b'), dc('A'), dc('c'), end}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestTokenizerUnknownNamedReference(t *testing.T) {
	got, errs := run(t, "&frobnicate;")
	want := []summary{dc(0xFFFD), end}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(errs) != 1 || errs[0] != UnknownCharName {
		t.Fatalf("errors = %v, want [UnknownCharName]", errs)
	}
}

func TestTokenizerLoneLtGivesUpAsData(t *testing.T) {
	got, errs := run(t, "a < b")
	want := []summary{dc('a'), dc(' '), dc('<'), dc(' '), dc('b'), end}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(errs) != 1 || errs[0] != UnescapedLt {
		t.Fatalf("errors = %v, want [UnescapedLt]", errs)
	}
}

func TestTokenizerLoneAmpGivesUpAsData(t *testing.T) {
	got, errs := run(t, "a & b")
	want := []summary{dc('a'), dc(' '), dc('&'), dc(' '), dc('b'), end}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(errs) != 1 || errs[0] != UnescapedAmp {
		t.Fatalf("errors = %v, want [UnescapedAmp]", errs)
	}
}

func TestTokenizerLoneGtReportsAndEmitsLiteral(t *testing.T) {
	got, errs := run(t, "a > b")
	want := []summary{dc('a'), dc(' '), dc('>'), dc(' '), dc('b'), end}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(errs) != 1 || errs[0] != UnescapedGt {
		t.Fatalf("errors = %v, want [UnescapedGt]", errs)
	}
}

func TestTokenizerCommentIsSkippedEntirely(t *testing.T) {
	got, errs := run(t, "<a><!-- hi -- there --></a>")
	want := []summary{startTagOpen("a"), startTagClose, endTag("a"), end}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	found := false
	for _, e := range errs {
		if e == DoubleMinusInComment {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected DoubleMinusInComment among %v", errs)
	}
}

func TestTokenizerUnterminatedComment(t *testing.T) {
	got, errs := run(t, "<a><!-- oops")
	want := []summary{startTagOpen("a"), startTagClose, end}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(errs) != 1 || errs[0] != UnterminatedComment {
		t.Fatalf("errors = %v, want [UnterminatedComment]", errs)
	}
}

func TestTokenizerMissingQuoteAtEOF(t *testing.T) {
	got, errs := run(t, `<a x="1`)
	want := []summary{startTagOpen("a"), attrName("x"), dc('1'), startTagClose, end}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(errs) != 1 || errs[0] != MissingQuote {
		t.Fatalf("errors = %v, want [MissingQuote]", errs)
	}
}

func TestTokenizerEOFAfterEquals(t *testing.T) {
	got, errs := run(t, "<a x=")
	want := []summary{startTagOpen("a"), attrName("x"), startTagClose, end}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(errs) != 1 || errs[0] != EOFInStartTag {
		t.Fatalf("errors = %v, want [EOFInStartTag]", errs)
	}
}

func TestTokenizerUnquotedAttributeValue(t *testing.T) {
	got, errs := run(t, "<a x=1 y=2>")
	want := []summary{
		startTagOpen("a"),
		attrName("x"), dc('1'),
		attrName("y"), dc('2'),
		startTagClose,
		end,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestTokenizerSpaceRequiredBeforeAttributeName(t *testing.T) {
	got, errs := run(t, `<a x="1"y="2">`)
	want := []summary{
		startTagOpen("a"),
		attrName("x"), dc('1'),
		attrName("y"), dc('2'),
		startTagClose,
		end,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(errs) != 1 || errs[0] != SpaceRequiredBeforeAttributeName {
		t.Fatalf("errors = %v, want [SpaceRequiredBeforeAttributeName]", errs)
	}
}

func TestTokenizerCRLFNormalization(t *testing.T) {
	got, _ := run(t, "a\r\nb\rc\nd")
	want := []summary{dc('a'), dc('\n'), dc('b'), dc('\n'), dc('c'), dc('\n'), dc('d'), end}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokenizerForbiddenCodePointReplaced(t *testing.T) {
	got, errs := run(t, "a\x00b")
	want := []summary{dc('a'), dc(0xFFFD), dc('b'), end}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(errs) != 1 || errs[0] != InvalidCodePoint {
		t.Fatalf("errors = %v, want [InvalidCodePoint]", errs)
	}
}

func TestTokenizerEndTagGivenUpWhenNoName(t *testing.T) {
	got, errs := run(t, "a</ b")
	want := []summary{dc('a'), dc('<'), dc('/'), dc(' '), dc('b'), end}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(errs) != 1 || errs[0] != UnescapedLt {
		t.Fatalf("errors = %v, want [UnescapedLt]", errs)
	}
}

func TestTokenizerNeverHangsOnPathologicalInput(t *testing.T) {
	inputs := []string{
		"", "<", ">", "&", "<!--", "<!--x", "</", "</a", "<a", "<a ", "<a x",
		"<a x=", "<a x='", "<a x=\"", "&#x", "&#x;", "&#xFFFFFFFF;", strings_repeat("<", 10000),
	}
	for _, in := range inputs {
		tz := New([]rune(in), nil, nil, nil)
		count := 0
		for {
			tok := tz.Next()
			count++
			if tok.Kind == End {
				break
			}
			if count > len(in)*4+100 {
				t.Fatalf("tokenizer did not terminate on input %q", in)
			}
		}
	}
}

func strings_repeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
