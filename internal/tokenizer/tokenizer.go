package tokenizer

import "strconv"

// Mode is the tokenizer's tokenization-mode state variable (spec §4.2).
type Mode int

const (
	ModeMain Mode = iota
	ModeTag
	ModeStartAttributeValue
	ModeUnquotedAttributeValue
	ModeSingleQuoteAttributeValue
	ModeDoubleQuoteAttributeValue
	ModeComment
)

// ErrorSink receives every lexical diagnostic the tokenizer raises, in
// source order, before the abstract token whose recovery it explains is
// returned from Next.
type ErrorSink func(kind ErrorKind, start, end int, args ...string)

// CommentSink is notified of the source range occupied by a skipped
// comment, so a consumer building a text-map position back-channel (spec
// §4.4) can account for markup that produced no abstract token at all.
type CommentSink func(start, end int)

// Tokenizer is the lexical stage of the recovering parser: a
// lookahead-driven state machine over a decoded code-point buffer. It never
// fails structurally — every input, however malformed, produces a finite
// abstract-token stream terminated by End.
//
// Grounded on mohae-rollie/parse/lex.go's stateFn-driven scanner (next /
// backup / emit cursor discipline), adapted from a goroutine+channel design
// to a synchronous Next() call because spec §5 requires the tokenizer and
// builder to run in lock-step with no suspension points.
type Tokenizer struct {
	input []rune
	pos   int

	mode   Mode
	posMap *PositionMap

	errSink     ErrorSink
	commentSink CommentSink

	ended bool

	quote               rune
	quoteStart          int
	needSpaceBeforeAttr bool
	commentStart        int
}

// New creates a Tokenizer over input. posMap may be nil, in which case the
// tokenizer allocates its own; callers that need to resolve positions after
// parsing should pass a *PositionMap they retain a reference to.
func New(input []rune, posMap *PositionMap, errSink ErrorSink, commentSink CommentSink) *Tokenizer {
	if posMap == nil {
		posMap = NewPositionMap()
	}
	return &Tokenizer{input: input, posMap: posMap, errSink: errSink, commentSink: commentSink}
}

// PositionMap returns the PositionMap the tokenizer is populating.
func (t *Tokenizer) PositionMap() *PositionMap { return t.posMap }

// Next returns the next abstract token. Once End has been returned, every
// subsequent call returns End again at the same position.
func (t *Tokenizer) Next() AbstractToken {
	for {
		if t.ended {
			return AbstractToken{Kind: End, Start: len(t.input), End: len(t.input)}
		}

		var (
			tok AbstractToken
			ok  bool
		)
		switch t.mode {
		case ModeMain:
			tok, ok = t.stepMain()
		case ModeTag:
			tok, ok = t.stepTag()
		case ModeStartAttributeValue:
			tok, ok = t.stepStartAttrValue()
		case ModeUnquotedAttributeValue:
			tok, ok = t.stepUnquotedAttrValue()
		case ModeSingleQuoteAttributeValue, ModeDoubleQuoteAttributeValue:
			tok, ok = t.stepQuotedAttrValue()
		case ModeComment:
			t.stepComment()
			continue
		}
		if ok {
			return tok
		}
	}
}

// ---- Main mode ----

func (t *Tokenizer) stepMain() (AbstractToken, bool) {
	if t.pos >= len(t.input) {
		t.ended = true
		return AbstractToken{Kind: End, Start: t.pos, End: t.pos}, true
	}

	r := t.input[t.pos]
	switch r {
	case '\r':
		return t.consumeLineBreak(), true
	case '\n':
		return t.consumeLineBreak(), true
	case '<':
		return t.stepLt()
	case '>':
		start := t.pos
		t.pos++
		t.reportError(UnescapedGt, start, t.pos)
		return AbstractToken{Kind: DataChar, CodePoint: '>', SrcLen: 1, Start: start, End: t.pos}, true
	case '&':
		return t.stepAmp()
	default:
		return t.consumeOrdinaryChar(), true
	}
}

// consumeLineBreak normalizes CR, CRLF, and LF into a single '\n' DataChar,
// per spec §4.2's line-ending normalization rule, and records the new line
// start. Used both in Main-mode data and inside attribute values (§9's open
// question: this spec takes the position that CR/LF normalization does
// apply inside quoted attribute values).
func (t *Tokenizer) consumeLineBreak() AbstractToken {
	start := t.pos
	if t.input[start] == '\r' && start+1 < len(t.input) && t.input[start+1] == '\n' {
		t.pos = start + 2
	} else {
		t.pos = start + 1
	}
	t.posMap.NoteLineStart(t.pos)
	return AbstractToken{Kind: DataChar, CodePoint: '\n', SrcLen: t.pos - start, Start: start, End: t.pos}
}

// stepLt handles a '<' encountered in Main mode: the speculative markup
// scan for a comment, end tag, or start tag. On failure it gives up and
// reparses the '<' itself as literal data (spec's "give up" recovery).
func (t *Tokenizer) stepLt() (AbstractToken, bool) {
	start := t.pos

	if t.matchAt(start, "<!--") {
		t.commentStart = start
		t.pos = start + 4
		t.mode = ModeComment
		return AbstractToken{}, false
	}

	if start+1 < len(t.input) && t.input[start+1] == '/' {
		name, afterName := t.scanNameAt(start + 2)
		if name == "" {
			t.pos = start + 1
			t.reportError(UnescapedLt, start, t.pos)
			return AbstractToken{Kind: DataChar, CodePoint: '<', SrcLen: 1, Start: start, End: t.pos}, true
		}
		end := t.skipWhitespaceFrom(afterName)
		if end < len(t.input) && t.input[end] == '>' {
			end++
		}
		t.pos = end
		return AbstractToken{Kind: EndTag, Name: name, Start: start, End: t.pos}, true
	}

	if start+1 < len(t.input) && Classify(t.input[start+1]) == ClassNameStart {
		name, afterName := t.scanNameAt(start + 1)
		t.pos = afterName
		t.mode = ModeTag
		t.needSpaceBeforeAttr = false
		return AbstractToken{Kind: StartTagOpen, Name: name, Start: start, End: t.pos}, true
	}

	t.pos = start + 1
	t.reportError(UnescapedLt, start, t.pos)
	return AbstractToken{Kind: DataChar, CodePoint: '<', SrcLen: 1, Start: start, End: t.pos}, true
}

// stepAmp handles a '&' encountered in Main mode or an attribute value:
// recognized named/numeric references expand to a single DataChar carrying
// the full source range; anything else gives up and reparses the '&' as
// literal data.
func (t *Tokenizer) stepAmp() (AbstractToken, bool) {
	start := t.pos
	cp, consumed, ok := t.tryParseCharRef(start)
	if !ok {
		t.pos = start + 1
		t.reportError(UnescapedAmp, start, t.pos)
		return AbstractToken{Kind: DataChar, CodePoint: '&', SrcLen: 1, Start: start, End: t.pos}, true
	}
	t.pos = start + consumed
	return AbstractToken{Kind: DataChar, CodePoint: cp, SrcLen: consumed, Start: start, End: t.pos}, true
}

// consumeOrdinaryChar classifies and emits a single data character that is
// not a line break, '<', '>', or '&': forbidden code points and isolated
// surrogates are replaced with U+FFFD and reported; everything else passes
// through unchanged.
func (t *Tokenizer) consumeOrdinaryChar() AbstractToken {
	start := t.pos
	r := t.input[start]
	t.pos++
	switch Classify(r) {
	case ClassForbidden:
		t.reportError(InvalidCodePoint, start, t.pos)
		return AbstractToken{Kind: DataChar, CodePoint: 0xFFFD, SrcLen: 1, Start: start, End: t.pos}
	case ClassSurrogate:
		t.reportError(IsolatedSurrogate, start, t.pos)
		return AbstractToken{Kind: DataChar, CodePoint: 0xFFFD, SrcLen: 1, Start: start, End: t.pos}
	default:
		return AbstractToken{Kind: DataChar, CodePoint: r, SrcLen: 1, Start: start, End: t.pos}
	}
}

// ---- Tag mode ----

func (t *Tokenizer) stepTag() (AbstractToken, bool) {
	if t.skipWhitespace() {
		t.needSpaceBeforeAttr = false
	}
	if t.pos >= len(t.input) {
		t.reportError(EOFInStartTag, t.pos, t.pos)
		t.mode = ModeMain
		return AbstractToken{Kind: StartTagClose, Start: t.pos, End: t.pos}, true
	}

	r := t.input[t.pos]
	switch {
	case r == '/':
		if t.matchAt(t.pos, "/>") {
			start := t.pos
			t.pos += 2
			t.mode = ModeMain
			return AbstractToken{Kind: EmptyElementTagClose, Start: start, End: t.pos}, true
		}
		t.pos++ // stray '/' inside a tag: discard and keep scanning.
		return AbstractToken{}, false
	case r == '>':
		start := t.pos
		t.pos++
		t.mode = ModeMain
		return AbstractToken{Kind: StartTagClose, Start: start, End: t.pos}, true
	case Classify(r) == ClassNameStart:
		start := t.pos
		if t.needSpaceBeforeAttr {
			t.reportError(SpaceRequiredBeforeAttributeName, start, start)
		}
		name := t.scanName()
		if name == "xmlns" {
			t.reportError(XMLNSAttribute, start, t.pos, name)
		}
		t.mode = ModeStartAttributeValue
		return AbstractToken{Kind: AttributeName, Name: name, Start: start, End: t.pos}, true
	default:
		t.pos++ // junk inside a tag: no dedicated error kind, discard it.
		return AbstractToken{}, false
	}
}

// stepStartAttrValue decides, after an AttributeName has already been
// emitted, whether the attribute has a quoted value, an unquoted value, or
// no value at all (in which case it behaves as an empty-valued attribute
// and control returns to Tag mode having consumed only whitespace).
func (t *Tokenizer) stepStartAttrValue() (AbstractToken, bool) {
	skipped := t.skipWhitespace()
	if t.pos >= len(t.input) {
		t.reportError(EOFInStartTag, t.pos, t.pos)
		t.mode = ModeMain
		return AbstractToken{Kind: StartTagClose, Start: t.pos, End: t.pos}, true
	}

	if t.input[t.pos] != '=' {
		t.mode = ModeTag
		t.needSpaceBeforeAttr = !skipped
		return AbstractToken{}, false
	}
	t.pos++
	t.skipWhitespace()
	if t.pos >= len(t.input) {
		t.reportError(EOFInStartTag, t.pos, t.pos)
		t.mode = ModeMain
		return AbstractToken{Kind: StartTagClose, Start: t.pos, End: t.pos}, true
	}

	r := t.input[t.pos]
	if r == '"' || r == '\'' {
		t.quote = r
		t.quoteStart = t.pos
		t.pos++
		if r == '"' {
			t.mode = ModeDoubleQuoteAttributeValue
		} else {
			t.mode = ModeSingleQuoteAttributeValue
		}
	} else {
		t.mode = ModeUnquotedAttributeValue
	}
	return AbstractToken{}, false
}

func (t *Tokenizer) stepUnquotedAttrValue() (AbstractToken, bool) {
	if t.pos >= len(t.input) {
		t.reportError(EOFInStartTag, t.pos, t.pos)
		t.mode = ModeMain
		return AbstractToken{Kind: StartTagClose, Start: t.pos, End: t.pos}, true
	}
	r := t.input[t.pos]
	if r == ' ' || r == '\t' || r == '\n' || r == '\f' || r == '\r' {
		t.skipWhitespace()
		t.mode = ModeTag
		t.needSpaceBeforeAttr = false
		return AbstractToken{}, false
	}
	if r == '>' || t.matchAt(t.pos, "/>") {
		t.mode = ModeTag
		t.needSpaceBeforeAttr = true
		return AbstractToken{}, false
	}
	return t.consumeValueChar(), true
}

func (t *Tokenizer) stepQuotedAttrValue() (AbstractToken, bool) {
	if t.pos >= len(t.input) {
		t.reportError(MissingQuote, t.quoteStart, t.pos)
		t.mode = ModeMain
		return AbstractToken{Kind: StartTagClose, Start: t.pos, End: t.pos}, true
	}
	if t.input[t.pos] == t.quote {
		t.pos++
		t.mode = ModeTag
		t.needSpaceBeforeAttr = true
		return AbstractToken{}, false
	}
	return t.consumeValueChar(), true
}

// consumeValueChar handles one character of an attribute value: character
// references and line-break normalization apply exactly as in Main-mode
// data, but '<' and '>' carry no special meaning here and are never
// reported as unescaped.
func (t *Tokenizer) consumeValueChar() AbstractToken {
	r := t.input[t.pos]
	switch r {
	case '\r', '\n':
		return t.consumeLineBreak()
	case '&':
		tok, _ := t.stepAmp()
		return tok
	default:
		return t.consumeOrdinaryChar()
	}
}

// ---- Comment mode ----

// stepComment consumes an entire comment body in one internal loop; spec's
// abstract-token grammar has no comment token, so the only caller-visible
// effects are the diagnostics it reports and the CommentSink notification
// used to keep a position back-channel accurate (spec §9, "noteComment").
func (t *Tokenizer) stepComment() {
	for {
		if t.pos >= len(t.input) {
			t.reportError(UnterminatedComment, t.commentStart, t.pos)
			t.notifyCommentSkip(t.pos)
			t.mode = ModeMain
			return
		}
		if t.matchAt(t.pos, "-->") {
			end := t.pos + 3
			t.notifyCommentSkip(end)
			t.pos = end
			t.mode = ModeMain
			return
		}
		if t.matchAt(t.pos, "--") {
			t.reportError(DoubleMinusInComment, t.pos, t.pos+2)
		}
		switch t.input[t.pos] {
		case '\r', '\n':
			t.consumeLineBreak()
		default:
			t.pos++
		}
	}
}

func (t *Tokenizer) notifyCommentSkip(end int) {
	if t.commentSink != nil {
		t.commentSink(t.commentStart, end)
	}
}

// ---- shared scanning helpers ----

func (t *Tokenizer) skipWhitespace() bool {
	start := t.pos
	for t.pos < len(t.input) {
		switch t.input[t.pos] {
		case ' ', '\t', '\f':
			t.pos++
		case '\n':
			t.pos++
			t.posMap.NoteLineStart(t.pos)
		case '\r':
			if t.pos+1 < len(t.input) && t.input[t.pos+1] == '\n' {
				t.pos += 2
			} else {
				t.pos++
			}
			t.posMap.NoteLineStart(t.pos)
		default:
			return t.pos > start
		}
	}
	return t.pos > start
}

func (t *Tokenizer) skipWhitespaceFrom(p int) int {
	t.pos = p
	t.skipWhitespace()
	return t.pos
}

func (t *Tokenizer) scanName() string {
	name, next := t.scanNameAt(t.pos)
	t.pos = next
	return name
}

func (t *Tokenizer) scanNameAt(pos int) (name string, next int) {
	if pos >= len(t.input) || Classify(t.input[pos]) != ClassNameStart {
		return "", pos
	}
	start := pos
	pos++
	for pos < len(t.input) {
		cls := Classify(t.input[pos])
		if cls != ClassNameStart && cls != ClassNameContinue {
			break
		}
		pos++
	}
	return string(t.input[start:pos]), pos
}

func (t *Tokenizer) matchAt(pos int, s string) bool {
	rs := []rune(s)
	if pos < 0 || pos+len(rs) > len(t.input) {
		return false
	}
	for i, r := range rs {
		if t.input[pos+i] != r {
			return false
		}
	}
	return true
}

func (t *Tokenizer) reportError(kind ErrorKind, start, end int, args ...string) {
	if t.errSink != nil {
		t.errSink(kind, start, end, args...)
	}
}

// tryParseCharRef attempts to recognize a character reference starting at
// the '&' at position start. It returns ok=false when the construct is
// unrecognizable (no terminating ';', no name or hex digits, or '#' not
// followed by 'x'/'X'), in which case the caller gives up and reparses the
// '&' as data. A well-formed name other than the five named references is
// reported as UnknownCharName and returns U+FFFD with ok=true. Per spec §4.2 only the hexadecimal numeric form (&#xHEX;) is
// recognized, matching the distilled specification's literal wording.
func (t *Tokenizer) tryParseCharRef(start int) (rune, int, bool) {
	pos := start + 1
	if pos >= len(t.input) {
		return 0, 0, false
	}

	if t.input[pos] == '#' {
		pos++
		if pos >= len(t.input) || (t.input[pos] != 'x' && t.input[pos] != 'X') {
			return 0, 0, false
		}
		pos++
		digitsStart := pos
		for pos < len(t.input) && isHexDigit(t.input[pos]) {
			pos++
		}
		if pos == digitsStart || pos >= len(t.input) || t.input[pos] != ';' {
			return 0, 0, false
		}
		end := pos + 1
		consumed := end - start
		val, err := strconv.ParseInt(string(t.input[digitsStart:pos]), 16, 64)
		if err != nil || val > 0x10FFFF {
			t.reportError(RefCodePointTooBig, start, end)
			return 0xFFFD, consumed, true
		}
		r := rune(val)
		cls := Classify(r)
		if cls == ClassForbidden || cls == ClassSurrogate {
			t.reportError(ForbiddenCodePointRef, start, end)
			return 0xFFFD, consumed, true
		}
		return r, consumed, true
	}

	nameStart := pos
	for pos < len(t.input) && isASCIILetter(t.input[pos]) {
		pos++
	}
	if pos == nameStart || pos >= len(t.input) || t.input[pos] != ';' {
		return 0, 0, false
	}
	end := pos + 1
	consumed := end - start
	name := string(t.input[nameStart:pos])
	switch name {
	case "lt":
		return '<', consumed, true
	case "amp":
		return '&', consumed, true
	case "gt":
		return '>', consumed, true
	case "quot":
		return '"', consumed, true
	case "apos":
		return '\'', consumed, true
	}
	t.reportError(UnknownCharName, start, end, name)
	return 0xFFFD, consumed, true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
