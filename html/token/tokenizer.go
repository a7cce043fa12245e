package token

import (
	"strings"
)

// Tokenizer turns HTML byte input into a stream of Tokens. Call Next
// repeatedly until it returns a Token of Kind == EOF.
//
// The tree builder drives a Tokenizer and calls SetState/SetLastStartTag
// to force RCDATA/RAWTEXT/ScriptData/PLAINTEXT on specific start tags
// (<title>, <textarea>, <style>, <script>, <plaintext>, ...), matching
// the "appropriate end tag token" rules of the HTML5 tokenizer.
type Tokenizer struct {
	src []rune
	pos int

	state       state
	returnState state // state to resume after a character reference

	lastStartTag string // "appropriate end tag" context

	// token under construction
	tagName     strings.Builder
	tagIsEnd    bool
	selfClosing bool
	attrs       []Attr
	attrName    strings.Builder
	attrValue   strings.Builder
	haveAttr    bool

	doctypeName              strings.Builder
	doctypePublic            strings.Builder
	doctypeSystem            strings.Builder
	doctypeHavePublic        bool
	doctypeHaveSystem        bool
	doctypeForceQuirks       bool

	commentData strings.Builder

	tempBuffer strings.Builder // used by character-reference and script-data-escape matching

	charRefCode   int
	charRefInAttr bool

	pendingChars strings.Builder
	pendingAllSpace bool

	Errors []ParseError

	emitted []Token // queued tokens ready to be returned by Next (rare: e.g. char + following tag)
}

// New creates a Tokenizer over content. CR and CRLF are collapsed to LF
// before dispatch, per the preprocessing step HTML tokenization requires.
func New(content []byte) *Tokenizer {
	s := normalizeNewlines(string(content))
	return &Tokenizer{src: []rune(s), state: stData, pendingAllSpace: true}
}

func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\r' {
			b.WriteByte('\n')
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		} else {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// SetState forces the tokenizer into one of the non-Data text modes,
// called by the tree builder immediately after consuming a start-tag
// token for <title>/<textarea> (RCDATA), <style>/<noframes> (RAWTEXT),
// <script> (ScriptData), or <plaintext> (PLAINTEXT).
func (t *Tokenizer) SetState(k RawTextKind) {
	switch k {
	case TextRCDATA:
		t.state = stRCDATA
	case TextRAWTEXT:
		t.state = stRAWTEXT
	case TextScriptData:
		t.state = stScriptData
	case TextPLAINTEXT:
		t.state = stPLAINTEXT
	default:
		t.state = stData
	}
}

// SetLastStartTag records the most recent start tag name, used to decide
// whether an end tag is the "appropriate end tag token" that terminates
// RCDATA/RAWTEXT/ScriptData modes.
func (t *Tokenizer) SetLastStartTag(name string) {
	t.lastStartTag = name
}

const eof = -1

func (t *Tokenizer) cur() rune {
	if t.pos >= len(t.src) {
		return eof
	}
	return t.src[t.pos]
}

func (t *Tokenizer) advance() {
	t.pos++
}

func (t *Tokenizer) peekString(n int) string {
	end := t.pos + n
	if end > len(t.src) {
		end = len(t.src)
	}
	return string(t.src[t.pos:end])
}

func (t *Tokenizer) errorf(msg string) {
	t.Errors = append(t.Errors, ParseError{Pos: t.pos, Message: msg})
}

func (t *Tokenizer) resetTagToken(isEnd bool) {
	t.tagName.Reset()
	t.tagIsEnd = isEnd
	t.selfClosing = false
	t.attrs = nil
}

func (t *Tokenizer) startAttr() {
	if t.haveAttr {
		t.commitAttr()
	}
	t.attrName.Reset()
	t.attrValue.Reset()
	t.haveAttr = true
}

func (t *Tokenizer) commitAttr() {
	if !t.haveAttr {
		return
	}
	name := t.attrName.String()
	// duplicate attribute: first occurrence wins (attribute
	// lists), so only append if not already present.
	dup := false
	for _, a := range t.attrs {
		if a.Name == name {
			dup = true
			break
		}
	}
	if !dup && name != "" {
		t.attrs = append(t.attrs, Attr{Name: name, Value: t.attrValue.String()})
	}
	t.haveAttr = false
}

func (t *Tokenizer) emitTag() Token {
	t.commitAttr()
	tok := Token{TagName: t.tagName.String(), Attrs: t.attrs, SelfClosing: t.selfClosing}
	if t.tagIsEnd {
		tok.Kind = EndTag
	} else {
		tok.Kind = StartTag
		t.lastStartTag = tok.TagName
	}
	return tok
}

func (t *Tokenizer) appropriateEndTag() bool {
	return t.tagName.String() == t.lastStartTag
}

func (t *Tokenizer) flushPendingChars() *Token {
	if t.pendingChars.Len() == 0 {
		return nil
	}
	tok := Token{Chars: t.pendingChars.String()}
	if t.pendingAllSpace {
		tok.Kind = SpaceCharacter
	} else {
		tok.Kind = Character
	}
	t.pendingChars.Reset()
	t.pendingAllSpace = true
	return &tok
}

func (t *Tokenizer) pushChar(r rune) {
	if r != ' ' && r != '\t' && r != '\n' && r != '\f' && r != '\r' {
		t.pendingAllSpace = false
	}
	t.pendingChars.WriteRune(r)
}

// Next returns the next token. At end of input it returns a Token with
// Kind == EOF, repeatedly, forever.
func (t *Tokenizer) Next() Token {
	if len(t.emitted) > 0 {
		tok := t.emitted[0]
		t.emitted = t.emitted[1:]
		return tok
	}
	for {
		if tok, ok := t.step(); ok {
			return tok
		}
	}
}

// step executes one iteration of the current state, possibly consuming
// input and possibly producing a token. ok is true iff a token is ready.
func (t *Tokenizer) step() (Token, bool) {
	switch t.state {
	case stData:
		return t.stepData()
	case stRCDATA:
		return t.stepRCDATALike(stRCDATALessThanSign, false)
	case stRAWTEXT:
		return t.stepRCDATALike(stRAWTEXTLessThanSign, false)
	case stScriptData:
		return t.stepRCDATALike(stScriptDataLessThanSign, false)
	case stPLAINTEXT:
		return t.stepPlaintext()
	case stTagOpen:
		return t.stepTagOpen()
	case stEndTagOpen:
		return t.stepEndTagOpen()
	case stTagName:
		return t.stepTagName()
	case stRCDATALessThanSign:
		return t.stepTextLessThanSign(stRCDATA, stRCDATAEndTagOpen)
	case stRCDATAEndTagOpen:
		return t.stepTextEndTagOpen(stRCDATA, stRCDATAEndTagName)
	case stRCDATAEndTagName:
		return t.stepTextEndTagName(stRCDATA)
	case stRAWTEXTLessThanSign:
		return t.stepTextLessThanSign(stRAWTEXT, stRAWTEXTEndTagOpen)
	case stRAWTEXTEndTagOpen:
		return t.stepTextEndTagOpen(stRAWTEXT, stRAWTEXTEndTagName)
	case stRAWTEXTEndTagName:
		return t.stepTextEndTagName(stRAWTEXT)
	case stScriptDataLessThanSign:
		return t.stepScriptDataLessThanSign()
	case stScriptDataEndTagOpen:
		return t.stepTextEndTagOpen(stScriptData, stScriptDataEndTagName)
	case stScriptDataEndTagName:
		return t.stepTextEndTagName(stScriptData)
	case stScriptDataEscapeStart:
		return t.stepScriptDataEscapeStart()
	case stScriptDataEscapeStartDash:
		return t.stepScriptDataEscapeStartDash()
	case stScriptDataEscaped:
		return t.stepScriptDataEscaped()
	case stScriptDataEscapedDash:
		return t.stepScriptDataEscapedDash()
	case stScriptDataEscapedDashDash:
		return t.stepScriptDataEscapedDashDash()
	case stScriptDataEscapedLessThanSign:
		return t.stepScriptDataEscapedLessThanSign()
	case stScriptDataEscapedEndTagOpen:
		return t.stepTextEndTagOpen(stScriptDataEscaped, stScriptDataEscapedEndTagName)
	case stScriptDataEscapedEndTagName:
		return t.stepTextEndTagName(stScriptDataEscaped)
	case stScriptDataDoubleEscapeStart:
		return t.stepScriptDataDoubleEscapeStart()
	case stScriptDataDoubleEscaped:
		return t.stepScriptDataDoubleEscaped()
	case stScriptDataDoubleEscapedDash:
		return t.stepScriptDataDoubleEscapedDash()
	case stScriptDataDoubleEscapedDashDash:
		return t.stepScriptDataDoubleEscapedDashDash()
	case stScriptDataDoubleEscapedLessThanSign:
		return t.stepScriptDataDoubleEscapedLessThanSign()
	case stScriptDataDoubleEscapeEnd:
		return t.stepScriptDataDoubleEscapeEnd()
	case stBeforeAttributeName:
		return t.stepBeforeAttributeName()
	case stAttributeName:
		return t.stepAttributeName()
	case stAfterAttributeName:
		return t.stepAfterAttributeName()
	case stBeforeAttributeValue:
		return t.stepBeforeAttributeValue()
	case stAttributeValueDoubleQuoted:
		return t.stepAttributeValueQuoted('"')
	case stAttributeValueSingleQuoted:
		return t.stepAttributeValueQuoted('\'')
	case stAttributeValueUnquoted:
		return t.stepAttributeValueUnquoted()
	case stAfterAttributeValueQuoted:
		return t.stepAfterAttributeValueQuoted()
	case stSelfClosingStartTag:
		return t.stepSelfClosingStartTag()
	case stBogusComment:
		return t.stepBogusComment()
	case stMarkupDeclarationOpen:
		return t.stepMarkupDeclarationOpen()
	case stCommentStart:
		return t.stepCommentStart()
	case stCommentStartDash:
		return t.stepCommentStartDash()
	case stComment:
		return t.stepComment()
	case stCommentLessThanSign:
		return t.stepCommentLessThanSign()
	case stCommentLessThanSignBang:
		return t.stepCommentLessThanSignBang()
	case stCommentLessThanSignBangDash:
		return t.stepCommentLessThanSignBangDash()
	case stCommentLessThanSignBangDashDash:
		return t.stepCommentLessThanSignBangDashDash()
	case stCommentEndDash:
		return t.stepCommentEndDash()
	case stCommentEnd:
		return t.stepCommentEnd()
	case stCommentEndBang:
		return t.stepCommentEndBang()
	case stDOCTYPE:
		return t.stepDOCTYPE()
	case stBeforeDOCTYPEName:
		return t.stepBeforeDOCTYPEName()
	case stDOCTYPEName:
		return t.stepDOCTYPEName()
	case stAfterDOCTYPEName:
		return t.stepAfterDOCTYPEName()
	case stAfterDOCTYPEPublicKeyword:
		return t.stepAfterDOCTYPEPublicKeyword()
	case stBeforeDOCTYPEPublicIdentifier:
		return t.stepBeforeDOCTYPEPublicIdentifier()
	case stDOCTYPEPublicIdentifierDoubleQuoted:
		return t.stepDOCTYPEPublicIdentifierQuoted('"')
	case stDOCTYPEPublicIdentifierSingleQuoted:
		return t.stepDOCTYPEPublicIdentifierQuoted('\'')
	case stAfterDOCTYPEPublicIdentifier:
		return t.stepAfterDOCTYPEPublicIdentifier()
	case stBetweenDOCTYPEPublicAndSystemIdentifiers:
		return t.stepBetweenDOCTYPEPublicAndSystemIdentifiers()
	case stAfterDOCTYPESystemKeyword:
		return t.stepAfterDOCTYPESystemKeyword()
	case stBeforeDOCTYPESystemIdentifier:
		return t.stepBeforeDOCTYPESystemIdentifier()
	case stDOCTYPESystemIdentifierDoubleQuoted:
		return t.stepDOCTYPESystemIdentifierQuoted('"')
	case stDOCTYPESystemIdentifierSingleQuoted:
		return t.stepDOCTYPESystemIdentifierQuoted('\'')
	case stAfterDOCTYPESystemIdentifier:
		return t.stepAfterDOCTYPESystemIdentifier()
	case stBogusDOCTYPE:
		return t.stepBogusDOCTYPE()
	case stCDATASection:
		return t.stepCDATASection()
	case stCDATASectionBracket:
		return t.stepCDATASectionBracket()
	case stCDATASectionEnd:
		return t.stepCDATASectionEnd()
	}
	return Token{Kind: EOF}, true
}

// --- Data state and the RCDATA/RAWTEXT/ScriptData shared "plain text" walk ---

func (t *Tokenizer) stepData() (Token, bool) {
	r := t.cur()
	switch r {
	case eof:
		if tok := t.flushPendingChars(); tok != nil {
			return *tok, true
		}
		return Token{Kind: EOF}, true
	case '&':
		t.advance()
		t.consumeCharacterReference(false, stData)
		return Token{}, false
	case '<':
		t.advance()
		if tok := t.flushPendingChars(); tok != nil {
			t.state = stTagOpen
			return *tok, true
		}
		t.state = stTagOpen
		return Token{}, false
	case 0:
		t.errorf("unexpected-null-character")
		t.advance()
		t.pushChar(0xFFFD)
		return Token{}, false
	}
	t.advance()
	t.pushChar(r)
	return Token{}, false
}

// stepRCDATALike drives RCDATA/RAWTEXT/ScriptData (non-escaped): all three
// share "plain characters accumulate, '<' may start an end tag, NUL becomes
// U+FFFD", differing only in whether '&' is special (RCDATA only) and in
// which state '<' transitions to.
func (t *Tokenizer) stepRCDATALike(ltState state, ampSpecial bool) (Token, bool) {
	r := t.cur()
	switch r {
	case eof:
		if tok := t.flushPendingChars(); tok != nil {
			return *tok, true
		}
		return Token{Kind: EOF}, true
	case '&':
		if t.state == stRCDATA {
			t.advance()
			t.consumeCharacterReference(false, stRCDATA)
			return Token{}, false
		}
	case '<':
		t.advance()
		if tok := t.flushPendingChars(); tok != nil {
			t.state = ltState
			return *tok, true
		}
		t.state = ltState
		return Token{}, false
	case 0:
		t.errorf("unexpected-null-character")
		t.advance()
		t.pushChar(0xFFFD)
		return Token{}, false
	}
	t.advance()
	t.pushChar(r)
	return Token{}, false
}

func (t *Tokenizer) stepPlaintext() (Token, bool) {
	r := t.cur()
	if r == eof {
		if tok := t.flushPendingChars(); tok != nil {
			return *tok, true
		}
		return Token{Kind: EOF}, true
	}
	if r == 0 {
		t.advance()
		t.pushChar(0xFFFD)
		return Token{}, false
	}
	t.advance()
	t.pushChar(r)
	return Token{}, false
}

// --- Tag open / tag name ---

func (t *Tokenizer) stepTagOpen() (Token, bool) {
	r := t.cur()
	switch {
	case r == '!':
		t.advance()
		t.state = stMarkupDeclarationOpen
	case r == '/':
		t.advance()
		t.state = stEndTagOpen
	case isASCIIAlpha(r):
		t.resetTagToken(false)
		t.state = stTagName
	case r == '?':
		t.errorf("unexpected-question-mark-instead-of-tag-name")
		t.commentData.Reset()
		t.state = stBogusComment
	case r == eof:
		t.pushChar('<')
		t.state = stData
	default:
		t.errorf("invalid-first-character-of-tag-name")
		t.pushChar('<')
		t.state = stData
	}
	return Token{}, false
}

func (t *Tokenizer) stepEndTagOpen() (Token, bool) {
	r := t.cur()
	switch {
	case isASCIIAlpha(r):
		t.resetTagToken(true)
		t.state = stTagName
	case r == '>':
		t.advance()
		t.errorf("missing-end-tag-name")
		t.state = stData
	case r == eof:
		t.pushChar('<')
		t.pushChar('/')
		t.state = stData
	default:
		t.errorf("invalid-first-character-of-tag-name")
		t.commentData.Reset()
		t.state = stBogusComment
	}
	return Token{}, false
}

func (t *Tokenizer) stepTagName() (Token, bool) {
	r := t.cur()
	switch r {
	case '\t', '\n', '\f', ' ':
		t.advance()
		t.state = stBeforeAttributeName
	case '/':
		t.advance()
		t.state = stSelfClosingStartTag
	case '>':
		t.advance()
		t.state = stData
		return t.emitTag(), true
	case 0:
		t.advance()
		t.tagName.WriteRune(0xFFFD)
	case eof:
		return Token{Kind: EOF}, true
	default:
		t.advance()
		t.tagName.WriteRune(toASCIILower(r))
	}
	return Token{}, false
}

// --- RCDATA/RAWTEXT/ScriptData '<' handling and shared end-tag matching ---

func (t *Tokenizer) stepTextLessThanSign(textState, openState state) (Token, bool) {
	r := t.cur()
	if r == '/' {
		t.tempBuffer.Reset()
		t.advance()
		t.state = openState
		return Token{}, false
	}
	t.pushChar('<')
	t.state = textState
	return Token{}, false
}

func (t *Tokenizer) stepTextEndTagOpen(textState, nameState state) (Token, bool) {
	r := t.cur()
	if isASCIIAlpha(r) {
		t.resetTagToken(true)
		t.state = nameState
		return Token{}, false
	}
	t.pushChar('<')
	t.pushChar('/')
	t.state = textState
	return Token{}, false
}

func (t *Tokenizer) stepTextEndTagName(textState state) (Token, bool) {
	r := t.cur()
	switch r {
	case '\t', '\n', '\f', ' ':
		if t.appropriateEndTag() {
			t.advance()
			t.state = stBeforeAttributeName
			return Token{}, false
		}
	case '/':
		if t.appropriateEndTag() {
			t.advance()
			t.state = stSelfClosingStartTag
			return Token{}, false
		}
	case '>':
		if t.appropriateEndTag() {
			t.advance()
			t.state = stData
			return t.emitTag(), true
		}
	case eof:
		// fallthrough to anything-else below
	default:
		if isASCIIAlpha(r) {
			t.advance()
			t.tagName.WriteRune(toASCIILower(r))
			t.tempBuffer.WriteRune(r)
			return Token{}, false
		}
	}
	// "anything else": emit '<' '/' and the buffered characters as text,
	// then reprocess r in textState.
	if tok := t.flushPendingChars(); tok != nil {
		t.pushChar('<')
		t.pushChar('/')
		for _, c := range t.tempBuffer.String() {
			t.pushChar(c)
		}
		t.state = textState
		return *tok, true
	}
	t.pushChar('<')
	t.pushChar('/')
	for _, c := range t.tempBuffer.String() {
		t.pushChar(c)
	}
	t.state = textState
	return Token{}, false
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func toASCIILower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
