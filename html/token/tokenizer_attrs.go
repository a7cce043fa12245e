package token

func (t *Tokenizer) stepBeforeAttributeName() (Token, bool) {
	r := t.cur()
	switch r {
	case '\t', '\n', '\f', ' ':
		t.advance()
	case '/', '>', eof:
		t.state = stAfterAttributeName
	case '=':
		t.errorf("unexpected-equals-sign-before-attribute-name")
		t.startAttr()
		t.advance()
		t.attrName.WriteRune(r)
		t.state = stAttributeName
	default:
		t.startAttr()
		t.state = stAttributeName
	}
	return Token{}, false
}

func (t *Tokenizer) stepAttributeName() (Token, bool) {
	r := t.cur()
	switch r {
	case '\t', '\n', '\f', ' ', '/', '>', eof:
		t.state = stAfterAttributeName
	case '=':
		t.advance()
		t.state = stBeforeAttributeValue
	case 0:
		t.advance()
		t.attrName.WriteRune(0xFFFD)
	case '"', '\'', '<':
		t.errorf("unexpected-character-in-attribute-name")
		t.advance()
		t.attrName.WriteRune(r)
	default:
		t.advance()
		t.attrName.WriteRune(toASCIILower(r))
	}
	return Token{}, false
}

func (t *Tokenizer) stepAfterAttributeName() (Token, bool) {
	r := t.cur()
	switch r {
	case '\t', '\n', '\f', ' ':
		t.advance()
	case '/':
		t.advance()
		t.state = stSelfClosingStartTag
	case '=':
		t.advance()
		t.state = stBeforeAttributeValue
	case '>':
		t.advance()
		t.state = stData
		return t.emitTag(), true
	case eof:
		return Token{Kind: EOF}, true
	default:
		t.startAttr()
		t.state = stAttributeName
	}
	return Token{}, false
}

func (t *Tokenizer) stepBeforeAttributeValue() (Token, bool) {
	r := t.cur()
	switch r {
	case '\t', '\n', '\f', ' ':
		t.advance()
	case '"':
		t.advance()
		t.state = stAttributeValueDoubleQuoted
	case '\'':
		t.advance()
		t.state = stAttributeValueSingleQuoted
	case '>':
		t.errorf("missing-attribute-value")
		t.advance()
		t.state = stData
		return t.emitTag(), true
	default:
		t.state = stAttributeValueUnquoted
	}
	return Token{}, false
}

func (t *Tokenizer) stepAttributeValueQuoted(quote rune) (Token, bool) {
	r := t.cur()
	switch r {
	case quote:
		t.advance()
		t.state = stAfterAttributeValueQuoted
	case '&':
		t.advance()
		t.charRefInAttr = true
		t.consumeCharacterReference(true, t.state)
	case 0:
		t.advance()
		t.attrValue.WriteRune(0xFFFD)
	case eof:
		return Token{Kind: EOF}, true
	default:
		t.advance()
		t.attrValue.WriteRune(r)
	}
	return Token{}, false
}

func (t *Tokenizer) stepAttributeValueUnquoted() (Token, bool) {
	r := t.cur()
	switch r {
	case '\t', '\n', '\f', ' ':
		t.advance()
		t.state = stBeforeAttributeName
	case '&':
		t.advance()
		t.charRefInAttr = true
		t.consumeCharacterReference(true, stAttributeValueUnquoted)
	case '>':
		t.advance()
		t.state = stData
		return t.emitTag(), true
	case 0:
		t.advance()
		t.attrValue.WriteRune(0xFFFD)
	case eof:
		return Token{Kind: EOF}, true
	default:
		t.advance()
		t.attrValue.WriteRune(r)
	}
	return Token{}, false
}

func (t *Tokenizer) stepAfterAttributeValueQuoted() (Token, bool) {
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
	case eof:
		return Token{Kind: EOF}, true
	default:
		t.errorf("missing-whitespace-between-attributes")
		t.state = stBeforeAttributeName
	}
	return Token{}, false
}

func (t *Tokenizer) stepSelfClosingStartTag() (Token, bool) {
	r := t.cur()
	switch r {
	case '>':
		t.advance()
		t.selfClosing = true
		t.state = stData
		return t.emitTag(), true
	case eof:
		return Token{Kind: EOF}, true
	default:
		t.errorf("unexpected-solidus-in-tag")
		t.state = stBeforeAttributeName
	}
	return Token{}, false
}

func (t *Tokenizer) stepBogusComment() (Token, bool) {
	r := t.cur()
	switch r {
	case '>':
		t.advance()
		t.state = stData
		return Token{Kind: Comment, Data: t.commentData.String()}, true
	case eof:
		return Token{Kind: Comment, Data: t.commentData.String()}, true
	case 0:
		t.advance()
		t.commentData.WriteRune(0xFFFD)
	default:
		t.advance()
		t.commentData.WriteRune(r)
	}
	return Token{}, false
}

func (t *Tokenizer) stepMarkupDeclarationOpen() (Token, bool) {
	if t.peekString(2) == "--" {
		t.pos += 2
		t.commentData.Reset()
		t.state = stCommentStart
		return Token{}, false
	}
	if equalFoldASCII(t.peekString(7), "DOCTYPE") {
		t.pos += 7
		t.state = stDOCTYPE
		return Token{}, false
	}
	if t.peekString(7) == "[CDATA[" {
		t.pos += 7
		t.state = stCDATASection
		return Token{}, false
	}
	t.errorf("incorrectly-opened-comment")
	t.commentData.Reset()
	t.state = stBogusComment
	return Token{}, false
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if toASCIILower(rune(a[i])) != toASCIILower(rune(b[i])) {
			return false
		}
	}
	return true
}
