package token

func (t *Tokenizer) resetDoctypeToken() {
	t.doctypeName.Reset()
	t.doctypePublic.Reset()
	t.doctypeSystem.Reset()
	t.doctypeHavePublic = false
	t.doctypeHaveSystem = false
	t.doctypeForceQuirks = false
}

func (t *Tokenizer) emitDoctype() Token {
	return Token{
		Kind:         Doctype,
		DoctypeName:  t.doctypeName.String(),
		PublicID:     t.doctypePublic.String(),
		SystemID:     t.doctypeSystem.String(),
		HasPublicID:  t.doctypeHavePublic,
		HasSystemID:  t.doctypeHaveSystem,
		ForceQuirks:  t.doctypeForceQuirks,
	}
}

func (t *Tokenizer) stepDOCTYPE() (Token, bool) {
	r := t.cur()
	switch r {
	case '\t', '\n', '\f', ' ':
		t.advance()
		t.resetDoctypeToken()
		t.state = stBeforeDOCTYPEName
	case eof:
		t.resetDoctypeToken()
		t.doctypeForceQuirks = true
		return t.emitDoctype(), true
	default:
		t.resetDoctypeToken()
		t.state = stBeforeDOCTYPEName
	}
	return Token{}, false
}

func (t *Tokenizer) stepBeforeDOCTYPEName() (Token, bool) {
	r := t.cur()
	switch r {
	case '\t', '\n', '\f', ' ':
		t.advance()
	case 0:
		t.advance()
		t.doctypeName.WriteRune(0xFFFD)
		t.state = stDOCTYPEName
	case '>':
		t.errorf("missing-doctype-name")
		t.advance()
		t.doctypeForceQuirks = true
		t.state = stData
		return t.emitDoctype(), true
	case eof:
		t.doctypeForceQuirks = true
		return t.emitDoctype(), true
	default:
		t.advance()
		t.doctypeName.WriteRune(toASCIILower(r))
		t.state = stDOCTYPEName
	}
	return Token{}, false
}

func (t *Tokenizer) stepDOCTYPEName() (Token, bool) {
	r := t.cur()
	switch r {
	case '\t', '\n', '\f', ' ':
		t.advance()
		t.state = stAfterDOCTYPEName
	case '>':
		t.advance()
		t.state = stData
		return t.emitDoctype(), true
	case 0:
		t.advance()
		t.doctypeName.WriteRune(0xFFFD)
	case eof:
		t.doctypeForceQuirks = true
		return t.emitDoctype(), true
	default:
		t.advance()
		t.doctypeName.WriteRune(toASCIILower(r))
	}
	return Token{}, false
}

func (t *Tokenizer) stepAfterDOCTYPEName() (Token, bool) {
	r := t.cur()
	switch r {
	case '\t', '\n', '\f', ' ':
		t.advance()
	case '>':
		t.advance()
		t.state = stData
		return t.emitDoctype(), true
	case eof:
		t.doctypeForceQuirks = true
		return t.emitDoctype(), true
	default:
		if equalFoldASCII(t.peekString(6), "PUBLIC") {
			t.pos += 6
			t.state = stAfterDOCTYPEPublicKeyword
			return Token{}, false
		}
		if equalFoldASCII(t.peekString(6), "SYSTEM") {
			t.pos += 6
			t.state = stAfterDOCTYPESystemKeyword
			return Token{}, false
		}
		t.errorf("invalid-character-sequence-after-doctype-name")
		t.doctypeForceQuirks = true
		t.state = stBogusDOCTYPE
	}
	return Token{}, false
}

func (t *Tokenizer) stepAfterDOCTYPEPublicKeyword() (Token, bool) {
	r := t.cur()
	switch r {
	case '\t', '\n', '\f', ' ':
		t.advance()
		t.state = stBeforeDOCTYPEPublicIdentifier
	case '"':
		t.advance()
		t.doctypeHavePublic = true
		t.state = stDOCTYPEPublicIdentifierDoubleQuoted
	case '\'':
		t.advance()
		t.doctypeHavePublic = true
		t.state = stDOCTYPEPublicIdentifierSingleQuoted
	case '>':
		t.errorf("missing-doctype-public-identifier")
		t.advance()
		t.doctypeForceQuirks = true
		t.state = stData
		return t.emitDoctype(), true
	case eof:
		t.doctypeForceQuirks = true
		return t.emitDoctype(), true
	default:
		t.doctypeForceQuirks = true
		t.state = stBogusDOCTYPE
	}
	return Token{}, false
}

func (t *Tokenizer) stepBeforeDOCTYPEPublicIdentifier() (Token, bool) {
	r := t.cur()
	switch r {
	case '\t', '\n', '\f', ' ':
		t.advance()
	case '"':
		t.advance()
		t.doctypeHavePublic = true
		t.state = stDOCTYPEPublicIdentifierDoubleQuoted
	case '\'':
		t.advance()
		t.doctypeHavePublic = true
		t.state = stDOCTYPEPublicIdentifierSingleQuoted
	case '>':
		t.errorf("missing-doctype-public-identifier")
		t.advance()
		t.doctypeForceQuirks = true
		t.state = stData
		return t.emitDoctype(), true
	case eof:
		t.doctypeForceQuirks = true
		return t.emitDoctype(), true
	default:
		t.doctypeForceQuirks = true
		t.state = stBogusDOCTYPE
	}
	return Token{}, false
}

func (t *Tokenizer) stepDOCTYPEPublicIdentifierQuoted(quote rune) (Token, bool) {
	r := t.cur()
	switch r {
	case quote:
		t.advance()
		t.state = stAfterDOCTYPEPublicIdentifier
	case 0:
		t.advance()
		t.doctypePublic.WriteRune(0xFFFD)
	case '>':
		t.errorf("abrupt-doctype-public-identifier")
		t.advance()
		t.doctypeForceQuirks = true
		t.state = stData
		return t.emitDoctype(), true
	case eof:
		t.doctypeForceQuirks = true
		return t.emitDoctype(), true
	default:
		t.advance()
		t.doctypePublic.WriteRune(r)
	}
	return Token{}, false
}

func (t *Tokenizer) stepAfterDOCTYPEPublicIdentifier() (Token, bool) {
	r := t.cur()
	switch r {
	case '\t', '\n', '\f', ' ':
		t.advance()
		t.state = stBetweenDOCTYPEPublicAndSystemIdentifiers
	case '>':
		t.advance()
		t.state = stData
		return t.emitDoctype(), true
	case '"':
		t.advance()
		t.doctypeHaveSystem = true
		t.state = stDOCTYPESystemIdentifierDoubleQuoted
	case '\'':
		t.advance()
		t.doctypeHaveSystem = true
		t.state = stDOCTYPESystemIdentifierSingleQuoted
	case eof:
		t.doctypeForceQuirks = true
		return t.emitDoctype(), true
	default:
		t.doctypeForceQuirks = true
		t.state = stBogusDOCTYPE
	}
	return Token{}, false
}

func (t *Tokenizer) stepBetweenDOCTYPEPublicAndSystemIdentifiers() (Token, bool) {
	r := t.cur()
	switch r {
	case '\t', '\n', '\f', ' ':
		t.advance()
	case '>':
		t.advance()
		t.state = stData
		return t.emitDoctype(), true
	case '"':
		t.advance()
		t.doctypeHaveSystem = true
		t.state = stDOCTYPESystemIdentifierDoubleQuoted
	case '\'':
		t.advance()
		t.doctypeHaveSystem = true
		t.state = stDOCTYPESystemIdentifierSingleQuoted
	case eof:
		t.doctypeForceQuirks = true
		return t.emitDoctype(), true
	default:
		t.doctypeForceQuirks = true
		t.state = stBogusDOCTYPE
	}
	return Token{}, false
}

func (t *Tokenizer) stepAfterDOCTYPESystemKeyword() (Token, bool) {
	r := t.cur()
	switch r {
	case '\t', '\n', '\f', ' ':
		t.advance()
		t.state = stBeforeDOCTYPESystemIdentifier
	case '"':
		t.advance()
		t.doctypeHaveSystem = true
		t.state = stDOCTYPESystemIdentifierDoubleQuoted
	case '\'':
		t.advance()
		t.doctypeHaveSystem = true
		t.state = stDOCTYPESystemIdentifierSingleQuoted
	case '>':
		t.errorf("missing-doctype-system-identifier")
		t.advance()
		t.doctypeForceQuirks = true
		t.state = stData
		return t.emitDoctype(), true
	case eof:
		t.doctypeForceQuirks = true
		return t.emitDoctype(), true
	default:
		t.doctypeForceQuirks = true
		t.state = stBogusDOCTYPE
	}
	return Token{}, false
}

func (t *Tokenizer) stepBeforeDOCTYPESystemIdentifier() (Token, bool) {
	r := t.cur()
	switch r {
	case '\t', '\n', '\f', ' ':
		t.advance()
	case '"':
		t.advance()
		t.doctypeHaveSystem = true
		t.state = stDOCTYPESystemIdentifierDoubleQuoted
	case '\'':
		t.advance()
		t.doctypeHaveSystem = true
		t.state = stDOCTYPESystemIdentifierSingleQuoted
	case '>':
		t.errorf("missing-doctype-system-identifier")
		t.advance()
		t.doctypeForceQuirks = true
		t.state = stData
		return t.emitDoctype(), true
	case eof:
		t.doctypeForceQuirks = true
		return t.emitDoctype(), true
	default:
		t.doctypeForceQuirks = true
		t.state = stBogusDOCTYPE
	}
	return Token{}, false
}

func (t *Tokenizer) stepDOCTYPESystemIdentifierQuoted(quote rune) (Token, bool) {
	r := t.cur()
	switch r {
	case quote:
		t.advance()
		t.state = stAfterDOCTYPESystemIdentifier
	case 0:
		t.advance()
		t.doctypeSystem.WriteRune(0xFFFD)
	case '>':
		t.errorf("abrupt-doctype-system-identifier")
		t.advance()
		t.doctypeForceQuirks = true
		t.state = stData
		return t.emitDoctype(), true
	case eof:
		t.doctypeForceQuirks = true
		return t.emitDoctype(), true
	default:
		t.advance()
		t.doctypeSystem.WriteRune(r)
	}
	return Token{}, false
}

func (t *Tokenizer) stepAfterDOCTYPESystemIdentifier() (Token, bool) {
	r := t.cur()
	switch r {
	case '\t', '\n', '\f', ' ':
		t.advance()
	case '>':
		t.advance()
		t.state = stData
		return t.emitDoctype(), true
	case eof:
		t.doctypeForceQuirks = true
		return t.emitDoctype(), true
	default:
		t.errorf("unexpected-character-after-doctype-system-identifier")
		t.state = stBogusDOCTYPE
	}
	return Token{}, false
}

func (t *Tokenizer) stepBogusDOCTYPE() (Token, bool) {
	r := t.cur()
	switch r {
	case '>':
		t.advance()
		t.state = stData
		return t.emitDoctype(), true
	case 0:
		t.advance()
	case eof:
		return t.emitDoctype(), true
	default:
		t.advance()
	}
	return Token{}, false
}

func (t *Tokenizer) stepCDATASection() (Token, bool) {
	r := t.cur()
	switch r {
	case ']':
		t.advance()
		t.state = stCDATASectionBracket
	case eof:
		return Token{Kind: EOF}, true
	default:
		t.advance()
		t.pushChar(r)
	}
	return Token{}, false
}

func (t *Tokenizer) stepCDATASectionBracket() (Token, bool) {
	if t.cur() == ']' {
		t.advance()
		t.state = stCDATASectionEnd
		return Token{}, false
	}
	t.pushChar(']')
	t.state = stCDATASection
	return Token{}, false
}

func (t *Tokenizer) stepCDATASectionEnd() (Token, bool) {
	r := t.cur()
	switch r {
	case ']':
		t.advance()
		t.pushChar(']')
	case '>':
		t.advance()
		t.state = stData
	default:
		t.pushChar(']')
		t.pushChar(']')
		t.state = stCDATASection
	}
	return Token{}, false
}
