package token

import "strings"

// consumeCharacterReference consumes a character reference starting right
// after the '&' that triggered it, and appends the decoded result either
// to the pending character-data buffer or, when inAttr, to the attribute
// value under construction. It always leaves the tokenizer back in
// returnState, matching the character-reference sub-machine used by both
// Data/RCDATA and attribute-value consumption.
func (t *Tokenizer) consumeCharacterReference(inAttr bool, returnState state) {
	emit := func(s string) {
		if inAttr {
			t.attrValue.WriteString(s)
		} else {
			for _, r := range s {
				t.pushChar(r)
			}
		}
	}

	r := t.cur()
	if r == '#' {
		t.advance()
		t.consumeNumericCharacterReference(inAttr)
		t.state = returnState
		return
	}

	// Named character reference: longest match against the table, per
	// the HTML5 "consume the maximum number of characters possible"
	// rule, with special handling for references missing their
	// trailing semicolon inside attribute values (ambiguous ampersand).
	name, value, consumed := longestNamedMatch(t.src[t.pos:])
	if consumed == 0 {
		// Not a recognized entity at all: bare '&', no error, no
		// consumption beyond it.
		emit("&")
		t.state = returnState
		return
	}
	hadSemicolon := strings.HasSuffix(name, ";")
	if !hadSemicolon {
		t.errorf("missing-semicolon-after-character-reference")
	}
	if inAttr && !hadSemicolon {
		next := rune(0)
		if t.pos+consumed < len(t.src) {
			next = t.src[t.pos+consumed]
		}
		if next == '=' || isASCIIAlphanumeric(next) {
			// Ambiguous ampersand: treat literally, per the
			// attribute-value character-reference caveat.
			emit("&")
			for _, r := range name {
				emit(string(r))
			}
			t.pos += consumed
			t.state = returnState
			return
		}
	}
	t.pos += consumed
	emit(value)
	t.state = returnState
}

func isASCIIAlphanumeric(r rune) bool {
	return isASCIIAlpha(r) || (r >= '0' && r <= '9')
}

// consumeNumericCharacterReference handles "&#..." after the '#' has
// already been consumed: optional 'x'/'X' for hex, digits, optional
// trailing ';', then the HTML5 code-point substitution table for the C1
// control range and zero/surrogate/overflow handling.
func (t *Tokenizer) consumeNumericCharacterReference(inAttr bool) {
	hex := false
	if t.cur() == 'x' || t.cur() == 'X' {
		hex = true
		t.advance()
	}
	var n int64
	digits := 0
	for {
		r := t.cur()
		var d int64 = -1
		switch {
		case r >= '0' && r <= '9':
			d = int64(r - '0')
		case hex && r >= 'a' && r <= 'f':
			d = int64(r-'a') + 10
		case hex && r >= 'A' && r <= 'F':
			d = int64(r-'A') + 10
		}
		if d < 0 {
			break
		}
		n = n*int64(base(hex)) + d
		if n > 0x10FFFF {
			n = 0x10FFFF + 1 // clamp, replaced below
		}
		digits++
		t.advance()
	}
	if digits == 0 {
		t.errorf("absence-of-digits-in-numeric-character-reference")
		emitStr := "&#"
		if hex {
			emitStr += "x"
		}
		if inAttr {
			t.attrValue.WriteString(emitStr)
		} else {
			for _, r := range emitStr {
				t.pushChar(r)
			}
		}
		return
	}
	if t.cur() == ';' {
		t.advance()
	} else {
		t.errorf("missing-semicolon-after-character-reference")
	}
	r := numericReferenceSubstitution(n)
	if inAttr {
		t.attrValue.WriteRune(r)
	} else {
		t.pushChar(r)
	}
}

func base(hex bool) int {
	if hex {
		return 16
	}
	return 10
}

// numericReferenceSubstitution implements the HTML5 table mapping
// Windows-1252 code points in the C1 control range to their intended
// Unicode characters, and replaces surrogates/out-of-range values with
// U+FFFD.
func numericReferenceSubstitution(n int64) rune {
	if n == 0 {
		return 0xFFFD
	}
	if n > 0x10FFFF {
		return 0xFFFD
	}
	if n >= 0xD800 && n <= 0xDFFF {
		return 0xFFFD
	}
	if repl, ok := c1Substitutions[n]; ok {
		return repl
	}
	return rune(n)
}

var c1Substitutions = map[int64]rune{
	0x80: 0x20AC, 0x82: 0x201A, 0x83: 0x0192, 0x84: 0x201E,
	0x85: 0x2026, 0x86: 0x2020, 0x87: 0x2021, 0x88: 0x02C6,
	0x89: 0x2030, 0x8A: 0x0160, 0x8B: 0x2039, 0x8C: 0x0152,
	0x8E: 0x017D, 0x91: 0x2018, 0x92: 0x2019, 0x93: 0x201C,
	0x94: 0x201D, 0x95: 0x2022, 0x96: 0x2013, 0x97: 0x2014,
	0x98: 0x02DC, 0x99: 0x2122, 0x9A: 0x0161, 0x9B: 0x203A,
	0x9C: 0x0153, 0x9E: 0x017E, 0x9F: 0x0178,
}
