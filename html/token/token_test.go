package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(tz *Tokenizer) []Token {
	var out []Token
	for {
		tok := tz.Next()
		out = append(out, tok)
		if tok.Kind == EOF {
			return out
		}
	}
}

func TestStartTagWithAttributes(t *testing.T) {
	tz := New([]byte(`<a href="x" class='y'>`))
	toks := collect(tz)
	require.GreaterOrEqual(t, len(toks), 2)
	tag := toks[0]
	require.Equal(t, StartTag, tag.Kind)
	assert.Equal(t, "a", tag.TagName)
	require.Len(t, tag.Attrs, 2)
	assert.Equal(t, Attr{Name: "href", Value: "x"}, tag.Attrs[0])
	assert.Equal(t, Attr{Name: "class", Value: "y"}, tag.Attrs[1])
}

func TestDuplicateAttributeFirstWins(t *testing.T) {
	tz := New([]byte(`<a href="first" href="second">`))
	tag := tz.Next()
	require.Equal(t, StartTag, tag.Kind)
	require.Len(t, tag.Attrs, 1)
	assert.Equal(t, "first", tag.Attrs[0].Value)
}

func TestSelfClosingStartTag(t *testing.T) {
	tz := New([]byte(`<br/>`))
	tag := tz.Next()
	require.Equal(t, StartTag, tag.Kind)
	assert.True(t, tag.SelfClosing)
}

func TestEndTag(t *testing.T) {
	tz := New([]byte(`</div>`))
	tag := tz.Next()
	require.Equal(t, EndTag, tag.Kind)
	assert.Equal(t, "div", tag.TagName)
}

func TestTagNameLowercased(t *testing.T) {
	tz := New([]byte(`<DIV>`))
	tag := tz.Next()
	assert.Equal(t, "div", tag.TagName)
}

func TestCharacterDataSplitsFromTags(t *testing.T) {
	tz := New([]byte(`hello<br>`))
	chars := tz.Next()
	require.Equal(t, Character, chars.Kind)
	assert.Equal(t, "hello", chars.Chars)
	tag := tz.Next()
	assert.Equal(t, StartTag, tag.Kind)
}

func TestPureWhitespaceIsSpaceCharacter(t *testing.T) {
	tz := New([]byte("  \t\n"))
	tok := tz.Next()
	assert.Equal(t, SpaceCharacter, tok.Kind)
}

func TestNamedCharacterReference(t *testing.T) {
	tz := New([]byte(`&amp;`))
	tok := tz.Next()
	require.Equal(t, Character, tok.Kind)
	assert.Equal(t, "&", tok.Chars)
}

func TestNumericCharacterReferenceDecimal(t *testing.T) {
	tz := New([]byte(`&#65;`))
	tok := tz.Next()
	require.Equal(t, Character, tok.Kind)
	assert.Equal(t, "A", tok.Chars)
}

func TestNumericCharacterReferenceHexWindows1252Substitution(t *testing.T) {
	tz := New([]byte(`&#x80;`))
	tok := tz.Next()
	require.Equal(t, Character, tok.Kind)
	assert.Equal(t, "€", tok.Chars)
}

func TestNullByteBecomesReplacementCharacter(t *testing.T) {
	tz := New([]byte("a\x00b"))
	tok := tz.Next()
	require.Equal(t, Character, tok.Kind)
	assert.Equal(t, "a�b", tok.Chars)
}

func TestComment(t *testing.T) {
	tz := New([]byte(`<!-- hi -->`))
	tok := tz.Next()
	require.Equal(t, Comment, tok.Kind)
	assert.Equal(t, " hi ", tok.Data)
}

func TestDoctype(t *testing.T) {
	tz := New([]byte(`<!DOCTYPE html>`))
	tok := tz.Next()
	require.Equal(t, Doctype, tok.Kind)
	assert.Equal(t, "html", tok.DoctypeName)
	assert.False(t, tok.ForceQuirks)
}

func TestEOFRepeatsForever(t *testing.T) {
	tz := New([]byte(``))
	first := tz.Next()
	second := tz.Next()
	assert.Equal(t, EOF, first.Kind)
	assert.Equal(t, EOF, second.Kind)
}

func TestRAWTEXTDoesNotTokenizeTagsUntilAppropriateEndTag(t *testing.T) {
	tz := New([]byte(`<p>ignored</p></style>`))
	tz.SetState(TextRAWTEXT)
	tz.SetLastStartTag("style")
	// Text states flush pending characters at every '<', so the literal
	// text may arrive as several Character tokens before the end tag.
	tok := tz.Next()
	require.Equal(t, Character, tok.Kind)
	text := ""
	for tok.Kind == Character {
		text += tok.Chars
		tok = tz.Next()
	}
	assert.Equal(t, "<p>ignored</p>", text)
	end := tok
	require.Equal(t, EndTag, end.Kind)
	assert.Equal(t, "style", end.TagName)
}

func TestRAWTEXTEndTagNameMismatchIsLiteralText(t *testing.T) {
	tz := New([]byte(`</title>`))
	tz.SetState(TextRAWTEXT)
	tz.SetLastStartTag("style")
	tok := tz.Next()
	require.Equal(t, Character, tok.Kind)
	assert.Equal(t, "</title>", tok.Chars)
}

func TestCRLFNormalizedToLF(t *testing.T) {
	tz := New([]byte("a\r\nb\rc"))
	tok := tz.Next()
	require.Equal(t, Character, tok.Kind)
	assert.Equal(t, "a\nb\nc", tok.Chars)
}
