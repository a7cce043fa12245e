package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func all(tz *Tokenizer) []Token {
	var out []Token
	for {
		tok := tz.Next()
		out = append(out, tok)
		if tok.Kind == EOF {
			return out
		}
	}
}

func TestIdentAndWhitespace(t *testing.T) {
	toks := all(New("color red"))
	require.GreaterOrEqual(t, len(toks), 3)
	assert.Equal(t, Ident, toks[0].Kind)
	assert.Equal(t, "color", toks[0].Value)
	assert.Equal(t, Whitespace, toks[1].Kind)
	assert.Equal(t, Ident, toks[2].Kind)
	assert.Equal(t, "red", toks[2].Value)
}

func TestFunctionToken(t *testing.T) {
	tok := New("rgba(").Next()
	assert.Equal(t, Function, tok.Kind)
	assert.Equal(t, "rgba", tok.Value)
}

func TestAtKeyword(t *testing.T) {
	tok := New("@media").Next()
	assert.Equal(t, AtKeyword, tok.Kind)
	assert.Equal(t, "media", tok.Value)
}

func TestHashIDVsUnrestricted(t *testing.T) {
	idHash := New("#main").Next()
	assert.Equal(t, Hash, idHash.Kind)
	assert.Equal(t, HashID, idHash.HashType)

	unrestricted := New("#1a2b").Next()
	assert.Equal(t, Hash, unrestricted.Kind)
	assert.Equal(t, HashUnrestricted, unrestricted.HashType)
}

func TestStringToken(t *testing.T) {
	tok := New(`"hello world"`).Next()
	require.Equal(t, String, tok.Kind)
	assert.Equal(t, "hello world", tok.Value)
}

func TestBadStringOnUnterminatedNewline(t *testing.T) {
	tz := New("\"unterminated\nrest")
	tok := tz.Next()
	assert.Equal(t, BadString, tok.Kind)
}

func TestURLToken(t *testing.T) {
	tok := New(`url(foo.png)`).Next()
	require.Equal(t, URL, tok.Kind)
	assert.Equal(t, "foo.png", tok.Value)
}

func TestURLWithQuotedArgumentIsFunctionNotURLToken(t *testing.T) {
	// url(<string>) is tokenized as an ordinary Function token; the
	// quoted argument and closing paren follow as separate tokens, left
	// for the parser to assemble (unlike the unquoted form, which the
	// tokenizer folds into a single URL token).
	toks := all(New(`url("foo.png")`))
	require.GreaterOrEqual(t, len(toks), 3)
	assert.Equal(t, Function, toks[0].Kind)
	assert.Equal(t, "url", toks[0].Value)
	assert.Equal(t, String, toks[1].Kind)
	assert.Equal(t, "foo.png", toks[1].Value)
	assert.Equal(t, RParen, toks[2].Kind)
}

func TestBadURLRecoversToNextRParen(t *testing.T) {
	tz := New(`url(bad url) ident`)
	first := tz.Next()
	assert.Equal(t, BadURL, first.Kind)
	rest := all(tz)
	var foundIdent bool
	for _, tok := range rest {
		if tok.Kind == Ident && tok.Value == "ident" {
			foundIdent = true
		}
	}
	assert.True(t, foundIdent)
}

func TestNumberIntegerVsFloat(t *testing.T) {
	i := New("42").Next()
	require.Equal(t, Number, i.Kind)
	assert.Equal(t, NumberInteger, i.NumericType)
	assert.Equal(t, 42.0, i.NumValue)

	f := New("4.2").Next()
	require.Equal(t, Number, f.Kind)
	assert.Equal(t, NumberFloat, f.NumericType)
	assert.Equal(t, 4.2, f.NumValue)
}

func TestPercentage(t *testing.T) {
	tok := New("50%").Next()
	require.Equal(t, Percentage, tok.Kind)
	assert.Equal(t, 50.0, tok.NumValue)
}

func TestDimension(t *testing.T) {
	tok := New("10px").Next()
	require.Equal(t, Dimension, tok.Kind)
	assert.Equal(t, 10.0, tok.NumValue)
	assert.Equal(t, "px", tok.Unit)
}

func TestNegativeNumber(t *testing.T) {
	tok := New("-5px").Next()
	require.Equal(t, Dimension, tok.Kind)
	assert.Equal(t, -5.0, tok.NumValue)
}

func TestDelim(t *testing.T) {
	tok := New("*").Next()
	assert.Equal(t, Delim, tok.Kind)
	assert.Equal(t, '*', tok.Rune)
}

func TestCommentsDroppedWithoutToken(t *testing.T) {
	toks := all(New("a/* comment */b"))
	require.Len(t, toks, 3)
	assert.Equal(t, Ident, toks[0].Kind)
	assert.Equal(t, "a", toks[0].Value)
	assert.Equal(t, Ident, toks[1].Kind)
	assert.Equal(t, "b", toks[1].Value)
}

func TestMarkAndResetRewindsStream(t *testing.T) {
	tz := New("abc def")
	first := tz.Next()
	require.Equal(t, "abc", first.Value)
	mark := tz.Mark()
	tz.Next() // consume whitespace
	second := tz.Next()
	require.Equal(t, "def", second.Value)
	tz.Reset(mark)
	replay := tz.Next()
	assert.Equal(t, Whitespace, replay.Kind)
}

func TestEOFRepeatsForever(t *testing.T) {
	tz := New("")
	assert.Equal(t, EOF, tz.Next().Kind)
	assert.Equal(t, EOF, tz.Next().Kind)
}

func TestCDOCDC(t *testing.T) {
	toks := all(New("<!-- -->"))
	require.GreaterOrEqual(t, len(toks), 2)
	assert.Equal(t, CDO, toks[0].Kind)
}
