package cssvalue

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliocraft/htmlbook/css/token"
)

func tokenize(t *testing.T, css string) []token.Token {
	t.Helper()
	tz := token.New(css)
	var toks []token.Token
	for {
		tok := tz.Next()
		if tok.Kind == token.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestFromTokensKeyword(t *testing.T) {
	v := FromTokens(tokenize(t, "Red"))
	assert.Equal(t, Keyword, v.Kind)
	assert.Equal(t, "red", v.Keyword)
	assert.True(t, v.IsKeyword("red"))
}

func TestFromTokensLength(t *testing.T) {
	v := FromTokens(tokenize(t, "10px"))
	require.Equal(t, Length, v.Kind)
	assert.Equal(t, 10.0, v.Num)
	assert.Equal(t, "px", v.Unit)
}

func TestFromTokensPercentage(t *testing.T) {
	v := FromTokens(tokenize(t, "50%"))
	require.Equal(t, Percentage, v.Kind)
	assert.Equal(t, 50.0, v.Num)
}

func TestFromTokensHexColor(t *testing.T) {
	v := FromTokens(tokenize(t, "#ff0000"))
	require.Equal(t, ColorValue, v.Kind)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0, B: 0, A: 0xff}, v.Color)
}

func TestFromTokensShortHexColorDuplicatesDigits(t *testing.T) {
	v := FromTokens(tokenize(t, "#f00"))
	require.Equal(t, ColorValue, v.Kind)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0, B: 0, A: 0xff}, v.Color)
}

func TestFromTokensRGBFunction(t *testing.T) {
	v := FromTokens(tokenize(t, "rgb(255, 0, 0)"))
	require.Equal(t, ColorValue, v.Kind)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0, B: 0, A: 0xff}, v.Color)
}

func TestFromTokensRGBAFunctionAlpha(t *testing.T) {
	v := FromTokens(tokenize(t, "rgba(0, 0, 0, 0.5)"))
	require.Equal(t, ColorValue, v.Kind)
	nrgba, ok := v.Color.(color.NRGBA)
	require.True(t, ok)
	assert.InDelta(t, 127, int(nrgba.A), 2)
}

func TestFromTokensHSLFunction(t *testing.T) {
	v := FromTokens(tokenize(t, "hsl(0, 100%, 50%)"))
	require.Equal(t, ColorValue, v.Kind)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0, B: 0, A: 0xff}, v.Color)
}

func TestFromTokensCounterFunction(t *testing.T) {
	v := FromTokens(tokenize(t, "counter(item)"))
	require.Equal(t, Counter, v.Kind)
	require.Len(t, v.Args, 1)
	assert.Equal(t, "item", v.Args[0].Keyword)
}

func TestFromTokensAttrFunction(t *testing.T) {
	v := FromTokens(tokenize(t, "attr(data-x)"))
	require.Equal(t, AttrRef, v.Kind)
	assert.Equal(t, "data-x", v.Str)
}

func TestFromTokensListSplitsOnCommas(t *testing.T) {
	vals := FromTokensList(tokenize(t, `"Helvetica Neue", Arial, sans-serif`))
	require.Len(t, vals, 3)
	assert.Equal(t, StringValue, vals[0].Kind)
	assert.Equal(t, "Helvetica Neue", vals[0].Str)
	assert.Equal(t, Keyword, vals[1].Kind)
	assert.Equal(t, "arial", vals[1].Keyword)
}

func TestFromTokensListGroupsSpaceSeparatedItems(t *testing.T) {
	vals := FromTokensList(tokenize(t, `counter(item) ". "`))
	require.Len(t, vals, 1)
	assert.Equal(t, List, vals[0].Kind)
	require.Len(t, vals[0].Items, 2)
}

func TestPxResolvesEmAgainstFontSize(t *testing.T) {
	v := FromTokens(tokenize(t, "2em"))
	assert.Equal(t, 32.0, v.Px(16, 16, 0, 0, 0))
}

func TestPxResolvesRemAgainstRootFontSize(t *testing.T) {
	v := FromTokens(tokenize(t, "2rem"))
	assert.Equal(t, 36.0, v.Px(16, 18, 0, 0, 0))
}

func TestPxResolvesPercentageAgainstBasis(t *testing.T) {
	v := FromTokens(tokenize(t, "50%"))
	assert.Equal(t, 100.0, v.Px(16, 16, 0, 0, 200))
}

func TestPxResolvesViewportUnits(t *testing.T) {
	vw := FromTokens(tokenize(t, "50vw"))
	assert.Equal(t, 400.0, vw.Px(16, 16, 800, 600, 0))
	vh := FromTokens(tokenize(t, "50vh"))
	assert.Equal(t, 300.0, vh.Px(16, 16, 800, 600, 0))
}

func TestPxResolvesAbsoluteUnits(t *testing.T) {
	in := FromTokens(tokenize(t, "1in"))
	assert.Equal(t, 96.0, in.Px(16, 16, 0, 0, 0))
	pt := FromTokens(tokenize(t, "72pt"))
	assert.Equal(t, 96.0, pt.Px(16, 16, 0, 0, 0))
}

func TestResolveColorCurrentColor(t *testing.T) {
	v := FromTokens(tokenize(t, "currentColor"))
	current := color.NRGBA{R: 1, G: 2, B: 3, A: 255}
	assert.Equal(t, current, v.ResolveColor(current))
}

func TestResolveColorNamedColor(t *testing.T) {
	v := FromTokens(tokenize(t, "blue"))
	assert.Equal(t, color.NRGBA{0, 0, 0xff, 0xff}, v.ResolveColor(nil))
}

func TestNamedColorLookup(t *testing.T) {
	c, ok := NamedColor("Transparent")
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{0, 0, 0, 0}, c)

	_, ok = NamedColor("not-a-color")
	assert.False(t, ok)
}
