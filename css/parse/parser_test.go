package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliocraft/htmlbook/css/token"
)

func TestParseStyleSheetSimpleRule(t *testing.T) {
	sheet := ParseStyleSheet(`p { color: red; font-size: 12px; }`)
	require.Len(t, sheet.Rules, 1)
	rule := sheet.Rules[0].Style
	require.NotNil(t, rule)
	require.Len(t, rule.Selectors, 1)
	require.Len(t, rule.Declarations, 2)
	assert.Equal(t, "color", rule.Declarations[0].Property)
	assert.Equal(t, "font-size", rule.Declarations[1].Property)
}

func TestParseStyleSheetSourceOrderIncrements(t *testing.T) {
	sheet := ParseStyleSheet(`a{} b{} c{}`)
	require.Len(t, sheet.Rules, 3)
	assert.Equal(t, 1, sheet.Rules[0].Style.SourceOrder)
	assert.Equal(t, 2, sheet.Rules[1].Style.SourceOrder)
	assert.Equal(t, 3, sheet.Rules[2].Style.SourceOrder)
}

func TestImportantDeclaration(t *testing.T) {
	sheet := ParseStyleSheet(`p { color: red !important; }`)
	decl := sheet.Rules[0].Style.Declarations[0]
	assert.True(t, decl.Important)
	assert.Equal(t, "color", decl.Property)
}

func TestMultipleSelectorsCommaSeparated(t *testing.T) {
	sheet := ParseStyleSheet(`h1, h2 { color: blue; }`)
	require.Len(t, sheet.Rules[0].Style.Selectors, 2)
}

func TestCompoundSelectorWithIDClassAttribute(t *testing.T) {
	sheet := ParseStyleSheet(`div#main.foo[data-x] { color: red; }`)
	sel := sheet.Rules[0].Style.Selectors[0]
	require.Len(t, sel.Compounds, 1)
	simples := sel.Compounds[0].Simple
	var kinds []SimpleSelectorKind
	for _, s := range simples {
		kinds = append(kinds, s.Kind)
	}
	assert.Contains(t, kinds, SimpleType)
	assert.Contains(t, kinds, SimpleID)
	assert.Contains(t, kinds, SimpleClass)
	assert.Contains(t, kinds, SimpleAttribute)
}

func TestDescendantAndChildCombinators(t *testing.T) {
	sheet := ParseStyleSheet(`ul li { color: red; } ul > li { color: blue; }`)
	descendant := sheet.Rules[0].Style.Selectors[0]
	child := sheet.Rules[1].Style.Selectors[0]
	require.Len(t, descendant.Compounds, 2)
	require.Len(t, child.Compounds, 2)
	assert.Equal(t, CombinatorDescendant, descendant.Compounds[1].Combinator)
	assert.Equal(t, CombinatorChild, child.Compounds[1].Combinator)
}

func TestSpecificityOrdering(t *testing.T) {
	sheet := ParseStyleSheet(`a {} .b {} #c {} a.b {}`)
	typeOnly := sheet.Rules[0].Style.Selectors[0].Specificity
	class := sheet.Rules[1].Style.Selectors[0].Specificity
	id := sheet.Rules[2].Style.Selectors[0].Specificity
	typeAndClass := sheet.Rules[3].Style.Selectors[0].Specificity

	assert.True(t, typeOnly.Less(class))
	assert.True(t, class.Less(id))
	assert.True(t, typeOnly.Less(typeAndClass))
	assert.True(t, class.Less(typeAndClass))
}

func TestPseudoElementSelector(t *testing.T) {
	sheet := ParseStyleSheet(`li::marker { color: red; }`)
	sel := sheet.Rules[0].Style.Selectors[0]
	assert.Equal(t, "marker", sel.PseudoElement)
}

func TestNthChildArguments(t *testing.T) {
	sheet := ParseStyleSheet(`li:nth-child(2n+1) { color: red; }`)
	sel := sheet.Rules[0].Style.Selectors[0]
	simple := sel.Compounds[0].Simple[0]
	require.Equal(t, SimplePseudoClass, simple.Kind)
	assert.Equal(t, "nth-child", simple.Name)
	assert.Equal(t, 2, simple.NthA)
	assert.Equal(t, 1, simple.NthB)
}

func TestNthChildOddKeyword(t *testing.T) {
	sheet := ParseStyleSheet(`li:nth-last-child(odd) { color: red; }`)
	simple := sheet.Rules[0].Style.Selectors[0].Compounds[0].Simple[0]
	assert.Equal(t, 2, simple.NthA)
	assert.Equal(t, 1, simple.NthB)
}

func TestNotPseudoClassHoldsInnerSelectors(t *testing.T) {
	sheet := ParseStyleSheet(`div:not(.a, .b) { color: red; }`)
	simple := sheet.Rules[0].Style.Selectors[0].Compounds[0].Simple[1]
	require.Equal(t, SimplePseudoClass, simple.Kind)
	assert.Equal(t, "not", simple.Name)
	require.Len(t, simple.Not, 2)
}

func TestMarginShorthandFourValues(t *testing.T) {
	sheet := ParseStyleSheet(`p { margin: 1px 2px 3px 4px; }`)
	decl := sheet.Rules[0].Style.Declarations[0]
	expanded := ExpandShorthand(decl)
	require.Len(t, expanded, 4)
	assert.Equal(t, "margin-top", expanded[0].Property)
	assert.Equal(t, "margin-right", expanded[1].Property)
	assert.Equal(t, "margin-bottom", expanded[2].Property)
	assert.Equal(t, "margin-left", expanded[3].Property)
}

func TestMarginShorthandOneValueFillsAllSides(t *testing.T) {
	sheet := ParseStyleSheet(`p { margin: 5px; }`)
	expanded := ExpandShorthand(sheet.Rules[0].Style.Declarations[0])
	require.Len(t, expanded, 4)
	for _, d := range expanded {
		require.Len(t, d.Value, 1)
		assert.Equal(t, 5.0, d.Value[0].NumValue)
	}
}

func TestMarginShorthandTwoValues(t *testing.T) {
	sheet := ParseStyleSheet(`p { margin: 1px 2px; }`)
	expanded := ExpandShorthand(sheet.Rules[0].Style.Declarations[0])
	require.Len(t, expanded, 4)
	assert.Equal(t, expanded[0].Value, expanded[2].Value) // top == bottom
	assert.Equal(t, expanded[1].Value, expanded[3].Value) // right == left
}

func TestUnrecognizedShorthandPassesThrough(t *testing.T) {
	d := Declaration{Property: "color", Value: nil}
	expanded := ExpandShorthand(d)
	require.Len(t, expanded, 1)
	assert.Equal(t, "color", expanded[0].Property)
}

func TestImportHrefFromStringToken(t *testing.T) {
	sheet := ParseStyleSheet(`@import "theme.css";`)
	require.Len(t, sheet.Rules, 1)
	at := sheet.Rules[0].At
	require.NotNil(t, at)
	href, ok := ImportHref(at.Prelude)
	require.True(t, ok)
	assert.Equal(t, "theme.css", href)
}

func TestImportHrefFromURLToken(t *testing.T) {
	sheet := ParseStyleSheet(`@import url(theme.css);`)
	at := sheet.Rules[0].At
	href, ok := ImportHref(at.Prelude)
	require.True(t, ok)
	assert.Equal(t, "theme.css", href)
}

func TestFontFaceBlockIsSingleSyntheticStyleRule(t *testing.T) {
	sheet := ParseStyleSheet(`@font-face { font-family: "X"; src: url(x.woff); }`)
	at := sheet.Rules[0].At
	require.Equal(t, "font-face", at.Name)
	require.Len(t, at.Block, 1)
	assert.NotNil(t, at.Block[0].Style)
	assert.Len(t, at.Block[0].Style.Declarations, 2)
}

func TestPageSelectorNameAndPseudo(t *testing.T) {
	sheet := ParseStyleSheet(`@page chapter:first { margin: 1cm; }`)
	at := sheet.Rules[0].At
	ps := ParsePageSelector(at.Prelude)
	assert.Equal(t, "chapter", ps.Name)
	assert.Equal(t, "first", ps.Pseudo)
}

func TestMediaBlockRetainedAsAtRuleForUpstreamFlattening(t *testing.T) {
	sheet := ParseStyleSheet(`@media print { p { color: red; } }`)
	require.Len(t, sheet.Rules, 1)
	at := sheet.Rules[0].At
	require.NotNil(t, at)
	assert.Equal(t, "media", at.Name)
	require.Len(t, at.Block, 1)
	assert.NotNil(t, at.Block[0].Style)
}

func TestDeclarationListForStyleAttribute(t *testing.T) {
	decls := ParseDeclarationList(`color: red; font-weight: bold`)
	require.Len(t, decls, 2)
	assert.Equal(t, "color", decls[0].Property)
	assert.Equal(t, "font-weight", decls[1].Property)
}

func TestBadDeclarationRecoversAndContinues(t *testing.T) {
	decls := ParseDeclarationList(`color kaboom; font-weight: bold`)
	require.Len(t, decls, 1)
	assert.Equal(t, "font-weight", decls[0].Property)
}

func TestURLTokenValuePreservedInDeclarationValue(t *testing.T) {
	sheet := ParseStyleSheet(`div { background: url(bg.png); }`)
	decl := sheet.Rules[0].Style.Declarations[0]
	require.NotEmpty(t, decl.Value)
	var found bool
	for _, tok := range decl.Value {
		if tok.Kind == token.URL && tok.Value == "bg.png" {
			found = true
		}
	}
	assert.True(t, found)
}
