package counters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cssparse "github.com/foliocraft/htmlbook/css/parse"
	"github.com/foliocraft/htmlbook/css/cssvalue"
	"github.com/foliocraft/htmlbook/dom"
	htmlparse "github.com/foliocraft/htmlbook/html/parse"
	"github.com/foliocraft/htmlbook/style/cascade"
	"github.com/foliocraft/htmlbook/style/rulecache"
)

func buildWalker(t *testing.T, html, css string) (*Walker, *dom.Node) {
	t.Helper()
	doc, err := htmlparse.Parse([]byte(html), "")
	require.NoError(t, err)
	cache := rulecache.New()
	if css != "" {
		cache.Add(cssparse.ParseStyleSheet(css), rulecache.Author)
	}
	ctx := &cascade.Context{Cache: cache, RootFontSizePx: 16, ViewportWidthPx: 800, ViewportHeightPx: 600}
	return NewWalker(ctx), doc.Root
}

func findTag(n *dom.Node, tag string) *dom.Node {
	var found *dom.Node
	var walk func(*dom.Node)
	walk = func(x *dom.Node) {
		if found != nil {
			return
		}
		if x.Type == dom.ElementNode && x.Tag.String() == tag {
			found = x
			return
		}
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

// counterValue parses a counter-reset/counter-increment/counter-set
// declaration value string (e.g. "chapter 1 section") the way the
// cascade stores it, for testing counterPairs directly.
func counterValue(t *testing.T, text string) cssvalue.Value {
	t.Helper()
	decls := cssparse.ParseDeclarationList("x: " + text + ";")
	require.Len(t, decls, 1)
	items := cssvalue.FromTokensList(decls[0].Value)
	return cssvalue.Value{Kind: cssvalue.List, Items: items}
}

func TestOlStartAndLiValue(t *testing.T) {
	w, root := buildWalker(t, `<html><body><ol start="5"><li></li><li value="10"></li><li></li></ol></body></html>`, "")

	ol := findTag(root, "ol")
	require.NotNil(t, ol)

	bodyStyle := cascade.Style(w.Ctx, root, nil)
	w.scopes.push()
	defer w.scopes.pop()
	w.applyCounterProperties(ol, bodyStyle)
	w.applyListItemNumbering(ol, bodyStyle)

	var got []int
	for c := ol.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != dom.ElementNode {
			continue
		}
		liStyle := cascade.Style(w.Ctx, c, bodyStyle)
		w.scopes.push()
		w.applyCounterProperties(c, liStyle)
		w.applyListItemNumbering(c, liStyle)
		got = append(got, w.scopes.value("list-item"))
		w.scopes.pop()
	}

	assert.Equal(t, []int{5, 10, 11}, got)
}

func TestCounterPairsParsing(t *testing.T) {
	pairs := counterPairs(counterValue(t, "chapter 1 section"), 0)
	require.Len(t, pairs, 2)
	assert.Equal(t, counterPair{Name: "chapter", Value: 1}, pairs[0])
	assert.Equal(t, counterPair{Name: "section", Value: 0}, pairs[1])
}

func TestScopeStackResetSetIncrement(t *testing.T) {
	s := newScopeStack()
	s.reset("chapter", 1)
	assert.Equal(t, 1, s.value("chapter"))

	s.increment("chapter", 1)
	assert.Equal(t, 2, s.value("chapter"))

	s.set("chapter", 9)
	assert.Equal(t, 9, s.value("chapter"))

	s.push()
	s.increment("chapter", 1) // nearest scope (parent) has it, climbs to update there
	assert.Equal(t, 10, s.value("chapter"))
	s.pop()
	assert.Equal(t, 10, s.value("chapter"))
}

func TestFormatCounterListStyles(t *testing.T) {
	assert.Equal(t, "1", FormatCounter(1, "decimal"))
	assert.Equal(t, "01", FormatCounter(1, "decimal-leading-zero"))
	assert.Equal(t, "a", FormatCounter(1, "lower-alpha"))
	assert.Equal(t, "z", FormatCounter(26, "lower-alpha"))
	assert.Equal(t, "aa", FormatCounter(27, "lower-alpha"))
	assert.Equal(t, "IV", FormatCounter(4, "upper-roman"))
	assert.Equal(t, "MCMXCIX", FormatCounter(1999, "upper-roman"))
	assert.Equal(t, "4000", FormatCounter(4000, "upper-roman"))
}

func TestQuoteNesting(t *testing.T) {
	w, root := buildWalker(t, `<html><body><q>outer <q>inner</q></q></body></html>`, "")
	style := cascade.Style(w.Ctx, root, nil)

	q := &quoteState{}
	openOuter := quoteAt(style, q.depth, true)
	q.depth++
	assert.Equal(t, "“", openOuter)

	openInner := quoteAt(style, q.depth, true)
	q.depth++
	assert.Equal(t, "‘", openInner)

	q.depth--
	closeInner := quoteAt(style, q.depth, false)
	assert.Equal(t, "’", closeInner)

	q.depth--
	closeOuter := quoteAt(style, q.depth, false)
	assert.Equal(t, "”", closeOuter)
}

func TestBeforeAfterMarkerGeneration(t *testing.T) {
	w, root := buildWalker(t, `<html><body><span>hi</span><ul><li>item</li></ul></body></html>`,
		`span::before { content: "["; } span::after { content: "]"; } li { list-style-type: decimal; }`)
	box := w.Build(root, nil)
	require.NotNil(t, box)

	span := findTag(root, "span")
	require.NotNil(t, span)
	spanStyle := cascade.Style(w.Ctx, span, cascade.Style(w.Ctx, root, nil))
	before := w.buildPseudo(span, spanStyle, "before")
	require.NotNil(t, before)
	require.Len(t, before.Content, 1)
	assert.Equal(t, "[", before.Content[0].Text)

	after := w.buildPseudo(span, spanStyle, "after")
	require.NotNil(t, after)
	require.Len(t, after.Content, 1)
	assert.Equal(t, "]", after.Content[0].Text)

	li := findTag(root, "li")
	require.NotNil(t, li)
	liStyle := cascade.Style(w.Ctx, li, cascade.Style(w.Ctx, root, nil))
	w.scopes.reset("list-item", 1)
	marker := w.buildMarker(li, liStyle)
	require.NotNil(t, marker)
	require.Len(t, marker.Content, 1)
	assert.Equal(t, "1", marker.Content[0].Text)
}
