package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cssparse "github.com/foliocraft/htmlbook/css/parse"
	"github.com/foliocraft/htmlbook/dom"
	htmlparse "github.com/foliocraft/htmlbook/html/parse"
)

func buildDOM(t *testing.T, html string) *dom.Document {
	t.Helper()
	doc, err := htmlparse.Parse([]byte(html), "")
	require.NoError(t, err)
	return doc
}

func selector(t *testing.T, css string) *cssparse.Selector {
	t.Helper()
	sheet := cssparse.ParseStyleSheet(css + "{}")
	require.Len(t, sheet.Rules, 1)
	require.Len(t, sheet.Rules[0].Style.Selectors, 1)
	return sheet.Rules[0].Style.Selectors[0]
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

func findAllTags(n *dom.Node, tag string) []*dom.Node {
	var out []*dom.Node
	var walk func(*dom.Node)
	walk = func(x *dom.Node) {
		if x.Type == dom.ElementNode && x.Tag.String() == tag {
			out = append(out, x)
		}
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func TestMatchesTypeSelector(t *testing.T) {
	doc := buildDOM(t, `<body><p>hi</p></body>`)
	p := findTag(doc.Root, "p")
	require.NotNil(t, p)
	assert.True(t, Matches(selector(t, "p"), p))
	assert.False(t, Matches(selector(t, "div"), p))
}

func TestMatchesIDAndClass(t *testing.T) {
	doc := buildDOM(t, `<body><p id="main" class="a b">hi</p></body>`)
	p := findTag(doc.Root, "p")
	assert.True(t, Matches(selector(t, "#main"), p))
	assert.True(t, Matches(selector(t, ".a"), p))
	assert.True(t, Matches(selector(t, ".b"), p))
	assert.False(t, Matches(selector(t, ".c"), p))
}

func TestMatchesAttributeSelector(t *testing.T) {
	doc := buildDOM(t, `<body><a href="https://example.com">link</a></body>`)
	a := findTag(doc.Root, "a")
	assert.True(t, Matches(selector(t, "a[href]"), a))
	assert.True(t, Matches(selector(t, `a[href^="https"]`), a))
	assert.True(t, Matches(selector(t, `a[href$=".com"]`), a))
	assert.False(t, Matches(selector(t, `a[href$=".org"]`), a))
}

func TestMatchesDescendantCombinator(t *testing.T) {
	doc := buildDOM(t, `<body><div><p>hi</p></div></body>`)
	p := findTag(doc.Root, "p")
	assert.True(t, Matches(selector(t, "div p"), p))
	assert.False(t, Matches(selector(t, "span p"), p))
}

func TestMatchesChildCombinatorRejectsGrandparent(t *testing.T) {
	doc := buildDOM(t, `<body><div><section><p>hi</p></section></div></body>`)
	p := findTag(doc.Root, "p")
	assert.False(t, Matches(selector(t, "div > p"), p))
	assert.True(t, Matches(selector(t, "section > p"), p))
}

func TestMatchesSiblingCombinators(t *testing.T) {
	doc := buildDOM(t, `<body><h1>t</h1><p>one</p><p>two</p></body>`)
	ps := findAllTags(doc.Root, "p")
	require.Len(t, ps, 2)
	assert.True(t, Matches(selector(t, "h1 + p"), ps[0]))
	assert.False(t, Matches(selector(t, "h1 + p"), ps[1]))
	assert.True(t, Matches(selector(t, "h1 ~ p"), ps[1]))
}

func TestMatchesNthChild(t *testing.T) {
	doc := buildDOM(t, `<body><ul><li>a</li><li>b</li><li>c</li></ul></body>`)
	lis := findAllTags(doc.Root, "li")
	require.Len(t, lis, 3)
	sel := selector(t, "li:nth-child(2n+1)")
	assert.True(t, Matches(sel, lis[0]))
	assert.False(t, Matches(sel, lis[1]))
	assert.True(t, Matches(sel, lis[2]))
}

func TestMatchesNthLastChildOdd(t *testing.T) {
	doc := buildDOM(t, `<body><ul><li>a</li><li>b</li><li>c</li></ul></body>`)
	lis := findAllTags(doc.Root, "li")
	sel := selector(t, "li:nth-last-child(odd)")
	assert.True(t, Matches(sel, lis[2]))
	assert.False(t, Matches(sel, lis[1]))
	assert.True(t, Matches(sel, lis[0]))
}

func TestMatchesFirstAndLastChild(t *testing.T) {
	doc := buildDOM(t, `<body><ul><li>a</li><li>b</li></ul></body>`)
	lis := findAllTags(doc.Root, "li")
	assert.True(t, Matches(selector(t, "li:first-child"), lis[0]))
	assert.False(t, Matches(selector(t, "li:first-child"), lis[1]))
	assert.True(t, Matches(selector(t, "li:last-child"), lis[1]))
}

func TestMatchesNotPseudoClass(t *testing.T) {
	doc := buildDOM(t, `<body><p class="skip">a</p><p>b</p></body>`)
	ps := findAllTags(doc.Root, "p")
	sel := selector(t, "p:not(.skip)")
	assert.False(t, Matches(sel, ps[0]))
	assert.True(t, Matches(sel, ps[1]))
}

func TestMatchesEmptyPseudoClass(t *testing.T) {
	doc := buildDOM(t, `<body><div></div><div>x</div></body>`)
	divs := findAllTags(doc.Root, "div")
	sel := selector(t, "div:empty")
	assert.True(t, Matches(sel, divs[0]))
	assert.False(t, Matches(sel, divs[1]))
}

func TestMatchesRootPseudoClass(t *testing.T) {
	doc := buildDOM(t, `<html><body>hi</body></html>`)
	html := findTag(doc.Root, "html")
	body := findTag(doc.Root, "body")
	assert.True(t, Matches(selector(t, ":root"), html))
	assert.False(t, Matches(selector(t, ":root"), body))
}

func TestMatchesLangPseudoClassInheritsFromAncestor(t *testing.T) {
	doc := buildDOM(t, `<html lang="en-US"><body><p>hi</p></body></html>`)
	p := findTag(doc.Root, "p")
	assert.True(t, Matches(selector(t, ":lang(en)"), p))
	assert.False(t, Matches(selector(t, ":lang(fr)"), p))
}
