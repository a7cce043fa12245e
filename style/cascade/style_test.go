package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliocraft/htmlbook/css/parse"
	"github.com/foliocraft/htmlbook/dom"
	htmlparse "github.com/foliocraft/htmlbook/html/parse"
	"github.com/foliocraft/htmlbook/style/rulecache"
)

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

func buildDOM(t *testing.T, html string) *dom.Document {
	t.Helper()
	doc, err := htmlparse.Parse([]byte(html), "")
	require.NoError(t, err)
	return doc
}

func newContext(css string) *Context {
	cache := rulecache.New()
	cache.Add(parse.ParseStyleSheet(css), rulecache.Author)
	return &Context{Cache: cache, RootFontSizePx: 16, ViewportWidthPx: 800, ViewportHeightPx: 600}
}

// styleTree computes a style for every element in doc, returning a lookup
// from tag name to its ComputedStyle (last one wins for repeated tags).
func styleTree(ctx *Context, doc *dom.Document) map[string]*ComputedStyle {
	out := map[string]*ComputedStyle{}
	var walk func(n *dom.Node, parent *ComputedStyle)
	walk = func(n *dom.Node, parent *ComputedStyle) {
		var cs *ComputedStyle
		if n.Type == dom.ElementNode {
			cs = Style(ctx, n, parent)
			out[n.Tag.String()] = cs
		} else {
			cs = parent
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, cs)
		}
	}
	walk(doc.Root, nil)
	return out
}

func TestStyleAppliesMatchedRuleOverridingInitial(t *testing.T) {
	ctx := newContext(`div { color: red; }`)
	doc := buildDOM(t, `<body><div>hi</div></body>`)
	styles := styleTree(ctx, doc)
	assert.Equal(t, "red", styles["div"].Get("color").Keyword)
}

func TestInheritancePropagatesColorToChild(t *testing.T) {
	ctx := newContext(`div { color: red; }`)
	doc := buildDOM(t, `<body><div><p>hi</p></div></body>`)
	styles := styleTree(ctx, doc)
	assert.Equal(t, styles["div"].Color, styles["p"].Color)
}

func TestNonInheritedPropertyDoesNotPropagate(t *testing.T) {
	ctx := newContext(`div { background-color: red; }`)
	doc := buildDOM(t, `<body><div><p>hi</p></div></body>`)
	styles := styleTree(ctx, doc)
	assert.True(t, styles["p"].Get("background-color").IsKeyword("transparent"))
}

func TestImportantDeclarationBeatsHigherSpecificityNonImportant(t *testing.T) {
	ctx := newContext(`.a { color: blue !important; } #b { color: red; }`)
	doc := buildDOM(t, `<body><div id="b" class="a">hi</div></body>`)
	styles := styleTree(ctx, doc)
	assert.Equal(t, "blue", styles["div"].Get("color").Keyword)
}

func TestHigherSpecificityWinsWithoutImportant(t *testing.T) {
	ctx := newContext(`.a { color: blue; } #b { color: red; }`)
	doc := buildDOM(t, `<body><div id="b" class="a">hi</div></body>`)
	styles := styleTree(ctx, doc)
	assert.Equal(t, "red", styles["div"].Get("color").Keyword)
}

func TestInlineStyleOutranksMatchedRule(t *testing.T) {
	ctx := newContext(`#b { color: red; }`)
	doc := buildDOM(t, `<body><div id="b" style="color: green;">hi</div></body>`)
	styles := styleTree(ctx, doc)
	assert.Equal(t, "green", styles["div"].Get("color").Keyword)
}

func TestInitialKeywordResetsToBuiltinDefault(t *testing.T) {
	ctx := newContext(`div { color: initial; }`)
	doc := buildDOM(t, `<body><div>hi</div></body>`)
	styles := styleTree(ctx, doc)
	assert.Equal(t, InitialValue("color"), styles["div"].Get("color"))
}

func TestInheritKeywordPullsParentValueForNonInheritedProperty(t *testing.T) {
	ctx := newContext(`div { background-color: red; } p { background-color: inherit; }`)
	doc := buildDOM(t, `<body><div><p>hi</p></div></body>`)
	styles := styleTree(ctx, doc)
	assert.Equal(t, "red", styles["p"].Get("background-color").Keyword)
}

func TestFontSizeLargerKeywordScalesFromParent(t *testing.T) {
	ctx := newContext(`div { font-size: 20px; } span { font-size: larger; }`)
	doc := buildDOM(t, `<body><div><span>hi</span></div></body>`)
	styles := styleTree(ctx, doc)
	assert.InDelta(t, 24, styles["span"].FontSizePx, 0.01)
}

func TestDefaultDisplayFallsBackToUserAgentDefault(t *testing.T) {
	ctx := newContext(``)
	doc := buildDOM(t, `<body><div>x</div><span>y</span></body>`)
	styles := styleTree(ctx, doc)
	assert.Equal(t, "block", styles["div"].Display)
	assert.Equal(t, "inline", styles["span"].Display)
}

func TestMatchedRuleOverridesPresentationAttribute(t *testing.T) {
	ctx := newContext(`img { width: 200px; }`)
	doc := buildDOM(t, `<body><img width="50"></body>`)
	styles := styleTree(ctx, doc)
	w := styles["img"].Get("width")
	assert.Equal(t, 200.0, w.Num)
}

func TestPresentationAttributeAppliesWhenUnopposed(t *testing.T) {
	ctx := newContext(``)
	doc := buildDOM(t, `<body><img width="50"></body>`)
	styles := styleTree(ctx, doc)
	w := styles["img"].Get("width")
	assert.Equal(t, 50.0, w.Num)
}

func TestTableBorderAttributeSynthesizesBorderStyle(t *testing.T) {
	ctx := newContext(``)
	doc := buildDOM(t, `<body><table border="1"><tr><td>x</td></tr></table></body>`)
	styles := styleTree(ctx, doc)
	assert.True(t, styles["table"].Get("border-top-style").IsKeyword("solid"))
	assert.Equal(t, 1.0, styles["table"].Get("border-top-width").Num)
}

func TestPxResolvesEmAgainstStyleFontSize(t *testing.T) {
	ctx := newContext(`div { font-size: 10px; width: 5em; }`)
	doc := buildDOM(t, `<body><div>x</div></body>`)
	styles := styleTree(ctx, doc)
	px := styles["div"].Px("width", 0, ctx.RootFontSizePx, ctx.ViewportWidthPx, ctx.ViewportHeightPx)
	assert.Equal(t, 50.0, px)
}

func TestResolvedColorFallsBackToCurrentColor(t *testing.T) {
	ctx := newContext(`div { color: blue; border-top-color: currentColor; }`)
	doc := buildDOM(t, `<body><div>x</div></body>`)
	styles := styleTree(ctx, doc)
	c := styles["div"].ResolvedColor("border-top-color")
	assert.Equal(t, styles["div"].Color, c)
}

func TestNumericFontWeightTranslatesKeywords(t *testing.T) {
	ctx := newContext(`div { font-weight: bold; }`)
	doc := buildDOM(t, `<body><div>x</div></body>`)
	styles := styleTree(ctx, doc)
	assert.Equal(t, 700, styles["div"].NumericFontWeight())
}

func TestPseudoStyleReturnsNilWhenNoRuleTargetsIt(t *testing.T) {
	ctx := newContext(`div { color: red; }`)
	doc := buildDOM(t, `<body><div>x</div></body>`)
	p := findTag(doc.Root, "div")
	elementStyle := Style(ctx, p, nil)
	assert.Nil(t, PseudoStyle(ctx, p, elementStyle, "before"))
}

func TestPseudoStyleComputesFromMatchingRule(t *testing.T) {
	ctx := newContext(`div::before { content: "x"; color: green; }`)
	doc := buildDOM(t, `<body><div>x</div></body>`)
	p := findTag(doc.Root, "div")
	elementStyle := Style(ctx, p, nil)
	before := PseudoStyle(ctx, p, elementStyle, "before")
	require.NotNil(t, before)
	assert.Equal(t, "green", before.Get("color").Keyword)
}
