package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliocraft/htmlbook/dom"
	"github.com/foliocraft/htmlbook/intern"
)

func TestSVGElementGetsSVGNamespace(t *testing.T) {
	doc, err := Parse([]byte(`<body><svg><circle r="5"></circle></svg></body>`), "")
	require.NoError(t, err)
	svg := findTag(doc.Root, "svg")
	require.NotNil(t, svg)
	assert.Equal(t, dom.SVG, svg.NS)
	circle := findTag(svg, "circle")
	require.NotNil(t, circle)
	assert.Equal(t, dom.SVG, circle.NS)
}

func TestSVGForeignObjectTagNameCaseRestored(t *testing.T) {
	doc, err := Parse([]byte(`<body><svg><foreignobject></foreignobject></svg></body>`), "")
	require.NoError(t, err)
	svg := findTag(doc.Root, "svg")
	require.NotNil(t, svg)
	fo := findTag(svg, "foreignObject")
	require.NotNil(t, fo)
}

func TestSVGAttributeCaseRestored(t *testing.T) {
	doc, err := Parse([]byte(`<body><svg viewbox="0 0 10 10"></svg></body>`), "")
	require.NoError(t, err)
	svg := findTag(doc.Root, "svg")
	require.NotNil(t, svg)
	v, ok := svg.Attr(intern.Intern("viewBox"))
	require.True(t, ok)
	assert.Equal(t, "0 0 10 10", v.String())
}

func TestHTMLStartTagBreaksOutOfSVGContent(t *testing.T) {
	// <p> is in the breakout set: it must close the svg subtree and land
	// back in HTML content as a sibling, not a descendant, of <svg>.
	doc, err := Parse([]byte(`<body><svg><p>text</p></svg></body>`), "")
	require.NoError(t, err)
	body := findTag(doc.Root, "body")
	require.NotNil(t, body)
	p := findTag(body, "p")
	require.NotNil(t, p)
	assert.Equal(t, dom.HTML, p.NS)
	assert.Equal(t, "text", p.TextContent())
}

func TestMathMLElementGetsMathMLNamespace(t *testing.T) {
	doc, err := Parse([]byte(`<body><math><mi>x</mi></math></body>`), "")
	require.NoError(t, err)
	math := findTag(doc.Root, "math")
	require.NotNil(t, math)
	assert.Equal(t, dom.MathML, math.NS)
	mi := findTag(math, "mi")
	require.NotNil(t, mi)
	assert.Equal(t, dom.MathML, mi.NS)
}

func TestNestedSVGEndTagClosesSubtree(t *testing.T) {
	doc, err := Parse([]byte(`<body><svg><rect></rect></svg><p>after</p></body>`), "")
	require.NoError(t, err)
	body := findTag(doc.Root, "body")
	require.NotNil(t, body)
	svg := findTag(body, "svg")
	require.NotNil(t, svg)
	p := findTag(body, "p")
	require.NotNil(t, p)
	assert.Equal(t, dom.HTML, p.NS)
	assert.Same(t, body, p.Parent) // p is body's child, not nested inside svg
}

func TestFramesetDocumentEntersFramesetMode(t *testing.T) {
	doc, err := Parse([]byte(`<html><head></head><frameset><frame><frame></frameset></html>`), "")
	require.NoError(t, err)
	frameset := findTag(doc.Root, "frameset")
	require.NotNil(t, frameset)
	frames := findAllTags(frameset, "frame")
	assert.Len(t, frames, 2)
}

func TestSelectInsideTableClosesOnTableStartTag(t *testing.T) {
	// A <select> nested inside a <table> sees a <tr> start tag and closes
	// itself out, letting the table resume normal table parsing.
	doc, err := Parse([]byte(`<table><tr><td><select><option>a</option><tr><td>b</td></tr></table>`), "")
	require.NoError(t, err)
	table := findTag(doc.Root, "table")
	require.NotNil(t, table)
	rows := findAllTags(table, "tr")
	assert.Len(t, rows, 2)
	sel := findTag(table, "select")
	require.NotNil(t, sel)
	assert.NotNil(t, findTag(sel, "option"))
}
