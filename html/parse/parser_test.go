package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliocraft/htmlbook/dom"
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

func childTags(n *dom.Node) []string {
	var out []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == dom.ElementNode {
			out = append(out, c.Tag.String())
		}
	}
	return out
}

func TestBasicDocumentStructure(t *testing.T) {
	doc, err := Parse([]byte(`<!DOCTYPE html><html><head><title>T</title></head><body><p>hi</p></body></html>`), "")
	require.NoError(t, err)
	html := findTag(doc.Root, "html")
	require.NotNil(t, html)
	assert.Equal(t, dom.NoQuirks, doc.QuirksMode)
	assert.NotNil(t, findTag(doc.Root, "head"))
	assert.NotNil(t, findTag(doc.Root, "body"))
	p := findTag(doc.Root, "p")
	require.NotNil(t, p)
	assert.Equal(t, "hi", p.TextContent())
}

func TestMissingDoctypeIsQuirksMode(t *testing.T) {
	doc, err := Parse([]byte(`<html><body>hi</body></html>`), "")
	require.NoError(t, err)
	assert.Equal(t, dom.Quirks, doc.QuirksMode)
}

func TestMisnestedFormattingElementsAdoptionAgency(t *testing.T) {
	// <b><i></b></i>: </b> finds no furthest block, so the adoption agency
	// closes both <b> and the <i> inside it; "italic" then goes into a
	// reconstructed <i> after <b>, giving <b>bold<i>both</i></b><i>italic</i>,
	// matching every HTML5-conformant parser's recovery for this case.
	doc, err := Parse([]byte(`<p><b>bold<i>both</b>italic</i></p>`), "")
	require.NoError(t, err)
	p := findTag(doc.Root, "p")
	require.NotNil(t, p)
	bs := findAllTags(p, "b")
	is := findAllTags(p, "i")
	assert.NotEmpty(t, bs)
	assert.NotEmpty(t, is)
	assert.Equal(t, "boldbothitalic", p.TextContent())
}

func TestFosterParentingTextBeforeTable(t *testing.T) {
	// Character data appearing directly inside <table>, before any
	// <tr>/<td>, is foster-parented out in front of the table rather
	// than becoming a table child.
	doc, err := Parse([]byte(`<body><table>x<tr><td>y</td></tr></table></body>`), "")
	require.NoError(t, err)
	body := findTag(doc.Root, "body")
	require.NotNil(t, body)
	assert.Equal(t, "xy", body.TextContent())
	table := findTag(doc.Root, "table")
	require.NotNil(t, table)
	td := findTag(table, "td")
	require.NotNil(t, td)
	assert.Equal(t, "y", td.TextContent())
}

func TestTableStructureImpliedTbody(t *testing.T) {
	doc, err := Parse([]byte(`<table><tr><td>a</td></tr></table>`), "")
	require.NoError(t, err)
	table := findTag(doc.Root, "table")
	require.NotNil(t, table)
	assert.Contains(t, childTags(table), "tbody")
}

func TestParagraphAutoClosesOnBlockStartTag(t *testing.T) {
	doc, err := Parse([]byte(`<body><p>one<div>two</div></body>`), "")
	require.NoError(t, err)
	body := findTag(doc.Root, "body")
	require.NotNil(t, body)
	tags := childTags(body)
	require.GreaterOrEqual(t, len(tags), 2)
	assert.Equal(t, "p", tags[0])
	assert.Equal(t, "div", tags[1])
}

func TestAdoptionAgencyIterationCapIsConfigurable(t *testing.T) {
	// A formatting end tag misnested across several nested blocks would
	// otherwise run the adoption agency's outer loop once per block; a
	// tight cap still produces a document (no panic, no infinite loop),
	// just with less-complete reconstruction.
	html := `<b><blockquote><blockquote><blockquote><p>` + `text` + `</b></p>`
	doc, err := ParseWithOptions([]byte(html), "", Options{MaxAdoptionAgencyIterations: 1})
	require.NoError(t, err)
	assert.NotNil(t, findTag(doc.Root, "p"))
}

func TestCommentAndTextSiblingsPreserved(t *testing.T) {
	doc, err := Parse([]byte(`<body><!-- note -->hi</body>`), "")
	require.NoError(t, err)
	body := findTag(doc.Root, "body")
	require.NotNil(t, body)
	require.NotNil(t, body.FirstChild)
	assert.Equal(t, dom.CommentNode, body.FirstChild.Type)
	assert.Equal(t, " note ", body.FirstChild.Text.String())
}

func TestAttributesPreserveFirstOccurrence(t *testing.T) {
	doc, err := Parse([]byte(`<div id="a" id="b">x</div>`), "")
	require.NoError(t, err)
	div := findTag(doc.Root, "div")
	require.NotNil(t, div)
	id, ok := div.ID()
	require.True(t, ok)
	assert.Equal(t, "a", id.String())
}
