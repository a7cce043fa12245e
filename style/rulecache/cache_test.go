package rulecache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliocraft/htmlbook/css/parse"
	"github.com/foliocraft/htmlbook/dom"
	htmlparse "github.com/foliocraft/htmlbook/html/parse"
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

func TestAddFilesRuleByIDThenClassThenTagThenUniversal(t *testing.T) {
	c := New()
	c.Add(parse.ParseStyleSheet(`#a {} .b {} div {} * {}`), Author)
	assert.Len(t, c.byID["a"], 1)
	assert.Len(t, c.byClass["b"], 1)
	assert.Len(t, c.byTag["div"], 1)
	assert.Len(t, c.universal, 1)
}

func TestFilesByMostSpecificSimpleInTerminalCompound(t *testing.T) {
	// an id present anywhere in the terminal compound wins filing over
	// class/tag, even combined on one compound.
	c := New()
	c.Add(parse.ParseStyleSheet(`div.cls#id {}`), Author)
	assert.Len(t, c.byID["id"], 1)
	assert.Empty(t, c.byClass["cls"])
	assert.Empty(t, c.byTag["div"])
}

func TestPseudoElementSelectorsFiledSeparately(t *testing.T) {
	c := New()
	c.Add(parse.ParseStyleSheet(`li::marker { content: "x"; }`), Author)
	assert.Empty(t, c.byTag["li"])
	assert.Len(t, c.CandidatesForPseudoElement("marker"), 1)
}

func TestCandidatesCollectsAllApplicablePartitions(t *testing.T) {
	c := New()
	c.Add(parse.ParseStyleSheet(`#x {} .y {} p {} * {}`), Author)
	doc, err := htmlparse.Parse([]byte(`<body><p id="x" class="y">hi</p></body>`), "")
	require.NoError(t, err)
	p := findTag(doc.Root, "p")
	require.NotNil(t, p)
	candidates := c.Candidates(p)
	assert.Len(t, candidates, 4)
}

func TestFontFaceAtRulesCollected(t *testing.T) {
	c := New()
	c.Add(parse.ParseStyleSheet(`@font-face { font-family: "X"; src: url(x.woff); }`), Author)
	require.Len(t, c.FontFaces, 1)
	assert.Len(t, c.FontFaces[0], 2)
}

func TestPageRulesWithMarginBoxesCollected(t *testing.T) {
	c := New()
	c.Add(parse.ParseStyleSheet(`@page { margin: 1cm; @top-center { content: "Title"; } }`), Author)
	require.Len(t, c.PageRules, 1)
	pr := c.PageRules[0]
	assert.Len(t, pr.Declarations, 1)
	assert.Len(t, pr.MarginBoxes["top-center"], 1)
}

func TestMediaAndImportAtRulesAreNotCached(t *testing.T) {
	c := New()
	c.Add(parse.ParseStyleSheet(`@import "x.css"; @media print { p {} }`), Author)
	assert.Empty(t, c.byTag["p"])
	assert.Empty(t, c.FontFaces)
	assert.Empty(t, c.PageRules)
}

func TestOriginAndSourceOrderPreservedOnEntries(t *testing.T) {
	c := New()
	c.Add(parse.ParseStyleSheet(`p {} p {}`), Author)
	require.Len(t, c.byTag["p"], 2)
	assert.Equal(t, Author, c.byTag["p"][0].Origin)
	assert.Equal(t, 1, c.byTag["p"][0].SourceOrder)
	assert.Equal(t, 2, c.byTag["p"][1].SourceOrder)
}
