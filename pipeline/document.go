package pipeline

import (
	"github.com/foliocraft/htmlbook/dom"
	"github.com/foliocraft/htmlbook/resource"
	"github.com/foliocraft/htmlbook/style/cascade"
	"github.com/foliocraft/htmlbook/style/counters"
)

// pseudoKey identifies one element's named pseudo-element style.
type pseudoKey struct {
	n    *dom.Node
	kind string
}

// Document is a fully compiled front-end result: the DOM tree, every
// element's computed style, the generated box tree, and the resource
// cache used to resolve it, ready for a downstream layout/painting stage
// to consume.
type Document struct {
	DOM       *dom.Document
	Ctx       *cascade.Context
	Resources *resource.Cache
	FontFaces *cascade.FontFaceCache

	PageWidthPx, PageHeightPx float64

	styles   map[*dom.Node]*cascade.ComputedStyle
	pseudos  map[pseudoKey]*cascade.ComputedStyle
	genBoxes map[*dom.Node][]*counters.Box
	rootBox  *counters.Box
}

// Style returns element's already-computed style (computed for every DOM
// element and the document node itself, regardless of display).
func (d *Document) Style(element *dom.Node) *cascade.ComputedStyle {
	return d.styles[element]
}

// PseudoStyle returns element's named generated pseudo-element style
// ("before", "after" or "marker"), or nil if no rule produced one.
func (d *Document) PseudoStyle(element *dom.Node, pseudoType string) *cascade.ComputedStyle {
	return d.pseudos[pseudoKey{n: element, kind: pseudoType}]
}

// GeneratedBoxes returns the ::before/::marker/::after boxes element's
// style produced, in the order they appear in the box tree (marker,
// before, then after).
func (d *Document) GeneratedBoxes(element *dom.Node) []*counters.Box {
	return d.genBoxes[element]
}

// RootStyle returns the document node's own computed style, the cascade
// root every element ultimately inherits from.
func (d *Document) RootStyle() *cascade.ComputedStyle {
	return d.styles[d.DOM.Root]
}

// RootBox returns the box tree's root, built over the whole document.
func (d *Document) RootBox() *counters.Box {
	return d.rootBox
}

// DumpBoxTree renders the generated box tree as an indented ASCII tree,
// for logging and debugging; not part of the layout-facing API.
func (d *Document) DumpBoxTree() string {
	if d.rootBox == nil {
		return ""
	}
	return d.rootBox.Dump(boxLabel)
}

func boxLabel(b *counters.Box) string {
	if b == nil {
		return "<nil>"
	}
	if b.PseudoType != "" {
		return "::" + b.PseudoType
	}
	if b.Element == nil || b.Element.Type != dom.ElementNode {
		return "#document"
	}
	return b.Element.Tag.String()
}

func (d *Document) ViewportWidth() float64  { return d.Ctx.ViewportWidthPx }
func (d *Document) ViewportHeight() float64 { return d.Ctx.ViewportHeightPx }

// FontFace resolves the @font-face match (if any) for family/style/
// weight and loads its bytes through the resource cache.
func (d *Document) FontFace(family string, italic, smallCaps bool, weight int) (*resource.Font, bool) {
	match, ok := d.FontFaces.Resolve(family, italic, smallCaps, weight)
	if !ok {
		return nil, false
	}
	return d.Resources.ResolveFontFace(d.DOM.BaseURL, match.Sources, match.Family, match.Italic, match.SmallCaps, match.Weight)
}

// computeStyles walks the DOM assigning every element (and the document
// node) its computed style, independent of the box-construction walk
// (which only visits display-participating nodes and skips display:none
// subtrees early).
func (d *Document) computeStyles(n *dom.Node, parent *cascade.ComputedStyle) {
	if n.Type != dom.ElementNode && n.Type != dom.DocumentNode {
		return
	}
	cs := cascade.Style(d.Ctx, n, parent)
	d.styles[n] = cs
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.computeStyles(c, cs)
	}
}

// indexBoxes walks the generated box tree, filing each pseudo-box under
// its originating element in genBoxes/pseudos.
func (d *Document) indexBoxes(b *counters.Box) {
	if b == nil {
		return
	}
	if b.PseudoType != "" {
		d.genBoxes[b.Element] = append(d.genBoxes[b.Element], b)
		d.pseudos[pseudoKey{n: b.Element, kind: b.PseudoType}] = b.Style
	}
	for _, c := range b.Children() {
		d.indexBoxes(c.Payload)
	}
}
