package counters

import (
	"github.com/foliocraft/htmlbook/dom"
	"github.com/foliocraft/htmlbook/style/cascade"
	"github.com/foliocraft/htmlbook/tree"
)

// ContentKind discriminates the shapes a resolved content-list item can
// take once counters, attr() and quotes have been evaluated.
type ContentKind uint8

const (
	ContentText ContentKind = iota
	ContentImage
)

// ContentPart is one resolved piece of a generated box's content: either
// literal text (covering strings, counter/counters output, attr() values
// and quote characters) or an image reference.
type ContentPart struct {
	Kind ContentKind
	Text string // literal text, or the image URL when Kind == ContentImage
}

// Box is one node of the generated box tree: either a real element's box
// or a synthesized ::marker/::before/::after pseudo-element box. Built
// on package tree the way the teacher's styled tree wraps *html.Node,
// substituting the box-construction walk's own node shape.
type Box struct {
	tree.Node[*Box]

	Element    *dom.Node
	Style      *cascade.ComputedStyle
	PseudoType string // "" for a real element's box, else "marker"/"before"/"after"
	Content    []ContentPart
}

func newBox(element *dom.Node, style *cascade.ComputedStyle, pseudoType string) *Box {
	b := &Box{Element: element, Style: style, PseudoType: pseudoType}
	b.Payload = b
	return b
}
