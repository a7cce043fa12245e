package parse

import "github.com/foliocraft/htmlbook/dom"

// afeEntry is one slot in the list of active formatting elements; a nil
// Node represents a "marker" (inserted at the start of a table caption,
// cell or object boundary, per the adoption agency algorithm).
type afeEntry struct {
	node  *dom.Node
	token formattingToken // copy, for the Noah's-Ark reconstruction comparison
}

type formattingToken struct {
	tag   string
	attrs []dom.Attribute
}

// activeFormatting is the list of active formatting elements.
type activeFormatting struct {
	entries []afeEntry
}

func (a *activeFormatting) pushMarker() {
	a.entries = append(a.entries, afeEntry{})
}

// push appends a formatting element, enforcing the Noah's-Ark clause:
// if three elements with identical tag, namespace and attributes already
// appear after the last marker, the earliest of them is removed.
func (a *activeFormatting) push(n *dom.Node, tok formattingToken) {
	count := 0
	firstMatchIdx := -1
	for i := len(a.entries) - 1; i >= 0; i-- {
		e := a.entries[i]
		if e.node == nil {
			break // marker
		}
		if sameFormattingElement(e.token, tok) {
			count++
			firstMatchIdx = i
			if count == 3 {
				a.entries = append(a.entries[:firstMatchIdx], a.entries[firstMatchIdx+1:]...)
				break
			}
		}
	}
	a.entries = append(a.entries, afeEntry{node: n, token: tok})
}

func sameFormattingElement(a, b formattingToken) bool {
	if a.tag != b.tag || len(a.attrs) != len(b.attrs) {
		return false
	}
	for _, x := range a.attrs {
		found := false
		for _, y := range b.attrs {
			if x.Name == y.Name && string(x.Value) == string(y.Value) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (a *activeFormatting) clearToLastMarker() {
	for i := len(a.entries) - 1; i >= 0; i-- {
		if a.entries[i].node == nil {
			a.entries = a.entries[:i]
			return
		}
	}
	a.entries = a.entries[:0]
}

func (a *activeFormatting) indexOf(n *dom.Node) int {
	for i, e := range a.entries {
		if e.node == n {
			return i
		}
	}
	return -1
}

func (a *activeFormatting) remove(n *dom.Node) {
	i := a.indexOf(n)
	if i >= 0 {
		a.entries = append(a.entries[:i], a.entries[i+1:]...)
	}
}

func (a *activeFormatting) insertAt(i int, n *dom.Node, tok formattingToken) {
	e := afeEntry{node: n, token: tok}
	a.entries = append(a.entries, afeEntry{})
	copy(a.entries[i+1:], a.entries[i:])
	a.entries[i] = e
}

// lastBefore returns the last entry with the given tag before hitting a
// marker, used by the adoption agency algorithm to find the formatting
// element being adopted.
func (a *activeFormatting) lastBefore(tag string) (*dom.Node, int) {
	for i := len(a.entries) - 1; i >= 0; i-- {
		e := a.entries[i]
		if e.node == nil {
			return nil, -1
		}
		if e.node.Tag.String() == tag {
			return e.node, i
		}
	}
	return nil, -1
}

// reconstructActiveFormattingElements re-opens formatting elements that
// were implicitly closed by intervening block content.
func (p *Parser) reconstructActiveFormattingElements() {
	if len(p.afe.entries) == 0 {
		return
	}
	last := len(p.afe.entries) - 1
	if p.afe.entries[last].node == nil || p.open.contains(p.afe.entries[last].node) {
		return
	}
	i := last
	for i > 0 {
		i--
		if p.afe.entries[i].node == nil || p.open.contains(p.afe.entries[i].node) {
			i++
			break
		}
	}
	for ; i <= last; i++ {
		e := &p.afe.entries[i]
		clone := p.cloneFormattingElement(e.node)
		p.insertNode(clone)
		e.node = clone
	}
}

func (p *Parser) cloneFormattingElement(n *dom.Node) *dom.Node {
	c := p.doc.NewElement(n.Tag, n.NS)
	c.Attrs = append([]dom.Attribute{}, n.Attrs...)
	return c
}

// adoptionAgency implements the adoption agency algorithm for a
// mismatched formatting end tag, bounded to p.maxAdoptionAgencyIterations
// outer iterations (8 when unset) and 3 inner iterations.
func (p *Parser) adoptionAgency(tag string) {
	cap := p.maxAdoptionAgencyIterations
	if cap <= 0 {
		cap = defaultMaxAdoptionAgencyIterations
	}
	for outer := 0; outer < cap; outer++ {
		formatting, feIdx := p.afe.lastBefore(tag)
		if formatting == nil {
			p.anyOtherEndTag(tag)
			return
		}
		if !p.open.contains(formatting) {
			p.afe.remove(formatting)
			return
		}
		if !p.open.hasInScope(tag) {
			return
		}
		feOpenIdx := p.open.indexOf(formatting)

		furthestBlock := (*dom.Node)(nil)
		for i := feOpenIdx + 1; i < len(p.open.items); i++ {
			if isSpecialElement(p.open.items[i].Tag.String()) {
				furthestBlock = p.open.items[i]
				break
			}
		}
		if furthestBlock == nil {
			p.open.popUntil(func(n *dom.Node) bool { return n == formatting })
			p.afe.remove(formatting)
			return
		}

		commonAncestor := p.open.items[feOpenIdx-1]
		bookmark := feIdx
		node := furthestBlock
		lastNode := furthestBlock
		nodeIdx := p.open.indexOf(node)

		for inner := 0; inner < 3; inner++ {
			nodeIdx--
			if nodeIdx < 0 {
				break
			}
			node = p.open.items[nodeIdx]
			if node == formatting {
				break
			}
			afeI := p.afe.indexOf(node)
			if afeI < 0 {
				p.open.remove(node)
				continue
			}
			clone := p.cloneFormattingElement(node)
			p.afe.entries[afeI] = afeEntry{node: clone, token: p.afe.entries[afeI].token}
			p.open.items[nodeIdx] = clone
			node = clone
			if lastNode == furthestBlock {
				bookmark = p.afe.indexOf(clone) + 1
			}
			clone.AppendChild(lastNode)
			lastNode = clone
		}

		if commonAncestor != nil {
			p.insertNodeInto(commonAncestor, lastNode)
		}

		clone := p.cloneFormattingElement(formatting)
		clone.ReparentChildren(furthestBlock)
		furthestBlock.AppendChild(clone)

		p.afe.remove(formatting)
		if bookmark > len(p.afe.entries) {
			bookmark = len(p.afe.entries)
		}
		p.afe.insertAt(bookmark, clone, formattingToken{tag: clone.Tag.String(), attrs: clone.Attrs})

		p.open.remove(formatting)
		fbIdx := p.open.indexOf(furthestBlock)
		if fbIdx >= 0 {
			p.open.insertAt(fbIdx+1, clone)
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

var specialElements = map[string]bool{
	"address": true, "applet": true, "area": true, "article": true, "aside": true,
	"base": true, "basefont": true, "bgsound": true, "blockquote": true, "body": true,
	"br": true, "button": true, "caption": true, "center": true, "col": true,
	"colgroup": true, "dd": true, "details": true, "dir": true, "div": true, "dl": true,
	"dt": true, "embed": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "frame": true, "frameset": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"head": true, "header": true, "hgroup": true, "hr": true, "html": true,
	"iframe": true, "img": true, "input": true, "li": true, "link": true,
	"listing": true, "main": true, "marquee": true, "menu": true, "meta": true,
	"nav": true, "noembed": true, "noframes": true, "noscript": true, "object": true,
	"ol": true, "p": true, "param": true, "plaintext": true, "pre": true, "script": true,
	"section": true, "select": true, "source": true, "style": true, "summary": true,
	"table": true, "tbody": true, "td": true, "template": true, "textarea": true,
	"tfoot": true, "th": true, "thead": true, "title": true, "tr": true, "track": true,
	"ul": true, "wbr": true, "xmp": true,
}

func isSpecialElement(tag string) bool { return specialElements[tag] }
