package parse

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/foliocraft/htmlbook/arena"
	"github.com/foliocraft/htmlbook/dom"
	"github.com/foliocraft/htmlbook/html/token"
	"github.com/foliocraft/htmlbook/intern"
)

func tracer() tracing.Trace {
	return tracing.Select("htmlbook.parse")
}

// insertionMode identifies one of the tree-construction algorithm's named
// modes.
type insertionMode uint8

const (
	modeInitial insertionMode = iota
	modeBeforeHTML
	modeBeforeHead
	modeInHead
	modeAfterHead
	modeInBody
	modeText
	modeInTable
	modeInTableText
	modeInCaption
	modeInColumnGroup
	modeInTableBody
	modeInRow
	modeInCell
	modeInSelect
	modeInSelectInTable
	modeAfterBody
	modeInFrameset
	modeAfterFrameset
	modeAfterAfterBody
	modeAfterAfterFrameset
	modeInHeadNoscript
)

// Parser drives tree construction from a token stream.
type Parser struct {
	tz  *token.Tokenizer
	doc *dom.Document

	mode         insertionMode
	originalMode insertionMode

	open openElements
	afe  activeFormatting

	head *dom.Node
	form *dom.Node

	framesetOK bool
	quirksDone bool

	pendingTableChars []token.Token

	errs []string

	maxAdoptionAgencyIterations int
}

const defaultArenaBytes = 64 * 1024 * 1024
const defaultMaxAdoptionAgencyIterations = 8

// Options configures a single Parse call; the zero value reproduces the
// WHATWG-specified defaults.
type Options struct {
	// MaxAdoptionAgencyIterations bounds the adoption agency algorithm's
	// outer loop. Zero means the specified default of 8; a caller wanting
	// to relax the cap for pathological documents can raise it.
	MaxAdoptionAgencyIterations int
}

// Parse tokenizes and parses content into a fully-built DOM document,
// using WHATWG-specified defaults throughout.
func Parse(content []byte, baseURL string) (*dom.Document, error) {
	return ParseWithOptions(content, baseURL, Options{})
}

// ParseWithOptions is Parse with caller-tunable recovery limits.
func ParseWithOptions(content []byte, baseURL string, opts Options) (*dom.Document, error) {
	doc := dom.NewDocument(defaultArenaBytes)
	doc.BaseURL = baseURL
	cap := opts.MaxAdoptionAgencyIterations
	if cap <= 0 {
		cap = defaultMaxAdoptionAgencyIterations
	}
	p := &Parser{
		tz:                          token.New(content),
		doc:                         doc,
		mode:                        modeInitial,
		framesetOK:                  true,
		maxAdoptionAgencyIterations: cap,
	}
	p.run()
	return doc, nil
}

func (p *Parser) run() {
	for {
		tok := p.tz.Next()
		p.dispatch(tok)
		if tok.Kind == token.EOF {
			return
		}
	}
}

func (p *Parser) intern(s string) intern.Name { return intern.Intern(s) }

func (p *Parser) arenaStr(s string) arena.String {
	as, err := p.doc.Arena.NewString([]byte(s))
	if err != nil {
		tracer().Errorf("arena exhausted: %v", err)
		return arena.String(s)
	}
	return as
}

func (p *Parser) currentNode() *dom.Node { return p.open.top() }

// insertNode inserts n and pushes it onto the stack: table parts go into
// the current node; anything else goes to appropriatePlaceForInsertion,
// in front of the table when it is foster-parented.
func (p *Parser) insertNode(n *dom.Node) {
	switch n.Tag.String() {
	case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
		p.currentNode().AppendChild(n)
	default:
		p.appropriatePlaceForInsertion().InsertBefore(n, p.fosterTable())
	}
	p.open.push(n)
}

// fosterTable returns the table a foster-parented insertion goes in front
// of, or nil when the insertion point is not fostered.
func (p *Parser) fosterTable() *dom.Node {
	if p.appropriatePlaceForInsertion() == p.currentNode() {
		return nil
	}
	for i := len(p.open.items) - 1; ; i-- {
		if p.open.items[i].Tag.String() == "table" {
			return p.open.items[i]
		}
	}
}

func (p *Parser) insertNodeInto(parent, n *dom.Node) {
	parent.AppendChild(n)
}

// appropriatePlaceForInsertion returns the current node, unless it is a
// table/tbody/tfoot/thead/tr element being fostered, in which case it
// returns the table's parent (foster parenting).
func (p *Parser) appropriatePlaceForInsertion() *dom.Node {
	cur := p.currentNode()
	if cur == nil {
		return p.doc.Root
	}
	switch cur.Tag.String() {
	case "table", "tbody", "tfoot", "thead", "tr":
		for i := len(p.open.items) - 1; i >= 0; i-- {
			if p.open.items[i].Tag.String() == "table" {
				if p.open.items[i].Parent != nil {
					return p.open.items[i].Parent
				}
				return cur
			}
		}
	}
	return cur
}

func (p *Parser) insertElementForToken(tok token.Token, ns dom.Namespace) *dom.Node {
	n := p.doc.NewElement(p.intern(tok.TagName), ns)
	p.applyAttrs(n, tok.Attrs)
	p.insertNode(n)
	return n
}

func (p *Parser) applyAttrs(n *dom.Node, attrs []token.Attr) {
	for _, a := range attrs {
		n.SetAttr(p.intern(a.Name), p.arenaStr(a.Value))
	}
}

func (p *Parser) insertCharacters(s string) {
	if s == "" {
		return
	}
	target := p.appropriatePlaceForInsertion()
	if last := target.LastChild; last != nil && last.Type == dom.TextNode {
		merged := last.Text.String() + s
		last.Text = p.arenaStr(merged)
		return
	}
	target.InsertBefore(p.doc.NewText(p.arenaStr(s)), p.fosterTable())
}

func (p *Parser) insertComment(data string) {
	target := p.appropriatePlaceForInsertion()
	target.AppendChild(p.doc.NewComment(p.arenaStr(data)))
}

func (p *Parser) parseError(msg string) {
	p.errs = append(p.errs, msg)
	tracer().Debugf("parse error: %s", msg)
}

// anyOtherEndTag implements "any other end tag" handling in the in body
// insertion mode: pop elements until the matching tag is popped, or stop
// (with an error) if a special element blocks it.
func (p *Parser) anyOtherEndTag(tag string) {
	for i := len(p.open.items) - 1; i >= 0; i-- {
		n := p.open.items[i]
		if n.Tag.String() == tag {
			p.generateImpliedEndTags(tag)
			p.open.items = p.open.items[:i]
			return
		}
		if isSpecialElement(n.Tag.String()) {
			p.parseError("unexpected-end-tag")
			return
		}
	}
}

func attrVal(attrs []token.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
