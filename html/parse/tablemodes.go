package parse

import (
	"github.com/foliocraft/htmlbook/dom"
	"github.com/foliocraft/htmlbook/html/token"
)

// inTable handles the "in table" insertion mode; character tokens inside
// a table that is not itself inside caption/td/th are fostered out in
// front of the table, per the HTML5 foster-parenting rules.
func (p *Parser) inTable(tok token.Token) {
	switch tok.Kind {
	case token.Character, token.SpaceCharacter:
		if isTableContext(p.currentNode()) {
			p.insertCharacters(tok.Chars) // appropriatePlaceForInsertion already fosters
			return
		}
		p.insertCharacters(tok.Chars)
		return
	case token.Comment:
		p.insertComment(tok.Data)
		return
	case token.StartTag:
		switch tok.TagName {
		case "caption":
			p.clearStackToTableContext()
			p.afe.pushMarker()
			p.insertElementForToken(tok, dom.HTML)
			p.mode = modeInCaption
			return
		case "colgroup":
			p.clearStackToTableContext()
			p.insertElementForToken(tok, dom.HTML)
			p.mode = modeInColumnGroup
			return
		case "col":
			p.clearStackToTableContext()
			p.insertElementForToken(tok, dom.HTML)
			p.open.pop()
			p.mode = modeInColumnGroup
			p.inColumnGroup(tok)
			return
		case "tbody", "tfoot", "thead":
			p.clearStackToTableContext()
			p.insertElementForToken(tok, dom.HTML)
			p.mode = modeInTableBody
			return
		case "td", "th", "tr":
			p.clearStackToTableContext()
			n := p.doc.NewElement(p.intern("tbody"), dom.HTML)
			p.insertNode(n)
			p.mode = modeInTableBody
			p.inTableBody(tok)
			return
		case "table":
			p.parseError("nested-table")
			if p.open.hasInTableScope("table") {
				p.open.popUntil(func(n *dom.Node) bool { return n.Tag.String() == "table" })
				p.resetInsertionModeFromStack()
				p.dispatch(tok)
			}
			return
		}
	case token.EndTag:
		switch tok.TagName {
		case "table":
			if !p.open.hasInTableScope("table") {
				p.parseError("unexpected-end-tag")
				return
			}
			p.open.popUntil(func(n *dom.Node) bool { return n.Tag.String() == "table" })
			p.resetInsertionModeFromStack()
			return
		case "body", "caption", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			p.parseError("unexpected-end-tag")
			return
		}
	case token.EOF:
		p.inBody(tok)
		return
	}
	// "anything else": process using in body rules, with foster parenting
	// for insertions (appropriatePlaceForInsertion already handles this).
	p.inBody(tok)
}

func isTableContext(n *dom.Node) bool {
	if n == nil {
		return false
	}
	switch n.Tag.String() {
	case "table", "tbody", "tfoot", "thead", "tr":
		return true
	}
	return false
}

func (p *Parser) clearStackToTableContext() {
	for {
		cur := p.currentNode()
		if cur == nil {
			return
		}
		switch cur.Tag.String() {
		case "table", "html", "template":
			return
		}
		p.open.pop()
	}
}

func (p *Parser) clearStackToTableBodyContext() {
	for {
		cur := p.currentNode()
		if cur == nil {
			return
		}
		switch cur.Tag.String() {
		case "tbody", "tfoot", "thead", "html", "template":
			return
		}
		p.open.pop()
	}
}

func (p *Parser) clearStackToTableRowContext() {
	for {
		cur := p.currentNode()
		if cur == nil {
			return
		}
		switch cur.Tag.String() {
		case "tr", "html", "template":
			return
		}
		p.open.pop()
	}
}

func (p *Parser) inCaption(tok token.Token) {
	switch tok.Kind {
	case token.EndTag:
		if tok.TagName == "caption" || tok.TagName == "table" {
			if !p.open.hasInTableScope("caption") {
				p.parseError("unexpected-end-tag")
				return
			}
			p.generateImpliedEndTags("")
			p.open.popUntil(func(n *dom.Node) bool { return n.Tag.String() == "caption" })
			p.afe.clearToLastMarker()
			p.mode = modeInTable
			if tok.TagName == "table" {
				p.inTable(tok)
			}
			return
		}
	case token.StartTag:
		switch tok.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !p.open.hasInTableScope("caption") {
				return
			}
			p.open.popUntil(func(n *dom.Node) bool { return n.Tag.String() == "caption" })
			p.afe.clearToLastMarker()
			p.mode = modeInTable
			p.inTable(tok)
			return
		}
	}
	p.inBody(tok)
}

func (p *Parser) inColumnGroup(tok token.Token) {
	switch tok.Kind {
	case token.SpaceCharacter:
		p.insertCharacters(tok.Chars)
		return
	case token.Comment:
		p.insertComment(tok.Data)
		return
	case token.StartTag:
		switch tok.TagName {
		case "html":
			p.inBody(tok)
			return
		case "col":
			p.insertElementForToken(tok, dom.HTML)
			p.open.pop()
			return
		}
	case token.EndTag:
		switch tok.TagName {
		case "colgroup":
			if p.currentNode() == nil || p.currentNode().Tag.String() != "colgroup" {
				p.parseError("unexpected-end-tag")
				return
			}
			p.open.pop()
			p.mode = modeInTable
			return
		case "col":
			p.parseError("unexpected-end-tag")
			return
		}
	case token.EOF:
		p.inBody(tok)
		return
	}
	if p.currentNode() == nil || p.currentNode().Tag.String() != "colgroup" {
		return
	}
	p.open.pop()
	p.mode = modeInTable
	p.inTable(tok)
}

func (p *Parser) inTableBody(tok token.Token) {
	switch tok.Kind {
	case token.StartTag:
		switch tok.TagName {
		case "tr":
			p.clearStackToTableBodyContext()
			p.insertElementForToken(tok, dom.HTML)
			p.mode = modeInRow
			return
		case "th", "td":
			p.clearStackToTableBodyContext()
			n := p.doc.NewElement(p.intern("tr"), dom.HTML)
			p.insertNode(n)
			p.mode = modeInRow
			p.inRow(tok)
			return
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			if !p.open.hasInTableScope("tbody") && !p.open.hasInTableScope("thead") && !p.open.hasInTableScope("tfoot") {
				return
			}
			p.clearStackToTableBodyContext()
			p.open.pop()
			p.mode = modeInTable
			p.inTable(tok)
			return
		}
	case token.EndTag:
		switch tok.TagName {
		case "tbody", "tfoot", "thead":
			if !p.open.hasInTableScope(tok.TagName) {
				p.parseError("unexpected-end-tag")
				return
			}
			p.clearStackToTableBodyContext()
			p.open.pop()
			p.mode = modeInTable
			return
		case "table":
			if !p.open.hasInTableScope("tbody") && !p.open.hasInTableScope("thead") && !p.open.hasInTableScope("tfoot") {
				return
			}
			p.clearStackToTableBodyContext()
			p.open.pop()
			p.mode = modeInTable
			p.inTable(tok)
			return
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			p.parseError("unexpected-end-tag")
			return
		}
	}
	p.inTable(tok)
}

func (p *Parser) inRow(tok token.Token) {
	switch tok.Kind {
	case token.StartTag:
		switch tok.TagName {
		case "th", "td":
			p.clearStackToTableRowContext()
			p.insertElementForToken(tok, dom.HTML)
			p.mode = modeInCell
			p.afe.pushMarker()
			return
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if !p.open.hasInTableScope("tr") {
				return
			}
			p.clearStackToTableRowContext()
			p.open.pop()
			p.mode = modeInTableBody
			p.inTableBody(tok)
			return
		}
	case token.EndTag:
		switch tok.TagName {
		case "tr":
			if !p.open.hasInTableScope("tr") {
				p.parseError("unexpected-end-tag")
				return
			}
			p.clearStackToTableRowContext()
			p.open.pop()
			p.mode = modeInTableBody
			return
		case "table":
			if !p.open.hasInTableScope("tr") {
				return
			}
			p.clearStackToTableRowContext()
			p.open.pop()
			p.mode = modeInTableBody
			p.inTableBody(tok)
			return
		case "tbody", "tfoot", "thead":
			if !p.open.hasInTableScope(tok.TagName) || !p.open.hasInTableScope("tr") {
				p.parseError("unexpected-end-tag")
				return
			}
			p.clearStackToTableRowContext()
			p.open.pop()
			p.mode = modeInTableBody
			p.inTableBody(tok)
			return
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			p.parseError("unexpected-end-tag")
			return
		}
	}
	p.inTable(tok)
}

func (p *Parser) inCell(tok token.Token) {
	switch tok.Kind {
	case token.EndTag:
		switch tok.TagName {
		case "td", "th":
			if !p.open.hasInTableScope(tok.TagName) {
				p.parseError("unexpected-end-tag")
				return
			}
			p.generateImpliedEndTags("")
			p.open.popUntil(func(n *dom.Node) bool { return n.Tag.String() == tok.TagName })
			p.afe.clearToLastMarker()
			p.mode = modeInRow
			return
		case "body", "caption", "col", "colgroup", "html":
			p.parseError("unexpected-end-tag")
			return
		case "table", "tbody", "tfoot", "thead", "tr":
			if !p.open.hasInTableScope(tok.TagName) {
				return
			}
			p.closeCell()
			p.dispatch(tok)
			return
		}
	case token.StartTag:
		switch tok.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			p.closeCell()
			p.dispatch(tok)
			return
		}
	}
	p.inBody(tok)
}

func (p *Parser) closeCell() {
	if p.open.hasInTableScope("td") {
		p.open.popUntil(func(n *dom.Node) bool { return n.Tag.String() == "td" })
	} else if p.open.hasInTableScope("th") {
		p.open.popUntil(func(n *dom.Node) bool { return n.Tag.String() == "th" })
	}
	p.afe.clearToLastMarker()
	p.mode = modeInRow
}

func (p *Parser) inSelect(tok token.Token) {
	switch tok.Kind {
	case token.Character, token.SpaceCharacter:
		p.insertCharacters(tok.Chars)
		return
	case token.Comment:
		p.insertComment(tok.Data)
		return
	case token.EOF:
		return
	case token.StartTag:
		switch tok.TagName {
		case "option":
			if cur := p.currentNode(); cur != nil && cur.Tag.String() == "option" {
				p.open.pop()
			}
			p.insertElementForToken(tok, dom.HTML)
			return
		case "optgroup":
			if cur := p.currentNode(); cur != nil && cur.Tag.String() == "option" {
				p.open.pop()
			}
			if cur := p.currentNode(); cur != nil && cur.Tag.String() == "optgroup" {
				p.open.pop()
			}
			p.insertElementForToken(tok, dom.HTML)
			return
		case "select":
			p.parseError("nested-select")
			if p.open.hasInSelectScope("select") {
				p.open.popUntil(func(n *dom.Node) bool { return n.Tag.String() == "select" })
				p.resetInsertionModeFromStack()
			}
			return
		case "input", "keygen", "textarea":
			if !p.open.hasInSelectScope("select") {
				return
			}
			p.open.popUntil(func(n *dom.Node) bool { return n.Tag.String() == "select" })
			p.resetInsertionModeFromStack()
			p.dispatch(tok)
			return
		}
	case token.EndTag:
		switch tok.TagName {
		case "optgroup":
			if cur := p.currentNode(); cur != nil && cur.Tag.String() == "option" {
				if len(p.open.items) >= 2 && p.open.items[len(p.open.items)-2].Tag.String() == "optgroup" {
					p.open.pop()
				}
			}
			if cur := p.currentNode(); cur != nil && cur.Tag.String() == "optgroup" {
				p.open.pop()
			}
			return
		case "option":
			if cur := p.currentNode(); cur != nil && cur.Tag.String() == "option" {
				p.open.pop()
			}
			return
		case "select":
			if !p.open.hasInSelectScope("select") {
				p.parseError("unexpected-end-tag")
				return
			}
			p.open.popUntil(func(n *dom.Node) bool { return n.Tag.String() == "select" })
			p.resetInsertionModeFromStack()
			return
		}
	}
}

var selectTableTags = map[string]bool{
	"caption": true, "table": true, "tbody": true, "tfoot": true,
	"thead": true, "tr": true, "td": true, "th": true,
}

// inSelectInTable handles the "in select in table" insertion mode: a
// <select> nested inside a table that sees a table-structural tag closes
// itself out and lets the enclosing table handle it.
func (p *Parser) inSelectInTable(tok token.Token) {
	if tok.Kind == token.StartTag && selectTableTags[tok.TagName] {
		p.parseError("unexpected-start-tag")
		p.open.popUntil(func(n *dom.Node) bool { return n.Tag.String() == "select" })
		p.resetInsertionModeFromStack()
		p.dispatch(tok)
		return
	}
	if tok.Kind == token.EndTag && selectTableTags[tok.TagName] {
		p.parseError("unexpected-end-tag")
		if !p.open.hasInTableScope(tok.TagName) {
			return
		}
		p.open.popUntil(func(n *dom.Node) bool { return n.Tag.String() == "select" })
		p.resetInsertionModeFromStack()
		p.dispatch(tok)
		return
	}
	p.inSelect(tok)
}

// resetInsertionModeFromStack implements the "reset the insertion mode
// appropriately" algorithm, used after table/select structures close out
// from the middle of the stack.
func (p *Parser) resetInsertionModeFromStack() {
	for i := len(p.open.items) - 1; i >= 0; i-- {
		n := p.open.items[i]
		last := i == 0
		switch n.Tag.String() {
		case "select":
			for j := i - 1; j >= 0; j-- {
				if p.open.items[j].Tag.String() == "table" {
					p.mode = modeInSelectInTable
					return
				}
			}
			p.mode = modeInSelect
			return
		case "td", "th":
			if !last {
				p.mode = modeInCell
				return
			}
		case "tr":
			p.mode = modeInRow
			return
		case "tbody", "thead", "tfoot":
			p.mode = modeInTableBody
			return
		case "caption":
			p.mode = modeInCaption
			return
		case "colgroup":
			p.mode = modeInColumnGroup
			return
		case "table":
			p.mode = modeInTable
			return
		case "head":
			if !last {
				p.mode = modeInHead
				return
			}
		case "body":
			p.mode = modeInBody
			return
		case "html":
			if p.head == nil {
				p.mode = modeBeforeHead
			} else {
				p.mode = modeAfterHead
			}
			return
		}
		if last {
			p.mode = modeInBody
			return
		}
	}
	p.mode = modeInBody
}
