package parse

import (
	"github.com/foliocraft/htmlbook/dom"
	"github.com/foliocraft/htmlbook/html/token"
)

var formattingTags = map[string]bool{
	"a": true, "b": true, "big": true, "code": true, "em": true, "font": true,
	"i": true, "nobr": true, "s": true, "small": true, "strike": true,
	"strong": true, "tt": true, "u": true,
}

func (p *Parser) dispatch(tok token.Token) {
	if p.mustUseForeignContentRules(tok) {
		p.inForeignContent(tok)
		return
	}
	p.dispatchByMode(tok)
}

// mustUseForeignContentRules implements the tree construction dispatcher's
// "adjusted current node" check: once parsing has descended into an SVG or
// MathML subtree, most tokens are handled by the foreign-content rules
// instead of the current insertion mode. This module does not model
// MathML/HTML integration points, so every foreign current node routes
// here regardless of token shape.
func (p *Parser) mustUseForeignContentRules(tok token.Token) bool {
	if tok.Kind == token.EOF {
		return false
	}
	cur := p.currentNode()
	return cur != nil && cur.NS != dom.HTML
}

func (p *Parser) dispatchByMode(tok token.Token) {
	switch p.mode {
	case modeInitial:
		p.inInitial(tok)
	case modeBeforeHTML:
		p.inBeforeHTML(tok)
	case modeBeforeHead:
		p.inBeforeHead(tok)
	case modeInHead:
		p.inHead(tok)
	case modeInHeadNoscript:
		p.inHeadNoscript(tok)
	case modeAfterHead:
		p.inAfterHead(tok)
	case modeInBody:
		p.inBody(tok)
	case modeText:
		p.inText(tok)
	case modeInTable, modeInTableText:
		p.inTable(tok)
	case modeInCaption:
		p.inCaption(tok)
	case modeInColumnGroup:
		p.inColumnGroup(tok)
	case modeInTableBody:
		p.inTableBody(tok)
	case modeInRow:
		p.inRow(tok)
	case modeInCell:
		p.inCell(tok)
	case modeInSelect:
		p.inSelect(tok)
	case modeInSelectInTable:
		p.inSelectInTable(tok)
	case modeAfterBody:
		p.inAfterBody(tok)
	case modeInFrameset:
		p.inFrameset(tok)
	case modeAfterFrameset:
		p.inAfterFrameset(tok)
	case modeAfterAfterBody:
		p.inAfterAfterBody(tok)
	case modeAfterAfterFrameset:
		p.inAfterAfterFrameset(tok)
	}
}

func (p *Parser) inInitial(tok token.Token) {
	switch tok.Kind {
	case token.SpaceCharacter:
		return
	case token.Comment:
		p.doc.Root.AppendChild(p.doc.NewComment(p.arenaStr(tok.Data)))
		return
	case token.Doctype:
		p.doc.Root.DoctypePublic = p.arenaStr(tok.PublicID)
		p.doc.Root.DoctypeSystem = p.arenaStr(tok.SystemID)
		if tok.ForceQuirks || tok.DoctypeName != "html" {
			p.doc.QuirksMode = dom.Quirks
		}
		p.mode = modeBeforeHTML
		return
	}
	p.doc.QuirksMode = dom.Quirks
	p.mode = modeBeforeHTML
	p.inBeforeHTML(tok)
}

func (p *Parser) inBeforeHTML(tok token.Token) {
	switch tok.Kind {
	case token.SpaceCharacter:
		return
	case token.Comment:
		p.insertComment(tok.Data)
		return
	case token.StartTag:
		if tok.TagName == "html" {
			n := p.doc.NewElement(p.intern("html"), dom.HTML)
			p.applyAttrs(n, tok.Attrs)
			p.doc.Root.AppendChild(n)
			p.open.push(n)
			p.mode = modeBeforeHead
			return
		}
	case token.EndTag:
		switch tok.TagName {
		case "head", "body", "html", "br":
		default:
			return
		}
	}
	n := p.doc.NewElement(p.intern("html"), dom.HTML)
	p.doc.Root.AppendChild(n)
	p.open.push(n)
	p.mode = modeBeforeHead
	p.inBeforeHead(tok)
}

func (p *Parser) inBeforeHead(tok token.Token) {
	switch tok.Kind {
	case token.SpaceCharacter:
		return
	case token.Comment:
		p.insertComment(tok.Data)
		return
	case token.StartTag:
		if tok.TagName == "html" {
			p.inBody(tok)
			return
		}
		if tok.TagName == "head" {
			n := p.insertElementForToken(tok, dom.HTML)
			p.head = n
			p.mode = modeInHead
			return
		}
	case token.EndTag:
		switch tok.TagName {
		case "head", "body", "html", "br":
		default:
			return
		}
	}
	n := p.doc.NewElement(p.intern("head"), dom.HTML)
	p.appropriatePlaceForInsertion().AppendChild(n)
	p.open.push(n)
	p.head = n
	p.mode = modeInHead
	p.inHead(tok)
}

var headRawText = map[string]bool{"title": true}
var headRawRaw = map[string]bool{"noframes": true, "style": true}

func (p *Parser) inHead(tok token.Token) {
	switch tok.Kind {
	case token.SpaceCharacter:
		p.insertCharacters(tok.Chars)
		return
	case token.Comment:
		p.insertComment(tok.Data)
		return
	case token.Doctype:
		p.parseError("unexpected-doctype")
		return
	case token.StartTag:
		switch tok.TagName {
		case "html":
			p.inBody(tok)
			return
		case "base", "basefont", "bgsound", "link", "meta":
			p.insertElementForToken(tok, dom.HTML)
			p.open.pop()
			return
		case "title":
			p.insertElementForToken(tok, dom.HTML)
			p.tz.SetLastStartTag("title")
			p.tz.SetState(token.TextRCDATA)
			p.originalMode = p.mode
			p.mode = modeText
			return
		case "noframes", "style":
			p.insertElementForToken(tok, dom.HTML)
			p.tz.SetLastStartTag(tok.TagName)
			p.tz.SetState(token.TextRAWTEXT)
			p.originalMode = p.mode
			p.mode = modeText
			return
		case "noscript":
			p.insertElementForToken(tok, dom.HTML)
			p.mode = modeInHeadNoscript
			return
		case "script":
			p.insertElementForToken(tok, dom.HTML)
			p.tz.SetLastStartTag("script")
			p.tz.SetState(token.TextScriptData)
			p.originalMode = p.mode
			p.mode = modeText
			return
		case "head":
			p.parseError("unexpected-start-tag")
			return
		}
	case token.EndTag:
		switch tok.TagName {
		case "head":
			p.open.pop()
			p.mode = modeAfterHead
			return
		case "body", "html", "br":
			p.open.pop()
			p.mode = modeAfterHead
			p.inAfterHead(tok)
			return
		default:
			p.parseError("unexpected-end-tag")
			return
		}
	}
	p.open.pop()
	p.mode = modeAfterHead
	p.inAfterHead(tok)
}

// inHeadNoscript handles the "in head noscript" insertion mode, entered
// on a <noscript> start tag while in head (scripting is always treated
// as disabled, so noscript content is parsed rather than skipped).
func (p *Parser) inHeadNoscript(tok token.Token) {
	switch tok.Kind {
	case token.Doctype:
		p.parseError("unexpected-doctype")
		return
	case token.StartTag:
		switch tok.TagName {
		case "html":
			p.inBody(tok)
			return
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			p.inHead(tok)
			return
		case "head", "noscript":
			p.parseError("unexpected-start-tag")
			return
		}
	case token.EndTag:
		switch tok.TagName {
		case "noscript":
			p.open.pop()
			p.mode = modeInHead
			return
		case "br":
		default:
			p.parseError("unexpected-end-tag")
			return
		}
	case token.SpaceCharacter, token.Comment:
		p.inHead(tok)
		return
	}
	p.open.pop()
	p.mode = modeInHead
	p.inHead(tok)
}

func (p *Parser) inAfterHead(tok token.Token) {
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
		case "body":
			n := p.insertElementForToken(tok, dom.HTML)
			_ = n
			p.framesetOK = false
			p.mode = modeInBody
			return
		case "frameset":
			p.insertElementForToken(tok, dom.HTML)
			p.mode = modeInFrameset
			return
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "title":
			p.open.push(p.head)
			p.inHead(tok)
			p.open.remove(p.head)
			return
		}
	case token.EndTag:
		switch tok.TagName {
		case "body", "html", "br":
		default:
			p.parseError("unexpected-end-tag")
			return
		}
	}
	n := p.doc.NewElement(p.intern("body"), dom.HTML)
	p.appropriatePlaceForInsertion().AppendChild(n)
	p.open.push(n)
	p.mode = modeInBody
	p.inBody(tok)
}

func (p *Parser) inText(tok token.Token) {
	switch tok.Kind {
	case token.Character, token.SpaceCharacter:
		p.insertCharacters(tok.Chars)
		return
	case token.EOF:
		p.open.pop()
		p.mode = p.originalMode
		p.dispatch(tok)
		return
	case token.EndTag:
		p.open.pop()
		p.mode = p.originalMode
		return
	}
}

func (p *Parser) inBody(tok token.Token) {
	switch tok.Kind {
	case token.Character, token.SpaceCharacter:
		p.reconstructActiveFormattingElements()
		p.insertCharacters(tok.Chars)
		if tok.Kind == token.Character {
			p.framesetOK = false
		}
		return
	case token.Comment:
		p.insertComment(tok.Data)
		return
	case token.EOF:
		return
	case token.StartTag:
		p.bodyStartTag(tok)
		return
	case token.EndTag:
		p.bodyEndTag(tok)
		return
	}
}

var headingTags = map[string]bool{"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true}

func (p *Parser) bodyStartTag(tok token.Token) {
	switch tok.TagName {
	case "html":
		return
	case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "title":
		p.inHead(tok)
		return
	case "body":
		return
	case "address", "article", "aside", "blockquote", "center", "details", "dialog",
		"dir", "div", "dl", "fieldset", "figcaption", "figure", "footer", "header",
		"hgroup", "main", "menu", "nav", "ol", "p", "section", "summary", "ul":
		if p.open.hasInButtonScope("p") {
			p.closePElement()
		}
		p.insertElementForToken(tok, dom.HTML)
		return
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if p.open.hasInButtonScope("p") {
			p.closePElement()
		}
		if cur := p.currentNode(); cur != nil && headingTags[cur.Tag.String()] {
			p.open.pop()
		}
		p.insertElementForToken(tok, dom.HTML)
		return
	case "pre", "listing":
		if p.open.hasInButtonScope("p") {
			p.closePElement()
		}
		p.insertElementForToken(tok, dom.HTML)
		p.framesetOK = false
		return
	case "plaintext":
		if p.open.hasInButtonScope("p") {
			p.closePElement()
		}
		p.insertElementForToken(tok, dom.HTML)
		p.tz.SetState(token.TextPLAINTEXT)
		return
	case "form":
		if p.form != nil {
			return
		}
		if p.open.hasInButtonScope("p") {
			p.closePElement()
		}
		p.form = p.insertElementForToken(tok, dom.HTML)
		return
	case "li":
		p.framesetOK = false
		for i := len(p.open.items) - 1; i >= 0; i-- {
			n := p.open.items[i]
			if n.Tag.String() == "li" {
				p.generateImpliedEndTags("li")
				p.open.popUntil(func(x *dom.Node) bool { return x == n })
				break
			}
			if isSpecialElement(n.Tag.String()) && n.Tag.String() != "address" && n.Tag.String() != "div" && n.Tag.String() != "p" {
				break
			}
		}
		if p.open.hasInButtonScope("p") {
			p.closePElement()
		}
		p.insertElementForToken(tok, dom.HTML)
		return
	case "dd", "dt":
		p.framesetOK = false
		for i := len(p.open.items) - 1; i >= 0; i-- {
			n := p.open.items[i]
			if n.Tag.String() == "dd" || n.Tag.String() == "dt" {
				p.generateImpliedEndTags(n.Tag.String())
				p.open.popUntil(func(x *dom.Node) bool { return x == n })
				break
			}
			if isSpecialElement(n.Tag.String()) && n.Tag.String() != "address" && n.Tag.String() != "div" && n.Tag.String() != "p" {
				break
			}
		}
		if p.open.hasInButtonScope("p") {
			p.closePElement()
		}
		p.insertElementForToken(tok, dom.HTML)
		return
	case "a":
		if n, _ := p.afe.lastBefore("a"); n != nil {
			p.adoptionAgency("a")
			p.afe.remove(n)
			p.open.remove(n)
		}
		p.reconstructActiveFormattingElements()
		n := p.insertElementForToken(tok, dom.HTML)
		p.afe.push(n, formattingToken{tag: "a", attrs: n.Attrs})
		return
	case "b", "big", "code", "em", "font", "i", "s", "small", "strike", "strong", "tt", "u":
		p.reconstructActiveFormattingElements()
		n := p.insertElementForToken(tok, dom.HTML)
		p.afe.push(n, formattingToken{tag: tok.TagName, attrs: n.Attrs})
		return
	case "nobr":
		p.reconstructActiveFormattingElements()
		if p.open.hasInScope("nobr") {
			p.adoptionAgency("nobr")
			p.reconstructActiveFormattingElements()
		}
		n := p.insertElementForToken(tok, dom.HTML)
		p.afe.push(n, formattingToken{tag: "nobr", attrs: n.Attrs})
		return
	case "table":
		if p.doc.QuirksMode != dom.Quirks && p.open.hasInButtonScope("p") {
			p.closePElement()
		}
		p.insertElementForToken(tok, dom.HTML)
		p.framesetOK = false
		p.mode = modeInTable
		return
	case "area", "br", "embed", "img", "keygen", "wbr":
		p.reconstructActiveFormattingElements()
		p.insertElementForToken(tok, dom.HTML)
		p.open.pop()
		p.framesetOK = false
		return
	case "input":
		p.reconstructActiveFormattingElements()
		p.insertElementForToken(tok, dom.HTML)
		p.open.pop()
		if t, _ := attrVal(tok.Attrs, "type"); t != "hidden" {
			p.framesetOK = false
		}
		return
	case "hr":
		if p.open.hasInButtonScope("p") {
			p.closePElement()
		}
		p.insertElementForToken(tok, dom.HTML)
		p.open.pop()
		p.framesetOK = false
		return
	case "textarea":
		p.insertElementForToken(tok, dom.HTML)
		p.tz.SetLastStartTag("textarea")
		p.tz.SetState(token.TextRCDATA)
		p.originalMode = p.mode
		p.framesetOK = false
		p.mode = modeText
		return
	case "select":
		p.reconstructActiveFormattingElements()
		wasInTableContext := p.mode == modeInTable || p.mode == modeInCaption ||
			p.mode == modeInTableBody || p.mode == modeInRow || p.mode == modeInCell
		p.insertElementForToken(tok, dom.HTML)
		p.framesetOK = false
		if wasInTableContext {
			p.mode = modeInSelectInTable
		} else {
			p.mode = modeInSelect
		}
		return
	case "math":
		p.reconstructActiveFormattingElements()
		p.insertForeignElementForToken(tok, dom.MathML)
		return
	case "svg":
		p.reconstructActiveFormattingElements()
		p.insertForeignElementForToken(tok, dom.SVG)
		return
	default:
		p.reconstructActiveFormattingElements()
		p.insertElementForToken(tok, dom.HTML)
	}
}

func (p *Parser) closePElement() {
	p.generateImpliedEndTags("p")
	p.open.popUntil(func(n *dom.Node) bool { return n.Tag.String() == "p" })
}

func (p *Parser) bodyEndTag(tok token.Token) {
	switch tok.TagName {
	case "body":
		p.mode = modeAfterBody
		return
	case "html":
		p.mode = modeAfterBody
		p.inAfterBody(tok)
		return
	case "address", "article", "aside", "blockquote", "button", "center", "details",
		"dialog", "dir", "div", "dl", "fieldset", "figcaption", "figure", "footer",
		"header", "hgroup", "listing", "main", "menu", "nav", "ol", "pre", "section",
		"summary", "ul":
		if !p.open.hasInScope(tok.TagName) {
			p.parseError("unexpected-end-tag")
			return
		}
		p.generateImpliedEndTags("")
		p.open.popUntil(func(n *dom.Node) bool { return n.Tag.String() == tok.TagName })
		return
	case "p":
		if !p.open.hasInButtonScope("p") {
			p.parseError("unexpected-end-tag")
			n := p.doc.NewElement(p.intern("p"), dom.HTML)
			p.insertNode(n)
		}
		p.closePElement()
		return
	case "li":
		if !p.open.hasInListItemScope("li") {
			p.parseError("unexpected-end-tag")
			return
		}
		p.generateImpliedEndTags("li")
		p.open.popUntil(func(n *dom.Node) bool { return n.Tag.String() == "li" })
		return
	case "dd", "dt":
		if !p.open.hasInScope(tok.TagName) {
			p.parseError("unexpected-end-tag")
			return
		}
		p.generateImpliedEndTags(tok.TagName)
		p.open.popUntil(func(n *dom.Node) bool { return n.Tag.String() == tok.TagName })
		return
	case "h1", "h2", "h3", "h4", "h5", "h6":
		match := func(n *dom.Node) bool { return headingTags[n.Tag.String()] }
		hasAny := false
		for _, n := range p.open.items {
			if match(n) {
				hasAny = true
				break
			}
		}
		if !hasAny {
			p.parseError("unexpected-end-tag")
			return
		}
		p.generateImpliedEndTags("")
		p.open.popUntil(match)
		return
	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small", "strike",
		"strong", "tt", "u":
		p.adoptionAgency(tok.TagName)
		return
	case "form":
		f := p.form
		p.form = nil
		if f == nil || !p.open.contains(f) {
			p.parseError("unexpected-end-tag")
			return
		}
		p.generateImpliedEndTags("")
		p.open.remove(f)
		return
	case "br":
		p.reconstructActiveFormattingElements()
		n := p.doc.NewElement(p.intern("br"), dom.HTML)
		p.insertNode(n)
		p.open.pop()
		p.framesetOK = false
		return
	default:
		p.anyOtherEndTag(tok.TagName)
	}
}

func (p *Parser) inAfterBody(tok token.Token) {
	switch tok.Kind {
	case token.SpaceCharacter:
		p.inBody(tok)
		return
	case token.Comment:
		if len(p.open.items) > 0 {
			p.open.items[0].AppendChild(p.doc.NewComment(p.arenaStr(tok.Data)))
		}
		return
	case token.EndTag:
		if tok.TagName == "html" {
			p.mode = modeAfterAfterBody
			return
		}
	case token.EOF:
		return
	}
	p.mode = modeInBody
	p.inBody(tok)
}

func (p *Parser) inAfterAfterBody(tok token.Token) {
	switch tok.Kind {
	case token.Comment:
		p.doc.Root.AppendChild(p.doc.NewComment(p.arenaStr(tok.Data)))
		return
	case token.SpaceCharacter:
		p.inBody(tok)
		return
	case token.EOF:
		return
	}
	p.mode = modeInBody
	p.inBody(tok)
}

// inFrameset handles the "in frameset" insertion mode, reached for
// frameset documents (<frameset> in place of <body>).
func (p *Parser) inFrameset(tok token.Token) {
	switch tok.Kind {
	case token.SpaceCharacter:
		p.insertCharacters(tok.Chars)
		return
	case token.Comment:
		p.insertComment(tok.Data)
		return
	case token.Doctype:
		p.parseError("unexpected-doctype")
		return
	case token.StartTag:
		switch tok.TagName {
		case "html":
			p.inBody(tok)
			return
		case "frameset":
			p.insertElementForToken(tok, dom.HTML)
			return
		case "frame":
			p.insertElementForToken(tok, dom.HTML)
			p.open.pop()
			return
		case "noframes":
			p.inHead(tok)
			return
		}
	case token.EndTag:
		if tok.TagName == "frameset" {
			if cur := p.currentNode(); cur != nil && cur.Tag.String() == "html" {
				p.parseError("unexpected-end-tag")
				return
			}
			p.open.pop()
			if cur := p.currentNode(); cur == nil || cur.Tag.String() != "frameset" {
				p.mode = modeAfterFrameset
			}
			return
		}
	case token.EOF:
		if len(p.open.items) > 1 {
			p.parseError("unexpected-eof")
		}
		return
	}
	p.parseError("unexpected-token")
}

// inAfterFrameset handles the "after frameset" insertion mode, following
// the frameset element's own end tag.
func (p *Parser) inAfterFrameset(tok token.Token) {
	switch tok.Kind {
	case token.SpaceCharacter:
		p.insertCharacters(tok.Chars)
		return
	case token.Comment:
		p.insertComment(tok.Data)
		return
	case token.Doctype:
		p.parseError("unexpected-doctype")
		return
	case token.StartTag:
		switch tok.TagName {
		case "html":
			p.inBody(tok)
			return
		case "noframes":
			p.inHead(tok)
			return
		}
	case token.EndTag:
		if tok.TagName == "html" {
			p.mode = modeAfterAfterFrameset
			return
		}
	case token.EOF:
		return
	}
	p.parseError("unexpected-token")
}

// inAfterAfterFrameset handles the final "after after frameset"
// insertion mode.
func (p *Parser) inAfterAfterFrameset(tok token.Token) {
	switch tok.Kind {
	case token.Comment:
		p.doc.Root.AppendChild(p.doc.NewComment(p.arenaStr(tok.Data)))
		return
	case token.SpaceCharacter:
		p.inBody(tok)
		return
	case token.StartTag:
		switch tok.TagName {
		case "html":
			p.inBody(tok)
			return
		case "noframes":
			p.inHead(tok)
			return
		}
	case token.EOF:
		return
	}
	p.parseError("unexpected-token")
}
