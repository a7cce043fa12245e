package parse

import (
	"strings"

	"github.com/foliocraft/htmlbook/css/token"
)

// parser buffers the token stream with one token of pushback, the
// pattern CSS Syntax Level 3's grammar ("reconsume the current input
// token") is built around.
type parser struct {
	tz       *token.Tokenizer
	pushed   *token.Token
	srcOrder int
}

func newParser(css string) *parser {
	return &parser{tz: token.New(css)}
}

func (p *parser) next() token.Token {
	if p.pushed != nil {
		t := *p.pushed
		p.pushed = nil
		return t
	}
	return p.tz.Next()
}

func (p *parser) pushback(t token.Token) {
	p.pushed = &t
}

func (p *parser) nextSkipWS() token.Token {
	for {
		t := p.next()
		if t.Kind != token.Whitespace {
			return t
		}
	}
}

// ParseStyleSheet parses a full style sheet (the contents of a <style>
// element or an external .css resource).
func ParseStyleSheet(css string) *StyleSheet {
	p := newParser(css)
	return &StyleSheet{Rules: p.consumeRuleList(true)}
}

// ParseDeclarationList parses an inline style attribute's value (no
// rules, just declarations), used for the style="" attribute.
func ParseDeclarationList(css string) []Declaration {
	p := newParser(css)
	return p.consumeDeclarationList()
}

// consumeRuleList implements "consume a list of rules"; topLevel allows
// CDO/CDC tokens to be silently dropped (only valid at a style sheet's
// top level).
func (p *parser) consumeRuleList(topLevel bool) []Rule {
	var rules []Rule
	for {
		t := p.next()
		switch t.Kind {
		case token.Whitespace:
			continue
		case token.EOF:
			return rules
		case token.CDO, token.CDC:
			if topLevel {
				continue
			}
			p.pushback(t)
			if r := p.consumeQualifiedRule(t); r != nil {
				rules = append(rules, *r)
			}
		case token.AtKeyword:
			if r := p.consumeAtRule(t); r != nil {
				rules = append(rules, Rule{At: r})
			}
		default:
			p.pushback(t)
			if r := p.consumeQualifiedRule(t); r != nil {
				rules = append(rules, *r)
			}
		}
	}
}

func (p *parser) consumeAtRule(first token.Token) *AtRule {
	ar := &AtRule{Name: first.Value}
	for {
		t := p.next()
		switch t.Kind {
		case token.Semicolon, token.EOF:
			return ar
		case token.LBrace:
			switch {
			case strings.EqualFold(ar.Name, "page"):
				ar.Block = p.consumePageBlock()
			case strings.EqualFold(ar.Name, "font-face"), IsMarginBoxName(strings.ToLower(ar.Name)):
				// @font-face's body, and an @page margin-box's body
				// (@top-center, @bottom-left, ...), are plain declaration
				// lists, not rule lists (neither production has nested
				// selectors), so each is wrapped as one synthetic style
				// rule rather than parsed via consumeRuleList, which
				// expects "prelude { block }" shaped input and would
				// never find a nested block to terminate on.
				ar.Block = []Rule{{Style: &StyleRule{Declarations: p.consumeDeclarationList()}}}
			default:
				ar.Block = p.consumeRuleList(false)
			}
			return ar
		default:
			ar.Prelude = append(ar.Prelude, t)
		}
	}
}

// consumePageBlock handles @page's body, which is itself a mixture of
// declarations and margin-box at-rules (@top-left, @bottom-center, ...).
func (p *parser) consumePageBlock() []Rule {
	var rules []Rule
	var decls []Declaration
	flushDecls := func() {
		if len(decls) > 0 {
			rules = append(rules, Rule{Style: &StyleRule{Declarations: decls}})
			decls = nil
		}
	}
	for {
		t := p.next()
		switch t.Kind {
		case token.Whitespace, token.Semicolon:
			continue
		case token.EOF, token.RBrace:
			flushDecls()
			return rules
		case token.AtKeyword:
			flushDecls()
			if ar := p.consumeAtRule(t); ar != nil {
				rules = append(rules, Rule{At: ar})
			}
		default:
			p.pushback(t)
			if d, ok := p.consumeOneDeclaration(); ok {
				decls = append(decls, d)
			}
		}
	}
}

func (p *parser) consumeQualifiedRule(first token.Token) *Rule {
	var prelude []token.Token
	for {
		t := p.next()
		switch t.Kind {
		case token.EOF:
			return nil
		case token.LBrace:
			sel := ParseSelectorList(prelude)
			decls := p.consumeDeclarationList()
			p.srcOrder++
			return &Rule{Style: &StyleRule{Selectors: sel, Declarations: decls, SourceOrder: p.srcOrder}}
		default:
			prelude = append(prelude, t)
		}
	}
}

// consumeDeclarationList consumes a {}-delimited declaration list; the
// opening '{' has already been consumed by the caller.
func (p *parser) consumeDeclarationList() []Declaration {
	var decls []Declaration
	for {
		t := p.next()
		switch t.Kind {
		case token.Whitespace, token.Semicolon:
			continue
		case token.EOF, token.RBrace:
			return decls
		case token.AtKeyword:
			// nested at-rules inside a declaration block (rare outside
			// @page) are parsed and discarded: not part of this module's
			// declaration model.
			p.consumeAtRule(t)
		default:
			p.pushback(t)
			if d, ok := p.consumeOneDeclaration(); ok {
				decls = append(decls, d)
			}
		}
	}
}

func (p *parser) consumeOneDeclaration() (Declaration, bool) {
	nameTok := p.next()
	if nameTok.Kind != token.Ident {
		p.consumeComponentsUntilSemiOrBrace()
		return Declaration{}, false
	}
	colon := p.nextSkipWS()
	if colon.Kind != token.Colon {
		p.pushback(colon)
		p.consumeComponentsUntilSemiOrBrace()
		return Declaration{}, false
	}
	var value []token.Token
	for {
		t := p.next()
		if t.Kind == token.Semicolon || t.Kind == token.RBrace || t.Kind == token.EOF {
			if t.Kind == token.RBrace {
				p.pushback(t)
			}
			break
		}
		value = append(value, t)
	}
	value, important := stripImportant(value)
	value = trimWS(value)
	return Declaration{Property: nameTok.Value, Value: value, Important: important}, true
}

func (p *parser) consumeComponentsUntilSemiOrBrace() {
	depth := 0
	for {
		t := p.next()
		switch t.Kind {
		case token.EOF:
			return
		case token.LBrace, token.LParen, token.LBracket:
			depth++
		case token.RBrace:
			if depth == 0 {
				p.pushback(t)
				return
			}
			depth--
		case token.RParen, token.RBracket:
			if depth > 0 {
				depth--
			}
		case token.Semicolon:
			if depth == 0 {
				return
			}
		}
	}
}

func trimWS(toks []token.Token) []token.Token {
	i, j := 0, len(toks)
	for i < j && toks[i].Kind == token.Whitespace {
		i++
	}
	for j > i && toks[j-1].Kind == token.Whitespace {
		j--
	}
	return toks[i:j]
}

// stripImportant scans trailing tokens for "! important" and removes it,
// reporting whether it was present.
func stripImportant(toks []token.Token) ([]token.Token, bool) {
	toks = trimWS(toks)
	n := len(toks)
	if n < 2 {
		return toks, false
	}
	end := n
	for end > 0 && toks[end-1].Kind == token.Whitespace {
		end--
	}
	if end == 0 || toks[end-1].Kind != token.Ident || !equalFold(toks[end-1].Value, "important") {
		return toks, false
	}
	end--
	for end > 0 && toks[end-1].Kind == token.Whitespace {
		end--
	}
	if end == 0 || toks[end-1].Kind != token.Delim || toks[end-1].Rune != '!' {
		return toks, false
	}
	end--
	return trimWS(toks[:end]), true
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
