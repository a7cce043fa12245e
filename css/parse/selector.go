package parse

import (
	"strconv"
	"strings"

	"github.com/foliocraft/htmlbook/css/token"
)

// ParseSelectorList parses a rule prelude's token list into a selector
// list, splitting on top-level commas.
func ParseSelectorList(toks []token.Token) []*Selector {
	toks = trimWS(toks)
	var out []*Selector
	for _, group := range splitTopLevelCommas(toks) {
		if sel := parseComplexSelector(trimWS(group)); sel != nil {
			out = append(out, sel)
		}
	}
	return out
}

func splitTopLevelCommas(toks []token.Token) [][]token.Token {
	var groups [][]token.Token
	depth := 0
	start := 0
	for i, t := range toks {
		switch t.Kind {
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket:
			depth--
		case token.Comma:
			if depth == 0 {
				groups = append(groups, toks[start:i])
				start = i + 1
			}
		}
	}
	groups = append(groups, toks[start:])
	return groups
}

// sp is a cursor over a single complex selector's token list.
type sp struct {
	toks []token.Token
	pos  int
}

func (s *sp) peek() token.Token {
	if s.pos >= len(s.toks) {
		return token.Token{Kind: token.EOF}
	}
	return s.toks[s.pos]
}

func (s *sp) next() token.Token {
	t := s.peek()
	s.pos++
	return t
}

func parseComplexSelector(toks []token.Token) *Selector {
	if len(toks) == 0 {
		return nil
	}
	cur := &sp{toks: toks}
	sel := &Selector{}
	combinator := CombinatorNone
	for {
		skipWS(cur)
		if cur.peek().Kind == token.EOF {
			break
		}
		comb, ok := tryConsumeCombinator(cur)
		if ok {
			combinator = comb
			skipWS(cur)
		}
		compound, pseudoEl := consumeCompoundSelector(cur)
		if compound == nil {
			break
		}
		compound.Combinator = combinator
		sel.Compounds = append(sel.Compounds, *compound)
		if pseudoEl != "" {
			sel.PseudoElement = pseudoEl
		}
		combinator = CombinatorDescendant
	}
	if len(sel.Compounds) == 0 {
		return nil
	}
	sel.Specificity = computeSpecificity(sel)
	return sel
}

func skipWS(s *sp) {
	for s.peek().Kind == token.Whitespace {
		s.pos++
	}
}

// tryConsumeCombinator consumes a leading '>', '+', '~' delimiter
// (possibly already separated from surrounding content by whitespace the
// caller already skipped). Plain whitespace between compounds is the
// descendant combinator and is handled by the caller.
func tryConsumeCombinator(s *sp) (Combinator, bool) {
	t := s.peek()
	if t.Kind != token.Delim {
		return CombinatorNone, false
	}
	switch t.Rune {
	case '>':
		s.pos++
		return CombinatorChild, true
	case '+':
		s.pos++
		return CombinatorNextSibling, true
	case '~':
		s.pos++
		return CombinatorSubsequentSibling, true
	}
	return CombinatorNone, false
}

func consumeCompoundSelector(s *sp) (*CompoundSelector, string) {
	comp := &CompoundSelector{}
	pseudoEl := ""
	for {
		t := s.peek()
		switch t.Kind {
		case token.Ident:
			s.pos++
			comp.Simple = append(comp.Simple, SimpleSelector{Kind: SimpleType, Name: strings.ToLower(t.Value)})
		case token.Delim:
			if t.Rune == '*' {
				s.pos++
				comp.Simple = append(comp.Simple, SimpleSelector{Kind: SimpleUniversal})
				continue
			}
			if t.Rune == '.' {
				s.pos++
				name := s.next()
				comp.Simple = append(comp.Simple, SimpleSelector{Kind: SimpleClass, Name: name.Value})
				continue
			}
			return finishIfNonEmpty(comp, pseudoEl, s)
		case token.Hash:
			s.pos++
			comp.Simple = append(comp.Simple, SimpleSelector{Kind: SimpleID, Name: t.Value})
		case token.LBracket:
			s.pos++
			comp.Simple = append(comp.Simple, consumeAttributeSelector(s))
		case token.Colon:
			s.pos++
			isElement := false
			if s.peek().Kind == token.Colon {
				isElement = true
				s.pos++
			}
			name := s.peek()
			if name.Kind == token.Function {
				s.pos++
				args := consumeParenArgs(s)
				ss := SimpleSelector{Kind: SimplePseudoClass, Name: strings.ToLower(name.Value), FunctionArg: argsText(args)}
				switch strings.ToLower(name.Value) {
				case "nth-child", "nth-last-child", "nth-of-type", "nth-last-of-type":
					ss.NthA, ss.NthB = parseAnB(args)
				case "not", "is", "matches":
					for _, g := range splitTopLevelCommas(trimWS(args)) {
						if inner := parseComplexSelector(trimWS(g)); inner != nil {
							ss.Not = append(ss.Not, inner)
						}
					}
				case "lang":
					ss.FunctionArg = strings.Trim(argsText(args), "\"'")
				}
				comp.Simple = append(comp.Simple, ss)
				continue
			}
			if name.Kind == token.Ident {
				s.pos++
				if isElement || isPseudoElementName(name.Value) {
					pseudoEl = strings.ToLower(name.Value)
					comp.Simple = append(comp.Simple, SimpleSelector{Kind: SimplePseudoElement, Name: pseudoEl})
				} else {
					comp.Simple = append(comp.Simple, SimpleSelector{Kind: SimplePseudoClass, Name: strings.ToLower(name.Value)})
				}
				continue
			}
			return finishIfNonEmpty(comp, pseudoEl, s)
		default:
			return finishIfNonEmpty(comp, pseudoEl, s)
		}
	}
}

func finishIfNonEmpty(comp *CompoundSelector, pseudoEl string, s *sp) (*CompoundSelector, string) {
	if len(comp.Simple) == 0 {
		return nil, ""
	}
	return comp, pseudoEl
}

var pseudoElementNames = map[string]bool{
	"before": true, "after": true, "first-line": true, "first-letter": true, "marker": true,
}

func isPseudoElementName(name string) bool {
	return pseudoElementNames[strings.ToLower(name)]
}

func consumeParenArgs(s *sp) []token.Token {
	var out []token.Token
	depth := 1
	for {
		t := s.next()
		if t.Kind == token.EOF {
			return out
		}
		if t.Kind == token.LParen {
			depth++
		}
		if t.Kind == token.RParen {
			depth--
			if depth == 0 {
				return out
			}
		}
		out = append(out, t)
	}
}

func argsText(toks []token.Token) string {
	var b strings.Builder
	for _, t := range toks {
		switch t.Kind {
		case token.Ident, token.String, token.Dimension:
			b.WriteString(t.Value)
		case token.Number:
			b.WriteString(strconv.FormatFloat(t.NumValue, 'g', -1, 64))
		case token.Delim:
			b.WriteRune(t.Rune)
		case token.Whitespace:
			b.WriteRune(' ')
		}
	}
	return strings.TrimSpace(b.String())
}

func consumeAttributeSelector(s *sp) SimpleSelector {
	skipWS(s)
	name := s.next()
	ss := SimpleSelector{Kind: SimpleAttribute, AttrName: name.Value, AttrOp: AttrExists}
	skipWS(s)
	t := s.peek()
	op, matched := attrOpFromToken(t)
	if matched {
		s.pos++
		if t.Kind == token.Delim && t.Rune != '=' {
			// two-char operator ("~=" etc): consume the following '='.
			if s.peek().Kind == token.Delim && s.peek().Rune == '=' {
				s.pos++
			}
		}
		ss.AttrOp = op
		skipWS(s)
		val := s.next()
		if val.Kind == token.String || val.Kind == token.Ident {
			ss.AttrValue = val.Value
		}
		skipWS(s)
		if id := s.peek(); id.Kind == token.Ident && (strings.EqualFold(id.Value, "i") || strings.EqualFold(id.Value, "s")) {
			ss.AttrCaseInsens = strings.EqualFold(id.Value, "i")
			s.pos++
		}
	}
	// consume up to and including ']'
	for {
		t := s.next()
		if t.Kind == token.RBracket || t.Kind == token.EOF {
			break
		}
	}
	return ss
}

func attrOpFromToken(t token.Token) (AttrOperator, bool) {
	if t.Kind == token.Delim {
		switch t.Rune {
		case '=':
			return AttrEquals, true
		case '~':
			return AttrIncludes, true
		case '|':
			return AttrDashMatch, true
		case '^':
			return AttrPrefixMatch, true
		case '$':
			return AttrSuffixMatch, true
		case '*':
			return AttrSubstrMatch, true
		}
	}
	return AttrExists, false
}

// parseAnB parses the An+B micro-syntax used by :nth-child() and kin.
func parseAnB(toks []token.Token) (a, b int) {
	text := strings.ToLower(strings.Join(tokensToStrings(toks), ""))
	text = strings.ReplaceAll(text, " ", "")
	if text == "odd" {
		return 2, 1
	}
	if text == "even" {
		return 2, 0
	}
	if i := strings.Index(text, "n"); i >= 0 {
		aPart := text[:i]
		switch aPart {
		case "", "+":
			a = 1
		case "-":
			a = -1
		default:
			a, _ = strconv.Atoi(aPart)
		}
		rest := text[i+1:]
		if rest == "" {
			b = 0
		} else {
			rest = strings.ReplaceAll(rest, "+", "")
			b, _ = strconv.Atoi(rest)
		}
		return a, b
	}
	b, _ = strconv.Atoi(text)
	return 0, b
}

func tokensToStrings(toks []token.Token) []string {
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		switch t.Kind {
		case token.Ident:
			out = append(out, t.Value)
		case token.Number:
			out = append(out, strconv.FormatFloat(t.NumValue, 'f', -1, 64))
		case token.Dimension:
			sign := ""
			if t.NumValue < 0 {
				sign = "-"
			}
			out = append(out, sign+strconv.FormatFloat(absf(t.NumValue), 'f', -1, 64)+t.Unit)
		case token.Delim:
			out = append(out, string(t.Rune))
		}
	}
	return out
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
