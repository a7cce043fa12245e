// Package match implements selector matching: testing a parsed selector
// (css/parse.Selector) against a concrete dom.Node, right-to-left with
// backtracking over ancestor/sibling combinators, as Selectors Level 3/4
// specifies.
package match

import (
	"strings"

	"github.com/foliocraft/htmlbook/css/parse"
	"github.com/foliocraft/htmlbook/dom"
	"github.com/foliocraft/htmlbook/intern"
)

// Matches reports whether n satisfies sel.
func Matches(sel *parse.Selector, n *dom.Node) bool {
	if len(sel.Compounds) == 0 {
		return false
	}
	last := len(sel.Compounds) - 1
	if !matchCompound(sel.Compounds[last], n) {
		return false
	}
	return matchAncestry(sel.Compounds, last, n)
}

// matchAncestry walks leftward through the compound list, backtracking
// over the combinator preceding compounds[i] (which links it to
// compounds[i-1]).
func matchAncestry(compounds []parse.CompoundSelector, i int, n *dom.Node) bool {
	if i == 0 {
		return true
	}
	comb := compounds[i].Combinator
	prev := compounds[i-1]
	switch comb {
	case parse.CombinatorChild:
		p := n.Parent
		if p == nil || !matchCompound(prev, p) {
			return false
		}
		return matchAncestry(compounds, i-1, p)
	case parse.CombinatorDescendant:
		for p := n.Parent; p != nil; p = p.Parent {
			if matchCompound(prev, p) && matchAncestry(compounds, i-1, p) {
				return true
			}
		}
		return false
	case parse.CombinatorNextSibling:
		s := prevElementSibling(n)
		if s == nil || !matchCompound(prev, s) {
			return false
		}
		return matchAncestry(compounds, i-1, s)
	case parse.CombinatorSubsequentSibling:
		for s := prevElementSibling(n); s != nil; s = prevElementSibling(s) {
			if matchCompound(prev, s) && matchAncestry(compounds, i-1, s) {
				return true
			}
		}
		return false
	}
	return true
}

func prevElementSibling(n *dom.Node) *dom.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == dom.ElementNode {
			return s
		}
	}
	return nil
}

func matchCompound(c parse.CompoundSelector, n *dom.Node) bool {
	if n.Type != dom.ElementNode {
		return false
	}
	for _, s := range c.Simple {
		if !matchSimple(s, n) {
			return false
		}
	}
	return true
}

func matchSimple(s parse.SimpleSelector, n *dom.Node) bool {
	switch s.Kind {
	case parse.SimpleUniversal:
		return true
	case parse.SimpleType:
		return strings.EqualFold(n.Tag.String(), s.Name)
	case parse.SimpleID:
		id, ok := n.ID()
		return ok && id.String() == s.Name
	case parse.SimpleClass:
		return n.HasClass(intern.Intern(s.Name))
	case parse.SimpleAttribute:
		return matchAttribute(s, n)
	case parse.SimplePseudoClass:
		return matchPseudoClass(s, n)
	case parse.SimplePseudoElement:
		return true // filtered upstream by rule-cache partitioning
	}
	return false
}

func matchAttribute(s parse.SimpleSelector, n *dom.Node) bool {
	v, ok := n.Attr(intern.Intern(s.AttrName))
	if !ok {
		return false
	}
	if s.AttrOp == parse.AttrExists {
		return true
	}
	have := v.String()
	want := s.AttrValue
	if s.AttrCaseInsens {
		have = strings.ToLower(have)
		want = strings.ToLower(want)
	}
	switch s.AttrOp {
	case parse.AttrEquals:
		return have == want
	case parse.AttrIncludes:
		for _, f := range strings.Fields(have) {
			if f == want {
				return true
			}
		}
		return false
	case parse.AttrDashMatch:
		return have == want || strings.HasPrefix(have, want+"-")
	case parse.AttrPrefixMatch:
		return want != "" && strings.HasPrefix(have, want)
	case parse.AttrSuffixMatch:
		return want != "" && strings.HasSuffix(have, want)
	case parse.AttrSubstrMatch:
		return want != "" && strings.Contains(have, want)
	}
	return false
}

func matchPseudoClass(s parse.SimpleSelector, n *dom.Node) bool {
	switch s.Name {
	case "root":
		return n.Parent != nil && n.Parent.Type == dom.DocumentNode
	case "empty":
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == dom.ElementNode || (c.Type == dom.TextNode && len(c.Text) > 0) {
				return false
			}
		}
		return true
	case "first-child":
		return elementIndex(n) == 0
	case "last-child":
		return elementIndexFromEnd(n) == 0
	case "only-child":
		return elementIndex(n) == 0 && elementIndexFromEnd(n) == 0
	case "first-of-type":
		return typeIndex(n) == 0
	case "last-of-type":
		return typeIndexFromEnd(n) == 0
	case "only-of-type":
		return typeIndex(n) == 0 && typeIndexFromEnd(n) == 0
	case "nth-child":
		return matchAnB(s.NthA, s.NthB, elementIndex(n)+1)
	case "nth-last-child":
		return matchAnB(s.NthA, s.NthB, elementIndexFromEnd(n)+1)
	case "nth-of-type":
		return matchAnB(s.NthA, s.NthB, typeIndex(n)+1)
	case "nth-last-of-type":
		return matchAnB(s.NthA, s.NthB, typeIndexFromEnd(n)+1)
	case "lang":
		return matchLang(s.FunctionArg, n)
	case "link":
		return n.Tag.String() == "a" || n.Tag.String() == "area"
	case "enabled":
		_, disabled := n.Attr(intern.Intern("disabled"))
		return isFormElement(n.Tag.String()) && !disabled
	case "disabled":
		_, disabled := n.Attr(intern.Intern("disabled"))
		return disabled
	case "checked":
		_, checked := n.Attr(intern.Intern("checked"))
		if checked {
			return true
		}
		_, selected := n.Attr(intern.Intern("selected"))
		return selected
	case "not":
		for _, inner := range s.Not {
			if Matches(inner, n) {
				return false
			}
		}
		return true
	case "is", "matches":
		for _, inner := range s.Not {
			if Matches(inner, n) {
				return true
			}
		}
		return false
	}
	return false
}

func isFormElement(tag string) bool {
	switch tag {
	case "input", "button", "select", "textarea", "optgroup", "option", "fieldset":
		return true
	}
	return false
}

func elementIndex(n *dom.Node) int {
	i := 0
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == dom.ElementNode {
			i++
		}
	}
	return i
}

func elementIndexFromEnd(n *dom.Node) int {
	i := 0
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == dom.ElementNode {
			i++
		}
	}
	return i
}

func typeIndex(n *dom.Node) int {
	i := 0
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == dom.ElementNode && s.Tag.Equal(n.Tag) {
			i++
		}
	}
	return i
}

func typeIndexFromEnd(n *dom.Node) int {
	i := 0
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == dom.ElementNode && s.Tag.Equal(n.Tag) {
			i++
		}
	}
	return i
}

// matchAnB reports whether position (1-based) satisfies An+B: position
// == a*k + b for some non-negative integer k.
func matchAnB(a, b, position int) bool {
	if a == 0 {
		return position == b
	}
	k := position - b
	if k%a != 0 {
		return false
	}
	return k/a >= 0
}

func matchLang(want string, n *dom.Node) bool {
	want = strings.ToLower(want)
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type != dom.ElementNode {
			continue
		}
		v, ok := cur.Attr(intern.Intern("lang"))
		if ok {
			have := strings.ToLower(v.String())
			return have == want || strings.HasPrefix(have, want+"-")
		}
	}
	return false
}
