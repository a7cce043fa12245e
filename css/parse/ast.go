// Package parse implements the CSS parser: consuming a css/token token
// stream into a style sheet object model — qualified (style) rules,
// at-rules, selector lists and declaration lists — following CSS Syntax
// Level 3's "parse a stylesheet" / "consume a qualified rule" grammar,
// plus Selectors Level 3/4 for selector grammar and the property-specific
// grammars for shorthand expansion.
package parse

import "github.com/foliocraft/htmlbook/css/token"

// StyleSheet is the parsed result of one CSS source (an external sheet,
// a <style> element, or a user/UA default sheet).
type StyleSheet struct {
	Rules []Rule
}

// Rule is either a StyleRule or an AtRule.
type Rule struct {
	Style *StyleRule
	At    *AtRule
}

// StyleRule is a qualified rule: a selector list plus a declaration
// block.
type StyleRule struct {
	Selectors    []*Selector
	Declarations []Declaration
	SourceOrder  int
}

// AtRule is @import, @font-face, @page, @media, or any other at-rule;
// unrecognized at-rules are retained with a raw prelude/block for
// forward compatibility but are not applied.
type AtRule struct {
	Name    string
	Prelude []token.Token
	Block   []Rule
	// Page-specific (Name == "page")
	PageSelector *PageSelector
}

// PageSelector names an @page rule's optional page name and pseudo-class
// (:first, :left, :right, :blank).
type PageSelector struct {
	Name       string
	Pseudo     string
}

// Declaration is one property: value[ !important ]; pair. Value retains
// the original component values so property-specific expanders (shorthand
// handlers, var()-like constructs) can re-walk them.
type Declaration struct {
	Property  string
	Value     []token.Token
	Important bool
}

// Combinator identifies how a compound selector relates to the one
// before it in a complex selector.
type Combinator uint8

const (
	CombinatorNone Combinator = iota // first compound in the selector
	CombinatorDescendant
	CombinatorChild
	CombinatorNextSibling
	CombinatorSubsequentSibling
)

// Selector is a complex selector: a sequence of compound selectors
// joined by combinators, the last (rightmost) of which is the terminal
// the rule cache partitions by.
type Selector struct {
	Compounds   []CompoundSelector
	Specificity Specificity
	PseudoElement string // "", "before", "after", "marker", "first-line", "first-letter"
}

// CompoundSelector is one or more simple selectors with no combinator
// between them (e.g. "div.foo#bar[href]"), plus the combinator linking
// it to the previous compound.
type CompoundSelector struct {
	Combinator Combinator
	Simple     []SimpleSelector
}

// SimpleSelectorKind discriminates the simple-selector forms Selectors
// Level 3/4 defines.
type SimpleSelectorKind uint8

const (
	SimpleType SimpleSelectorKind = iota
	SimpleUniversal
	SimpleID
	SimpleClass
	SimpleAttribute
	SimplePseudoClass
	SimplePseudoElement
)

// AttrOperator identifies an attribute-selector comparison.
type AttrOperator uint8

const (
	AttrExists AttrOperator = iota
	AttrEquals
	AttrIncludes      // ~=
	AttrDashMatch     // |=
	AttrPrefixMatch   // ^=
	AttrSuffixMatch   // $=
	AttrSubstrMatch   // *=
)

// SimpleSelector is one atom of a compound selector.
type SimpleSelector struct {
	Kind SimpleSelectorKind

	// Type / pseudo-class / pseudo-element name, class name, or id value.
	Name string

	// Attribute selector fields.
	AttrName       string
	AttrOp         AttrOperator
	AttrValue      string
	AttrCaseInsens bool

	// Functional pseudo-class arguments, e.g. :nth-child(2n+1),
	// :lang(en), :not(.a, .b).
	FunctionArg string
	NthA, NthB  int
	Not         []*Selector
}

// Specificity is the (id, class, type) specificity triple used for
// cascade ordering; computed exactly from the selector AST rather than
// approximated.
type Specificity struct {
	A, B, C int // ids, classes/attrs/pseudo-classes, types/pseudo-elements
}

// Less reports whether s sorts before o in cascade order (lower wins
// first, so the candidate list is typically iterated from least to most
// specific and the last applied declaration wins).
func (s Specificity) Less(o Specificity) bool {
	if s.A != o.A {
		return s.A < o.A
	}
	if s.B != o.B {
		return s.B < o.B
	}
	return s.C < o.C
}

func computeSpecificity(sel *Selector) Specificity {
	var sp Specificity
	for _, comp := range sel.Compounds {
		for _, s := range comp.Simple {
			switch s.Kind {
			case SimpleID:
				sp.A++
			case SimpleClass, SimpleAttribute:
				sp.B++
			case SimplePseudoClass:
				if (s.Name == "not" || s.Name == "is") && len(s.Not) > 0 {
					sp = addSpecificity(sp, maxArgSpecificity(s.Not))
					continue
				}
				sp.B++
			case SimpleType:
				sp.C++
			case SimplePseudoElement:
				sp.C++
			}
		}
	}
	return sp
}

func maxArgSpecificity(args []*Selector) Specificity {
	var best Specificity
	for i, a := range args {
		sp := computeSpecificity(a)
		if i == 0 || best.Less(sp) {
			best = sp
		}
	}
	return best
}

func addSpecificity(a, b Specificity) Specificity {
	return Specificity{A: a.A + b.A, B: a.B + b.B, C: a.C + b.C}
}
