// Package parse implements tree construction: consuming the token stream
// from package html/token and building a dom.Document, following the
// HTML5 tree-construction algorithm's insertion modes, stack of open
// elements, active formatting elements list and adoption agency.
package parse

import "github.com/foliocraft/htmlbook/dom"

// openElements is the stack of open elements, bottom (the html element)
// at index 0.
type openElements struct {
	items []*dom.Node
}

func (s *openElements) push(n *dom.Node)    { s.items = append(s.items, n) }
func (s *openElements) top() *dom.Node {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}
func (s *openElements) pop() *dom.Node {
	n := len(s.items)
	if n == 0 {
		return nil
	}
	top := s.items[n-1]
	s.items = s.items[:n-1]
	return top
}
func (s *openElements) empty() bool { return len(s.items) == 0 }

func (s *openElements) contains(n *dom.Node) bool {
	for _, e := range s.items {
		if e == n {
			return true
		}
	}
	return false
}

// popUntil pops elements (inclusive) until one satisfying match is
// popped, or the stack empties.
func (s *openElements) popUntil(match func(*dom.Node) bool) {
	for len(s.items) > 0 {
		n := s.pop()
		if match(n) {
			return
		}
	}
}

// removeElement removes a specific element from the stack, wherever it
// is (used by the adoption agency algorithm).
func (s *openElements) remove(n *dom.Node) {
	for i, e := range s.items {
		if e == n {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *openElements) indexOf(n *dom.Node) int {
	for i, e := range s.items {
		if e == n {
			return i
		}
	}
	return -1
}

// insertAt inserts n into the stack at position i.
func (s *openElements) insertAt(i int, n *dom.Node) {
	s.items = append(s.items, nil)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = n
}

var scopeBoundary = map[string]bool{
	"applet": true, "caption": true, "html": true, "table": true,
	"td": true, "th": true, "marquee": true, "object": true, "template": true,
}

var listItemScopeBoundary = map[string]bool{
	"ol": true, "ul": true,
}

var buttonScopeBoundary = map[string]bool{
	"button": true,
}

var tableScopeBoundary = map[string]bool{
	"html": true, "table": true, "template": true,
}

var selectScopeExclude = map[string]bool{
	"optgroup": true, "option": true,
}

// hasInScope reports whether an element with the given tag is in the
// stack's default scope, stopping at the usual scope-boundary elements.
func (s *openElements) hasInScope(tag string) bool {
	return s.hasInScopeWithBoundary(tag, scopeBoundary)
}

func (s *openElements) hasInScopeWithBoundary(tag string, boundary map[string]bool) bool {
	for i := len(s.items) - 1; i >= 0; i-- {
		name := s.items[i].Tag.String()
		if name == tag {
			return true
		}
		if boundary[name] {
			return false
		}
	}
	return false
}

func (s *openElements) hasInListItemScope(tag string) bool {
	merged := map[string]bool{}
	for k, v := range scopeBoundary {
		merged[k] = v
	}
	for k, v := range listItemScopeBoundary {
		merged[k] = v
	}
	return s.hasInScopeWithBoundary(tag, merged)
}

func (s *openElements) hasInButtonScope(tag string) bool {
	merged := map[string]bool{}
	for k, v := range scopeBoundary {
		merged[k] = v
	}
	for k, v := range buttonScopeBoundary {
		merged[k] = v
	}
	return s.hasInScopeWithBoundary(tag, merged)
}

func (s *openElements) hasInTableScope(tag string) bool {
	return s.hasInScopeWithBoundary(tag, tableScopeBoundary)
}

func (s *openElements) hasInSelectScope(tag string) bool {
	for i := len(s.items) - 1; i >= 0; i-- {
		name := s.items[i].Tag.String()
		if name == tag {
			return true
		}
		if !selectScopeExclude[name] {
			return false
		}
	}
	return false
}

var implyEndTags = map[string]bool{
	"dd": true, "dt": true, "li": true, "optgroup": true, "option": true,
	"p": true, "rb": true, "rp": true, "rt": true, "rtc": true,
}

// generateImpliedEndTags pops elements whose tag is in the implied-end
// set, except for exclude (used by e.g. </li> handling which implies end
// tags except another li).
func (p *Parser) generateImpliedEndTags(exclude string) {
	for {
		top := p.open.top()
		if top == nil || top.Type != dom.ElementNode {
			return
		}
		name := top.Tag.String()
		if name == exclude || !implyEndTags[name] {
			return
		}
		p.open.pop()
	}
}
