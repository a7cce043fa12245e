// Package rulecache partitions a style sheet's rules by the terminal
// simple selector of each selector (id / class / tag / universal /
// pseudo-element), so the matcher only has to test the small set of
// rules that could possibly apply to a given element instead of the
// whole sheet.
package rulecache

import (
	"strings"

	"github.com/foliocraft/htmlbook/css/parse"
	"github.com/foliocraft/htmlbook/dom"
)

// Origin identifies which of the three cascade origins a rule came from.
type Origin uint8

const (
	UserAgent Origin = iota
	User
	Author
)

// Entry is one selector/declaration-block pairing, filed under whichever
// partition its terminal compound's most specific simple selector names.
type Entry struct {
	Selector    *parse.Selector
	Rule        *parse.StyleRule
	Origin      Origin
	SourceOrder int
}

// Cache is the partitioned index over one or more parsed style sheets.
type Cache struct {
	byID            map[string][]*Entry
	byClass         map[string][]*Entry
	byTag           map[string][]*Entry
	byPseudoElement map[string][]*Entry
	universal       []*Entry

	FontFaces [][]parse.Declaration // one entry per @font-face rule
	PageRules []PageRuleEntry
}

// PageRuleEntry is one @page rule, kept separately since it targets
// pages rather than elements and is never matched through the element
// partitions.
type PageRuleEntry struct {
	Selector     *parse.PageSelector
	Declarations []parse.Declaration
	MarginBoxes  map[string][]parse.Declaration
}

// New builds an empty cache.
func New() *Cache {
	return &Cache{
		byID:            map[string][]*Entry{},
		byClass:         map[string][]*Entry{},
		byTag:           map[string][]*Entry{},
		byPseudoElement: map[string][]*Entry{},
	}
}

// Add files every rule in sheet into the cache under origin.
func (c *Cache) Add(sheet *parse.StyleSheet, origin Origin) {
	for _, r := range sheet.Rules {
		switch {
		case r.Style != nil:
			c.addStyleRule(r.Style, origin)
		case r.At != nil:
			c.addAtRule(r.At, origin)
		}
	}
}

func (c *Cache) addStyleRule(sr *parse.StyleRule, origin Origin) {
	for _, sel := range sr.Selectors {
		e := &Entry{Selector: sel, Rule: sr, Origin: origin, SourceOrder: sr.SourceOrder}
		c.file(e)
	}
}

func (c *Cache) addAtRule(ar *parse.AtRule, origin Origin) {
	switch strings.ToLower(ar.Name) {
	case "font-face":
		for _, rule := range ar.Block {
			if rule.Style != nil {
				c.FontFaces = append(c.FontFaces, rule.Style.Declarations)
			}
		}
	case "page":
		pe := PageRuleEntry{Selector: parse.ParsePageSelector(ar.Prelude), MarginBoxes: map[string][]parse.Declaration{}}
		for _, rule := range ar.Block {
			if rule.Style != nil {
				pe.Declarations = append(pe.Declarations, rule.Style.Declarations...)
			}
			if rule.At != nil && parse.IsMarginBoxName(rule.At.Name) {
				for _, inner := range rule.At.Block {
					if inner.Style != nil {
						pe.MarginBoxes[rule.At.Name] = append(pe.MarginBoxes[rule.At.Name], inner.Style.Declarations...)
					}
				}
			}
		}
		c.PageRules = append(c.PageRules, pe)
	case "media", "import":
		// evaluated upstream by the resource/pipeline loader, not cached
		// here: by the time a sheet reaches the cache its applicable
		// media rules have already been flattened in.
	}
}

// file partitions e by the most specific simple selector in its
// selector's terminal (last) compound: id beats class beats tag beats
// universal, matching how a single failed lookup (e.g. no element with
// this id) prunes the most candidates.
func (c *Cache) file(e *Entry) {
	if len(e.Selector.Compounds) == 0 {
		return
	}
	last := e.Selector.Compounds[len(e.Selector.Compounds)-1]
	if e.Selector.PseudoElement != "" {
		key := e.Selector.PseudoElement
		c.byPseudoElement[key] = append(c.byPseudoElement[key], e)
		return
	}
	var id, class, tag string
	for _, s := range last.Simple {
		switch s.Kind {
		case parse.SimpleID:
			if id == "" {
				id = s.Name
			}
		case parse.SimpleClass:
			if class == "" {
				class = s.Name
			}
		case parse.SimpleType:
			if tag == "" {
				tag = strings.ToLower(s.Name)
			}
		}
	}
	switch {
	case id != "":
		c.byID[id] = append(c.byID[id], e)
	case class != "":
		c.byClass[class] = append(c.byClass[class], e)
	case tag != "":
		c.byTag[tag] = append(c.byTag[tag], e)
	default:
		c.universal = append(c.universal, e)
	}
}

// Candidates returns every entry whose terminal simple selector could
// possibly match n, without yet checking the rest of the selector (the
// caller, package style/match, does the full right-to-left test).
func (c *Cache) Candidates(n *dom.Node) []*Entry {
	var out []*Entry
	if id, ok := n.ID(); ok {
		out = append(out, c.byID[id.String()]...)
	}
	for _, cl := range n.ClassList() {
		out = append(out, c.byClass[cl.String()]...)
	}
	out = append(out, c.byTag[strings.ToLower(n.Tag.String())]...)
	out = append(out, c.universal...)
	return out
}

// CandidatesForPseudoElement returns the entries targeting the named
// pseudo-element (e.g. "before", "marker").
func (c *Cache) CandidatesForPseudoElement(name string) []*Entry {
	return c.byPseudoElement[name]
}
