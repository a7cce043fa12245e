package counters

import (
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/foliocraft/htmlbook/css/cssvalue"
	"github.com/foliocraft/htmlbook/dom"
	"github.com/foliocraft/htmlbook/intern"
	"github.com/foliocraft/htmlbook/style/cascade"
)

func tracer() tracing.Trace {
	return tracing.Select("htmlbook.counters")
}

// Walker drives the box-construction walk over a styled document,
// carrying the cascade context, the counter scope stack and the
// document-wide quote depth across the whole traversal.
type Walker struct {
	Ctx    *cascade.Context
	scopes *scopeStack
	quotes quoteState
}

// NewWalker creates a walker ready to build the box tree for ctx's
// document, starting with one (document-level) counter scope.
func NewWalker(ctx *cascade.Context) *Walker {
	return &Walker{Ctx: ctx, scopes: newScopeStack()}
}

// Build runs the box-construction walk over n (with parentStyle as n's
// cascade parent, nil at the document root), returning the box for n or
// nil if n (or its computed style) is display:none.
func (w *Walker) Build(n *dom.Node, parentStyle *cascade.ComputedStyle) *Box {
	if n.Type != dom.ElementNode && n.Type != dom.DocumentNode {
		return nil
	}
	style := cascade.Style(w.Ctx, n, parentStyle)
	if style.Display == "none" {
		tracer().Debugf("box-construction: dropping display:none element <%s>", n.Tag.String())
		return nil
	}

	w.scopes.push()
	defer w.scopes.pop()

	w.applyCounterProperties(n, style)
	w.applyListItemNumbering(n, style)

	box := newBox(n, style, "")

	if marker := w.buildMarker(n, style); marker != nil {
		box.AddChild(&marker.Node)
	}
	if before := w.buildPseudo(n, style, "before"); before != nil {
		box.AddChild(&before.Node)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case dom.ElementNode:
			if ch := w.Build(c, style); ch != nil {
				box.AddChild(&ch.Node)
			}
		case dom.TextNode:
			box.AddChild(&textBox(c, style).Node)
		}
	}
	if after := w.buildPseudo(n, style, "after"); after != nil {
		box.AddChild(&after.Node)
	}
	return box
}

func textBox(n *dom.Node, parentStyle *cascade.ComputedStyle) *Box {
	return newBox(n, parentStyle, "")
}

// applyCounterProperties applies an element's own counter-reset,
// counter-set and counter-increment declarations, in that order, to the
// scope just pushed for it.
func (w *Walker) applyCounterProperties(n *dom.Node, style *cascade.ComputedStyle) {
	for _, pair := range counterPairs(style.Get("counter-reset"), 0) {
		w.scopes.reset(pair.Name, pair.Value)
	}
	for _, pair := range counterPairs(style.Get("counter-set"), 0) {
		w.scopes.set(pair.Name, pair.Value)
	}
	for _, pair := range counterPairs(style.Get("counter-increment"), 1) {
		w.scopes.increment(pair.Name, pair.Value)
	}
}

// applyListItemNumbering implements the HTML list-numbering rules layered
// on top of the generic counter machinery: a list-item box increments
// the "list-item" counter by 1 unless this element's own counter-reset
// already named it. <ol>/<ul>/<dir>/<menu> reset the list-item counter
// afterward on their own (newly pushed) scope; <li value> instead
// overwrites the counter directly on the ancestor scope that holds it,
// since its own scope is popped before any sibling could observe a reset.
func (w *Walker) applyListItemNumbering(n *dom.Node, style *cascade.ComputedStyle) {
	resetsListItem := false
	for _, pair := range counterPairs(style.Get("counter-reset"), 0) {
		if pair.Name == "list-item" {
			resetsListItem = true
			break
		}
	}
	if style.Display == "list-item" && !resetsListItem {
		w.scopes.increment("list-item", 1)
	}
	if n.Type != dom.ElementNode {
		return
	}
	switch n.Tag.String() {
	case "ol":
		start := 1
		if v, ok := n.Attr(intern.AttrStart); ok {
			if parsed, ok := parseInt(v.String()); ok {
				start = parsed
			}
		}
		w.scopes.reset("list-item", start-1)
	case "ul", "dir", "menu":
		w.scopes.reset("list-item", 0)
	case "li":
		if v, ok := n.Attr(intern.AttrValue); ok {
			if parsed, ok := parseInt(v.String()); ok {
				// overwrites the ancestor ol/ul scope's counter directly;
				// reset would install it on this li's own scope, which is
				// popped right after and never seen by later siblings.
				w.scopes.set("list-item", parsed)
			}
		}
	}
}

// buildPseudo generates a ::before/::after box from pseudoType's content,
// or nil if no rule targets it, it resolves to display:none, or its
// content is normal/none.
func (w *Walker) buildPseudo(n *dom.Node, elementStyle *cascade.ComputedStyle, pseudoType string) *Box {
	pseudoStyle := cascade.PseudoStyle(w.Ctx, n, elementStyle, pseudoType)
	if pseudoStyle == nil || pseudoStyle.Display == "none" {
		return nil
	}
	parts, ok := evalContent(pseudoStyle, n, w.scopes, &w.quotes)
	if !ok {
		return nil
	}
	b := newBox(n, pseudoStyle, pseudoType)
	b.Content = parts
	return b
}

// buildMarker generates a ::marker box: explicit content if a rule sets
// one, else list-style-image, else the list-item counter formatted with
// list-style-type. Returns nil for a non-list-item box or one with no
// marker rule, image or type to show.
func (w *Walker) buildMarker(n *dom.Node, elementStyle *cascade.ComputedStyle) *Box {
	if elementStyle.Display != "list-item" {
		return nil
	}
	markerStyle := cascade.PseudoStyle(w.Ctx, n, elementStyle, "marker")
	if markerStyle != nil && markerStyle.Display == "none" {
		return nil
	}
	if markerStyle != nil {
		if parts, ok := evalContent(markerStyle, n, w.scopes, &w.quotes); ok {
			b := newBox(n, markerStyle, "marker")
			b.Content = parts
			return b
		}
	}
	style := markerStyle
	if style == nil {
		style = elementStyle
	}
	if img := style.Get("list-style-image"); img.Kind == cssvalue.URLValue {
		b := newBox(n, style, "marker")
		b.Content = []ContentPart{{Kind: ContentImage, Text: img.Str}}
		return b
	}
	listType := style.Get("list-style-type")
	typeName := "disc"
	if listType.Kind == cssvalue.Keyword && listType.Keyword != "" {
		typeName = listType.Keyword
	}
	if typeName == "none" {
		return nil
	}
	text := FormatCounter(w.scopes.value("list-item"), typeName)
	b := newBox(n, style, "marker")
	b.Content = []ContentPart{{Kind: ContentText, Text: text}}
	return b
}

type counterPair struct {
	Name  string
	Value int
}

// counterPairs parses a counter-reset/counter-set/counter-increment
// value (alternating counter name and optional integer) into name/value
// pairs, substituting defaultVal where the integer is omitted.
func counterPairs(v cssvalue.Value, defaultVal int) []counterPair {
	items := flattenList(v)
	var out []counterPair
	i := 0
	for i < len(items) {
		name := items[i].Keyword
		i++
		if name == "" || strings.EqualFold(name, "none") {
			continue
		}
		val := defaultVal
		if i < len(items) && items[i].Kind == cssvalue.Number {
			val = int(items[i].Num)
			i++
		}
		out = append(out, counterPair{Name: name, Value: val})
	}
	return out
}

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}
