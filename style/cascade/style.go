package cascade

import (
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/foliocraft/htmlbook/css/cssvalue"
	"github.com/foliocraft/htmlbook/css/parse"
	"github.com/foliocraft/htmlbook/dom"
	"github.com/foliocraft/htmlbook/intern"
	"github.com/foliocraft/htmlbook/style/match"
	"github.com/foliocraft/htmlbook/style/rulecache"
)

var attrStyle = intern.AttrStyle

func tracer() tracing.Trace {
	return tracing.Select("htmlbook.cascade")
}

// ComputedStyle is the styled counterpart of a dom.Node (or one of its
// pseudo-elements): the full property map plus a handful of scalar
// fields unpacked eagerly because layout/painting consult them on every
// box.
type ComputedStyle struct {
	Element    *dom.Node
	Parent     *ComputedStyle
	PseudoType string // "", "before", "after", "marker", "first-line", "first-letter"
	Props      *PropertyMap

	Display     string
	Position    string
	Float       string
	Clear       string
	Overflow    string
	Visibility  string
	FontSizePx  float64
	FontWeight  string
	FontStyle   string
	FontVariant string
	Color       color.Color
	TextAlign   string
	WhiteSpace  string
	Direction   string
	BoxSizing   string

	fontFace    *FontFaceMatch
	fontFaceSet bool
}

// candidate is one matched-or-synthesized declaration awaiting the
// cascade sort.
type candidate struct {
	decl        parse.Declaration
	specificity parse.Specificity
	position    int
	important   bool
	level       int // precedence tier: presentation < matched rule < inline style
}

const (
	levelPresentation = 0
	levelMatchedRule  = 1
	levelInlineStyle  = 2
)

// Context carries the values a cascade needs beyond the element itself:
// the rule cache to match against and the viewport/root metrics lazy
// length resolution needs.
type Context struct {
	Cache            *rulecache.Cache
	RootFontSizePx   float64
	ViewportWidthPx  float64
	ViewportHeightPx float64
}

// Style computes n's style given its (already computed) parent style, nil
// at the document root.
func Style(ctx *Context, n *dom.Node, parent *ComputedStyle) *ComputedStyle {
	cs := &ComputedStyle{Element: n, Parent: parent, Props: NewPropertyMap()}
	var parentProps *PropertyMap
	if parent != nil {
		parentProps = parent.Props
	}
	cs.Props.LinkGroups(parentProps)

	cands := collectCandidates(ctx.Cache, n, "")
	cands = append(cands, presentationAttributeCandidates(n)...)
	cands = append(cands, inlineStyleCandidates(n)...)
	applyCandidates(cs, cands)
	cs.unpackScalars(ctx)
	return cs
}

// PseudoStyle computes the style of one of element's generated
// pseudo-elements, given element's own already-computed style as the
// cascade parent (pseudo-elements inherit from their originating
// element). Returns nil if no rule in the cache targets this
// pseudo-element for n, so "no rule targets this pseudo-element" reads as
// "it does not exist".
func PseudoStyle(ctx *Context, n *dom.Node, elementStyle *ComputedStyle, pseudoType string) *ComputedStyle {
	cands := collectCandidates(ctx.Cache, n, pseudoType)
	if len(cands) == 0 {
		return nil
	}
	cs := &ComputedStyle{Element: n, Parent: elementStyle, PseudoType: pseudoType, Props: NewPropertyMap()}
	cs.Props.LinkGroups(elementStyle.Props)
	applyCandidates(cs, cands)
	cs.unpackScalars(ctx)
	return cs
}

func collectCandidates(cache *rulecache.Cache, n *dom.Node, pseudoType string) []candidate {
	var entries []*rulecache.Entry
	if pseudoType == "" {
		entries = cache.Candidates(n)
	} else {
		entries = cache.CandidatesForPseudoElement(pseudoType)
	}
	var out []candidate
	for _, e := range entries {
		if !match.Matches(e.Selector, n) {
			continue
		}
		for _, d := range e.Rule.Declarations {
			for _, expanded := range parse.ExpandShorthand(d) {
				out = append(out, candidate{
					decl:        expanded,
					specificity: e.Selector.Specificity,
					position:    originPosition(e.Origin, e.SourceOrder),
					important:   expanded.Important,
					level:       levelMatchedRule,
				})
			}
		}
	}
	return out
}

// originPosition folds cascade origin into the position ordinal so a
// plain (specificity, position) sort reproduces origin precedence
// (user-agent < user < author) without a separate comparison key.
func originPosition(origin rulecache.Origin, sourceOrder int) int {
	return int(origin)*1_000_000 + sourceOrder
}

const presentationPosition = 0

func inlineStyleCandidates(n *dom.Node) []candidate {
	v, ok := n.Attr(attrStyle)
	if !ok {
		return nil
	}
	decls := parse.ParseDeclarationList(v.String())
	var out []candidate
	for _, d := range decls {
		for _, expanded := range parse.ExpandShorthand(d) {
			out = append(out, candidate{
				decl:      expanded,
				position:  originPosition(rulecache.Author, 0),
				important: expanded.Important,
				level:     levelInlineStyle,
			})
		}
	}
	return out
}

// applyCandidates sorts by (level, specificity, position) so that, within
// a level, matched rules order by specificity and source position, while
// inline style sorts after every matched rule and presentation attributes
// before one, independent of specificity. The last candidate for a
// property wins, except that an !important declaration is replaced only
// by a later !important one, so it beats every non-important declaration
// whatever its level.
func applyCandidates(cs *ComputedStyle, cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].level != cands[j].level {
			return cands[i].level < cands[j].level
		}
		if cands[i].specificity != cands[j].specificity {
			return cands[i].specificity.Less(cands[j].specificity)
		}
		return cands[i].position < cands[j].position
	})
	winner := map[string]candidate{}
	for _, c := range cands {
		key := strings.ToLower(c.decl.Property)
		prev, ok := winner[key]
		if ok && prev.important && !c.important {
			continue
		}
		winner[key] = c
	}
	for key, c := range winner {
		applyOne(cs, key, c.decl)
	}
}

func applyOne(cs *ComputedStyle, key string, d parse.Declaration) {
	v := cssvalue.FromTokens(d.Value)
	switch {
	case v.IsKeyword("initial"):
		cs.Props.Set(key, InitialValue(key))
	case v.IsKeyword("inherit"):
		if cs.Parent != nil {
			if pv, ok := cs.Parent.Props.CascadedProperty(key); ok {
				cs.Props.Set(key, pv)
				return
			}
		}
		cs.Props.Set(key, InitialValue(key))
	default:
		if key == "font-family" || key == "content" || key == "quotes" ||
			key == "counter-reset" || key == "counter-increment" || key == "counter-set" {
			items := cssvalue.FromTokensList(d.Value)
			cs.Props.Set(key, cssvalue.Value{Kind: cssvalue.List, Items: items})
			return
		}
		cs.Props.Set(key, v)
	}
}

// Get resolves key's cascaded value: local/ancestor-set value if any,
// else the module's built-in initial value.
func (cs *ComputedStyle) Get(key string) cssvalue.Value {
	if v, ok := cs.Props.CascadedProperty(strings.ToLower(key)); ok {
		return v
	}
	return InitialValue(strings.ToLower(key))
}

// Px resolves a length-valued property to device pixels using this
// style's own font-size, the document root's font-size, the viewport
// dimensions, and percentBasisPx as the percentage reference.
func (cs *ComputedStyle) Px(key string, percentBasisPx float64, rootFontSizePx, viewportWidthPx, viewportHeightPx float64) float64 {
	return cs.Get(key).Px(cs.FontSizePx, rootFontSizePx, viewportWidthPx, viewportHeightPx, percentBasisPx)
}

// ResolvedColor resolves key (expected to hold a color value) against
// this style's own Color field for currentColor.
func (cs *ComputedStyle) ResolvedColor(key string) color.Color {
	v := cs.Get(key)
	if c := v.ResolveColor(cs.Color); c != nil {
		return c
	}
	return cs.Color
}

func (cs *ComputedStyle) unpackScalars(ctx *Context) {
	display, _ := cs.Props.CascadedProperty("display")
	defaultDisplay := "inline"
	if cs.PseudoType == "" {
		defaultDisplay = DefaultDisplay(cs.Element)
	}
	cs.Display = keywordOr(display, defaultDisplay)
	cs.Position = keywordOr(cs.Get("position"), "static")
	cs.Float = keywordOr(cs.Get("float"), "none")
	cs.Clear = keywordOr(cs.Get("clear"), "none")
	cs.Overflow = keywordOr(cs.Get("overflow-x"), "visible")
	cs.Visibility = keywordOr(cs.Get("visibility"), "visible")
	cs.FontWeight = keywordOr(cs.Get("font-weight"), "normal")
	cs.FontStyle = keywordOr(cs.Get("font-style"), "normal")
	cs.FontVariant = keywordOr(cs.Get("font-variant"), "normal")
	cs.TextAlign = keywordOr(cs.Get("text-align"), "left")
	cs.WhiteSpace = keywordOr(cs.Get("white-space"), "normal")
	cs.Direction = keywordOr(cs.Get("direction"), "ltr")
	cs.BoxSizing = keywordOr(cs.Get("box-sizing"), "content-box")

	parentFontPx := ctx.RootFontSizePx
	if cs.Parent != nil {
		parentFontPx = cs.Parent.FontSizePx
	}
	fs := cs.Get("font-size")
	if fs.Kind == cssvalue.Keyword {
		cs.FontSizePx = namedFontSizePx(fs.Keyword, parentFontPx)
	} else {
		cs.FontSizePx = fs.Px(parentFontPx, ctx.RootFontSizePx, ctx.ViewportWidthPx, ctx.ViewportHeightPx, parentFontPx)
		if cs.FontSizePx == 0 {
			cs.FontSizePx = parentFontPx
		}
	}

	var parentColor color.Color = color.Black
	if cs.Parent != nil {
		parentColor = cs.Parent.Color
	}
	colorVal := cs.Get("color")
	if c := colorVal.ResolveColor(parentColor); c != nil {
		cs.Color = c
	} else {
		cs.Color = parentColor
	}
}

func keywordOr(v cssvalue.Value, def string) string {
	if v.Kind == cssvalue.Keyword && v.Keyword != "" {
		return v.Keyword
	}
	return def
}

var absoluteFontSizes = map[string]float64{
	"xx-small": 9, "x-small": 10, "small": 13, "medium": 16,
	"large": 18, "x-large": 24, "xx-large": 32, "xxx-large": 48,
}

func namedFontSizePx(kw string, parentPx float64) float64 {
	if px, ok := absoluteFontSizes[kw]; ok {
		return px
	}
	switch kw {
	case "larger":
		return parentPx * 1.2
	case "smaller":
		return parentPx / 1.2
	}
	return parentPx
}

// NumericFontWeight reports the numeric CSS font-weight this style
// resolves to, translating the keyword forms.
func (cs *ComputedStyle) NumericFontWeight() int {
	switch cs.FontWeight {
	case "bold":
		return 700
	case "bolder":
		return 700
	case "lighter":
		return 300
	case "normal":
		return 400
	}
	if n, err := strconv.Atoi(cs.FontWeight); err == nil {
		return n
	}
	return 400
}
