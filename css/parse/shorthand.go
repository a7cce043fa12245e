package parse

import (
	"strings"

	"github.com/foliocraft/htmlbook/css/token"
)

// ExpandShorthand expands a shorthand declaration into its longhand
// components. Unrecognized properties are returned unexpanded (as a
// single-entry slice), so callers can always iterate the result as "the
// declarations this one actually sets."
func ExpandShorthand(d Declaration) []Declaration {
	switch strings.ToLower(d.Property) {
	case "margin":
		return expandFourSide(d, "margin-top", "margin-right", "margin-bottom", "margin-left")
	case "padding":
		return expandFourSide(d, "padding-top", "padding-right", "padding-bottom", "padding-left")
	case "border-width":
		return expandFourSide(d, "border-top-width", "border-right-width", "border-bottom-width", "border-left-width")
	case "border-style":
		return expandFourSide(d, "border-top-style", "border-right-style", "border-bottom-style", "border-left-style")
	case "border-color":
		return expandFourSide(d, "border-top-color", "border-right-color", "border-bottom-color", "border-left-color")
	case "border-spacing":
		return expandTwoValue(d, "-webkit-border-horizontal-spacing", "border-spacing-horizontal", "border-spacing-vertical")
	case "overflow":
		return expandTwoValue(d, "", "overflow-x", "overflow-y")
	case "list-style":
		return expandListStyle(d)
	case "border-top", "border-right", "border-bottom", "border-left", "border", "outline":
		return expandBorderLike(d)
	case "column-rule":
		return expandColumnRule(d)
	case "font":
		return expandFont(d)
	case "background":
		return expandBackground(d)
	case "flex-flow":
		return expandFlexFlow(d)
	case "border-radius":
		return expandBorderRadius(d)
	case "columns":
		return expandColumns(d)
	case "flex":
		return expandFlex(d)
	case "text-decoration":
		return expandTextDecoration(d)
	}
	return []Declaration{d}
}

func groupByWS(toks []token.Token) [][]token.Token {
	var groups [][]token.Token
	var cur []token.Token
	for _, t := range toks {
		if t.Kind == token.Whitespace {
			if len(cur) > 0 {
				groups = append(groups, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups
}

// expandFourSide implements the CSS "four values, fill up" rule: 1 value
// applies to all sides; 2 to (top/bottom, left/right); 3 to (top,
// left/right, bottom); 4 to (top, right, bottom, left).
func expandFourSide(d Declaration, top, right, bottom, left string) []Declaration {
	groups := groupByWS(d.Value)
	var t, r, b, l []token.Token
	switch len(groups) {
	case 1:
		t, r, b, l = groups[0], groups[0], groups[0], groups[0]
	case 2:
		t, r, b, l = groups[0], groups[1], groups[0], groups[1]
	case 3:
		t, r, b, l = groups[0], groups[1], groups[2], groups[1]
	case 4:
		t, r, b, l = groups[0], groups[1], groups[2], groups[3]
	default:
		return []Declaration{d}
	}
	return []Declaration{
		{Property: top, Value: t, Important: d.Important},
		{Property: right, Value: r, Important: d.Important},
		{Property: bottom, Value: b, Important: d.Important},
		{Property: left, Value: l, Important: d.Important},
	}
}

func expandTwoValue(d Declaration, _ string, first, second string) []Declaration {
	groups := groupByWS(d.Value)
	if len(groups) == 1 {
		return []Declaration{
			{Property: first, Value: groups[0], Important: d.Important},
			{Property: second, Value: groups[0], Important: d.Important},
		}
	}
	if len(groups) >= 2 {
		return []Declaration{
			{Property: first, Value: groups[0], Important: d.Important},
			{Property: second, Value: groups[1], Important: d.Important},
		}
	}
	return []Declaration{d}
}

// expandListStyle splits list-style: <type> || <position> || <image>
// into its three longhands, order-independent per the property grammar.
func expandListStyle(d Declaration) []Declaration {
	groups := groupByWS(d.Value)
	var typ, pos, img []token.Token
	for _, g := range groups {
		if len(g) == 1 && g[0].Kind == token.Ident {
			v := strings.ToLower(g[0].Value)
			if v == "inside" || v == "outside" {
				pos = g
				continue
			}
			if v == "none" {
				if typ == nil {
					typ = g
				} else {
					img = g
				}
				continue
			}
			typ = g
			continue
		}
		if len(g) == 1 && g[0].Kind == token.URL {
			img = g
			continue
		}
		if len(g) > 0 && g[0].Kind == token.Function && strings.EqualFold(g[0].Value, "url") {
			img = g
		}
	}
	out := []Declaration{}
	if typ != nil {
		out = append(out, Declaration{Property: "list-style-type", Value: typ, Important: d.Important})
	}
	if pos != nil {
		out = append(out, Declaration{Property: "list-style-position", Value: pos, Important: d.Important})
	}
	if img != nil {
		out = append(out, Declaration{Property: "list-style-image", Value: img, Important: d.Important})
	}
	return out
}

// expandBorderLike handles border/border-<side>/outline: <width> ||
// <style> || <color>, applied uniformly to all four sides for the
// unqualified "border" and "outline" shorthands.
func expandBorderLike(d Declaration) []Declaration {
	prop := strings.ToLower(d.Property)
	var sides []string
	base := "border"
	switch prop {
	case "border-top":
		sides = []string{"top"}
	case "border-right":
		sides = []string{"right"}
	case "border-bottom":
		sides = []string{"bottom"}
	case "border-left":
		sides = []string{"left"}
	case "border":
		sides = []string{"top", "right", "bottom", "left"}
	case "outline":
		base = "outline"
		sides = []string{""}
	}
	groups := groupByWS(d.Value)
	var width, style, color []token.Token
	for _, g := range groups {
		if len(g) != 1 {
			continue
		}
		t := g[0]
		switch t.Kind {
		case token.Dimension, token.Number:
			width = g
		case token.Ident:
			if borderStyleKeyword[strings.ToLower(t.Value)] {
				style = g
			} else {
				color = g
			}
		case token.Hash, token.Function:
			color = g
		}
	}
	var out []Declaration
	for _, s := range sides {
		mid := s
		if mid != "" {
			mid = "-" + mid
		}
		if width != nil {
			out = append(out, Declaration{Property: base + mid + "-width", Value: width, Important: d.Important})
		}
		if style != nil {
			out = append(out, Declaration{Property: base + mid + "-style", Value: style, Important: d.Important})
		}
		if color != nil {
			out = append(out, Declaration{Property: base + mid + "-color", Value: color, Important: d.Important})
		}
	}
	return out
}

var borderStyleKeyword = map[string]bool{
	"none": true, "hidden": true, "dotted": true, "dashed": true, "solid": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true,
}

func expandColumnRule(d Declaration) []Declaration {
	renamed := Declaration{Property: "border", Value: d.Value, Important: d.Important}
	expanded := expandBorderLike(renamed)
	out := make([]Declaration, len(expanded))
	for i, e := range expanded {
		out[i] = Declaration{Property: "column-rule" + strings.TrimPrefix(e.Property, "border"), Value: e.Value, Important: e.Important}
	}
	return out
}

// expandFont handles the font shorthand's longhands; line-height, when
// present, follows a "/" after font-size.
func expandFont(d Declaration) []Declaration {
	groups := groupByWS(d.Value)
	var style, weight, size, lineHeight, family []token.Token
	i := 0
	for ; i < len(groups); i++ {
		g := groups[i]
		if len(g) == 1 && g[0].Kind == token.Ident {
			v := strings.ToLower(g[0].Value)
			switch v {
			case "italic", "oblique", "normal":
				style = g
				continue
			case "bold", "bolder", "lighter":
				weight = g
				continue
			}
		}
		if len(g) == 1 && (g[0].Kind == token.Dimension || g[0].Kind == token.Number) {
			weight = g
			continue
		}
		break
	}
	if i < len(groups) {
		g := groups[i]
		slashAt := -1
		for j, t := range g {
			if t.Kind == token.Delim && t.Rune == '/' {
				slashAt = j
				break
			}
		}
		if slashAt >= 0 {
			size = g[:slashAt]
			lineHeight = g[slashAt+1:]
		} else {
			size = g
		}
		i++
	}
	if i < len(groups) && len(groups) > i {
		// remaining groups form the family list
		for ; i < len(groups); i++ {
			family = append(family, groups[i]...)
			family = append(family, token.Token{Kind: token.Whitespace})
		}
	}
	var out []Declaration
	if style != nil {
		out = append(out, Declaration{Property: "font-style", Value: style, Important: d.Important})
	}
	if weight != nil {
		out = append(out, Declaration{Property: "font-weight", Value: weight, Important: d.Important})
	}
	if size != nil {
		out = append(out, Declaration{Property: "font-size", Value: size, Important: d.Important})
	}
	if lineHeight != nil {
		out = append(out, Declaration{Property: "line-height", Value: lineHeight, Important: d.Important})
	}
	if family != nil {
		out = append(out, Declaration{Property: "font-family", Value: family, Important: d.Important})
	}
	return out
}

// expandBackground splits out background-color (the last hash or
// identifier token) and background-image (the last url). Position,
// repeat, attachment and size are not expanded into longhands; if neither
// a color nor an image is found the declaration is returned unexpanded.
func expandBackground(d Declaration) []Declaration {
	var color, image []token.Token
	for _, t := range d.Value {
		switch t.Kind {
		case token.Hash, token.Ident:
			if t.Kind == token.Ident && strings.EqualFold(t.Value, "url") {
				continue
			}
			color = []token.Token{t}
		case token.Function, token.URL:
			if t.Kind == token.URL || strings.EqualFold(t.Value, "url") {
				image = []token.Token{t}
			}
		}
	}
	var out []Declaration
	if color != nil {
		out = append(out, Declaration{Property: "background-color", Value: color, Important: d.Important})
	}
	if image != nil {
		out = append(out, Declaration{Property: "background-image", Value: image, Important: d.Important})
	}
	if out == nil {
		return []Declaration{d}
	}
	return out
}

// expandBorderRadius splits the four corner radii, following the "1 to 4
// values, fill up" pattern clockwise from top-left. A "/" separating
// horizontal from vertical radii is recognized and everything after it is
// dropped: only the horizontal (first) radius list is modeled.
func expandBorderRadius(d Declaration) []Declaration {
	groups := groupByWS(d.Value)
	for i, g := range groups {
		if len(g) == 1 && g[0].Kind == token.Delim && g[0].Rune == '/' {
			groups = groups[:i]
			break
		}
	}
	var tl, tr, br, bl []token.Token
	switch len(groups) {
	case 1:
		tl, tr, br, bl = groups[0], groups[0], groups[0], groups[0]
	case 2:
		tl, tr, br, bl = groups[0], groups[1], groups[0], groups[1]
	case 3:
		tl, tr, br, bl = groups[0], groups[1], groups[2], groups[1]
	case 4:
		tl, tr, br, bl = groups[0], groups[1], groups[2], groups[3]
	default:
		return []Declaration{d}
	}
	return []Declaration{
		{Property: "border-top-left-radius", Value: tl, Important: d.Important},
		{Property: "border-top-right-radius", Value: tr, Important: d.Important},
		{Property: "border-bottom-right-radius", Value: br, Important: d.Important},
		{Property: "border-bottom-left-radius", Value: bl, Important: d.Important},
	}
}

// expandColumns handles columns: <column-width> || <column-count>,
// identifying each operand by token shape (a bare number is the count, a
// dimension is the width); "auto" for either is dropped since it already
// matches this module's initial value.
func expandColumns(d Declaration) []Declaration {
	groups := groupByWS(d.Value)
	var width, count []token.Token
	for _, g := range groups {
		if len(g) != 1 {
			continue
		}
		switch g[0].Kind {
		case token.Number:
			count = g
		case token.Dimension:
			width = g
		}
	}
	var out []Declaration
	if width != nil {
		out = append(out, Declaration{Property: "column-width", Value: width, Important: d.Important})
	}
	if count != nil {
		out = append(out, Declaration{Property: "column-count", Value: count, Important: d.Important})
	}
	if out == nil {
		return []Declaration{d}
	}
	return out
}

// expandFlex handles the flex shorthand: the "none" keyword (0 0 auto),
// and the general [ <flex-grow> <flex-shrink>? || <flex-basis> ] form,
// where the first one or two bare numbers are grow/shrink and any
// remaining group is the basis.
func expandFlex(d Declaration) []Declaration {
	groups := groupByWS(d.Value)
	if len(groups) == 1 && len(groups[0]) == 1 && groups[0][0].Kind == token.Ident &&
		strings.EqualFold(groups[0][0].Value, "none") {
		zero := []token.Token{{Kind: token.Number, Value: "0", NumValue: 0}}
		auto := []token.Token{{Kind: token.Ident, Value: "auto"}}
		return []Declaration{
			{Property: "flex-grow", Value: zero, Important: d.Important},
			{Property: "flex-shrink", Value: zero, Important: d.Important},
			{Property: "flex-basis", Value: auto, Important: d.Important},
		}
	}
	var grow, shrink, basis []token.Token
	numbersSeen := 0
	for _, g := range groups {
		if len(g) == 1 && g[0].Kind == token.Number {
			if numbersSeen == 0 {
				grow = g
			} else {
				shrink = g
			}
			numbersSeen++
			continue
		}
		basis = g
	}
	var out []Declaration
	if grow != nil {
		out = append(out, Declaration{Property: "flex-grow", Value: grow, Important: d.Important})
	}
	if shrink != nil {
		out = append(out, Declaration{Property: "flex-shrink", Value: shrink, Important: d.Important})
	}
	if basis != nil {
		out = append(out, Declaration{Property: "flex-basis", Value: basis, Important: d.Important})
	}
	if out == nil {
		return []Declaration{d}
	}
	return out
}

var textDecorationLineKeyword = map[string]bool{
	"underline": true, "overline": true, "line-through": true, "blink": true,
}

var textDecorationStyleKeyword = map[string]bool{
	"solid": true, "double": true, "dotted": true, "dashed": true, "wavy": true,
}

// expandTextDecoration splits text-decoration into its line/style/color
// longhands; text-decoration-line alone may list several keywords
// ("underline overline"), so line tokens accumulate instead of being
// overwritten.
func expandTextDecoration(d Declaration) []Declaration {
	groups := groupByWS(d.Value)
	var line, style, color []token.Token
	for _, g := range groups {
		if len(g) != 1 {
			continue
		}
		t := g[0]
		switch t.Kind {
		case token.Ident:
			v := strings.ToLower(t.Value)
			switch {
			case textDecorationLineKeyword[v] || (v == "none" && style == nil && color == nil):
				line = appendSpaced(line, t)
			case textDecorationStyleKeyword[v]:
				style = g
			default:
				color = g
			}
		case token.Hash, token.Function:
			color = g
		}
	}
	var out []Declaration
	if line != nil {
		out = append(out, Declaration{Property: "text-decoration-line", Value: line, Important: d.Important})
	}
	if style != nil {
		out = append(out, Declaration{Property: "text-decoration-style", Value: style, Important: d.Important})
	}
	if color != nil {
		out = append(out, Declaration{Property: "text-decoration-color", Value: color, Important: d.Important})
	}
	if out == nil {
		return []Declaration{d}
	}
	return out
}

func appendSpaced(toks []token.Token, t token.Token) []token.Token {
	if len(toks) > 0 {
		toks = append(toks, token.Token{Kind: token.Whitespace})
	}
	return append(toks, t)
}

func expandFlexFlow(d Declaration) []Declaration {
	groups := groupByWS(d.Value)
	var direction, wrap []token.Token
	for _, g := range groups {
		if len(g) != 1 || g[0].Kind != token.Ident {
			continue
		}
		switch strings.ToLower(g[0].Value) {
		case "row", "row-reverse", "column", "column-reverse":
			direction = g
		case "nowrap", "wrap", "wrap-reverse":
			wrap = g
		}
	}
	var out []Declaration
	if direction != nil {
		out = append(out, Declaration{Property: "flex-direction", Value: direction, Important: d.Important})
	}
	if wrap != nil {
		out = append(out, Declaration{Property: "flex-wrap", Value: wrap, Important: d.Important})
	}
	if out == nil {
		return []Declaration{d}
	}
	return out
}
