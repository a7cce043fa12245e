// Package cssvalue turns a declaration's raw component-value tokens
// (css/token.Token, as produced by css/parse) into typed values the style
// engine can resolve: lengths with their unit still attached (resolution
// against font-size/viewport happens lazily, on read), colors, keywords,
// strings and the small value-lists content/quotes/font-family need.
package cssvalue

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/foliocraft/htmlbook/css/token"
)

// Kind discriminates the value shapes a computed style needs to carry.
type Kind uint8

const (
	Keyword Kind = iota
	Length
	Percentage
	Number
	ColorValue
	StringValue
	URLValue
	Ident // fallback for a token no other kind covers (identifier tokens become Keyword)
	List  // comma/space separated list, e.g. font-family, content, quotes
	Counter
	Counters
	AttrRef
	Function // opaque function call, e.g. unrecognized filter()/var()
)

// Value is one resolved (but not yet length-resolved) CSS value.
type Value struct {
	Kind Kind

	Keyword string
	Num     float64
	Unit    string // "px", "em", "rem", "%", "pt", "in", "cm", "mm", "pc", "ex", "ch", "vw", "vh"
	Str     string
	Color   color.Color

	FuncName string
	Args     []Value
	Items    []Value // List/Counter(s) arguments
}

// IsKeyword reports whether v is the bare keyword kw (case-insensitively,
// as the tokenizer/parser already lower-case idents it recognizes as
// keywords but callers may still compare against literals directly).
func (v Value) IsKeyword(kw string) bool {
	return (v.Kind == Keyword || v.Kind == Ident) && strings.EqualFold(v.Keyword, kw)
}

// FromTokens parses a single declaration value (already whitespace- and
// !important-trimmed) into one Value. Multi-value properties (font-family,
// content, quotes, transition lists) should use FromTokensList instead.
func FromTokens(toks []token.Token) Value {
	toks = trimWS(toks)
	if len(toks) == 0 {
		return Value{Kind: Keyword, Keyword: ""}
	}
	if v, ok := colorFromTokens(toks); ok {
		return v
	}
	t := toks[0]
	switch t.Kind {
	case token.Ident:
		return Value{Kind: Keyword, Keyword: strings.ToLower(t.Value)}
	case token.Dimension:
		return Value{Kind: Length, Num: t.NumValue, Unit: strings.ToLower(t.Unit)}
	case token.Percentage:
		return Value{Kind: Percentage, Num: t.NumValue, Unit: "%"}
	case token.Number:
		return Value{Kind: Number, Num: t.NumValue}
	case token.String:
		return Value{Kind: StringValue, Str: t.Value}
	case token.URL:
		return Value{Kind: URLValue, Str: t.Value}
	case token.Function:
		return functionValue(t, toks[1:])
	case token.Hash:
		if c, ok := hexColor(t.Value); ok {
			return Value{Kind: ColorValue, Color: c}
		}
	}
	return Value{Kind: Ident, Keyword: t.Value}
}

// FromTokensList splits toks on top-level commas and parses each group as
// a space-separated sequence of Values, used by font-family/content/quotes.
func FromTokensList(toks []token.Token) []Value {
	var out []Value
	for _, group := range splitTopLevelCommas(trimWS(toks)) {
		group = trimWS(group)
		if len(group) == 0 {
			continue
		}
		var items []Value
		for _, g := range splitOnWhitespace(group) {
			items = append(items, FromTokens(g))
		}
		if len(items) == 1 {
			out = append(out, items[0])
		} else {
			out = append(out, Value{Kind: List, Items: items})
		}
	}
	return out
}

func functionValue(fn token.Token, rest []token.Token) Value {
	name := strings.ToLower(fn.Value)
	args := matchingParenSpan(rest)
	var parts [][]token.Token
	for _, g := range splitTopLevelCommas(trimWS(args)) {
		parts = append(parts, trimWS(g))
	}
	v := Value{Kind: Function, FuncName: name}
	for _, p := range parts {
		v.Args = append(v.Args, FromTokens(p))
	}
	switch name {
	case "counter":
		v.Kind = Counter
	case "counters":
		v.Kind = Counters
	case "attr":
		v.Kind = AttrRef
		if len(v.Args) > 0 {
			v.Str = v.Args[0].Keyword
		}
	case "rgb", "rgba", "hsl", "hsla":
		if c, ok := functionColor(name, v.Args); ok {
			return Value{Kind: ColorValue, Color: c}
		}
	}
	return v
}

// matchingParenSpan returns the tokens belonging to a function call whose
// opening paren was already consumed, stopping at the matching RParen.
func matchingParenSpan(toks []token.Token) []token.Token {
	depth := 1
	for i, t := range toks {
		switch t.Kind {
		case token.LParen, token.Function:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return toks[:i]
			}
		}
	}
	return toks
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

func splitOnWhitespace(toks []token.Token) [][]token.Token {
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

func splitTopLevelCommas(toks []token.Token) [][]token.Token {
	var groups [][]token.Token
	depth := 0
	start := 0
	for i, t := range toks {
		switch t.Kind {
		case token.LParen, token.Function:
			depth++
		case token.RParen:
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

// Px resolves a length/percentage value to device pixels, given the
// context a CSS length needs: the element's own font-size (for em/ex/ch),
// the document root's font-size (for rem), the viewport dimensions (for
// vw/vh), and — for Percentage — the value's reference dimension supplied
// by the caller (e.g. containing block width). Non-length kinds resolve
// to 0.
func (v Value) Px(fontSizePx, rootFontSizePx, viewportWidthPx, viewportHeightPx, percentBasisPx float64) float64 {
	switch v.Kind {
	case Percentage:
		return v.Num / 100 * percentBasisPx
	case Number:
		return v.Num
	case Length:
		switch v.Unit {
		case "px", "":
			return v.Num
		case "em":
			return v.Num * fontSizePx
		case "rem":
			return v.Num * rootFontSizePx
		case "ex":
			return v.Num * fontSizePx * 0.5
		case "ch":
			return v.Num * fontSizePx * 0.5
		case "vw":
			return v.Num / 100 * viewportWidthPx
		case "vh":
			return v.Num / 100 * viewportHeightPx
		case "vmin":
			if viewportWidthPx < viewportHeightPx {
				return v.Num / 100 * viewportWidthPx
			}
			return v.Num / 100 * viewportHeightPx
		case "vmax":
			if viewportWidthPx > viewportHeightPx {
				return v.Num / 100 * viewportWidthPx
			}
			return v.Num / 100 * viewportHeightPx
		case "pt":
			return v.Num * 96 / 72
		case "pc":
			return v.Num * 16
		case "in":
			return v.Num * 96
		case "cm":
			return v.Num * 96 / 2.54
		case "mm":
			return v.Num * 96 / 25.4
		}
	}
	return 0
}

// ResolveColor resolves a ColorValue, substituting currentColor against
// the supplied current text color.
func (v Value) ResolveColor(current color.Color) color.Color {
	if v.IsKeyword("currentcolor") {
		return current
	}
	if v.Kind == ColorValue {
		return v.Color
	}
	if v.Kind == Keyword {
		if c, ok := namedColors[strings.ToLower(v.Keyword)]; ok {
			return c
		}
	}
	return nil
}

func colorFromTokens(toks []token.Token) (Value, bool) {
	if len(toks) != 1 {
		return Value{}, false
	}
	t := toks[0]
	if t.Kind == token.Hash {
		if c, ok := hexColor(t.Value); ok {
			return Value{Kind: ColorValue, Color: c}, true
		}
	}
	return Value{}, false
}

func hexColor(hex string) (color.Color, bool) {
	parse := func(s string) (uint8, bool) {
		n, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return 0, false
		}
		return uint8(n), true
	}
	dup := func(s string) string { return string([]byte{s[0], s[0]}) }
	switch len(hex) {
	case 3:
		r, ok1 := parse(dup(hex[0:1]))
		g, ok2 := parse(dup(hex[1:2]))
		b, ok3 := parse(dup(hex[2:3]))
		if ok1 && ok2 && ok3 {
			return color.NRGBA{R: r, G: g, B: b, A: 0xff}, true
		}
	case 4:
		r, ok1 := parse(dup(hex[0:1]))
		g, ok2 := parse(dup(hex[1:2]))
		b, ok3 := parse(dup(hex[2:3]))
		a, ok4 := parse(dup(hex[3:4]))
		if ok1 && ok2 && ok3 && ok4 {
			return color.NRGBA{R: r, G: g, B: b, A: a}, true
		}
	case 6:
		r, ok1 := parse(hex[0:2])
		g, ok2 := parse(hex[2:4])
		b, ok3 := parse(hex[4:6])
		if ok1 && ok2 && ok3 {
			return color.NRGBA{R: r, G: g, B: b, A: 0xff}, true
		}
	case 8:
		r, ok1 := parse(hex[0:2])
		g, ok2 := parse(hex[2:4])
		b, ok3 := parse(hex[4:6])
		a, ok4 := parse(hex[6:8])
		if ok1 && ok2 && ok3 && ok4 {
			return color.NRGBA{R: r, G: g, B: b, A: a}, true
		}
	}
	return nil, false
}

func functionColor(name string, args []Value) (color.Color, bool) {
	if len(args) < 3 {
		return nil, false
	}
	byteOf := func(v Value) uint8 {
		if v.Kind == Percentage {
			return clamp8(v.Num / 100 * 255)
		}
		return clamp8(v.Num)
	}
	alphaOf := func(v Value) uint8 {
		if v.Kind == Percentage {
			return clamp8(v.Num / 100 * 255)
		}
		return clamp8(v.Num * 255)
	}
	switch name {
	case "rgb", "rgba":
		a := uint8(0xff)
		if len(args) >= 4 {
			a = alphaOf(args[3])
		}
		return color.NRGBA{R: byteOf(args[0]), G: byteOf(args[1]), B: byteOf(args[2]), A: a}, true
	case "hsl", "hsla":
		h, s, l := args[0].Num, args[1].Num/100, args[2].Num/100
		a := uint8(0xff)
		if len(args) >= 4 {
			a = alphaOf(args[3])
		}
		r, g, b := hslToRGB(h, s, l)
		return color.NRGBA{R: r, G: g, B: b, A: a}, true
	}
	return nil, false
}

func clamp8(f float64) uint8 {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f)
}

func hslToRGB(h, s, l float64) (r, g, b uint8) {
	h = mod(h, 360)
	c := (1 - absf(2*l-1)) * s
	x := c * (1 - absf(mod(h/60, 2)-1))
	m := l - c/2
	var r1, g1, b1 float64
	switch {
	case h < 60:
		r1, g1, b1 = c, x, 0
	case h < 120:
		r1, g1, b1 = x, c, 0
	case h < 180:
		r1, g1, b1 = 0, c, x
	case h < 240:
		r1, g1, b1 = 0, x, c
	case h < 300:
		r1, g1, b1 = x, 0, c
	default:
		r1, g1, b1 = c, 0, x
	}
	return clamp8((r1 + m) * 255), clamp8((g1 + m) * 255), clamp8((b1 + m) * 255)
}

func mod(a, b float64) float64 {
	r := a - b*float64(int(a/b))
	if r < 0 {
		r += b
	}
	return r
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

var namedColors = map[string]color.Color{
	"black":   color.NRGBA{0, 0, 0, 0xff},
	"white":   color.NRGBA{0xff, 0xff, 0xff, 0xff},
	"red":     color.NRGBA{0xff, 0, 0, 0xff},
	"green":   color.NRGBA{0, 0x80, 0, 0xff},
	"lime":    color.NRGBA{0, 0xff, 0, 0xff},
	"blue":    color.NRGBA{0, 0, 0xff, 0xff},
	"yellow":  color.NRGBA{0xff, 0xff, 0, 0xff},
	"cyan":    color.NRGBA{0, 0xff, 0xff, 0xff},
	"aqua":    color.NRGBA{0, 0xff, 0xff, 0xff},
	"magenta": color.NRGBA{0xff, 0, 0xff, 0xff},
	"fuchsia": color.NRGBA{0xff, 0, 0xff, 0xff},
	"gray":    color.NRGBA{0x80, 0x80, 0x80, 0xff},
	"grey":    color.NRGBA{0x80, 0x80, 0x80, 0xff},
	"silver":  color.NRGBA{0xc0, 0xc0, 0xc0, 0xff},
	"maroon":  color.NRGBA{0x80, 0, 0, 0xff},
	"olive":   color.NRGBA{0x80, 0x80, 0, 0xff},
	"navy":    color.NRGBA{0, 0, 0x80, 0xff},
	"purple":  color.NRGBA{0x80, 0, 0x80, 0xff},
	"teal":    color.NRGBA{0, 0x80, 0x80, 0xff},
	"orange":  color.NRGBA{0xff, 0xa5, 0, 0xff},
	"pink":    color.NRGBA{0xff, 0xc0, 0xcb, 0xff},
	"brown":   color.NRGBA{0xa5, 0x2a, 0x2a, 0xff},
	"gold":    color.NRGBA{0xff, 0xd7, 0, 0xff},
	"indigo":  color.NRGBA{0x4b, 0, 0x82, 0xff},
	"violet":  color.NRGBA{0xee, 0x82, 0xee, 0xff},
	"transparent": color.NRGBA{0, 0, 0, 0},
}

// NamedColor looks up one of the CSS named colors this module recognizes.
func NamedColor(name string) (color.Color, bool) {
	c, ok := namedColors[strings.ToLower(name)]
	return c, ok
}
