package cascade

import (
	"strconv"
	"strings"

	"github.com/foliocraft/htmlbook/css/parse"
	"github.com/foliocraft/htmlbook/css/token"
	"github.com/foliocraft/htmlbook/dom"
	"github.com/foliocraft/htmlbook/intern"
)

// presentationAttributeCandidates synthesizes the small set of HTML
// presentation attributes this module maps to style declarations,
// installed at the lowest cascade precedence (any matched rule, however
// unspecific, overrides them), per the HTML mapping-to-styles algorithm.
func presentationAttributeCandidates(n *dom.Node) []candidate {
	var decls []parse.Declaration
	switch n.Tag.String() {
	case "img":
		decls = append(decls, dimensionDecl(n, intern.AttrWidth, "width")...)
		decls = append(decls, dimensionDecl(n, intern.AttrHeight, "height")...)
	case "table":
		if v, ok := n.Attr(intern.AttrBorder); ok && v.String() != "" && v.String() != "0" {
			decls = append(decls, widthDecl("border-top-width", v.String()))
			decls = append(decls, widthDecl("border-right-width", v.String()))
			decls = append(decls, widthDecl("border-bottom-width", v.String()))
			decls = append(decls, widthDecl("border-left-width", v.String()))
			decls = append(decls, keywordDecl("border-top-style", "solid"))
			decls = append(decls, keywordDecl("border-right-style", "solid"))
			decls = append(decls, keywordDecl("border-bottom-style", "solid"))
			decls = append(decls, keywordDecl("border-left-style", "solid"))
		}
	case "td", "th":
		decls = append(decls, dimensionDecl(n, intern.AttrWidth, "width")...)
		decls = append(decls, dimensionDecl(n, intern.AttrHeight, "height")...)
	case "body":
		if v, ok := n.Attr(intern.AttrBgcolor); ok {
			decls = append(decls, identDecl("background-color", v.String()))
		}
	case "font":
		if v, ok := n.Attr(intern.AttrColor); ok {
			decls = append(decls, identDecl("color", v.String()))
		}
		if v, ok := n.Attr(intern.AttrSize); ok {
			if px, ok := legacyFontSizePx(v.String()); ok {
				decls = append(decls, lengthPxDecl("font-size", px))
			}
		}
	}
	var out []candidate
	for _, d := range decls {
		out = append(out, candidate{decl: d, position: presentationPosition, level: levelPresentation})
	}
	return out
}

func dimensionDecl(n *dom.Node, attr intern.Name, prop string) []parse.Declaration {
	v, ok := n.Attr(attr)
	if !ok {
		return nil
	}
	s := strings.TrimSpace(v.String())
	if s == "" {
		return nil
	}
	if strings.HasSuffix(s, "%") {
		num := strings.TrimSuffix(s, "%")
		return []parse.Declaration{{Property: prop, Value: []token.Token{{Kind: token.Percentage, Value: num, NumValue: parseFloat(num)}}}}
	}
	return []parse.Declaration{{Property: prop, Value: []token.Token{{Kind: token.Dimension, NumValue: parseFloat(s), Unit: "px"}}}}
}

func widthDecl(prop, raw string) parse.Declaration {
	return parse.Declaration{Property: prop, Value: []token.Token{{Kind: token.Dimension, NumValue: parseFloat(raw), Unit: "px"}}}
}

func lengthPxDecl(prop string, px float64) parse.Declaration {
	return parse.Declaration{Property: prop, Value: []token.Token{{Kind: token.Dimension, NumValue: px, Unit: "px"}}}
}

func keywordDecl(prop, kw string) parse.Declaration {
	return parse.Declaration{Property: prop, Value: []token.Token{{Kind: token.Ident, Value: kw}}}
}

func identDecl(prop, ident string) parse.Declaration {
	ident = strings.TrimSpace(ident)
	if strings.HasPrefix(ident, "#") {
		return parse.Declaration{Property: prop, Value: []token.Token{{Kind: token.Hash, Value: strings.TrimPrefix(ident, "#")}}}
	}
	return parse.Declaration{Property: prop, Value: []token.Token{{Kind: token.Ident, Value: ident}}}
}

// parseFloat extracts the leading numeric run of s (HTML legacy
// attributes like width="120px" or width="50" tolerate trailing garbage),
// returning 0 for anything unparsable.
func parseFloat(s string) float64 {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0
	}
	return f
}

// legacyFontSizePx maps a legacy <font size="N"> (1..7, or relative
// +N/-N) value to a pixel size, following the classic HTML font-size
// table browsers use for presentational hints.
var legacyFontSizeTable = map[int]float64{1: 10, 2: 13, 3: 16, 4: 18, 5: 24, 6: 32, 7: 48}

func legacyFontSizePx(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n := int(parseFloat(raw))
	if strings.HasPrefix(raw, "+") || strings.HasPrefix(raw, "-") {
		n = 3 + n
	}
	if n < 1 {
		n = 1
	}
	if n > 7 {
		n = 7
	}
	px, ok := legacyFontSizeTable[n]
	return px, ok
}
