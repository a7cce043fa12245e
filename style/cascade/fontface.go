package cascade

import (
	"strconv"
	"strings"

	"github.com/foliocraft/htmlbook/css/cssvalue"
	"github.com/foliocraft/htmlbook/css/parse"
	"github.com/foliocraft/htmlbook/style/rulecache"
)

// FontFaceMatch is one parsed @font-face rule's relevant declarations,
// keyed for lookup by (family, italic, weight).
type FontFaceMatch struct {
	Family    string
	Italic    bool
	SmallCaps bool
	Weight    int
	Sources   []string // src: url(...) / local(...) values, in rule order
}

// FontFaceCache indexes a rule cache's harvested @font-face blocks by
// lower-cased family name for fast lookup during style resolution.
type FontFaceCache struct {
	byFamily map[string][]*FontFaceMatch
}

// BuildFontFaceCache parses every @font-face block a rule cache collected
// into matchable descriptors.
func BuildFontFaceCache(cache *rulecache.Cache) *FontFaceCache {
	fc := &FontFaceCache{byFamily: map[string][]*FontFaceMatch{}}
	for _, decls := range cache.FontFaces {
		fc.add(decls)
	}
	return fc
}

func (fc *FontFaceCache) add(decls []parse.Declaration) {
	m := &FontFaceMatch{Weight: 400}
	seenFamily := false
	for _, d := range decls {
		switch strings.ToLower(d.Property) {
		case "font-family":
			items := cssvalue.FromTokensList(d.Value)
			if len(items) > 0 {
				m.Family = strings.ToLower(firstKeywordOrString(items[0]))
			}
			seenFamily = true
		case "font-style":
			v := cssvalue.FromTokens(d.Value)
			m.Italic = v.IsKeyword("italic") || v.IsKeyword("oblique")
		case "font-variant":
			v := cssvalue.FromTokens(d.Value)
			m.SmallCaps = v.IsKeyword("small-caps")
		case "font-weight":
			v := cssvalue.FromTokens(d.Value)
			m.Weight = numericWeight(v)
		case "src":
			for _, item := range cssvalue.FromTokensList(d.Value) {
				m.Sources = append(m.Sources, sourceOf(item))
			}
		}
	}
	if seenFamily {
		fc.file(m)
	}
}

func (fc *FontFaceCache) file(m *FontFaceMatch) {
	fc.byFamily[m.Family] = append(fc.byFamily[m.Family], m)
}

// Resolve finds the best @font-face match for family/italic/smallCaps/
// weight, preferring an exact weight match and falling back to the
// nearest available weight, per the font-matching algorithm CSS Fonts
// describes informally.
func (fc *FontFaceCache) Resolve(family string, italic, smallCaps bool, weight int) (*FontFaceMatch, bool) {
	cands := fc.byFamily[strings.ToLower(family)]
	if len(cands) == 0 {
		return nil, false
	}
	var best *FontFaceMatch
	bestDist := 1 << 30
	for _, c := range cands {
		if c.Italic != italic || c.SmallCaps != smallCaps {
			continue
		}
		d := c.Weight - weight
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	if best == nil {
		for _, c := range cands {
			d := c.Weight - weight
			if d < 0 {
				d = -d
			}
			if d < bestDist {
				bestDist = d
				best = c
			}
		}
	}
	return best, best != nil
}

func numericWeight(v cssvalue.Value) int {
	switch {
	case v.IsKeyword("bold"):
		return 700
	case v.IsKeyword("normal"):
		return 400
	case v.Kind == cssvalue.Number:
		return int(v.Num)
	}
	if n, err := strconv.Atoi(v.Keyword); err == nil {
		return n
	}
	return 400
}

func firstKeywordOrString(v cssvalue.Value) string {
	switch v.Kind {
	case cssvalue.StringValue:
		return v.Str
	case cssvalue.Keyword, cssvalue.Ident:
		return v.Keyword
	case cssvalue.List:
		if len(v.Items) > 0 {
			return firstKeywordOrString(v.Items[0])
		}
	}
	return ""
}

func sourceOf(v cssvalue.Value) string {
	switch v.Kind {
	case cssvalue.URLValue:
		return v.Str
	case cssvalue.Function:
		if v.FuncName == "local" && len(v.Args) > 0 {
			return firstKeywordOrString(v.Args[0])
		}
	}
	return ""
}

// FontFace resolves the font-face this style's font-family list matches
// against faceCache, caching the result on first query. Returns false if
// no @font-face in the cache matches any family in the list (the caller
// should fall back to a system/resource-client font by family name).
func (cs *ComputedStyle) FontFace(faceCache *FontFaceCache) (*FontFaceMatch, bool) {
	if cs.fontFaceSet {
		return cs.fontFace, cs.fontFace != nil
	}
	cs.fontFaceSet = true
	italic := cs.FontStyle == "italic" || cs.FontStyle == "oblique"
	smallCaps := cs.FontVariant == "small-caps"
	weight := cs.NumericFontWeight()
	for _, fam := range cs.fontFamilies() {
		if m, ok := faceCache.Resolve(fam, italic, smallCaps, weight); ok {
			cs.fontFace = m
			return m, true
		}
	}
	return nil, false
}

func (cs *ComputedStyle) fontFamilies() []string {
	v := cs.Get("font-family")
	var out []string
	var walk func(cssvalue.Value)
	walk = func(v cssvalue.Value) {
		switch v.Kind {
		case cssvalue.List:
			for _, it := range v.Items {
				walk(it)
			}
		case cssvalue.StringValue:
			out = append(out, v.Str)
		case cssvalue.Keyword, cssvalue.Ident:
			out = append(out, v.Keyword)
		}
	}
	walk(v)
	return out
}
