package counters

import (
	"strings"

	"github.com/foliocraft/htmlbook/css/cssvalue"
	"github.com/foliocraft/htmlbook/dom"
	"github.com/foliocraft/htmlbook/intern"
	"github.com/foliocraft/htmlbook/style/cascade"
)

// quoteState tracks the open/close quote nesting depth across the whole
// box-construction walk (quote nesting is a document-wide notion, not
// reset at element boundaries).
type quoteState struct {
	depth int
}

var defaultQuotePairs = [][2]string{{"“", "”"}, {"‘", "’"}}

// quotePairs resolves the `quotes` property to its list of open/close
// pairs, falling back to the standard English double/single pair when
// unset or `auto`.
func quotePairs(style *cascade.ComputedStyle) [][2]string {
	v := style.Get("quotes")
	if v.Kind == cssvalue.Keyword {
		if v.Keyword == "none" {
			return nil
		}
		return defaultQuotePairs
	}
	items := flattenList(v)
	var pairs [][2]string
	for i := 0; i+1 < len(items); i += 2 {
		pairs = append(pairs, [2]string{items[i].Str, items[i+1].Str})
	}
	if len(pairs) == 0 {
		return defaultQuotePairs
	}
	return pairs
}

func quoteAt(style *cascade.ComputedStyle, idx int, open bool) string {
	pairs := quotePairs(style)
	if len(pairs) == 0 {
		return ""
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(pairs) {
		idx = len(pairs) - 1
	}
	if open {
		return pairs[idx][0]
	}
	return pairs[idx][1]
}

// flattenList unwraps the one level of list-within-list FromTokensList
// produces for a space-separated (not comma-separated) multi-value
// property like content or quotes: the outer List has one Items entry
// per top-level comma group, and a group with more than one token is
// itself wrapped as a List of its space-separated values.
func flattenList(v cssvalue.Value) []cssvalue.Value {
	if v.Kind != cssvalue.List {
		return []cssvalue.Value{v}
	}
	var out []cssvalue.Value
	for _, it := range v.Items {
		if it.Kind == cssvalue.List {
			out = append(out, it.Items...)
		} else {
			out = append(out, it)
		}
	}
	return out
}

// evalContent evaluates style's content property into a flat sequence of
// resolved parts, consulting scopes for counter()/counters() and q for
// quote depth. Returns ok=false for `normal`/`none`/unset, meaning the
// caller should not generate a box from content at all.
func evalContent(style *cascade.ComputedStyle, element *dom.Node, scopes *scopeStack, q *quoteState) ([]ContentPart, bool) {
	v := style.Get("content")
	if v.Kind == cssvalue.Keyword && (v.Keyword == "" || v.Keyword == "normal" || v.Keyword == "none") {
		return nil, false
	}
	var out []ContentPart
	for _, item := range flattenList(v) {
		switch item.Kind {
		case cssvalue.StringValue:
			out = append(out, ContentPart{Kind: ContentText, Text: item.Str})
		case cssvalue.URLValue:
			out = append(out, ContentPart{Kind: ContentImage, Text: item.Str})
		case cssvalue.Counter:
			name, styleName := counterArgName(item, 0), "decimal"
			if len(item.Args) > 1 {
				styleName = item.Args[1].Keyword
			}
			out = append(out, ContentPart{Kind: ContentText, Text: FormatCounter(scopes.value(name), styleName)})
		case cssvalue.Counters:
			name := counterArgName(item, 0)
			sep := ""
			if len(item.Args) > 1 {
				sep = item.Args[1].Str
			}
			styleName := "decimal"
			if len(item.Args) > 2 {
				styleName = item.Args[2].Keyword
			}
			vals := scopes.allValues(name)
			parts := make([]string, len(vals))
			for i, n := range vals {
				parts[i] = FormatCounter(n, styleName)
			}
			out = append(out, ContentPart{Kind: ContentText, Text: strings.Join(parts, sep)})
		case cssvalue.AttrRef:
			if av, ok := element.Attr(intern.Intern(item.Str)); ok {
				out = append(out, ContentPart{Kind: ContentText, Text: av.String()})
			}
		case cssvalue.Keyword, cssvalue.Ident:
			switch strings.ToLower(item.Keyword) {
			case "open-quote":
				q.depth++
				out = append(out, ContentPart{Kind: ContentText, Text: quoteAt(style, q.depth-1, true)})
			case "close-quote":
				if q.depth > 0 {
					q.depth--
				}
				out = append(out, ContentPart{Kind: ContentText, Text: quoteAt(style, q.depth, false)})
			case "no-open-quote":
				q.depth++
			case "no-close-quote":
				if q.depth > 0 {
					q.depth--
				}
			}
		}
	}
	return out, true
}

func counterArgName(v cssvalue.Value, i int) string {
	if i < len(v.Args) {
		return v.Args[i].Keyword
	}
	return ""
}
