package cascade

import (
	"image/color"

	"github.com/foliocraft/htmlbook/css/cssvalue"
	"github.com/foliocraft/htmlbook/dom"
)

// initialValues holds this module's built-in defaults for the properties
// it supports, consulted when a property is neither set on an element nor
// (for inherited properties) found on any ancestor.
var initialValues = map[string]cssvalue.Value{
	"display":    {Kind: cssvalue.Keyword, Keyword: "inline"},
	"position":   {Kind: cssvalue.Keyword, Keyword: "static"},
	"float":      {Kind: cssvalue.Keyword, Keyword: "none"},
	"clear":      {Kind: cssvalue.Keyword, Keyword: "none"},
	"visibility": {Kind: cssvalue.Keyword, Keyword: "visible"},
	"overflow-x": {Kind: cssvalue.Keyword, Keyword: "visible"},
	"overflow-y": {Kind: cssvalue.Keyword, Keyword: "visible"},

	"width": {Kind: cssvalue.Keyword, Keyword: "auto"}, "height": {Kind: cssvalue.Keyword, Keyword: "auto"},
	"min-width": {Kind: cssvalue.Keyword, Keyword: "auto"}, "min-height": {Kind: cssvalue.Keyword, Keyword: "auto"},
	"max-width": {Kind: cssvalue.Keyword, Keyword: "none"}, "max-height": {Kind: cssvalue.Keyword, Keyword: "none"},
	"box-sizing": {Kind: cssvalue.Keyword, Keyword: "content-box"},

	"margin-top": {Kind: cssvalue.Length, Unit: "px", Num: 0}, "margin-right": {Kind: cssvalue.Length, Unit: "px", Num: 0},
	"margin-bottom": {Kind: cssvalue.Length, Unit: "px", Num: 0}, "margin-left": {Kind: cssvalue.Length, Unit: "px", Num: 0},
	"padding-top": {Kind: cssvalue.Length, Unit: "px", Num: 0}, "padding-right": {Kind: cssvalue.Length, Unit: "px", Num: 0},
	"padding-bottom": {Kind: cssvalue.Length, Unit: "px", Num: 0}, "padding-left": {Kind: cssvalue.Length, Unit: "px", Num: 0},

	"border-top-width": {Kind: cssvalue.Keyword, Keyword: "medium"}, "border-right-width": {Kind: cssvalue.Keyword, Keyword: "medium"},
	"border-bottom-width": {Kind: cssvalue.Keyword, Keyword: "medium"}, "border-left-width": {Kind: cssvalue.Keyword, Keyword: "medium"},
	"border-top-style": {Kind: cssvalue.Keyword, Keyword: "none"}, "border-right-style": {Kind: cssvalue.Keyword, Keyword: "none"},
	"border-bottom-style": {Kind: cssvalue.Keyword, Keyword: "none"}, "border-left-style": {Kind: cssvalue.Keyword, Keyword: "none"},
	"border-collapse": {Kind: cssvalue.Keyword, Keyword: "separate"},

	"color":             {Kind: cssvalue.ColorValue, Color: color.Black},
	"background-color":  {Kind: cssvalue.Keyword, Keyword: "transparent"},
	"font-family":       {Kind: cssvalue.List, Items: []cssvalue.Value{{Kind: cssvalue.Keyword, Keyword: "serif"}}},
	"font-size":         {Kind: cssvalue.Length, Unit: "px", Num: 16},
	"font-style":        {Kind: cssvalue.Keyword, Keyword: "normal"},
	"font-variant":      {Kind: cssvalue.Keyword, Keyword: "normal"},
	"font-weight":       {Kind: cssvalue.Keyword, Keyword: "normal"},
	"line-height":       {Kind: cssvalue.Keyword, Keyword: "normal"},
	"text-align":        {Kind: cssvalue.Keyword, Keyword: "left"},
	"white-space":       {Kind: cssvalue.Keyword, Keyword: "normal"},
	"direction":         {Kind: cssvalue.Keyword, Keyword: "ltr"},
	"list-style-type":   {Kind: cssvalue.Keyword, Keyword: "disc"},
	"list-style-position": {Kind: cssvalue.Keyword, Keyword: "outside"},
	"list-style-image": {Kind: cssvalue.Keyword, Keyword: "none"},
	"quotes":            {Kind: cssvalue.Keyword, Keyword: "auto"},
	"content":           {Kind: cssvalue.Keyword, Keyword: "normal"},

	"flex-grow": {Kind: cssvalue.Number, Num: 0}, "flex-shrink": {Kind: cssvalue.Number, Num: 1},
	"flex-basis": {Kind: cssvalue.Keyword, Keyword: "auto"},

	"column-width": {Kind: cssvalue.Keyword, Keyword: "auto"}, "column-count": {Kind: cssvalue.Keyword, Keyword: "auto"},

	"text-decoration-line":  {Kind: cssvalue.Keyword, Keyword: "none"},
	"text-decoration-style": {Kind: cssvalue.Keyword, Keyword: "solid"},
	"text-decoration-color": {Kind: cssvalue.Keyword, Keyword: "currentcolor"},
}

// InitialValue returns the module's built-in default for key, or the zero
// Value (Keyword "") if this module has no opinion on it.
func InitialValue(key string) cssvalue.Value {
	return initialValues[key]
}

// DefaultDisplay returns the user-agent default `display` value for a
// DOM element, covering the HTML elements this module recognizes and
// falling back to "block" for unrecognized ones.
func DefaultDisplay(n *dom.Node) string {
	if n.Type == dom.DocumentNode {
		return "block"
	}
	if n.Type != dom.ElementNode {
		return "none"
	}
	switch n.Tag.String() {
	case "head", "script", "style", "title", "meta", "link", "base", "noscript", "template":
		return "none"
	case "html", "body", "div", "p", "section", "article", "aside", "nav",
		"header", "footer", "main", "figure", "figcaption", "blockquote",
		"address", "fieldset", "form", "hr", "pre", "h1", "h2", "h3", "h4", "h5", "h6":
		return "block"
	case "ul", "ol", "dl":
		return "block"
	case "li":
		return "list-item"
	case "table":
		return "table"
	case "caption":
		return "table-caption"
	case "tr":
		return "table-row"
	case "thead":
		return "table-header-group"
	case "tbody":
		return "table-row-group"
	case "tfoot":
		return "table-footer-group"
	case "col":
		return "table-column"
	case "colgroup":
		return "table-column-group"
	case "td", "th":
		return "table-cell"
	case "i", "b", "span", "strong", "em", "a", "small", "sub", "sup",
		"abbr", "code", "q", "cite", "time", "mark", "dfn", "kbd", "samp", "var", "u", "s":
		return "inline"
	case "img", "input", "button", "select", "textarea":
		return "inline-block"
	case "br":
		return "inline"
	}
	return "block"
}
