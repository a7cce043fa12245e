package parse

import (
	"strings"

	"github.com/foliocraft/htmlbook/arena"
	"github.com/foliocraft/htmlbook/dom"
	"github.com/foliocraft/htmlbook/html/token"
	"github.com/foliocraft/htmlbook/intern"
)

// svgTagNameAdjustments restores the camelCase spelling SVG gives these
// element names; the tokenizer ASCII-lowercases every tag name, so the
// tree builder has to undo that for the handful of SVG tags case
// actually matters for.
var svgTagNameAdjustments = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"fedropshadow":        "feDropShadow",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

// svgAttributeAdjustments does the same for attribute names on SVG
// elements.
var svgAttributeAdjustments = map[string]string{
	"attributename":          "attributeName",
	"attributetype":          "attributeType",
	"basefrequency":          "baseFrequency",
	"baseprofile":            "baseProfile",
	"calcmode":               "calcMode",
	"clippathunits":          "clipPathUnits",
	"diffuseconstant":        "diffuseConstant",
	"edgemode":               "edgeMode",
	"filterunits":            "filterUnits",
	"glyphref":               "glyphRef",
	"gradienttransform":      "gradientTransform",
	"gradientunits":          "gradientUnits",
	"kernelmatrix":           "kernelMatrix",
	"kernelunitlength":       "kernelUnitLength",
	"keypoints":              "keyPoints",
	"keysplines":             "keySplines",
	"keytimes":               "keyTimes",
	"lengthadjust":           "lengthAdjust",
	"limitingconeangle":      "limitingConeAngle",
	"markerheight":           "markerHeight",
	"markerunits":            "markerUnits",
	"markerwidth":            "markerWidth",
	"maskcontentunits":       "maskContentUnits",
	"maskunits":              "maskUnits",
	"numoctaves":             "numOctaves",
	"pathlength":             "pathLength",
	"patterncontentunits":    "patternContentUnits",
	"patterntransform":       "patternTransform",
	"patternunits":           "patternUnits",
	"pointsatx":              "pointsAtX",
	"pointsaty":              "pointsAtY",
	"pointsatz":              "pointsAtZ",
	"preserveaspectratio":    "preserveAspectRatio",
	"refx":                   "refX",
	"refy":                   "refY",
	"repeatcount":            "repeatCount",
	"repeatdur":              "repeatDur",
	"requiredextensions":     "requiredExtensions",
	"requiredfeatures":       "requiredFeatures",
	"specularconstant":       "specularConstant",
	"specularexponent":       "specularExponent",
	"spreadmethod":           "spreadMethod",
	"startoffset":            "startOffset",
	"stddeviation":           "stdDeviation",
	"stitchtiles":            "stitchTiles",
	"surfacescale":           "surfaceScale",
	"systemlanguage":         "systemLanguage",
	"tablevalues":            "tableValues",
	"targetx":                "targetX",
	"targety":                "targetY",
	"textlength":             "textLength",
	"viewbox":                "viewBox",
	"viewtarget":             "viewTarget",
	"xchannelselector":       "xChannelSelector",
	"ychannelselector":       "yChannelSelector",
	"zoomandpan":             "zoomAndPan",
}

// mathMLAttributeAdjustments covers the one MathML attribute whose case
// the tokenizer's lowercasing breaks.
var mathMLAttributeAdjustments = map[string]string{
	"definitionurl": "definitionURL",
}

// adjustForeignTagName restores the camelCase spelling for SVG tags;
// MathML tag names need no such fixup.
func adjustForeignTagName(ns dom.Namespace, name string) string {
	if ns == dom.SVG {
		if fixed, ok := svgTagNameAdjustments[name]; ok {
			return fixed
		}
	}
	return name
}

func adjustForeignAttrName(ns dom.Namespace, name string) string {
	switch ns {
	case dom.SVG:
		if fixed, ok := svgAttributeAdjustments[name]; ok {
			return fixed
		}
	case dom.MathML:
		if fixed, ok := mathMLAttributeAdjustments[name]; ok {
			return fixed
		}
	}
	return name
}

// foreignBreakout lists the HTML start tags that, per the HTML5 "in
// foreign content" rules, always pop back out of a foreign (SVG/MathML)
// subtree before being processed, regardless of how deep the subtree is.
var foreignBreakout = map[string]bool{
	"b": true, "big": true, "blockquote": true, "body": true, "br": true,
	"center": true, "code": true, "dd": true, "div": true, "dl": true,
	"dt": true, "em": true, "embed": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "head": true, "hr": true, "i": true,
	"img": true, "li": true, "listing": true, "menu": true, "meta": true,
	"nav": true, "ol": true, "p": true, "pre": true, "ruby": true, "s": true,
	"small": true, "span": true, "strong": true, "strike": true, "sub": true,
	"sup": true, "table": true, "tt": true, "u": true, "ul": true, "var": true,
}

func hasAnyAttr(attrs []token.Attr, names ...string) bool {
	for _, a := range attrs {
		for _, name := range names {
			if a.Name == name {
				return true
			}
		}
	}
	return false
}

// insertForeignElementForToken creates an element in namespace ns for
// tok, applying SVG/MathML tag and attribute case fixups, and pushes it
// onto the stack of open elements (self-closing tokens are popped right
// back off, per the foreign content insertion algorithm).
func (p *Parser) insertForeignElementForToken(tok token.Token, ns dom.Namespace) *dom.Node {
	name := adjustForeignTagName(ns, tok.TagName)
	n := p.doc.NewElement(p.intern(name), ns)
	for _, a := range tok.Attrs {
		setForeignAttr(n, p.intern(adjustForeignAttrName(ns, a.Name)), p.arenaStr(a.Value))
	}
	p.insertNode(n)
	if tok.SelfClosing {
		p.open.pop()
	}
	return n
}

// setForeignAttr appends an attribute to n unless one with the same name
// is already present, mirroring dom.Node.SetAttr's first-wins rule. This
// module's Namespace type tracks element vocabularies (HTML/SVG/MathML),
// not the finer xlink:/xml: attribute namespaces HTML5 also
// distinguishes, so foreign attributes keep their (adjusted) name and
// the default attribute namespace.
func setForeignAttr(n *dom.Node, name intern.Name, value arena.String) {
	for _, a := range n.Attrs {
		if a.Name.Equal(name) {
			return
		}
	}
	n.Attrs = append(n.Attrs, dom.Attribute{Name: name, Value: value})
}

// inForeignContent handles tokens while the adjusted current node is in
// a foreign (SVG or MathML) namespace.
func (p *Parser) inForeignContent(tok token.Token) {
	switch tok.Kind {
	case token.Character:
		p.insertCharacters(tok.Chars)
		p.framesetOK = false
		return
	case token.SpaceCharacter:
		p.insertCharacters(tok.Chars)
		return
	case token.Comment:
		p.insertComment(tok.Data)
		return
	case token.Doctype:
		p.parseError("unexpected-doctype")
		return
	case token.StartTag:
		if foreignBreakout[tok.TagName] || (tok.TagName == "font" && hasAnyAttr(tok.Attrs, "color", "face", "size")) {
			p.parseError("html-breakout-in-foreign-content")
			for len(p.open.items) > 0 && p.currentNode().NS != dom.HTML {
				p.open.pop()
			}
			p.dispatch(tok)
			return
		}
		ns := dom.HTML
		if cur := p.currentNode(); cur != nil {
			ns = cur.NS
		}
		p.insertForeignElementForToken(tok, ns)
		return
	case token.EndTag:
		if strings.EqualFold(tok.TagName, "script") {
			if cur := p.currentNode(); cur != nil && cur.NS == dom.SVG {
				p.open.pop()
				return
			}
		}
		p.foreignEndTag(tok.TagName)
		return
	}
}

// foreignEndTag implements the "in foreign content" any-other-end-tag
// algorithm: walk the stack looking for a same-named node, popping it
// and everything above it on a match; bail out to the current HTML
// insertion mode as soon as an HTML-namespace ancestor is reached
// without a match.
func (p *Parser) foreignEndTag(tagName string) {
	items := p.open.items
	if len(items) == 0 {
		return
	}
	if !strings.EqualFold(items[len(items)-1].Tag.String(), tagName) {
		p.parseError("unexpected-end-tag")
	}
	for i := len(items) - 1; i >= 0; i-- {
		node := items[i]
		if strings.EqualFold(node.Tag.String(), tagName) {
			p.open.items = items[:i]
			return
		}
		if i == 0 {
			return
		}
		if items[i-1].NS == dom.HTML {
			p.dispatchByMode(token.Token{Kind: token.EndTag, TagName: tagName})
			return
		}
	}
}
