package pipeline

import (
	"strings"

	"github.com/foliocraft/htmlbook/css/parse"
	"github.com/foliocraft/htmlbook/dom"
	"github.com/foliocraft/htmlbook/intern"
	"github.com/foliocraft/htmlbook/resource"
	"github.com/foliocraft/htmlbook/style/rulecache"
)

var (
	tagLink  = intern.Intern("link")
	tagStyle = intern.Intern("style")
	attrRel  = intern.Intern("rel")
)

// collectAuthorSheets walks doc for <style> elements and <link
// rel="stylesheet" href> elements, parsing each (and, for a linked sheet,
// fetching its bytes through res) into a flat list of style sheets in
// document order, each with its one level of @import already resolved.
func collectAuthorSheets(doc *dom.Document, res *resource.Cache) []*parse.StyleSheet {
	var sheets []*parse.StyleSheet
	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		if n.Type == dom.ElementNode {
			switch {
			case n.Tag == tagStyle:
				sheets = append(sheets, parseWithImports(n.TextContent(), doc.BaseURL, res))
			case n.Tag == tagLink:
				if isStylesheetLink(n) {
					if href, ok := n.Attr(intern.AttrHref); ok {
						if text, ok := res.ResolveText(doc.BaseURL, href.String()); ok {
							sheets = append(sheets, parseWithImports(text.Content, doc.BaseURL, res))
						}
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc.Root)
	return sheets
}

func isStylesheetLink(n *dom.Node) bool {
	rel, ok := n.Attr(attrRel)
	if !ok {
		return false
	}
	for _, tok := range strings.Fields(rel.String()) {
		if strings.EqualFold(tok, "stylesheet") {
			return true
		}
	}
	return false
}

// parseWithImports parses css, resolving each top-level @import at most
// one level deep (synchronously, via res), and flattening @media blocks
// in unconditionally (this module does not evaluate media queries).
func parseWithImports(css, baseURL string, res *resource.Cache) *parse.StyleSheet {
	sheet := parse.ParseStyleSheet(css)
	return resolveImportsOnce(sheet, baseURL, res)
}

func resolveImportsOnce(sheet *parse.StyleSheet, baseURL string, res *resource.Cache) *parse.StyleSheet {
	out := &parse.StyleSheet{}
	for _, r := range flattenMedia(sheet.Rules) {
		if r.At != nil && strings.EqualFold(r.At.Name, "import") {
			if href, ok := parse.ImportHref(r.At.Prelude); ok {
				if text, ok := res.ResolveText(baseURL, href); ok {
					imported := parse.ParseStyleSheet(text.Content)
					out.Rules = append(out.Rules, flattenMedia(imported.Rules)...)
				}
			}
			continue
		}
		out.Rules = append(out.Rules, r)
	}
	return out
}

// flattenMedia inlines every @media block's rules unconditionally (media
// query evaluation is out of scope) and drops the @media wrapper itself.
func flattenMedia(rules []parse.Rule) []parse.Rule {
	var out []parse.Rule
	for _, r := range rules {
		if r.At != nil && strings.EqualFold(r.At.Name, "media") {
			out = append(out, flattenMedia(r.At.Block)...)
			continue
		}
		out = append(out, r)
	}
	return out
}

// buildRuleCache installs sheets (in order: user, then author) into a
// fresh rule cache.
func buildRuleCache(userStyle string, authorSheets []*parse.StyleSheet) *rulecache.Cache {
	cache := rulecache.New()
	if strings.TrimSpace(userStyle) != "" {
		cache.Add(parse.ParseStyleSheet(userStyle), rulecache.User)
	}
	for _, s := range authorSheets {
		cache.Add(s, rulecache.Author)
	}
	return cache
}
