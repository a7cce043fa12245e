// Package pipeline wires the front-end components (HTML tokenizing and
// tree construction, CSS tokenizing and parsing, rule caching, selector
// matching, cascade/style resolution, and generated-content/counters)
// into the two entry points a caller actually needs: load a document
// from bytes already in hand, or load one by URL.
package pipeline

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/foliocraft/htmlbook/dom"
	"github.com/foliocraft/htmlbook/html/parse"
	"github.com/foliocraft/htmlbook/resource"
	"github.com/foliocraft/htmlbook/style/cascade"
	"github.com/foliocraft/htmlbook/style/counters"
)

func tracer() tracing.Trace {
	return tracing.Select("htmlbook.pipeline")
}

// LoadDocument parses content as HTML, collects and cascades its CSS
// (author stylesheets found in the document plus userStyle, a
// caller-supplied user-origin sheet), and computes the styled/generated
// box tree for it.
func LoadDocument(content []byte, baseURL, userStyle string, client resource.ResourceClient, cfg Config) (*Document, error) {
	htmlDoc, err := parse.ParseWithOptions(content, baseURL, cfg.parserOptions())
	if err != nil {
		return nil, fmt.Errorf("pipeline: parsing document: %w", err)
	}
	if cfg.ForceQuirksMode != nil {
		if *cfg.ForceQuirksMode {
			htmlDoc.QuirksMode = dom.Quirks
		} else {
			htmlDoc.QuirksMode = dom.NoQuirks
		}
	}
	return build(htmlDoc, userStyle, client, cfg)
}

// LoadURL fetches url through client and loads it the same way
// LoadDocument does.
func LoadURL(url string, userStyle string, client resource.ResourceClient, cfg Config) (*Document, error) {
	mimeType, _, body, ok := client.LoadURL(url)
	if !ok {
		return nil, fmt.Errorf("pipeline: fetching %s: resource client reported failure", url)
	}
	tracer().Debugf("pipeline: loaded %s (%d bytes, %s)", url, len(body), mimeType)
	return LoadDocument(body, url, userStyle, client, cfg)
}

func build(htmlDoc *dom.Document, userStyle string, client resource.ResourceClient, cfg Config) (*Document, error) {
	res := resource.New(client)
	sheets := collectAuthorSheets(htmlDoc, res)
	cache := buildRuleCache(userStyle, sheets)

	widthPx, heightPx := cfg.pageSize()
	ctx := &cascade.Context{
		Cache:            cache,
		RootFontSizePx:   cfg.baseFontSizePx(),
		ViewportWidthPx:  widthPx,
		ViewportHeightPx: heightPx,
	}

	doc := &Document{
		DOM:         htmlDoc,
		Ctx:         ctx,
		Resources:   res,
		FontFaces:   cascade.BuildFontFaceCache(cache),
		PageWidthPx: widthPx, PageHeightPx: heightPx,
		styles:   map[*dom.Node]*cascade.ComputedStyle{},
		pseudos:  map[pseudoKey]*cascade.ComputedStyle{},
		genBoxes: map[*dom.Node][]*counters.Box{},
	}

	doc.computeStyles(htmlDoc.Root, nil)

	walker := counters.NewWalker(ctx)
	doc.rootBox = walker.Build(htmlDoc.Root, nil)
	doc.indexBoxes(doc.rootBox)
	tracer().Debugf("pipeline: generated box tree:\n%s", doc.DumpBoxTree())

	return doc, nil
}
