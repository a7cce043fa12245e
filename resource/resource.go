// Package resource caches and decodes the byte payloads the rest of this
// module needs fetched from outside a document: text (stylesheets,
// external scripts this module never executes but may still be asked to
// load), images and fonts. Fetching itself is delegated to a
// ResourceClient the caller supplies; this package owns the URL-keyed
// cache, negative-caching of decode failures, and the decode contracts
// for each resource kind.
package resource

import (
	"strconv"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"

	resurl "github.com/foliocraft/htmlbook/resource/url"
)

func tracer() tracing.Trace {
	return tracing.Select("htmlbook.resource")
}

// ResourceClient fetches the raw bytes behind a URL or a font family, the
// only transport this module performs itself; the HTTP/file-system/zip
// mechanics live entirely on the caller's side of this interface.
type ResourceClient interface {
	LoadURL(url string) (mimeType, textEncoding string, body []byte, ok bool)
	LoadFont(family string, italic, smallCaps bool, weight int) (body []byte, ok bool)
}

// Kind distinguishes the decoded payload a cache entry carries.
type Kind uint8

const (
	KindText Kind = iota
	KindImage
	KindFont
)

// Entry is one resolved, decoded resource. Ok is false for a negative
// cache entry: fetch or decode failed, and re-resolving the same key
// should not be retried.
type Entry struct {
	Kind Kind
	Text *Text
	Img  *Image
	Font *Font
	Ok   bool
}

// Cache resolves and memoizes resources by absolute URL, so a stylesheet
// or document referencing the same image or font many times only pays
// the fetch/decode cost once.
type Cache struct {
	client ResourceClient
	mu     sync.Mutex
	byURL  map[string]*Entry
	fonts  map[string]*Entry
}

// New creates a Cache backed by client.
func New(client ResourceClient) *Cache {
	return &Cache{client: client, byURL: map[string]*Entry{}, fonts: map[string]*Entry{}}
}

// ResolveText fetches and decodes the text resource at ref (relative to
// base), caching the result under its completed absolute URL.
func (c *Cache) ResolveText(base, ref string) (*Text, bool) {
	key, ok := resurl.Complete(base, ref)
	if !ok {
		return nil, false
	}
	c.mu.Lock()
	if e, found := c.byURL[key]; found {
		c.mu.Unlock()
		return e.Text, e.Ok
	}
	c.mu.Unlock()

	mimeType, enc, body, ok := c.client.LoadURL(key)
	var entry *Entry
	if !ok {
		entry = &Entry{Kind: KindText, Ok: false}
	} else if t, ok := decodeText(mimeType, enc, body); ok {
		entry = &Entry{Kind: KindText, Text: t, Ok: true}
	} else {
		tracer().Infof("resource: failed to decode text resource %s", key)
		entry = &Entry{Kind: KindText, Ok: false}
	}
	c.mu.Lock()
	c.byURL[key] = entry
	c.mu.Unlock()
	return entry.Text, entry.Ok
}

// ResolveImage fetches and decodes the image resource at url (relative
// to base).
func (c *Cache) ResolveImage(base, ref string) (*Image, bool) {
	key, ok := resurl.Complete(base, ref)
	if !ok {
		return nil, false
	}
	c.mu.Lock()
	if e, found := c.byURL[key]; found {
		c.mu.Unlock()
		return e.Img, e.Ok
	}
	c.mu.Unlock()

	var body []byte
	var mimeType string
	if data, textEnc, b, ok := c.client.LoadURL(key); ok {
		mimeType, body = data, b
		_ = textEnc
	} else if m, _, b, ok := resurl.DecodeData(key); ok {
		mimeType, body = m, b
	} else {
		c.storeImage(key, nil, false)
		return nil, false
	}

	img, ok := decodeImage(mimeType, body)
	c.storeImage(key, img, ok)
	if !ok {
		tracer().Infof("resource: failed to decode image resource %s", key)
	}
	return img, ok
}

func (c *Cache) storeImage(key string, img *Image, ok bool) {
	c.mu.Lock()
	c.byURL[key] = &Entry{Kind: KindImage, Img: img, Ok: ok}
	c.mu.Unlock()
}

// ResolveFontSource fetches and extracts metadata from a font referenced
// by @font-face src url() (rather than a family match via LoadFont).
func (c *Cache) ResolveFontSource(base, ref string) (*Font, bool) {
	key, ok := resurl.Complete(base, ref)
	if !ok {
		return nil, false
	}
	c.mu.Lock()
	if e, found := c.byURL[key]; found {
		c.mu.Unlock()
		return e.Font, e.Ok
	}
	c.mu.Unlock()

	var body []byte
	if data, _, b, ok := c.client.LoadURL(key); ok {
		body = b
		_ = data
	} else if _, _, b, ok := resurl.DecodeData(key); ok {
		body = b
	} else {
		c.mu.Lock()
		c.byURL[key] = &Entry{Kind: KindFont, Ok: false}
		c.mu.Unlock()
		return nil, false
	}

	f, ok := decodeFont(body)
	c.mu.Lock()
	c.byURL[key] = &Entry{Kind: KindFont, Font: f, Ok: ok}
	c.mu.Unlock()
	if !ok {
		tracer().Infof("resource: failed to parse font source %s", key)
	}
	return f, ok
}

// ResolveFontFamily asks the client to load a font by family/style/weight
// directly (the src: local(...) path), caching by a synthetic key.
func (c *Cache) ResolveFontFamily(family string, italic, smallCaps bool, weight int) (*Font, bool) {
	key := familyKey(family, italic, smallCaps, weight)
	c.mu.Lock()
	if e, found := c.fonts[key]; found {
		c.mu.Unlock()
		return e.Font, e.Ok
	}
	c.mu.Unlock()

	body, ok := c.client.LoadFont(family, italic, smallCaps, weight)
	var f *Font
	if ok {
		f, ok = decodeFont(body)
	}
	c.mu.Lock()
	c.fonts[key] = &Entry{Kind: KindFont, Font: f, Ok: ok}
	c.mu.Unlock()
	return f, ok
}

// ResolveFontFace resolves a matched @font-face's sources in declaration
// order, returning the first one that fetches and parses successfully,
// falling back to a direct family lookup (the src: local(...) path) if
// none of sources do.
func (c *Cache) ResolveFontFace(baseURL string, sources []string, family string, italic, smallCaps bool, weight int) (*Font, bool) {
	for _, src := range sources {
		if f, ok := c.ResolveFontSource(baseURL, src); ok {
			return f, true
		}
	}
	return c.ResolveFontFamily(family, italic, smallCaps, weight)
}

func familyKey(family string, italic, smallCaps bool, weight int) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(family))
	b.WriteByte('|')
	if italic {
		b.WriteByte('i')
	}
	if smallCaps {
		b.WriteByte('s')
	}
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(weight))
	return b.String()
}
