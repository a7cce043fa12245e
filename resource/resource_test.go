package resource

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a 1x1 transparent PNG, the smallest fixture that exercises the real
// image.Decode path rather than asserting against a stub.
const onePixelPNGBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNk+A8AAQUBAScY42YAAAAASUVORK5CYII="

type fakeClient struct {
	urls  map[string]fakeURLEntry
	fonts map[string][]byte
}

type fakeURLEntry struct {
	mimeType, encoding string
	body               []byte
	ok                 bool
}

func (f *fakeClient) LoadURL(url string) (string, string, []byte, bool) {
	e, found := f.urls[url]
	if !found {
		return "", "", nil, false
	}
	return e.mimeType, e.encoding, e.body, e.ok
}

func (f *fakeClient) LoadFont(family string, italic, smallCaps bool, weight int) ([]byte, bool) {
	b, ok := f.fonts[family]
	return b, ok
}

func TestResolveTextUTF8PassThrough(t *testing.T) {
	client := &fakeClient{urls: map[string]fakeURLEntry{
		"http://example.com/a.css": {mimeType: "text/css", encoding: "utf-8", body: []byte("body{color:red}"), ok: true},
	}}
	c := New(client)
	text, ok := c.ResolveText("http://example.com/", "a.css")
	require.True(t, ok)
	assert.Equal(t, "body{color:red}", text.Content)
}

func TestResolveTextMissingIsNegativelyCached(t *testing.T) {
	client := &fakeClient{urls: map[string]fakeURLEntry{}}
	c := New(client)
	_, ok := c.ResolveText("http://example.com/", "missing.css")
	assert.False(t, ok)

	// second resolution must not call LoadURL again; the entry is cached
	// under the completed key and re-served without touching the client.
	entry, found := c.byURL["http://example.com/missing.css"]
	require.True(t, found)
	assert.False(t, entry.Ok)
}

func TestResolveImageDecodesPNG(t *testing.T) {
	body, err := base64.StdEncoding.DecodeString(onePixelPNGBase64)
	require.NoError(t, err)
	client := &fakeClient{urls: map[string]fakeURLEntry{
		"http://example.com/a.png": {mimeType: "image/png", body: body, ok: true},
	}}
	c := New(client)
	img, ok := c.ResolveImage("http://example.com/", "a.png")
	require.True(t, ok)
	assert.Equal(t, 1, img.Width)
	assert.Equal(t, 1, img.Height)
}

func TestResolveImageBadBytesIsNegativelyCached(t *testing.T) {
	client := &fakeClient{urls: map[string]fakeURLEntry{
		"http://example.com/bad.png": {mimeType: "image/png", body: []byte("not a png"), ok: true},
	}}
	c := New(client)
	_, ok := c.ResolveImage("http://example.com/", "bad.png")
	assert.False(t, ok)
}

func TestResolveFontFamilyFallback(t *testing.T) {
	client := &fakeClient{fonts: map[string][]byte{}}
	c := New(client)
	_, ok := c.ResolveFontFamily("Helvetica", false, false, 400)
	assert.False(t, ok)
}
