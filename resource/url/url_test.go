package url

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompleteRelativePath(t *testing.T) {
	got, ok := Complete("http://example.com/a/b.html", "c.css")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/a/c.css", got)
}

func TestCompleteStripsControlWhitespace(t *testing.T) {
	got, ok := Complete("http://example.com/a/", "c\r\n.css")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/a/c.css", got)
}

func TestCompleteEmptyRefReusesBaseMinusFragment(t *testing.T) {
	got, ok := Complete("http://example.com/a/b.html#frag", "")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/a/b.html", got)
}

func TestCompleteFragmentOnlyReusesPathAndQuery(t *testing.T) {
	got, ok := Complete("http://example.com/a/b.html?x=1", "#frag")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/a/b.html?x=1#frag", got)
}

func TestCompleteAbsoluteReplacesEverything(t *testing.T) {
	got, ok := Complete("http://example.com/a/b.html", "https://other.com/z.css")
	assert.True(t, ok)
	assert.Equal(t, "https://other.com/z.css", got)
}

func TestProtocolIs(t *testing.T) {
	assert.True(t, ProtocolIs("HTTPS://example.com", "https"))
	assert.False(t, ProtocolIs("http://example.com", "https"))
}

func TestDecodeDataBase64(t *testing.T) {
	mimeType, _, body, ok := DecodeData("data:text/plain;base64,aGVsbG8=")
	assert.True(t, ok)
	assert.Equal(t, "text/plain", mimeType)
	assert.Equal(t, "hello", string(body))
}

func TestDecodeDataPercentEncoded(t *testing.T) {
	mimeType, _, body, ok := DecodeData("data:text/plain,hello%20world")
	assert.True(t, ok)
	assert.Equal(t, "text/plain", mimeType)
	assert.Equal(t, "hello world", string(body))
}

func TestDecodeDataRejectsNonDataScheme(t *testing.T) {
	_, _, _, ok := DecodeData("http://example.com/a")
	assert.False(t, ok)
}
