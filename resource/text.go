package resource

import (
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// Text is a decoded text resource (a stylesheet, most commonly), already
// transcoded to UTF-8.
type Text struct {
	MimeType string
	Content  string
}

// decodeText transcodes body from textEncoding (an IANA/HTML charset
// name) to UTF-8 using golang.org/x/text/encoding/htmlindex, falling back
// to treating body as already UTF-8 when textEncoding is empty or
// unrecognized.
func decodeText(mimeType, textEncoding string, body []byte) (*Text, bool) {
	enc := strings.TrimSpace(textEncoding)
	if enc == "" || strings.EqualFold(enc, "utf-8") || strings.EqualFold(enc, "utf8") {
		return &Text{MimeType: mimeType, Content: string(body)}, true
	}
	e, err := htmlindex.Get(enc)
	if err != nil {
		return &Text{MimeType: mimeType, Content: string(body)}, true
	}
	decoded, err := e.NewDecoder().Bytes(body)
	if err != nil {
		return nil, false
	}
	return &Text{MimeType: mimeType, Content: string(decoded)}, true
}
