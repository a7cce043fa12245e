// Package url resolves HTML/CSS URL references against a base URL and
// decodes data: URIs, the small set of RFC 3986 operations the rest of
// this module needs (href/src attributes, @import, url(...) values).
//
// net/url already implements RFC 3986 parsing and reference resolution
// correctly (ResolveReference is exactly the "complete" algorithm this
// package exposes); no third-party URL library in the reference corpus
// does this job any better, so this package is a thin, domain-shaped
// wrapper over it rather than a reimplementation.
package url

import (
	"encoding/base64"
	"mime"
	"net/url"
	"strings"
)

// stripASCIIWhitespace removes CR, LF and TAB from s, the first step
// RFC 3986 reference resolution in an HTML context requires before a
// reference is parsed.
func stripASCIIWhitespace(s string) string {
	if !strings.ContainsAny(s, "\r\n\t") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\r' || r == '\n' || r == '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Complete resolves ref against base, stripping CR/LF/TAB from ref
// first. An empty ref resolves to base with its fragment removed. An
// unparseable base or ref is reported as ok=false.
func Complete(base, ref string) (string, bool) {
	ref = stripASCIIWhitespace(ref)
	if ref == "" {
		b, err := url.Parse(base)
		if err != nil {
			return "", false
		}
		b.Fragment = ""
		b.RawFragment = ""
		return b.String(), true
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	if base == "" {
		return r.String(), true
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	return b.ResolveReference(r).String(), true
}

// ProtocolIs reports whether u's scheme equals scheme, case-insensitively.
func ProtocolIs(u, scheme string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	return strings.EqualFold(parsed.Scheme, scheme)
}

// DecodeData decodes a data: URI into its MIME type, optional charset
// and raw bytes. Reports ok=false for a non-data: URL or malformed
// payload (UnsupportedScheme / InvalidUrl in the module's error model).
func DecodeData(dataURL string) (mimeType, textEncoding string, body []byte, ok bool) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", "", nil, false
	}
	rest := dataURL[len("data:"):]
	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return "", "", nil, false
	}
	meta, payload := rest[:comma], rest[comma+1:]

	isBase64 := false
	if strings.HasSuffix(meta, ";base64") {
		isBase64 = true
		meta = strings.TrimSuffix(meta, ";base64")
	}
	if meta == "" {
		meta = "text/plain;charset=US-ASCII"
	}
	mt, params, err := mime.ParseMediaType(meta)
	if err != nil {
		mt = meta
		params = nil
	}
	if cs, ok := params["charset"]; ok {
		textEncoding = cs
	}

	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			decoded, err = base64.RawStdEncoding.DecodeString(payload)
			if err != nil {
				return "", "", nil, false
			}
		}
		body = decoded
	} else {
		unescaped, err := url.QueryUnescape(payload)
		if err != nil {
			unescaped = payload
		}
		body = []byte(unescaped)
	}
	return mt, textEncoding, body, true
}
