package resource

import (
	"strings"

	"golang.org/x/image/font/sfnt"
)

// Font is font metadata extracted far enough to validate an @font-face
// match; full glyph rasterization is out of scope here and belongs to
// the downstream painter.
type Font struct {
	Family    string
	Subfamily string
	Italic    bool
	Bold      bool
	Data      []byte
}

// decodeFont parses body as an SFNT font (TrueType/OpenType) far enough
// to read its family/subfamily name records, which @font-face matching
// uses to sanity-check a fetched font against its declared descriptors.
func decodeFont(body []byte) (*Font, bool) {
	f, err := sfnt.Parse(body)
	if err != nil {
		return nil, false
	}
	var buf sfnt.Buffer
	family, _ := f.Name(&buf, sfnt.NameIDFamily)
	subfamily, _ := f.Name(&buf, sfnt.NameIDSubfamily)
	lower := strings.ToLower(subfamily)
	return &Font{
		Family:    family,
		Subfamily: subfamily,
		Italic:    strings.Contains(lower, "italic") || strings.Contains(lower, "oblique"),
		Bold:      strings.Contains(lower, "bold"),
		Data:      body,
	}, true
}
