package pipeline

import "github.com/foliocraft/htmlbook/html/parse"

// Config configures a single LoadDocument/LoadURL call. The zero value
// reproduces this module's built-in defaults: A4, 16px root font, quirks
// mode decided from the document's own DOCTYPE, and the WHATWG-specified
// adoption-agency iteration cap.
type Config struct {
	// PageSize names an entry in PageSizes ("A4" if empty).
	PageSize string

	// BaseFontSizePx is the root element's font-size in the absence of
	// an explicit one (16 if zero).
	BaseFontSizePx float64

	// ForceQuirksMode, if non-nil, overrides the DOCTYPE-sniffed quirks
	// mode the tree builder would otherwise decide.
	ForceQuirksMode *bool

	// MaxAdoptionAgencyIterations bounds html/parse's adoption agency
	// outer loop (8 if zero, the WHATWG-specified cap).
	MaxAdoptionAgencyIterations int
}

func (c Config) parserOptions() parse.Options {
	return parse.Options{MaxAdoptionAgencyIterations: c.MaxAdoptionAgencyIterations}
}

func (c Config) pageSize() (widthPx, heightPx float64) {
	name := c.PageSize
	if name == "" {
		name = "A4"
	}
	size, ok := PageSizes[name]
	if !ok {
		size = PageSizes["A4"]
	}
	return size.WidthPx, size.HeightPx
}

func (c Config) baseFontSizePx() float64 {
	if c.BaseFontSizePx > 0 {
		return c.BaseFontSizePx
	}
	return 16
}
