package resource

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/webp"
)

// Image is a decoded raster image, sized in pixels; rasterization beyond
// this (resampling, color conversion) belongs to the downstream painter.
type Image struct {
	MimeType string
	Width    int
	Height   int
	Img      image.Image
}

// decodeImage decodes body as a raster image, sniffing its MIME type via
// github.com/h2non/filetype when mimeType isn't one image.Decode already
// has a registered codec for. Decode failure reports ok=false rather than
// an error, so the caller can install a negative cache entry.
func decodeImage(mimeType string, body []byte) (*Image, bool) {
	if !registeredImageMIME(mimeType) {
		if kind, err := filetype.Match(body); err == nil && kind != filetype.Unknown {
			mimeType = kind.MIME.Value
		}
	}
	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, false
	}
	b := img.Bounds()
	return &Image{MimeType: mimeType, Width: b.Dx(), Height: b.Dy(), Img: img}, true
}

func registeredImageMIME(mimeType string) bool {
	switch mimeType {
	case "image/png", "image/jpeg", "image/gif", "image/webp":
		return true
	}
	return false
}
