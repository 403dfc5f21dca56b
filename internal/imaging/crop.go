package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/bmp-tools-mcp/internal/bmp"
)

// PreviewResult contains a PNG rendition of a BMP
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Preview renders the whole image as a base64 PNG, optionally scaled
func Preview(img *bmp.Image, scale float64) (*PreviewResult, error) {
	if img.Width() == 0 || img.Height() == 0 {
		return nil, fmt.Errorf("cannot preview an empty %dx%d image", img.Width(), img.Height())
	}
	return encodePreview(imaging.Clone(img), scale)
}

// Crop renders a rectangular region of the image as a base64 PNG.
// (x1,y1) is inclusive, (x2,y2) exclusive, y = 0 at the top.
func Crop(img *bmp.Image, x1, y1, x2, y2 int, scale float64) (*PreviewResult, error) {
	bounds := img.Bounds()

	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	return encodePreview(imaging.Crop(img, image.Rect(x1, y1, x2, y2)), scale)
}

func encodePreview(m *image.NRGBA, scale float64) (*PreviewResult, error) {
	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(m.Bounds().Dx()) * scale)
		newHeight := int(float64(m.Bounds().Dy()) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("scale %.3f leaves nothing to render", scale)
		}
		m = imaging.Resize(m, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, m); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       m.Bounds().Dx(),
		Height:      m.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
