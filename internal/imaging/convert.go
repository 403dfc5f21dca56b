package imaging

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/bmp-tools-mcp/internal/bmp"
)

// DefaultJPEGQuality is used by Export when no quality is given.
const DefaultJPEGQuality = 90

// Import reads a PNG, JPEG or GIF file and converts it to a 24-bit BMP image.
//
// EXIF orientation is applied to JPEG input. Transparency is discarded, not
// composited. The result uses the usual bottom-up row order.
func Import(path string, mode bmp.SizeMode) (*bmp.Image, error) {
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	img, err := bmp.FromImage(src, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", path, err)
	}
	return img, nil
}

// Export writes img to path in the format named by the path's extension:
// ".png", ".jpg"/".jpeg" (at the given quality, DefaultJPEGQuality if <= 0)
// or ".bmp".
func Export(img *bmp.Image, path string, quality int) error {
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}

	var enc imgio.Encoder
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		enc = imgio.PNGEncoder()
	case ".jpg", ".jpeg":
		enc = imgio.JPEGEncoder(quality)
	case ".bmp":
		enc = bmp.EncodeImage
	default:
		return fmt.Errorf("unsupported export format: %q", ext)
	}

	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("failed to export image: %w", err)
	}
	return nil
}
