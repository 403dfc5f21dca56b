package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/bmp-tools-mcp/internal/bmp"
)

// DefaultGridColor is drawn when no grid color is given.
const DefaultGridColor = "#FF0000"

// GridResult is a PNG rendering with a coordinate grid drawn over it
type GridResult struct {
	PreviewResult
	GridSpacing int `json:"grid_spacing"`
}

// Grid renders the image as a PNG with a line every spacing pixels.
//
// Coordinates are picture coordinates with (0,0) at the top-left, so the
// labels read the same for bottom-up and top-down files.
func Grid(img *bmp.Image, spacing int, showCoordinates bool, gridColor string) (*GridResult, error) {
	if img.Width() == 0 || img.Height() == 0 {
		return nil, fmt.Errorf("cannot draw a grid on an empty %dx%d image", img.Width(), img.Height())
	}
	if spacing < 1 {
		return nil, fmt.Errorf("grid spacing must be positive, got %d", spacing)
	}
	if gridColor == "" {
		gridColor = DefaultGridColor
	}
	c, err := ParseColor(gridColor)
	if err != nil {
		return nil, err
	}

	m := imaging.Clone(img)
	line := color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
	width, height := m.Bounds().Dx(), m.Bounds().Dy()

	for x := spacing; x < width; x += spacing {
		for y := 0; y < height; y++ {
			m.SetNRGBA(x, y, line)
		}
	}
	for y := spacing; y < height; y += spacing {
		for x := 0; x < width; x++ {
			m.SetNRGBA(x, y, line)
		}
	}

	if showCoordinates {
		for y := spacing; y < height; y += spacing {
			for x := spacing; x < width; x += spacing {
				drawLabel(m, x+2, y+2, fmt.Sprintf("%d,%d", x, y))
			}
		}
	}

	preview, err := encodePreview(m, 1.0)
	if err != nil {
		return nil, err
	}
	return &GridResult{PreviewResult: *preview, GridSpacing: spacing}, nil
}

// drawLabel writes text in white on a translucent black box whose top-left
// corner is (x, y). Anything outside the image is clipped.
func drawLabel(m *image.NRGBA, x, y int, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  m,
		Src:  image.NewUniform(color.White),
		Face: face,
	}

	box := image.Rect(x, y, x+d.MeasureString(text).Ceil()+2, y+face.Height+2)
	draw.Draw(m, box.Intersect(m.Bounds()), image.NewUniform(color.NRGBA{A: 180}), image.Point{}, draw.Over)

	d.Dot = fixed.P(x+1, y+1+face.Ascent)
	d.DrawString(text)
}
