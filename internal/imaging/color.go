package imaging

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/bmp-tools-mcp/internal/bmp"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB RGBColor `json:"rgb"` // RGB components
	HSL HSLColor `json:"hsl"` // HSL representation
}

var namedColors = map[string]RGBColor{
	"black":   {0, 0, 0},
	"white":   {255, 255, 255},
	"red":     {255, 0, 0},
	"green":   {0, 255, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"gray":    {128, 128, 128},
}

// ParseColor parses a fill color.
//
// Accepted forms:
//   - Hex with or without the leading '#': "#FF8800", "ff8800", "#f80"
//   - Basic names: black, white, red, green, blue, yellow, cyan, magenta, gray
//
// An empty string is black.
func ParseColor(s string) (RGBColor, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return RGBColor{}, nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGBColor{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGBColor{R: r, G: g, B: b}, nil
}

func newColorResult(r, g, b uint8) ColorResult {
	h, s, l := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hsl()
	return ColorResult{
		Hex: fmt.Sprintf("#%02X%02X%02X", r, g, b),
		RGB: RGBColor{R: r, G: g, B: b},
		HSL: HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}
}

// SampleColor returns the color at (x, y), with y = 0 at the top of the picture.
//
// Returns an error if the coordinates are outside the image bounds.
func SampleColor(img *bmp.Image, x, y int) (*ColorResult, error) {
	p, err := img.PixelAt(x, y)
	if err != nil {
		return nil, err
	}
	c := newColorResult(p.Red, p.Green, p.Blue)
	return &c, nil
}

// ColorCount is one distinct pixel color and how much of the image it covers.
type ColorCount struct {
	Color      ColorResult `json:"color"`
	Pixels     int         `json:"pixels"`
	Percentage float64     `json:"percentage"` // 0-100
}

// ColorsResult lists distinct colors, most frequent first.
type ColorsResult struct {
	Distinct int          `json:"distinct"`
	Colors   []ColorCount `json:"colors"`
}

// CountColors tallies the exact stored colors of an image and returns the
// limit most frequent ones (all of them when limit <= 0). A freshly filled
// image reports a single color covering 100%.
func CountColors(img *bmp.Image, limit int) *ColorsResult {
	counts := make(map[bmp.Pixel]int)
	for _, p := range img.Pixels {
		counts[p]++
	}

	colors := make([]ColorCount, 0, len(counts))
	for p, n := range counts {
		colors = append(colors, ColorCount{
			Color:      newColorResult(p.Red, p.Green, p.Blue),
			Pixels:     n,
			Percentage: float64(n) / float64(len(img.Pixels)) * 100,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Pixels != colors[j].Pixels {
			return colors[i].Pixels > colors[j].Pixels
		}
		return colors[i].Color.Hex < colors[j].Color.Hex
	})

	result := &ColorsResult{Distinct: len(colors)}
	if limit > 0 && len(colors) > limit {
		colors = colors[:limit]
	}
	result.Colors = colors
	return result
}
