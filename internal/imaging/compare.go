package imaging

import (
	"math"

	"github.com/ironsheep/bmp-tools-mcp/internal/bmp"
)

// Size is a width and height in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CompareResult describes how two BMP images differ.
type CompareResult struct {
	// Identical is true when both images have the same size and every pixel
	// matches. Header differences do not count.
	Identical bool `json:"identical"`

	SameSize bool `json:"same_size"`
	Size1    Size `json:"size1"`
	Size2    Size `json:"size2"`

	// HeadersEqual compares every header field, reserved words included.
	HeadersEqual bool `json:"headers_equal"`

	// SizeFieldsDiffer is set when the file size or image size fields differ,
	// as they do between strict and legacy output of one picture.
	SizeFieldsDiffer bool `json:"size_fields_differ"`

	// Pixel statistics cover the overlapping top-left region.
	TotalPixels      int     `json:"total_pixels"`
	PixelsDifferent  int     `json:"pixels_different"`
	MaxChannelDiff   int     `json:"max_channel_diff"`
	AverageColorDiff float64 `json:"average_color_diff"`
	SimilarityScore  float64 `json:"similarity_score"`
}

// Compare compares two images pixel by pixel in picture coordinates, so a
// bottom-up file and a top-down file showing the same picture are identical.
func Compare(a, b *bmp.Image) *CompareResult {
	result := &CompareResult{
		Size1:        Size{Width: a.Width(), Height: a.Height()},
		Size2:        Size{Width: b.Width(), Height: b.Height()},
		HeadersEqual: a.File == b.File && a.Info == b.Info,
		SizeFieldsDiffer: a.File.Size != b.File.Size ||
			a.Info.SizeImage != b.Info.SizeImage,
	}
	result.SameSize = result.Size1 == result.Size2

	minW := min(a.Width(), b.Width())
	minH := min(a.Height(), b.Height())
	result.TotalPixels = minW * minH

	var totalDiff float64
	for y := 0; y < minH; y++ {
		for x := 0; x < minW; x++ {
			p1, _ := a.PixelAt(x, y)
			p2, _ := b.PixelAt(x, y)
			if p1 == p2 {
				continue
			}
			result.PixelsDifferent++

			dr := absDiff(p1.Red, p2.Red)
			dg := absDiff(p1.Green, p2.Green)
			db := absDiff(p1.Blue, p2.Blue)
			result.MaxChannelDiff = max(result.MaxChannelDiff, dr, dg, db)
			totalDiff += float64(dr+dg+db) / 3.0
		}
	}

	result.Identical = result.SameSize && result.PixelsDifferent == 0
	result.SimilarityScore = 1.0
	if result.TotalPixels > 0 {
		result.SimilarityScore = math.Round((1.0-float64(result.PixelsDifferent)/float64(result.TotalPixels))*1000) / 1000
		result.AverageColorDiff = math.Round(totalDiff/float64(result.TotalPixels)*100) / 100
	}
	return result
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
