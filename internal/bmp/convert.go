package bmp

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
)

var _ image.Image = (*Image)(nil)

// ColorModel returns color.RGBAModel. Every pixel is opaque.
func (img *Image) ColorModel() color.Model { return color.RGBAModel }

// Bounds returns (0,0)-(width,|height|).
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width(), img.Height())
}

// At returns the color at (x, y) with y = 0 at the top of the picture.
// Points outside the bounds are transparent black.
func (img *Image) At(x, y int) color.Color {
	i, ok := img.index(x, y)
	if !ok {
		return color.RGBA{}
	}
	p := img.Pixels[i]
	return color.RGBA{R: p.Red, G: p.Green, B: p.Blue, A: 0xff}
}

// PixelAt returns the stored pixel at (x, y) with y = 0 at the top of the picture.
func (img *Image) PixelAt(x, y int) (Pixel, error) {
	i, ok := img.index(x, y)
	if !ok {
		return Pixel{}, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}
	return img.Pixels[i], nil
}

// Set stores c at (x, y), dropping alpha. Points outside the bounds are ignored.
func (img *Image) Set(x, y int, c color.Color) {
	i, ok := img.index(x, y)
	if !ok {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	img.Pixels[i] = Pixel{Blue: n.B, Green: n.G, Red: n.R}
}

// index maps picture coordinates to a position in Pixels, flipping rows for
// bottom-up images.
func (img *Image) index(x, y int) (int, bool) {
	w, h := img.Width(), img.Height()
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0, false
	}
	row := y
	if !img.TopDown() {
		row = h - 1 - y
	}
	i := row*w + x
	if i >= len(img.Pixels) {
		return 0, false
	}
	return i, true
}

// FromImage converts m into a bottom-up 24-bit image. Alpha is discarded
// without compositing.
func FromImage(m image.Image, mode SizeMode) (*Image, error) {
	src := imaging.Clone(m)
	b := src.Bounds()
	img, err := NewWithSizing(b.Dy(), b.Dx(), mode)
	if err != nil {
		return nil, err
	}

	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		base := (h - 1 - y) * w
		for x := 0; x < w; x++ {
			img.Pixels[base+x] = Pixel{Blue: row[x*4+2], Green: row[x*4+1], Red: row[x*4]}
		}
	}
	return img, nil
}

// EncodeImage writes m to w as a 24-bit BMP with byte-accurate size fields.
// An *Image is written as is; anything else goes through FromImage.
func EncodeImage(w io.Writer, m image.Image) error {
	img, ok := m.(*Image)
	if !ok {
		var err error
		if img, err = FromImage(m, SizeStrict); err != nil {
			return err
		}
	}
	_, err := img.WriteTo(w)
	return err
}
