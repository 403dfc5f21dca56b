package bmp

import (
	"fmt"
	"io"
	"math"
	"os"
)

// maxPixels is the largest pixel count whose encoded size fits FileHeader.Size.
const maxPixels = (math.MaxUint32 - HeaderLen) / BytesPerPixel

// SizeMode selects how New computes the two size fields of the headers.
type SizeMode int

const (
	// SizeStrict writes byte-accurate sizes: SizeImage = 3*w*h and
	// Size = 54 + 3*w*h.
	SizeStrict SizeMode = iota

	// SizeLegacy reproduces the historical arithmetic where both fields hold
	// the pixel count plus 54. Files written this way carry wrong size fields
	// but match older output byte for byte.
	SizeLegacy
)

// String returns "strict" or "legacy".
func (m SizeMode) String() string {
	switch m {
	case SizeStrict:
		return "strict"
	case SizeLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("SizeMode(%d)", int(m))
	}
}

// ParseSizeMode maps "strict", "legacy" or "" (strict) to a SizeMode.
func ParseSizeMode(s string) (SizeMode, error) {
	switch s {
	case "", "strict":
		return SizeStrict, nil
	case "legacy":
		return SizeLegacy, nil
	default:
		return 0, fmt.Errorf("unknown size mode: %s", s)
	}
}

// Pixel is one RGBTRIPLE. It encodes as blue, green, red.
type Pixel struct {
	Blue  uint8
	Green uint8
	Red   uint8
}

// Image is a 24-bit BMP held entirely in memory.
//
// For images built by New, FromImage or Decode, len(Pixels) equals
// Width*|Height|. Callers that replace Pixels directly are responsible for
// keeping that invariant; Bytes writes whatever the slice holds.
type Image struct {
	File   FileHeader
	Info   InfoHeader
	Pixels []Pixel
}

// New creates a height x width image with every pixel black and byte-accurate
// header size fields.
//
// Zero dimensions are valid and produce an image with no pixels. Negative
// dimensions, or dimensions too large for the 32-bit size fields, return an
// error wrapping ErrInvalidDimensions.
func New(height, width int) (*Image, error) {
	return NewWithSizing(height, width, SizeStrict)
}

// NewWithSizing is New with an explicit SizeMode for the header size fields.
func NewWithSizing(height, width int, mode SizeMode) (*Image, error) {
	if height < 0 || width < 0 {
		return nil, fmt.Errorf("%w: %dx%d (height x width) must not be negative", ErrInvalidDimensions, height, width)
	}
	if width > math.MaxInt32 || height > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %dx%d (height x width) exceeds the 32-bit dimension fields", ErrInvalidDimensions, height, width)
	}
	count := int64(height) * int64(width)
	if count > maxPixels {
		return nil, fmt.Errorf("%w: %dx%d (height x width) exceeds the 32-bit size fields", ErrInvalidDimensions, height, width)
	}

	fileSize, imageSize, err := sizeFields(count, mode)
	if err != nil {
		return nil, err
	}

	return &Image{
		File: FileHeader{
			Type:    Signature,
			Size:    fileSize,
			OffBits: HeaderLen,
		},
		Info: InfoHeader{
			Size:          InfoHeaderLen,
			Width:         int32(width),
			Height:        int32(height),
			Planes:        planes,
			BitCount:      bitCount,
			Compression:   compressionRGB,
			SizeImage:     imageSize,
			XPelsPerMeter: defaultPelsPerMeter,
			YPelsPerMeter: defaultPelsPerMeter,
		},
		Pixels: make([]Pixel, count),
	}, nil
}

// sizeFields returns the FileHeader.Size and InfoHeader.SizeImage values for
// an image of count pixels.
func sizeFields(count int64, mode SizeMode) (fileSize, imageSize uint32, err error) {
	switch mode {
	case SizeStrict:
		data := uint32(count * BytesPerPixel)
		return data + HeaderLen, data, nil
	case SizeLegacy:
		legacy := uint32(count + HeaderLen)
		return legacy, legacy, nil
	default:
		return 0, 0, fmt.Errorf("unknown size mode: %v", mode)
	}
}

// Width returns the width recorded in the info header.
func (img *Image) Width() int { return int(img.Info.Width) }

// Height returns the absolute height recorded in the info header.
func (img *Image) Height() int {
	if img.Info.Height < 0 {
		return -int(img.Info.Height)
	}
	return int(img.Info.Height)
}

// TopDown reports whether the first stored row is the top of the picture.
func (img *Image) TopDown() bool { return img.Info.Height < 0 }

// Fill overwrites every pixel with the given color. The pixel count and the
// headers are left unchanged.
func (img *Image) Fill(r, g, b uint8) {
	p := Pixel{Blue: b, Green: g, Red: r}
	for i := range img.Pixels {
		img.Pixels[i] = p
	}
}

// EncodedLen returns the number of bytes Bytes will produce.
func (img *Image) EncodedLen() int {
	return HeaderLen + BytesPerPixel*len(img.Pixels)
}

// SizesConsistent reports whether both header size fields hold the
// byte-accurate values for the current pixel count.
func (img *Image) SizesConsistent() bool {
	data := uint64(len(img.Pixels)) * BytesPerPixel
	return uint64(img.Info.SizeImage) == data && uint64(img.File.Size) == data+HeaderLen
}

// Bytes encodes the image: the file header, the info header, then every
// pixel as blue, green, red in slice order. No row padding is written.
func (img *Image) Bytes() []byte {
	b := make([]byte, 0, img.EncodedLen())
	b = img.File.appendTo(b)
	b = img.Info.appendTo(b)
	for _, p := range img.Pixels {
		b = append(b, p.Blue, p.Green, p.Red)
	}
	return b
}

// WriteTo writes the encoded image to w in a single Write call.
func (img *Image) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(img.Bytes())
	return int64(n), err
}

// Save writes the encoded image to path, creating or truncating the file.
func (img *Image) Save(path string) error {
	if err := os.WriteFile(path, img.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write bmp file: %w", err)
	}
	return nil
}
