package bmp

import (
	"fmt"
	"os"
	"strconv"
)

// Decode parses a complete 24-bit BMP file held in data.
//
// The file header is read at offset 0, the info header at offset 14 and the
// pixels from offset 54 to the end of data. Header fields are kept verbatim,
// including reserved and size fields, so Decode(img.Bytes()) reproduces img.
//
// # Errors
//
//   - FormatError if data is shorter than 54 bytes, the signature is not "BM",
//     the width is negative, the pixel region is not a multiple of 3 bytes, or
//     the pixel count differs from width*|height|
//   - UnsupportedError for palettes, compression, other bit depths or header
//     versions
func Decode(data []byte) (*Image, error) {
	if len(data) < HeaderLen {
		return nil, FormatError("file too short: " + strconv.Itoa(len(data)) + " bytes")
	}

	img := &Image{}
	if err := img.File.UnmarshalBinary(data[:FileHeaderLen]); err != nil {
		return nil, err
	}
	if img.File.Type != Signature {
		return nil, FormatError("not a BMP file")
	}
	if err := img.Info.UnmarshalBinary(data[FileHeaderLen:HeaderLen]); err != nil {
		return nil, err
	}
	if err := checkSupported(img.File, img.Info); err != nil {
		return nil, err
	}
	if img.Info.Width < 0 {
		return nil, FormatError("negative width " + strconv.Itoa(int(img.Info.Width)))
	}

	raw := data[HeaderLen:]
	if len(raw)%BytesPerPixel != 0 {
		return nil, FormatError(fmt.Sprintf("pixel data length %d is not a multiple of %d", len(raw), BytesPerPixel))
	}
	count := len(raw) / BytesPerPixel
	if want := int64(img.Width()) * int64(img.Height()); int64(count) != want {
		return nil, FormatError(fmt.Sprintf("pixel count %d does not match %dx%d header", count, img.Info.Width, img.Info.Height))
	}

	img.Pixels = make([]Pixel, count)
	for i := range img.Pixels {
		o := i * BytesPerPixel
		img.Pixels[i] = Pixel{Blue: raw[o], Green: raw[o+1], Red: raw[o+2]}
	}
	return img, nil
}

// Load reads the whole file at path and decodes it.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bmp file: %w", err)
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}
