// Package bmp encodes and decodes uncompressed 24-bit BMP images.
//
// An Image is the in-memory aggregate of the two fixed-layout BMP headers and a
// flat sequence of BGR pixels. Images are created with New (black pixels,
// headers populated) or read back with Load/Decode, filled with a solid color,
// and written with Bytes, WriteTo or Save.
//
// # File Layout
//
// All multi-byte fields are little-endian and written field by field:
//
//	offset  size  field
//	0       14    file header  (signature "BM", file size, reserved, pixel offset)
//	14      40    info header  (header size, width, height, planes, bpp, ...)
//	54      3*N   pixel data   (blue, green, red per pixel, in stored order)
//
// Pixel data always starts at byte 54 because this format carries no palette.
// Rows are not padded to 4-byte boundaries, so files are only readable by
// other decoders when 3*width is a multiple of 4.
//
// # Row Order
//
// The codec never reorders pixels: Bytes writes them in slice order and Decode
// returns them in file order. The image.Image view (At, Set, FromImage) applies
// the usual BMP convention, where a positive height means the first stored row
// is the bottom row of the picture.
//
// # Size Fields
//
// The file-size and image-size header fields are filled according to a
// SizeMode. SizeStrict writes byte-accurate values. SizeLegacy reproduces the
// historical arithmetic (pixel count plus 54 in both fields) so that output can
// match existing files byte for byte. Decode preserves whatever the file holds;
// use SizesConsistent to check.
//
// # Error Handling
//
// No function in this package panics or exits on bad input:
//   - I/O failures are returned wrapped with context (errors.As reaches *fs.PathError)
//   - Structurally broken input returns a FormatError
//   - Valid BMP features this codec does not implement return an UnsupportedError
//   - Negative or oversized dimensions return an error wrapping ErrInvalidDimensions
package bmp
