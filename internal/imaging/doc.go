// Package imaging provides the image operations the MCP server runs on top of
// the BMP codec.
//
// It wraps internal/bmp with a path-keyed cache, color parsing and sampling,
// PNG previews and coordinate grids, pixel comparison, and conversion to and
// from other image formats.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with (0,0) at the top-left
// corner of the picture, regardless of how rows are stored in the file:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Cached images are shared,
// so callers that mutate one must write it back with Store or drop it with Evict.
//
// # Colors
//
// Fill colors are parsed by ParseColor from hex ("#RRGGBB", "#RGB") or a small
// set of names. Sampled colors are reported as hex, RGB and HSL.
//
// # Conversion
//
// Import reads PNG, JPEG or GIF files and produces a 24-bit bottom-up BMP image.
// Export writes a BMP image as PNG, JPEG or BMP based on the target extension.
package imaging
