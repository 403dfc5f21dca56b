// Package server implements the MCP (Model Context Protocol) server for the
// BMP tools.
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line on stdin and
// one response per line on stdout. Supported methods are initialize,
// tools/list, tools/call and ping. Notifications get no response and lines
// that are not valid JSON are logged and skipped.
//
// # Available Tools
//
// Codec:
//   - bmp_create: Create a solid-color 24-bit BMP and write it to disk
//   - bmp_fill: Refill an existing BMP with one color
//   - bmp_load: Load a BMP and report its header fields
//   - bmp_encode: Return the encoded bytes as base64
//
// Inspection:
//   - bmp_sample_color: Get the color at a pixel
//   - bmp_colors: List distinct colors by frequency
//   - bmp_preview: Render the image as PNG
//   - bmp_crop: Render a region as PNG
//   - bmp_grid: Render with a labelled coordinate grid
//   - bmp_compare: Compare pixels and headers of two BMPs
//
// Conversion:
//   - bmp_import: Convert PNG, JPEG or GIF to BMP
//   - bmp_export: Write a BMP as PNG, JPEG or BMP
//
// Batch:
//   - bmp_render_jobs: Render every image in a YAML jobs file
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the process. Tools
// that write a BMP store the written image in the cache; bmp_load always
// re-reads the file.
//
// # Error Handling
//
// Tool failures are returned as JSON-RPC errors with code -32000 and the Go
// error string in data. Malformed arguments give -32602 and unknown methods
// -32601.
package server
