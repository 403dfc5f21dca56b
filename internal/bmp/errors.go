package bmp

import "errors"

// ErrInvalidDimensions is returned when an image is requested with negative
// dimensions or with dimensions whose encoded size does not fit the 32-bit
// header size fields.
var ErrInvalidDimensions = errors.New("bmp: invalid dimensions")

// FormatError reports that the input is not a well-formed 24-bit BMP.
type FormatError string

func (e FormatError) Error() string { return "bmp: invalid format: " + string(e) }

// UnsupportedError reports that the input uses a valid but unimplemented BMP feature.
type UnsupportedError string

func (e UnsupportedError) Error() string { return "bmp: unsupported feature: " + string(e) }
