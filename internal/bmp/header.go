package bmp

import (
	"encoding/binary"
	"strconv"
)

const (
	// Signature is "BM" read as a little-endian 16-bit value.
	Signature uint16 = 0x4D42

	// FileHeaderLen is the encoded size of FileHeader.
	FileHeaderLen = 14

	// InfoHeaderLen is the encoded size of InfoHeader.
	InfoHeaderLen = 40

	// HeaderLen is the offset of the first pixel byte.
	HeaderLen = FileHeaderLen + InfoHeaderLen

	// BytesPerPixel is the encoded size of a Pixel.
	BytesPerPixel = 3

	bitCount       = 24
	planes         = 1
	compressionRGB = 0

	// Resolution written by New, in pixels per meter.
	defaultPelsPerMeter = 30
)

// FileHeader is the 14-byte BITMAPFILEHEADER record.
//
// Fields are declared in file order and encode without padding.
type FileHeader struct {
	Type      uint16 // Signature, always 0x4D42 ("BM")
	Size      uint32 // Total file size in bytes (see SizeMode)
	Reserved1 uint16 // Written as stored, 0 for new images
	Reserved2 uint16 // Written as stored, 0 for new images
	OffBits   uint32 // Offset of the pixel data, always 54
}

// InfoHeader is the 40-byte BITMAPINFOHEADER record.
type InfoHeader struct {
	Size          uint32 // Header size, always 40
	Width         int32  // Width in pixels
	Height        int32  // Height in pixels, positive means bottom-up rows
	Planes        uint16 // Color planes, always 1
	BitCount      uint16 // Bits per pixel, always 24
	Compression   uint32 // Compression method, always 0 (none)
	SizeImage     uint32 // Pixel data size in bytes (see SizeMode)
	XPelsPerMeter int32  // Horizontal resolution
	YPelsPerMeter int32  // Vertical resolution
	ClrUsed       uint32 // Palette entries used, always 0
	ClrImportant  uint32 // Important palette entries, always 0
}

// MarshalBinary returns the 14-byte little-endian encoding of h.
func (h FileHeader) MarshalBinary() ([]byte, error) {
	return h.appendTo(make([]byte, 0, FileHeaderLen)), nil
}

// UnmarshalBinary decodes the first 14 bytes of b into h.
func (h *FileHeader) UnmarshalBinary(b []byte) error {
	if len(b) < FileHeaderLen {
		return FormatError("file header too short: " + strconv.Itoa(len(b)) + " bytes")
	}
	le := binary.LittleEndian
	h.Type = le.Uint16(b[0:])
	h.Size = le.Uint32(b[2:])
	h.Reserved1 = le.Uint16(b[6:])
	h.Reserved2 = le.Uint16(b[8:])
	h.OffBits = le.Uint32(b[10:])
	return nil
}

func (h FileHeader) appendTo(b []byte) []byte {
	le := binary.LittleEndian
	b = le.AppendUint16(b, h.Type)
	b = le.AppendUint32(b, h.Size)
	b = le.AppendUint16(b, h.Reserved1)
	b = le.AppendUint16(b, h.Reserved2)
	b = le.AppendUint32(b, h.OffBits)
	return b
}

// MarshalBinary returns the 40-byte little-endian encoding of h.
func (h InfoHeader) MarshalBinary() ([]byte, error) {
	return h.appendTo(make([]byte, 0, InfoHeaderLen)), nil
}

// UnmarshalBinary decodes the first 40 bytes of b into h.
func (h *InfoHeader) UnmarshalBinary(b []byte) error {
	if len(b) < InfoHeaderLen {
		return FormatError("info header too short: " + strconv.Itoa(len(b)) + " bytes")
	}
	le := binary.LittleEndian
	h.Size = le.Uint32(b[0:])
	h.Width = int32(le.Uint32(b[4:]))
	h.Height = int32(le.Uint32(b[8:]))
	h.Planes = le.Uint16(b[12:])
	h.BitCount = le.Uint16(b[14:])
	h.Compression = le.Uint32(b[16:])
	h.SizeImage = le.Uint32(b[20:])
	h.XPelsPerMeter = int32(le.Uint32(b[24:]))
	h.YPelsPerMeter = int32(le.Uint32(b[28:]))
	h.ClrUsed = le.Uint32(b[32:])
	h.ClrImportant = le.Uint32(b[36:])
	return nil
}

func (h InfoHeader) appendTo(b []byte) []byte {
	le := binary.LittleEndian
	b = le.AppendUint32(b, h.Size)
	b = le.AppendUint32(b, uint32(h.Width))
	b = le.AppendUint32(b, uint32(h.Height))
	b = le.AppendUint16(b, h.Planes)
	b = le.AppendUint16(b, h.BitCount)
	b = le.AppendUint32(b, h.Compression)
	b = le.AppendUint32(b, h.SizeImage)
	b = le.AppendUint32(b, uint32(h.XPelsPerMeter))
	b = le.AppendUint32(b, uint32(h.YPelsPerMeter))
	b = le.AppendUint32(b, h.ClrUsed)
	b = le.AppendUint32(b, h.ClrImportant)
	return b
}

// checkSupported rejects headers describing BMP variants this codec does not read.
func checkSupported(fh FileHeader, ih InfoHeader) error {
	switch {
	case ih.Size != InfoHeaderLen:
		return UnsupportedError("DIB header size " + strconv.FormatUint(uint64(ih.Size), 10))
	case ih.Planes != planes:
		return UnsupportedError("color planes " + strconv.Itoa(int(ih.Planes)))
	case ih.BitCount != bitCount:
		return UnsupportedError("bit depth " + strconv.Itoa(int(ih.BitCount)))
	case ih.Compression != compressionRGB:
		return UnsupportedError("compression " + strconv.FormatUint(uint64(ih.Compression), 10))
	case fh.OffBits != HeaderLen:
		return UnsupportedError("pixel data offset " + strconv.FormatUint(uint64(fh.OffBits), 10))
	}
	return nil
}
