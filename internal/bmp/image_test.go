package bmp

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Headers(t *testing.T) {
	img, err := New(3, 5)
	require.NoError(t, err)

	assert.Equal(t, FileHeader{
		Type:    0x4D42,
		Size:    54 + 3*15,
		OffBits: 54,
	}, img.File)
	assert.Equal(t, InfoHeader{
		Size:          40,
		Width:         5,
		Height:        3,
		Planes:        1,
		BitCount:      24,
		SizeImage:     3 * 15,
		XPelsPerMeter: 30,
		YPelsPerMeter: 30,
	}, img.Info)

	require.Len(t, img.Pixels, 15)
	for i, p := range img.Pixels {
		assert.Equal(t, Pixel{}, p, "pixel %d not black", i)
	}
	assert.True(t, img.SizesConsistent())
}

func TestNewWithSizing_Legacy(t *testing.T) {
	img, err := NewWithSizing(3, 5, SizeLegacy)
	require.NoError(t, err)

	assert.Equal(t, uint32(15+54), img.File.Size)
	assert.Equal(t, uint32(15+54), img.Info.SizeImage)
	assert.False(t, img.SizesConsistent(), "legacy size fields should be flagged as inconsistent")
}

func TestNew_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		height, width int
	}{
		{"negative height", -1, 4},
		{"negative width", 4, -1},
		{"both negative", -2, -2},
		{"size field overflow", math.MaxInt32, math.MaxInt32},
		{"width beyond int32", 1, math.MaxInt32 + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := New(tt.height, tt.width)
			assert.Nil(t, img)
			assert.ErrorIs(t, err, ErrInvalidDimensions)
		})
	}
}

func TestNewWithSizing_UnknownMode(t *testing.T) {
	_, err := NewWithSizing(1, 1, SizeMode(7))
	assert.Error(t, err)
}

func TestNew_ZeroDimensions(t *testing.T) {
	img, err := New(0, 0)
	require.NoError(t, err)

	assert.Empty(t, img.Pixels)
	assert.Len(t, img.Bytes(), 54)
	assert.Equal(t, uint32(54), img.File.Size)
	assert.Equal(t, uint32(0), img.Info.SizeImage)

	legacy, err := NewWithSizing(0, 0, SizeLegacy)
	require.NoError(t, err)
	assert.Len(t, legacy.Bytes(), 54)
	assert.Equal(t, uint32(54), legacy.File.Size)
}

func TestFill(t *testing.T) {
	img, err := New(4, 7)
	require.NoError(t, err)
	before := *img

	img.Fill(10, 20, 30)

	require.Len(t, img.Pixels, 28)
	for i, p := range img.Pixels {
		assert.Equal(t, Pixel{Blue: 30, Green: 20, Red: 10}, p, "pixel %d", i)
	}
	assert.Equal(t, before.File, img.File)
	assert.Equal(t, before.Info, img.Info)
}

func TestBytes_Length(t *testing.T) {
	dims := [][2]int{{1, 1}, {2, 3}, {3, 2}, {10, 10}, {1, 33}}
	for _, d := range dims {
		img, err := New(d[0], d[1])
		require.NoError(t, err)
		assert.Len(t, img.Bytes(), 54+3*d[0]*d[1])
		assert.Equal(t, len(img.Bytes()), img.EncodedLen())
	}
}

func TestBytes_RedTwoByTwo(t *testing.T) {
	headerWithSize := func(size byte) []byte {
		return []byte{
			0x42, 0x4D, size, 0, 0, 0, 0, 0, 0, 0, 54, 0, 0, 0,
			40, 0, 0, 0, 2, 0, 0, 0, 2, 0, 0, 0, 1, 0, 24, 0, 0, 0, 0, 0,
		}
	}
	tail := []byte{30, 0, 0, 0, 30, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	red := bytes.Repeat([]byte{0, 0, 255}, 4)

	tests := []struct {
		name      string
		mode      SizeMode
		fileSize  byte
		imageSize byte
	}{
		{"strict", SizeStrict, 66, 12},
		{"legacy", SizeLegacy, 58, 58},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewWithSizing(2, 2, tt.mode)
			require.NoError(t, err)
			img.Fill(255, 0, 0)

			var want []byte
			want = append(want, headerWithSize(tt.fileSize)...)
			want = append(want, tt.imageSize, 0, 0, 0)
			want = append(want, tail...)
			want = append(want, red...)

			assert.Equal(t, want, img.Bytes())
		})
	}
}

func TestWriteTo(t *testing.T) {
	img, err := New(2, 3)
	require.NoError(t, err)
	img.Fill(1, 2, 3)

	var buf bytes.Buffer
	n, err := img.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(img.EncodedLen()), n)
	assert.Equal(t, img.Bytes(), buf.Bytes())
}

func TestSave_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bmp")

	img, err := New(5, 4)
	require.NoError(t, err)
	img.Fill(200, 100, 50)
	require.NoError(t, img.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, img.Bytes(), data)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, img, loaded)
}

func TestSave_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bmp")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0xAA}, 4096), 0o644))

	img, err := New(1, 1)
	require.NoError(t, err)
	require.NoError(t, img.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(57), info.Size())
}

func TestSave_BadPath(t *testing.T) {
	img, err := New(1, 1)
	require.NoError(t, err)

	err = img.Save(filepath.Join(t.TempDir(), "missing", "dir", "out.bmp"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseSizeMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SizeMode
		wantErr bool
	}{
		{"", SizeStrict, false},
		{"strict", SizeStrict, false},
		{"legacy", SizeLegacy, false},
		{"exact", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseSizeMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, got, mustParse(t, got.String()))
	}
}

func mustParse(t *testing.T, s string) SizeMode {
	t.Helper()
	m, err := ParseSizeMode(s)
	require.NoError(t, err)
	return m
}
