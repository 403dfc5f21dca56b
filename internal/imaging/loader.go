package imaging

import (
	"fmt"
	"os"
	"sync"

	"github.com/ironsheep/bmp-tools-mcp/internal/bmp"
)

// ImageCache provides thread-safe caching of decoded BMP images to avoid redundant disk reads.
//
// The cache stores *bmp.Image values keyed by their file path. Once an image is
// loaded, subsequent Load() calls for the same path return the cached copy without
// disk I/O. Tools that rewrite a file call Store() so the cache matches the disk.
//
// ImageCache is safe for concurrent use by multiple goroutines. The images it
// hands out are shared, so callers that mutate one must Store() it back (or
// Evict() the path) before other callers rely on it.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/image.bmp")
//	if err != nil {
//	    return err
//	}
//	img.Fill(255, 0, 0)
//	if err := img.Save("/path/to/image.bmp"); err != nil {
//	    return err
//	}
//	cache.Store("/path/to/image.bmp", img)
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*bmp.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*bmp.Image),
	}
}

// Load retrieves an image from the cache or reads and decodes it from disk.
//
// The file must be a 24-bit uncompressed BMP. Structural problems are reported
// as bmp.FormatError or bmp.UnsupportedError wrapped with the path.
func (c *ImageCache) Load(path string) (*bmp.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := bmp.Load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Store records img as the current content of path.
func (c *ImageCache) Store(path string, img *bmp.Image) {
	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*bmp.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo describes a BMP file: its headers as stored and a few derived facts.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the absolute image height in pixels.
	Height int `json:"height"`

	// TopDown is true when the header height is negative.
	TopDown bool `json:"top_down"`

	// PixelCount is the number of stored pixels (Width × Height).
	PixelCount int `json:"pixel_count"`

	// HeaderFileSize is the file size recorded in the file header.
	HeaderFileSize uint32 `json:"header_file_size"`

	// HeaderImageSize is the pixel data size recorded in the info header.
	HeaderImageSize uint32 `json:"header_image_size"`

	// SizeFieldsConsistent is false for files written with legacy size arithmetic.
	SizeFieldsConsistent bool `json:"size_fields_consistent"`

	// XPelsPerMeter and YPelsPerMeter are the stored resolution fields.
	XPelsPerMeter int32 `json:"x_pels_per_meter"`
	YPelsPerMeter int32 `json:"y_pels_per_meter"`

	// FileSizeBytes is the size of the file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads a BMP into the cache (if not already cached) and reports
// its header fields together with the actual size of the file on disk.
//
// Comparing HeaderFileSize with FileSizeBytes shows whether the file was
// written with legacy size arithmetic.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	info := Describe(img)
	info.FileSizeBytes = stat.Size()
	return info, nil
}

// Describe reports the header fields of an in-memory image. FileSizeBytes is
// the encoded length.
func Describe(img *bmp.Image) *ImageInfo {
	return &ImageInfo{
		Width:                img.Width(),
		Height:               img.Height(),
		TopDown:              img.TopDown(),
		PixelCount:           len(img.Pixels),
		HeaderFileSize:       img.File.Size,
		HeaderImageSize:      img.Info.SizeImage,
		SizeFieldsConsistent: img.SizesConsistent(),
		XPelsPerMeter:        img.Info.XPelsPerMeter,
		YPelsPerMeter:        img.Info.YPelsPerMeter,
		FileSizeBytes:        int64(img.EncodedLen()),
	}
}
