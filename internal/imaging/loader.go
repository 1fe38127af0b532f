package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// ImageCache provides thread-safe caching of decoded map images to avoid
// redundant disk reads.
//
// The cache stores decoded image.Image objects keyed by their file path. A
// client that reloads the same map (for example after a server-side reset of
// its session) gets the cached copy without disk I/O. Buffers built from a
// cached image are always fresh copies, so sessions never share pixels.
//
// ImageCache is safe for concurrent use by multiple goroutines.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Supported formats are PNG, JPEG and GIF. The image is cached using the exact
// path string provided.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// LoadBuffer loads a map image and converts it into a Buffer.
//
// Parameters:
//   - cache: The image cache to use for loading. Must not be nil.
//   - path: Path to the map image.
//   - width, height: Target size. When both are positive the image is scaled
//     to exactly that size with nearest-neighbor sampling, which keeps region
//     fills flat instead of blending them into their borders. When either is
//     zero or negative the native size is kept.
//
// Returns a buffer owned by the caller.
func LoadBuffer(cache *ImageCache, path string, width, height int) (*Buffer, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	if width > 0 && height > 0 {
		b := img.Bounds()
		if b.Dx() != width || b.Dy() != height {
			img = imaging.Resize(img, width, height, imaging.NearestNeighbor)
		}
	}

	buf := BufferFromImage(img)
	if buf.Width() == 0 || buf.Height() == 0 {
		return nil, fmt.Errorf("image %s has no pixels", path)
	}
	return buf, nil
}

// MapInfo contains metadata about a loaded map file.
type MapInfo struct {
	// Width is the image width in pixels as stored on disk.
	Width int `json:"width"`

	// Height is the image height in pixels as stored on disk.
	Height int `json:"height"`

	// Format is the detected image format: "png", "jpeg", "gif", or "unknown".
	// Detection is based on file extension, not file contents.
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadMapInfo loads an image and returns metadata about it.
func LoadMapInfo(cache *ImageCache, path string) (*MapInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	bounds := img.Bounds()
	return &MapInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}
