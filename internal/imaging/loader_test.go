package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestImage encodes img as PNG into the test's temp dir and returns its path.
func writeTestImage(t *testing.T, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	require.NotNil(t, cache)
	require.NotNil(t, cache.images)
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	path := writeTestImage(t, "map.png", createPatternImage(40, 30))

	img1, err := cache.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40, img1.Bounds().Dx())

	img2, err := cache.Load(path)
	require.NoError(t, err)
	assert.True(t, img1 == img2, "second Load did not return cached image")
}

func TestImageCache_Load_Errors(t *testing.T) {
	cache := NewImageCache()

	_, err := cache.Load("/nonexistent/path/to/map.png")
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = cache.Load(bad)
	assert.Error(t, err)
}

func TestImageCache_EvictAndClear(t *testing.T) {
	cache := NewImageCache()
	path := writeTestImage(t, "map.png", createPatternImage(8, 8))

	_, err := cache.Load(path)
	require.NoError(t, err)
	cache.Evict(path)
	assert.Empty(t, cache.images)

	_, err = cache.Load(path)
	require.NoError(t, err)
	cache.Clear()
	assert.Empty(t, cache.images)
}

func TestImageCache_Concurrent(t *testing.T) {
	cache := NewImageCache()
	path := writeTestImage(t, "map.png", createPatternImage(16, 16))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Load(path)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestLoadBuffer_NativeSize(t *testing.T) {
	cache := NewImageCache()
	path := writeTestImage(t, "map.png", createPatternImage(40, 30))

	buf, err := LoadBuffer(cache, path, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 40, buf.Width())
	assert.Equal(t, 30, buf.Height())
}

func TestLoadBuffer_Resized(t *testing.T) {
	cache := NewImageCache()
	path := writeTestImage(t, "map.png", createPatternImage(40, 30))

	buf, err := LoadBuffer(cache, path, 80, 60)
	require.NoError(t, err)
	assert.Equal(t, 80, buf.Width())
	assert.Equal(t, 60, buf.Height())

	// Nearest-neighbor keeps quadrant colors pure
	c, err := buf.At(Point{X: 5, Y: 5})
	require.NoError(t, err)
	assert.Equal(t, RGB(255, 0, 0), c)
	c, err = buf.At(Point{X: 75, Y: 55})
	require.NoError(t, err)
	assert.Equal(t, RGB(255, 255, 255), c)
}

func TestLoadBuffer_FreshCopies(t *testing.T) {
	cache := NewImageCache()
	path := writeTestImage(t, "map.png", createPatternImage(8, 8))

	a, err := LoadBuffer(cache, path, 0, 0)
	require.NoError(t, err)
	b, err := LoadBuffer(cache, path, 0, 0)
	require.NoError(t, err)

	require.NoError(t, a.Set(Point{X: 0, Y: 0}, RGB(1, 1, 1)))
	c, err := b.At(Point{X: 0, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, RGB(255, 0, 0), c)
}

func TestLoadMapInfo(t *testing.T) {
	cache := NewImageCache()
	img := image.NewGray(image.Rect(0, 0, 12, 7))
	img.SetGray(0, 0, color.Gray{Y: 200})
	path := writeTestImage(t, "gray.png", img)

	info, err := LoadMapInfo(cache, path)
	require.NoError(t, err)
	assert.Equal(t, 12, info.Width)
	assert.Equal(t, 7, info.Height)
	assert.Equal(t, "png", info.Format)
	assert.Positive(t, info.FileSizeBytes)
}
