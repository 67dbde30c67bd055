package posters

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/watchvaultapp/watchvault-server/internal/errors"
)

// testPNG renders a small gradient so BlurHash has something to encode.
func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 100, 150))
	for y := 0; y < 150; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 2), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestCache(t *testing.T) (*Cache, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	pngData := testPNG(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/w185/missing.jpg" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(pngData)
	}))
	t.Cleanup(srv.Close)

	cache, err := NewCache(t.TempDir(), srv.URL, nil)
	require.NoError(t, err)
	return cache, &hits
}

func TestGet_FetchesOnceThenServesFromDisk(t *testing.T) {
	cache, hits := newTestCache(t)

	first, err := cache.Get(context.Background(), "medium", "/poster.png")
	require.NoError(t, err)
	assert.NotEmpty(t, first)
	assert.Equal(t, int64(1), hits.Load())

	second, err := cache.Get(context.Background(), "medium", "/poster.png")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), hits.Load())
}

func TestGet_SizesAreCachedSeparately(t *testing.T) {
	cache, hits := newTestCache(t)

	_, err := cache.Get(context.Background(), "small", "/poster.png")
	require.NoError(t, err)
	_, err = cache.Get(context.Background(), "large", "/poster.png")
	require.NoError(t, err)

	assert.Equal(t, int64(2), hits.Load())
}

func TestGet_UnknownSize(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.Get(context.Background(), "gigantic", "/poster.png")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestGet_RejectsTraversalPaths(t *testing.T) {
	cache, hits := newTestCache(t)

	for _, p := range []string{"../etc/passwd", "a/b.jpg", "..%2fescape.jpg", "noext"} {
		_, err := cache.Get(context.Background(), "small", p)
		assert.True(t, apperrors.Is(err, apperrors.ErrValidation), "path %q", p)
	}
	assert.Zero(t, hits.Load())
}

func TestGet_CDNNotFound(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.Get(context.Background(), "small", "/missing.jpg")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestValidSize(t *testing.T) {
	assert.True(t, ValidSize("small"))
	assert.True(t, ValidSize("original"))
	assert.False(t, ValidSize("w185"))
}

func TestBlurHash(t *testing.T) {
	cache, hits := newTestCache(t)

	hash, err := cache.BlurHash(context.Background(), "/poster.png")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	// A second computation reuses the cached small variant.
	again, err := cache.BlurHash(context.Background(), "/poster.png")
	require.NoError(t, err)
	assert.Equal(t, hash, again)
	assert.Equal(t, int64(1), hits.Load())
}

func TestComputeBlurHash_RejectsGarbage(t *testing.T) {
	_, err := computeBlurHash([]byte("not an image"))
	assert.Error(t, err)
}
