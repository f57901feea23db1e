package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/JPM1118/imgbind/internal/asset"
)

// MockSource is an image source for testing. It records every asset it is
// asked for.
type MockSource struct {
	mu     sync.Mutex
	Images map[string]image.Image
	Calls  []asset.Image
}

// NewMockSource returns a source serving images keyed by asset id.
func NewMockSource(images map[string]image.Image) *MockSource {
	return &MockSource{Images: images}
}

func (m *MockSource) ImageForAsset(a asset.Image) image.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, a)
	return m.Images[a.ID]
}

// SetImage updates the image served for an asset id in a thread-safe manner.
func (m *MockSource) SetImage(id string, img image.Image) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Images == nil {
		m.Images = map[string]image.Image{}
	}
	m.Images[id] = img
}

// CallCount returns the number of ImageForAsset calls in a thread-safe manner.
func (m *MockSource) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Pixel returns a 1x1 image of the given color.
func Pixel(c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, c)
	return img
}

// WritePNG encodes img as PNG at path, creating parent directories.
func WritePNG(t testing.TB, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

// SameColor reports whether the top-left pixels of a and b match.
func SameColor(a, b image.Image) bool {
	if a == nil || b == nil {
		return a == b
	}
	ar, ag, ab, aa := a.At(a.Bounds().Min.X, a.Bounds().Min.Y).RGBA()
	br, bg, bb, ba := b.At(b.Bounds().Min.X, b.Bounds().Min.Y).RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}
