package provider

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/JPM1118/imgbind/internal/asset"
)

// DefaultPlaceholderColor is mid gray.
var DefaultPlaceholderColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

// maxPlaceholderSide caps placeholder dimensions taken from documents.
const maxPlaceholderSide = 4096

// Placeholder paints a solid image at each asset's declared size. It never
// misses, which makes it useful for thumbnails of documents whose images are
// not available locally.
type Placeholder struct {
	Color color.Color
}

// ImageForAsset returns a solid image sized to the asset (1x1 when unknown).
func (p *Placeholder) ImageForAsset(a asset.Image) image.Image {
	w, h := clampSide(a.Width), clampSide(a.Height)
	c := p.Color
	if c == nil {
		c = DefaultPlaceholderColor
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func clampSide(n int) int {
	if n <= 0 {
		return 1
	}
	if n > maxPlaceholderSide {
		return maxPlaceholderSide
	}
	return n
}

// ParseHexColor parses "#rgb" or "#rrggbb" (the leading # is optional).
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: want #rgb or #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
