package provider

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/JPM1118/imgbind/internal/asset"
	"github.com/JPM1118/imgbind/internal/testutil"
)

func TestFilepath_NestedDirectory(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePNG(t, filepath.Join(dir, "images", "cat.png"), image.NewNRGBA(image.Rect(0, 0, 3, 2)))

	src := &Filepath{Dir: dir}
	img := src.ImageForAsset(asset.Image{ID: "ast1", Name: "cat.png", Directory: "images/"})
	if img == nil {
		t.Fatal("expected image from nested directory")
	}
	if img.Bounds().Dx() != 3 {
		t.Errorf("width = %d, want 3", img.Bounds().Dx())
	}
}

func TestFilepath_FallsBackToBaseDir(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePNG(t, filepath.Join(dir, "cat.png"), testutil.Pixel(color.Black))

	src := &Filepath{Dir: dir}
	if img := src.ImageForAsset(asset.Image{ID: "ast1", Name: "cat.png", Directory: "images/"}); img == nil {
		t.Fatal("expected fallback to base directory")
	}
}

func TestFilepath_Missing(t *testing.T) {
	src := &Filepath{Dir: t.TempDir()}
	if img := src.ImageForAsset(asset.Image{ID: "ast1", Name: "cat.png"}); img != nil {
		t.Error("missing file should yield nil")
	}
	if img := src.ImageForAsset(asset.Image{ID: "ast2"}); img != nil {
		t.Error("empty name should yield nil")
	}
}

func TestFilepath_DataURL(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
	name := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	var loads int
	src := &Filepath{Dir: t.TempDir(), Load: func(string) image.Image {
		loads++
		return nil
	}}
	if img := src.ImageForAsset(asset.Image{ID: "ast1", Name: name, Embedded: true}); img == nil {
		t.Fatal("expected inline image to decode")
	}
	if loads != 0 {
		t.Errorf("data URL should not hit the file loader, got %d loads", loads)
	}
}

func TestPlaceholder_UsesDeclaredSize(t *testing.T) {
	p := &Placeholder{Color: color.NRGBA{R: 255, A: 255}}
	img := p.ImageForAsset(asset.Image{ID: "ast1", Width: 4, Height: 5})
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 5 {
		t.Fatalf("bounds = %v, want 4x5", img.Bounds())
	}
	r, g, _, _ := img.At(2, 2).RGBA()
	if r != 0xffff || g != 0 {
		t.Errorf("pixel should be red, got r=%d g=%d", r, g)
	}
}

func TestPlaceholder_UnknownSize(t *testing.T) {
	img := (&Placeholder{}).ImageForAsset(asset.Image{ID: "ast1"})
	if img.Bounds().Dx() != 1 || img.Bounds().Dy() != 1 {
		t.Errorf("bounds = %v, want 1x1", img.Bounds())
	}
}

func TestStaticAndFunc(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	s := Static{"ast1": img}
	if s.ImageForAsset(asset.Image{ID: "ast1"}) != img {
		t.Error("Static should return stored image")
	}
	if s.ImageForAsset(asset.Image{ID: "other"}) != nil {
		t.Error("Static should miss on unknown id")
	}

	var nilFunc Func
	if nilFunc.ImageForAsset(asset.Image{ID: "ast1"}) != nil {
		t.Error("nil Func should yield nil")
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff8000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.R != 0xff || c.G != 0x80 || c.B != 0 || c.A != 0xff {
		t.Errorf("color = %+v, want ff8000", c)
	}

	c, err = ParseHexColor("0f0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.G != 0xff || c.R != 0 {
		t.Errorf("short color = %+v, want 00ff00", c)
	}

	if _, err := ParseHexColor("#12345"); err == nil {
		t.Error("5-digit color should fail")
	}
	if _, err := ParseHexColor("#zzzzzz"); err == nil {
		t.Error("non-hex color should fail")
	}
}
