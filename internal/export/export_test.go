package export

import (
	"encoding/json"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JPM1118/imgbind/internal/asset"
	"github.com/JPM1118/imgbind/internal/imageload"
	"github.com/JPM1118/imgbind/internal/testutil"
)

func TestWrite_ImagesAndManifest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	images := map[string]image.Image{
		"ast2": image.NewNRGBA(image.Rect(0, 0, 3, 2)),
		"ast1": testutil.Pixel(color.Black),
	}
	assets := map[string]asset.Image{
		"ast1": {ID: "ast1", Name: "cat.png"},
		"ast2": {ID: "ast2", Name: "data:image/png;base64,AAAA"},
	}

	m, err := Write(dir, images, assets, Manifest{Document: "anim.json", Source: "filepath"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID == "" {
		t.Error("manifest should get an id")
	}
	if len(m.Assets) != 2 || m.Assets[0].ID != "ast1" || m.Assets[1].ID != "ast2" {
		t.Fatalf("entries = %+v, want ast1, ast2", m.Assets)
	}
	if m.Assets[1].Name != "(embedded)" || m.Assets[1].Width != 3 || m.Assets[1].Height != 2 {
		t.Errorf("ast2 entry = %+v", m.Assets[1])
	}

	img := imageload.Load(filepath.Join(dir, "ast1.png"))
	if !testutil.SameColor(img, testutil.Pixel(color.Black)) {
		t.Error("ast1.png should round-trip the black pixel")
	}

	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		t.Fatal(err)
	}
	var onDisk Manifest
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("manifest should be valid JSON: %v", err)
	}
	if onDisk.ID != m.ID || onDisk.Document != "anim.json" || len(onDisk.Assets) != 2 {
		t.Errorf("manifest on disk = %+v", onDisk)
	}
}

func TestWrite_KeepsSuppliedID(t *testing.T) {
	m, err := Write(t.TempDir(), nil, nil, Manifest{ID: "fixed"})
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != "fixed" {
		t.Errorf("ID = %q, want fixed", m.ID)
	}
	if len(m.Assets) != 0 {
		t.Errorf("entries = %d, want 0", len(m.Assets))
	}
}

func TestWrite_CollidingFileNames(t *testing.T) {
	dir := t.TempDir()
	images := map[string]image.Image{
		"a/b": testutil.Pixel(color.Black),
		"a_b": testutil.Pixel(color.White),
		"A_B": testutil.Pixel(color.Black),
	}

	m, err := Write(dir, images, nil, Manifest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Assets) != 3 {
		t.Fatalf("entries = %d, want 3", len(m.Assets))
	}

	files := map[string]string{}
	for _, e := range m.Assets {
		if prev, ok := files[strings.ToLower(e.File)]; ok {
			t.Fatalf("%s and %s share file %s", prev, e.ID, e.File)
		}
		files[strings.ToLower(e.File)] = e.ID

		want := color.Color(color.White)
		if e.ID != "a_b" {
			want = color.Black
		}
		img := imageload.Load(filepath.Join(dir, e.File))
		if !testutil.SameColor(img, testutil.Pixel(want)) {
			t.Errorf("%s: file %s does not hold its own image", e.ID, e.File)
		}
	}
}

func TestWrite_CollisionNamesAreStable(t *testing.T) {
	images := map[string]image.Image{
		"a/b": testutil.Pixel(color.Black),
		"a_b": testutil.Pixel(color.White),
	}
	first, err := Write(t.TempDir(), images, nil, Manifest{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := Write(t.TempDir(), images, nil, Manifest{})
	if err != nil {
		t.Fatal(err)
	}
	for i := range first.Assets {
		if first.Assets[i].File != second.Assets[i].File {
			t.Errorf("file names differ between runs: %s vs %s", first.Assets[i].File, second.Assets[i].File)
		}
	}
	if first.Assets[0].File != "a_b.png" {
		t.Errorf("first id in order should keep the plain name, got %s", first.Assets[0].File)
	}
}

func TestFileName(t *testing.T) {
	cases := map[string]string{
		"image_0":   "image_0.png",
		"../escape": ".._escape.png",
		"a/b\\c:d":  "a_b_c_d.png",
		"":          "_.png",
		"..":        "_...png",
	}
	for id, want := range cases {
		if got := FileName(id); got != want {
			t.Errorf("FileName(%q) = %q, want %q", id, got, want)
		}
	}
}
