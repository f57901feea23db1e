package export

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JPM1118/imgbind/internal/asset"
)

// ManifestFile is written next to the exported images.
const ManifestFile = "manifest.json"

// Manifest describes one export run.
type Manifest struct {
	ID        string    `json:"id"`
	Document  string    `json:"document"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	Assets    []Entry   `json:"assets"`
}

// Entry describes one exported image.
type Entry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	File   string `json:"file"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Write encodes every image as PNG into dir, named after its asset id, and
// writes a manifest. Entries are ordered by asset id. Ids that sanitise to
// the same file name get a suffix derived from the id, so no image is
// overwritten.
func Write(dir string, images map[string]image.Image, assets map[string]asset.Image, m Manifest) (Manifest, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return m, fmt.Errorf("export: ensure dir: %w", err)
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	ids := make([]string, 0, len(images))
	for id := range images {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	used := make(map[string]bool, len(ids))
	m.Assets = make([]Entry, 0, len(ids))
	for _, id := range ids {
		img := images[id]
		if img == nil {
			continue
		}
		file := uniqueFileName(id, used)
		if err := writePNG(filepath.Join(dir, file), img); err != nil {
			return m, err
		}
		b := img.Bounds()
		m.Assets = append(m.Assets, Entry{
			ID:     id,
			Name:   assets[id].DisplayName(),
			File:   file,
			Width:  b.Dx(),
			Height: b.Dy(),
		})
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return m, fmt.Errorf("export: encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), append(data, '\n'), 0o644); err != nil {
		return m, fmt.Errorf("export: write manifest: %w", err)
	}
	return m, nil
}

// FileName maps an asset id to a flat, filesystem-safe PNG file name.
func FileName(id string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, id)
	if safe == "" || safe == "." || safe == ".." {
		safe = "_" + safe
	}
	return safe + ".png"
}

// uniqueFileName returns FileName(id), or a variant suffixed with a short id
// hash when that name is already taken. Names compare case-insensitively.
func uniqueFileName(id string, used map[string]bool) string {
	file := FileName(id)
	if used[strings.ToLower(file)] {
		sum := sha256.Sum256([]byte(id))
		base := strings.TrimSuffix(file, ".png") + "-" + hex.EncodeToString(sum[:4])
		file = base + ".png"
		for n := 2; used[strings.ToLower(file)]; n++ {
			file = fmt.Sprintf("%s-%d.png", base, n)
		}
	}
	used[strings.ToLower(file)] = true
	return file
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", filepath.Base(path), err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("export: encode %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", filepath.Base(path), err)
	}
	return nil
}
