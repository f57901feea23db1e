package imageload

import (
	"bytes"
	"encoding/base64"
	"image"
	"os"
	"strings"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Func loads an image from a file path. It returns nil on any failure.
type Func func(path string) image.Image

// Load reads and decodes the image at path. A missing file, an unreadable
// file and an unknown format all yield nil.
func Load(path string) image.Image {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return Decode(data)
}

// Decode decodes raw image bytes in any registered format, or returns nil.
func Decode(data []byte) image.Image {
	if len(data) == 0 {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return img
}

// DecodeDataURL decodes an inline "data:image/...;base64,..." payload.
// Non-base64 data URLs are not supported and yield nil.
func DecodeDataURL(s string) image.Image {
	if !strings.HasPrefix(s, "data:") {
		return nil
	}
	meta, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil
	}
	return Decode(data)
}
