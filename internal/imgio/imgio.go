// Package imgio reads source images in any registered format and writes
// PNGs atomically.
package imgio

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/dotgrid/assets/internal/config"
	"github.com/dotgrid/assets/internal/paths"
)

// Written describes a file produced by SavePNG.
type Written struct {
	Path   string
	Bytes  int64
	SHA256 string
}

// Decode opens path and decodes it, returning the format name reported
// by the image package.
func Decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, format, nil
}

// DecodeConfig returns the dimensions of the image at path without
// decoding the pixel data.
func DecodeConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return cfg, nil
}

// ParseCompression maps a config compression name to a PNG level.
func ParseCompression(s string) (png.CompressionLevel, error) {
	switch s {
	case config.CompressionDefault, "":
		return png.DefaultCompression, nil
	case config.CompressionBest:
		return png.BestCompression, nil
	case config.CompressionFast:
		return png.BestSpeed, nil
	case config.CompressionNone:
		return png.NoCompression, nil
	}
	return 0, fmt.Errorf("unknown compression %q", s)
}

// SavePNG encodes img to path. The file only appears once encoding has
// fully succeeded.
func SavePNG(path string, img image.Image, level png.CompressionLevel) (Written, error) {
	enc := png.Encoder{CompressionLevel: level}
	var n int64
	h := sha256.New()
	err := paths.AtomicWriteFunc(path, func(w io.Writer) error {
		cw := &countWriter{w: io.MultiWriter(w, h)}
		if err := enc.Encode(cw, img); err != nil {
			return err
		}
		n = cw.n
		return nil
	})
	if err != nil {
		return Written{}, fmt.Errorf("writing %s: %w", path, err)
	}
	return Written{Path: path, Bytes: n, SHA256: hex.EncodeToString(h.Sum(nil))}, nil
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
