package screenshot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dotgrid/assets/internal/config"
	"github.com/dotgrid/assets/internal/imgio"
	"github.com/dotgrid/assets/internal/paths"
)

// Result describes one resized screenshot.
type Result struct {
	Name   string
	SrcW   int
	SrcH   int
	Width  int
	Height int
	Path   string
	Bytes  int64
	SHA256 string
}

// Observer is called after each screenshot is written. May be nil.
type Observer func(Result)

// Batch resizes every configured file from SourceDir into DestDir under
// the same name. All sources are checked before anything is written, so a
// missing screenshot fails the run with no output at all. A decode or
// encode failure later on stops the run; files finished before it stay.
func Batch(cfg config.ScreenshotsConfig, observe Observer) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	filter, err := ParseFilter(cfg.Filter)
	if err != nil {
		return nil, fmt.Errorf("screenshots: %w", err)
	}
	level, err := imgio.ParseCompression(cfg.Compression)
	if err != nil {
		return nil, fmt.Errorf("screenshots: %w", err)
	}

	if err := Preflight(cfg); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.DestDir, paths.DirPerm); err != nil {
		return nil, fmt.Errorf("screenshots: %w", err)
	}

	results := make([]Result, 0, len(cfg.Files))
	for _, name := range cfg.Files {
		src, _, err := imgio.Decode(filepath.Join(cfg.SourceDir, name))
		if err != nil {
			return results, fmt.Errorf("screenshots: %s: %w", name, err)
		}
		b := src.Bounds()

		out := Resize(src, cfg.Width, cfg.Height, filter)
		w, err := imgio.SavePNG(filepath.Join(cfg.DestDir, name), out, level)
		if err != nil {
			return results, fmt.Errorf("screenshots: %s: %w", name, err)
		}

		r := Result{
			Name: name, SrcW: b.Dx(), SrcH: b.Dy(),
			Width: cfg.Width, Height: cfg.Height,
			Path: w.Path, Bytes: w.Bytes, SHA256: w.SHA256,
		}
		results = append(results, r)
		if observe != nil {
			observe(r)
		}
	}
	return results, nil
}

// Preflight checks that every configured source exists and is a regular
// file.
func Preflight(cfg config.ScreenshotsConfig) error {
	for _, name := range cfg.Files {
		p := filepath.Join(cfg.SourceDir, name)
		fi, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("screenshots: source %s: %w", p, err)
		}
		if !fi.Mode().IsRegular() {
			return fmt.Errorf("screenshots: source %s is not a regular file", p)
		}
	}
	return nil
}
