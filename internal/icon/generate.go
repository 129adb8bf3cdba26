package icon

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/dotgrid/assets/internal/config"
	"github.com/dotgrid/assets/internal/imgio"
	"github.com/dotgrid/assets/internal/paths"
	"github.com/dotgrid/assets/internal/tmpl"
)

// Result describes one written icon.
type Result struct {
	Name   string
	Size   int
	Path   string
	Bytes  int64
	SHA256 string
}

// Observer is called after each icon is written. May be nil.
type Observer func(Result)

// FileName expands the configured pattern for one icon, e.g.
// "icon_{name}_{size}x{size}.png" → "icon_ipad_76x76.png".
func FileName(pattern string, spec config.IconSpec) string {
	return tmpl.Expand(pattern, tmpl.Vars{Name: spec.Name, Size: spec.Size})
}

// Generate writes one PNG per configured size into cfg.Dir, creating the
// directory if needed. Icons are written in table order; the first error
// aborts the run, leaving earlier icons in place.
func Generate(cfg config.IconsConfig, observe Observer) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pal, err := PaletteFromConfig(cfg.Palette)
	if err != nil {
		return nil, err
	}

	var svg []byte
	if cfg.SVG != "" {
		svg, err = os.ReadFile(cfg.SVG)
		if err != nil {
			return nil, fmt.Errorf("icons: reading artwork: %w", err)
		}
	}

	if err := os.MkdirAll(cfg.Dir, paths.DirPerm); err != nil {
		return nil, fmt.Errorf("icons: %w", err)
	}

	results := make([]Result, 0, len(cfg.Sizes))
	for _, spec := range cfg.Sizes {
		var img image.Image
		if svg != nil {
			img, err = DrawSVG(svg, spec.Size, pal.Background)
			if err != nil {
				return results, fmt.Errorf("icons: %s: %w", spec.Name, err)
			}
		} else {
			img = Draw(spec.Size, pal)
		}

		path := filepath.Join(cfg.Dir, FileName(cfg.FilePattern, spec))
		w, err := imgio.SavePNG(path, img, png.DefaultCompression)
		if err != nil {
			return results, fmt.Errorf("icons: %s: %w", spec.Name, err)
		}

		r := Result{Name: spec.Name, Size: spec.Size, Path: w.Path, Bytes: w.Bytes, SHA256: w.SHA256}
		results = append(results, r)
		if observe != nil {
			observe(r)
		}
	}
	return results, nil
}
