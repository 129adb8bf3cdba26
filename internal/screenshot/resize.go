// Package screenshot resamples store screenshots to a fixed resolution.
package screenshot

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"

	"github.com/dotgrid/assets/internal/config"
)

// Filter selects the resampling kernel.
type Filter int

const (
	Lanczos Filter = iota
	CatmullRom
	Bilinear
	Nearest
)

func (f Filter) String() string {
	switch f {
	case Lanczos:
		return config.FilterLanczos
	case CatmullRom:
		return config.FilterCatmullRom
	case Bilinear:
		return config.FilterBilinear
	case Nearest:
		return config.FilterNearest
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// ParseFilter maps a config filter name to a Filter. Empty means Lanczos.
func ParseFilter(s string) (Filter, error) {
	switch s {
	case config.FilterLanczos, "":
		return Lanczos, nil
	case config.FilterCatmullRom:
		return CatmullRom, nil
	case config.FilterBilinear:
		return Bilinear, nil
	case config.FilterNearest:
		return Nearest, nil
	}
	return 0, fmt.Errorf("unknown filter %q", s)
}

// Resize stretches src to exactly w×h. Aspect ratio is not preserved and
// nothing is letterboxed.
func Resize(src image.Image, w, h int, f Filter) image.Image {
	if f == Lanczos {
		return resize.Resize(uint(w), uint(h), src, resize.Lanczos3)
	}

	var scaler draw.Interpolator
	switch f {
	case CatmullRom:
		scaler = draw.CatmullRom
	case Bilinear:
		scaler = draw.BiLinear
	default:
		scaler = draw.NearestNeighbor
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
