// Package icon draws the dot-grid app icon and writes the iOS icon set.
package icon

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"github.com/dotgrid/assets/internal/config"
)

// GridDots is the number of dots per row and per column.
const GridDots = 9

// Palette holds the three icon colours.
type Palette struct {
	Background color.Color
	Dot        color.Color
	Triangle   color.Color
}

// DefaultPalette is black background, white dots, magenta triangle.
var DefaultPalette = Palette{
	Background: color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
	Dot:        color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	Triangle:   color.NRGBA{R: 0xFF, G: 0x00, B: 0xFF, A: 0xFF},
}

// PaletteFromConfig parses the hex colours of p.
func PaletteFromConfig(p config.Palette) (Palette, error) {
	bg, dot, tri, err := p.Colors()
	if err != nil {
		return Palette{}, err
	}
	return Palette{Background: bg, Dot: dot, Triangle: tri}, nil
}

// GridLayout returns the dot spacing and dot radius for a canvas of the
// given size. The radius never drops below 2px.
func GridLayout(size int) (spacing, radius int) {
	return size / 8, max(2, size/60)
}

// Triangle returns the vertices (top, bottom-left, bottom-right) of the
// upward triangle centred on the canvas.
func Triangle(size int) [3]image.Point {
	center := size / 2
	half := size / 3 / 2
	return [3]image.Point{
		{X: center, Y: center - half},
		{X: center - half, Y: center + half},
		{X: center + half, Y: center + half},
	}
}

// Draw renders a size×size icon: background fill, a 9×9 dot grid
// anchored at the top-left corner, then the triangle on top. Output is
// deterministic for a given size and palette.
func Draw(size int, p Palette) *image.RGBA {
	spacing, radius := GridLayout(size)

	// Edge dots extend past the canvas. Shapes are rasterized on a margin
	// so every coordinate stays inside the scanner bounds, then cropped.
	margin := radius + 2
	full := size + 2*margin
	work := newCanvas(full, p.Background)

	scanner := rasterx.NewScannerGV(full, full, work, work.Bounds())
	filler := rasterx.NewFiller(full, full, scanner)

	// Shapes sit on pixel centres so a dot at (x, y) covers pixel (x, y)
	// symmetrically.
	off := float64(margin) + 0.5
	filler.SetColor(p.Dot)
	for row := 0; row < GridDots; row++ {
		for col := 0; col < GridDots; col++ {
			cx := float64(col*spacing) + off
			cy := float64(row*spacing) + off
			rasterx.AddCircle(cx, cy, float64(radius)+0.5, filler)
			filler.Draw()
			filler.Clear()
		}
	}

	tri := Triangle(size)
	filler.SetColor(p.Triangle)
	filler.Start(toFixed(tri[0], off))
	filler.Line(toFixed(tri[1], off))
	filler.Line(toFixed(tri[2], off))
	filler.Stop(true)
	filler.Draw()
	filler.Clear()

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), work, image.Pt(margin, margin), draw.Src)
	return img
}

// DrawSVG rasterizes SVG artwork scaled to size×size over the palette
// background.
func DrawSVG(svg []byte, size int, bg color.Color) (*image.RGBA, error) {
	art, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("parsing svg: %w", err)
	}
	art.SetTarget(0, 0, float64(size), float64(size))

	img := newCanvas(size, bg)
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	dasher := rasterx.NewDasher(size, size, scanner)
	art.Draw(dasher, 1)
	return img, nil
}

func newCanvas(size int, bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return img
}

func toFixed(pt image.Point, off float64) fixed.Point26_6 {
	return rasterx.ToFixedP(float64(pt.X)+off, float64(pt.Y)+off)
}
