package screenshot

import (
	"image"
	"image/color"
	"testing"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0x40, A: 0xFF})
		}
	}
	return img
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in   string
		want Filter
	}{
		{"", Lanczos},
		{"lanczos", Lanczos},
		{"catmullrom", CatmullRom},
		{"bilinear", Bilinear},
		{"nearest", Nearest},
	}
	for _, tt := range tests {
		got, err := ParseFilter(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFilter(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseFilter("box"); err == nil {
		t.Error("expected error for unknown filter")
	}
}

func TestFilterString(t *testing.T) {
	for _, f := range []Filter{Lanczos, CatmullRom, Bilinear, Nearest} {
		back, err := ParseFilter(f.String())
		if err != nil || back != f {
			t.Errorf("ParseFilter(%q) = %v, %v", f.String(), back, err)
		}
	}
	if got := Filter(9).String(); got != "Filter(9)" {
		t.Errorf("String() = %q", got)
	}
}

func TestResizeExactDimensions(t *testing.T) {
	sources := []struct {
		name string
		w, h int
	}{
		{"smaller", 64, 128},
		{"larger", 300, 500},
		{"landscape", 200, 100},
		{"same", 40, 86},
	}
	for _, f := range []Filter{Lanczos, CatmullRom, Bilinear, Nearest} {
		for _, src := range sources {
			out := Resize(gradient(src.w, src.h), 40, 86, f)
			b := out.Bounds()
			if b.Min != (image.Point{}) || b.Dx() != 40 || b.Dy() != 86 {
				t.Errorf("%s/%s: bounds %v, want 40x86 at origin", f, src.name, b)
			}
		}
	}
}

func TestResizeNonZeroOrigin(t *testing.T) {
	src := gradient(100, 100).SubImage(image.Rect(10, 10, 60, 90))
	for _, f := range []Filter{Lanczos, CatmullRom} {
		out := Resize(src, 25, 40, f)
		if b := out.Bounds(); b.Dx() != 25 || b.Dy() != 40 {
			t.Errorf("%s: bounds %v, want 25x40", f, b)
		}
	}
}

func TestResizeUniformStaysUniform(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 30, 30))
	c := color.NRGBA{R: 0x20, G: 0x80, B: 0xC0, A: 0xFF}
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			src.SetNRGBA(x, y, c)
		}
	}
	out := Resize(src, 50, 70, Nearest)
	r, g, b, a := out.At(25, 35).RGBA()
	if r>>8 != 0x20 || g>>8 != 0x80 || b>>8 != 0xC0 || a>>8 != 0xFF {
		t.Errorf("pixel = %x %x %x %x", r>>8, g>>8, b>>8, a>>8)
	}
}
