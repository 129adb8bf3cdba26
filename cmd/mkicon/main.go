// mkicon draws a single dot-grid icon at an arbitrary size.
// Usage: go run ./cmd/mkicon <size> <output.png>
package main

import (
	"fmt"
	"image/png"
	"os"
	"strconv"

	"github.com/dotgrid/assets/internal/icon"
	"github.com/dotgrid/assets/internal/imgio"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: mkicon <size> <output.png>")
		os.Exit(1)
	}
	size, err := strconv.Atoi(os.Args[1])
	if err != nil || size <= 0 {
		fmt.Fprintf(os.Stderr, "Error: size must be a positive number, got %q\n", os.Args[1])
		os.Exit(1)
	}
	img := icon.Draw(size, icon.DefaultPalette)
	w, err := imgio.SavePNG(os.Args[2], img, png.DefaultCompression)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%dx%d, %d bytes)\n", w.Path, size, size, w.Bytes)
}
