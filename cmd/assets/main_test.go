package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dotgrid/assets/internal/config"
	"github.com/dotgrid/assets/internal/runlog"
)

// testApp returns an app writing into a temp project directory with a
// file-backed run log.
func testApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Icons.Dir = filepath.Join(root, "AppIcon.appiconset")
	cfg.Icons.Sizes = []config.IconSpec{{Name: "ipad", Size: 76}, {Name: "notification_2x", Size: 40}}
	cfg.Screenshots.SourceDir = filepath.Join(root, "screenshots")
	cfg.Screenshots.DestDir = filepath.Join(root, "screenshots_appstore")
	cfg.Screenshots.Width, cfg.Screenshots.Height = 32, 69
	cfg.Screenshots.Compression = config.CompressionFast

	var buf bytes.Buffer
	a := &app{
		cfg:   cfg,
		store: runlog.NewFileStore(filepath.Join(root, "assets.log")),
		out:   &buf,
		now:   time.Now,
	}
	return a, &buf
}

func writeSources(t *testing.T, sc config.ScreenshotsConfig) {
	t.Helper()
	if err := os.MkdirAll(sc.SourceDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range sc.Files {
		f, err := os.Create(filepath.Join(sc.SourceDir, name))
		if err != nil {
			t.Fatal(err)
		}
		png.Encode(f, image.NewGray(image.Rect(0, 0, 10, 20)))
		f.Close()
	}
}

func TestIconsOutput(t *testing.T) {
	a, buf := testApp(t)
	if err := a.icons(); err != nil {
		t.Fatalf("icons: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Generating app icons...\n",
		"  Created ipad: 76x76px\n",
		"  Created notification_2x: 40x40px\n",
		"All icons generated successfully!\n",
		"Icons saved to: " + a.cfg.Icons.Dir + "\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(a.cfg.Icons.Dir, "icon_ipad_76x76.png")); err != nil {
		t.Errorf("icon not written: %v", err)
	}

	entries, err := a.store.Entries(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Kind != runlog.KindIcon || entries[0].Name != "ipad" {
		t.Errorf("run log = %+v", entries)
	}
}

func TestScreenshotsOutput(t *testing.T) {
	a, buf := testApp(t)
	writeSources(t, a.cfg.Screenshots)

	if err := a.screenshots(); err != nil {
		t.Fatalf("screenshots: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Resizing screenshots to 32x69px for App Store...\n",
		"  ✓ gameplay.png: 10x20 → 32x69\n",
		"  ✓ win.png: 10x20 → 32x69\n",
		"All screenshots resized successfully!\n",
		"App Store ready screenshots saved to: " + a.cfg.Screenshots.DestDir + "/\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, ansiGreen) {
		t.Error("colour codes written to a non-terminal")
	}

	entries, _ := a.store.Entries(0)
	if len(entries) != 4 {
		t.Fatalf("run log has %d entries, want 4", len(entries))
	}
	if entries[0].SrcW != 10 || entries[0].SrcH != 20 {
		t.Errorf("source size = %dx%d", entries[0].SrcW, entries[0].SrcH)
	}
}

func TestScreenshotsMissingSource(t *testing.T) {
	a, buf := testApp(t)
	writeSources(t, a.cfg.Screenshots)
	os.Remove(filepath.Join(a.cfg.Screenshots.SourceDir, "preferences.png"))

	if err := a.screenshots(); err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(buf.String(), "successfully") {
		t.Error("success message printed after failure")
	}
	if entries, _ := a.store.Entries(0); len(entries) != 0 {
		t.Errorf("run log has %d entries after failed preflight", len(entries))
	}
}

func TestTickColour(t *testing.T) {
	a := &app{color: true}
	if got := a.tick(); got != ansiGreen+"✓"+ansiReset {
		t.Errorf("tick() = %q", got)
	}
	a.color = false
	if got := a.tick(); got != "✓" {
		t.Errorf("tick() = %q", got)
	}
}

func TestHistory(t *testing.T) {
	a, buf := testApp(t)
	if err := a.history(0); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No entries") {
		t.Errorf("empty history output = %q", buf.String())
	}

	buf.Reset()
	a.icons()
	buf.Reset()
	if err := a.history(0); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "ipad") || !strings.Contains(out, "2 entries") {
		t.Errorf("history output:\n%s", out)
	}

	buf.Reset()
	if err := a.clearHistory(); err != nil {
		t.Fatal(err)
	}
	if entries, _ := a.store.Entries(0); len(entries) != 0 {
		t.Errorf("entries after clear = %d", len(entries))
	}
}

func TestHistoryLogOff(t *testing.T) {
	a, _ := testApp(t)
	a.store = nil
	if err := a.history(0); err == nil {
		t.Error("expected error when run log is off")
	}
	if err := a.clearHistory(); err == nil {
		t.Error("expected error when run log is off")
	}
	// Producing files still works without a store.
	if err := a.icons(); err != nil {
		t.Errorf("icons without store: %v", err)
	}
}

func TestFormatEntry(t *testing.T) {
	e := runlog.Entry{
		Time: time.Date(2026, 10, 18, 9, 30, 0, 0, time.Local),
		Kind: runlog.KindScreenshot, Name: "win.png", Path: "out/win.png",
		SrcW: 1170, SrcH: 2532, Width: 1284, Height: 2778, Bytes: 2048,
	}
	got := formatEntry(e)
	for _, want := range []string{"2026-10-18 09:30", "screenshot", "win.png", "1170x2532 → 1284x2778", "2.0 KB", "out/win.png"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatEntry = %q, missing %q", got, want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
