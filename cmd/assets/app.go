package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/dotgrid/assets/internal/config"
	"github.com/dotgrid/assets/internal/icon"
	"github.com/dotgrid/assets/internal/mqtt"
	"github.com/dotgrid/assets/internal/runlog"
	"github.com/dotgrid/assets/internal/screenshot"
)

const (
	ansiGreen = "\033[32m"
	ansiReset = "\033[0m"
)

// app carries what every command needs: the resolved config, an optional
// run log and the progress writer.
type app struct {
	cfg   config.Config
	store runlog.Store // nil when logging is off
	out   io.Writer
	color bool
	now   func() time.Time
}

func newApp(cfg config.Config) *app {
	return &app{
		cfg:   cfg,
		store: openStore(cfg),
		out:   os.Stdout,
		color: term.IsTerminal(int(os.Stdout.Fd())),
		now:   time.Now,
	}
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
		a.store = nil
	}
}

func (a *app) tick() string {
	if a.color {
		return ansiGreen + "✓" + ansiReset
	}
	return "✓"
}

func (a *app) icons() error {
	ic := a.cfg.Icons
	start := a.now()

	fmt.Fprintln(a.out, "Generating app icons...")
	results, err := icon.Generate(ic, func(r icon.Result) {
		fmt.Fprintf(a.out, "  Created %s: %dx%dpx\n", r.Name, r.Size, r.Size)
		a.record(runlog.Entry{
			Time: a.now(), Kind: runlog.KindIcon, Name: r.Name, Path: r.Path,
			Width: r.Size, Height: r.Size, Bytes: r.Bytes, SHA256: r.SHA256,
		})
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "All icons generated successfully!")
	fmt.Fprintf(a.out, "Icons saved to: %s\n", ic.Dir)

	a.notify(mqtt.Notice{Kind: "icons", Count: len(results), Dir: ic.Dir, Duration: a.now().Sub(start)})
	return nil
}

func (a *app) screenshots() error {
	sc := a.cfg.Screenshots
	start := a.now()

	fmt.Fprintf(a.out, "Resizing screenshots to %dx%dpx for App Store...\n", sc.Width, sc.Height)
	results, err := screenshot.Batch(sc, func(r screenshot.Result) {
		fmt.Fprintf(a.out, "  %s %s: %dx%d → %dx%d\n", a.tick(), r.Name, r.SrcW, r.SrcH, r.Width, r.Height)
		a.record(runlog.Entry{
			Time: a.now(), Kind: runlog.KindScreenshot, Name: r.Name, Path: r.Path,
			SrcW: r.SrcW, SrcH: r.SrcH, Width: r.Width, Height: r.Height,
			Bytes: r.Bytes, SHA256: r.SHA256,
		})
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "All screenshots resized successfully!")
	fmt.Fprintf(a.out, "App Store ready screenshots saved to: %s/\n", sc.DestDir)

	a.notify(mqtt.Notice{Kind: "screenshots", Count: len(results), Dir: sc.DestDir, Duration: a.now().Sub(start)})
	return nil
}

// record appends e to the run log. Failures are reported, never returned.
func (a *app) record(e runlog.Entry) {
	if a.store == nil {
		return
	}
	if err := a.store.Log(e); err != nil {
		fmt.Fprintf(os.Stderr, "runlog: %v\n", err)
	}
}

// notify publishes the completion notice if a broker is configured.
// Failures are reported, never returned.
func (a *app) notify(n mqtt.Notice) {
	if err := mqtt.Publish(a.cfg.Options.MQTT, n); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}
