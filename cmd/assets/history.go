package main

import (
	"fmt"

	"github.com/dotgrid/assets/internal/runlog"
)

func (a *app) history(days int) error {
	if a.store == nil {
		return fmt.Errorf("run log is off (set \"log\" in config or pass --log file|sqlite)")
	}
	entries, err := a.store.Entries(days)
	if err != nil {
		return fmt.Errorf("reading run log: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintf(a.out, "No entries in %s\n", a.store.Path())
		return nil
	}
	for _, e := range entries {
		fmt.Fprintln(a.out, formatEntry(e))
	}
	fmt.Fprintf(a.out, "\n%d %s\n", len(entries), plural(len(entries), "entry", "entries"))
	return nil
}

func (a *app) clearHistory() error {
	if a.store == nil {
		return fmt.Errorf("run log is off (set \"log\" in config or pass --log file|sqlite)")
	}
	if err := a.store.Clear(); err != nil {
		return fmt.Errorf("clearing run log: %w", err)
	}
	fmt.Fprintf(a.out, "Cleared %s\n", a.store.Path())
	return nil
}

// formatEntry renders one history row:
//
//	2026-10-18 09:30  screenshot  win.png          1170x2532 → 1284x2778  812.4 KB  screenshots_appstore/win.png
func formatEntry(e runlog.Entry) string {
	dims := fmt.Sprintf("%dx%d", e.Width, e.Height)
	if e.SrcW > 0 || e.SrcH > 0 {
		dims = fmt.Sprintf("%dx%d → %s", e.SrcW, e.SrcH, dims)
	}
	return fmt.Sprintf("%s  %-10s  %-16s  %-22s  %9s  %s",
		e.Time.Local().Format("2006-01-02 15:04"), e.Kind, e.Name, dims, formatBytes(e.Bytes), e.Path)
}

// formatBytes returns a short human-readable size (e.g. "512 B", "4.2 KB",
// "1.3 MB").
func formatBytes(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
