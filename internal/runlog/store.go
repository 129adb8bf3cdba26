// Package runlog keeps a record of every file the tool has produced.
package runlog

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dotgrid/assets/internal/config"
	"github.com/dotgrid/assets/internal/paths"
)

// Kind classifies a log entry.
type Kind int

const (
	KindIcon Kind = iota
	KindScreenshot
)

func (k Kind) String() string {
	switch k {
	case KindIcon:
		return "icon"
	case KindScreenshot:
		return "screenshot"
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "icon":
		return KindIcon, true
	case "screenshot":
		return KindScreenshot, true
	}
	return 0, false
}

// Entry records one produced file. SrcW/SrcH are zero for icons, which
// have no source image.
type Entry struct {
	Time   time.Time
	Kind   Kind
	Name   string
	Path   string
	SrcW   int
	SrcH   int
	Width  int
	Height int
	Bytes  int64
	SHA256 string
}

// Store abstracts run log storage: a flat text file or a SQLite database.
type Store interface {
	Log(e Entry) error
	Entries(days int) ([]Entry, error) // 0 = all, oldest first
	Clear() error
	Path() string
	Close() error
}

// Open returns the store selected by mode, rooted in dir. It returns a
// nil Store for config.LogOff.
func Open(mode, dir string) (Store, error) {
	switch mode {
	case config.LogOff:
		return nil, nil
	case config.LogFile:
		return NewFileStore(filepath.Join(dir, paths.LogFileName)), nil
	case config.LogSQLite:
		return NewSQLiteStore(filepath.Join(dir, paths.DBFileName))
	}
	return nil, fmt.Errorf("runlog: unknown mode %q", mode)
}

// DayCutoff returns midnight (local time) of the first day in a window of
// the given number of days ending today.
func DayCutoff(days int) time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -(days - 1))
}
