package runlog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatLine renders e as one log line:
//
//	2026-10-18T10:00:00Z  kind=icon  src=-  size=1024x1024  bytes=5120  sha256=ab12…  name="appstore"  path="out/icon.png"
//
// Quoted fields come last so names and paths may contain spaces.
func FormatLine(e Entry) string {
	src := "-"
	if e.SrcW > 0 || e.SrcH > 0 {
		src = fmt.Sprintf("%dx%d", e.SrcW, e.SrcH)
	}
	return fmt.Sprintf("%s  kind=%s  src=%s  size=%dx%d  bytes=%d  sha256=%s  name=%q  path=%q",
		e.Time.Format(time.RFC3339), e.Kind, src, e.Width, e.Height, e.Bytes, e.SHA256, e.Name, e.Path)
}

// ParseLine is the inverse of FormatLine. Malformed lines return false.
func ParseLine(line string) (Entry, bool) {
	ts, ok := ExtractTimestamp(line)
	if !ok {
		return Entry{}, false
	}
	kind, ok := ParseKind(extractField(line, "kind"))
	if !ok {
		return Entry{}, false
	}
	w, h, ok := parseDims(extractField(line, "size"))
	if !ok {
		return Entry{}, false
	}
	e := Entry{Time: ts, Kind: kind, Width: w, Height: h, SHA256: extractField(line, "sha256")}
	if src := extractField(line, "src"); src != "-" {
		if e.SrcW, e.SrcH, ok = parseDims(src); !ok {
			return Entry{}, false
		}
	}
	n, err := strconv.ParseInt(extractField(line, "bytes"), 10, 64)
	if err != nil || n < 0 {
		return Entry{}, false
	}
	e.Bytes = n
	if e.Name, ok = extractQuoted(line, "name"); !ok {
		return Entry{}, false
	}
	if e.Path, ok = extractQuoted(line, "path"); !ok {
		return Entry{}, false
	}
	return e, true
}

// ParseEntries parses every well-formed line of content. Malformed lines
// are silently skipped.
func ParseEntries(content string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if e, ok := ParseLine(line); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// ExtractTimestamp parses the RFC3339 timestamp that starts a log line.
func ExtractTimestamp(line string) (time.Time, bool) {
	tsEnd := strings.Index(line, "  ")
	if tsEnd < 0 {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, line[:tsEnd])
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func extractField(line, key string) string {
	prefix := key + "="
	for _, field := range strings.Fields(line) {
		if strings.HasPrefix(field, prefix) {
			return field[len(prefix):]
		}
	}
	return ""
}

// extractQuoted reads a Go-quoted value following "  key=".
func extractQuoted(line, key string) (string, bool) {
	marker := "  " + key + "="
	i := strings.Index(line, marker)
	if i < 0 {
		return "", false
	}
	q, err := strconv.QuotedPrefix(line[i+len(marker):])
	if err != nil {
		return "", false
	}
	s, err := strconv.Unquote(q)
	if err != nil {
		return "", false
	}
	return s, true
}

func parseDims(s string) (w, h int, ok bool) {
	a, b, found := strings.Cut(s, "x")
	if !found {
		return 0, 0, false
	}
	w, errW := strconv.Atoi(a)
	h, errH := strconv.Atoi(b)
	if errW != nil || errH != nil || w < 0 || h < 0 {
		return 0, 0, false
	}
	return w, h, true
}
