package tmpl

import (
	"strconv"
	"strings"
)

// Vars holds the runtime values available to templates.
type Vars struct {
	Name     string // icon label or screenshot file name
	Size     int    // icon edge length in pixels
	Kind     string // "icons" | "screenshots"
	Count    int    // number of files written
	Dir      string // output directory
	Duration string // compact run duration, e.g. "1.2s"
}

// Expand replaces template placeholders in s with runtime values.
// {name} → name as-is, {Name} → title-cased. Zero-valued numbers expand
// to "0".
func Expand(s string, v Vars) string {
	r := strings.NewReplacer(
		"{Name}", TitleCase(v.Name),
		"{name}", v.Name,
		"{size}", strconv.Itoa(v.Size),
		"{kind}", v.Kind,
		"{count}", strconv.Itoa(v.Count),
		"{dir}", v.Dir,
		"{duration}", v.Duration,
	)
	return r.Replace(s)
}

// TitleCase uppercases the first byte of s.
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
