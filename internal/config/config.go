package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dotgrid/assets/internal/paths"
	"github.com/dotgrid/assets/internal/tmpl"
)

// Run log modes for Options.Log.
const (
	LogOff    = ""
	LogFile   = "file"
	LogSQLite = "sqlite"
)

// Resampling filters for ScreenshotsConfig.Filter.
const (
	FilterLanczos    = "lanczos"
	FilterCatmullRom = "catmullrom"
	FilterBilinear   = "bilinear"
	FilterNearest    = "nearest"
)

// PNG compression levels for ScreenshotsConfig.Compression.
const (
	CompressionDefault = "default"
	CompressionBest    = "best"
	CompressionFast    = "fast"
	CompressionNone    = "none"
)

// DefaultMQTTMessage is published when MQTTConfig.Message is empty.
const DefaultMQTTMessage = "{count} {kind} written to {dir} in {duration}"

// IconSpec is one row of the icon table.
type IconSpec struct {
	Name string `json:"name" yaml:"name"`
	Size int    `json:"size" yaml:"size"`
}

// Palette holds the icon colours as hex strings (#RGB or #RRGGBB).
type Palette struct {
	Background string `json:"background,omitempty" yaml:"background,omitempty"`
	Dot        string `json:"dot,omitempty" yaml:"dot,omitempty"`
	Triangle   string `json:"triangle,omitempty" yaml:"triangle,omitempty"`
}

// IconsConfig drives the icon generator.
type IconsConfig struct {
	Dir         string     `json:"dir,omitempty" yaml:"dir,omitempty"`
	FilePattern string     `json:"file_pattern,omitempty" yaml:"file_pattern,omitempty"`
	SVG         string     `json:"svg,omitempty" yaml:"svg,omitempty"` // optional artwork, replaces the dot grid
	Sizes       []IconSpec `json:"sizes,omitempty" yaml:"sizes,omitempty"`
	Palette     Palette    `json:"palette,omitempty" yaml:"palette,omitempty"`
}

// ScreenshotsConfig drives the screenshot resizer.
type ScreenshotsConfig struct {
	SourceDir   string   `json:"source_dir,omitempty" yaml:"source_dir,omitempty"`
	DestDir     string   `json:"dest_dir,omitempty" yaml:"dest_dir,omitempty"`
	Files       []string `json:"files,omitempty" yaml:"files,omitempty"`
	Width       int      `json:"width,omitempty" yaml:"width,omitempty"`
	Height      int      `json:"height,omitempty" yaml:"height,omitempty"`
	Filter      string   `json:"filter,omitempty" yaml:"filter,omitempty"`
	Compression string   `json:"compression,omitempty" yaml:"compression,omitempty"`
}

// MQTTConfig configures the optional completion notice. An empty Broker
// disables it.
type MQTTConfig struct {
	Broker   string `json:"broker,omitempty" yaml:"broker,omitempty"`
	Topic    string `json:"topic,omitempty" yaml:"topic,omitempty"`
	ClientID string `json:"client_id,omitempty" yaml:"client_id,omitempty"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	Message  string `json:"message,omitempty" yaml:"message,omitempty"`
	QoS      byte   `json:"qos,omitempty" yaml:"qos,omitempty"`
	Retain   bool   `json:"retain,omitempty" yaml:"retain,omitempty"`
}

// Options holds global settings parsed from the "config" key.
type Options struct {
	Log  string     `json:"log,omitempty" yaml:"log,omitempty"` // "" | "file" | "sqlite"
	MQTT MQTTConfig `json:"mqtt,omitempty" yaml:"mqtt,omitempty"`
}

// Config holds the top-level configuration.
type Config struct {
	Options     Options           `json:"config" yaml:"config"`
	Icons       IconsConfig       `json:"icons" yaml:"icons"`
	Screenshots ScreenshotsConfig `json:"screenshots" yaml:"screenshots"`
}

// DefaultIconSizes is the iOS icon table, in generation order.
func DefaultIconSizes() []IconSpec {
	return []IconSpec{
		{"appstore", 1024},
		{"iphone_3x", 180},
		{"iphone_2x", 120},
		{"ipad_2x", 152},
		{"ipad", 76},
		{"notification_3x", 60},
		{"notification_2x", 40},
		{"settings_3x", 87},
		{"settings_2x", 58},
		{"spotlight_3x", 120},
		{"spotlight_2x", 80},
	}
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		Icons: IconsConfig{
			Dir:         "DotGrid/DotGrid/Assets.xcassets/AppIcon.appiconset",
			FilePattern: "icon_{name}_{size}x{size}.png",
			Sizes:       DefaultIconSizes(),
			Palette: Palette{
				Background: "#000000",
				Dot:        "#FFFFFF",
				Triangle:   "#FF00FF",
			},
		},
		Screenshots: ScreenshotsConfig{
			SourceDir:   "screenshots",
			DestDir:     "screenshots_appstore",
			Files:       []string{"gameplay.png", "preferences.png", "gameover.png", "win.png"},
			Width:       1284,
			Height:      2778,
			Filter:      FilterLanczos,
			Compression: CompressionBest,
		},
	}
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults. Lists are replaced
// wholesale.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = Default()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty)
//  2. assets-config.{json,yaml,yml} in the working directory
//  3. the same names in paths.DataDir()
//
// Unlike an explicit path, a missing default file is not an error: the
// built-in tables are returned.
func Load(explicitPath string) (Config, error) {
	if explicitPath != "" {
		return readConfig(explicitPath)
	}

	for _, dir := range []string{".", paths.DataDir()} {
		for _, name := range paths.ConfigFileNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return readConfig(p)
			}
		}
	}

	return Default(), nil
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes config data. ext selects the format: ".yaml" and ".yml"
// are YAML, anything else JSON.
func Parse(data []byte, ext string) (Config, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		cfg := Default()
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	default:
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
}

// Validate reports the first problem that would make a run fail midway.
func (c Config) Validate() error {
	switch c.Options.Log {
	case LogOff, LogFile, LogSQLite:
	default:
		return fmt.Errorf("config: unknown log mode %q (want %q or %q)", c.Options.Log, LogFile, LogSQLite)
	}
	if c.Options.MQTT.Broker != "" && c.Options.MQTT.Topic == "" {
		return fmt.Errorf("config: mqtt broker set without a topic")
	}
	if c.Options.MQTT.QoS > 2 {
		return fmt.Errorf("config: mqtt qos %d out of range (0-2)", c.Options.MQTT.QoS)
	}
	if err := c.Icons.Validate(); err != nil {
		return err
	}
	return c.Screenshots.Validate()
}

// Validate checks the icon table, file pattern and palette.
func (ic IconsConfig) Validate() error {
	if ic.Dir == "" {
		return fmt.Errorf("icons: dir is empty")
	}
	if ic.FilePattern == "" {
		return fmt.Errorf("icons: file_pattern is empty")
	}
	if strings.ContainsAny(ic.FilePattern, `/\`) {
		return fmt.Errorf("icons: file_pattern %q must not contain a path separator", ic.FilePattern)
	}
	if len(ic.Sizes) == 0 {
		return fmt.Errorf("icons: no sizes configured")
	}
	seen := make(map[string]bool, len(ic.Sizes))
	files := make(map[string]string, len(ic.Sizes))
	for i, s := range ic.Sizes {
		if s.Name == "" {
			return fmt.Errorf("icons: sizes[%d] has no name", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("icons: duplicate name %q", s.Name)
		}
		seen[s.Name] = true
		if s.Size <= 0 {
			return fmt.Errorf("icons: %s: size must be positive, got %d", s.Name, s.Size)
		}
		f := tmpl.Expand(ic.FilePattern, tmpl.Vars{Name: s.Name, Size: s.Size})
		if prev, ok := files[f]; ok {
			return fmt.Errorf("icons: %s and %s both map to file %q", prev, s.Name, f)
		}
		files[f] = s.Name
	}
	if _, _, _, err := ic.Palette.Colors(); err != nil {
		return fmt.Errorf("icons: %w", err)
	}
	return nil
}

// Validate checks the screenshot list, target size, filter and compression.
func (sc ScreenshotsConfig) Validate() error {
	if sc.SourceDir == "" || sc.DestDir == "" {
		return fmt.Errorf("screenshots: source_dir and dest_dir are required")
	}
	if filepath.Clean(sc.SourceDir) == filepath.Clean(sc.DestDir) {
		return fmt.Errorf("screenshots: source_dir and dest_dir must differ")
	}
	if len(sc.Files) == 0 {
		return fmt.Errorf("screenshots: no files configured")
	}
	for _, f := range sc.Files {
		if f == "" || filepath.Base(f) != f {
			return fmt.Errorf("screenshots: invalid file name %q", f)
		}
	}
	if sc.Width <= 0 || sc.Height <= 0 {
		return fmt.Errorf("screenshots: target size %dx%d must be positive", sc.Width, sc.Height)
	}
	switch sc.Filter {
	case FilterLanczos, FilterCatmullRom, FilterBilinear, FilterNearest:
	default:
		return fmt.Errorf("screenshots: unknown filter %q", sc.Filter)
	}
	switch sc.Compression {
	case CompressionDefault, CompressionBest, CompressionFast, CompressionNone:
	default:
		return fmt.Errorf("screenshots: unknown compression %q", sc.Compression)
	}
	return nil
}

// Colors parses the three palette entries.
func (p Palette) Colors() (bg, dot, tri color.NRGBA, err error) {
	if bg, err = ParseHexColor(p.Background); err != nil {
		return bg, dot, tri, fmt.Errorf("palette background: %w", err)
	}
	if dot, err = ParseHexColor(p.Dot); err != nil {
		return bg, dot, tri, fmt.Errorf("palette dot: %w", err)
	}
	if tri, err = ParseHexColor(p.Triangle); err != nil {
		return bg, dot, tri, fmt.Errorf("palette triangle: %w", err)
	}
	return bg, dot, tri, nil
}

// ParseHexColor parses "#RGB" or "#RRGGBB" (the leading # is optional)
// into an opaque colour.
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
