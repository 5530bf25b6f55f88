package config

import (
	"strings"
	"time"

	"github.com/arthur-debert/tubesort/pkg/errors"
	"github.com/lucasb-eyer/go-colorful"
)

// Output formats
const (
	FormatTerminal = "terminal"
	FormatText     = "text"
	FormatJSON     = "json"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the complete tubesort configuration
type Config struct {
	Solver     SolverConfig     `koanf:"solver"`
	Recognizer RecognizerConfig `koanf:"recognizer"`
	Output     OutputConfig     `koanf:"output"`
	Cache      CacheConfig      `koanf:"cache"`
}

// SolverConfig controls the search
type SolverConfig struct {
	Capacity      int           `koanf:"capacity"`
	MaxStates     int           `koanf:"max_states"`
	Timeout       time.Duration `koanf:"timeout"`
	ProgressEvery int           `koanf:"progress_every"`
}

// RecognizerConfig holds the screenshot geometry. The defaults match the
// 1080px wide screenshots of the game.
type RecognizerConfig struct {
	ScanTop          int     `koanf:"scan_top"`
	ScanBottomMargin int     `koanf:"scan_bottom_margin"`
	OutlineColor     string  `koanf:"outline_color"`
	OffsetX          int     `koanf:"offset_x"`
	OffsetY          int     `koanf:"offset_y"`
	TubeWidth        int     `koanf:"tube_width"`
	TubeHeight       int     `koanf:"tube_height"`
	SampleStart      float64 `koanf:"sample_start"`
	SampleStep       int     `koanf:"sample_step"`
	MinValue         float64 `koanf:"min_value"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Format string `koanf:"format"`
	Color  string `koanf:"color"`
}

// CacheConfig controls the solution cache
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
}

// Validate checks that values are usable
func (c *Config) Validate() error {
	invalid := func(key string, value interface{}, reason string) error {
		return errors.Newf(errors.ErrConfigValid, "invalid %s: %s", key, reason).
			WithDetail("key", key).
			WithDetail("value", value)
	}

	if c.Solver.Capacity < 1 {
		return invalid("solver.capacity", c.Solver.Capacity, "must be at least 1")
	}
	if c.Solver.MaxStates < 0 {
		return invalid("solver.max_states", c.Solver.MaxStates, "must not be negative")
	}
	if c.Solver.Timeout < 0 {
		return invalid("solver.timeout", c.Solver.Timeout, "must not be negative")
	}

	r := c.Recognizer
	if r.TubeWidth < 1 || r.TubeHeight < 1 {
		return invalid("recognizer.tube_width/tube_height", []int{r.TubeWidth, r.TubeHeight}, "must be positive")
	}
	if r.SampleStep < 1 {
		return invalid("recognizer.sample_step", r.SampleStep, "must be positive")
	}
	if r.SampleStart <= 0 || r.SampleStart > 1 {
		return invalid("recognizer.sample_start", r.SampleStart, "must be in (0, 1]")
	}
	if r.MinValue < 0 || r.MinValue > 1 {
		return invalid("recognizer.min_value", r.MinValue, "must be in [0, 1]")
	}
	if _, err := ParseHexColor(r.OutlineColor); err != nil {
		return invalid("recognizer.outline_color", r.OutlineColor, err.Error())
	}

	switch strings.ToLower(c.Output.Format) {
	case FormatTerminal, FormatText, FormatJSON:
	default:
		return invalid("output.format", c.Output.Format, "must be terminal, text or json")
	}
	switch strings.ToLower(c.Output.Color) {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return invalid("output.color", c.Output.Color, "must be auto, always or never")
	}

	return nil
}

// ParseHexColor parses "#RRGGBB" or "#RGB" (the # is optional) into a
// packed 0xRRGGBB value.
func ParseHexColor(s string) (uint32, error) {
	hex := strings.TrimSpace(s)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrParse, "color %q is not of the form #RRGGBB", s)
	}
	r, g, b := c.RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b), nil
}
