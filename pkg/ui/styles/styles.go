// Package styles defines the visual styling for tubesort's terminal output.
//
// Styles use semantic names and adaptive colors that adjust to light and
// dark terminal themes. Definitions live in the embedded styles.yaml and are
// bound to a lipgloss renderer, so each output stream gets its own color
// profile.
package styles

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// ColorDef is an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	Width      int    `yaml:"width,omitempty"`
	Align      string `yaml:"align,omitempty"`
}

// Config is the complete styles file
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedStyles []byte

// Theme maps semantic names to lipgloss styles bound to one renderer
type Theme struct {
	renderer *lipgloss.Renderer
	styles   map[string]lipgloss.Style
}

// New builds the embedded theme for r. If the embedded file cannot be
// parsed every style falls back to plain text.
func New(r *lipgloss.Renderer) *Theme {
	t, err := Load(r, embeddedStyles)
	if err != nil {
		return &Theme{renderer: r, styles: map[string]lipgloss.Style{}}
	}
	return t
}

// Load builds a theme from YAML style data
func Load(r *lipgloss.Renderer, data []byte) (*Theme, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse styles data: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	t := &Theme{renderer: r, styles: make(map[string]lipgloss.Style, len(cfg.Styles))}
	for name, def := range cfg.Styles {
		t.styles[name] = buildStyle(r, def, colors)
	}
	return t, nil
}

// Has reports whether the theme defines name
func (t *Theme) Has(name string) bool {
	_, ok := t.styles[name]
	return ok
}

// Style returns the named style, or an unstyled one
func (t *Theme) Style(name string) lipgloss.Style {
	if s, ok := t.styles[name]; ok {
		return s
	}
	return t.renderer.NewStyle()
}

// Render applies the named style to text
func (t *Theme) Render(name, text string) string {
	return t.Style(name).Render(text)
}

// Swatch renders text on a solid background of the given hex color
func (t *Theme) Swatch(hex, text string) string {
	return t.renderer.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(contrast(hex))).
		Render(text)
}

func buildStyle(r *lipgloss.Renderer, def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := r.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}

	if c, ok := colors[def.Foreground]; ok {
		style = style.Foreground(c)
	}
	if c, ok := colors[def.Background]; ok {
		style = style.Background(c)
	}

	if def.Width > 0 {
		style = style.Width(def.Width)
	}
	switch def.Align {
	case "left":
		style = style.Align(lipgloss.Left)
	case "center":
		style = style.Align(lipgloss.Center)
	case "right":
		style = style.Align(lipgloss.Right)
	}

	return style
}

// contrast picks black or white text for a background color
func contrast(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#FFFFFF"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#FFFFFF"
}
