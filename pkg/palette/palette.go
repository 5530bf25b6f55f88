// Package palette attaches display names and swatch colors to the opaque
// color tokens of a puzzle.
package palette

import (
	"fmt"

	"github.com/arthur-debert/tubesort/pkg/puzzle"
)

// LabelBase is the first token handed out for named colors. Tokens below it
// are packed 0xRRGGBB values, so named and RGB colors never collide.
const LabelBase puzzle.Color = 1 << 24

// fallback swatches for colors that have no hex value of their own
var fallback = []string{
	"#E53935", "#1E88E5", "#43A047", "#FDD835", "#8E24AA", "#FB8C00",
	"#00ACC1", "#D81B60", "#6D4C41", "#7CB342", "#3949AB", "#F4511E",
	"#546E7A", "#C0CA33", "#5E35B1", "#00897B",
}

// Swatch is how one color is shown
type Swatch struct {
	Label string `json:"label" yaml:"label"`
	Hex   string `json:"hex,omitempty" yaml:"hex,omitempty"`
}

// Palette maps color tokens to swatches
type Palette map[puzzle.Color]Swatch

// IsRGB reports whether the token is a packed 0xRRGGBB value
func IsRGB(c puzzle.Color) bool {
	return c < LabelBase
}

// HexOf formats a packed RGB token as #RRGGBB
func HexOf(c puzzle.Color) string {
	return fmt.Sprintf("#%06X", uint32(c)&0xFFFFFF)
}

// FromRGB builds a palette for packed RGB tokens, labelling each by its hex
// value.
func FromRGB(colors []puzzle.Color) Palette {
	p := make(Palette, len(colors))
	for _, c := range colors {
		hex := HexOf(c)
		p[c] = Swatch{Label: hex, Hex: hex}
	}
	return p
}

// Label returns the display name of c
func (p Palette) Label(c puzzle.Color) string {
	if s, ok := p[c]; ok && s.Label != "" {
		return s.Label
	}
	if IsRGB(c) {
		return HexOf(c)
	}
	return fmt.Sprintf("c%d", uint32(c-LabelBase))
}

// Hex returns the swatch color of c. Colors without one get a stable pick
// from a fixed list based on their position in order.
func (p Palette) Hex(c puzzle.Color, order []puzzle.Color) string {
	if s, ok := p[c]; ok && s.Hex != "" {
		return s.Hex
	}
	if IsRGB(c) {
		return HexOf(c)
	}
	for i, o := range order {
		if o == c {
			return fallback[i%len(fallback)]
		}
	}
	return fallback[int(uint32(c-LabelBase))%len(fallback)]
}
