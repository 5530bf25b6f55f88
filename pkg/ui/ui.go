// Package ui provides a unified interface for rendering output in different formats.
// It supports terminal (rich), text (plain), and JSON output formats.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/tubesort/pkg/ui/json"
	"github.com/arthur-debert/tubesort/pkg/ui/terminal"
	"github.com/arthur-debert/tubesort/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a report (*display.SolveReport, *display.CheckReport)
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer, color ColorMode) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok && color != ColorAlways {
			return NewRenderer(DetectFormat(file), output, color)
		}
		return NewRenderer(FormatTerminal, output, color)
	case FormatTerminal:
		return terminal.New(output, ColorProfile(color, output))
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
