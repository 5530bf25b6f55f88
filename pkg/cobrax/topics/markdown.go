package topics

import (
	"io"
	"os"

	"github.com/arthur-debert/tubesort/pkg/ui"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// DefaultWidth is the wrap width when the output is not a terminal
const DefaultWidth = 80

// Markdown returns a RenderFunc that renders .md topics with glamour for w.
// Colors follow mode the same way command output does: without colors the
// notty style is used, otherwise dark or light by terminal background.
// width 0 wraps at the terminal width, or DefaultWidth off a terminal.
func Markdown(w io.Writer, mode ui.ColorMode, width int) RenderFunc {
	profile := ui.ColorProfile(mode, w)

	style := "notty"
	if profile != termenv.Ascii {
		style = "light"
		if termenv.NewOutput(w).HasDarkBackground() {
			style = "dark"
		}
	}
	if width <= 0 {
		width = terminalWidth(w)
	}

	return func(content, ext string) string {
		if ext != ".md" {
			return content
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithColorProfile(profile),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		rendered, err := renderer.Render(content)
		if err != nil {
			return content
		}
		return rendered
	}
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	return DefaultWidth
}
