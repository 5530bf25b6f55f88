// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/tubesort/pkg/errors"
	"github.com/arthur-debert/tubesort/pkg/ui/display"
	"github.com/arthur-debert/tubesort/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Renderer draws tubes as colored swatches. Section headers and the move
// table come from pterm, everything else from the lipgloss theme.
type Renderer struct {
	output  io.Writer
	theme   *styles.Theme
	colored bool
}

// New creates a new terminal renderer using the given color profile
func New(w io.Writer, profile termenv.Profile) (*Renderer, error) {
	lr := lipgloss.NewRenderer(w)
	lr.SetColorProfile(profile)
	return &Renderer{
		output:  w,
		theme:   styles.New(lr),
		colored: profile != termenv.Ascii,
	}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	var b strings.Builder
	switch v := result.(type) {
	case *display.SolveReport:
		if err := r.writeSolve(&b, v); err != nil {
			return err
		}
	case *display.CheckReport:
		if err := r.writeCheck(&b, v); err != nil {
			return err
		}
	default:
		fmt.Fprintf(&b, "%+v\n", result)
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error with its code and details
func (r *Renderer) RenderError(err error) error {
	var b strings.Builder
	b.WriteString(r.theme.Render("Error", "Error:") + " " + err.Error() + "\n")
	for key, value := range errors.GetErrorDetails(err) {
		fmt.Fprintf(&b, "  %s %v\n", r.theme.Render("Muted", key+":"), value)
	}
	_, werr := io.WriteString(r.output, b.String())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *Renderer) writeSolve(b *strings.Builder, report *display.SolveReport) error {
	b.WriteString(r.section(fmt.Sprintf("%s (%d tubes, capacity %d)", report.Source, len(report.Tubes), report.Capacity)))
	r.writeTubes(b, report.Tubes, report.Capacity)

	switch {
	case report.AlreadySolved:
		b.WriteString("\n" + r.theme.Render("Success", "Already solved") + "\n")
		return nil
	case !report.Solved:
		b.WriteString("\n" + r.theme.Render("Warning", "No solution") + " " + r.theme.Render("Muted", r.stats(report)) + "\n")
		return nil
	}

	b.WriteString(r.section(fmt.Sprintf("Solution: %d moves", len(report.Moves))))
	if err := r.writeMoveTable(b, report.Moves); err != nil {
		return err
	}
	b.WriteString(r.theme.Render("Muted", r.stats(report)) + "\n")
	return nil
}

func (r *Renderer) writeCheck(b *strings.Builder, report *display.CheckReport) error {
	b.WriteString(r.section(fmt.Sprintf("%s: %d of %d moves applied", report.Source, report.Applied, report.Total)))
	if len(report.Moves) > 0 {
		if err := r.writeMoveTable(b, report.Moves); err != nil {
			return err
		}
	}
	if report.Failure != "" {
		b.WriteString(r.theme.Render("Error", fmt.Sprintf("Move %d rejected:", report.Applied+1)) + " " + report.Failure + "\n")
	}

	b.WriteString(r.section("Final state"))
	r.writeTubes(b, report.Final, report.Capacity)
	b.WriteString("\n")
	if report.Solved {
		b.WriteString(r.theme.Render("Success", "Puzzle solved") + "\n")
	} else {
		b.WriteString(r.theme.Render("Warning", "Puzzle not solved") + "\n")
	}
	return nil
}

// writeTubes draws one row per tube: capacity slots, then the labels
func (r *Renderer) writeTubes(b *strings.Builder, tubes []display.TubeView, capacity int) {
	for _, tube := range tubes {
		b.WriteString(r.theme.Render("Index", strconv.Itoa(tube.Index)) + " ")
		labels := make([]string, len(tube.Colors))
		for i := 0; i < capacity; i++ {
			if i < len(tube.Colors) {
				c := tube.Colors[i]
				b.WriteString(r.swatch(c))
				labels[i] = c.Label
				continue
			}
			b.WriteString(r.theme.Render("EmptySlot", "··"))
		}
		if r.colored && len(labels) > 0 {
			b.WriteString("  " + r.theme.Render("Label", strings.Join(labels, " ")))
		}
		b.WriteString("\n")
	}
}

func (r *Renderer) writeMoveTable(b *strings.Builder, moves []display.MoveView) error {
	data := [][]string{{"#", "from", "to", "color", "units"}}
	for _, m := range moves {
		data = append(data, []string{
			strconv.Itoa(m.Step),
			strconv.Itoa(m.From),
			strconv.Itoa(m.To),
			r.swatch(m.Color) + " " + m.Color.Label,
			strconv.Itoa(m.Count),
		})
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(data)
	if !r.colored {
		table = table.WithHeaderStyle(pterm.NewStyle()).WithSeparatorStyle(pterm.NewStyle())
	}
	out, err := table.Srender()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to render move table")
	}
	b.WriteString(out + "\n")
	return nil
}

func (r *Renderer) section(title string) string {
	printer := pterm.DefaultSection.WithTopPadding(0).WithBottomPadding(1)
	if !r.colored {
		printer = printer.WithStyle(pterm.NewStyle())
	}
	return printer.Sprint(title)
}

// swatch is a colored block, or the bracketed label when colors are off
func (r *Renderer) swatch(c display.ColorView) string {
	if !r.colored {
		return "[" + c.Label + "]"
	}
	return r.theme.Swatch(c.Hex, "  ")
}

func (r *Renderer) stats(report *display.SolveReport) string {
	s := fmt.Sprintf("explored %d states, visited %d, %s", report.Explored, report.Visited, report.Duration)
	if report.Cached {
		s += ", cached"
	}
	return s
}
