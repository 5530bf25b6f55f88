// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/tubesort/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	var b strings.Builder
	switch v := result.(type) {
	case *display.SolveReport:
		writeSolve(&b, v)
	case *display.CheckReport:
		writeCheck(&b, v)
	default:
		fmt.Fprintf(&b, "%+v\n", result)
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func writeSolve(b *strings.Builder, report *display.SolveReport) {
	fmt.Fprintf(b, "%s: %d tubes, capacity %d\n", report.Source, len(report.Tubes), report.Capacity)
	writeTubes(b, report.Tubes)

	switch {
	case report.AlreadySolved:
		b.WriteString("Already solved\n")
	case report.Solved:
		fmt.Fprintf(b, "Solved in %d moves (%s)\n", len(report.Moves), stats(report))
		writeMoves(b, report.Moves)
	default:
		fmt.Fprintf(b, "No solution (%s)\n", stats(report))
	}
}

func writeCheck(b *strings.Builder, report *display.CheckReport) {
	fmt.Fprintf(b, "%s: %d of %d moves applied\n", report.Source, report.Applied, report.Total)
	writeMoves(b, report.Moves)
	if report.Failure != "" {
		fmt.Fprintf(b, "Move %d rejected: %s\n", report.Applied+1, report.Failure)
	}
	writeTubes(b, report.Final)
	if report.Solved {
		b.WriteString("Puzzle solved\n")
	} else {
		b.WriteString("Puzzle not solved\n")
	}
}

func writeTubes(b *strings.Builder, tubes []display.TubeView) {
	for _, tube := range tubes {
		fmt.Fprintf(b, "%4d |", tube.Index)
		for _, c := range tube.Colors {
			b.WriteString(" " + c.Label)
		}
		b.WriteString("\n")
	}
}

func writeMoves(b *strings.Builder, moves []display.MoveView) {
	for _, m := range moves {
		fmt.Fprintf(b, "%4d. %d -> %d  %s x%d\n", m.Step, m.From, m.To, m.Color.Label, m.Count)
	}
}

func stats(report *display.SolveReport) string {
	s := fmt.Sprintf("explored %d states, visited %d, %s", report.Explored, report.Visited, report.Duration)
	if report.Cached {
		s += ", cached"
	}
	return s
}
