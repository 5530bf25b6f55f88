// Package display holds the view models the renderers draw. They are built
// from core values once, so every output format shows the same data.
package display

import (
	"time"

	"github.com/arthur-debert/tubesort/pkg/palette"
	"github.com/arthur-debert/tubesort/pkg/puzzle"
	"github.com/arthur-debert/tubesort/pkg/solver"
)

// ColorView is one unit as shown to the user
type ColorView struct {
	Label string `json:"label"`
	Hex   string `json:"hex"`
}

// TubeView is one tube, bottom unit first
type TubeView struct {
	Index  int         `json:"index"`
	Colors []ColorView `json:"colors"`
}

// MoveView is one step of a solution
type MoveView struct {
	Step  int       `json:"step"`
	From  int       `json:"from"`
	To    int       `json:"to"`
	Color ColorView `json:"color"`
	Count int       `json:"count"`
}

// SolveReport is the outcome of the solve command
type SolveReport struct {
	Source        string        `json:"source"`
	Capacity      int           `json:"capacity"`
	Tubes         []TubeView    `json:"tubes"`
	Solved        bool          `json:"solved"`
	AlreadySolved bool          `json:"alreadySolved"`
	Moves         []MoveView    `json:"moves"`
	Explored      int           `json:"explored"`
	Visited       int           `json:"visited"`
	Duration      time.Duration `json:"duration"`
	Cached        bool          `json:"cached"`
}

// CheckReport is the outcome of replaying a move list
type CheckReport struct {
	Source   string     `json:"source"`
	Capacity int        `json:"capacity"`
	Moves    []MoveView `json:"moves"`
	Total    int        `json:"total"`
	Applied  int        `json:"applied"`
	Solved   bool       `json:"solved"`
	Failure  string     `json:"failure,omitempty"`
	Code     string     `json:"code,omitempty"`
	Final    []TubeView `json:"final"`
}

// TubeViews converts the tubes of s for display
func TubeViews(s puzzle.State, pal palette.Palette, order []puzzle.Color) []TubeView {
	views := make([]TubeView, len(s.Tubes))
	for i, tube := range s.Tubes {
		colors := make([]ColorView, len(tube))
		for j, c := range tube {
			colors[j] = colorView(c, pal, order)
		}
		views[i] = TubeView{Index: i, Colors: colors}
	}
	return views
}

// MoveViews replays path on s and describes each step. Replay stops at the
// first illegal transfer; the returned error says which step failed.
func MoveViews(s puzzle.State, path []puzzle.Transfer, pal palette.Palette, order []puzzle.Color) ([]MoveView, puzzle.State, error) {
	moves := make([]MoveView, 0, len(path))
	current := s
	for i, t := range path {
		next, err := t.Apply(current)
		if err != nil {
			return moves, current, err
		}
		top, _ := current.Tubes[t.From].Top()
		moves = append(moves, MoveView{
			Step:  i + 1,
			From:  t.From,
			To:    t.To,
			Color: colorView(top, pal, order),
			Count: len(current.Tubes[t.From]) - len(next.Tubes[t.From]),
		})
		current = next
	}
	return moves, current, nil
}

// NewSolveReport builds the report for a solver result on initial
func NewSolveReport(source string, initial puzzle.State, pal palette.Palette, result *solver.Result, cached bool) (*SolveReport, error) {
	order := initial.Colors()
	report := &SolveReport{
		Source:        source,
		Capacity:      initial.Capacity,
		Tubes:         TubeViews(initial, pal, order),
		Solved:        result.Solved,
		AlreadySolved: result.Solved && len(result.Path) == 0,
		Moves:         []MoveView{},
		Explored:      result.Explored,
		Visited:       result.Visited,
		Duration:      result.Duration,
		Cached:        cached,
	}
	if !result.Solved {
		return report, nil
	}

	moves, _, err := MoveViews(initial, result.Path, pal, order)
	if err != nil {
		return nil, err
	}
	report.Moves = moves
	return report, nil
}

func colorView(c puzzle.Color, pal palette.Palette, order []puzzle.Color) ColorView {
	return ColorView{Label: pal.Label(c), Hex: pal.Hex(c, order)}
}
