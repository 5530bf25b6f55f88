// Package check provides the check command implementation for tubesort.
// It replays a list of moves on a puzzle and reports whether they sort it.
package check

import (
	"github.com/arthur-debert/tubesort/pkg/commands/internal"
	"github.com/arthur-debert/tubesort/pkg/config"
	"github.com/arthur-debert/tubesort/pkg/errors"
	"github.com/arthur-debert/tubesort/pkg/logging"
	"github.com/arthur-debert/tubesort/pkg/puzzle"
	"github.com/arthur-debert/tubesort/pkg/puzzlefile"
	"github.com/arthur-debert/tubesort/pkg/ui/display"
)

// CheckOptions contains options for the check command
type CheckOptions struct {
	// Path is the puzzle file or screenshot
	Path string

	// Moves is the move list, e.g. "0-2,1-0,1-2"
	Moves string

	// Capacity overrides the configured capacity when positive
	Capacity int

	Config *config.Config
}

// CheckResult is the outcome of replaying the moves. A rejected move is
// part of the result, not an error of the command.
type CheckResult struct {
	Puzzle    *puzzlefile.Puzzle
	Transfers []puzzle.Transfer
	Final     puzzle.State
	Applied   int
	Solved    bool
	Rejection error
	Report    *display.CheckReport
}

// Check parses opts.Moves and replays them on the puzzle at opts.Path
func Check(opts CheckOptions) (*CheckResult, error) {
	logger := logging.WithFields(map[string]interface{}{
		"component": "commands.check",
		"path":      opts.Path,
	})
	logger.Debug().Str("moves", opts.Moves).Msg("Starting check command")

	transfers, err := puzzle.ParseTransfers(opts.Moves)
	if err != nil {
		return nil, err
	}

	in, err := internal.LoadInput(internal.InputOptions{
		Path:     opts.Path,
		Capacity: opts.Capacity,
		Config:   opts.Config,
	})
	if err != nil {
		return nil, err
	}
	p := in.Puzzle

	order := p.State.Colors()
	moves, final, rejection := display.MoveViews(p.State, transfers, p.Palette, order)

	result := &CheckResult{
		Puzzle:    p,
		Transfers: transfers,
		Final:     final,
		Applied:   len(moves),
		Solved:    rejection == nil && final.IsSolved(),
		Rejection: rejection,
	}

	report := &display.CheckReport{
		Source:   p.Source,
		Capacity: p.State.Capacity,
		Moves:    moves,
		Total:    len(transfers),
		Applied:  result.Applied,
		Solved:   result.Solved,
		Final:    display.TubeViews(final, p.Palette, order),
	}
	if rejection != nil {
		report.Failure = rejection.Error()
		report.Code = string(errors.GetErrorCode(rejection))
		logger.Info().
			Int("step", result.Applied+1).
			Str("code", report.Code).
			Msg("Move rejected")
	}
	result.Report = report

	logger.Info().
		Int("applied", result.Applied).
		Bool("solved", result.Solved).
		Msg("Check command finished")
	return result, nil
}
