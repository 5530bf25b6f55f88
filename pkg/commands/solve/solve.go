// Package solve provides the solve command implementation for tubesort.
//
// Solving runs in four steps:
//   - load the puzzle from a file or a screenshot
//   - look the puzzle up in the solution cache
//   - search for the shortest solution when the cache misses
//   - replay the solution to confirm it sorts every tube
package solve

import (
	"context"
	"time"

	"github.com/arthur-debert/tubesort/pkg/cache"
	"github.com/arthur-debert/tubesort/pkg/commands/internal"
	"github.com/arthur-debert/tubesort/pkg/config"
	"github.com/arthur-debert/tubesort/pkg/errors"
	"github.com/arthur-debert/tubesort/pkg/logging"
	"github.com/arthur-debert/tubesort/pkg/puzzlefile"
	"github.com/arthur-debert/tubesort/pkg/recognition"
	"github.com/arthur-debert/tubesort/pkg/solver"
	"github.com/arthur-debert/tubesort/pkg/ui/display"
	"github.com/arthur-debert/tubesort/pkg/ui/svg"
)

// SolveOptions contains options for the solve command
type SolveOptions struct {
	// Path is the puzzle file or screenshot
	Path string

	// Config supplies solver, recognizer and cache settings. Defaults to
	// the embedded configuration.
	Config *config.Config

	// Capacity, MaxStates and Timeout override the configuration when
	// positive
	Capacity  int
	MaxStates int
	Timeout   time.Duration

	// NoCache skips both cache lookup and store
	NoCache bool

	// AnnotatePath receives a PNG of the screenshot with detected tubes
	// outlined. Ignored for puzzle files.
	AnnotatePath string

	// SVGPath receives a diagram of the puzzle and its solution
	SVGPath string

	// Recognizer overrides the screenshot recognizer
	Recognizer recognition.Recognizer
}

// SolveResult is the outcome of the solve command
type SolveResult struct {
	Puzzle *puzzlefile.Puzzle
	Result *solver.Result
	Cached bool
	Report *display.SolveReport
}

// Solve loads the puzzle at opts.Path and finds its shortest solution.
// An unsolvable puzzle is a normal result.
func Solve(ctx context.Context, opts SolveOptions) (*SolveResult, error) {
	logger := logging.GetLogger("commands.solve")
	logger.Debug().
		Str("path", opts.Path).
		Int("capacity", opts.Capacity).
		Int("maxStates", opts.MaxStates).
		Dur("timeout", opts.Timeout).
		Bool("noCache", opts.NoCache).
		Msg("Starting solve command")

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	in, err := internal.LoadInput(internal.InputOptions{
		Path:       opts.Path,
		Capacity:   opts.Capacity,
		Config:     cfg,
		Recognizer: opts.Recognizer,
	})
	if err != nil {
		return nil, err
	}
	p := in.Puzzle

	if opts.AnnotatePath != "" {
		if in.Image == nil {
			logger.Warn().Str("path", opts.Path).Msg("Annotation only applies to screenshots, skipping it")
		} else if err := recognition.SavePNG(opts.AnnotatePath, recognition.Annotate(in.Image, in.Detections)); err != nil {
			return nil, err
		}
	}

	var store *cache.Cache
	if cfg.Cache.Enabled && !opts.NoCache && cfg.Cache.Dir != "" {
		store = cache.New(cfg.Cache.Dir)
	}

	var result *solver.Result
	var cached bool
	if store != nil {
		result, cached = store.Get(p.State)
	}

	if !cached {
		result, err = search(ctx, p, cfg.Solver, opts)
		if err != nil {
			return nil, err
		}
		if store != nil {
			if err := store.Put(p.State, result); err != nil {
				logger.Warn().Err(err).Msg("Cannot store solution in cache")
			}
		}
	}

	if result.Solved {
		final, err := p.State.Replay(result.Path)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "solution does not replay")
		}
		if !final.IsSolved() {
			return nil, errors.New(errors.ErrInternal, "solution does not end in a solved state").
				WithDetail("final", final.String())
		}
	}

	report, err := display.NewSolveReport(p.Source, p.State, p.Palette, result, cached)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot describe solution")
	}

	if opts.SVGPath != "" {
		if err := svg.WriteFile(opts.SVGPath, report); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Bool("solved", result.Solved).
		Int("moves", len(result.Path)).
		Bool("cached", cached).
		Msg("Solve command finished")

	return &SolveResult{
		Puzzle: p,
		Result: result,
		Cached: cached,
		Report: report,
	}, nil
}

func search(ctx context.Context, p *puzzlefile.Puzzle, sc config.SolverConfig, opts SolveOptions) (*solver.Result, error) {
	solverOpts := solver.Options{
		MaxStates:     sc.MaxStates,
		ProgressEvery: sc.ProgressEvery,
	}
	if opts.MaxStates > 0 {
		solverOpts.MaxStates = opts.MaxStates
	}

	timeout := sc.Timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	defer logging.LogDuration(time.Now(), "search")
	return solver.Solve(ctx, p.State, solverOpts)
}
