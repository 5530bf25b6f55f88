// Package internal holds the input loading shared by the solve, check and
// recognize commands.
package internal

import (
	"image"
	"path/filepath"

	"github.com/arthur-debert/tubesort/pkg/config"
	"github.com/arthur-debert/tubesort/pkg/errors"
	"github.com/arthur-debert/tubesort/pkg/logging"
	"github.com/arthur-debert/tubesort/pkg/palette"
	"github.com/arthur-debert/tubesort/pkg/puzzle"
	"github.com/arthur-debert/tubesort/pkg/puzzlefile"
	"github.com/arthur-debert/tubesort/pkg/recognition"
)

// InputOptions says where a puzzle comes from
type InputOptions struct {
	// Path is a puzzle file (.yaml, .yml, .toml, .json) or a screenshot
	// (.png, .jpg, .jpeg, .gif)
	Path string

	// Capacity overrides the configured and file capacity when positive
	Capacity int

	Config *config.Config

	// Recognizer reads screenshots. Defaults to a ScreenshotRecognizer
	// built from Config.Recognizer.
	Recognizer recognition.Recognizer
}

// Input is a loaded puzzle. Image and Detections are set for screenshots.
type Input struct {
	Puzzle     *puzzlefile.Puzzle
	Image      image.Image
	Detections []recognition.Detection
}

// LoadInput reads a puzzle file or recognizes a screenshot
func LoadInput(opts InputOptions) (*Input, error) {
	logger := logging.GetLogger("commands.input")

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	capacity := cfg.Solver.Capacity
	if opts.Capacity > 0 {
		capacity = opts.Capacity
	}

	if recognition.IsImagePath(opts.Path) {
		done := logging.LogOperationStart(logger.With().Str("path", opts.Path).Int("capacity", capacity).Logger(), "recognize screenshot")
		defer done()
		return loadScreenshot(opts, cfg, capacity)
	}
	if _, ok := puzzlefile.FormatFor(opts.Path); !ok {
		return nil, errors.Newf(errors.ErrInvalidInput, "cannot tell puzzle file or screenshot from extension %q", filepath.Ext(opts.Path)).
			WithDetail("path", opts.Path)
	}

	logger.Debug().Str("path", opts.Path).Msg("Loading puzzle file")
	p, err := puzzlefile.Load(opts.Path, capacity)
	if err != nil {
		return nil, err
	}
	if opts.Capacity > 0 && p.State.Capacity != opts.Capacity {
		state, err := puzzle.NewState(opts.Capacity, p.State.Tubes...)
		if err != nil {
			return nil, err
		}
		p.State = state
	}
	return &Input{Puzzle: p}, nil
}

func loadScreenshot(opts InputOptions, cfg *config.Config, capacity int) (*Input, error) {
	img, err := recognition.LoadImage(opts.Path)
	if err != nil {
		return nil, err
	}

	in := &Input{Image: img}
	recognizer := opts.Recognizer
	if recognizer == nil {
		if recognizer, err = recognition.NewScreenshotRecognizer(cfg.Recognizer); err != nil {
			return nil, err
		}
	}

	var tubes []puzzle.Tube
	if sr, ok := recognizer.(*recognition.ScreenshotRecognizer); ok {
		in.Detections = sr.Detect(img)
		for _, d := range in.Detections {
			tubes = append(tubes, d.Tube)
		}
	} else if tubes, err = recognizer.Recognize(img); err != nil {
		return nil, err
	}

	if len(tubes) == 0 {
		return nil, errors.Newf(errors.ErrNoTubes, "no tubes found in %s", opts.Path).
			WithDetail("path", opts.Path)
	}

	state, err := puzzle.NewState(capacity, tubes...)
	if err != nil {
		return nil, err
	}
	in.Puzzle = &puzzlefile.Puzzle{
		State:   state,
		Palette: palette.FromRGB(state.Colors()),
		Source:  opts.Path,
	}
	return in, nil
}
