// Package recognize provides the recognize command implementation for
// tubesort. It reads a screenshot and writes the tubes it finds as a
// puzzle file, ready to be edited and solved.
package recognize

import (
	"github.com/arthur-debert/tubesort/pkg/commands/internal"
	"github.com/arthur-debert/tubesort/pkg/config"
	"github.com/arthur-debert/tubesort/pkg/errors"
	"github.com/arthur-debert/tubesort/pkg/logging"
	"github.com/arthur-debert/tubesort/pkg/puzzlefile"
	"github.com/arthur-debert/tubesort/pkg/recognition"
)

// RecognizeOptions contains options for the recognize command
type RecognizeOptions struct {
	// Path is the screenshot
	Path string

	// Format of the produced puzzle file: yaml (default), toml or json
	Format string

	// Capacity overrides the configured capacity when positive
	Capacity int

	// AnnotatePath receives a PNG of the screenshot with detected tubes
	// outlined
	AnnotatePath string

	Config     *config.Config
	Recognizer recognition.Recognizer
}

// RecognizeResult is the outcome of the recognize command
type RecognizeResult struct {
	Puzzle *puzzlefile.Puzzle
	File   *puzzlefile.File
	// Data is File encoded in the requested format
	Data []byte
}

// Recognize reads the tubes from a screenshot
func Recognize(opts RecognizeOptions) (*RecognizeResult, error) {
	logger := logging.GetLogger("commands.recognize")
	logger.Debug().Str("path", opts.Path).Msg("Starting recognize command")

	if !recognition.IsImagePath(opts.Path) {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s is not a png, jpeg or gif screenshot", opts.Path).
			WithDetail("path", opts.Path)
	}

	format := opts.Format
	if format == "" {
		format = puzzlefile.FormatYAML
	}

	in, err := internal.LoadInput(internal.InputOptions{
		Path:       opts.Path,
		Capacity:   opts.Capacity,
		Config:     opts.Config,
		Recognizer: opts.Recognizer,
	})
	if err != nil {
		return nil, err
	}

	if opts.AnnotatePath != "" {
		if err := recognition.SavePNG(opts.AnnotatePath, recognition.Annotate(in.Image, in.Detections)); err != nil {
			return nil, err
		}
	}

	file := puzzlefile.FromState(in.Puzzle.State, in.Puzzle.Palette)
	data, err := file.Encode(format)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("tubes", in.Puzzle.State.Len()).
		Int("colors", len(in.Puzzle.State.Units())).
		Msg("Recognize command finished")

	return &RecognizeResult{
		Puzzle: in.Puzzle,
		File:   file,
		Data:   data,
	}, nil
}
