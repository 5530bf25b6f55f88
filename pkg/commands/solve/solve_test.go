package solve_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/tubesort/pkg/commands/solve"
	"github.com/arthur-debert/tubesort/pkg/config"
	"github.com/arthur-debert/tubesort/pkg/errors"
	"github.com/arthur-debert/tubesort/pkg/logging"
	"github.com/arthur-debert/tubesort/pkg/puzzle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const solvable = `capacity: 4
tubes:
  - [r, r, r, b]
  - [b, b, b, r]
  - []
`

const unsolvable = `capacity: 4
tubes:
  - [r, b, r, b]
  - [b, r, b, r]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Cache.Dir = t.TempDir()
	return cfg
}

func expectedPath() []puzzle.Transfer {
	return []puzzle.Transfer{{From: 0, To: 2}, {From: 1, To: 0}, {From: 1, To: 2}}
}

func TestSolvePuzzleFile(t *testing.T) {
	cfg := testConfig(t)
	path := writeFile(t, "puzzle.yaml", solvable)

	result, err := solve.Solve(context.Background(), solve.SolveOptions{Path: path, Config: cfg})
	require.NoError(t, err)

	assert.True(t, result.Result.Solved)
	assert.False(t, result.Cached)
	assert.Equal(t, expectedPath(), result.Result.Path)
	assert.Equal(t, path, result.Report.Source)
	assert.Len(t, result.Report.Moves, 3)
	assert.Equal(t, "b", result.Report.Moves[0].Color.Label)
}

func TestSolveUsesCache(t *testing.T) {
	cfg := testConfig(t)
	path := writeFile(t, "puzzle.yaml", solvable)

	first, err := solve.Solve(context.Background(), solve.SolveOptions{Path: path, Config: cfg})
	require.NoError(t, err)
	require.False(t, first.Cached)

	second, err := solve.Solve(context.Background(), solve.SolveOptions{Path: path, Config: cfg})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.True(t, second.Report.Cached)
	assert.Equal(t, first.Result.Path, second.Result.Path)
}

func TestSolveNoCache(t *testing.T) {
	cfg := testConfig(t)
	path := writeFile(t, "puzzle.yaml", solvable)

	for i := 0; i < 2; i++ {
		result, err := solve.Solve(context.Background(), solve.SolveOptions{Path: path, Config: cfg, NoCache: true})
		require.NoError(t, err)
		assert.False(t, result.Cached)
	}

	entries, err := os.ReadDir(cfg.Cache.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSolveUnsolvableIsNotAnError(t *testing.T) {
	cfg := testConfig(t)
	path := writeFile(t, "puzzle.yaml", unsolvable)

	result, err := solve.Solve(context.Background(), solve.SolveOptions{Path: path, Config: cfg})
	require.NoError(t, err)
	assert.False(t, result.Result.Solved)
	assert.False(t, result.Report.Solved)
	assert.Empty(t, result.Report.Moves)

	// unsolvable outcomes are cached too
	again, err := solve.Solve(context.Background(), solve.SolveOptions{Path: path, Config: cfg})
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.False(t, again.Result.Solved)
}

func TestSolveCapacityOverride(t *testing.T) {
	cfg := testConfig(t)
	path := writeFile(t, "puzzle.toml", "tubes = [[\"a\", \"b\"], [\"b\", \"a\"], []]\n")

	result, err := solve.Solve(context.Background(), solve.SolveOptions{Path: path, Config: cfg, Capacity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Puzzle.State.Capacity)
	assert.Equal(t, expectedPath(), result.Result.Path)
}

func TestSolveMaxStates(t *testing.T) {
	cfg := testConfig(t)
	path := writeFile(t, "puzzle.yaml", solvable)

	_, err := solve.Solve(context.Background(), solve.SolveOptions{Path: path, Config: cfg, MaxStates: 1, NoCache: true})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSearchLimit))
}

func TestSolveCancelled(t *testing.T) {
	cfg := testConfig(t)
	path := writeFile(t, "puzzle.yaml", solvable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solve.Solve(ctx, solve.SolveOptions{Path: path, Config: cfg, NoCache: true})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSearchCancelled))
}

func TestSolveInputErrors(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		code errors.ErrorCode
	}{
		{name: "missing file", path: filepath.Join(dir, "nope.yaml"), code: errors.ErrFileNotFound},
		{name: "unknown extension", path: filepath.Join(dir, "puzzle.txt"), code: errors.ErrInvalidInput},
		{name: "malformed yaml", path: writeFile(t, "bad.yaml", "tubes: [unclosed"), code: errors.ErrParse},
		{name: "tube over capacity", path: writeFile(t, "big.yaml", "capacity: 2\ntubes:\n  - [a, a, a]\n"), code: errors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := solve.Solve(context.Background(), solve.SolveOptions{Path: tt.path, Config: cfg})
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetErrorCode(err))
		})
	}
}

func TestSolveWritesSVG(t *testing.T) {
	cfg := testConfig(t)
	path := writeFile(t, "puzzle.yaml", solvable)
	out := filepath.Join(t.TempDir(), "solution.svg")

	_, err := solve.Solve(context.Background(), solve.SolveOptions{Path: path, Config: cfg, SVGPath: out})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Solved in 3 moves")
}

type fixedRecognizer []puzzle.Tube

func (f fixedRecognizer) Recognize(image.Image) ([]puzzle.Tube, error) {
	return f, nil
}

func writePNG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shot.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	require.NoError(t, f.Close())
	return path
}

func TestSolveScreenshot(t *testing.T) {
	cfg := testConfig(t)
	shot := writePNG(t)
	annotated := filepath.Join(t.TempDir(), "annotated.png")

	recognizer := fixedRecognizer{
		{0xFF0000, 0x0000FF},
		{0x0000FF, 0xFF0000},
		{},
	}
	result, err := solve.Solve(context.Background(), solve.SolveOptions{
		Path:         shot,
		Config:       cfg,
		Capacity:     2,
		Recognizer:   recognizer,
		AnnotatePath: annotated,
	})
	require.NoError(t, err)

	assert.Equal(t, expectedPath(), result.Result.Path)
	assert.Equal(t, "#0000FF", result.Report.Moves[0].Color.Label)
	assert.FileExists(t, annotated)
}

func TestSolveScreenshotWithoutTubes(t *testing.T) {
	cfg := testConfig(t)
	shot := writePNG(t)

	_, err := solve.Solve(context.Background(), solve.SolveOptions{Path: shot, Config: cfg, Recognizer: fixedRecognizer{}})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoTubes))
}

func TestSolveLogsOperations(t *testing.T) {
	cfg := testConfig(t)
	var buf bytes.Buffer
	logging.SetupWriter(&buf, 2)
	defer logging.SetupWriter(io.Discard, 0)

	recognizer := fixedRecognizer{
		{0xFF0000, 0x0000FF},
		{0x0000FF, 0xFF0000},
		{},
	}
	_, err := solve.Solve(context.Background(), solve.SolveOptions{
		Path:       writePNG(t),
		Config:     cfg,
		Capacity:   2,
		Recognizer: recognizer,
		NoCache:    true,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"operation":"recognize screenshot"`)
	assert.Contains(t, out, "Operation started")
	assert.Contains(t, out, `"operation":"search"`)
	assert.Contains(t, out, "Operation completed")
}
