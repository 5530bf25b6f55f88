// Package commands provides high-level command implementations for tubesort.
//
// This package is the orchestration layer between the CLI and the core
// puzzle, solver and recognition packages. Each command lives in its own
// subdirectory:
//   - solve/     - Solve command
//   - check/     - Check command
//   - recognize/ - Recognize command
//   - internal/  - Shared puzzle and screenshot loading
//
// This file re-exports the command functions.
package commands

import (
	"context"

	"github.com/arthur-debert/tubesort/pkg/commands/check"
	"github.com/arthur-debert/tubesort/pkg/commands/recognize"
	"github.com/arthur-debert/tubesort/pkg/commands/solve"
)

// SolveOptions configures Solve
type SolveOptions = solve.SolveOptions

// SolveResult is returned by Solve
type SolveResult = solve.SolveResult

// Solve loads a puzzle and finds its shortest solution
func Solve(ctx context.Context, opts SolveOptions) (*SolveResult, error) {
	return solve.Solve(ctx, opts)
}

// CheckOptions configures Check
type CheckOptions = check.CheckOptions

// CheckResult is returned by Check
type CheckResult = check.CheckResult

// Check replays a move list on a puzzle
func Check(opts CheckOptions) (*CheckResult, error) {
	return check.Check(opts)
}

// RecognizeOptions configures Recognize
type RecognizeOptions = recognize.RecognizeOptions

// RecognizeResult is returned by Recognize
type RecognizeResult = recognize.RecognizeResult

// Recognize reads the tubes of a screenshot into a puzzle file
func Recognize(opts RecognizeOptions) (*RecognizeResult, error) {
	return recognize.Recognize(opts)
}
