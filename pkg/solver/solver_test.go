package solver_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/arthur-debert/tubesort/pkg/errors"
	"github.com/arthur-debert/tubesort/pkg/puzzle"
	"github.com/arthur-debert/tubesort/pkg/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	A puzzle.Color = iota + 1
	B
	C
	D
)

func solve(t *testing.T, s puzzle.State) *solver.Result {
	t.Helper()
	result, err := solver.Solve(context.Background(), s, solver.Options{})
	require.NoError(t, err)
	return result
}

// requireReplaySolves applies the path to the initial state and checks that
// every step is legal and the final state is solved.
func requireReplaySolves(t *testing.T, initial puzzle.State, path []puzzle.Transfer) {
	t.Helper()
	current := initial
	for i, tr := range path {
		next, err := puzzle.TryPerform(current, tr.From, tr.To)
		require.NoError(t, err, "step %d (%s)", i, tr)
		current = next
	}
	assert.True(t, current.IsSolved(), "final state not solved:\n%s", current)
}

func TestSolveAlreadySolved(t *testing.T) {
	s := puzzle.MustState(4, puzzle.Tube{A, A, A, A}, puzzle.Tube{})

	result := solve(t, s)

	assert.True(t, result.Solved)
	assert.Empty(t, result.Path)
	assert.Equal(t, 1, result.Explored)
}

func TestSolveSingleUniformTubeWithEmptyTube(t *testing.T) {
	s := puzzle.MustState(4, puzzle.Tube{C, C, C, C}, puzzle.Tube{})
	require.True(t, s.IsSolved())

	result := solve(t, s)
	assert.True(t, result.Solved)
	assert.Equal(t, 0, result.Moves())
}

// With capacity 4 a tube only counts as solved when it is empty or holds four
// units of one color. Two units per color can never get there.
func TestSolveTwoUnitsPerColorIsUnsolvableAtCapacityFour(t *testing.T) {
	s := puzzle.MustState(4, puzzle.Tube{A, B}, puzzle.Tube{B, A}, puzzle.Tube{})

	result := solve(t, s)

	assert.False(t, result.Solved)
	assert.Nil(t, result.Path)
	assert.Greater(t, result.Visited, 1)
}

func TestSolveTwoUnitsPerColorAtCapacityTwo(t *testing.T) {
	s := puzzle.MustState(2, puzzle.Tube{A, B}, puzzle.Tube{B, A}, puzzle.Tube{})

	result := solve(t, s)

	require.True(t, result.Solved)
	assert.Equal(t, []puzzle.Transfer{{From: 0, To: 2}, {From: 1, To: 0}, {From: 1, To: 2}}, result.Path)
	requireReplaySolves(t, s, result.Path)
}

func TestSolveThreeMovePuzzle(t *testing.T) {
	s := puzzle.MustState(4, puzzle.Tube{A, A, A, B}, puzzle.Tube{B, B, B, A}, puzzle.Tube{})

	result := solve(t, s)

	require.True(t, result.Solved)
	assert.Equal(t, []puzzle.Transfer{{From: 0, To: 2}, {From: 1, To: 0}, {From: 1, To: 2}}, result.Path)
	requireReplaySolves(t, s, result.Path)
}

func TestSolveNoLegalMoves(t *testing.T) {
	// Every tube is full, so nothing can ever move.
	s := puzzle.MustState(4,
		puzzle.Tube{A, A, B, B},
		puzzle.Tube{B, B, C, C},
		puzzle.Tube{C, C, A, A},
	)

	result := solve(t, s)

	assert.False(t, result.Solved)
	assert.Empty(t, result.Path)
	assert.Equal(t, 1, result.Visited)
}

func TestSolveIsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 5; i++ {
		s := randomState(rng, 4, 3, 2)

		first := solve(t, s)
		second := solve(t, s)

		assert.Equal(t, first.Solved, second.Solved)
		assert.Equal(t, first.Path, second.Path)
		assert.Equal(t, first.Visited, second.Visited)
	}
}

func TestSolveDoesNotModifyInitialState(t *testing.T) {
	s := puzzle.MustState(4, puzzle.Tube{A, A, A, B}, puzzle.Tube{B, B, B, A}, puzzle.Tube{})
	before := s.Clone()

	solve(t, s)

	assert.True(t, s.Equal(before))
}

func TestSolveIsOptimal(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	checked := 0
	for attempt := 0; attempt < 40 && checked < 8; attempt++ {
		s := randomState(rng, 3, 3, 2)

		result := solve(t, s)
		if !result.Solved {
			continue
		}
		checked++

		requireReplaySolves(t, s, result.Path)
		assert.Equal(t, shortestDistance(s, len(result.Path)), len(result.Path))
	}
	require.Positive(t, checked, "no solvable puzzle generated")
}

func TestSolveMaxStates(t *testing.T) {
	s := puzzle.MustState(4, puzzle.Tube{A, B}, puzzle.Tube{B, A}, puzzle.Tube{})

	_, err := solver.Solve(context.Background(), s, solver.Options{MaxStates: 2})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSearchLimit))
}

func TestSolveMaxStatesKeepsQueuedSolution(t *testing.T) {
	// Capacity 2: the first solved state is queued while the fifth and
	// sixth distinct states are still being discovered.
	s := puzzle.MustState(2, puzzle.Tube{A, B}, puzzle.Tube{B, A}, puzzle.Tube{})
	want := []puzzle.Transfer{{From: 0, To: 2}, {From: 1, To: 0}, {From: 1, To: 2}}

	tests := []struct {
		name      string
		maxStates int
		wantErr   bool
	}{
		{"limit crossed with a solved state queued", 5, false},
		{"limit crossed before any solved state", 4, true},
		{"no limit", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := solver.Solve(context.Background(), s, solver.Options{MaxStates: tt.maxStates})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrSearchLimit))
				return
			}
			require.NoError(t, err)
			assert.True(t, result.Solved)
			assert.Equal(t, want, result.Path)
			requireReplaySolves(t, s, result.Path)
		})
	}
}

func TestSolveCancelled(t *testing.T) {
	s := puzzle.MustState(4, puzzle.Tube{A, A, A, B}, puzzle.Tube{B, B, B, A}, puzzle.Tube{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.New(solver.Options{}).Solve(ctx, s)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSearchCancelled))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolveDeadline(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := solver.Solve(ctx, puzzle.MustState(4, puzzle.Tube{A}), solver.Options{})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// shortestDistance finds the true distance to the nearest solved state by
// iterative deepening, without the visited set the solver relies on. It
// gives up at limit and returns limit+1.
func shortestDistance(s puzzle.State, limit int) int {
	for depth := 0; depth <= limit; depth++ {
		if solvableWithin(s, depth, make(map[string]int)) {
			return depth
		}
	}
	return limit + 1
}

func solvableWithin(s puzzle.State, depth int, failed map[string]int) bool {
	if s.IsSolved() {
		return true
	}
	if depth == 0 {
		return false
	}
	key := s.Key()
	if d, ok := failed[key]; ok && d >= depth {
		return false
	}
	for _, step := range s.PossibleTransfers() {
		if solvableWithin(step.State, depth-1, failed) {
			return true
		}
	}
	failed[key] = depth
	return false
}

func randomState(rng *rand.Rand, capacity, colors, spare int) puzzle.State {
	var units []puzzle.Color
	for c := 1; c <= colors; c++ {
		for i := 0; i < capacity; i++ {
			units = append(units, puzzle.Color(c))
		}
	}
	rng.Shuffle(len(units), func(i, j int) { units[i], units[j] = units[j], units[i] })

	tubes := make([]puzzle.Tube, colors+spare)
	for i := 0; i < colors; i++ {
		tubes[i] = puzzle.Tube(units[i*capacity : (i+1)*capacity])
	}
	return puzzle.MustState(capacity, tubes...)
}
