package puzzle_test

import (
	"math/rand"
	"testing"

	"github.com/arthur-debert/tubesort/pkg/errors"
	"github.com/arthur-debert/tubesort/pkg/puzzle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateValidation(t *testing.T) {
	_, err := puzzle.NewState(4, puzzle.Tube{A, A, A, A, A})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Equal(t, 0, errors.GetErrorDetails(err)["tube"])

	_, err = puzzle.NewState(0)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	tubes := []puzzle.Tube{{A, B}, {}}
	s, err := puzzle.NewState(4, tubes...)
	require.NoError(t, err)
	tubes[0][0] = C
	assert.Equal(t, A, s.Tubes[0][0], "NewState must copy its input")
}

func TestStateIsSolved(t *testing.T) {
	tests := []struct {
		name  string
		state puzzle.State
		want  bool
	}{
		{"no tubes", puzzle.MustState(4), true},
		{"full uniform and empty", puzzle.MustState(4, puzzle.Tube{A, A, A, A}, puzzle.Tube{}), true},
		{"two full uniform tubes", puzzle.MustState(4, puzzle.Tube{A, A, A, A}, puzzle.Tube{B, B, B, B}), true},
		{"one partial tube", puzzle.MustState(4, puzzle.Tube{A, A}, puzzle.Tube{A, A}), false},
		{"mixed tube", puzzle.MustState(4, puzzle.Tube{A, A, A, B}, puzzle.Tube{}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.IsSolved())
		})
	}
}

func TestPossibleTransfersOrder(t *testing.T) {
	s := puzzle.MustState(4, puzzle.Tube{A, B}, puzzle.Tube{B, A}, puzzle.Tube{})

	steps := s.PossibleTransfers()

	var got []puzzle.Transfer
	for _, step := range steps {
		got = append(got, step.Transfer)
	}
	assert.Equal(t, []puzzle.Transfer{{From: 0, To: 2}, {From: 1, To: 2}}, got)

	assert.True(t, steps[0].State.Equal(puzzle.MustState(4, puzzle.Tube{A}, puzzle.Tube{B, A}, puzzle.Tube{B})))
	assert.True(t, steps[1].State.Equal(puzzle.MustState(4, puzzle.Tube{A, B}, puzzle.Tube{B}, puzzle.Tube{A})))
}

func TestPossibleTransfersMatchesTryPerform(t *testing.T) {
	s := puzzle.MustState(4,
		puzzle.Tube{A, B, A},
		puzzle.Tube{B, A},
		puzzle.Tube{C, C, C, C},
		puzzle.Tube{},
		puzzle.Tube{B, B, C, A},
	)

	steps := s.PossibleTransfers()
	i := 0
	for from := 0; from < s.Len(); from++ {
		for to := 0; to < s.Len(); to++ {
			next, err := puzzle.TryPerform(s, from, to)
			if err != nil {
				assert.True(t, errors.IsRejection(err))
				continue
			}
			require.Less(t, i, len(steps))
			assert.Equal(t, puzzle.Transfer{From: from, To: to}, steps[i].Transfer)
			assert.True(t, next.Equal(steps[i].State))
			i++
		}
	}
	assert.Equal(t, len(steps), i)
}

func TestSolvedStateHasNoTransfers(t *testing.T) {
	s := puzzle.MustState(4,
		puzzle.Tube{A, A, A, A},
		puzzle.Tube{},
		puzzle.Tube{B, B, B, B},
		puzzle.Tube{},
	)
	require.True(t, s.IsSolved())
	assert.Empty(t, s.PossibleTransfers())
}

func TestStateKey(t *testing.T) {
	s1 := puzzle.MustState(4, puzzle.Tube{A, B}, puzzle.Tube{})
	s2 := puzzle.MustState(4, puzzle.Tube{A, B}, puzzle.Tube{})
	s3 := puzzle.MustState(4, puzzle.Tube{A}, puzzle.Tube{B})
	s4 := puzzle.MustState(4, puzzle.Tube{}, puzzle.Tube{A, B})
	s5 := puzzle.MustState(4, puzzle.Tube{A, B})

	assert.Equal(t, s1.Key(), s2.Key())
	assert.NotEqual(t, s1.Key(), s3.Key())
	assert.NotEqual(t, s1.Key(), s4.Key())
	assert.NotEqual(t, s1.Key(), s5.Key())
}

func TestStateKeyMatchesEquality(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	states := []puzzle.State{randomState(rng, 4, 3, 2)}
	for len(states) < 200 {
		steps := states[rng.Intn(len(states))].PossibleTransfers()
		if len(steps) == 0 {
			states = append(states, randomState(rng, 4, 3, 2))
			continue
		}
		states = append(states, steps[rng.Intn(len(steps))].State)
	}

	for i := range states {
		for j := range states {
			assert.Equal(t, states[i].Equal(states[j]), states[i].Key() == states[j].Key())
		}
	}
}

func TestReplay(t *testing.T) {
	s := puzzle.MustState(4, puzzle.Tube{A, A, A, B}, puzzle.Tube{B, B, B, A}, puzzle.Tube{})

	final, err := s.Replay([]puzzle.Transfer{{From: 0, To: 2}, {From: 1, To: 0}, {From: 2, To: 1}})
	require.NoError(t, err)
	assert.True(t, final.IsSolved())

	_, err = s.Replay([]puzzle.Transfer{{From: 0, To: 2}, {From: 0, To: 1}})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDestinationFull))
	assert.Equal(t, 1, errors.GetErrorDetails(err)["step"])
}

// Random walks over legal transfers must conserve units and never overfill
// a tube.
func TestRandomWalkInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for walk := 0; walk < 50; walk++ {
		s := randomState(rng, 4, 4, 2)
		units := s.Units()

		for step := 0; step < 40; step++ {
			steps := s.PossibleTransfers()
			if len(steps) == 0 {
				break
			}
			pick := steps[rng.Intn(len(steps))]
			run := s.Tubes[pick.Transfer.From].CountTopColor()

			assert.Equal(t, len(s.Tubes[pick.Transfer.From])-run, len(pick.State.Tubes[pick.Transfer.From]))
			assert.Equal(t, len(s.Tubes[pick.Transfer.To])+run, len(pick.State.Tubes[pick.Transfer.To]))

			s = pick.State
			assert.Equal(t, units, s.Units())
			for _, tube := range s.Tubes {
				assert.LessOrEqual(t, len(tube), s.Capacity)
			}
		}
	}
}

func TestColorsFirstAppearance(t *testing.T) {
	s := puzzle.MustState(4, puzzle.Tube{C, A}, puzzle.Tube{A, B})
	assert.Equal(t, []puzzle.Color{C, A, B}, s.Colors())
}

// randomState shuffles capacity units of each of colors colors across
// colors+spare tubes.
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
