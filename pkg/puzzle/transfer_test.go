package puzzle_test

import (
	"testing"

	"github.com/arthur-debert/tubesort/pkg/errors"
	"github.com/arthur-debert/tubesort/pkg/puzzle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryPerformRejections(t *testing.T) {
	tests := []struct {
		name  string
		tubes []puzzle.Tube
		from  int
		to    int
		want  errors.ErrorCode
	}{
		{
			name:  "same tube",
			tubes: []puzzle.Tube{{A}, {}},
			from:  0, to: 0,
			want: errors.ErrSameTube,
		},
		{
			name:  "destination full",
			tubes: []puzzle.Tube{{A}, {B, B, B, A}},
			from:  0, to: 1,
			want: errors.ErrDestinationFull,
		},
		{
			name:  "destination full is checked before source empty",
			tubes: []puzzle.Tube{{}, {A, B, C, D}},
			from:  0, to: 1,
			want: errors.ErrDestinationFull,
		},
		{
			name:  "source empty",
			tubes: []puzzle.Tube{{}, {A}},
			from:  0, to: 1,
			want: errors.ErrSourceEmpty,
		},
		{
			name:  "source already solved even onto an empty tube",
			tubes: []puzzle.Tube{{A, A, A, A}, {}},
			from:  0, to: 1,
			want: errors.ErrSourceAlreadySolved,
		},
		{
			name:  "color mismatch",
			tubes: []puzzle.Tube{{A}, {B}},
			from:  0, to: 1,
			want: errors.ErrColorMismatchOrOverflow,
		},
		{
			name:  "run does not fit",
			tubes: []puzzle.Tube{{B, A, A, A}, {A, A}},
			from:  0, to: 1,
			want: errors.ErrColorMismatchOrOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := puzzle.MustState(puzzle.DefaultCapacity, tt.tubes...)
			before := s.Clone()

			_, err := puzzle.TryPerform(s, tt.from, tt.to)

			require.Error(t, err)
			assert.Equal(t, tt.want, errors.GetErrorCode(err))
			assert.True(t, errors.IsRejection(err))
			assert.True(t, s.Equal(before), "input state must not change")
		})
	}
}

func TestTryPerformOutOfRange(t *testing.T) {
	s := puzzle.MustState(4, puzzle.Tube{A}, puzzle.Tube{})

	for _, tr := range []puzzle.Transfer{{From: -1, To: 0}, {From: 0, To: 2}} {
		_, err := tr.Apply(s)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		assert.False(t, errors.IsRejection(err))
	}
}

func TestTryPerformMovesWholeRun(t *testing.T) {
	tests := []struct {
		name     string
		tubes    []puzzle.Tube
		from, to int
		want     []puzzle.Tube
	}{
		{
			name:  "onto empty tube",
			tubes: []puzzle.Tube{{B, A, A}, {}},
			from:  0, to: 1,
			want: []puzzle.Tube{{B}, {A, A}},
		},
		{
			name:  "onto matching top",
			tubes: []puzzle.Tube{{C, A}, {B, A}},
			from:  0, to: 1,
			want: []puzzle.Tube{{C}, {B, A, A}},
		},
		{
			name:  "run filling the destination exactly",
			tubes: []puzzle.Tube{{B, A, A}, {A, A}},
			from:  0, to: 1,
			want: []puzzle.Tube{{B}, {A, A, A, A}},
		},
		{
			name:  "partial uniform tube may move",
			tubes: []puzzle.Tube{{A, A, A}, {}, {C}},
			from:  0, to: 1,
			want: []puzzle.Tube{{}, {A, A, A}, {C}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := puzzle.MustState(puzzle.DefaultCapacity, tt.tubes...)
			before := s.Clone()
			run := s.Tubes[tt.from].CountTopColor()

			next, err := puzzle.TryPerform(s, tt.from, tt.to)
			require.NoError(t, err)

			want := puzzle.MustState(puzzle.DefaultCapacity, tt.want...)
			assert.True(t, next.Equal(want), "got\n%s\nwant\n%s", next, want)
			assert.Equal(t, len(before.Tubes[tt.from])-run, len(next.Tubes[tt.from]))
			assert.Equal(t, len(before.Tubes[tt.to])+run, len(next.Tubes[tt.to]))
			assert.True(t, s.Equal(before), "input state must not change")
			assert.Equal(t, s.Units(), next.Units())
		})
	}
}

func TestTryPerformResultDoesNotAliasInput(t *testing.T) {
	s := puzzle.MustState(4, puzzle.Tube{B, A}, puzzle.Tube{A}, puzzle.Tube{})

	next, err := puzzle.TryPerform(s, 0, 1)
	require.NoError(t, err)

	for i := range next.Tubes {
		for j := range next.Tubes[i] {
			next.Tubes[i][j] = D
		}
	}
	assert.True(t, s.Equal(puzzle.MustState(4, puzzle.Tube{B, A}, puzzle.Tube{A}, puzzle.Tube{})))
}

func TestTryPerformLargerCapacity(t *testing.T) {
	// A uniform but not full tube is not a solved block, whatever its size.
	s := puzzle.MustState(6, puzzle.Tube{A, A, A, A}, puzzle.Tube{})

	next, err := puzzle.TryPerform(s, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, puzzle.Tube{A, A, A, A}, next.Tubes[1])

	full := puzzle.MustState(6, puzzle.Tube{A, A, A, A, A, A}, puzzle.Tube{})
	_, err = puzzle.TryPerform(full, 0, 1)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceAlreadySolved))
}

func TestParseTransfers(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []puzzle.Transfer
		wantErr bool
	}{
		{"comma separated", "0-2,1-0", []puzzle.Transfer{{From: 0, To: 2}, {From: 1, To: 0}}, false},
		{"spaces and arrows", " 0>2  1-0\n3-1 ", []puzzle.Transfer{{From: 0, To: 2}, {From: 1, To: 0}, {From: 3, To: 1}}, false},
		{"empty input", "", []puzzle.Transfer{}, false},
		{"missing destination", "0-", nil, true},
		{"missing separator", "02", nil, true},
		{"not a number", "a-1", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := puzzle.ParseTransfers(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrParse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransferStringRoundTrip(t *testing.T) {
	tr := puzzle.Transfer{From: 3, To: 11}
	assert.Equal(t, "3-11", tr.String())

	parsed, err := puzzle.ParseTransfers(tr.String())
	require.NoError(t, err)
	assert.Equal(t, []puzzle.Transfer{tr}, parsed)
}
