package testutil

import (
	"testing"

	"github.com/arthur-debert/tubesort/pkg/puzzle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSolves replays path on initial and checks it ends solved with the
// color units conserved
func AssertSolves(t *testing.T, initial puzzle.State, path []puzzle.Transfer) puzzle.State {
	t.Helper()

	final, err := initial.Replay(path)
	require.NoError(t, err, "path does not replay")
	assert.True(t, final.IsSolved(), "path ends in %s", final)
	assert.Equal(t, initial.Units(), final.Units(), "colors not conserved")
	return final
}
