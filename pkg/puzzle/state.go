package puzzle

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/arthur-debert/tubesort/pkg/errors"
)

// State is one arrangement of units across a fixed set of tubes. Tubes are
// addressed by their index, which is what transfers refer to.
type State struct {
	Tubes    []Tube
	Capacity int
}

// Step pairs a legal transfer with the state it produces.
type Step struct {
	Transfer Transfer
	State    State
}

// NewState builds a state after checking that every tube fits in capacity.
// The tubes are copied; the caller keeps ownership of its slices.
func NewState(capacity int, tubes ...Tube) (State, error) {
	if capacity < 1 {
		return State{}, errors.Newf(errors.ErrInvalidInput, "tube capacity must be at least 1, got %d", capacity).
			WithDetail("capacity", capacity)
	}
	s := State{
		Tubes:    make([]Tube, len(tubes)),
		Capacity: capacity,
	}
	for i, t := range tubes {
		if len(t) > capacity {
			return State{}, errors.Newf(errors.ErrInvalidInput, "tube %d holds %d units, capacity is %d", i, len(t), capacity).
				WithDetail("tube", i).
				WithDetail("units", len(t)).
				WithDetail("capacity", capacity)
		}
		s.Tubes[i] = t.Clone()
	}
	return s, nil
}

// MustState is NewState for literals known to be valid. It panics otherwise.
func MustState(capacity int, tubes ...Tube) State {
	s, err := NewState(capacity, tubes...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of tubes
func (s State) Len() int {
	return len(s.Tubes)
}

// IsSolved reports whether every tube is empty or full of one color
func (s State) IsSolved() bool {
	for _, t := range s.Tubes {
		if !t.IsSolved(s.Capacity) {
			return false
		}
	}
	return true
}

// PossibleTransfers tries every ordered pair of distinct tubes, source
// ascending then destination ascending, and returns the legal ones with their
// resulting states. The order is stable and decides which of several equally
// short solutions a search reports.
func (s State) PossibleTransfers() []Step {
	var steps []Step
	for from := range s.Tubes {
		for to := range s.Tubes {
			if from == to {
				continue
			}
			run, code := s.legality(from, to)
			if code != "" {
				continue
			}
			steps = append(steps, Step{
				Transfer: Transfer{From: from, To: to},
				State:    s.pour(from, to, run),
			})
		}
	}
	return steps
}

// Clone returns a deep copy of the state
func (s State) Clone() State {
	c := State{
		Tubes:    make([]Tube, len(s.Tubes)),
		Capacity: s.Capacity,
	}
	for i, t := range s.Tubes {
		c.Tubes[i] = t.Clone()
	}
	return c
}

// Equal reports structural equality: same capacity, same tubes in the same
// order, each with the same units in the same order.
func (s State) Equal(other State) bool {
	if s.Capacity != other.Capacity || len(s.Tubes) != len(other.Tubes) {
		return false
	}
	for i := range s.Tubes {
		if !s.Tubes[i].Equal(other.Tubes[i]) {
			return false
		}
	}
	return true
}

// Key returns a canonical encoding of the tubes. Two states with the same
// capacity have the same key exactly when they are Equal. Each tube is
// written as its length followed by its units, so no separator can collide
// with a color value.
func (s State) Key() string {
	buf := make([]byte, 0, len(s.Tubes)*(1+4*s.Capacity))
	for _, t := range s.Tubes {
		buf = binary.AppendUvarint(buf, uint64(len(t)))
		for _, c := range t {
			buf = binary.BigEndian.AppendUint32(buf, uint32(c))
		}
	}
	return string(buf)
}

// Units counts the units of each color across all tubes
func (s State) Units() map[Color]int {
	units := make(map[Color]int)
	for _, t := range s.Tubes {
		for _, c := range t {
			units[c]++
		}
	}
	return units
}

// Colors returns the distinct colors in order of first appearance, scanning
// tubes in index order and each tube bottom to top.
func (s State) Colors() []Color {
	seen := make(map[Color]bool)
	var colors []Color
	for _, t := range s.Tubes {
		for _, c := range t {
			if !seen[c] {
				seen[c] = true
				colors = append(colors, c)
			}
		}
	}
	return colors
}

// Replay applies the transfers in order and returns the final state. It
// stops at the first illegal transfer; the error carries its index as the
// "step" detail.
func (s State) Replay(path []Transfer) (State, error) {
	current := s
	for i, tr := range path {
		next, err := tr.Apply(current)
		if err != nil {
			return State{}, errors.Wrapf(err, errors.GetErrorCode(err), "step %d (%s) is not a legal transfer", i+1, tr).
				WithDetail("step", i)
		}
		current = next
	}
	return current, nil
}

func (s State) String() string {
	var b strings.Builder
	for i, t := range s.Tubes {
		fmt.Fprintf(&b, "%d: %s\n", i, t)
	}
	return b.String()
}
