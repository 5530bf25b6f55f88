package puzzle

import (
	"fmt"
	"strings"
)

// DefaultCapacity is the number of units a tube holds unless configured otherwise.
const DefaultCapacity = 4

// Color identifies the color of one unit. It is an opaque token: the only
// meaningful operation is equality.
type Color uint32

// String returns the token as a packed hex value
func (c Color) String() string {
	return fmt.Sprintf("#%06X", uint32(c))
}

// Tube is a stack of units, bottom first. The last element is the top.
type Tube []Color

// Top returns the top unit of the tube
func (t Tube) Top() (Color, bool) {
	if len(t) == 0 {
		return 0, false
	}
	return t[len(t)-1], true
}

// CountTopColor returns how many consecutive units from the top share the
// top unit's color. An empty tube has a count of 0.
func (t Tube) CountTopColor() int {
	if len(t) == 0 {
		return 0
	}
	top := t[len(t)-1]
	count := 0
	for i := len(t) - 1; i >= 0 && t[i] == top; i-- {
		count++
	}
	return count
}

// IsFull reports whether the tube holds exactly capacity units
func (t Tube) IsFull(capacity int) bool {
	return len(t) == capacity
}

// IsSolved reports whether the tube is empty or completely filled with a
// single color.
func (t Tube) IsSolved(capacity int) bool {
	return len(t) == 0 || t.CountTopColor() == capacity
}

// Clone returns an independent copy of the tube
func (t Tube) Clone() Tube {
	if t == nil {
		return nil
	}
	c := make(Tube, len(t))
	copy(c, t)
	return c
}

// Equal reports whether both tubes hold the same units in the same order
func (t Tube) Equal(other Tube) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i] != other[i] {
			return false
		}
	}
	return true
}

func (t Tube) String() string {
	parts := make([]string, len(t))
	for i, c := range t {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
