// Package puzzle models the color-sort tube puzzle: tubes holding stacks of
// colored units, the puzzle state made of those tubes, and the pour moves
// (transfers) between them.
//
// States are values. Applying a transfer never mutates its input; it returns
// a new, independently owned state.
package puzzle
