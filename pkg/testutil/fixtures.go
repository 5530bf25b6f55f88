package testutil

// Sample puzzle files. Labels are single letters, tubes bottom to top.
const (
	// TwoColorPuzzle needs three moves: 0-2, 1-0, 1-2
	TwoColorPuzzle = `capacity: 2
tubes:
  - [r, b]
  - [b, r]
  - []
`

	// SolvedPuzzle is already sorted
	SolvedPuzzle = `capacity: 2
tubes:
  - [r, r]
  - [b, b]
  - []
`

	// UnsolvablePuzzle has no empty tube and no legal move
	UnsolvablePuzzle = `capacity: 4
tubes:
  - [r, b, r, b]
  - [b, r, b, r]
`
)
