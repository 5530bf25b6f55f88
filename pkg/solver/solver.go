// Package solver finds move-count-minimal solutions to tube puzzles with a
// breadth-first search over puzzle states.
package solver

import (
	"context"
	"time"

	"github.com/arthur-debert/tubesort/pkg/errors"
	"github.com/arthur-debert/tubesort/pkg/logging"
	"github.com/arthur-debert/tubesort/pkg/puzzle"
)

// DefaultProgressEvery is how many dequeued nodes pass between progress logs
const DefaultProgressEvery = 100000

// Options bounds and instruments a search. The zero value searches the whole
// reachable space.
type Options struct {
	// MaxStates stops the search with a SEARCH_LIMIT error once more than
	// this many distinct states have been seen. A solved state already
	// queued when the limit is crossed is still returned. 0 means no limit.
	MaxStates int

	// ProgressEvery sets how often progress is logged at debug level.
	// 0 uses DefaultProgressEvery; a negative value disables it.
	ProgressEvery int
}

// Result is the outcome of a search. An unsolvable puzzle is a normal result
// with Solved false, not an error.
type Result struct {
	Solved   bool              `json:"solved" cbor:"1,keyasint"`
	Path     []puzzle.Transfer `json:"path" cbor:"2,keyasint"`
	Explored int               `json:"explored" cbor:"3,keyasint"`
	Visited  int               `json:"visited" cbor:"4,keyasint"`
	Duration time.Duration     `json:"duration" cbor:"5,keyasint"`
}

// Moves returns the length of the solution path
func (r *Result) Moves() int {
	return len(r.Path)
}

// node is one entry of the search tree. The path to it is recovered by
// following parent links, so nodes only store the transfer that created them.
type node struct {
	parent   int
	transfer puzzle.Transfer
	state    puzzle.State
}

// Solver runs breadth-first searches. A Solver holds no search state between
// calls and each call owns its frontier and visited set exclusively.
type Solver struct {
	opts Options
}

// New creates a solver with the given options
func New(opts Options) *Solver {
	return &Solver{opts: opts}
}

// Solve is a convenience wrapper for New(opts).Solve(ctx, initial)
func Solve(ctx context.Context, initial puzzle.State, opts Options) (*Result, error) {
	return New(opts).Solve(ctx, initial)
}

// Solve searches from initial for the nearest solved state. Successors are
// expanded in the order of State.PossibleTransfers and a state is never
// enqueued twice, so the first solved state dequeued has the shortest path
// and repeated runs return the same path.
//
// The context is checked once per dequeued node.
func (s *Solver) Solve(ctx context.Context, initial puzzle.State) (*Result, error) {
	logger := logging.GetLogger("solver")
	start := time.Now()

	progressEvery := s.opts.ProgressEvery
	if progressEvery == 0 {
		progressEvery = DefaultProgressEvery
	}

	visited := map[string]struct{}{initial.Key(): {}}
	nodes := []node{{parent: -1, state: initial}}

	logger.Debug().
		Int("tubes", initial.Len()).
		Int("capacity", initial.Capacity).
		Int("maxStates", s.opts.MaxStates).
		Msg("Search started")

	for head := 0; head < len(nodes); head++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrSearchCancelled, "search interrupted").
				WithDetail("explored", head).
				WithDetail("visited", len(visited))
		}

		state := nodes[head].state
		// Expanded nodes only need their parent link from here on.
		nodes[head].state = puzzle.State{}

		if state.IsSolved() {
			return found(nodes, head, head+1, len(visited), start), nil
		}

		for _, step := range state.PossibleTransfers() {
			key := step.State.Key()
			if _, seen := visited[key]; seen {
				continue
			}
			visited[key] = struct{}{}
			nodes = append(nodes, node{parent: head, transfer: step.Transfer, state: step.State})
		}

		if s.opts.MaxStates > 0 && len(visited) > s.opts.MaxStates {
			// The queue is in dequeue order, so its first solved state is
			// the one the search would have reached next.
			for i := head + 1; i < len(nodes); i++ {
				if nodes[i].state.IsSolved() {
					return found(nodes, i, head+1, len(visited), start), nil
				}
			}
			return nil, errors.Newf(errors.ErrSearchLimit, "search gave up after %d states", s.opts.MaxStates).
				WithDetail("explored", head+1).
				WithDetail("visited", len(visited))
		}

		if progressEvery > 0 && (head+1)%progressEvery == 0 {
			logger.Debug().
				Int("explored", head+1).
				Int("frontier", len(nodes)-head-1).
				Int("visited", len(visited)).
				Msg("Search progress")
		}
	}

	result := &Result{
		Solved:   false,
		Explored: len(nodes),
		Visited:  len(visited),
		Duration: time.Since(start),
	}
	logger.Info().
		Int("explored", result.Explored).
		Int("visited", result.Visited).
		Dur("duration", result.Duration).
		Msg("Search space exhausted without a solution")
	return result, nil
}

// found builds the result for the solved state at nodes[i]
func found(nodes []node, i, explored, visited int, start time.Time) *Result {
	result := &Result{
		Solved:   true,
		Path:     pathTo(nodes, i),
		Explored: explored,
		Visited:  visited,
		Duration: time.Since(start),
	}
	logger := logging.GetLogger("solver")
	logger.Info().
		Int("moves", len(result.Path)).
		Int("explored", result.Explored).
		Int("visited", result.Visited).
		Dur("duration", result.Duration).
		Msg("Solution found")
	return result
}

// pathTo walks parent links from nodes[i] back to the root
func pathTo(nodes []node, i int) []puzzle.Transfer {
	depth := 0
	for j := i; nodes[j].parent >= 0; j = nodes[j].parent {
		depth++
	}
	path := make([]puzzle.Transfer, depth)
	for j := i; nodes[j].parent >= 0; j = nodes[j].parent {
		depth--
		path[depth] = nodes[j].transfer
	}
	return path
}
