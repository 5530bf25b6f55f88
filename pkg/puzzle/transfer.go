package puzzle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/tubesort/pkg/errors"
)

// Transfer is a pour from one tube to another, addressed by tube index. It
// carries no puzzle data.
type Transfer struct {
	From int `json:"from" yaml:"from" cbor:"1,keyasint"`
	To   int `json:"to" yaml:"to" cbor:"2,keyasint"`
}

// String formats the transfer as "from-to", the notation ParseTransfers reads
func (t Transfer) String() string {
	return fmt.Sprintf("%d-%d", t.From, t.To)
}

// Apply performs the transfer on s. See TryPerform.
func (t Transfer) Apply(s State) (State, error) {
	return TryPerform(s, t.From, t.To)
}

// TryPerform moves the whole top run of tube from onto tube to. The checks
// run in a fixed order and the first failing one decides the error code:
//
//  1. from == to: SAME_TUBE
//  2. the destination is full: DESTINATION_FULL
//  3. the source is empty: SOURCE_EMPTY
//  4. the source is one full block of a single color: SOURCE_ALREADY_SOLVED
//  5. the destination is non-empty and its top color differs, or the run does
//     not fit: COLOR_MISMATCH_OR_OVERFLOW
//
// On success the returned state is a new value; s is never modified.
func TryPerform(s State, from, to int) (State, error) {
	n := len(s.Tubes)
	if from < 0 || from >= n || to < 0 || to >= n {
		return State{}, errors.Newf(errors.ErrInvalidInput, "transfer %d-%d is out of range for %d tubes", from, to, n).
			WithDetail("from", from).
			WithDetail("to", to)
	}

	run, code := s.legality(from, to)
	if code != "" {
		return State{}, errors.New(code, rejectionMessage(code)).
			WithDetail("from", from).
			WithDetail("to", to)
	}
	return s.pour(from, to, run), nil
}

// legality returns the size of the run a pour from -> to would move, or the
// rejection code. Indices must be in range.
func (s State) legality(from, to int) (int, errors.ErrorCode) {
	if from == to {
		return 0, errors.ErrSameTube
	}
	src, dst := s.Tubes[from], s.Tubes[to]
	if dst.IsFull(s.Capacity) {
		return 0, errors.ErrDestinationFull
	}
	if len(src) == 0 {
		return 0, errors.ErrSourceEmpty
	}
	run := src.CountTopColor()
	if run == s.Capacity {
		return 0, errors.ErrSourceAlreadySolved
	}
	if len(dst) == 0 {
		return run, ""
	}
	if dst[len(dst)-1] == src[len(src)-1] && run+len(dst) <= s.Capacity {
		return run, ""
	}
	return 0, errors.ErrColorMismatchOrOverflow
}

// pour copies the two tubes out, moves run units between the copies and
// writes both into a fresh state.
func (s State) pour(from, to, run int) State {
	next := s.Clone()
	src, dst := next.Tubes[from], next.Tubes[to]
	cut := len(src) - run
	dst = append(dst, src[cut:]...)
	src = src[:cut]
	next.Tubes[from] = src
	next.Tubes[to] = dst
	return next
}

func rejectionMessage(code errors.ErrorCode) string {
	switch code {
	case errors.ErrSameTube:
		return "source and destination are the same tube"
	case errors.ErrDestinationFull:
		return "destination tube is full"
	case errors.ErrSourceEmpty:
		return "source tube is empty"
	case errors.ErrSourceAlreadySolved:
		return "source tube is already a solved block"
	case errors.ErrColorMismatchOrOverflow:
		return "top colors differ or the run does not fit"
	default:
		return "transfer rejected"
	}
}

// ParseTransfers reads a list of transfers such as "0-2, 1-0 1>2". Pairs are
// separated by commas or whitespace; from and to by '-' or '>'.
func ParseTransfers(input string) ([]Transfer, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
	transfers := make([]Transfer, 0, len(fields))
	for _, field := range fields {
		sep := strings.IndexAny(field, "->")
		if sep <= 0 || sep == len(field)-1 {
			return nil, errors.Newf(errors.ErrParse, "malformed transfer %q, want FROM-TO", field)
		}
		from, err := strconv.Atoi(field[:sep])
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrParse, "malformed source in %q", field)
		}
		to, err := strconv.Atoi(field[sep+1:])
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrParse, "malformed destination in %q", field)
		}
		transfers = append(transfers, Transfer{From: from, To: to})
	}
	return transfers, nil
}
