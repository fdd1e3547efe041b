// Package gnterr defines the engine's error taxonomy: invalid positions,
// illegal moves, a cooperative interrupt sentinel, and search exhaustion.
// Wrapping uses github.com/pkg/errors for cause chains. The board and
// engine packages do not return these values; ParseFEN reports failures
// with plain fmt errors.
package gnterr

import "github.com/pkg/errors"

// Interrupted is returned (never wrapped) when a search or parse was
// cancelled cooperatively, e.g. by TimeCtl's watchdog. Callers compare
// against it with errors.Is rather than inspecting a message string.
var Interrupted = errors.New("interrupted")

// Exhausted names a search that ran out of depth budget without
// completing even depth 1. FindBest returns only a Move, never this
// error, and in that case falls back to the first legal move.
var Exhausted = errors.New("search exhausted without completing a ply")

// InvalidPosition wraps a parse or construction failure in a position
// string, preserving the underlying cause.
type InvalidPosition struct {
	cause error
	input string
}

// NewInvalidPosition wraps cause as an InvalidPosition error for input.
func NewInvalidPosition(input string, cause error) error {
	return errors.WithStack(&InvalidPosition{cause: cause, input: input})
}

func (e *InvalidPosition) Error() string {
	return "invalid position \"" + e.input + "\": " + e.cause.Error()
}

func (e *InvalidPosition) Unwrap() error {
	return e.cause
}

// IllegalMove indicates a move string or Move value that does not
// correspond to a legal move in the given position. In debug builds
// callers may choose to panic on this rather than propagate it, since a
// move reaching ApplyMove is expected to already be validated against
// GenerateAll.
type IllegalMove struct {
	Move string
}

// NewIllegalMove constructs an IllegalMove error for the given move text.
func NewIllegalMove(move string) error {
	return errors.WithStack(&IllegalMove{Move: move})
}

func (e *IllegalMove) Error() string {
	return "illegal move: " + e.Move
}
