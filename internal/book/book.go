// Package book implements the engine's opening book lookup. Guard &
// Towers has no standard opening-book wire format (unlike chess's
// Polyglot), so this package defines a small interface and an
// in-memory implementation instead of a file-format parser.
package book

import (
	"math/rand"

	"github.com/gnt-ai/searchcore/internal/board"
)

// Entry is one candidate move for a position, with a relative weight
// used for weighted-random selection.
type Entry struct {
	Move   board.Move
	Weight uint16
}

// Book looks up a recommended opening move for a position.
type Book interface {
	// Pick returns a move to play from s and true, or NoMove and false if
	// the book has no entry for this position.
	Pick(s *board.GameState) (board.Move, bool)
}

// MapBook is an in-memory Book keyed by Zobrist hash, grounded on the
// teacher's Polyglot reader's in-memory shape (map[hash][]Entry with
// weighted selection) minus the wire-format parsing it no longer needs.
type MapBook struct {
	entries map[uint64][]Entry
	rng     *rand.Rand
}

// NewMapBook creates an empty book.
func NewMapBook(seed int64) *MapBook {
	return &MapBook{
		entries: make(map[uint64][]Entry),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Add registers a candidate move for the position hashing to key.
func (b *MapBook) Add(key uint64, move board.Move, weight uint16) {
	b.entries[key] = append(b.entries[key], Entry{Move: move, Weight: weight})
}

// Pick implements Book with weighted-random selection among the entries
// registered for s.Zobrist.
func (b *MapBook) Pick(s *board.GameState) (board.Move, bool) {
	candidates, ok := b.entries[s.Zobrist]
	if !ok || len(candidates) == 0 {
		return board.NoMove, false
	}

	var total int
	for _, c := range candidates {
		total += int(c.Weight)
	}
	if total == 0 {
		return candidates[0].Move, true
	}

	pick := b.rng.Intn(total)
	for _, c := range candidates {
		pick -= int(c.Weight)
		if pick < 0 {
			return c.Move, true
		}
	}
	return candidates[len(candidates)-1].Move, true
}

// Len returns the number of positions the book has entries for.
func (b *MapBook) Len() int {
	return len(b.entries)
}
