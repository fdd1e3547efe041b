package engine

import (
	"github.com/gnt-ai/searchcore/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // exact score
	TTLowerBound               // failed high (beta cutoff)
	TTUpperBound               // failed low
)

// TTEntry represents an entry in the transposition table.
type TTEntry struct {
	Key      uint32     // upper 32 bits of the Zobrist hash, for verification
	BestMove board.Move // best move found from this position
	Score    int16      // score, bounded by Flag
	Depth    int8       // search depth this entry was stored at
	Flag     TTFlag     // type of bound
	Age      uint8      // generation, for replacement
}

// occupied reports whether the slot holds a real entry.
func (e *TTEntry) occupied() bool {
	return e.Depth > 0 || e.Flag != TTExact || e.BestMove != 0
}

// TranspositionTable is a fixed-size hash table of search results, keyed
// by the low bits of the Zobrist hash and verified by the high bits.
// Grounded on the teacher's TranspositionTable; extended with the
// high/low water-mark eviction sweep described for this engine (the
// teacher relies on per-probe age-based replacement alone).
type TranspositionTable struct {
	entries []TTEntry
	size    uint64
	mask    uint64
	age     uint8
	used    uint64

	hits   uint64
	probes uint64
}

// highWaterMark and lowWaterMark are permille (parts-per-thousand)
// occupancy thresholds: crossing the high mark on Store triggers an
// eviction sweep that removes entries from the oldest generations first
// until occupancy falls back to the low mark.
const (
	highWaterMarkPermille = 800
	lowWaterMarkPermille  = 500
)

// NewTranspositionTable creates a transposition table sized to fit
// roughly sizeMB megabytes.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	const entrySize = uint64(16)
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize
	numEntries = roundDownToPowerOf2(numEntries)
	if numEntries == 0 {
		numEntries = 1
	}

	return &TranspositionTable{
		entries: make([]TTEntry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

func roundDownToPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up a position in the table.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes++

	idx := hash & tt.mask
	entry := tt.entries[idx]

	if entry.occupied() && entry.Key == uint32(hash>>32) {
		tt.hits++
		return entry, true
	}

	return TTEntry{}, false
}

// Store saves a position's search result, then sweeps the table if
// occupancy crossed the high water mark. An empty slot or an entry from an
// older search is always overwritten. Within the current search a deeper
// store always replaces, a store more than two plies shallower never does,
// at equal depth a bound does not overwrite an exact score, and otherwise
// the newer write wins.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int, flag TTFlag, bestMove board.Move) {
	idx := hash & tt.mask
	entry := &tt.entries[idx]

	wasOccupied := entry.occupied()
	replace := !wasOccupied || entry.Age != tt.age
	if !replace {
		old := int(entry.Depth)
		switch {
		case depth > old:
			replace = true
		case depth == old:
			replace = flag == TTExact || entry.Flag != TTExact
		default:
			replace = old <= depth+2
		}
	}
	if replace {
		entry.Key = uint32(hash >> 32)
		entry.BestMove = bestMove
		entry.Score = int16(score)
		entry.Depth = int8(depth)
		entry.Flag = flag
		entry.Age = tt.age

		if !wasOccupied {
			tt.used++
			if tt.used*1000/tt.size >= highWaterMarkPermille {
				tt.evictToLowWaterMark()
			}
		}
	}
}

// evictToLowWaterMark clears entries from the oldest generation first
// until occupancy falls to lowWaterMarkPermille, per spec.md §4.4.
func (tt *TranspositionTable) evictToLowWaterMark() {
	target := tt.size * lowWaterMarkPermille / 1000

	for age := uint8(0); age < tt.age && tt.used > target; age++ {
		for i := range tt.entries {
			if tt.used <= target {
				break
			}
			if tt.entries[i].occupied() && tt.entries[i].Age == age {
				tt.entries[i] = TTEntry{}
				tt.used--
			}
		}
	}

	// Oldest generations alone may not be enough if the current
	// generation itself is dense; fall back to scanning everything.
	if tt.used > target {
		for i := range tt.entries {
			if tt.used <= target {
				break
			}
			if tt.entries[i].occupied() {
				tt.entries[i] = TTEntry{}
				tt.used--
			}
		}
	}
}

// NewSearch increments the age counter for a new search.
func (tt *TranspositionTable) NewSearch() {
	tt.age++
}

// Clear empties the table.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.age = 0
	tt.used = 0
	tt.hits = 0
	tt.probes = 0
}

// HashFull returns the permille of the table currently occupied.
func (tt *TranspositionTable) HashFull() int {
	return int(tt.used * 1000 / tt.size)
}

// HitRate returns the probe hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// Size returns the number of slots in the table.
func (tt *TranspositionTable) Size() uint64 {
	return tt.size
}

// AdjustScoreFromTT converts a stored mate score into one relative to the
// current ply: mate distances are stored relative to the stored position
// itself rather than to the root, so that equal positions found at
// different plies still share a TT slot.
func AdjustScoreFromTT(score int, ply int) int {
	if score > Mate-MaxPly {
		return score - ply
	}
	if score < -Mate+MaxPly {
		return score + ply
	}
	return score
}

// AdjustScoreToTT is the inverse of AdjustScoreFromTT, applied before storing.
func AdjustScoreToTT(score int, ply int) int {
	if score > Mate-MaxPly {
		return score + ply
	}
	if score < -Mate+MaxPly {
		return score - ply
	}
	return score
}
