package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnt-ai/searchcore/internal/board"
)

func TestTranspositionTableStoreProbeRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(1)
	move := board.NewMove(board.NewSquare(3, 1), board.NewSquare(3, 3), 2)

	tt.Store(0xDEAD_BEEF_0000_0001, 6, 123, TTExact, move)

	entry, ok := tt.Probe(0xDEAD_BEEF_0000_0001)
	require.True(t, ok, "expected a hit for a stored key")
	assert.Equal(t, move, entry.BestMove)
	assert.EqualValues(t, 123, entry.Score)
	assert.EqualValues(t, 6, entry.Depth)
	assert.Equal(t, TTExact, entry.Flag)
}

func TestTranspositionTableProbeMissOnUnknownKey(t *testing.T) {
	tt := NewTranspositionTable(1)
	_, ok := tt.Probe(0x1234)
	assert.False(t, ok)
}

func TestTranspositionTableReplacesShallowerSameGenerationEntry(t *testing.T) {
	tt := NewTranspositionTable(1)
	key := uint64(1) // index 1 under the mask regardless of table size
	shallow := board.NewMove(0, 1, 1)
	deep := board.NewMove(1, 2, 1)

	tt.Store(key, 2, 10, TTExact, shallow)
	tt.Store(key, 8, 20, TTExact, deep)

	entry, ok := tt.Probe(key)
	require.True(t, ok)
	assert.Equal(t, deep, entry.BestMove, "deeper same-generation entry should win")
}

func TestTranspositionTableClearResetsOccupancy(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(42, 4, 0, TTExact, board.NewMove(0, 1, 1))
	require.Greater(t, tt.HashFull(), 0)

	tt.Clear()
	assert.Equal(t, 0, tt.HashFull())
	_, ok := tt.Probe(42)
	assert.False(t, ok)
}

func TestAdjustScoreToFromTTRoundTrip(t *testing.T) {
	cases := []struct{ score, ply int }{
		{100, 0},
		{Mate - 1, 5},
		{-Mate + 1, 5},
		{0, 10},
	}
	for _, c := range cases {
		stored := AdjustScoreToTT(c.score, c.ply)
		back := AdjustScoreFromTT(stored, c.ply)
		assert.Equal(t, c.score, back)
	}
}
