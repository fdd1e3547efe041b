package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnt-ai/searchcore/internal/board"
)

func newTestSearcher() *Searcher {
	tt := NewTranspositionTable(1)
	return NewSearcher(tt, DefaultWeights())
}

func TestSearchReturnsLegalMoveFromStartingPosition(t *testing.T) {
	s := newTestSearcher()
	pos := board.NewGameState()

	move, _, cancelled := s.Search(pos, 3)
	require.False(t, cancelled)
	require.NotEqual(t, board.NoMove, move)

	legal := board.GenerateAll(pos)
	assert.True(t, legal.Contains(move), "search returned a move absent from GenerateAll")
}

func TestSearchFindsImmediateGuardCapture(t *testing.T) {
	// A lone red tower one slide from the blue guard, with only the red
	// guard otherwise in play: the only sane depth-2 choice is to take it.
	fen := "7/7/7/3r1BG2/7/7/RG6 r"
	pos, err := board.ParseFEN(fen)
	require.NoError(t, err)

	s := newTestSearcher()
	move, score, cancelled := s.Search(pos, 2)
	require.False(t, cancelled)

	want := board.NewMove(board.NewSquare(3, 3), board.NewSquare(4, 3), 1)
	assert.Equal(t, want, move)
	assert.Greater(t, score, Mate-100, "winning capture should score near Mate")
}

func TestSearchDeeperDoesNotReturnIllegalMove(t *testing.T) {
	s := newTestSearcher()
	pos := board.NewGameState()

	move, _, cancelled := s.Search(pos, 4)
	require.False(t, cancelled)

	legal := board.GenerateAll(pos)
	assert.True(t, legal.Contains(move))
}

func TestSearchRespectsStopCheck(t *testing.T) {
	s := newTestSearcher()
	pos := board.NewGameState()

	s.SetStopCheck(func() bool { return true })

	_, _, cancelled := s.Search(pos, 6)
	assert.True(t, cancelled)
}

func TestGetPVStartsWithBestMove(t *testing.T) {
	s := newTestSearcher()
	pos := board.NewGameState()

	move, _, cancelled := s.Search(pos, 3)
	require.False(t, cancelled)

	pv := s.GetPV()
	require.NotEmpty(t, pv)
	assert.Equal(t, move, pv[0])
}
