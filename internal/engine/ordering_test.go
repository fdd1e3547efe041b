package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gnt-ai/searchcore/internal/board"
)

func TestScoreMovesRanksTTMoveHighest(t *testing.T) {
	pos := board.NewGameState()
	moves := board.GenerateAll(pos)
	if moves.Len() < 2 {
		t.Fatalf("starting position produced fewer than 2 moves: %d", moves.Len())
	}

	ttMove := moves.Get(1)
	mo := NewMoveOrderer()
	scores := mo.ScoreMoves(pos, moves, 0, ttMove)

	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i) == ttMove {
			assert.Equal(t, TTMoveScore, scores[i])
		} else {
			assert.Less(t, scores[i], TTMoveScore)
		}
	}
}

func TestUpdateKillersKeepsMostRecentTwo(t *testing.T) {
	mo := NewMoveOrderer()
	m1 := board.NewMove(0, 1, 1)
	m2 := board.NewMove(1, 2, 1)
	m3 := board.NewMove(2, 3, 1)

	mo.UpdateKillers(m1, 5)
	mo.UpdateKillers(m2, 5)
	mo.UpdateKillers(m3, 5)

	assert.Equal(t, m3, mo.killers[5][0])
	assert.Equal(t, m2, mo.killers[5][1])
}

func TestUpdateHistoryRewardsAndPenalizes(t *testing.T) {
	mo := NewMoveOrderer()
	m := board.NewMove(3, 10, 1)

	mo.UpdateHistory(m, board.Red, 4, true)
	assert.Equal(t, 16, mo.history[board.Red][m.From()][m.To()])

	mo.UpdateHistory(m, board.Red, 4, false)
	assert.Equal(t, 0, mo.history[board.Red][m.From()][m.To()])
}

func TestUpdateHistoryIsPerSide(t *testing.T) {
	mo := NewMoveOrderer()
	m := board.NewMove(3, 10, 1)

	mo.UpdateHistory(m, board.Red, 4, true)
	assert.Equal(t, 0, mo.history[board.Blue][m.From()][m.To()])
}

func TestPickMoveSelectsHighestRemainingScore(t *testing.T) {
	var moves board.MoveList
	moves.Add(board.NewMove(0, 1, 1))
	moves.Add(board.NewMove(1, 2, 1))
	moves.Add(board.NewMove(2, 3, 1))
	scores := []int{5, 30, 10}

	PickMove(&moves, scores, 0)

	assert.Equal(t, board.NewMove(1, 2, 1), moves.Get(0))
	assert.Equal(t, 30, scores[0])
}
