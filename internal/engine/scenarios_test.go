package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnt-ai/searchcore/internal/board"
)

// TestScenarioE4TowerMVVLVAOrdersHeavierCaptureFirst is the E4 scenario:
// offered a choice between capturing a height-3 tower and a height-1
// tower, move ordering must rank the heavier capture first.
func TestScenarioE4TowerMVVLVAOrdersHeavierCaptureFirst(t *testing.T) {
	// A red tower of height 4 at the center can reach a height-1 blue
	// tower one square north, and a height-3 blue tower three squares
	// east, in the same move.
	const fen = "7/7/3b13/3r42b3/7/7/7 r"
	pos, err := board.ParseFEN(fen)
	require.NoError(t, err)

	moves := board.GenerateAll(pos)
	mo := NewMoveOrderer()
	scores := mo.ScoreMoves(pos, moves, 0, board.NoMove)

	heavyCapture := board.NewMove(board.NewSquare(3, 3), board.NewSquare(6, 3), 3)
	lightCapture := board.NewMove(board.NewSquare(3, 3), board.NewSquare(3, 4), 1)

	var heavyScore, lightScore int
	var sawHeavy, sawLight bool
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m == heavyCapture {
			heavyScore = scores[i]
			sawHeavy = true
		}
		if m == lightCapture {
			lightScore = scores[i]
			sawLight = true
		}
	}

	require.True(t, sawHeavy, "expected the height-3 capture to be a legal move")
	require.True(t, sawLight, "expected the height-1 capture to be a legal move")
	assert.Greater(t, heavyScore, lightScore, "capturing the taller tower should order first")
}

// TestScenarioE5TranspositionTableReducesRepeatSearchNodes is the E5
// scenario: searching the same position to the same depth twice, with a
// shared transposition table, visits strictly fewer nodes the second
// time.
func TestScenarioE5TranspositionTableReducesRepeatSearchNodes(t *testing.T) {
	tt := NewTranspositionTable(4)
	weights := DefaultWeights()
	pos := board.NewGameState()

	first := NewSearcher(tt, weights)
	_, _, cancelled := first.Search(pos, 4)
	require.False(t, cancelled)
	firstNodes := first.Nodes()

	second := NewSearcher(tt, weights)
	_, _, cancelled = second.Search(pos, 4)
	require.False(t, cancelled)
	secondNodes := second.Nodes()

	assert.Less(t, secondNodes, firstNodes, "a warm transposition table should prune the repeated search")
}

// TestScenarioE6FindBestHonorsBudgetAndNeverReturnsNoMove is the E6
// scenario: with a small time budget, FindBest returns promptly and
// always with a legal move.
func TestScenarioE6FindBestHonorsBudgetAndNeverReturnsNoMove(t *testing.T) {
	e := NewEngine(1)
	pos := board.NewGameState()

	start := time.Now()
	move := e.FindBest(pos, 200, 1, PhaseOpening)
	elapsed := time.Since(start)

	assert.NotEqual(t, board.NoMove, move)
	assert.Less(t, elapsed, 250*time.Millisecond)

	legal := board.GenerateAll(pos)
	assert.True(t, legal.Contains(move))
}
