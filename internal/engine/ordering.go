package engine

import (
	"github.com/gnt-ai/searchcore/internal/board"
)

// Move ordering priorities, highest first.
const (
	TTMoveScore     = 10000000
	WinningScore    = 2000000
	GoodCaptureBase = 1000000
	KillerScore1    = 900000
	KillerScore2    = 800000
)

// MoveOrderer holds the per-search move-ordering heuristics: killer
// moves per ply and a from/to history table. Grounded on the teacher's
// MoveOrderer, trimmed of counter-move and capture-history tables —
// those extras assume a piece-type taxonomy Guard & Towers doesn't have
// (one mover kind: a guard, or a tower of some height) and the simpler
// MVV-LVA-by-amount scheme below covers the same cutoff-prediction role.
type MoveOrderer struct {
	killers [MaxPly][2]board.Move
	history [2][board.Squares][board.Squares]int
}

// NewMoveOrderer creates an empty move orderer.
func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// Clear resets killers and ages history scores for a new search.
func (mo *MoveOrderer) Clear() {
	for i := range mo.killers {
		mo.killers[i][0] = board.NoMove
		mo.killers[i][1] = board.NoMove
	}
	for c := range mo.history {
		for i := range mo.history[c] {
			for j := range mo.history[c][i] {
				mo.history[c][i][j] /= 2
			}
		}
	}
}

// ScoreMoves assigns an ordering score to every move in the list.
func (mo *MoveOrderer) ScoreMoves(pos *board.GameState, moves *board.MoveList, ply int, ttMove board.Move) []int {
	scores := make([]int, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		scores[i] = mo.scoreMove(pos, moves.Get(i), ply, ttMove)
	}
	return scores
}

// scoreMove returns the ordering score for a single move.
func (mo *MoveOrderer) scoreMove(pos *board.GameState, m board.Move, ply int, ttMove board.Move) int {
	if m == ttMove {
		return TTMoveScore
	}
	if m.IsWinning(pos) {
		return WinningScore + m.Amount()
	}
	if m.IsCapture(pos) {
		return GoodCaptureBase + mvvLva(pos, m)
	}
	if m == mo.killers[ply][0] {
		return KillerScore1
	}
	if m == mo.killers[ply][1] {
		return KillerScore2
	}
	return mo.history[pos.SideToMove()][m.From()][m.To()]
}

// mvvLva scores a capture by victim value minus attacker value, biased so
// that larger captured stacks and smaller attacking stacks sort first.
// Guard & Towers has no fixed piece values; tower height stands in for
// "victim value" and the moving amount stands in for "attacker value".
func mvvLva(pos *board.GameState, m board.Move) int {
	them := pos.SideToMove().Other()
	victimValue := 1
	if pos.GuardSquare(them) == m.To() {
		victimValue = int(board.MaxTowerHeight) + 1
	} else {
		victimValue = int(pos.HeightAt(them, m.To()))
	}
	return victimValue*10 - m.Amount()
}

// SortMoves fully sorts moves by descending score (selection sort; move
// counts on a 7x7 board are small enough that this is never a hot spot).
func SortMoves(moves *board.MoveList, scores []int) {
	n := moves.Len()
	for i := 0; i < n-1; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			if scores[j] > scores[best] {
				best = j
			}
		}
		if best != i {
			moves.Swap(i, best)
			scores[i], scores[best] = scores[best], scores[i]
		}
	}
}

// PickMove selects the best remaining move at or after index and swaps it
// into place, enabling lazy selection sort during the search's main loop.
func PickMove(moves *board.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < moves.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}

// UpdateKillers records a quiet move that caused a beta cutoff at ply.
func (mo *MoveOrderer) UpdateKillers(m board.Move, ply int) {
	if ply >= MaxPly || mo.killers[ply][0] == m {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

// UpdateHistory adjusts the history score for a quiet move by depth^2,
// rewarding cutoffs and penalizing quiet moves that were tried and failed.
// The table is indexed by (from, to, side) so Red's and Blue's cutoff
// statistics for the same squares never overwrite each other.
func (mo *MoveOrderer) UpdateHistory(m board.Move, side board.Color, depth int, isGood bool) {
	from, to := m.From(), m.To()
	bonus := depth * depth
	if isGood {
		mo.history[side][from][to] += bonus
		if mo.history[side][from][to] > 400000 {
			for c := range mo.history {
				for i := range mo.history[c] {
					for j := range mo.history[c][i] {
						mo.history[c][i][j] /= 2
					}
				}
			}
		}
	} else {
		mo.history[side][from][to] -= bonus
		if mo.history[side][from][to] < -400000 {
			mo.history[side][from][to] = -400000
		}
	}
}
