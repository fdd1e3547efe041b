package engine

import (
	"math"

	"github.com/gnt-ai/searchcore/internal/board"
)

const (
	MaxPly = 128

	nullMoveMinDepth   = 3
	nullMoveReduction  = 2
	reverseFutilityMax = 6 // depth at or below which reverse futility applies
	lmrMinDepth        = 3
	lmrMinMoveIndex    = 3
	futilityMaxDepth   = 5
	maxQuiescencePly   = 32
)

// futilityMarginTable is the depth-indexed margin schedule a quiet move
// must clear to avoid the main-loop futility prune, adapted from
// worker.go's `[]int{0, 200, 300, 500, 700, 900}` (centipawns, pawn=100)
// onto tower-height units (TowerHeightValue stands in for "one pawn").
var futilityMarginTable = [futilityMaxDepth + 1]int{0, 2, 3, 5, 7, 9}

// futilityMargin returns the margin used by the main-loop futility prune:
// a quiet move at shallow depth that cannot plausibly raise alpha is
// skipped without being searched.
func futilityMargin(depth int, w *Weights) int {
	idx := depth
	if idx < 0 {
		idx = 0
	}
	if idx > futilityMaxDepth {
		idx = futilityMaxDepth
	}
	return futilityMarginTable[idx] * w.TowerHeightValue
}

// reverseFutilityMargin returns the static-eval margin a node must clear
// to avoid a reverse-futility ("static null move") cutoff at the given
// depth, adapted from worker.go's `80 * depth` (centipawns) onto
// tower-height units, with the same improving-side discount worker.go
// applies (a node whose eval has improved over its last turn gets a
// smaller margin, since its static score is more trustworthy).
func reverseFutilityMargin(depth int, improving bool, w *Weights) int {
	margin := depth * (w.TowerHeightValue * 4 / 5)
	if improving {
		margin -= w.TowerHeightValue / 5
	}
	return margin
}

// lmrReductions is a precomputed logarithmic reduction table, grounded on
// worker.go's Stockfish-derived `21.46 * log(depth) * log(moveIndex) /
// 1024` formula (worker.go:15-23), sized down from chess's much deeper
// search tree to this game's shallower one.
var lmrReductions [32][48]int

func init() {
	for d := 1; d < 32; d++ {
		for m := 1; m < 48; m++ {
			lmrReductions[d][m] = int(21.46 * math.Log(float64(d)) * math.Log(float64(m)) / 1024.0)
		}
	}
}

// PVTable stores the principal variation collected during search.
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

// Searcher performs the alpha-beta/PVS search for one position. The
// struct shape (pos/tt/orderer/nodes/pv/undoStack, the Search/negamax
// split) is grounded on the teacher's single-threaded Searcher in
// search.go; the pruning and reduction techniques it runs — PVS
// scout-then-re-search, null-move pruning, reverse futility, and LMR —
// are grounded on worker.go's single-worker negamax body instead, since
// search.go's own negamax is a plain full-window alpha-beta search with
// none of them. worker.go's Lazy-SMP orchestration (the Worker pool
// sharing one TT) is out of scope (spec.md names a single searcher); its
// NNUE/tablebase probing, singular extensions, probcut, multicut,
// internal iterative reduction, razoring, and correction/continuation
// history are likewise out of scope and were not carried over.
type Searcher struct {
	pos     *board.GameState
	tt      *TranspositionTable
	orderer *MoveOrderer
	weights *Weights

	nodes     uint64
	stopCheck func() bool

	pv        PVTable
	evalStack [MaxPly]int

	undoStack [MaxPly]board.UndoInfo
}

// NewSearcher creates a searcher sharing the given transposition table
// and evaluation weights across iterative-deepening calls.
func NewSearcher(tt *TranspositionTable, weights *Weights) *Searcher {
	return &Searcher{
		tt:      tt,
		orderer: NewMoveOrderer(),
		weights: weights,
	}
}

// SetStopCheck installs the cooperative cancellation predicate the
// search polls periodically; Engine wires this to TimeCtl.Stopped.
func (s *Searcher) SetStopCheck(fn func() bool) {
	s.stopCheck = fn
}

// Reset clears per-search state (node count, killers, aged history)
// ahead of a new root search.
func (s *Searcher) Reset() {
	s.nodes = 0
	s.orderer.Clear()
}

// Nodes returns the number of nodes visited by the most recent search.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// GetPV returns the principal variation found by the last root search.
func (s *Searcher) GetPV() []board.Move {
	pv := make([]board.Move, s.pv.length[0])
	copy(pv, s.pv.moves[0][:s.pv.length[0]])
	return pv
}

// Search runs a full-window negamax/PVS search to depth and returns the
// best move found along with its score, from the side-to-move's
// perspective. A cancelled search returns the best move found so far
// (possibly NoMove) and cancelled=true.
func (s *Searcher) Search(pos *board.GameState, depth int) (board.Move, int, bool) {
	return s.SearchWindow(pos, depth, -Mate, Mate)
}

// SearchWindow is Search with an explicit aspiration window; the
// iterative-deepening driver in engine.go re-searches with a wider
// window when the result falls outside [alpha, beta].
func (s *Searcher) SearchWindow(pos *board.GameState, depth, alpha, beta int) (board.Move, int, bool) {
	s.pos = pos.Copy()
	s.nodes = 0

	score := s.negamax(depth, 0, alpha, beta, true)
	cancelled := s.stopCheck != nil && s.stopCheck()

	best := board.NoMove
	if s.pv.length[0] > 0 {
		best = s.pv.moves[0][0]
	}
	return best, score, cancelled
}

// negamax implements alpha-beta with PVS re-search, null-move pruning,
// reverse futility, and a reduced main-loop search (LMR). isPV marks
// whether this node is on the current principal variation, since TT
// cutoffs, reverse futility, null-move, futility pruning and LMR apply
// only to non-PV nodes.
func (s *Searcher) negamax(depth, ply int, alpha, beta int, isPV bool) int {
	if s.nodes&2047 == 0 && s.stopCheck != nil && s.stopCheck() {
		return 0
	}
	s.nodes++
	s.pv.length[ply] = ply

	if over, winner := s.pos.IsTerminal(); over {
		return s.terminalScore(winner, ply)
	}

	if depth <= 0 {
		return s.quiescence(ply, alpha, beta)
	}

	var ttMove board.Move
	ttEntry, found := s.tt.Probe(s.pos.Zobrist)
	if found {
		ttMove = ttEntry.BestMove
		if !isPV && int(ttEntry.Depth) >= depth {
			score := AdjustScoreFromTT(int(ttEntry.Score), ply)
			switch ttEntry.Flag {
			case TTExact:
				return score
			case TTLowerBound:
				if score > alpha {
					alpha = score
				}
			case TTUpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
	}

	staticEval := Evaluate(s.pos, s.weights)
	s.evalStack[ply] = staticEval

	// improving mirrors worker.go's heuristic: the static eval two plies
	// ago was this side's last turn, so an improvement means our position
	// is trending up and static-eval-based cutoffs can be trusted more.
	improving := false
	if ply >= 2 {
		improving = staticEval > s.evalStack[ply-2]
	}

	// Reverse futility ("static null move"): if we're already far above
	// beta by more than the position could swing in depth plies, cut.
	if !isPV && depth <= reverseFutilityMax {
		margin := reverseFutilityMargin(depth, improving, s.weights)
		if staticEval-margin >= beta {
			return staticEval - margin
		}
	}

	// Null-move pruning: skip our move entirely and see if the opponent
	// is still in trouble. Disabled for guard-only sides, where passing
	// can manufacture zugzwang-driven false cutoffs.
	us := s.pos.SideToMove()
	if !isPV && depth >= nullMoveMinDepth && s.pos.Towers(us).Any() && staticEval >= beta {
		s.pos.ApplyNullMove()
		score := -s.negamax(depth-1-nullMoveReduction, ply+1, -beta, -beta+1, false)
		s.pos.UndoNullMove()
		if s.stopCheck != nil && s.stopCheck() {
			return 0
		}
		if score >= beta {
			return beta
		}
	}

	moves := board.GenerateAll(s.pos)
	scores := s.orderer.ScoreMoves(s.pos, moves, ply, ttMove)

	bestScore := -Mate
	bestMove := board.NoMove
	flag := TTUpperBound
	searched := 0

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		move := moves.Get(i)

		isCapture := move.IsCapture(s.pos)
		isWinning := move.IsWinning(s.pos)

		// Futility pruning: a quiet move this far behind can't plausibly
		// raise alpha at shallow remaining depth, so don't bother
		// searching it.
		if !isPV && depth <= futilityMaxDepth && searched > 0 && !isCapture && !isWinning {
			if staticEval+futilityMargin(depth, s.weights) <= alpha {
				continue
			}
		}

		s.undoStack[ply] = s.pos.ApplyMove(move)
		searched++

		var score int
		if searched == 1 {
			score = -s.negamax(depth-1, ply+1, -beta, -alpha, isPV)
		} else {
			reduction := 0
			if !isPV && depth >= lmrMinDepth && searched > lmrMinMoveIndex && !isCapture && !isWinning {
				reduction = lmrReduction(depth, searched)
			}
			score = -s.negamax(depth-1-reduction, ply+1, -alpha-1, -alpha, false)
			if score > alpha && (reduction > 0 || score < beta) {
				score = -s.negamax(depth-1, ply+1, -beta, -alpha, false)
			}
		}

		s.pos.UndoMove(s.undoStack[ply])

		if s.stopCheck != nil && s.stopCheck() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = move

			if score > alpha {
				alpha = score
				flag = TTExact

				s.pv.moves[ply][ply] = move
				for j := ply + 1; j < s.pv.length[ply+1]; j++ {
					s.pv.moves[ply][j] = s.pv.moves[ply+1][j]
				}
				s.pv.length[ply] = s.pv.length[ply+1]
			}
		}

		if score >= beta {
			s.tt.Store(s.pos.Zobrist, depth, AdjustScoreToTT(score, ply), TTLowerBound, bestMove)
			if !isCapture {
				s.orderer.UpdateKillers(move, ply)
				s.orderer.UpdateHistory(move, s.pos.SideToMove(), depth, true)
			}
			return score
		}
	}

	if searched == 0 {
		// No legal moves in a non-terminal position (a guard boxed in by
		// its own pieces while every tower is blocked): the side to move
		// has lost.
		return -Mate + ply
	}

	s.tt.Store(s.pos.Zobrist, depth, AdjustScoreToTT(bestScore, ply), flag, bestMove)
	return bestScore
}

// lmrReduction looks up the Late Move Reduction applied to the given move
// index at the given remaining depth from the precomputed lmrReductions
// table, floored at 1 so a reduction is always applied once LMR's own
// depth/move-index gates (lmrMinDepth, lmrMinMoveIndex) let a move reach it.
func lmrReduction(depth, moveIndex int) int {
	d := depth
	if d >= len(lmrReductions) {
		d = len(lmrReductions) - 1
	}
	m := moveIndex
	if m >= len(lmrReductions[0]) {
		m = len(lmrReductions[0]) - 1
	}
	r := lmrReductions[d][m]
	if r < 1 {
		r = 1
	}
	return r
}

// terminalScore converts a terminal-position winner into a score from
// the side-to-move's perspective, biased by ply so that faster wins
// score strictly higher than slower ones.
func (s *Searcher) terminalScore(winner board.Color, ply int) int {
	if winner == s.pos.SideToMove() {
		return Mate - ply
	}
	return -Mate + ply
}

// quiescence extends the search along captures and guard-winning moves
// until the position is quiet, avoiding the horizon effect at the leaves
// of the main search. Mirrors the teacher's stand-pat/delta-pruning
// pattern, with capture value expressed in tower-height terms.
func (s *Searcher) quiescence(ply int, alpha, beta int) int {
	if ply >= MaxPly || ply > maxQuiescencePly {
		return Evaluate(s.pos, s.weights)
	}
	if s.stopCheck != nil && s.stopCheck() {
		return 0
	}
	s.nodes++

	if over, winner := s.pos.IsTerminal(); over {
		return s.terminalScore(winner, ply)
	}

	standPat := Evaluate(s.pos, s.weights)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	bigDelta := s.weights.GuardBaseValue
	if standPat+bigDelta < alpha {
		return alpha
	}

	moves := board.GenerateTactical(s.pos)
	scores := s.orderer.ScoreMoves(s.pos, moves, ply, board.NoMove)

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		move := moves.Get(i)

		captureValue := 0
		them := s.pos.SideToMove().Other()
		if move.IsWinning(s.pos) {
			captureValue = s.weights.GuardBaseValue
		} else if move.IsCapture(s.pos) {
			captureValue = int(s.pos.HeightAt(them, move.To())) * s.weights.TowerHeightValue
		}
		if standPat+captureValue+s.weights.TowerHeightValue*2 < alpha {
			continue
		}

		undo := s.pos.ApplyMove(move)
		score := -s.quiescence(ply+1, -beta, -alpha)
		s.pos.UndoMove(undo)

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}
