// Package engine implements the Guard & Towers search engine.
package engine

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gnt-ai/searchcore/internal/board"
	"github.com/gnt-ai/searchcore/internal/book"
)

// SearchInfo reports the state of the most recently completed (or
// aborted) iterative-deepening iteration, the way the teacher's
// SearchInfo fed its UCI "info" output.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    uint64
	Time     time.Duration
	PV       []board.Move
	HashFull int
}

// aspirationWindow is the half-width of the aspiration search window
// used from depth aspirationMinDepth onward.
const (
	aspirationMinDepth = 4
	aspirationWindow   = 50
	optimumBudgetRatio = 60 // percent of the optimum budget after which no further depth is started
)

// Engine is a single-threaded Guard & Towers search engine: one
// Searcher, one transposition table, one set of evaluation weights.
// Grounded on the teacher's Engine, with the Lazy-SMP worker pool,
// NNUE bridge, and tablebase integration dropped — those are the
// teacher's parallel-search and learned-eval extras, explicit
// Non-goals here (see DESIGN.md).
type Engine struct {
	tt       *TranspositionTable
	searcher *Searcher
	weights  *Weights
	book     book.Book
	tc       TimeCtl

	lastInfo SearchInfo
	log      zerolog.Logger

	// OnInfo, if set, is called after every completed iteration —
	// the hook a CLI or protocol client uses to stream progress.
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine with a transposition table of the given
// size in megabytes and the default evaluation weights.
func NewEngine(ttSizeMB int) *Engine {
	tt := NewTranspositionTable(ttSizeMB)
	weights := DefaultWeights()
	return &Engine{
		tt:       tt,
		searcher: NewSearcher(tt, weights),
		weights:  weights,
		log:      log.With().Str("component", "engine").Logger(),
	}
}

// SetWeights overrides the engine's evaluation weights, e.g. loaded from
// a tuning file by the CLI.
func (e *Engine) SetWeights(w *Weights) {
	e.weights = w
	e.searcher = NewSearcher(e.tt, w)
}

// SetBook attaches an opening book; a nil book disables book probing.
func (e *Engine) SetBook(b book.Book) {
	e.book = b
}

// Reset clears the transposition table and search heuristics, as if the
// engine had just been created, while keeping the current weights/book.
func (e *Engine) Reset() {
	e.tt.Clear()
	e.searcher.orderer = NewMoveOrderer()
	e.searcher.Reset()
}

// Stats returns the SearchInfo from the most recently completed
// iteration of the most recent FindBest/FindBestDepth call.
func (e *Engine) Stats() SearchInfo {
	return e.lastInfo
}

// FindBest runs the cooperative iterative-deepening driver described in
// spec.md §4.7: probe the book first; then deepen one ply at a time,
// using a full window below aspirationMinDepth and a narrow aspiration
// window (re-searched on fail-high/fail-low) from there on; stop between
// iterations once more than optimumBudgetRatio percent of the optimum
// time budget has been spent. FindBest never returns NoMove as long as
// the position has at least one legal move.
func (e *Engine) FindBest(pos *board.GameState, remainingMs int64, moveNumber int, phase GamePhase) board.Move {
	if m, ok := e.probeBook(pos); ok {
		return m
	}

	e.tc.Plan(remainingMs, moveNumber, phase)
	e.tc.Start()
	defer e.tc.Close()
	e.searcher.SetStopCheck(e.tc.Stopped)

	return e.iterativeDeepen(pos, MaxPly)
}

// FindBestDepth runs iterative deepening up to a fixed depth with no
// time limit, for analysis and tests that want deterministic output.
func (e *Engine) FindBestDepth(pos *board.GameState, depth int) board.Move {
	if m, ok := e.probeBook(pos); ok {
		return m
	}
	e.tc = TimeCtl{}
	e.searcher.SetStopCheck(func() bool { return false })
	return e.iterativeDeepen(pos, depth)
}

func (e *Engine) probeBook(pos *board.GameState) (board.Move, bool) {
	if e.book == nil {
		return board.NoMove, false
	}
	return e.book.Pick(pos)
}

func (e *Engine) iterativeDeepen(pos *board.GameState, maxDepth int) board.Move {
	e.tt.NewSearch()
	e.searcher.Reset()

	start := time.Now()
	var bestMove board.Move
	var bestScore int
	var prevScore int

	for depth := 1; depth <= maxDepth; depth++ {
		var move board.Move
		var score int
		var cancelled bool

		if depth < aspirationMinDepth {
			move, score, cancelled = e.searcher.Search(pos, depth)
		} else {
			move, score, cancelled = e.searchAspirated(pos, depth, prevScore)
		}

		if cancelled && move == board.NoMove {
			break
		}

		if move != board.NoMove {
			bestMove = move
			bestScore = score
			prevScore = score

			e.lastInfo = SearchInfo{
				Depth:    depth,
				Score:    score,
				Nodes:    e.searcher.Nodes(),
				Time:     time.Since(start),
				PV:       e.searcher.GetPV(),
				HashFull: e.tt.HashFull(),
			}
			if e.OnInfo != nil {
				e.OnInfo(e.lastInfo)
			}
			e.log.Debug().Int("depth", depth).Int("score", score).
				Uint64("nodes", e.searcher.Nodes()).Msg("iteration complete")
		}

		if cancelled {
			break
		}

		if bestScore > Mate-100 || bestScore < -Mate+100 {
			break
		}

		if e.tc.maximum > 0 {
			if e.tc.Elapsed()*100 > e.tc.OptimumTime()*optimumBudgetRatio {
				break
			}
		}
	}

	if bestMove == board.NoMove {
		// Never-return-none guarantee: fall back to the first legal move.
		moves := board.GenerateAll(pos)
		if moves.Len() > 0 {
			bestMove = moves.Get(0)
		}
	}

	return bestMove
}

// searchAspirated runs a narrow-window search around prevScore,
// widening (eventually to a full window) on fail-high or fail-low.
func (e *Engine) searchAspirated(pos *board.GameState, depth, prevScore int) (board.Move, int, bool) {
	window := aspirationWindow
	alpha := prevScore - window
	beta := prevScore + window

	for {
		move, score, cancelled := e.searcher.SearchWindow(pos, depth, alpha, beta)
		if cancelled {
			return move, score, true
		}
		if score <= alpha {
			alpha -= window
			window *= 2
			if alpha < -Mate {
				alpha = -Mate
			}
			continue
		}
		if score >= beta {
			beta += window
			window *= 2
			if beta > Mate {
				beta = Mate
			}
			continue
		}
		return move, score, false
	}
}
