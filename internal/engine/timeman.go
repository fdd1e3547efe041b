package engine

import (
	"sync/atomic"
	"time"
)

// GamePhase names the coarse stage of the game the time manager should
// plan around, since Guard & Towers has no material-count phase signal
// as natural as chess's piece count.
type GamePhase int

const (
	PhaseOpening GamePhase = iota
	PhaseMiddlegame
	PhaseEndgame
)

const (
	minThinkTime    = 50 * time.Millisecond
	safetyDivisor   = 20 // the hard maximum never exceeds (safetyDivisor-1)/safetyDivisor of the clock
	suddenDeathMtg  = 30 // assumed moves remaining when no explicit count is given
	earlyMoveNumber = 8
)

// TimeCtl allocates per-move thinking time from the remaining clock.
// Grounded on the teacher's TimeManager (optimum/maximum split, sudden-
// death move estimate, safety margins), trimmed to the single plan()
// entry point spec.md names. The optimum is fixed once planned; nothing
// adjusts it between depths.
type TimeCtl struct {
	optimum   time.Duration
	maximum   time.Duration
	startTime time.Time
	watchdog  *time.Timer
	stopped   atomic.Bool
}

// Plan computes the optimum and maximum think time for a move, given the
// remaining clock in milliseconds, the current move number (1-based full
// moves), and the coarse game phase.
func (tc *TimeCtl) Plan(remainingMs int64, moveNumber int, phase GamePhase) {
	remaining := time.Duration(remainingMs) * time.Millisecond

	mtg := suddenDeathMtg - moveNumber/2
	if mtg < 10 {
		mtg = 10
	}
	if phase == PhaseEndgame && mtg > 20 {
		mtg = 20
	}

	optimum := remaining / time.Duration(mtg)
	if moveNumber <= earlyMoveNumber {
		optimum = optimum * 85 / 100
	}

	maxFromOptimum := optimum * 5
	maxFromRemaining := remaining / safetyDivisor * (safetyDivisor - 1)
	maximum := maxFromOptimum
	if maxFromRemaining < maximum {
		maximum = maxFromRemaining
	}

	if optimum < minThinkTime {
		optimum = minThinkTime
	}
	if maximum < minThinkTime*2 {
		maximum = minThinkTime * 2
	}

	tc.optimum = optimum
	tc.maximum = maximum
}

// Start arms the watchdog: after tc.maximum elapses, Stopped reports
// true even if nobody calls it explicitly. Mirrors the cooperative
// cancellation contract of spec.md §4.6 — the search polls Stopped
// rather than being interrupted asynchronously.
func (tc *TimeCtl) Start() {
	tc.startTime = time.Now()
	tc.stopped.Store(false)
	tc.watchdog = time.AfterFunc(tc.maximum, func() {
		tc.stopped.Store(true)
	})
}

// Cancel stops the search immediately, e.g. on an external "stop" request.
func (tc *TimeCtl) Cancel() {
	tc.stopped.Store(true)
}

// Close disarms the watchdog timer once the search has returned normally.
func (tc *TimeCtl) Close() {
	if tc.watchdog != nil {
		tc.watchdog.Stop()
	}
}

// Stopped reports whether the search should return immediately.
func (tc *TimeCtl) Stopped() bool {
	return tc.stopped.Load()
}

// Elapsed returns the time spent since Start.
func (tc *TimeCtl) Elapsed() time.Duration {
	return time.Since(tc.startTime)
}

// PastOptimum reports whether the elapsed time has passed the optimum
// budget. The iterative-deepening driver does not call it; its
// between-depths check compares Elapsed against OptimumTime directly.
func (tc *TimeCtl) PastOptimum() bool {
	return tc.Elapsed() >= tc.optimum
}

// OptimumTime returns the planned optimum budget for this move.
func (tc *TimeCtl) OptimumTime() time.Duration {
	return tc.optimum
}

// MaximumTime returns the hard ceiling for this move.
func (tc *TimeCtl) MaximumTime() time.Duration {
	return tc.maximum
}
