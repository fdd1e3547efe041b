package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeCtlPlanNeverExceedsSafetyDivisorShare(t *testing.T) {
	var tc TimeCtl
	tc.Plan(60_000, 20, PhaseMiddlegame)

	remaining := 60 * time.Second
	assert.LessOrEqual(t, tc.MaximumTime(), remaining*(safetyDivisor-1)/safetyDivisor+time.Millisecond)
	assert.Less(t, tc.OptimumTime(), tc.MaximumTime())
}

func TestTimeCtlPlanEnforcesMinimumThinkTime(t *testing.T) {
	var tc TimeCtl
	tc.Plan(1, 1, PhaseOpening) // a near-zero clock must still produce a usable budget
	assert.GreaterOrEqual(t, tc.OptimumTime(), minThinkTime)
	assert.GreaterOrEqual(t, tc.MaximumTime(), minThinkTime*2)
}

func TestTimeCtlPlanReducesOptimumForEarlyMoves(t *testing.T) {
	var early, later TimeCtl
	early.Plan(60_000, 2, PhaseMiddlegame)
	later.Plan(60_000, earlyMoveNumber+10, PhaseMiddlegame)

	assert.Less(t, early.OptimumTime(), later.OptimumTime())
}

func TestTimeCtlStartArmsWatchdog(t *testing.T) {
	var tc TimeCtl
	tc.Plan(50, 1, PhaseMiddlegame) // minimal clock, so maximum clamps to 2*minThinkTime
	tc.Start()
	defer tc.Close()

	require.False(t, tc.Stopped())
	time.Sleep(tc.MaximumTime() + 20*time.Millisecond)
	assert.True(t, tc.Stopped())
}

func TestTimeCtlCancelStopsImmediately(t *testing.T) {
	var tc TimeCtl
	tc.Plan(60_000, 1, PhaseMiddlegame)
	tc.Start()
	defer tc.Close()

	tc.Cancel()
	assert.True(t, tc.Stopped())
}
