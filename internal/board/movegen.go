package board

// direction deltas: east, west, north, south.
var directions = [4][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// GenerateAll returns every legal move for the side to move. Guard & Towers
// has no check/pin concept, so pseudo-legal and legal coincide: any move
// that obeys the slide/edge-wrap/capture rules of spec.md §4.1 is legal.
func GenerateAll(s *GameState) *MoveList {
	ml := &MoveList{}
	generate(s, ml, false)
	return ml
}

// GenerateTactical returns the subset of moves quiescence should consider:
// captures, guard winning moves, and tower moves that stack the whole tower
// onto an own tower. Quiet moves that merely threaten the enemy guard are
// not included.
func GenerateTactical(s *GameState) *MoveList {
	ml := &MoveList{}
	generate(s, ml, true)
	return ml
}

func generate(s *GameState, ml *MoveList, tacticalOnly bool) {
	us := s.SideToMove()
	them := us.Other()
	generateGuardMoves(s, ml, us, them, tacticalOnly)
	generateTowerMoves(s, ml, us, them, tacticalOnly)
}

func generateGuardMoves(s *GameState, ml *MoveList, us, them Color, tacticalOnly bool) {
	from := s.GuardSquare(us)
	if from == NoSquare {
		return
	}
	file, rank := from.File(), from.Rank()
	own := s.occupied(us)
	enemyTowers := s.towerBB(them)
	enemyGuard := s.guardBB(them)

	for _, d := range directions {
		nf, nr := file+d[0], rank+d[1]
		if nf < 0 || nf >= Files || nr < 0 || nr >= Ranks {
			continue
		}
		to := NewSquare(nf, nr)
		if own.IsSet(to) {
			continue
		}
		isCapture := enemyTowers.IsSet(to) || enemyGuard.IsSet(to)
		isWinning := to == Castle[them] || enemyGuard.IsSet(to)
		if tacticalOnly && !isCapture && !isWinning {
			continue
		}
		ml.Add(NewMove(from, to, 1))
	}
}

func generateTowerMoves(s *GameState, ml *MoveList, us, them Color, tacticalOnly bool) {
	towers := s.towerBB(us)
	heights := s.heights(us)
	ownTowers := s.towerBB(us)
	enemyTowers := s.towerBB(them)
	enemyHeights := s.heights(them)
	enemyGuard := s.guardBB(them)
	all := s.AllOccupied()

	for towers.Any() {
		from := towers.PopLSB()
		h := int(heights[from])
		file, rank := from.File(), from.Rank()

		for _, d := range directions {
			for step := 1; step <= h; step++ {
				nf, nr := file+d[0]*step, rank+d[1]*step
				if nf < 0 || nf >= Files || nr < 0 || nr >= Ranks {
					break
				}
				to := NewSquare(nf, nr)

				if all.IsSet(to) {
					if ownTowers.IsSet(to) {
						if !tacticalOnly || step >= h {
							ml.Add(NewMove(from, to, step))
						}
					} else if enemyGuard.IsSet(to) {
						ml.Add(NewMove(from, to, step))
					} else if enemyTowers.IsSet(to) && step >= int(enemyHeights[to]) {
						ml.Add(NewMove(from, to, step))
					}
					break // path blocked beyond an occupied square
				}

				if !tacticalOnly {
					ml.Add(NewMove(from, to, step))
				}
			}
		}
	}
}
