package board

import "testing"

// perft counts the leaf positions reachable in exactly depth plies. Kept
// alongside the move generator it exercises, the way the teacher's perft
// lived in internal/board rather than internal/engine.
func perft(s *GameState, depth int) int64 {
	if over, _ := s.IsTerminal(); over {
		return 0
	}
	if depth == 0 {
		return 1
	}

	moves := GenerateAll(s)
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := s.ApplyMove(m)
		nodes += perft(s, depth-1)
		s.UndoMove(undo)
	}
	return nodes
}

func TestPerftStartingPositionIsPositiveAndGrowing(t *testing.T) {
	depths := []int{1, 2, 3}
	var prev int64
	for _, d := range depths {
		s := NewGameState()
		nodes := perft(s, d)
		if nodes <= 0 {
			t.Fatalf("perft(%d) = %d, want > 0", d, nodes)
		}
		if d > 1 && nodes <= prev {
			t.Errorf("perft(%d) = %d did not grow past perft(%d) = %d", d, nodes, d-1, prev)
		}
		prev = nodes
	}
}

// TestApplyUndoMoveRoundTrip walks the depth-2 move tree from the starting
// position and checks that every ApplyMove/UndoMove pair restores the
// state exactly, including the Zobrist hash — the incremental-vs-recompute
// invariant.
func TestApplyUndoMoveRoundTrip(t *testing.T) {
	var walk func(s *GameState, depth int)
	walk = func(s *GameState, depth int) {
		if depth == 0 {
			return
		}
		before := *s
		moves := GenerateAll(s)
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			undo := s.ApplyMove(m)

			if got := s.ComputeHash(); got != s.Zobrist {
				t.Errorf("move %s: incremental hash %x != recomputed hash %x", m, s.Zobrist, got)
			}

			walk(s, depth-1)

			s.UndoMove(undo)
			if *s != before {
				t.Fatalf("move %s: UndoMove did not restore state", m)
			}
		}
	}

	walk(NewGameState(), 2)
}

func TestGenerateAllNeverProducesOwnSquareCapture(t *testing.T) {
	s := NewGameState()
	moves := GenerateAll(s)
	us := s.SideToMove()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		// A tower sliding onto an own tower stacks onto it; that is the
		// only legal move onto a square the mover's own side occupies.
		stacking := s.Towers(us).IsSet(m.From()) && s.Towers(us).IsSet(m.To())
		if s.Occupied(us).IsSet(m.To()) && !stacking {
			t.Errorf("move %s lands on a square occupied by the mover's own side", m)
		}
	}
}

func TestGenerateTacticalIsSubsetOfGenerateAll(t *testing.T) {
	s := NewGameState()
	all := GenerateAll(s)
	tactical := GenerateTactical(s)
	for i := 0; i < tactical.Len(); i++ {
		m := tactical.Get(i)
		if !all.Contains(m) {
			t.Errorf("tactical move %s is not present in the full move list", m)
		}
	}
}

func TestGuardCaptureByTowerIsUnconditional(t *testing.T) {
	// A red tower of height 1 one square from the blue guard must be able
	// to capture it regardless of the blue guard's "height" (guards have
	// none) — the guard-capture-by-tower rule.
	fen := "7/7/7/3r1BG2/7/7/RG6 r"
	s, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	moves := GenerateAll(s)
	capture := NewMove(NewSquare(3, 3), NewSquare(4, 3), 1)
	if !moves.Contains(capture) {
		t.Errorf("expected guard-capturing move %s to be generated", capture)
	}
}
