package board

// Castle holds each side's goal square, both on the d-file (file index 3).
// Convention chosen here (Open Question in the source spec): Red's castle
// is the low end of the d-file, Blue's is the high end. See DESIGN.md.
var Castle = [2]Square{
	Red:  NewSquare(3, 0),
	Blue: NewSquare(3, Ranks-1),
}

// GameState is a single Guard & Towers position.
type GameState struct {
	RedGuard, BlueGuard   Bitboard
	RedTowers, BlueTowers Bitboard
	RedHeights            [Squares]int8
	BlueHeights           [Squares]int8
	RedToMove             bool
	Zobrist               uint64
}

// NewGameState returns the standard starting position: each guard on its
// own castle, with towers of height 1 filling the rest of the back two
// ranks on each side.
func NewGameState() *GameState {
	s := &GameState{RedToMove: true}
	for _, rank := range []int{0, 1} {
		for f := 0; f < Files; f++ {
			sq := NewSquare(f, rank)
			if rank == 0 && f == Castle[Red].File() {
				s.RedGuard = s.RedGuard.Set(sq)
				continue
			}
			s.RedTowers = s.RedTowers.Set(sq)
			s.RedHeights[sq] = 1
		}
	}
	for _, rank := range []int{Ranks - 1, Ranks - 2} {
		for f := 0; f < Files; f++ {
			sq := NewSquare(f, rank)
			if rank == Ranks-1 && f == Castle[Blue].File() {
				s.BlueGuard = s.BlueGuard.Set(sq)
				continue
			}
			s.BlueTowers = s.BlueTowers.Set(sq)
			s.BlueHeights[sq] = 1
		}
	}
	s.Zobrist = s.ComputeHash()
	return s
}

// Copy returns an independent copy of the state; state.Copy().ApplyMove(m)
// never mutates the receiver.
func (s *GameState) Copy() *GameState {
	v := *s
	return &v
}

// SideToMove returns the color to move.
func (s *GameState) SideToMove() Color {
	if s.RedToMove {
		return Red
	}
	return Blue
}

func (s *GameState) guardBB(c Color) Bitboard {
	if c == Red {
		return s.RedGuard
	}
	return s.BlueGuard
}

func (s *GameState) setGuardBB(c Color, b Bitboard) {
	if c == Red {
		s.RedGuard = b
	} else {
		s.BlueGuard = b
	}
}

func (s *GameState) towerBB(c Color) Bitboard {
	if c == Red {
		return s.RedTowers
	}
	return s.BlueTowers
}

func (s *GameState) setTowerBB(c Color, b Bitboard) {
	if c == Red {
		s.RedTowers = b
	} else {
		s.BlueTowers = b
	}
}

func (s *GameState) heights(c Color) *[Squares]int8 {
	if c == Red {
		return &s.RedHeights
	}
	return &s.BlueHeights
}

// HeightAt returns the tower height of color c at sq (0 if none).
func (s *GameState) HeightAt(c Color, sq Square) int8 {
	return s.heights(c)[sq]
}

// HeightsOf exposes color c's full height table for read-only scanning
// by evaluation and move-ordering code outside the package.
func (s *GameState) HeightsOf(c Color) *[Squares]int8 {
	return s.heights(c)
}

// occupied returns every square occupied by color c (guard or towers).
func (s *GameState) occupied(c Color) Bitboard {
	return s.guardBB(c) | s.towerBB(c)
}

// Occupied returns every square occupied by color c (guard or towers).
func (s *GameState) Occupied(c Color) Bitboard {
	return s.occupied(c)
}

// Towers returns color c's tower bitboard.
func (s *GameState) Towers(c Color) Bitboard {
	return s.towerBB(c)
}

// AllOccupied returns every occupied square on the board.
func (s *GameState) AllOccupied() Bitboard {
	return s.occupied(Red) | s.occupied(Blue)
}

// GuardSquare returns the square of color c's guard, or NoSquare if captured.
func (s *GameState) GuardSquare(c Color) Square {
	return s.guardBB(c).LSB()
}

// IsTerminal reports whether the game has ended and, if so, who won.
// Per spec.md §3: a guard mask empty, or a surviving guard on the
// opposite castle, ends the game.
func (s *GameState) IsTerminal() (over bool, winner Color) {
	if s.RedGuard.Empty() {
		return true, Blue
	}
	if s.BlueGuard.Empty() {
		return true, Red
	}
	if s.RedGuard.LSB() == Castle[Blue] {
		return true, Red
	}
	if s.BlueGuard.LSB() == Castle[Red] {
		return true, Blue
	}
	return false, NoColor
}

// ApplyNullMove passes the turn without moving a piece, for null-move
// pruning. Must be paired with UndoNullMove.
func (s *GameState) ApplyNullMove() {
	s.Zobrist ^= zobristSideToMove
	s.RedToMove = !s.RedToMove
}

// UndoNullMove reverses ApplyNullMove.
func (s *GameState) UndoNullMove() {
	s.Zobrist ^= zobristSideToMove
	s.RedToMove = !s.RedToMove
}

// ApplyMove mutates s to reflect playing m and returns the information
// needed to UndoMove it. m must be a move produced by GenerateAll(s); any
// other input is a programmer error (§9 REDESIGN FLAGS: apply is
// infallible given a legal move).
func (s *GameState) ApplyMove(m Move) UndoInfo {
	us := s.SideToMove()
	them := us.Other()
	from, to, amount := m.From(), m.To(), m.Amount()

	undo := UndoInfo{Move: m, Zobrist: s.Zobrist}

	isGuard := s.guardBB(us).IsSet(from)
	undo.WasGuardMove = isGuard

	s.Zobrist ^= zobristSideToMove

	// Resolve capture on the destination square first.
	if s.guardBB(them).IsSet(to) {
		undo.CapturedGuard = true
		s.Zobrist ^= zobristGuard[them][to]
		s.setGuardBB(them, s.guardBB(them).Clear(to))
	} else if s.towerBB(them).IsSet(to) {
		h := s.heights(them)
		undo.CapturedTowerAt = to
		undo.CapturedHeight = h[to]
		s.Zobrist ^= zobristTower[them][to][h[to]]
		h[to] = 0
		s.setTowerBB(them, s.towerBB(them).Clear(to))
	}

	if isGuard {
		s.Zobrist ^= zobristGuard[us][from]
		s.Zobrist ^= zobristGuard[us][to]
		s.setGuardBB(us, s.guardBB(us).Clear(from).Set(to))
	} else {
		h := s.heights(us)
		fromHeight := h[from]
		remaining := fromHeight - int8(amount)

		s.Zobrist ^= zobristTower[us][from][fromHeight]
		if remaining > 0 {
			h[from] = remaining
			s.Zobrist ^= zobristTower[us][from][remaining]
		} else {
			h[from] = 0
			s.setTowerBB(us, s.towerBB(us).Clear(from))
		}
		undo.SourceHeightAfter = remaining

		destHeight := h[to]
		if destHeight > 0 {
			s.Zobrist ^= zobristTower[us][to][destHeight]
		}
		newDestHeight := destHeight + int8(amount)
		h[to] = newDestHeight
		s.Zobrist ^= zobristTower[us][to][newDestHeight]
		s.setTowerBB(us, s.towerBB(us).Set(to))
	}

	s.RedToMove = !s.RedToMove
	return undo
}

// UndoMove reverses ApplyMove(m) given the UndoInfo it returned. s must be
// in the exact post-move state; calling UndoMove out of order is a
// programmer error.
func (s *GameState) UndoMove(u UndoInfo) {
	s.RedToMove = !s.RedToMove
	us := s.SideToMove()
	them := us.Other()
	from, to, amount := u.Move.From(), u.Move.To(), u.Move.Amount()

	if u.WasGuardMove {
		s.setGuardBB(us, s.guardBB(us).Clear(to).Set(from))
	} else {
		h := s.heights(us)
		destHeight := h[to]
		newDestHeight := destHeight - int8(amount)
		if newDestHeight > 0 {
			h[to] = newDestHeight
		} else {
			h[to] = 0
			s.setTowerBB(us, s.towerBB(us).Clear(to))
		}
		h[from] = u.SourceHeightAfter + int8(amount)
		s.setTowerBB(us, s.towerBB(us).Set(from))
	}

	if u.CapturedGuard {
		s.setGuardBB(them, s.guardBB(them).Set(to))
	} else if u.CapturedHeight > 0 {
		h := s.heights(them)
		h[u.CapturedTowerAt] = u.CapturedHeight
		s.setTowerBB(them, s.towerBB(them).Set(u.CapturedTowerAt))
	}

	s.Zobrist = u.Zobrist
}
