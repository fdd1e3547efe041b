package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Move encodes a Guard & Towers move in 16 bits:
// bits 0-5:  from square (0-48)
// bits 6-11: to square (0-48)
// bits 12-15: amount (1-15; a guard move always carries amount 1)
type Move uint16

// NoMove represents an invalid or null move.
const NoMove Move = 0xFFFF

// NewMove creates a move sliding amount squares from `from` to `to`.
func NewMove(from, to Square, amount int) Move {
	return Move(from) | Move(to)<<6 | Move(amount)<<12
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Amount returns the number of squares/height moved.
func (m Move) Amount() int {
	return int(m >> 12)
}

// IsGuardMove reports whether the move relocates a guard, i.e. whether the
// side to move in pos has its guard on the move's origin square.
func (m Move) IsGuardMove(pos *GameState) bool {
	us := pos.SideToMove()
	return pos.guardBB(us).IsSet(m.From())
}

// IsCapture reports whether the destination square is occupied by an enemy piece.
func (m Move) IsCapture(pos *GameState) bool {
	them := pos.SideToMove().Other()
	return pos.occupied(them).IsSet(m.To())
}

// IsWinning reports whether the move is a guard capture or a guard arriving
// on the enemy castle — the two "winning move" categories of the ordering spec.
func (m Move) IsWinning(pos *GameState) bool {
	if !m.IsGuardMove(pos) {
		return false
	}
	them := pos.SideToMove().Other()
	if pos.guardBB(them).IsSet(m.To()) {
		return true
	}
	return m.To() == Castle[them]
}

// String formats the move as "<from>-<to>-<amount>", e.g. "d2-d4-1".
func (m Move) String() string {
	if m == NoMove {
		return "-"
	}
	return fmt.Sprintf("%s-%s-%d", m.From(), m.To(), m.Amount())
}

// ParseMove parses the "<from>-<to>-<amount>" move string. Case-insensitive.
func ParseMove(s string) (Move, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "-")
	if len(parts) != 3 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}
	from, err := ParseSquare(parts[0])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(parts[1])
	if err != nil {
		return NoMove, err
	}
	amount, err := strconv.Atoi(parts[2])
	if err != nil || amount < 1 {
		return NoMove, fmt.Errorf("invalid amount in move string: %q", s)
	}
	return NewMove(from, to, amount), nil
}

// MoveList is a fixed-size list of moves, sized to avoid allocation in the
// hot move-generation path (a 7x7 board never produces anywhere near 128
// legal moves for one side).
type MoveList struct {
	moves [128]Move
	count int
}

// Add appends a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear empties the list for reuse.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains reports whether the list holds the given move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice sharing the list's backing array.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// UndoInfo carries the information needed to reverse ApplyMove.
type UndoInfo struct {
	Move              Move
	WasGuardMove      bool
	CapturedGuard     bool
	CapturedTowerAt   Square
	CapturedHeight    int8
	SourceHeightAfter int8 // height left behind at From() after the slide
	Zobrist           uint64
}
