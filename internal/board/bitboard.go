package board

import "math/bits"

// Bitboard represents the 49-square board as a 64-bit word; only bits
// 0..48 are ever meaningful. Bit i corresponds to Square(i).
type Bitboard uint64

// FullMask has all 49 playable bits set.
const FullMask Bitboard = (1 << Squares) - 1

// FileMask returns the mask of all squares on the given file (0-6).
func FileMask(file int) Bitboard {
	var m Bitboard
	for r := 0; r < Ranks; r++ {
		m |= SquareBB(NewSquare(file, r))
	}
	return m
}

// RankMask returns the mask of all squares on the given rank (0-6).
func RankMask(rank int) Bitboard {
	var m Bitboard
	for f := 0; f < Files; f++ {
		m |= SquareBB(NewSquare(f, rank))
	}
	return m
}

// CenterFileMask/CenterRankMask/CenterMask identify the three central
// files (c,d,e) and three central ranks (2,3,4), 0-indexed.
var (
	CenterFileMask = FileMask(2) | FileMask(3) | FileMask(4)
	CenterRankMask = RankMask(2) | RankMask(3) | RankMask(4)
	CenterMask     = CenterFileMask & CenterRankMask
)

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return 1 << Bitboard(sq)
}

// Set returns b with sq set.
func (b Bitboard) Set(sq Square) Bitboard {
	return (b | SquareBB(sq)) & FullMask
}

// Clear returns b with sq cleared.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ SquareBB(sq)
}

// IsSet reports whether sq is set in b.
func (b Bitboard) IsSet(sq Square) bool {
	return b&SquareBB(sq) != 0
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest-indexed set square, or NoSquare if empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB clears and returns the lowest-indexed set square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Any reports whether any bit is set.
func (b Bitboard) Any() bool {
	return b != 0
}

// Empty reports whether no bit is set.
func (b Bitboard) Empty() bool {
	return b == 0
}
