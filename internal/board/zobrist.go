package board

// Zobrist hash keys for position hashing. Fixed-seed PRNG so keys (and
// therefore hashes) are reproducible across runs and across an
// incremental-vs-recompute comparison.
var (
	zobristGuard      [2][Squares]uint64
	zobristTower      [2][Squares][MaxTowerHeight + 1]uint64
	zobristSideToMove uint64
)

func init() {
	initZobrist()
}

// prng is a small reproducible xorshift64* generator.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x9E3779B97F4A7C15)

	for c := Red; c <= Blue; c++ {
		for sq := 0; sq < Squares; sq++ {
			zobristGuard[c][sq] = rng.next()
			for h := 1; h <= MaxTowerHeight; h++ {
				zobristTower[c][sq][h] = rng.next()
			}
		}
	}

	zobristSideToMove = rng.next()
}

// ComputeHash recomputes the Zobrist hash of s from scratch. Must equal
// s.Zobrist after any sequence of ApplyMove/UndoMove calls from a freshly
// hashed state (the incremental-vs-recompute invariant of spec.md §8.4).
func (s *GameState) ComputeHash() uint64 {
	var h uint64

	for c := Red; c <= Blue; c++ {
		if sq := s.guardBB(c).LSB(); sq != NoSquare {
			h ^= zobristGuard[c][sq]
		}
		towers := s.towerBB(c)
		heights := s.heights(c)
		for towers.Any() {
			sq := towers.PopLSB()
			h ^= zobristTower[c][sq][heights[sq]]
		}
	}

	if !s.RedToMove {
		h ^= zobristSideToMove
	}

	return h
}
