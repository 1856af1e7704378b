package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/trailbot/board"
	"github.com/domino14/trailbot/move"
)

// DefaultSeed keeps hashes stable across processes, so decisions cached
// by one server instance can be read by another.
const DefaultSeed = 0x5eed7a11b07

// key kinds
const (
	kindTrail0 = iota
	kindTrail1
	kindMover
	kindResponder
	numKinds
)

// Zobrist hashes a board position. Keys are derived from the seed and
// the cell index rather than stored in tables, since boards come in many
// sizes.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	seed      uint64
	activeKey uint64
}

func New(seed uint64) *Zobrist {
	z := &Zobrist{seed: seed}
	z.activeKey = z.key(0, numKinds)
	return z
}

// NewRandom returns a hasher with a random seed, for callers that never
// share hashes outside the process.
func NewRandom() *Zobrist {
	return New(frand.Uint64n(1<<63-2) + 1)
}

// https://stackoverflow.com/a/12996028/1737333
func hashUint64(x uint64) uint64 {
	x = (x ^ (x >> 30)) * uint64(0xbf58476d1ce4e5b9)
	x = (x ^ (x >> 27)) * uint64(0x94d049bb133111eb)
	x = x ^ (x >> 31)
	return x
}

func (z *Zobrist) key(idx, kind int) uint64 {
	return hashUint64(z.seed ^ hashUint64(uint64(idx)<<3|uint64(kind)))
}

func index(b *board.Board, p board.Position) int {
	return p.Row*b.Width() + p.Col
}

// Hash returns the key of a position: its dimensions, every trail cell,
// where both heads are and whose turn it is. The move log is not part of
// the position.
func (z *Zobrist) Hash(b *board.Board) uint64 {
	key := hashUint64(z.seed ^ uint64(b.Height())<<32 ^ uint64(b.Width()))
	for r := 0; r < b.Height(); r++ {
		for c := 0; c < b.Width(); c++ {
			p := board.Position{Row: r, Col: c}
			cell := b.At(p)
			if cell.IsEmpty() {
				continue
			}
			key ^= z.key(index(b, p), kindTrail0+cell.Owner())
		}
	}
	key ^= z.key(index(b, b.Mover()), kindMover)
	key ^= z.key(index(b, b.Responder()), kindResponder)
	if b.Active() == 1 {
		key ^= z.activeKey
	}
	return key
}

// AddMove returns the key after the mover of b steps in direction d,
// given the key of b before the move. d must be legal on b.
func (z *Zobrist) AddMove(key uint64, b *board.Board, d move.Direction) uint64 {
	mover, responder := b.Mover(), b.Responder()
	t, _ := b.Target(mover, d)

	key ^= z.key(index(b, t), kindTrail0+b.Active())
	key ^= z.key(index(b, mover), kindMover)
	key ^= z.key(index(b, responder), kindResponder)
	// roles swap: the old responder moves next, the new cell responds
	key ^= z.key(index(b, responder), kindMover)
	key ^= z.key(index(b, t), kindResponder)
	key ^= z.activeKey
	return key
}
