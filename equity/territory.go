package equity

import (
	"github.com/domino14/trailbot/board"
)

const (
	// Infinity bounds every search window. It is far outside any
	// territory differential a board can produce.
	Infinity = 1001001001001001001
	// LossScore is the value of a position whose mover cannot move.
	LossScore = -Infinity
)

const unclaimed = -1

// flood fill neighbour order: down, up, right, left
var fillSteps = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// TerritoryCalculator estimates how much room each player has left by
// growing both players' regions one step at a time from their heads. A
// cell belongs to whoever reaches it first, so the result is a discrete
// Voronoi split of the empty cells.
type TerritoryCalculator struct {
	claimed []int8
	queue   []int
}

func NewTerritoryCalculator() *TerritoryCalculator {
	return &TerritoryCalculator{}
}

// Score returns the mover's territory minus the responder's, or
// LossScore when the mover has no legal move.
func (tc *TerritoryCalculator) Score(b *board.Board) int {
	if !b.HasMoves() {
		return LossScore
	}
	mine, theirs := tc.Territory(b)
	return mine - theirs
}

// Territory returns the number of cells claimed by the mover and by the
// responder, each counting the cell its head stands on.
func (tc *TerritoryCalculator) Territory(b *board.Board) (mine, theirs int) {
	h, w := b.Height(), b.Width()
	n := h * w
	if cap(tc.claimed) < n {
		tc.claimed = make([]int8, n)
		tc.queue = make([]int, 0, n)
	}
	claimed := tc.claimed[:n]
	for i := range claimed {
		claimed[i] = unclaimed
	}
	queue := tc.queue[:0]

	me, opp := b.Active(), b.Active()^1
	mover, responder := b.Mover(), b.Responder()
	claimed[mover.Row*w+mover.Col] = int8(me)
	claimed[responder.Row*w+responder.Col] = int8(opp)
	// The mover is seeded first, so it wins cells both reach at once.
	queue = append(queue, mover.Row*w+mover.Col, responder.Row*w+responder.Col)
	mine, theirs = 1, 1

	for head := 0; head < len(queue); head++ {
		idx := queue[head]
		owner := claimed[idx]
		r, c := idx/w, idx%w
		for _, s := range fillSteps {
			nr, nc := r+s[0], c+s[1]
			if nr < 0 || nr >= h || nc < 0 || nc >= w {
				continue
			}
			nidx := nr*w + nc
			if claimed[nidx] != unclaimed || !b.At(board.Position{Row: nr, Col: nc}).IsEmpty() {
				continue
			}
			claimed[nidx] = owner
			if int(owner) == me {
				mine++
			} else {
				theirs++
			}
			queue = append(queue, nidx)
		}
	}
	tc.queue = queue
	return mine, theirs
}

// Score evaluates b with a throwaway calculator.
func Score(b *board.Board) int {
	return NewTerritoryCalculator().Score(b)
}
