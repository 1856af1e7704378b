package board

import "github.com/domino14/trailbot/move"

// AppendMoves appends the legal moves of the mover to buf and returns it.
//
// Candidates start in declared order. Once two moves have been played, the
// direction this player used on its previous turn is swapped to the front
// so the search tries the straight continuation first.
func (b *Board) AppendMoves(buf []move.Direction) []move.Direction {
	cands := move.AllDirections
	if n := len(b.log); n >= 2 {
		prev := b.log[n-2]
		for i := range cands {
			if cands[i] == prev {
				cands[0], cands[i] = cands[i], cands[0]
			}
		}
	}
	for _, d := range cands {
		if b.legal(d) {
			buf = append(buf, d)
		}
	}
	return buf
}

// Enumerate lists the legal moves of the mover, ordered for search.
func (b *Board) Enumerate() []move.Direction {
	return b.AppendMoves(make([]move.Direction, 0, move.NumDirections))
}

// HasMoves reports whether the mover can move at all.
func (b *Board) HasMoves() bool {
	for _, d := range move.AllDirections {
		if b.legal(d) {
			return true
		}
	}
	return false
}

func (b *Board) legal(d move.Direction) bool {
	t, ok := b.Target(b.mover, d)
	return ok && b.At(t).IsEmpty()
}
