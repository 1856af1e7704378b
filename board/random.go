package board

import "lukechampine.com/frand"

const (
	MinRandomDim = 7
	MaxRandomDim = 15
)

// NewRandom creates a board of random size with both players on distinct
// random interior cells. Player 0 moves first.
func NewRandom() *Board {
	h := MinRandomDim + frand.Intn(MaxRandomDim-MinRandomDim+1)
	w := MinRandomDim + frand.Intn(MaxRandomDim-MinRandomDim+1)
	return NewRandomSized(h, w)
}

// NewRandomSized places both players on distinct random interior cells of
// an h x w board. Both dimensions must be at least 3 and the interior
// must hold at least two cells.
func NewRandomSized(h, w int) *Board {
	interior := func() Position {
		return Position{Row: 1 + frand.Intn(h-2), Col: 1 + frand.Intn(w-2)}
	}
	p0 := interior()
	p1 := interior()
	for p1 == p0 {
		p1 = interior()
	}
	b, err := New(h, w, p0, p1, 0)
	if err != nil {
		panic(err)
	}
	return b
}
