package board

import (
	"errors"
	"fmt"
	"slices"

	"github.com/domino14/trailbot/move"
)

var (
	ErrOutOfBounds       = errors.New("target cell is outside the grid")
	ErrOccupied          = errors.New("target cell is not empty")
	ErrEmptyLog          = errors.New("no move to undo")
	ErrInvalidRequest    = errors.New("invalid position request")
	ErrInvalidDimensions = errors.New("invalid board dimensions")
)

// Board is the shared grid both players move on. It tracks the player to
// move (the mover) and the other player (the responder). Roles swap on
// every move: the player who just moved becomes the responder.
//
// The board is mutated in place by Apply and restored by Undo; the log
// of applied directions is all Undo needs.
type Board struct {
	height int
	width  int
	cells  []Cell

	mover     Position
	responder Position
	// active is the id stamped on the mover's next cell.
	active int

	log []move.Direction
}

// New creates an empty board with the mover standing on a cell of its own
// id and the responder on a cell of the other id.
func New(height, width int, mover, responder Position, active int) (*Board, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, height, width)
	}
	if active != 0 && active != 1 {
		return nil, fmt.Errorf("active player id must be 0 or 1, got %d", active)
	}
	b := &Board{
		height: height,
		width:  width,
		cells:  make([]Cell, height*width),
	}
	for i := range b.cells {
		b.cells[i] = Empty
	}
	if !b.InBounds(mover) || !b.InBounds(responder) {
		return nil, fmt.Errorf("%w: players at %v and %v", ErrOutOfBounds, mover, responder)
	}
	if mover == responder {
		return nil, fmt.Errorf("players cannot share a cell: %v", mover)
	}
	b.mover = mover
	b.responder = responder
	b.active = active
	b.set(mover, Occupied(active))
	b.set(responder, Occupied(active^1))
	return b, nil
}

func (b *Board) Height() int { return b.height }
func (b *Board) Width() int  { return b.width }

// Mover is the position of the player to move.
func (b *Board) Mover() Position { return b.mover }

// Responder is the position of the player who just moved.
func (b *Board) Responder() Position { return b.responder }

// Active is the id of the player to move.
func (b *Board) Active() int { return b.active }

// NumMoves is the number of moves applied since construction.
func (b *Board) NumMoves() int { return len(b.log) }

// Log returns a copy of the directions applied so far.
func (b *Board) Log() []move.Direction {
	return slices.Clone(b.log)
}

func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.height && p.Col >= 0 && p.Col < b.width
}

// At returns the cell at p. p must be in bounds.
func (b *Board) At(p Position) Cell {
	return b.cells[p.Row*b.width+p.Col]
}

func (b *Board) set(p Position, c Cell) {
	b.cells[p.Row*b.width+p.Col] = c
}

// Target returns the cell reached from p by stepping in direction d, and
// whether it lies inside the grid.
func (b *Board) Target(p Position, d move.Direction) (Position, bool) {
	t := p.Step(d.Offset())
	return t, b.InBounds(t)
}

// Apply moves the mover one step in direction d and swaps roles.
func (b *Board) Apply(d move.Direction) error {
	t, ok := b.Target(b.mover, d)
	if !ok {
		return fmt.Errorf("%w: %v from %v", ErrOutOfBounds, d, b.mover)
	}
	if !b.At(t).IsEmpty() {
		return fmt.Errorf("%w: %v from %v", ErrOccupied, d, b.mover)
	}
	b.set(t, Occupied(b.active))
	b.mover, b.responder = b.responder, t
	b.active ^= 1
	b.log = append(b.log, d)
	return nil
}

// Undo reverts the last applied move.
func (b *Board) Undo() error {
	if len(b.log) == 0 {
		return ErrEmptyLog
	}
	d := b.log[len(b.log)-1]
	// The responder stands where the undone move landed.
	prev, ok := b.Target(b.responder, d.Opposite())
	if !ok {
		return fmt.Errorf("corrupt move log: cannot step %v back from %v", d, b.responder)
	}
	b.log = b.log[:len(b.log)-1]
	b.set(b.responder, Empty)
	b.mover, b.responder = prev, b.mover
	b.active ^= 1
	return nil
}

// Clone returns a deep copy that can be searched independently.
func (b *Board) Clone() *Board {
	return &Board{
		height:    b.height,
		width:     b.width,
		cells:     slices.Clone(b.cells),
		mover:     b.mover,
		responder: b.responder,
		active:    b.active,
		log:       slices.Clone(b.log),
	}
}

// Equal reports whether two boards have the same grid, players, active id
// and move log.
func (b *Board) Equal(o *Board) bool {
	return b.height == o.height && b.width == o.width &&
		b.mover == o.mover && b.responder == o.responder &&
		b.active == o.active &&
		slices.Equal(b.cells, o.cells) &&
		slices.Equal(b.log, o.log)
}

// EmptyCells counts the cells no trail covers yet.
func (b *Board) EmptyCells() int {
	n := 0
	for _, c := range b.cells {
		if c.IsEmpty() {
			n++
		}
	}
	return n
}
