package board

import "strconv"

// A Cell is a single square of the grid. Its value matches the wire
// encoding of a request: -1 for empty, otherwise the id of the player
// whose trail covers it.
type Cell int8

const Empty Cell = -1

// Occupied returns the cell value for a square covered by player id.
func Occupied(id int) Cell {
	return Cell(id)
}

func (c Cell) IsEmpty() bool {
	return c == Empty
}

// Owner returns the player id covering the cell, or -1 if it is empty.
func (c Cell) Owner() int {
	return int(c)
}

func (c Cell) String() string {
	if c == Empty {
		return "."
	}
	return strconv.Itoa(int(c))
}

// Position is a (row, column) pair.
type Position struct {
	Row int
	Col int
}

// Step returns the position one step away in the given row/col delta.
func (p Position) Step(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}
