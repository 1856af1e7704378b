package move

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is one of the four moves a player can make. It is the only
// thing the searcher hands back to a caller.
type Direction uint8

const (
	Up Direction = iota
	Down
	Right
	Left
)

// NumDirections is the size of the move set.
const NumDirections = 4

// AllDirections lists directions in their declared priority. Move
// generation starts from this order.
var AllDirections = [NumDirections]Direction{Up, Down, Right, Left}

var ErrUnknownDirection = errors.New("unknown direction")

var dirNames = [NumDirections]string{"Up", "Down", "Right", "Left"}

// row, col deltas
var offsets = [NumDirections][2]int{
	{-1, 0},
	{1, 0},
	{0, 1},
	{0, -1},
}

func (d Direction) Valid() bool {
	return d < NumDirections
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", d)
	}
	return dirNames[d]
}

// Offset returns the row and column delta for a step in this direction.
func (d Direction) Offset() (int, int) {
	o := offsets[d]
	return o[0], o[1]
}

// Opposite returns the direction that undoes a step in d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Right:
		return Left
	}
	return Right
}

// FromString parses a direction name (case-insensitive) or one of the
// w/a/s/d keys used by the interactive shell.
func FromString(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u", "w":
		return Up, nil
	case "down", "s":
		return Down, nil
	case "right", "r", "d":
		return Right, nil
	case "left", "l", "a":
		return Left, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// MarshalText encodes the direction as its name, so JSON and YAML
// responses carry "Up", "Down", "Right" or "Left".
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDirection, d)
	}
	return []byte(dirNames[d]), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	for i, n := range dirNames {
		if n == string(b) {
			*d = Direction(i)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownDirection, string(b))
}
