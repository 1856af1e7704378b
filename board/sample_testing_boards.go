package board

// This file contains some sample positions, used solely for testing. They
// are in the text form read by Parse.

// Sample is a text representation of a board.
type Sample string

const (
	// SampleCorner has the mover boxed into the top-left corner of an
	// otherwise empty 3x3 board.
	SampleCorner Sample = `
M..
...
..E
`
	// SampleCorridor is a 1x7 corridor with the players at either end.
	SampleCorridor Sample = `M.....E`

	// SampleTrapped has the mover walled in by both trails.
	SampleTrapped Sample = `
0M1..
.01..
....E
`
	// SampleSplit is a board cut in two by a wall of trail. The mover
	// is on the small side.
	SampleSplit Sample = `
M.1....
..1....
..1..E.
..1....
`
	// SampleMidgame is a 6x6 position with some trail already laid down.
	SampleMidgame Sample = `
......
.000..
.0M...
...E1.
...11.
......
`
	// SampleRace is a 5x5 board where both players head for the same
	// open region.
	SampleRace Sample = `
.....
.M...
.....
...E.
.....
`
)
