package equity

import "github.com/domino14/trailbot/board"

// Evaluator scores a board from the point of view of the player to move.
// Implementations may keep scratch space and are not safe for concurrent
// use; give each search goroutine its own.
type Evaluator interface {
	Score(b *board.Board) int
}
