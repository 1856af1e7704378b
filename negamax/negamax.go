package negamax

import (
	"fmt"

	"github.com/domino14/trailbot/board"
	"github.com/domino14/trailbot/equity"
	"github.com/domino14/trailbot/move"
)

// thanks Wikipedia:
/*
function negamax(node, depth, α, β, color) is
    if depth = 0 or node is a terminal node then
        return color × the heuristic value of node

    childNodes := generateMoves(node)
    childNodes := orderMoves(childNodes)
    value := −∞
    foreach child in childNodes do
        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
        α := max(α, value)
        if α ≥ β then
            break (* cut-off *)
    return value
**/

// searcher owns one board for the length of a subtree search. It is not
// safe for concurrent use; the solver gives each root branch its own.
type searcher struct {
	board *board.Board
	eval  equity.Evaluator
	nodes uint64
}

func newSearcher(b *board.Board, eval equity.Evaluator) *searcher {
	return &searcher{board: b, eval: eval}
}

func (s *searcher) play(d move.Direction) {
	// Moves come from the board's own generator, so a failure here
	// means the board is corrupt. Don't keep searching it.
	if err := s.board.Apply(d); err != nil {
		panic(fmt.Sprintf("generated move %v rejected: %v\n%v", d, err, s.board))
	}
	s.nodes++
}

func (s *searcher) unplay() {
	if err := s.board.Undo(); err != nil {
		panic(fmt.Sprintf("cannot undo searched move: %v\n%v", err, s.board))
	}
}

// alphaBeta returns the value of the board for the side to move, searched
// depth plies deep. The board is restored before it returns.
func (s *searcher) alphaBeta(depth, α, β int) int {
	var buf [move.NumDirections]move.Direction
	children := s.board.AppendMoves(buf[:0])
	if depth == 0 || len(children) == 0 {
		return s.eval.Score(s.board)
	}
	for _, child := range children {
		s.play(child)
		value := -s.alphaBeta(depth-1, -β, -α)
		s.unplay()
		α = max(α, value)
		if α > β {
			break // beta cut-off
		}
	}
	return α
}

// fullWidth is plain negamax with no pruning at all.
func (s *searcher) fullWidth(depth int) int {
	var buf [move.NumDirections]move.Direction
	children := s.board.AppendMoves(buf[:0])
	if depth == 0 || len(children) == 0 {
		return s.eval.Score(s.board)
	}
	best := -equity.Infinity
	for _, child := range children {
		s.play(child)
		best = max(best, -s.fullWidth(depth-1))
		s.unplay()
	}
	return best
}

// SearchSubtree runs an alpha-beta search of b in place with the given
// window and returns the value for the player to move. b is left as it
// was found.
func SearchSubtree(b *board.Board, depth, alpha, beta int) int {
	return newSearcher(b, equity.NewTerritoryCalculator()).alphaBeta(depth, alpha, beta)
}
