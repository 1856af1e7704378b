package negamax

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/trailbot/board"
	"github.com/domino14/trailbot/equity"
	"github.com/domino14/trailbot/move"
)

var (
	// ErrNoMoves means the side to move has already lost.
	ErrNoMoves      = errors.New("no legal moves: side to move has lost")
	ErrInvalidDepth = errors.New("search depth must be at least 1")
)

// BranchValue is the searched value of one root move, from the point of
// view of the player choosing it.
type BranchValue struct {
	Move  move.Direction
	Value int
}

// Solver picks a move for the player to move on a board. Each root move
// is searched on its own clone of the board in its own goroutine; below
// the root, a single board is mutated and restored.
type Solver struct {
	board        *board.Board
	newEvaluator func() equity.Evaluator
	pruning      bool
	threads      int

	nodes atomic.Uint64
}

// Init initializes the solver
func (s *Solver) Init(b *board.Board) error {
	if b == nil {
		return errors.New("solver needs a board")
	}
	s.board = b
	s.pruning = true
	s.threads = move.NumDirections
	s.newEvaluator = func() equity.Evaluator {
		return equity.NewTerritoryCalculator()
	}
	return nil
}

func NewSolver(b *board.Board) *Solver {
	s := &Solver{}
	if err := s.Init(b); err != nil {
		panic(err)
	}
	return s
}

// SetPruning turns alpha-beta cut-offs on or off. Both settings return
// the same values; pruning only visits fewer nodes.
func (s *Solver) SetPruning(p bool) {
	s.pruning = p
}

// SetThreads bounds how many root branches are searched at once.
func (s *Solver) SetThreads(threads int) {
	s.threads = max(1, threads)
}

func (s *Solver) Board() *board.Board {
	return s.board
}

// Nodes is the number of moves played during the last search.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// EvaluateRoot searches every legal root move depth plies deep (the root
// move included) and returns their values in move-generation order.
func (s *Solver) EvaluateRoot(depth int) ([]BranchValue, error) {
	if depth < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	roots := s.board.Enumerate()
	if len(roots) == 0 {
		return nil, ErrNoMoves
	}
	s.nodes.Store(0)

	results := make([]BranchValue, len(roots))
	g := errgroup.Group{}
	g.SetLimit(s.threads)
	for i, d := range roots {
		i, d := i, d
		sr := newSearcher(s.board.Clone(), s.newEvaluator())
		g.Go(func() error {
			sr.play(d)
			var value int
			if s.pruning {
				value = -sr.alphaBeta(depth-1, -equity.Infinity, equity.Infinity)
			} else {
				value = -sr.fullWidth(depth - 1)
			}
			results[i] = BranchValue{Move: d, Value: value}
			s.nodes.Add(sr.nodes)
			log.Debug().Str("move", d.String()).Int("value", value).
				Uint64("nodes", sr.nodes).Msg("root-branch-done")
			return nil
		})
	}
	err := g.Wait()
	return results, err
}

// BestBranch returns the highest valued branch, the earliest one on ties.
func BestBranch(values []BranchValue) BranchValue {
	return lo.MaxBy(values, func(a, b BranchValue) bool {
		return a.Value > b.Value
	})
}

// Decide returns the best move for the player to move, searching depth
// plies. Equal values go to the move generated first. A board where the
// mover cannot move yields ErrNoMoves, never a move.
func (s *Solver) Decide(depth int) (move.Direction, error) {
	tstart := time.Now()
	values, err := s.EvaluateRoot(depth)
	if err != nil {
		return 0, err
	}
	best := BestBranch(values)
	log.Info().
		Int("depth", depth).
		Str("move", best.Move.String()).
		Int("value", best.Value).
		Uint64("nodes", s.nodes.Load()).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("decide-returning")
	return best.Move, nil
}
