// Package automatic plays the bot against itself, optionally at two
// different depths, and reports how each side did.
package automatic

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/trailbot/board"
	"github.com/domino14/trailbot/negamax"
)

// Result is the outcome of one game. Seats are the two configured
// players; seat i searches at Depths[i].
type Result struct {
	GameID    int
	Winner    int
	FirstSeat int
	Plies     int
	Height    int
	Width     int
}

// CSV renders the result as a log file record.
func (r Result) CSV() string {
	return fmt.Sprintf("%d,%d,%d,%d,%d,%d\n",
		r.GameID, r.Winner, r.FirstSeat, r.Plies, r.Height, r.Width)
}

const logHeader = "gameID,winner,first,plies,height,width\n"

// logFields is the number of columns in every log record.
const logFields = 6

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	depths   [2]int
	newBoard func() *board.Board
}

// NewGameRunner creates a runner for seats searching at the given depths
// on random boards.
func NewGameRunner(depth0, depth1 int) *GameRunner {
	return &GameRunner{depths: [2]int{depth0, depth1}, newBoard: board.NewRandom}
}

// SetBoardMaker replaces how starting boards are made.
func (r *GameRunner) SetBoardMaker(f func() *board.Board) {
	r.newBoard = f
}

// PlayGame plays one game to the end. firstSeat controls the player
// whose move it is on the starting board.
func (r *GameRunner) PlayGame(gameID, firstSeat int) (Result, error) {
	b := r.newBoard()
	start := b.Active()
	seatOf := func(id int) int {
		return id ^ start ^ firstSeat
	}
	res := Result{GameID: gameID, FirstSeat: firstSeat, Height: b.Height(), Width: b.Width()}

	for b.HasMoves() {
		seat := seatOf(b.Active())
		d, err := negamax.NewSolver(b).Decide(r.depths[seat])
		if err != nil {
			return res, err
		}
		if err := b.Apply(d); err != nil {
			return res, err
		}
	}
	res.Plies = b.NumMoves()
	res.Winner = seatOf(b.Active()) ^ 1
	log.Debug().Int("game", gameID).Int("winner", res.Winner).
		Int("plies", res.Plies).Msgf("game over\n%s", b)
	return res, nil
}
