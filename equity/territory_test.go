package equity_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"github.com/domino14/trailbot/board"
	"github.com/domino14/trailbot/equity"
)

func parse(t *testing.T, s board.Sample, active int) *board.Board {
	t.Helper()
	b, err := board.Parse(string(s), active)
	require.NoError(t, err)
	return b
}

// swapRoles returns the same physical layout with the other player to move.
func swapRoles(t *testing.T, b *board.Board) *board.Board {
	t.Helper()
	text := strings.NewReplacer("M", "E", "E", "M").Replace(b.String())
	sw, err := board.Parse(text, b.Active()^1)
	require.NoError(t, err)
	return sw
}

func manhattan(a, b board.Position) int {
	d := func(x int) int {
		if x < 0 {
			return -x
		}
		return x
	}
	return d(a.Row-b.Row) + d(a.Col-b.Col)
}

func TestTerminalIsLoss(t *testing.T) {
	b := parse(t, board.SampleTrapped, 0)
	assert.Equal(t, equity.LossScore, equity.Score(b))

	// The responder being stuck does not matter to the mover.
	sw := swapRoles(t, b)
	assert.NotEqual(t, equity.LossScore, equity.Score(sw))
}

func TestCorridor(t *testing.T) {
	tc := equity.NewTerritoryCalculator()
	for _, c := range []struct {
		corridor     string
		mine, theirs int
	}{
		// odd number of cells between the heads: the middle one goes to
		// the mover.
		{"M.....E", 4, 3},
		{"M....E", 3, 3},
		{"M.E", 2, 1},
		{"M...E..", 3, 4},
		{"..M..E", 4, 2},
	} {
		b := parse(t, board.Sample(c.corridor), 0)
		mine, theirs := tc.Territory(b)
		assert.Equal(t, c.mine, mine, c.corridor)
		assert.Equal(t, c.theirs, theirs, c.corridor)
		assert.Equal(t, c.mine-c.theirs, tc.Score(b), c.corridor)
	}
}

func TestWallSplitsTerritory(t *testing.T) {
	b := parse(t, board.SampleSplit, 0)
	mine, theirs := equity.NewTerritoryCalculator().Territory(b)
	// left of the wall: 2 columns x 4 rows; right of it: 4 x 4
	assert.Equal(t, 8, mine)
	assert.Equal(t, 16, theirs)
	assert.Equal(t, -8, equity.Score(b))
}

func TestTrailIsNeverClaimed(t *testing.T) {
	b := parse(t, board.SampleMidgame, 0)
	mine, theirs := equity.NewTerritoryCalculator().Territory(b)
	assert.Equal(t, b.EmptyCells()+2, mine+theirs)
}

func TestZeroSumSymmetry(t *testing.T) {
	tc := equity.NewTerritoryCalculator()
	checked := 0
	for game := 0; game < 40; game++ {
		b := board.NewRandom()
		for {
			moves := b.Enumerate()
			if len(moves) == 0 {
				break
			}
			sw := swapRoles(t, b)
			// Heads an odd distance apart can never reach a cell at the
			// same time, so no cell is decided by seeding order.
			if sw.HasMoves() && manhattan(b.Mover(), b.Responder())%2 == 1 {
				assert.Equal(t, -tc.Score(b), tc.Score(sw), b.String())
				checked++
			}
			require.NoError(t, b.Apply(moves[frand.Intn(len(moves))]))
		}
	}
	assert.Greater(t, checked, 0)
}

func TestCalculatorReuse(t *testing.T) {
	tc := equity.NewTerritoryCalculator()
	small := parse(t, board.SampleCorner, 0)
	big := parse(t, board.SampleMidgame, 0)
	first := tc.Score(small)
	tc.Score(big)
	assert.Equal(t, first, tc.Score(small))
	assert.Equal(t, equity.Score(big), tc.Score(big))
}
