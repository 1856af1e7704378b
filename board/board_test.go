package board

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/matryer/is"
	"lukechampine.com/frand"

	"github.com/domino14/trailbot/move"
)

func mustParse(t *testing.T, s Sample, active int) *Board {
	t.Helper()
	b, err := Parse(string(s), active)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func emptyRequest(w, h int) Request {
	cells := make([]int, w*h)
	for i := range cells {
		cells[i] = -1
	}
	return Request{Size: Point{X: w, Y: h}, Board: cells}
}

func TestEnumerateCorner(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, SampleCorner, 0)
	is.Equal(b.Mover(), Position{0, 0})
	is.Equal(b.Responder(), Position{2, 2})
	is.Equal(b.Enumerate(), []move.Direction{move.Down, move.Right})
}

func TestEnumerateTrapped(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, SampleTrapped, 0)
	is.Equal(len(b.Enumerate()), 0)
	is.True(!b.HasMoves())
}

func TestApplyErrors(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, SampleCorner, 0)
	before := b.Clone()

	err := b.Apply(move.Up)
	is.True(errors.Is(err, ErrOutOfBounds))
	err = b.Apply(move.Left)
	is.True(errors.Is(err, ErrOutOfBounds))
	is.True(b.Equal(before))

	b = mustParse(t, SampleTrapped, 0)
	err = b.Apply(move.Down)
	is.True(errors.Is(err, ErrOccupied))

	is.True(errors.Is(before.Undo(), ErrEmptyLog))
}

func TestApplySwapsRoles(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, SampleCorner, 0)
	is.NoErr(b.Apply(move.Right))

	is.Equal(b.Active(), 1)
	is.Equal(b.Mover(), Position{2, 2})
	is.Equal(b.Responder(), Position{0, 1})
	is.Equal(b.At(Position{0, 1}), Occupied(0))
	is.Equal(b.Log(), []move.Direction{move.Right})
	// the mover always stands on a cell of the active id
	is.Equal(b.At(b.Mover()), Occupied(b.Active()))
	is.Equal(b.At(b.Responder()), Occupied(b.Active()^1))
	is.Equal(b.String(), "0E.\n...\n..M\n")
}

func TestUndoRoundTrip(t *testing.T) {
	is := is.New(t)
	for game := 0; game < 50; game++ {
		b := NewRandom()
		var snapshots []*Board
		for {
			moves := b.Enumerate()
			for _, d := range moves {
				tgt, ok := b.Target(b.Mover(), d)
				is.True(ok)
				is.True(b.At(tgt).IsEmpty())
			}
			if len(moves) == 0 {
				break
			}
			before := b.Clone()
			d := moves[frand.Intn(len(moves))]
			is.NoErr(b.Apply(d))
			is.NoErr(b.Undo())
			is.True(b.Equal(before))
			is.NoErr(b.Apply(d))
			is.Equal(b.At(b.Mover()), Occupied(b.Active()))
			snapshots = append(snapshots, before)
		}
		// Unwind the whole game.
		for i := len(snapshots) - 1; i >= 0; i-- {
			is.NoErr(b.Undo())
			is.True(b.Equal(snapshots[i]))
		}
		is.Equal(b.NumMoves(), 0)
	}
}

func TestMoveOrderingPrefersContinuation(t *testing.T) {
	is := is.New(t)
	b, err := New(7, 7, Position{3, 3}, Position{5, 5}, 0)
	is.NoErr(err)
	is.Equal(b.Enumerate(), []move.Direction{move.Up, move.Down, move.Right, move.Left})

	is.NoErr(b.Apply(move.Left)) // player 0
	is.NoErr(b.Apply(move.Up))   // player 1
	// player 0 went Left last time, so Left is tried first. Right leads
	// back onto its own trail.
	is.Equal(b.Enumerate(), []move.Direction{move.Left, move.Down, move.Up})

	is.NoErr(b.Apply(move.Down))
	// player 1 went Up; Up is already first.
	is.Equal(b.Enumerate()[0], move.Up)
}

func TestFromRequest(t *testing.T) {
	is := is.New(t)
	req := emptyRequest(10, 10)
	req.PlayerPos = Point{X: 4, Y: 4}
	req.AIPos = Point{X: 6, Y: 6}

	b, err := FromRequest(req)
	is.NoErr(err)
	is.Equal(b.Height(), 10)
	is.Equal(b.Width(), 10)
	is.Equal(b.Mover(), Position{6, 6})
	is.Equal(b.Responder(), Position{4, 4})
	is.Equal(b.Active(), 1)
	is.Equal(b.At(b.Mover()), Occupied(1))
	is.Equal(b.At(b.Responder()), Occupied(0))
	is.Equal(b.EmptyCells(), 98)
	is.Equal(len(b.Enumerate()), 4)
}

func TestFromRequestColumnsAreX(t *testing.T) {
	is := is.New(t)
	req := emptyRequest(4, 2)
	req.PlayerPos = Point{X: 0, Y: 0}
	req.AIPos = Point{X: 3, Y: 1}
	req.Board[1] = 0 // row 0, col 1

	b, err := FromRequest(req)
	is.NoErr(err)
	is.Equal(b.String(), "E0..\n...M\n")
}

func TestFromRequestJSON(t *testing.T) {
	is := is.New(t)
	payload := `{"size":{"x":3,"y":2},"player_pos":{"x":0,"y":0},"ai_pos":{"x":2,"y":1},
		"board":[0,1,-1,-1,-1,1]}`
	var req Request
	is.NoErr(json.Unmarshal([]byte(payload), &req))
	b, err := FromRequest(req)
	is.NoErr(err)
	is.Equal(b.String(), "E1.\n..M\n")
	is.Equal(b.Enumerate(), []move.Direction{move.Up, move.Left})
}

func TestFromRequestInvalid(t *testing.T) {
	is := is.New(t)
	base := func() Request {
		r := emptyRequest(3, 3)
		r.PlayerPos = Point{X: 0, Y: 0}
		r.AIPos = Point{X: 2, Y: 2}
		return r
	}
	cases := map[string]func(r *Request){
		"bad cell":        func(r *Request) { r.Board[4] = 2 },
		"negative cell":   func(r *Request) { r.Board[4] = -2 },
		"short board":     func(r *Request) { r.Board = r.Board[:8] },
		"zero size":       func(r *Request) { r.Size = Point{} },
		"mismatched size": func(r *Request) { r.Size = Point{X: 2, Y: 4} },
		"ai outside":      func(r *Request) { r.AIPos = Point{X: 3, Y: 0} },
		"same cell":       func(r *Request) { r.AIPos = r.PlayerPos },
		"ai on 0's trail": func(r *Request) { r.Board[8] = 0 },
		// h*w wraps to 0 and would accept an empty board
		"overflowing size": func(r *Request) {
			r.Size = Point{X: 1 << 32, Y: 1 << 32}
			r.Board = []int{}
			r.PlayerPos = Point{X: 1, Y: 0}
			r.AIPos = Point{X: 0, Y: 0}
		},
	}
	for name, mutate := range cases {
		r := base()
		mutate(&r)
		_, err := FromRequest(r)
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("%s: expected ErrInvalidRequest, got %v", name, err)
		}
	}
	_, err := FromRequest(base())
	is.NoErr(err)
}

func TestToRequestRoundTrip(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, SampleMidgame, 0)

	// Player 0 is to move, so ids are relabelled for the request.
	req := b.ToRequest()
	is.Equal(req.AIPos, Point{X: 2, Y: 2})
	is.Equal(req.PlayerPos, Point{X: 3, Y: 3})
	is.Equal(req.Board[2*6+2], 1)
	is.Equal(req.Board[1*6+1], 1)
	is.Equal(req.Board[3*6+3], 0)
	is.Equal(req.Board[0], -1)

	is.NoErr(b.Apply(move.Right))
	b2, err := FromRequest(b.ToRequest())
	is.NoErr(err)
	is.Equal(b2.Mover(), b.Mover())
	is.Equal(b2.Responder(), b.Responder())
	is.Equal(b2.Active(), 1)
	is.Equal(b2.String(), b.String())
	is.Equal(b2.Enumerate(), b.Enumerate())
}

func TestParse(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, SampleMidgame, 1)
	is.Equal(b.Height(), 6)
	is.Equal(b.Width(), 6)
	is.Equal(b.At(b.Mover()), Occupied(1))
	is.Equal(b.At(b.Responder()), Occupied(0))
	is.Equal(b.String(), `......
.000..
.0M...
...E1.
...11.
......
`)

	_, err := Parse("M.\n.", 0)
	is.True(errors.Is(err, ErrInvalidDimensions))
	_, err = Parse("M..", 0)
	is.True(err != nil)
	_, err = Parse("M.x\n..E", 0)
	is.True(err != nil)
}

func TestNewRandom(t *testing.T) {
	is := is.New(t)
	for i := 0; i < 100; i++ {
		b := NewRandom()
		is.True(b.Height() >= MinRandomDim && b.Height() <= MaxRandomDim)
		is.True(b.Width() >= MinRandomDim && b.Width() <= MaxRandomDim)
		for _, p := range []Position{b.Mover(), b.Responder()} {
			is.True(p.Row > 0 && p.Row < b.Height()-1)
			is.True(p.Col > 0 && p.Col < b.Width()-1)
		}
		is.True(b.Mover() != b.Responder())
		is.Equal(b.Active(), 0)
		is.Equal(b.EmptyCells(), b.Height()*b.Width()-2)
	}
}
