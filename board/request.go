package board

import (
	"fmt"

	"github.com/samber/lo"
)

// AIPlayer is the id the decision request assigns to the AI. The
// requester plays with the other id.
const AIPlayer = 1

// Point is a request coordinate: X is the column, Y the row.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Point) position() Position {
	return Position{Row: p.Y, Col: p.X}
}

func pointOf(p Position) Point {
	return Point{X: p.Col, Y: p.Row}
}

// Request is a position sent by a front end asking the AI for a move.
// Board is the row-major grid: -1 empty, 0 or 1 the owner of the cell.
type Request struct {
	Size      Point `json:"size" yaml:"size"`
	PlayerPos Point `json:"player_pos" yaml:"player_pos"`
	AIPos     Point `json:"ai_pos" yaml:"ai_pos"`
	Board     []int `json:"board" yaml:"board"`
}

// FromRequest builds the board the AI has to move on. The AI is the
// mover with id 1; the requesting player is the responder. A player
// position given on an empty cell is stamped with that player's id.
func FromRequest(req Request) (*Board, error) {
	h, w := req.Size.Y, req.Size.X
	if h <= 0 || w <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidRequest, w, h)
	}
	// Compare by division: h*w can overflow for absurd sizes.
	if n := len(req.Board); w > n || n%w != 0 || n/w != h {
		return nil, fmt.Errorf("%w: board has %d cells, expected %dx%d",
			ErrInvalidRequest, n, w, h)
	}
	if bad, found := lo.Find(req.Board, func(v int) bool {
		return v < int(Empty) || v > 1
	}); found {
		return nil, fmt.Errorf("%w: cell value %d", ErrInvalidRequest, bad)
	}
	ai, player := req.AIPos.position(), req.PlayerPos.position()

	b := &Board{
		height: h,
		width:  w,
		cells:  lo.Map(req.Board, func(v int, _ int) Cell { return Cell(v) }),
		active: AIPlayer,
	}
	if !b.InBounds(ai) || !b.InBounds(player) {
		return nil, fmt.Errorf("%w: positions %v and %v outside %dx%d grid",
			ErrInvalidRequest, req.AIPos, req.PlayerPos, w, h)
	}
	if ai == player {
		return nil, fmt.Errorf("%w: both players at %v", ErrInvalidRequest, req.AIPos)
	}
	for _, head := range []struct {
		pos Position
		id  int
	}{{ai, AIPlayer}, {player, AIPlayer ^ 1}} {
		switch c := b.At(head.pos); {
		case c.IsEmpty():
			b.set(head.pos, Occupied(head.id))
		case c.Owner() != head.id:
			return nil, fmt.Errorf("%w: player %d stands on a cell owned by %d",
				ErrInvalidRequest, head.id, c.Owner())
		}
	}
	b.mover = ai
	b.responder = player
	return b, nil
}

// ToRequest encodes the board as a request from the mover's point of
// view: the mover becomes the AI and ids are relabelled so it owns 1.
func (b *Board) ToRequest() Request {
	flip := b.active ^ AIPlayer
	return Request{
		Size:      Point{X: b.width, Y: b.height},
		PlayerPos: pointOf(b.responder),
		AIPos:     pointOf(b.mover),
		Board: lo.Map(b.cells, func(c Cell, _ int) int {
			if c.IsEmpty() {
				return int(Empty)
			}
			return c.Owner() ^ flip
		}),
	}
}
