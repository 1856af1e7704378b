package board

import (
	"fmt"
	"strings"
)

const (
	moverMarker     = 'M'
	responderMarker = 'E'
)

// String renders the grid one row per line: M is the mover, E the
// responder, '.' an empty cell and 0/1 the trail of each player.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(b.height * (b.width + 1))
	for r := 0; r < b.height; r++ {
		for c := 0; c < b.width; c++ {
			p := Position{Row: r, Col: c}
			switch p {
			case b.mover:
				sb.WriteByte(moverMarker)
			case b.responder:
				sb.WriteByte(responderMarker)
			default:
				sb.WriteString(b.At(p).String())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Parse builds a board from the text form produced by String. The mover
// (M) gets id active and the responder (E) the other id. Blank lines and
// surrounding whitespace are ignored. The parsed board has an empty log.
func Parse(text string, active int) (*Board, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDimensions)
	}
	width := len(rows[0])
	var mover, responder *Position
	cells := make([]Cell, 0, len(rows)*width)
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d",
				ErrInvalidDimensions, r, len(row), width)
		}
		for c, ch := range []byte(row) {
			p := Position{Row: r, Col: c}
			switch ch {
			case '.':
				cells = append(cells, Empty)
			case '0', '1':
				cells = append(cells, Cell(ch-'0'))
			case moverMarker:
				mover = &p
				cells = append(cells, Occupied(active))
			case responderMarker:
				responder = &p
				cells = append(cells, Occupied(active^1))
			default:
				return nil, fmt.Errorf("unexpected character %q at %v", ch, p)
			}
		}
	}
	if mover == nil || responder == nil {
		return nil, fmt.Errorf("board needs both an %c and an %c", moverMarker, responderMarker)
	}
	b, err := New(len(rows), width, *mover, *responder, active)
	if err != nil {
		return nil, err
	}
	copy(b.cells, cells)
	return b, nil
}
