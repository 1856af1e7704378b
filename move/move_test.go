package move

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestOppositeUndoesOffset(t *testing.T) {
	is := is.New(t)
	for _, d := range AllDirections {
		dr, dc := d.Offset()
		or, oc := d.Opposite().Offset()
		is.Equal(dr+or, 0)
		is.Equal(dc+oc, 0)
		is.Equal(d.Opposite().Opposite(), d)
	}
}

func TestFromString(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		in  string
		exp Direction
	}{
		{"w", Up},
		{"s", Down},
		{"d", Right},
		{"a", Left},
		{"Up", Up},
		{" left ", Left},
		{"RIGHT", Right},
	}
	for _, c := range cases {
		d, err := FromString(c.in)
		is.NoErr(err)
		is.Equal(d, c.exp)
	}
	_, err := FromString("x")
	is.True(errors.Is(err, ErrUnknownDirection))
}

func TestJSONEncoding(t *testing.T) {
	is := is.New(t)
	bts, err := json.Marshal(Right)
	is.NoErr(err)
	is.Equal(string(bts), `"Right"`)

	var d Direction
	is.NoErr(json.Unmarshal([]byte(`"Down"`), &d))
	is.Equal(d, Down)

	is.True(json.Unmarshal([]byte(`"North"`), &d) != nil)
	_, err = json.Marshal(Direction(7))
	is.True(err != nil)
}
