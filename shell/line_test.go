package shell

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/matryer/is"
)

const smallPosition = `{"size":{"x":3,"y":2},"player_pos":{"x":0,"y":0},"ai_pos":{"x":2,"y":1},"board":[0,1,-1,-1,-1,1]}`

func runSession(t *testing.T, input string) []string {
	t.Helper()
	out := &bytes.Buffer{}
	sess := NewLineSession(firstMove{}, 4, out)
	if err := sess.Run(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func TestLineSession(t *testing.T) {
	is := is.New(t)
	lines := runSession(t, strings.Join([]string{
		"trailbot",
		"position " + smallPosition,
		"show",
		"go",
		"depth deep",
		"fly",
		"",
		"quit",
		"go",
	}, "\n"))
	is.Equal(len(lines), 6)
	is.Equal(lines[0], "trailbotok")
	is.Equal(lines[1], "E1.")
	is.Equal(lines[2], "..M")
	is.Equal(lines[3], "bestmove Up")
	is.True(strings.HasPrefix(lines[4], "error "))
	is.Equal(lines[5], `error unknown command "fly"`) // and nothing after quit
}

func TestLineSessionQuotedPosition(t *testing.T) {
	is := is.New(t)
	lines := runSession(t, fmt.Sprintf("position '%s'\nplay up\nshow\n", smallPosition))
	// the AI moved up; the requester is now the mover
	is.Equal(lines, []string{"M1E", "..1"})
}

func TestLineSessionErrors(t *testing.T) {
	is := is.New(t)
	lines := runSession(t, strings.Join([]string{
		"go",
		"position {not json",
		`position {"size":{"x":1,"y":1},"board":[-1]}`,
		"position " + smallPosition,
		"play left",
		"play right",
	}, "\n"))
	is.Equal(len(lines), 4)
	is.Equal(lines[0], "error no position loaded")
	is.True(strings.HasPrefix(lines[1], "error invalid position request"))
	is.True(strings.HasPrefix(lines[2], "error invalid position request"))
	// the AI steps left; the requester then runs into the AI's trail
	is.True(strings.HasPrefix(lines[3], "error target cell is not empty"))
}

func TestServeLine(t *testing.T) {
	is := is.New(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	is.NoErr(err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveLine(ctx, ln, firstMove{}, 3)
	}()

	conn, err := net.Dial("tcp", ln.Addr().String())
	is.NoErr(err)
	defer conn.Close()
	fmt.Fprintf(conn, "trailbot\nposition %s\ngo\nquit\n", smallPosition)
	r := bufio.NewReader(conn)
	line, err := r.ReadString('\n')
	is.NoErr(err)
	is.Equal(line, "trailbotok\n")
	line, err = r.ReadString('\n')
	is.NoErr(err)
	is.Equal(line, "bestmove Up\n")

	cancel()
	is.NoErr(<-done)
}
