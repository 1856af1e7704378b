package shell

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/trailbot/board"
	"github.com/domino14/trailbot/move"
)

// LineSession speaks the line protocol: one command per line in, one or
// more lines out.
//
//	trailbot          -> trailbotok
//	depth <n>
//	position <json>   loads a request position (the AI is to move)
//	play <dir>        plays a move on the loaded position
//	go                -> bestmove <dir>
//	show              -> the board, one line per row
//	quit
//
// Failures are reported as a single "error <message>" line.
type LineSession struct {
	decider  Decider
	out      io.Writer
	depth    int
	board    *board.Board
	quitting bool
}

func NewLineSession(decider Decider, depth int, out io.Writer) *LineSession {
	return &LineSession{decider: decider, out: out, depth: depth}
}

// Run reads commands from in until quit, end of input or ctx is done.
func (s *LineSession) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for !s.quitting && ctx.Err() == nil {
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := s.Process(ctx, scanner.Text()); err != nil {
			fmt.Fprintln(s.out, "error", err.Error())
		}
	}
	return nil
}

// loadPosition takes everything after the command word as the request,
// unquoted if the client quoted it. JSON is full of double quotes, so it
// is not run through the shell splitter unless wrapped in single quotes.
func (s *LineSession) loadPosition(line string) error {
	payload := strings.TrimSpace(strings.TrimPrefix(line, "position"))
	if strings.HasPrefix(payload, "'") {
		fields, err := shellquote.Split(payload)
		if err != nil {
			return err
		}
		payload = strings.Join(fields, " ")
	}
	var req board.Request
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return fmt.Errorf("%w: %v", board.ErrInvalidRequest, err)
	}
	b, err := board.FromRequest(req)
	if err != nil {
		return err
	}
	s.board = b
	return nil
}

func (s *LineSession) Process(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if word, _, _ := strings.Cut(line, " "); word == "position" {
		return s.loadPosition(line)
	}
	cmd, err := extractFields(line)
	if err != nil {
		return err
	}
	switch cmd.cmd {
	case "trailbot":
		fmt.Fprintln(s.out, "trailbotok")
	case "quit":
		s.quitting = true
	case "depth":
		if len(cmd.args) != 1 {
			return errors.New("depth needs one argument")
		}
		d, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return err
		}
		if d < 1 {
			return errors.New("depth must be at least 1")
		}
		s.depth = d
	case "play":
		if s.board == nil {
			return errors.New("no position loaded")
		}
		if len(cmd.args) != 1 {
			return errors.New("play needs a direction")
		}
		d, err := move.FromString(cmd.args[0])
		if err != nil {
			return err
		}
		return s.board.Apply(d)
	case "go":
		if s.board == nil {
			return errors.New("no position loaded")
		}
		d, err := s.decider.DecideBoard(ctx, s.board, s.depth)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, "bestmove", d)
	case "show":
		if s.board == nil {
			return errors.New("no position loaded")
		}
		fmt.Fprint(s.out, s.board.String())
	default:
		return fmt.Errorf("unknown command %q", cmd.cmd)
	}
	return nil
}

// ServeLine accepts line protocol connections on addr, one session per
// connection, until ctx is done.
func ServeLine(ctx context.Context, addr string, decider Decider, depth int) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return serveLine(ctx, ln, decider, depth)
}

func serveLine(ctx context.Context, ln net.Listener, decider Decider, depth int) error {
	log.Info().Str("addr", ln.Addr().String()).Msg("line-server-listening")
	go func() {
		<-ctx.Done()
		ln.Close()
	}()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go func() {
			defer conn.Close()
			log.Info().Str("remote", conn.RemoteAddr().String()).Msg("line-session-start")
			sess := NewLineSession(decider, depth, conn)
			if err := sess.Run(ctx, conn); err != nil {
				log.Err(err).Msg("line-session-error")
			}
			log.Info().Str("remote", conn.RemoteAddr().String()).Msg("line-session-end")
		}()
	}
}
