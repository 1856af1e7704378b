package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/domino14/trailbot/board"
	"github.com/domino14/trailbot/config"
	"github.com/domino14/trailbot/move"
)

const (
	HumanPlayer = 0
	BotPlayer   = 1
)

// Fixed start used by "new fixed": a 10x10 board with the players at
// (4,4) and (6,6).
const (
	fixedDim = 10
	fixedLo  = 4
	fixedHi  = 6
)

var (
	errNoGame   = errors.New("no game in progress; type new")
	errGameOver = errors.New("the game is over; type new or undo")
)

// Decider picks the mover's move on a board.
type Decider interface {
	DecideBoard(ctx context.Context, b *board.Board, depth int) (move.Direction, error)
}

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	config  *config.Config
	decider Decider
	depth   int
	board   *board.Board

	scripting bool
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config, decider Decider) *ShellController {
	sc := newController(cfg, decider, nil)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mtrailbot>\033[0m ",
		HistoryFile:     "/tmp/trailbot-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

func newController(cfg *config.Config, decider Decider, out io.Writer) *ShellController {
	return &ShellController{
		out:     out,
		config:  cfg,
		decider: decider,
		depth:   cfg.Depth(),
	}
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func (sc *ShellController) IsPlaying() bool {
	return sc.board != nil && sc.board.HasMoves()
}

// newGame starts a game on the fixed board, on a random size x size
// board when size > 0, or on a board of random size.
func (sc *ShellController) newGame(fixed bool, size int) (string, error) {
	switch {
	case fixed:
		b, err := board.New(fixedDim, fixedDim,
			board.Position{Row: fixedLo, Col: fixedLo},
			board.Position{Row: fixedHi, Col: fixedHi}, HumanPlayer)
		if err != nil {
			return "", err
		}
		sc.board = b
	case size > 0:
		sc.board = board.NewRandomSized(size, size)
	default:
		sc.board = board.NewRandom()
	}
	log.Debug().Int("height", sc.board.Height()).Int("width", sc.board.Width()).Msg("new-game")
	return sc.display(), nil
}

// Start begins the first game and shows it.
func (sc *ShellController) Start(fixed bool) error {
	msg, err := sc.newGame(fixed, 0)
	if err != nil {
		return err
	}
	sc.showMessage(msg)
	return nil
}

// display renders the board with a line saying which head is whose.
func (sc *ShellController) display() string {
	you, them := "M", "E"
	if sc.board.Active() != HumanPlayer {
		you, them = them, you
	}
	return fmt.Sprintf("%s\nyou (%d): %s   bot (%d): %s   plies: %d",
		strings.TrimRight(sc.board.String(), "\n"),
		HumanPlayer, you, BotPlayer, them, sc.board.NumMoves())
}

func (sc *ShellController) gameOverMessage() string {
	return fmt.Sprintf("Game over: player %d has no moves and loses.", sc.board.Active())
}

func (sc *ShellController) play(d move.Direction) (string, error) {
	if sc.board == nil {
		return "", errNoGame
	}
	if !sc.IsPlaying() {
		return "", errGameOver
	}
	if err := sc.board.Apply(d); err != nil {
		return "", fmt.Errorf("cannot move %v: %w", d, err)
	}
	if !sc.board.HasMoves() {
		return sc.display() + "\n" + sc.gameOverMessage(), nil
	}

	reply, err := sc.decider.DecideBoard(context.Background(), sc.board, sc.depth)
	if err == nil {
		err = sc.board.Apply(reply)
	}
	if err != nil {
		// Take the human move back so it is the human's turn again.
		if uerr := sc.board.Undo(); uerr != nil {
			return "", uerr
		}
		return "", fmt.Errorf("bot could not answer: %w", err)
	}
	msg := fmt.Sprintf("bot played %v\n%s", reply, sc.display())
	if !sc.board.HasMoves() {
		msg += "\n" + sc.gameOverMessage()
	}
	return msg, nil
}

// undo takes back the last human move along with the bot's answer to it.
func (sc *ShellController) undo() (string, error) {
	if sc.board == nil {
		return "", errNoGame
	}
	plies := 2
	if sc.board.Active() != HumanPlayer {
		// the bot was left without a move
		plies = 1
	}
	if sc.board.NumMoves() < plies {
		return "", errors.New("nothing to undo")
	}
	for i := 0; i < plies; i++ {
		if err := sc.board.Undo(); err != nil {
			return "", err
		}
	}
	return sc.display(), nil
}

// optionInt reads an integer -option, returning def when it is absent.
func optionInt(cmd *shellcmd, name string, def int) (int, error) {
	v, ok := cmd.options[name]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("-%s: %w", name, err)
	}
	return n, nil
}

func (sc *ShellController) hint(cmd *shellcmd) (string, error) {
	if sc.board == nil {
		return "", errNoGame
	}
	if !sc.IsPlaying() {
		return "", errGameOver
	}
	depth, err := optionInt(cmd, "depth", sc.depth)
	if err != nil {
		return "", err
	}
	if depth < 1 {
		return "", errors.New("depth must be at least 1")
	}
	d, err := sc.decider.DecideBoard(context.Background(), sc.board, depth)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("the bot would play %v", d), nil
}

func (sc *ShellController) setDepth(args []string) (string, error) {
	if len(args) == 0 {
		return fmt.Sprintf("depth: %d", sc.depth), nil
	}
	d, err := strconv.Atoi(args[0])
	if err != nil {
		return "", err
	}
	if d < 1 {
		return "", errors.New("depth must be at least 1")
	}
	sc.depth = d
	return fmt.Sprintf("depth set to %d", d), nil
}

func (sc *ShellController) handle(line string) (string, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return "", err
	}
	if d, err := move.FromString(cmd.cmd); err == nil && len(cmd.args) == 0 {
		return sc.play(d)
	}
	switch cmd.cmd {
	case "new", "n":
		fixed := len(cmd.args) > 0 && cmd.args[0] == "fixed"
		size, err := optionInt(cmd, "size", 0)
		if err != nil {
			return "", err
		}
		if size != 0 && (size < board.MinRandomDim || size > board.MaxRandomDim) {
			return "", fmt.Errorf("size must be between %d and %d",
				board.MinRandomDim, board.MaxRandomDim)
		}
		return sc.newGame(fixed, size)
	case "move", "m":
		if len(cmd.args) != 1 {
			return "", errors.New("move <up|down|left|right>")
		}
		d, err := move.FromString(cmd.args[0])
		if err != nil {
			return "", err
		}
		return sc.play(d)
	case "undo":
		return sc.undo()
	case "show", "b":
		if sc.board == nil {
			return "", errNoGame
		}
		return sc.display(), nil
	case "hint":
		return sc.hint(cmd)
	case "depth":
		return sc.setDepth(cmd.args)
	case "script":
		return sc.script(cmd)
	case "help", "h":
		var sb strings.Builder
		if len(cmd.args) == 0 {
			usage(&sb)
		} else {
			usageTopic(&sb, cmd.args[0])
		}
		return sb.String(), nil
	default:
		msg := fmt.Sprintf("command %v not found", strconv.Quote(cmd.cmd))
		log.Info().Msg(msg)
		return "", errors.New(msg)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {

	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			sig <- syscall.SIGINT
			break
		}
		resp, err := sc.handle(line)
		if err != nil {
			sc.showError(err)
		} else if resp != "" {
			sc.showMessage(resp)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
