package bot

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/domino14/trailbot/board"
	"github.com/domino14/trailbot/cache"
	"github.com/domino14/trailbot/config"
	"github.com/domino14/trailbot/move"
	"github.com/domino14/trailbot/negamax"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

const fixedRequest = `{"size":{"x":10,"y":10},"player_pos":{"x":4,"y":4},"ai_pos":{"x":6,"y":6},
"board":[` + `-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,` +
	`-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,` +
	`-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,` +
	`-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,` +
	`-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1,-1]}`

func newTestBot(depth int, store cache.Store) *Bot {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigDepth, depth)
	cfg.Set(config.ConfigDecideTimeout, 20*time.Second)
	return NewBot(cfg, store)
}

func TestHandle(t *testing.T) {
	is := is.New(t)
	bot := newTestBot(3, nil)
	resp, err := bot.Handle(context.Background(), []byte(fixedRequest))
	is.NoErr(err)
	d, err := parseReply(resp)
	is.NoErr(err)
	is.True(d.Valid())
	is.True(strings.HasPrefix(string(resp), `"`))
}

func TestDecideUsesCache(t *testing.T) {
	is := is.New(t)
	store := cache.NewMemoryStore(0.0001)
	bot := newTestBot(3, store)
	b, err := board.Parse(string(board.SampleMidgame), 1)
	is.NoErr(err)

	first, err := bot.DecideBoard(context.Background(), b, 3)
	is.NoErr(err)
	is.Equal(store.Len(), 1)
	stored, ok, err := store.Get(context.Background(), cache.Key(b, 3))
	is.NoErr(err)
	is.True(ok)
	is.Equal(stored, first)

	// A planted entry is returned without searching.
	other := move.Up
	if first == move.Up {
		other = move.Down
	}
	is.NoErr(store.Put(context.Background(), cache.Key(b, 3), other))
	got, err := bot.DecideBoard(context.Background(), b, 3)
	is.NoErr(err)
	is.Equal(got, other)
}

func TestDecideErrors(t *testing.T) {
	is := is.New(t)
	bot := newTestBot(3, nil)

	_, err := bot.Handle(context.Background(), []byte(`{"size":`))
	is.True(errors.Is(err, board.ErrInvalidRequest))

	_, err = bot.Handle(context.Background(), []byte(`{"size":{"x":3,"y":3},
		"player_pos":{"x":2,"y":2},"ai_pos":{"x":0,"y":0},"board":[1,0,-1,0,-1,-1,-1,-1,0]}`))
	is.True(errors.Is(err, negamax.ErrNoMoves))

	reply := bot.reply([]byte(`{"size":{"x":0,"y":0}}`))
	is.True(strings.HasPrefix(string(reply), ErrorPrefix))
	_, err = parseReply(reply)
	is.True(err != nil)
}

func TestDecideDeadline(t *testing.T) {
	is := is.New(t)
	bot := newTestBot(9, nil)
	b := board.NewRandomSized(12, 12)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := bot.DecideBoard(ctx, b, 9)
	is.True(errors.Is(err, context.Canceled))
}

func TestParseReply(t *testing.T) {
	is := is.New(t)
	d, err := parseReply([]byte(`"Left"`))
	is.NoErr(err)
	is.Equal(d, move.Left)
	_, err = parseReply([]byte(`error: no legal moves`))
	is.Equal(err.Error(), "Bot returned: no legal moves")
}

type ackRecorder struct {
	failures int
	subjects []string
	payloads [][]byte
}

func (a *ackRecorder) Request(subj string, data []byte, _ time.Duration) (*nats.Msg, error) {
	if a.failures > 0 {
		a.failures--
		return nil, nats.ErrTimeout
	}
	a.subjects = append(a.subjects, subj)
	a.payloads = append(a.payloads, data)
	return &nats.Msg{}, nil
}

func lambdaEvent(t *testing.T, channel string) LambdaEvent {
	t.Helper()
	var req board.Request
	if err := json.Unmarshal([]byte(fixedRequest), &req); err != nil {
		t.Fatal(err)
	}
	return LambdaEvent{GameID: "g1", Request: req, ReplyChannel: channel}
}

func TestHandleLambda(t *testing.T) {
	is := is.New(t)
	bot := newTestBot(2, nil)
	ack := &ackRecorder{failures: 1}

	ctx, cancel := context.WithTimeout(context.Background(), LambdaMargin+20*time.Second)
	defer cancel()
	out, err := bot.HandleLambda(ctx, ack, lambdaEvent(t, "game.g1.reply"))
	is.NoErr(err)
	is.Equal(ack.subjects, []string{"game.g1.reply"})

	var reply LambdaReply
	is.NoErr(json.Unmarshal(ack.payloads[0], &reply))
	is.Equal(reply.GameID, "g1")
	is.Equal(reply.Move.String(), out)
}

func TestHandleLambdaNoReplyChannel(t *testing.T) {
	is := is.New(t)
	bot := newTestBot(2, nil)
	ack := &ackRecorder{}
	_, err := bot.HandleLambda(context.Background(), ack, lambdaEvent(t, ""))
	is.NoErr(err)
	is.Equal(len(ack.subjects), 0)

	evt := lambdaEvent(t, "")
	evt.Request.Board = evt.Request.Board[:3]
	_, err = bot.HandleLambda(context.Background(), ack, evt)
	is.True(errors.Is(err, board.ErrInvalidRequest))
}
