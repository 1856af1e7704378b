package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/trailbot/board"
	"github.com/domino14/trailbot/cache"
	"github.com/domino14/trailbot/config"
	"github.com/domino14/trailbot/move"
	"github.com/domino14/trailbot/negamax"
)

// ErrorPrefix starts every error reply sent over NATS.
const ErrorPrefix = "error: "

type Bot struct {
	config *config.Config
	cache  cache.Store
}

func NewBot(config *config.Config, store cache.Store) *Bot {
	if store == nil {
		store = cache.NoStore{}
	}
	return &Bot{config: config, cache: store}
}

func (bot *Bot) Config() *config.Config {
	return bot.config
}

// Decide answers a request at the configured depth.
func (bot *Bot) Decide(ctx context.Context, req board.Request) (move.Direction, error) {
	b, err := board.FromRequest(req)
	if err != nil {
		return 0, err
	}
	return bot.DecideBoard(ctx, b, bot.config.Depth())
}

type decision struct {
	d   move.Direction
	err error
}

// DecideBoard picks a move for the mover of b. It gives up when ctx is
// done or the decide-timeout passes, whichever is first; the search
// itself is not interrupted and its result is still cached.
func (bot *Bot) DecideBoard(ctx context.Context, b *board.Board, depth int) (move.Direction, error) {
	key := cache.Key(b, depth)
	d, ok, err := bot.cache.Get(ctx, key)
	if err != nil {
		log.Err(err).Str("key", key).Msg("cache-get-failed")
	} else if ok {
		log.Debug().Str("key", key).Str("move", d.String()).Msg("cache-hit")
		return d, nil
	}

	if timeout := bot.config.DecideTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan decision, 1)
	solver := negamax.NewSolver(b.Clone())
	go func() {
		d, err := solver.Decide(depth)
		if err == nil {
			// The caller may be gone by now, so don't tie the store
			// to its context.
			if perr := bot.cache.Put(context.Background(), key, d); perr != nil {
				log.Err(perr).Str("key", key).Msg("cache-put-failed")
			}
		}
		done <- decision{d, err}
	}()

	select {
	case <-ctx.Done():
		log.Warn().Int("depth", depth).Msg("decide-abandoned")
		return 0, fmt.Errorf("waiting for decision: %w", ctx.Err())
	case r := <-done:
		return r.d, r.err
	}
}

// Handle decodes a JSON request and returns the JSON-encoded direction.
func (bot *Bot) Handle(ctx context.Context, data []byte) ([]byte, error) {
	var req board.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", board.ErrInvalidRequest, err)
	}
	d, err := bot.Decide(ctx, req)
	if err != nil {
		return nil, err
	}
	return json.Marshal(d)
}

func (bot *Bot) reply(data []byte) []byte {
	tstart := time.Now()
	resp, err := bot.Handle(context.Background(), data)
	if err != nil {
		log.Err(err).Msg("bot-request-failed")
		return []byte(ErrorPrefix + err.Error())
	}
	log.Info().Str("move", string(resp)).
		Int64("elapsed-ms", time.Since(tstart).Milliseconds()).
		Msg("bot-replied")
	return resp
}

// Connect dials the configured NATS server, backing off between failed
// attempts.
func Connect(cfg *config.Config) (*nats.Conn, error) {
	var nc *nats.Conn
	err := retry.Do(
		func() error {
			var err error
			nc, err = nats.Connect(cfg.GetString(config.ConfigNatsURL))
			return err
		},
		retry.Attempts(5),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Msg("nats-connect-failed-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	return nc, err
}

// Main serves requests on channel until the process exits.
func Main(channel string, bot *Bot) {
	nc, err := Connect(bot.config)
	if err != nil {
		log.Fatal().Err(err).Msg("could-not-connect")
	}
	// Simple Async Subscriber
	nc.Subscribe(channel, func(m *nats.Msg) {
		log.Info().Msgf("RECV: %d bytes", len(m.Data))
		m.Respond(bot.reply(m.Data))
	})
	nc.Flush()

	if err := nc.LastError(); err != nil {
		log.Fatal().Err(err).Msg("nats-error")
	}

	log.Info().Msgf("Listening on [%s]", channel)

	runtime.Goexit()
}
