package bot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/trailbot/board"
	"github.com/domino14/trailbot/move"
)

// LambdaEvent is the payload of a serverless decide invocation. When
// ReplyChannel is set the move is also sent there over NATS.
type LambdaEvent struct {
	GameID       string        `json:"game_id"`
	Request      board.Request `json:"request"`
	ReplyChannel string        `json:"reply_channel"`
}

// LambdaReply is what gets published on the reply channel.
type LambdaReply struct {
	GameID string         `json:"game_id"`
	Move   move.Direction `json:"move"`
}

// LambdaMargin is kept back from the invocation deadline so the reply
// can still be sent.
const LambdaMargin = 5 * time.Second

// Requester sends a NATS request and waits for the ack. *nats.Conn
// implements it.
type Requester interface {
	Request(subj string, data []byte, timeout time.Duration) (*nats.Msg, error)
}

// HandleLambda decides the event's position and, if asked to, delivers
// the move on the reply channel, retrying until it is acknowledged.
func (bot *Bot) HandleLambda(ctx context.Context, nc Requester, evt LambdaEvent) (string, error) {
	logger := log.With().Str("gameID", evt.GameID).Logger()

	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, deadline.Add(-LambdaMargin))
		defer cancel()
		logger.Info().Time("deadline", deadline).Msg("time-management")
	}

	d, err := bot.Decide(ctx, evt.Request)
	if err != nil {
		return "", err
	}
	if evt.ReplyChannel != "" && nc != nil {
		data, err := json.Marshal(LambdaReply{GameID: evt.GameID, Move: d})
		if err != nil {
			return "", err
		}
		logger.Info().Msg("move-success-sending-via-nats")
		err = retry.Do(
			func() error {
				// Only the acknowledgement matters, not its content.
				_, err := nc.Request(evt.ReplyChannel, data, 3*time.Second)
				return err
			},
			retry.Attempts(5),
			retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
				logger.Err(err).Uint("n", n).
					Msg("did-not-receive-ack-try-again")
				return retry.BackOffDelay(n, err, config)
			}),
		)
		if err != nil {
			logger.Err(err).Msg("bot-move-failed")
		}
	}
	logger.Info().Msg("exiting-fn")
	return d.String(), nil
}
