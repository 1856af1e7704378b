package bot

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/trailbot/board"
	"github.com/domino14/trailbot/config"
	"github.com/domino14/trailbot/move"
)

type Client struct {
	// NATS connection
	nc      *nats.Conn
	channel string
	timeout time.Duration
}

func NewClient(cfg *config.Config) (*Client, error) {
	nc, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{
		nc:      nc,
		channel: cfg.GetString(config.ConfigNatsChannel),
		// leave the bot room to answer with its own timeout error
		timeout: cfg.DecideTimeout() + 5*time.Second,
	}, nil
}

// RequestMove sends a position to the bot and gets a move back.
func (c *Client) RequestMove(req board.Request) (move.Direction, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return 0, err
	}
	res, err := c.nc.Request(c.channel, data, c.timeout)
	if err != nil {
		if c.nc.LastError() != nil {
			log.Error().Msgf("%v for request", c.nc.LastError())
		}
		log.Error().Msgf("%v for request", err)
		return 0, err
	}
	log.Debug().Msgf("res: %v", string(res.Data))
	return parseReply(res.Data)
}

// DecideBoard asks the bot for the mover's move on b. The remote bot
// searches at its own configured depth.
func (c *Client) DecideBoard(_ context.Context, b *board.Board, _ int) (move.Direction, error) {
	return c.RequestMove(b.ToRequest())
}

func parseReply(data []byte) (move.Direction, error) {
	if msg, ok := strings.CutPrefix(string(data), ErrorPrefix); ok {
		return 0, errors.New("Bot returned: " + msg)
	}
	var d move.Direction
	if err := json.Unmarshal(data, &d); err != nil {
		return 0, err
	}
	return d, nil
}

func (c *Client) Close() {
	c.nc.Close()
}
