// Package cache stores decisions already made, keyed by position and
// search depth, so a server asked about the same position twice only
// searches it once.
package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/trailbot/board"
	"github.com/domino14/trailbot/config"
	"github.com/domino14/trailbot/move"
	"github.com/domino14/trailbot/zobrist"
)

var ErrUnknownCacheType = errors.New("unknown cache type")

type Store interface {
	// Get returns the stored decision and whether there was one.
	Get(ctx context.Context, key string) (move.Direction, bool, error)
	Put(ctx context.Context, key string, d move.Direction) error
	Close() error
}

// z uses a fixed seed so keys agree across processes sharing a store.
var z = zobrist.New(zobrist.DefaultSeed)

// Key identifies the decision for b at depth. Besides the position it
// carries the direction the mover played last, since move ordering (and
// with it the choice between equal moves) depends on it.
func Key(b *board.Board, depth int) string {
	prev := "-"
	if l := b.Log(); len(l) >= 2 {
		prev = l[len(l)-2].String()
	}
	return fmt.Sprintf("trailbot:%016x:%s:%d", z.Hash(b), prev, depth)
}

// New returns the store named by the config's cache-type.
func New(cfg *config.Config) (Store, error) {
	switch t := cfg.GetString(config.ConfigCacheType); t {
	case config.CacheTypeMemory:
		return NewMemoryStore(cfg.GetFloat64(config.ConfigCacheMemoryFraction)), nil
	case config.CacheTypeRedis:
		s, err := NewRedisStore(cfg.GetString(config.ConfigRedisURL))
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.CacheTypeNone:
		log.Info().Msg("decision cache disabled")
		return NoStore{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCacheType, t)
	}
}

// NoStore never remembers anything.
type NoStore struct{}

func (NoStore) Get(context.Context, string) (move.Direction, bool, error) {
	return 0, false, nil
}
func (NoStore) Put(context.Context, string, move.Direction) error { return nil }
func (NoStore) Close() error                                       { return nil }
