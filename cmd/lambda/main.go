package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/trailbot/bot"
	"github.com/domino14/trailbot/cache"
	"github.com/domino14/trailbot/config"
)

var cfg *config.Config
var nc *nats.Conn
var trailbot *bot.Bot

func HandleRequest(ctx context.Context, evt bot.LambdaEvent) (string, error) {
	// Block until the move is decided and delivered; the return value
	// is informational only.
	return trailbot.HandleLambda(ctx, nc, evt)
}

func main() {
	cfg = config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("bad-config")
	}
	log.Info().Interface("config", cfg.SanitizedSettings()).Msg("loaded-config")
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	store, err := cache.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cache-init-failed")
	}
	trailbot = bot.NewBot(cfg, store)

	nc, err = bot.Connect(cfg)
	if err != nil {
		log.Fatal().AnErr("natsConnectErr", err).Msg(":(")
	}

	lambda.Start(HandleRequest)
}
