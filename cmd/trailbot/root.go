package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/domino14/trailbot/bot"
	"github.com/domino14/trailbot/cache"
	"github.com/domino14/trailbot/config"
)

var cfg *config.Config

func newRootCmd() *cobra.Command {
	cfg = config.DefaultConfig()
	var profile *os.File

	rootCmd := &cobra.Command{
		Use:   "trailbot",
		Short: "AI for a two-player grid trail game",
		Long: `trailbot picks moves for a two-player game where each player leaves a
trail of blocked cells behind them and the first player unable to move loses.

It can answer positions over HTTP, NATS or a line protocol, play against you
in an interactive shell, or play against itself.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.BindFlags(cmd.Flags()); err != nil {
				return err
			}
			setupLogging(cfg)
			log.Debug().Interface("config", cfg.SanitizedSettings()).Msg("loaded-config")
			if path := cfg.GetString(config.ConfigCPUProfile); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("could not create CPU profile: %w", err)
				}
				if err := pprof.StartCPUProfile(f); err != nil {
					f.Close()
					return fmt.Errorf("could not start CPU profile: %w", err)
				}
				profile = f
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if profile != nil {
				pprof.StopCPUProfile()
				profile.Close()
			}
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().AddFlagSet(config.Flags())

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newBotCmd())
	rootCmd.AddCommand(newLineServerCmd())
	rootCmd.AddCommand(newShellCmd())
	rootCmd.AddCommand(newAutoplayCmd())
	rootCmd.AddCommand(newSolveCmd())
	return rootCmd
}

func setupLogging(cfg *config.Config) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

// newBot builds the decision service with the configured cache.
func newBot() (*bot.Bot, error) {
	store, err := cache.New(cfg)
	if err != nil {
		return nil, err
	}
	return bot.NewBot(cfg, store), nil
}
