package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/domino14/trailbot/api"
	"github.com/domino14/trailbot/bot"
	"github.com/domino14/trailbot/config"
	"github.com/domino14/trailbot/shell"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Answer positions POSTed as JSON over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBot()
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()
			srv := api.NewServer(api.NewRouter(b), cfg.GetString(config.ConfigHTTPAddr),
				cfg.DecideTimeout())
			return srv.Run(ctx)
		},
	}
}

func newBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Answer positions sent over NATS request/reply",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBot()
			if err != nil {
				return err
			}
			bot.Main(cfg.GetString(config.ConfigNatsChannel), b)
			return nil
		},
	}
}

func newLineServerCmd() *cobra.Command {
	var stdio bool
	cmd := &cobra.Command{
		Use:   "lineserver",
		Short: "Speak the line protocol over TCP, or stdin/stdout with --stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBot()
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()
			if stdio {
				sess := shell.NewLineSession(b, cfg.Depth(), os.Stdout)
				return sess.Run(ctx, os.Stdin)
			}
			return shell.ServeLine(ctx, cfg.GetString(config.ConfigLineAddr), b, cfg.Depth())
		},
	}
	cmd.Flags().BoolVar(&stdio, "stdio", false, "use stdin and stdout instead of TCP")
	return cmd
}
