package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/domino14/trailbot/bot"
	"github.com/domino14/trailbot/shell"
)

func newShellCmd() *cobra.Command {
	var useNats, fixed bool
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Play against the bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(banner)
			fmt.Println(GitVersion)

			var decider shell.Decider
			if useNats {
				c, err := bot.NewClient(cfg)
				if err != nil {
					return err
				}
				defer c.Close()
				decider = c
			} else {
				b, err := newBot()
				if err != nil {
					return err
				}
				decider = b
			}
			sc := shell.NewShellController(cfg, decider)
			if err := sc.Start(fixed); err != nil {
				return err
			}

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			go sc.Loop(sig)
			log.Info().Msg("started loop")
			<-sig
			log.Info().Msg("got quit signal...")
			return nil
		},
	}
	cmd.Flags().BoolVar(&useNats, "nats", false, "ask a bot listening on NATS instead of searching locally")
	cmd.Flags().BoolVar(&fixed, "fixed", false, "start on the fixed 10x10 board")
	return cmd
}
