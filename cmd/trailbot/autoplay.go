package main

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/domino14/trailbot/automatic"
)

func newAutoplayCmd() *cobra.Command {
	var opts automatic.Options
	var analyze string
	cmd := &cobra.Command{
		Use:   "autoplay",
		Short: "Play the bot against itself and report win rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			if analyze != "" {
				report, err := automatic.AnalyzeLogFile(analyze)
				if err != nil {
					return err
				}
				fmt.Print(report)
				return nil
			}
			if opts.Depths[0] < 1 || opts.Depths[1] < 1 {
				return errors.New("both depths must be at least 1")
			}
			ctx, stop := signalContext()
			defer stop()
			summary, err := automatic.StartCompVComp(ctx, opts)
			if summary != nil {
				fmt.Print(summary.String())
			}
			return err
		},
	}
	cmd.Flags().IntVar(&opts.NumGames, "games", 100, "number of games to play")
	cmd.Flags().IntVar(&opts.Threads, "threads", runtime.NumCPU(), "games played at once")
	cmd.Flags().IntVar(&opts.Depths[0], "depth1", 4, "search depth of the first seat")
	cmd.Flags().IntVar(&opts.Depths[1], "depth2", 6, "search depth of the second seat")
	cmd.Flags().StringVar(&opts.OutputFile, "logfile", "", "write one CSV record per game here")
	cmd.Flags().StringVar(&analyze, "analyze", "", "summarize an existing game log instead of playing")
	return cmd
}
