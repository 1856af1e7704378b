package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/domino14/trailbot/board"
	"github.com/domino14/trailbot/bot"
	"github.com/domino14/trailbot/negamax"
)

// readRequest reads a position from path, or stdin for "-". YAML is a
// superset of JSON, so one decoder covers both formats.
func readRequest(path string) (board.Request, error) {
	var req board.Request
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return req, err
	}
	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("%w: %v", board.ErrInvalidRequest, err)
	}
	return req, nil
}

func newSolveCmd() *cobra.Command {
	var file string
	var useNats, noPruning bool
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Decide one position read from a JSON or YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest(file)
			if err != nil {
				return err
			}
			if useNats {
				c, err := bot.NewClient(cfg)
				if err != nil {
					return err
				}
				defer c.Close()
				d, err := c.RequestMove(req)
				if err != nil {
					return err
				}
				fmt.Println(d)
				return nil
			}

			b, err := board.FromRequest(req)
			if err != nil {
				return err
			}
			fmt.Print(b)
			s := negamax.NewSolver(b)
			s.SetPruning(!noPruning)
			tstart := time.Now()
			values, err := s.EvaluateRoot(cfg.Depth())
			if err != nil {
				return err
			}
			for _, v := range values {
				fmt.Printf("%-6v %d\n", v.Move, v.Value)
			}
			best := negamax.BestBranch(values)
			elapsed := time.Since(tstart)
			p := message.NewPrinter(language.English)
			p.Printf("bestmove %v (%d nodes in %v, %.0f nodes/s)\n", best.Move, s.Nodes(),
				elapsed.Round(time.Millisecond), float64(s.Nodes())/elapsed.Seconds())
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "position file, - for stdin")
	cmd.Flags().BoolVar(&useNats, "nats", false, "send the position to a bot listening on NATS")
	cmd.Flags().BoolVar(&noPruning, "no-pruning", false, "search every node (slow; for checking)")
	return cmd
}
