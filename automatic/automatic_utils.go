package automatic

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/trailbot/stats"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// Confidence is the percentage used for reported intervals.
const Confidence = 95.0

const (
	histBins  = 10
	histWidth = 40
)

type Options struct {
	NumGames int
	Threads  int
	Depths   [2]int
	// OutputFile receives one CSV record per game; empty means no log.
	OutputFile string
}

// Summary accumulates results across games.
type Summary struct {
	sync.Mutex
	Depths         [2]int
	Seats          [2]stats.WinRate
	FirstMoverWins stats.WinRate
	Length         stats.Statistic
	lengths        []float64
}

func (s *Summary) Add(r Result) {
	s.Lock()
	defer s.Unlock()
	s.Seats[r.Winner].Wins++
	s.Seats[r.Winner^1].Losses++
	if r.Winner == r.FirstSeat {
		s.FirstMoverWins.Wins++
	} else {
		s.FirstMoverWins.Losses++
	}
	s.Length.Push(float64(r.Plies))
	s.lengths = append(s.lengths, float64(r.Plies))
}

func (s *Summary) Games() int {
	s.Lock()
	defer s.Unlock()
	return s.FirstMoverWins.Games()
}

func (s *Summary) String() string {
	s.Lock()
	defer s.Unlock()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", s.FirstMoverWins.Games())
	for i := range s.Seats {
		w := &s.Seats[i]
		fmt.Fprintf(&sb, "Seat %d (depth %d) wins: %d (%.3f%% ± %.3f%%)\n",
			i, s.Depths[i], w.Wins, 100*w.Rate(), 100*w.Interval(Confidence))
	}
	fmt.Fprintf(&sb, "Player who went first wins: %d (%.3f%% ± %.3f%%)\n",
		s.FirstMoverWins.Wins, 100*s.FirstMoverWins.Rate(),
		100*s.FirstMoverWins.Interval(Confidence))
	mean, half := s.Length.Interval(Confidence)
	fmt.Fprintf(&sb, "Mean game length: %.2f ± %.2f plies (stdev %.2f)\n",
		mean, half, s.Length.Stdev())
	// a single distinct length has no spread to bin
	if lo.Max(s.lengths) > lo.Min(s.lengths) {
		sb.WriteString("Game length histogram (plies):\n")
		histogram.Fprint(&sb, histogram.Hist(histBins, s.lengths), histogram.Linear(histWidth))
	}
	return sb.String()
}

// StartCompVComp plays opts.NumGames games between the two depths,
// alternating which seat moves first, and waits for them to finish. A
// cancelled ctx stops new games from starting.
func StartCompVComp(ctx context.Context, opts Options) (*Summary, error) {
	r := NewGameRunner(opts.Depths[0], opts.Depths[1])
	return r.playGames(ctx, opts)
}

func (r *GameRunner) playGames(ctx context.Context, opts Options) (*Summary, error) {
	if IsPlaying.Value() > 0 {
		return nil, errors.New("games are already being played, please wait till complete")
	}
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)
	CVCCounter.Set(0)

	var logChan chan string
	var loggerDone chan struct{}
	if opts.OutputFile != "" {
		logfile, err := os.Create(opts.OutputFile)
		if err != nil {
			return nil, err
		}
		logChan = make(chan string, 100)
		loggerDone = make(chan struct{})
		go func() {
			defer close(loggerDone)
			logfile.WriteString(logHeader)
			for msg := range logChan {
				logfile.WriteString(msg)
			}
			logfile.Close()
			log.Debug().Msg("Exiting game logger goroutine!")
		}()
	}
	log.Info().Int("games", opts.NumGames).Int("threads", opts.Threads).
		Ints("depths", opts.Depths[:]).Msg("starting-autoplay")

	summary := &Summary{Depths: r.depths}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, opts.Threads))
gameLoop:
	for i := 0; i < opts.NumGames; i++ {
		select {
		case <-gctx.Done():
			log.Info().Msg("Got stop signal, exiting soon...")
			break gameLoop
		default:
		}
		i := i
		g.Go(func() error {
			res, err := r.PlayGame(i, i%2)
			if err != nil {
				return err
			}
			summary.Add(res)
			if logChan != nil {
				logChan <- res.CSV()
			}
			CVCCounter.Add(1)
			if n := CVCCounter.Value(); n%100 == 0 {
				log.Info().Int64("played", n).Msg("autoplay-progress")
			}
			return nil
		})
	}
	err := g.Wait()
	if logChan != nil {
		close(logChan)
		<-loggerDone
	}
	if err != nil {
		return summary, err
	}
	log.Info().Msg("All games finished.")
	return summary, ctx.Err()
}
