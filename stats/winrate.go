package stats

import "math"

// WinRate tallies game results for one side. Draws count as half a win.
type WinRate struct {
	Wins   int
	Losses int
	Draws  int
}

func (w *WinRate) Games() int {
	return w.Wins + w.Losses + w.Draws
}

func (w *WinRate) Rate() float64 {
	g := w.Games()
	if g == 0 {
		return 0
	}
	return (float64(w.Wins) + float64(w.Draws)/2) / float64(g)
}

// Interval returns the normal-approximation half-width of the win rate's
// confidence interval at the given percentage.
func (w *WinRate) Interval(confidence float64) float64 {
	g := w.Games()
	if g == 0 {
		return 0
	}
	p := w.Rate()
	return ZVal(confidence) * math.Sqrt(p*(1-p)/float64(g))
}
