package progress

import (
	"fmt"
	"math"

	"github.com/sandeepkv93/cozy/internal/model"
)

type Summary struct {
	Completed int
	Total     int
	Remaining int
	Percent   int
}

func Summarize(list []model.Task) Summary {
	s := Summary{Total: len(list)}
	for _, t := range list {
		if t.Completed {
			s.Completed++
		}
	}
	s.Remaining = s.Total - s.Completed
	if s.Total > 0 {
		s.Percent = int(math.Round(100 * float64(s.Completed) / float64(s.Total)))
	}
	return s
}

func (s Summary) Empty() bool { return s.Total == 0 }

func (s Summary) AllDone() bool { return s.Total > 0 && s.Remaining == 0 }

// Message is the one-line status shown on the dashboard card.
func (s Summary) Message() string {
	switch {
	case s.Empty():
		return "You have no tasks today!"
	case s.AllDone():
		return "All done!"
	default:
		return fmt.Sprintf("%d remaining", s.Remaining)
	}
}

// Ratio is Percent as a 0..1 fraction for progress bars.
func (s Summary) Ratio() float64 {
	return float64(s.Percent) / 100
}
