package scheduler

import (
	"time"

	"github.com/sandeepkv93/cozy/internal/datekey"
)

// ScheduleRollover replaces any pending rollover with one at the first local
// midnight after now.
func (e *Engine) ScheduleRollover(now time.Time) (Event, error) {
	e.Cancel(KindRollover)
	at := datekey.NextMidnight(now)
	ev := Event{ID: "rollover-" + datekey.Key(at), Kind: KindRollover, At: at}
	return ev, e.Schedule(ev)
}
