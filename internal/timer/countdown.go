// Package timer holds the single-flight countdown and the completion cue.
package timer

import "fmt"

type State int

const (
	Idle State = iota
	Running
	Paused
	Expired
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Expired:
		return "expired"
	default:
		return "idle"
	}
}

// Ref identifies the task a session counts down for.
type Ref struct {
	Category string
	TaskID   string
}

func (r Ref) IsZero() bool { return r.TaskID == "" }

type Session struct {
	Ref       Ref
	TaskName  string
	Total     int
	Remaining int
}

// Fraction is the share of the session still to run, 1 at start and 0 at expiry.
func (s Session) Fraction() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Remaining) / float64(s.Total)
}

// Clock renders Remaining as mm:ss.
func (s Session) Clock() string {
	return FormatClock(s.Remaining)
}

func FormatClock(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

type Snapshot struct {
	State   State
	Session Session
	Gen     uint64
}

type TickResult struct {
	// Stale is set when the tick belongs to a chain that is no longer live.
	Stale    bool
	// Vanished is set alongside Stale when the session's task no longer exists.
	Vanished bool
	Expired  bool
	Session  Session
}

// Countdown is a single-flight timer: at most one session is Running at any
// time. Sessions displaced by a newer Start are parked as Paused and resume
// where they stopped. It is not safe for concurrent use.
//
// Every transition into Running bumps the generation. Ticks carry the
// generation they were scheduled under, so only the latest chain advances.
type Countdown struct {
	state  State
	active Session
	parked map[Ref]Session
	gen    uint64
}

func NewCountdown() *Countdown {
	return &Countdown{parked: make(map[Ref]Session)}
}

func (c *Countdown) Snapshot() Snapshot {
	return Snapshot{State: c.state, Session: c.active, Gen: c.gen}
}

func (c *Countdown) Gen() uint64 { return c.gen }

// StateOf reports ref's state, including parked sessions.
func (c *Countdown) StateOf(ref Ref) State {
	if !c.active.Ref.IsZero() && c.active.Ref == ref {
		return c.state
	}
	if _, ok := c.parked[ref]; ok {
		return Paused
	}
	return Idle
}

// Start toggles ref: a running session pauses, a paused one resumes, and any
// other task becomes the running session after the current one is parked.
// totalSec seeds a new session and is ignored when resuming.
func (c *Countdown) Start(ref Ref, name string, totalSec int) State {
	if !c.active.Ref.IsZero() && c.active.Ref == ref {
		switch c.state {
		case Running:
			c.state = Paused
			return Paused
		case Paused:
			c.run()
			return Running
		}
	}

	if !c.active.Ref.IsZero() && c.active.Ref != ref && (c.state == Running || c.state == Paused) {
		c.parked[c.active.Ref] = c.active
	}
	if s, ok := c.parked[ref]; ok {
		delete(c.parked, ref)
		c.active = s
	} else {
		if totalSec < 1 {
			totalSec = 1
		}
		c.active = Session{Ref: ref, TaskName: name, Total: totalSec, Remaining: totalSec}
	}
	c.run()
	return Running
}

func (c *Countdown) Pause() bool {
	if c.state != Running {
		return false
	}
	c.state = Paused
	return true
}

func (c *Countdown) Resume() bool {
	if c.state != Paused {
		return false
	}
	c.run()
	return true
}

// Reset stops everything and forgets every session, parked ones included.
func (c *Countdown) Reset() {
	c.state = Idle
	c.active = Session{}
	clear(c.parked)
	c.gen++
}

// Drop forgets ref's session. It reports whether ref was the active one.
func (c *Countdown) Drop(ref Ref) bool {
	delete(c.parked, ref)
	if c.active.Ref.IsZero() || c.active.Ref != ref {
		return false
	}
	c.state = Idle
	c.active = Session{}
	c.gen++
	return true
}

// Tick advances the running session by one second. A session that reaches
// zero expires on the same tick and the countdown returns to Idle.
func (c *Countdown) Tick(gen uint64) TickResult {
	if gen != c.gen || c.state != Running {
		return TickResult{Stale: true, Session: c.active}
	}
	if c.active.Remaining > 0 {
		c.active.Remaining--
	}
	if c.active.Remaining > 0 {
		return TickResult{Session: c.active}
	}
	done := c.active
	c.state = Idle
	c.active = Session{}
	c.gen++
	return TickResult{Expired: true, Session: done}
}

func (c *Countdown) run() {
	c.state = Running
	c.gen++
}
