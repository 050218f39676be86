package timer

import "testing"

var (
	refX = Ref{Category: "exercise", TaskID: "x"}
	refY = Ref{Category: "exercise", TaskID: "y"}
)

func TestStartingAnotherTaskParksRunningOne(t *testing.T) {
	c := NewCountdown()
	c.Start(refY, "Y", 60)
	genY := c.Gen()
	c.Tick(genY)

	if got := c.Start(refX, "X", 30); got != Running {
		t.Fatalf("expected X running, got %s", got)
	}
	if c.StateOf(refY) != Paused || c.StateOf(refX) != Running {
		t.Fatalf("expected Y paused and X running, got Y=%s X=%s", c.StateOf(refY), c.StateOf(refX))
	}
	if res := c.Tick(genY); !res.Stale {
		t.Fatal("Y's tick chain should be stale after X started")
	}
	if snap := c.Snapshot(); snap.Session.Ref != refX || snap.Session.Remaining != 30 {
		t.Fatalf("stale tick must not advance X: %+v", snap)
	}

	c.Start(refY, "Y", 60)
	if snap := c.Snapshot(); snap.Session.Ref != refY || snap.Session.Remaining != 59 {
		t.Fatalf("expected Y resumed at 59s, got %+v", snap)
	}
	if c.StateOf(refX) != Paused {
		t.Fatalf("expected X parked, got %s", c.StateOf(refX))
	}
}

func TestStartTogglesPauseAndResume(t *testing.T) {
	c := NewCountdown()
	c.Start(refX, "X", 10)
	c.Tick(c.Gen())
	if got := c.Start(refX, "X", 10); got != Paused {
		t.Fatalf("expected pause, got %s", got)
	}
	if res := c.Tick(c.Gen()); !res.Stale {
		t.Fatal("paused countdown must not tick")
	}
	if got := c.Start(refX, "X", 10); got != Running {
		t.Fatalf("expected resume, got %s", got)
	}
	if snap := c.Snapshot(); snap.Session.Remaining != 9 {
		t.Fatalf("expected remaining kept across pause, got %d", snap.Session.Remaining)
	}
	if !c.Pause() || c.Pause() {
		t.Fatal("Pause should succeed once")
	}
	if !c.Resume() || c.Resume() {
		t.Fatal("Resume should succeed once")
	}
}

func TestOneSecondSessionExpiresOnFirstTick(t *testing.T) {
	c := NewCountdown()
	c.Start(refX, "X", 1)
	res := c.Tick(c.Gen())
	if !res.Expired || res.Session.Ref != refX || res.Session.Remaining != 0 {
		t.Fatalf("expected expiry on first tick, got %+v", res)
	}
	if snap := c.Snapshot(); snap.State != Idle || !snap.Session.Ref.IsZero() {
		t.Fatalf("expected idle with no active task, got %+v", snap)
	}
}

func TestTickCountsDown(t *testing.T) {
	c := NewCountdown()
	c.Start(refX, "X", 3)
	gen := c.Gen()
	for i, want := range []int{2, 1} {
		res := c.Tick(gen)
		if res.Expired || res.Session.Remaining != want {
			t.Fatalf("tick %d: %+v", i, res)
		}
	}
	if res := c.Tick(gen); !res.Expired {
		t.Fatalf("expected expiry on third tick, got %+v", res)
	}
	if res := c.Tick(gen); !res.Stale {
		t.Fatal("ticks after expiry are stale")
	}
}

func TestDropActiveGoesIdle(t *testing.T) {
	c := NewCountdown()
	c.Start(refX, "X", 10)
	gen := c.Gen()
	if !c.Drop(refX) {
		t.Fatal("expected drop to hit active session")
	}
	if res := c.Tick(gen); !res.Stale {
		t.Fatal("dropped session must stop ticking")
	}
	if c.Snapshot().State != Idle {
		t.Fatal("expected idle after drop")
	}
}

func TestDropParkedAndReset(t *testing.T) {
	c := NewCountdown()
	c.Start(refY, "Y", 10)
	c.Start(refX, "X", 10)
	if c.Drop(refY) {
		t.Fatal("Y was parked, not active")
	}
	if c.StateOf(refY) != Idle {
		t.Fatal("dropped parked session should be gone")
	}
	c.Start(refY, "Y", 10)
	c.Reset()
	if c.StateOf(refX) != Idle || c.StateOf(refY) != Idle || c.Snapshot().Session.Remaining != 0 {
		t.Fatalf("reset should clear every session: %+v", c.Snapshot())
	}
}

func TestSessionFormatting(t *testing.T) {
	s := Session{Total: 120, Remaining: 75}
	if s.Clock() != "01:15" || s.Fraction() != 0.625 {
		t.Fatalf("unexpected formatting: %s %v", s.Clock(), s.Fraction())
	}
	if FormatClock(-3) != "00:00" {
		t.Fatal("negative clock should clamp to zero")
	}
}
