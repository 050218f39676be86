package tracker

import (
	"context"
	"time"

	"github.com/sandeepkv93/cozy/internal/events"
	"github.com/sandeepkv93/cozy/internal/logger"
	"github.com/sandeepkv93/cozy/internal/tasks"
	"github.com/sandeepkv93/cozy/internal/timer"
)

// StartTimer starts, pauses or resumes the countdown for a task in a timed
// category. Starting a different task parks the running one.
func (t *Tracker) StartTimer(ctx context.Context, cat, id string) (timer.State, error) {
	t.mu.Lock()
	store, err := t.storeLocked(cat)
	if err != nil {
		t.mu.Unlock()
		return timer.Idle, err
	}
	c := store.Category()
	if !c.Timed {
		t.mu.Unlock()
		return timer.Idle, ErrUntimed
	}
	reset := t.ensureResetLocked(ctx, store)
	task, err := store.Get(ctx, id)
	if err != nil {
		t.mu.Unlock()
		t.publishReset(reset)
		return timer.Idle, err
	}
	state := t.countdown.Start(timer.Ref{Category: c.Name, TaskID: id}, task.Name, task.DurationSeconds())
	t.mu.Unlock()

	t.publishReset(reset)
	t.publish(events.KindTimerChanged, c.Name, id)
	return state, nil
}

func (t *Tracker) PauseTimer() bool {
	t.mu.Lock()
	snap := t.countdown.Snapshot()
	ok := t.countdown.Pause()
	t.mu.Unlock()
	if ok {
		t.publish(events.KindTimerChanged, snap.Session.Ref.Category, snap.Session.Ref.TaskID)
	}
	return ok
}

func (t *Tracker) ResetTimer() {
	t.mu.Lock()
	t.countdown.Reset()
	t.mu.Unlock()
	t.publish(events.KindTimerChanged, "", "")
}

func (t *Tracker) Timer() timer.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.countdown.Snapshot()
}

// TimerState reports a task's countdown state, parked sessions included.
func (t *Tracker) TimerState(cat, id string) timer.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.countdown.StateOf(timer.Ref{Category: cat, TaskID: id})
}

// Tick advances the countdown chain gen by one second. On expiry the task is
// marked complete exactly like a manual check, then the cue chimes and a
// desktop notice goes out. A session whose task disappeared is dropped.
func (t *Tracker) Tick(ctx context.Context, gen uint64) (timer.TickResult, error) {
	t.mu.Lock()
	snap := t.countdown.Snapshot()
	if gen != snap.Gen || snap.State != timer.Running {
		t.mu.Unlock()
		return timer.TickResult{Stale: true, Session: snap.Session}, nil
	}
	ref := snap.Session.Ref
	var reset string
	store, err := t.storeLocked(ref.Category)
	if err == nil {
		// The day may have turned since the countdown started.
		reset = t.ensureResetLocked(ctx, store)
		_, err = store.Get(ctx, ref.TaskID)
	}
	if err != nil {
		t.countdown.Drop(ref)
		t.mu.Unlock()
		t.publishReset(reset)
		logger.Warn("countdown task vanished, stopping timer", "category", ref.Category, "task", ref.TaskID)
		t.publish(events.KindTimerChanged, ref.Category, ref.TaskID)
		return timer.TickResult{Stale: true, Vanished: true}, nil
	}

	res := t.countdown.Tick(gen)
	if !res.Expired {
		t.mu.Unlock()
		t.publishReset(reset)
		return res, nil
	}
	err = t.setCompletedLocked(ctx, store, ref.TaskID, true)
	t.mu.Unlock()

	t.publishReset(reset)
	if err != nil {
		return res, err
	}
	t.publish(events.KindTasksChanged, ref.Category, ref.TaskID)
	t.publish(events.KindTimerExpired, ref.Category, ref.TaskID)
	t.announce(res.Session)
	return res, nil
}

// WaitForCue blocks until every chime started by an expiry has finished or
// ctx is done.
func (t *Tracker) WaitForCue(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.chimes.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunTimer drives a countdown for one task with a real ticker until it
// expires or ctx is cancelled. Cancelling pauses the session. It returns
// ErrTimerSuperseded when another start or pause takes over the countdown.
func (t *Tracker) RunTimer(ctx context.Context, cat, id string, every time.Duration, onTick func(timer.TickResult)) error {
	state, err := t.StartTimer(ctx, cat, id)
	if err != nil {
		return err
	}
	if state != timer.Running {
		if _, err := t.StartTimer(ctx, cat, id); err != nil {
			return err
		}
	}
	gen := t.Timer().Gen

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			t.PauseTimer()
			return ctx.Err()
		case <-ticker.C:
			res, err := t.Tick(ctx, gen)
			if err != nil {
				return err
			}
			if onTick != nil {
				onTick(res)
			}
			if res.Expired {
				return nil
			}
			if res.Vanished {
				return tasks.ErrTaskNotFound
			}
			if res.Stale {
				return ErrTimerSuperseded
			}
		}
	}
}

func (t *Tracker) announce(s timer.Session) {
	t.chimes.Add(1)
	timer.Chime(t.cue, ChimeRepeats, t.volume, t.chimes.Done)

	go func() {
		if err := t.notifier.Send(timer.ExpiryNotification(s)); err != nil {
			logger.Debug("desktop notification failed", "err", err)
		}
	}()
}
