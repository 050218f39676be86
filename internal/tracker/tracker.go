// Package tracker coordinates the category stores, the completion log and
// the single countdown. Every read runs the daily reset first.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sandeepkv93/cozy/internal/calendar"
	"github.com/sandeepkv93/cozy/internal/completion"
	"github.com/sandeepkv93/cozy/internal/events"
	"github.com/sandeepkv93/cozy/internal/logger"
	"github.com/sandeepkv93/cozy/internal/model"
	"github.com/sandeepkv93/cozy/internal/progress"
	"github.com/sandeepkv93/cozy/internal/storage"
	"github.com/sandeepkv93/cozy/internal/tasks"
	"github.com/sandeepkv93/cozy/internal/timer"
)

var (
	ErrUntimed      = errors.New("tracker: category has no timer")
	ErrAmbiguousRef = errors.New("tracker: task reference matches more than one task")

	ErrTimerSuperseded = errors.New("tracker: countdown taken over by another start or pause")
)

// ChimeRepeats is how many times the cue plays when a countdown expires.
const ChimeRepeats = 2

type Deps struct {
	KV         storage.KV
	Categories []model.Category
	Bus        *events.Bus
	Cue        timer.Cue
	Volume     timer.Volume
	Notifier   timer.DesktopNotifier
	Now        func() time.Time
}

type Tracker struct {
	mu        sync.Mutex
	kv        storage.KV
	cats      []model.Category
	stores    map[string]*tasks.Store
	log       *completion.Log
	countdown *timer.Countdown

	bus      *events.Bus
	cue      timer.Cue
	volume   timer.Volume
	notifier timer.DesktopNotifier
	now      func() time.Time
	chimes   sync.WaitGroup
}

func New(d Deps) *Tracker {
	cats := d.Categories
	if len(cats) == 0 {
		cats = model.DefaultCategories()
	}
	t := &Tracker{
		kv:        d.KV,
		cats:      cats,
		stores:    make(map[string]*tasks.Store, len(cats)),
		log:       completion.New(d.KV),
		countdown: timer.NewCountdown(),
		bus:       d.Bus,
		cue:       d.Cue,
		volume:    d.Volume,
		notifier:  d.Notifier,
		now:       d.Now,
	}
	if t.bus == nil {
		t.bus = events.NewBus()
	}
	if t.cue == nil {
		t.cue = timer.NoopCue{}
	}
	if t.notifier == nil {
		t.notifier = timer.NoopDesktopNotifier{}
	}
	if t.now == nil {
		t.now = time.Now
	}
	for _, c := range cats {
		t.stores[c.Name] = tasks.NewStore(d.KV, c)
	}
	return t
}

func (t *Tracker) Bus() *events.Bus { return t.bus }

// Now is the tracker's clock.
func (t *Tracker) Now() time.Time { return t.now() }

func (t *Tracker) Categories() []model.Category {
	out := make([]model.Category, len(t.cats))
	copy(out, t.cats)
	return out
}

func (t *Tracker) Category(name string) (model.Category, error) {
	return model.FindCategory(name, t.cats)
}

func (t *Tracker) Tasks(ctx context.Context, cat string) ([]model.Task, error) {
	t.mu.Lock()
	store, err := t.storeLocked(cat)
	if err != nil {
		t.mu.Unlock()
		return nil, err
	}
	reset := t.ensureResetLocked(ctx, store)
	list := store.Load(ctx)
	t.mu.Unlock()

	t.publishReset(reset)
	return list, nil
}

func (t *Tracker) Add(ctx context.Context, cat, name string, minutes float64) (model.Task, error) {
	t.mu.Lock()
	store, err := t.storeLocked(cat)
	if err != nil {
		t.mu.Unlock()
		return model.Task{}, err
	}
	reset := t.ensureResetLocked(ctx, store)
	task, err := store.Add(ctx, name, minutes)
	if err == nil {
		err = t.recordLocked(ctx, store, store.Load(ctx))
	}
	t.mu.Unlock()

	t.publishReset(reset)
	if err != nil {
		return model.Task{}, err
	}
	t.publish(events.KindTasksChanged, store.Category().Name, task.ID)
	return task, nil
}

// Remove deletes a task. A countdown running for it is torn down first.
func (t *Tracker) Remove(ctx context.Context, cat, id string) (model.Task, error) {
	t.mu.Lock()
	store, err := t.storeLocked(cat)
	if err != nil {
		t.mu.Unlock()
		return model.Task{}, err
	}
	reset := t.ensureResetLocked(ctx, store)
	dropped := t.countdown.Drop(timer.Ref{Category: store.Category().Name, TaskID: id})
	removed, err := store.Remove(ctx, id)
	if err == nil {
		err = t.recordLocked(ctx, store, store.Load(ctx))
	}
	t.mu.Unlock()

	t.publishReset(reset)
	if dropped {
		t.publish(events.KindTimerChanged, store.Category().Name, id)
	}
	if err != nil {
		return model.Task{}, err
	}
	t.publish(events.KindTasksChanged, store.Category().Name, id)
	return removed, nil
}

func (t *Tracker) SetCompleted(ctx context.Context, cat, id string, value bool) error {
	t.mu.Lock()
	store, err := t.storeLocked(cat)
	if err != nil {
		t.mu.Unlock()
		return err
	}
	reset := t.ensureResetLocked(ctx, store)
	err = t.setCompletedLocked(ctx, store, id, value)
	t.mu.Unlock()

	t.publishReset(reset)
	if err != nil {
		return err
	}
	t.publish(events.KindTasksChanged, store.Category().Name, id)
	return nil
}

// Toggle flips the completion flag and returns the new value.
func (t *Tracker) Toggle(ctx context.Context, cat, id string) (bool, error) {
	t.mu.Lock()
	store, err := t.storeLocked(cat)
	if err != nil {
		t.mu.Unlock()
		return false, err
	}
	reset := t.ensureResetLocked(ctx, store)
	var value bool
	task, err := store.Get(ctx, id)
	if err == nil {
		value = !task.Completed
		err = t.setCompletedLocked(ctx, store, id, value)
	}
	t.mu.Unlock()

	t.publishReset(reset)
	if err != nil {
		return false, err
	}
	t.publish(events.KindTasksChanged, store.Category().Name, id)
	return value, nil
}

// Resolve finds a task by 1-based position, exact id or unique id prefix.
func (t *Tracker) Resolve(ctx context.Context, cat, ref string) (model.Task, error) {
	list, err := t.Tasks(ctx, cat)
	if err != nil {
		return model.Task{}, err
	}
	ref = strings.TrimSpace(ref)
	if n, convErr := strconv.Atoi(ref); convErr == nil {
		if n < 1 || n > len(list) {
			return model.Task{}, fmt.Errorf("%w: #%d", tasks.ErrTaskNotFound, n)
		}
		return list[n-1], nil
	}
	var match []model.Task
	for _, task := range list {
		if task.ID == ref {
			return task, nil
		}
		if ref != "" && strings.HasPrefix(task.ID, ref) {
			match = append(match, task)
		}
	}
	switch len(match) {
	case 0:
		return model.Task{}, fmt.Errorf("%w: %s", tasks.ErrTaskNotFound, ref)
	case 1:
		return match[0], nil
	default:
		return model.Task{}, fmt.Errorf("%w: %s", ErrAmbiguousRef, ref)
	}
}

func (t *Tracker) Summary(ctx context.Context, cat string) (progress.Summary, error) {
	list, err := t.Tasks(ctx, cat)
	if err != nil {
		return progress.Summary{}, err
	}
	return progress.Summarize(list), nil
}

// Month builds the calendar grid for year/month against the current lists.
func (t *Tracker) Month(ctx context.Context, year int, month time.Month) (calendar.Month, error) {
	current := make([]calendar.CategoryTasks, 0, len(t.cats))
	for _, c := range t.cats {
		list, err := t.Tasks(ctx, c.Name)
		if err != nil {
			return calendar.Month{}, err
		}
		current = append(current, calendar.CategoryTasks{Category: c, Tasks: list})
	}
	return calendar.Build(year, month, t.log.Load(ctx), current, t.now()), nil
}

func (t *Tracker) Log(ctx context.Context) completion.Entries {
	return t.log.Load(ctx)
}

// Recent returns logged days within the last n days, newest first.
func (t *Tracker) Recent(ctx context.Context, n int) []completion.Day {
	return t.log.Recent(ctx, t.now(), n)
}

// Refresh runs the daily reset for every category. It is called when the
// local day rolls over while the app is open.
func (t *Tracker) Refresh(ctx context.Context) error {
	for _, c := range t.cats {
		if _, err := t.Tasks(ctx, c.Name); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tracker) Usage(ctx context.Context) (storage.Usage, error) {
	return storage.MeasureUsage(ctx, t.kv, storage.DefaultQuotaBytes)
}

func (t *Tracker) storeLocked(cat string) (*tasks.Store, error) {
	c, err := model.FindCategory(cat, t.cats)
	if err != nil {
		return nil, err
	}
	return t.stores[c.Name], nil
}

func (t *Tracker) ensureResetLocked(ctx context.Context, store *tasks.Store) string {
	did, err := store.EnsureReset(ctx, t.log, t.now())
	if err != nil {
		logger.Warn("daily reset failed", "category", store.Category().Name, "err", err)
		return ""
	}
	if !did {
		return ""
	}
	return store.Category().Name
}

// setCompletedLocked keeps the order flag, persisted list, then log.
func (t *Tracker) setCompletedLocked(ctx context.Context, store *tasks.Store, id string, value bool) error {
	list, err := store.SetCompleted(ctx, id, value)
	if err != nil {
		return err
	}
	return t.recordLocked(ctx, store, list)
}

func (t *Tracker) recordLocked(ctx context.Context, store *tasks.Store, list []model.Task) error {
	if err := t.log.RecordCompletion(ctx, store.Category(), model.CompletedNames(list), t.now()); err != nil {
		return fmt.Errorf("record completion: %w", err)
	}
	return nil
}

func (t *Tracker) publishReset(cat string) {
	if cat != "" {
		t.publish(events.KindDayReset, cat, "")
	}
}

func (t *Tracker) publish(kind events.Kind, cat, id string) {
	t.bus.Publish(events.Event{Kind: kind, Category: cat, TaskID: id, At: t.now()})
}
