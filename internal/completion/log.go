package completion

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/sandeepkv93/cozy/internal/datekey"
	"github.com/sandeepkv93/cozy/internal/logger"
	"github.com/sandeepkv93/cozy/internal/model"
	"github.com/sandeepkv93/cozy/internal/storage"
)

// Key is where the whole log document is stored.
const Key = "cozyTasksLog"

// DayEntry maps a category's log field ("exercisesDone") to the task names
// completed that day.
type DayEntry map[string][]string

func (e DayEntry) Done(cat model.Category) []string {
	return e[cat.LogField()]
}

func (e DayEntry) Has(cat model.Category) bool {
	_, ok := e[cat.LogField()]
	return ok
}

// Total counts completions across every category.
func (e DayEntry) Total() int {
	n := 0
	for _, names := range e {
		n += len(names)
	}
	return n
}

// Entries is the decoded log keyed by date-key.
type Entries map[string]DayEntry

type Day struct {
	Key   string
	Entry DayEntry
}

// Log reads and writes the completion log document.
type Log struct {
	kv storage.KV
}

func New(kv storage.KV) *Log {
	return &Log{kv: kv}
}

// Load returns the whole log. Missing or malformed data yields an empty log;
// individual entries that are not objects are skipped.
func (l *Log) Load(ctx context.Context) Entries {
	out := make(Entries)
	var raw map[string]json.RawMessage
	if err := storage.GetJSON(ctx, l.kv, Key, &raw); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("completion log unreadable, treating as empty", "err", err)
		}
		return out
	}
	for day, msg := range raw {
		var entry DayEntry
		if err := json.Unmarshal(msg, &entry); err != nil || entry == nil {
			logger.Warn("skipping malformed completion log entry", "day", day)
			continue
		}
		out[day] = entry
	}
	return out
}

func (l *Log) Entry(ctx context.Context, dayKey string) (DayEntry, bool) {
	entry, ok := l.Load(ctx)[dayKey]
	return entry, ok
}

// RecordCompletion replaces today's done-list for cat with names and leaves
// other categories of the same day untouched.
func (l *Log) RecordCompletion(ctx context.Context, cat model.Category, names []string, now time.Time) error {
	entries := l.Load(ctx)
	setNames(entries, datekey.Key(now), cat, names)
	return storage.SetJSON(ctx, l.kv, Key, entries)
}

// ArchiveIfMissing writes names as cat's done-list for dayKey unless that day
// already has one for cat. It reports whether anything was written.
func (l *Log) ArchiveIfMissing(ctx context.Context, cat model.Category, dayKey string, names []string) (bool, error) {
	entries := l.Load(ctx)
	if entry, ok := entries[dayKey]; ok && entry.Has(cat) {
		return false, nil
	}
	setNames(entries, dayKey, cat, names)
	if err := storage.SetJSON(ctx, l.kv, Key, entries); err != nil {
		return false, err
	}
	return true, nil
}

// Recent returns up to days entries ending at now, newest first. Days with no
// entry are omitted.
func (l *Log) Recent(ctx context.Context, now time.Time, days int) []Day {
	entries := l.Load(ctx)
	out := make([]Day, 0, days)
	for i := 0; i < days; i++ {
		key := datekey.Key(datekey.StartOfDay(now).AddDate(0, 0, -i))
		if entry, ok := entries[key]; ok {
			out = append(out, Day{Key: key, Entry: entry})
		}
	}
	return out
}

// Keys returns every logged date-key in ascending order.
func (e Entries) Keys() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func setNames(entries Entries, dayKey string, cat model.Category, names []string) {
	entry := entries[dayKey]
	if entry == nil {
		entry = make(DayEntry)
	}
	cp := make([]string, len(names))
	copy(cp, names)
	entry[cat.LogField()] = cp
	entries[dayKey] = entry
}
