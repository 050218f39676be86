package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/sandeepkv93/cozy/internal/datekey"
	"github.com/sandeepkv93/cozy/internal/logger"
	"github.com/sandeepkv93/cozy/internal/model"
	"github.com/sandeepkv93/cozy/internal/storage"
)

// Archiver receives yesterday's completions before flags are cleared.
type Archiver interface {
	ArchiveIfMissing(ctx context.Context, cat model.Category, dayKey string, names []string) (bool, error)
}

// LastReset returns the stored day marker, or "" when none was written.
func (s *Store) LastReset(ctx context.Context) string {
	marker, err := storage.GetString(ctx, s.kv, s.cat.ResetKey())
	if err != nil {
		logger.Warn("reset marker unreadable", "category", s.cat.Name, "err", err)
		return ""
	}
	return marker
}

// EnsureReset runs the daily reset at most once per local day. When the marker
// is stale it archives the completed names under yesterday's key, clears
// every completion flag and then writes today's marker. It reports whether a
// reset happened.
func (s *Store) EnsureReset(ctx context.Context, archive Archiver, now time.Time) (bool, error) {
	today := datekey.Day(now)
	if s.LastReset(ctx) == today {
		return false, nil
	}

	list := s.Load(ctx)
	yesterday := datekey.Yesterday(now)
	if archive != nil {
		if _, err := archive.ArchiveIfMissing(ctx, s.cat, yesterday, model.CompletedNames(list)); err != nil {
			return false, fmt.Errorf("archive %s: %w", s.cat.Name, err)
		}
	}

	for i := range list {
		list[i].Completed = false
	}
	if err := s.Save(ctx, list); err != nil {
		return false, err
	}
	if err := s.kv.Set(ctx, s.cat.ResetKey(), []byte(today)); err != nil {
		return false, fmt.Errorf("write %s reset marker: %w", s.cat.Name, err)
	}
	logger.Info("daily reset", "category", s.cat.Name, "day", today, "archived_to", yesterday)
	return true, nil
}
