package tasks

import (
	"testing"
	"time"

	"github.com/sandeepkv93/cozy/internal/completion"
	"github.com/sandeepkv93/cozy/internal/model"
	"github.com/sandeepkv93/cozy/internal/storage"
)

func TestEnsureResetArchivesYesterday(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := NewStore(kv, model.Exercise)
	log := completion.New(kv)
	ctx := t.Context()

	if err := s.Save(ctx, []model.Task{
		{ID: "1", Name: "A", DurationMinutes: 1, Completed: true},
		{ID: "2", Name: "B", DurationMinutes: 1},
	}); err != nil {
		t.Fatalf("seed tasks: %v", err)
	}
	if err := kv.Set(ctx, model.Exercise.ResetKey(), []byte("Sun Feb 08 2026")); err != nil {
		t.Fatalf("seed marker: %v", err)
	}

	now := time.Date(2026, 2, 9, 8, 30, 0, 0, time.Local)
	did, err := s.EnsureReset(ctx, log, now)
	if err != nil || !did {
		t.Fatalf("expected reset, did=%v err=%v", did, err)
	}

	entry, ok := log.Entry(ctx, "2026-02-08")
	if !ok {
		t.Fatal("expected archived entry for yesterday")
	}
	if got := entry.Done(model.Exercise); len(got) != 1 || got[0] != "A" {
		t.Fatalf("expected [A] archived, got %v", got)
	}
	for _, task := range s.Load(ctx) {
		if task.Completed {
			t.Fatalf("expected all flags cleared, got %+v", task)
		}
	}
	if marker := s.LastReset(ctx); marker != "Mon Feb 09 2026" {
		t.Fatalf("unexpected marker: %q", marker)
	}
	if _, ok := log.Entry(ctx, "2026-02-09"); ok {
		t.Fatal("reset must not create today's entry")
	}
}

func TestEnsureResetIsIdempotentWithinDay(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := NewStore(kv, model.Exercise)
	log := completion.New(kv)
	ctx := t.Context()
	morning := time.Date(2026, 2, 9, 8, 0, 0, 0, time.Local)

	if _, err := s.EnsureReset(ctx, log, morning); err != nil {
		t.Fatalf("first reset: %v", err)
	}
	task, err := s.Add(ctx, "A", 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.SetCompleted(ctx, task.ID, true); err != nil {
		t.Fatalf("complete: %v", err)
	}
	before, _ := kv.Get(ctx, completion.Key)

	did, err := s.EnsureReset(ctx, log, morning.Add(10*time.Hour))
	if err != nil || did {
		t.Fatalf("second reset same day should be a no-op, did=%v err=%v", did, err)
	}
	if got := s.Load(ctx); !got[0].Completed {
		t.Fatal("completion flag should survive a same-day reset")
	}
	after, _ := kv.Get(ctx, completion.Key)
	if string(before) != string(after) {
		t.Fatalf("log changed on no-op reset: %s -> %s", before, after)
	}
}

func TestEnsureResetDoesNotOverwriteExistingArchive(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := NewStore(kv, model.Exercise)
	log := completion.New(kv)
	ctx := t.Context()

	if _, err := log.ArchiveIfMissing(ctx, model.Exercise, "2026-02-08", []string{"Earlier"}); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	if err := s.Save(ctx, []model.Task{{ID: "1", Name: "Late", DurationMinutes: 1, Completed: true}}); err != nil {
		t.Fatalf("seed tasks: %v", err)
	}
	if _, err := s.EnsureReset(ctx, log, time.Date(2026, 2, 9, 7, 0, 0, 0, time.Local)); err != nil {
		t.Fatalf("reset: %v", err)
	}
	entry, _ := log.Entry(ctx, "2026-02-08")
	if got := entry.Done(model.Exercise); len(got) != 1 || got[0] != "Earlier" {
		t.Fatalf("existing archive must be kept, got %v", got)
	}
}
