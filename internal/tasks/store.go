// Package tasks owns the persisted task list of one category.
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sandeepkv93/cozy/internal/logger"
	"github.com/sandeepkv93/cozy/internal/model"
	"github.com/sandeepkv93/cozy/internal/storage"
)

var ErrTaskNotFound = errors.New("tasks: task not found")

type Store struct {
	kv  storage.KV
	cat model.Category
}

func NewStore(kv storage.KV, cat model.Category) *Store {
	return &Store{kv: kv, cat: cat}
}

func (s *Store) Category() model.Category {
	return s.cat
}

// Load reads the category snapshot. It never fails: a missing or malformed
// snapshot is an empty list. Records written without an id get one and the
// list is saved back.
func (s *Store) Load(ctx context.Context) []model.Task {
	raw, err := s.kv.Get(ctx, s.cat.StorageKey())
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("task list unreadable, treating as empty", "category", s.cat.Name, "err", err)
		}
		return []model.Task{}
	}
	var list []model.Task
	if err := json.Unmarshal(raw, &list); err != nil {
		logger.Warn("task list malformed, treating as empty", "category", s.cat.Name, "err", err)
		return []model.Task{}
	}

	out := make([]model.Task, 0, len(list))
	assigned := false
	for _, t := range list {
		if strings.TrimSpace(t.Name) == "" {
			continue
		}
		if strings.TrimSpace(t.ID) == "" {
			t.ID = uuid.NewString()
			assigned = true
		}
		out = append(out, t)
	}
	if assigned || len(out) != len(list) {
		if err := s.Save(ctx, out); err != nil {
			logger.Warn("could not re-save normalized task list", "category", s.cat.Name, "err", err)
		}
	}
	return out
}

// Save overwrites the whole snapshot in a single write.
func (s *Store) Save(ctx context.Context, list []model.Task) error {
	if list == nil {
		list = []model.Task{}
	}
	if err := storage.SetJSON(ctx, s.kv, s.cat.StorageKey(), list); err != nil {
		return fmt.Errorf("save %s tasks: %w", s.cat.Name, err)
	}
	return nil
}

// Add validates the input and appends a new incomplete task.
func (s *Store) Add(ctx context.Context, name string, minutes float64) (model.Task, error) {
	task, err := model.NewTask(name, minutes)
	if err != nil {
		return model.Task{}, err
	}
	list := append(s.Load(ctx), task)
	if err := s.Save(ctx, list); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// Remove deletes the task with id and returns it.
func (s *Store) Remove(ctx context.Context, id string) (model.Task, error) {
	list := s.Load(ctx)
	idx := model.IndexOf(list, id)
	if idx < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	removed := list[idx]
	list = append(list[:idx], list[idx+1:]...)
	if err := s.Save(ctx, list); err != nil {
		return model.Task{}, err
	}
	return removed, nil
}

// SetCompleted sets the completion flag of the task with id and returns the
// saved list.
func (s *Store) SetCompleted(ctx context.Context, id string, value bool) ([]model.Task, error) {
	list := s.Load(ctx)
	idx := model.IndexOf(list, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	list[idx].Completed = value
	if err := s.Save(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Get returns the task with id.
func (s *Store) Get(ctx context.Context, id string) (model.Task, error) {
	list := s.Load(ctx)
	idx := model.IndexOf(list, id)
	if idx < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return list[idx], nil
}
