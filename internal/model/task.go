package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("model: task name is required")
	ErrInvalidDuration = errors.New("model: task duration must be a positive number of minutes")
	ErrUnknownCategory = errors.New("model: unknown category")
	ErrMissingID       = errors.New("model: task id is required")
)

// Category is a named task list with its own storage and reset cycle.
type Category struct {
	Name  string
	Timed bool
}

var (
	Exercise = Category{Name: "exercise", Timed: true}
	Personal = Category{Name: "personal"}
)

// DefaultCategories returns the categories available out of the box.
func DefaultCategories() []Category {
	return []Category{Exercise, Personal}
}

func (c Category) Label() string {
	if c.Name == "" {
		return ""
	}
	r := []rune(c.Name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// StorageKey is the key holding the category's task list snapshot.
func (c Category) StorageKey() string {
	return "cozy" + c.Label() + "s"
}

// ResetKey is the key holding the category's last-reset day marker.
func (c Category) ResetKey() string {
	return c.StorageKey() + "LastReset"
}

// LogField is the field name of the category's done-list inside a completion log entry.
func (c Category) LogField() string {
	return c.Name + "sDone"
}

// FindCategory resolves name (case-insensitive, singular or plural) against known.
func FindCategory(name string, known []Category) (Category, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, c := range known {
		if n == c.Name || n == c.Name+"s" {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Task is one habit or to-do item inside a category.
type Task struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes float64 `json:"duration"`
	Completed       bool    `json:"completed"`
}

// NewTask validates the user input and returns an incomplete task with a fresh id.
func NewTask(name string, minutes float64) (Task, error) {
	name = strings.TrimSpace(name)
	if err := ValidateInput(name, minutes); err != nil {
		return Task{}, err
	}
	return Task{
		ID:              uuid.NewString(),
		Name:            name,
		DurationMinutes: minutes,
	}, nil
}

// ValidateInput checks the fields a user supplies when adding a task.
func ValidateInput(name string, minutes float64) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDuration, minutes)
	}
	return nil
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrMissingID
	}
	return ValidateInput(t.Name, t.DurationMinutes)
}

// DurationSeconds is the countdown length of the task, never less than one second.
func (t Task) DurationSeconds() int {
	sec := int(math.Round(t.DurationMinutes * 60))
	if sec < 1 {
		return 1
	}
	return sec
}

// CompletedNames returns the names of the completed tasks in list order.
func CompletedNames(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			out = append(out, t.Name)
		}
	}
	return out
}

// IndexOf returns the position of the task with id, or -1.
func IndexOf(tasks []Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
