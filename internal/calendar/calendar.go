// Package calendar lays out a month grid and classifies each day against the
// completion log.
package calendar

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/cozy/internal/completion"
	"github.com/sandeepkv93/cozy/internal/datekey"
	"github.com/sandeepkv93/cozy/internal/model"
)

type Status int

const (
	Unmarked Status = iota
	Partial
	Full
)

func (s Status) String() string {
	switch s {
	case Partial:
		return "partial"
	case Full:
		return "full"
	default:
		return "none"
	}
}

var Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// CategoryTasks pairs a category with its current task list.
type CategoryTasks struct {
	Category model.Category
	Tasks    []model.Task
}

type Cell struct {
	Day         int
	Key         string
	Status      Status
	IsToday     bool
	Completions int
}

type Month struct {
	Year    int
	Month   time.Month
	Leading int
	Cells   []Cell
}

func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Weeks splits the grid into rows of seven. Leading blanks and trailing
// padding are nil.
func (m Month) Weeks() [][]*Cell {
	slots := make([]*Cell, m.Leading, m.Leading+len(m.Cells)+6)
	for i := range m.Cells {
		slots = append(slots, &m.Cells[i])
	}
	for len(slots)%7 != 0 {
		slots = append(slots, nil)
	}
	weeks := make([][]*Cell, 0, len(slots)/7)
	for i := 0; i < len(slots); i += 7 {
		weeks = append(weeks, slots[i:i+7])
	}
	return weeks
}

// Build lays out year/month in now's location. Days are classified against
// the current task lists, not a snapshot of the lists on that day.
func Build(year int, month time.Month, entries completion.Entries, current []CategoryTasks, now time.Time) Month {
	loc := now.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()

	out := Month{
		Year:    first.Year(),
		Month:   first.Month(),
		Leading: int(first.Weekday()),
		Cells:   make([]Cell, 0, daysInMonth),
	}
	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(out.Year, out.Month, d, 0, 0, 0, 0, loc)
		key := datekey.Key(date)
		entry, ok := entries[key]
		cell := Cell{
			Day:     d,
			Key:     key,
			Status:  Classify(entry, ok, current),
			IsToday: datekey.SameDay(date, now),
		}
		if ok {
			cell.Completions = entry.Total()
		}
		out.Cells = append(out.Cells, cell)
	}
	return out
}

// Classify decides how a logged day renders. A day is Full when every
// category that currently has tasks logged at least as many names as it has
// tasks, Partial when anything at all was logged, and Unmarked otherwise.
func Classify(entry completion.DayEntry, ok bool, current []CategoryTasks) Status {
	if !ok || entry.Total() == 0 {
		return Unmarked
	}
	for _, ct := range current {
		if len(ct.Tasks) == 0 {
			continue
		}
		if len(entry.Done(ct.Category)) < len(ct.Tasks) {
			return Partial
		}
	}
	return Full
}
