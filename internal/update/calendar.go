package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h", "left":
		m.shiftCalendarMonth(-1)
	case "l", "right":
		m.shiftCalendarMonth(1)
	case "t":
		now := m.tracker.Now()
		m.Calendar.Year, m.Calendar.Month = now.Year(), now.Month()
		m.reloadCalendar()
		m.Status = StatusBar{Text: fmt.Sprintf("calendar: %s", m.Calendar.Grid.Title()), IsError: false}
	}
	return m
}

func (m *Model) shiftCalendarMonth(delta int) {
	anchor := time.Date(m.Calendar.Year, m.Calendar.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	m.Calendar.Year, m.Calendar.Month = anchor.Year(), anchor.Month()
	m.reloadCalendar()
	m.Status = StatusBar{Text: fmt.Sprintf("calendar: %s", m.Calendar.Grid.Title()), IsError: false}
}
