package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sandeepkv93/cozy/internal/calendar"
	"github.com/sandeepkv93/cozy/internal/datekey"
	"github.com/sandeepkv93/cozy/internal/model"
	"github.com/sandeepkv93/cozy/internal/progress"
	"github.com/sandeepkv93/cozy/internal/timer"
	"github.com/sandeepkv93/cozy/internal/views"
)

func (m Model) renderDashboardView() string {
	cards := make([]views.SummaryCardData, 0, len(m.Categories))
	for _, c := range m.Categories {
		s := progress.Summarize(m.Lists[c.Name].Items)
		cards = append(cards, views.SummaryCardData{
			Label:   c.Label(),
			Message: s.Message(),
			Bar:     m.bar.ViewAs(s.Ratio()),
			Percent: s.Percent,
		})
	}
	timerLine := ""
	if m.Timer.State != timer.Idle {
		timerLine = fmt.Sprintf("%s %s (%s)", m.Timer.Session.TaskName, m.Timer.Session.Clock(), m.Timer.State)
	}
	return views.RenderDashboard(views.DashboardData{
		Greeting: fmt.Sprintf("Welcome back, %s", m.Profile),
		Date:     m.tracker.Now().Format("Monday, January 2"),
		Cards:    cards,
		Timer:    timerLine,
	})
}

func (m Model) renderListView(c model.Category) string {
	ls := m.Lists[c.Name]
	rows := make([]views.TaskRowData, 0, len(ls.Items))
	for i, task := range ls.Items {
		row := views.TaskRowData{
			Index:     i + 1,
			Name:      task.Name,
			Minutes:   humanize.Ftoa(task.DurationMinutes),
			Completed: task.Completed,
			Selected:  i == ls.Cursor,
		}
		if c.Timed {
			row.Timer = m.taskTimerBadge(c, task)
		}
		rows = append(rows, row)
	}
	s := progress.Summarize(ls.Items)
	addView := ""
	if ls.Adding {
		addView = m.addInput.View()
	}
	return views.RenderTaskList(views.TaskListData{
		Title:   c.Label() + "s",
		Rows:    rows,
		Message: s.Message(),
		Bar:     m.bar.ViewAs(s.Ratio()),
		Timed:   c.Timed,
		AddView: addView,
	})
}

func (m Model) taskTimerBadge(c model.Category, task model.Task) string {
	ref := timer.Ref{Category: c.Name, TaskID: task.ID}
	if m.Timer.Session.Ref == ref && m.Timer.State != timer.Idle {
		return fmt.Sprintf("[%s %s]", m.Timer.State, m.Timer.Session.Clock())
	}
	if m.tracker.TimerState(c.Name, task.ID) == timer.Paused {
		return "[paused]"
	}
	return ""
}

func (m Model) renderTimerView() string {
	if m.Timer.State == timer.Idle {
		return views.RenderTimerPanel(views.TimerPanelData{})
	}
	s := m.Timer.Session
	return views.RenderTimerPanel(views.TimerPanelData{
		TaskName: s.TaskName,
		Category: s.Ref.Category,
		State:    m.Timer.State.String(),
		Clock:    s.Clock(),
		Bar:      m.bar.ViewAs(s.Fraction()),
	})
}

func (m Model) renderCalendarView() string {
	return views.RenderCalendar(CalendarViewData(m.Calendar.Grid))
}

// CalendarViewData converts a month grid into render data.
func CalendarViewData(grid calendar.Month) views.CalendarData {
	weeks := make([][]*views.CalendarCellData, 0, 6)
	for _, week := range grid.Weeks() {
		row := make([]*views.CalendarCellData, len(week))
		for i, cell := range week {
			if cell == nil {
				continue
			}
			row[i] = &views.CalendarCellData{
				Day:    cell.Day,
				Status: cellStatus(cell.Status),
				Today:  cell.IsToday,
			}
		}
		weeks = append(weeks, row)
	}
	return views.CalendarData{
		Title:    grid.Title(),
		Weekdays: calendar.Weekdays,
		Weeks:    weeks,
	}
}

func cellStatus(s calendar.Status) string {
	switch s {
	case calendar.Full:
		return views.CellFull
	case calendar.Partial:
		return views.CellPartial
	default:
		return views.CellUnmarked
	}
}

func (m Model) renderRecentView() string {
	days := make([]views.RecentDayData, 0, len(m.Recent))
	for _, d := range m.Recent {
		var lines []string
		for _, c := range m.Categories {
			if names := d.Entry.Done(c); len(names) > 0 {
				lines = append(lines, fmt.Sprintf("%s: %s", c.Label(), strings.Join(names, ", ")))
			}
		}
		if len(lines) == 0 {
			continue
		}
		label := d.Key
		if t, err := datekey.Parse(d.Key, m.tracker.Now().Location()); err == nil {
			label = t.Format("Mon Jan 2")
		}
		days = append(days, views.RecentDayData{Date: label, Lines: lines})
	}
	return views.RenderRecent(days)
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now(),
	})
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
}

func (m Model) viewTitle() string {
	if c, ok := m.listView(); ok {
		return c.Label() + "s"
	}
	if m.CurrentView == ViewCalendar {
		return "Calendar"
	}
	return "Dashboard"
}

func (m Model) footer() string {
	parts := make([]string, 0, 8)
	for _, kb := range m.globalBindings() {
		parts = append(parts, fmt.Sprintf("%s %s", kb.Key, kb.Action))
	}
	return "keys: " + strings.Join(parts, " | ")
}
