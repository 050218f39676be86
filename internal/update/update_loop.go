package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/cozy/internal/events"
	"github.com/sandeepkv93/cozy/internal/logger"
	"github.com/sandeepkv93/cozy/internal/scheduler"
	"github.com/sandeepkv93/cozy/internal/timer"
	"github.com/sandeepkv93/cozy/internal/views"
)

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.scheduler != nil {
		if _, err := m.scheduler.ScheduleRollover(m.tracker.Now()); err != nil {
			logger.Warn("schedule rollover failed", "err", err)
		}
		cmds = append(cmds, waitForRolloverCmd(m.scheduler.C()))
	}
	if m.feed != nil {
		cmds = append(cmds, waitForChangeCmd(m.feed.C()))
	}
	if m.Timer.State == timer.Running {
		cmds = append(cmds, timerTickCmd(m.Timer.Gen))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == "ctrl+c" {
				m.Quitting = true
				return m, tea.Quit
			}
			return m.handlePaletteKey(typed)
		}
		if c, ok := m.listView(); ok && m.Lists[c.Name].Adding {
			return m.handleAddKey(c, typed), nil
		}

		keyStr := typed.String()
		switch keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Dashboard:
			m.switchView(ViewDashboard)
			return m, nil
		case m.Keys.Calendar:
			m.switchView(ViewCalendar)
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		if cat, ok := m.Keys.Lists[keyStr]; ok {
			m.switchView(View(cat))
			return m, nil
		}
		if c, ok := m.listView(); ok {
			return m.handleListKey(c, typed)
		}
		if m.CurrentView == ViewCalendar {
			return m.handleCalendarKey(typed), nil
		}
	case SwitchViewMsg:
		if m.isKnownView(typed.View) {
			m.switchView(typed.View)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.setError(typed.Err)
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case TimerTickMsg:
		return m.onTimerTick(typed)
	case ChangeMsg:
		if typed.Event.Kind == events.KindDayReset {
			m.Status = StatusBar{Text: fmt.Sprintf("new day: %s list reset", typed.Event.Category), IsError: false}
		}
		m.reload()
		if m.feed != nil {
			return m, waitForChangeCmd(m.feed.C())
		}
		return m, nil
	case RolloverMsg:
		return m.onRollover(typed)
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch {
	case m.CurrentView == ViewDashboard:
		leftPane = m.renderDashboardView()
		rightPane = m.renderTimerView()
	case m.CurrentView == ViewCalendar:
		leftPane = m.renderCalendarView()
		rightPane = m.renderRecentView()
	default:
		if c, ok := m.listView(); ok {
			leftPane = m.renderListView(c)
			if c.Timed {
				rightPane = m.renderTimerView()
			}
		}
	}
	if extra := strings.TrimSpace(m.renderCommandPalette() + "\n" + m.renderHelpIfVisible()); extra != "" {
		rightPane = strings.TrimSpace(rightPane + "\n\n" + extra)
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("cozy | %s | %s", m.viewTitle(), m.Profile),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer:       m.footer(),
	})
}

func (m Model) onRollover(msg RolloverMsg) (tea.Model, tea.Cmd) {
	if msg.Event.Kind == scheduler.KindRollover {
		if err := m.tracker.Refresh(m.ctx); err != nil {
			m.setError(err)
		}
		now := m.tracker.Now()
		m.Calendar.Year, m.Calendar.Month = now.Year(), now.Month()
		m.reload()
		if m.scheduler != nil {
			if _, err := m.scheduler.ScheduleRollover(now); err != nil {
				logger.Warn("reschedule rollover failed", "err", err)
			}
		}
	}
	if m.scheduler != nil {
		return m, waitForRolloverCmd(m.scheduler.C())
	}
	return m, nil
}

func waitForChangeCmd(ch <-chan events.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ChangeMsg{Event: ev}
	}
}

func waitForRolloverCmd(ch <-chan scheduler.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return RolloverMsg{Event: ev}
	}
}
