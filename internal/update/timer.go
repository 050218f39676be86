package update

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/cozy/internal/model"
	"github.com/sandeepkv93/cozy/internal/timer"
	"github.com/sandeepkv93/cozy/internal/tracker"
)

// startTimer toggles the countdown for task. A fresh tick chain starts only
// when the session ends up running.
func (m Model) startTimer(c model.Category, task model.Task) (Model, tea.Cmd) {
	state, err := m.tracker.StartTimer(m.ctx, c.Name, task.ID)
	if err != nil {
		if errors.Is(err, tracker.ErrUntimed) {
			m.Status = StatusBar{Text: fmt.Sprintf("%s tasks have no timer", c.Name), IsError: true}
			return m, nil
		}
		m.setError(err)
		return m, nil
	}
	m.Timer = m.tracker.Timer()
	switch state {
	case timer.Running:
		m.Status = StatusBar{Text: fmt.Sprintf("timer running: %s", task.Name), IsError: false}
		return m, timerTickCmd(m.Timer.Gen)
	case timer.Paused:
		m.Status = StatusBar{Text: fmt.Sprintf("timer paused: %s", task.Name), IsError: false}
	}
	return m, nil
}

func (m *Model) pauseTimer() bool {
	ok := m.tracker.PauseTimer()
	m.Timer = m.tracker.Timer()
	if ok {
		m.Status = StatusBar{Text: "timer paused", IsError: false}
	}
	return ok
}

func (m *Model) resetTimer() {
	m.tracker.ResetTimer()
	m.Timer = m.tracker.Timer()
	m.Status = StatusBar{Text: "timer reset", IsError: false}
}

func (m Model) onTimerTick(msg TimerTickMsg) (tea.Model, tea.Cmd) {
	res, err := m.tracker.Tick(m.ctx, msg.Gen)
	m.Timer = m.tracker.Timer()
	if err != nil {
		m.setError(err)
		return m, nil
	}
	if res.Stale {
		return m, nil
	}
	if res.Expired {
		body := fmt.Sprintf("%s complete!", res.Session.TaskName)
		m.Status = StatusBar{Text: body, IsError: false}
		m.notify("Timer", body, "info")
		m.reload()
		return m, nil
	}
	return m, timerTickCmd(msg.Gen)
}

func timerTickCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return TimerTickMsg{Gen: gen} })
}
