package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/cozy/internal/commands"
	"github.com/sandeepkv93/cozy/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m, nil
	}

	var next tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			c, err := m.tracker.Category(a.Category)
			if err != nil {
				return commands.Result{}, invalid(err)
			}
			task, err := m.tracker.Add(m.ctx, c.Name, a.Name, a.Minutes)
			if err != nil {
				return commands.Result{}, invalid(err)
			}
			m.CurrentView = View(c.Name)
			m.reload()
			m.selectTask(c, task.ID)
			return commands.Result{Message: fmt.Sprintf("added %s task: %s", c.Name, task.Name)}, nil
		},
		Done: func(a commands.TaskArgs) (commands.Result, error) {
			return m.paletteSetCompleted(a, true)
		},
		Undo: func(a commands.TaskArgs) (commands.Result, error) {
			return m.paletteSetCompleted(a, false)
		},
		Remove: func(a commands.TaskArgs) (commands.Result, error) {
			c, task, err := m.paletteTarget(a)
			if err != nil {
				return commands.Result{}, err
			}
			if _, err := m.tracker.Remove(m.ctx, c.Name, task.ID); err != nil {
				return commands.Result{}, invalid(err)
			}
			m.reload()
			return commands.Result{Message: fmt.Sprintf("deleted: %s", task.Name)}, nil
		},
		Start: func(a commands.TaskArgs) (commands.Result, error) {
			c, task, err := m.paletteTarget(a)
			if err != nil {
				return commands.Result{}, err
			}
			if !c.Timed {
				return commands.Result{}, invalid(fmt.Errorf("%s tasks have no timer", c.Name))
			}
			m, next = m.startTimer(c, task)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Pause: func() (commands.Result, error) {
			if !m.pauseTimer() {
				return commands.Result{}, invalid(errors.New("no running timer"))
			}
			return commands.Result{Message: "timer paused"}, nil
		},
		Reset: func() (commands.Result, error) {
			m.resetTimer()
			return commands.Result{Message: "timer reset"}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			v, ok := m.resolveView(s.View)
			if !ok {
				return commands.Result{}, invalid(fmt.Errorf("unknown view %q", s.View))
			}
			m.switchView(v)
			return commands.Result{Message: fmt.Sprintf("showing %s", v)}, nil
		},
		Name: func(n commands.NameArgs) (commands.Result, error) {
			if err := m.tracker.SetProfileName(m.ctx, n.Name); err != nil {
				return commands.Result{}, invalid(err)
			}
			m.Profile = m.tracker.ProfileName(m.ctx)
			return commands.Result{Message: fmt.Sprintf("hello, %s", m.Profile)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}

	m.closePalette()
	return m, next
}

func (m *Model) paletteSetCompleted(a commands.TaskArgs, value bool) (commands.Result, error) {
	c, task, err := m.paletteTarget(a)
	if err != nil {
		return commands.Result{}, err
	}
	if err := m.tracker.SetCompleted(m.ctx, c.Name, task.ID, value); err != nil {
		return commands.Result{}, invalid(err)
	}
	m.reload()
	verb := "undone"
	if value {
		verb = "done"
	}
	return commands.Result{Message: fmt.Sprintf("%s: %s", verb, task.Name)}, nil
}

// paletteTarget resolves a task reference against the named category, or
// the list on screen when no category is given.
func (m Model) paletteTarget(a commands.TaskArgs) (model.Category, model.Task, error) {
	var c model.Category
	if a.Category != "" {
		found, err := m.tracker.Category(a.Category)
		if err != nil {
			return c, model.Task{}, invalid(err)
		}
		c = found
	} else {
		current, ok := m.listView()
		if !ok {
			return c, model.Task{}, invalid(errors.New("open a list or name a category"))
		}
		c = current
	}
	task, err := m.tracker.Resolve(m.ctx, c.Name, a.Target)
	if err != nil {
		return c, model.Task{}, invalid(err)
	}
	return c, task, nil
}

func (m Model) resolveView(name string) (View, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dashboard", "home":
		return ViewDashboard, true
	case "calendar", "cal":
		return ViewCalendar, true
	}
	c, err := m.tracker.Category(name)
	if err != nil {
		return "", false
	}
	return View(c.Name), true
}

func invalid(err error) error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
}
