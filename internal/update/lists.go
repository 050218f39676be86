package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/cozy/internal/model"
)

func (m Model) handleListKey(c model.Category, msg tea.KeyMsg) (Model, tea.Cmd) {
	ls := m.Lists[c.Name]
	switch msg.String() {
	case "up", "k":
		if ls.Cursor > 0 {
			ls.Cursor--
		}
		m.Lists[c.Name] = ls
	case "down", "j":
		if ls.Cursor < len(ls.Items)-1 {
			ls.Cursor++
		}
		m.Lists[c.Name] = ls
	case " ", "x":
		task, ok := m.currentTask(c)
		if !ok {
			return m, nil
		}
		done, err := m.tracker.Toggle(m.ctx, c.Name, task.ID)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		verb := "undone"
		if done {
			verb = "done"
		}
		m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", verb, task.Name), IsError: false}
		m.reload()
	case "a":
		ls.Adding = true
		m.Lists[c.Name] = ls
		m.addInput.SetValue("")
		m.addInput.Focus()
		m.Status = StatusBar{Text: fmt.Sprintf("new %s task: name minutes", c.Name), IsError: false}
	case "d":
		task, ok := m.currentTask(c)
		if !ok {
			return m, nil
		}
		if _, err := m.tracker.Remove(m.ctx, c.Name, task.ID); err != nil {
			m.setError(err)
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", task.Name), IsError: false}
		m.reload()
	case "s":
		if task, ok := m.currentTask(c); ok {
			return m.startTimer(c, task)
		}
	case "r":
		if c.Timed {
			m.resetTimer()
		}
	}
	return m, nil
}

func (m Model) handleAddKey(c model.Category, msg tea.KeyMsg) Model {
	ls := m.Lists[c.Name]
	switch msg.String() {
	case "esc":
		ls.Adding = false
		m.Lists[c.Name] = ls
		m.addInput.Blur()
		m.addInput.SetValue("")
		m.Status = StatusBar{Text: "add cancelled", IsError: false}
		return m
	case "enter":
		name, minutes, err := parseAddInput(m.addInput.Value())
		if err != nil {
			m.setError(err)
			return m
		}
		task, err := m.tracker.Add(m.ctx, c.Name, name, minutes)
		if err != nil {
			m.setError(err)
			return m
		}
		ls.Adding = false
		m.Lists[c.Name] = ls
		m.addInput.Blur()
		m.addInput.SetValue("")
		m.Status = StatusBar{Text: fmt.Sprintf("added: %s", task.Name), IsError: false}
		m.reload()
		m.selectTask(c, task.ID)
		return m
	}
	if msg.Type == tea.KeyRunes {
		m.addInput.SetValue(m.addInput.Value() + string(msg.Runes))
		return m
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	_ = cmd
	return m
}

func (m Model) currentTask(c model.Category) (model.Task, bool) {
	ls := m.Lists[c.Name]
	if len(ls.Items) == 0 {
		return model.Task{}, false
	}
	if ls.Cursor < 0 || ls.Cursor >= len(ls.Items) {
		return model.Task{}, false
	}
	return ls.Items[ls.Cursor], true
}

func (m *Model) selectTask(c model.Category, id string) {
	ls := m.Lists[c.Name]
	if i := model.IndexOf(ls.Items, id); i >= 0 {
		ls.Cursor = i
		m.Lists[c.Name] = ls
	}
}

func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
