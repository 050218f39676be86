package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	fullStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true)
	partialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))
	todayStyle   = lipgloss.NewStyle().Underline(true).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Calendar cell statuses as rendered.
const (
	CellUnmarked = "unmarked"
	CellPartial  = "partial"
	CellFull     = "full"
)

type SummaryCardData struct {
	Label   string
	Message string
	Bar     string
	Percent int
}

type DashboardData struct {
	Greeting string
	Date     string
	Cards    []SummaryCardData
	Timer    string
}

type TaskRowData struct {
	Index     int
	Name      string
	Minutes   string
	Completed bool
	Selected  bool
	Timer     string
}

type TaskListData struct {
	Title   string
	Rows    []TaskRowData
	Message string
	Bar     string
	Timed   bool
	AddView string
}

type TimerPanelData struct {
	TaskName string
	Category string
	State    string
	Clock    string
	Bar      string
}

type CalendarCellData struct {
	Day    int
	Status string
	Today  bool
}

type CalendarData struct {
	Title    string
	Weekdays []string
	// Weeks holds seven slots per row; nil slots are outside the month.
	Weeks [][]*CalendarCellData
}

type RecentDayData struct {
	Date  string
	Lines []string
}

type HelpPanelData struct {
	CurrentView string
	Markdown    string
	HelpView    string
}

func RenderDashboard(data DashboardData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n%s\n", data.Greeting, mutedStyle.Render(data.Date)))
	for _, card := range data.Cards {
		b.WriteString(fmt.Sprintf("\n%s: %s\n", card.Label, card.Message))
		b.WriteString(fmt.Sprintf("%s %d%%\n", card.Bar, card.Percent))
	}
	if data.Timer != "" {
		b.WriteString("\ntimer: " + data.Timer)
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskList(data TaskListData) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(data.Title) + ":\n")
	if data.Timed {
		b.WriteString("actions: [j/k]move [space]done [a]add [d]delete [s]start/pause [r]reset\n")
	} else {
		b.WriteString("actions: [j/k]move [space]done [a]add [d]delete\n")
	}
	if len(data.Rows) == 0 {
		b.WriteString("\n(no tasks yet)\n")
	} else {
		b.WriteString("\n")
	}
	for _, row := range data.Rows {
		b.WriteString(renderTaskRow(row) + "\n")
	}
	b.WriteString(fmt.Sprintf("\n%s\n%s", data.Message, data.Bar))
	if data.AddView != "" {
		b.WriteString("\n\n" + data.AddView)
	}
	return strings.TrimSpace(b.String())
}

func renderTaskRow(row TaskRowData) string {
	cursor := " "
	if row.Selected {
		cursor = cursorStyle.Render(">")
	}
	check := "[ ]"
	name := row.Name
	if row.Completed {
		check = "[x]"
		name = doneStyle.Render(name)
	}
	line := fmt.Sprintf("%s %d. %s %s (%s min)", cursor, row.Index, check, name, row.Minutes)
	if row.Timer != "" {
		line += " " + row.Timer
	}
	return line
}

func RenderTimerPanel(data TimerPanelData) string {
	if data.TaskName == "" {
		return "timer:\n(no countdown)"
	}
	return fmt.Sprintf("timer:\ntask: %s (%s)\nstate: %s\nremaining: %s\n%s",
		data.TaskName,
		data.Category,
		strings.ToUpper(data.State),
		data.Clock,
		data.Bar,
	)
}

func RenderCalendar(data CalendarData) string {
	var b strings.Builder
	b.WriteString(data.Title + "\n")
	b.WriteString("actions: [h/l]month [t]this month\n\n")
	for _, wd := range data.Weekdays {
		b.WriteString(fmt.Sprintf(" %-3s ", wd))
	}
	b.WriteString("\n")
	for _, week := range data.Weeks {
		for _, cell := range week {
			b.WriteString(renderCell(cell))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + fullStyle.Render("● all done") + "  " + partialStyle.Render("◐ some done") + "  [ ] today")
	return strings.TrimRight(b.String(), "\n")
}

func renderCell(cell *CalendarCellData) string {
	if cell == nil {
		return "     "
	}
	mark := " "
	style := lipgloss.NewStyle()
	switch cell.Status {
	case CellFull:
		mark = "●"
		style = fullStyle
	case CellPartial:
		mark = "◐"
		style = partialStyle
	}
	body := fmt.Sprintf("%2d%s", cell.Day, mark)
	if cell.Today {
		return "[" + todayStyle.Inherit(style).Render(body) + "]"
	}
	return " " + style.Render(body) + " "
}

func RenderRecent(days []RecentDayData) string {
	var b strings.Builder
	b.WriteString("recent:\n")
	if len(days) == 0 {
		b.WriteString("(nothing logged yet)")
		return b.String()
	}
	for _, d := range days {
		b.WriteString(d.Date + "\n")
		for _, line := range d.Lines {
			b.WriteString("  " + line + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n%s",
		strings.ToLower(data.CurrentView),
		RenderMarkdown(data.Markdown),
		data.HelpView,
	)
}
