package update

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/cozy/internal/calendar"
	"github.com/sandeepkv93/cozy/internal/completion"
	"github.com/sandeepkv93/cozy/internal/events"
	"github.com/sandeepkv93/cozy/internal/model"
	"github.com/sandeepkv93/cozy/internal/scheduler"
	"github.com/sandeepkv93/cozy/internal/timer"
	"github.com/sandeepkv93/cozy/internal/tracker"
)

// View names the screen on display. Category lists use the category name.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewCalendar  View = "calendar"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Dashboard string
	Calendar  string
	Help      string
	Quit      string
	// Lists maps a view key to the category list it opens, "2" onwards.
	Lists map[string]string
}

type Model struct {
	CurrentView   View
	Status        StatusBar
	Keys          GlobalKeyMap
	HelpVisible   bool
	Quitting      bool
	LastError     error
	Profile       string
	Categories    []model.Category
	Lists         map[string]ListState
	Calendar      CalendarState
	Recent        []completion.Day
	Timer         timer.Snapshot
	Palette       CommandPaletteState
	Notifications []Notification

	ctx       context.Context
	tracker   *tracker.Tracker
	scheduler *scheduler.Engine
	feed      *events.Feed

	addInput     textinput.Model
	commandInput textinput.Model
	bar          progress.Model
	helpModel    help.Model
}

type ListState struct {
	Items  []model.Task
	Cursor int
	Adding bool
}

type CalendarState struct {
	Year  int
	Month time.Month
	Grid  calendar.Month
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

// Deps wires a Model to the tracker and its event sources. Scheduler and
// Feed are optional.
type Deps struct {
	Context   context.Context
	Tracker   *tracker.Tracker
	Scheduler *scheduler.Engine
	Feed      *events.Feed
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// TimerTickMsg advances the countdown chain identified by Gen.
type TimerTickMsg struct {
	Gen uint64
}

type ChangeMsg struct {
	Event events.Event
}

type RolloverMsg struct {
	Event scheduler.Event
}

func NewModel(d Deps) Model {
	ctx := d.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		CurrentView: ViewDashboard,
		Lists:       make(map[string]ListState),
		ctx:         ctx,
		tracker:     d.Tracker,
		scheduler:   d.Scheduler,
		feed:        d.Feed,
	}
	m.Categories = d.Tracker.Categories()
	m.Keys = GlobalKeyMap{
		Dashboard: "1",
		Calendar:  strconv.Itoa(len(m.Categories) + 2),
		Help:      "?",
		Quit:      "q",
		Lists:     make(map[string]string, len(m.Categories)),
	}
	for i, c := range m.Categories {
		m.Keys.Lists[strconv.Itoa(i+2)] = c.Name
	}
	now := d.Tracker.Now()
	m.Calendar = CalendarState{Year: now.Year(), Month: now.Month()}
	m.initBubbleComponents()
	m.reload()
	return m
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Prompt = "add> "
	m.addInput.Placeholder = "name minutes"
	m.addInput.CharLimit = 256
	m.addInput.Width = 40

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.bar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))
	m.helpModel = help.New()
}

// reload pulls every list, the profile, the calendar month and the timer
// from the tracker. Reading runs the daily reset.
func (m *Model) reload() {
	for _, c := range m.Categories {
		items, err := m.tracker.Tasks(m.ctx, c.Name)
		if err != nil {
			m.setError(err)
			continue
		}
		ls := m.Lists[c.Name]
		ls.Items = items
		ls.Cursor = clampCursor(ls.Cursor, len(items))
		m.Lists[c.Name] = ls
	}
	m.Profile = m.tracker.ProfileName(m.ctx)
	m.reloadCalendar()
	m.Recent = m.tracker.Recent(m.ctx, 7)
	m.Timer = m.tracker.Timer()
}

func (m *Model) reloadCalendar() {
	grid, err := m.tracker.Month(m.ctx, m.Calendar.Year, m.Calendar.Month)
	if err != nil {
		m.setError(err)
		return
	}
	m.Calendar.Grid = grid
}

// switchView shows v with fresh data, the way a page re-initializes when it
// becomes visible.
func (m *Model) switchView(v View) {
	m.CurrentView = v
	m.reload()
}

func (m *Model) setError(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
}

func (m Model) listView() (model.Category, bool) {
	for _, c := range m.Categories {
		if View(c.Name) == m.CurrentView {
			return c, true
		}
	}
	return model.Category{}, false
}

func (m Model) isKnownView(v View) bool {
	if v == ViewDashboard || v == ViewCalendar {
		return true
	}
	for _, c := range m.Categories {
		if View(c.Name) == v {
			return true
		}
	}
	return false
}
