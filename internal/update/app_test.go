package update

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/cozy/internal/datekey"
	"github.com/sandeepkv93/cozy/internal/model"
	"github.com/sandeepkv93/cozy/internal/scheduler"
	"github.com/sandeepkv93/cozy/internal/storage"
	"github.com/sandeepkv93/cozy/internal/timer"
	"github.com/sandeepkv93/cozy/internal/tracker"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func newTestModel(t *testing.T) (Model, *tracker.Tracker, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)}
	tr := tracker.New(tracker.Deps{KV: storage.NewMemoryKV(), Now: clock.Now})
	return NewModel(Deps{Context: t.Context(), Tracker: tr}), tr, clock
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(Model)
	}
	return m, cmd
}

func TestNewModelDefaults(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.CurrentView != ViewDashboard {
		t.Fatalf("expected default view %q, got %q", ViewDashboard, m.CurrentView)
	}
	if m.Keys.Quit != "q" || m.Keys.Calendar != "4" {
		t.Fatalf("unexpected keys: %+v", m.Keys)
	}
	if m.Keys.Lists["2"] != "exercise" || m.Keys.Lists["3"] != "personal" {
		t.Fatalf("unexpected list keys: %+v", m.Keys.Lists)
	}
	if m.Profile != tracker.DefaultName {
		t.Fatalf("expected default profile name, got %q", m.Profile)
	}
	if m.Calendar.Year != 2026 || m.Calendar.Month != time.March {
		t.Fatalf("expected calendar on March 2026, got %d-%d", m.Calendar.Year, m.Calendar.Month)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = press(t, m, "2")
	if m.CurrentView != View("exercise") {
		t.Fatalf("expected exercise view, got %q", m.CurrentView)
	}
	m, _ = press(t, m, "4")
	if m.CurrentView != ViewCalendar {
		t.Fatalf("expected calendar view, got %q", m.CurrentView)
	}
	m, _ = press(t, m, "1")
	if m.CurrentView != ViewDashboard {
		t.Fatalf("expected dashboard view, got %q", m.CurrentView)
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(SwitchViewMsg{View: View("personal")})
	next := updated.(Model)
	if next.CurrentView != View("personal") {
		t.Fatalf("expected personal view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(SwitchViewMsg{View: View("Unknown")})
	next = updated.(Model)
	if next.CurrentView != View("personal") {
		t.Fatalf("expected view unchanged for unknown view, got %q", next.CurrentView)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(SetStatusMsg{Text: "ready", IsError: false})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m, _, _ := newTestModel(t)
	next, cmd := press(t, m, "q")
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestAddTaskWithKeyboard(t *testing.T) {
	m, tr, _ := newTestModel(t)
	m, _ = press(t, m, "2", "a", "Morning stretch 10", "enter")

	items := m.Lists["exercise"].Items
	if len(items) != 1 {
		t.Fatalf("expected 1 exercise task, got %d", len(items))
	}
	if items[0].Name != "Morning stretch" || items[0].DurationMinutes != 10 {
		t.Fatalf("unexpected task: %+v", items[0])
	}
	if m.Lists["exercise"].Adding {
		t.Fatal("expected add mode to close after enter")
	}
	stored, err := tr.Tasks(t.Context(), "exercise")
	if err != nil || len(stored) != 1 {
		t.Fatalf("expected task persisted, got %v (err %v)", stored, err)
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = press(t, m, "2", "a", "Pushups", "enter")
	if !m.Status.IsError || !errors.Is(m.LastError, model.ErrInvalidDuration) {
		t.Fatalf("expected invalid duration error, got %+v (%v)", m.Status, m.LastError)
	}
	if len(m.Lists["exercise"].Items) != 0 {
		t.Fatal("expected no task created")
	}
	if !m.Lists["exercise"].Adding {
		t.Fatal("expected add mode to stay open for correction")
	}

	m, _ = press(t, m, "esc")
	if m.Lists["exercise"].Adding {
		t.Fatal("expected esc to cancel add mode")
	}
}

func TestToggleRecordsCompletionAndSummary(t *testing.T) {
	m, tr, clock := newTestModel(t)
	if _, err := tr.Add(t.Context(), "personal", "Read", 20); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := tr.Add(t.Context(), "personal", "Journal", 5); err != nil {
		t.Fatalf("add: %v", err)
	}

	m, _ = press(t, m, "3", "j", " ")
	items := m.Lists["personal"].Items
	if items[0].Completed || !items[1].Completed {
		t.Fatalf("expected only second task done, got %+v", items)
	}
	entry := tr.Log(t.Context())[datekey.Key(clock.Now())]
	if got := entry.Done(model.Personal); len(got) != 1 || got[0] != "Journal" {
		t.Fatalf("expected Journal logged, got %v", got)
	}

	m, _ = press(t, m, "1")
	out := m.View()
	if !strings.Contains(out, "1 remaining") {
		t.Fatalf("expected remaining message in dashboard: %q", out)
	}
	if !strings.Contains(out, "You have no tasks today!") {
		t.Fatalf("expected empty exercise message in dashboard: %q", out)
	}
}

func TestDeleteSelectedTask(t *testing.T) {
	m, tr, _ := newTestModel(t)
	if _, err := tr.Add(t.Context(), "personal", "Read", 20); err != nil {
		t.Fatalf("add: %v", err)
	}
	m, _ = press(t, m, "3", "d")
	if len(m.Lists["personal"].Items) != 0 {
		t.Fatalf("expected list empty after delete, got %+v", m.Lists["personal"].Items)
	}
	if m.Status.Text != "deleted: Read" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestTimerTicksUntilExpiry(t *testing.T) {
	m, tr, _ := newTestModel(t)
	if _, err := tr.Add(t.Context(), "exercise", "Plank", 0.05); err != nil {
		t.Fatalf("add: %v", err)
	}

	m, cmd := press(t, m, "2", "s")
	if cmd == nil {
		t.Fatal("expected tick command after start")
	}
	if m.Timer.State != timer.Running || m.Timer.Session.Remaining != 3 {
		t.Fatalf("unexpected timer: %+v", m.Timer)
	}
	gen := m.Timer.Gen

	updated, cmd := m.Update(TimerTickMsg{Gen: gen + 7})
	m = updated.(Model)
	if cmd != nil || m.Timer.Session.Remaining != 3 {
		t.Fatalf("expected stale tick ignored, got %+v", m.Timer)
	}

	for i := 0; i < 2; i++ {
		updated, cmd = m.Update(TimerTickMsg{Gen: gen})
		m = updated.(Model)
		if cmd == nil {
			t.Fatalf("expected next tick after tick %d", i+1)
		}
	}
	updated, cmd = m.Update(TimerTickMsg{Gen: gen})
	m = updated.(Model)
	if cmd != nil {
		t.Fatal("expected tick chain to end on expiry")
	}
	if m.Timer.State != timer.Idle {
		t.Fatalf("expected idle timer after expiry, got %s", m.Timer.State)
	}
	if !m.Lists["exercise"].Items[0].Completed {
		t.Fatal("expected expiry to complete the task")
	}
	if m.Status.Text != "Plank complete!" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestPauseEndsTickChain(t *testing.T) {
	m, tr, _ := newTestModel(t)
	if _, err := tr.Add(t.Context(), "exercise", "Squats", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	m, _ = press(t, m, "2", "s")
	gen := m.Timer.Gen
	m, cmd := press(t, m, "s")
	if cmd != nil || m.Timer.State != timer.Paused {
		t.Fatalf("expected paused timer without tick, got %+v", m.Timer)
	}
	updated, cmd := m.Update(TimerTickMsg{Gen: gen})
	m = updated.(Model)
	if cmd != nil || m.Timer.Session.Remaining != 60 {
		t.Fatalf("expected paused session untouched, got %+v", m.Timer)
	}

	m, _ = press(t, m, "r")
	if m.Timer.State != timer.Idle {
		t.Fatalf("expected idle timer after reset, got %s", m.Timer.State)
	}
}

func TestStartOnUntimedCategory(t *testing.T) {
	m, tr, _ := newTestModel(t)
	if _, err := tr.Add(t.Context(), "personal", "Read", 20); err != nil {
		t.Fatalf("add: %v", err)
	}
	m, cmd := press(t, m, "3", "s")
	if cmd != nil {
		t.Fatal("expected no tick for untimed category")
	}
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "no timer") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestPaletteAddDoneAndShow(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = press(t, m, "/", "add personal 15 Read a book", "enter")
	if m.Palette.Active {
		t.Fatal("expected palette closed after command")
	}
	if m.CurrentView != View("personal") {
		t.Fatalf("expected personal view after add, got %q", m.CurrentView)
	}
	items := m.Lists["personal"].Items
	if len(items) != 1 || items[0].Name != "Read a book" {
		t.Fatalf("unexpected personal items: %+v", items)
	}

	m, _ = press(t, m, "/", "done 1", "enter")
	if !m.Lists["personal"].Items[0].Completed {
		t.Fatalf("expected task done, status %+v", m.Status)
	}

	m, _ = press(t, m, "/", "show calendar", "enter")
	if m.CurrentView != ViewCalendar {
		t.Fatalf("expected calendar view, got %q", m.CurrentView)
	}

	m, _ = press(t, m, "/", "name Robin", "enter")
	if m.Profile != "Robin" {
		t.Fatalf("expected profile renamed, got %q", m.Profile)
	}
}

func TestPaletteErrors(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = press(t, m, "/", "dance", "enter")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("expected unknown command error, got %+v", m.Status)
	}

	m, _ = press(t, m, "/", "done 1", "enter")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "open a list") {
		t.Fatalf("expected missing list error, got %+v", m.Status)
	}

	m, _ = press(t, m, "/", "start personal 1", "enter")
	if !m.Status.IsError {
		t.Fatalf("expected start on personal to fail, got %+v", m.Status)
	}
}

func TestCalendarNavigation(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = press(t, m, "4", "l")
	if m.Calendar.Month != time.April || m.Calendar.Grid.Month != time.April {
		t.Fatalf("expected April, got %s / %s", m.Calendar.Month, m.Calendar.Grid.Month)
	}
	m, _ = press(t, m, "h", "h", "h")
	if m.Calendar.Year != 2026 || m.Calendar.Month != time.January {
		t.Fatalf("expected January 2026, got %s %d", m.Calendar.Month, m.Calendar.Year)
	}
	m, _ = press(t, m, "h")
	if m.Calendar.Year != 2025 || m.Calendar.Month != time.December {
		t.Fatalf("expected December 2025, got %s %d", m.Calendar.Month, m.Calendar.Year)
	}
	m, _ = press(t, m, "t")
	if m.Calendar.Year != 2026 || m.Calendar.Month != time.March {
		t.Fatalf("expected this month, got %s %d", m.Calendar.Month, m.Calendar.Year)
	}
	if !strings.Contains(m.View(), "March 2026") {
		t.Fatal("expected month title in calendar view")
	}
}

func TestRolloverResetsListsAndArchives(t *testing.T) {
	m, tr, clock := newTestModel(t)
	if _, err := tr.Add(t.Context(), "exercise", "Run", 30); err != nil {
		t.Fatalf("add: %v", err)
	}
	m, _ = press(t, m, "2", " ")
	if !m.Lists["exercise"].Items[0].Completed {
		t.Fatal("expected task done before rollover")
	}
	dayOne := clock.Now()

	clock.Set(dayOne.Add(24 * time.Hour))
	updated, _ := m.Update(RolloverMsg{Event: scheduler.Event{ID: "rollover", Kind: scheduler.KindRollover, At: clock.Now()}})
	m = updated.(Model)
	if m.Lists["exercise"].Items[0].Completed {
		t.Fatal("expected rollover to reset completion")
	}
	entry := tr.Log(t.Context())[datekey.Key(dayOne)]
	if got := entry.Done(model.Exercise); len(got) != 1 || got[0] != "Run" {
		t.Fatalf("expected yesterday archived, got %v", got)
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	if !strings.Contains(out, "Welcome back, Cozy User") {
		t.Fatalf("expected greeting in output: %q", out)
	}
	if !strings.Contains(out, "status: all good") {
		t.Fatalf("expected status in output: %q", out)
	}
	if !strings.Contains(out, "(no countdown)") {
		t.Fatalf("expected idle timer panel in output: %q", out)
	}
}

func TestHelpToggle(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = press(t, m, "2", "?")
	if !m.HelpVisible {
		t.Fatal("expected help visible")
	}
	if !strings.Contains(m.View(), "start/pause") {
		t.Fatal("expected timed list bindings in help")
	}
	m, _ = press(t, m, "?")
	if m.HelpVisible {
		t.Fatal("expected help hidden")
	}
}

func TestParseAddInput(t *testing.T) {
	name, minutes, err := parseAddInput("  Evening walk  25 ")
	if err != nil || name != "Evening walk" || minutes != 25 {
		t.Fatalf("unexpected parse: %q %v %v", name, minutes, err)
	}
	if _, _, err := parseAddInput(""); !errors.Is(err, model.ErrEmptyName) {
		t.Fatalf("expected empty name error, got %v", err)
	}
	if _, _, err := parseAddInput("walk soon"); !errors.Is(err, model.ErrInvalidDuration) {
		t.Fatalf("expected invalid duration error, got %v", err)
	}
	if _, _, err := parseAddInput("walk -5"); !errors.Is(err, model.ErrInvalidDuration) {
		t.Fatalf("expected negative duration rejected, got %v", err)
	}
}
