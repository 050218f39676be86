package update

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/cozy/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const paletteHelp = `### Commands
- **/add** category minutes name
- **/done**, **/undo**, **/rm** [category] n|id
- **/start** [category] n|id, **/pause**, **/reset**
- **/show** view, **/name** display name
`

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	var md strings.Builder
	md.WriteString("### Keys\n")
	for _, kb := range m.viewBindings() {
		md.WriteString(fmt.Sprintf("- **%s** %s\n", kb.Key, kb.Action))
	}
	md.WriteString("\n" + paletteHelp)

	bindings := m.helpBindings()
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: m.viewTitle(),
		Markdown:    md.String(),
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	out := []KeyBinding{{Key: m.Keys.Dashboard, Action: "dashboard"}}
	keys := make([]string, 0, len(m.Keys.Lists))
	for k := range m.Keys.Lists {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, KeyBinding{Key: k, Action: m.Keys.Lists[k]})
	}
	return append(out,
		KeyBinding{Key: m.Keys.Calendar, Action: "calendar"},
		KeyBinding{Key: "/", Action: "command"},
		KeyBinding{Key: m.Keys.Help, Action: "help"},
		KeyBinding{Key: m.Keys.Quit, Action: "quit"},
	)
}

func (m Model) viewBindings() []KeyBinding {
	if c, ok := m.listView(); ok {
		out := []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "space/x", Action: "toggle done"},
			{Key: "a", Action: "add task (name minutes)"},
			{Key: "d", Action: "delete task"},
		}
		if c.Timed {
			out = append(out,
				KeyBinding{Key: "s", Action: "start/pause timer"},
				KeyBinding{Key: "r", Action: "reset timer"},
			)
		}
		return out
	}
	if m.CurrentView == ViewCalendar {
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next month"},
			{Key: "t", Action: "this month"},
		}
	}
	return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
