package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/golearn/internal/screen"
)

// PushScreenMsg requests the router to push a screen over the active tab.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the top overlay of the active tab.
type PopScreenMsg struct{}

// SelectTabMsg requests a switch to the tab with the given id.
type SelectTabMsg struct {
	ID string
}

// TabChangedMsg is emitted after the active tab changes.
type TabChangedMsg struct {
	ID string
}

// Tab is one top-level screen reachable from the tab bar.
type Tab struct {
	ID     string
	Label  string
	Screen screen.Screen
}

// Router manages a fixed row of tabs. Each tab owns a stack whose bottom
// is the tab's root screen; overlays are pushed on top of it.
type Router struct {
	tabs   []Tab
	stacks [][]screen.Screen
	active int
}

// New creates a Router over tabs with activeID selected. An unknown
// activeID selects the first tab.
func New(tabs []Tab, activeID string) *Router {
	r := &Router{tabs: tabs, stacks: make([][]screen.Screen, len(tabs))}
	for i, t := range tabs {
		r.stacks[i] = []screen.Screen{t.Screen}
		if t.ID == activeID {
			r.active = i
		}
	}
	return r
}

// Init runs Init on every tab root.
func (r *Router) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(r.tabs))
	for _, t := range r.tabs {
		cmds = append(cmds, t.Screen.Init())
	}
	return tea.Batch(cmds...)
}

// Tabs returns the tab list in display order.
func (r *Router) Tabs() []Tab {
	return r.tabs
}

// ActiveTab returns the id of the active tab.
func (r *Router) ActiveTab() string {
	if len(r.tabs) == 0 {
		return ""
	}
	return r.tabs[r.active].ID
}

// Select switches to the tab with the given id, dropping nothing: each
// tab keeps its overlays. Unknown ids and the current tab are no-ops.
func (r *Router) Select(id string) tea.Cmd {
	for i, t := range r.tabs {
		if t.ID == id {
			return r.selectIndex(i)
		}
	}
	return nil
}

// Next moves to the following tab, wrapping around.
func (r *Router) Next() tea.Cmd {
	if len(r.tabs) == 0 {
		return nil
	}
	return r.selectIndex((r.active + 1) % len(r.tabs))
}

// Prev moves to the preceding tab, wrapping around.
func (r *Router) Prev() tea.Cmd {
	if len(r.tabs) == 0 {
		return nil
	}
	return r.selectIndex((r.active - 1 + len(r.tabs)) % len(r.tabs))
}

func (r *Router) selectIndex(i int) tea.Cmd {
	if i == r.active {
		return nil
	}
	r.active = i
	id := r.tabs[i].ID
	return func() tea.Msg { return TabChangedMsg{ID: id} }
}

// Push adds a screen on top of the active tab and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	if len(r.tabs) == 0 {
		return nil
	}
	r.stacks[r.active] = append(r.stacks[r.active], s)
	return s.Init()
}

// Pop removes the top overlay of the active tab. The tab root stays.
func (r *Router) Pop() tea.Cmd {
	if r.Depth() <= 1 {
		return nil
	}
	st := r.stacks[r.active]
	r.stacks[r.active] = st[:len(st)-1]
	return nil
}

// Active returns the top screen of the active tab.
func (r *Router) Active() screen.Screen {
	if len(r.tabs) == 0 {
		return nil
	}
	st := r.stacks[r.active]
	return st[len(st)-1]
}

// Depth returns the stack depth of the active tab.
func (r *Router) Depth() int {
	if len(r.tabs) == 0 {
		return 0
	}
	return len(r.stacks[r.active])
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case SelectTabMsg:
		return r.Select(msg.ID)
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	st := r.stacks[r.active]
	st[len(st)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
