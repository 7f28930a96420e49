package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/golearn/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
	updates int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { s.updates++; return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func newTestRouter(active string) (*Router, []*stubScreen) {
	screens := []*stubScreen{{title: "one"}, {title: "two"}, {title: "three"}}
	tabs := []Tab{
		{ID: "one", Label: "One", Screen: screens[0]},
		{ID: "two", Label: "Two", Screen: screens[1]},
		{ID: "three", Label: "Three", Screen: screens[2]},
	}
	return New(tabs, active), screens
}

func TestNew_ActiveTab(t *testing.T) {
	r, _ := newTestRouter("two")
	if r.ActiveTab() != "two" {
		t.Errorf("ActiveTab() = %q, want %q", r.ActiveTab(), "two")
	}

	r, _ = newTestRouter("missing")
	if r.ActiveTab() != "one" {
		t.Errorf("ActiveTab() with unknown id = %q, want %q", r.ActiveTab(), "one")
	}
}

func TestInitRunsOnEveryTab(t *testing.T) {
	r, screens := newTestRouter("one")
	if cmd := r.Init(); cmd != nil {
		cmd()
	}
	for _, s := range screens {
		if !s.initRan {
			t.Errorf("Init() did not run on %q", s.title)
		}
	}
}

func TestNextPrevWrap(t *testing.T) {
	r, _ := newTestRouter("three")

	cmd := r.Next()
	if r.ActiveTab() != "one" {
		t.Errorf("Next() from last = %q, want %q", r.ActiveTab(), "one")
	}
	if cmd == nil {
		t.Fatal("Next() should emit TabChangedMsg")
	}
	if msg, ok := cmd().(TabChangedMsg); !ok || msg.ID != "one" {
		t.Errorf("cmd() = %#v, want TabChangedMsg{one}", msg)
	}

	r.Prev()
	if r.ActiveTab() != "three" {
		t.Errorf("Prev() from first = %q, want %q", r.ActiveTab(), "three")
	}
}

func TestSelectSameTabIsNoop(t *testing.T) {
	r, _ := newTestRouter("one")
	if cmd := r.Select("one"); cmd != nil {
		t.Error("Select(active) should return nil")
	}
	if cmd := r.Select("nope"); cmd != nil {
		t.Error("Select(unknown) should return nil")
	}
}

func TestSelectTabMsg(t *testing.T) {
	r, _ := newTestRouter("one")
	r.Update(SelectTabMsg{ID: "three"})
	if r.ActiveTab() != "three" {
		t.Errorf("ActiveTab() = %q, want %q", r.ActiveTab(), "three")
	}
}

func TestPushPopPerTab(t *testing.T) {
	r, _ := newTestRouter("one")

	overlay := &stubScreen{title: "overlay"}
	r.Update(PushScreenMsg{Screen: overlay})
	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if !overlay.initRan {
		t.Error("expected Init() to run on pushed screen")
	}

	// Other tabs keep their own stacks.
	r.Select("two")
	if r.Depth() != 1 || r.Active().Title() != "two" {
		t.Errorf("tab two: depth %d active %q", r.Depth(), r.Active().Title())
	}

	r.Select("one")
	if r.Active().Title() != "overlay" {
		t.Errorf("expected overlay to survive tab switch, got %q", r.Active().Title())
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 || r.Active().Title() != "one" {
		t.Errorf("after pop: depth %d active %q", r.Depth(), r.Active().Title())
	}
}

func TestPopNoopAtRoot(t *testing.T) {
	r, _ := newTestRouter("one")
	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at root, got %d", r.Depth())
	}
}

func TestUpdateGoesToActiveScreen(t *testing.T) {
	r, screens := newTestRouter("two")
	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if screens[1].updates != 1 || screens[0].updates != 0 {
		t.Errorf("updates = %d/%d, want only the active tab updated", screens[0].updates, screens[1].updates)
	}
	if got := r.View(10, 10); got != "two" {
		t.Errorf("View() = %q, want %q", got, "two")
	}
}
