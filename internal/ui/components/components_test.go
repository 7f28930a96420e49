package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_EnterSubmitsSelected(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c"})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !m.Submitted() || m.Chosen != 2 {
		t.Errorf("Chosen = %d, want 2", m.Chosen)
	}
}

func TestMultiChoice_DirectChoice(t *testing.T) {
	tests := []struct {
		key  rune
		want int
	}{
		{'a', 0},
		{'b', 1},
		{'2', 1},
		{'3', 2},
		{'d', -1}, // only three options
		{'x', -1},
	}
	for _, tt := range tests {
		m := NewMultiChoice([]string{"a", "b", "c"})
		m, _ = m.Update(key(tt.key))
		if m.Chosen != tt.want {
			t.Errorf("key %q: Chosen = %d, want %d", tt.key, m.Chosen, tt.want)
		}
	}
}

func TestMultiChoice_LockedIgnoresInput(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b"})
	m.Lock(0, 1)
	m, _ = m.Update(key('b'))
	if !m.Locked() || m.Chosen != 0 {
		t.Errorf("locked selector changed: Chosen = %d", m.Chosen)
	}
}

func TestChecklist_ToggleEmitsID(t *testing.T) {
	c := NewChecklist([]ChecklistItem{{ID: "one"}, {ID: "two"}})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a toggle command")
	}
	msg, ok := cmd().(ToggleItemMsg)
	if !ok || msg.ID != "two" {
		t.Errorf("msg = %#v, want ToggleItemMsg{ID: two}", msg)
	}
}

func TestChecklist_SetItemsClampsCursor(t *testing.T) {
	c := NewChecklist([]ChecklistItem{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	c.Selected = 2
	c.SetItems([]ChecklistItem{{ID: "a"}})
	if c.Selected != 0 {
		t.Errorf("Selected = %d, want 0", c.Selected)
	}
}

func TestRatio(t *testing.T) {
	if got := Ratio(1, 4); got != 25 {
		t.Errorf("Ratio(1, 4) = %v, want 25", got)
	}
	if got := Ratio(3, 0); got != 0 {
		t.Errorf("Ratio(3, 0) = %v, want 0", got)
	}
}

func TestConfirm_Shortcuts(t *testing.T) {
	c := NewConfirm("id", "sure?")
	_, cmd := c.Update(key('y'))
	if res := cmd().(ConfirmResultMsg); !res.OK || res.ID != "id" {
		t.Errorf("y = %#v, want OK", res)
	}
	_, cmd = c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if res := cmd().(ConfirmResultMsg); res.OK {
		t.Error("enter on the default button should answer no")
	}
}
