package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/golearn/internal/router"
	"github.com/abhisek/golearn/internal/screens/screentest"
	"github.com/abhisek/golearn/internal/session"
	"github.com/abhisek/golearn/internal/store"
)

// step sends msg to m and runs one round of the resulting command.
func step(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(AppModel)
	if cmd != nil {
		if out := cmd(); out != nil {
			next, _ = m.Update(out)
			m = next.(AppModel)
		}
	}
	return m
}

func TestTabSwitchPersists(t *testing.T) {
	kv := store.NewMemoryKV()
	svc := screentest.NewSessionWithKV(t, kv)
	m := newAppModel(Options{Session: svc})
	require.Equal(t, session.TabExercises, m.router.ActiveTab())

	m = step(t, m, screentest.Special(tea.KeyTab))
	assert.Equal(t, session.TabRoadmap, m.router.ActiveTab())
	assert.Equal(t, session.TabRoadmap, svc.Tab())

	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, session.TabProgress, m.router.ActiveTab())

	// A new session over the same backend restores the tab.
	again := screentest.NewSessionWithKV(t, kv)
	assert.Equal(t, session.TabProgress, again.Tab())
	assert.Equal(t, session.TabProgress, newAppModel(Options{Session: again}).router.ActiveTab())
}

func TestEscPopsOverlay(t *testing.T) {
	m := newAppModel(Options{Session: screentest.NewSession(t)})

	m = step(t, m, screentest.Key('C'))
	require.Equal(t, 2, m.router.Depth())
	assert.Equal(t, "Challenges", m.router.Active().Title())

	m = step(t, m, screentest.Special(tea.KeyEscape))
	assert.Equal(t, 1, m.router.Depth())
}

func TestCapturingScreenKeepsKeys(t *testing.T) {
	m := newAppModel(Options{Session: screentest.NewSession(t)})
	m = step(t, m, router.SelectTabMsg{ID: session.TabRoadmap})
	require.Equal(t, session.TabRoadmap, m.router.ActiveTab())

	next, _ := m.Update(screentest.Key('a'))
	m = next.(AppModel)

	// While the topic prompt is open, tab and q go to the text input.
	next, _ = m.Update(screentest.Special(tea.KeyTab))
	m = next.(AppModel)
	assert.Equal(t, session.TabRoadmap, m.router.ActiveTab())

	_, cmd := m.Update(screentest.Key('q'))
	if cmd != nil {
		_, quit := cmd().(tea.QuitMsg)
		assert.False(t, quit)
	}
}

func TestQuitKeys(t *testing.T) {
	m := newAppModel(Options{Session: screentest.NewSession(t)})

	_, cmd := m.Update(screentest.Ctrl('c'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(screentest.Key('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHeaderAndFooter(t *testing.T) {
	m := newAppModel(Options{Session: screentest.NewSession(t)})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(AppModel)
	_ = m.View()

	labels := m.tabLabels()
	require.Len(t, labels, 3)
	assert.True(t, labels[0].Active)
	assert.Equal(t, "Roadmap", labels[1].Label)

	hints := m.footerHints()
	require.NotEmpty(t, hints)
	assert.Equal(t, "Ctrl+C", hints[len(hints)-1].Key)
}
