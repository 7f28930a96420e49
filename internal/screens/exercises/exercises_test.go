package exercises

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/golearn/internal/exercise"
	"github.com/abhisek/golearn/internal/router"
	"github.com/abhisek/golearn/internal/screens/challenges"
	"github.com/abhisek/golearn/internal/screens/screentest"
	"github.com/abhisek/golearn/internal/session"
)

func TestNew_StartsAtFirstExercise(t *testing.T) {
	s := New(screentest.NewSession(t))

	assert.Equal(t, 0, s.Current())
	assert.Equal(t, exercise.DifficultyAll, s.Filter())
	assert.False(t, s.choice.Locked())
	assert.Contains(t, s.View(100, 30), "Exercise 1 of 8")
}

func TestAnswer_CorrectLocksAndScores(t *testing.T) {
	svc := screentest.NewSession(t)
	s := New(svc)

	// The first built-in exercise's correct option is D.
	s.Update(screentest.Key('d'))

	assert.True(t, s.choice.Locked())
	assert.Equal(t, 1, svc.State().Score)
	require.NotNil(t, s.feedback)
	assert.True(t, s.feedback.Correct)
	assert.Contains(t, s.View(100, 30), "Correct!")
}

func TestAnswer_IncorrectLocksWithoutScore(t *testing.T) {
	svc := screentest.NewSession(t)
	s := New(svc)

	s.Update(screentest.Key('a'))

	assert.True(t, s.choice.Locked())
	assert.Equal(t, 0, svc.State().Score)
	require.NotNil(t, s.feedback)
	assert.False(t, s.feedback.Correct)
	assert.Contains(t, s.View(100, 30), "Incorrect.")

	// Further answers are ignored until reset.
	s.Update(screentest.Key('d'))
	assert.Equal(t, 0, svc.State().Score)
}

func TestNavigation(t *testing.T) {
	s := New(screentest.NewSession(t))

	s.Update(screentest.Special(tea.KeyLeft))
	assert.Equal(t, 0, s.Current(), "left at the first exercise stays put")

	s.Update(screentest.Special(tea.KeyRight))
	s.Update(screentest.Key('n'))
	assert.Equal(t, 2, s.Current())

	s.Update(screentest.Key('p'))
	assert.Equal(t, 1, s.Current())

	for range 20 {
		s.Update(screentest.Special(tea.KeyRight))
	}
	assert.Equal(t, 7, s.Current(), "right stops at the last exercise")
}

func TestFilterCycles(t *testing.T) {
	s := New(screentest.NewSession(t))

	want := []struct {
		filter exercise.Difficulty
		first  int
	}{
		{exercise.DifficultyBeginner, 0},
		{exercise.DifficultyIntermediate, 3},
		{exercise.DifficultyAdvanced, 6},
		{exercise.DifficultyAll, 0},
	}
	for _, w := range want {
		s.Update(screentest.Key('f'))
		assert.Equal(t, w.filter, s.Filter())
		assert.Equal(t, w.first, s.Current())
	}
}

func TestCompletedExerciseRestoresLocked(t *testing.T) {
	svc := screentest.NewSession(t)
	New(svc).Update(screentest.Key('d'))

	// A fresh screen over the same session shows the exercise answered.
	s := New(svc)
	assert.True(t, s.choice.Locked())
	assert.Equal(t, 3, s.choice.Chosen)
	require.NotNil(t, s.feedback)
	assert.True(t, s.feedback.Correct)
}

func TestTabChangedResyncsAfterReset(t *testing.T) {
	svc := screentest.NewSession(t)
	s := New(svc)
	s.Update(screentest.Key('d'))
	require.True(t, s.choice.Locked())

	_, err := svc.Dispatch(t.Context(), session.Reset{})
	require.NoError(t, err)

	s.Update(router.TabChangedMsg{ID: "exercises"})
	assert.False(t, s.choice.Locked())
	assert.Nil(t, s.feedback)
}

func TestChallengesKeyPushesOverlay(t *testing.T) {
	s := New(screentest.NewSession(t))

	_, cmd := s.Update(screentest.Key('C'))
	require.NotNil(t, cmd)

	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &challenges.ChallengesScreen{}, push.Screen)
}
