package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/golearn/internal/exercise"
	"github.com/abhisek/golearn/internal/progress"
	"github.com/abhisek/golearn/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newProgressStore(kv store.KV) *progress.Store {
	bank := exercise.Default()
	return progress.NewStore(kv, progress.Options{
		Limits: progress.Limits{Exercises: bank.Len(), Challenges: bank.ChallengeCount()},
		Logger: testLogger(),
	})
}

func newTestService(t *testing.T, kv store.KV, events store.EventRepo) *Service {
	t.Helper()
	return New(context.Background(), exercise.Default(), newProgressStore(kv), events, testLogger())
}

func TestDispatch_AnswerPersists(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	svc := newTestService(t, kv, nil)

	res, err := svc.Dispatch(ctx, Answer{Exercise: 0, Option: 3})
	require.NoError(t, err)
	require.NotNil(t, res.Feedback)
	assert.True(t, res.Feedback.Correct)
	assert.Equal(t, 1, res.State.Score)

	// A fresh session over the same backend sees the saved progress.
	again := newTestService(t, kv, nil)
	assert.True(t, again.State().IsCompleted(0))
	assert.Equal(t, 1, again.State().Score)
}

func TestDispatch_AnswerLocksExercise(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryKV(), nil)

	_, ok := svc.Locked(1)
	assert.False(t, ok)

	_, err := svc.Dispatch(ctx, Answer{Exercise: 1, Option: 2})
	require.NoError(t, err)

	lock, ok := svc.Locked(1)
	require.True(t, ok)
	assert.Equal(t, Lock{Option: 2, Correct: false}, lock)

	res, err := svc.Dispatch(ctx, Answer{Exercise: 1, Option: 0})
	assert.ErrorIs(t, err, ErrLocked)
	assert.Nil(t, res.Feedback)
	assert.False(t, svc.State().IsCompleted(1))
	lock, _ = svc.Locked(1)
	assert.Equal(t, 2, lock.Option, "first answer keeps the lock")

	_, err = svc.Dispatch(ctx, Reset{})
	require.NoError(t, err)
	res, err = svc.Dispatch(ctx, Answer{Exercise: 1, Option: 0})
	require.NoError(t, err)
	assert.True(t, res.Feedback.Correct)
}

func TestDispatch_AnswerCompletedInEarlierSession(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	first := newTestService(t, kv, nil)
	_, err := first.Dispatch(ctx, Answer{Exercise: 0, Option: 3})
	require.NoError(t, err)

	second := newTestService(t, kv, nil)
	_, err = second.Dispatch(ctx, Answer{Exercise: 0, Option: 1})
	assert.ErrorIs(t, err, ErrLocked)
	assert.Equal(t, 0, second.Summary().Answers)
}

func TestDispatch_ConcurrentAnswersOneExercise(t *testing.T) {
	ctx := context.Background()
	events := &countingEvents{}
	svc := newTestService(t, store.NewMemoryKV(), events)

	const workers = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted []int
		locked   int
	)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			opt := i % 4
			_, err := svc.Dispatch(ctx, Answer{Exercise: 0, Option: opt})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted = append(accepted, opt)
			case errors.Is(err, ErrLocked):
				locked++
			}
		}()
	}
	wg.Wait()

	require.Len(t, accepted, 1)
	assert.Equal(t, workers-1, locked)
	assert.Equal(t, 1, events.count())
	assert.Equal(t, 1, svc.Summary().Answers)

	lock, ok := svc.Locked(0)
	require.True(t, ok)
	assert.Equal(t, accepted[0], lock.Option)
	assert.Equal(t, accepted[0] == 3, svc.State().IsCompleted(0))
}

func TestLocked_CompletedInEarlierSession(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	first := newTestService(t, kv, nil)
	_, err := first.Dispatch(ctx, Answer{Exercise: 2, Option: 1})
	require.NoError(t, err)

	second := newTestService(t, kv, nil)
	lock, ok := second.Locked(2)
	require.True(t, ok)
	assert.Equal(t, Lock{Option: 1, Correct: true}, lock)
}

func TestDispatch_InvalidAnswerLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	svc := newTestService(t, kv, nil)

	_, err := svc.Dispatch(ctx, Answer{Exercise: 99, Option: 0})
	assert.ErrorIs(t, err, exercise.ErrExerciseOutOfRange)

	_, err = svc.Dispatch(ctx, Answer{Exercise: 0, Option: 9})
	assert.ErrorIs(t, err, exercise.ErrOptionOutOfRange)

	assert.True(t, svc.State().Equal(progress.Default()))
	_, getErr := kv.Get(ctx, progress.DefaultSnapshotKey)
	assert.ErrorIs(t, getErr, store.ErrNotFound, "rejected actions must not write")
}

func TestDispatch_ToggleAndReset(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	svc := newTestService(t, kv, nil)

	_, err := svc.Dispatch(ctx, ToggleTopic{TopicID: "basics"})
	require.NoError(t, err)
	_, err = svc.Dispatch(ctx, Answer{Exercise: 0, Option: 3})
	require.NoError(t, err)
	_, err = svc.Dispatch(ctx, SubmitChallenge{Challenge: 2, Code: strings.Repeat("x", 80)})
	require.NoError(t, err)

	st := svc.State()
	assert.True(t, st.IsTopicDone("basics"))
	assert.Equal(t, 3, st.ChallengeScore)

	res, err := svc.Dispatch(ctx, Reset{})
	require.NoError(t, err)
	assert.True(t, res.State.Equal(progress.Default()))
	_, locked := svc.Locked(0)
	assert.False(t, locked, "reset unlocks every exercise")

	reloaded := newTestService(t, kv, nil)
	assert.True(t, reloaded.State().Equal(progress.Default()))
}

func TestDispatch_SubmitChallenge(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryKV(), nil)

	res, err := svc.Dispatch(ctx, SubmitChallenge{Challenge: 0, Code: "fmt.Println()"})
	require.NoError(t, err)
	assert.False(t, res.ChallengeCounted)
	assert.Equal(t, 0, res.State.ChallengeScore)

	res, err = svc.Dispatch(ctx, SubmitChallenge{Challenge: 1, Code: strings.Repeat("y", 51)})
	require.NoError(t, err)
	assert.True(t, res.ChallengeCounted)
	assert.Equal(t, 2, res.State.ChallengeScore)

	_, err = svc.Dispatch(ctx, SubmitChallenge{Challenge: 3, Code: strings.Repeat("y", 51)})
	assert.ErrorIs(t, err, exercise.ErrChallengeOutOfRange)
}

func TestDispatch_SelectTab(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	svc := newTestService(t, kv, nil)
	assert.Equal(t, DefaultTab, svc.Tab())

	res, err := svc.Dispatch(ctx, SelectTab{Tab: TabRoadmap})
	require.NoError(t, err)
	assert.Equal(t, TabRoadmap, res.Tab)

	_, err = svc.Dispatch(ctx, SelectTab{Tab: "settings"})
	assert.ErrorIs(t, err, ErrUnknownTab)
	assert.Equal(t, TabRoadmap, svc.Tab())

	reloaded := newTestService(t, kv, nil)
	assert.Equal(t, TabRoadmap, reloaded.Tab())
}

func TestNew_IgnoresUnknownStoredTab(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, progress.DefaultTabKey, "os-linux"))

	svc := newTestService(t, kv, nil)
	assert.Equal(t, DefaultTab, svc.Tab())
}

type bogusAction struct{}

func (bogusAction) actionName() string { return "bogus" }

func TestDispatch_UnknownAction(t *testing.T) {
	svc := newTestService(t, store.NewMemoryKV(), nil)
	_, err := svc.Dispatch(context.Background(), bogusAction{})
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestDispatch_RecordsAnswerEvents(t *testing.T) {
	ctx := context.Background()
	db, err := store.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := newTestService(t, db.KV(), db.EventRepo())
	_, err = svc.Dispatch(ctx, Answer{Exercise: 1, Option: 2})
	require.NoError(t, err)
	_, err = svc.Dispatch(ctx, Answer{Exercise: 1, Option: 0})
	require.ErrorIs(t, err, ErrLocked)
	_, err = svc.Dispatch(ctx, Answer{Exercise: 0, Option: 3})
	require.NoError(t, err)

	events, err := db.EventRepo().QueryAnswerEvents(ctx, store.QueryOpts{SessionID: svc.ID()})
	require.NoError(t, err)
	require.Len(t, events, 2, "rejected answers are not recorded")
	assert.Equal(t, 0, events[0].ExerciseIndex)
	assert.True(t, events[0].Correct)
	assert.True(t, events[0].NewlyCompleted)
	assert.Equal(t, 1, events[1].ExerciseIndex)
	assert.False(t, events[1].Correct)
	assert.Equal(t, 2, events[1].ChosenIndex)
}

type failingEvents struct{}

func (failingEvents) AppendAnswerEvent(context.Context, store.AnswerEventData) error {
	return errors.New("disk full")
}

func (failingEvents) QueryAnswerEvents(context.Context, store.QueryOpts) ([]store.AnswerEventRecord, error) {
	return nil, nil
}

func (failingEvents) AnswerStats(context.Context) ([]store.ExerciseStats, error) {
	return nil, nil
}

type countingEvents struct {
	failingEvents
	mu sync.Mutex
	n  int
}

func (c *countingEvents) AppendAnswerEvent(context.Context, store.AnswerEventData) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return nil
}

func (c *countingEvents) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func TestDispatch_EventFailureDoesNotFailAnswer(t *testing.T) {
	svc := newTestService(t, store.NewMemoryKV(), failingEvents{})
	res, err := svc.Dispatch(context.Background(), Answer{Exercise: 0, Option: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, res.State.Score)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryKV(), nil)

	for _, a := range []Answer{{0, 3}, {1, 2}, {2, 1}} {
		_, err := svc.Dispatch(ctx, a)
		require.NoError(t, err)
	}
	_, err := svc.Dispatch(ctx, Answer{Exercise: 2, Option: 1})
	require.ErrorIs(t, err, ErrLocked)
	_, err = svc.Dispatch(ctx, ToggleTopic{TopicID: "errors"})
	require.NoError(t, err)

	sum := svc.Summary()
	assert.Equal(t, svc.ID(), sum.SessionID)
	assert.Equal(t, 3, sum.Answers)
	assert.Equal(t, 2, sum.Correct)
	assert.Equal(t, 2, sum.NewlyCompleted)
	assert.Equal(t, 1, sum.TopicToggles)
	assert.InDelta(t, 2.0/3.0, sum.Accuracy, 1e-9)
}

func TestDispatch_ConcurrentActionsKeepInvariant(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, store.NewMemoryKV(), nil)
	bank := svc.Bank()

	var wg sync.WaitGroup
	for i := 0; i < bank.Len(); i++ {
		rec, _ := bank.Exercise(i)
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = svc.Dispatch(ctx, Answer{Exercise: i, Option: rec.CorrectIndex})
			}()
		}
	}
	wg.Wait()

	st := svc.State()
	assert.Equal(t, bank.Len(), st.Score)
	assert.Equal(t, len(st.Completed), st.Score)
}

func TestClosePersistsTab(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	svc := newTestService(t, kv, nil)
	_, err := svc.Dispatch(ctx, SelectTab{Tab: TabProgress})
	require.NoError(t, err)

	svc.Close(ctx)

	tab, err := kv.Get(ctx, progress.DefaultTabKey)
	require.NoError(t, err)
	assert.Equal(t, TabProgress, tab)
	_, err = kv.Get(ctx, progress.DefaultSnapshotKey)
	assert.NoError(t, err)
}
