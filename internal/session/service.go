// Package session serializes user actions against the learner's progress.
// Every binder (terminal UI, HTTP API, CLI) goes through a Service, which
// applies one action at a time and persists the result before returning.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/golearn/internal/exercise"
	"github.com/abhisek/golearn/internal/progress"
	"github.com/abhisek/golearn/internal/quiz"
	"github.com/abhisek/golearn/internal/store"
)

// ErrUnknownTab is returned when SelectTab names a tab that does not exist.
var ErrUnknownTab = errors.New("unknown tab")

// ErrUnknownAction is returned for Action values Dispatch does not handle.
var ErrUnknownAction = errors.New("unknown action")

// ErrLocked is returned when an Answer targets an exercise that is already
// locked, either by an earlier answer or by completion in a prior session.
var ErrLocked = errors.New("exercise already answered")

// Result is the outcome of a dispatched action.
type Result struct {
	State progress.State
	Tab   string

	// Feedback is set for Answer.
	Feedback *quiz.Feedback

	// ChallengeCounted is set for SubmitChallenge.
	ChallengeCounted bool
}

// Lock records how an exercise was answered. Once locked, binders stop
// offering the exercise until the next reset.
type Lock struct {
	Option  int
	Correct bool
}

// Summary describes the activity of this session so far.
type Summary struct {
	SessionID         string
	Started           time.Time
	Duration          time.Duration
	Answers           int
	Correct           int
	Accuracy          float64
	NewlyCompleted    int
	ChallengesCounted int
	TopicToggles      int
}

// Service owns the progress state of one session.
type Service struct {
	mu sync.Mutex

	id       string
	bank     *exercise.Bank
	progress *progress.Store
	events   store.EventRepo // nil disables answer history
	logger   *slog.Logger

	state progress.State
	tab   string
	locks map[int]Lock

	started time.Time
	summary Summary
}

// New starts a session: it loads persisted progress and the last active tab.
// events may be nil.
func New(ctx context.Context, bank *exercise.Bank, ps *progress.Store, events store.EventRepo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New().String()

	s := &Service{
		id:       id,
		bank:     bank,
		progress: ps,
		events:   events,
		logger:   logger.With("component", "session", "session_id", id),
		state:    ps.Load(ctx),
		tab:      DefaultTab,
		locks:    make(map[int]Lock),
		started:  time.Now(),
	}
	if tab, ok := ps.LoadTab(ctx); ok && ValidTab(tab) {
		s.tab = tab
	}

	s.logger.Info("session started",
		"score", s.state.Score,
		"challenge_score", s.state.ChallengeScore,
		"tab", s.tab)
	return s
}

// ID returns the session id stamped on answer events.
func (s *Service) ID() string {
	return s.id
}

// Bank returns the question bank served by this session.
func (s *Service) Bank() *exercise.Bank {
	return s.bank
}

// State returns a copy of the current progress.
func (s *Service) State() progress.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Tab returns the active tab id.
func (s *Service) Tab() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

// Locked reports whether exercise index accepts no further answers. An
// exercise completed in an earlier session is locked on its correct option.
func (s *Service) Locked(index int) (Lock, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lockedLocked(index)
}

func (s *Service) lockedLocked(index int) (Lock, bool) {
	if l, ok := s.locks[index]; ok {
		return l, true
	}
	if s.state.IsCompleted(index) {
		rec, err := s.bank.Exercise(index)
		if err == nil {
			return Lock{Option: rec.CorrectIndex, Correct: true}, true
		}
	}
	return Lock{}, false
}

// Summary returns the activity counters for this session.
func (s *Service) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := s.summary
	sum.SessionID = s.id
	sum.Started = s.started
	sum.Duration = time.Since(s.started)
	if sum.Answers > 0 {
		sum.Accuracy = float64(sum.Correct) / float64(sum.Answers)
	}
	return sum
}

// Dispatch applies one action and persists the resulting state. Actions are
// fully processed in arrival order. On error the state is unchanged.
func (s *Service) Dispatch(ctx context.Context, action Action) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		res Result
		err error
	)
	switch a := action.(type) {
	case Answer:
		res, err = s.answer(ctx, a)
	case ToggleTopic:
		res = s.toggleTopic(ctx, a)
	case SubmitChallenge:
		res, err = s.submitChallenge(ctx, a)
	case Reset:
		res = s.reset(ctx)
	case SelectTab:
		res, err = s.selectTab(ctx, a)
	default:
		err = fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}
	if err != nil {
		s.logger.Debug("action rejected", "action", actionName(action), "error", err)
		return Result{State: s.state.Clone(), Tab: s.tab}, err
	}

	res.State = s.state.Clone()
	res.Tab = s.tab
	return res, nil
}

func (s *Service) answer(ctx context.Context, a Answer) (Result, error) {
	next, fb, err := quiz.Evaluate(s.bank, s.state, a.Exercise, a.Option)
	if err != nil {
		return Result{}, err
	}
	if _, locked := s.lockedLocked(a.Exercise); locked {
		return Result{}, fmt.Errorf("%w: exercise %d", ErrLocked, a.Exercise)
	}

	newlyCompleted := fb.Correct && !fb.AlreadyCompleted
	s.state = next
	s.locks[a.Exercise] = Lock{Option: a.Option, Correct: fb.Correct}

	s.summary.Answers++
	if fb.Correct {
		s.summary.Correct++
	}
	if newlyCompleted {
		s.summary.NewlyCompleted++
	}

	s.progress.Save(ctx, s.state)
	s.recordAnswer(ctx, a, fb.Correct, newlyCompleted)

	s.logger.Info("exercise answered",
		"exercise", a.Exercise,
		"option", a.Option,
		"correct", fb.Correct,
		"score", s.state.Score)
	return Result{Feedback: &fb}, nil
}

func (s *Service) recordAnswer(ctx context.Context, a Answer, correct, newlyCompleted bool) {
	if s.events == nil {
		return
	}
	err := s.events.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:      s.id,
		ExerciseIndex:  a.Exercise,
		ChosenIndex:    a.Option,
		Correct:        correct,
		NewlyCompleted: newlyCompleted,
	})
	if err != nil {
		s.logger.Warn("record answer event failed", "exercise", a.Exercise, "error", err)
	}
}

func (s *Service) toggleTopic(ctx context.Context, a ToggleTopic) Result {
	s.state = quiz.Toggle(s.state, a.TopicID)
	s.summary.TopicToggles++
	s.progress.Save(ctx, s.state)

	s.logger.Info("roadmap topic toggled", "topic", a.TopicID, "done", s.state.IsTopicDone(a.TopicID))
	return Result{}
}

func (s *Service) submitChallenge(ctx context.Context, a SubmitChallenge) (Result, error) {
	next, counted, err := quiz.SubmitChallenge(s.bank, s.state, a.Challenge, a.Code)
	if err != nil {
		return Result{}, err
	}
	if counted {
		s.state = next
		s.summary.ChallengesCounted++
		s.progress.Save(ctx, s.state)
	}

	s.logger.Info("challenge submitted",
		"challenge", a.Challenge,
		"counted", counted,
		"challenge_score", s.state.ChallengeScore)
	return Result{ChallengeCounted: counted}, nil
}

func (s *Service) reset(ctx context.Context) Result {
	s.state = s.progress.Reset(ctx)
	clear(s.locks)
	s.logger.Info("progress reset")
	return Result{}
}

func (s *Service) selectTab(ctx context.Context, a SelectTab) (Result, error) {
	if !ValidTab(a.Tab) {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownTab, a.Tab)
	}
	s.tab = a.Tab
	s.progress.SaveTab(ctx, a.Tab)
	return Result{}, nil
}

// Close persists the final state and tab. The service must not be used
// afterwards.
func (s *Service) Close(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress.Save(ctx, s.state)
	s.progress.SaveTab(ctx, s.tab)
	s.logger.Info("session ended",
		"answers", s.summary.Answers,
		"correct", s.summary.Correct,
		"duration", time.Since(s.started).Round(time.Second))
}

func actionName(a Action) string {
	if a == nil {
		return "<nil>"
	}
	return a.actionName()
}
