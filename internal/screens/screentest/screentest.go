// Package screentest holds helpers shared by the screen tests.
package screentest

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/golearn/internal/exercise"
	"github.com/abhisek/golearn/internal/progress"
	"github.com/abhisek/golearn/internal/session"
	"github.com/abhisek/golearn/internal/store"
)

// NewSession returns a session over the built-in bank and an in-memory
// backend.
func NewSession(t *testing.T) *session.Service {
	t.Helper()
	return NewSessionWithKV(t, store.NewMemoryKV())
}

// NewSessionWithKV returns a session over the built-in bank and kv.
func NewSessionWithKV(t *testing.T, kv store.KV) *session.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bank := exercise.Default()
	ps := progress.NewStore(kv, progress.Options{
		Limits: progress.Limits{Exercises: bank.Len(), Challenges: bank.ChallengeCount()},
		Logger: logger,
	})
	return session.New(context.Background(), bank, ps, nil, logger)
}

// Key builds a key press for a printable rune.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special builds a key press for a non-printable key such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Ctrl builds a ctrl+<r> key press.
func Ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

// Type sends each rune of s as a key press through update.
func Type(s string, update func(tea.Msg)) {
	for _, r := range s {
		update(Key(r))
	}
}
