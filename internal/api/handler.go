// Package api serves the learner's session over a JSON HTTP API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/golearn/internal/exercise"
	"github.com/abhisek/golearn/internal/session"
)

// Handler serves API requests against one session.
type Handler struct {
	svc    *session.Service
	logger *slog.Logger
}

// NewHandler creates a Handler for svc.
func NewHandler(svc *session.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger.With("component", "api")}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// dispatchError maps session and bank errors to HTTP responses.
func (h *Handler) dispatchError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, exercise.ErrExerciseOutOfRange),
		errors.Is(err, exercise.ErrOptionOutOfRange),
		errors.Is(err, exercise.ErrChallengeOutOfRange),
		errors.Is(err, session.ErrUnknownTab):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrLocked):
		Error(w, http.StatusConflict, "exercise already answered; reset to try again")
	default:
		h.logger.ErrorContext(r.Context(), "dispatch failed", "path", r.URL.Path, "error", err)
		Error(w, http.StatusInternalServerError, "internal error")
	}
}

// decode reads a JSON request body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func pathIndex(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	return n, err == nil
}
