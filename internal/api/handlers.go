package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/golearn/internal/exercise"
	"github.com/abhisek/golearn/internal/quiz"
	"github.com/abhisek/golearn/internal/session"
)

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListExercises returns the bank, optionally filtered by ?difficulty=.
func (h *Handler) ListExercises(w http.ResponseWriter, r *http.Request) {
	d, err := exercise.ParseDifficulty(r.URL.Query().Get("difficulty"))
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	bank := h.svc.Bank()
	st := h.svc.State()
	views := []exerciseView{}
	for _, idx := range bank.FilterByDifficulty(d) {
		rec, _ := bank.Exercise(idx)
		views = append(views, newExerciseView(h.svc, idx, rec, st))
	}
	JSON(w, http.StatusOK, map[string]any{"exercises": views})
}

// GetExercise returns a single exercise.
func (h *Handler) GetExercise(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathIndex(r, "index")
	if !ok {
		Error(w, http.StatusBadRequest, "exercise index must be an integer")
		return
	}
	rec, err := h.svc.Bank().Exercise(idx)
	if err != nil {
		h.dispatchError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, newExerciseView(h.svc, idx, rec, h.svc.State()))
}

type answerRequest struct {
	Option *int `json:"option"`
}

// AnswerExercise evaluates {"option": n} for the exercise in the path.
// Exercises already answered this session are locked and answer 409.
func (h *Handler) AnswerExercise(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathIndex(r, "index")
	if !ok {
		Error(w, http.StatusBadRequest, "exercise index must be an integer")
		return
	}
	var req answerRequest
	if err := decode(w, r, &req); err != nil || req.Option == nil {
		Error(w, http.StatusBadRequest, `request body must be {"option": <index>}`)
		return
	}
	res, err := h.svc.Dispatch(r.Context(), session.Answer{Exercise: idx, Option: *req.Option})
	if err != nil {
		h.dispatchError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"feedback": newFeedbackView(*res.Feedback),
		"progress": newProgressView(h.svc.Bank(), res.State),
	})
}

// ListChallenges returns the coding challenges.
func (h *Handler) ListChallenges(w http.ResponseWriter, _ *http.Request) {
	st := h.svc.State()
	views := []challengeView{}
	for i, c := range h.svc.Bank().Challenges() {
		views = append(views, challengeView{
			Index:          i,
			Title:          c.Title,
			Description:    c.Description,
			ExpectedOutput: c.ExpectedOutput,
			Difficulty:     string(c.Difficulty),
			Credited:       st.ChallengeScore > i,
		})
	}
	JSON(w, http.StatusOK, map[string]any{"challenges": views})
}

type submitRequest struct {
	Code string `json:"code"`
}

// SubmitChallenge credits {"code": "..."} for the challenge in the path.
func (h *Handler) SubmitChallenge(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathIndex(r, "index")
	if !ok {
		Error(w, http.StatusBadRequest, "challenge index must be an integer")
		return
	}
	var req submitRequest
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, `request body must be {"code": "<source>"}`)
		return
	}

	res, err := h.svc.Dispatch(r.Context(), session.SubmitChallenge{Challenge: idx, Code: req.Code})
	if err != nil {
		h.dispatchError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"counted":  res.ChallengeCounted,
		"progress": newProgressView(h.svc.Bank(), res.State),
	})
}

// ListTopics returns the built-in roadmap plus any custom completed topics.
func (h *Handler) ListTopics(w http.ResponseWriter, _ *http.Request) {
	st := h.svc.State()
	views := []topicView{}
	for _, t := range quiz.DefaultTopics {
		views = append(views, topicView{ID: t.ID, Title: t.Title, Description: t.Description, Done: st.IsTopicDone(t.ID)})
	}
	for _, id := range st.RoadmapList() {
		if _, builtin := quiz.FindTopic(id); !builtin {
			views = append(views, topicView{ID: id, Title: id, Done: true})
		}
	}
	JSON(w, http.StatusOK, map[string]any{"topics": views})
}

// ToggleTopic flips the roadmap topic in the path.
func (h *Handler) ToggleTopic(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "topicID")
	res, err := h.svc.Dispatch(r.Context(), session.ToggleTopic{TopicID: id})
	if err != nil {
		h.dispatchError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"topic":    id,
		"done":     res.State.IsTopicDone(id),
		"progress": newProgressView(h.svc.Bank(), res.State),
	})
}

// GetProgress returns the state, overall percentage and breakdown.
func (h *Handler) GetProgress(w http.ResponseWriter, _ *http.Request) {
	bank := h.svc.Bank()
	st := h.svc.State()
	JSON(w, http.StatusOK, map[string]any{
		"progress":  newProgressView(bank, st),
		"breakdown": newBreakdownView(quiz.Breakdown(bank, st)),
	})
}

// Reset clears all progress.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Dispatch(r.Context(), session.Reset{})
	if err != nil {
		h.dispatchError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{"progress": newProgressView(h.svc.Bank(), res.State)})
}

// GetTab returns the active tab.
func (h *Handler) GetTab(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]any{"tab": h.svc.Tab(), "tabs": session.Tabs})
}

type tabRequest struct {
	Tab string `json:"tab"`
}

// PutTab records {"tab": "..."} as the active tab.
func (h *Handler) PutTab(w http.ResponseWriter, r *http.Request) {
	var req tabRequest
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, `request body must be {"tab": "<id>"}`)
		return
	}
	res, err := h.svc.Dispatch(r.Context(), session.SelectTab{Tab: req.Tab})
	if err != nil {
		h.dispatchError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{"tab": res.Tab})
}
