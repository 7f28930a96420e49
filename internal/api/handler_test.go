package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/golearn/internal/exercise"
	"github.com/abhisek/golearn/internal/progress"
	"github.com/abhisek/golearn/internal/session"
	"github.com/abhisek/golearn/internal/store"
)

func newTestServer(t *testing.T) (http.Handler, *store.MemoryKV) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bank := exercise.Default()
	kv := store.NewMemoryKV()
	ps := progress.NewStore(kv, progress.Options{
		Limits: progress.Limits{Exercises: bank.Len(), Challenges: bank.ChallengeCount()},
		Logger: logger,
	})
	svc := session.New(context.Background(), bank, ps, nil, logger)
	return NewRouter(NewHandler(svc, logger), RouterOptions{}), kv
}

func do(t *testing.T, h http.Handler, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	resp := w.Result()
	var got map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode %s %s response: %v", method, path, err)
	}
	return resp, got
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, map[string]string{"foo": "bar"})

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t)
	resp, body := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestListExercises_HidesAnswers(t *testing.T) {
	h, _ := newTestServer(t)
	resp, body := do(t, h, http.MethodGet, "/api/exercises", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := body["exercises"].([]any)
	assert.Len(t, list, 8)
	first := list[0].(map[string]any)
	assert.NotContains(t, first, "locked")
	assert.NotContains(t, first, "explanation")
}

func TestListExercises_Filter(t *testing.T) {
	h, _ := newTestServer(t)

	_, body := do(t, h, http.MethodGet, "/api/exercises?difficulty=advanced", "")
	assert.Len(t, body["exercises"].([]any), 2)

	resp, _ := do(t, h, http.MethodGet, "/api/exercises?difficulty=expert", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnswerExercise(t *testing.T) {
	h, kv := newTestServer(t)

	resp, body := do(t, h, http.MethodPost, "/api/exercises/0/answer", `{"option":3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fb := body["feedback"].(map[string]any)
	assert.Equal(t, true, fb["correct"])
	assert.True(t, strings.HasPrefix(fb["message"].(string), "Correct! "))
	prog := body["progress"].(map[string]any)
	assert.EqualValues(t, 1, prog["score"])

	raw, err := kv.Get(context.Background(), progress.DefaultSnapshotKey)
	require.NoError(t, err)
	assert.Contains(t, raw, `"completedExercises":[0]`)

	// Locked after the first answer.
	resp, _ = do(t, h, http.MethodPost, "/api/exercises/0/answer", `{"option":0}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	_, body = do(t, h, http.MethodGet, "/api/exercises/0", "")
	locked := body["locked"].(map[string]any)
	assert.EqualValues(t, 3, locked["correct_index"])
}

func TestAnswerExercise_ConcurrentRequests(t *testing.T) {
	h, _ := newTestServer(t)

	const requests = 16
	codes := make(chan int, requests)
	var wg sync.WaitGroup
	for i := range requests {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body := fmt.Sprintf(`{"option":%d}`, i%4)
			req := httptest.NewRequest(http.MethodPost, "/api/exercises/0/answer", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			codes <- w.Code
		}()
	}
	wg.Wait()
	close(codes)

	got := map[int]int{}
	for code := range codes {
		got[code]++
	}
	assert.Equal(t, map[int]int{http.StatusOK: 1, http.StatusConflict: requests - 1}, got)
}

func TestAnswerExercise_BadInput(t *testing.T) {
	h, _ := newTestServer(t)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"non-numeric index", "/api/exercises/x/answer", `{"option":1}`, http.StatusBadRequest},
		{"index out of range", "/api/exercises/42/answer", `{"option":1}`, http.StatusBadRequest},
		{"option out of range", "/api/exercises/1/answer", `{"option":7}`, http.StatusBadRequest},
		{"missing option", "/api/exercises/1/answer", `{}`, http.StatusBadRequest},
		{"malformed body", "/api/exercises/1/answer", `{"option":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestSubmitChallenge(t *testing.T) {
	h, _ := newTestServer(t)
	code, _ := json.Marshal(map[string]string{"code": strings.Repeat("fmt.Println(i)\n", 5)})

	resp, body := do(t, h, http.MethodPost, "/api/challenges/1/submit", string(code))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["counted"])
	assert.EqualValues(t, 2, body["progress"].(map[string]any)["challenge_score"])

	_, body = do(t, h, http.MethodGet, "/api/challenges", "")
	list := body["challenges"].([]any)
	assert.Equal(t, true, list[1].(map[string]any)["credited"])
	assert.Equal(t, false, list[2].(map[string]any)["credited"])

	resp, _ = do(t, h, http.MethodPost, "/api/challenges/9/submit", string(code))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestToggleTopicAndProgress(t *testing.T) {
	h, _ := newTestServer(t)

	resp, body := do(t, h, http.MethodPost, "/api/roadmap/basics/toggle", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["done"])

	_, body = do(t, h, http.MethodPost, "/api/roadmap/my-topic/toggle", "")
	assert.Equal(t, true, body["done"])

	_, body = do(t, h, http.MethodGet, "/api/roadmap", "")
	topics := body["topics"].([]any)
	last := topics[len(topics)-1].(map[string]any)
	assert.Equal(t, "my-topic", last["id"])

	_, body = do(t, h, http.MethodGet, "/api/progress", "")
	bd := body["breakdown"].(map[string]any)
	assert.EqualValues(t, 2, bd["roadmap_done"])

	_, body = do(t, h, http.MethodPost, "/api/roadmap/basics/toggle", "")
	assert.Equal(t, false, body["done"])
}

func TestReset(t *testing.T) {
	h, _ := newTestServer(t)
	do(t, h, http.MethodPost, "/api/exercises/2/answer", `{"option":1}`)
	do(t, h, http.MethodPost, "/api/roadmap/basics/toggle", "")

	resp, body := do(t, h, http.MethodPost, "/api/reset", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	prog := body["progress"].(map[string]any)
	assert.EqualValues(t, 0, prog["score"])
	assert.Empty(t, prog["completed"])
	assert.Empty(t, prog["roadmap"])

	// Reset unlocks exercises.
	resp, _ = do(t, h, http.MethodPost, "/api/exercises/2/answer", `{"option":1}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTab(t *testing.T) {
	h, kv := newTestServer(t)

	_, body := do(t, h, http.MethodGet, "/api/tab", "")
	assert.Equal(t, session.DefaultTab, body["tab"])

	resp, body := do(t, h, http.MethodPut, "/api/tab", `{"tab":"progress"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "progress", body["tab"])

	stored, err := kv.Get(context.Background(), progress.DefaultTabKey)
	require.NoError(t, err)
	assert.Equal(t, "progress", stored)

	resp, _ = do(t, h, http.MethodPut, "/api/tab", `{"tab":"settings"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotFound(t *testing.T) {
	h, _ := newTestServer(t)
	resp, body := do(t, h, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not found", body["error"])
}
