package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusquest/internal/auth"
	"focusquest/internal/engine"
	"focusquest/internal/httpapi"
	"focusquest/internal/storage"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	st, err := storage.OpenSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	signer := auth.NewTokenSigner("test-secret", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httpapi.NewServer(engine.NewService(st), auth.NewService(st, signer), logger)
	return srv.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func register(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "longenough",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

type taskBody struct {
	Task struct {
		ID          string  `json:"id"`
		Title       string  `json:"title"`
		Difficulty  string  `json:"difficulty"`
		Completed   bool    `json:"completed"`
		CompletedAt *string `json:"completedAt"`
	} `json:"task"`
	User *struct {
		XP    int `json:"xp"`
		Level int `json:"level"`
	} `json:"user"`
	XPAwarded int  `json:"xpAwarded"`
	LevelUp   bool `json:"levelUp"`
}

func TestAuthRequired(t *testing.T) {
	h := newTestHandler(t)

	for _, path := range []string{"/api/user", "/api/tasks", "/api/tasks/some-id"} {
		rec := doJSON(t, h, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := doJSON(t, h, http.MethodGet, "/api/tasks", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "kai@example.com",
		"password": "longenough",
		"name":     "Kai",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var reg struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"user"`
	}
	decode(t, rec, &reg)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "kai@example.com", reg.User.Email)
	assert.Equal(t, "Kai", reg.User.Name)

	rec = doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "kai@example.com",
		"password": "longenough",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "kai@example.com",
		"password": "longenough",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "kai@example.com",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTaskLifecycle(t *testing.T) {
	h := newTestHandler(t)
	token := register(t, h, "kai@example.com")

	rec := doJSON(t, h, http.MethodPost, "/api/tasks", token, map[string]string{
		"title":      "ship the report",
		"difficulty": "hard",
		"category":   "work",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created taskBody
	decode(t, rec, &created)
	require.NotEmpty(t, created.Task.ID)
	assert.False(t, created.Task.Completed)

	rec = doJSON(t, h, http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Tasks []json.RawMessage `json:"tasks"`
	}
	decode(t, rec, &list)
	assert.Len(t, list.Tasks, 1)

	rec = doJSON(t, h, http.MethodPut, "/api/tasks/"+created.Task.ID, token, map[string]bool{
		"completed": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var completed taskBody
	decode(t, rec, &completed)
	assert.True(t, completed.Task.Completed)
	assert.NotNil(t, completed.Task.CompletedAt)
	assert.Equal(t, 50, completed.XPAwarded)
	require.NotNil(t, completed.User)
	assert.Equal(t, 50, completed.User.XP)

	rec = doJSON(t, h, http.MethodGet, "/api/user", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile struct {
		User struct {
			XP    int `json:"xp"`
			Level int `json:"level"`
		} `json:"user"`
	}
	decode(t, rec, &profile)
	assert.Equal(t, 50, profile.User.XP)
	assert.Equal(t, 1, profile.User.Level)

	// Re-completing must not award again; the progression fields are
	// omitted entirely from the response.
	rec = doJSON(t, h, http.MethodPut, "/api/tasks/"+created.Task.ID, token, map[string]bool{
		"completed": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var raw map[string]json.RawMessage
	decode(t, rec, &raw)
	_, hasAward := raw["xpAwarded"]
	assert.False(t, hasAward, "re-completion response carried xpAwarded")

	rec = doJSON(t, h, http.MethodDelete, "/api/tasks/"+created.Task.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var del struct {
		Success bool `json:"success"`
	}
	decode(t, rec, &del)
	assert.True(t, del.Success)

	rec = doJSON(t, h, http.MethodGet, "/api/tasks/"+created.Task.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTaskRejectsBadInput(t *testing.T) {
	h := newTestHandler(t)
	token := register(t, h, "kai@example.com")

	rec := doJSON(t, h, http.MethodPost, "/api/tasks", token, map[string]string{
		"title":      "no category",
		"difficulty": "easy",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/tasks", token, map[string]string{
		"title":      "bad difficulty",
		"difficulty": "brutal",
		"category":   "work",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Tasks []json.RawMessage `json:"tasks"`
	}
	decode(t, rec, &list)
	assert.Empty(t, list.Tasks, "rejected creates must not persist")
}

func TestTasksAreScopedToOwner(t *testing.T) {
	h := newTestHandler(t)
	aliceToken := register(t, h, "alice@example.com")
	bobToken := register(t, h, "bob@example.com")

	rec := doJSON(t, h, http.MethodPost, "/api/tasks", aliceToken, map[string]string{
		"title":      "hers alone",
		"difficulty": "easy",
		"category":   "personal",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created taskBody
	decode(t, rec, &created)

	rec = doJSON(t, h, http.MethodGet, "/api/tasks/"+created.Task.ID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doJSON(t, h, http.MethodPut, "/api/tasks/"+created.Task.ID, bobToken, map[string]bool{"completed": true})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doJSON(t, h, http.MethodDelete, "/api/tasks/"+created.Task.ID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/tasks", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Tasks []json.RawMessage `json:"tasks"`
	}
	decode(t, rec, &list)
	assert.Empty(t, list.Tasks)
}

func TestUserEndpoint(t *testing.T) {
	h := newTestHandler(t)
	token := register(t, h, "kai@example.com")

	rec := doJSON(t, h, http.MethodPut, "/api/user", token, map[string]any{
		"addFocusMinutes": 25,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		User struct {
			XP                int    `json:"xp"`
			TotalFocusMinutes int    `json:"totalFocusMinutes"`
			Name              string `json:"name"`
			Energy            int    `json:"energy"`
		} `json:"user"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, 25, resp.User.TotalFocusMinutes)
	assert.Equal(t, 10, resp.User.XP)

	rec = doJSON(t, h, http.MethodPut, "/api/user", token, map[string]any{
		"addFocusMinutes": 25,
		"name":            "Nova",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/api/user", token, map[string]any{
		"name":   "Nova",
		"energy": 55,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	assert.Equal(t, "Nova", resp.User.Name)
	assert.Equal(t, 55, resp.User.Energy)

	// Progression fields in the body are simply not recognized.
	rec = doJSON(t, h, http.MethodPut, "/api/user", token, map[string]any{
		"xp": 9999,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	assert.Equal(t, 10, resp.User.XP)

	rec = doJSON(t, h, http.MethodPut, "/api/user", token, map[string]any{
		"energy": 150,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)
	token := register(t, h, "kai@example.com")

	rec := doJSON(t, h, http.MethodGet, "/api/auth/register", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/user", token, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = doJSON(t, h, http.MethodPatch, "/api/tasks", token, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
