package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard-hq/taskboard-backend/pkg/client"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_LoginPersistsSession(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice@example.com", body["email"])

		writeJSON(w, http.StatusOK, map[string]string{"token": "signed-token", "role": "user"})
	})

	store := &client.MemorySessionStore{}
	c, err := client.New(srv.URL, store)
	require.NoError(t, err)

	require.NoError(t, c.Login(context.Background(), "alice@example.com", "p"))

	session := c.Session()
	assert.Equal(t, "signed-token", session.Token)
	assert.Equal(t, "user", session.Role)
	assert.True(t, session.Valid())

	// Store saw the same session the client holds.
	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, session, saved)
}

func TestClient_HydratesFromStore(t *testing.T) {
	var gotAuth string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, []map[string]any{})
	})

	store := &client.MemorySessionStore{}
	require.NoError(t, store.Save(client.Session{Token: "persisted", Role: "admin"}))

	c, err := client.New(srv.URL, store)
	require.NoError(t, err)
	assert.Equal(t, "admin", c.Session().Role)

	_, err = c.Tasks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer persisted", gotAuth)
}

func TestClient_LogoutClearsEverywhere(t *testing.T) {
	store := &client.MemorySessionStore{}
	require.NoError(t, store.Save(client.Session{Token: "tok", Role: "user"}))

	c, err := client.New("http://127.0.0.1:0", store)
	require.NoError(t, err)
	require.True(t, c.Session().Valid())

	require.NoError(t, c.Logout())
	assert.False(t, c.Session().Valid())

	saved, err := store.Load()
	require.NoError(t, err)
	assert.False(t, saved.Valid())
}

func TestClient_ServerErrorsSurfaceVerbatim(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": true, "message": "title and description are required",
		})
	})

	c, err := client.New(srv.URL, nil)
	require.NoError(t, err)

	_, err = c.CreateTask(context.Background(), client.CreateTaskInput{})
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "title and description are required", apiErr.Message)
}

func TestClient_TaskRoundTrip(t *testing.T) {
	taskID := uuid.New()
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/tasks":
			var input map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
			assert.Equal(t, "Ship it", input["title"])
			// Patch-style omitempty: absent optional fields stay absent.
			assert.NotContains(t, input, "assignedTo")

			writeJSON(w, http.StatusCreated, map[string]any{
				"message": "Task created successfully",
				"task": map[string]any{
					"id": taskID, "title": "Ship it", "status": "pending", "priority": "medium",
					"createdBy": map[string]any{"name": "Alice", "email": "alice@example.com"},
				},
			})

		case r.Method == http.MethodPut && r.URL.Path == "/api/v1/tasks/"+taskID.String():
			var patch map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
			assert.Equal(t, "completed", patch["status"])
			assert.NotContains(t, patch, "title")

			writeJSON(w, http.StatusOK, map[string]any{
				"message": "Task updated successfully",
				"task":    map[string]any{"id": taskID, "title": "Ship it", "status": "completed"},
			})

		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/tasks/"+taskID.String():
			writeJSON(w, http.StatusOK, map[string]any{"message": "Task deleted successfully"})

		default:
			writeJSON(w, http.StatusNotFound, map[string]any{"error": true, "message": "not found"})
		}
	})

	c, err := client.New(srv.URL, nil)
	require.NoError(t, err)
	ctx := context.Background()

	created, err := c.CreateTask(ctx, client.CreateTaskInput{Title: "Ship it", Description: "d"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, taskID, created.ID)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, "Alice", created.CreatedBy.Name)

	status := "completed"
	updated, err := c.UpdateTask(ctx, taskID, client.TaskPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)

	require.NoError(t, c.DeleteTask(ctx, taskID))
}

func TestFileSessionStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := client.NewFileSessionStore(path)

	t.Run("missing file is an empty session", func(t *testing.T) {
		s, err := store.Load()
		require.NoError(t, err)
		assert.False(t, s.Valid())
	})

	t.Run("save then load round-trips", func(t *testing.T) {
		require.NoError(t, store.Save(client.Session{Token: "tok", Role: "admin"}))

		s, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "tok", s.Token)
		assert.Equal(t, "admin", s.Role)
	})

	t.Run("clear removes the file, clearing twice is fine", func(t *testing.T) {
		require.NoError(t, store.Clear())
		require.NoError(t, store.Clear())

		s, err := store.Load()
		require.NoError(t, err)
		assert.False(t, s.Valid())
	})
}
