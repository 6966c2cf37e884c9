// Handler tests exercising the full router over httptest, backed by a
// real store in a temp directory.
package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/en-arthur/initflow-be/internal/auth"
	"github.com/en-arthur/initflow-be/internal/sqlite"
	"github.com/en-arthur/initflow-be/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	store := sqlite.NewStore()
	err := store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Detach() })

	issuer, err := auth.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	return New(store, issuer, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// do runs a request against the router and returns the recorder.
func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

// signup registers a user and returns the bearer token.
func signup(t *testing.T, s *Server, email string) string {
	t.Helper()

	w := do(t, s, "POST", "/api/auth/signup", "", gin.H{
		"email":    email,
		"name":     "Test User",
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// createProject makes a project over the API and returns its id.
func createProject(t *testing.T, s *Server, token, name string) string {
	t.Helper()

	w := do(t, s, "POST", "/api/projects", token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var p types.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p.ProjectID
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestSignupAndLogin(t *testing.T) {
	s := newTestServer(t)

	token := signup(t, s, "alice@example.com")

	// /me resolves the principal from the token.
	w := do(t, s, "GET", "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me types.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "alice@example.com", me.Email)
	assert.NotContains(t, w.Body.String(), "password_hash")

	// Duplicate email is a conflict.
	w = do(t, s, "POST", "/api/auth/signup", "", gin.H{
		"email": "alice@example.com", "name": "Clone", "password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Login with correct and wrong credentials.
	w = do(t, s, "POST", "/api/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, "POST", "/api/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, s, "POST", "/api/auth/login", "", gin.H{
		"email": "ghost@example.com", "password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/auth/me", "/api/projects"} {
		w := do(t, s, "GET", path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := do(t, s, "GET", "/api/projects", "not-a-valid-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProjectLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := signup(t, s, "alice@example.com")

	id := createProject(t, s, token, "my-app")

	w := do(t, s, "GET", "/api/projects/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var p types.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, types.ProjectStatusDraft, p.Status)

	// Update name and status.
	w = do(t, s, "PUT", "/api/projects/"+id, token, gin.H{
		"name": "renamed", "status": types.ProjectStatusBuilding,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "renamed", p.Name)
	assert.Equal(t, types.ProjectStatusBuilding, p.Status)

	// Unknown status is rejected before it reaches the store.
	w = do(t, s, "PUT", "/api/projects/"+id, token, gin.H{"status": "launched"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, "DELETE", "/api/projects/"+id, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, s, "GET", "/api/projects/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectTierLimit(t *testing.T) {
	s := newTestServer(t)
	token := signup(t, s, "free@example.com")

	// Free tier allows one project.
	createProject(t, s, token, "first")
	w := do(t, s, "POST", "/api/projects", token, gin.H{"name": "second"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestProjectIsolation(t *testing.T) {
	s := newTestServer(t)
	aliceToken := signup(t, s, "alice@example.com")
	bobToken := signup(t, s, "bob@example.com")

	id := createProject(t, s, aliceToken, "private")

	w := do(t, s, "GET", "/api/projects/"+id, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, s, "PUT", "/api/projects/"+id+"/specs/design", bobToken, gin.H{"content": "hijack"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, s, "GET", "/api/projects", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestSpecEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := signup(t, s, "alice@example.com")
	id := createProject(t, s, token, "specced")

	// Seeded design document is at version 1.
	w := do(t, s, "GET", "/api/projects/"+id+"/specs/design", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sf types.SpecFile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sf))
	assert.Equal(t, int64(1), sf.Version)

	// Writing bumps the version and records a summary.
	w = do(t, s, "PUT", "/api/projects/"+id+"/specs/design", token, gin.H{
		"content": "design v2", "changes_summary": "reworked layout",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sf))
	assert.Equal(t, int64(2), sf.Version)

	w = do(t, s, "GET", "/api/projects/"+id+"/specs/design/versions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var versions []types.SpecVersion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &versions))
	require.Len(t, versions, 1)
	assert.Equal(t, int64(1), versions[0].Version)

	// Roll back to version 1.
	w = do(t, s, "POST", "/api/projects/"+id+"/specs/design/rollback", token, gin.H{
		"version_id": versions[0].VersionID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sf))
	assert.Equal(t, int64(3), sf.Version)
	assert.Equal(t, versions[0].Content, sf.Content)

	// Unknown file type is rejected.
	w = do(t, s, "GET", "/api/projects/"+id+"/specs/roadmap", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing content is a binding failure.
	w = do(t, s, "PUT", "/api/projects/"+id+"/specs/design", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := signup(t, s, "alice@example.com")
	id := createProject(t, s, token, "tasked")

	w := do(t, s, "POST", "/api/projects/"+id+"/tasks", token, gin.H{
		"agent_type": types.AgentBackend, "description": "scaffold API",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var task types.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.Equal(t, types.TaskStatusPending, task.Status)

	w = do(t, s, "GET", "/api/projects/"+id+"/tasks", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tasks []types.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	assert.Len(t, tasks, 1)

	w = do(t, s, "GET", fmt.Sprintf("/api/projects/%s/tasks/%s", id, task.TaskID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// The same task is not reachable through another project id.
	otherID := "00000000-0000-0000-0000-000000000000"
	w = do(t, s, "GET", fmt.Sprintf("/api/projects/%s/tasks/%s", otherID, task.TaskID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Unknown agent type is rejected.
	w = do(t, s, "POST", "/api/projects/"+id+"/tasks", token, gin.H{
		"agent_type": "sorcery", "description": "do magic",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := signup(t, s, "alice@example.com")
	id := createProject(t, s, token, "chatty")

	w := do(t, s, "POST", "/api/projects/"+id+"/chat", token, gin.H{"content": "build it"})
	require.Equal(t, http.StatusCreated, w.Code)
	var msg types.ChatMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	// Role defaults to user when omitted.
	assert.Equal(t, types.ChatRoleUser, msg.Role)

	w = do(t, s, "POST", "/api/projects/"+id+"/chat", token, gin.H{
		"role": types.ChatRoleAssistant, "content": "on it",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, s, "GET", "/api/projects/"+id+"/chat/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []types.ChatMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history, 2)
	assert.Equal(t, "build it", history[0].Content)

	// Unknown role is rejected.
	w = do(t, s, "POST", "/api/projects/"+id+"/chat", token, gin.H{
		"role": "narrator", "content": "meanwhile",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
