package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"taskify/internal/domain"
	"taskify/internal/middleware"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// withUser имитирует JWTAuthMiddleware
func withUser(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, id)
		c.Next()
	}
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), v))
}

func errorMessage(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decode(t, resp, &body)
	return body["error"]
}

func newTask(t *testing.T, title string, projectID int) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(title, "", domain.PriorityMedium, domain.StatusTodo, projectID, nil, nil)
	require.NoError(t, err)
	return task
}

func newProject(t *testing.T, id int, name string) *domain.Project {
	t.Helper()
	p, err := domain.NewProject(name, "", "#6366F1")
	require.NoError(t, err)
	p.SetID(id)
	return p
}

func newUser(t *testing.T, name, email string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(name, email, domain.RoleMember, domain.PositionBackendDeveloper, nil, nil)
	require.NoError(t, err)
	return u
}
