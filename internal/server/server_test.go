package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "taskify/docs"
	"taskify/internal/auth"
	"taskify/internal/events"
	"taskify/internal/handler"
	"taskify/internal/logger"
	"taskify/internal/model"
	"taskify/internal/repository"
	"taskify/internal/server"
	"taskify/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Project{}, &model.ProjectMember{}, &model.Task{}, &model.ActivityLog{}))

	log := logger.Nop()
	store := repository.NewStore(db)
	dispatcher := events.NewDispatcher(log, events.NewActivityRecorder(store.Activities()))
	coordinator := service.NewCoordinator(store, log,
		service.WithDispatcher(dispatcher),
		service.WithPasswordHasher(auth.BcryptHasher{Cost: bcrypt.MinCost}),
	)
	tokens := auth.NewTokenManager("test_secret", time.Hour)

	return server.NewRouter(log, tokens, server.Handlers{
		Auth:     handler.NewAuthHandler(coordinator, tokens),
		Tasks:    handler.NewTaskHandler(coordinator),
		Projects: handler.NewProjectHandler(coordinator),
		Team:     handler.NewTeamHandler(coordinator),
		Activity: handler.NewActivityHandler(coordinator),
	})
}

func call(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r http.Handler) string {
	t.Helper()
	w := call(r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp handler.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/api/tasks", "/api/projects", "/api/team/members", "/api/activity"} {
		w := call(r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRegisterLoginAndUseToken(t *testing.T) {
	r := newTestRouter(t)
	register(t, r)

	w := call(r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp handler.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = call(r, http.MethodGet, "/api/team/members", resp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var members []handler.MemberResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &members))
	require.Len(t, members, 1)
	assert.Equal(t, resp.User.ID, members[0].ID)
}

func TestProjectAndTaskFlow(t *testing.T) {
	r := newTestRouter(t)
	token := register(t, r)

	w := call(r, http.MethodPost, "/api/projects", token, map[string]interface{}{
		"name":  "Website",
		"color": "#3B82F6",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var project handler.ProjectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))

	w = call(r, http.MethodPost, "/api/tasks", token, map[string]interface{}{
		"title":     "Landing page",
		"projectId": project.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var task handler.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))

	w = call(r, http.MethodPatch, "/api/tasks/"+task.ID+"/status", token, map[string]int{"status": 3})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.NotNil(t, task.CompletedAt)

	w = call(r, http.MethodGet, "/api/tasks?projectId="+jsonInt(project.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page handler.TaskPageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.EqualValues(t, 1, page.Total)

	w = call(r, http.MethodGet, "/api/activity?limit=10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var feed []handler.ActivityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	assert.NotEmpty(t, feed)

	w = call(r, http.MethodDelete, "/api/projects/"+jsonInt(project.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = call(r, http.MethodGet, "/api/tasks/"+task.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSwaggerIsServed(t *testing.T) {
	r := newTestRouter(t)

	w := call(r, http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Taskify API")
}

func jsonInt(v int) string {
	b, _ := json.Marshal(v)
	return string(b)
}
