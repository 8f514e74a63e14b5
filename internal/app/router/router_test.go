package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task_backend/internal/app/di"
	authadapters "task_backend/internal/feature/auth/adapters"
	authentity "task_backend/internal/feature/auth/domain/entity"
	authhandler "task_backend/internal/feature/auth/transport/handler"
	authusecase "task_backend/internal/feature/auth/usecase"
	taskadapters "task_backend/internal/feature/tasks/adapters"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	taskusecase "task_backend/internal/feature/tasks/usecase"
	"task_backend/internal/platform/config"
	"task_backend/internal/platform/db"
	platformhandler "task_backend/internal/platform/http/handler"
	jwtmw "task_backend/internal/platform/jwt"
)

type envelope struct {
	Status       string          `json:"status"`
	Error        bool            `json:"error"`
	ResponseCode int             `json:"response_code"`
	Message      string          `json:"message"`
	Data         json.RawMessage `json:"data"`
	Token        string          `json:"token"`
}

type taskRow struct {
	ID         uint   `json:"id"`
	UserID     uint   `json:"user_id"`
	TaskName   string `json:"taskName"`
	Status     int    `json:"status"`
	DueDate    string `json:"dueDate"`
	TaskStatus string `json:"taskStatus"`
}

// newTestServer builds the full application on SQLite and miniredis.
func newTestServer(t *testing.T) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.Open(context.Background(), config.DB{
		Driver:         "sqlite",
		SQLitePath:     filepath.Join(t.TempDir(), "task.db"),
		RunMigrations:  true,
		ConnectTimeout: time.Second,
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	tokens := jwtmw.NewTokenService("router-test-secret", time.Hour, "task_backend", di.NewRevocationStore(rdb, gdb, "revoked"))
	authUC := authusecase.NewAuthUsecase(authadapters.NewUserGorm(gdb), tokens)
	taskUC := taskusecase.NewTaskUsecase(taskadapters.NewTaskGorm(gdb))

	r := NewRouter(
		authhandler.NewAuthHandler(authUC),
		taskhandler.NewTaskHandler(taskUC),
		platformhandler.NewHealthHandler(sqlDB),
		jwtmw.AuthRequired[*authentity.User](authUC),
		Options{},
	)
	return r, mr
}

func call(t *testing.T, r http.Handler, method, target, token string, body any) (int, envelope, []byte) {
	t.Helper()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, target, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w.Code, env, w.Body.Bytes()
}

func registerAndLogin(t *testing.T, r http.Handler, name, email string) string {
	t.Helper()
	code, env, _ := call(t, r, http.MethodPost, "/register", "", gin.H{"name": name, "email": email, "password": "secret1"})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env, _ = call(t, r, http.MethodPost, "/login", "", gin.H{"email": email, "password": "secret1"})
	require.Equal(t, http.StatusOK, code, env.Message)
	require.NotEmpty(t, env.Token)
	return env.Token
}

func TestRouter_EndToEnd(t *testing.T) {
	r, _ := newTestServer(t)

	// register
	code, env, raw := call(t, r, http.MethodPost, "/register", "", gin.H{"name": "Ann", "email": "ann@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "User created successfully", env.Message)
	assert.NotContains(t, string(raw), "password")
	var created struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "ann@x.com", created.Email)

	code, env, _ = call(t, r, http.MethodPost, "/register", "", gin.H{"name": "Ann", "email": "ann@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "The email has already been taken.", env.Message)

	// login
	code, env, _ = call(t, r, http.MethodPost, "/login", "", gin.H{"email": "ann@x.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Login credentials are invalid.", env.Message)

	code, env, _ = call(t, r, http.MethodPost, "/login", "", gin.H{"email": "ann@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Success.", env.Message)
	token := env.Token
	require.NotEmpty(t, token)

	// get_user resolves to the same user
	code, _, raw = call(t, r, http.MethodGet, "/get_user", token, nil)
	require.Equal(t, http.StatusOK, code)
	var me struct {
		User struct {
			ID    uint   `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(raw, &me))
	assert.Equal(t, created.ID, me.User.ID)

	// create five tasks
	dues := []string{"2025-01-03", "2025-01-01", "2025-01-05", "2025-01-02", "2025-01-04"}
	var taskIDs []uint
	for i, due := range dues {
		code, env, _ = call(t, r, http.MethodPost, "/create", token, gin.H{
			"taskName": fmt.Sprintf("task-%d", i), "description": "d", "dueDate": due,
		})
		require.Equal(t, http.StatusOK, code, env.Message)
		var row taskRow
		require.NoError(t, json.Unmarshal(env.Data, &row))
		assert.Equal(t, created.ID, row.UserID)
		assert.Equal(t, "Pending", row.TaskStatus)
		taskIDs = append(taskIDs, row.ID)
	}

	code, env, _ = call(t, r, http.MethodPost, "/create", token, gin.H{"taskName": "task-0", "description": "d", "dueDate": "2025-01-01"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "The task name has already been taken.", env.Message)

	// list paginated
	code, env, _ = call(t, r, http.MethodGet, "/tasks?paginationLimit=2", token, nil)
	require.Equal(t, http.StatusOK, code)
	var pages [][]taskRow
	require.NoError(t, json.Unmarshal(env.Data, &pages))
	require.Len(t, pages, 3)
	assert.Len(t, pages[0], 2)
	assert.Len(t, pages[1], 2)
	assert.Len(t, pages[2], 1)

	// list ordered by due date descending
	code, env, _ = call(t, r, http.MethodPost, "/tasks", token, gin.H{"orderBy": "dueDate", "sortBy": "desc"})
	require.Equal(t, http.StatusOK, code)
	var rows []taskRow
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 5)
	var gotDues []string
	for _, row := range rows {
		gotDues = append(gotDues, row.DueDate)
	}
	assert.Equal(t, []string{"2025-01-05", "2025-01-04", "2025-01-03", "2025-01-02", "2025-01-01"}, gotDues)

	// update
	code, env, _ = call(t, r, http.MethodPost, "/update", token, gin.H{
		"taskId": taskIDs[0], "taskName": "task-0", "description": "changed", "dueDate": "2025-02-01", "status": 1,
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, "Task updated Successfully", env.Message)

	code, env, _ = call(t, r, http.MethodGet, fmt.Sprintf("/tasks/%d", taskIDs[0]), token, nil)
	require.Equal(t, http.StatusOK, code)
	var shown taskRow
	require.NoError(t, json.Unmarshal(env.Data, &shown))
	assert.Equal(t, "Inprogress", shown.TaskStatus)
	assert.Equal(t, "2025-02-01", shown.DueDate)

	code, env, _ = call(t, r, http.MethodPost, "/update", token, gin.H{
		"taskId": taskIDs[0], "taskName": "task-1", "description": "d", "dueDate": "2025-02-01", "status": 1,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "The task name has already been taken.", env.Message)

	// filter by status, including 0
	code, env, _ = call(t, r, http.MethodGet, "/tasks?status=0", token, nil)
	require.Equal(t, http.StatusOK, code)
	rows = nil
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	assert.Len(t, rows, 4)

	// soft delete
	code, env, _ = call(t, r, http.MethodPost, "/delete", token, gin.H{"taskId": taskIDs[1], "isPermanentDelete": 0})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Task is temporarily deleted", env.Message)

	code, env, _ = call(t, r, http.MethodGet, fmt.Sprintf("/tasks/%d", taskIDs[1]), token, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &shown))
	assert.Equal(t, 3, shown.Status)
	assert.Equal(t, "Deleted", shown.TaskStatus)

	// hard delete
	code, env, _ = call(t, r, http.MethodPost, "/delete", token, gin.H{"taskId": taskIDs[2], "isPermanentDelete": 1})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Task is permanently deleted", env.Message)

	code, env, _ = call(t, r, http.MethodGet, fmt.Sprintf("/tasks/%d", taskIDs[2]), token, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Sorry! No task found", env.Message)

	code, env, _ = call(t, r, http.MethodPost, "/delete", token, gin.H{"taskId": taskIDs[2], "isPermanentDelete": 1})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Sorry! Task not found", env.Message)

	// logout with the token as a query parameter
	code, _, raw = call(t, r, http.MethodGet, "/logout?token="+token, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"success":true,"message":"User has been logged out"}`, string(raw))

	// the token is dead everywhere
	code, env, _ = call(t, r, http.MethodGet, "/get_user", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Token is Invalid", env.Message)

	code, env, _ = call(t, r, http.MethodGet, "/tasks", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Token is Invalid", env.Message)
}

func TestRouter_OwnershipIsNotEnforced(t *testing.T) {
	r, _ := newTestServer(t)

	annToken := registerAndLogin(t, r, "Ann", "ann@x.com")
	bobToken := registerAndLogin(t, r, "Bob", "bob@x.com")

	code, env, _ := call(t, r, http.MethodPost, "/create", annToken, gin.H{"taskName": "ann-task", "description": "d", "dueDate": "2025-01-01"})
	require.Equal(t, http.StatusOK, code)
	var row taskRow
	require.NoError(t, json.Unmarshal(env.Data, &row))

	// Bob sees, edits and deletes Ann's task.
	code, env, _ = call(t, r, http.MethodGet, "/tasks", bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	var rows []taskRow
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, row.ID, rows[0].ID)

	code, _, _ = call(t, r, http.MethodPost, "/update", bobToken, gin.H{
		"taskId": row.ID, "taskName": "ann-task", "description": "bob was here", "dueDate": "2025-01-01", "status": 2,
	})
	assert.Equal(t, http.StatusOK, code)

	code, _, _ = call(t, r, http.MethodPost, "/delete", bobToken, gin.H{"taskId": row.ID, "isPermanentDelete": 1})
	assert.Equal(t, http.StatusOK, code)

	// Task names are unique across users.
	code, _, _ = call(t, r, http.MethodPost, "/create", annToken, gin.H{"taskName": "shared", "description": "d", "dueDate": "2025-01-01"})
	require.Equal(t, http.StatusOK, code)
	code, env, _ = call(t, r, http.MethodPost, "/create", bobToken, gin.H{"taskName": "shared", "description": "d", "dueDate": "2025-01-01"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "The task name has already been taken.", env.Message)
}

func TestRouter_Gate(t *testing.T) {
	r, _ := newTestServer(t)
	token := registerAndLogin(t, r, "Ann", "ann@x.com")

	tests := []struct {
		name    string
		target  string
		token   string
		body    any
		code    int
		wantMsg string
	}{
		{name: "no token", target: "/get_user", code: http.StatusBadRequest, wantMsg: jwtmw.MsgTokenMissing},
		{name: "garbage token", target: "/get_user", token: "not.a.jwt", code: http.StatusBadRequest, wantMsg: jwtmw.MsgTokenInvalid},
		{name: "token in query", target: "/tasks?token=" + token, code: http.StatusOK, wantMsg: "All tasks List"},
		{name: "token in JSON body", target: "/tasks", body: gin.H{"token": token, "orderBy": "status"}, code: http.StatusOK, wantMsg: "All tasks List"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := http.MethodGet
			if tt.body != nil {
				method = http.MethodPost
			}
			code, env, _ := call(t, r, method, tt.target, tt.token, tt.body)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.wantMsg, env.Message)
		})
	}
}

func TestRouter_LogoutSharedThroughRedis(t *testing.T) {
	r, mr := newTestServer(t)
	token := registerAndLogin(t, r, "Ann", "ann@x.com")

	code, _, _ := call(t, r, http.MethodGet, "/logout", token, nil)
	require.Equal(t, http.StatusOK, code)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], "revoked:")
	assert.Greater(t, mr.TTL(keys[0]), time.Duration(0), "revocation expires with the token")
}

func TestRouter_Healthz(t *testing.T) {
	r, _ := newTestServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func TestRouter_CORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	health := platformhandler.NewHealthHandler(okPinger{})
	pass := func(c *gin.Context) { c.Next() }

	tests := []struct {
		name       string
		opts       Options
		wantOrigin string
	}{
		{name: "enabled", opts: Options{CORS: true}, wantOrigin: "*"},
		{name: "disabled", opts: Options{}, wantOrigin: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(nil, nil, health, pass, tt.opts)

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			req.Header.Set("Origin", "http://example.test")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
