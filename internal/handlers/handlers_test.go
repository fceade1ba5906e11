package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/studentlife/taskboard/internal/constants"
	"github.com/studentlife/taskboard/internal/middleware"
	"github.com/studentlife/taskboard/internal/repository"
	"github.com/studentlife/taskboard/internal/services"
	"github.com/studentlife/taskboard/internal/store"
)

const (
	testAdminEmail    = "admin@x.com"
	testAdminPassword = "admin-pw"
)

type handlerTestEnv struct {
	router    *gin.Engine
	directory *services.DirectoryService
	taskSvc   *services.TaskService
}

// setupTestEnv wires the full route table over the local storage backend,
// mirroring the server's own setup.
func setupTestEnv(t *testing.T) *handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	st := store.Open(filepath.Join(t.TempDir(), "db.json"), store.Seed{
		AdminEmail:        testAdminEmail,
		AdminFullName:     "Admin User",
		AdminPasswordHash: string(hash),
		DepartmentName:    "General",
	}, zerolog.Nop())

	userRepo := repository.NewLocalUserRepository(st)
	deptRepo := repository.NewLocalDepartmentRepository(st)
	taskRepo := repository.NewLocalTaskRepository(st)
	msgRepo := repository.NewLocalMessageRepository(st)

	identityService := services.NewIdentityService(userRepo)
	directoryService := services.NewDirectoryService(userRepo, deptRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, deptRepo)
	messageService := services.NewMessageService(msgRepo, userRepo)

	authHandler := NewAuthHandler(identityService)
	directoryHandler := NewDirectoryHandler(directoryService)
	taskHandler := NewTaskHandler(taskService)
	messageHandler := NewMessageHandler(messageService)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(identityService), authHandler.Me)
			auth.PUT("/email", middleware.RequireAuth(identityService), authHandler.UpdateEmail)
			auth.PUT("/password", middleware.RequireAuth(identityService), authHandler.UpdatePassword)
			auth.PATCH("/profile", middleware.RequireAuth(identityService), authHandler.UpdateProfile)
		}

		departments := api.Group("/departments")
		departments.Use(middleware.RequireAuth(identityService))
		{
			departments.GET("", directoryHandler.ListDepartments)
			departments.POST("", middleware.RequireAdmin(), directoryHandler.CreateDepartment)
		}

		staff := api.Group("/staff")
		staff.Use(middleware.RequireAuth(identityService))
		{
			staff.GET("", directoryHandler.ListStaff)
			staff.GET("/assignable", directoryHandler.ListAssignable)
			staff.POST("", middleware.RequireAdmin(), directoryHandler.CreateStaff)
			staff.PATCH("/:id/role", middleware.RequireAdmin(), directoryHandler.UpdateStaffRole)
			staff.DELETE("/:id", middleware.RequireAdmin(), directoryHandler.DeleteStaff)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(identityService))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/my", taskHandler.ListMyTasks)
			tasks.GET("/stats", taskHandler.Stats)
			tasks.GET("/export.csv", taskHandler.ExportCSV)
			tasks.POST("", middleware.RequireAdmin(), taskHandler.CreateTask)
			tasks.PATCH("/:id", middleware.RequireAdmin(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireAdmin(), taskHandler.DeleteTask)
			tasks.POST("/:id/assign", middleware.RequireAdmin(), taskHandler.AssignTask)
			tasks.PATCH("/:id/status", taskHandler.UpdateStatus)
		}

		messages := api.Group("/messages")
		messages.Use(middleware.RequireAuth(identityService))
		{
			messages.POST("", messageHandler.Send)
			messages.GET("/with/:userID", messageHandler.Conversation)
			messages.GET("/admin/conversations", middleware.RequireAdmin(), messageHandler.AdminConversations)
		}
	}

	return &handlerTestEnv{
		router:    r,
		directory: directoryService,
		taskSvc:   taskService,
	}
}

// do runs one request with an optional JSON body and session cookies.
func (e *handlerTestEnv) do(t *testing.T, method, path string, payload any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// login authenticates and returns the session cookies for later requests.
func (e *handlerTestEnv) login(t *testing.T, email, password string) []*http.Cookie {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func (e *handlerTestEnv) loginAdmin(t *testing.T) []*http.Cookie {
	t.Helper()
	return e.login(t, testAdminEmail, testAdminPassword)
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
