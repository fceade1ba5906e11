package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/studentlife/taskboard/internal/errors"
	"github.com/studentlife/taskboard/internal/middleware"
	"github.com/studentlife/taskboard/internal/models"
	"github.com/studentlife/taskboard/internal/services"
)

// TaskHandler serves task CRUD, assignment, statistics and CSV export.
type TaskHandler struct {
	tasks *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// ListTasks returns every task with creator, department and assignees
// expanded.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.tasks.ListTasks()
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// ListMyTasks returns the caller's assignments, newest update first.
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	entries, err := h.tasks.ListMyTasks(userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// CreateTask creates a task; the caller becomes the creator unless the
// request names one.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title        string     `json:"title" binding:"required"`
		Details      string     `json:"details"`
		DueAt        *time.Time `json:"due_at" binding:"required"`
		Priority     string     `json:"priority"`
		DepartmentID *string    `json:"department_id"`
		CreatedBy    string     `json:"created_by"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, "Invalid request body")
		return
	}

	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy, _ = middleware.GetUserID(c)
	}

	task, err := h.tasks.CreateTask(services.CreateTaskInput{
		Title:        req.Title,
		Details:      req.Details,
		DueAt:        *req.DueAt,
		Priority:     models.TaskPriority(req.Priority),
		DepartmentID: req.DepartmentID,
		CreatedBy:    createdBy,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// AssignTask replaces the task's whole assignment set. An empty list
// clears it.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	type AssignRequest struct {
		UserIDs []string `json:"user_ids"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, "Invalid request body")
		return
	}

	assignments, err := h.tasks.AssignTask(c.Param("id"), req.UserIDs)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// UpdateStatus sets the caller's assignment status for a task. Admins may
// act as a proxy for another assignee.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		UserID string `json:"user_id"`
		Status string `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, "Invalid request body")
		return
	}

	callerID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetRole(c)

	userID := req.UserID
	if userID == "" {
		userID = callerID
	}
	if userID != callerID && role != models.RoleAdmin {
		apierrors.Forbidden(c, "Only the assignee or an admin can update this status")
		return
	}

	assignment, err := h.tasks.UpdateTaskStatus(c.Param("id"), userID, models.AssignmentStatus(req.Status))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// UpdateTask shallow-merges patch fields into a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	type UpdateTaskRequest struct {
		Title        *string    `json:"title"`
		Details      *string    `json:"details"`
		DueAt        *time.Time `json:"due_at"`
		Priority     *string    `json:"priority"`
		DepartmentID *string    `json:"department_id"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:        req.Title,
		Details:      req.Details,
		DueAt:        req.DueAt,
		DepartmentID: req.DepartmentID,
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	task, err := h.tasks.UpdateTask(c.Param("id"), input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task and its assignments; absent IDs succeed.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.tasks.DeleteTask(c.Param("id")); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted",
	})
}

// Stats aggregates assignment rows by status; non-admins always get their
// own slice.
func (h *TaskHandler) Stats(c *gin.Context) {
	callerID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetRole(c)

	userID := c.Query("user_id")
	if role != models.RoleAdmin {
		userID = callerID
	}

	stats, err := h.tasks.GetTaskStats(userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportCSV streams the task table as a CSV document.
func (h *TaskHandler) ExportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="tasks.csv"`)

	if err := h.tasks.ExportCSV(c.Writer); err != nil {
		apierrors.InternalError(c, "Failed to export tasks")
	}
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleAndDueRequired),
		errors.Is(err, services.ErrTaskIDRequired),
		errors.Is(err, services.ErrUserIDRequired),
		errors.Is(err, services.ErrStatusRequired),
		errors.Is(err, services.ErrStatusUnknown),
		errors.Is(err, services.ErrPriorityUnknown):
		apierrors.Validation(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrAssignmentNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
