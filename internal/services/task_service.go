package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/studentlife/taskboard/internal/dto"
	"github.com/studentlife/taskboard/internal/models"
	"github.com/studentlife/taskboard/internal/repository"
	"github.com/studentlife/taskboard/internal/store"
)

var (
	ErrTitleAndDueRequired = errors.New("title and due date are required")
	ErrTaskNotFound        = errors.New("task not found")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrTaskIDRequired      = errors.New("task ID required")
	ErrUserIDRequired      = errors.New("user ID required")
	ErrStatusRequired      = errors.New("status is required")
	ErrStatusUnknown       = errors.New("unrecognized status")
	ErrPriorityUnknown     = errors.New("unrecognized priority")
)

// TaskService owns task CRUD, per-assignee status records, aggregate
// statistics and the CSV export. Reference expansion is done here with
// linear joins over repository reads so both backends share one path.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	deptRepo repository.DepartmentRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, deptRepo repository.DepartmentRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, userRepo: userRepo, deptRepo: deptRepo}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title        string
	Details      string
	DueAt        time.Time
	Priority     models.TaskPriority
	DepartmentID *string
	CreatedBy    string
}

// UpdateTaskInput represents a shallow patch of task fields; nil fields
// are left untouched.
type UpdateTaskInput struct {
	Title        *string
	Details      *string
	DueAt        *time.Time
	Priority     *models.TaskPriority
	DepartmentID *string
}

// ListTasks returns every task expanded with creator, department and
// assignees.
func (s *TaskService) ListTasks() ([]dto.TaskDTO, error) {
	tasks, err := s.taskRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	expanded := make([]dto.TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		expanded = append(expanded, s.expandTask(t))
	}
	return expanded, nil
}

// ListMyTasks returns the user's assignments newest-updated first, each
// with its expanded task. Rows whose task no longer exists carry a null
// task rather than failing.
func (s *TaskService) ListMyTasks(userID string) ([]dto.MyTaskDTO, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	assignments, err := s.taskRepo.AssignmentsForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	sort.SliceStable(assignments, func(i, j int) bool {
		return assignments[i].UpdatedAt.After(assignments[j].UpdatedAt)
	})

	out := make([]dto.MyTaskDTO, 0, len(assignments))
	for _, a := range assignments {
		entry := dto.MyTaskDTO{Status: a.Status, UpdatedAt: a.UpdatedAt}
		if task, err := s.taskRepo.FindByID(a.TaskID); err == nil {
			expanded := s.expandTask(*task)
			entry.Task = &expanded
		}
		out = append(out, entry)
	}
	return out, nil
}

// CreateTask creates a task with defaults applied: priority normal,
// department the first existing one, creator the caller.
func (s *TaskService) CreateTask(input CreateTaskInput) (*dto.TaskDTO, error) {
	if strings.TrimSpace(input.Title) == "" || input.DueAt.IsZero() {
		return nil, ErrTitleAndDueRequired
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}
	if !priority.Valid() {
		return nil, ErrPriorityUnknown
	}

	departmentID := input.DepartmentID
	if departmentID == nil {
		if departments, err := s.deptRepo.List(); err == nil && len(departments) > 0 {
			departmentID = &departments[0].ID
		}
	}

	task := &models.Task{
		ID:           store.NewID(),
		Title:        strings.TrimSpace(input.Title),
		Details:      input.Details,
		DueAt:        input.DueAt,
		Priority:     priority,
		DepartmentID: departmentID,
		CreatedBy:    input.CreatedBy,
		CreatedAt:    time.Now(),
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	expanded := s.expandTask(*task)
	return &expanded, nil
}

// AssignTask replaces the task's entire assignment set. Every new row
// starts at pending; an empty user list leaves the task unassigned.
func (s *TaskService) AssignTask(taskID string, userIDs []string) ([]dto.AssignmentDTO, error) {
	if taskID == "" {
		return nil, ErrTaskIDRequired
	}
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	now := time.Now()
	unique := uniqueStrings(userIDs)
	assignments := make([]models.TaskAssignment, 0, len(unique))
	for _, userID := range unique {
		assignments = append(assignments, models.TaskAssignment{
			TaskID:    taskID,
			UserID:    userID,
			Status:    models.StatusPending,
			UpdatedAt: now,
		})
	}

	if err := s.taskRepo.ReplaceAssignments(taskID, assignments); err != nil {
		return nil, fmt.Errorf("failed to replace assignments: %w", err)
	}

	out := make([]dto.AssignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, s.expandAssignment(a))
	}
	return out, nil
}

// UpdateTaskStatus sets the status of one (task, user) assignment row and
// refreshes its timestamp.
func (s *TaskService) UpdateTaskStatus(taskID, userID string, status models.AssignmentStatus) (*dto.AssignmentDTO, error) {
	if taskID == "" {
		return nil, ErrTaskIDRequired
	}
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	if status == "" {
		return nil, ErrStatusRequired
	}
	if !status.Valid() {
		return nil, ErrStatusUnknown
	}

	assignment, err := s.taskRepo.FindAssignment(taskID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	assignment.Status = status
	assignment.UpdatedAt = time.Now()

	if err := s.taskRepo.UpdateAssignment(assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	expanded := s.expandAssignment(*assignment)
	return &expanded, nil
}

// UpdateTask shallow-merges the patch into an existing task.
func (s *TaskService) UpdateTask(taskID string, input UpdateTaskInput) (*dto.TaskDTO, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Details != nil {
		task.Details = *input.Details
	}
	if input.DueAt != nil {
		task.DueAt = *input.DueAt
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrPriorityUnknown
		}
		task.Priority = *input.Priority
	}
	if input.DepartmentID != nil {
		task.DepartmentID = input.DepartmentID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	expanded := s.expandTask(*task)
	return &expanded, nil
}

// DeleteTask removes the task and all its assignments. Deleting an absent
// ID succeeds silently.
func (s *TaskService) DeleteTask(taskID string) error {
	if taskID == "" {
		return ErrTaskIDRequired
	}
	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// GetTaskStats aggregates assignment rows by status, over all tasks or
// only the tasks where userID holds an assignment. Each assignment is one
// counted row; a task with no assignments counts as a single pending row.
// Overdue rows are past-due and not completed.
func (s *TaskService) GetTaskStats(userID string) (dto.TaskStats, error) {
	var stats dto.TaskStats

	tasks, err := s.taskRepo.List()
	if err != nil {
		return stats, fmt.Errorf("failed to list tasks: %w", err)
	}

	now := time.Now()
	for _, task := range tasks {
		assignments, err := s.taskRepo.AssignmentsForTask(task.ID)
		if err != nil {
			return stats, fmt.Errorf("failed to list assignments: %w", err)
		}

		if userID != "" && !hasAssignee(assignments, userID) {
			continue
		}

		overdue := task.DueAt.Before(now)

		if len(assignments) == 0 {
			stats.Total++
			stats.Pending++
			if overdue {
				stats.Overdue++
			}
			continue
		}

		for _, a := range assignments {
			if userID != "" && a.UserID != userID {
				continue
			}
			stats.Total++
			switch a.Status {
			case models.StatusPending:
				stats.Pending++
				if overdue {
					stats.Overdue++
				}
			case models.StatusInProgress:
				stats.InProgress++
				if overdue {
					stats.Overdue++
				}
			case models.StatusCompleted:
				stats.Completed++
			}
		}
	}

	return stats, nil
}

// ExportCSV writes every task as one CSV row: title, details, priority,
// due date, department name and the assignees' full names.
func (s *TaskService) ExportCSV(w io.Writer) error {
	tasks, err := s.ListTasks()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Title", "Details", "Priority", "Due Date", "Department", "Assigned To"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, t := range tasks {
		department := ""
		if t.Department != nil {
			department = t.Department.Name
		}
		names := make([]string, 0, len(t.Assignees))
		for _, a := range t.Assignees {
			if a.User != nil {
				names = append(names, a.User.FullName)
			}
		}

		row := []string{
			t.Title,
			t.Details,
			string(t.Priority),
			t.DueAt.Format("2006-01-02"),
			department,
			strings.Join(names, ", "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// expandTask resolves the task's references into embedded objects.
// Dangling references become nulls.
func (s *TaskService) expandTask(task models.Task) dto.TaskDTO {
	out := dto.TaskDTO{
		ID:        task.ID,
		Title:     task.Title,
		Details:   task.Details,
		DueAt:     task.DueAt,
		Priority:  task.Priority,
		CreatedAt: task.CreatedAt,
		Assignees: []dto.AssignmentDTO{},
	}

	if profile, err := s.userRepo.FindProfile(task.CreatedBy); err == nil {
		p := dto.ToProfileDTO(*profile)
		out.CreatedBy = &p
	}
	if task.DepartmentID != nil {
		if dept, err := s.deptRepo.FindByID(*task.DepartmentID); err == nil {
			d := dto.ToDepartmentDTO(*dept)
			out.Department = &d
		}
	}
	if assignments, err := s.taskRepo.AssignmentsForTask(task.ID); err == nil {
		for _, a := range assignments {
			out.Assignees = append(out.Assignees, s.expandAssignment(a))
		}
	}

	return out
}

func (s *TaskService) expandAssignment(a models.TaskAssignment) dto.AssignmentDTO {
	out := dto.AssignmentDTO{
		TaskID:    a.TaskID,
		UserID:    a.UserID,
		Status:    a.Status,
		UpdatedAt: a.UpdatedAt,
	}
	if profile, err := s.userRepo.FindProfile(a.UserID); err == nil {
		p := dto.ToProfileDTO(*profile)
		out.User = &p
	}
	return out
}

func hasAssignee(assignments []models.TaskAssignment, userID string) bool {
	for _, a := range assignments {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

// uniqueStrings removes duplicate values while keeping first-seen order.
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
