package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/studentlife/taskboard/internal/models"
	"github.com/studentlife/taskboard/internal/repository"
	"github.com/studentlife/taskboard/internal/store"
)

const testAdminPassword = "pw1"

type testEnv struct {
	store     *store.Store
	users     repository.UserRepository
	depts     repository.DepartmentRepository
	tasks     repository.TaskRepository
	messages  repository.MessageRepository
	identity  *IdentityService
	directory *DirectoryService
	taskSvc   *TaskService
	msgSvc    *MessageService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	st := store.Open(filepath.Join(t.TempDir(), "db.json"), store.Seed{
		AdminEmail:        "admin@x.com",
		AdminFullName:     "Admin User",
		AdminPasswordHash: string(hash),
		DepartmentName:    "General",
	}, zerolog.Nop())

	users := repository.NewLocalUserRepository(st)
	depts := repository.NewLocalDepartmentRepository(st)
	tasks := repository.NewLocalTaskRepository(st)
	messages := repository.NewLocalMessageRepository(st)

	return &testEnv{
		store:     st,
		users:     users,
		depts:     depts,
		tasks:     tasks,
		messages:  messages,
		identity:  NewIdentityService(users),
		directory: NewDirectoryService(users, depts),
		taskSvc:   NewTaskService(tasks, users, depts),
		msgSvc:    NewMessageService(messages, users),
	}
}

// createStaff is a shorthand for the common fixture of an existing staff
// member.
func (e *testEnv) createStaff(t *testing.T, email, fullName string) *models.Profile {
	t.Helper()
	profile, err := e.directory.CreateStaffMember(CreateStaffInput{
		Email:    email,
		FullName: fullName,
	})
	require.NoError(t, err)
	return profile
}

// createTask is a shorthand for a task due tomorrow created by the admin.
func (e *testEnv) createTask(t *testing.T, title string) *models.Task {
	t.Helper()
	expanded, err := e.taskSvc.CreateTask(CreateTaskInput{
		Title:     title,
		DueAt:     time.Now().Add(24 * time.Hour),
		CreatedBy: store.SeedAdminID,
	})
	require.NoError(t, err)
	task, err := e.tasks.FindByID(expanded.ID)
	require.NoError(t, err)
	return task
}
