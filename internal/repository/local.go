package repository

import (
	"sort"
	"strings"

	"github.com/studentlife/taskboard/internal/models"
	"github.com/studentlife/taskboard/internal/store"
)

// Local repositories run against the snapshot store: linear scans over
// the in-memory collections, with every mutation mirrored to the durable
// slot by store.Update. Reads that feed freshness-sensitive decisions
// (duplicate-email checks, rosters, conversations) rehydrate first so a
// sibling process's writes become visible.

// LocalUserRepository is a snapshot-store implementation of UserRepository
type LocalUserRepository struct {
	store *store.Store
}

// NewLocalUserRepository creates a new UserRepository over the snapshot store
func NewLocalUserRepository(s *store.Store) UserRepository {
	return &LocalUserRepository{store: s}
}

func (r *LocalUserRepository) CreateWithProfile(user *models.User, profile *models.Profile) error {
	r.store.Update(func(db *store.Snapshot) {
		db.Users = append(db.Users, *user)
		db.Profiles = append(db.Profiles, *profile)
	})
	return nil
}

func (r *LocalUserRepository) FindByID(id string) (*models.User, error) {
	var found *models.User
	r.store.View(func(db *store.Snapshot) {
		for i := range db.Users {
			if db.Users[i].ID == id {
				u := db.Users[i]
				found = &u
				return
			}
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (r *LocalUserRepository) FindByEmail(email string) (*models.User, error) {
	var found *models.User
	r.store.View(func(db *store.Snapshot) {
		for i := range db.Users {
			if db.Users[i].Email == email {
				u := db.Users[i]
				found = &u
				return
			}
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (r *LocalUserRepository) FindFirstAdmin() (*models.User, error) {
	var found *models.User
	r.store.View(func(db *store.Snapshot) {
		for i := range db.Users {
			if db.Users[i].Role == models.RoleAdmin {
				u := db.Users[i]
				found = &u
				return
			}
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (r *LocalUserRepository) EmailTaken(email, excludeID string) (bool, error) {
	taken := false
	r.store.View(func(db *store.Snapshot) {
		for i := range db.Users {
			if db.Users[i].ID != excludeID && db.Users[i].Email == email {
				taken = true
				return
			}
		}
	})
	return taken, nil
}

func (r *LocalUserRepository) EmailTakenFold(email string) (bool, error) {
	// Re-read the slot so a recreate right after a delete elsewhere sees
	// the freed email.
	r.store.Rehydrate()

	needle := strings.ToLower(strings.TrimSpace(email))
	taken := false
	r.store.View(func(db *store.Snapshot) {
		for i := range db.Users {
			if strings.ToLower(strings.TrimSpace(db.Users[i].Email)) == needle {
				taken = true
				return
			}
		}
	})
	return taken, nil
}

func (r *LocalUserRepository) Update(user *models.User) error {
	err := ErrNotFound
	r.store.Update(func(db *store.Snapshot) {
		for i := range db.Users {
			if db.Users[i].ID == user.ID {
				db.Users[i] = *user
				err = nil
				return
			}
		}
	})
	return err
}

func (r *LocalUserRepository) DeleteWithProfile(id string) error {
	r.store.Update(func(db *store.Snapshot) {
		users := db.Users[:0]
		for _, u := range db.Users {
			if u.ID != id {
				users = append(users, u)
			}
		}
		db.Users = users

		profiles := db.Profiles[:0]
		for _, p := range db.Profiles {
			if p.ID != id {
				profiles = append(profiles, p)
			}
		}
		db.Profiles = profiles

		assignments := db.TaskAssignees[:0]
		for _, a := range db.TaskAssignees {
			if a.UserID != id {
				assignments = append(assignments, a)
			}
		}
		db.TaskAssignees = assignments
	})
	return nil
}

func (r *LocalUserRepository) FindProfile(id string) (*models.Profile, error) {
	var found *models.Profile
	r.store.View(func(db *store.Snapshot) {
		for i := range db.Profiles {
			if db.Profiles[i].ID == id {
				p := db.Profiles[i]
				found = &p
				return
			}
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (r *LocalUserRepository) ListProfiles() ([]models.Profile, error) {
	r.store.Rehydrate()

	var profiles []models.Profile
	r.store.View(func(db *store.Snapshot) {
		profiles = append([]models.Profile(nil), db.Profiles...)
	})
	return profiles, nil
}

func (r *LocalUserRepository) UpdateProfile(profile *models.Profile) error {
	err := ErrNotFound
	r.store.Update(func(db *store.Snapshot) {
		for i := range db.Profiles {
			if db.Profiles[i].ID == profile.ID {
				db.Profiles[i] = *profile
				err = nil
				return
			}
		}
	})
	return err
}

// LocalDepartmentRepository is a snapshot-store implementation of DepartmentRepository
type LocalDepartmentRepository struct {
	store *store.Store
}

// NewLocalDepartmentRepository creates a new DepartmentRepository over the snapshot store
func NewLocalDepartmentRepository(s *store.Store) DepartmentRepository {
	return &LocalDepartmentRepository{store: s}
}

func (r *LocalDepartmentRepository) List() ([]models.Department, error) {
	var departments []models.Department
	r.store.View(func(db *store.Snapshot) {
		departments = append([]models.Department(nil), db.Departments...)
	})
	return departments, nil
}

func (r *LocalDepartmentRepository) FindByID(id string) (*models.Department, error) {
	var found *models.Department
	r.store.View(func(db *store.Snapshot) {
		for i := range db.Departments {
			if db.Departments[i].ID == id {
				d := db.Departments[i]
				found = &d
				return
			}
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (r *LocalDepartmentRepository) Create(dept *models.Department) error {
	r.store.Update(func(db *store.Snapshot) {
		db.Departments = append(db.Departments, *dept)
	})
	return nil
}

// LocalTaskRepository is a snapshot-store implementation of TaskRepository
type LocalTaskRepository struct {
	store *store.Store
}

// NewLocalTaskRepository creates a new TaskRepository over the snapshot store
func NewLocalTaskRepository(s *store.Store) TaskRepository {
	return &LocalTaskRepository{store: s}
}

func (r *LocalTaskRepository) Create(task *models.Task) error {
	r.store.Update(func(db *store.Snapshot) {
		db.Tasks = append(db.Tasks, *task)
	})
	return nil
}

func (r *LocalTaskRepository) FindByID(id string) (*models.Task, error) {
	var found *models.Task
	r.store.View(func(db *store.Snapshot) {
		for i := range db.Tasks {
			if db.Tasks[i].ID == id {
				t := db.Tasks[i]
				found = &t
				return
			}
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (r *LocalTaskRepository) List() ([]models.Task, error) {
	var tasks []models.Task
	r.store.View(func(db *store.Snapshot) {
		tasks = append([]models.Task(nil), db.Tasks...)
	})
	return tasks, nil
}

func (r *LocalTaskRepository) Update(task *models.Task) error {
	err := ErrNotFound
	r.store.Update(func(db *store.Snapshot) {
		for i := range db.Tasks {
			if db.Tasks[i].ID == task.ID {
				db.Tasks[i] = *task
				err = nil
				return
			}
		}
	})
	return err
}

func (r *LocalTaskRepository) Delete(id string) error {
	r.store.Update(func(db *store.Snapshot) {
		tasks := db.Tasks[:0]
		for _, t := range db.Tasks {
			if t.ID != id {
				tasks = append(tasks, t)
			}
		}
		db.Tasks = tasks

		assignments := db.TaskAssignees[:0]
		for _, a := range db.TaskAssignees {
			if a.TaskID != id {
				assignments = append(assignments, a)
			}
		}
		db.TaskAssignees = assignments
	})
	return nil
}

func (r *LocalTaskRepository) AssignmentsForTask(taskID string) ([]models.TaskAssignment, error) {
	var assignments []models.TaskAssignment
	r.store.View(func(db *store.Snapshot) {
		for _, a := range db.TaskAssignees {
			if a.TaskID == taskID {
				assignments = append(assignments, a)
			}
		}
	})
	return assignments, nil
}

func (r *LocalTaskRepository) AssignmentsForUser(userID string) ([]models.TaskAssignment, error) {
	var assignments []models.TaskAssignment
	r.store.View(func(db *store.Snapshot) {
		for _, a := range db.TaskAssignees {
			if a.UserID == userID {
				assignments = append(assignments, a)
			}
		}
	})
	return assignments, nil
}

func (r *LocalTaskRepository) FindAssignment(taskID, userID string) (*models.TaskAssignment, error) {
	var found *models.TaskAssignment
	r.store.View(func(db *store.Snapshot) {
		for i := range db.TaskAssignees {
			if db.TaskAssignees[i].TaskID == taskID && db.TaskAssignees[i].UserID == userID {
				a := db.TaskAssignees[i]
				found = &a
				return
			}
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (r *LocalTaskRepository) ReplaceAssignments(taskID string, assignments []models.TaskAssignment) error {
	r.store.Update(func(db *store.Snapshot) {
		kept := db.TaskAssignees[:0]
		for _, a := range db.TaskAssignees {
			if a.TaskID != taskID {
				kept = append(kept, a)
			}
		}
		db.TaskAssignees = append(kept, assignments...)
	})
	return nil
}

func (r *LocalTaskRepository) UpdateAssignment(assignment *models.TaskAssignment) error {
	err := ErrNotFound
	r.store.Update(func(db *store.Snapshot) {
		for i := range db.TaskAssignees {
			if db.TaskAssignees[i].TaskID == assignment.TaskID && db.TaskAssignees[i].UserID == assignment.UserID {
				db.TaskAssignees[i] = *assignment
				err = nil
				return
			}
		}
	})
	return err
}

// LocalMessageRepository is a snapshot-store implementation of MessageRepository
type LocalMessageRepository struct {
	store *store.Store
}

// NewLocalMessageRepository creates a new MessageRepository over the snapshot store
func NewLocalMessageRepository(s *store.Store) MessageRepository {
	return &LocalMessageRepository{store: s}
}

func (r *LocalMessageRepository) Append(msg *models.Message) error {
	r.store.Update(func(db *store.Snapshot) {
		db.Messages = append(db.Messages, *msg)
	})
	return nil
}

func (r *LocalMessageRepository) Between(userA, userB string) ([]models.Message, error) {
	r.store.Rehydrate()

	var messages []models.Message
	r.store.View(func(db *store.Snapshot) {
		for _, m := range db.Messages {
			if (m.FromUserID == userA && m.ToUserID == userB) ||
				(m.FromUserID == userB && m.ToUserID == userA) {
				messages = append(messages, m)
			}
		}
	})
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func (r *LocalMessageRepository) List() ([]models.Message, error) {
	r.store.Rehydrate()

	var messages []models.Message
	r.store.View(func(db *store.Snapshot) {
		messages = append([]models.Message(nil), db.Messages...)
	})
	return messages, nil
}
