package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/studentlife/taskboard/internal/constants"
	"github.com/studentlife/taskboard/internal/models"
	"github.com/studentlife/taskboard/internal/repository"
	"github.com/studentlife/taskboard/internal/store"
)

var (
	ErrEmailAndNameRequired   = errors.New("email and full name are required")
	ErrEmailExists            = errors.New("email already exists")
	ErrRoleRequired           = errors.New("role is required")
	ErrRoleUnknown            = errors.New("unrecognized role")
	ErrDepartmentNameRequired = errors.New("department name is required")
	ErrAdminProtected         = errors.New("admin accounts cannot be deleted")
	ErrMemberNotFound         = errors.New("user not found")
)

// DirectoryService manages the department list and the staff roster used
// for task assignment.
type DirectoryService struct {
	userRepo repository.UserRepository
	deptRepo repository.DepartmentRepository
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(userRepo repository.UserRepository, deptRepo repository.DepartmentRepository) *DirectoryService {
	return &DirectoryService{userRepo: userRepo, deptRepo: deptRepo}
}

// ListDepartments returns all departments, name ascending.
func (s *DirectoryService) ListDepartments() ([]models.Department, error) {
	departments, err := s.deptRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	sort.SliceStable(departments, func(i, j int) bool {
		return strings.ToLower(departments[i].Name) < strings.ToLower(departments[j].Name)
	})
	return departments, nil
}

// CreateDepartment creates a department from a name typed inline in the
// task form.
func (s *DirectoryService) CreateDepartment(name string) (*models.Department, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrDepartmentNameRequired
	}

	dept := &models.Department{ID: store.NewID(), Name: trimmed}
	if err := s.deptRepo.Create(dept); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}
	return dept, nil
}

// ListAssignableMembers returns every non-admin profile, full name
// ascending. This feeds both the assignment picker and the staff
// management roster.
func (s *DirectoryService) ListAssignableMembers() ([]models.Profile, error) {
	profiles, err := s.userRepo.ListProfiles()
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	members := make([]models.Profile, 0, len(profiles))
	for _, p := range profiles {
		if p.Role != models.RoleAdmin {
			members = append(members, p)
		}
	}
	sortProfilesByName(members)
	return members, nil
}

// ListStaff returns profiles whose role is exactly staff, full name
// ascending.
func (s *DirectoryService) ListStaff() ([]models.Profile, error) {
	profiles, err := s.userRepo.ListProfiles()
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	staff := make([]models.Profile, 0, len(profiles))
	for _, p := range profiles {
		if p.Role == models.RoleStaff {
			staff = append(staff, p)
		}
	}
	sortProfilesByName(staff)
	return staff, nil
}

// CreateStaffInput holds the admin-provided fields for a new staff member.
type CreateStaffInput struct {
	Email           string
	FullName        string
	DepartmentID    *string
	Role            models.Role
	InitialPassword string
}

// CreateStaffMember creates the paired user and profile records. Role
// defaults to staff and the password to the fixed placeholder when not
// supplied. The duplicate-email check is case-insensitive and runs
// against the freshest data the backend can see.
func (s *DirectoryService) CreateStaffMember(input CreateStaffInput) (*models.Profile, error) {
	email := strings.TrimSpace(input.Email)
	fullName := strings.TrimSpace(input.FullName)
	if email == "" || fullName == "" {
		return nil, ErrEmailAndNameRequired
	}

	role := input.Role
	if role == "" {
		role = models.RoleStaff
	}
	role = models.Role(strings.ToLower(string(role)))
	if !role.Valid() {
		return nil, ErrRoleUnknown
	}

	password := strings.TrimSpace(input.InitialPassword)
	if password == "" {
		password = constants.DefaultStaffPassword
	}

	taken, err := s.userRepo.EmailTakenFold(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id := store.NewID()
	user := &models.User{
		ID:           id,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         role,
		DepartmentID: input.DepartmentID,
	}
	profile := &models.Profile{
		ID:           id,
		Email:        email,
		FullName:     fullName,
		Role:         role,
		DepartmentID: input.DepartmentID,
	}

	if err := s.userRepo.CreateWithProfile(user, profile); err != nil {
		return nil, fmt.Errorf("failed to create staff member: %w", err)
	}
	return profile, nil
}

// UpdateStaffRole applies a new role to both the user and profile records.
func (s *DirectoryService) UpdateStaffRole(userID string, newRole models.Role) error {
	role := models.Role(strings.ToLower(strings.TrimSpace(string(newRole))))
	if role == "" {
		return ErrRoleRequired
	}
	if !role.Valid() {
		return ErrRoleUnknown
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	profile, err := s.userRepo.FindProfile(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find profile: %w", err)
	}

	user.Role = role
	profile.Role = role

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if err := s.userRepo.UpdateProfile(profile); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// DeleteStaffMember removes the user and profile and cascades the user's
// task assignments. Admin accounts are refused outright; deleting an
// absent ID is a no-op success.
func (s *DirectoryService) DeleteStaffMember(userID string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.Role == models.RoleAdmin {
		return ErrAdminProtected
	}

	if err := s.userRepo.DeleteWithProfile(userID); err != nil {
		return fmt.Errorf("failed to delete staff member: %w", err)
	}
	return nil
}

func sortProfilesByName(profiles []models.Profile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		return strings.ToLower(profiles[i].FullName) < strings.ToLower(profiles[j].FullName)
	})
}
