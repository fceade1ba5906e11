package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/studentlife/taskboard/internal/constants"
	"github.com/studentlife/taskboard/internal/models"
	"github.com/studentlife/taskboard/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrEmailRequired      = errors.New("email is required")
	ErrEmailTaken         = errors.New("that email is already in use")
	ErrPasswordTooShort   = fmt.Errorf("new password must be at least %d characters", constants.MinPasswordLength)
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileNotFound    = errors.New("profile not found")
)

// IdentityService authenticates users against the store and manages the
// signed-in account's own records. The session email itself lives in the
// HTTP layer; this service only resolves and mutates the records behind it.
type IdentityService struct {
	userRepo repository.UserRepository
}

// NewIdentityService creates a new IdentityService
func NewIdentityService(userRepo repository.UserRepository) *IdentityService {
	return &IdentityService{userRepo: userRepo}
}

// SignIn verifies credentials and returns the user with its profile. The
// profile may be nil if the shadow record is missing; that is not an error.
func (s *IdentityService) SignIn(email, password string) (*models.User, *models.Profile, error) {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	profile := s.profileOrNil(user.ID)
	return user, profile, nil
}

// RestoreSession resolves a durably stored session email back to its user
// without re-validating the password.
func (s *IdentityService) RestoreSession(email string) (*models.User, *models.Profile, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, s.profileOrNil(user.ID), nil
}

// UpdateEmail changes the caller's email on both the user and profile
// records. The uniqueness check compares emails exactly as stored,
// excluding the caller.
func (s *IdentityService) UpdateEmail(userID, newEmail string) (*models.Profile, error) {
	trimmed := strings.TrimSpace(newEmail)
	if trimmed == "" {
		return nil, ErrEmailRequired
	}

	taken, err := s.userRepo.EmailTaken(trimmed, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	profile, err := s.userRepo.FindProfile(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	user.Email = trimmed
	profile.Email = trimmed

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if err := s.userRepo.UpdateProfile(profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}

// UpdatePassword replaces the caller's password after verifying the
// current one.
func (s *IdentityService) UpdatePassword(userID, current, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrWrongPassword
	}

	trimmed := strings.TrimSpace(newPassword)
	if len(trimmed) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(trimmed), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// ProfilePatch holds the optional fields UpdateProfile merges into the
// caller's profile. Nil fields are left untouched.
type ProfilePatch struct {
	FullName     *string
	AvatarURL    *string
	DepartmentID *string
}

// UpdateProfile shallow-merges the patch into the caller's profile.
func (s *IdentityService) UpdateProfile(userID string, patch ProfilePatch) (*models.Profile, error) {
	profile, err := s.userRepo.FindProfile(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	if patch.FullName != nil {
		profile.FullName = *patch.FullName
	}
	if patch.AvatarURL != nil {
		profile.AvatarURL = patch.AvatarURL
	}
	if patch.DepartmentID != nil {
		profile.DepartmentID = patch.DepartmentID
	}

	if err := s.userRepo.UpdateProfile(profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

func (s *IdentityService) profileOrNil(userID string) *models.Profile {
	profile, err := s.userRepo.FindProfile(userID)
	if err != nil {
		return nil
	}
	return profile
}
