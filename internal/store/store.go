package store

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studentlife/taskboard/internal/models"
)

// Fixed identifiers for the seeded records, so a fresh slot is always
// sign-in-able and always has a department to default tasks into.
const (
	SeedAdminID      = "user-admin"
	SeedDepartmentID = "dept-general"
)

// Snapshot is the durable slot shape: the whole dataset as one JSON
// document. A nil collection means "absent from the document" and is
// distinguished from an empty one when merging.
type Snapshot struct {
	Users         []models.User           `json:"users"`
	Profiles      []models.Profile        `json:"profiles"`
	Departments   []models.Department     `json:"departments"`
	Tasks         []models.Task           `json:"tasks"`
	TaskAssignees []models.TaskAssignment `json:"task_assignees"`
	Messages      []models.Message        `json:"messages"`
}

// Seed describes the records a brand-new slot is initialized with.
type Seed struct {
	AdminEmail        string
	AdminFullName     string
	AdminPasswordHash string
	DepartmentName    string
}

// Store owns the in-memory collections and their durable mirror on disk.
// Mutations go through Update, which persists the snapshot afterwards;
// persistence failures are logged and swallowed so callers never block on
// a broken slot.
type Store struct {
	path string
	log  zerolog.Logger

	mu   sync.RWMutex
	data Snapshot
}

// Open loads the slot at path, seeding defaults for anything missing or
// unreadable. A corrupt document falls back to defaults wholesale.
func Open(path string, seed Seed, log zerolog.Logger) *Store {
	s := &Store{path: path, log: log, data: defaultSnapshot(seed)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", path).Msg("could not read durable slot, seeding defaults")
		}
		return s
	}

	var parsed Snapshot
	if err := json.Unmarshal(raw, &parsed); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("corrupt durable slot, seeding defaults")
		return s
	}

	mergeSnapshot(&s.data, parsed)
	return s
}

func defaultSnapshot(seed Seed) Snapshot {
	admin := models.User{
		ID:           SeedAdminID,
		Email:        seed.AdminEmail,
		PasswordHash: seed.AdminPasswordHash,
		FullName:     seed.AdminFullName,
		Role:         models.RoleAdmin,
	}
	return Snapshot{
		Users: []models.User{admin},
		Profiles: []models.Profile{{
			ID:       admin.ID,
			Email:    admin.Email,
			FullName: admin.FullName,
			Role:     admin.Role,
		}},
		Departments:   []models.Department{{ID: SeedDepartmentID, Name: seed.DepartmentName}},
		Tasks:         []models.Task{},
		TaskAssignees: []models.TaskAssignment{},
		Messages:      []models.Message{},
	}
}

// mergeSnapshot overwrites dst collections with the ones present in src.
// Missing collections keep their current (default) contents.
func mergeSnapshot(dst *Snapshot, src Snapshot) {
	if src.Users != nil {
		dst.Users = src.Users
	}
	if src.Profiles != nil {
		dst.Profiles = src.Profiles
	}
	if src.Departments != nil {
		dst.Departments = src.Departments
	}
	if src.Tasks != nil {
		dst.Tasks = src.Tasks
	}
	if src.TaskAssignees != nil {
		dst.TaskAssignees = src.TaskAssignees
	}
	if src.Messages != nil {
		dst.Messages = src.Messages
	}
}

// View runs fn with read access to the snapshot. fn must not retain or
// mutate the snapshot.
func (s *Store) View(fn func(*Snapshot)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.data)
}

// Update runs fn with write access to the snapshot, then mirrors the
// result to the durable slot.
func (s *Store) Update(fn func(*Snapshot)) {
	s.mu.Lock()
	fn(&s.data)
	s.mu.Unlock()
	s.Save()
}

// Save serializes the full snapshot back to the slot. Failures are
// non-fatal: the in-memory state stays authoritative for this process.
func (s *Store) Save() {
	s.mu.RLock()
	raw, err := json.Marshal(s.data)
	s.mu.RUnlock()
	if err != nil {
		s.log.Warn().Err(err).Msg("could not serialize durable slot")
		return
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("could not write durable slot")
	}
}

// Rehydrate re-reads the slot and overwrites each collection that is
// present and well-formed in it, making another process's writes visible.
// Last writer wins per collection; there is no merge.
func (s *Store) Rehydrate() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var parsed Snapshot
	if err := json.Unmarshal(raw, &parsed); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("ignoring corrupt durable slot on rehydrate")
		return
	}

	s.mu.Lock()
	mergeSnapshot(&s.data, parsed)
	s.mu.Unlock()
}

// NewID returns a fresh opaque identifier. Uniqueness is best-effort:
// a UUID when the random source cooperates, a pseudo-random hex string
// otherwise, with no collision check either way.
func NewID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return randomID()
	}
	return id.String()
}

func randomID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "id_fallback"
	}
	return "id_" + hex.EncodeToString(b)
}
