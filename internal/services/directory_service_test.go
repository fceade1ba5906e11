package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/studentlife/taskboard/internal/constants"
	"github.com/studentlife/taskboard/internal/models"
	"github.com/studentlife/taskboard/internal/repository"
	"github.com/studentlife/taskboard/internal/store"
)

func TestDirectoryService_CreateStaffMember_Defaults(t *testing.T) {
	env := newTestEnv(t)

	profile, err := env.directory.CreateStaffMember(CreateStaffInput{
		Email:    " jo@x.com ",
		FullName: " Jo Smith ",
	})
	require.NoError(t, err)
	require.Equal(t, "jo@x.com", profile.Email)
	require.Equal(t, "Jo Smith", profile.FullName)
	require.Equal(t, models.RoleStaff, profile.Role)

	// The default placeholder password signs in.
	user, err := env.users.FindByID(profile.ID)
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash), []byte(constants.DefaultStaffPassword)))
}

func TestDirectoryService_CreateStaffMember_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.directory.CreateStaffMember(CreateStaffInput{Email: "", FullName: "Jo"})
	require.ErrorIs(t, err, ErrEmailAndNameRequired)

	_, err = env.directory.CreateStaffMember(CreateStaffInput{Email: "jo@x.com", FullName: "  "})
	require.ErrorIs(t, err, ErrEmailAndNameRequired)

	_, err = env.directory.CreateStaffMember(CreateStaffInput{
		Email: "jo@x.com", FullName: "Jo", Role: "wizard",
	})
	require.ErrorIs(t, err, ErrRoleUnknown)
}

func TestDirectoryService_CreateStaffMember_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.createStaff(t, "jo@x.com", "Jo Smith")

	before, err := env.users.ListProfiles()
	require.NoError(t, err)

	// Case and surrounding whitespace do not dodge the uniqueness check.
	_, err = env.directory.CreateStaffMember(CreateStaffInput{
		Email:    "  JO@X.COM ",
		FullName: "Impostor",
	})
	require.ErrorIs(t, err, ErrEmailExists)

	after, err := env.users.ListProfiles()
	require.NoError(t, err)
	require.Equal(t, len(before), len(after), "failed create must leave the table unchanged")
}

func TestDirectoryService_CreateStaffMember_AfterDelete(t *testing.T) {
	env := newTestEnv(t)
	staff := env.createStaff(t, "jo@x.com", "Jo Smith")

	require.NoError(t, env.directory.DeleteStaffMember(staff.ID))

	// The freed email is immediately reusable.
	_, err := env.directory.CreateStaffMember(CreateStaffInput{
		Email:    "jo@x.com",
		FullName: "Jo Again",
	})
	require.NoError(t, err)
}

func TestDirectoryService_UpdateStaffRole(t *testing.T) {
	env := newTestEnv(t)
	staff := env.createStaff(t, "jo@x.com", "Jo Smith")

	require.NoError(t, env.directory.UpdateStaffRole(staff.ID, " Manager "))

	user, err := env.users.FindByID(staff.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleManager, user.Role)
	profile, err := env.users.FindProfile(staff.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleManager, profile.Role)

	require.ErrorIs(t, env.directory.UpdateStaffRole(staff.ID, "  "), ErrRoleRequired)
	require.ErrorIs(t, env.directory.UpdateStaffRole(staff.ID, "wizard"), ErrRoleUnknown)
	require.ErrorIs(t, env.directory.UpdateStaffRole("ghost", "staff"), ErrMemberNotFound)
}

func TestDirectoryService_DeleteStaffMember(t *testing.T) {
	env := newTestEnv(t)
	staff := env.createStaff(t, "jo@x.com", "Jo Smith")
	task := env.createTask(t, "Clean lobby")

	_, err := env.taskSvc.AssignTask(task.ID, []string{staff.ID})
	require.NoError(t, err)

	require.NoError(t, env.directory.DeleteStaffMember(staff.ID))

	_, err = env.users.FindByID(staff.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	assignments, err := env.tasks.AssignmentsForUser(staff.ID)
	require.NoError(t, err)
	require.Empty(t, assignments, "deletion cascades to the user's assignments")

	// Deleting an absent ID is a no-op success.
	require.NoError(t, env.directory.DeleteStaffMember(staff.ID))
}

func TestDirectoryService_DeleteStaffMember_AdminProtected(t *testing.T) {
	env := newTestEnv(t)

	err := env.directory.DeleteStaffMember(store.SeedAdminID)
	require.ErrorIs(t, err, ErrAdminProtected)

	_, findErr := env.users.FindByID(store.SeedAdminID)
	require.NoError(t, findErr)
}

func TestDirectoryService_ListAssignableMembers(t *testing.T) {
	env := newTestEnv(t)
	env.createStaff(t, "zed@x.com", "Zed Yates")
	env.createStaff(t, "amy@x.com", "amy barnes")
	manager, err := env.directory.CreateStaffMember(CreateStaffInput{
		Email: "mia@x.com", FullName: "Mia Cole", Role: models.RoleManager,
	})
	require.NoError(t, err)

	members, err := env.directory.ListAssignableMembers()
	require.NoError(t, err)

	// Admin excluded, managers included, name ascending ignoring case.
	require.Len(t, members, 3)
	require.Equal(t, "amy barnes", members[0].FullName)
	require.Equal(t, "Mia Cole", members[1].FullName)
	require.Equal(t, "Zed Yates", members[2].FullName)
	require.Equal(t, manager.ID, members[1].ID)
}

func TestDirectoryService_ListStaff_ExcludesOtherRoles(t *testing.T) {
	env := newTestEnv(t)
	env.createStaff(t, "jo@x.com", "Jo Smith")
	_, err := env.directory.CreateStaffMember(CreateStaffInput{
		Email: "mia@x.com", FullName: "Mia Cole", Role: models.RoleManager,
	})
	require.NoError(t, err)

	staff, err := env.directory.ListStaff()
	require.NoError(t, err)
	require.Len(t, staff, 1)
	require.Equal(t, "Jo Smith", staff[0].FullName)
}

func TestDirectoryService_Departments(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.directory.CreateDepartment("Housing")
	require.NoError(t, err)
	_, err = env.directory.CreateDepartment("  Athletics ")
	require.NoError(t, err)

	_, err = env.directory.CreateDepartment("   ")
	require.ErrorIs(t, err, ErrDepartmentNameRequired)

	departments, err := env.directory.ListDepartments()
	require.NoError(t, err)
	require.Len(t, departments, 3)
	require.Equal(t, "Athletics", departments[0].Name)
	require.Equal(t, "General", departments[1].Name)
	require.Equal(t, "Housing", departments[2].Name)
}
