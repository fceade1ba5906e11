package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studentlife/taskboard/internal/store"
)

func TestIdentityService_SignIn(t *testing.T) {
	env := newTestEnv(t)

	user, profile, err := env.identity.SignIn("admin@x.com", testAdminPassword)
	require.NoError(t, err)
	require.Equal(t, store.SeedAdminID, user.ID)
	require.NotNil(t, profile)
	require.Equal(t, user.ID, profile.ID)

	// Leading and trailing whitespace around the email is tolerated.
	_, _, err = env.identity.SignIn("  admin@x.com  ", testAdminPassword)
	require.NoError(t, err)
}

func TestIdentityService_SignIn_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.identity.SignIn("admin@x.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = env.identity.SignIn("nobody@x.com", testAdminPassword)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIdentityService_RestoreSession(t *testing.T) {
	env := newTestEnv(t)

	user, profile, err := env.identity.RestoreSession("admin@x.com")
	require.NoError(t, err)
	require.Equal(t, store.SeedAdminID, user.ID)
	require.NotNil(t, profile)

	_, _, err = env.identity.RestoreSession("gone@x.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestIdentityService_UpdateEmail(t *testing.T) {
	env := newTestEnv(t)

	profile, err := env.identity.UpdateEmail(store.SeedAdminID, " new-admin@x.com ")
	require.NoError(t, err)
	require.Equal(t, "new-admin@x.com", profile.Email)

	// Both records changed together.
	user, err := env.users.FindByID(store.SeedAdminID)
	require.NoError(t, err)
	require.Equal(t, "new-admin@x.com", user.Email)

	_, _, err = env.identity.SignIn("new-admin@x.com", testAdminPassword)
	require.NoError(t, err)
}

func TestIdentityService_UpdateEmail_Validation(t *testing.T) {
	env := newTestEnv(t)
	staff := env.createStaff(t, "jo@x.com", "Jo Smith")

	_, err := env.identity.UpdateEmail(store.SeedAdminID, "   ")
	require.ErrorIs(t, err, ErrEmailRequired)

	_, err = env.identity.UpdateEmail(store.SeedAdminID, staff.Email)
	require.ErrorIs(t, err, ErrEmailTaken)

	// Keeping one's own email is not a conflict.
	_, err = env.identity.UpdateEmail(store.SeedAdminID, "admin@x.com")
	require.NoError(t, err)
}

func TestIdentityService_UpdatePassword(t *testing.T) {
	env := newTestEnv(t)

	err := env.identity.UpdatePassword(store.SeedAdminID, "wrong", "newpass")
	require.ErrorIs(t, err, ErrWrongPassword)

	err = env.identity.UpdatePassword(store.SeedAdminID, testAdminPassword, "abc")
	require.ErrorIs(t, err, ErrPasswordTooShort)

	err = env.identity.UpdatePassword(store.SeedAdminID, testAdminPassword, "newpass")
	require.NoError(t, err)

	_, _, err = env.identity.SignIn("admin@x.com", "newpass")
	require.NoError(t, err)
	_, _, err = env.identity.SignIn("admin@x.com", testAdminPassword)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIdentityService_UpdateProfile(t *testing.T) {
	env := newTestEnv(t)

	avatar := "data:image/png;base64,xyz"
	name := "Renamed Admin"
	profile, err := env.identity.UpdateProfile(store.SeedAdminID, ProfilePatch{
		FullName:  &name,
		AvatarURL: &avatar,
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed Admin", profile.FullName)
	require.NotNil(t, profile.AvatarURL)
	require.Equal(t, avatar, *profile.AvatarURL)

	// Untouched fields survive the merge.
	require.Equal(t, "admin@x.com", profile.Email)

	_, err = env.identity.UpdateProfile("no-such-user", ProfilePatch{FullName: &name})
	require.ErrorIs(t, err, ErrProfileNotFound)
}
