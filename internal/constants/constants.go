package constants

const (
	// SessionCookieName is the cookie carrying the session ID.
	SessionCookieName = "taskboard_session"

	// SessionKeyEmail is the session field holding the signed-in email.
	// Its absence means "signed out".
	SessionKeyEmail = "auth_email"

	// Context keys set by the auth middleware.
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "user_role"

	// MinPasswordLength applies to password changes only; seeded and
	// defaulted passwords are not re-validated.
	MinPasswordLength = 4

	// DefaultStaffPassword is assigned when an admin creates a staff
	// member without choosing an initial password.
	DefaultStaffPassword = "staff123"
)
