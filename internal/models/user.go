package models

// Role classifies a user for authorization and roster filtering.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
)

// Valid reports whether the role is one of the recognized values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleManager:
		return true
	}
	return false
}

// User is the credential-bearing account record. The password field holds
// a bcrypt hash; it is serialized into the durable slot but never exposed
// through the API (handlers emit DTOs only).
type User struct {
	ID           string  `gorm:"type:varchar(64);primaryKey" json:"id"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"password"`
	FullName     string  `gorm:"type:varchar(255);not null" json:"full_name"`
	Role         Role    `gorm:"type:varchar(20);not null" json:"role"`
	DepartmentID *string `gorm:"type:varchar(64)" json:"department_id"`
}
