package models

// Profile is the publicly-displayable shadow of a User. The profile set
// and the user set always hold the same IDs; email and role changes must
// touch both records.
type Profile struct {
	ID           string  `gorm:"type:varchar(64);primaryKey" json:"id"`
	Email        string  `gorm:"type:varchar(255);not null" json:"email"`
	FullName     string  `gorm:"type:varchar(255);not null" json:"full_name"`
	Role         Role    `gorm:"type:varchar(20);not null" json:"role"`
	DepartmentID *string `gorm:"type:varchar(64)" json:"department_id"`
	AvatarURL    *string `gorm:"type:text" json:"avatar_url,omitempty"`
}
