package models

import "time"

// Message is one entry in a two-party thread, optionally tagged with the
// task it concerns. Messages are append-only; nothing in the service
// layer mutates or deletes them.
type Message struct {
	ID         string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	FromUserID string    `gorm:"type:varchar(64);not null;index" json:"from_user_id"`
	ToUserID   string    `gorm:"type:varchar(64);not null;index" json:"to_user_id"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	TaskID     *string   `gorm:"type:varchar(64)" json:"task_id,omitempty"`
}
