package models

import "time"

// User represents an application user (mapped from identity provider claims).
// Rows are written once on first bookmark creation and never updated: the
// profile is an immutable snapshot of the claims seen at that moment.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"` // provider subject
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}
