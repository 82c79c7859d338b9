package bookmarks

import "time"

// Bookmark is a URL saved by exactly one user. The owner is established at
// creation and never changes; there is no update operation.
type Bookmark struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"userId"`
	URL       string    `gorm:"not null" json:"url"`
	Title     string    `gorm:"not null" json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}
