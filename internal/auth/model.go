package auth

import "time"

// User rows are created on first successful link verification; there is no
// separate signup step.
type User struct {
	ID        string `gorm:"primaryKey;size:36"`
	Email     string `gorm:"uniqueIndex;size:255"`
	CreatedAt time.Time
	LastLogin time.Time
}
