package post

import "time"

type Post struct {
	ID        string  `gorm:"primaryKey;size:36"`
	UserID    string  `gorm:"index;size:36"`
	Content   string  `gorm:"type:text"`
	ImagePath *string `gorm:"size:512"` // storage key, nil = no image
	CreatedAt time.Time
	UpdatedAt time.Time
}
