package notifier

import "time"

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Kind      string    `json:"kind"`
	PostID    string    `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
}
