package feed

import "time"

// Item is the decorated view of a post: the stored record plus an ephemeral
// signed URL for its image. Never persisted.
type Item struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	ImagePath *string   `json:"imagePath"`
	ImageURL  *string   `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ListFeedResponse struct {
	Items []Item `json:"items"`
}
