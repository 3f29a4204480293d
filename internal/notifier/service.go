package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// postEvent mirrors the payload the post service publishes.
type postEvent struct {
	Kind      string    `json:"kind"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Service interface {
	// HandlePostEvent is the Kafka consumer callback.
	HandlePostEvent(ctx context.Context, topic string, key, value []byte) error
	List(ctx context.Context, userID string, limit int64) ([]Notification, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) HandlePostEvent(ctx context.Context, _ string, _, value []byte) error {
	var ev postEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		return fmt.Errorf("unmarshal post event: %w", err)
	}
	return s.repo.Push(ctx, Notification{
		ID:        uuid.NewString(),
		UserID:    ev.UserID,
		Kind:      "post." + ev.Kind,
		PostID:    ev.PostID,
		CreatedAt: ev.CreatedAt,
	})
}

func (s *service) List(ctx context.Context, userID string, limit int64) ([]Notification, error) {
	return s.repo.List(ctx, userID, limit)
}
