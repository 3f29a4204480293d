package notifier_test

import (
	"context"
	"testing"
	"time"

	"diary-service/internal/notifier"
)

type memRepo struct {
	pushed []notifier.Notification
}

func (m *memRepo) Push(_ context.Context, n notifier.Notification) error {
	m.pushed = append(m.pushed, n)
	return nil
}

func (m *memRepo) List(_ context.Context, userID string, limit int64) ([]notifier.Notification, error) {
	var out []notifier.Notification
	for _, n := range m.pushed {
		if n.UserID == userID && int64(len(out)) < limit {
			out = append(out, n)
		}
	}
	return out, nil
}

func TestHandlePostEvent(t *testing.T) {
	repo := &memRepo{}
	svc := notifier.NewService(repo)

	payload := []byte(`{"kind":"created","postId":"p1","userId":"u1","createdAt":"2026-03-01T12:00:00Z"}`)
	if err := svc.HandlePostEvent(context.Background(), "diary.posts", nil, payload); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(repo.pushed) != 1 {
		t.Fatalf("pushed %d notifications, want 1", len(repo.pushed))
	}
	n := repo.pushed[0]
	if n.Kind != "post.created" || n.PostID != "p1" || n.UserID != "u1" {
		t.Errorf("notification = %+v", n)
	}
	if n.ID == "" {
		t.Error("notification has no id")
	}
	if want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC); !n.CreatedAt.Equal(want) {
		t.Errorf("createdAt = %v, want %v", n.CreatedAt, want)
	}
}

func TestHandlePostEvent_BadPayload(t *testing.T) {
	repo := &memRepo{}
	svc := notifier.NewService(repo)

	if err := svc.HandlePostEvent(context.Background(), "diary.posts", nil, []byte("not json")); err == nil {
		t.Fatal("expected error")
	}
	if len(repo.pushed) != 0 {
		t.Errorf("pushed %d notifications for bad payload", len(repo.pushed))
	}
}

func TestList_PassesThrough(t *testing.T) {
	repo := &memRepo{pushed: []notifier.Notification{
		{ID: "n1", UserID: "u1", Kind: "post.created"},
		{ID: "n2", UserID: "u2", Kind: "post.deleted"},
		{ID: "n3", UserID: "u1", Kind: "post.updated"},
	}}
	svc := notifier.NewService(repo)

	got, err := svc.List(context.Background(), "u1", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d notifications, want 2", len(got))
	}
	for _, n := range got {
		if n.UserID != "u1" {
			t.Errorf("notification %s belongs to %s", n.ID, n.UserID)
		}
	}
}
