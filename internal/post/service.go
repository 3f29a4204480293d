package post

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"diary-service/internal/image"
	"diary-service/internal/shared/httpx"
)

// ObjectStore is the slice of the blob store the post flows need.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
}

type EventWriter interface {
	WriteJSON(ctx context.Context, v any) error
}

// Event is published to the post topic on every mutation.
type Event struct {
	Kind      string    `json:"kind"` // created | updated | deleted
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Service interface {
	Create(ctx context.Context, ownerID, content string, att image.Attachment) (*Post, error)
	Update(ctx context.Context, id, ownerID, content string, att image.Attachment) (*Post, error)
	Delete(ctx context.Context, id, ownerID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]Post, error)
}

type service struct {
	repo   Repository
	store  ObjectStore
	events EventWriter
}

func NewService(repo Repository, store ObjectStore, events EventWriter) Service {
	return &service{repo: repo, store: store, events: events}
}

// Create uploads first and inserts second: a record must never reference an
// object that was not stored. The inverse failure (object stored, insert
// failed) is tolerated as an orphan and logged.
func (s *service) Create(ctx context.Context, ownerID, content string, att image.Attachment) (*Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content must not be empty", httpx.ErrValidation)
	}

	p := &Post{ID: uuid.NewString(), UserID: ownerID, Content: content}
	if att.Kind == image.KindStaged {
		key := image.NewKey(ownerID, att.Ext())
		if err := s.store.Put(ctx, key, bytes.NewReader(att.Data), int64(len(att.Data)), att.ContentType); err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		p.ImagePath = &key
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if p.ImagePath != nil {
			log.Printf("[Post] insert failed, object %s orphaned: %v", *p.ImagePath, err)
		}
		return nil, fmt.Errorf("insert post: %w", err)
	}

	s.emit(ctx, "created", p)
	return p, nil
}

// Update replaces the image, when one is staged, under a fresh key. The old
// object is removed only after the new upload succeeded, so there is no
// window where the record points at nothing.
func (s *service) Update(ctx context.Context, id, ownerID, content string, att image.Attachment) (*Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content must not be empty", httpx.ErrValidation)
	}

	existing, err := s.repo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	// an edit without a new file keeps the stored object
	if att.Kind == image.KindNone && existing.ImagePath != nil {
		att = image.Existing(*existing.ImagePath)
	}

	changes := map[string]any{"content": content}
	switch att.Kind {
	case image.KindStaged:
		newKey := image.NewKey(ownerID, att.Ext())
		if err := s.store.Put(ctx, newKey, bytes.NewReader(att.Data), int64(len(att.Data)), att.ContentType); err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		if existing.ImagePath != nil {
			if err := s.store.Remove(ctx, *existing.ImagePath); err != nil {
				log.Printf("[Post] remove old object %s: %v", *existing.ImagePath, err)
			}
		}
		changes["image_path"] = newKey
	case image.KindExisting:
		changes["image_path"] = att.Key
	}

	if err := s.repo.UpdateOwned(ctx, id, ownerID, changes); err != nil {
		if k, ok := changes["image_path"].(string); ok {
			log.Printf("[Post] update failed, object %s orphaned: %v", k, err)
		}
		return nil, err
	}

	updated, err := s.repo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, "updated", updated)
	return updated, nil
}

// Delete removes the object first, best-effort: an orphaned object is
// acceptable, a surviving record the user asked to delete is not.
func (s *service) Delete(ctx context.Context, id, ownerID string) error {
	existing, err := s.repo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if existing.ImagePath != nil {
		if err := s.store.Remove(ctx, *existing.ImagePath); err != nil {
			log.Printf("[Post] remove object %s: %v", *existing.ImagePath, err)
		}
	}
	if err := s.repo.DeleteOwned(ctx, id, ownerID); err != nil {
		return err
	}
	s.emit(ctx, "deleted", existing)
	return nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]Post, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) emit(ctx context.Context, kind string, p *Post) {
	if s.events == nil {
		return
	}
	ev := Event{Kind: kind, PostID: p.ID, UserID: p.UserID, CreatedAt: time.Now()}
	if err := s.events.WriteJSON(ctx, ev); err != nil {
		log.Printf("[Post] emit %s event for %s: %v", kind, p.ID, err)
	}
}
