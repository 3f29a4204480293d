package feed

import (
	"context"
	"log"
	"time"

	"diary-service/internal/post"
)

// SignedURLTTL is how long a resolved image link stays valid. The link is
// recomputed on every fetch, so expiry only matters for an open page.
const SignedURLTTL = time.Hour

type PostSource interface {
	ListByOwner(ctx context.Context, ownerID string) ([]post.Post, error)
}

type Presigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Service interface {
	List(ctx context.Context, ownerID string) ([]Item, error)
}

type service struct {
	posts     PostSource
	presigner Presigner
}

func NewService(posts PostSource, presigner Presigner) Service {
	return &service{posts: posts, presigner: presigner}
}

// List returns the owner's posts newest-first, each decorated with a signed
// image URL. Failures degrade: a presign error means that post renders
// without an image, a repository error means an empty feed — never a 5xx.
func (s *service) List(ctx context.Context, ownerID string) ([]Item, error) {
	posts, err := s.posts.ListByOwner(ctx, ownerID)
	if err != nil {
		log.Printf("[Feed] list posts for %s: %v", ownerID, err)
		return []Item{}, nil
	}

	items := make([]Item, 0, len(posts))
	for _, p := range posts {
		item := Item{
			ID:        p.ID,
			UserID:    p.UserID,
			Content:   p.Content,
			ImagePath: p.ImagePath,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
		if p.ImagePath != nil {
			url, err := s.presigner.PresignGet(ctx, *p.ImagePath, SignedURLTTL)
			if err != nil {
				log.Printf("[Feed] presign %s: %v", *p.ImagePath, err)
			} else {
				item.ImageURL = &url
			}
		}
		items = append(items, item)
	}
	return items, nil
}
