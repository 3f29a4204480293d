package post

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"diary-service/internal/shared/httpx"
)

// Every read and mutation is scoped by owner: a post id belonging to another
// user behaves exactly like a missing record.
type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetOwned(ctx context.Context, id, ownerID string) (*Post, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Post, error)
	UpdateOwned(ctx context.Context, id, ownerID string, changes map[string]any) error
	DeleteOwned(ctx context.Context, id, ownerID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) GetOwned(ctx context.Context, id, ownerID string) (*Post, error) {
	var p Post
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httpx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID string) ([]Post, error) {
	var posts []Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *repository) UpdateOwned(ctx context.Context, id, ownerID string, changes map[string]any) error {
	tx := r.db.WithContext(ctx).Model(&Post{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(changes)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&Post{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
