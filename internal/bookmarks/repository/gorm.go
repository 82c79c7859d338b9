package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/linkmark/linkmark-api/internal/bookmarks"
	"gorm.io/gorm"
)

// GormRepo implements a relational repository for bookmarks.
type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func (r *GormRepo) Create(ctx context.Context, b *bookmarks.Bookmark) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *GormRepo) Get(ctx context.Context, id string) (*bookmarks.Bookmark, error) {
	var b bookmarks.Bookmark
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *GormRepo) ListByOwner(ctx context.Context, userID string) ([]*bookmarks.Bookmark, error) {
	out := []*bookmarks.Bookmark{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&bookmarks.Bookmark{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
