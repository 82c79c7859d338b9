package users

import (
	"context"
	"errors"
	"time"

	"github.com/linkmark/linkmark-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	// EnsureByEmail inserts u unless a row with the same email already
	// exists; the stored row is returned either way.
	EnsureByEmail(ctx context.Context, u *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// GormUserRepository implements UserRepository on a relational store
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) EnsureByEmail(ctx context.Context, u *models.User) (*models.User, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	// Insert-if-absent keyed by email. DoNothing keeps an existing row
	// untouched even when the provider reports changed name/avatar.
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(u)
	if res.Error != nil {
		return nil, res.Error
	}
	var stored models.User
	if err := r.db.WithContext(ctx).Where("email = ?", u.Email).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
