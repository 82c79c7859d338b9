package repository

import (
	"context"
	"errors"

	"github.com/linkmark/linkmark-api/internal/bookmarks"
)

var ErrNotFound = errors.New("bookmark not found")

// Repository defines persistence operations for bookmarks. ListByOwner
// returns newest-first; Get does not filter by owner, the ownership check
// lives in the service layer.
type Repository interface {
	Create(ctx context.Context, b *bookmarks.Bookmark) error
	Get(ctx context.Context, id string) (*bookmarks.Bookmark, error)
	ListByOwner(ctx context.Context, userID string) ([]*bookmarks.Bookmark, error)
	Delete(ctx context.Context, id string) error
}
