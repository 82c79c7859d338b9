package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/linkmark/linkmark-api/internal/bookmarks"
	"github.com/linkmark/linkmark-api/internal/bookmarks/repository"
	"github.com/linkmark/linkmark-api/internal/models"
	"github.com/linkmark/linkmark-api/pkg/middleware"
)

var (
	// ErrNotFound covers both a missing bookmark and an ownership mismatch:
	// callers must not be able to distinguish other users' bookmarks from
	// nonexistent ones.
	ErrNotFound = errors.New("bookmark not found")

	// ErrValidation marks rejected input; the wrapped message is safe to
	// return to the caller.
	ErrValidation = errors.New("validation failed")
)

// Registrar guarantees a user row exists for a verified identity.
// Satisfied by *users.Service.
type Registrar interface {
	Ensure(ctx context.Context, ident *middleware.Identity) (*models.User, error)
}

// Service implements the bookmark operations behind the HTTP layer. Every
// method takes the verified identity of the caller; ownership scoping happens
// here, not in the repository.
type Service struct {
	repo      repository.Repository
	registrar Registrar
}

func NewService(repo repository.Repository, registrar Registrar) *Service {
	return &Service{repo: repo, registrar: registrar}
}

// Create validates the input, ensures the caller has a user row, and inserts
// a bookmark owned by the caller. The two writes are separate round trips
// with no shared transaction; a failure after the user insert leaves only the
// idempotent user row behind and the client can retry.
func (s *Service) Create(ctx context.Context, ident *middleware.Identity, rawURL, title string) (*bookmarks.Bookmark, error) {
	if err := validateInput(rawURL, title); err != nil {
		return nil, err
	}
	if _, err := s.registrar.Ensure(ctx, ident); err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	b := &bookmarks.Bookmark{
		UserID: ident.ID,
		URL:    rawURL,
		Title:  title,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("insert bookmark: %w", err)
	}
	return b, nil
}

// List returns the caller's bookmarks, newest first. A user with no bookmarks
// gets an empty slice, not an error.
func (s *Service) List(ctx context.Context, ident *middleware.Identity) ([]*bookmarks.Bookmark, error) {
	return s.repo.ListByOwner(ctx, ident.ID)
}

// Delete removes the bookmark when it exists and the caller owns it;
// otherwise ErrNotFound.
func (s *Service) Delete(ctx context.Context, ident *middleware.Identity, id string) error {
	if id == "" {
		return ErrNotFound
	}
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if b.UserID != ident.ID {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// lost a race with a concurrent delete of the same row
			return ErrNotFound
		}
		return err
	}
	return nil
}

func validateInput(rawURL, title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: url must be an absolute URL", ErrValidation)
	}
	return nil
}
