package users

import (
	"context"
	"errors"

	"github.com/linkmark/linkmark-api/internal/models"
	"github.com/linkmark/linkmark-api/pkg/middleware"
)

// Service encapsulates the user registrar: it guarantees a local user row
// exists for a verified identity before bookmark writes proceed.
type Service struct {
	repo UserRepository
}

func NewService(r UserRepository) *Service {
	return &Service{repo: r}
}

// Ensure creates the user row for the identity if none exists yet. Idempotent
// and keyed by email; an existing row is never modified, even when the
// provider reports changed metadata.
func (s *Service) Ensure(ctx context.Context, ident *middleware.Identity) (*models.User, error) {
	if ident == nil || ident.Email == "" {
		return nil, errors.New("identity carries no email")
	}
	u := &models.User{
		ID:        ident.ID,
		Email:     ident.Email,
		Name:      ident.Name,
		AvatarURL: ident.AvatarURL,
	}
	return s.repo.EnsureByEmail(ctx, u)
}
