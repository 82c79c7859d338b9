package identity

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/linkmark/linkmark-api/pkg/middleware"
)

// InsecureVerifier parses JWT claims WITHOUT validating the signature.
// Only intended for local/integration tests under explicit opt-in via
// ALLOW_INSECURE_TOKEN=true.
type InsecureVerifier struct{}

func NewInsecureVerifier() *InsecureVerifier { return &InsecureVerifier{} }

func (v *InsecureVerifier) Verify(ctx context.Context, raw string) (*middleware.Identity, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, mc); err != nil {
		return nil, err
	}
	sub, _ := mc["sub"].(string)
	if sub == "" {
		return nil, errors.New("token carries no subject")
	}
	email, _ := mc["email"].(string)
	name, _ := mc["name"].(string)
	picture, _ := mc["picture"].(string)
	return &middleware.Identity{ID: sub, Email: email, Name: name, AvatarURL: picture}, nil
}
