package identity

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/linkmark/linkmark-api/pkg/middleware"
)

// claims is the subset of provider claims this service consumes.
type claims struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (c claims) identity() *middleware.Identity {
	return &middleware.Identity{ID: c.Sub, Email: c.Email, Name: c.Name, AvatarURL: c.Picture}
}

// OIDCVerifier wraps the OIDC provider and token verifier
type OIDCVerifier struct {
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
}

// NewOIDCVerifier creates a verifier for the given issuer and client ID,
// performing provider discovery up front.
func NewOIDCVerifier(ctx context.Context, issuer, clientID string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: clientID})
	return &OIDCVerifier{provider: provider, verifier: verifier}, nil
}

// Verify validates the raw token against the provider and maps its claims to
// an Identity. Any failure (expired, malformed, wrong audience) is returned
// as-is; callers treat it as terminal for the request.
func (v *OIDCVerifier) Verify(ctx context.Context, raw string) (*middleware.Identity, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	var cl claims
	if err := idToken.Claims(&cl); err != nil {
		return nil, fmt.Errorf("failed to parse claims: %w", err)
	}
	return cl.identity(), nil
}
