// Package identity resolves request credentials into a single principal.
package identity

import (
	"context"

	"chat-server/internal/utils/platformerrors"
)

// Claims holds the attributes extracted from a verified bearer token.
type Claims struct {
	Subject   string
	Email     string
	Name      string
	Anonymous bool
}

// TokenValidator verifies a bearer token and returns its claims.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*Claims, error)
}

// TokenSet is the credential bundle minted for a fresh guest identity.
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	TokenType    string
}

// GuestProvider mints anonymous identities at the external identity provider.
type GuestProvider interface {
	CreateGuest(ctx context.Context) (*TokenSet, error)
}

// Resolver maps request credentials to exactly one principal kind.
// A valid registered-session token wins over a guest token; anything
// else resolves to PrincipalNone.
type Resolver struct {
	validator TokenValidator
	guests    GuestProvider
}

// NewResolver constructs a Resolver with required dependencies.
func NewResolver(validator TokenValidator, guests GuestProvider) *Resolver {
	return &Resolver{validator: validator, guests: guests}
}

// Resolve verifies the bearer token and returns the caller's principal.
// An empty, expired, or otherwise invalid token yields PrincipalNone
// without error detail leaking to the caller.
func (r *Resolver) Resolve(ctx context.Context, token string) Principal {
	if token == "" {
		return Principal{Kind: PrincipalNone}
	}

	claims, err := r.validator.Validate(ctx, token)
	if err != nil || claims.Subject == "" {
		return Principal{Kind: PrincipalNone}
	}

	if claims.Anonymous {
		return Principal{
			Kind:      PrincipalGuest,
			Subject:   claims.Subject,
			Anonymous: true,
		}
	}

	return Principal{
		Kind:    PrincipalRegistered,
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}
}

// ProvisionGuest creates a fresh anonymous identity and returns its token
// set. Provider failures surface as unauthorized so callers can answer
// with a retryable 401 rather than a server error.
func (r *Resolver) ProvisionGuest(ctx context.Context) (*TokenSet, error) {
	tokens, err := r.guests.CreateGuest(ctx)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized,
			"guest identity provider unavailable, retry later", err, "3f1c9a72-5d84-4e06-b2a1-8c7e0d94f612")
	}
	return tokens, nil
}
