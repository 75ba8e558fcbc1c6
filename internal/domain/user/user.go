// Package user provides user profile models and idempotent provisioning.
package user

import (
	"context"
	"time"

	"chat-server/internal/domain/identity"
	"chat-server/internal/utils/idgen"
	"chat-server/internal/utils/platformerrors"
)

// User models an application profile resolved from an external identity.
type User struct {
	ID        uint
	PublicID  string
	Subject   string
	Email     *string
	Name      *string
	Anonymous bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository defines storage operations for user profiles.
//
// Create must return an ErrorTypeConflict platform error when the subject
// or email unique constraint is violated, so the service can recover the
// winning row instead of surfacing the race.
//
// DeleteGuestsInactiveSince must treat conversation activity as profile
// activity: an anonymous profile with any conversation updated at or after
// the cutoff is kept even when the profile row itself is older.
type Repository interface {
	FindBySubject(ctx context.Context, subject string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	DeleteGuestsInactiveSince(ctx context.Context, cutoff time.Time) (int64, error)
}

// Service persists and resolves user profiles from principals.
type Service struct {
	repo Repository
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// EnsureProfile returns the profile row for the principal, creating it on
// first sight. It is idempotent under concurrent calls for the same
// subject: the insert race loser re-reads and returns the winning row.
func (s *Service) EnsureProfile(ctx context.Context, principal identity.Principal) (*User, error) {
	if principal.Subject == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"principal subject is required", nil, "9c4b2e17-6a3d-4f58-8e90-1b5d7c2a4f83")
	}

	existing, err := s.repo.FindBySubject(ctx, principal.Subject)
	if err == nil {
		return s.reconcile(ctx, existing, principal)
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up user profile")
	}

	publicID, err := idgen.GenerateSecureID("user", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate user ID")
	}

	fresh := &User{
		PublicID:  publicID,
		Subject:   principal.Subject,
		Email:     optional(principal.Email),
		Name:      optional(principal.Name),
		Anonymous: principal.Anonymous,
	}

	err = s.repo.Create(ctx, fresh)
	if err == nil {
		return fresh, nil
	}

	// A concurrent call inserted the same subject (or claimed the email)
	// between our read and write. The winner's row is authoritative.
	if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
		winner, readErr := s.repo.FindBySubject(ctx, principal.Subject)
		if readErr != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, readErr, "failed to re-read user profile after insert race")
		}
		return winner, nil
	}

	return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create user profile")
}

// reconcile updates mutable profile fields when the identity provider
// reports different values, writing only on an actual change.
func (s *Service) reconcile(ctx context.Context, existing *User, principal identity.Principal) (*User, error) {
	changed := false

	if email := optional(principal.Email); email != nil && !equalStr(existing.Email, email) {
		existing.Email = email
		changed = true
	}
	if name := optional(principal.Name); name != nil && !equalStr(existing.Name, name) {
		existing.Name = name
		changed = true
	}
	if existing.Anonymous != principal.Anonymous {
		existing.Anonymous = principal.Anonymous
		changed = true
	}

	if !changed {
		return existing, nil
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update user profile")
	}
	return existing, nil
}

// GetByID fetches a profile by internal ID.
func (s *Service) GetByID(ctx context.Context, id uint) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "user not found")
	}
	return u, nil
}

// PurgeStaleGuests removes anonymous profiles with no activity since the
// cutoff. Conversations and messages go with them via cascade.
func (s *Service) PurgeStaleGuests(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := s.repo.DeleteGuestsInactiveSince(ctx, cutoff)
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to purge stale guest profiles")
	}
	return deleted, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func equalStr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
