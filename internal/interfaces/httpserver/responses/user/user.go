package user

import (
	"time"

	domainuser "chat-server/internal/domain/user"
)

// ProfileResponse is the public shape of the authenticated user's profile.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     *string   `json:"email,omitempty"`
	Name      *string   `json:"name,omitempty"`
	Anonymous bool      `json:"anonymous"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProfileResponse maps a domain user to its response shape.
func NewProfileResponse(usr *domainuser.User) ProfileResponse {
	return ProfileResponse{
		ID:        usr.PublicID,
		Email:     usr.Email,
		Name:      usr.Name,
		Anonymous: usr.Anonymous,
		CreatedAt: usr.CreatedAt,
	}
}
