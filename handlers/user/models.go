package user

import (
	"time"

	"github.com/LDtheGHOST/Portfolio-Project-sub000/services/profiles"
)

// MeResponse is the account of the authenticated user with its profile summary, if any
type MeResponse struct {
	ID        int               `json:"id"`
	Email     string            `json:"email"`
	CreatedAt time.Time         `json:"created_at"`
	Role      profiles.Kind     `json:"role,omitempty"`
	Profile   *profiles.Profile `json:"profile,omitempty"`
}

// BasicUserResponse is what any signed-in user may see about another
type BasicUserResponse struct {
	ID                int           `json:"id"`
	Role              profiles.Kind `json:"role,omitempty"`
	Name              *string       `json:"name"`
	City              *string       `json:"city"`
	ProfilePictureURL *string       `json:"profile_picture_url"`
}
