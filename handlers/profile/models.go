package profile

import "github.com/LDtheGHOST/Portfolio-Project-sub000/services/profiles"

// RoleRequest is the body of the role selection step that follows signup
type RoleRequest struct {
	Role string `json:"role"` // "artist" or "theater"
	Name string `json:"name"`
}

// ProfileResponse carries the full profile of either kind, tagged with the kind
type ProfileResponse struct {
	Kind    profiles.Kind `json:"kind"`
	Profile any           `json:"profile"`
}
