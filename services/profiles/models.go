package profiles

import "time"

// Kind tells which side of the platform a profile belongs to.
type Kind string

const (
	KindArtist  Kind = "artist"
	KindTheater Kind = "theater"
)

func (k Kind) Valid() bool {
	return k == KindArtist || k == KindTheater
}

// Opposite returns the kind a profile of kind k can connect with.
func (k Kind) Opposite() Kind {
	if k == KindArtist {
		return KindTheater
	}
	return KindArtist
}

// Profile is the role-independent summary of an artist or theater.
type Profile struct {
	ID                int     `json:"id"`
	UserID            int     `json:"user_id"`
	Kind              Kind    `json:"kind"`
	Name              string  `json:"name"`
	City              string  `json:"city"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

// Artist is the full artist profile.
type Artist struct {
	ID                int       `json:"id"`
	UserID            int       `json:"user_id"`
	StageName         string    `json:"stage_name"`
	Bio               string    `json:"bio"`
	Discipline        string    `json:"discipline"`
	City              string    `json:"city"`
	ProfilePictureURL *string   `json:"profile_picture_url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Theater is the full theater profile.
type Theater struct {
	ID                int       `json:"id"`
	UserID            int       `json:"user_id"`
	Name              string    `json:"name"`
	Bio               string    `json:"bio"`
	Address           string    `json:"address"`
	City              string    `json:"city"`
	Capacity          int       `json:"capacity"`
	ProfilePictureURL *string   `json:"profile_picture_url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ArtistUpdate holds the fields of a partial artist update. Nil means unchanged.
type ArtistUpdate struct {
	StageName         *string `json:"stage_name,omitempty"`
	Bio               *string `json:"bio,omitempty"`
	Discipline        *string `json:"discipline,omitempty"`
	City              *string `json:"city,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
}

// TheaterUpdate holds the fields of a partial theater update. Nil means unchanged.
type TheaterUpdate struct {
	Name              *string `json:"name,omitempty"`
	Bio               *string `json:"bio,omitempty"`
	Address           *string `json:"address,omitempty"`
	City              *string `json:"city,omitempty"`
	Capacity          *int    `json:"capacity,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
}
