package poster

import "time"

// Poster is an image published to the gallery. The image itself lives on the CDN.
type Poster struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption"`
	Tags      []string  `json:"tags"`
	Likes     int       `json:"likes"`
	Liked     bool      `json:"liked"`
	Comments  int       `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

type CreatePosterRequest struct {
	ImageURL string   `json:"imageUrl"`
	Caption  string   `json:"caption"`
	Tags     []string `json:"tags"`
}

type LikeResponse struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

type Comment struct {
	ID        int       `json:"id"`
	PosterID  int       `json:"poster_id"`
	UserID    int       `json:"user_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}
