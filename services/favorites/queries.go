package favorites

// Favorite queries
const (
	favoriteColumns = `id, theater_id, artist_id, status, requested_by, created_at, updated_at`

	SelectByPairQuery = `
		SELECT ` + favoriteColumns + `
		FROM favorites
		WHERE theater_id = $1 AND artist_id = $2
	`

	SelectByIDQuery = `
		SELECT ` + favoriteColumns + `
		FROM favorites
		WHERE id = $1
	`

	InsertFavoriteQuery = `
		INSERT INTO favorites (theater_id, artist_id, status, requested_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	// ReopenFavoriteQuery only matches rejected records
	ReopenFavoriteQuery = `
		UPDATE favorites
		SET status = 'pending', requested_by = $2, created_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'rejected'
		RETURNING ` + favoriteColumns

	// TransitionFavoriteQuery is a compare-and-set on status
	TransitionFavoriteQuery = `
		UPDATE favorites
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + favoriteColumns

	DeleteAcceptedQuery = `
		DELETE FROM favorites
		WHERE theater_id = $1 AND artist_id = $2 AND status = 'accepted'
	`

	// ListForTheaterQuery returns a theater's favorites with the artist on the other side
	ListForTheaterQuery = `
		SELECT f.id, f.theater_id, f.artist_id, f.status, f.requested_by, f.created_at, f.updated_at,
			a.id, a.user_id, a.stage_name, a.city, a.profile_picture_url
		FROM favorites f
		JOIN artists a ON a.id = f.artist_id
		WHERE f.theater_id = $1 AND f.status <> 'rejected'
		ORDER BY f.updated_at DESC
	`

	// ListForArtistQuery returns an artist's favorites with the theater on the other side
	ListForArtistQuery = `
		SELECT f.id, f.theater_id, f.artist_id, f.status, f.requested_by, f.created_at, f.updated_at,
			t.id, t.user_id, t.name, t.city, t.profile_picture_url
		FROM favorites f
		JOIN theaters t ON t.id = f.theater_id
		WHERE f.artist_id = $1 AND f.status <> 'rejected'
		ORDER BY f.updated_at DESC
	`
)
