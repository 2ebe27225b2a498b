package profiles

// Profile queries
const (
	// SelectProfileByUserQuery resolves the profile owned by a user, whichever table it lives in
	SelectProfileByUserQuery = `
		SELECT 'artist' AS kind, id, user_id, stage_name, city, profile_picture_url
		FROM artists WHERE user_id = $1
		UNION ALL
		SELECT 'theater' AS kind, id, user_id, name, city, profile_picture_url
		FROM theaters WHERE user_id = $1
	`

	SelectArtistSummaryQuery = `
		SELECT id, user_id, stage_name, city, profile_picture_url
		FROM artists WHERE id = $1
	`

	SelectTheaterSummaryQuery = `
		SELECT id, user_id, name, city, profile_picture_url
		FROM theaters WHERE id = $1
	`

	SelectArtistQuery = `
		SELECT id, user_id, stage_name, bio, discipline, city, profile_picture_url, created_at, updated_at
		FROM artists WHERE id = $1
	`

	SelectTheaterQuery = `
		SELECT id, user_id, name, bio, address, city, capacity, profile_picture_url, created_at, updated_at
		FROM theaters WHERE id = $1
	`

	// ListArtistsQuery lists artists, optionally filtered on city ($1 = '' disables the filter)
	ListArtistsQuery = `
		SELECT id, user_id, stage_name, bio, discipline, city, profile_picture_url, created_at, updated_at
		FROM artists
		WHERE ($1 = '' OR LOWER(city) = LOWER($1))
		ORDER BY stage_name ASC
	`

	ListTheatersQuery = `
		SELECT id, user_id, name, bio, address, city, capacity, profile_picture_url, created_at, updated_at
		FROM theaters
		WHERE ($1 = '' OR LOWER(city) = LOWER($1))
		ORDER BY name ASC
	`

	LockUserQuery = `SELECT id FROM users WHERE id = $1 FOR UPDATE`

	UserExistsQuery = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

	InsertArtistQuery = `
		INSERT INTO artists (user_id, stage_name)
		VALUES ($1, $2)
		RETURNING id
	`

	InsertTheaterQuery = `
		INSERT INTO theaters (user_id, name)
		VALUES ($1, $2)
		RETURNING id
	`

	UpdateArtistQuery = `
		UPDATE artists
		SET stage_name = COALESCE($2, stage_name),
			bio = COALESCE($3, bio),
			discipline = COALESCE($4, discipline),
			city = COALESCE($5, city),
			profile_picture_url = COALESCE($6, profile_picture_url),
			updated_at = NOW()
		WHERE user_id = $1
		RETURNING id, user_id, stage_name, bio, discipline, city, profile_picture_url, created_at, updated_at
	`

	UpdateTheaterQuery = `
		UPDATE theaters
		SET name = COALESCE($2, name),
			bio = COALESCE($3, bio),
			address = COALESCE($4, address),
			city = COALESCE($5, city),
			capacity = COALESCE($6, capacity),
			profile_picture_url = COALESCE($7, profile_picture_url),
			updated_at = NOW()
		WHERE user_id = $1
		RETURNING id, user_id, name, bio, address, city, capacity, profile_picture_url, created_at, updated_at
	`

	// DiscoverTheatersQuery lists theaters an artist has no open or accepted connection with,
	// same city first
	DiscoverTheatersQuery = `
		SELECT t.id, t.user_id, t.name, t.city, t.profile_picture_url
		FROM theaters t
		WHERE NOT EXISTS (
			SELECT 1 FROM favorites f
			WHERE f.theater_id = t.id AND f.artist_id = $1 AND f.status <> 'rejected'
		)
		ORDER BY (LOWER(t.city) = LOWER($2)) DESC, t.created_at DESC
		LIMIT $3
	`

	DiscoverArtistsQuery = `
		SELECT a.id, a.user_id, a.stage_name, a.city, a.profile_picture_url
		FROM artists a
		WHERE NOT EXISTS (
			SELECT 1 FROM favorites f
			WHERE f.artist_id = a.id AND f.theater_id = $1 AND f.status <> 'rejected'
		)
		ORDER BY (LOWER(a.city) = LOWER($2)) DESC, a.created_at DESC
		LIMIT $3
	`
)
