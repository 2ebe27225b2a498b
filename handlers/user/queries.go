package user

// User queries
const (
	SelectAccountQuery = `
		SELECT id, email, created_at
		FROM users
		WHERE id = $1
	`

	// SelectBasicUserQuery resolves a user's public summary from whichever profile table holds it
	SelectBasicUserQuery = `
		SELECT
			u.id,
			CASE
				WHEN a.id IS NOT NULL THEN 'artist'
				WHEN t.id IS NOT NULL THEN 'theater'
				ELSE ''
			END AS role,
			COALESCE(a.stage_name, t.name) AS name,
			COALESCE(a.city, t.city) AS city,
			COALESCE(a.profile_picture_url, t.profile_picture_url) AS profile_picture_url
		FROM users u
		LEFT JOIN artists a ON a.user_id = u.id
		LEFT JOIN theaters t ON t.user_id = u.id
		WHERE u.id = $1
	`
)
