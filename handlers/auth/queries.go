package auth

// Account queries
const (
	InsertUserQuery = `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	// SelectLoginQuery fetches the credentials and the role implied by the owned profile
	SelectLoginQuery = `
		SELECT u.id, u.email, u.password_hash,
			CASE
				WHEN a.id IS NOT NULL THEN 'artist'
				WHEN t.id IS NOT NULL THEN 'theater'
				ELSE ''
			END AS role
		FROM users u
		LEFT JOIN artists a ON a.user_id = u.id
		LEFT JOIN theaters t ON t.user_id = u.id
		WHERE u.email = $1
	`
)
