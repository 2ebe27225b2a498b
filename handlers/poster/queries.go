package poster

// Poster queries
const (
	InsertPosterQuery = `
		INSERT INTO posters (user_id, image_url, caption, tags)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	// ListPostersQuery lists posters newest first with their counters; $1 is the caller,
	// $2 an optional author filter (0 for everyone)
	ListPostersQuery = `
		SELECT
			p.id, p.user_id, p.image_url, p.caption, p.tags, p.created_at,
			(SELECT COUNT(*) FROM poster_likes l WHERE l.poster_id = p.id) AS likes,
			EXISTS (SELECT 1 FROM poster_likes l WHERE l.poster_id = p.id AND l.user_id = $1) AS liked,
			(SELECT COUNT(*) FROM poster_comments c WHERE c.poster_id = p.id) AS comments
		FROM posters p
		WHERE ($2 = 0 OR p.user_id = $2)
		ORDER BY p.created_at DESC
		LIMIT 100
	`

	SelectPosterOwnerQuery = `SELECT user_id FROM posters WHERE id = $1`

	DeletePosterQuery = `DELETE FROM posters WHERE id = $1`
)

// Like queries
const (
	DeleteLikeQuery = `DELETE FROM poster_likes WHERE poster_id = $1 AND user_id = $2`

	InsertLikeQuery = `
		INSERT INTO poster_likes (poster_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	CountLikesQuery = `SELECT COUNT(*) FROM poster_likes WHERE poster_id = $1`
)

// Comment queries
const (
	// InsertCommentQuery stores a comment and resolves its author the way ListCommentsQuery does
	InsertCommentQuery = `
		WITH inserted AS (
			INSERT INTO poster_comments (poster_id, user_id, content)
			VALUES ($1, $2, $3)
			RETURNING id, user_id, created_at
		)
		SELECT i.id, COALESCE(a.stage_name, t.name, '') AS author, i.created_at
		FROM inserted i
		LEFT JOIN artists a ON a.user_id = i.user_id
		LEFT JOIN theaters t ON t.user_id = i.user_id
	`

	ListCommentsQuery = `
		SELECT c.id, c.poster_id, c.user_id, COALESCE(a.stage_name, t.name, '') AS author, c.content, c.created_at
		FROM poster_comments c
		LEFT JOIN artists a ON a.user_id = c.user_id
		LEFT JOIN theaters t ON t.user_id = c.user_id
		WHERE c.poster_id = $1
		ORDER BY c.created_at ASC
	`
)
