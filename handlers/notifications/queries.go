package notifications

// Notification queries
const (
	InsertNotificationQuery = `
		INSERT INTO notifications (user_id, type, content)
		VALUES ($1, $2, $3)
	`

	ListNotificationsQuery = `
		SELECT id, type, content, created_at, read_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 100
	`

	MarkNotificationsReadQuery = `
		UPDATE notifications
		SET read_at = CURRENT_TIMESTAMP
		WHERE user_id = $1 AND read_at IS NULL
	`

	UnreadNotificationsQuery = `
		SELECT COUNT(*) FROM notifications
		WHERE user_id = $1 AND read_at IS NULL
	`
)
