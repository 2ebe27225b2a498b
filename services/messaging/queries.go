package messaging

// Conversation queries
const (
	conversationColumns = `id, user1_id, user2_id, created_at, updated_at`

	// UpsertConversationQuery returns the existing conversation for the pair or creates it
	UpsertConversationQuery = `
		INSERT INTO conversations (user1_id, user2_id)
		VALUES ($1, $2)
		ON CONFLICT (user1_id, user2_id) DO UPDATE SET user1_id = EXCLUDED.user1_id
		RETURNING ` + conversationColumns

	SelectConversationQuery = `
		SELECT ` + conversationColumns + `
		FROM conversations WHERE id = $1
	`

	TouchConversationQuery = `UPDATE conversations SET updated_at = NOW() WHERE id = $1`

	// ListConversationsQuery lists a user's conversations with the other participant's
	// display name, the last message and the number of messages the user has not read
	ListConversationsQuery = `
		WITH last_message AS (
			SELECT DISTINCT ON (conversation_id) conversation_id, content, created_at
			FROM messages
			ORDER BY conversation_id, created_at DESC, id DESC
		),
		unread AS (
			SELECT conversation_id, COUNT(*) AS n
			FROM messages
			WHERE sender_id <> $1 AND read = false
			GROUP BY conversation_id
		)
		SELECT
			c.id,
			o.id AS other_user_id,
			COALESCE(a.stage_name, t.name, o.email) AS other_user_name,
			COALESCE(a.profile_picture_url, t.profile_picture_url) AS other_user_picture,
			COALESCE(lm.content, '') AS last_message,
			lm.created_at AS last_message_at,
			COALESCE(u.n, 0) AS unread_count
		FROM conversations c
		JOIN users o ON o.id = CASE WHEN c.user1_id = $1 THEN c.user2_id ELSE c.user1_id END
		LEFT JOIN artists a ON a.user_id = o.id
		LEFT JOIN theaters t ON t.user_id = o.id
		LEFT JOIN last_message lm ON lm.conversation_id = c.id
		LEFT JOIN unread u ON u.conversation_id = c.id
		WHERE c.user1_id = $1 OR c.user2_id = $1
		ORDER BY COALESCE(lm.created_at, c.created_at) DESC
	`
)

// Message queries
const (
	InsertMessageQuery = `
		INSERT INTO messages (conversation_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, read, created_at
	`

	ListMessagesQuery = `
		SELECT id, conversation_id, sender_id, content, read, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC, id ASC
	`

	// MarkReadQuery marks as read everything the other participant sent
	MarkReadQuery = `
		UPDATE messages
		SET read = true
		WHERE conversation_id = $1 AND sender_id <> $2 AND read = false
	`

	UnreadCountQuery = `
		SELECT COUNT(*)
		FROM messages m
		JOIN conversations c ON c.id = m.conversation_id
		WHERE (c.user1_id = $1 OR c.user2_id = $1)
		AND m.sender_id <> $1
		AND m.read = false
	`
)
