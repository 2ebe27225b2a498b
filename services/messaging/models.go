package messaging

import "time"

// Conversation is a two-party thread. User1ID is always the smaller id, so a pair
// of users maps to exactly one conversation whoever starts it.
type Conversation struct {
	ID        int       `json:"id"`
	User1ID   int       `json:"user1_id"`
	User2ID   int       `json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Conversation) HasParticipant(userID int) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// OtherParticipant returns the id of the participant that is not userID.
func (c *Conversation) OtherParticipant(userID int) int {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

type Message struct {
	ID             int       `json:"id"`
	ConversationID int       `json:"conversation_id"`
	SenderID       int       `json:"sender_id"`
	RecipientID    int       `json:"recipient_id,omitempty"`
	Content        string    `json:"content"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConversationPreview is one line of the caller's inbox
type ConversationPreview struct {
	ID               int        `json:"id"`
	OtherUserID      int        `json:"other_user_id"`
	OtherUserName    string     `json:"other_user_name"`
	OtherUserPicture *string    `json:"other_user_picture"`
	LastMessage      string     `json:"last_message,omitempty"`
	LastMessageAt    *time.Time `json:"last_message_at,omitempty"`
	UnreadCount      int        `json:"unread_count"`
}
