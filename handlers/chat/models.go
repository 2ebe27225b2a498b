package chat

// CreateConversationRequest names the user to talk to
type CreateConversationRequest struct {
	UserID int `json:"userId"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

// inbound is a frame sent by a client on the conversation socket: either a message
// or a typing indicator
type inbound struct {
	Content string `json:"content"`
	Typing  *bool  `json:"typing,omitempty"`
}

type TypingMessage struct {
	ConversationID int  `json:"conversation_id"`
	UserID         int  `json:"user_id"`
	Typing         bool `json:"typing"`
}
