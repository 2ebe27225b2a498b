package messaging

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/LDtheGHOST/Portfolio-Project-sub000/db"
	appErrors "github.com/LDtheGHOST/Portfolio-Project-sub000/pkg/errors"
)

// Gateway stores conversations and messages between users. It knows nothing about
// connection requests; callers decide who may talk to whom.
type Gateway struct {
	db *sql.DB
}

func NewGateway(db *sql.DB) *Gateway {
	return &Gateway{db: db}
}

// GetOrCreateConversation returns the conversation between two users, creating it on
// first use. The pair is unordered.
func (g *Gateway) GetOrCreateConversation(ctx context.Context, userA, userB int) (*Conversation, error) {
	if userA == userB {
		return nil, appErrors.ErrSelfConversation
	}
	low, high := userA, userB
	if low > high {
		low, high = high, low
	}

	c, err := scanConversation(g.db.QueryRowContext(ctx, UpsertConversationQuery, low, high))
	if db.IsForeignKeyViolation(err) {
		return nil, appErrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "messaging.GetOrCreateConversation.Upsert")
	}
	return c, nil
}

// GetConversation returns a conversation the caller takes part in.
func (g *Gateway) GetConversation(ctx context.Context, conversationID, callerID int) (*Conversation, error) {
	c, err := scanConversation(g.db.QueryRowContext(ctx, SelectConversationQuery, conversationID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.ErrConversationNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "messaging.GetConversation.Scan")
	}
	if !c.HasParticipant(callerID) {
		return nil, appErrors.ErrNotParticipant
	}
	return c, nil
}

// AppendMessage adds a message from senderID to the conversation.
func (g *Gateway) AppendMessage(ctx context.Context, conversationID, senderID int, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, appErrors.ErrEmptyMessage
	}
	c, err := g.GetConversation(ctx, conversationID, senderID)
	if err != nil {
		return nil, err
	}

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "messaging.AppendMessage.Begin")
	}
	defer tx.Rollback()

	m := Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		RecipientID:    c.OtherParticipant(senderID),
		Content:        content,
	}
	if err := tx.QueryRowContext(ctx, InsertMessageQuery, conversationID, senderID, content).
		Scan(&m.ID, &m.Read, &m.CreatedAt); err != nil {
		return nil, errors.Wrap(err, "messaging.AppendMessage.Insert")
	}
	if _, err := tx.ExecContext(ctx, TouchConversationQuery, conversationID); err != nil {
		return nil, errors.Wrap(err, "messaging.AppendMessage.Touch")
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "messaging.AppendMessage.Commit")
	}
	return &m, nil
}

// ListMessages returns the conversation's messages, oldest first.
func (g *Gateway) ListMessages(ctx context.Context, conversationID, callerID int) ([]Message, error) {
	if _, err := g.GetConversation(ctx, conversationID, callerID); err != nil {
		return nil, err
	}

	rows, err := g.db.QueryContext(ctx, ListMessagesQuery, conversationID)
	if err != nil {
		return nil, errors.Wrap(err, "messaging.ListMessages.Query")
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.Read, &m.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "messaging.ListMessages.Scan")
		}
		messages = append(messages, m)
	}
	return messages, errors.Wrap(rows.Err(), "messaging.ListMessages.Rows")
}

// MarkRead marks the other participant's messages as read and returns how many changed.
func (g *Gateway) MarkRead(ctx context.Context, conversationID, callerID int) (int64, error) {
	if _, err := g.GetConversation(ctx, conversationID, callerID); err != nil {
		return 0, err
	}
	res, err := g.db.ExecContext(ctx, MarkReadQuery, conversationID, callerID)
	if err != nil {
		return 0, errors.Wrap(err, "messaging.MarkRead.Exec")
	}
	n, err := res.RowsAffected()
	return n, errors.Wrap(err, "messaging.MarkRead.RowsAffected")
}

func (g *Gateway) ListConversations(ctx context.Context, userID int) ([]ConversationPreview, error) {
	rows, err := g.db.QueryContext(ctx, ListConversationsQuery, userID)
	if err != nil {
		return nil, errors.Wrap(err, "messaging.ListConversations.Query")
	}
	defer rows.Close()

	previews := []ConversationPreview{}
	for rows.Next() {
		var p ConversationPreview
		if err := rows.Scan(&p.ID, &p.OtherUserID, &p.OtherUserName, &p.OtherUserPicture,
			&p.LastMessage, &p.LastMessageAt, &p.UnreadCount); err != nil {
			return nil, errors.Wrap(err, "messaging.ListConversations.Scan")
		}
		previews = append(previews, p)
	}
	return previews, errors.Wrap(rows.Err(), "messaging.ListConversations.Rows")
}

// UnreadCount is the number of messages sent to userID that are still unread.
func (g *Gateway) UnreadCount(ctx context.Context, userID int) (int, error) {
	var n int
	if err := g.db.QueryRowContext(ctx, UnreadCountQuery, userID).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "messaging.UnreadCount.Scan")
	}
	return n, nil
}

func scanConversation(row *sql.Row) (*Conversation, error) {
	var c Conversation
	if err := row.Scan(&c.ID, &c.User1ID, &c.User2ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
