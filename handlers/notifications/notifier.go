package notifications

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Notifier records notifications and pushes them to connected clients. Delivery is
// best effort: failures are logged and never reach the operation that triggered them.
type Notifier struct {
	db     *sql.DB
	hub    *Hub
	logger *zap.Logger
}

func NewNotifier(db *sql.DB, hub *Hub, logger *zap.Logger) *Notifier {
	return &Notifier{db: db, hub: hub, logger: logger}
}

func (n *Notifier) Notify(ctx context.Context, userID int, notificationType, content string) {
	if _, err := n.db.ExecContext(ctx, InsertNotificationQuery, userID, notificationType, content); err != nil {
		n.logger.Warn("storing notification",
			zap.Int("user_id", userID),
			zap.String("type", notificationType),
			zap.Error(err))
	}
	n.hub.Push(userID, notificationType, content)
}

func (n *Notifier) List(ctx context.Context, userID int) ([]Notification, error) {
	rows, err := n.db.QueryContext(ctx, ListNotificationsQuery, userID)
	if err != nil {
		return nil, errors.Wrap(err, "notifications.List.Query")
	}
	defer rows.Close()

	out := []Notification{}
	for rows.Next() {
		var nt Notification
		if err := rows.Scan(&nt.ID, &nt.Type, &nt.Content, &nt.CreatedAt, &nt.ReadAt); err != nil {
			return nil, errors.Wrap(err, "notifications.List.Scan")
		}
		out = append(out, nt)
	}
	return out, errors.Wrap(rows.Err(), "notifications.List.Rows")
}

func (n *Notifier) MarkRead(ctx context.Context, userID int) error {
	_, err := n.db.ExecContext(ctx, MarkNotificationsReadQuery, userID)
	return errors.Wrap(err, "notifications.MarkRead.Exec")
}

func (n *Notifier) UnreadCount(ctx context.Context, userID int) (int, error) {
	var count int
	if err := n.db.QueryRowContext(ctx, UnreadNotificationsQuery, userID).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "notifications.UnreadCount.Scan")
	}
	return count, nil
}
