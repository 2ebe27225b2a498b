package notifications

import "time"

const (
	TypeFriendRequest  = "friend_request"
	TypeFriendAccepted = "friend_accepted"
	TypeNewMessage     = "new_message"
)

type Notification struct {
	ID        int        `json:"id"`
	Type      string     `json:"type"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at"`
}

// DashboardResponse is the polled summary shown on the home screen
type DashboardResponse struct {
	UnreadMessages      int `json:"unreadMessages"`
	PendingRequests     int `json:"pendingRequests"`
	UnreadNotifications int `json:"unreadNotifications"`
	Friends             int `json:"friends"`
}

// frame is what a connected client receives on the notification socket
type frame struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}
