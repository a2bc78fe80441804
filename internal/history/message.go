package history

import "time"

// Session is a conversation thread keyed by an opaque identifier.
type Session struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoredMessage is a single persisted message within a session. Messages are
// append-only and ordered by timestamp ascending, ties broken by insertion order.
type StoredMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
