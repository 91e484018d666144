package domain

import "time"

type PresenceStatus string

const (
	StatusOnline  PresenceStatus = "online"
	StatusOffline PresenceStatus = "offline"
)

// PresenceEntry is a derived view of the connection registry. It is never
// persisted; the registry is the single source of truth.
type PresenceEntry struct {
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username"`
	Nickname    string    `json:"nickname,omitempty"`
	ConnectedAt time.Time `json:"connected_at"`
}

// PresenceChange is emitted by the registry on connect and disconnect and
// consumed asynchronously by the presence broadcast worker.
type PresenceChange struct {
	UserID int64
	Status PresenceStatus
	At     time.Time
}
