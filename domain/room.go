package domain

import "time"

type RoomID int64

// Room is a container for group or 1:1 exchange with explicit membership.
// A non-group room represents exactly one direct conversation and is unique
// per unordered user pair.
type Room struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name,omitempty"`
	IsGroup   bool      `json:"is_group"`
	CreatorID int64     `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomMember links a user to a room. Deleting the row revokes membership
// and ends delivery eligibility.
type RoomMember struct {
	RoomID   int64     `json:"room_id"`
	UserID   int64     `json:"user_id"`
	Nickname string    `json:"nickname,omitempty"`
	IsAdmin  bool      `json:"is_admin"`
	JoinedAt time.Time `json:"join_date"`
}

// DirectPair normalizes two user ids into their unordered form, the dedup
// key for direct rooms.
func DirectPair(a, b int64) (lo, hi int64) {
	if a > b {
		return b, a
	}
	return a, b
}
