package protocol

import (
	"time"

	"studio-chat/domain"
)

// Outbound event type tags.
const (
	EventNewMessage   = "new_message"
	EventRoomMessage  = "room_message"
	EventMessageSent  = "message_sent"
	EventOnlineUsers  = "online_users"
	EventUserStatus   = "user_status"
	EventTypingStatus = "typing_status"
	EventError        = "error"
)

// Event is one outbound frame. Data holds the type-specific payload.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// MessagePayload is the delivered form of a persisted message, enriched with
// sender display info so clients render without a user lookup.
type MessagePayload struct {
	ID             int64              `json:"id"`
	SenderID       int64              `json:"sender_id"`
	SenderUsername string             `json:"sender_username"`
	SenderNickname string             `json:"sender_nickname,omitempty"`
	ReceiverID     *int64             `json:"receiver_id,omitempty"`
	RoomID         *int64             `json:"room_id,omitempty"`
	Content        string             `json:"content"`
	MessageType    domain.MessageType `json:"message_type"`
	IsRead         bool               `json:"is_read"`
	CreatedAt      time.Time          `json:"created_at"`
}

// AckPayload acknowledges a persisted submission back to its sender.
// Delivered reflects best-effort live delivery only, never durability.
type AckPayload struct {
	MessageID  int64     `json:"message_id"`
	ReceiverID *int64    `json:"receiver_id,omitempty"`
	RoomID     *int64    `json:"room_id,omitempty"`
	Delivered  bool      `json:"delivered"`
	Timestamp  time.Time `json:"timestamp"`
}

type UserStatusPayload struct {
	UserID    int64                 `json:"user_id"`
	Status    domain.PresenceStatus `json:"status"`
	Timestamp time.Time             `json:"timestamp"`
}

type TypingPayload struct {
	UserID     int64      `json:"user_id"`
	Username   string     `json:"username"`
	Nickname   string     `json:"nickname,omitempty"`
	TargetID   int64      `json:"target_id"`
	TargetType TargetType `json:"target_type"`
	IsTyping   bool       `json:"is_typing"`
	Timestamp  time.Time  `json:"timestamp"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func NewMessageEvent(p MessagePayload) Event {
	return Event{Type: EventNewMessage, Data: p}
}

func RoomMessageEvent(p MessagePayload) Event {
	return Event{Type: EventRoomMessage, Data: p}
}

func MessageSentEvent(p AckPayload) Event {
	return Event{Type: EventMessageSent, Data: p}
}

func OnlineUsersEvent(entries []domain.PresenceEntry) Event {
	return Event{Type: EventOnlineUsers, Data: entries}
}

func UserStatusEvent(change domain.PresenceChange) Event {
	return Event{Type: EventUserStatus, Data: UserStatusPayload{
		UserID:    change.UserID,
		Status:    change.Status,
		Timestamp: change.At,
	}}
}

func TypingStatusEvent(p TypingPayload) Event {
	return Event{Type: EventTypingStatus, Data: p}
}

func ErrorEvent(msg string) Event {
	return Event{Type: EventError, Data: ErrorPayload{Message: msg}}
}

// MessageEventFor renders a persisted message with its sender's identity.
func MessageEventFor(msg domain.Message, sender domain.User) Event {
	payload := MessagePayload{
		ID:             msg.ID,
		SenderID:       msg.SenderID,
		SenderUsername: sender.Username,
		SenderNickname: sender.Nickname,
		ReceiverID:     msg.ReceiverID,
		RoomID:         msg.RoomID,
		Content:        msg.Content,
		MessageType:    msg.Type,
		IsRead:         msg.IsRead,
		CreatedAt:      msg.CreatedAt,
	}
	if msg.IsDirect() {
		return NewMessageEvent(payload)
	}
	return RoomMessageEvent(payload)
}
