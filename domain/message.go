// Package domain contains core concepts of the messaging system.
// This file defines Message records and their construction rules.
// Messages are immutable after persistence, except for read state.
package domain

import (
	"time"

	"studio-chat/errors"
)

type MessageType string

const (
	TypeText  MessageType = "text"
	TypeImage MessageType = "image"
	TypeVideo MessageType = "video"
	TypeAudio MessageType = "audio"
	TypeFile  MessageType = "file"
)

// KnownMessageType reports whether t is one of the supported payload kinds.
func KnownMessageType(t MessageType) bool {
	switch t {
	case TypeText, TypeImage, TypeVideo, TypeAudio, TypeFile:
		return true
	}
	return false
}

// Message is a single chat message, direct or room-scoped.
// Invariant: exactly one of ReceiverID / RoomID is set.
type Message struct {
	ID         int64       `json:"id"`
	SenderID   int64       `json:"sender_id"`
	ReceiverID *int64      `json:"receiver_id,omitempty"`
	RoomID     *int64      `json:"room_id,omitempty"`
	Content    string      `json:"content"`
	Type       MessageType `json:"message_type"`
	IsRead     bool        `json:"is_read"`
	ReadAt     *time.Time  `json:"read_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// NewDirectMessage builds an unpersisted direct message. The ID is assigned
// by the repository on store.
func NewDirectMessage(senderID, receiverID int64, content string, t MessageType, at time.Time) (Message, error) {
	if content == "" {
		return Message{}, errors.ErrEmptyContent
	}
	if !KnownMessageType(t) {
		return Message{}, errors.ErrInvalidEnvelope
	}
	return Message{
		SenderID:   senderID,
		ReceiverID: &receiverID,
		Content:    content,
		Type:       t,
		CreatedAt:  at,
	}, nil
}

// NewRoomMessage builds an unpersisted room message.
func NewRoomMessage(senderID, roomID int64, content string, t MessageType, at time.Time) (Message, error) {
	if content == "" {
		return Message{}, errors.ErrEmptyContent
	}
	if !KnownMessageType(t) {
		return Message{}, errors.ErrInvalidEnvelope
	}
	return Message{
		SenderID:  senderID,
		RoomID:    &roomID,
		Content:   content,
		Type:      t,
		CreatedAt: at,
	}, nil
}

// IsDirect reports whether the message belongs to a two-party conversation.
func (m Message) IsDirect() bool {
	return m.ReceiverID != nil
}
