// Package protocol defines the wire format of the messaging channel.
// Inbound envelopes are decoded into a closed set of commands; unknown or
// malformed envelopes are rejected at this boundary and never reach the
// router.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"studio-chat/domain"
	"studio-chat/errors"
)

const (
	TypeDirectMessage = "direct_message"
	TypeRoomMessage   = "room_message"
	TypeTyping        = "typing"
	TypeReadMessage   = "read_message"
)

type TargetType string

const (
	TargetUser TargetType = "user"
	TargetRoom TargetType = "room"
)

var validate = validator.New()

// Envelope is the raw tagged-union shape shared by all inbound frames.
type Envelope struct {
	Type        string  `json:"type"`
	ReceiverID  *int64  `json:"receiver_id,omitempty"`
	RoomID      *int64  `json:"room_id,omitempty"`
	TargetID    *int64  `json:"target_id,omitempty"`
	TargetType  string  `json:"target_type,omitempty"`
	Content     string  `json:"content,omitempty"`
	MessageType string  `json:"message_type,omitempty"`
	IsTyping    *bool   `json:"is_typing,omitempty"`
	MessageID   *int64  `json:"message_id,omitempty"`
	MessageIDs  []int64 `json:"message_ids,omitempty"`
}

// Command is the decoded intent of one inbound envelope.
// The set of implementations is closed; the router matches exhaustively.
type Command interface {
	isCommand()
}

type DirectMessageCommand struct {
	ReceiverID int64              `validate:"required,gt=0"`
	Content    string             `validate:"required"`
	Type       domain.MessageType `validate:"required,oneof=text image video audio file"`
}

type RoomMessageCommand struct {
	RoomID  int64              `validate:"required,gt=0"`
	Content string             `validate:"required"`
	Type    domain.MessageType `validate:"required,oneof=text image video audio file"`
}

type TypingCommand struct {
	TargetID   int64      `validate:"required,gt=0"`
	TargetType TargetType `validate:"required,oneof=user room"`
	IsTyping   bool
}

type ReadMessagesCommand struct {
	MessageIDs []int64 `validate:"required,min=1,dive,gt=0"`
}

func (DirectMessageCommand) isCommand() {}
func (RoomMessageCommand) isCommand()   {}
func (TypingCommand) isCommand()        {}
func (ReadMessagesCommand) isCommand()  {}

// Decode parses one inbound frame into its command. An unrecognized type tag
// yields ErrUnknownEnvelopeType; field-level violations yield
// ErrInvalidEnvelope. Both are protocol errors the caller reports back to the
// sender without closing the channel.
func Decode(raw []byte) (Command, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidEnvelope, err)
	}

	switch env.Type {
	case TypeDirectMessage:
		cmd := DirectMessageCommand{
			Content: env.Content,
			Type:    messageType(env.MessageType),
		}
		if env.ReceiverID != nil {
			cmd.ReceiverID = *env.ReceiverID
		}
		return checked(cmd)
	case TypeRoomMessage:
		cmd := RoomMessageCommand{
			Content: env.Content,
			Type:    messageType(env.MessageType),
		}
		if env.RoomID != nil {
			cmd.RoomID = *env.RoomID
		}
		return checked(cmd)
	case TypeTyping:
		cmd := TypingCommand{TargetType: TargetType(env.TargetType)}
		if env.TargetID != nil {
			cmd.TargetID = *env.TargetID
		}
		if cmd.TargetType == "" {
			cmd.TargetType = TargetUser
		}
		if env.IsTyping != nil {
			cmd.IsTyping = *env.IsTyping
		}
		return checked(cmd)
	case TypeReadMessage:
		cmd := ReadMessagesCommand{MessageIDs: env.MessageIDs}
		if env.MessageID != nil {
			cmd.MessageIDs = append(cmd.MessageIDs, *env.MessageID)
		}
		return checked(cmd)
	default:
		return nil, fmt.Errorf("%w: %q", errors.ErrUnknownEnvelopeType, env.Type)
	}
}

func checked[C Command](cmd C) (Command, error) {
	if err := validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidEnvelope, err)
	}
	return cmd, nil
}

// messageType applies the historical default: an omitted message_type means
// plain text. Unknown values survive to validation, which rejects them.
func messageType(raw string) domain.MessageType {
	if raw == "" {
		return domain.TypeText
	}
	return domain.MessageType(raw)
}
