//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
// Package services exposes the read and management surface consumed by the
// REST handlers. Live message routing stays in the runtime router; this
// layer covers history, unread state, rooms and search.
package services

import (
	"context"

	"studio-chat/contract"
	"studio-chat/domain"
	"studio-chat/errors"
	"studio-chat/repositories"
	"studio-chat/search"
)

type IChatService interface {
	Conversation(userID, peerID int64, skip, limit int) ([]domain.Message, error)
	RoomHistory(userID, roomID int64, skip, limit int) ([]domain.Message, error)
	MarkConversationRead(readerID, peerID int64) (int, error)
	UnreadCount(userID int64) (int, error)
	RoomUnreadCount(userID, roomID int64) (int, error)
	MarkRoomRead(userID, roomID, upToID int64) error
	RecentContacts(userID int64, limit int) ([]repositories.Contact, error)

	CreateRoom(creatorID int64, name string, isGroup bool, memberIDs []int64) (domain.Room, error)
	GetOrCreateDirectRoom(userID, peerID int64) (domain.Room, error)
	DeleteRoom(actorID, roomID int64) error
	AddMember(actorID, roomID, userID int64, nickname string) (domain.RoomMember, error)
	RemoveMember(actorID, roomID, userID int64) error
	Members(userID, roomID int64) ([]domain.RoomMember, error)
	RoomsForUser(userID int64) ([]domain.Room, error)

	Search(ctx context.Context, query SearchQuery) ([]domain.Message, error)
	OnlineUsers() []domain.PresenceEntry
}

// SearchQuery scopes a full-text search to either one room or one direct
// conversation of the acting user.
type SearchQuery struct {
	UserID int64
	RoomID *int64
	PeerID *int64
	Terms  string
	Limit  int
}

type ChatService struct {
	messages repositories.IMessageRepository
	rooms    repositories.IRoomRepository
	registry contract.IRegistry
	index    *search.Index
}

func NewChatService(
	messages repositories.IMessageRepository,
	rooms repositories.IRoomRepository,
	registry contract.IRegistry,
	index *search.Index,
) *ChatService {
	return &ChatService{messages: messages, rooms: rooms, registry: registry, index: index}
}

func (s *ChatService) Conversation(userID, peerID int64, skip, limit int) ([]domain.Message, error) {
	return s.messages.GetConversation(userID, peerID, skip, limit)
}

// RoomHistory requires membership. Non-members learn nothing about the room,
// not even whether it has messages.
func (s *ChatService) RoomHistory(userID, roomID int64, skip, limit int) ([]domain.Message, error) {
	if err := s.requireMember(roomID, userID); err != nil {
		return nil, err
	}
	return s.messages.GetRoomMessages(roomID, skip, limit)
}

func (s *ChatService) MarkConversationRead(readerID, peerID int64) (int, error) {
	return s.messages.MarkConversationRead(peerID, readerID)
}

func (s *ChatService) UnreadCount(userID int64) (int, error) {
	return s.messages.UnreadCount(userID)
}

// RoomUnreadCount counts messages behind the member's read cursor, excluding
// their own.
func (s *ChatService) RoomUnreadCount(userID, roomID int64) (int, error) {
	if err := s.requireMember(roomID, userID); err != nil {
		return 0, err
	}
	cursor, err := s.rooms.ReadCursor(roomID, userID)
	if err != nil {
		return 0, err
	}
	return s.messages.RoomUnreadCount(roomID, userID, cursor)
}

// MarkRoomRead moves the member's read cursor up to the given message id.
// Moving backwards is a no-op, so replays are harmless.
func (s *ChatService) MarkRoomRead(userID, roomID, upToID int64) error {
	if err := s.requireMember(roomID, userID); err != nil {
		return err
	}
	return s.rooms.AdvanceReadCursor(roomID, userID, upToID)
}

func (s *ChatService) RecentContacts(userID int64, limit int) ([]repositories.Contact, error) {
	return s.messages.RecentContacts(userID, limit)
}

func (s *ChatService) CreateRoom(creatorID int64, name string, isGroup bool, memberIDs []int64) (domain.Room, error) {
	return s.rooms.CreateRoom(creatorID, name, isGroup, memberIDs)
}

func (s *ChatService) GetOrCreateDirectRoom(userID, peerID int64) (domain.Room, error) {
	return s.rooms.GetOrCreateDirectRoom(userID, peerID)
}

func (s *ChatService) DeleteRoom(actorID, roomID int64) error {
	if err := s.requireAdmin(roomID, actorID); err != nil {
		return err
	}
	return s.rooms.DeleteRoom(roomID)
}

func (s *ChatService) AddMember(actorID, roomID, userID int64, nickname string) (domain.RoomMember, error) {
	if err := s.requireAdmin(roomID, actorID); err != nil {
		return domain.RoomMember{}, err
	}
	return s.rooms.AddMember(roomID, userID, nickname, false)
}

// RemoveMember lets anyone leave on their own; removing someone else takes
// admin rights.
func (s *ChatService) RemoveMember(actorID, roomID, userID int64) error {
	if actorID != userID {
		if err := s.requireAdmin(roomID, actorID); err != nil {
			return err
		}
	}
	return s.rooms.RemoveMember(roomID, userID)
}

func (s *ChatService) Members(userID, roomID int64) ([]domain.RoomMember, error) {
	if err := s.requireMember(roomID, userID); err != nil {
		return nil, err
	}
	return s.rooms.GetMembers(roomID)
}

func (s *ChatService) RoomsForUser(userID int64) ([]domain.Room, error) {
	return s.rooms.RoomsForUser(userID)
}

// Search resolves index hits back to full message records. Ids the index
// still knows but the store no longer has are dropped silently.
func (s *ChatService) Search(ctx context.Context, query SearchQuery) ([]domain.Message, error) {
	if query.Limit <= 0 {
		query.Limit = 20
	}

	var (
		ids []int64
		err error
	)
	switch {
	case query.RoomID != nil:
		if err := s.requireMember(*query.RoomID, query.UserID); err != nil {
			return nil, err
		}
		ids, err = s.index.SearchRoom(ctx, *query.RoomID, query.Terms, query.Limit)
	case query.PeerID != nil:
		ids, err = s.index.SearchConversation(ctx, query.UserID, *query.PeerID, query.Terms, query.Limit)
	default:
		return nil, errors.ErrSearchScope
	}
	if err != nil {
		return nil, err
	}

	results := make([]domain.Message, 0, len(ids))
	for _, id := range ids {
		msg, err := s.messages.Get(id)
		if err != nil {
			continue
		}
		results = append(results, msg)
	}
	return results, nil
}

func (s *ChatService) OnlineUsers() []domain.PresenceEntry {
	return s.registry.ListOnline()
}

func (s *ChatService) requireMember(roomID, userID int64) error {
	member, err := s.rooms.IsMember(roomID, userID)
	if err != nil {
		return err
	}
	if !member {
		return errors.ErrNotRoomMember
	}
	return nil
}

func (s *ChatService) requireAdmin(roomID, userID int64) error {
	admin, err := s.rooms.IsAdmin(roomID, userID)
	if err != nil {
		return err
	}
	if !admin {
		return errors.ErrNotRoomAdmin
	}
	return nil
}
