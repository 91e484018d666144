package services_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"studio-chat/domain"
	"studio-chat/errors"
	"studio-chat/mocks"
	"studio-chat/search"
	"studio-chat/services"
)

type serviceFixture struct {
	messages *mocks.MockIMessageRepository
	rooms    *mocks.MockIRoomRepository
	registry *mocks.MockIRegistry
	index    *search.Index
	service  *services.ChatService
}

func newServiceFixture(t *testing.T) serviceFixture {
	t.Helper()
	req := require.New(t)
	ctrl := gomock.NewController(t)

	index, err := search.NewInMemoryIndex(slog.Default())
	req.NoError(err)
	t.Cleanup(func() { _ = index.Close() })

	f := serviceFixture{
		messages: mocks.NewMockIMessageRepository(ctrl),
		rooms:    mocks.NewMockIRoomRepository(ctrl),
		registry: mocks.NewMockIRegistry(ctrl),
		index:    index,
	}
	f.service = services.NewChatService(f.messages, f.rooms, f.registry, f.index)
	return f
}

func Test_RoomHistory_Requires_Membership(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	// Given a non-member
	f.rooms.EXPECT().IsMember(int64(5), int64(1)).Return(false, nil)

	_, err := f.service.RoomHistory(1, 5, 0, 10)

	req.ErrorIs(err, errors.ErrNotRoomMember)
}

func Test_RoomHistory_For_Member(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	f.rooms.EXPECT().IsMember(int64(5), int64(1)).Return(true, nil)
	f.messages.EXPECT().GetRoomMessages(int64(5), 0, 10).Return([]domain.Message{{ID: 3}}, nil)

	messages, err := f.service.RoomHistory(1, 5, 0, 10)

	req.NoError(err)
	req.Len(messages, 1)
}

func Test_RoomUnreadCount_Uses_Read_Cursor(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	f.rooms.EXPECT().IsMember(int64(5), int64(1)).Return(true, nil)
	f.rooms.EXPECT().ReadCursor(int64(5), int64(1)).Return(int64(40), nil)
	f.messages.EXPECT().RoomUnreadCount(int64(5), int64(1), int64(40)).Return(3, nil)

	count, err := f.service.RoomUnreadCount(1, 5)

	req.NoError(err)
	req.Equal(3, count)
}

func Test_MarkRoomRead_Advances_Cursor(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	f.rooms.EXPECT().IsMember(int64(5), int64(1)).Return(true, nil)
	f.rooms.EXPECT().AdvanceReadCursor(int64(5), int64(1), int64(30)).Return(nil)

	req.NoError(f.service.MarkRoomRead(1, 5, 30))
}

func Test_MarkRoomRead_Requires_Membership(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	f.rooms.EXPECT().IsMember(int64(5), int64(9)).Return(false, nil)

	err := f.service.MarkRoomRead(9, 5, 30)

	req.ErrorIs(err, errors.ErrNotRoomMember)
}

func Test_DeleteRoom_Requires_Admin(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	f.rooms.EXPECT().IsAdmin(int64(5), int64(2)).Return(false, nil)

	err := f.service.DeleteRoom(2, 5)

	req.ErrorIs(err, errors.ErrNotRoomAdmin)
}

func Test_AddMember_As_Admin(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	f.rooms.EXPECT().IsAdmin(int64(5), int64(1)).Return(true, nil)
	f.rooms.EXPECT().AddMember(int64(5), int64(2), "Lina", false).
		Return(domain.RoomMember{RoomID: 5, UserID: 2, Nickname: "Lina"}, nil)

	member, err := f.service.AddMember(1, 5, 2, "Lina")

	req.NoError(err)
	req.Equal(int64(2), member.UserID)
}

func Test_RemoveMember_Self_Leave_Needs_No_Admin(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	// Given a plain member leaving on their own, no admin check happens
	f.rooms.EXPECT().RemoveMember(int64(5), int64(2)).Return(nil)

	req.NoError(f.service.RemoveMember(2, 5, 2))
}

func Test_RemoveMember_Of_Other_Requires_Admin(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	f.rooms.EXPECT().IsAdmin(int64(5), int64(2)).Return(false, nil)

	err := f.service.RemoveMember(2, 5, 3)

	req.ErrorIs(err, errors.ErrNotRoomAdmin)
}

func Test_Search_Room_Resolves_Hits(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)
	roomID := int64(5)

	// Given an indexed room message
	req.NoError(f.index.IndexMessage(7, 2, &roomID, nil, "spacing for the waltz section"))

	f.rooms.EXPECT().IsMember(roomID, int64(1)).Return(true, nil)
	f.messages.EXPECT().Get(int64(7)).Return(domain.Message{ID: 7, RoomID: &roomID, Content: "spacing for the waltz section"}, nil)

	results, err := f.service.Search(context.Background(), services.SearchQuery{
		UserID: 1, RoomID: &roomID, Terms: "waltz",
	})

	req.NoError(err)
	req.Len(results, 1)
	req.Equal(int64(7), results[0].ID)
}

func Test_Search_Without_Scope(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	_, err := f.service.Search(context.Background(), services.SearchQuery{UserID: 1, Terms: "x"})

	req.ErrorIs(err, errors.ErrSearchScope)
}
