package runtime

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"studio-chat/domain"
	"studio-chat/errors"
	"studio-chat/mocks"
	"studio-chat/moderation"
	"studio-chat/observability"
	"studio-chat/protocol"
)

type routerFixture struct {
	registry *mocks.MockIRegistry
	messages *mocks.MockIMessageRepository
	rooms    *mocks.MockIRoomRepository
	router   *Router
}

func newRouterFixture(t *testing.T, moderator *moderation.Moderator) routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := routerFixture{
		registry: mocks.NewMockIRegistry(ctrl),
		messages: mocks.NewMockIMessageRepository(ctrl),
		rooms:    mocks.NewMockIRoomRepository(ctrl),
	}
	f.router = NewRouter(f.registry, f.messages, f.rooms, moderator, nil,
		observability.NewStats(slog.Default()), slog.Default())
	return f
}

func Test_Submit_Direct_Message_Persists_Then_Delivers(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, nil)
	sender := domain.User{ID: 1, Username: "alice"}

	// Given the store assigns an id
	stored := f.messages.EXPECT().Store(gomock.Any()).DoAndReturn(
		func(msg domain.Message) (domain.Message, error) {
			req.Equal(int64(1), msg.SenderID)
			req.Equal(int64(2), *msg.ReceiverID)
			msg.ID = 7
			return msg, nil
		})

	// And the receiver is online
	var deliveredEvent protocol.Event
	delivery := f.registry.EXPECT().Send(gomock.Any(), int64(2), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, e protocol.Event) bool {
			deliveredEvent = e
			return true
		})

	// And the sender gets an ack after delivery
	var ack protocol.Event
	f.registry.EXPECT().Send(gomock.Any(), int64(1), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, e protocol.Event) bool {
			ack = e
			return true
		})
	gomock.InOrder(stored, delivery)

	// When submitting
	err := f.router.Submit(context.Background(), sender, protocol.DirectMessageCommand{
		ReceiverID: 2, Content: "hello", Type: domain.TypeText,
	})

	// Then the receiver sees the persisted message and the ack confirms live
	// delivery
	req.NoError(err)
	req.Equal(protocol.EventNewMessage, deliveredEvent.Type)
	payload := deliveredEvent.Data.(protocol.MessagePayload)
	req.Equal(int64(7), payload.ID)
	req.Equal("alice", payload.SenderUsername)

	req.Equal(protocol.EventMessageSent, ack.Type)
	ackPayload := ack.Data.(protocol.AckPayload)
	req.Equal(int64(7), ackPayload.MessageID)
	req.True(ackPayload.Delivered)
}

func Test_Submit_Direct_Message_Offline_Receiver(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, nil)

	f.messages.EXPECT().Store(gomock.Any()).DoAndReturn(
		func(msg domain.Message) (domain.Message, error) {
			msg.ID = 8
			return msg, nil
		})
	f.registry.EXPECT().Send(gomock.Any(), int64(2), gomock.Any()).Return(false)

	var ack protocol.Event
	f.registry.EXPECT().Send(gomock.Any(), int64(1), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, e protocol.Event) bool {
			ack = e
			return true
		})

	err := f.router.Submit(context.Background(), domain.User{ID: 1}, protocol.DirectMessageCommand{
		ReceiverID: 2, Content: "hello", Type: domain.TypeText,
	})

	// Then the ack reports the message as stored but not delivered
	req.NoError(err)
	req.False(ack.Data.(protocol.AckPayload).Delivered)
}

func Test_Submit_Direct_Message_Store_Failure(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, nil)

	// Given a broken store
	f.messages.EXPECT().Store(gomock.Any()).Return(domain.Message{}, errors.ErrMessageNotFound)

	// Then only an error event goes out, never a delivery
	var errEvent protocol.Event
	f.registry.EXPECT().Send(gomock.Any(), int64(1), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, e protocol.Event) bool {
			errEvent = e
			return true
		})

	err := f.router.Submit(context.Background(), domain.User{ID: 1}, protocol.DirectMessageCommand{
		ReceiverID: 2, Content: "hello", Type: domain.TypeText,
	})

	req.Error(err)
	req.Equal(protocol.EventError, errEvent.Type)
}

func Test_Submit_Room_Message_Requires_Membership(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, nil)

	// Given a sender who is not a member
	f.rooms.EXPECT().IsMember(int64(5), int64(1)).Return(false, nil)
	f.registry.EXPECT().Send(gomock.Any(), int64(1), gomock.Any()).Return(true)

	err := f.router.Submit(context.Background(), domain.User{ID: 1}, protocol.RoomMessageCommand{
		RoomID: 5, Content: "hi", Type: domain.TypeText,
	})

	req.ErrorIs(err, errors.ErrNotRoomMember)
}

func Test_Submit_Room_Message_Fans_Out_To_Members_Except_Sender(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, nil)

	f.rooms.EXPECT().IsMember(int64(5), int64(1)).Return(true, nil)
	f.messages.EXPECT().Store(gomock.Any()).DoAndReturn(
		func(msg domain.Message) (domain.Message, error) {
			msg.ID = 9
			return msg, nil
		})
	f.rooms.EXPECT().MemberIDs(int64(5)).Return([]int64{1, 2, 3}, nil)

	// Then members 2 and 3 receive the event, the sender only the ack
	f.registry.EXPECT().Send(gomock.Any(), int64(2), gomock.Any()).Return(true)
	f.registry.EXPECT().Send(gomock.Any(), int64(3), gomock.Any()).Return(false)
	var ack protocol.Event
	f.registry.EXPECT().Send(gomock.Any(), int64(1), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, e protocol.Event) bool {
			ack = e
			return true
		})

	err := f.router.Submit(context.Background(), domain.User{ID: 1}, protocol.RoomMessageCommand{
		RoomID: 5, Content: "hi", Type: domain.TypeText,
	})

	req.NoError(err)
	req.Equal(protocol.EventMessageSent, ack.Type)
	req.True(ack.Data.(protocol.AckPayload).Delivered)
}

func Test_Submit_Moderates_Before_Persisting(t *testing.T) {
	req := require.New(t)
	moderator, err := moderation.NewModerator([]string{"idiot"}, '*')
	req.NoError(err)
	f := newRouterFixture(t, moderator)

	// Then the stored content is already masked
	f.messages.EXPECT().Store(gomock.Any()).DoAndReturn(
		func(msg domain.Message) (domain.Message, error) {
			req.Equal("you *****", msg.Content)
			msg.ID = 10
			return msg, nil
		})
	f.registry.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(true).Times(2)

	err = f.router.Submit(context.Background(), domain.User{ID: 1}, protocol.DirectMessageCommand{
		ReceiverID: 2, Content: "you idiot", Type: domain.TypeText,
	})
	req.NoError(err)
}

func Test_Submit_Typing_To_User(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, nil)

	var event protocol.Event
	f.registry.EXPECT().Send(gomock.Any(), int64(2), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, e protocol.Event) bool {
			event = e
			return true
		})

	err := f.router.Submit(context.Background(), domain.User{ID: 1, Username: "alice"}, protocol.TypingCommand{
		TargetID: 2, TargetType: protocol.TargetUser, IsTyping: true,
	})

	req.NoError(err)
	req.Equal(protocol.EventTypingStatus, event.Type)
	payload := event.Data.(protocol.TypingPayload)
	req.True(payload.IsTyping)
	req.Equal("alice", payload.Username)
}

func Test_Submit_Typing_To_Room_Requires_Membership(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, nil)

	f.rooms.EXPECT().IsMember(int64(5), int64(1)).Return(false, nil)
	f.registry.EXPECT().Send(gomock.Any(), int64(1), gomock.Any()).Return(true)

	err := f.router.Submit(context.Background(), domain.User{ID: 1}, protocol.TypingCommand{
		TargetID: 5, TargetType: protocol.TargetRoom, IsTyping: true,
	})

	req.ErrorIs(err, errors.ErrNotRoomMember)
}

func Test_Submit_Read_Advances_Room_Cursor(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture(t, nil)
	roomID := int64(5)

	// Given a batch mixing a direct and two room messages
	f.messages.EXPECT().MarkRead([]int64{20, 21, 22}, int64(1)).Return(1, nil)
	receiver := int64(1)
	f.messages.EXPECT().Get(int64(20)).Return(domain.Message{ID: 20, ReceiverID: &receiver}, nil)
	f.messages.EXPECT().Get(int64(21)).Return(domain.Message{ID: 21, RoomID: &roomID}, nil)
	f.messages.EXPECT().Get(int64(22)).Return(domain.Message{ID: 22, RoomID: &roomID}, nil)

	// Then the cursor advances once, to the highest id
	f.rooms.EXPECT().IsMember(roomID, int64(1)).Return(true, nil)
	f.rooms.EXPECT().AdvanceReadCursor(roomID, int64(1), int64(22)).Return(nil)

	err := f.router.Submit(context.Background(), domain.User{ID: 1}, protocol.ReadMessagesCommand{
		MessageIDs: []int64{20, 21, 22},
	})
	req.NoError(err)
}
