package repositories

import (
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"studio-chat/domain"
	"studio-chat/errors"
)

func newMessageRepo(t *testing.T) *MessageRepository {
	t.Helper()
	req := require.New(t)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := NewMessageRepository(db, slog.Default())
	req.NoError(err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func storeDirect(t *testing.T, repo *MessageRepository, senderID, receiverID int64, content string) domain.Message {
	t.Helper()
	req := require.New(t)

	msg, err := domain.NewDirectMessage(senderID, receiverID, content, domain.TypeText, time.Now().UTC())
	req.NoError(err)
	stored, err := repo.Store(msg)
	req.NoError(err)
	return stored
}

func storeRoom(t *testing.T, repo *MessageRepository, senderID, roomID int64, content string) domain.Message {
	t.Helper()
	req := require.New(t)

	msg, err := domain.NewRoomMessage(senderID, roomID, content, domain.TypeText, time.Now().UTC())
	req.NoError(err)
	stored, err := repo.Store(msg)
	req.NoError(err)
	return stored
}

func Test_Store_Assigns_Increasing_Ids(t *testing.T) {
	req := require.New(t)
	repo := newMessageRepo(t)

	first := storeDirect(t, repo, 1, 2, "first")
	second := storeDirect(t, repo, 2, 1, "second")

	req.Positive(first.ID)
	req.Greater(second.ID, first.ID)
}

func Test_Store_Rejects_Ambiguous_Target(t *testing.T) {
	req := require.New(t)
	repo := newMessageRepo(t)

	// Given a message with neither receiver nor room
	_, err := repo.Store(domain.Message{SenderID: 1, Content: "lost"})
	req.Error(err)

	// And one with both
	receiver, room := int64(2), int64(3)
	_, err = repo.Store(domain.Message{SenderID: 1, ReceiverID: &receiver, RoomID: &room, Content: "torn"})
	req.Error(err)
}

func Test_Get_Missing_Message(t *testing.T) {
	req := require.New(t)
	repo := newMessageRepo(t)

	_, err := repo.Get(999)

	req.ErrorIs(err, errors.ErrMessageNotFound)
}

func Test_GetConversation_Is_Symmetric_And_Chronological(t *testing.T) {
	req := require.New(t)
	repo := newMessageRepo(t)

	// Given an exchange in both directions plus noise from a third user
	a := storeDirect(t, repo, 1, 2, "hi")
	b := storeDirect(t, repo, 2, 1, "hello")
	c := storeDirect(t, repo, 1, 2, "ready for class?")
	storeDirect(t, repo, 1, 3, "other thread")

	// When fetching from either side
	fromA, err := repo.GetConversation(1, 2, 0, 10)
	req.NoError(err)
	fromB, err := repo.GetConversation(2, 1, 0, 10)
	req.NoError(err)

	// Then both see the same thread, oldest first
	req.Equal(fromA, fromB)
	req.Len(fromA, 3)
	req.Equal([]int64{a.ID, b.ID, c.ID}, []int64{fromA[0].ID, fromA[1].ID, fromA[2].ID})
}

func Test_GetConversation_Pagination_Selects_Newest_Page(t *testing.T) {
	req := require.New(t)
	repo := newMessageRepo(t)

	var ids []int64
	for i := 0; i < 5; i++ {
		ids = append(ids, storeDirect(t, repo, 1, 2, "msg").ID)
	}

	// When skipping the two newest and taking two
	page, err := repo.GetConversation(1, 2, 2, 2)
	req.NoError(err)

	// Then the page holds the middle slice in chronological order
	req.Len(page, 2)
	req.Equal(ids[1], page[0].ID)
	req.Equal(ids[2], page[1].ID)
}

func Test_GetRoomMessages(t *testing.T) {
	req := require.New(t)
	repo := newMessageRepo(t)

	first := storeRoom(t, repo, 1, 10, "warm up")
	second := storeRoom(t, repo, 2, 10, "stretch")
	storeRoom(t, repo, 1, 11, "different room")

	messages, err := repo.GetRoomMessages(10, 0, 50)

	req.NoError(err)
	req.Len(messages, 2)
	req.Equal(first.ID, messages[0].ID)
	req.Equal(second.ID, messages[1].ID)
}

func Test_MarkRead_Is_Receiver_Scoped_And_Idempotent(t *testing.T) {
	req := require.New(t)
	repo := newMessageRepo(t)

	msg := storeDirect(t, repo, 1, 2, "read me")

	// When someone else tries to mark it
	count, err := repo.MarkRead([]int64{msg.ID}, 3)
	req.NoError(err)
	req.Zero(count)

	// Then the receiver can
	count, err = repo.MarkRead([]int64{msg.ID}, 2)
	req.NoError(err)
	req.Equal(1, count)

	stored, err := repo.Get(msg.ID)
	req.NoError(err)
	req.True(stored.IsRead)
	req.NotNil(stored.ReadAt)

	// And marking again changes nothing
	count, err = repo.MarkRead([]int64{msg.ID}, 2)
	req.NoError(err)
	req.Zero(count)
}

func Test_UnreadCount_Follows_MarkRead(t *testing.T) {
	req := require.New(t)
	repo := newMessageRepo(t)

	first := storeDirect(t, repo, 1, 2, "one")
	storeDirect(t, repo, 3, 2, "two")

	count, err := repo.UnreadCount(2)
	req.NoError(err)
	req.Equal(2, count)

	_, err = repo.MarkRead([]int64{first.ID}, 2)
	req.NoError(err)

	count, err = repo.UnreadCount(2)
	req.NoError(err)
	req.Equal(1, count)
}

func Test_MarkConversationRead_Only_Touches_One_Sender(t *testing.T) {
	req := require.New(t)
	repo := newMessageRepo(t)

	storeDirect(t, repo, 1, 2, "from one")
	storeDirect(t, repo, 1, 2, "from one again")
	storeDirect(t, repo, 3, 2, "from three")

	// When user 2 clears the thread with user 1
	count, err := repo.MarkConversationRead(1, 2)
	req.NoError(err)
	req.Equal(2, count)

	// Then only user 3's message stays unread
	remaining, err := repo.UnreadCount(2)
	req.NoError(err)
	req.Equal(1, remaining)

	// And a second pass is a no-op
	count, err = repo.MarkConversationRead(1, 2)
	req.NoError(err)
	req.Zero(count)
}

func Test_RoomUnreadCount_Excludes_Own_And_Cursor(t *testing.T) {
	req := require.New(t)
	repo := newMessageRepo(t)

	first := storeRoom(t, repo, 1, 10, "a")
	storeRoom(t, repo, 2, 10, "b")
	storeRoom(t, repo, 3, 10, "c")

	// Given no cursor, user 1 has two unread (their own message excluded)
	count, err := repo.RoomUnreadCount(10, 1, 0)
	req.NoError(err)
	req.Equal(2, count)

	// When the cursor sits past the first message
	count, err = repo.RoomUnreadCount(10, 1, first.ID)
	req.NoError(err)
	req.Equal(2, count)

	// And past everything
	count, err = repo.RoomUnreadCount(10, 1, first.ID+10)
	req.NoError(err)
	req.Zero(count)
}

func Test_RecentContacts_Ordered_By_Activity(t *testing.T) {
	req := require.New(t)
	repo := newMessageRepo(t)

	// Given threads with two peers, the second more recent
	early, err := domain.NewDirectMessage(2, 1, "old", domain.TypeText, time.Now().UTC().Add(-time.Hour))
	req.NoError(err)
	_, err = repo.Store(early)
	req.NoError(err)

	late, err := domain.NewDirectMessage(3, 1, "new", domain.TypeText, time.Now().UTC())
	req.NoError(err)
	stored, err := repo.Store(late)
	req.NoError(err)

	contacts, err := repo.RecentContacts(1, 10)

	req.NoError(err)
	req.Len(contacts, 2)
	req.Equal(int64(3), contacts[0].PeerID)
	req.Equal(stored.ID, contacts[0].LastMessageID)
	req.Equal(1, contacts[0].UnreadCount)
	req.Equal(int64(2), contacts[1].PeerID)
}
