package repositories

import (
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"studio-chat/errors"
)

func newRoomRepo(t *testing.T) *RoomRepository {
	t.Helper()
	req := require.New(t)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := NewRoomRepository(db, slog.Default())
	req.NoError(err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func Test_CreateRoom_Creator_Is_Admin_Member(t *testing.T) {
	req := require.New(t)
	repo := newRoomRepo(t)

	// When creating a group with the creator duplicated in the member list
	room, err := repo.CreateRoom(1, "ballet beginners", true, []int64{1, 2, 3})
	req.NoError(err)
	req.Positive(room.ID)
	req.True(room.IsGroup)

	// Then membership holds each user once
	ids, err := repo.MemberIDs(room.ID)
	req.NoError(err)
	req.ElementsMatch([]int64{1, 2, 3}, ids)

	// And only the creator is admin
	admin, err := repo.IsAdmin(room.ID, 1)
	req.NoError(err)
	req.True(admin)
	admin, err = repo.IsAdmin(room.ID, 2)
	req.NoError(err)
	req.False(admin)
}

func Test_GetRoom_Missing(t *testing.T) {
	req := require.New(t)
	repo := newRoomRepo(t)

	_, err := repo.GetRoom(404)

	req.ErrorIs(err, errors.ErrRoomNotFound)
}

func Test_GetOrCreateDirectRoom_Is_Stable(t *testing.T) {
	req := require.New(t)
	repo := newRoomRepo(t)

	// When asking twice, in both orders
	first, err := repo.GetOrCreateDirectRoom(1, 2)
	req.NoError(err)
	second, err := repo.GetOrCreateDirectRoom(2, 1)
	req.NoError(err)

	// Then the same room comes back
	req.Equal(first.ID, second.ID)
	req.False(first.IsGroup)

	ids, err := repo.MemberIDs(first.ID)
	req.NoError(err)
	req.ElementsMatch([]int64{1, 2}, ids)
}

func Test_GetOrCreateDirectRoom_Rejects_Self(t *testing.T) {
	req := require.New(t)
	repo := newRoomRepo(t)

	_, err := repo.GetOrCreateDirectRoom(7, 7)

	req.ErrorIs(err, errors.ErrSelfDirectRoom)
}

func Test_AddMember_Duplicate(t *testing.T) {
	req := require.New(t)
	repo := newRoomRepo(t)

	room, err := repo.CreateRoom(1, "choreo", true, nil)
	req.NoError(err)

	member, err := repo.AddMember(room.ID, 2, "Lina", false)
	req.NoError(err)
	req.Equal("Lina", member.Nickname)

	_, err = repo.AddMember(room.ID, 2, "Lina", false)
	req.ErrorIs(err, errors.ErrAlreadyMember)
}

func Test_AddMember_To_Missing_Room(t *testing.T) {
	req := require.New(t)
	repo := newRoomRepo(t)

	_, err := repo.AddMember(404, 2, "", false)

	req.ErrorIs(err, errors.ErrRoomNotFound)
}

func Test_RemoveMember(t *testing.T) {
	req := require.New(t)
	repo := newRoomRepo(t)

	room, err := repo.CreateRoom(1, "choreo", true, []int64{2})
	req.NoError(err)

	// When removing an existing member
	req.NoError(repo.RemoveMember(room.ID, 2))

	member, err := repo.IsMember(room.ID, 2)
	req.NoError(err)
	req.False(member)

	// Then the room disappears from their room list
	rooms, err := repo.RoomsForUser(2)
	req.NoError(err)
	req.Empty(rooms)

	// And removing again is a business error
	req.ErrorIs(repo.RemoveMember(room.ID, 2), errors.ErrNotRoomMember)
}

func Test_RoomsForUser(t *testing.T) {
	req := require.New(t)
	repo := newRoomRepo(t)

	first, err := repo.CreateRoom(1, "a", true, []int64{2})
	req.NoError(err)
	second, err := repo.CreateRoom(2, "b", true, nil)
	req.NoError(err)
	_, err = repo.CreateRoom(3, "c", true, nil)
	req.NoError(err)

	rooms, err := repo.RoomsForUser(2)

	req.NoError(err)
	req.Len(rooms, 2)
	ids := []int64{rooms[0].ID, rooms[1].ID}
	req.ElementsMatch([]int64{first.ID, second.ID}, ids)
}

func Test_ReadCursor_Advances_Monotonically(t *testing.T) {
	req := require.New(t)
	repo := newRoomRepo(t)

	room, err := repo.CreateRoom(1, "choreo", true, []int64{2})
	req.NoError(err)

	// Given a fresh member, the cursor is zero
	cursor, err := repo.ReadCursor(room.ID, 2)
	req.NoError(err)
	req.Zero(cursor)

	// When advancing forward then backwards
	req.NoError(repo.AdvanceReadCursor(room.ID, 2, 17))
	req.NoError(repo.AdvanceReadCursor(room.ID, 2, 5))

	// Then the cursor keeps the highest value
	cursor, err = repo.ReadCursor(room.ID, 2)
	req.NoError(err)
	req.Equal(int64(17), cursor)
}

func Test_DeleteRoom_Cascades(t *testing.T) {
	req := require.New(t)
	repo := newRoomRepo(t)

	// Given a direct room with an advanced cursor
	room, err := repo.GetOrCreateDirectRoom(1, 2)
	req.NoError(err)
	req.NoError(repo.AdvanceReadCursor(room.ID, 1, 3))

	// When deleting it
	req.NoError(repo.DeleteRoom(room.ID))

	// Then the room, membership and cursor are gone
	_, err = repo.GetRoom(room.ID)
	req.ErrorIs(err, errors.ErrRoomNotFound)
	member, err := repo.IsMember(room.ID, 1)
	req.NoError(err)
	req.False(member)

	// And the pair can start a fresh direct room
	fresh, err := repo.GetOrCreateDirectRoom(1, 2)
	req.NoError(err)
	req.NotEqual(room.ID, fresh.ID)
}
