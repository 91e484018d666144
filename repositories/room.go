//go:generate go run go.uber.org/mock/mockgen -source=room.go -destination=../mocks/mock_room_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	goerrors "errors"

	"studio-chat/domain"
	"studio-chat/errors"
)

type IRoomRepository interface {
	CreateRoom(creatorID int64, name string, isGroup bool, memberIDs []int64) (domain.Room, error)
	GetRoom(id int64) (domain.Room, error)
	DeleteRoom(id int64) error
	GetOrCreateDirectRoom(userA, userB int64) (domain.Room, error)
	AddMember(roomID, userID int64, nickname string, isAdmin bool) (domain.RoomMember, error)
	RemoveMember(roomID, userID int64) error
	GetMembers(roomID int64) ([]domain.RoomMember, error)
	MemberIDs(roomID int64) ([]int64, error)
	IsMember(roomID, userID int64) (bool, error)
	IsAdmin(roomID, userID int64) (bool, error)
	RoomsForUser(userID int64) ([]domain.Room, error)
	ReadCursor(roomID, userID int64) (int64, error)
	AdvanceReadCursor(roomID, userID, messageID int64) error
}

type RoomRepository struct {
	db  *badger.DB
	seq *badger.Sequence
	log *slog.Logger
}

func NewRoomRepository(db *badger.DB, log *slog.Logger) (*RoomRepository, error) {
	seq, err := db.GetSequence([]byte(seqRoomKey), 16)
	if err != nil {
		return nil, fmt.Errorf("room sequence: %w", err)
	}
	return &RoomRepository{db: db, seq: seq, log: log}, nil
}

func (r *RoomRepository) Close() error {
	return r.seq.Release()
}

// CreateRoom persists a room and its initial membership in one transaction.
// The creator is always a member and always an admin, even when absent from
// memberIDs.
func (r *RoomRepository) CreateRoom(creatorID int64, name string, isGroup bool, memberIDs []int64) (domain.Room, error) {
	id, err := r.nextID()
	if err != nil {
		return domain.Room{}, err
	}
	now := time.Now().UTC()
	room := domain.Room{
		ID:        id,
		Name:      name,
		IsGroup:   isGroup,
		CreatorID: creatorID,
		CreatedAt: now,
	}

	members := lo.Uniq(append([]int64{creatorID}, memberIDs...))

	err = r.db.Update(func(txn *badger.Txn) error {
		record, err := json.Marshal(room)
		if err != nil {
			return err
		}
		if err := txn.Set(roomKey(room.ID), record); err != nil {
			return err
		}
		for _, userID := range members {
			member := domain.RoomMember{
				RoomID:   room.ID,
				UserID:   userID,
				IsAdmin:  userID == creatorID,
				JoinedAt: now,
			}
			if err := r.setMember(txn, member); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

func (r *RoomRepository) GetRoom(id int64) (domain.Room, error) {
	var room domain.Room
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(roomKey(id))
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrRoomNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &room)
		})
	})
	return room, err
}

// DeleteRoom removes the room record and cascades to membership, per-member
// read cursors and the direct-pair dedup entry. Message history is retained.
func (r *RoomRepository) DeleteRoom(id int64) error {
	room, err := r.GetRoom(id)
	if err != nil {
		return err
	}
	members, err := r.GetMembers(id)
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(roomKey(id)); err != nil {
			return err
		}
		for _, member := range members {
			if err := txn.Delete(memberKey(id, member.UserID)); err != nil {
				return err
			}
			if err := txn.Delete(userRoomKey(member.UserID, id)); err != nil {
				return err
			}
			if err := txn.Delete(cursorKey(id, member.UserID)); err != nil {
				return err
			}
		}
		if !room.IsGroup && len(members) == 2 {
			pairLo, pairHi := domain.DirectPair(members[0].UserID, members[1].UserID)
			return txn.Delete(directKey(pairLo, pairHi))
		}
		return nil
	})
}

// GetOrCreateDirectRoom resolves the unique non-group room of an unordered
// user pair, creating it on first use. Safe under concurrent first use: the
// dedup key is read and written in the same transaction, so a conflicting
// racer retries and finds the winner's room.
func (r *RoomRepository) GetOrCreateDirectRoom(userA, userB int64) (domain.Room, error) {
	if userA == userB {
		return domain.Room{}, errors.ErrSelfDirectRoom
	}
	pairLo, pairHi := domain.DirectPair(userA, userB)

	for {
		room, err := r.tryGetOrCreateDirect(pairLo, pairHi, userA, userB)
		if goerrors.Is(err, badger.ErrConflict) {
			continue
		}
		return room, err
	}
}

func (r *RoomRepository) tryGetOrCreateDirect(pairLo, pairHi, creatorID, otherID int64) (domain.Room, error) {
	var existingID int64 = -1
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(directKey(pairLo, pairHi))
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			existingID, err = strconv.ParseInt(string(val), 10, 64)
			return err
		})
	})
	if err != nil {
		return domain.Room{}, err
	}
	if existingID >= 0 {
		return r.GetRoom(existingID)
	}

	id, err := r.nextID()
	if err != nil {
		return domain.Room{}, err
	}
	now := time.Now().UTC()
	room := domain.Room{
		ID:        id,
		IsGroup:   false,
		CreatorID: creatorID,
		CreatedAt: now,
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		// Re-check inside the write transaction; a racer may have won.
		if _, err := txn.Get(directKey(pairLo, pairHi)); err == nil {
			return badger.ErrConflict
		} else if !goerrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		record, err := json.Marshal(room)
		if err != nil {
			return err
		}
		if err := txn.Set(roomKey(room.ID), record); err != nil {
			return err
		}
		for _, userID := range []int64{creatorID, otherID} {
			member := domain.RoomMember{
				RoomID:   room.ID,
				UserID:   userID,
				IsAdmin:  userID == creatorID,
				JoinedAt: now,
			}
			if err := r.setMember(txn, member); err != nil {
				return err
			}
		}
		return txn.Set(directKey(pairLo, pairHi), []byte(strconv.FormatInt(room.ID, 10)))
	})
	if err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

// AddMember attaches a user to an existing room. Duplicate membership is a
// business error.
func (r *RoomRepository) AddMember(roomID, userID int64, nickname string, isAdmin bool) (domain.RoomMember, error) {
	if _, err := r.GetRoom(roomID); err != nil {
		return domain.RoomMember{}, err
	}
	member := domain.RoomMember{
		RoomID:   roomID,
		UserID:   userID,
		Nickname: nickname,
		IsAdmin:  isAdmin,
		JoinedAt: time.Now().UTC(),
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(memberKey(roomID, userID)); err == nil {
			return errors.ErrAlreadyMember
		} else if !goerrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return r.setMember(txn, member)
	})
	if err != nil {
		return domain.RoomMember{}, err
	}
	return member, nil
}

// RemoveMember revokes membership immediately: the next fan-out for this
// room no longer includes the user.
func (r *RoomRepository) RemoveMember(roomID, userID int64) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(memberKey(roomID, userID)); goerrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrNotRoomMember
		} else if err != nil {
			return err
		}
		if err := txn.Delete(memberKey(roomID, userID)); err != nil {
			return err
		}
		if err := txn.Delete(userRoomKey(userID, roomID)); err != nil {
			return err
		}
		return txn.Delete(cursorKey(roomID, userID))
	})
}

func (r *RoomRepository) GetMembers(roomID int64) ([]domain.RoomMember, error) {
	var members []domain.RoomMember
	prefix := memberPrefix(roomID)
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var member domain.RoomMember
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &member)
			}); err != nil {
				return err
			}
			members = append(members, member)
		}
		return nil
	})
	return members, err
}

// MemberIDs is the fan-out source: the authoritative member list of a room.
func (r *RoomRepository) MemberIDs(roomID int64) ([]int64, error) {
	members, err := r.GetMembers(roomID)
	if err != nil {
		return nil, err
	}
	return lo.Map(members, func(m domain.RoomMember, _ int) int64 {
		return m.UserID
	}), nil
}

func (r *RoomRepository) IsMember(roomID, userID int64) (bool, error) {
	found := false
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(memberKey(roomID, userID))
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

func (r *RoomRepository) IsAdmin(roomID, userID int64) (bool, error) {
	admin := false
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(memberKey(roomID, userID))
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		var member domain.RoomMember
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &member)
		}); err != nil {
			return err
		}
		admin = member.IsAdmin
		return nil
	})
	return admin, err
}

func (r *RoomRepository) RoomsForUser(userID int64) ([]domain.Room, error) {
	var roomIDs []int64
	prefix := userRoomPrefix(userID)
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id, err := idFromIndexKey(it.Item().Key())
			if err != nil {
				return err
			}
			roomIDs = append(roomIDs, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rooms := make([]domain.Room, 0, len(roomIDs))
	for _, id := range roomIDs {
		room, err := r.GetRoom(id)
		if goerrors.Is(err, errors.ErrRoomNotFound) {
			r.log.Warn("user-room index points to a missing room", "room_id", id)
			continue
		}
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// ReadCursor returns the highest message id the member has read in the
// room, zero when never advanced.
func (r *RoomRepository) ReadCursor(roomID, userID int64) (int64, error) {
	var cursor int64
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cursorKey(roomID, userID))
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			cursor, err = strconv.ParseInt(string(val), 10, 64)
			return err
		})
	})
	return cursor, err
}

// AdvanceReadCursor moves the member's cursor forward. Moving it backwards
// is a no-op, which keeps repeated reads idempotent.
func (r *RoomRepository) AdvanceReadCursor(roomID, userID, messageID int64) error {
	current, err := r.ReadCursor(roomID, userID)
	if err != nil {
		return err
	}
	if messageID <= current {
		return nil
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(cursorKey(roomID, userID), []byte(strconv.FormatInt(messageID, 10)))
	})
}

func (r *RoomRepository) setMember(txn *badger.Txn, member domain.RoomMember) error {
	record, err := json.Marshal(member)
	if err != nil {
		return err
	}
	if err := txn.Set(memberKey(member.RoomID, member.UserID), record); err != nil {
		return err
	}
	return txn.Set(userRoomKey(member.UserID, member.RoomID), nil)
}

func (r *RoomRepository) nextID() (int64, error) {
	id, err := r.seq.Next()
	if err != nil {
		return 0, err
	}
	if id == 0 {
		id, err = r.seq.Next()
		if err != nil {
			return 0, err
		}
	}
	return int64(id), nil
}
