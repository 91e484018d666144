//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	goerrors "errors"

	"studio-chat/domain"
	"studio-chat/errors"
)

// Contact is one entry of a user's recent-conversations view.
type Contact struct {
	PeerID        int64     `json:"peer_id"`
	LastMessageID int64     `json:"last_message_id"`
	LastAt        time.Time `json:"last_at"`
	UnreadCount   int       `json:"unread_count"`
}

type IMessageRepository interface {
	Store(msg domain.Message) (domain.Message, error)
	Get(id int64) (domain.Message, error)
	GetConversation(userA, userB int64, skip, limit int) ([]domain.Message, error)
	GetRoomMessages(roomID int64, skip, limit int) ([]domain.Message, error)
	MarkRead(ids []int64, readerID int64) (int, error)
	MarkConversationRead(senderID, receiverID int64) (int, error)
	UnreadCount(userID int64) (int, error)
	RoomUnreadCount(roomID, userID, afterID int64) (int, error)
	RecentContacts(userID int64, limit int) ([]Contact, error)
}

type MessageRepository struct {
	db  *badger.DB
	seq *badger.Sequence
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) (*MessageRepository, error) {
	seq, err := db.GetSequence([]byte(seqMessageKey), 64)
	if err != nil {
		return nil, fmt.Errorf("message sequence: %w", err)
	}
	return &MessageRepository{db: db, seq: seq, log: log}, nil
}

// Close releases the id sequence lease back to Badger.
func (m *MessageRepository) Close() error {
	return m.seq.Release()
}

// contactMark is the value stored under idx:contact keys, one per direction
// of a direct pair, overwritten on every message.
type contactMark struct {
	LastMessageID int64     `json:"last_message_id"`
	LastAt        time.Time `json:"last_at"`
}

// Store assigns an id and persists the record with its secondary indexes in
// one transaction. Returns the stored message, id filled in.
func (m *MessageRepository) Store(msg domain.Message) (domain.Message, error) {
	if (msg.ReceiverID == nil) == (msg.RoomID == nil) {
		return domain.Message{}, fmt.Errorf("%w: message must target exactly one of receiver or room", errors.ErrInvalidEnvelope)
	}

	id, err := m.nextID()
	if err != nil {
		return domain.Message{}, err
	}
	msg.ID = id

	record, err := json.Marshal(msg)
	if err != nil {
		return domain.Message{}, err
	}

	err = m.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(messageKey(msg.ID), record); err != nil {
			return err
		}
		if msg.IsDirect() {
			receiver := *msg.ReceiverID
			lo, hi := domain.DirectPair(msg.SenderID, receiver)
			if err := txn.Set(convIndexKey(lo, hi, msg.ID), nil); err != nil {
				return err
			}
			if err := txn.Set(unreadKey(receiver, msg.ID), nil); err != nil {
				return err
			}
			mark, err := json.Marshal(contactMark{LastMessageID: msg.ID, LastAt: msg.CreatedAt})
			if err != nil {
				return err
			}
			if err := txn.Set(contactKey(msg.SenderID, receiver), mark); err != nil {
				return err
			}
			return txn.Set(contactKey(receiver, msg.SenderID), mark)
		}
		// Room index values carry the sender id so unread counting does not
		// touch the message records.
		return txn.Set(roomIndexKey(*msg.RoomID, msg.ID), []byte(strconv.FormatInt(msg.SenderID, 10)))
	})
	if err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

func (m *MessageRepository) Get(id int64) (domain.Message, error) {
	var msg domain.Message
	err := m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(messageKey(id))
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrMessageNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &msg)
		})
	})
	return msg, err
}

// GetConversation returns the direct exchange between two users, newest page
// selected by skip/limit, results in chronological order.
func (m *MessageRepository) GetConversation(userA, userB int64, skip, limit int) ([]domain.Message, error) {
	lo, hi := domain.DirectPair(userA, userB)
	ids, err := m.pageIndexDesc(convIndexPrefix(lo, hi), skip, limit)
	if err != nil {
		return nil, err
	}
	return m.fetchChronological(ids)
}

// GetRoomMessages returns a room's history, newest page selected by
// skip/limit, results in chronological order.
func (m *MessageRepository) GetRoomMessages(roomID int64, skip, limit int) ([]domain.Message, error) {
	ids, err := m.pageIndexDesc(roomIndexPrefix(roomID), skip, limit)
	if err != nil {
		return nil, err
	}
	return m.fetchChronological(ids)
}

// pageIndexDesc walks an index prefix newest-first and collects message ids
// for one page.
func (m *MessageRepository) pageIndexDesc(prefix []byte, skip, limit int) ([]int64, error) {
	var ids []int64
	err := m.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		// Seek past the largest possible id for this prefix, then walk back.
		seekKey := append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		skipped := 0
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if skipped < skip {
				skipped++
				continue
			}
			if limit > 0 && len(ids) == limit {
				break
			}
			id, err := idFromIndexKey(it.Item().Key())
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	return ids, err
}

// fetchChronological resolves ids (given newest-first) into records, oldest
// first.
func (m *MessageRepository) fetchChronological(ids []int64) ([]domain.Message, error) {
	messages := make([]domain.Message, 0, len(ids))
	err := m.db.View(func(txn *badger.Txn) error {
		for i := len(ids) - 1; i >= 0; i-- {
			item, err := txn.Get(messageKey(ids[i]))
			if goerrors.Is(err, badger.ErrKeyNotFound) {
				m.log.Warn("index points to a missing message", "id", ids[i])
				continue
			}
			if err != nil {
				return err
			}
			var msg domain.Message
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &msg)
			}); err != nil {
				return err
			}
			messages = append(messages, msg)
		}
		return nil
	})
	return messages, err
}

// MarkRead flips is_read on messages addressed to readerID. Already-read ids
// and messages addressed to someone else are skipped, so the call is
// idempotent and cannot be used to read someone else's mail.
func (m *MessageRepository) MarkRead(ids []int64, readerID int64) (int, error) {
	now := time.Now().UTC()
	count := 0
	err := m.db.Update(func(txn *badger.Txn) error {
		for _, id := range ids {
			item, err := txn.Get(messageKey(id))
			if goerrors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			var msg domain.Message
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &msg)
			}); err != nil {
				return err
			}
			if msg.ReceiverID == nil || *msg.ReceiverID != readerID || msg.IsRead {
				continue
			}
			msg.IsRead = true
			msg.ReadAt = &now
			record, err := json.Marshal(msg)
			if err != nil {
				return err
			}
			if err := txn.Set(messageKey(id), record); err != nil {
				return err
			}
			if err := txn.Delete(unreadKey(readerID, id)); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MarkConversationRead marks every unread message from senderID to
// receiverID as read. Calling it twice is a no-op the second time.
func (m *MessageRepository) MarkConversationRead(senderID, receiverID int64) (int, error) {
	ids, err := m.unreadFrom(receiverID, senderID)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return m.MarkRead(ids, receiverID)
}

// unreadFrom lists the receiver's unread message ids limited to one sender.
func (m *MessageRepository) unreadFrom(receiverID, senderID int64) ([]int64, error) {
	var ids []int64
	prefix := unreadPrefix(receiverID)
	err := m.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id, err := idFromIndexKey(it.Item().Key())
			if err != nil {
				return err
			}
			item, err := txn.Get(messageKey(id))
			if goerrors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			var msg domain.Message
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &msg)
			}); err != nil {
				return err
			}
			if msg.SenderID == senderID {
				ids = append(ids, id)
			}
		}
		return nil
	})
	return ids, err
}

// UnreadCount counts direct messages addressed to userID and not yet read.
func (m *MessageRepository) UnreadCount(userID int64) (int, error) {
	count := 0
	prefix := unreadPrefix(userID)
	err := m.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// RoomUnreadCount counts room messages above the member's read cursor that
// were sent by someone else. The cursor itself lives with the membership
// data in the room repository.
func (m *MessageRepository) RoomUnreadCount(roomID, userID, afterID int64) (int, error) {
	count := 0
	prefix := roomIndexPrefix(roomID)
	err := m.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(roomIndexKey(roomID, afterID+1)); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				sender, err := strconv.ParseInt(string(val), 10, 64)
				if err != nil {
					return err
				}
				if sender != userID {
					count++
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return count, err
}

// RecentContacts returns the user's direct-conversation peers ordered by
// last activity, each with its unread count.
func (m *MessageRepository) RecentContacts(userID int64, limit int) ([]Contact, error) {
	var contacts []Contact
	prefix := contactPrefix(userID)
	err := m.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			peerID, err := idFromIndexKey(item.Key())
			if err != nil {
				return err
			}
			var mark contactMark
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &mark)
			}); err != nil {
				return err
			}
			contacts = append(contacts, Contact{
				PeerID:        peerID,
				LastMessageID: mark.LastMessageID,
				LastAt:        mark.LastAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	unreadBySender, err := m.unreadBySender(userID)
	if err != nil {
		return nil, err
	}
	for i := range contacts {
		contacts[i].UnreadCount = unreadBySender[contacts[i].PeerID]
	}

	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].LastAt.After(contacts[j].LastAt)
	})
	if limit > 0 && len(contacts) > limit {
		contacts = contacts[:limit]
	}
	return contacts, nil
}

// unreadBySender groups the user's unread direct messages by their sender.
func (m *MessageRepository) unreadBySender(userID int64) (map[int64]int, error) {
	counts := make(map[int64]int)
	prefix := unreadPrefix(userID)
	err := m.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id, err := idFromIndexKey(it.Item().Key())
			if err != nil {
				return err
			}
			item, err := txn.Get(messageKey(id))
			if goerrors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			var msg domain.Message
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &msg)
			}); err != nil {
				return err
			}
			counts[msg.SenderID]++
		}
		return nil
	})
	return counts, err
}

// nextID skips the zero value so message ids start at 1.
func (m *MessageRepository) nextID() (int64, error) {
	id, err := m.seq.Next()
	if err != nil {
		return 0, err
	}
	if id == 0 {
		id, err = m.seq.Next()
		if err != nil {
			return 0, err
		}
	}
	return int64(id), nil
}
