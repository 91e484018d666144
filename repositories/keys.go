package repositories

import (
	"fmt"
	"strconv"
	"strings"
)

// Key layout. Record keys carry JSON values; "idx:" keys are secondary
// indexes and carry either nothing or a tiny scalar. The 19-digit zero
// padding keeps lexicographic order aligned with numeric order.
const (
	prefixMessage  = "msg:"
	prefixConvIdx  = "idx:conv:"
	prefixRoomIdx  = "idx:room:"
	prefixUnread   = "idx:unread:"
	prefixContact  = "idx:contact:"
	prefixRoom     = "room:"
	prefixMember   = "member:"
	prefixUserRoom = "idx:userroom:"
	prefixDirect   = "idx:direct:"
	prefixCursor   = "cursor:"

	seqMessageKey = "seq:message"
	seqRoomKey    = "seq:room"
)

func messageKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%019d", prefixMessage, id))
}

func convIndexKey(lo, hi, id int64) []byte {
	return []byte(fmt.Sprintf("%s%d:%d:%019d", prefixConvIdx, lo, hi, id))
}

func convIndexPrefix(lo, hi int64) []byte {
	return []byte(fmt.Sprintf("%s%d:%d:", prefixConvIdx, lo, hi))
}

func roomIndexKey(roomID, id int64) []byte {
	return []byte(fmt.Sprintf("%s%d:%019d", prefixRoomIdx, roomID, id))
}

func roomIndexPrefix(roomID int64) []byte {
	return []byte(fmt.Sprintf("%s%d:", prefixRoomIdx, roomID))
}

func unreadKey(receiverID, id int64) []byte {
	return []byte(fmt.Sprintf("%s%d:%019d", prefixUnread, receiverID, id))
}

func unreadPrefix(receiverID int64) []byte {
	return []byte(fmt.Sprintf("%s%d:", prefixUnread, receiverID))
}

func contactKey(userID, peerID int64) []byte {
	return []byte(fmt.Sprintf("%s%d:%d", prefixContact, userID, peerID))
}

func contactPrefix(userID int64) []byte {
	return []byte(fmt.Sprintf("%s%d:", prefixContact, userID))
}

func roomKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%019d", prefixRoom, id))
}

func memberKey(roomID, userID int64) []byte {
	return []byte(fmt.Sprintf("%s%d:%d", prefixMember, roomID, userID))
}

func memberPrefix(roomID int64) []byte {
	return []byte(fmt.Sprintf("%s%d:", prefixMember, roomID))
}

func userRoomKey(userID, roomID int64) []byte {
	return []byte(fmt.Sprintf("%s%d:%d", prefixUserRoom, userID, roomID))
}

func userRoomPrefix(userID int64) []byte {
	return []byte(fmt.Sprintf("%s%d:", prefixUserRoom, userID))
}

func directKey(lo, hi int64) []byte {
	return []byte(fmt.Sprintf("%s%d:%d", prefixDirect, lo, hi))
}

func cursorKey(roomID, userID int64) []byte {
	return []byte(fmt.Sprintf("%s%d:%d", prefixCursor, roomID, userID))
}

// idFromIndexKey extracts the trailing padded id segment of an index key.
func idFromIndexKey(key []byte) (int64, error) {
	s := string(key)
	i := strings.LastIndexByte(s, ':')
	if i < 0 || i == len(s)-1 {
		return 0, fmt.Errorf("malformed index key %q", s)
	}
	return strconv.ParseInt(s[i+1:], 10, 64)
}
