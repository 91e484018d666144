package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_DirectPair_Is_Order_Insensitive(t *testing.T) {
	req := require.New(t)

	lo1, hi1 := DirectPair(7, 3)
	lo2, hi2 := DirectPair(3, 7)

	req.Equal(lo1, lo2)
	req.Equal(hi1, hi2)
	req.Equal(int64(3), lo1)
	req.Equal(int64(7), hi1)
}

func Test_NewMessage_Constructors(t *testing.T) {
	req := require.New(t)
	now := time.Now().UTC()

	// Given valid inputs, exactly one target is set
	direct, err := NewDirectMessage(1, 2, "hi", TypeText, now)
	req.NoError(err)
	req.True(direct.IsDirect())
	req.Nil(direct.RoomID)

	room, err := NewRoomMessage(1, 5, "hi", TypeText, now)
	req.NoError(err)
	req.False(room.IsDirect())
	req.Nil(room.ReceiverID)

	// And empty content is rejected
	_, err = NewDirectMessage(1, 2, "", TypeText, now)
	req.Error(err)

	// As is an unknown payload kind
	_, err = NewRoomMessage(1, 5, "hi", MessageType("hologram"), now)
	req.Error(err)
}
