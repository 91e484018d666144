package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"

	"studio-chat/domain"
	"studio-chat/errors"
)

func Test_Decode_Direct_Message(t *testing.T) {
	req := require.New(t)

	// Given a direct message envelope without explicit message_type
	raw := []byte(`{"type":"direct_message","receiver_id":42,"content":"hello"}`)

	// When decoding
	cmd, err := Decode(raw)

	// Then the command carries the text default
	req.NoError(err)
	direct, ok := cmd.(DirectMessageCommand)
	req.True(ok)
	req.Equal(int64(42), direct.ReceiverID)
	req.Equal("hello", direct.Content)
	req.Equal(domain.TypeText, direct.Type)
}

func Test_Decode_Room_Message(t *testing.T) {
	req := require.New(t)

	raw := []byte(`{"type":"room_message","room_id":7,"content":"plié then relevé","message_type":"text"}`)

	cmd, err := Decode(raw)

	req.NoError(err)
	room, ok := cmd.(RoomMessageCommand)
	req.True(ok)
	req.Equal(int64(7), room.RoomID)
	req.Equal(domain.TypeText, room.Type)
}

func Test_Decode_Unknown_Type(t *testing.T) {
	req := require.New(t)

	raw := []byte(`{"type":"teleport","receiver_id":1,"content":"x"}`)

	_, err := Decode(raw)

	req.ErrorIs(err, errors.ErrUnknownEnvelopeType)
}

func Test_Decode_Invalid_Payloads(t *testing.T) {
	req := require.New(t)

	cases := map[string][]byte{
		"missing receiver":     []byte(`{"type":"direct_message","content":"x"}`),
		"missing content":      []byte(`{"type":"direct_message","receiver_id":1}`),
		"negative room":        []byte(`{"type":"room_message","room_id":-3,"content":"x"}`),
		"unknown message type": []byte(`{"type":"direct_message","receiver_id":1,"content":"x","message_type":"hologram"}`),
		"not json":             []byte(`{"type":`),
		"empty read ids":       []byte(`{"type":"read_message"}`),
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(raw)
			req.ErrorIs(err, errors.ErrInvalidEnvelope)
		})
	}
}

func Test_Decode_Typing_Defaults_To_User_Target(t *testing.T) {
	req := require.New(t)

	// Given a typing envelope with no target_type
	raw := []byte(`{"type":"typing","target_id":9,"is_typing":true}`)

	cmd, err := Decode(raw)

	req.NoError(err)
	typing, ok := cmd.(TypingCommand)
	req.True(ok)
	req.Equal(TargetUser, typing.TargetType)
	req.True(typing.IsTyping)
}

func Test_Decode_Read_Single_And_Batch(t *testing.T) {
	req := require.New(t)

	// Given the legacy single-id form
	single, err := Decode([]byte(`{"type":"read_message","message_id":5}`))
	req.NoError(err)
	req.Equal([]int64{5}, single.(ReadMessagesCommand).MessageIDs)

	// And the batch form
	batch, err := Decode([]byte(`{"type":"read_message","message_ids":[1,2,3]}`))
	req.NoError(err)
	req.Equal([]int64{1, 2, 3}, batch.(ReadMessagesCommand).MessageIDs)
}
