package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"studio-chat/domain"
	"studio-chat/errors"
)

func Test_Verify_Valid_Token(t *testing.T) {
	req := require.New(t)
	verifier := NewVerifier("secret")

	// Given a token signed with the shared secret
	token, err := verifier.Sign(domain.User{ID: 12, Username: "marion", Nickname: "Coach M"}, time.Hour)
	req.NoError(err)

	// When verifying it
	user, err := verifier.Verify(token)

	// Then the identity is resolved
	req.NoError(err)
	req.Equal(int64(12), user.ID)
	req.Equal("marion", user.Username)
	req.Equal("Coach M", user.Nickname)
}

func Test_Verify_Expired_Token(t *testing.T) {
	req := require.New(t)
	verifier := NewVerifier("secret")

	token, err := verifier.Sign(domain.User{ID: 12, Username: "marion"}, -time.Minute)
	req.NoError(err)

	_, err = verifier.Verify(token)

	req.ErrorIs(err, errors.ErrInvalidToken)
}

func Test_Verify_Wrong_Secret(t *testing.T) {
	req := require.New(t)

	token, err := NewVerifier("secret-a").Sign(domain.User{ID: 12, Username: "marion"}, time.Hour)
	req.NoError(err)

	_, err = NewVerifier("secret-b").Verify(token)

	req.ErrorIs(err, errors.ErrInvalidToken)
}

func Test_Verify_Garbage_And_Missing_UserID(t *testing.T) {
	req := require.New(t)
	verifier := NewVerifier("secret")

	// Given garbage instead of a token
	_, err := verifier.Verify("not-a-token")
	req.ErrorIs(err, errors.ErrInvalidToken)

	// And a well-signed token without a usable user id
	token, err := verifier.Sign(domain.User{ID: 0, Username: "ghost"}, time.Hour)
	req.NoError(err)
	_, err = verifier.Verify(token)
	req.ErrorIs(err, errors.ErrInvalidToken)
}
