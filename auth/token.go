// Package auth verifies admission tokens. Token issuance lives in the
// platform's account service; this side only validates the shared-secret
// signature and extracts the user identity.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"studio-chat/domain"
	"studio-chat/errors"
)

// CustomClaims is the payload the account service signs into each token.
type CustomClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Nickname string `json:"nickname,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates the signature and expiration of a token and
// resolves it to a user identity. Any failure maps to ErrInvalidToken; the
// caller closes the channel with a policy-violation code.
func (v *Verifier) Verify(tokenString string) (domain.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return domain.User{}, errors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return domain.User{}, errors.ErrInvalidToken
	}

	return domain.User{
		ID:       claims.UserID,
		Username: claims.Username,
		Nickname: claims.Nickname,
	}, nil
}

// Sign creates a token for the given identity. The account service owns the
// production path; this mirror exists for tests and local tooling.
func (v *Verifier) Sign(user domain.User, lifetime time.Duration) (string, error) {
	claims := &CustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		Nickname: user.Nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "studio-chat",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
