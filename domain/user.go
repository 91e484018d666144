package domain

// User is the identity resolved from an admission token. User records live
// in the platform's account service; only this projection transits the
// messaging core.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname,omitempty"`
}
