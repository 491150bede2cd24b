package model

import "time"

// Session is the ephemeral credential behind every authenticated request.
//
// SessionID is the opaque token the client presents in the X-Session-ID
// header; it is issued by the external identity flow, not minted here.
// SessionToken is the bearer token the assertion service returned alongside
// the profile. A user may hold any number of concurrent sessions.
type Session struct {
	SessionID    string    `bson:"session_id" json:"session_id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	SessionToken string    `bson:"session_token" json:"session_token"`
	ExpiresAt    time.Time `bson:"expires_at" json:"expires_at"`
}

// Valid reports whether the session may still authenticate requests at the
// given instant. Expiry is exclusive: a session is dead the moment now
// reaches ExpiresAt. Expired sessions are treated as absent, never purged.
func (s *Session) Valid(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
