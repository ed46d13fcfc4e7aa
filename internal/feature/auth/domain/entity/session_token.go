package entity

import "time"

// SessionToken is a signed, time-limited credential issued on successful login.
// It is never persisted server-side; its signature is verified on each request.
type SessionToken struct {
	Subject   uint      // ID of the authenticated user
	IssuedAt  time.Time // Time the token was minted
	ExpiresAt time.Time // Time after which the token is rejected
	Signed    string    // Compact signed form sent to the client
}
