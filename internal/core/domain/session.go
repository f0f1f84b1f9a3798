package domain

import "time"

// Session is a signed-in browser session. It lives as long as its token.
type Session struct {
	ID        string
	UserID    string
	Role      string
	ExpiresAt time.Time
}
