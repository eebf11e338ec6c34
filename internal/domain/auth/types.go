package auth

import "time"

// Config drives token verification.
type Config struct {
	Secret   string
	Audience string
	TokenTTL time.Duration
	// ServiceKey authorizes internal callers such as the discovery sender.
	ServiceKey string
}

// Claims are extracted from a verified access token.
type Claims struct {
	UserID    string
	ExpiresAt time.Time
}
