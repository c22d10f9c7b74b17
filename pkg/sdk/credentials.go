package sdk

import "time"

// Credentials is a bearer identity token and its expiry.
type Credentials struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IsExpired reports whether the token has passed its expiry. A zero expiry
// never expires.
func (c *Credentials) IsExpired() bool {
	return !c.ExpiresAt.IsZero() && time.Now().After(c.ExpiresAt)
}
