package sessions

import "time"

// Session is a server-side browser session. The opaque token travels in a
// cookie (or Authorization header); everything else stays on the server.
// Flashes are one-shot messages queued for the next rendered page.
type Session struct {
	Token     string    `bson:"token" json:"token"`
	Username  string    `bson:"username" json:"username"`
	Role      string    `bson:"role" json:"role"`
	Flashes   []string  `bson:"flashes,omitempty" json:"flashes,omitempty"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
