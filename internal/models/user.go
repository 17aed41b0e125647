package models

import "time"

// User roles. Admin users may manage the recipe-type taxonomy.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User represents a registered account. Usernames are stored lowercased and
// are unique (enforced by an index on the users collection).
type User struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Username  string    `bson:"username" json:"username"`
	Password  string    `bson:"password" json:"-"` // bcrypt hash, never serialized
	Role      string    `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// IsAdmin reports whether the user may manage the type taxonomy.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
