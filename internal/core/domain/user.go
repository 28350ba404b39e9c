package domain

import "time"

// User models an authenticated account. The role lives in a separate
// user_roles collection and is resolved on demand, never stored here.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile carries the user-editable presentation data for an account.
type Profile struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Member is the reduced profile view exposed for task assignment.
type Member struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

// Session is the opaque token plus its subject. A principal exists iff a
// session exists.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}
