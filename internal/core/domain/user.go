package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// AdminUsername is the reserved administrative login. A row carrying this
// username must also carry RoleAdmin to be accepted at login time.
const AdminUsername = "admin"

// User models an actor in the system, either the administrator or a
// regular end user.
//
// Password is write-only: it is accepted on create/update payloads and in
// credential checks, and stripped before the user is cached, placed in a
// session, or serialized into any response.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password,omitempty"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	VideoURLs []string  `json:"video_urls"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Redacted returns a copy with the password stripped and the video link
// collection normalized to non-nil. Every user that leaves the account
// service passes through here.
func (u User) Redacted() User {
	u.Password = ""
	if u.VideoURLs == nil {
		u.VideoURLs = []string{}
	}
	return u
}

// IsAdmin reports whether the user carries the administrator role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
