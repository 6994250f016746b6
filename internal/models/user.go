package models

// User is an authenticated account. The password hash never leaves the
// storage layer's own serialization.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash []byte `json:"-"`
	CreatedAt    string `json:"created_at"`
}

// Session is the opaque token plus embedded user reference representing the
// currently authenticated principal. At most one session is active per
// client context.
type Session struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
