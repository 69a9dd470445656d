package session

import "github.com/google/uuid"

// Session is the record stored for an authenticated user. Token is the
// store key and is not part of the serialized record.
type Session struct {
	Token     string         `json:"-"`
	UserID    uuid.UUID      `json:"user_uuidd"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	CSRFToken string         `json:"CSRFToken"`
	Settings  map[string]any `json:"settings"`
}

// User is the identity a session is created for.
type User struct {
	ID       uuid.UUID
	Username string
	Email    string
	Settings map[string]any
}

// Setting returns a value from the session settings.
func (s Session) Setting(key string) (any, bool) {
	v, ok := s.Settings[key]
	return v, ok
}
