package models

import "time"

// Session is the authenticated caller of an operation. It is built once per
// request by the auth middleware and passed explicitly into services.
type Session struct {
	UserID    string    `json:"user_id"`
	Role      UserRole  `json:"role"`
	Email     string    `json:"email"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Owns reports whether the session user is the owner of a record.
func (s *Session) Owns(ownerID string) bool {
	return s != nil && s.UserID != "" && s.UserID == ownerID
}

func (s *Session) HasRole(roles ...UserRole) bool {
	if s == nil {
		return false
	}
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}
