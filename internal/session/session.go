package session

import "github.com/hotelandino/booking-bff/internal/models"

// Context carries the signed-in user's profile and upstream bearer token
// through the orchestrator. It is built from the session JWT by the auth
// middleware and passed explicitly; no component reads ambient user state.
type Context struct {
	UserID        int
	Email         string
	FirstName     string
	LastName      string
	Role          int
	DocumentType  string
	Document      string
	UpstreamToken string
}

// IsAdmin reports whether the session belongs to an admin user.
func (c Context) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// FromUser builds a session context from a login profile.
func FromUser(u models.User, upstreamToken string) Context {
	return Context{
		UserID:        u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          u.Role,
		DocumentType:  u.DocumentType,
		Document:      u.Document,
		UpstreamToken: upstreamToken,
	}
}
