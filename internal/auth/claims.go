package auth

// UserClaims is the authenticated identity attached to a request context.
// The user id is the stable identifier issued by the external auth
// collaborator; the core trusts it and never re-validates it.
type UserClaims interface {
	UserID() string
	DisplayName() string
	Source() string
}

// SessionClaims are claims recovered from a signed session token
type SessionClaims struct {
	UserUUID         string
	DisplayNameValue string
	SessionID        string
}

func (c *SessionClaims) UserID() string      { return c.UserUUID }
func (c *SessionClaims) DisplayName() string { return c.DisplayNameValue }
func (c *SessionClaims) Source() string      { return "SESSION_TOKEN" }
