// Package auth holds the storefront's view of who is signed in: the visitor's
// session and the role the Shop API reports for them.
package auth

import "time"

// Role represents the storefront role of a signed-in user.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Satisfies reports whether r is at least required. Admins satisfy user
// routes; unknown roles satisfy nothing.
func (r Role) Satisfies(required Role) bool {
	have, want := roleRank(r), roleRank(required)
	return have > 0 && want > 0 && have >= want
}

func roleRank(r Role) int {
	switch r {
	case RoleUser:
		return 1
	case RoleAdmin:
		return 2
	default:
		return 0
	}
}

// RoleFor maps the API's is_admin flag onto a Role.
func RoleFor(isAdmin bool) Role {
	if isAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Credentials are the email/password pair used for register and login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the identity reported by the API's who-am-I endpoint.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// Role returns the storefront role for the user.
func (u User) Role() Role { return RoleFor(u.IsAdmin) }

// Session is the server-side record we persist for a signed-in visitor.
// ID is an opaque session identifier carried in the session cookie; Token is
// the API bearer token and never leaves the server.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin reports whether the session may use admin affordances.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// Expired reports whether the session has passed its expiry at now.
func (s Session) Expired(now time.Time) bool { return !s.ExpiresAt.After(now) }
