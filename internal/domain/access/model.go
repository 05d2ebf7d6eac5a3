package access

import "time"

// Grant binds an opaque token to one project, optionally with an expiry.
// Grants are written once at issuance; revocation and expiry edits happen in
// the backing store, never here.
type Grant struct {
	Token       string     `json:"token"`
	ProjectName string     `json:"project_name"`
	ClientName  string     `json:"client_name"`
	Active      bool       `json:"active"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Expired reports whether the grant has an expiry in the past. A grant with
// no expiry never expires.
func (g *Grant) Expired(now time.Time) bool {
	return g.ExpiresAt != nil && g.ExpiresAt.Before(now)
}

// Identity is the project scope a resolved token grants access to.
type Identity struct {
	ProjectName string `json:"project_name"`
	ClientName  string `json:"client_name"`
}

// State tracks where the gate is in the token validation flow.
type State string

const (
	StateIdle         State = "idle"
	StateValidating   State = "validating"
	StateResolved     State = "resolved"
	StateInvalid      State = "invalid"
	StateExpired      State = "expired"
	StateLookupFailed State = "lookup_failed"
)
