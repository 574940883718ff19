package identity

import (
	"context"
	"errors"
)

// Claim is the normalized result of verifying a bearer credential against an
// external identity provider. It is transient; nothing here is persisted.
type Claim struct {
	Subject   string
	Email     string
	Name      string
	AvatarURL string
	// Provider names which identity provider issued the claim ("supabase",
	// "google"), so downstream logic can branch on provenance.
	Provider string
	Roles    []string
}

// HasAdminRole reports whether the provider attached an admin or moderator
// role hint to the claim.
func (c *Claim) HasAdminRole() bool {
	for _, r := range c.Roles {
		if r == "admin" || r == "moderator" {
			return true
		}
	}
	return false
}

// ErrInvalidCredential covers every verification failure: rejected token,
// malformed provider response, provider outage, timeout. Fail-closed.
var ErrInvalidCredential = errors.New("invalid credential")

// Verifier validates a bearer token against exactly one external identity
// provider. Implementations must be side-effect free on the local store.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claim, error)
}
