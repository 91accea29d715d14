package auth

import (
	"context"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/nationsapi/nations-service/internal/domain"
)

const identityKey = "auth_identity"

// Identity is the authenticated caller of a single request.
type Identity struct {
	Subject     string
	Authorities []string
}

// CredentialStore resolves principals and checks their secrets.
type CredentialStore interface {
	// FindByIdentifier returns repository.ErrNotFound when no principal matches.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.Principal, error)
	VerifySecret(principal *domain.Principal, rawSecret string) bool
}

// NewIdentity builds the identity for principal. Authorities are
// de-duplicated and sorted.
func NewIdentity(principal *domain.Principal) *Identity {
	seen := make(map[string]struct{}, len(principal.Authorities))
	authorities := make([]string, 0, len(principal.Authorities))
	for _, a := range principal.Authorities {
		if _, dup := seen[a]; dup || a == "" {
			continue
		}
		seen[a] = struct{}{}
		authorities = append(authorities, a)
	}
	sort.Strings(authorities)
	return &Identity{Subject: principal.Email, Authorities: authorities}
}

// IdentityFromContext retrieves the authenticated identity, if any.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	identity, ok := c.Locals(identityKey).(*Identity)
	return identity, ok && identity != nil
}

func attachIdentity(c *fiber.Ctx, identity *Identity) {
	c.Locals(identityKey, identity)
}
