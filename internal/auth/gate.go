package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/nationsapi/nations-service/internal/observability"
	"github.com/nationsapi/nations-service/internal/repository"
)

// BearerPrefix must open the Authorization header exactly, case included.
const BearerPrefix = "Bearer "

// Gate establishes the request identity from a bearer token. It never rejects
// a request: anything short of a valid token for an existing principal leaves
// the request unauthenticated, and RequireIdentity decides whether that is
// acceptable for the route.
type Gate struct {
	tokens      Tokens
	credentials CredentialStore
	logger      *zap.Logger
	metrics     *observability.Metrics
}

// NewGate constructs the gate.
func NewGate(tokens Tokens, credentials CredentialStore, logger *zap.Logger, metrics *observability.Metrics) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{tokens: tokens, credentials: credentials, logger: logger, metrics: metrics}
}

// Handle is the fiber middleware.
func (g *Gate) Handle(c *fiber.Ctx) error {
	g.metrics.RecordAuthOutcome(g.authenticate(c))
	return c.Next()
}

func (g *Gate) authenticate(c *fiber.Ctx) string {
	if _, ok := IdentityFromContext(c); ok {
		return observability.AuthOutcomeDuplicate
	}

	token, found := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), BearerPrefix)
	if !found || token == "" {
		g.logger.Debug("no bearer token", zap.String("path", c.Path()))
		return observability.AuthOutcomeNoToken
	}

	subject, err := g.tokens.Validate(token)
	if err != nil {
		g.logger.Warn("bearer token rejected", zap.String("path", c.Path()), zap.Error(err))
		return observability.AuthOutcomeRejected
	}

	principal, err := g.credentials.FindByIdentifier(c.UserContext(), subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			g.logger.Warn("token subject no longer exists", zap.String("subject", subject))
		} else {
			g.logger.Error("credential lookup failed", zap.String("subject", subject), zap.Error(err))
		}
		return observability.AuthOutcomeUnknown
	}

	attachIdentity(c, NewIdentity(principal))
	return observability.AuthOutcomeValid
}
