package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/nationsapi/nations-service/pkg/util"
)

// RequireIdentity rejects requests the gate left unauthenticated.
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromContext(c); !ok {
			return apperrors.NewUnauthorized(http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}
