package observability

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Trace logs entry into op and returns a function that logs its completion.
// Pass the operation's error to the returned function; a non-nil error is
// logged at warn level.
//
//	done := observability.Trace(logger, "TokenService.Issue")
//	token, exp, err := inner.Issue(subject)
//	done(err)
func Trace(logger *zap.Logger, op string, fields ...zap.Field) func(error) {
	if logger == nil {
		return func(error) {}
	}
	start := time.Now()
	base := append([]zap.Field{zap.String("op", op)}, fields...)
	logger.Debug("Making the call", base...)

	return func(err error) {
		out := append(base, zap.Duration("elapsed", time.Since(start)))
		if err != nil {
			logger.Warn("Call failed", append(out, zap.String("error_type", fmt.Sprintf("%T", err)), zap.Error(err))...)
			return
		}
		logger.Debug("Completed the call", out...)
	}
}

// TraceHandler wraps a fiber middleware with Trace. Errors returned from
// further down the chain are left to the error middleware.
func TraceHandler(logger *zap.Logger, op string, next fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		done := Trace(logger, op, zap.String("path", c.Path()))
		err := next(c)
		done(nil)
		return err
	}
}
