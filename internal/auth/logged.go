package auth

import (
	"time"

	"go.uber.org/zap"

	"github.com/nationsapi/nations-service/internal/observability"
)

type loggedTokens struct {
	inner  Tokens
	logger *zap.Logger
}

// LoggedTokens decorates inner with entry, exit and failure logging.
// Token values are never logged.
func LoggedTokens(inner Tokens, logger *zap.Logger) Tokens {
	return &loggedTokens{inner: inner, logger: logger}
}

func (l *loggedTokens) Issue(subject string) (string, time.Time, error) {
	done := observability.Trace(l.logger, "TokenService.Issue", zap.String("subject", subject))
	token, exp, err := l.inner.Issue(subject)
	done(err)
	return token, exp, err
}

func (l *loggedTokens) Validate(token string) (string, error) {
	done := observability.Trace(l.logger, "TokenService.Validate")
	subject, err := l.inner.Validate(token)
	done(err)
	return subject, err
}
