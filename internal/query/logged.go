package query

import (
	"go.uber.org/zap"

	"github.com/nationsapi/nations-service/internal/observability"
)

type loggedComposer struct {
	inner  Composer
	logger *zap.Logger
}

// LoggedComposer decorates inner with entry, exit and failure logging.
func LoggedComposer(inner Composer, logger *zap.Logger) Composer {
	return &loggedComposer{inner: inner, logger: logger}
}

func (l *loggedComposer) Compose(params Params, policy WhitelistPolicy) (ComposedQuery, error) {
	done := observability.Trace(l.logger, "QueryBuilder.Compose",
		zap.String("endpoint", policy.Endpoint),
		zap.String("sort_by_field", params.SortField),
		zap.Int("page", params.Page),
		zap.Int("items_in_page", params.PageSize),
	)
	q, err := l.inner.Compose(params, policy)
	done(err)
	return q, err
}
