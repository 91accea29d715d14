package service

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nationsapi/nations-service/internal/events"
)

// AuditService writes an audit trail of authentication events.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.record(zapcore.InfoLevel))
	a.dispatcher.Subscribe(events.EventUserAuthenticated, a.record(zapcore.InfoLevel))
	a.dispatcher.Subscribe(events.EventAuthenticationRejected, a.record(zapcore.WarnLevel))
	a.dispatcher.Subscribe(events.EventLoginThrottled, a.record(zapcore.WarnLevel))
}

func (a *AuditService) record(level zapcore.Level) events.EventHandler {
	return func(_ context.Context, event events.Event) error {
		a.logger.Log(level, string(event.Type),
			zap.String("event_id", event.ID),
			zap.String("subject", event.Subject),
			zap.Time("timestamp", event.Timestamp),
			zap.Any("payload", event.Payload))
		return nil
	}
}
