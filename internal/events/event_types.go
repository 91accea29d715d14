package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered         EventType = "user_registered"
	EventUserAuthenticated      EventType = "user_authenticated"
	EventAuthenticationRejected EventType = "authentication_rejected"
	EventLoginThrottled         EventType = "login_throttled"
)

// Rejection reasons carried by AuthenticationRejectedPayload.
const (
	ReasonUnknownUser    = "unknown_user"
	ReasonBadCredentials = "bad_credentials"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Subject   string    `json:"subject"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, subject string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID      int64    `json:"user_id"`
	Authorities []string `json:"authorities"`
}

// UserAuthenticatedPayload payload.
type UserAuthenticatedPayload struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthenticationRejectedPayload payload.
type AuthenticationRejectedPayload struct {
	Reason string `json:"reason"`
}
