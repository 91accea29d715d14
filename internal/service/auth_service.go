package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nationsapi/nations-service/internal/auth"
	"github.com/nationsapi/nations-service/internal/config"
	"github.com/nationsapi/nations-service/internal/domain"
	"github.com/nationsapi/nations-service/internal/events"
	"github.com/nationsapi/nations-service/internal/repository"
	apperrors "github.com/nationsapi/nations-service/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users       repository.UserRepository
	credentials auth.CredentialStore
	tokens      auth.Tokens
	throttle    *auth.LoginThrottle
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	bcryptCost  int
}

// AuthDependencies encapsulates collaborators of the auth service.
type AuthDependencies struct {
	Users       repository.UserRepository
	Credentials auth.CredentialStore
	Tokens      auth.Tokens
	Throttle    *auth.LoginThrottle
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:       deps.Users,
		credentials: deps.Credentials,
		tokens:      deps.Tokens,
		throttle:    deps.Throttle,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
		bcryptCost:  cfg.BcryptCost,
	}
}

// Register stores a new principal with the USER authority.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.Principal, error) {
	email = strings.TrimSpace(email)

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	principal := &domain.Principal{
		Email:        email,
		PasswordHash: hash,
		Authorities:  []string{domain.AuthorityUser},
	}
	if err := s.users.Create(ctx, principal); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict(fmt.Sprintf("Username %s already in database.", email), map[string]any{
				"email": email,
			})
		}
		return nil, apperrors.NewDataLayerError(err)
	}

	s.publish(ctx, events.New(events.EventUserRegistered, email, events.UserRegisteredPayload{
		UserID:      principal.ID,
		Authorities: principal.Authorities,
	}))
	return principal, nil
}

// Authenticate checks the credentials and issues a bearer token.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, time.Time, error) {
	email = strings.TrimSpace(email)

	if !s.throttle.Admit(ctx, email) {
		s.publish(ctx, events.New(events.EventLoginThrottled, email, nil))
		return "", time.Time{}, apperrors.NewTooManyRequests("Too many failed login attempts. Try again later.")
	}

	principal, err := s.credentials.FindByIdentifier(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.reject(ctx, email, events.ReasonUnknownUser)
			return "", time.Time{}, apperrors.NewNotFound(fmt.Sprintf("User with email: %s not found.", email))
		}
		return "", time.Time{}, apperrors.NewDataLayerError(err)
	}

	if !s.credentials.VerifySecret(principal, password) {
		s.reject(ctx, email, events.ReasonBadCredentials)
		return "", time.Time{}, apperrors.NewUnauthorized("Bad credentials")
	}
	s.throttle.Reset(ctx, email)

	token, expiresAt, err := s.tokens.Issue(principal.Email)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.New(events.EventUserAuthenticated, principal.Email, events.UserAuthenticatedPayload{
		ExpiresAt: expiresAt,
	}))
	return token, expiresAt, nil
}

func (s *AuthService) reject(ctx context.Context, email, reason string) {
	s.publish(ctx, events.New(events.EventAuthenticationRejected, email, events.AuthenticationRejectedPayload{
		Reason: reason,
	}))
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
