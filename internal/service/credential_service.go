package service

import (
	"context"
	"strings"

	"github.com/nationsapi/nations-service/internal/auth"
	"github.com/nationsapi/nations-service/internal/domain"
	"github.com/nationsapi/nations-service/internal/repository"
)

// CredentialService resolves principals by email and checks bcrypt secrets.
type CredentialService struct {
	users repository.UserRepository
}

// NewCredentialService builds the store.
func NewCredentialService(users repository.UserRepository) *CredentialService {
	return &CredentialService{users: users}
}

// FindByIdentifier returns repository.ErrNotFound when no user has the email.
func (s *CredentialService) FindByIdentifier(ctx context.Context, identifier string) (*domain.Principal, error) {
	return s.users.GetByEmail(ctx, strings.TrimSpace(identifier))
}

func (s *CredentialService) VerifySecret(principal *domain.Principal, rawSecret string) bool {
	return principal != nil && auth.PasswordMatches(principal.PasswordHash, rawSecret)
}
