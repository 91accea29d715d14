package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformedToken   = errors.New("auth: malformed token")
	ErrInvalidSignature = errors.New("auth: invalid token signature")
	ErrExpired          = errors.New("auth: token expired")
)

// Tokens issues and validates bearer tokens.
type Tokens interface {
	Issue(subject string) (string, time.Time, error)
	Validate(token string) (string, error)
}

// TokenService handles issuing and validating HS512 JWT tokens. It holds no
// mutable state and is safe for concurrent use.
type TokenService struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
	parser   *jwt.Parser
}

// TokenOption customizes a TokenService.
type TokenOption func(*TokenService)

// WithClock overrides the wall clock used for iat/exp.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService builds a token service. A non-positive validity falls back to one hour.
func NewTokenService(secret string, validity time.Duration, opts ...TokenOption) *TokenService {
	if validity <= 0 {
		validity = time.Hour
	}
	s := &TokenService{
		secret:   []byte(secret),
		validity: validity,
		now:      time.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
			jwt.WithStrictDecoding(),
			// exp is checked by Validate with an inclusive bound.
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue builds and signs a token for subject, returning it with its expiry.
func (s *TokenService) Issue(subject string) (string, time.Time, error) {
	if strings.TrimSpace(subject) == "" {
		return "", time.Time{}, errors.New("auth: empty token subject")
	}
	now := s.now()
	expiresAt := now.Add(s.validity)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Validate verifies the signature and expiry of token and returns its subject.
// A token is still valid during the second named by its exp claim.
func (s *TokenService) Validate(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	if _, err := s.parser.ParseWithClaims(token, claims, s.keyFunc); err != nil {
		return "", s.classify(token, err)
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		return "", ErrMalformedToken
	}
	if s.now().Unix() > claims.ExpiresAt.Unix() {
		return "", ErrExpired
	}
	return claims.Subject, nil
}

func (s *TokenService) keyFunc(*jwt.Token) (any, error) {
	return s.secret, nil
}

// classify maps jwt parse errors onto the service's sentinels. jwt reports an
// undecodable signature segment as malformed; when header and claims decode
// cleanly the damage is in the signature, so it is reported as such.
func (s *TokenService) classify(token string, err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		if _, _, uerr := s.parser.ParseUnverified(token, &jwt.RegisteredClaims{}); uerr == nil {
			return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
}
