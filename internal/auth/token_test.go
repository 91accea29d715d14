package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueValidateRoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("secret", time.Hour, WithClock(fixedClock(now)))

	token, exp, err := svc.Issue("jason@nations.io")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)
	assert.Len(t, strings.Split(token, "."), 3)

	subject, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "jason@nations.io", subject)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, &jwt.RegisteredClaims{})
	require.NoError(t, err)
	assert.Equal(t, "HS512", parsed.Method.Alg())
	claims := parsed.Claims.(*jwt.RegisteredClaims)
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestIssueRejectsEmptySubject(t *testing.T) {
	_, _, err := NewTokenService("secret", time.Hour).Issue("  ")
	require.Error(t, err)
}

func TestValidateExpiryBoundary(t *testing.T) {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	token, exp, err := NewTokenService("secret", time.Minute, WithClock(fixedClock(issued))).Issue("a@b.io")
	require.NoError(t, err)

	atExpiry := NewTokenService("secret", time.Minute, WithClock(fixedClock(exp.Add(999*time.Millisecond))))
	_, err = atExpiry.Validate(token)
	require.NoError(t, err)

	pastExpiry := NewTokenService("secret", time.Minute, WithClock(fixedClock(exp.Add(time.Second))))
	_, err = pastExpiry.Validate(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestValidateRejectsOtherSecret(t *testing.T) {
	token, _, err := NewTokenService("secret-a", time.Hour).Issue("a@b.io")
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", time.Hour).Validate(token)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token, _, err := svc.Issue("a@b.io")
	require.NoError(t, err)
	parts := strings.Split(token, ".")

	t.Run("any signature character changed", func(t *testing.T) {
		for i := range parts[2] {
			sig := []byte(parts[2])
			if sig[i] == 'A' {
				sig[i] = 'B'
			} else {
				sig[i] = 'A'
			}
			_, err := svc.Validate(parts[0] + "." + parts[1] + "." + string(sig))
			require.ErrorIs(t, err, ErrInvalidSignature, "position %d", i)
		}
	})

	t.Run("payload swapped", func(t *testing.T) {
		forged := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"admin@nations.io","exp":9999999999}`))
		_, err := svc.Validate(parts[0] + "." + forged + "." + parts[2])
		require.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("signature stripped", func(t *testing.T) {
		_, err := svc.Validate(parts[0] + "." + parts[1] + ".")
		require.ErrorIs(t, err, ErrInvalidSignature)
	})
}

func TestValidateRejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "a@b.io",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	hs256, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = NewTokenService("secret", time.Hour).Validate(hs256)
	require.ErrorIs(t, err, ErrInvalidSignature)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewTokenService("secret", time.Hour).Validate(none)
	require.Error(t, err)
}

func TestValidateMalformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	for _, token := range []string{"", "abc", "a.b", "a.b.c.d", "!!!.###.$$$"} {
		_, err := svc.Validate(token)
		assert.ErrorIs(t, err, ErrMalformedToken, token)
	}
}

func TestValidateRequiresSubjectAndExpiry(t *testing.T) {
	secret := []byte("secret")
	svc := NewTokenService("secret", time.Hour)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = svc.Validate(noSub)
	assert.ErrorIs(t, err, ErrMalformedToken)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{Subject: "a@b.io"}).SignedString(secret)
	require.NoError(t, err)
	_, err = svc.Validate(noExp)
	assert.ErrorIs(t, err, ErrMalformedToken)
}
