package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, err := issuer.GenerateJWT("student@example.com")
	require.NoError(t, err)

	claims, err := issuer.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenTamperedSignature(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	token, err := issuer.GenerateJWT("student@example.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = issuer.ValidateJWT(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenSignedWithOtherSecret(t *testing.T) {
	token, err := NewTokenIssuer("other-secret").GenerateJWT("student@example.com")
	require.NoError(t, err)

	_, err = NewTokenIssuer("test-secret").ValidateJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpiresAfterOneDay(t *testing.T) {
	issued := time.Now()
	issuer := NewTokenIssuer("test-secret")
	issuer.now = func() time.Time { return issued }

	token, err := issuer.GenerateJWT("student@example.com")
	require.NoError(t, err)

	issuer.now = func() time.Time { return issued.Add(TokenTTL - time.Minute) }
	_, err = issuer.ValidateJWT(token)
	assert.NoError(t, err)

	issuer.now = func() time.Time { return issued.Add(TokenTTL + time.Minute) }
	_, err = issuer.ValidateJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{
		Email: "student@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenIssuer("test-secret").ValidateJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWithoutSecret(t *testing.T) {
	_, err := NewTokenIssuer("").GenerateJWT("student@example.com")
	assert.ErrorIs(t, err, ErrMissingSecret)
}
