package tokens

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	userID := uuid.NewString()
	exp := time.Now().Add(15 * time.Minute)

	token, err := NewAccessToken(secret, userID, "user", exp)
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "user", claims.Role)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestAccessToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	token, err := NewAccessToken(secret, uuid.NewString(), "user", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(token, secret)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestAccessToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewAccessToken([]byte("a"), uuid.NewString(), "user", time.Now().Add(time.Minute))
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(token, []byte("b"))
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestAccessToken_RejectsOtherAlg(t *testing.T) {
	t.Parallel()

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS512, AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()},
	})
	s, err := tkn.SignedString([]byte("k"))
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(s, []byte("k"))
	assert.Nil(t, claims)
	assert.Error(t, err)
}
