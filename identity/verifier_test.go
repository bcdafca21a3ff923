package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/talent-portal/internal/auth"
)

func TestVerifier(t *testing.T) {
	v := NewVerifier("test-secret", "recruitment-backend")
	user := &auth.User{ID: "emp-7", Name: "Grace", Email: "grace@example.com", Role: auth.RoleHRMgr}

	t.Run("round trip", func(t *testing.T) {
		token, err := v.Sign(user, time.Minute)
		require.NoError(t, err)

		got, err := v.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := v.Sign(user, -time.Hour)
		require.NoError(t, err)

		_, err = v.Verify(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewVerifier("other", "recruitment-backend").Sign(user, time.Minute)
		require.NoError(t, err)

		_, err = v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := NewVerifier("test-secret", "someone-else").Sign(user, time.Minute)
		require.NoError(t, err)

		_, err = v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		token, err := v.Sign(&auth.User{ID: "x", Role: auth.Role("admin")}, time.Minute)
		require.NoError(t, err)

		_, err = v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("invalid email", func(t *testing.T) {
		token, err := v.Sign(&auth.User{ID: "x", Email: "nope", Role: auth.RoleApplicant}, time.Minute)
		require.NoError(t, err)

		_, err = v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Role: "Applicant"})
		token, err := raw.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = NewVerifier("test-secret", "").Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("algorithm none rejected", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
			Role:             "HRMgr",
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		})
		token, err := raw.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestVerifierNotConfigured(t *testing.T) {
	v := NewVerifier("", "")
	_, err := v.Verify("anything")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = v.Sign(&auth.User{Role: auth.RoleEmployee}, time.Minute)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
