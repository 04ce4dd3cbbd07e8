package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_IssueAndValidate(t *testing.T) {
	auth := NewAuthService("secret")

	tok, err := auth.IssueToken("64b7f0c2a1b2c3d4e5f60718", "admin")
	require.NoError(t, err)

	user, err := auth.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", user.ID)
	assert.True(t, auth.IsAdmin(user))
}

func TestAuthService_Rejects(t *testing.T) {
	auth := NewAuthService("secret")

	other, err := NewAuthService("other").IssueToken("u1", "")
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Role: "admin"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: "u1"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"empty":        "",
		"garbage":      "not.a.jwt",
		"wrong secret": other,
		"expired":      expired,
		"no user id":   noUser,
		"wrong alg":    hs512,
	} {
		t.Run(name, func(t *testing.T) {
			u, err := auth.ValidateToken(tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, u)
		})
	}
}

func TestAuthService_IsAdmin(t *testing.T) {
	auth := NewAuthService("s")
	assert.False(t, auth.IsAdmin(nil))
	assert.False(t, auth.IsAdmin(&AuthUser{ID: "u", Role: "customer"}))
	assert.True(t, auth.IsAdmin(&AuthUser{ID: "u", Role: "admin"}))
}
