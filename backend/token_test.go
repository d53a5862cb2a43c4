package backend_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/backend"
)

func TestTokenExpiry(t *testing.T) {
	t.Run("jwt with exp claim", func(t *testing.T) {
		exp := time.Now().Add(time.Hour).Truncate(time.Second)
		raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
			"sub": "u1",
			"exp": exp.Unix(),
		}).SignedString([]byte("test-key"))
		require.NoError(t, err)

		got, ok := backend.TokenExpiry(raw)
		require.True(t, ok)
		require.True(t, got.Equal(exp))
	})

	t.Run("jwt without exp claim", func(t *testing.T) {
		raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
			"sub": "u1",
		}).SignedString([]byte("test-key"))
		require.NoError(t, err)

		_, ok := backend.TokenExpiry(raw)
		require.False(t, ok)
	})

	t.Run("opaque token", func(t *testing.T) {
		_, ok := backend.TokenExpiry("not-a-jwt")
		require.False(t, ok)
	})

	t.Run("empty token", func(t *testing.T) {
		_, ok := backend.TokenExpiry("")
		require.False(t, ok)
	})
}
