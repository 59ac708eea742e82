package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer("secret")

	token, err := issuer.CreateAccessToken(42, "staff", time.Hour)
	require.NoError(t, err)

	claims, err := issuer.ParseValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "staff", claims.Role)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestIssuer_RejectsForeignSignature(t *testing.T) {
	token, err := NewIssuer("other").CreateAccessToken(1, "user", time.Hour)
	require.NoError(t, err)

	_, err = NewIssuer("secret").ParseValidate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_RejectsExpired(t *testing.T) {
	issuer := NewIssuer("secret")
	token, err := issuer.CreateAccessToken(1, "user", -time.Minute)
	require.NoError(t, err)

	_, err = issuer.ParseValidate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
