package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-0123456789abcdef0123"

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)

	token, err := codec.Issue(42, RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, RoleUser, claims.Role)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestCodec_AdminRoundTrip(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)

	token, err := codec.Issue(AdminUserID, RoleAdmin)
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	require.Equal(t, AdminUserID, claims.UserID)
	require.Equal(t, RoleAdmin, claims.Role)
}

func TestCodec_Expired(t *testing.T) {
	codec := NewCodec(testSecret, -time.Minute)

	token, err := codec.Issue(1, RoleUser)
	require.NoError(t, err)

	_, err = codec.Decode(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestCodec_TamperedSignature(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)

	token, err := codec.Issue(1, RoleUser)
	require.NoError(t, err)

	// Flip one byte of the signature portion.
	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, err = codec.Decode(string(tampered))
	require.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestCodec_WrongSecret(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)
	other := NewCodec("another-secret-key-fedcba9876543210aa", time.Hour)

	token, err := codec.Issue(1, RoleUser)
	require.NoError(t, err)

	_, err = other.Decode(token)
	require.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestCodec_Malformed(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)

	for _, tokenString := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := codec.Decode(tokenString)
		require.Error(t, err, "token %q", tokenString)
	}
}

func TestCodec_UnknownRoleRejected(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)

	_, err := codec.Issue(1, Role("superuser"))
	require.Error(t, err)
}

func TestRole_Valid(t *testing.T) {
	require.True(t, RoleUser.Valid())
	require.True(t, RoleAdmin.Valid())
	require.False(t, Role("").Valid())
	require.False(t, Role("root").Valid())
}
