package crypto

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// SHA-256 of "hello world".
const helloWorldSHA256 = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"

func TestHashReader(t *testing.T) {
	hr := NewHashReader(strings.NewReader("hello world"))

	data, err := io.ReadAll(hr)
	require.NoError(t, err)
	require.Equal(t, "hello world", string(data))

	require.Equal(t, helloWorldSHA256, hr.SHA256())
	require.Equal(t, int64(11), hr.Size())
}

func TestComputeSHA256(t *testing.T) {
	require.Equal(t, helloWorldSHA256, ComputeSHA256([]byte("hello world")))
}

func TestComputeStreamSHA256(t *testing.T) {
	hash, size, err := ComputeStreamSHA256(strings.NewReader("hello world"))
	require.NoError(t, err)
	require.Equal(t, helloWorldSHA256, hash)
	require.Equal(t, int64(11), size)
}

func TestGenerateSigningSecret(t *testing.T) {
	secret, err := GenerateSigningSecret(32)
	require.NoError(t, err)
	require.Len(t, secret, 64) // hex doubles the byte length

	other, err := GenerateSigningSecret(32)
	require.NoError(t, err)
	require.NotEqual(t, secret, other)

	// Short requests are clamped to the 32-byte minimum.
	short, err := GenerateSigningSecret(16)
	require.NoError(t, err)
	require.Len(t, short, 64)
}
