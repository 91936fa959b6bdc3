package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsShortKeys(t *testing.T) {
	_, err := New([]byte("short"))
	require.Error(t, err)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c, err := New(bytes.Repeat([]byte("k"), 32))
	require.NoError(t, err)

	sealed, err := c.Encrypt("rough day, slept badly")
	require.NoError(t, err)
	assert.NotEqual(t, "rough day, slept badly", sealed)

	plain, err := c.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "rough day, slept badly", plain)
}

func TestEmptyStringPassesThrough(t *testing.T) {
	c, err := New(bytes.Repeat([]byte("k"), 32))
	require.NoError(t, err)

	sealed, err := c.Encrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", sealed)

	plain, err := c.Decrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", plain)
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	c1, err := New(bytes.Repeat([]byte("a"), 32))
	require.NoError(t, err)
	c2, err := New(bytes.Repeat([]byte("b"), 32))
	require.NoError(t, err)

	sealed, err := c1.Encrypt("private note")
	require.NoError(t, err)

	_, err = c2.Decrypt(sealed)
	require.Error(t, err)
}
