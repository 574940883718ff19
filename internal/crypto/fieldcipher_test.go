package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c, err := NewFieldCipher("test-secret")
	require.NoError(t, err)

	for _, plaintext := range []string{
		"ada@clinic.com",
		"+90 555 123 45 67",
		"Bağdat Caddesi No:1, Kadıköy/İstanbul",
		"a",
	} {
		token := c.Encrypt(plaintext)
		require.NotEmpty(t, token)
		assert.NotEqual(t, plaintext, token)
		assert.Equal(t, plaintext, c.Decrypt(token))
	}
}

func TestEncryptIsDeterministic(t *testing.T) {
	c, err := NewFieldCipher("test-secret")
	require.NoError(t, err)

	// Equality lookups on the encrypted email column depend on this.
	assert.Equal(t, c.Encrypt("ada@clinic.com"), c.Encrypt("ada@clinic.com"))
	assert.NotEqual(t, c.Encrypt("ada@clinic.com"), c.Encrypt("eda@clinic.com"))
}

func TestEmptyStringShortCircuit(t *testing.T) {
	c, err := NewFieldCipher("test-secret")
	require.NoError(t, err)

	assert.Equal(t, "", c.Encrypt(""))
	assert.Equal(t, "", c.Decrypt(""))

	plaintext, err := c.OpenString("")
	require.NoError(t, err)
	assert.Equal(t, "", plaintext)
}

func TestDecryptWrongKeyReturnsEmpty(t *testing.T) {
	c1, err := NewFieldCipher("key-one")
	require.NoError(t, err)
	c2, err := NewFieldCipher("key-two")
	require.NoError(t, err)

	token := c1.Encrypt("ada@clinic.com")
	assert.Equal(t, "", c2.Decrypt(token))

	_, err = c2.OpenString(token)
	assert.Error(t, err)
}

func TestDecryptMalformedToken(t *testing.T) {
	c, err := NewFieldCipher("test-secret")
	require.NoError(t, err)

	assert.Equal(t, "", c.Decrypt("not-base64!!!"))
	assert.Equal(t, "", c.Decrypt(base64.StdEncoding.EncodeToString([]byte("short"))))
}

func TestNewFieldCipherRequiresKey(t *testing.T) {
	_, err := NewFieldCipher("")
	assert.ErrorIs(t, err, ErrNoKey)
}
