package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
)

// FieldCipher encrypts individual PII fields (email, phone, address) before
// they are written to the database. Encryption is deterministic: the same
// plaintext under the same key always produces the same token, because the
// users table enforces email uniqueness on the ciphertext and login performs
// an equality lookup on it. A randomized nonce would break both.
//
// Construction: AES-256-GCM where the nonce is synthesized as
// HMAC-SHA256(key, plaintext) truncated to 12 bytes (an SIV-style
// deterministic AEAD). Tokens are base64(nonce || sealed).
type FieldCipher struct {
	key  []byte
	aead cipher.AEAD
}

var ErrNoKey = errors.New("field encryption key is required")

const nonceSize = 12

// NewFieldCipher derives a 256-bit key from the configured secret.
func NewFieldCipher(secret string) (*FieldCipher, error) {
	if secret == "" {
		return nil, ErrNoKey
	}
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}
	return &FieldCipher{key: key[:], aead: aead}, nil
}

// Encrypt returns the storable token for plaintext. Empty input maps to an
// empty token; several call sites rely on that falsy-check behavior for
// unset optional fields.
func (c *FieldCipher) Encrypt(plaintext string) string {
	if plaintext == "" {
		return ""
	}
	nonce := c.syntheticNonce(plaintext)
	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(append(nonce, sealed...))
}

// Decrypt reverses Encrypt. Any failure (wrong key, corrupted or malformed
// token) is logged and collapsed to "", so callers see undecryptable fields
// the same way they see genuinely empty ones. Use OpenString when the
// distinction matters.
func (c *FieldCipher) Decrypt(token string) string {
	plaintext, err := c.OpenString(token)
	if err != nil {
		slog.Error("field decryption failed", "error", err)
		return ""
	}
	return plaintext
}

// OpenString is the strict variant of Decrypt: it reports failures instead
// of swallowing them.
func (c *FieldCipher) OpenString(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("malformed token: %w", err)
	}
	if len(raw) <= nonceSize {
		return "", errors.New("malformed token: too short")
	}
	plaintext, err := c.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("open failed: %w", err)
	}
	return string(plaintext), nil
}

func (c *FieldCipher) syntheticNonce(plaintext string) []byte {
	mac := hmac.New(sha256.New, c.key)
	mac.Write([]byte(plaintext))
	return mac.Sum(nil)[:nonceSize]
}
