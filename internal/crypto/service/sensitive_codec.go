// Package service provides the sensitive-value codec used to protect fields
// such as SSNs at rest. Values are encrypted with AES-256-GCM under a key
// derived once, at construction, from a single configuration secret.
package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	cryptoDomain "github.com/meridianfi/banking/internal/crypto/domain"
	apperrors "github.com/meridianfi/banking/internal/errors"
)

// payloadDelimiter joins the base64-encoded nonce, tag and ciphertext.
const payloadDelimiter = ":"

// SensitiveCodec encrypts and decrypts one short sensitive string per call.
//
// The payload format is "base64(nonce):base64(tag):base64(ciphertext)". A fresh
// 96-bit nonce is generated per encryption, so encrypting the same plaintext
// twice always yields different payloads.
//
// The codec is stateless after construction and safe for concurrent use.
type SensitiveCodec struct {
	aead cipher.AEAD
}

// NewSensitiveCodec derives a 256-bit key from the secret via SHA-256 and
// builds an AES-256-GCM cipher with it. The same secret always yields the same
// key; there is no rotation.
func NewSensitiveCodec(secret string) (*SensitiveCodec, error) {
	key := sha256.Sum256([]byte(secret))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &SensitiveCodec{aead: aead}, nil
}

// Encrypt encrypts value and returns the textual payload.
func (c *SensitiveCodec) Encrypt(value string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", apperrors.Wrap(err, "failed to generate nonce")
	}

	// Seal appends the 16-byte authentication tag to the ciphertext; the
	// payload format carries the tag as its own segment.
	sealed := c.aead.Seal(nil, nonce, []byte(value), nil)
	tagStart := len(sealed) - c.aead.Overhead()
	ciphertext, tag := sealed[:tagStart], sealed[tagStart:]

	parts := []string{
		base64.StdEncoding.EncodeToString(nonce),
		base64.StdEncoding.EncodeToString(tag),
		base64.StdEncoding.EncodeToString(ciphertext),
	}
	return strings.Join(parts, payloadDelimiter), nil
}

// Decrypt decodes and decrypts a payload produced by Encrypt. A payload with
// fewer than three non-empty segments, or segments that are not valid base64,
// fails with ErrMalformedPayload. A payload whose authentication tag does not
// verify fails with ErrDecryptionFailed; no partial plaintext is ever returned.
func (c *SensitiveCodec) Decrypt(payload string) (string, error) {
	parts := strings.Split(payload, payloadDelimiter)
	if len(parts) != 3 {
		return "", apperrors.Wrap(cryptoDomain.ErrMalformedPayload, "expected 3 segments")
	}
	for _, part := range parts {
		if part == "" {
			return "", apperrors.Wrap(cryptoDomain.ErrMalformedPayload, "empty segment")
		}
	}

	nonce, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return "", apperrors.Wrap(cryptoDomain.ErrMalformedPayload, "invalid nonce encoding")
	}
	tag, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", apperrors.Wrap(cryptoDomain.ErrMalformedPayload, "invalid tag encoding")
	}
	ciphertext, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return "", apperrors.Wrap(cryptoDomain.ErrMalformedPayload, "invalid ciphertext encoding")
	}

	if len(nonce) != c.aead.NonceSize() {
		return "", apperrors.Wrap(cryptoDomain.ErrMalformedPayload, "wrong nonce size")
	}

	plaintext, err := c.aead.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	return string(plaintext), nil
}
