// Package domain defines types and errors for sensitive-value encryption.
package domain

import (
	"github.com/meridianfi/banking/internal/errors"
)

// Codec errors. Both wrap ErrDataIntegrity: a payload that cannot be decoded
// or authenticated points at corruption or tampering, never at user input.
var (
	// ErrMalformedPayload indicates the encrypted payload does not have the
	// expected iv:tag:ciphertext structure or is not valid base64.
	ErrMalformedPayload = errors.Wrap(errors.ErrDataIntegrity, "malformed encrypted payload")

	// ErrDecryptionFailed indicates authentication failed during decryption,
	// caused by tampering or a wrong key.
	ErrDecryptionFailed = errors.Wrap(errors.ErrDataIntegrity, "decryption failed")
)
