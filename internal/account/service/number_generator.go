package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	apperrors "github.com/meridianfi/banking/internal/errors"
)

// accountNumberWidth is the fixed width of generated account numbers.
const accountNumberWidth = 10

// accountNumberSpace is 10^10, the size of the account number space.
var accountNumberSpace = new(big.Int).Exp(big.NewInt(10), big.NewInt(accountNumberWidth), nil)

type accountNumberGenerator struct{}

// NewAccountNumberGenerator creates a generator for 10-digit account numbers
// drawn uniformly from a cryptographically secure source.
func NewAccountNumberGenerator() NumberGenerator {
	return &accountNumberGenerator{}
}

// Generate draws 64 bits of entropy, reduces modulo 10^10 and left-pads with
// zeros to a fixed width of 10 digits.
func (g *accountNumberGenerator) Generate() (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", apperrors.Wrap(err, "failed to read random bytes")
	}

	n := new(big.Int).SetBytes(buf[:])
	n.Mod(n, accountNumberSpace)

	return fmt.Sprintf("%0*d", accountNumberWidth, n), nil
}
