// Package service provides authentication services such as token generation
// and hashing.
package service

// TokenService generates and hashes opaque bearer tokens. Only the hash is
// persisted; the plain token is shown to the client exactly once.
type TokenService interface {
	GenerateToken() (plainToken string, tokenHash string, err error)
	HashToken(plainToken string) string
}
