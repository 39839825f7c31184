package auth

import "errors"

var (
	// ErrTokenExpired indicates the token's expiry has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates a malformed, tampered, or unsigned token.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrSecretRequired indicates an empty signing secret.
	ErrSecretRequired = errors.New("signing secret required")
)
